// Package spatial holds the acceleration structures the battle systems query:
// a k-d tree over ship positions for nearest-neighbour avoidance, a uniform
// grid of collider spheres for laser hit tests and the per-team objective
// registry.
package spatial

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/spatial/kdtree"
)

// Entry is a point in the index keyed by the owning entity.
type Entry struct {
	ID  uint64
	Pos mgl64.Vec3
}

// Index answers nearest-other-entity queries. It is rebuilt wholesale from a
// snapshot and read concurrently between rebuilds.
type Index struct {
	tree *kdtree.Tree
	size int
}

func NewIndex() *Index {
	return &Index{}
}

// Rebuild replaces the indexed set. The slice is copied.
func (ix *Index) Rebuild(items []Entry) {
	ix.size = len(items)
	if len(items) == 0 {
		ix.tree = nil
		return
	}
	pts := make(entries, len(items))
	for i, it := range items {
		pts[i] = entry(it)
	}
	ix.tree = kdtree.New(pts, false)
}

func (ix *Index) Len() int {
	return ix.size
}

// Nearest returns the indexed entry closest to p whose ID is not exclude.
func (ix *Index) Nearest(p mgl64.Vec3, exclude uint64) (Entry, bool) {
	if ix == nil || ix.tree == nil || ix.size == 0 {
		return Entry{}, false
	}
	keep := kdtree.NewNKeeper(2)
	ix.tree.NearestSet(keep, entry{Pos: p})

	var (
		best  Entry
		bestD float64
		found bool
	)
	for _, cd := range keep.Heap {
		if cd.Comparable == nil {
			continue
		}
		e := cd.Comparable.(entry)
		if e.ID == exclude {
			continue
		}
		if !found || cd.Dist < bestD {
			best, bestD, found = Entry(e), cd.Dist, true
		}
	}
	return best, found
}

type entry Entry

func (e entry) Compare(c kdtree.Comparable, d kdtree.Dim) float64 {
	return e.Pos[d] - c.(entry).Pos[d]
}

func (e entry) Dims() int { return 3 }

// Distance is squared euclidean distance, as kdtree expects.
func (e entry) Distance(c kdtree.Comparable) float64 {
	d := e.Pos.Sub(c.(entry).Pos)
	return d.Dot(d)
}

type entries []entry

func (p entries) Index(i int) kdtree.Comparable { return p[i] }
func (p entries) Len() int                      { return len(p) }
func (p entries) Pivot(d kdtree.Dim) int        { return plane{Dim: d, entries: p}.Pivot() }
func (p entries) Slice(start, end int) kdtree.Interface {
	return p[start:end]
}

type plane struct {
	kdtree.Dim
	entries
}

func (p plane) Less(i, j int) bool {
	return p.entries[i].Pos[p.Dim] < p.entries[j].Pos[p.Dim]
}

func (p plane) Pivot() int {
	return kdtree.Partition(p, kdtree.MedianOfMedians(p))
}

func (p plane) Slice(start, end int) kdtree.SortSlicer {
	p.entries = p.entries[start:end]
	return p
}

func (p plane) Swap(i, j int) {
	p.entries[i], p.entries[j] = p.entries[j], p.entries[i]
}
