package spatial

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs/component"
)

// Sphere is a collider registered for raycasts.
type Sphere struct {
	ID     uint64
	Center mgl64.Vec3
	Radius float64
	Team   component.Team
}

// Hit is the closest sphere crossed by a raycast and the distance along the
// ray at which it was entered. A ray starting inside a sphere hits at 0.
type Hit struct {
	Sphere
	Distance float64
}

type cellKey [3]int32

// Grid buckets spheres by the cell holding their centre. Queries widen their
// search box by the largest radius seen, so each sphere lives in one cell
// and concurrent reads need no bookkeeping.
type Grid struct {
	cell      float64
	cells     map[cellKey][]Sphere
	maxRadius float64
	count     int
}

func NewGrid(cellSize float64) *Grid {
	if cellSize <= 0 {
		cellSize = 4
	}
	return &Grid{cell: cellSize, cells: make(map[cellKey][]Sphere)}
}

// Reset empties the grid while keeping bucket capacity.
func (g *Grid) Reset() {
	for k, v := range g.cells {
		g.cells[k] = v[:0]
	}
	g.maxRadius = 0
	g.count = 0
}

func (g *Grid) Insert(s Sphere) {
	k := g.key(s.Center)
	g.cells[k] = append(g.cells[k], s)
	g.maxRadius = math.Max(g.maxRadius, s.Radius)
	g.count++
}

func (g *Grid) Len() int {
	return g.count
}

func (g *Grid) key(p mgl64.Vec3) cellKey {
	return cellKey{
		int32(math.Floor(p[0] / g.cell)),
		int32(math.Floor(p[1] / g.cell)),
		int32(math.Floor(p[2] / g.cell)),
	}
}

// Raycast finds the nearest sphere hit by the segment origin+dir*[0,length].
// dir must be unit length. Spheres for which skip returns true are ignored.
func (g *Grid) Raycast(origin, dir mgl64.Vec3, length float64, skip func(Sphere) bool) (Hit, bool) {
	if g.count == 0 || length < 0 {
		return Hit{}, false
	}
	end := origin.Add(dir.Mul(length))
	lo := g.key(mgl64.Vec3{
		math.Min(origin[0], end[0]) - g.maxRadius,
		math.Min(origin[1], end[1]) - g.maxRadius,
		math.Min(origin[2], end[2]) - g.maxRadius,
	})
	hi := g.key(mgl64.Vec3{
		math.Max(origin[0], end[0]) + g.maxRadius,
		math.Max(origin[1], end[1]) + g.maxRadius,
		math.Max(origin[2], end[2]) + g.maxRadius,
	})

	var (
		best  Hit
		found bool
	)
	for x := lo[0]; x <= hi[0]; x++ {
		for y := lo[1]; y <= hi[1]; y++ {
			for z := lo[2]; z <= hi[2]; z++ {
				for _, s := range g.cells[cellKey{x, y, z}] {
					if skip != nil && skip(s) {
						continue
					}
					t, ok := segmentSphere(origin, dir, length, s.Center, s.Radius)
					if !ok {
						continue
					}
					if !found || t < best.Distance || (t == best.Distance && s.ID < best.ID) {
						best, found = Hit{Sphere: s, Distance: t}, true
					}
				}
			}
		}
	}
	return best, found
}

func segmentSphere(origin, dir mgl64.Vec3, length float64, center mgl64.Vec3, radius float64) (float64, bool) {
	m := origin.Sub(center)
	c := m.Dot(m) - radius*radius
	if c <= 0 {
		return 0, true
	}
	b := m.Dot(dir)
	if b > 0 {
		return 0, false
	}
	disc := b*b - c
	if disc < 0 {
		return 0, false
	}
	t := -b - math.Sqrt(disc)
	if t > length {
		return 0, false
	}
	return t, true
}
