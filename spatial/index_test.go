package spatial

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func randomEntries(r *rand.Rand, n int, extent float64) []Entry {
	out := make([]Entry, n)
	for i := range out {
		out[i] = Entry{
			ID: uint64(i + 1),
			Pos: mgl64.Vec3{
				(r.Float64()*2 - 1) * extent,
				(r.Float64()*2 - 1) * extent,
				(r.Float64()*2 - 1) * extent,
			},
		}
	}
	return out
}

func bruteNearest(items []Entry, p mgl64.Vec3, exclude uint64) (Entry, bool) {
	var (
		best  Entry
		bestD float64
		found bool
	)
	for _, it := range items {
		if it.ID == exclude {
			continue
		}
		d := distSq(p, it.Pos)
		if !found || d < bestD {
			best, bestD, found = it, d, true
		}
	}
	return best, found
}

func TestIndexNearestMatchesBruteForce(t *testing.T) {
	r := rand.New(rand.NewPCG(1, 2))
	items := randomEntries(r, 2000, 80)

	ix := NewIndex()
	ix.Rebuild(items)
	require.Equal(t, len(items), ix.Len())

	for _, it := range items[:300] {
		got, ok := ix.Nearest(it.Pos, it.ID)
		require.True(t, ok)
		want, _ := bruteNearest(items, it.Pos, it.ID)
		assert.NotEqual(t, it.ID, got.ID, "query must not return itself")
		assert.InDelta(t, distSq(it.Pos, want.Pos), distSq(it.Pos, got.Pos), 1e-9)
	}
}

func TestIndexNearestArbitraryPoint(t *testing.T) {
	r := rand.New(rand.NewPCG(3, 4))
	items := randomEntries(r, 500, 20)
	ix := NewIndex()
	ix.Rebuild(items)

	for i := 0; i < 100; i++ {
		q := mgl64.Vec3{r.Float64() * 20, r.Float64() * 20, r.Float64() * 20}
		got, ok := ix.Nearest(q, 0)
		require.True(t, ok)
		want, _ := bruteNearest(items, q, 0)
		assert.InDelta(t, distSq(q, want.Pos), distSq(q, got.Pos), 1e-9)
	}
}

func TestIndexSmallSets(t *testing.T) {
	ix := NewIndex()
	_, ok := ix.Nearest(mgl64.Vec3{}, 0)
	assert.False(t, ok, "empty index")

	ix.Rebuild([]Entry{{ID: 7, Pos: mgl64.Vec3{1, 0, 0}}})
	_, ok = ix.Nearest(mgl64.Vec3{1, 0, 0}, 7)
	assert.False(t, ok, "only self indexed")

	got, ok := ix.Nearest(mgl64.Vec3{}, 0)
	require.True(t, ok)
	assert.Equal(t, uint64(7), got.ID)

	ix.Rebuild(nil)
	assert.Equal(t, 0, ix.Len())
	_, ok = ix.Nearest(mgl64.Vec3{}, 0)
	assert.False(t, ok)
}

func TestIndexRebuildCopiesInput(t *testing.T) {
	items := []Entry{
		{ID: 1, Pos: mgl64.Vec3{0, 0, 0}},
		{ID: 2, Pos: mgl64.Vec3{5, 0, 0}},
	}
	ix := NewIndex()
	ix.Rebuild(items)
	items[1].Pos = mgl64.Vec3{100, 0, 0}

	got, ok := ix.Nearest(mgl64.Vec3{}, 1)
	require.True(t, ok)
	assert.Equal(t, mgl64.Vec3{5, 0, 0}, got.Pos)
}

func BenchmarkIndexNearest(b *testing.B) {
	r := rand.New(rand.NewPCG(5, 6))
	items := randomEntries(r, 10001, 80)
	ix := NewIndex()
	ix.Rebuild(items)

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		it := items[i%len(items)]
		ix.Nearest(it.Pos, it.ID)
	}
}

func BenchmarkIndexRebuild(b *testing.B) {
	r := rand.New(rand.NewPCG(7, 8))
	items := randomEntries(r, 10001, 80)
	ix := NewIndex()

	b.ResetTimer()
	for i := 0; i < b.N; i++ {
		ix.Rebuild(items)
	}
}
