package common

import (
	"math"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func vecNear(t *testing.T, want, got mgl64.Vec3) {
	t.Helper()
	assert.InDelta(t, 0, want.Sub(got).Len(), 1e-6, "want %v got %v", want, got)
}

func TestLookRotationFacesDirection(t *testing.T) {
	dirs := []mgl64.Vec3{
		{0, 0, -1},
		{1, 0, 0},
		{0, 0, 1},
		{1, 2, 3},
		{0, 1, 0},
		{0, -5, 0},
	}
	for _, d := range dirs {
		q, ok := LookRotation(d, WorldUp)
		require.True(t, ok)
		vecNear(t, d.Normalize(), Forward(q))
		assert.InDelta(t, 1, q.Len(), 1e-9)
	}
}

func TestLookRotationKeepsUpright(t *testing.T) {
	q, ok := LookRotation(mgl64.Vec3{1, 0, 0}, WorldUp)
	require.True(t, ok)
	vecNear(t, WorldUp, q.Rotate(mgl64.Vec3{0, 1, 0}))
}

func TestLookRotationZeroDirection(t *testing.T) {
	_, ok := LookRotation(mgl64.Vec3{}, WorldUp)
	assert.False(t, ok)
}

func TestRotateTowardsBoundedStep(t *testing.T) {
	from := mgl64.QuatIdent()
	to := mgl64.QuatRotate(math.Pi/2, mgl64.Vec3{0, 1, 0})

	tests := []struct {
		name     string
		maxAngle float64
		want     float64
	}{
		{"partial", mgl64.DegToRad(20) * 0.1, mgl64.DegToRad(2)},
		{"exact", math.Pi / 2, math.Pi / 2},
		{"overshoot_clamps", math.Pi, math.Pi / 2},
		{"zero_budget", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := RotateTowards(from, to, tt.maxAngle)
			assert.InDelta(t, tt.want, AngleBetween(from, got), 1e-9)
			assert.LessOrEqual(t, AngleBetween(got, to), AngleBetween(from, to)+1e-12)
		})
	}
}

func TestRotateTowardsShortestArc(t *testing.T) {
	from := mgl64.QuatIdent()
	to := mgl64.QuatRotate(math.Pi/3, mgl64.Vec3{1, 0, 0}).Scale(-1)

	got := RotateTowards(from, to, 0.1)
	assert.InDelta(t, 0.1, AngleBetween(from, got), 1e-9)
	assert.InDelta(t, math.Pi/3-0.1, AngleBetween(got, to), 1e-9)
}

func TestRotateVectorTowards(t *testing.T) {
	from := mgl64.Vec3{0, 0, -1}
	to := mgl64.Vec3{1, 0, 0}

	rot, ok := RotateVectorTowards(from, to, 0.25)
	require.True(t, ok)
	assert.InDelta(t, 0.25, VectorAngle(from, rot.Rotate(from)), 1e-9)
	assert.Less(t, VectorAngle(rot.Rotate(from), to), VectorAngle(from, to))

	rot, ok = RotateVectorTowards(from, to, math.Pi)
	require.True(t, ok)
	vecNear(t, to, rot.Rotate(from))

	_, ok = RotateVectorTowards(from, from.Mul(-1), 0.25)
	assert.False(t, ok, "anti-parallel vectors have no rotation axis")
}

func TestLerpVec3(t *testing.T) {
	vecNear(t, mgl64.Vec3{5, 0, -5}, LerpVec3(mgl64.Vec3{0, 0, 0}, mgl64.Vec3{10, 0, -10}, 0.5))
	assert.Equal(t, 2.5, Lerp(0, 10, 0.25))
}
