package system

import (
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/stretchr/testify/require"
)

// clock advances simulation time in fixed steps.
type clock struct {
	now float64
	dt  float64
}

func (c *clock) step(w *ecs.World, s *ecs.Scheduler) {
	c.now += c.dt
	w.SetTime(ecs.Time{Elapsed: c.now, Delta: c.dt})
	s.Update(w)
}

func testTuning() *entity.Tuning {
	t := entity.DefaultTuning()
	t.RebuildInterval = 0
	t.GunPhase = component.GunPhaseNow
	return &t
}

func pose(pos mgl64.Vec3, rot mgl64.Quat) component.Transform {
	return *component.NewTransform(pos, rot)
}

func addShip(t *testing.T, w *ecs.World, tuning *entity.Tuning, pos mgl64.Vec3, team component.Team, opts entity.ShipOptions) ecs.Entity {
	t.Helper()
	e, err := entity.NewShip(w, pose(pos, mgl64.QuatIdent()), team, tuning, nil, opts)
	require.NoError(t, err)
	return e
}

func transformOf(t *testing.T, w *ecs.World, e ecs.Entity) *component.Transform {
	t.Helper()
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	require.True(t, ok, "entity %v has no transform", e)
	return tr
}
