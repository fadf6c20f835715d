package system

import (
	"math/rand/v2"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/ecs/entity"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func spawnerScheduler(tuning *entity.Tuning, stats *StatsSystem) *ecs.Scheduler {
	return ecs.NewScheduler(
		NewFlyInSystem(zerolog.Nop()),
		NewSpawnerSystem(tuning, rand.New(rand.NewPCG(1, 2)), zerolog.Nop()),
		stats,
	)
}

func TestSpawnerQuota(t *testing.T) {
	tuning := testTuning()
	w := ecs.NewWorld()
	sp, err := entity.NewSpawner(w, pose(mgl64.Vec3{1, 0, 0}, mgl64.QuatIdent()), component.Spawner{
		Max:   2,
		Delay: 0.1,
		Team:  component.TeamGreen,
		Armed: true,
	}, 0)
	require.NoError(t, err)

	stats := NewStatsSystem(nil)
	sched := spawnerScheduler(tuning, stats)
	c := &clock{dt: 1.0 / 60}
	for i := 0; i < 60; i++ {
		c.step(w, sched)
	}

	assert.Equal(t, 2, ecs.Count(w, component.ShipComponent.Kind()))
	assert.Equal(t, 2, ecs.Count(w, component.GunComponent.Kind()))
	assert.Equal(t, int64(2), stats.Totals().Spawned)

	state, ok := ecs.Get(w, sp, component.SpawnerComponent.Kind())
	require.True(t, ok)
	assert.Equal(t, 2, state.Spawned)
	assert.True(t, state.Exhausted())

	for i := 0; i < 600; i++ {
		c.step(w, sched)
	}
	assert.Equal(t, 2, ecs.Count(w, component.ShipComponent.Kind()), "exhaustion is permanent")
	assert.Equal(t, 2, state.Spawned)

	ecs.ForEach2(w, component.ShipComponent.Kind(), component.TeamComponent.Kind(), func(e ecs.Entity, _ *component.Ship, team *component.Team) {
		assert.Equal(t, component.TeamGreen, *team)
		assert.Equal(t, mgl64.Vec3{1, 0, 0}, transformOf(t, w, e).Position)
	})
}

func TestSpawnerDelay(t *testing.T) {
	tests := []struct {
		name string
		sp   component.Spawner
		now  float64
		want bool
	}{
		{"never_spawned_before_delay", component.Spawner{Delay: 0.5}, 0.5, false},
		{"never_spawned_after_delay", component.Spawner{Delay: 0.5}, 0.51, true},
		{"since_last", component.Spawner{Delay: 0.5, HasSpawn: true, LastSpawn: 2}, 2.4, false},
		{"since_last_elapsed", component.Spawner{Delay: 0.5, HasSpawn: true, LastSpawn: 2}, 2.6, true},
		{"exhausted", component.Spawner{Max: 1, Spawned: 1, Delay: 0.5}, 10, false},
		{"unlimited", component.Spawner{Spawned: 1000, Delay: 0.5, HasSpawn: true, LastSpawn: 1}, 10, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, SpawnerReady(&tt.sp, tt.now))
		})
	}
}

func TestSpawnerUsesGlobalPose(t *testing.T) {
	tuning := testTuning()
	w := ecs.NewWorld()
	parent := ecs.CreateEntity(w)
	parentRot := mgl64.QuatRotate(mgl64.DegToRad(90), mgl64.Vec3{0, 1, 0})
	require.NoError(t, ecs.Add(w, parent, component.TransformComponent.Kind(), component.NewTransform(mgl64.Vec3{10, 0, 0}, parentRot)))

	_, err := entity.NewSpawner(w, pose(mgl64.Vec3{0, 0, -2}, mgl64.QuatIdent()), component.Spawner{Max: 1, Team: component.TeamRed}, parent)
	require.NoError(t, err)

	sched := spawnerScheduler(tuning, NewStatsSystem(nil))
	(&clock{dt: 0.1}).step(w, sched)

	ships := ecs.Query2(w, component.ShipComponent.Kind(), component.TransformComponent.Kind())
	require.Len(t, ships, 1)
	// a quarter turn left maps local -Z onto world -X
	assert.InDelta(t, 0, ships[0].B.Position.Sub(mgl64.Vec3{8, 0, 0}).Len(), 1e-9)
	assert.InDelta(t, 0, ships[0].B.Forward().Sub(mgl64.Vec3{-1, 0, 0}).Len(), 1e-9)
	_, parented := ecs.Parent(w, ships[0].Entity)
	assert.False(t, parented, "spawned ships are free agents")
}

func TestCapitalShipFlyIn(t *testing.T) {
	tuning := testTuning()
	w := ecs.NewWorld()
	anchor := mgl64.Vec3{0, 0, 60}
	carrier, err := entity.NewCapitalShip(w, pose(anchor, mgl64.QuatIdent()), component.TeamRed, entity.CapitalShipOptions{
		FlyIn:        true,
		SpawnerMax:   200,
		SpawnerDelay: 0.2,
	})
	require.NoError(t, err)
	fly, ok := ecs.Get(w, carrier, component.FlyInComponent.Kind())
	require.True(t, ok)

	stats := NewStatsSystem(nil)
	sched := spawnerScheduler(tuning, stats)
	c := &clock{dt: 0.05}

	for c.now+c.dt < 0.3 {
		c.step(w, sched)
		assert.Equal(t, fly.From, transformOf(t, w, carrier).Position, "t=%v", c.now)
	}
	for c.now+c.dt <= 1.1 {
		c.step(w, sched)
		assert.Zero(t, ecs.Count(w, component.ShipComponent.Kind()), "bays stay closed during fly-in")
	}
	mid := FlyInProgress(fly, 0.75)
	assert.InDelta(t, 0.5, mid, 1e-12)

	for c.now < 1.3 {
		c.step(w, sched)
	}
	assert.True(t, fly.Arrived)
	assert.Equal(t, anchor, transformOf(t, w, carrier).Position)
	assert.Equal(t, 28, ecs.Count(w, component.ShipComponent.Kind()), "every bay launches once it lands")

	require.True(t, ecs.DestroyEntity(w, carrier))
	assert.Zero(t, ecs.Count(w, component.SpawnerComponent.Kind()))
	assert.Equal(t, 28, ecs.Count(w, component.ShipComponent.Kind()), "launched ships outlive their carrier")
	assert.Zero(t, ecs.Count(w, component.ObjectiveComponent.Kind()))

	for i := 0; i < 20; i++ {
		c.step(w, sched)
	}
	assert.Equal(t, 28, ecs.Count(w, component.ShipComponent.Kind()), "no bay outlives its carrier")
	assert.Equal(t, int64(28), stats.Totals().Spawned)
}

func TestFlyInProgressClamps(t *testing.T) {
	fly := &component.FlyIn{StartAt: 0.25, EndAt: 1.25}
	assert.Equal(t, 0.0, FlyInProgress(fly, 0))
	assert.Equal(t, 0.0, FlyInProgress(fly, 0.25))
	assert.Equal(t, 0.5, FlyInProgress(fly, 0.75))
	assert.Equal(t, 1.0, FlyInProgress(fly, 1.25))
	assert.Equal(t, 1.0, FlyInProgress(fly, 100))

	instant := &component.FlyIn{StartAt: 1, EndAt: 1}
	assert.Equal(t, 0.0, FlyInProgress(instant, 0.5))
	assert.Equal(t, 1.0, FlyInProgress(instant, 1))
}
