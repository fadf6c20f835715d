package entity

import (
	"fmt"
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

const (
	flyInDistance = 2000.0
	flyInStart    = 0.3
	flyInEnd      = 1.2
)

type CapitalShipOptions struct {
	FlyIn bool
	// ObjectiveFor lists the teams that steer toward this ship.
	ObjectiveFor []component.Team
	SpawnerMax   int
	SpawnerDelay float64
	Ships        ShipOptions
}

// NewCapitalShip creates a carrier at pose with its launch bays as child
// spawners. With FlyIn it starts far out along its forward axis and arrives
// at pose 1.2 s after creation.
func NewCapitalShip(w *ecs.World, pose component.Transform, team component.Team, opts CapitalShipOptions) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)
	now := w.Time().Elapsed

	start := pose
	if opts.FlyIn {
		start.Position = pose.Position.Add(pose.Forward().Mul(flyInDistance))
		if err := ecs.Add(w, entity, component.FlyInComponent.Kind(), &component.FlyIn{
			From:    start.Position,
			To:      pose.Position,
			StartAt: now + flyInStart,
			EndAt:   now + flyInEnd,
		}); err != nil {
			return 0, fmt.Errorf("capital ship: add fly in: %w", err)
		}
	}

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), component.NewTransform(start.Position, start.Rotation)); err != nil {
		return 0, fmt.Errorf("capital ship: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.CapitalShipComponent.Kind(), &component.CapitalShip{Team: team}); err != nil {
		return 0, fmt.Errorf("capital ship: add capital ship: %w", err)
	}
	if err := ecs.Add(w, entity, component.TeamComponent.Kind(), &team); err != nil {
		return 0, fmt.Errorf("capital ship: add team: %w", err)
	}

	for i, bay := range LaunchBays() {
		if _, err := NewSpawner(w, bay, component.Spawner{
			Max:   opts.SpawnerMax,
			Delay: opts.SpawnerDelay,
			Team:  team,
			Armed: opts.Ships.Armed,
			Avoid: opts.Ships.Avoid,
		}, entity); err != nil {
			return 0, fmt.Errorf("capital ship: launch bay %d: %w", i, err)
		}
	}

	for _, enemy := range opts.ObjectiveFor {
		if _, err := NewObjective(w, mgl64.Vec3{}, enemy, entity, ""); err != nil {
			return 0, fmt.Errorf("capital ship: objective for %s: %w", enemy, err)
		}
	}

	return entity, nil
}

// LaunchBays returns the ship-local poses of a carrier's 28 spawners: two
// decks on each flank, seven bays per deck, each bay facing outboard.
func LaunchBays() []component.Transform {
	bays := make([]component.Transform, 0, 28)
	for _, side := range []float64{-1, 1} {
		rot := mgl64.QuatRotate(-side*math.Pi/2, mgl64.Vec3{0, 1, 0})
		for _, y := range []float64{-3.75, 3.75} {
			for z := -2; z <= 4; z++ {
				pos := mgl64.Vec3{4 * side, y, float64(z)*4 - 24}
				bays = append(bays, *component.NewTransform(pos, rot))
			}
		}
	}
	return bays
}
