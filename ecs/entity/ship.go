package entity

import (
	"fmt"
	"math/rand/v2"

	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// ShipOptions selects the optional capabilities of a new ship.
type ShipOptions struct {
	Armed bool
	Avoid bool
}

func NewShip(w *ecs.World, pose component.Transform, team component.Team, t *Tuning, rng *rand.Rand, opts ShipOptions) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), component.NewTransform(pose.Position, pose.Rotation)); err != nil {
		return 0, fmt.Errorf("ship: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.TeamComponent.Kind(), &team); err != nil {
		return 0, fmt.Errorf("ship: add team: %w", err)
	}
	if err := ecs.Add(w, entity, component.ShipComponent.Kind(), &component.Ship{
		Speed:    t.ShipSpeed,
		TurnRate: t.TurnRate,
	}); err != nil {
		return 0, fmt.Errorf("ship: add ship: %w", err)
	}
	if err := ecs.Add(w, entity, component.ColliderComponent.Kind(), &component.Collider{Radius: t.ColliderRadius}); err != nil {
		return 0, fmt.Errorf("ship: add collider: %w", err)
	}

	if opts.Avoid {
		if err := ecs.Add(w, entity, component.AvoiderComponent.Kind(), &component.Avoider{}); err != nil {
			return 0, fmt.Errorf("ship: add avoider: %w", err)
		}
	}

	if opts.Armed {
		gun := NewGun(w.Time().Elapsed, t.GunCooldown, t.GunPhase, rng)
		if err := ecs.Add(w, entity, component.GunComponent.Kind(), gun); err != nil {
			return 0, fmt.Errorf("ship: add gun: %w", err)
		}
	}

	return entity, nil
}

// NewGun seeds LastFired according to phase. The random phase needs rng and
// falls back to now without one.
func NewGun(now, cooldown float64, phase component.GunPhase, rng *rand.Rand) *component.Gun {
	last := now
	if phase == component.GunPhaseRandom && rng != nil {
		last = now - 5*rng.Float64()
	}
	return &component.Gun{LastFired: last, Cooldown: cooldown}
}
