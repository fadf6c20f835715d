package entity

import (
	"fmt"

	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// NewLaser creates a projectile at pose that expires LaserLifetime seconds
// from now regardless of hits.
func NewLaser(w *ecs.World, pose component.Transform, team component.Team, t *Tuning) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), component.NewTransform(pose.Position, pose.Rotation)); err != nil {
		return 0, fmt.Errorf("laser: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.TeamComponent.Kind(), &team); err != nil {
		return 0, fmt.Errorf("laser: add team: %w", err)
	}
	if err := ecs.Add(w, entity, component.LaserComponent.Kind(), &component.Laser{
		Speed:     t.LaserSpeed,
		RayLength: t.RayLength,
		Team:      team,
	}); err != nil {
		return 0, fmt.Errorf("laser: add laser: %w", err)
	}
	if err := ecs.Add(w, entity, component.DespawnAfterComponent.Kind(), component.NewDespawnAfter(w.Time().Elapsed, t.LaserLifetime)); err != nil {
		return 0, fmt.Errorf("laser: add lifetime: %w", err)
	}

	return entity, nil
}
