package entity

import (
	"fmt"

	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// NewSpawner creates a ship factory at pose, local to parent when parent is
// valid. Counters in spawner are reset.
func NewSpawner(w *ecs.World, pose component.Transform, spawner component.Spawner, parent ecs.Entity) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	spawner.Spawned = 0
	spawner.HasSpawn = false
	spawner.LastSpawn = 0

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), component.NewTransform(pose.Position, pose.Rotation)); err != nil {
		return 0, fmt.Errorf("spawner: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.SpawnerComponent.Kind(), &spawner); err != nil {
		return 0, fmt.Errorf("spawner: add spawner: %w", err)
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, entity, parent); err != nil {
			return 0, fmt.Errorf("spawner: set parent: %w", err)
		}
	}

	return entity, nil
}
