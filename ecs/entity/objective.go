package entity

import (
	"fmt"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// NewObjective creates a point team agents steer toward. With a valid parent
// the position is local to it. A non-empty script drives the position every
// tick, anchored at pos.
func NewObjective(w *ecs.World, pos mgl64.Vec3, team component.Team, parent ecs.Entity, script string) (ecs.Entity, error) {
	entity := ecs.CreateEntity(w)

	if err := ecs.Add(w, entity, component.TransformComponent.Kind(), component.NewTransform(pos, mgl64.QuatIdent())); err != nil {
		return 0, fmt.Errorf("objective: add transform: %w", err)
	}
	if err := ecs.Add(w, entity, component.ObjectiveComponent.Kind(), &component.Objective{Team: team}); err != nil {
		return 0, fmt.Errorf("objective: add objective: %w", err)
	}
	if script != "" {
		if err := ecs.Add(w, entity, component.ObjectiveScriptComponent.Kind(), &component.ObjectiveScript{
			Path:   script,
			Anchor: pos,
		}); err != nil {
			return 0, fmt.Errorf("objective: add script: %w", err)
		}
	}
	if parent.Valid() {
		if err := ecs.SetParent(w, entity, parent); err != nil {
			return 0, fmt.Errorf("objective: set parent: %w", err)
		}
	}

	return entity, nil
}
