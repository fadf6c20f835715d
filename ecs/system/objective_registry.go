package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
	"github.com/milk9111/spacebattle/spatial"
)

// ObjectiveRegistrySystem refreshes the per-team objective positions from
// the objective entities' world poses.
type ObjectiveRegistrySystem struct {
	objectives *spatial.Objectives
}

func NewObjectiveRegistrySystem(objectives *spatial.Objectives) *ObjectiveRegistrySystem {
	return &ObjectiveRegistrySystem{objectives: objectives}
}

func (s *ObjectiveRegistrySystem) Update(w *ecs.World) {
	if s == nil || w == nil || s.objectives == nil {
		return
	}

	s.objectives.Reset()
	ecs.ForEach(w, component.ObjectiveComponent.Kind(), func(e ecs.Entity, o *component.Objective) {
		pose, ok := GlobalPose(w, e)
		if !ok {
			return
		}
		s.objectives.Add(o.Team, pose.Position)
	})
}
