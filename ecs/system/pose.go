package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// GlobalPose composes e's transform with those of its ancestors. It only
// reads the world and is safe to call from parallel passes.
func GlobalPose(w *ecs.World, e ecs.Entity) (component.Transform, bool) {
	tr, ok := ecs.Get(w, e, component.TransformComponent.Kind())
	if !ok {
		return component.Transform{}, false
	}
	pose := *tr
	for p, hasParent := ecs.Parent(w, e); hasParent; p, hasParent = ecs.Parent(w, p) {
		parent, ok := ecs.Get(w, p, component.TransformComponent.Kind())
		if !ok {
			continue
		}
		pose = parent.Mul(pose)
	}
	return pose, true
}

// landed reports whether no ancestor of e is still flying in.
func landed(w *ecs.World, e ecs.Entity) bool {
	for p, hasParent := ecs.Parent(w, e); hasParent; p, hasParent = ecs.Parent(w, p) {
		if fly, ok := ecs.Get(w, p, component.FlyInComponent.Kind()); ok && !fly.Arrived {
			return false
		}
	}
	return true
}
