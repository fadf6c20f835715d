package system

import (
	"github.com/milk9111/spacebattle/ecs"
	"github.com/milk9111/spacebattle/ecs/component"
)

// LifetimeSystem despawns entities, with their children, once simulation
// time is strictly past their DespawnAfter timestamp.
type LifetimeSystem struct{}

func NewLifetimeSystem() *LifetimeSystem {
	return &LifetimeSystem{}
}

func (s *LifetimeSystem) Update(w *ecs.World) {
	if w == nil {
		return
	}

	now := w.Time().Elapsed
	ecs.ForEach(w, component.DespawnAfterComponent.Kind(), func(e ecs.Entity, d *component.DespawnAfter) {
		if now <= d.At {
			return
		}
		w.Commands().Defer(func(w *ecs.World) {
			if ecs.DestroyEntity(w, e) {
				w.Events().Push(ecs.Event{Type: EventEntityExpired, Data: e})
			}
		})
	})
}
