package ecs

import (
	"runtime"

	"github.com/milk9111/spacebattle/ecs/component"
)

// Time is the simulation clock as seen by systems during one tick. Both values
// are in seconds and come from an external clock source.
type Time struct {
	Elapsed float64
	Delta   float64
}

// World owns entities, component tables, the entity hierarchy and the queues
// that systems use to defer structural changes to pass boundaries.
type World struct {
	entities  entityStore
	stores    map[component.ComponentID]store
	hierarchy hierarchy
	commands  CommandQueue
	events    EventQueue
	time      Time
	workers   int
	onDestroy []func(Entity)
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{
		stores:  make(map[component.ComponentID]store),
		workers: runtime.GOMAXPROCS(0),
	}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes e, its components and, recursively, its children.
// Destroying an entity that is already gone reports false.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	// detach compacts the parent's child slice, so walk a copy.
	for _, child := range Children(w, e) {
		DestroyEntity(w, child)
	}
	w.hierarchy.detach(e)
	for _, s := range w.stores {
		s.remove(e)
	}
	w.entities.destroy(e)
	for _, fn := range w.onDestroy {
		fn(e)
	}
	return true
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	w.entities.each(func(e Entity) { out = append(out, e) })
	return out
}

// Len returns the number of live entities.
func (w *World) Len() int {
	if w == nil {
		return 0
	}
	return w.entities.count
}

// OnDestroy registers a callback invoked after each entity removal.
func (w *World) OnDestroy(fn func(Entity)) {
	if w == nil || fn == nil {
		return
	}
	w.onDestroy = append(w.onDestroy, fn)
}

// SetTime is called by the clock owner before systems run.
func (w *World) SetTime(t Time) {
	w.time = t
}

func (w *World) Time() Time {
	return w.time
}

// SetWorkers bounds the fan-out used by parallel passes. Values below one
// fall back to GOMAXPROCS.
func (w *World) SetWorkers(n int) {
	if n < 1 {
		n = runtime.GOMAXPROCS(0)
	}
	w.workers = n
}

func (w *World) Workers() int {
	return w.workers
}

// Commands returns the deferred command queue.
func (w *World) Commands() *CommandQueue {
	return &w.commands
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	return &w.events
}

// Flush applies every deferred command, including commands queued by the
// commands themselves.
func (w *World) Flush() {
	for {
		cmds := w.commands.drain()
		if len(cmds) == 0 {
			return
		}
		for _, cmd := range cmds {
			cmd.apply(w)
		}
	}
}
