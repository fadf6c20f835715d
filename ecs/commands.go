package ecs

import "sync"

type command struct {
	despawn Entity
	fn      func(w *World)
}

func (c command) apply(w *World) {
	if c.fn != nil {
		c.fn(w)
		return
	}
	// first writer wins: a second despawn of the same entity is a no-op
	DestroyEntity(w, c.despawn)
}

// CommandQueue buffers structural changes requested while a pass iterates.
// It is safe for concurrent use by the workers of a parallel pass; the queue
// is applied by World.Flush at the next pass boundary, in submission order.
type CommandQueue struct {
	mu    sync.Mutex
	items []command
}

// Defer queues fn to run against the world at the next flush.
func (q *CommandQueue) Defer(fn func(w *World)) {
	if fn == nil {
		return
	}
	q.mu.Lock()
	q.items = append(q.items, command{fn: fn})
	q.mu.Unlock()
}

// Despawn queues the recursive removal of e.
func (q *CommandQueue) Despawn(e Entity) {
	q.mu.Lock()
	q.items = append(q.items, command{despawn: e})
	q.mu.Unlock()
}

func (q *CommandQueue) Len() int {
	q.mu.Lock()
	defer q.mu.Unlock()
	return len(q.items)
}

func (q *CommandQueue) drain() []command {
	q.mu.Lock()
	defer q.mu.Unlock()
	out := q.items
	q.items = nil
	return out
}
