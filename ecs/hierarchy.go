package ecs

import "errors"

var ErrHierarchyCycle = errors.New("ecs: parent would become its own descendant")

type hierarchy struct {
	parent   map[Entity]Entity
	children map[Entity][]Entity
}

func (h *hierarchy) detach(e Entity) {
	if p, ok := h.parent[e]; ok {
		siblings := h.children[p]
		for i, c := range siblings {
			if c == e {
				siblings = append(siblings[:i], siblings[i+1:]...)
				break
			}
		}
		if len(siblings) == 0 {
			delete(h.children, p)
		} else {
			h.children[p] = siblings
		}
		delete(h.parent, e)
	}
	delete(h.children, e)
}

// SetParent attaches child under parent. A child is destroyed together with
// its parent and its pose is expressed relative to the parent's.
func SetParent(w *World, child, parent Entity) error {
	if !IsAlive(w, child) || !IsAlive(w, parent) {
		return errors.New("ecs: set parent: entity not alive")
	}
	for p, ok := parent, true; ok; p, ok = w.hierarchy.parent[p] {
		if p == child {
			return ErrHierarchyCycle
		}
	}
	if w.hierarchy.parent == nil {
		w.hierarchy.parent = make(map[Entity]Entity)
		w.hierarchy.children = make(map[Entity][]Entity)
	}
	if _, ok := w.hierarchy.parent[child]; ok {
		kids := w.hierarchy.children[child]
		w.hierarchy.detach(child)
		if len(kids) > 0 {
			w.hierarchy.children[child] = kids
		}
	}
	w.hierarchy.parent[child] = parent
	w.hierarchy.children[parent] = append(w.hierarchy.children[parent], child)
	return nil
}

func Parent(w *World, e Entity) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	p, ok := w.hierarchy.parent[e]
	return p, ok
}

func Children(w *World, e Entity) []Entity {
	if w == nil {
		return nil
	}
	return append([]Entity(nil), w.hierarchy.children[e]...)
}
