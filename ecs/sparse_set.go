package ecs

// store is the type-erased view of a component table used when an entity is
// destroyed and its components must be dropped from every table.
type store interface {
	remove(e Entity) bool
	has(e Entity) bool
	size() int
}

// sparseSet is a cache-friendly table of components keyed by entity slot.
// Dense arrays stay packed; removal swaps the last element into the hole.
type sparseSet[T any] struct {
	owners []Entity
	values []*T
	sparse []int32
}

func newSparseSet[T any]() *sparseSet[T] {
	return &sparseSet[T]{}
}

func (s *sparseSet[T]) index(e Entity) (int, bool) {
	id := int(e.id())
	if id <= 0 || id-1 >= len(s.sparse) {
		return 0, false
	}
	idx := int(s.sparse[id-1])
	if idx < 0 || idx >= len(s.owners) || s.owners[idx] != e {
		return 0, false
	}
	return idx, true
}

func (s *sparseSet[T]) has(e Entity) bool {
	_, ok := s.index(e)
	return ok
}

func (s *sparseSet[T]) get(e Entity) (*T, bool) {
	idx, ok := s.index(e)
	if !ok {
		return nil, false
	}
	return s.values[idx], true
}

func (s *sparseSet[T]) set(e Entity, v *T) {
	if idx, ok := s.index(e); ok {
		s.values[idx] = v
		return
	}
	id := int(e.id())
	for id-1 >= len(s.sparse) {
		s.sparse = append(s.sparse, -1)
	}
	s.owners = append(s.owners, e)
	s.values = append(s.values, v)
	s.sparse[id-1] = int32(len(s.owners) - 1)
}

func (s *sparseSet[T]) remove(e Entity) bool {
	idx, ok := s.index(e)
	if !ok {
		return false
	}
	last := len(s.owners) - 1
	moved := s.owners[last]

	s.owners[idx] = moved
	s.values[idx] = s.values[last]
	s.sparse[moved.id()-1] = int32(idx)

	s.values[last] = nil
	s.owners = s.owners[:last]
	s.values = s.values[:last]
	s.sparse[e.id()-1] = -1
	return true
}

func (s *sparseSet[T]) size() int {
	return len(s.owners)
}
