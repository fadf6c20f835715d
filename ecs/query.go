package ecs

import "github.com/milk9111/spacebattle/ecs/component"

// Row1, Row2 and Row3 are snapshot rows returned by queries. The component
// pointers alias live storage, so writes through them are visible to the
// world; the row slice itself is a copy and survives structural changes.
type Row1[A any] struct {
	Entity Entity
	A      *A
}

type Row2[A, B any] struct {
	Entity Entity
	A      *A
	B      *B
}

type Row3[A, B, C any] struct {
	Entity Entity
	A      *A
	B      *B
	C      *C
}

func Query[A any](w *World, ka component.ComponentKind[A]) []Row1[A] {
	if w == nil {
		return nil
	}
	sa := storeFor(w, ka, false)
	if sa == nil {
		return nil
	}
	out := make([]Row1[A], 0, sa.size())
	for i, e := range sa.owners {
		out = append(out, Row1[A]{Entity: e, A: sa.values[i]})
	}
	return out
}

func Query2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B]) []Row2[A, B] {
	if w == nil {
		return nil
	}
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	if sa == nil || sb == nil {
		return nil
	}
	out := make([]Row2[A, B], 0, min(sa.size(), sb.size()))
	// iterate the first table; dense order of the primary kind is stable
	for i, e := range sa.owners {
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		out = append(out, Row2[A, B]{Entity: e, A: sa.values[i], B: b})
	}
	return out
}

func Query3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C]) []Row3[A, B, C] {
	if w == nil {
		return nil
	}
	sa := storeFor(w, ka, false)
	sb := storeFor(w, kb, false)
	sc := storeFor(w, kc, false)
	if sa == nil || sb == nil || sc == nil {
		return nil
	}
	out := make([]Row3[A, B, C], 0, min(sa.size(), sb.size(), sc.size()))
	for i, e := range sa.owners {
		b, ok := sb.get(e)
		if !ok {
			continue
		}
		c, ok := sc.get(e)
		if !ok {
			continue
		}
		out = append(out, Row3[A, B, C]{Entity: e, A: sa.values[i], B: b, C: c})
	}
	return out
}

// ForEach visits every entity carrying ka. Structural changes made inside fn
// do not disturb the iteration; entities destroyed mid-walk are skipped.
func ForEach[A any](w *World, ka component.ComponentKind[A], fn func(Entity, *A)) {
	for _, r := range Query(w, ka) {
		if IsAlive(w, r.Entity) {
			fn(r.Entity, r.A)
		}
	}
}

func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	for _, r := range Query2(w, ka, kb) {
		if IsAlive(w, r.Entity) {
			fn(r.Entity, r.A, r.B)
		}
	}
}

func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	for _, r := range Query3(w, ka, kb, kc) {
		if IsAlive(w, r.Entity) {
			fn(r.Entity, r.A, r.B, r.C)
		}
	}
}
