package ecs

import "github.com/milk9111/hungrypig/ecs/component"

// First returns the live entity with the lowest slot id carrying kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	var best Entity
	found := false
	for _, id := range s.ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		if !found || e.id() < best.id() {
			best = e
			found = true
		}
	}
	return best, found
}

// Count returns how many entities carry kind.
func Count[T any](w *World, kind component.ComponentKind[T]) int {
	if w == nil {
		return 0
	}
	return w.store(kind.ID(), false).len()
}

// ForEach visits every entity carrying kind. The callback may add, remove or
// destroy entities; entities destroyed mid-iteration are skipped.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(Entity, *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	for _, id := range s.ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		v, ok := s.get(id).(*T)
		if !ok {
			continue
		}
		fn(e, v)
	}
}

// ForEach2 visits entities carrying both kinds, iterating the smaller store.
func ForEach2[A, B any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	if sa == nil || sb == nil {
		return
	}
	for _, id := range smallest(sa, sb).ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id).(*A)
		b, okB := sb.get(id).(*B)
		if !okA || !okB {
			continue
		}
		fn(e, a, b)
	}
}

// ForEach3 visits entities carrying all three kinds.
func ForEach3[A, B, C any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	sc := w.store(kc.ID(), false)
	if sa == nil || sb == nil || sc == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc).ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id).(*A)
		b, okB := sb.get(id).(*B)
		c, okC := sc.get(id).(*C)
		if !okA || !okB || !okC {
			continue
		}
		fn(e, a, b, c)
	}
}

// ForEach4 visits entities carrying all four kinds.
func ForEach4[A, B, C, D any](w *World, ka component.ComponentKind[A], kb component.ComponentKind[B], kc component.ComponentKind[C], kd component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil {
		return
	}
	sa := w.store(ka.ID(), false)
	sb := w.store(kb.ID(), false)
	sc := w.store(kc.ID(), false)
	sd := w.store(kd.ID(), false)
	if sa == nil || sb == nil || sc == nil || sd == nil {
		return
	}
	for _, id := range smallest(sa, sb, sc, sd).ids() {
		e, ok := w.entities.handle(id)
		if !ok {
			continue
		}
		a, okA := sa.get(id).(*A)
		b, okB := sb.get(id).(*B)
		c, okC := sc.get(id).(*C)
		d, okD := sd.get(id).(*D)
		if !okA || !okB || !okC || !okD {
			continue
		}
		fn(e, a, b, c, d)
	}
}

func smallest(sets ...*sparseSet) *sparseSet {
	best := sets[0]
	for _, s := range sets[1:] {
		if s.len() < best.len() {
			best = s
		}
	}
	return best
}
