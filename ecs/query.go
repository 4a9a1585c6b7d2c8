package ecs

import "github.com/milk9111/shooter/ecs/component"

// The ForEach family visits every live entity holding all of the given
// kinds. Iteration runs over a snapshot of the first store, so callbacks may
// add, remove or destroy freely; entities destroyed mid-iteration are skipped.

func ForEach[A any](w *World, a component.ComponentKind[A], fn func(Entity, *A)) {
	if w == nil || fn == nil {
		return
	}
	for _, e := range w.store(a.ID(), false).snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		fn(e, va)
	}
}

func ForEach2[A, B any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], fn func(Entity, *A, *B)) {
	if w == nil || fn == nil || w.store(b.ID(), false) == nil {
		return
	}
	for _, e := range w.store(a.ID(), false).snapshot() {
		va, ok := Get(w, e, a)
		if !ok {
			continue
		}
		vb, ok := Get(w, e, b)
		if !ok {
			continue
		}
		fn(e, va, vb)
	}
}

func ForEach3[A, B, C any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], fn func(Entity, *A, *B, *C)) {
	if w == nil || fn == nil || w.store(c.ID(), false) == nil {
		return
	}
	ForEach2(w, a, b, func(e Entity, va *A, vb *B) {
		if vc, ok := Get(w, e, c); ok {
			fn(e, va, vb, vc)
		}
	})
}

func ForEach4[A, B, C, D any](w *World, a component.ComponentKind[A], b component.ComponentKind[B], c component.ComponentKind[C], d component.ComponentKind[D], fn func(Entity, *A, *B, *C, *D)) {
	if w == nil || fn == nil || w.store(d.ID(), false) == nil {
		return
	}
	ForEach3(w, a, b, c, func(e Entity, va *A, vb *B, vc *C) {
		if vd, ok := Get(w, e, d); ok {
			fn(e, va, vb, vc, vd)
		}
	})
}
