package ecs

import "github.com/milk9111/coderunner/ecs/component"

// Add attaches v to e under the handle's component kind, replacing any
// existing value.
func Add[T any](w *World, e Entity, h component.Handle[T], v *T) error {
	if w == nil || v == nil {
		return component.ErrNilComponent
	}
	if !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !h.Valid() {
		return component.ErrInvalidComponentKind
	}
	w.storeFor(h.ID()).Set(int(e.id()), v)
	return nil
}

// Get returns the component for e, or (nil, false).
func Get[T any](w *World, e Entity, h component.Handle[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v := w.stores[h.ID()].Get(int(e.id()))
	if v == nil {
		return nil, false
	}
	cast, ok := v.(*T)
	return cast, ok
}

// Has reports whether e carries the component.
func Has[T any](w *World, e Entity, h component.Handle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.stores[h.ID()].Has(int(e.id()))
}

// Remove detaches the component from e if present.
func Remove[T any](w *World, e Entity, h component.Handle[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	set := w.stores[h.ID()]
	if !set.Has(int(e.id())) {
		return false
	}
	set.Remove(int(e.id()))
	return true
}

// First returns the first live entity carrying the component.
func First[T any](w *World, h component.Handle[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	for _, id := range w.stores[h.ID()].IDs() {
		e := makeEntity(entityID(id), w.entities.gens[id-1])
		if w.entities.isAlive(e) {
			return e, true
		}
	}
	return 0, false
}

// ForEach invokes fn for every live entity carrying the component.
func ForEach[T any](w *World, h component.Handle[T], fn func(e Entity, c *T)) {
	if w == nil || fn == nil {
		return
	}
	set := w.stores[h.ID()]
	ids := append([]int(nil), set.IDs()...)
	for _, id := range ids {
		e := makeEntity(entityID(id), w.entities.gens[id-1])
		if !w.entities.isAlive(e) {
			continue
		}
		if c, ok := set.Get(id).(*T); ok && c != nil {
			fn(e, c)
		}
	}
}

// ForEach2 invokes fn for every live entity carrying both components.
func ForEach2[A, B any](w *World, ha component.Handle[A], hb component.Handle[B], fn func(e Entity, a *A, b *B)) {
	if w == nil || fn == nil {
		return
	}
	ForEach(w, ha, func(e Entity, a *A) {
		if b, ok := Get(w, e, hb); ok && b != nil {
			fn(e, a, b)
		}
	})
}
