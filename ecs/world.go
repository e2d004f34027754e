package ecs

import "github.com/milk9111/coderunner/ecs/component"

// System updates a world once per frame.
type System interface {
	Update(w *World)
}

// World owns entities, component stores, system order, and the frame clock.
type World struct {
	entities entityStore
	stores   map[component.ID]*SparseSet
	systems  []System
	events   EventQueue

	deltaMS float64
	elapsed float64
}

// NewWorld creates an empty world.
func NewWorld() *World {
	return &World{stores: map[component.ID]*SparseSet{}}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	return w.entities.create()
}

// DestroyEntity removes all components for e and frees the handle.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, set := range w.stores {
		set.Remove(int(e.id()))
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	return w != nil && w.entities.isAlive(e)
}

// EntityCount returns the number of live entities.
func EntityCount(w *World) int {
	if w == nil {
		return 0
	}
	return w.entities.count()
}

// AddSystem appends a system to the update order.
func (w *World) AddSystem(s System) {
	if s == nil {
		return
	}
	w.systems = append(w.systems, s)
}

// Update runs all systems once in registration order.
func (w *World) Update() {
	if w == nil {
		return
	}
	for _, s := range w.systems {
		if s != nil {
			s.Update(w)
		}
	}
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

// SetDelta records the wall-clock frame delta in milliseconds and advances
// the accumulated game time.
func (w *World) SetDelta(deltaMS float64) {
	if w == nil || deltaMS < 0 {
		return
	}
	w.deltaMS = deltaMS
	w.elapsed += deltaMS / 1000.0
}

// DeltaMS returns the current frame delta in milliseconds.
func (w *World) DeltaMS() float64 {
	if w == nil {
		return 0
	}
	return w.deltaMS
}

// Time returns accumulated game time in seconds.
func (w *World) Time() float64 {
	if w == nil {
		return 0
	}
	return w.elapsed
}

// Query returns all live entities that carry every listed component kind.
func (w *World) Query(kinds ...component.ID) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}

	// iterate the smallest store
	base := w.stores[kinds[0]]
	for _, k := range kinds[1:] {
		set := w.stores[k]
		if set.Len() < base.Len() {
			base = set
		}
	}
	if base == nil {
		return nil
	}

	out := make([]Entity, 0, base.Len())
	for _, id := range base.IDs() {
		ok := true
		for _, k := range kinds {
			if !w.stores[k].Has(id) {
				ok = false
				break
			}
		}
		if !ok {
			continue
		}
		e := makeEntity(entityID(id), w.entities.gens[id-1])
		if w.entities.isAlive(e) {
			out = append(out, e)
		}
	}
	return out
}

func (w *World) storeFor(id component.ID) *SparseSet {
	set, ok := w.stores[id]
	if !ok {
		set = &SparseSet{}
		w.stores[id] = set
	}
	return set
}
