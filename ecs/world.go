package ecs

import "github.com/milk9111/hungrypig/ecs/component"

// World owns entities, their components and the per-step event queue.
type World struct {
	entities entityStore
	stores   map[component.ComponentID]*sparseSet
	events   EventQueue
}

// NewWorld creates an empty ECS world.
func NewWorld() *World {
	return &World{stores: make(map[component.ComponentID]*sparseSet)}
}

// CreateEntity allocates a new entity.
func CreateEntity(w *World) Entity {
	if w == nil {
		return 0
	}
	return w.entities.create()
}

// DestroyEntity removes every component of e and frees its slot. It reports
// false when e was already dead.
func DestroyEntity(w *World, e Entity) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	for _, s := range w.stores {
		s.remove(e.id())
	}
	return w.entities.destroy(e)
}

// IsAlive reports whether an entity handle is valid.
func IsAlive(w *World, e Entity) bool {
	if w == nil {
		return false
	}
	return w.entities.isAlive(e)
}

// Entities returns every live entity in slot order.
func Entities(w *World) []Entity {
	if w == nil {
		return nil
	}
	out := make([]Entity, 0, w.entities.count)
	for i := range w.entities.gen {
		if e, ok := w.entities.handle(entityID(i + 1)); ok {
			out = append(out, e)
		}
	}
	return out
}

// Clear destroys every entity and drops queued events.
func Clear(w *World) {
	if w == nil {
		return
	}
	w.entities.reset()
	w.stores = make(map[component.ComponentID]*sparseSet)
	w.events.flush()
}

// Events returns the world event queue.
func (w *World) Events() *EventQueue {
	if w == nil {
		return nil
	}
	return &w.events
}

func (w *World) store(id component.ComponentID, create bool) *sparseSet {
	if w.stores == nil {
		w.stores = make(map[component.ComponentID]*sparseSet)
	}
	s, ok := w.stores[id]
	if !ok && create {
		s = &sparseSet{}
		w.stores[id] = s
	}
	return s
}

// Add attaches (or overwrites) a component value on e.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if w == nil || !w.entities.isAlive(e) {
		return component.ErrEntityNotAlive
	}
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return component.ErrNilComponent
	}
	w.store(kind.ID(), true).set(e.id(), value)
	return nil
}

// Get returns the component of kind attached to e.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	if w == nil || !w.entities.isAlive(e) {
		return nil, false
	}
	v, ok := w.store(kind.ID(), false).get(e.id()).(*T)
	return v, ok
}

// Has reports whether e carries a component of kind.
func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).has(e.id())
}

// Remove detaches the component of kind from e.
func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	if w == nil || !w.entities.isAlive(e) {
		return false
	}
	return w.store(kind.ID(), false).remove(e.id())
}
