package ecs

import (
	"fmt"

	"github.com/milk9111/boxing/ecs/component"
)

// Add stores value as e's component of the given kind, replacing any previous one.
func Add[T any](w *World, e Entity, kind component.ComponentKind[T], value *T) error {
	if !kind.Valid() {
		return component.ErrInvalidComponentKind
	}
	if value == nil {
		return fmt.Errorf("add %s to %s: %w", kind.Name(), e, component.ErrNilComponent)
	}
	if err := w.addComponent(e, kind.ID(), value); err != nil {
		return fmt.Errorf("add %s to %s: %w", kind.Name(), e, err)
	}
	return nil
}

func Remove[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	return w.removeComponent(e, kind.ID())
}

func Has[T any](w *World, e Entity, kind component.ComponentKind[T]) bool {
	_, ok := w.getComponent(e, kind.ID())
	return ok
}

// Get returns a pointer to e's component. Mutations through the pointer are
// visible to every later reader in the same world.
func Get[T any](w *World, e Entity, kind component.ComponentKind[T]) (*T, bool) {
	value, ok := w.getComponent(e, kind.ID())
	if !ok {
		return nil, false
	}
	cast, ok := value.(*T)
	if !ok {
		return nil, false
	}
	return cast, true
}

// ForEach calls fn for every entity holding a component of kind, in storage order.
func ForEach[T any](w *World, kind component.ComponentKind[T], fn func(e Entity, value *T)) {
	if w == nil || fn == nil {
		return
	}
	s := w.store(kind.ID(), false)
	if s == nil {
		return
	}
	// snapshot ids so fn may add or remove components
	ids := append([]entityID(nil), s.denseEntities...)
	for _, id := range ids {
		v, ok := s.Get(id).(*T)
		if !ok {
			continue
		}
		fn(w.entities.handle(id), v)
	}
}

// First returns the first entity holding a component of kind.
func First[T any](w *World, kind component.ComponentKind[T]) (Entity, bool) {
	if w == nil {
		return 0, false
	}
	s := w.store(kind.ID(), false)
	if s == nil || s.Len() == 0 {
		return 0, false
	}
	return w.entities.handle(s.denseEntities[0]), true
}

// Single returns the component of the first entity holding kind. It is meant
// for singleton components such as the match clock.
func Single[T any](w *World, kind component.ComponentKind[T]) (*T, bool) {
	e, ok := First(w, kind)
	if !ok {
		return nil, false
	}
	return Get(w, e, kind)
}
