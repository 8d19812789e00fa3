package ecs

import "github.com/milk9111/boxing/ecs/component"

// Kind is satisfied by every component.ComponentKind.
type Kind interface {
	ID() component.ComponentID
}

// Query returns the entities holding every listed component kind.
func (w *World) Query(kinds ...Kind) []Entity {
	if w == nil || len(kinds) == 0 {
		return nil
	}
	sets := make([]*SparseSet, 0, len(kinds))
	for _, k := range kinds {
		s := w.store(k.ID(), false)
		if s == nil {
			return nil
		}
		sets = append(sets, s)
	}
	// iterate smallest set
	smallest := 0
	for i, s := range sets {
		if s.Len() < sets[smallest].Len() {
			smallest = i
		}
	}
	out := make([]Entity, 0, sets[smallest].Len())
	for _, id := range sets[smallest].denseEntities {
		keep := true
		for i, s := range sets {
			if i != smallest && !s.Has(id) {
				keep = false
				break
			}
		}
		if keep {
			out = append(out, w.entities.handle(id))
		}
	}
	return out
}
