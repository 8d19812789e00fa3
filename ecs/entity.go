package ecs

import "fmt"

// Entity is a generational handle: slot in the low half, slot generation in
// the high half. A handle to a destroyed entity never resolves to a later
// entity that reuses its slot.
type Entity uint64

type (
	entityID   uint32
	generation uint32
)

func makeEntity(id entityID, gen generation) Entity {
	return Entity(uint64(gen)<<32 | uint64(id))
}

func (e Entity) id() entityID { return entityID(uint32(e)) }
func (e Entity) generation() generation { return generation(uint32(uint64(e) >> 32)) }

// String renders the handle as slot/generation, e.g. "3/1".
func (e Entity) String() string {
	return fmt.Sprintf("%d/%d", e.id(), e.generation())
}

func (e Entity) Valid() bool {
	return e.id() > 0
}

// entityStore allocates slots and tracks their generations. Slot ids start
// at 1 so the zero Entity is never alive.
type entityStore struct {
	gens  []generation // gens[id-1] is the current generation of slot id
	free  []entityID
	alive int
}

func (s *entityStore) create() Entity {
	var id entityID
	if n := len(s.free); n > 0 {
		id = s.free[n-1]
		s.free = s.free[:n-1]
	} else {
		s.gens = append(s.gens, 0)
		id = entityID(len(s.gens))
	}
	s.alive++
	return makeEntity(id, s.gens[id-1])
}

func (s *entityStore) destroy(e Entity) bool {
	if !s.isAlive(e) {
		return false
	}
	s.gens[e.id()-1]++
	s.free = append(s.free, e.id())
	s.alive--
	return true
}

func (s *entityStore) isAlive(e Entity) bool {
	id := e.id()
	if id == 0 || int(id) > len(s.gens) {
		return false
	}
	return s.gens[id-1] == e.generation()
}

// handle rebuilds the live handle of slot id.
func (s *entityStore) handle(id entityID) Entity {
	if id == 0 || int(id) > len(s.gens) {
		return 0
	}
	return makeEntity(id, s.gens[id-1])
}
