package ecs

const noSlot = -1

// Removable is implemented by all component stores so the Registry can
// bulk-remove an entity's data from every store on destroy.
type Removable interface {
	Remove(id EntityID) bool
}

// Store is an arena-indexed component array. Components live densely in
// data; sparse translates an entity index to its slot in data. Presence
// checks are a single slice lookup plus a generation compare.
//
// Reads (Has, Get, Each) may run from many goroutines at once as long as no
// writer runs concurrently. Structural writes go through the CommandBuffer.
type Store[T any] struct {
	sparse []int32
	owners []EntityID
	data   []T
}

func NewStore[T any]() *Store[T] {
	return &Store[T]{
		sparse: make([]int32, 0, 256),
		owners: make([]EntityID, 0, 64),
		data:   make([]T, 0, 64),
	}
}

func (s *Store[T]) slot(id EntityID) int32 {
	idx := id.Index()
	if int(idx) >= len(s.sparse) {
		return noSlot
	}
	slot := s.sparse[idx]
	if slot == noSlot || s.owners[slot] != id {
		return noSlot
	}
	return slot
}

// Set attaches c to id, overwriting any existing value. Returns true when the
// component was newly added.
func (s *Store[T]) Set(id EntityID, c T) bool {
	if slot := s.slot(id); slot != noSlot {
		s.data[slot] = c
		return false
	}
	idx := int(id.Index())
	for len(s.sparse) <= idx {
		s.sparse = append(s.sparse, noSlot)
	}
	s.sparse[idx] = int32(len(s.data))
	s.owners = append(s.owners, id)
	s.data = append(s.data, c)
	return true
}

// Get returns a pointer into the arena. The pointer is only valid until the
// next structural change to this store.
func (s *Store[T]) Get(id EntityID) (*T, bool) {
	slot := s.slot(id)
	if slot == noSlot {
		return nil, false
	}
	return &s.data[slot], true
}

func (s *Store[T]) Has(id EntityID) bool {
	return s.slot(id) != noSlot
}

// Remove detaches the component by swapping the last slot into its place.
func (s *Store[T]) Remove(id EntityID) bool {
	slot := s.slot(id)
	if slot == noSlot {
		return false
	}
	last := int32(len(s.data) - 1)
	if slot != last {
		moved := s.owners[last]
		s.data[slot] = s.data[last]
		s.owners[slot] = moved
		s.sparse[moved.Index()] = slot
	}
	var zero T
	s.data[last] = zero
	s.data = s.data[:last]
	s.owners = s.owners[:last]
	s.sparse[id.Index()] = noSlot
	return true
}

func (s *Store[T]) Len() int {
	return len(s.data)
}

// Each visits every component in slot order.
func (s *Store[T]) Each(fn func(EntityID, *T)) {
	for i := range s.data {
		fn(s.owners[i], &s.data[i])
	}
}

// Entities returns a copy of the owning ids in slot order.
func (s *Store[T]) Entities() []EntityID {
	out := make([]EntityID, len(s.owners))
	copy(out, s.owners)
	return out
}
