package snarl

// slot is a single allocated node record: the user payload, a 2D
// position and the open/collapsed display flag. Dead slots are chained
// into a free list through next and are eligible for reuse.
type slot[T any] struct {
	payload T
	pos     Pos
	open    bool

	// borrow is the runtime borrow ledger for the payload:
	// 0 idle, -1 exclusively borrowed, >0 number of shared borrows.
	borrow int

	live bool
	next int // free-list link when dead, freeListEnd terminates
}

const freeListEnd = -1

// slab is a slot allocator issuing stable-until-removed integer
// identifiers. Freed slots are reused LIFO by later insertions.
//
// Slots are individually allocated so that a borrowed payload pointer
// stays valid while the slab grows underneath it.
type slab[T any] struct {
	slots []*slot[T]
	free  int // head of the free list
	count int
}

func newSlab[T any]() slab[T] {
	return slab[T]{free: freeListEnd}
}

// insert allocates a slot and returns a fresh or reused identifier.
func (s *slab[T]) insert(payload T, pos Pos, open bool) NodeID {
	s.count++
	if s.free != freeListEnd {
		idx := s.free
		s.free = s.slots[idx].next
		*s.slots[idx] = slot[T]{payload: payload, pos: pos, open: open, live: true, next: freeListEnd}
		return NodeID(idx)
	}
	s.slots = append(s.slots, &slot[T]{payload: payload, pos: pos, open: open, live: true, next: freeListEnd})
	return NodeID(len(s.slots) - 1)
}

// remove detaches and returns the payload, freeing the slot for reuse.
// It fails if id does not denote a live slot, or if the payload is
// still borrowed.
func (s *slab[T]) remove(id NodeID) (T, error) {
	sl := s.get(id)
	if sl == nil {
		var zero T
		return zero, ErrUnknownNode
	}
	if sl.borrow != 0 {
		var zero T
		return zero, ErrBorrowConflict
	}
	payload := sl.payload
	var zero T
	*sl = slot[T]{payload: zero, next: s.free}
	s.free = int(id)
	s.count--
	return payload, nil
}

// contains reports whether id denotes a live slot.
func (s *slab[T]) contains(id NodeID) bool {
	return id >= 0 && int(id) < len(s.slots) && s.slots[id].live
}

// get returns the live slot for id, or nil.
func (s *slab[T]) get(id NodeID) *slot[T] {
	if !s.contains(id) {
		return nil
	}
	return s.slots[id]
}

// ids returns the live identifiers in ascending order.
func (s *slab[T]) ids() []NodeID {
	out := make([]NodeID, 0, s.count)
	for i := range s.slots {
		if s.slots[i].live {
			out = append(out, NodeID(i))
		}
	}
	return out
}

// rebuildFreeList rechains all dead slots so that the lowest index is
// reused first. Called after bulk reconstruction during decoding.
func (s *slab[T]) rebuildFreeList() {
	s.free = freeListEnd
	for i := len(s.slots) - 1; i >= 0; i-- {
		if !s.slots[i].live {
			s.slots[i].next = s.free
			s.free = i
		}
	}
}
