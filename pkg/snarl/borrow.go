package snarl

// Payload returns a copy of a node's payload. For in-place access use
// [Snarl.BorrowPayload] or [Snarl.BorrowPayloadMut].
func (s *Snarl[T]) Payload(id NodeID) (T, bool) {
	sl := s.nodes.get(id)
	if sl == nil {
		var zero T
		return zero, false
	}
	return sl.payload, true
}

// SetPayload replaces a node's payload. Returns [ErrUnknownNode] if id
// does not denote a live node, or [ErrBorrowConflict] while any borrow
// of the payload is active.
func (s *Snarl[T]) SetPayload(id NodeID, payload T) error {
	sl := s.nodes.get(id)
	if sl == nil {
		return ErrUnknownNode
	}
	if sl.borrow != 0 {
		return ErrBorrowConflict
	}
	sl.payload = payload
	return nil
}

// BorrowPayload acquires a shared borrow of a node's payload and
// returns a pointer to it plus a release function. The pointer must be
// treated as read-only and must not be used after release. Any number
// of shared borrows of the same node may coexist.
//
// Returns [ErrUnknownNode] if id does not denote a live node, or
// [ErrBorrowConflict] while an exclusive borrow of the same payload is
// active. Calling release more than once is a no-op.
func (s *Snarl[T]) BorrowPayload(id NodeID) (*T, func(), error) {
	sl := s.nodes.get(id)
	if sl == nil {
		return nil, nil, ErrUnknownNode
	}
	if sl.borrow < 0 {
		return nil, nil, ErrBorrowConflict
	}
	sl.borrow++
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		sl.borrow--
	}
	return &sl.payload, release, nil
}

// BorrowPayloadMut acquires an exclusive borrow of a node's payload.
// Exactly one exclusive borrow may be active per node, and it excludes
// shared borrows of the same node. Borrows on different nodes never
// conflict, so a rendering pass may mutate the node currently being
// drawn while the container is otherwise only read.
//
// Returns [ErrUnknownNode] if id does not denote a live node, or
// [ErrBorrowConflict] while any other borrow of the same payload is
// active. Calling release more than once is a no-op.
func (s *Snarl[T]) BorrowPayloadMut(id NodeID) (*T, func(), error) {
	sl := s.nodes.get(id)
	if sl == nil {
		return nil, nil, ErrUnknownNode
	}
	if sl.borrow != 0 {
		return nil, nil, ErrBorrowConflict
	}
	sl.borrow = -1
	released := false
	release := func() {
		if released {
			return
		}
		released = true
		sl.borrow = 0
	}
	return &sl.payload, release, nil
}
