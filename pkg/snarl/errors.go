package snarl

import "errors"

var (
	// ErrUnknownNode is returned when an operation references a node
	// identifier that does not denote a currently-live node. Identifiers
	// are reused after removal, so a stale handle may also alias a newer
	// node; callers must not use identifiers past removal.
	ErrUnknownNode = errors.New("unknown node")

	// ErrBorrowConflict is returned when a payload borrow would overlap
	// an incompatible borrow of the same node: an exclusive borrow while
	// any borrow is active, or any borrow while an exclusive one is
	// active. Borrows on different nodes never conflict.
	ErrBorrowConflict = errors.New("payload borrow conflict")

	// ErrMalformedGraph is returned by [Snarl.UnmarshalJSON] when the
	// serialized form violates a structural invariant: duplicate node
	// identifiers, a draw order that is not a permutation of the live
	// nodes, or a wire touching a node that does not exist.
	ErrMalformedGraph = errors.New("malformed graph data")
)
