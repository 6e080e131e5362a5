// Package snarl provides a generic in-memory node-graph container.
//
// A [Snarl] holds the state beneath a visual node editor: positioned
// nodes carrying arbitrary user payloads, and directed wires connecting
// an output pin on one node to an input pin on another. The package is
// a pure connectivity ledger - it performs no graph evaluation, no
// cycle detection and no rendering. Presentation layers read and
// mutate the container through its public operations only.
//
// # Nodes and identifiers
//
// Nodes are stored in a slot allocator that hands out reusable integer
// [NodeID] handles. An identifier is stable until its node is removed;
// after removal it may be reassigned to a future node. Callers holding
// identifiers across removals must re-validate them with
// [Snarl.Contains] before use.
//
// # Wires
//
// A [Wire] is a directed connection from an [OutPinID] to an [InPinID].
// The wire set is deduplicated by value: connecting an already-connected
// pin pair is a no-op reported through a boolean, never an error.
// Fan-out from one output and fan-in to one input are both legal.
//
// # Draw order
//
// The container maintains an explicit z-order of live node identifiers.
// Adding a node appends it to the tail (front-most); removing a node
// deletes its entry. The draw order is always a permutation of exactly
// the live identifiers.
//
// # Concurrency
//
// Snarl is not safe for concurrent use. The only concurrency-flavoured
// mechanism is the runtime-checked payload borrow (see
// [Snarl.BorrowPayload] and [Snarl.BorrowPayloadMut]), which exists so
// a drawing pass can mutate one node's payload while iterating the
// container structure, not for multi-threaded access.
//
// # Example
//
//	s := snarl.New[string]()
//	a := s.AddNode("generator", snarl.Pos{X: 0, Y: 0})
//	b := s.AddNode("sink", snarl.Pos{X: 120, Y: 40})
//
//	created, err := s.Connect(
//		snarl.OutPinID{Node: a, Output: 0},
//		snarl.InPinID{Node: b, Input: 0},
//	)
package snarl
