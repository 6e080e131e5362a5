package snarl

import "slices"

// Snarl is a generic node-graph container. It holds positioned nodes
// carrying payloads of type T, an explicit draw order, and the set of
// wires between node pins.
//
// The zero value is not usable - use [New]. Snarl is not safe for
// concurrent use without external synchronization.
type Snarl[T any] struct {
	nodes     slab[T]
	drawOrder []NodeID
	wires     wireSet
}

// NodeInfo is a read-only snapshot of a node's structural fields. The
// payload is accessed separately through [Snarl.Payload] or the borrow
// operations.
type NodeInfo struct {
	Pos  Pos
	Open bool
}

// New creates an empty container: no nodes, no wires, empty draw order.
func New[T any]() *Snarl[T] {
	return &Snarl[T]{
		nodes: newSlab[T](),
		wires: newWireSet(),
	}
}

// AddNode adds an open (expanded) node and returns its identifier.
// The node is appended to the draw order tail, making it front-most.
func (s *Snarl[T]) AddNode(payload T, pos Pos) NodeID {
	id := s.nodes.insert(payload, pos, true)
	s.drawOrder = append(s.drawOrder, id)
	return id
}

// AddNodeCollapsed adds a node in collapsed state and returns its
// identifier.
func (s *Snarl[T]) AddNodeCollapsed(payload T, pos Pos) NodeID {
	id := s.nodes.insert(payload, pos, false)
	s.drawOrder = append(s.drawOrder, id)
	return id
}

// RemoveNode removes a node and returns its payload. As one logical
// step it also deletes every wire touching the node as either endpoint
// and removes the node's draw order entry.
//
// Returns [ErrUnknownNode] if id does not denote a live node, or
// [ErrBorrowConflict] if the node's payload is still borrowed. In both
// cases the container is left untouched.
func (s *Snarl[T]) RemoveNode(id NodeID) (T, error) {
	payload, err := s.nodes.remove(id)
	if err != nil {
		var zero T
		return zero, err
	}
	s.wires.dropNode(id)
	s.drawOrder = slices.DeleteFunc(s.drawOrder, func(n NodeID) bool { return n == id })
	return payload, nil
}

// Contains reports whether id denotes a currently-live node.
func (s *Snarl[T]) Contains(id NodeID) bool { return s.nodes.contains(id) }

// NodeCount returns the number of live nodes.
func (s *Snarl[T]) NodeCount() int { return s.nodes.count }

// Info returns the position and open flag for a live node.
func (s *Snarl[T]) Info(id NodeID) (NodeInfo, bool) {
	sl := s.nodes.get(id)
	if sl == nil {
		return NodeInfo{}, false
	}
	return NodeInfo{Pos: sl.pos, Open: sl.open}, true
}

// SetPos updates a node's position. Returns [ErrUnknownNode] if id
// does not denote a live node.
func (s *Snarl[T]) SetPos(id NodeID, pos Pos) error {
	sl := s.nodes.get(id)
	if sl == nil {
		return ErrUnknownNode
	}
	sl.pos = pos
	return nil
}

// SetOpen toggles a node between expanded and collapsed rendering.
// The flag has no structural effect on connectivity. Returns
// [ErrUnknownNode] if id does not denote a live node.
func (s *Snarl[T]) SetOpen(id NodeID, open bool) error {
	sl := s.nodes.get(id)
	if sl == nil {
		return ErrUnknownNode
	}
	sl.open = open
	return nil
}

// NodeIDs returns the identifiers of all live nodes in ascending
// order, independent of draw order.
func (s *Snarl[T]) NodeIDs() []NodeID {
	return s.nodes.ids()
}

// DrawOrder returns a copy of the z-order sequence: every live node
// identifier exactly once, back-most first.
func (s *Snarl[T]) DrawOrder() []NodeID {
	return slices.Clone(s.drawOrder)
}

// Connect wires an output pin to an input pin. It returns true if a
// new wire was created, false if the exact wire already exists (a
// legitimate outcome, not an error).
//
// Both endpoint nodes must be live; Connect returns [ErrUnknownNode]
// otherwise, leaving the wire set untouched. Dangling wires are never
// inserted.
func (s *Snarl[T]) Connect(from OutPinID, to InPinID) (bool, error) {
	if !s.nodes.contains(from.Node) || !s.nodes.contains(to.Node) {
		return false, ErrUnknownNode
	}
	return s.wires.insert(Wire{Out: from, In: to}), nil
}

// Disconnect removes the exact wire from→to and reports whether it was
// present. Disconnecting an absent wire is a normal outcome.
func (s *Snarl[T]) Disconnect(from OutPinID, to InPinID) bool {
	return s.wires.remove(Wire{Out: from, In: to})
}

// DropInputs removes every wire whose input endpoint equals pin. Use
// this to clear one input before reconnecting, or to enforce an
// at-most-one-wire-per-input policy externally.
func (s *Snarl[T]) DropInputs(pin InPinID) { s.wires.dropInputs(pin) }

// DropOutputs removes every wire whose output endpoint equals pin.
func (s *Snarl[T]) DropOutputs(pin OutPinID) { s.wires.dropOutputs(pin) }

// WiredInputs returns every input pin connected to out. The slice is a
// fresh snapshot in unspecified order; re-querying reflects current
// state. An unconnected pin yields an empty result.
func (s *Snarl[T]) WiredInputs(out OutPinID) []InPinID {
	return s.wires.wiredInputs(out)
}

// WiredOutputs returns every output pin connected to in. Ordering
// caveats match [Snarl.WiredInputs].
func (s *Snarl[T]) WiredOutputs(in InPinID) []OutPinID {
	return s.wires.wiredOutputs(in)
}

// Wires returns a snapshot of every wire in unspecified order.
func (s *Snarl[T]) Wires() []Wire { return s.wires.all() }

// WireCount returns the number of wires.
func (s *Snarl[T]) WireCount() int { return s.wires.len() }
