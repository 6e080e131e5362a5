package snarl

import (
	"encoding/json"
	"fmt"
	"slices"
)

// Serialized form. Wires flatten the four endpoint scalars instead of
// nesting the two pin objects; existing serialized data depends on
// this shape.
type snarlJSON struct {
	Nodes     []nodeJSON `json:"nodes"`
	DrawOrder []NodeID   `json:"draw_order"`
	Wires     []wireJSON `json:"wires"`
}

type nodeJSON struct {
	ID      NodeID          `json:"id"`
	Payload json.RawMessage `json:"payload"`
	X       float64         `json:"x"`
	Y       float64         `json:"y"`
	Open    bool            `json:"open"`
}

type wireJSON struct {
	OutNode NodeID `json:"out_node"`
	Output  int    `json:"output"`
	InNode  NodeID `json:"in_node"`
	Input   int    `json:"input"`
}

// MarshalJSON encodes the container structurally: node slots with
// their live identifiers, the draw order, and the wire set. Output is
// deterministic - nodes sorted by identifier, wires sorted by their
// four endpoint fields. The payload type T must be JSON-marshalable.
func (s *Snarl[T]) MarshalJSON() ([]byte, error) {
	out := snarlJSON{
		Nodes:     make([]nodeJSON, 0, s.nodes.count),
		DrawOrder: slices.Clone(s.drawOrder),
		Wires:     make([]wireJSON, 0, s.wires.len()),
	}
	if out.DrawOrder == nil {
		out.DrawOrder = []NodeID{}
	}

	for _, id := range s.nodes.ids() {
		sl := s.nodes.get(id)
		payload, err := json.Marshal(sl.payload)
		if err != nil {
			return nil, fmt.Errorf("marshal payload of node %d: %w", id, err)
		}
		out.Nodes = append(out.Nodes, nodeJSON{
			ID:      id,
			Payload: payload,
			X:       sl.pos.X,
			Y:       sl.pos.Y,
			Open:    sl.open,
		})
	}

	wires := s.wires.all()
	slices.SortFunc(wires, compareWires)
	for _, w := range wires {
		out.Wires = append(out.Wires, wireJSON{
			OutNode: w.Out.Node,
			Output:  w.Out.Output,
			InNode:  w.In.Node,
			Input:   w.In.Input,
		})
	}

	return json.Marshal(out)
}

// UnmarshalJSON reconstructs a container from its structural form,
// reproducing the exact live identifiers, payloads, positions, open
// flags, draw order and wire set. Structural violations are reported
// as [ErrMalformedGraph]; they never panic.
func (s *Snarl[T]) UnmarshalJSON(data []byte) error {
	var in snarlJSON
	if err := json.Unmarshal(data, &in); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	maxID := NodeID(-1)
	for _, n := range in.Nodes {
		if n.ID < 0 {
			return fmt.Errorf("%w: negative node id %d", ErrMalformedGraph, n.ID)
		}
		if n.ID > maxID {
			maxID = n.ID
		}
	}

	nodes := newSlab[T]()
	nodes.slots = make([]*slot[T], maxID+1)
	for i := range nodes.slots {
		nodes.slots[i] = &slot[T]{next: freeListEnd}
	}
	for _, n := range in.Nodes {
		if nodes.slots[n.ID].live {
			return fmt.Errorf("%w: duplicate node id %d", ErrMalformedGraph, n.ID)
		}
		var payload T
		if len(n.Payload) > 0 {
			if err := json.Unmarshal(n.Payload, &payload); err != nil {
				return fmt.Errorf("unmarshal payload of node %d: %w", n.ID, err)
			}
		}
		*nodes.slots[n.ID] = slot[T]{
			payload: payload,
			pos:     Pos{X: n.X, Y: n.Y},
			open:    n.Open,
			live:    true,
			next:    freeListEnd,
		}
		nodes.count++
	}
	nodes.rebuildFreeList()

	// Draw order must be a permutation of exactly the live identifiers.
	if len(in.DrawOrder) != nodes.count {
		return fmt.Errorf("%w: draw order has %d entries for %d nodes", ErrMalformedGraph, len(in.DrawOrder), nodes.count)
	}
	seen := make(map[NodeID]bool, len(in.DrawOrder))
	for _, id := range in.DrawOrder {
		if !nodes.contains(id) {
			return fmt.Errorf("%w: draw order references dead node %d", ErrMalformedGraph, id)
		}
		if seen[id] {
			return fmt.Errorf("%w: duplicate draw order entry %d", ErrMalformedGraph, id)
		}
		seen[id] = true
	}

	wires := newWireSet()
	for _, w := range in.Wires {
		if !nodes.contains(w.OutNode) || !nodes.contains(w.InNode) {
			return fmt.Errorf("%w: wire %d:%d -> %d:%d touches a dead node", ErrMalformedGraph, w.OutNode, w.Output, w.InNode, w.Input)
		}
		wire := Wire{
			Out: OutPinID{Node: w.OutNode, Output: w.Output},
			In:  InPinID{Node: w.InNode, Input: w.Input},
		}
		if !wires.insert(wire) {
			return fmt.Errorf("%w: duplicate wire %d:%d -> %d:%d", ErrMalformedGraph, w.OutNode, w.Output, w.InNode, w.Input)
		}
	}

	s.nodes = nodes
	s.drawOrder = slices.Clone(in.DrawOrder)
	s.wires = wires
	return nil
}

// SortWires sorts wires in place into the canonical serialization
// order: by output node, output pin, input node, then input pin.
func SortWires(wires []Wire) {
	slices.SortFunc(wires, compareWires)
}

func compareWires(a, b Wire) int {
	if c := int(a.Out.Node - b.Out.Node); c != 0 {
		return c
	}
	if c := a.Out.Output - b.Out.Output; c != 0 {
		return c
	}
	if c := int(a.In.Node - b.In.Node); c != 0 {
		return c
	}
	return a.In.Input - b.In.Input
}
