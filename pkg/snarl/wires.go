package snarl

// wireSet is the deduplicated connectivity relation. Endpoint queries
// are linear scans over the set; wire counts at interactive-editor
// scale do not justify a secondary per-pin index.
type wireSet struct {
	wires map[Wire]struct{}
}

func newWireSet() wireSet {
	return wireSet{wires: make(map[Wire]struct{})}
}

// insert adds a wire. It returns false if an identical wire already
// exists, true if the wire was newly added.
func (w *wireSet) insert(wire Wire) bool {
	if _, ok := w.wires[wire]; ok {
		return false
	}
	w.wires[wire] = struct{}{}
	return true
}

// remove deletes the exact wire and reports whether it was present.
func (w *wireSet) remove(wire Wire) bool {
	if _, ok := w.wires[wire]; !ok {
		return false
	}
	delete(w.wires, wire)
	return true
}

// dropNode removes every wire touching node as either endpoint.
func (w *wireSet) dropNode(node NodeID) {
	for wire := range w.wires {
		if wire.Out.Node == node || wire.In.Node == node {
			delete(w.wires, wire)
		}
	}
}

// dropInputs removes every wire whose input endpoint equals pin.
func (w *wireSet) dropInputs(pin InPinID) {
	for wire := range w.wires {
		if wire.In == pin {
			delete(w.wires, wire)
		}
	}
}

// dropOutputs removes every wire whose output endpoint equals pin.
func (w *wireSet) dropOutputs(pin OutPinID) {
	for wire := range w.wires {
		if wire.Out == pin {
			delete(w.wires, wire)
		}
	}
}

// wiredInputs returns every input endpoint connected to out. The result
// is a fresh snapshot in unspecified order.
func (w *wireSet) wiredInputs(out OutPinID) []InPinID {
	var pins []InPinID
	for wire := range w.wires {
		if wire.Out == out {
			pins = append(pins, wire.In)
		}
	}
	return pins
}

// wiredOutputs returns every output endpoint connected to in. The
// result is a fresh snapshot in unspecified order.
func (w *wireSet) wiredOutputs(in InPinID) []OutPinID {
	var pins []OutPinID
	for wire := range w.wires {
		if wire.In == in {
			pins = append(pins, wire.Out)
		}
	}
	return pins
}

// all returns a snapshot of every wire in unspecified order.
func (w *wireSet) all() []Wire {
	wires := make([]Wire, 0, len(w.wires))
	for wire := range w.wires {
		wires = append(wires, wire)
	}
	return wires
}

func (w *wireSet) len() int { return len(w.wires) }
