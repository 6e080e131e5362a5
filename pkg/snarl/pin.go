package snarl

// NodeID identifies a live node in a [Snarl]. Identifiers are reused
// slot indices, not stable names: once a node is removed its identifier
// may be handed out again by a later insertion.
type NodeID int

// Pos is the position of a node's top-left corner, frame margin
// excluded. Units are whatever the presentation layer uses.
type Pos struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// OutPinID identifies an output pin on a node. Pin indices are
// caller-defined; the container does not validate pin-count bounds.
// The zero value is output 0 of node 0.
type OutPinID struct {
	Node   NodeID // node the pin belongs to
	Output int    // output pin index on that node
}

// InPinID identifies an input pin on a node. Pin indices are
// caller-defined; the container does not validate pin-count bounds.
type InPinID struct {
	Node  NodeID // node the pin belongs to
	Input int    // input pin index on that node
}

// Wire is a directed connection from an output pin to an input pin.
//
// Nodes may carry multiple wires on the same input or output pin, but
// duplicate wires between the same output and the same input are not
// allowed; attempts to insert an existing wire are ignored.
type Wire struct {
	Out OutPinID
	In  InPinID
}
