package snarl_test

import (
	"fmt"

	"github.com/matzehuels/snarl/pkg/snarl"
)

func Example() {
	s := snarl.New[string]()

	gen := s.AddNode("generator", snarl.Pos{X: 0, Y: 0})
	mix := s.AddNode("mixer", snarl.Pos{X: 160, Y: 20})
	out := s.AddNodeCollapsed("output", snarl.Pos{X: 320, Y: 40})

	s.Connect(snarl.OutPinID{Node: gen, Output: 0}, snarl.InPinID{Node: mix, Input: 0})
	s.Connect(snarl.OutPinID{Node: gen, Output: 0}, snarl.InPinID{Node: mix, Input: 1})
	s.Connect(snarl.OutPinID{Node: mix, Output: 0}, snarl.InPinID{Node: out, Input: 0})

	fmt.Println("nodes:", s.NodeCount())
	fmt.Println("wires:", s.WireCount())

	// Removing the mixer cascades to every wire touching it.
	s.RemoveNode(mix)
	fmt.Println("wires after removal:", s.WireCount())

	// Output:
	// nodes: 3
	// wires: 3
	// wires after removal: 0
}

func ExampleSnarl_BorrowPayloadMut() {
	s := snarl.New[string]()
	id := s.AddNode("dial", snarl.Pos{})

	// A drawing pass may mutate the node being drawn while the rest of
	// the container is only read.
	payload, release, err := s.BorrowPayloadMut(id)
	if err != nil {
		panic(err)
	}
	*payload = "dial (hovered)"
	release()

	v, _ := s.Payload(id)
	fmt.Println(v)
	// Output:
	// dial (hovered)
}
