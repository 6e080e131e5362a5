// Package graph provides serialization helpers for snarl containers.
//
// The structural format itself lives on [snarl.Snarl] as its JSON
// codec; this package adds the file and stream plumbing around it:
//
//	s := snarl.New[string]()
//	// ... build the graph ...
//
//	if err := graph.WriteFile(s, "board.json"); err != nil {
//	    return err
//	}
//
//	s, err := graph.ReadFile[string]("board.json")
//
// The format is human-readable and designed for round-trip fidelity:
// decoding a serialized container reproduces the same live node
// identifiers, payloads, positions, open flags, draw order and wire
// set. Malformed structural data is reported as
// [snarl.ErrMalformedGraph] rather than a panic.
package graph
