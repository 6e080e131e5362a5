package graph

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/matzehuels/snarl/pkg/snarl"
)

// Marshal converts a container to JSON bytes. Output is deterministic:
// nodes sorted by identifier, wires sorted by their endpoint fields.
func Marshal[T any](s *snarl.Snarl[T]) ([]byte, error) {
	var buf bytes.Buffer
	if err := Write(s, &buf); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes JSON bytes into a new container.
func Unmarshal[T any](data []byte) (*snarl.Snarl[T], error) {
	return Read[T](bytes.NewReader(data))
}

// Write writes a container as indented JSON to an io.Writer.
// Use Marshal for in-memory serialization or WriteFile for files.
func Write[T any](s *snarl.Snarl[T], w io.Writer) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(s); err != nil {
		return fmt.Errorf("encode: %w", err)
	}
	return nil
}

// WriteFile writes a container to a JSON file.
// The file is created with 0644 permissions.
func WriteFile[T any](s *snarl.Snarl[T], path string) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := Write(s, f); err != nil {
		f.Close()
		return err
	}
	// Close flushes buffered data; a full disk surfaces here.
	if err := f.Close(); err != nil {
		return fmt.Errorf("close %s: %w", path, err)
	}
	return nil
}

// Read decodes a JSON container from an io.Reader.
// Returns [snarl.ErrMalformedGraph] errors for structurally invalid data.
func Read[T any](r io.Reader) (*snarl.Snarl[T], error) {
	s := snarl.New[T]()
	if err := json.NewDecoder(r).Decode(s); err != nil {
		return nil, fmt.Errorf("decode: %w", err)
	}
	return s, nil
}

// ReadFile reads a JSON file and returns the decoded container.
func ReadFile[T any](path string) (*snarl.Snarl[T], error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()
	return Read[T](f)
}
