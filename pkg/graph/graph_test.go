package graph

import (
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"

	"github.com/matzehuels/snarl/pkg/snarl"
)

func buildSample(t *testing.T) *snarl.Snarl[string] {
	t.Helper()
	s := snarl.New[string]()
	a := s.AddNode("a", snarl.Pos{X: 1, Y: 2})
	b := s.AddNodeCollapsed("b", snarl.Pos{X: 3, Y: 4})
	if _, err := s.Connect(snarl.OutPinID{Node: a, Output: 0}, snarl.InPinID{Node: b, Input: 0}); err != nil {
		t.Fatal(err)
	}
	return s
}

func TestMarshalUnmarshal(t *testing.T) {
	s := buildSample(t)

	data, err := Marshal(s)
	if err != nil {
		t.Fatalf("Marshal: %v", err)
	}

	got, err := Unmarshal[string](data)
	if err != nil {
		t.Fatalf("Unmarshal: %v", err)
	}

	if got.NodeCount() != 2 || got.WireCount() != 1 {
		t.Errorf("decoded %d nodes, %d wires, want 2, 1", got.NodeCount(), got.WireCount())
	}
	if !slices.Equal(got.DrawOrder(), s.DrawOrder()) {
		t.Errorf("DrawOrder = %v, want %v", got.DrawOrder(), s.DrawOrder())
	}
}

func TestReadMalformed(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		wantErr error
	}{
		{
			name:    "StaleDrawOrder",
			input:   `{"nodes":[{"id":0,"payload":"a"}],"draw_order":[3],"wires":[]}`,
			wantErr: snarl.ErrMalformedGraph,
		},
		{
			name:    "DanglingWire",
			input:   `{"nodes":[{"id":0,"payload":"a"}],"draw_order":[0],"wires":[{"out_node":0,"output":0,"in_node":9,"input":0}]}`,
			wantErr: snarl.ErrMalformedGraph,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Read[string](strings.NewReader(tt.input))
			if !errors.Is(err, tt.wantErr) {
				t.Errorf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}
}

func TestReadInvalidJSON(t *testing.T) {
	if _, err := Read[string](strings.NewReader(`{invalid`)); err == nil {
		t.Fatal("expected error")
	}
}

func TestFileRoundTrip(t *testing.T) {
	s := buildSample(t)
	path := filepath.Join(t.TempDir(), "board.json")

	if err := WriteFile(s, path); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}

	got, err := ReadFile[string](path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got.NodeCount() != 2 {
		t.Errorf("nodes = %d, want 2", got.NodeCount())
	}

	// The file is indented JSON, pleasant to diff.
	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "\n  \"nodes\"") {
		t.Error("output is not indented")
	}
}

func TestReadFileNotFound(t *testing.T) {
	if _, err := ReadFile[string]("nonexistent.json"); err == nil {
		t.Error("expected error for nonexistent file")
	}
}

func TestWriteFileExhaustedDevice(t *testing.T) {
	if _, err := os.Stat("/dev/full"); err != nil {
		t.Skip("/dev/full not available")
	}
	if err := WriteFile(buildSample(t), "/dev/full"); err == nil {
		t.Error("writing to a full device should fail")
	}
}
