package cli

import (
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/charmbracelet/log"

	snarlerrors "github.com/matzehuels/snarl/pkg/errors"
)

// runCommand executes the root command with the given args.
func runCommand(t *testing.T, args ...string) error {
	t.Helper()
	c := New(io.Discard, log.InfoLevel)
	root := c.RootCommand()
	root.SetArgs(args)
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)
	return root.Execute()
}

func TestInitAndNodeWorkflow(t *testing.T) {
	boardFile := filepath.Join(t.TempDir(), "board.json")

	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := runCommand(t, "init", boardFile); err == nil {
		t.Fatal("init over existing file should fail without --force")
	}
	if err := runCommand(t, "init", "--force", boardFile); err != nil {
		t.Fatalf("init --force: %v", err)
	}

	if err := runCommand(t, "node", "add", boardFile, "--payload", `{"kind":"source"}`, "-x", "10", "-y", "20"); err != nil {
		t.Fatalf("node add: %v", err)
	}
	if err := runCommand(t, "node", "add", boardFile, "--collapsed"); err != nil {
		t.Fatalf("node add collapsed: %v", err)
	}

	g, err := loadBoard(boardFile)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount = %d, want 2", g.NodeCount())
	}
	info, ok := g.Info(0)
	if !ok || info.Pos.X != 10 || info.Pos.Y != 20 {
		t.Errorf("node 0 info = %+v, ok = %v", info, ok)
	}
	if info, _ := g.Info(1); info.Open {
		t.Error("node 1 should be collapsed")
	}

	var payload map[string]string
	raw, _ := g.Payload(0)
	if err := json.Unmarshal(raw, &payload); err != nil || payload["kind"] != "source" {
		t.Errorf("node 0 payload = %s", raw)
	}
}

func TestNodeAddRejectsInvalidPayload(t *testing.T) {
	boardFile := filepath.Join(t.TempDir(), "board.json")
	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := runCommand(t, "node", "add", boardFile, "--payload", "{broken"); err == nil {
		t.Error("expected error for invalid payload JSON")
	}
}

func TestWireWorkflow(t *testing.T) {
	boardFile := filepath.Join(t.TempDir(), "board.json")

	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}
	for i := 0; i < 2; i++ {
		if err := runCommand(t, "node", "add", boardFile); err != nil {
			t.Fatalf("node add: %v", err)
		}
	}

	if err := runCommand(t, "wire", "connect", "0:0", "1:0", boardFile); err != nil {
		t.Fatalf("wire connect: %v", err)
	}
	// Duplicate connect succeeds as a no-op.
	if err := runCommand(t, "wire", "connect", "0:0", "1:0", boardFile); err != nil {
		t.Fatalf("duplicate wire connect: %v", err)
	}
	// Dangling endpoint is an error.
	if err := runCommand(t, "wire", "connect", "0:0", "9:0", boardFile); err == nil {
		t.Fatal("connect to unknown node should fail")
	}

	g, err := loadBoard(boardFile)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}
	if g.WireCount() != 1 {
		t.Fatalf("WireCount = %d, want 1", g.WireCount())
	}

	if err := runCommand(t, "wire", "disconnect", "0:0", "1:0", boardFile); err != nil {
		t.Fatalf("wire disconnect: %v", err)
	}
	g, _ = loadBoard(boardFile)
	if g.WireCount() != 0 {
		t.Fatalf("WireCount after disconnect = %d, want 0", g.WireCount())
	}
}

func TestNodeRemoveCascades(t *testing.T) {
	boardFile := filepath.Join(t.TempDir(), "board.json")

	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}
	for i := 0; i < 3; i++ {
		if err := runCommand(t, "node", "add", boardFile); err != nil {
			t.Fatalf("node add: %v", err)
		}
	}
	if err := runCommand(t, "wire", "connect", "0:0", "1:0", boardFile); err != nil {
		t.Fatalf("wire connect: %v", err)
	}
	if err := runCommand(t, "wire", "connect", "1:0", "2:0", boardFile); err != nil {
		t.Fatalf("wire connect: %v", err)
	}

	if err := runCommand(t, "node", "rm", "1", boardFile); err != nil {
		t.Fatalf("node rm: %v", err)
	}

	g, err := loadBoard(boardFile)
	if err != nil {
		t.Fatalf("load board: %v", err)
	}
	if g.NodeCount() != 2 {
		t.Errorf("NodeCount = %d, want 2", g.NodeCount())
	}
	if g.WireCount() != 0 {
		t.Errorf("WireCount = %d, want 0 after cascade", g.WireCount())
	}
}

func TestPinArgParsing(t *testing.T) {
	out, in, err := parsePinArgs("3:1", "7:0")
	if err != nil {
		t.Fatalf("parsePinArgs: %v", err)
	}
	if out.Node != 3 || out.Output != 1 || in.Node != 7 || in.Input != 0 {
		t.Errorf("pins = %+v, %+v", out, in)
	}

	for _, bad := range [][2]string{{"3", "7:0"}, {"3:1", "x:y"}, {"-1:0", "0:0"}} {
		if _, _, err := parsePinArgs(bad[0], bad[1]); err == nil {
			t.Errorf("parsePinArgs(%q, %q) should fail", bad[0], bad[1])
		}
	}
}

func TestRenderToDOTFile(t *testing.T) {
	dir := t.TempDir()
	boardFile := filepath.Join(dir, "board.json")
	outFile := filepath.Join(dir, "board.dot")

	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}
	if err := runCommand(t, "node", "add", boardFile); err != nil {
		t.Fatalf("node add: %v", err)
	}
	if err := runCommand(t, "render", boardFile, "--format", "dot", "-o", outFile); err != nil {
		t.Fatalf("render: %v", err)
	}

	if _, err := loadBoard(boardFile); err != nil {
		t.Fatalf("board unreadable after render: %v", err)
	}
	data, err := os.ReadFile(outFile)
	if err != nil {
		t.Fatalf("read output: %v", err)
	}
	if len(data) == 0 {
		t.Error("render output is empty")
	}
}

func TestRenderRejectsUnknownFormat(t *testing.T) {
	boardFile := filepath.Join(t.TempDir(), "board.json")

	if err := runCommand(t, "init", boardFile); err != nil {
		t.Fatalf("init: %v", err)
	}

	err := runCommand(t, "render", boardFile, "--format", "pdf")
	if err == nil {
		t.Fatal("render with unsupported format should fail")
	}
	if !snarlerrors.Is(err, snarlerrors.ErrCodeInvalidFormat) {
		t.Errorf("err = %v, want INVALID_FORMAT", err)
	}
}
