package nodelink

import (
	"fmt"
	"strings"
	"testing"

	"github.com/matzehuels/snarl/pkg/snarl"
)

func buildBoard(t *testing.T) *snarl.Snarl[string] {
	t.Helper()
	s := snarl.New[string]()
	a := s.AddNode("source", snarl.Pos{X: 0, Y: 0})
	b := s.AddNode("filter", snarl.Pos{X: 200, Y: 0})
	c := s.AddNodeCollapsed("sink", snarl.Pos{X: 400, Y: 0})
	if _, err := s.Connect(snarl.OutPinID{Node: a, Output: 0}, snarl.InPinID{Node: b, Input: 0}); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	if _, err := s.Connect(snarl.OutPinID{Node: b, Output: 0}, snarl.InPinID{Node: c, Input: 1}); err != nil {
		t.Fatalf("Connect: %v", err)
	}
	return s
}

func TestToDOTBasic(t *testing.T) {
	s := buildBoard(t)
	dot := ToDOT(s, Options[string]{})

	if !strings.HasPrefix(dot, "digraph G {") {
		t.Errorf("DOT should start with digraph header, got %q", dot[:20])
	}
	for _, want := range []string{`"n0"`, `"n1"`, `"n2"`, `"n0" -> "n1";`, `"n1" -> "n2";`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTCollapsedStyle(t *testing.T) {
	s := buildBoard(t)
	dot := ToDOT(s, Options[string]{})

	// Only the collapsed node carries the dashed grey style.
	if strings.Count(dot, "dashed") != 1 {
		t.Errorf("expected exactly one dashed node:\n%s", dot)
	}
	if !strings.Contains(dot, "fillcolor=lightgrey") {
		t.Errorf("collapsed node should be grey:\n%s", dot)
	}
}

func TestToDOTCustomLabel(t *testing.T) {
	s := buildBoard(t)
	dot := ToDOT(s, Options[string]{
		Label: func(id snarl.NodeID, payload string) string {
			return fmt.Sprintf("%d: %s", id, payload)
		},
	})

	for _, want := range []string{`label="0: source"`, `label="1: filter"`, `label="2: sink"`} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
}

func TestToDOTDetailedPins(t *testing.T) {
	s := buildBoard(t)
	dot := ToDOT(s, Options[string]{Detailed: true})

	if !strings.Contains(dot, `taillabel="0", headlabel="1"`) {
		t.Errorf("detailed DOT should carry pin indices:\n%s", dot)
	}
}

func TestToDOTDeterministic(t *testing.T) {
	s := buildBoard(t)
	first := ToDOT(s, Options[string]{})
	for i := 0; i < 5; i++ {
		if got := ToDOT(s, Options[string]{}); got != first {
			t.Fatalf("DOT output not deterministic:\n%s\nvs\n%s", first, got)
		}
	}
}

func TestRenderSVG(t *testing.T) {
	s := buildBoard(t)
	svg, err := RenderSVG(ToDOT(s, Options[string]{}))
	if err != nil {
		t.Fatalf("RenderSVG: %v", err)
	}
	if !strings.Contains(string(svg), "<svg") {
		t.Error("output does not look like SVG")
	}
}
