package render

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/matzehuels/permgroup/pkg/group"
	"github.com/matzehuels/permgroup/pkg/perm"
	"github.com/matzehuels/permgroup/pkg/provider"
)

func s4(t *testing.T) *group.System {
	t.Helper()
	sys := group.NewSystem(provider.NewShared(4))
	sys.AddGenerator(perm.MustParseCycles("(0 1)", 4))
	sys.AddGenerator(perm.MustParseCycles("(0 1 2 3)", 4))
	return sys
}

func TestToDOT(t *testing.T) {
	sys := s4(t)
	dot := ToDOT(sys, Options{Title: "S4"})

	for _, want := range []string{
		"digraph StabilizerChain {",
		"subgraph cluster_0",
		"subgraph cluster_2",
		`label="S4"`,
		"l0_p0 [label=\"0\", shape=doublecircle",
	} {
		if !strings.Contains(dot, want) {
			t.Errorf("DOT missing %q:\n%s", want, dot)
		}
	}
	if strings.Contains(dot, "cluster_3") {
		t.Errorf("S4 has three chain levels:\n%s", dot)
	}

	// One tree edge per non-root orbit point.
	edges := strings.Count(dot, "->")
	want := 0
	for _, n := range sys.OrbitLengths() {
		want += n - 1
	}
	if edges != want {
		t.Errorf("DOT has %d edges, want %d", edges, want)
	}
}

func TestToDOTLabels(t *testing.T) {
	dot := ToDOT(s4(t), Options{Labels: []string{"a", "b"}, Elements: true})
	if !strings.Contains(dot, `label="a\n(0)"`) {
		t.Errorf("root label missing:\n%s", dot)
	}
	if !strings.Contains(dot, "fix a,") {
		t.Errorf("level label does not use point labels:\n%s", dot)
	}
	// Points beyond the labels fall back to numbers.
	if !strings.Contains(dot, `label="3\n`) {
		t.Errorf("numeric fallback missing:\n%s", dot)
	}
}

func TestToDOTTrivial(t *testing.T) {
	dot := ToDOT(group.NewSystem(provider.NewShared(3)), Options{})
	if strings.Contains(dot, "subgraph") {
		t.Errorf("trivial group has clusters:\n%s", dot)
	}
}

func TestRender(t *testing.T) {
	ctx := context.Background()
	sys := s4(t)

	dot, err := Render(ctx, sys, FormatDOT, Options{})
	if err != nil || !bytes.HasPrefix(dot, []byte("digraph")) {
		t.Fatalf("Render(dot) = %.40q, %v", dot, err)
	}
	if _, err := Render(ctx, sys, "gif", Options{}); err == nil {
		t.Error("Render(gif) succeeded")
	}
	if testing.Short() {
		t.Skip("skipping graphviz layout in short mode")
	}
	svg, err := Render(ctx, sys, FormatSVG, Options{})
	if err != nil {
		t.Fatalf("Render(svg): %v", err)
	}
	if !bytes.Contains(svg, []byte("<svg")) {
		t.Errorf("Render(svg) did not produce SVG: %.80q", svg)
	}
}
