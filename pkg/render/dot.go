package render

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/matzehuels/permgroup/pkg/group"
	"github.com/matzehuels/permgroup/pkg/perm"
)

// Options configures chain rendering.
type Options struct {
	// Labels names points; point i is shown as Labels[i] when present.
	Labels []string

	// Elements adds each point's transversal element to its node label.
	Elements bool

	// Title is drawn above the chain.
	Title string
}

func (o Options) label(u int) string {
	if u < len(o.Labels) && o.Labels[u] != "" {
		return o.Labels[u]
	}
	return fmt.Sprint(u)
}

// ToDOT returns a Graphviz digraph of the chain of sys. A trivial group
// renders as an empty graph.
func ToDOT(sys *group.System, opts Options) string {
	var buf bytes.Buffer
	buf.WriteString("digraph StabilizerChain {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontname=\"SF Mono, Menlo, monospace\", style=filled, fillcolor=white];\n")
	buf.WriteString("  edge [fontname=\"SF Mono, Menlo, monospace\", fontsize=10];\n")
	if opts.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", opts.Title)
	}

	for i, level := range sys.Levels() {
		writeLevel(&buf, i, level, opts)
	}

	buf.WriteString("}\n")
	return buf.String()
}

func writeLevel(buf *bytes.Buffer, i int, level *group.Chain, opts Options) {
	t := level.Stabilizer().Transversal()
	fmt.Fprintf(buf, "\n  subgraph cluster_%d {\n", i)
	fmt.Fprintf(buf, "    label=%q;\n", levelLabel(i, level, opts))
	buf.WriteString("    style=\"rounded\";\n")

	for _, u := range t.Orbit().Points() {
		label := opts.label(u)
		if opts.Elements {
			label += "\n" + perm.FormatCycles(t.Element(u))
		}
		attrs := []string{fmt.Sprintf("label=%q", label)}
		if u == t.Root() {
			attrs = append(attrs, "shape=doublecircle", "fillcolor=lightgrey")
		} else if opts.Elements {
			attrs = append(attrs, "shape=box", "style=\"rounded,filled\"")
		}
		fmt.Fprintf(buf, "    %s [%s];\n", nodeID(i, u), strings.Join(attrs, ", "))
	}
	for _, u := range t.Orbit().Points() {
		if u == t.Root() {
			continue
		}
		fmt.Fprintf(buf, "    %s -> %s [label=\"g%d\"];\n", nodeID(i, t.Predecessor(u)), nodeID(i, u), t.Via(u))
	}
	buf.WriteString("  }\n")
}

func levelLabel(i int, level *group.Chain, opts Options) string {
	return fmt.Sprintf("level %d: fix %s, orbit %d, stabilizer %s",
		i, opts.label(level.Fixed()), level.Stabilizer().Transversal().Len(),
		perm.FormatGenerators(level.Generators()))
}

func nodeID(level, u int) string {
	return fmt.Sprintf("l%d_p%d", level, u)
}
