package render

import (
	"bytes"
	"context"
	"fmt"

	"github.com/goccy/go-graphviz"

	"github.com/matzehuels/permgroup/pkg/errors"
	"github.com/matzehuels/permgroup/pkg/group"
)

// Output formats accepted by Render.
const (
	FormatDOT = "dot"
	FormatSVG = "svg"
)

// RenderSVG lays out a DOT graph with Graphviz and returns the SVG document.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// Render draws the chain of sys in the given format.
func Render(ctx context.Context, sys *group.System, format string, opts Options) ([]byte, error) {
	dot := ToDOT(sys, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported render format %q (want dot or svg)", format)
}
