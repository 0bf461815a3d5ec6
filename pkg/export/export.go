// Package export draws board arrangements with Graphviz.
//
// Each container becomes a cluster and its items a top-to-bottom column of
// nodes, so the picture reads like the board. [ToDOT] produces the source;
// [RenderSVG] and [RenderPNG] lay it out with the bundled Graphviz.
package export

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/dragswitch/dragswitch/pkg/board"
	"github.com/dragswitch/dragswitch/pkg/errors"
)

// Options configures DOT generation.
type Options struct {
	// Detailed adds item ids and positions to node labels.
	Detailed bool
}

// ToDOT converts a board to Graphviz DOT. Apply a saved arrangement with
// [board.Board.Arrange] first to draw it.
func ToDOT(b *board.Board, opts Options) string {
	var buf bytes.Buffer
	fmt.Fprintf(&buf, "digraph %q {\n", b.ID)
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  newrank=true;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14];\n")
	buf.WriteString("  edge [style=invis];\n")
	if b.Title != "" {
		fmt.Fprintf(&buf, "  label=%q;\n  labelloc=t;\n", b.Title)
	}

	for _, c := range b.Containers {
		buf.WriteString("\n")
		fmt.Fprintf(&buf, "  subgraph %q {\n", "cluster_"+c.ID)
		fmt.Fprintf(&buf, "    label=%q;\n", containerLabel(c))
		buf.WriteString("    style=\"rounded\";\n")

		if len(c.Items) == 0 {
			// Empty clusters are dropped by dot; keep the column visible.
			fmt.Fprintf(&buf, "    %q [label=\"\", style=invis];\n", c.ID+"__empty")
		}
		for i, it := range c.Items {
			fmt.Fprintf(&buf, "    %q [label=%q];\n", it.ID, itemLabel(it, i, opts.Detailed))
		}
		for i := 1; i < len(c.Items); i++ {
			fmt.Fprintf(&buf, "    %q -> %q;\n", c.Items[i-1].ID, c.Items[i].ID)
		}
		buf.WriteString("  }\n")
	}

	if heads := firstNodes(b); len(heads) > 1 {
		buf.WriteString("\n  { rank=same; ")
		for _, h := range heads {
			fmt.Fprintf(&buf, "%q; ", h)
		}
		buf.WriteString("}\n")
	}

	buf.WriteString("}\n")
	return buf.String()
}

func containerLabel(c board.Container) string {
	if c.Title != "" {
		return c.Title
	}
	return c.ID
}

func itemLabel(it board.Item, index int, detailed bool) string {
	label := it.Label
	if label == "" {
		label = it.ID
	}
	if !detailed {
		return label
	}
	return strings.Join([]string{label, fmt.Sprintf("id: %s", it.ID), fmt.Sprintf("index: %d", index)}, "\n")
}

// firstNodes returns the top node of every container so columns align.
func firstNodes(b *board.Board) []string {
	var out []string
	for _, c := range b.Containers {
		if len(c.Items) > 0 {
			out = append(out, c.Items[0].ID)
		} else {
			out = append(out, c.ID+"__empty")
		}
	}
	return out
}

// RenderSVG renders DOT source to SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.SVG)
}

// RenderPNG renders DOT source to PNG.
func RenderPNG(ctx context.Context, dot string) ([]byte, error) {
	return render(ctx, dot, graphviz.PNG)
}

func render(ctx context.Context, dot string, format graphviz.Format) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "init graphviz")
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, errors.Wrap(errors.ErrCodeInvalidFormat, err, "parse DOT")
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, format, &buf); err != nil {
		return nil, errors.Wrap(errors.ErrCodeInternal, err, "render %s", format)
	}
	return buf.Bytes(), nil
}

// Format names an output format of the export command.
type Format string

// Supported formats.
const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unknown format %q (want dot, svg or png)", s)
}

// Render produces the board in the given format.
func Render(ctx context.Context, b *board.Board, format Format, opts Options) ([]byte, error) {
	dot := ToDOT(b, opts)
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		return RenderSVG(ctx, dot)
	case FormatPNG:
		return RenderPNG(ctx, dot)
	}
	return nil, errors.New(errors.ErrCodeUnsupported, "format %q", format)
}
