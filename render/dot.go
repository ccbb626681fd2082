package render

import (
	"bytes"
	"cmp"
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/geange/powerset"
)

// Format is an output format understood by Render.
type Format string

const (
	FormatDOT Format = "dot"
	FormatSVG Format = "svg"
	FormatPNG Format = "png"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatDOT, FormatSVG, FormatPNG:
		return f, nil
	default:
		return "", fmt.Errorf("unsupported format %q (want dot, svg or png)", s)
	}
}

// Options configures diagram layout.
type Options struct {
	// RankDir is the Graphviz rankdir attribute. Defaults to "LR".
	RankDir string
}

type edgeKey struct {
	from, to int
}

func header(buf *bytes.Buffer, opts Options) {
	rankdir := opts.RankDir
	if rankdir == "" {
		rankdir = "LR"
	}
	buf.WriteString("digraph G {\n")
	fmt.Fprintf(buf, "  rankdir=%s;\n", rankdir)
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=circle, fontsize=14];\n")
	buf.WriteString("  __start [shape=point, width=0.1];\n")
	buf.WriteString("  __start -> 0;\n")
}

func writeEdges(buf *bytes.Buffer, edges map[edgeKey][]string) {
	keys := slices.SortedFunc(maps.Keys(edges), func(a, b edgeKey) int {
		if c := cmp.Compare(a.from, b.from); c != 0 {
			return c
		}
		return cmp.Compare(a.to, b.to)
	})
	for _, k := range keys {
		fmt.Fprintf(buf, "  %d -> %d [label=%q];\n", k.from, k.to, strings.Join(edges[k], ", "))
	}
	buf.WriteString("}\n")
}

func label(symbol powerset.Symbol) string {
	if symbol == powerset.Epsilon {
		return "ε"
	}
	return symbol
}

// NFAToDOT converts an NFA to Graphviz DOT source.
func NFAToDOT(a *powerset.NFA, opts Options) string {
	var buf bytes.Buffer
	header(&buf, opts)

	for s := 0; s < a.GetNumStates(); s++ {
		fmt.Fprintf(&buf, "  %d%s;\n", s, stateAttrs(a.IsAccept(s), false))
	}

	edges := make(map[edgeKey][]string)
	for _, k := range a.Keys() {
		for _, dest := range a.Targets(k.State, k.Symbol) {
			ek := edgeKey{from: k.State, to: dest}
			edges[ek] = append(edges[ek], label(k.Symbol))
		}
	}
	writeEdges(&buf, edges)
	return buf.String()
}

// DFAToDOT converts a DFA to Graphviz DOT source.
func DFAToDOT(d *powerset.DFA, opts Options) string {
	var buf bytes.Buffer
	header(&buf, opts)

	sink := d.Sink()
	for s := 0; s < d.GetNumStates(); s++ {
		fmt.Fprintf(&buf, "  %d%s;\n", s, stateAttrs(d.IsAccept(s), s == sink))
	}

	edges := make(map[edgeKey][]string)
	for _, k := range d.Keys() {
		ek := edgeKey{from: k.State, to: d.Step(k.State, k.Symbol)}
		edges[ek] = append(edges[ek], label(k.Symbol))
	}
	writeEdges(&buf, edges)
	return buf.String()
}

func stateAttrs(accept, sink bool) string {
	var attrs []string
	if accept {
		attrs = append(attrs, "shape=doublecircle")
	}
	if sink {
		attrs = append(attrs, "style=dashed", "fontcolor=gray")
	}
	if len(attrs) == 0 {
		return ""
	}
	return " [" + strings.Join(attrs, ", ") + "]"
}

// Render converts DOT source to the requested format. FormatDOT returns dot unchanged.
func Render(ctx context.Context, dot string, format Format) ([]byte, error) {
	var gvFormat graphviz.Format
	switch format {
	case FormatDOT:
		return []byte(dot), nil
	case FormatSVG:
		gvFormat = graphviz.SVG
	case FormatPNG:
		gvFormat = graphviz.PNG
	default:
		return nil, fmt.Errorf("unsupported format %q", format)
	}

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
	if err := gv.Render(ctx, g, gvFormat, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}
	return buf.Bytes(), nil
}

// RenderSVG renders DOT source as SVG.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	return Render(ctx, dot, FormatSVG)
}
