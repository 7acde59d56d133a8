package render

import (
	"bytes"
	"context"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/goccy/go-graphviz"
)

// ToDOT converts the region tree to Graphviz DOT. Regions are boxes
// labelled with the function that opened them and the alignment active on
// entry; fragments hang off their region as notes.
func ToDOT(out Output) string {
	var buf bytes.Buffer
	buf.WriteString("digraph layout {\n")
	buf.WriteString("  rankdir=TB;\n")
	buf.WriteString("  bgcolor=\"transparent\";\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontsize=14, margin=\"0.2,0.1\"];\n")
	buf.WriteString("  ranksep=0.5;\n")
	buf.WriteString("  nodesep=0.3;\n")
	buf.WriteString("\n")

	for _, r := range out.Regions {
		label := "document\n" + r.Align.String()
		if r.Parent >= 0 {
			label = fmt.Sprintf("%s @ %s\n%s", r.Origin, r.Span.Start, r.Align)
		}
		fmt.Fprintf(&buf, "  %q [label=%q];\n", regionID(r.ID), label)
	}

	buf.WriteString("\n")
	for i, f := range out.Fragments {
		label := fmt.Sprintf("%s\n%s", truncate(f.Text, 32), f.Align)
		fmt.Fprintf(&buf, "  %q [label=%q, shape=note, style=filled, fillcolor=lightgrey];\n", fragmentID(i), label)
	}

	buf.WriteString("\n")
	for _, r := range out.Regions {
		if r.Parent >= 0 {
			fmt.Fprintf(&buf, "  %q -> %q;\n", regionID(r.Parent), regionID(r.ID))
		}
	}
	for i, f := range out.Fragments {
		fmt.Fprintf(&buf, "  %q -> %q [style=dashed, arrowhead=none];\n", regionID(f.Region), fragmentID(i))
	}

	buf.WriteString("}\n")
	return buf.String()
}

func regionID(id int) string  { return "r" + strconv.Itoa(id) }
func fragmentID(i int) string { return "f" + strconv.Itoa(i) }

func truncate(s string, n int) string {
	s = strings.Join(strings.Fields(s), " ")
	if r := []rune(s); len(r) > n {
		return string(r[:n-1]) + "…"
	}
	return s
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
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
	return normalizeViewBox(buf.Bytes()), nil
}

var (
	svgTagRe  = regexp.MustCompile(`<svg[^>]*>`)
	viewBoxRe = regexp.MustCompile(`viewBox="([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)\s+([0-9.]+)"`)
)

// normalizeViewBox rewrites the root element to a zero-origin viewBox
// with matching width and height.
func normalizeViewBox(svg []byte) []byte {
	match := viewBoxRe.FindSubmatch(svg)
	if match == nil {
		return svg
	}

	w, _ := strconv.ParseFloat(string(match[3]), 64)
	h, _ := strconv.ParseFloat(string(match[4]), 64)
	if w == 0 || h == 0 {
		return svg
	}

	root := fmt.Sprintf(`<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.2f %.2f" width="%.0f" height="%.0f">`, w, h, w, h)
	return svgTagRe.ReplaceAll(svg, []byte(root))
}
