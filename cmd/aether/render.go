package main

import (
	"fmt"
	"io"
	"strings"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// treeRow is one line of the flattened hierarchy.
type treeRow struct {
	node  widget.Node
	depth int
}

func flatten(s *project.State) []treeRow {
	var rows []treeRow
	widget.Walk(s.Root, func(n widget.Node, _ widget.Container, depth int) bool {
		rows = append(rows, treeRow{node: n, depth: depth})
		return true
	})
	return rows
}

// summary returns the most telling property of n, quoted, or "".
func summary(n widget.Node) string {
	for _, p := range widget.Properties(n) {
		switch p.Name {
		case "text", "title", "label", "asset", "titles":
			if p.Bound != "" {
				return "{" + p.Bound + "}"
			}
			if p.Value != "" {
				return fmt.Sprintf("%q", p.Value)
			}
		}
	}
	return ""
}

// rowLabel renders a node for listings and pickers.
func rowLabel(n widget.Node, fullID bool) string {
	id := widget.ShortID(n.ID())
	if fullID {
		id = n.ID().String()
	}
	parts := []string{string(n.Kind()), styleDim.Render(id)}
	if s := summary(n); s != "" {
		parts = append(parts, s)
	}
	return strings.Join(parts, " ")
}

func printTree(w io.Writer, s *project.State, fullID bool) {
	selected := make(map[widget.ID]bool)
	for _, id := range s.Selected() {
		selected[id] = true
	}
	for _, r := range flatten(s) {
		line := strings.Repeat("  ", r.depth) + rowLabel(r.node, fullID)
		if selected[r.node.ID()] {
			line += styleKey.Render(" *")
		}
		fmt.Fprintln(w, line)
	}
}

// printProps lists properties, bindings and events of n.
func printProps(w io.Writer, s *project.State, n widget.Node) {
	fmt.Fprintf(w, "%s %s\n", styleTitle.Render(string(n.Kind())), n.ID())
	props := widget.Properties(n)
	width := 0
	for _, p := range props {
		width = max(width, len(p.Name))
	}
	for _, p := range props {
		value := p.Value
		if p.Bound != "" {
			value = styleBound.Render("{" + p.Bound + "}")
		}
		fmt.Fprintf(w, "  %-*s  %s\n", width, p.Name, value)
	}
	if parent, ok := s.ParentOf(n.ID()); ok {
		if p, _ := s.Find(parent); p != nil {
			if ff, ok := p.(*widget.FreeformLayout); ok {
				off := ff.OffsetOf(n.ID())
				fmt.Fprintf(w, "  %-*s  %g,%g\n", width, "offset", off.X, off.Y)
			}
		}
	}
	events := widget.EventsOf(n)
	for _, e := range events.Sorted() {
		fmt.Fprintf(w, "  on %s: %s\n", e, widget.DescribeAction(events[e]))
	}
}

func printIssues(w io.Writer, issues []string) {
	if len(issues) == 0 {
		fmt.Fprintln(w, styleOK.Render("no problems found"))
		return
	}
	noun := "problems"
	if len(issues) == 1 {
		noun = "problem"
	}
	fmt.Fprintln(w, styleErrTitle.Render(fmt.Sprintf("%d %s found", len(issues), noun)))
	for _, msg := range issues {
		fmt.Fprintln(w, styleErr.Render("  ✗ ")+msg)
	}
}
