package project

import (
	"fmt"

	"aether/cmd/aether/widget"
)

// Validate checks the tree against the variable and asset registries and
// returns one human-readable message per problem, in tree order. An empty
// result means the project is consistent. The state is not modified.
func Validate(s *State) []string {
	var errs []string
	report := func(n widget.Node, format string, args ...any) {
		errs = append(errs, nodeLabel(n)+": "+fmt.Sprintf(format, args...))
	}

	widget.Walk(s.Root, func(n widget.Node, _ widget.Container, _ int) bool {
		for _, prop := range widget.SortedBindings(n) {
			name := widget.Binding(n, prop)
			v, ok := s.Variables[name]
			if !ok {
				report(n, "property %q is bound to unknown variable %q", prop, name)
				continue
			}
			bp, ok := widget.LookupBindable(n.Kind(), prop)
			if !ok {
				report(n, "property %q cannot be bound", prop)
				continue
			}
			if !bp.Class.Accepts(v.Type) {
				report(n, "variable %q is %s but property %q needs %s", name, v.Type, prop, bp.Class)
			}
		}

		for _, e := range widget.EventsOf(n).Sorted() {
			a := widget.EventsOf(n)[e]
			name := a.Variable()
			if name == "" {
				continue
			}
			v, ok := s.Variables[name]
			if !ok {
				report(n, "%s action targets unknown variable %q", e.Label(), name)
				continue
			}
			if _, inc := a.(widget.IncrementAction); inc && !v.Type.IsNumeric() {
				report(n, "%s increments %q which is %s, not a number", e.Label(), name, v.Type)
			}
		}

		switch x := n.(type) {
		case *widget.Image:
			if x.Asset == "" {
				break
			}
			a, ok := s.Assets[x.Asset]
			switch {
			case !ok:
				report(n, "unknown asset %q", x.Asset)
			case a.Kind != AssetImage:
				report(n, "asset %q is %s, not an image", x.Asset, a.Kind)
			}
		case *widget.GridLayout:
			if x.Columns < 1 {
				report(n, "columns must be at least 1, got %d", x.Columns)
			}
		case *widget.Slider:
			if x.Min > x.Max {
				report(n, "min %g is greater than max %g", x.Min, x.Max)
			}
		}
		return true
	})
	return errs
}

// nodeLabel names a node in messages, e.g. "Button 1a2b3c4d".
func nodeLabel(n widget.Node) string {
	return fmt.Sprintf("%s %s", n.Kind(), widget.ShortID(n.ID()))
}
