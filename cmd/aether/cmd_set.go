package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// splitTarget separates an optional leading id from the remaining args.
func splitTarget(args []string, rest int) (idArg string, tail []string) {
	if len(args) > rest {
		return args[0], args[1:]
	}
	return "", args
}

func newSetCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "set [id] <prop> <value>",
		Short: "Set a property of a node",
		Long: "Set a property of a node from its textual form, as shown by `" + appName + " props`.\n" +
			"Lists are comma separated, table rows are separated by ';', colors are\n" +
			"#rrggbb or #rrggbbaa. The pseudo property \"offset\" takes x,y and\n" +
			"positions a child of a freeform layout.",
		Args: cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idArg, kv := splitTarget(args, 2)
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, idArg)
				if err != nil {
					return err
				}
				if kv[0] == "offset" {
					off, err := parseOffset(kv[1])
					if err != nil {
						return err
					}
					return s.SetOffset(id, off)
				}
				return s.SetProperty(id, kv[0], kv[1])
			})
		},
	}
}

func parseOffset(v string) (widget.Offset, error) {
	xs, ys, ok := strings.Cut(v, ",")
	if !ok {
		return widget.Offset{}, fmt.Errorf("offset %q: want x,y", v)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(xs), 64)
	if err != nil {
		return widget.Offset{}, fmt.Errorf("offset %q: %w", v, err)
	}
	y, err := strconv.ParseFloat(strings.TrimSpace(ys), 64)
	if err != nil {
		return widget.Offset{}, fmt.Errorf("offset %q: %w", v, err)
	}
	return widget.Offset{X: x, Y: y}, nil
}

func newBindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "bind [id] <prop> <var>",
		Short: "Bind a property to a project variable",
		Args:  cobra.RangeArgs(2, 3),
		RunE: func(cmd *cobra.Command, args []string) error {
			idArg, pv := splitTarget(args, 2)
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, idArg)
				if err != nil {
					return err
				}
				if _, ok := s.Variable(pv[1]); !ok {
					a.log.Warn("binding to an undeclared variable", "variable", pv[1])
				}
				return s.Bind(id, pv[0], pv[1])
			})
		},
	}
}

func newUnbindCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "unbind [id] <prop>",
		Short: "Make a bound property literal again",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idArg, p := splitTarget(args, 1)
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, idArg)
				if err != nil {
					return err
				}
				if !s.Unbind(id, p[0]) {
					return fmt.Errorf("property %q of %s is not bound", p[0], widget.ShortID(id))
				}
				return nil
			})
		},
	}
}
