package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

func newMoveCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "move",
		Short: "Reorder and reparent nodes",
	}

	sibling := func(use, short string, fn func(s *project.State, id widget.ID) bool) *cobra.Command {
		return &cobra.Command{
			Use:   use + " [id]",
			Short: short,
			Args:  cobra.MaximumNArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(func(s *project.State) error {
					id, err := resolveID(s, optionalArg(args, 0))
					if err != nil {
						return err
					}
					if !fn(s, id) {
						return fmt.Errorf("cannot move %s %s", widget.ShortID(id), use)
					}
					return nil
				})
			},
		}
	}

	beside := func(pos widget.DropPosition, short string) *cobra.Command {
		return &cobra.Command{
			Use:   pos.String() + " <src> <dst>",
			Short: short,
			Args:  cobra.ExactArgs(2),
			RunE: func(cmd *cobra.Command, args []string) error {
				return a.mutate(func(s *project.State) error {
					src, dst, err := resolvePair(s, args)
					if err != nil {
						return err
					}
					if !s.Drop(src, dst, pos) {
						return fmt.Errorf("cannot move %s %s %s", widget.ShortID(src), pos, widget.ShortID(dst))
					}
					return nil
				})
			},
		}
	}

	var index int
	into := &cobra.Command{
		Use:   "into <src> <dst>",
		Short: "Move src into container dst",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				src, dst, err := resolvePair(s, args)
				if err != nil {
					return err
				}
				at := widget.End
				if index >= 0 {
					at = index
				}
				if !s.Reparent(src, dst, at) {
					return fmt.Errorf("cannot move %s into %s", widget.ShortID(src), widget.ShortID(dst))
				}
				return nil
			})
		},
	}
	into.Flags().IntVar(&index, "index", -1, "position among dst's children after the move (default: last)")

	cmd.AddCommand(
		sibling("up", "Swap a node with its previous sibling", (*project.State).MoveUp),
		sibling("down", "Swap a node with its next sibling", (*project.State).MoveDown),
		beside(widget.DropBefore, "Move src right before dst"),
		beside(widget.DropAfter, "Move src right after dst"),
		into,
	)
	return cmd
}

func resolvePair(s *project.State, args []string) (src, dst widget.ID, err error) {
	if src, err = resolveID(s, args[0]); err != nil {
		return
	}
	dst, err = resolveID(s, args[1])
	return
}

func newLayoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:       "layout [vertical|horizontal|grid]",
		Short:     "Show or change the root layout",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: []string{"vertical", "horizontal", "grid"},
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				s, err := a.state()
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s.RootLayoutType())
				return nil
			}
			label := rootLayoutLabel(args[0])
			return a.mutate(func(s *project.State) error {
				if !s.SetRootLayoutType(label) {
					return fmt.Errorf("unsupported root layout %q: want one of %s", args[0], rootKindList())
				}
				return nil
			})
		},
	}
}

// rootLayoutLabel maps "grid", "grid-layout" or "Grid Layout" to the kind
// label.
func rootLayoutLabel(arg string) string {
	want := compactName(arg)
	for _, k := range widget.RootKinds {
		c := compactName(string(k))
		if c == want || c == want+"layout" {
			return string(k)
		}
	}
	return arg
}

func rootKindList() string {
	names := make([]string, len(widget.RootKinds))
	for i, k := range widget.RootKinds {
		names[i] = string(k)
	}
	return strings.Join(names, ", ")
}
