package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

func newAddCmd(a *app) *cobra.Command {
	var (
		parentArg string
		index     int
		sets      []string
	)
	cmd := &cobra.Command{
		Use:   "add <kind>",
		Short: "Add a widget from the palette",
		Long: "Add a widget from the palette under --parent (default: the root).\n" +
			"The kind may be written as shown by `" + appName + " palette`, e.g. text-edit.\n" +
			"The new node becomes the selection and its id is printed.",
		Args:      cobra.ExactArgs(1),
		ValidArgs: kindArgs(),
		RunE: func(cmd *cobra.Command, args []string) error {
			k, err := parseKind(args[0])
			if err != nil {
				return err
			}
			n, ok := widget.New(string(k))
			if !ok {
				return fmt.Errorf("%w: %s", widget.ErrUnknownKind, k)
			}
			err = a.mutate(func(s *project.State) error {
				parent := s.Root.ID()
				if parentArg != "" {
					if parent, err = resolveID(s, parentArg); err != nil {
						return err
					}
				}
				if !s.IsContainer(parent) {
					p, _ := s.Find(parent)
					return fmt.Errorf("%s %s is not a container", p.Kind(), widget.ShortID(parent))
				}
				at := widget.End
				if index >= 0 {
					at = index
				}
				if !s.Insert(n, parent, at) {
					return fmt.Errorf("cannot insert %s", k)
				}
				for _, kv := range sets {
					name, value, ok := strings.Cut(kv, "=")
					if !ok {
						return fmt.Errorf("--set %q: want prop=value", kv)
					}
					if err := s.SetProperty(n.ID(), name, value); err != nil {
						return err
					}
				}
				s.Select(n.ID())
				return nil
			})
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), n.ID())
			return nil
		},
	}
	cmd.Flags().StringVar(&parentArg, "parent", "", "container id (default: root)")
	cmd.Flags().IntVar(&index, "index", -1, "position among the parent's children (default: last)")
	cmd.Flags().StringArrayVar(&sets, "set", nil, "initial property as prop=value (repeatable)")
	return cmd
}

func newRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm [id]",
		Short: "Delete a node and everything under it",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, optionalArg(args, 0))
				if err != nil {
					return err
				}
				if id == s.Root.ID() {
					return fmt.Errorf("the root layout cannot be deleted")
				}
				if !s.Delete(id) {
					return fmt.Errorf("%w: %s", project.ErrNodeNotFound, id)
				}
				return nil
			})
		},
	}
}
