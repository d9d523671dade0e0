package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aether/cmd/aether/widget"
)

func newTreeCmd(a *app) *cobra.Command {
	var fullIDs bool
	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Print the widget hierarchy",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", styleTitle.Render(s.Name))
			printTree(cmd.OutOrStdout(), s, fullIDs)
			return nil
		},
	}
	cmd.Flags().BoolVar(&fullIDs, "ids", false, "print full ids")
	return cmd
}

func newPaletteCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "palette",
		Short: "List the widgets that can be added",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			w := cmd.OutOrStdout()
			for i, g := range widget.Palette() {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, styleTitle.Render(g.Category))
				for _, k := range g.Kinds {
					arg := strings.ReplaceAll(strings.ToLower(string(k)), " ", "-")
					fmt.Fprintf(w, "  %-18s %s\n", k, styleDim.Render(arg))
				}
			}
			return nil
		},
	}
}

func newPropsCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "props [id]",
		Short: "Show the properties, bindings and events of a node",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			id, err := resolveID(s, optionalArg(args, 0))
			if err != nil {
				return err
			}
			n, _ := s.Find(id)
			printProps(cmd.OutOrStdout(), s, n)
			return nil
		},
	}
}
