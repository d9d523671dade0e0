package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
)

func newAssetCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "asset",
		Short: "Manage project assets",
	}

	kind := assetKindFlag()
	add := &cobra.Command{
		Use:   "add <name> <path>",
		Short: "Register a file; relative paths are resolved from the project file",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				return s.AddAsset(project.Asset{Name: args[0], Kind: kind.assetKind(), Path: args[1]})
			})
		},
	}
	add.Flags().Var(kind, "kind", "asset kind: "+joinAllowed(kind))
	_ = add.RegisterFlagCompletionFunc("kind", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return kind.complete(), cobra.ShellCompDirectiveNoFileComp
	})

	rm := &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove an asset",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				return s.RemoveAsset(args[0])
			})
		},
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List assets",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tKIND\tPATH")
			for _, name := range s.AssetNames() {
				as := s.Assets[name]
				fmt.Fprintf(tw, "%s\t%s\t%s\n", as.Name, as.Kind, as.Path)
			}
			return tw.Flush()
		},
	}

	cmd.AddCommand(add, rm, list)
	return cmd
}
