package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

func newVarCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "var",
		Short: "Manage project variables",
	}
	cmd.AddCommand(newVarAddCmd(a), newVarRmCmd(a), newVarSetCmd(a), newVarListCmd(a))
	return cmd
}

func newVarAddCmd(a *app) *cobra.Command {
	var value string
	typ := valueTypeFlag(widget.TypeString)
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Declare a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				return s.AddVariable(project.Variable{Name: args[0], Type: typ.valueType(), Value: value})
			})
		},
	}
	cmd.Flags().Var(typ, "type", "variable type: "+joinAllowed(typ))
	cmd.Flags().StringVar(&value, "value", "", "default value")
	_ = cmd.RegisterFlagCompletionFunc("type", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return typ.complete(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newVarRmCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "rm <name>",
		Short: "Remove a variable; bindings to it are reported by validate",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.mutate(func(s *project.State) error {
				return s.RemoveVariable(args[0])
			})
		},
	}
}

func newVarSetCmd(a *app) *cobra.Command {
	var (
		value  string
		rename string
	)
	typ := valueTypeFlag("")
	cmd := &cobra.Command{
		Use:   "set <name>",
		Short: "Change the default value, type or name of a variable",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			flags := cmd.Flags()
			if !flags.Changed("value") && !flags.Changed("type") && !flags.Changed("rename") {
				return fmt.Errorf("nothing to change: use --value, --type or --rename")
			}
			return a.mutate(func(s *project.State) error {
				name := args[0]
				if flags.Changed("value") {
					if err := s.SetVariableValue(name, value); err != nil {
						return err
					}
				}
				if flags.Changed("type") {
					if err := s.SetVariableType(name, typ.valueType()); err != nil {
						return err
					}
				}
				if flags.Changed("rename") {
					return s.RenameVariable(name, rename)
				}
				return nil
			})
		},
	}
	cmd.Flags().StringVar(&value, "value", "", "new default value")
	cmd.Flags().Var(typ, "type", "new type: "+joinAllowed(typ))
	cmd.Flags().StringVar(&rename, "rename", "", "new name; bindings and actions follow")
	return cmd
}

func newVarListCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "NAME\tTYPE\tDEFAULT")
			for _, v := range s.SortedVariables() {
				fmt.Fprintf(tw, "%s\t%s\t%s\n", v.Name, v.Type, v.Value)
			}
			return tw.Flush()
		},
	}
}
