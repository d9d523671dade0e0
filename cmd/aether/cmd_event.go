package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

func eventNames() []string {
	names := make([]string, len(widget.Events))
	for i, e := range widget.Events {
		names[i] = string(e)
	}
	return names
}

func newEventCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "event",
		Short: "Attach actions to widget events",
		Long: "Attach actions to widget events.\n\n" +
			"Events: " + strings.Join(eventNames(), ", ") + ".\n" +
			"Labels such as \"On Click\" are accepted as well.",
	}

	var (
		increment string
		set       string
		custom    string
	)
	setCmd := &cobra.Command{
		Use:   "set [id] <event>",
		Short: "Set the action run when an event fires",
		Example: "  " + appName + " event set 1a2b Clicked --increment counter\n" +
			"  " + appName + " event set 1a2b Hovered --set 'msg=hovering'\n" +
			"  " + appName + " event set 1a2b Changed --custom 'println!(\"changed\");'",
		Args: cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idArg, rest := splitTarget(args, 1)
			e, err := widget.ParseEvent(rest[0])
			if err != nil {
				return err
			}
			action, err := actionFromFlags(cmd, increment, set, custom)
			if err != nil {
				return err
			}
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, idArg)
				if err != nil {
					return err
				}
				return s.SetEvent(id, e, action)
			})
		},
	}
	setCmd.Flags().StringVar(&increment, "increment", "", "add one to a numeric variable")
	setCmd.Flags().StringVar(&set, "set", "", "assign a literal, as var=value")
	setCmd.Flags().StringVar(&custom, "custom", "", "Rust statements run verbatim")
	setCmd.MarkFlagsMutuallyExclusive("increment", "set", "custom")
	setCmd.MarkFlagsOneRequired("increment", "set", "custom")

	rmCmd := &cobra.Command{
		Use:   "rm [id] <event>",
		Short: "Remove the action of an event",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			idArg, rest := splitTarget(args, 1)
			e, err := widget.ParseEvent(rest[0])
			if err != nil {
				return err
			}
			return a.mutate(func(s *project.State) error {
				id, err := resolveID(s, idArg)
				if err != nil {
					return err
				}
				if !s.ClearEvent(id, e) {
					return fmt.Errorf("%s has no %s action", widget.ShortID(id), e)
				}
				return nil
			})
		},
	}

	cmd.AddCommand(setCmd, rmCmd)
	return cmd
}

func actionFromFlags(cmd *cobra.Command, increment, set, custom string) (widget.Action, error) {
	flags := cmd.Flags()
	switch {
	case flags.Changed("increment"):
		return widget.IncrementAction{Var: increment}, nil
	case flags.Changed("set"):
		name, value, ok := strings.Cut(set, "=")
		if !ok || name == "" {
			return nil, fmt.Errorf("--set %q: want var=value", set)
		}
		return widget.SetAction{Var: name, Value: value}, nil
	case flags.Changed("custom"):
		return widget.CustomAction{Code: custom}, nil
	}
	return nil, fmt.Errorf("one of --increment, --set or --custom is required")
}
