package main

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"
)

func newEditCmd(a *app) *cobra.Command {
	var noTUI bool
	cmd := &cobra.Command{
		Use:   "edit",
		Short: "Edit the hierarchy in a terminal UI",
		Long: "Browse and edit the widget tree in a full-screen terminal UI.\n" +
			"Changes are kept in memory until saved with s. Press ? for all keys.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if noTUI {
				s, err := a.state()
				if err != nil {
					return err
				}
				printTree(cmd.OutOrStdout(), s, false)
				return nil
			}
			if a.live == nil {
				if err := a.openSession(); err != nil {
					return err
				}
				defer func() { a.live = nil }()
			}
			_, err := tea.NewProgram(newEditModel(a), tea.WithAltScreen()).Run()
			return err
		},
	}
	cmd.Flags().BoolVar(&noTUI, "no-tui", false, "print the tree instead of opening the editor")
	return cmd
}
