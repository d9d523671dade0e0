package main

import (
	"github.com/spf13/cobra"
)

type rootFlags struct {
	project   string
	configDir string
	verbose   bool
}

// lenientConfig marks commands that still run when config.yml is broken.
const lenientConfig = "lenient-config"

// newRootCmd builds the full command tree. The shell builds a fresh tree
// per input line against the same app.
func newRootCmd(a *app) *cobra.Command {
	var f rootFlags
	root := &cobra.Command{
		Use:   appName,
		Short: "Design egui interfaces as a widget tree and generate the Rust code",
		Long: appName + " edits a widget tree stored in a JSON project file and\n" +
			"generates a standalone eframe application from it.\n\n" +
			"Ids may be abbreviated to a unique prefix. Commands that take an\n" +
			"optional id use the single selected node when it is omitted.",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			_, lenient := cmd.Annotations[lenientConfig]
			return a.setup(f, lenient)
		},
	}
	root.PersistentFlags().StringVarP(&f.project, "project", "p", "", "project file (default from config, else "+defaultProjectFile+")")
	root.PersistentFlags().StringVar(&f.configDir, "config-dir", "", "config directory (default: auto-resolved)")
	root.PersistentFlags().BoolVarP(&f.verbose, "verbose", "v", false, "debug logging on stderr")

	root.AddCommand(
		newNewCmd(a),
		newTreeCmd(a),
		newPaletteCmd(a),
		newAddCmd(a),
		newRmCmd(a),
		newMoveCmd(a),
		newLayoutCmd(a),
		newSetCmd(a),
		newPropsCmd(a),
		newVarCmd(a),
		newAssetCmd(a),
		newBindCmd(a),
		newUnbindCmd(a),
		newEventCmd(a),
		newValidateCmd(a),
		newGenerateCmd(a),
		newExportCmd(a),
		newCheckCmd(a),
		newSelectCmd(a),
		newCopyCmd(a),
		newPasteCmd(a),
		newShellCmd(a),
		newEditCmd(a),
		newConfigCmd(a),
	)

	root.SilenceErrors = true
	root.SilenceUsage = true
	return root
}
