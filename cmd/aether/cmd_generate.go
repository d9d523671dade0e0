package main

import (
	"errors"
	"fmt"
	"os"
	"os/signal"
	"time"

	"github.com/spf13/cobra"

	"aether/cmd/aether/codegen"
	"aether/cmd/aether/project"
	"aether/cmd/aether/toolchain"
	"aether/pkg/lib"
)

// exitInvalid is the exit status when validation finds problems.
const exitInvalid = 2

var errInvalid = errors.New("project has validation errors")

// validated prints the problems of s, if any, and returns an error carrying
// exitInvalid.
func validated(cmd *cobra.Command, s *project.State) error {
	issues := project.Validate(s)
	if len(issues) == 0 {
		return nil
	}
	printIssues(cmd.ErrOrStderr(), issues)
	return lib.WithExitCode(errInvalid, exitInvalid)
}

func newValidateCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Check bindings, actions and assets against the registries",
		Long: "Check bindings, actions and assets against the registries.\n" +
			"Exits with status 2 when problems are found.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			issues := project.Validate(s)
			printIssues(cmd.OutOrStdout(), issues)
			if len(issues) > 0 {
				return lib.WithExitCode(errInvalid, exitInvalid)
			}
			return nil
		},
	}
}

func (a *app) generate(s *project.State) codegen.Files {
	opts := a.cfg.codegenOptions()
	opts.Logger = a.log
	return codegen.Generate(s, opts)
}

func newGenerateCmd(a *app) *cobra.Command {
	file := generatedFileFlag()
	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Print the generated Rust sources",
		Long: "Print the generated Cargo.toml, src/main.rs and src/app.rs.\n" +
			"Generation does not validate; run `" + appName + " validate` first.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			files := a.generate(s)
			w := cmd.OutOrStdout()
			if f := file.String(); f != "" {
				path := generatedFiles[f]
				for _, gf := range files.List() {
					if gf.Path == path {
						fmt.Fprint(w, gf.Text)
					}
				}
				return nil
			}
			for i, gf := range files.List() {
				if i > 0 {
					fmt.Fprintln(w)
				}
				fmt.Fprintln(w, styleDim.Render("// ---- "+gf.Path))
				fmt.Fprint(w, gf.Text)
			}
			return nil
		},
	}
	cmd.Flags().Var(file, "file", "print a single file: "+joinAllowed(file))
	_ = cmd.RegisterFlagCompletionFunc("file", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return file.complete(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

func newExportCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "export <dir>",
		Short: "Write the generated crate and its assets to a folder",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			files := a.generate(s)
			if err := toolchain.Export(args[0], toolchain.NewBundle(files, a.baseDir())); err != nil {
				return err
			}
			fmt.Fprintf(cmd.ErrOrStderr(), "exported crate %s to %s\n", files.Crate, args[0])
			return nil
		},
	}
}

func newCheckCmd(a *app) *cobra.Command {
	var timeout time.Duration
	cmd := &cobra.Command{
		Use:   "check",
		Short: "Validate, then compile-check the generated crate",
		Long: "Validate the project, generate the crate into a temporary directory and\n" +
			"run the configured toolchain command against it (default: cargo check).\n" +
			"The toolchain output is printed unmodified.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.state()
			if err != nil {
				return err
			}
			if err := validated(cmd, s); err != nil {
				return err
			}

			checker := a.cfg.checker()
			checker.Logger = a.log
			if cmd.Flags().Changed("timeout") {
				checker.Timeout = timeout
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), os.Interrupt)
			defer stop()

			res, err := checker.Check(ctx, toolchain.NewBundle(a.generate(s), a.baseDir()))
			if err != nil {
				return err
			}
			fmt.Fprint(cmd.OutOrStdout(), res.Diagnostics)
			switch {
			case res.OK:
				fmt.Fprintln(cmd.ErrOrStderr(), styleOK.Render(fmt.Sprintf("✓ compiles (%s)", res.Elapsed.Round(time.Millisecond))))
				return nil
			case res.TimedOut:
				return fmt.Errorf("compile check timed out after %s", res.Elapsed.Round(time.Millisecond))
			}
			return fmt.Errorf("compile check failed")
		},
	}
	cmd.Flags().DurationVar(&timeout, "timeout", 0, "limit for the toolchain run (default from config)")
	return cmd
}
