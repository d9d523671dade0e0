package main

import (
	"fmt"
	"os"

	"github.com/charmbracelet/huh"
	"github.com/spf13/cobra"

	"aether/cmd/aether/project"
)

func newNewCmd(a *app) *cobra.Command {
	var (
		force       bool
		interactive bool
	)
	tmpl := templateFlag("")
	cmd := &cobra.Command{
		Use:   "new [name]",
		Short: "Create a project file from a template",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := optionalArg(args, 0)
			t := tmpl.String()
			if t == "" {
				t = a.cfg.Editor.DefaultTemplate
			}
			if interactive {
				if err := runNewForm(&name, &t, &force, a.projectPath); err != nil {
					return err
				}
			}
			s, err := project.FromTemplate(t)
			if err != nil {
				return err
			}
			if name != "" {
				s.Name = name
			}
			if err := a.replace(s, force); err != nil {
				return err
			}
			if a.live == nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "created %s from template %s\n", a.projectPath, t)
			}
			return nil
		},
	}
	cmd.Flags().Var(tmpl, "template", "starter template: "+joinAllowed(tmpl))
	cmd.Flags().BoolVar(&force, "force", false, "overwrite an existing project file")
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "ask for name and template")
	_ = cmd.RegisterFlagCompletionFunc("template", func(*cobra.Command, []string, string) ([]string, cobra.ShellCompDirective) {
		return tmpl.complete(), cobra.ShellCompDirectiveNoFileComp
	})
	return cmd
}

// runNewForm asks for the project name and template, and for confirmation
// when the project file already exists.
func runNewForm(name, tmpl *string, force *bool, path string) error {
	opts := make([]huh.Option[string], 0, len(project.Templates()))
	for _, t := range project.Templates() {
		opts = append(opts, huh.NewOption(t+"  "+project.TemplateAbout(t), t))
	}
	fields := []huh.Field{
		huh.NewInput().
			Title("Project name").
			Placeholder("keep the template's name").
			Value(name),
		huh.NewSelect[string]().
			Title("Template").
			Options(opts...).
			Value(tmpl),
	}
	if _, err := os.Stat(path); err == nil && !*force {
		fields = append(fields, huh.NewConfirm().
			Title(path+" already exists. Overwrite it?").
			Value(force))
	}
	return huh.NewForm(huh.NewGroup(fields...)).Run()
}
