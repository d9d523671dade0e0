package main

import (
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/charmbracelet/huh"
	"github.com/chzyer/readline"
	"github.com/spf13/cobra"

	"aether/cmd/aether/widget"
)

var errInSession = errors.New("already in an interactive session")

// shellBuiltins are handled by the shell itself rather than the command tree.
var shellBuiltins = []struct{ name, help string }{
	{"undo", "revert the last change"},
	{"redo", "reapply the last undone change"},
	{"save", "write the project file"},
	{"quit", "leave the shell (asks when there are unsaved changes)"},
}

func newShellCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "shell",
		Short: "Edit the project interactively with undo and redo",
		Long: "Start a line-oriented session on the project. Every " + appName + " command\n" +
			"is available without the program name. Changes stay in memory until\n" +
			"`save`; `undo` and `redo` step through them.",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if a.live != nil {
				return errInSession
			}
			if err := a.openSession(); err != nil {
				return err
			}
			defer func() { a.live = nil }()
			return runShell(a)
		},
	}
}

func runShell(a *app) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            a.prompt(),
		HistoryFile:       filepath.Join(a.configDir, "shell_history"),
		AutoComplete:      shellCompleter(a),
		InterruptPrompt:   "^C",
		EOFPrompt:         "quit",
		HistorySearchFold: true,
	})
	if err != nil {
		return err
	}
	defer rl.Close()

	fmt.Fprintf(rl.Stdout(), "%s shell on %s. Type help for commands, quit to leave.\n", appName, a.live.path)
	for {
		rl.SetPrompt(a.prompt())
		line, err := rl.Readline()
		switch {
		case errors.Is(err, readline.ErrInterrupt):
			continue
		case errors.Is(err, io.EOF):
			if a.confirmLeave() {
				return nil
			}
			continue
		case err != nil:
			return err
		}

		args, err := splitWords(line)
		if err != nil {
			fmt.Fprintln(rl.Stderr(), styleErr.Render("Error:"), err)
			continue
		}
		if len(args) == 0 {
			continue
		}
		if args[0] == "quit" || args[0] == "exit" {
			if a.confirmLeave() {
				return nil
			}
			continue
		}
		if err := a.shellLine(args, rl.Stdout(), rl.Stderr()); err != nil {
			fmt.Fprintln(rl.Stderr(), styleErr.Render("Error:"), err)
		}
	}
}

// shellLine runs one parsed input line against the live session.
func (a *app) shellLine(args []string, out, errOut io.Writer) error {
	switch args[0] {
	case "undo":
		return a.live.undo()
	case "redo":
		return a.live.redo()
	case "save":
		if err := a.live.save(); err != nil {
			return err
		}
		fmt.Fprintf(out, "saved %s\n", a.live.path)
		return nil
	case "help":
		if len(args) == 1 {
			fmt.Fprintln(out, styleTitle.Render("Shell commands"))
			for _, b := range shellBuiltins {
				fmt.Fprintf(out, "  %-8s %s\n", b.name, b.help)
			}
			fmt.Fprintln(out)
		}
	}
	root := newRootCmd(a)
	root.SetArgs(args)
	root.SetOut(out)
	root.SetErr(errOut)
	return root.Execute()
}

func (a *app) prompt() string {
	mark := ""
	if a.live.dirty() {
		mark = "*"
	}
	return fmt.Sprintf("%s:%s%s> ", appName, a.live.st.Name, mark)
}

// confirmLeave reports whether the session may end, asking first when there
// are unsaved changes.
func (a *app) confirmLeave() bool {
	if !a.live.dirty() {
		return true
	}
	discard := false
	err := huh.NewConfirm().
		Title("Discard unsaved changes to " + a.live.path + "?").
		Affirmative("Discard").
		Negative("Keep editing").
		Value(&discard).
		Run()
	return err == nil && discard
}

// shellCompleter mirrors the command tree. Commands that take ids complete
// the short ids of the live project.
func shellCompleter(a *app) readline.AutoCompleter {
	var items []readline.PrefixCompleterInterface
	for _, c := range newRootCmd(a).Commands() {
		items = append(items, commandItem(a, c))
	}
	for _, b := range shellBuiltins {
		items = append(items, readline.PcItem(b.name))
	}
	items = append(items, readline.PcItem("help"))
	return readline.NewPrefixCompleter(items...)
}

func commandItem(a *app, c *cobra.Command) readline.PrefixCompleterInterface {
	var children []readline.PrefixCompleterInterface
	for _, sub := range c.Commands() {
		children = append(children, commandItem(a, sub))
	}
	for _, v := range c.ValidArgs {
		children = append(children, readline.PcItem(v))
	}
	if len(children) == 0 && strings.Contains(c.Use, "id") {
		children = append(children, readline.PcItemDynamic(func(string) []string {
			var ids []string
			for _, id := range a.live.st.AllIDs() {
				ids = append(ids, widget.ShortID(id))
			}
			return ids
		}))
	}
	return readline.PcItem(c.Name(), children...)
}

// splitWords breaks a shell line into words. Single quotes keep everything
// literally; inside double quotes a backslash escapes only `"` and `\`.
func splitWords(line string) ([]string, error) {
	var (
		words  []string
		cur    strings.Builder
		inWord bool
		quote  rune
	)
	rs := []rune(line)
	for i := 0; i < len(rs); i++ {
		r := rs[i]
		switch {
		case quote == '\'':
			if r == '\'' {
				quote = 0
			} else {
				cur.WriteRune(r)
			}
		case quote == '"':
			switch {
			case r == '"':
				quote = 0
			case r == '\\' && i+1 < len(rs) && (rs[i+1] == '"' || rs[i+1] == '\\'):
				i++
				cur.WriteRune(rs[i])
			default:
				cur.WriteRune(r)
			}
		case r == '\\':
			if i+1 == len(rs) {
				return nil, errors.New("trailing backslash")
			}
			i++
			cur.WriteRune(rs[i])
			inWord = true
		case r == '\'' || r == '"':
			quote = r
			inWord = true
		case unicode.IsSpace(r):
			if inWord {
				words = append(words, cur.String())
				cur.Reset()
				inWord = false
			}
		default:
			cur.WriteRune(r)
			inWord = true
		}
	}
	if quote != 0 {
		return nil, fmt.Errorf("unterminated %c quote", quote)
	}
	if inWord {
		words = append(words, cur.String())
	}
	return words, nil
}
