package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"aether/cmd/aether/project"
	"aether/cmd/aether/projectjson"
	"aether/cmd/aether/widget"
)

// app is the state shared by every command of one invocation. When live is
// set the commands work on an in-memory session (shell, edit); otherwise
// each command loads the project file and saves it back after a mutation.
type app struct {
	configDir   string
	cfg         Config
	projectPath string
	log         *slog.Logger
	ready       bool

	live *session
}

// session is an in-memory project with undo history.
type session struct {
	path  string
	st    *project.State
	hist  *project.History
	saved string
}

func newApp() *app {
	return &app{log: slog.Default()}
}

// setup resolves config and logging once per app.
func (a *app) setup(f rootFlags, lenient bool) error {
	if a.ready {
		return nil
	}
	level := slog.LevelInfo
	if f.verbose {
		level = slog.LevelDebug
	}
	a.log = slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(a.log)

	dir := f.configDir
	if dir == "" {
		var err error
		if dir, err = resolveConfigDir(); err != nil {
			return err
		}
	}
	a.configDir = dir

	cfg, err := loadConfig(dir)
	if err != nil {
		if !lenient {
			return err
		}
		a.log.Warn("config ignored", "err", err)
		cfg = defaultConfig()
	}
	a.cfg = cfg

	a.projectPath = f.project
	if a.projectPath == "" {
		a.projectPath = cfg.Project
	}
	a.ready = true
	return nil
}

// state returns the project the command should read.
func (a *app) state() (*project.State, error) {
	if a.live != nil {
		return a.live.st, nil
	}
	return projectjson.Load(a.projectPath)
}

// mutate applies fn to a copy of the project and keeps the copy only when
// fn succeeds. File-backed apps save the result; live sessions record the
// previous state for undo.
func (a *app) mutate(fn func(s *project.State) error) error {
	cur, err := a.state()
	if err != nil {
		return err
	}
	next := cur.Clone()
	if err := fn(next); err != nil {
		return err
	}
	if a.live != nil {
		a.live.hist.Record(cur)
		a.live.st = next
		return nil
	}
	return projectjson.Save(a.projectPath, next)
}

// replace swaps in a whole new project, as `new` does.
func (a *app) replace(s *project.State, force bool) error {
	if a.live != nil {
		a.live.hist.Record(a.live.st)
		a.live.st = s
		return nil
	}
	if !force {
		if _, err := os.Stat(a.projectPath); err == nil {
			return fmt.Errorf("%s already exists (use --force to overwrite)", a.projectPath)
		}
	}
	return projectjson.Save(a.projectPath, s)
}

// baseDir is where relative asset paths are resolved.
func (a *app) baseDir() string {
	path := a.projectPath
	if a.live != nil {
		path = a.live.path
	}
	return filepath.Dir(path)
}

// openSession loads the project file into a live session.
func (a *app) openSession() error {
	if a.live != nil {
		return nil
	}
	st, err := projectjson.Load(a.projectPath)
	if errors.Is(err, os.ErrNotExist) {
		st, err = project.FromTemplate(a.cfg.Editor.DefaultTemplate)
		a.log.Info("starting a new project", "path", a.projectPath)
	}
	if err != nil {
		return err
	}
	a.live = &session{
		path: a.projectPath,
		st:   st,
		hist: project.NewHistory(a.cfg.Editor.HistoryLimit),
	}
	if _, statErr := os.Stat(a.projectPath); statErr == nil {
		a.live.saved, _ = projectjson.Fingerprint(st)
	}
	return nil
}

func (s *session) dirty() bool {
	fp, err := projectjson.Fingerprint(s.st)
	return err != nil || fp != s.saved
}

func (s *session) save() error {
	if err := projectjson.Save(s.path, s.st); err != nil {
		return err
	}
	fp, err := projectjson.Fingerprint(s.st)
	if err != nil {
		return err
	}
	s.saved = fp
	return nil
}

func (s *session) undo() error {
	prev, err := s.hist.Undo(s.st)
	if err != nil {
		return err
	}
	s.st = prev
	return nil
}

func (s *session) redo() error {
	next, err := s.hist.Redo(s.st)
	if err != nil {
		return err
	}
	s.st = next
	return nil
}

// resolveID turns a command-line id into a node id. A unique prefix of the
// canonical form is enough. An empty arg means the single selected node.
func resolveID(s *project.State, arg string) (widget.ID, error) {
	if arg == "" {
		sel := s.Selected()
		if len(sel) != 1 {
			return widget.ID{}, fmt.Errorf("no id given and %d nodes are selected", len(sel))
		}
		return sel[0], nil
	}
	if id, err := widget.ParseID(arg); err == nil {
		if _, ok := s.Find(id); !ok {
			return widget.ID{}, fmt.Errorf("%w: %s", project.ErrNodeNotFound, arg)
		}
		return id, nil
	}
	prefix := strings.ToLower(arg)
	var matches []widget.ID
	for _, id := range s.AllIDs() {
		if strings.HasPrefix(id.String(), prefix) {
			matches = append(matches, id)
		}
	}
	switch len(matches) {
	case 0:
		return widget.ID{}, fmt.Errorf("%w: %s", project.ErrNodeNotFound, arg)
	case 1:
		return matches[0], nil
	}
	return widget.ID{}, fmt.Errorf("id prefix %q is ambiguous (%d nodes)", arg, len(matches))
}

// optionalArg returns args[i] or "".
func optionalArg(args []string, i int) string {
	if i < len(args) {
		return args[i]
	}
	return ""
}

// parseKind accepts a kind display name in any case, with or without
// spaces, dashes or underscores: "Text Edit", "text-edit", "textedit".
func parseKind(s string) (widget.Kind, error) {
	want := compactName(s)
	for _, k := range widget.Kinds() {
		if compactName(string(k)) == want {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: %q", widget.ErrUnknownKind, s)
}

func compactName(s string) string {
	return strings.Map(func(r rune) rune {
		switch r {
		case ' ', '-', '_':
			return -1
		}
		return r
	}, strings.ToLower(s))
}

// kindArgs lists the kinds in the dashed form used for completion.
func kindArgs() []string {
	var out []string
	for _, k := range widget.Kinds() {
		out = append(out, strings.ReplaceAll(strings.ToLower(string(k)), " ", "-"))
	}
	return out
}
