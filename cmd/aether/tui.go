package main

import (
	"bytes"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

type editMode int

const (
	modeBrowse editMode = iota
	modeInput
	modeConfirm
)

type inputPurpose int

const (
	inputAdd inputPurpose = iota
	inputSet
	inputBind
)

type editPanel int

const (
	panelProps editPanel = iota
	panelCode
	panelIssues
)

// pendingAction is what a confirmation dialog guards.
type pendingAction int

const (
	pendingNone pendingAction = iota
	pendingDelete
	pendingQuit
)

var (
	stylePane = lipgloss.NewStyle().
			BorderStyle(lipgloss.NormalBorder()).
			BorderForeground(lipgloss.Color("240")).
			Padding(0, 1)

	styleCursor = lipgloss.NewStyle().
			Foreground(lipgloss.Color("229")).
			Background(lipgloss.Color("57"))

	styleStatus = lipgloss.NewStyle().
			Foreground(lipgloss.Color("241")).
			Padding(0, 1)
)

type editModel struct {
	a      *app
	rows   []treeRow
	cursor int

	mode    editMode
	purpose inputPurpose
	input   textinput.Model

	form    *huh.Form
	confirm *bool
	pending pendingAction
	target  widget.ID

	// redoFocus holds the focused node at each undo, so redo can return to it.
	redoFocus []widget.ID

	panel     editPanel
	help      help.Model
	status    string
	statusErr bool

	width, height int
	quitting      bool
}

func newEditModel(a *app) editModel {
	ti := textinput.New()
	ti.CharLimit = 512
	m := editModel{a: a, input: ti, help: help.New(), height: 24, width: 100}
	m.refresh(a.live.st.Root.ID())
	return m
}

func (m editModel) state() *project.State { return m.a.live.st }

// refresh rebuilds the rows and puts the cursor on focus when it is still
// in the tree.
func (m *editModel) refresh(focus widget.ID) {
	m.rows = flatten(m.state())
	for i, r := range m.rows {
		if r.node.ID() == focus {
			m.cursor = i
			return
		}
	}
	m.cursor = min(m.cursor, len(m.rows)-1)
}

func (m editModel) current() widget.Node {
	return m.rows[m.cursor].node
}

func (m *editModel) report(err error, ok string) {
	if err != nil {
		m.status, m.statusErr = err.Error(), true
		return
	}
	m.status, m.statusErr = ok, false
}

func (m editModel) Init() tea.Cmd {
	return nil
}

func (m editModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if ws, ok := msg.(tea.WindowSizeMsg); ok {
		m.width, m.height = ws.Width, ws.Height
		m.help.Width = ws.Width
		return m, nil
	}
	switch m.mode {
	case modeInput:
		return m.updateInput(msg)
	case modeConfirm:
		return m.updateConfirm(msg)
	}
	return m.updateBrowse(msg)
}

func (m editModel) updateBrowse(msg tea.Msg) (tea.Model, tea.Cmd) {
	k, ok := msg.(tea.KeyMsg)
	if !ok {
		return m, nil
	}
	id := m.current().ID()
	switch {
	case key.Matches(k, editKeys.Quit):
		if m.a.live.dirty() {
			return m.ask("Quit without saving?", pendingQuit, id)
		}
		m.quitting = true
		return m, tea.Quit

	case key.Matches(k, editKeys.Up):
		m.cursor = max(m.cursor-1, 0)
	case key.Matches(k, editKeys.Down):
		m.cursor = min(m.cursor+1, len(m.rows)-1)

	case key.Matches(k, editKeys.MoveUp):
		m.apply(id, "moved up", func(s *project.State) error {
			return boolErr(s.MoveUp(id), "already first")
		})
	case key.Matches(k, editKeys.MoveDown):
		m.apply(id, "moved down", func(s *project.State) error {
			return boolErr(s.MoveDown(id), "already last")
		})

	case key.Matches(k, editKeys.Add):
		return m.prompt(inputAdd, "add> ", "kind, e.g. button or text-edit")
	case key.Matches(k, editKeys.Set):
		return m.prompt(inputSet, "set> ", "prop=value")
	case key.Matches(k, editKeys.Bind):
		return m.prompt(inputBind, "bind> ", "prop=variable")

	case key.Matches(k, editKeys.Delete):
		if id == m.state().Root.ID() {
			m.report(fmt.Errorf("the root layout cannot be deleted"), "")
			return m, nil
		}
		if c, ok := widget.AsContainer(m.current()); ok && len(c.Children()) > 0 {
			return m.ask(fmt.Sprintf("Delete %s and its %d children?", c.Kind(), widget.Count(c)-1), pendingDelete, id)
		}
		m.deleteNode(id)

	case key.Matches(k, editKeys.Duplicate):
		var dup widget.ID
		m.apply(id, "duplicated", func(s *project.State) error {
			var ok bool
			dup, ok = s.Duplicate(id)
			return boolErr(ok, "the root cannot be duplicated")
		})
		if !m.statusErr {
			m.refresh(dup)
		}

	case key.Matches(k, editKeys.Select):
		m.apply(id, "selection updated", func(s *project.State) error {
			sel := s.Selected()
			if _, on := s.Selection[id]; on {
				sel = removeID(sel, id)
			} else {
				sel = append(sel, id)
			}
			s.Select(sel...)
			return nil
		})

	case key.Matches(k, editKeys.Layout):
		next := nextRootKind(m.state().RootLayoutType())
		m.apply(id, "root is now "+next, func(s *project.State) error {
			return boolErr(s.SetRootLayoutType(next), "cannot change the root layout")
		})

	case key.Matches(k, editKeys.Undo):
		err := m.a.live.undo()
		if err == nil {
			m.redoFocus = append(m.redoFocus, id)
		}
		m.report(err, "undone")
		m.refresh(id)
	case key.Matches(k, editKeys.Redo):
		err := m.a.live.redo()
		focus := id
		if err == nil && len(m.redoFocus) > 0 {
			focus = m.redoFocus[len(m.redoFocus)-1]
			m.redoFocus = m.redoFocus[:len(m.redoFocus)-1]
		}
		m.report(err, "redone")
		m.refresh(focus)
	case key.Matches(k, editKeys.Save):
		m.report(m.a.live.save(), "saved "+m.a.live.path)

	case key.Matches(k, editKeys.Code):
		m.panel = togglePanel(m.panel, panelCode)
	case key.Matches(k, editKeys.Issues):
		m.panel = togglePanel(m.panel, panelIssues)
	case key.Matches(k, editKeys.Help):
		m.help.ShowAll = !m.help.ShowAll
	}
	return m, nil
}

// apply runs fn as one undoable step and keeps the cursor on focus.
func (m *editModel) apply(focus widget.ID, ok string, fn func(s *project.State) error) {
	err := m.a.mutate(fn)
	if err == nil {
		m.redoFocus = nil
	}
	m.report(err, ok)
	m.refresh(focus)
}

func (m *editModel) deleteNode(id widget.ID) {
	next := m.rows[max(m.cursor-1, 0)].node.ID()
	m.apply(next, "deleted", func(s *project.State) error {
		return boolErr(s.Delete(id), "cannot delete")
	})
}

func (m editModel) prompt(p inputPurpose, prompt, placeholder string) (tea.Model, tea.Cmd) {
	m.mode = modeInput
	m.purpose = p
	m.input.Reset()
	m.input.Prompt = prompt
	m.input.Placeholder = placeholder
	cmd := m.input.Focus()
	return m, cmd
}

func (m editModel) updateInput(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok {
		switch k.Type {
		case tea.KeyEsc:
			m.mode = modeBrowse
			m.input.Blur()
			return m, nil
		case tea.KeyEnter:
			m.mode = modeBrowse
			m.input.Blur()
			m.submit(strings.TrimSpace(m.input.Value()))
			return m, nil
		}
	}
	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	return m, cmd
}

func (m *editModel) submit(text string) {
	if text == "" {
		return
	}
	cur := m.current()
	switch m.purpose {
	case inputAdd:
		k, err := parseKind(text)
		if err != nil {
			m.report(err, "")
			return
		}
		n := widget.MustNew(k)
		m.apply(n.ID(), "added "+string(k), func(s *project.State) error {
			parent, index := insertionPoint(s, cur.ID())
			return boolErr(s.Insert(n, parent, index), "cannot insert "+string(k))
		})
	case inputSet:
		name, value, ok := strings.Cut(text, "=")
		if !ok {
			m.report(fmt.Errorf("want prop=value"), "")
			return
		}
		name = strings.TrimSpace(name)
		m.apply(cur.ID(), "set "+name, func(s *project.State) error {
			if name == "offset" {
				off, err := parseOffset(value)
				if err != nil {
					return err
				}
				return s.SetOffset(cur.ID(), off)
			}
			return s.SetProperty(cur.ID(), name, value)
		})
	case inputBind:
		prop, variable, ok := strings.Cut(text, "=")
		if !ok {
			m.report(fmt.Errorf("want prop=variable"), "")
			return
		}
		prop, variable = strings.TrimSpace(prop), strings.TrimSpace(variable)
		m.apply(cur.ID(), "bound "+prop, func(s *project.State) error {
			if variable == "" {
				return boolErr(s.Unbind(cur.ID(), prop), prop+" is not bound")
			}
			return s.Bind(cur.ID(), prop, variable)
		})
	}
}

// insertionPoint puts new nodes inside a container under the cursor, or
// right after any other node.
func insertionPoint(s *project.State, at widget.ID) (widget.ID, int) {
	if s.IsContainer(at) {
		return at, widget.End
	}
	parent, idx, ok := widget.FindParent(s.Root, at)
	if !ok {
		return s.Root.ID(), widget.End
	}
	return parent.ID(), idx + 1
}

func (m editModel) ask(title string, p pendingAction, target widget.ID) (tea.Model, tea.Cmd) {
	m.confirm = new(bool)
	m.form = huh.NewForm(huh.NewGroup(
		huh.NewConfirm().
			Title(title).
			Affirmative("Yes").
			Negative("No").
			Value(m.confirm),
	)).WithShowHelp(false)
	m.mode = modeConfirm
	m.pending = p
	m.target = target
	cmd := m.form.Init()
	return m, cmd
}

func (m editModel) updateConfirm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if k, ok := msg.(tea.KeyMsg); ok && k.Type == tea.KeyEsc {
		m.mode, m.pending = modeBrowse, pendingNone
		return m, nil
	}
	f, cmd := m.form.Update(msg)
	if form, ok := f.(*huh.Form); ok {
		m.form = form
	}
	switch m.form.State {
	case huh.StateCompleted:
		m.mode = modeBrowse
		p := m.pending
		m.pending = pendingNone
		if !*m.confirm {
			m.report(nil, "cancelled")
			return m, nil
		}
		switch p {
		case pendingDelete:
			m.deleteNode(m.target)
		case pendingQuit:
			m.quitting = true
			return m, tea.Quit
		}
		return m, nil
	case huh.StateAborted:
		m.mode, m.pending = modeBrowse, pendingNone
		return m, nil
	}
	return m, cmd
}

func (m editModel) View() string {
	if m.quitting {
		return ""
	}
	s := m.state()
	title := styleTitle.Render(appName + "  " + s.Name)
	if m.a.live.dirty() {
		title += styleDim.Render("  (modified)")
	}

	bodyHeight := max(m.height-8, 5)
	paneWidth := max(m.width/2-4, 20)
	left := stylePane.Width(paneWidth).Render(m.treeView(bodyHeight))
	right := stylePane.Width(paneWidth).Render(clip(m.panelView(), bodyHeight))
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, right)

	var footer string
	switch m.mode {
	case modeInput:
		footer = m.input.View()
	case modeConfirm:
		footer = m.form.View()
	default:
		if m.status != "" {
			if m.statusErr {
				footer = styleErr.Render(m.status)
			} else {
				footer = styleStatus.Render(m.status)
			}
		}
	}
	return title + "\n" + body + "\n" + footer + "\n" + m.help.View(editKeys)
}

func (m editModel) treeView(height int) string {
	selected := make(map[widget.ID]bool)
	for _, id := range m.state().Selected() {
		selected[id] = true
	}
	start := 0
	if m.cursor >= height {
		start = m.cursor - height + 1
	}
	end := min(start+height, len(m.rows))

	var b strings.Builder
	for i := start; i < end; i++ {
		r := m.rows[i]
		line := strings.Repeat("  ", r.depth) + rowLabel(r.node, false)
		if selected[r.node.ID()] {
			line += " *"
		}
		if i == m.cursor {
			line = styleCursor.Render(line)
		}
		b.WriteString(line + "\n")
	}
	return strings.TrimSuffix(b.String(), "\n")
}

func (m editModel) panelView() string {
	var buf bytes.Buffer
	switch m.panel {
	case panelCode:
		buf.WriteString(m.a.generate(m.state()).App)
	case panelIssues:
		printIssues(&buf, project.Validate(m.state()))
	default:
		printProps(&buf, m.state(), m.current())
	}
	return strings.TrimSuffix(buf.String(), "\n")
}

func clip(text string, lines int) string {
	ls := strings.Split(text, "\n")
	if len(ls) <= lines {
		return text
	}
	return strings.Join(ls[:lines-1], "\n") + "\n" + styleDim.Render(fmt.Sprintf("… %d more lines", len(ls)-lines+1))
}

func togglePanel(cur, p editPanel) editPanel {
	if cur == p {
		return panelProps
	}
	return p
}

func nextRootKind(cur string) string {
	for i, k := range widget.RootKinds {
		if string(k) == cur {
			return string(widget.RootKinds[(i+1)%len(widget.RootKinds)])
		}
	}
	return string(widget.RootKinds[0])
}

func removeID(ids []widget.ID, id widget.ID) []widget.ID {
	out := ids[:0]
	for _, x := range ids {
		if x != id {
			out = append(out, x)
		}
	}
	return out
}

func boolErr(ok bool, msg string) error {
	if ok {
		return nil
	}
	return fmt.Errorf("%s", msg)
}
