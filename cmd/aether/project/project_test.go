package project

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aether/cmd/aether/widget"
)

// fixture builds root[a, row[b, c], d] and returns the state with the ids.
func fixture(t *testing.T) (*State, map[string]widget.ID) {
	t.Helper()
	s := New()
	a := widget.MustNew(widget.KindButton)
	row := widget.MustNew(widget.KindHorizontal)
	b := widget.MustNew(widget.KindLabel)
	c := widget.MustNew(widget.KindCheckbox)
	d := widget.MustNew(widget.KindSlider)
	require.True(t, s.Insert(a, s.Root.ID(), widget.End))
	require.True(t, s.Insert(row, s.Root.ID(), widget.End))
	require.True(t, s.Insert(b, row.ID(), widget.End))
	require.True(t, s.Insert(c, row.ID(), widget.End))
	require.True(t, s.Insert(d, s.Root.ID(), widget.End))
	return s, map[string]widget.ID{
		"root": s.Root.ID(), "a": a.ID(), "row": row.ID(), "b": b.ID(), "c": c.ID(), "d": d.ID(),
	}
}

func childIDs(t *testing.T, s *State, id widget.ID) []widget.ID {
	t.Helper()
	n, ok := s.Find(id)
	require.True(t, ok)
	c, ok := widget.AsContainer(n)
	require.True(t, ok)
	var out []widget.ID
	for _, child := range c.Children() {
		out = append(out, child.ID())
	}
	return out
}

func TestNew(t *testing.T) {
	s := New()
	assert.Equal(t, DefaultName, s.Name)
	assert.Equal(t, widget.KindVertical, s.Root.Kind())
	assert.Equal(t, []widget.ID{s.Root.ID()}, s.AllIDs())
	assert.Empty(t, s.Variables)
	assert.Empty(t, s.Assets)
}

func TestAllIDsPreOrder(t *testing.T) {
	s, ids := fixture(t)
	assert.Equal(t, []widget.ID{ids["root"], ids["a"], ids["row"], ids["b"], ids["c"], ids["d"]}, s.AllIDs())
}

func TestInsert(t *testing.T) {
	s, ids := fixture(t)

	t.Run("into leaf fails", func(t *testing.T) {
		assert.False(t, s.Insert(widget.MustNew(widget.KindLabel), ids["a"], 0))
	})
	t.Run("duplicate id fails", func(t *testing.T) {
		b, _ := s.Find(ids["b"])
		assert.False(t, s.Insert(widget.Clone(b), ids["root"], 0))
	})
	t.Run("unknown parent fails", func(t *testing.T) {
		assert.False(t, s.Insert(widget.MustNew(widget.KindLabel), widget.NewID(), 0))
	})
	t.Run("out of range appends", func(t *testing.T) {
		n := widget.MustNew(widget.KindSpinner)
		require.True(t, s.Insert(n, ids["row"], -3))
		m := widget.MustNew(widget.KindSeparator)
		require.True(t, s.Insert(m, ids["row"], 99))
		assert.Equal(t, []widget.ID{ids["b"], ids["c"], n.ID(), m.ID()}, childIDs(t, s, ids["row"]))
	})
}

func TestDelete(t *testing.T) {
	s, ids := fixture(t)
	s.Select(ids["b"], ids["d"])

	assert.False(t, s.Delete(ids["root"]), "root is permanent")
	assert.False(t, s.Delete(widget.NewID()))

	before := len(s.AllIDs())
	require.True(t, s.Delete(ids["row"]))
	assert.Len(t, s.AllIDs(), before-3)
	for _, gone := range []string{"row", "b", "c"} {
		_, ok := s.Find(ids[gone])
		assert.False(t, ok, gone)
	}
	assert.Equal(t, []widget.ID{ids["d"]}, s.Selected())
}

func TestMoveUpDown(t *testing.T) {
	s, ids := fixture(t)

	assert.False(t, s.MoveUp(ids["a"]), "first sibling")
	assert.False(t, s.MoveDown(ids["d"]), "last sibling")
	assert.False(t, s.MoveUp(ids["root"]), "root has no parent")
	assert.False(t, s.MoveDown(widget.NewID()))

	require.True(t, s.MoveDown(ids["b"]))
	assert.Equal(t, []widget.ID{ids["c"], ids["b"]}, childIDs(t, s, ids["row"]))
	require.True(t, s.MoveUp(ids["b"]))
	assert.Equal(t, []widget.ID{ids["b"], ids["c"]}, childIDs(t, s, ids["row"]))
}

func TestReparent(t *testing.T) {
	t.Run("rejects", func(t *testing.T) {
		s, ids := fixture(t)
		before := s.AllIDs()
		assert.False(t, s.Reparent(ids["root"], ids["row"], 0), "root")
		assert.False(t, s.Reparent(ids["row"], ids["row"], 0), "self")
		assert.False(t, s.Reparent(ids["a"], ids["b"], 0), "leaf target")
		assert.False(t, s.Reparent(ids["a"], widget.NewID(), 0), "unknown target")
		assert.Equal(t, before, s.AllIDs())
	})

	t.Run("into descendant", func(t *testing.T) {
		s, ids := fixture(t)
		inner := widget.MustNew(widget.KindVertical)
		require.True(t, s.Insert(inner, ids["row"], widget.End))
		before := s.AllIDs()
		assert.False(t, s.Reparent(ids["row"], inner.ID(), 0))
		assert.Equal(t, before, s.AllIDs())
	})

	t.Run("across parents", func(t *testing.T) {
		s, ids := fixture(t)
		require.True(t, s.Reparent(ids["d"], ids["row"], 1))
		assert.Equal(t, []widget.ID{ids["b"], ids["d"], ids["c"]}, childIDs(t, s, ids["row"]))
		assert.Equal(t, []widget.ID{ids["a"], ids["row"]}, childIDs(t, s, ids["root"]))
	})

	t.Run("same parent index after removal", func(t *testing.T) {
		s, ids := fixture(t)
		require.True(t, s.Reparent(ids["a"], ids["root"], 1))
		assert.Equal(t, []widget.ID{ids["row"], ids["a"], ids["d"]}, childIDs(t, s, ids["root"]))
	})

	t.Run("end appends", func(t *testing.T) {
		s, ids := fixture(t)
		require.True(t, s.Reparent(ids["a"], ids["row"], widget.End))
		assert.Equal(t, []widget.ID{ids["b"], ids["c"], ids["a"]}, childIDs(t, s, ids["row"]))
	})

	t.Run("negative index appends", func(t *testing.T) {
		s, ids := fixture(t)
		require.True(t, s.Reparent(ids["a"], ids["root"], -1))
		assert.Equal(t, []widget.ID{ids["row"], ids["d"], ids["a"]}, childIDs(t, s, ids["root"]))

		sep := widget.MustNew(widget.KindSeparator)
		require.True(t, s.Insert(sep, ids["row"], -3))
		assert.Equal(t, []widget.ID{ids["b"], ids["c"], sep.ID()}, childIDs(t, s, ids["row"]))
	})
}

func TestMoveBeforeAfter(t *testing.T) {
	s, ids := fixture(t)

	require.True(t, s.MoveBefore(ids["d"], ids["c"]))
	assert.Equal(t, []widget.ID{ids["b"], ids["d"], ids["c"]}, childIDs(t, s, ids["row"]))

	require.True(t, s.MoveAfter(ids["a"], ids["c"]))
	assert.Equal(t, []widget.ID{ids["b"], ids["d"], ids["c"], ids["a"]}, childIDs(t, s, ids["row"]))

	require.True(t, s.MoveAfter(ids["b"], ids["d"]))
	assert.Equal(t, []widget.ID{ids["d"], ids["b"], ids["c"], ids["a"]}, childIDs(t, s, ids["row"]))

	assert.False(t, s.MoveBefore(ids["a"], ids["root"]), "root has no siblings")
	assert.False(t, s.MoveAfter(ids["a"], ids["a"]))
	assert.False(t, s.MoveBefore(ids["row"], ids["b"]), "target inside source")
}

func TestDrop(t *testing.T) {
	s, ids := fixture(t)
	require.True(t, s.Drop(ids["a"], ids["row"], widget.DropInto))
	assert.Equal(t, []widget.ID{ids["b"], ids["c"], ids["a"]}, childIDs(t, s, ids["row"]))
	require.True(t, s.Drop(ids["d"], ids["row"], widget.DropBefore))
	assert.Equal(t, []widget.ID{ids["d"], ids["row"]}, childIDs(t, s, ids["root"]))
	assert.False(t, s.Drop(ids["d"], ids["b"], widget.DropInto))
}

func TestLookups(t *testing.T) {
	s, ids := fixture(t)

	p, ok := s.ParentOf(ids["c"])
	require.True(t, ok)
	assert.Equal(t, ids["row"], p)
	_, ok = s.ParentOf(ids["root"])
	assert.False(t, ok)

	assert.True(t, s.IsContainer(ids["row"]))
	assert.False(t, s.IsContainer(ids["a"]))

	depth, ok := s.Depth(ids["b"])
	require.True(t, ok)
	assert.Equal(t, 2, depth)
}

func TestRootLayout(t *testing.T) {
	s, ids := fixture(t)
	children := childIDs(t, s, ids["root"])

	require.True(t, s.SetRootLayoutType(string(widget.KindGrid)))
	assert.Equal(t, string(widget.KindGrid), s.RootLayoutType())
	assert.Equal(t, ids["root"], s.Root.ID())
	assert.Equal(t, children, childIDs(t, s, ids["root"]))
	assert.Equal(t, widget.DefaultColumns, s.Root.(*widget.GridLayout).Columns)

	assert.False(t, s.SetRootLayoutType(string(widget.KindWindow)))
	assert.False(t, s.SetRootLayoutType("Diagonal Layout"))
	assert.Equal(t, string(widget.KindGrid), s.RootLayoutType())
}

func TestSetOffset(t *testing.T) {
	s, ids := fixture(t)
	ff := widget.MustNew(widget.KindFreeform)
	btn := widget.MustNew(widget.KindButton)
	require.True(t, s.Insert(ff, ids["root"], widget.End))
	require.True(t, s.Insert(btn, ff.ID(), widget.End))

	require.NoError(t, s.SetOffset(btn.ID(), widget.Offset{X: 10, Y: 20}))
	assert.Equal(t, widget.Offset{X: 10, Y: 20}, ff.(*widget.FreeformLayout).OffsetOf(btn.ID()))

	assert.ErrorIs(t, s.SetOffset(ids["a"], widget.Offset{}), ErrNotFreeform)
	assert.ErrorIs(t, s.SetOffset(widget.NewID(), widget.Offset{}), ErrNodeNotFound)
}

func TestVariables(t *testing.T) {
	s := New()
	require.NoError(t, s.AddVariable(Variable{Name: "count", Type: widget.TypeInteger, Value: "0"}))
	require.NoError(t, s.AddVariable(Variable{Name: "msg"}))

	assert.ErrorIs(t, s.AddVariable(Variable{Name: "count"}), ErrVariableExists)
	assert.ErrorIs(t, s.AddVariable(Variable{Name: "1abc"}), ErrInvalidName)
	assert.ErrorIs(t, s.AddVariable(Variable{Name: "fn"}), ErrInvalidName)

	v, ok := s.Variable("msg")
	require.True(t, ok)
	assert.Equal(t, widget.TypeString, v.Type, "type defaults to String")
	assert.Equal(t, []string{"count", "msg"}, s.VariableNames())

	require.NoError(t, s.SetVariableValue("msg", "Hello"))
	assert.Equal(t, "Hello", s.Variables["msg"].Value)
	assert.ErrorIs(t, s.SetVariableValue("nope", "x"), ErrVariableNotFound)

	require.NoError(t, s.RemoveVariable("msg"))
	assert.ErrorIs(t, s.RemoveVariable("msg"), ErrVariableNotFound)
}

func TestRenameVariable(t *testing.T) {
	s, ids := fixture(t)
	require.NoError(t, s.AddVariable(Variable{Name: "n", Type: widget.TypeInteger}))
	require.NoError(t, s.Bind(ids["b"], "text", "n"))
	require.NoError(t, s.SetEvent(ids["a"], widget.EventClicked, widget.IncrementAction{Var: "n"}))

	require.NoError(t, s.RenameVariable("n", "total"))
	b, _ := s.Find(ids["b"])
	a, _ := s.Find(ids["a"])
	assert.Equal(t, "total", widget.Binding(b, "text"))
	assert.Equal(t, widget.IncrementAction{Var: "total"}, widget.EventsOf(a)[widget.EventClicked])
	assert.Empty(t, Validate(s))
}

func TestAssets(t *testing.T) {
	s := New()
	require.NoError(t, s.AddAsset(Asset{Name: "logo", Path: "img/logo.png"}))
	require.NoError(t, s.AddAsset(Asset{Name: "beep", Kind: AssetAudio, Path: "beep.wav"}))
	assert.ErrorIs(t, s.AddAsset(Asset{Name: "logo"}), ErrAssetExists)
	assert.ErrorIs(t, s.AddAsset(Asset{Name: " "}), ErrInvalidName)

	assert.Equal(t, []string{"beep", "logo"}, s.AssetNames())
	require.Len(t, s.ImageAssets(), 1)
	assert.Equal(t, "logo", s.ImageAssets()[0].Name)

	require.NoError(t, s.RemoveAsset("beep"))
	assert.ErrorIs(t, s.RemoveAsset("beep"), ErrAssetNotFound)
}

func TestBindAndEvents(t *testing.T) {
	s, ids := fixture(t)

	assert.ErrorIs(t, s.Bind(ids["a"], "color", "x"), ErrNotBindable)
	assert.ErrorIs(t, s.Bind(widget.NewID(), "text", "x"), ErrNodeNotFound)
	require.NoError(t, s.Bind(ids["a"], "text", "not_declared_yet"))
	assert.True(t, s.Unbind(ids["a"], "text"))
	assert.False(t, s.Unbind(ids["a"], "text"))

	assert.ErrorIs(t, s.SetEvent(ids["b"], widget.EventClicked, widget.IncrementAction{Var: "x"}), ErrNoEvents)
	assert.ErrorIs(t, s.SetEvent(ids["a"], widget.EventClicked, widget.CustomAction{Code: "self.x += (1;"}), widget.ErrMalformedCode)
	require.NoError(t, s.SetEvent(ids["a"], widget.EventClicked, widget.CustomAction{Code: `println!("hi");`}))
	assert.True(t, s.ClearEvent(ids["a"], widget.EventClicked))
	assert.False(t, s.ClearEvent(ids["a"], widget.EventClicked))
}

func TestValidate(t *testing.T) {
	t.Run("dangling binding reported once", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.Bind(ids["b"], "text", "ghost"))
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], "ghost")
		assert.Contains(t, errs[0], widget.ShortID(ids["b"]))

		require.True(t, s.Unbind(ids["b"], "text"))
		assert.Empty(t, Validate(s))
	})

	t.Run("type mismatch", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.AddVariable(Variable{Name: "flag", Type: widget.TypeString}))
		require.NoError(t, s.Bind(ids["c"], "checked", "flag"))
		errs := Validate(s)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0], `"flag" is String`)
		assert.Contains(t, errs[0], "Boolean")
	})

	t.Run("numeric accepts int and float", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.AddVariable(Variable{Name: "f", Type: widget.TypeFloat}))
		require.NoError(t, s.Bind(ids["d"], "value", "f"))
		assert.Empty(t, Validate(s))
		require.NoError(t, s.SetVariableType("f", widget.TypeInteger))
		assert.Empty(t, Validate(s))
		require.NoError(t, s.SetVariableType("f", widget.TypeBoolean))
		assert.Len(t, Validate(s), 1)
	})

	t.Run("label accepts any type", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.AddVariable(Variable{Name: "on", Type: widget.TypeBoolean}))
		require.NoError(t, s.Bind(ids["b"], "text", "on"))
		assert.Empty(t, Validate(s))
	})

	t.Run("actions and assets", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.AddVariable(Variable{Name: "msg", Type: widget.TypeString}))
		require.NoError(t, s.SetEvent(ids["a"], widget.EventClicked, widget.IncrementAction{Var: "msg"}))
		require.NoError(t, s.SetEvent(ids["a"], widget.EventHovered, widget.SetAction{Var: "gone", Value: "1"}))
		img := &widget.Image{NodeID: widget.NewID(), Asset: "logo"}
		require.True(t, s.Insert(img, ids["root"], widget.End))

		errs := Validate(s)
		require.Len(t, errs, 3)
		assert.Contains(t, errs[0], "increments")
		assert.Contains(t, errs[1], `"gone"`)
		assert.Contains(t, errs[2], `unknown asset "logo"`)

		require.NoError(t, s.AddAsset(Asset{Name: "logo", Kind: AssetData}))
		assert.Contains(t, Validate(s)[2], "not an image")
	})

	t.Run("slider range and literal values", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.SetProperty(ids["d"], "min", "10"))
		require.NoError(t, s.SetProperty(ids["d"], "max", "1"))
		assert.Len(t, Validate(s), 1)
	})

	t.Run("does not mutate", func(t *testing.T) {
		s, ids := fixture(t)
		require.NoError(t, s.Bind(ids["b"], "text", "ghost"))
		before := s.AllIDs()
		Validate(s)
		assert.Equal(t, before, s.AllIDs())
		b, _ := s.Find(ids["b"])
		assert.Equal(t, "ghost", widget.Binding(b, "text"))
	})
}

func TestTemplates(t *testing.T) {
	assert.Equal(t, []string{"empty", "counter", "form", "dashboard"}, Templates())
	for _, name := range Templates() {
		t.Run(name, func(t *testing.T) {
			s, err := FromTemplate(name)
			require.NoError(t, err)
			assert.Empty(t, Validate(s))
			assert.NotEmpty(t, TemplateAbout(name))
		})
	}
	_, err := FromTemplate("spaceship")
	assert.ErrorIs(t, err, ErrUnknownTemplate)

	s, err := FromTemplate("counter")
	require.NoError(t, err)
	assert.Equal(t, "Counter App", s.Name)
	assert.Equal(t, widget.TypeInteger, s.Variables["counter"].Type)
	assert.Len(t, s.AllIDs(), 4)
}

func TestHistory(t *testing.T) {
	s, ids := fixture(t)
	h := NewHistory(2)
	assert.False(t, h.CanUndo())

	h.Record(s)
	require.True(t, s.Delete(ids["a"]))
	h.Record(s)
	require.True(t, s.Delete(ids["d"]))

	prev, err := h.Undo(s)
	require.NoError(t, err)
	_, ok := prev.Find(ids["d"])
	assert.True(t, ok)
	assert.True(t, h.CanRedo())

	next, err := h.Redo(prev)
	require.NoError(t, err)
	_, ok = next.Find(ids["d"])
	assert.False(t, ok)

	h.Record(next)
	assert.False(t, h.CanRedo(), "record clears redo")
	undo, _ := h.Len()
	assert.Equal(t, 2, undo, "capped at limit")

	_, err = NewHistory(0).Undo(s)
	assert.ErrorIs(t, err, ErrNothingToUndo)
	_, err = NewHistory(0).Redo(s)
	assert.ErrorIs(t, err, ErrNothingToRedo)
}

func TestCloneIsDeep(t *testing.T) {
	s, ids := fixture(t)
	require.NoError(t, s.AddVariable(Variable{Name: "x"}))
	cp := s.Clone()
	require.True(t, cp.Delete(ids["row"]))
	require.NoError(t, cp.RemoveVariable("x"))

	_, ok := s.Find(ids["row"])
	assert.True(t, ok)
	_, ok = s.Variable("x")
	assert.True(t, ok)
}

func TestPasteAndDuplicate(t *testing.T) {
	s, ids := fixture(t)
	row, _ := s.Find(ids["row"])

	pasted, ok := s.Paste(row, widget.ID{}, widget.End)
	require.True(t, ok)
	assert.NotEqual(t, ids["row"], pasted)
	assert.Len(t, s.AllIDs(), 9)
	assert.Equal(t, pasted, childIDs(t, s, ids["root"])[3])

	dup, ok := s.Duplicate(ids["a"])
	require.True(t, ok)
	assert.Equal(t, dup, childIDs(t, s, ids["root"])[1])

	seen := map[widget.ID]bool{}
	for _, id := range s.AllIDs() {
		assert.False(t, seen[id], "duplicate id %s", id)
		seen[id] = true
	}

	_, ok = s.Paste(row, ids["a"], 0)
	assert.False(t, ok, "leaf parent")
}

func TestSelection(t *testing.T) {
	s, ids := fixture(t)
	s.Select(ids["d"], ids["a"], widget.NewID())
	assert.Equal(t, []widget.ID{ids["a"], ids["d"]}, s.Selected())
}
