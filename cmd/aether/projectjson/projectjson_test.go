package projectjson

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// everything builds a project holding every widget kind with non-default
// properties, bindings and events.
func everything(t *testing.T) *project.State {
	t.Helper()
	s := project.New()
	s.Name = "Kitchen Sink"
	for _, k := range widget.Kinds() {
		require.True(t, s.Insert(widget.MustNew(k), s.Root.ID(), widget.End), k)
	}
	find := func(k widget.Kind) widget.Node {
		for _, id := range s.AllIDs()[1:] {
			n, _ := s.Find(id)
			if n.Kind() == k {
				return n
			}
		}
		t.Fatalf("no %s", k)
		return nil
	}

	require.NoError(t, s.AddVariable(project.Variable{Name: "count", Type: widget.TypeInteger, Value: "7"}))
	require.NoError(t, s.AddVariable(project.Variable{Name: "msg", Type: widget.TypeString, Value: "hi"}))
	require.NoError(t, s.AddAsset(project.Asset{Name: "logo", Kind: project.AssetImage, Path: "img/logo.png"}))

	btn := find(widget.KindButton)
	require.NoError(t, s.Bind(btn.ID(), "text", "msg"))
	require.NoError(t, s.SetEvent(btn.ID(), widget.EventClicked, widget.IncrementAction{Var: "count"}))
	require.NoError(t, s.SetEvent(btn.ID(), widget.EventHovered, widget.SetAction{Var: "msg", Value: "over"}))
	require.NoError(t, s.SetEvent(btn.ID(), widget.EventLostFocus, widget.CustomAction{Code: "let _ = 1;"}))

	tabs := find(widget.KindTabs)
	require.True(t, s.Insert(widget.MustNew(widget.KindLabel), tabs.ID(), widget.End))
	require.True(t, s.Insert(widget.MustNew(widget.KindSpinner), tabs.ID(), widget.End))
	require.NoError(t, s.SetProperty(tabs.ID(), "titles", "One,Two"))

	ff := find(widget.KindFreeform)
	child := widget.MustNew(widget.KindCheckbox)
	require.True(t, s.Insert(child, ff.ID(), widget.End))
	require.NoError(t, s.SetOffset(child.ID(), widget.Offset{X: 12.5, Y: 40}))

	require.NoError(t, s.SetProperty(find(widget.KindColorPicker).ID(), "color", "#10203040"))
	require.NoError(t, s.SetProperty(find(widget.KindImage).ID(), "asset", "logo"))
	require.NoError(t, s.SetProperty(find(widget.KindGrid).ID(), "columns", "3"))
	s.Select(btn.ID())
	return s
}

func TestRoundTrip(t *testing.T) {
	s := everything(t)
	data, err := Encode(s)
	require.NoError(t, err)

	got, err := Decode(data)
	require.NoError(t, err)

	assert.Equal(t, s.Name, got.Name)
	assert.Equal(t, s.AllIDs(), got.AllIDs())
	for _, id := range s.AllIDs() {
		want, _ := s.Find(id)
		have, ok := got.Find(id)
		require.True(t, ok)
		assert.Equal(t, want, have, "node %s", want.Kind())
	}
	assert.Equal(t, s.Variables, got.Variables)
	assert.Equal(t, s.Assets, got.Assets)
	assert.Equal(t, s.Selected(), got.Selected())

	again, err := Encode(got)
	require.NoError(t, err)
	assert.Equal(t, string(data), string(again))
}

func TestEncodeShape(t *testing.T) {
	s := project.New()
	btn := widget.MustNew(widget.KindButton)
	require.True(t, s.Insert(btn, s.Root.ID(), widget.End))
	require.NoError(t, s.SetEvent(btn.ID(), widget.EventClicked, widget.IncrementAction{Var: "n"}))
	require.NoError(t, s.AddVariable(project.Variable{Name: "n", Type: widget.TypeInteger, Value: "0"}))

	data, err := Encode(s)
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	root := doc["root"].(map[string]any)
	assert.Equal(t, "Vertical Layout", root["type"])
	assert.Equal(t, s.Root.ID().String(), root["id"])
	children := root["children"].([]any)
	require.Len(t, children, 1)
	b := children[0].(map[string]any)
	assert.Equal(t, "Button", b["type"])
	assert.Equal(t, map[string]any{"Clicked": map[string]any{"type": "Increment", "variable": "n"}}, b["events"])
	assert.Equal(t, map[string]any{"name": "n", "type": "Integer", "value": "0"},
		doc["variables"].(map[string]any)["n"])
}

func TestDecodeErrors(t *testing.T) {
	id := widget.NewID().String()
	cases := []struct {
		name string
		doc  string
		want []string
		is   error
	}{
		{
			name: "not json",
			doc:  `{`,
			want: []string{"phase=schema", "path=<root>"},
		},
		{
			name: "missing root",
			doc:  `{"name":"x"}`,
			want: []string{"phase=schema"},
			is:   ErrSchema,
		},
		{
			name: "unknown type",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `","children":[{"type":"Gizmo","id":"` + widget.NewID().String() + `"}]}}`,
			want: []string{"phase=schema", "path=/root/children/0"},
			is:   ErrSchema,
		},
		{
			name: "bad id",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"nope"}}`,
			want: []string{"phase=schema", "path=/root/id"},
			is:   ErrSchema,
		},
		{
			name: "duplicate id",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `","children":[{"type":"Label","id":"` + id + `"}]}}`,
			want: []string{"phase=decode", "path=/root/children/0"},
			is:   ErrDuplicateID,
		},
		{
			name: "leaf root",
			doc:  `{"name":"x","root":{"type":"Button","id":"` + id + `","text":"b"}}`,
			want: []string{"phase=decode", "path=/root"},
			is:   ErrInvalidRoot,
		},
		{
			name: "leaf with children",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `","children":[{"type":"Label","id":"` + widget.NewID().String() + `","children":[{"type":"Label","id":"` + widget.NewID().String() + `"}]}]}}`,
			want: []string{"phase=decode", "cannot have children"},
		},
		{
			name: "variable key differs from name",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `"},"variables":{"a":{"name":"b","type":"String"}}}`,
			want: []string{"phase=decode", "path=/variables/a"},
			is:   ErrNameMismatch,
		},
		{
			name: "reserved variable name",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `"},"variables":{"fn":{"type":"Integer"}}}`,
			want: []string{"phase=decode", "path=/variables/fn"},
			is:   project.ErrInvalidName,
		},
		{
			name: "asset key differs from name",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `"},"assets":{"logo":{"name":"Logo","path":"a.png"}}}`,
			want: []string{"phase=decode", "path=/assets/logo"},
			is:   ErrNameMismatch,
		},
		{
			name: "bad action",
			doc:  `{"name":"x","root":{"type":"Vertical Layout","id":"` + id + `","children":[{"type":"Button","id":"` + widget.NewID().String() + `","events":{"Clicked":{"type":"Explode"}}}]}}`,
			want: []string{"phase=schema"},
			is:   ErrSchema,
		},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Decode([]byte(tc.doc))
			require.Error(t, err)
			for _, w := range tc.want {
				assert.Contains(t, err.Error(), w)
			}
			if tc.is != nil {
				assert.ErrorIs(t, err, tc.is)
			}
		})
	}
}

func TestDecodeDefaults(t *testing.T) {
	id := widget.NewID()
	doc := `{
		"name": "x",
		"root": {"type": "Horizontal Layout", "id": "` + id.String() + `", "spacing": 3},
		"selection": ["` + widget.NewID().String() + `", "` + id.String() + `"],
		"variables": {"v": {"type": "Float"}},
		"assets": {"a": {"path": "a.png"}}
	}`
	s, err := Decode([]byte(doc))
	require.NoError(t, err)
	assert.Equal(t, widget.KindHorizontal, s.Root.Kind())
	assert.Equal(t, 3.0, s.Root.(*widget.HorizontalLayout).Spacing)
	assert.Equal(t, []widget.ID{id}, s.Selected(), "unknown selection dropped")
	assert.Equal(t, project.Variable{Name: "v", Type: widget.TypeFloat}, s.Variables["v"])
	assert.Equal(t, project.Asset{Name: "a", Kind: project.AssetImage, Path: "a.png"}, s.Assets["a"])
}

func TestNodeRoundTrip(t *testing.T) {
	s := everything(t)
	tabs := s.Root.Children()[5]
	require.Equal(t, widget.KindTabs, tabs.Kind())

	data, err := EncodeNode(tabs)
	require.NoError(t, err)
	got, err := DecodeNode(data)
	require.NoError(t, err)
	assert.Equal(t, tabs, got)

	_, err = DecodeNode([]byte(`{"type":"Gizmo","id":"` + widget.NewID().String() + `"}`))
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestFingerprint(t *testing.T) {
	s := everything(t)
	a, err := Fingerprint(s)
	require.NoError(t, err)
	assert.Len(t, a, 64)

	b, err := Fingerprint(s.Clone())
	require.NoError(t, err)
	assert.Equal(t, a, b)

	s.Select()
	c, err := Fingerprint(s)
	require.NoError(t, err)
	assert.Equal(t, a, c, "selection does not count")

	require.NoError(t, s.SetVariableValue("count", "8"))
	d, err := Fingerprint(s)
	require.NoError(t, err)
	assert.NotEqual(t, a, d)
}

func TestLoadSave(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nested", "app.json")
	s := everything(t)

	require.NoError(t, Save(path, s))
	got, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, s.AllIDs(), got.AllIDs())

	entries, err := os.ReadDir(filepath.Dir(path))
	require.NoError(t, err)
	assert.Len(t, entries, 1, "no temporary files left behind")

	require.NoError(t, os.WriteFile(path, []byte(`{"name":1}`), 0o644))
	_, err = Load(path)
	require.Error(t, err)
	assert.True(t, strings.HasPrefix(err.Error(), path+": phase=schema"))

	_, err = Load(filepath.Join(dir, "missing.json"))
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestRoundTripProperty(t *testing.T) {
	kinds := widget.Kinds()
	parameters := gopter.DefaultTestParameters()
	parameters.MinSuccessfulTests = 100
	properties := gopter.NewProperties(parameters)

	properties.Property("decode(encode(tree)) keeps ids, kinds and order", prop.ForAll(
		func(script []int) bool {
			s := project.New()
			containers := []widget.ID{s.Root.ID()}
			for _, v := range script {
				n := widget.MustNew(kinds[v%len(kinds)])
				if !s.Insert(n, containers[v%len(containers)], v%4) {
					return false
				}
				if widget.IsContainerKind(n.Kind()) {
					containers = append(containers, n.ID())
				}
			}
			data, err := Encode(s)
			if err != nil {
				return false
			}
			got, err := Decode(data)
			if err != nil {
				return false
			}
			want := s.AllIDs()
			have := got.AllIDs()
			if len(want) != len(have) {
				return false
			}
			for i := range want {
				a, _ := s.Find(want[i])
				b, _ := got.Find(have[i])
				if want[i] != have[i] || a.Kind() != b.Kind() {
					return false
				}
			}
			return true
		},
		gen.SliceOfN(30, gen.IntRange(0, 200)),
	))

	properties.TestingRun(t)
}
