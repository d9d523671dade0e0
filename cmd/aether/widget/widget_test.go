package widget

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"testing"
)

func mustContain(t *testing.T, got string, subs ...string) {
	t.Helper()
	for _, sub := range subs {
		if !strings.Contains(got, sub) {
			t.Fatalf("expected %q to contain %q", got, sub)
		}
	}
}

func mustNew(t *testing.T, k Kind) Node {
	t.Helper()
	n, ok := New(string(k))
	if !ok {
		t.Fatalf("factory rejected %q", k)
	}
	return n
}

// snapshotTree renders a subtree as one line per node: indentation, kind and
// the main text property. IDs are left out so snapshots survive Regenerate.
func snapshotTree(n Node) string {
	var b strings.Builder
	Walk(n, func(node Node, _ Container, depth int) bool {
		fmt.Fprintf(&b, "%s%s", strings.Repeat("  ", depth), node.Kind())
		for _, p := range Properties(node) {
			if p.Name == "text" || p.Name == "label" || p.Name == "title" {
				fmt.Fprintf(&b, " %s=%q", p.Name, p.Value)
			}
		}
		b.WriteString("\n")
		return true
	})
	return b.String()
}

// sample builds:
//
//	Vertical
//	  Button "A"
//	  Horizontal
//	    Label "B"
//	    Label "C"
//	  Button "D"
func sample(t *testing.T) (root *VerticalLayout, ids map[string]ID) {
	t.Helper()
	ids = map[string]ID{}
	mk := func(k Kind, name, text string) Node {
		n := mustNew(t, k)
		if text != "" {
			if err := SetProperty(n, "text", text); err != nil {
				t.Fatal(err)
			}
		}
		ids[name] = n.ID()
		return n
	}
	root = mustNew(t, KindVertical).(*VerticalLayout)
	ids["root"] = root.ID()
	row := mk(KindHorizontal, "row", "").(*HorizontalLayout)
	row.Items = []Node{mk(KindLabel, "B", "B"), mk(KindLabel, "C", "C")}
	root.Items = []Node{mk(KindButton, "A", "A"), row, mk(KindButton, "D", "D")}
	return root, ids
}

func TestFactory_EveryPaletteEntry(t *testing.T) {
	seen := map[ID]bool{}
	for _, g := range Palette() {
		for _, k := range g.Kinds {
			t.Run(string(k), func(t *testing.T) {
				n := mustNew(t, k)
				if n.Kind() != k {
					t.Fatalf("kind = %q, want %q", n.Kind(), k)
				}
				if seen[n.ID()] {
					t.Fatalf("duplicate id %s", n.ID())
				}
				seen[n.ID()] = true
				_, isContainer := AsContainer(n)
				if isContainer != (g.Category == "Layouts") {
					t.Fatalf("container=%v for category %s", isContainer, g.Category)
				}
			})
		}
	}
}

func TestFactory_Defaults(t *testing.T) {
	grid := mustNew(t, KindGrid).(*GridLayout)
	if grid.Columns != 2 || grid.Spacing != 5 {
		t.Fatalf("grid defaults = %+v", grid)
	}
	if n, ok := New("button"); !ok || n.Kind() != KindButton {
		t.Fatalf("lookup should be case-insensitive")
	}
	if _, ok := New("Dial"); ok {
		t.Fatalf("unknown name must be rejected")
	}
	if _, err := Zero("Dial", NewID()); !errors.Is(err, ErrUnknownKind) {
		t.Fatalf("Zero(unknown) err = %v", err)
	}
}

func TestTree_FindAndParent(t *testing.T) {
	root, ids := sample(t)

	if got := len(IDs(root)); got != 6 {
		t.Fatalf("IDs len = %d, want 6", got)
	}
	want := []ID{ids["root"], ids["A"], ids["row"], ids["B"], ids["C"], ids["D"]}
	for i, id := range IDs(root) {
		if id != want[i] {
			t.Fatalf("pre-order[%d] = %s, want %s", i, id, want[i])
		}
	}

	p, idx, ok := FindParent(root, ids["C"])
	if !ok || p.ID() != ids["row"] || idx != 1 {
		t.Fatalf("FindParent(C) = %v %d %v", p, idx, ok)
	}
	if _, _, ok := FindParent(root, ids["root"]); ok {
		t.Fatalf("root has no parent")
	}
	if d, ok := Depth(root, ids["B"]); !ok || d != 2 {
		t.Fatalf("Depth(B) = %d %v", d, ok)
	}
	if !Contains(root.Items[1], ids["B"]) || Contains(root.Items[1], ids["A"]) {
		t.Fatalf("Contains mismatch")
	}
	if Count(root) != 6 {
		t.Fatalf("Count = %d", Count(root))
	}
}

func TestTree_ExtractInsert(t *testing.T) {
	root, ids := sample(t)

	n, ok := Extract(root, ids["row"])
	if !ok || n.ID() != ids["row"] {
		t.Fatalf("Extract(row) failed")
	}
	if Count(root) != 3 {
		t.Fatalf("extracting a container must take its subtree; count=%d", Count(root))
	}
	if _, ok := Extract(root, ids["root"]); ok {
		t.Fatalf("root cannot be extracted")
	}

	InsertAt(root, n, End)
	if root.Items[len(root.Items)-1].ID() != ids["row"] {
		t.Fatalf("End must append")
	}
	l := mustNew(t, KindLabel)
	InsertAt(root, l, -4)
	if root.Items[len(root.Items)-1].ID() != l.ID() {
		t.Fatalf("negative index must append")
	}
}

func TestTree_Relayout(t *testing.T) {
	root, ids := sample(t)
	grid, ok := Relayout(root, KindGrid)
	if !ok {
		t.Fatal("Relayout(grid) failed")
	}
	if grid.ID() != ids["root"] || len(grid.Children()) != 3 {
		t.Fatalf("relayout must keep id and children")
	}
	if _, ok := Relayout(root, KindWindow); ok {
		t.Fatalf("window is not a root layout")
	}
}

func TestTree_CloneIsDeep(t *testing.T) {
	root, ids := sample(t)
	btn, _ := Find(root, ids["A"])
	if err := Bind(btn, "text", "title"); err != nil {
		t.Fatal(err)
	}

	cp := Clone(root).(*VerticalLayout)
	if snapshotTree(cp) != snapshotTree(root) {
		t.Fatalf("clone differs:\n%s\nvs\n%s", snapshotTree(cp), snapshotTree(root))
	}
	cbtn, _ := Find(cp, ids["A"])
	Unbind(cbtn, "text")
	cp.Items = cp.Items[:1]
	if Binding(btn, "text") != "title" || len(root.Items) != 3 {
		t.Fatalf("mutating the clone changed the original")
	}
}

func TestTree_Regenerate(t *testing.T) {
	ff := mustNew(t, KindFreeform).(*FreeformLayout)
	b := mustNew(t, KindButton)
	ff.Items = []Node{b}
	ff.Offsets = map[ID]Offset{b.ID(): {X: 10, Y: 20}}
	before := snapshotTree(ff)
	oldIDs := IDs(ff)

	Regenerate(ff)

	for i, id := range IDs(ff) {
		if id == oldIDs[i] {
			t.Fatalf("id %d was not regenerated", i)
		}
	}
	if got := ff.OffsetOf(ff.Items[0].ID()); got != (Offset{X: 10, Y: 20}) {
		t.Fatalf("offset must follow the child, got %+v", got)
	}
	if snapshotTree(ff) != before {
		t.Fatalf("regenerate must keep properties")
	}
}

func TestTabContainer_TitlesFollowChildren(t *testing.T) {
	tabs := mustNew(t, KindTabs).(*TabContainer)
	a, b := mustNew(t, KindLabel), mustNew(t, KindLabel)
	InsertAt(tabs, a, End)
	InsertAt(tabs, b, End)
	if err := SetProperty(tabs, "titles", "First, Second"); err != nil {
		t.Fatal(err)
	}
	Swap(tabs, 0, 1)
	if tabs.TitleAt(0) != "Second" || tabs.TitleAt(1) != "First" {
		t.Fatalf("titles = %v", tabs.Titles)
	}
	tabs.SetChildren(tabs.Items[:1])
	if len(tabs.Titles) != 1 || tabs.TitleAt(0) != "Second" {
		t.Fatalf("titles after removal = %v", tabs.Titles)
	}
}

func TestFreeform_SetChildrenPrunesOffsets(t *testing.T) {
	ff := mustNew(t, KindFreeform).(*FreeformLayout)
	b := mustNew(t, KindButton)
	ff.Items = []Node{b}
	ff.Offsets = map[ID]Offset{b.ID(): {X: 1, Y: 2}}
	ff.SetChildren(nil)
	if len(ff.Offsets) != 0 {
		t.Fatalf("offset of removed child kept: %v", ff.Offsets)
	}
}

func TestBindings(t *testing.T) {
	cb := mustNew(t, KindCheckbox)
	if err := Bind(cb, "checked", "done"); err != nil {
		t.Fatal(err)
	}
	if err := Bind(cb, "value", "x"); !errors.Is(err, ErrNotBindable) {
		t.Fatalf("err = %v, want ErrNotBindable", err)
	}
	if err := Bind(mustNew(t, KindSeparator), "text", "x"); !errors.Is(err, ErrNotBindable) {
		t.Fatalf("separator has no bindable property, err = %v", err)
	}
	if got := SortedBindings(cb); len(got) != 1 || got[0] != "checked" {
		t.Fatalf("SortedBindings = %v", got)
	}
	if err := Bind(cb, "checked", ""); err != nil {
		t.Fatal(err)
	}
	if BindingsOf(cb) != nil {
		t.Fatalf("binding to empty must make the property literal")
	}
	if Unbind(cb, "checked") {
		t.Fatalf("unbinding twice must report false")
	}
}

func TestEvents(t *testing.T) {
	btn := mustNew(t, KindButton)
	if err := AttachAction(btn, EventHovered, SetAction{Var: "x", Value: "1"}); err != nil {
		t.Fatal(err)
	}
	if err := AttachAction(btn, EventClicked, IncrementAction{Var: "n"}); err != nil {
		t.Fatal(err)
	}
	got := EventsOf(btn).Sorted()
	if len(got) != 2 || got[0] != EventClicked || got[1] != EventHovered {
		t.Fatalf("Sorted = %v", got)
	}

	err := AttachAction(btn, EventChanged, CustomAction{Code: "if x { y("})
	if !errors.Is(err, ErrMalformedCode) {
		t.Fatalf("malformed custom code accepted: %v", err)
	}
	if err := AttachAction(mustNew(t, KindLabel), EventClicked, IncrementAction{Var: "n"}); !errors.Is(err, ErrNoEvents) {
		t.Fatalf("label must not accept events: %v", err)
	}
	if !DetachAction(btn, EventHovered) || DetachAction(btn, EventHovered) {
		t.Fatalf("ClearAction results wrong")
	}

	if e, err := ParseEvent("On Blur"); err != nil || e != EventLostFocus {
		t.Fatalf("ParseEvent(On Blur) = %v, %v", e, err)
	}
}

func TestEventMap_JSON(t *testing.T) {
	in := EventMap{
		EventClicked: IncrementAction{Var: "count"},
		EventChanged: SetAction{Var: "name", Value: "\"x\""},
		EventFocused: CustomAction{Code: "println!(\"hi\");"},
	}
	data, err := json.Marshal(in)
	if err != nil {
		t.Fatal(err)
	}
	mustContain(t, string(data), `"Clicked":{"type":"Increment","variable":"count"}`)

	var out EventMap
	if err := json.Unmarshal(data, &out); err != nil {
		t.Fatal(err)
	}
	if len(out) != 3 || out[EventClicked] != in[EventClicked] || out[EventFocused] != in[EventFocused] {
		t.Fatalf("round trip = %#v", out)
	}

	bad := `{"Clicked":{"type":"Launch"}}`
	if err := json.Unmarshal([]byte(bad), &out); err == nil {
		t.Fatalf("unknown action type accepted")
	}
}

func TestSetProperty(t *testing.T) {
	tests := []struct {
		kind    Kind
		name    string
		value   string
		wantErr error
	}{
		{KindSlider, "max", "10", nil},
		{KindSlider, "max", "ten", ErrInvalidValue},
		{KindGrid, "columns", "0", ErrInvalidValue},
		{KindButton, "colour", "red", ErrUnknownProperty},
		{KindProgressBar, "value", "1.5", ErrInvalidValue},
		{KindColorPicker, "color", "#ff000080", nil},
		{KindColorPicker, "color", "red", ErrInvalidValue},
		{KindPlot, "series", "a=0:0,1:2;b=0:1", nil},
		{KindPlot, "series", "a=0", ErrInvalidValue},
		{KindSeparator, "text", "x", ErrUnknownProperty},
	}
	for _, tt := range tests {
		t.Run(fmt.Sprintf("%s.%s=%s", tt.kind, tt.name, tt.value), func(t *testing.T) {
			err := SetProperty(mustNew(t, tt.kind), tt.name, tt.value)
			if tt.wantErr == nil && err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if tt.wantErr != nil && !errors.Is(err, tt.wantErr) {
				t.Fatalf("err = %v, want %v", err, tt.wantErr)
			}
		})
	}

	plot := mustNew(t, KindPlot)
	if err := SetProperty(plot, "series", "a=0:0,1:2"); err != nil {
		t.Fatal(err)
	}
	for _, p := range Properties(plot) {
		if p.Name == "series" && p.Value != "a=0:0,1:2" {
			t.Fatalf("series = %q", p.Value)
		}
	}
}

func TestProbeCode(t *testing.T) {
	ok := []string{
		"",
		"self.count += 1;",
		`println!("{}", "a)b");`,
		"let c = '}'; let d = '\\'';",
		"fn f<'a>(x: &'a str) -> &'a str { x }",
		"/* { nested /* } */ */ let x = [1, 2];",
		"// unbalanced ( in comment\nlet y = (1);",
		`let s = r#"raw " { string"#;`,
	}
	for _, code := range ok {
		if err := ProbeCode(code); err != nil {
			t.Errorf("ProbeCode(%q) = %v", code, err)
		}
	}

	bad := map[string]string{
		"if x { y(":           "unclosed",
		"foo(]":               "closed by",
		")":                   "unexpected",
		`let s = "open;`:      "unterminated string",
		"/* open":             "block comment",
		`let s = r#"no end";`: "raw string",
	}
	for code, msg := range bad {
		err := ProbeCode(code)
		if !errors.Is(err, ErrMalformedCode) {
			t.Errorf("ProbeCode(%q) = %v, want ErrMalformedCode", code, err)
			continue
		}
		mustContain(t, err.Error(), msg)
	}
}
