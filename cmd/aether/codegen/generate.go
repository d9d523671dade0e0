// Package codegen lowers a project into the source of a standalone egui
// application: a cargo manifest, an entry point and the application body.
//
// Generation is pure and deterministic. It never fails on a structurally
// valid tree and does not consult validation; callers validate first.
package codegen

import (
	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// Paths of the generated files inside the crate.
const (
	ManifestPath = "Cargo.toml"
	MainPath     = "src/main.rs"
	AppPath      = "src/app.rs"
)

// File is one generated text file.
type File struct {
	Path string
	Text string
}

// AssetFile pairs a project asset with its place in the crate.
type AssetFile struct {
	Name   string
	Source string
	Target string
}

// Files is the output of Generate.
type Files struct {
	Crate    string
	Manifest string
	Main     string
	App      string
	// Assets lists the Image assets the body refers to, ordered by name.
	Assets []AssetFile
}

// List returns the text files in a fixed order.
func (f Files) List() []File {
	return []File{
		{Path: ManifestPath, Text: f.Manifest},
		{Path: MainPath, Text: f.Main},
		{Path: AppPath, Text: f.App},
	}
}

// Paths returns the relative paths of the text files.
func Paths() []string {
	return []string{ManifestPath, MainPath, AppPath}
}

// Generate produces the three source files for s.
func Generate(s *project.State, opts Options) Files {
	opts = opts.withDefaults()
	crate := CrateName(s.Name)

	targets := AssetTargets(s)
	var assets []AssetFile
	for _, a := range s.ImageAssets() {
		assets = append(assets, AssetFile{Name: a.Name, Source: a.Path, Target: targets[a.Name]})
	}

	return Files{
		Crate:    crate,
		Manifest: renderManifest(crate, opts),
		Main:     renderMain(opts),
		App:      generateApp(s, opts, targets),
		Assets:   assets,
	}
}

// field is one member of the generated application struct.
type field struct {
	name string
	typ  string
	init string
}

// auxFields collects the per-instance state tabs and windows need, in
// pre-order. The body pass walks the same tree in the same order and names
// the fields with the same helpers.
func auxFields(root widget.Node) []field {
	var out []field
	widget.Walk(root, func(n widget.Node, _ widget.Container, _ int) bool {
		switch x := n.(type) {
		case *widget.TabContainer:
			out = append(out, field{name: tabField(x), typ: "usize", init: "0"})
		case *widget.Window:
			init := "false"
			if x.Open {
				init = "true"
			}
			out = append(out, field{name: windowField(x), typ: "bool", init: init})
		}
		return true
	})
	return out
}

func tabField(n widget.Node) string    { return "tab_" + widget.Ident(n.ID()) }
func windowField(n widget.Node) string { return "window_" + widget.Ident(n.ID()) + "_open" }

func generateApp(s *project.State, opts Options, targets map[string]string) string {
	var fields []field
	for _, v := range s.SortedVariables() {
		fields = append(fields, field{
			name: v.Name,
			typ:  rustType(v.Type),
			init: literal(v.Type, v.Value, v.Name, opts.Logger),
		})
	}
	fields = append(fields, auxFields(s.Root)...)

	w := &writer{}
	w.line("use eframe::App;")
	w.line("use egui::Context;")
	w.line("")

	w.open("pub struct MyApp {")
	for _, f := range fields {
		w.line("pub %s: %s,", f.name, f.typ)
	}
	w.close("}")
	w.line("")

	w.open("impl Default for MyApp {")
	w.open("fn default() -> Self {")
	w.open("Self {")
	for _, f := range fields {
		w.line("%s: %s,", f.name, f.init)
	}
	w.close("}")
	w.close("}")
	w.close("}")
	w.line("")

	w.open("impl App for MyApp {")
	w.open("fn update(&mut self, ctx: &Context, _frame: &mut eframe::Frame) {")
	w.open("egui::CentralPanel::default().show(ctx, |ui| {")
	l := &lowerer{st: s, opts: opts, w: w, targets: targets}
	l.node(s.Root)
	w.close("});")
	w.close("}")
	w.close("}")
	return w.String()
}
