package codegen

import (
	"bytes"
	"fmt"
	"text/template"
)

const manifestTemplate = `[package]
name = "{{ .Crate }}"
version = "0.1.0"
edition = "{{ .Edition }}"

[dependencies]
egui = "{{ .Egui }}"
eframe = "{{ .Egui }}"
`

const mainTemplate = `#![cfg_attr(not(debug_assertions), windows_subsystem = "windows")]

mod app;
use app::MyApp;

fn main() -> eframe::Result {
    let options = eframe::NativeOptions {
        viewport: egui::ViewportBuilder::default().with_inner_size([{{ .Width }}, {{ .Height }}]),
        ..Default::default()
    };
    eframe::run_native(
        {{ .Title }},
        options,
        Box::new(|_cc| Ok(Box::new(MyApp::default()))),
    )
}
`

var (
	manifestTmpl = template.Must(template.New("Cargo.toml").Option("missingkey=error").Parse(manifestTemplate))
	mainTmpl     = template.Must(template.New("main.rs").Option("missingkey=error").Parse(mainTemplate))
)

func render(t *template.Template, data map[string]string) string {
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		// Both templates are fixed and data always carries every key.
		panic(fmt.Sprintf("codegen: render %s: %v", t.Name(), err))
	}
	return buf.String()
}

func renderManifest(crate string, o Options) string {
	return render(manifestTmpl, map[string]string{
		"Crate":   crate,
		"Edition": o.Edition,
		"Egui":    o.EguiVersion,
	})
}

func renderMain(o Options) string {
	return render(mainTmpl, map[string]string{
		"Title":  rustString(o.WindowTitle),
		"Width":  rustFloat(o.WindowSize[0]),
		"Height": rustFloat(o.WindowSize[1]),
	})
}
