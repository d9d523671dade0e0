package main

import (
	"fmt"
	"slices"
	"strings"

	"github.com/spf13/pflag"

	"aether/cmd/aether/codegen"
	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// enumFlag is a pflag.Value restricted to a fixed set of names.
type enumFlag struct {
	value   string
	allowed []string
	typ     string
}

var _ pflag.Value = (*enumFlag)(nil)

func newEnumFlag(typ, def string, allowed []string) *enumFlag {
	return &enumFlag{value: def, allowed: allowed, typ: typ}
}

func (f *enumFlag) String() string { return f.value }
func (f *enumFlag) Type() string   { return f.typ }

func (f *enumFlag) Set(s string) error {
	for _, a := range f.allowed {
		if strings.EqualFold(a, s) {
			f.value = a
			return nil
		}
	}
	return fmt.Errorf("must be one of %s", strings.Join(f.allowed, ", "))
}

// complete is a cobra flag completion function for the enum.
func (f *enumFlag) complete() []string {
	return slices.Clone(f.allowed)
}

func valueTypeFlag(def widget.ValueType) *enumFlag {
	names := make([]string, len(widget.ValueTypes))
	for i, t := range widget.ValueTypes {
		names[i] = string(t)
	}
	return newEnumFlag("type", string(def), names)
}

func (f *enumFlag) valueType() widget.ValueType { return widget.ValueType(f.value) }

func assetKindFlag() *enumFlag {
	names := make([]string, len(project.AssetKinds))
	for i, k := range project.AssetKinds {
		names[i] = string(k)
	}
	return newEnumFlag("kind", string(project.AssetImage), names)
}

func (f *enumFlag) assetKind() project.AssetKind { return project.AssetKind(f.value) }

func templateFlag(def string) *enumFlag {
	return newEnumFlag("template", def, project.Templates())
}

// generated file selectors for `generate --file`
var generatedFiles = map[string]string{
	"manifest": codegen.ManifestPath,
	"main":     codegen.MainPath,
	"app":      codegen.AppPath,
}

func generatedFileFlag() *enumFlag {
	return newEnumFlag("file", "", []string{"manifest", "main", "app"})
}

func joinAllowed(f *enumFlag) string {
	return strings.Join(f.allowed, "|")
}
