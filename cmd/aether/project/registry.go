package project

import (
	"fmt"
	"regexp"
	"sort"
	"strings"

	"aether/cmd/aether/widget"
)

// Variable is a named, typed field of the generated application state.
// Value is the default written as text; it is parsed when code is generated.
type Variable struct {
	Name  string           `json:"name"`
	Type  widget.ValueType `json:"type"`
	Value string           `json:"value"`
}

// AssetKind classifies a project asset.
type AssetKind string

const (
	AssetImage AssetKind = "Image"
	AssetAudio AssetKind = "Audio"
	AssetData  AssetKind = "Data"
)

// AssetKinds lists the asset kinds in display order.
var AssetKinds = []AssetKind{AssetImage, AssetAudio, AssetData}

// ParseAssetKind accepts an asset kind name case-insensitively.
func ParseAssetKind(s string) (AssetKind, error) {
	for _, k := range AssetKinds {
		if strings.EqualFold(string(k), s) {
			return k, nil
		}
	}
	return "", fmt.Errorf("%w: unknown asset kind %q", ErrInvalidName, s)
}

// Asset is a file the generated application ships with. Widgets refer to
// assets by Name so the Path can change without touching them.
type Asset struct {
	Name string    `json:"name"`
	Kind AssetKind `json:"kind"`
	Path string    `json:"path"`
}

var identRe = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

var rustKeywords = map[string]struct{}{
	"as": {}, "async": {}, "await": {}, "break": {}, "const": {}, "continue": {}, "crate": {},
	"dyn": {}, "else": {}, "enum": {}, "extern": {}, "false": {}, "fn": {}, "for": {}, "if": {},
	"impl": {}, "in": {}, "let": {}, "loop": {}, "match": {}, "mod": {}, "move": {}, "mut": {},
	"pub": {}, "ref": {}, "return": {}, "self": {}, "Self": {}, "static": {}, "struct": {},
	"super": {}, "trait": {}, "true": {}, "type": {}, "unsafe": {}, "use": {}, "where": {},
	"while": {}, "_": {},
}

// ValidateVariableName reports whether name can be a field of the generated
// application struct.
func ValidateVariableName(name string) error {
	if !identRe.MatchString(name) {
		return fmt.Errorf("%w: %q is not an identifier", ErrInvalidName, name)
	}
	if _, ok := rustKeywords[name]; ok {
		return fmt.Errorf("%w: %q is a reserved word", ErrInvalidName, name)
	}
	return nil
}

// AddVariable registers v. Names are unique.
func (s *State) AddVariable(v Variable) error {
	if err := ValidateVariableName(v.Name); err != nil {
		return err
	}
	if _, exists := s.Variables[v.Name]; exists {
		return fmt.Errorf("%w: %s", ErrVariableExists, v.Name)
	}
	if v.Type == "" {
		v.Type = widget.TypeString
	}
	s.Variables[v.Name] = v
	return nil
}

// RemoveVariable deletes a variable. Bindings that name it are left in place
// and show up in validation.
func (s *State) RemoveVariable(name string) error {
	if _, ok := s.Variables[name]; !ok {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, name)
	}
	delete(s.Variables, name)
	return nil
}

// Variable returns the variable with the given name.
func (s *State) Variable(name string) (Variable, bool) {
	v, ok := s.Variables[name]
	return v, ok
}

// SetVariableValue replaces the default value of a variable. The text is
// not checked against the type.
func (s *State) SetVariableValue(name, value string) error {
	v, ok := s.Variables[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, name)
	}
	v.Value = value
	s.Variables[name] = v
	return nil
}

// SetVariableType changes the declared type of a variable.
func (s *State) SetVariableType(name string, t widget.ValueType) error {
	v, ok := s.Variables[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, name)
	}
	v.Type = t
	s.Variables[name] = v
	return nil
}

// RenameVariable renames a variable and every binding and action that
// refers to it.
func (s *State) RenameVariable(from, to string) error {
	v, ok := s.Variables[from]
	if !ok {
		return fmt.Errorf("%w: %s", ErrVariableNotFound, from)
	}
	if err := ValidateVariableName(to); err != nil {
		return err
	}
	if _, exists := s.Variables[to]; exists {
		return fmt.Errorf("%w: %s", ErrVariableExists, to)
	}
	delete(s.Variables, from)
	v.Name = to
	s.Variables[to] = v

	widget.Walk(s.Root, func(n widget.Node, _ widget.Container, _ int) bool {
		for prop, bound := range widget.BindingsOf(n) {
			if bound == from {
				_ = widget.Bind(n, prop, to)
			}
		}
		for e, a := range widget.EventsOf(n) {
			switch x := a.(type) {
			case widget.IncrementAction:
				if x.Var == from {
					_ = widget.AttachAction(n, e, widget.IncrementAction{Var: to})
				}
			case widget.SetAction:
				if x.Var == from {
					_ = widget.AttachAction(n, e, widget.SetAction{Var: to, Value: x.Value})
				}
			}
		}
		return true
	})
	return nil
}

// VariableNames returns the variable names in lexical order.
func (s *State) VariableNames() []string {
	names := make([]string, 0, len(s.Variables))
	for name := range s.Variables {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// SortedVariables returns the variables ordered by name.
func (s *State) SortedVariables() []Variable {
	names := s.VariableNames()
	out := make([]Variable, len(names))
	for i, name := range names {
		out[i] = s.Variables[name]
	}
	return out
}

// AddAsset registers a. Names are unique.
func (s *State) AddAsset(a Asset) error {
	if strings.TrimSpace(a.Name) == "" {
		return fmt.Errorf("%w: empty asset name", ErrInvalidName)
	}
	if _, exists := s.Assets[a.Name]; exists {
		return fmt.Errorf("%w: %s", ErrAssetExists, a.Name)
	}
	if a.Kind == "" {
		a.Kind = AssetImage
	}
	s.Assets[a.Name] = a
	return nil
}

// RemoveAsset deletes an asset. Images that name it show up in validation.
func (s *State) RemoveAsset(name string) error {
	if _, ok := s.Assets[name]; !ok {
		return fmt.Errorf("%w: %s", ErrAssetNotFound, name)
	}
	delete(s.Assets, name)
	return nil
}

// AssetNames returns the asset names in lexical order.
func (s *State) AssetNames() []string {
	names := make([]string, 0, len(s.Assets))
	for name := range s.Assets {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// ImageAssets returns the Image assets ordered by name.
func (s *State) ImageAssets() []Asset {
	var out []Asset
	for _, name := range s.AssetNames() {
		if a := s.Assets[name]; a.Kind == AssetImage {
			out = append(out, a)
		}
	}
	return out
}
