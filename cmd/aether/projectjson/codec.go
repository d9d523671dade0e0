// Package projectjson reads and writes the persisted project document.
//
// Nodes are a discriminated union on "type", whose values are the widget
// kind names, with children nested under "children". Decoding validates the
// document against an embedded JSON Schema before building the tree.
package projectjson

import (
	"bytes"
	_ "embed"
	"encoding/json"
	"errors"
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"
	"sync"

	"github.com/santhosh-tekuri/jsonschema/v5"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

//go:embed schema.json
var schemaJSON string

const schemaURL = "https://aether.local/schemas/project.schema.json"

var compileSchema = sync.OnceValues(func() (*jsonschema.Schema, error) {
	c := jsonschema.NewCompiler()
	c.Draft = jsonschema.Draft2020
	if err := c.AddResource(schemaURL, strings.NewReader(schemaJSON)); err != nil {
		return nil, fmt.Errorf("project schema load failed: %w", err)
	}
	return c.Compile(schemaURL)
})

// document is the top-level persisted form of a project.
type document struct {
	Name      string                      `json:"name"`
	Root      json.RawMessage             `json:"root"`
	Selection []widget.ID                 `json:"selection"`
	Variables map[string]project.Variable `json:"variables"`
	Assets    map[string]project.Asset    `json:"assets"`
}

// Encode renders s as an indented document. Object keys are sorted.
func Encode(s *project.State) ([]byte, error) {
	doc, err := toDocument(s)
	if err != nil {
		return nil, err
	}
	out, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return nil, err
	}
	return append(out, '\n'), nil
}

func toDocument(s *project.State) (document, error) {
	root, err := encodeNode(s.Root)
	if err != nil {
		return document{}, err
	}
	vars := s.Variables
	if vars == nil {
		vars = map[string]project.Variable{}
	}
	assets := s.Assets
	if assets == nil {
		assets = map[string]project.Asset{}
	}
	return document{
		Name:      s.Name,
		Root:      root,
		Selection: s.Selected(),
		Variables: vars,
		Assets:    assets,
	}, nil
}

// EncodeNode renders a single subtree, as used by the clipboard.
func EncodeNode(n widget.Node) ([]byte, error) {
	raw, err := encodeNode(n)
	if err != nil {
		return nil, err
	}
	var buf bytes.Buffer
	if err := json.Indent(&buf, raw, "", "  "); err != nil {
		return nil, err
	}
	buf.WriteByte('\n')
	return buf.Bytes(), nil
}

// encodeNode merges the variant's own fields with the "type" tag and the
// nested children.
func encodeNode(n widget.Node) (json.RawMessage, error) {
	own, err := json.Marshal(n)
	if err != nil {
		return nil, fmt.Errorf("encode %s %s: %w", n.Kind(), n.ID(), err)
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(own, &obj); err != nil {
		return nil, err
	}
	obj["type"], _ = json.Marshal(string(n.Kind()))

	if c, ok := widget.AsContainer(n); ok {
		children := make([]json.RawMessage, 0, len(c.Children()))
		for _, child := range c.Children() {
			raw, err := encodeNode(child)
			if err != nil {
				return nil, err
			}
			children = append(children, raw)
		}
		obj["children"], err = json.Marshal(children)
		if err != nil {
			return nil, err
		}
	}
	return json.Marshal(obj)
}

// Decode parses a project document. The schema is checked first; the tree
// is then rebuilt, rejecting unknown types, duplicate ids and leaf roots.
// Selected ids that are not in the tree are dropped.
func Decode(data []byte) (*project.State, error) {
	if err := validateSchema(data); err != nil {
		return nil, err
	}

	var doc document
	if err := json.Unmarshal(data, &doc); err != nil {
		return nil, fmt.Errorf("phase=decode path=<root>: %w", err)
	}

	seen := make(map[widget.ID]struct{})
	root, err := decodeNode(doc.Root, "/root", seen)
	if err != nil {
		return nil, err
	}
	c, ok := widget.AsContainer(root)
	if !ok {
		return nil, fmt.Errorf("phase=decode path=/root: %w: got %s", ErrInvalidRoot, root.Kind())
	}

	s := project.NewWithRoot(c)
	s.Name = doc.Name
	for _, name := range slices.Sorted(maps.Keys(doc.Variables)) {
		v := doc.Variables[name]
		path := "/variables/" + name
		if v.Name == "" {
			v.Name = name
		}
		if v.Name != name {
			return nil, fmt.Errorf("phase=decode path=%s: %w: key %q names variable %q", path, ErrNameMismatch, name, v.Name)
		}
		if err := project.ValidateVariableName(name); err != nil {
			return nil, fmt.Errorf("phase=decode path=%s: %w", path, err)
		}
		if v.Type == "" {
			v.Type = widget.TypeString
		}
		s.Variables[name] = v
	}
	for _, name := range slices.Sorted(maps.Keys(doc.Assets)) {
		a := doc.Assets[name]
		if a.Name == "" {
			a.Name = name
		}
		if a.Name != name {
			return nil, fmt.Errorf("phase=decode path=/assets/%s: %w: key %q names asset %q", name, ErrNameMismatch, name, a.Name)
		}
		if a.Kind == "" {
			a.Kind = project.AssetImage
		}
		s.Assets[name] = a
	}
	s.Select(doc.Selection...)
	return s, nil
}

// DecodeNode parses a single subtree written by EncodeNode.
func DecodeNode(data []byte) (widget.Node, error) {
	return decodeNode(data, "<root>", make(map[widget.ID]struct{}))
}

type nodeHeader struct {
	Type     string            `json:"type"`
	ID       widget.ID         `json:"id"`
	Children []json.RawMessage `json:"children"`
}

func decodeNode(raw json.RawMessage, path string, seen map[widget.ID]struct{}) (widget.Node, error) {
	var h nodeHeader
	if err := json.Unmarshal(raw, &h); err != nil {
		return nil, fmt.Errorf("phase=decode path=%s: %w", path, err)
	}
	if h.ID == (widget.ID{}) {
		return nil, fmt.Errorf("phase=decode path=%s: missing id", path)
	}
	if _, dup := seen[h.ID]; dup {
		return nil, fmt.Errorf("phase=decode path=%s: %w: %s", path, ErrDuplicateID, h.ID)
	}
	seen[h.ID] = struct{}{}

	n, err := widget.Zero(widget.Kind(h.Type), h.ID)
	if err != nil {
		return nil, fmt.Errorf("phase=decode path=%s: %w: %q", path, ErrUnknownType, h.Type)
	}
	if err := json.Unmarshal(raw, n); err != nil {
		return nil, fmt.Errorf("phase=decode path=%s: %s: %w", path, h.Type, err)
	}

	c, ok := widget.AsContainer(n)
	if !ok {
		if len(h.Children) > 0 {
			return nil, fmt.Errorf("phase=decode path=%s: %s cannot have children", path, h.Type)
		}
		return n, nil
	}
	if len(h.Children) == 0 {
		return n, nil
	}
	children := make([]widget.Node, 0, len(h.Children))
	for i, rc := range h.Children {
		child, err := decodeNode(rc, path+"/children/"+strconv.Itoa(i), seen)
		if err != nil {
			return nil, err
		}
		children = append(children, child)
	}
	c.SetChildren(children)
	return n, nil
}

func validateSchema(data []byte) error {
	schema, err := compileSchema()
	if err != nil {
		return err
	}
	var v any
	if err := json.Unmarshal(data, &v); err != nil {
		return fmt.Errorf("phase=schema path=<root>: %w", err)
	}
	if err := schema.Validate(v); err != nil {
		var ve *jsonschema.ValidationError
		if !errors.As(err, &ve) {
			return fmt.Errorf("phase=schema path=<root>: %w", err)
		}
		for len(ve.Causes) > 0 {
			ve = ve.Causes[0]
		}
		path := ve.InstanceLocation
		if path == "" {
			path = "<root>"
		}
		return fmt.Errorf("phase=schema path=%s: %w: %s", path, ErrSchema, ve.Message)
	}
	return nil
}
