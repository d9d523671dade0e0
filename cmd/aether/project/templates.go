package project

import (
	"fmt"

	"aether/cmd/aether/widget"
)

type template struct {
	name  string
	about string
	build func() *State
}

var templates = []template{
	{"empty", "a vertical layout and nothing else", New},
	{"counter", "a label bound to an integer and an increment button", counterTemplate},
	{"form", "a contact form with two bound text fields", formTemplate},
	{"dashboard", "two rows of labelled progress bars", dashboardTemplate},
}

// Templates returns the template names in menu order.
func Templates() []string {
	out := make([]string, len(templates))
	for i, t := range templates {
		out[i] = t.name
	}
	return out
}

// TemplateAbout returns the one-line description of a template.
func TemplateAbout(name string) string {
	for _, t := range templates {
		if t.name == name {
			return t.about
		}
	}
	return ""
}

// FromTemplate builds a new project from a named starter.
func FromTemplate(name string) (*State, error) {
	for _, t := range templates {
		if t.name == name {
			return t.build(), nil
		}
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownTemplate, name)
}

func label(text string) *widget.Label {
	return &widget.Label{NodeID: widget.NewID(), Text: text}
}

func counterTemplate() *State {
	count := label("Count: 0")
	count.Bindings = map[string]string{"text": "counter"}
	inc := &widget.Button{
		NodeID: widget.NewID(),
		Text:   "Increment",
		Events: widget.EventMap{widget.EventClicked: widget.IncrementAction{Var: "counter"}},
	}

	s := New()
	s.Name = "Counter App"
	s.Root.SetChildren([]widget.Node{label("Counter App"), count, inc})
	s.Variables["counter"] = Variable{Name: "counter", Type: widget.TypeInteger, Value: "0"}
	return s
}

func formTemplate() *State {
	name := &widget.TextEdit{NodeID: widget.NewID(), Bindings: map[string]string{"value": "name"}}
	email := &widget.TextEdit{NodeID: widget.NewID(), Bindings: map[string]string{"value": "email"}}

	s := New()
	s.Name = "Contact Form"
	s.Root.SetChildren([]widget.Node{
		label("Contact Form"),
		label("Name:"), name,
		label("Email:"), email,
		&widget.Button{NodeID: widget.NewID(), Text: "Submit"},
	})
	s.Variables["name"] = Variable{Name: "name", Type: widget.TypeString}
	s.Variables["email"] = Variable{Name: "email", Type: widget.TypeString}
	return s
}

func dashboardTemplate() *State {
	row := func(title, variable string, value float64) widget.Node {
		bar := &widget.ProgressBar{
			NodeID:   widget.NewID(),
			Value:    value,
			Bindings: map[string]string{"value": variable},
		}
		return &widget.HorizontalLayout{
			NodeID:  widget.NewID(),
			Spacing: widget.DefaultSpacing,
			Items:   []widget.Node{label(title), bar},
		}
	}

	s := New()
	s.Name = "Dashboard"
	s.Root.SetChildren([]widget.Node{
		label("Dashboard"),
		row("CPU Usage:", "cpu_usage", 0.45),
		row("Memory Usage:", "memory_usage", 0.60),
	})
	s.Variables["cpu_usage"] = Variable{Name: "cpu_usage", Type: widget.TypeFloat, Value: "0.45"}
	s.Variables["memory_usage"] = Variable{Name: "memory_usage", Type: widget.TypeFloat, Value: "0.60"}
	return s
}
