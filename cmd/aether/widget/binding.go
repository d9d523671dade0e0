package widget

import (
	"fmt"
	"sort"
)

// BindableProperty is a property that can be driven by a project variable.
type BindableProperty struct {
	Name  string
	Class TypeClass
}

var bindable = map[Kind][]BindableProperty{
	KindButton:      {{"text", ClassText}},
	KindLabel:       {{"text", ClassAny}},
	KindTextEdit:    {{"value", ClassText}},
	KindCheckbox:    {{"checked", ClassBool}, {"label", ClassText}},
	KindSlider:      {{"value", ClassNumber}},
	KindProgressBar: {{"value", ClassNumber}},
	KindComboBox:    {{"selected", ClassText}},
	KindHyperlink:   {{"text", ClassText}, {"url", ClassText}},
}

// BindableProperties returns the properties of kind k that accept a binding.
func BindableProperties(k Kind) []BindableProperty {
	return bindable[k]
}

// LookupBindable returns the bindable property name of kind k.
func LookupBindable(k Kind, name string) (BindableProperty, bool) {
	for _, p := range bindable[k] {
		if p.Name == name {
			return p, true
		}
	}
	return BindableProperty{}, false
}

// bindingsField returns the address of the node's binding map, or nil if the
// variant has none.
func bindingsField(n Node) *map[string]string {
	switch x := n.(type) {
	case *Button:
		return &x.Bindings
	case *Label:
		return &x.Bindings
	case *TextEdit:
		return &x.Bindings
	case *Checkbox:
		return &x.Bindings
	case *Slider:
		return &x.Bindings
	case *ProgressBar:
		return &x.Bindings
	case *ComboBox:
		return &x.Bindings
	case *Hyperlink:
		return &x.Bindings
	}
	return nil
}

// BindingsOf returns the property → variable map of n. The map must not be
// modified; use Bind and Unbind.
func BindingsOf(n Node) map[string]string {
	if f := bindingsField(n); f != nil {
		return *f
	}
	return nil
}

// Binding returns the variable bound to property, or "" for a literal.
func Binding(n Node, property string) string {
	return BindingsOf(n)[property]
}

// SortedBindings returns the bound property names of n in lexical order.
func SortedBindings(n Node) []string {
	m := BindingsOf(n)
	out := make([]string, 0, len(m))
	for p, v := range m {
		if v != "" {
			out = append(out, p)
		}
	}
	sort.Strings(out)
	return out
}

// Bind associates property with variable. Binding to "" makes the property
// literal again.
func Bind(n Node, property, variable string) error {
	if _, ok := LookupBindable(n.Kind(), property); !ok {
		return fmt.Errorf("%w: %s.%s", ErrNotBindable, n.Kind(), property)
	}
	if variable == "" {
		Unbind(n, property)
		return nil
	}
	f := bindingsField(n)
	if *f == nil {
		*f = make(map[string]string)
	}
	(*f)[property] = variable
	return nil
}

// Unbind removes the binding of property and reports whether one existed.
func Unbind(n Node, property string) bool {
	f := bindingsField(n)
	if f == nil || *f == nil {
		return false
	}
	if _, ok := (*f)[property]; !ok {
		return false
	}
	delete(*f, property)
	if len(*f) == 0 {
		*f = nil
	}
	return true
}

func eventsField(n Node) *EventMap {
	switch x := n.(type) {
	case *Button:
		return &x.Events
	case *TextEdit:
		return &x.Events
	case *Checkbox:
		return &x.Events
	case *Slider:
		return &x.Events
	case *ComboBox:
		return &x.Events
	case *Hyperlink:
		return &x.Events
	}
	return nil
}

// IsInteractive reports whether n accepts event actions.
func IsInteractive(n Node) bool {
	return eventsField(n) != nil
}

// EventsOf returns the event map of n; nil for non-interactive variants.
func EventsOf(n Node) EventMap {
	if f := eventsField(n); f != nil {
		return *f
	}
	return nil
}

// AttachAction attaches a to event e of n, replacing any previous action.
func AttachAction(n Node, e Event, a Action) error {
	f := eventsField(n)
	if f == nil {
		return fmt.Errorf("%w: %s", ErrNoEvents, n.Kind())
	}
	if e.rank() == len(Events) {
		return fmt.Errorf("%w: %q", ErrUnknownEvent, e)
	}
	if c, ok := a.(CustomAction); ok {
		if err := ProbeCode(c.Code); err != nil {
			return err
		}
	}
	if *f == nil {
		*f = make(EventMap)
	}
	(*f)[e] = a
	return nil
}

// DetachAction removes the action of event e and reports whether one existed.
func DetachAction(n Node, e Event) bool {
	f := eventsField(n)
	if f == nil || *f == nil {
		return false
	}
	if _, ok := (*f)[e]; !ok {
		return false
	}
	delete(*f, e)
	if len(*f) == 0 {
		*f = nil
	}
	return true
}
