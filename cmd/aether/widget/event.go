package widget

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"
)

// Event is a user interaction a widget can react to.
type Event string

const (
	EventClicked       Event = "Clicked"
	EventChanged       Event = "Changed"
	EventHovered       Event = "Hovered"
	EventDoubleClicked Event = "DoubleClicked"
	EventFocused       Event = "Focused"
	EventLostFocus     Event = "LostFocus"
)

// Events lists every event in emission order.
var Events = []Event{
	EventClicked, EventChanged, EventHovered, EventDoubleClicked, EventFocused, EventLostFocus,
}

var eventLabels = map[Event]string{
	EventClicked:       "On Click",
	EventChanged:       "On Change",
	EventHovered:       "On Hover",
	EventDoubleClicked: "On Double Click",
	EventFocused:       "On Focus",
	EventLostFocus:     "On Blur",
}

// Label returns the inspector label of the event, e.g. "On Click".
func (e Event) Label() string {
	if l, ok := eventLabels[e]; ok {
		return l
	}
	return string(e)
}

func (e Event) rank() int {
	for i, ev := range Events {
		if ev == e {
			return i
		}
	}
	return len(Events)
}

// ParseEvent accepts either the event name ("Clicked") or its label ("On Click").
func ParseEvent(s string) (Event, error) {
	for _, e := range Events {
		if strings.EqualFold(string(e), s) || strings.EqualFold(e.Label(), s) {
			return e, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownEvent, s)
}

// Action is the generated behaviour attached to an event.
// Only IncrementAction, SetAction and CustomAction implement it.
type Action interface {
	isAction()
	// Variable returns the variable the action writes, or "" for custom code.
	Variable() string
}

// IncrementAction adds one to a numeric variable.
type IncrementAction struct {
	Var string
}

// SetAction assigns a literal, written as text, to a variable.
type SetAction struct {
	Var   string
	Value string
}

// CustomAction is user code emitted verbatim.
type CustomAction struct {
	Code string
}

func (IncrementAction) isAction() {}
func (SetAction) isAction()       {}
func (CustomAction) isAction()    {}

func (a IncrementAction) Variable() string { return a.Var }
func (a SetAction) Variable() string       { return a.Var }
func (CustomAction) Variable() string      { return "" }

// DescribeAction renders an action for listings.
func DescribeAction(a Action) string {
	switch x := a.(type) {
	case IncrementAction:
		return "increment " + x.Var
	case SetAction:
		return fmt.Sprintf("set %s = %s", x.Var, x.Value)
	case CustomAction:
		return "custom: " + strings.Join(strings.Fields(x.Code), " ")
	}
	return "?"
}

// EventMap maps each declared event to its action.
type EventMap map[Event]Action

// Sorted returns the declared events in emission order.
func (m EventMap) Sorted() []Event {
	out := make([]Event, 0, len(m))
	for e := range m {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		ri, rj := out[i].rank(), out[j].rank()
		if ri != rj {
			return ri < rj
		}
		return out[i] < out[j]
	})
	return out
}

// actionJSON is the persisted form of an Action, discriminated by Type.
type actionJSON struct {
	Type     string `json:"type"`
	Variable string `json:"variable,omitempty"`
	Value    string `json:"value,omitempty"`
	Code     string `json:"code,omitempty"`
}

func (m EventMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]actionJSON, len(m))
	for e, a := range m {
		switch x := a.(type) {
		case IncrementAction:
			out[string(e)] = actionJSON{Type: "Increment", Variable: x.Var}
		case SetAction:
			out[string(e)] = actionJSON{Type: "Set", Variable: x.Var, Value: x.Value}
		case CustomAction:
			out[string(e)] = actionJSON{Type: "Custom", Code: x.Code}
		default:
			return nil, fmt.Errorf("event %s: unsupported action %T", e, a)
		}
	}
	return json.Marshal(out)
}

func (m *EventMap) UnmarshalJSON(data []byte) error {
	var raw map[string]actionJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	out := make(EventMap, len(raw))
	for name, aj := range raw {
		e, err := ParseEvent(name)
		if err != nil {
			return err
		}
		switch aj.Type {
		case "Increment":
			out[e] = IncrementAction{Var: aj.Variable}
		case "Set":
			out[e] = SetAction{Var: aj.Variable, Value: aj.Value}
		case "Custom":
			out[e] = CustomAction{Code: aj.Code}
		default:
			return fmt.Errorf("event %s: unknown action type %q", name, aj.Type)
		}
	}
	*m = out
	return nil
}
