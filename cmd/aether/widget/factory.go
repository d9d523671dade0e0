package widget

import (
	"fmt"
	"strings"
)

// Default property values of freshly created widgets.
const (
	DefaultSpacing = 5.0
	DefaultColumns = 2
)

// New creates a widget with a fresh ID from its palette name.
// The lookup is case-insensitive. It returns false for unknown names.
func New(name string) (Node, bool) {
	for _, k := range Kinds() {
		if strings.EqualFold(string(k), name) {
			return newOfKind(k, NewID()), true
		}
	}
	return nil, false
}

// MustNew is New for names known at compile time; it panics on unknown names.
func MustNew(k Kind) Node {
	n, ok := New(string(k))
	if !ok {
		panic(fmt.Sprintf("widget: unknown kind %q", k))
	}
	return n
}

// Zero returns an empty value of kind k carrying id. Decoders fill it in.
func Zero(k Kind, id ID) (Node, error) {
	switch k {
	case KindVertical:
		return &VerticalLayout{NodeID: id}, nil
	case KindHorizontal:
		return &HorizontalLayout{NodeID: id}, nil
	case KindGrid:
		return &GridLayout{NodeID: id}, nil
	case KindFreeform:
		return &FreeformLayout{NodeID: id}, nil
	case KindScroll:
		return &ScrollArea{NodeID: id}, nil
	case KindTabs:
		return &TabContainer{NodeID: id}, nil
	case KindWindow:
		return &Window{NodeID: id}, nil
	case KindButton:
		return &Button{NodeID: id}, nil
	case KindLabel:
		return &Label{NodeID: id}, nil
	case KindTextEdit:
		return &TextEdit{NodeID: id}, nil
	case KindCheckbox:
		return &Checkbox{NodeID: id}, nil
	case KindSlider:
		return &Slider{NodeID: id}, nil
	case KindProgressBar:
		return &ProgressBar{NodeID: id}, nil
	case KindComboBox:
		return &ComboBox{NodeID: id}, nil
	case KindImage:
		return &Image{NodeID: id}, nil
	case KindSeparator:
		return &Separator{NodeID: id}, nil
	case KindSpinner:
		return &Spinner{NodeID: id}, nil
	case KindHyperlink:
		return &Hyperlink{NodeID: id}, nil
	case KindColorPicker:
		return &ColorPicker{NodeID: id}, nil
	case KindTable:
		return &Table{NodeID: id}, nil
	case KindPlot:
		return &Plot{NodeID: id}, nil
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownKind, k)
}

func newOfKind(k Kind, id ID) Node {
	switch k {
	case KindVertical:
		return &VerticalLayout{NodeID: id, Spacing: DefaultSpacing}
	case KindHorizontal:
		return &HorizontalLayout{NodeID: id, Spacing: DefaultSpacing}
	case KindGrid:
		return &GridLayout{NodeID: id, Columns: DefaultColumns, Spacing: DefaultSpacing}
	case KindFreeform:
		return &FreeformLayout{NodeID: id, Width: 400, Height: 300}
	case KindScroll:
		return &ScrollArea{NodeID: id, MaxHeight: 200}
	case KindTabs:
		return &TabContainer{NodeID: id}
	case KindWindow:
		return &Window{NodeID: id, Title: "Window", Open: true}
	case KindButton:
		return &Button{NodeID: id, Text: "Button"}
	case KindLabel:
		return &Label{NodeID: id, Text: "Label"}
	case KindTextEdit:
		return &TextEdit{NodeID: id}
	case KindCheckbox:
		return &Checkbox{NodeID: id, Label: "Checkbox"}
	case KindSlider:
		return &Slider{NodeID: id, Min: 0, Max: 100, Value: 50}
	case KindProgressBar:
		return &ProgressBar{NodeID: id, Value: 0.5}
	case KindComboBox:
		return &ComboBox{NodeID: id, Label: "Select", Options: []string{"Option 1", "Option 2", "Option 3"}}
	case KindImage:
		return &Image{NodeID: id}
	case KindSeparator:
		return &Separator{NodeID: id}
	case KindSpinner:
		return &Spinner{NodeID: id}
	case KindHyperlink:
		return &Hyperlink{NodeID: id, Text: "Link", URL: "https://example.com"}
	case KindColorPicker:
		return &ColorPicker{NodeID: id, Color: [4]uint8{255, 255, 255, 255}}
	case KindTable:
		return &Table{
			NodeID:  id,
			Columns: []string{"Name", "Value"},
			Rows:    [][]string{{"a", "1"}, {"b", "2"}},
			Striped: true,
		}
	case KindPlot:
		return &Plot{
			NodeID: id,
			Title:  "Plot",
			Width:  240,
			Height: 120,
			Series: []Series{{Name: "series", Points: [][2]float64{{0, 0}, {1, 1}, {2, 4}, {3, 9}}}},
		}
	}
	return nil
}

func defaultTabTitle(i int) string {
	return fmt.Sprintf("Tab %d", i+1)
}
