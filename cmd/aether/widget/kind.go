package widget

// Kind is the display name of a widget variant. It is also the "type" tag
// of the persisted form.
type Kind string

const (
	KindVertical   Kind = "Vertical Layout"
	KindHorizontal Kind = "Horizontal Layout"
	KindGrid       Kind = "Grid Layout"
	KindFreeform   Kind = "Freeform Layout"
	KindScroll     Kind = "Scroll Area"
	KindTabs       Kind = "Tab Container"
	KindWindow     Kind = "Window"

	KindButton      Kind = "Button"
	KindLabel       Kind = "Label"
	KindTextEdit    Kind = "Text Edit"
	KindCheckbox    Kind = "Checkbox"
	KindSlider      Kind = "Slider"
	KindProgressBar Kind = "Progress Bar"
	KindComboBox    Kind = "ComboBox"
	KindImage       Kind = "Image"
	KindSeparator   Kind = "Separator"
	KindSpinner     Kind = "Spinner"
	KindHyperlink   Kind = "Hyperlink"
	KindColorPicker Kind = "Color Picker"
	KindTable       Kind = "Table"
	KindPlot        Kind = "Plot"
)

// PaletteGroup is one section of the widget palette.
type PaletteGroup struct {
	Category string
	Kinds    []Kind
}

var palette = []PaletteGroup{
	{Category: "Layouts", Kinds: []Kind{
		KindVertical, KindHorizontal, KindGrid, KindFreeform, KindScroll, KindTabs, KindWindow,
	}},
	{Category: "Inputs", Kinds: []Kind{
		KindButton, KindCheckbox, KindSlider, KindTextEdit, KindComboBox,
	}},
	{Category: "Display", Kinds: []Kind{
		KindLabel, KindTable, KindPlot, KindProgressBar, KindImage,
		KindSeparator, KindSpinner, KindHyperlink, KindColorPicker,
	}},
}

// Palette returns the factory names grouped the way the designer shows them.
func Palette() []PaletteGroup {
	out := make([]PaletteGroup, len(palette))
	for i, g := range palette {
		out[i] = PaletteGroup{Category: g.Category, Kinds: append([]Kind(nil), g.Kinds...)}
	}
	return out
}

// Kinds returns every known kind in palette order.
func Kinds() []Kind {
	var out []Kind
	for _, g := range palette {
		out = append(out, g.Kinds...)
	}
	return out
}

// Category returns the palette section a kind belongs to, or "Other".
func Category(k Kind) string {
	for _, g := range palette {
		for _, gk := range g.Kinds {
			if gk == k {
				return g.Category
			}
		}
	}
	return "Other"
}

// IsContainerKind reports whether nodes of kind k own children.
func IsContainerKind(k Kind) bool {
	return Category(k) == "Layouts"
}

// RootKinds lists the layouts a project root may be swapped between.
var RootKinds = []Kind{KindVertical, KindHorizontal, KindGrid}
