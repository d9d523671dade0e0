package widget

// Node is the sealed interface for every element of the widget tree.
// The unexported isNode() method prevents external implementations.
type Node interface {
	isNode()
	ID() ID
	Kind() Kind
}

// Container is a node that owns an ordered sequence of children.
// A child appears under exactly one container.
type Container interface {
	Node
	Children() []Node
	SetChildren([]Node)
}

// ---- Containers ------------------------------------------------------------

type VerticalLayout struct {
	NodeID  ID      `json:"id"`
	Spacing float64 `json:"spacing"`
	Items   []Node  `json:"-"`
}

type HorizontalLayout struct {
	NodeID  ID      `json:"id"`
	Spacing float64 `json:"spacing"`
	Items   []Node  `json:"-"`
}

// GridLayout places its children left to right in rows of Columns cells.
type GridLayout struct {
	NodeID  ID      `json:"id"`
	Columns int     `json:"columns"`
	Spacing float64 `json:"spacing"`
	Items   []Node  `json:"-"`
}

// Offset is the position of a freeform child relative to the canvas origin.
type Offset struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// FreeformLayout positions each child at an explicit offset. Children
// without an entry in Offsets sit at the origin.
type FreeformLayout struct {
	NodeID  ID            `json:"id"`
	Width   float64       `json:"width"`
	Height  float64       `json:"height"`
	Offsets map[ID]Offset `json:"offsets,omitempty"`
	Items   []Node        `json:"-"`
}

type ScrollArea struct {
	NodeID     ID      `json:"id"`
	MaxHeight  float64 `json:"max_height"`
	Horizontal bool    `json:"horizontal,omitempty"`
	Items      []Node  `json:"-"`
}

// TabContainer shows one child at a time. Titles[i] labels child i.
type TabContainer struct {
	NodeID ID       `json:"id"`
	Titles []string `json:"titles,omitempty"`
	Items  []Node   `json:"-"`
}

type Window struct {
	NodeID ID     `json:"id"`
	Title  string `json:"title"`
	Open   bool   `json:"open"`
	Items  []Node `json:"-"`
}

// ---- Leaves ----------------------------------------------------------------

type Button struct {
	NodeID   ID                `json:"id"`
	Text     string            `json:"text"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Events   EventMap          `json:"events,omitempty"`
}

type Label struct {
	NodeID   ID                `json:"id"`
	Text     string            `json:"text"`
	Bindings map[string]string `json:"bindings,omitempty"`
}

type TextEdit struct {
	NodeID    ID                `json:"id"`
	Text      string            `json:"text"`
	Hint      string            `json:"hint,omitempty"`
	Multiline bool              `json:"multiline,omitempty"`
	Bindings  map[string]string `json:"bindings,omitempty"`
	Events    EventMap          `json:"events,omitempty"`
}

type Checkbox struct {
	NodeID   ID                `json:"id"`
	Label    string            `json:"label"`
	Checked  bool              `json:"checked"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Events   EventMap          `json:"events,omitempty"`
}

type Slider struct {
	NodeID   ID                `json:"id"`
	Min      float64           `json:"min"`
	Max      float64           `json:"max"`
	Value    float64           `json:"value"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Events   EventMap          `json:"events,omitempty"`
}

// ProgressBar shows Value, a fraction between 0 and 1.
type ProgressBar struct {
	NodeID         ID                `json:"id"`
	Value          float64           `json:"value"`
	ShowPercentage bool              `json:"show_percentage,omitempty"`
	Bindings       map[string]string `json:"bindings,omitempty"`
}

// ComboBox offers Options; Selected is the index of the initial choice.
type ComboBox struct {
	NodeID   ID                `json:"id"`
	Label    string            `json:"label"`
	Options  []string          `json:"options"`
	Selected int               `json:"selected"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Events   EventMap          `json:"events,omitempty"`
}

// Image refers to a project asset by name, never by path.
type Image struct {
	NodeID   ID      `json:"id"`
	Asset    string  `json:"asset"`
	MaxWidth float64 `json:"max_width,omitempty"`
}

type Separator struct {
	NodeID ID `json:"id"`
}

type Spinner struct {
	NodeID ID      `json:"id"`
	Size   float64 `json:"size,omitempty"`
}

type Hyperlink struct {
	NodeID   ID                `json:"id"`
	Text     string            `json:"text"`
	URL      string            `json:"url"`
	Bindings map[string]string `json:"bindings,omitempty"`
	Events   EventMap          `json:"events,omitempty"`
}

// ColorPicker edits an sRGBA color.
type ColorPicker struct {
	NodeID ID       `json:"id"`
	Color  [4]uint8 `json:"color"`
}

type Table struct {
	NodeID  ID         `json:"id"`
	Columns []string   `json:"columns"`
	Rows    [][]string `json:"rows,omitempty"`
	Striped bool       `json:"striped,omitempty"`
}

// Series is one named line of a Plot.
type Series struct {
	Name   string       `json:"name"`
	Points [][2]float64 `json:"points"`
}

type Plot struct {
	NodeID ID       `json:"id"`
	Title  string   `json:"title"`
	Width  float64  `json:"width"`
	Height float64  `json:"height"`
	Series []Series `json:"series,omitempty"`
}

// ---- Node implementations ---------------------------------------------------

func (*VerticalLayout) isNode()   {}
func (*HorizontalLayout) isNode() {}
func (*GridLayout) isNode()       {}
func (*FreeformLayout) isNode()   {}
func (*ScrollArea) isNode()       {}
func (*TabContainer) isNode()     {}
func (*Window) isNode()           {}
func (*Button) isNode()           {}
func (*Label) isNode()            {}
func (*TextEdit) isNode()         {}
func (*Checkbox) isNode()         {}
func (*Slider) isNode()           {}
func (*ProgressBar) isNode()      {}
func (*ComboBox) isNode()         {}
func (*Image) isNode()            {}
func (*Separator) isNode()        {}
func (*Spinner) isNode()          {}
func (*Hyperlink) isNode()        {}
func (*ColorPicker) isNode()      {}
func (*Table) isNode()            {}
func (*Plot) isNode()             {}

func (n *VerticalLayout) ID() ID   { return n.NodeID }
func (n *HorizontalLayout) ID() ID { return n.NodeID }
func (n *GridLayout) ID() ID       { return n.NodeID }
func (n *FreeformLayout) ID() ID   { return n.NodeID }
func (n *ScrollArea) ID() ID       { return n.NodeID }
func (n *TabContainer) ID() ID     { return n.NodeID }
func (n *Window) ID() ID           { return n.NodeID }
func (n *Button) ID() ID           { return n.NodeID }
func (n *Label) ID() ID            { return n.NodeID }
func (n *TextEdit) ID() ID         { return n.NodeID }
func (n *Checkbox) ID() ID         { return n.NodeID }
func (n *Slider) ID() ID           { return n.NodeID }
func (n *ProgressBar) ID() ID      { return n.NodeID }
func (n *ComboBox) ID() ID         { return n.NodeID }
func (n *Image) ID() ID            { return n.NodeID }
func (n *Separator) ID() ID        { return n.NodeID }
func (n *Spinner) ID() ID          { return n.NodeID }
func (n *Hyperlink) ID() ID        { return n.NodeID }
func (n *ColorPicker) ID() ID      { return n.NodeID }
func (n *Table) ID() ID            { return n.NodeID }
func (n *Plot) ID() ID             { return n.NodeID }

func (*VerticalLayout) Kind() Kind   { return KindVertical }
func (*HorizontalLayout) Kind() Kind { return KindHorizontal }
func (*GridLayout) Kind() Kind       { return KindGrid }
func (*FreeformLayout) Kind() Kind   { return KindFreeform }
func (*ScrollArea) Kind() Kind       { return KindScroll }
func (*TabContainer) Kind() Kind     { return KindTabs }
func (*Window) Kind() Kind           { return KindWindow }
func (*Button) Kind() Kind           { return KindButton }
func (*Label) Kind() Kind            { return KindLabel }
func (*TextEdit) Kind() Kind         { return KindTextEdit }
func (*Checkbox) Kind() Kind         { return KindCheckbox }
func (*Slider) Kind() Kind           { return KindSlider }
func (*ProgressBar) Kind() Kind      { return KindProgressBar }
func (*ComboBox) Kind() Kind         { return KindComboBox }
func (*Image) Kind() Kind            { return KindImage }
func (*Separator) Kind() Kind        { return KindSeparator }
func (*Spinner) Kind() Kind          { return KindSpinner }
func (*Hyperlink) Kind() Kind        { return KindHyperlink }
func (*ColorPicker) Kind() Kind      { return KindColorPicker }
func (*Table) Kind() Kind            { return KindTable }
func (*Plot) Kind() Kind             { return KindPlot }

func (n *VerticalLayout) Children() []Node   { return n.Items }
func (n *HorizontalLayout) Children() []Node { return n.Items }
func (n *GridLayout) Children() []Node       { return n.Items }
func (n *FreeformLayout) Children() []Node   { return n.Items }
func (n *ScrollArea) Children() []Node       { return n.Items }
func (n *TabContainer) Children() []Node     { return n.Items }
func (n *Window) Children() []Node           { return n.Items }

func (n *VerticalLayout) SetChildren(c []Node)   { n.Items = c }
func (n *HorizontalLayout) SetChildren(c []Node) { n.Items = c }
func (n *GridLayout) SetChildren(c []Node)       { n.Items = c }
func (n *ScrollArea) SetChildren(c []Node)       { n.Items = c }
func (n *Window) SetChildren(c []Node)           { n.Items = c }

// SetChildren drops offsets of children that are no longer present.
func (n *FreeformLayout) SetChildren(c []Node) {
	n.Items = c
	if len(n.Offsets) == 0 {
		return
	}
	keep := make(map[ID]struct{}, len(c))
	for _, child := range c {
		keep[child.ID()] = struct{}{}
	}
	for id := range n.Offsets {
		if _, ok := keep[id]; !ok {
			delete(n.Offsets, id)
		}
	}
}

// SetChildren keeps each title attached to the child it was labelling.
// On an empty container the existing titles are taken positionally.
func (n *TabContainer) SetChildren(c []Node) {
	if len(n.Items) == 0 {
		n.Items = c
		return
	}
	byID := make(map[ID]string, len(n.Items))
	for i, child := range n.Items {
		byID[child.ID()] = n.TitleAt(i)
	}
	titles := make([]string, len(c))
	for i, child := range c {
		if t, ok := byID[child.ID()]; ok {
			titles[i] = t
		} else {
			titles[i] = defaultTabTitle(i)
		}
	}
	n.Items = c
	n.Titles = titles
}

// TitleAt returns the title of tab i, falling back to "Tab <i+1>".
func (n *TabContainer) TitleAt(i int) string {
	if i < len(n.Titles) && n.Titles[i] != "" {
		return n.Titles[i]
	}
	return defaultTabTitle(i)
}

// OffsetOf returns the position of a freeform child.
func (n *FreeformLayout) OffsetOf(id ID) Offset {
	return n.Offsets[id]
}

// AsContainer returns the node as a Container.
// The second return value is false for leaves.
func AsContainer(n Node) (Container, bool) {
	c, ok := n.(Container)
	return c, ok
}
