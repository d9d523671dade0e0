package codegen

import (
	"fmt"
	"math"
	"strings"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// eventPredicates maps each event to the egui Response method that reports it.
var eventPredicates = map[widget.Event]string{
	widget.EventClicked:       "clicked",
	widget.EventChanged:       "changed",
	widget.EventHovered:       "hovered",
	widget.EventDoubleClicked: "double_clicked",
	widget.EventFocused:       "gained_focus",
	widget.EventLostFocus:     "lost_focus",
}

var seriesColors = [][3]uint8{
	{31, 119, 180},
	{255, 127, 14},
	{44, 160, 44},
	{214, 39, 40},
	{148, 103, 189},
}

type lowerer struct {
	st      *project.State
	opts    Options
	w       *writer
	targets map[string]string
}

// varType returns the declared type of a bound variable. Dangling names are
// treated as String; validation reports them.
func (l *lowerer) varType(name string) widget.ValueType {
	if v, ok := l.st.Variables[name]; ok {
		return v.Type
	}
	return widget.TypeString
}

// text renders a text-like property: a field reference when bound, a string
// literal otherwise.
func (l *lowerer) text(n widget.Node, prop, lit string) string {
	v := widget.Binding(n, prop)
	switch {
	case v == "":
		return rustString(lit)
	case l.varType(v) == widget.TypeString:
		return "self." + v + ".as_str()"
	default:
		return "self." + v + ".to_string()"
	}
}

// place renders a mutable place for an editable property: the bound field,
// or a temporary holding the literal.
func (l *lowerer) place(n widget.Node, prop, lit string) string {
	if v := widget.Binding(n, prop); v != "" {
		return "&mut self." + v
	}
	return "&mut " + lit
}

// node lowers n and its subtree at the writer's current depth.
func (l *lowerer) node(n widget.Node) {
	switch x := n.(type) {
	case *widget.VerticalLayout:
		l.w.open("ui.vertical(|ui| {")
		l.w.line("ui.spacing_mut().item_spacing.y = %s;", rustFloat(x.Spacing))
		l.children(x.Items)
		l.w.close("});")

	case *widget.HorizontalLayout:
		l.w.open("ui.horizontal(|ui| {")
		l.w.line("ui.spacing_mut().item_spacing.x = %s;", rustFloat(x.Spacing))
		l.children(x.Items)
		l.w.close("});")

	case *widget.GridLayout:
		l.grid(x)

	case *widget.FreeformLayout:
		l.freeform(x)

	case *widget.ScrollArea:
		ctor := "vertical"
		if x.Horizontal {
			ctor = "both"
		}
		l.w.open("egui::ScrollArea::%s()", ctor)
		l.w.line(".id_salt(%s)", rustString("scroll_"+widget.Ident(x.NodeID)))
		l.w.line(".max_height(%s)", rustFloat(x.MaxHeight))
		l.w.open(".show(ui, |ui| {")
		l.children(x.Items)
		l.w.close("});")
		l.w.depth--

	case *widget.TabContainer:
		l.tabs(x)

	case *widget.Window:
		field := "self." + windowField(x)
		l.w.open("{")
		l.w.line("let mut open = %s;", field)
		l.w.open("egui::Window::new(%s)", rustString(x.Title))
		l.w.line(".id(egui::Id::new(%s))", rustString("window_"+widget.Ident(x.NodeID)))
		l.w.line(".open(&mut open)")
		l.w.open(".show(ui.ctx(), |ui| {")
		l.children(x.Items)
		l.w.close("});")
		l.w.depth--
		l.w.line("%s = open;", field)
		l.w.close("}")

	default:
		l.leaf(n)
	}
}

func (l *lowerer) children(items []widget.Node) {
	for _, c := range items {
		l.node(c)
	}
}

// grid groups children into rows of Columns cells, each row laid out
// horizontally. A row ends after index i when (i+1)%columns == 0 or i is
// the last index.
func (l *lowerer) grid(g *widget.GridLayout) {
	cols := g.Columns
	if cols < 1 {
		cols = 1
	}
	l.w.open("ui.vertical(|ui| {")
	l.w.line("ui.spacing_mut().item_spacing = egui::vec2(%s, %s);", rustFloat(g.Spacing), rustFloat(g.Spacing))
	last := len(g.Items) - 1
	for i, c := range g.Items {
		if i%cols == 0 {
			l.w.open("ui.horizontal(|ui| {")
		}
		l.node(c)
		if (i+1)%cols == 0 || i == last {
			l.w.close("});")
		}
	}
	l.w.close("});")
}

func (l *lowerer) freeform(f *widget.FreeformLayout) {
	l.w.open("{")
	l.w.line("let (canvas, _) = ui.allocate_exact_size(egui::vec2(%s, %s), egui::Sense::hover());",
		rustFloat(f.Width), rustFloat(f.Height))
	for _, c := range f.Items {
		off := f.OffsetOf(c.ID())
		l.w.open("ui.scope_builder(")
		l.w.line("egui::UiBuilder::new().max_rect(egui::Rect::from_min_max(canvas.min + egui::vec2(%s, %s), canvas.max)),",
			rustFloat(off.X), rustFloat(off.Y))
		l.w.open("|ui| {")
		l.node(c)
		l.w.close("},")
		l.w.close(");")
	}
	l.w.close("}")
}

func (l *lowerer) tabs(t *widget.TabContainer) {
	field := "self." + tabField(t)
	l.w.open("ui.horizontal(|ui| {")
	for i := range t.Items {
		l.w.line("ui.selectable_value(&mut %s, %d, %s);", field, i, rustString(t.TitleAt(i)))
	}
	l.w.close("});")
	l.w.line("ui.separator();")
	l.w.open("match %s {", field)
	for i, c := range t.Items {
		l.w.open("%d => {", i)
		l.node(c)
		l.w.close("}")
	}
	l.w.line("_ => {}")
	l.w.close("}")
}

// leaf lowers a widget without children. Interactive widgets with actions
// keep the response and test one predicate per declared event.
func (l *lowerer) leaf(n widget.Node) {
	expr := l.leafExpr(n)
	if len(expr) == 0 {
		return
	}
	events := widget.EventsOf(n)
	if len(events) == 0 {
		if expr[len(expr)-1] != "}" {
			expr[len(expr)-1] += ";"
		}
		l.w.lines(expr)
		return
	}

	if _, ok := n.(*widget.ComboBox); ok {
		expr = append(expr, indentUnit+".response")
	}
	expr[0] = "let resp = " + expr[0]
	expr[len(expr)-1] += ";"

	l.w.open("{")
	l.w.lines(expr)
	for _, e := range events.Sorted() {
		l.w.open("if resp.%s() {", eventPredicates[e])
		l.action(events[e])
		l.w.close("}")
	}
	l.w.close("}")
}

func (l *lowerer) action(a widget.Action) {
	switch x := a.(type) {
	case widget.IncrementAction:
		one := "1"
		if l.varType(x.Var) == widget.TypeFloat {
			one = "1.0"
		}
		l.w.line("self.%s += %s;", x.Var, one)
	case widget.SetAction:
		l.w.line("self.%s = %s;", x.Var, literal(l.varType(x.Var), x.Value, x.Var, l.opts.Logger))
	case widget.CustomAction:
		l.w.verbatim(x.Code)
	}
}

// leafExpr returns the widget call of a leaf as lines relative to the
// current depth, without the trailing semicolon.
func (l *lowerer) leafExpr(n widget.Node) []string {
	one := func(format string, args ...any) []string {
		return []string{fmt.Sprintf(format, args...)}
	}
	switch x := n.(type) {
	case *widget.Button:
		return one("ui.button(%s)", l.text(x, "text", x.Text))

	case *widget.Label:
		return one("ui.label(%s)", l.text(x, "text", x.Text))

	case *widget.TextEdit:
		place := l.place(x, "value", "String::from("+rustString(x.Text)+")")
		ctor := "singleline"
		if x.Multiline {
			ctor = "multiline"
		}
		if x.Hint == "" {
			return one("ui.text_edit_%s(%s)", ctor, place)
		}
		return one("ui.add(egui::TextEdit::%s(%s).hint_text(%s))", ctor, place, rustString(x.Hint))

	case *widget.Checkbox:
		return one("ui.checkbox(%s, %s)",
			l.place(x, "checked", fmt.Sprint(x.Checked)),
			l.text(x, "label", x.Label))

	case *widget.Slider:
		lo, hi, lit := rustFloat(x.Min), rustFloat(x.Max), rustFloat(x.Value)
		if v := widget.Binding(x, "value"); v != "" && l.varType(v) == widget.TypeInteger {
			lo, hi = rustInt(x.Min), rustInt(x.Max)
		}
		return one("ui.add(egui::Slider::new(%s, %s..=%s))", l.place(x, "value", lit), lo, hi)

	case *widget.ProgressBar:
		value := rustFloat(x.Value)
		if v := widget.Binding(x, "value"); v != "" {
			value = "self." + v + " as f32"
		}
		bar := "egui::ProgressBar::new(" + value + ")"
		if x.ShowPercentage {
			bar += ".show_percentage()"
		}
		return one("ui.add(%s)", bar)

	case *widget.ComboBox:
		return l.combo(x)

	case *widget.Image:
		a, ok := l.st.Assets[x.Asset]
		if !ok || a.Kind != project.AssetImage {
			return one("ui.label(%s)", rustString("[image: "+x.Asset+"]"))
		}
		img := fmt.Sprintf("egui::Image::new(egui::include_image!(%s))", rustString("../"+l.targets[a.Name]))
		if x.MaxWidth > 0 {
			img += ".max_width(" + rustFloat(x.MaxWidth) + ")"
		}
		return one("ui.add(%s)", img)

	case *widget.Separator:
		return one("ui.separator()")

	case *widget.Spinner:
		if x.Size > 0 {
			return one("ui.add(egui::Spinner::new().size(%s))", rustFloat(x.Size))
		}
		return one("ui.spinner()")

	case *widget.Hyperlink:
		url := rustString(x.URL)
		if v := widget.Binding(x, "url"); v != "" {
			url = "&self." + v
		}
		return one("ui.hyperlink_to(%s, %s)", l.text(x, "text", x.Text), url)

	case *widget.ColorPicker:
		c := x.Color
		return one("ui.color_edit_button_srgba(&mut egui::Color32::from_rgba_unmultiplied(%d, %d, %d, %d))",
			c[0], c[1], c[2], c[3])

	case *widget.Table:
		return l.table(x)

	case *widget.Plot:
		return l.plot(x)
	}
	return nil
}

func (l *lowerer) combo(c *widget.ComboBox) []string {
	in := indentUnit
	out := []string{fmt.Sprintf("egui::ComboBox::new(%s, %s)",
		rustString("combo_"+widget.Ident(c.NodeID)), rustString(c.Label))}

	if v := widget.Binding(c, "selected"); v != "" {
		out = append(out,
			in+fmt.Sprintf(".selected_text(self.%s.clone())", v),
			in+".show_ui(ui, |ui| {")
		for _, opt := range c.Options {
			out = append(out, in+in+fmt.Sprintf("ui.selectable_value(&mut self.%s, %s.to_string(), %s);",
				v, rustString(opt), rustString(opt)))
		}
		return append(out, in+"})")
	}

	selected := ""
	if c.Selected >= 0 && c.Selected < len(c.Options) {
		selected = c.Options[c.Selected]
	}
	out = append(out,
		in+fmt.Sprintf(".selected_text(%s)", rustString(selected)),
		in+".show_ui(ui, |ui| {")
	for i, opt := range c.Options {
		out = append(out, in+in+fmt.Sprintf("let _ = ui.selectable_label(%t, %s);", i == c.Selected, rustString(opt)))
	}
	return append(out, in+"})")
}

func (l *lowerer) table(t *widget.Table) []string {
	in := indentUnit
	out := []string{fmt.Sprintf("egui::Grid::new(%s)", rustString("table_"+widget.Ident(t.NodeID)))}
	if t.Striped {
		out = append(out, in+".striped(true)")
	}
	out = append(out, in+".show(ui, |ui| {")
	if len(t.Columns) > 0 {
		for _, c := range t.Columns {
			out = append(out, in+in+fmt.Sprintf("ui.strong(%s);", rustString(c)))
		}
		out = append(out, in+in+"ui.end_row();")
	}
	for _, row := range t.Rows {
		for _, cell := range row {
			out = append(out, in+in+fmt.Sprintf("ui.label(%s);", rustString(cell)))
		}
		out = append(out, in+in+"ui.end_row();")
	}
	return append(out, in+"})")
}

// plot draws each series as a polyline scaled into an allocated rectangle.
// Points are normalized here so the generated code carries no math.
func (l *lowerer) plot(p *widget.Plot) []string {
	in := indentUnit
	out := []string{"{"}
	if p.Title != "" {
		out = append(out, in+fmt.Sprintf("ui.label(%s);", rustString(p.Title)))
	}
	size := fmt.Sprintf("egui::vec2(%s, %s)", rustFloat(p.Width), rustFloat(p.Height))

	minX, maxX, minY, maxY := math.Inf(1), math.Inf(-1), math.Inf(1), math.Inf(-1)
	for _, s := range p.Series {
		for _, pt := range s.Points {
			minX, maxX = math.Min(minX, pt[0]), math.Max(maxX, pt[0])
			minY, maxY = math.Min(minY, pt[1]), math.Max(maxY, pt[1])
		}
	}
	if math.IsInf(minX, 1) {
		out = append(out, in+fmt.Sprintf("ui.allocate_exact_size(%s, egui::Sense::hover());", size))
		return append(out, "}")
	}

	out = append(out,
		in+fmt.Sprintf("let (rect, _) = ui.allocate_exact_size(%s, egui::Sense::hover());", size),
		in+"let painter = ui.painter_at(rect);")
	for i, s := range p.Series {
		if len(s.Points) == 0 {
			continue
		}
		col := seriesColors[i%len(seriesColors)]
		pts := make([]string, len(s.Points))
		for j, pt := range s.Points {
			nx, ny := normalize(pt[0], minX, maxX), normalize(pt[1], minY, maxY)
			pts[j] = fmt.Sprintf("rect.lerp_inside(egui::vec2(%s, %s))", rustFloat(round4(nx)), rustFloat(round4(1-ny)))
		}
		out = append(out,
			in+"painter.add(egui::Shape::line(",
			in+in+"vec!["+strings.Join(pts, ", ")+"],",
			in+in+fmt.Sprintf("egui::Stroke::new(1.5, egui::Color32::from_rgb(%d, %d, %d)),", col[0], col[1], col[2]),
			in+"));")
	}
	return append(out, "}")
}

func normalize(v, lo, hi float64) float64 {
	if hi == lo {
		return 0.5
	}
	return (v - lo) / (hi - lo)
}

func round4(f float64) float64 {
	return math.Round(f*1e4) / 1e4
}
