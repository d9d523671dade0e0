package widget

import (
	"encoding/hex"
	"fmt"
	"strconv"
	"strings"
)

// Property is the textual view of one editable property of a node.
// Bound holds the variable name when the property is bound.
type Property struct {
	Name  string
	Value string
	Bound string
}

// Properties lists the editable properties of n in inspector order.
func Properties(n Node) []Property {
	var props []Property
	add := func(name, value string) {
		props = append(props, Property{Name: name, Value: value, Bound: Binding(n, name)})
	}
	switch x := n.(type) {
	case *VerticalLayout:
		add("spacing", formatFloat(x.Spacing))
	case *HorizontalLayout:
		add("spacing", formatFloat(x.Spacing))
	case *GridLayout:
		add("columns", strconv.Itoa(x.Columns))
		add("spacing", formatFloat(x.Spacing))
	case *FreeformLayout:
		add("width", formatFloat(x.Width))
		add("height", formatFloat(x.Height))
	case *ScrollArea:
		add("max_height", formatFloat(x.MaxHeight))
		add("horizontal", strconv.FormatBool(x.Horizontal))
	case *TabContainer:
		titles := make([]string, len(x.Items))
		for i := range x.Items {
			titles[i] = x.TitleAt(i)
		}
		add("titles", strings.Join(titles, ","))
	case *Window:
		add("title", x.Title)
		add("open", strconv.FormatBool(x.Open))
	case *Button:
		add("text", x.Text)
	case *Label:
		add("text", x.Text)
	case *TextEdit:
		add("value", x.Text)
		add("hint", x.Hint)
		add("multiline", strconv.FormatBool(x.Multiline))
	case *Checkbox:
		add("label", x.Label)
		add("checked", strconv.FormatBool(x.Checked))
	case *Slider:
		add("min", formatFloat(x.Min))
		add("max", formatFloat(x.Max))
		add("value", formatFloat(x.Value))
	case *ProgressBar:
		add("value", formatFloat(x.Value))
		add("show_percentage", strconv.FormatBool(x.ShowPercentage))
	case *ComboBox:
		add("label", x.Label)
		add("options", strings.Join(x.Options, ","))
		add("selected", strconv.Itoa(x.Selected))
	case *Image:
		add("asset", x.Asset)
		add("max_width", formatFloat(x.MaxWidth))
	case *Spinner:
		add("size", formatFloat(x.Size))
	case *Hyperlink:
		add("text", x.Text)
		add("url", x.URL)
	case *ColorPicker:
		add("color", "#"+hex.EncodeToString(x.Color[:]))
	case *Table:
		add("columns", strings.Join(x.Columns, ","))
		add("rows", formatRows(x.Rows))
		add("striped", strconv.FormatBool(x.Striped))
	case *Plot:
		add("title", x.Title)
		add("width", formatFloat(x.Width))
		add("height", formatFloat(x.Height))
		add("series", formatSeries(x.Series))
	}
	return props
}

// SetProperty parses value and assigns it to the named property of n.
func SetProperty(n Node, name, value string) error {
	var err error
	switch x := n.(type) {
	case *VerticalLayout:
		err = setOne(name, "spacing", func() error { return parseFloatInto(&x.Spacing, value) })
	case *HorizontalLayout:
		err = setOne(name, "spacing", func() error { return parseFloatInto(&x.Spacing, value) })
	case *GridLayout:
		switch name {
		case "columns":
			err = parseIntInto(&x.Columns, value)
			if err == nil && x.Columns < 1 {
				err = fmt.Errorf("%w: columns must be at least 1", ErrInvalidValue)
			}
		case "spacing":
			err = parseFloatInto(&x.Spacing, value)
		default:
			err = unknownProperty(n, name)
		}
	case *FreeformLayout:
		switch name {
		case "width":
			err = parseFloatInto(&x.Width, value)
		case "height":
			err = parseFloatInto(&x.Height, value)
		default:
			err = unknownProperty(n, name)
		}
	case *ScrollArea:
		switch name {
		case "max_height":
			err = parseFloatInto(&x.MaxHeight, value)
		case "horizontal":
			err = parseBoolInto(&x.Horizontal, value)
		default:
			err = unknownProperty(n, name)
		}
	case *TabContainer:
		err = setOne(name, "titles", func() error {
			x.Titles = splitList(value)
			return nil
		})
	case *Window:
		switch name {
		case "title":
			x.Title = value
		case "open":
			err = parseBoolInto(&x.Open, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Button:
		err = setOne(name, "text", func() error { x.Text = value; return nil })
	case *Label:
		err = setOne(name, "text", func() error { x.Text = value; return nil })
	case *TextEdit:
		switch name {
		case "value", "text":
			x.Text = value
		case "hint":
			x.Hint = value
		case "multiline":
			err = parseBoolInto(&x.Multiline, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Checkbox:
		switch name {
		case "label":
			x.Label = value
		case "checked":
			err = parseBoolInto(&x.Checked, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Slider:
		switch name {
		case "min":
			err = parseFloatInto(&x.Min, value)
		case "max":
			err = parseFloatInto(&x.Max, value)
		case "value":
			err = parseFloatInto(&x.Value, value)
		default:
			err = unknownProperty(n, name)
		}
	case *ProgressBar:
		switch name {
		case "value":
			err = parseFloatInto(&x.Value, value)
			if err == nil && (x.Value < 0 || x.Value > 1) {
				err = fmt.Errorf("%w: progress must be between 0 and 1", ErrInvalidValue)
			}
		case "show_percentage":
			err = parseBoolInto(&x.ShowPercentage, value)
		default:
			err = unknownProperty(n, name)
		}
	case *ComboBox:
		switch name {
		case "label":
			x.Label = value
		case "options":
			x.Options = splitList(value)
		case "selected":
			err = parseIntInto(&x.Selected, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Image:
		switch name {
		case "asset":
			x.Asset = value
		case "max_width":
			err = parseFloatInto(&x.MaxWidth, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Spinner:
		err = setOne(name, "size", func() error { return parseFloatInto(&x.Size, value) })
	case *Hyperlink:
		switch name {
		case "text":
			x.Text = value
		case "url":
			x.URL = value
		default:
			err = unknownProperty(n, name)
		}
	case *ColorPicker:
		err = setOne(name, "color", func() error { return parseColorInto(&x.Color, value) })
	case *Table:
		switch name {
		case "columns":
			x.Columns = splitList(value)
		case "rows":
			x.Rows = parseRows(value)
		case "striped":
			err = parseBoolInto(&x.Striped, value)
		default:
			err = unknownProperty(n, name)
		}
	case *Plot:
		switch name {
		case "title":
			x.Title = value
		case "width":
			err = parseFloatInto(&x.Width, value)
		case "height":
			err = parseFloatInto(&x.Height, value)
		case "series":
			var s []Series
			s, err = parseSeries(value)
			if err == nil {
				x.Series = s
			}
		default:
			err = unknownProperty(n, name)
		}
	default:
		err = unknownProperty(n, name)
	}
	if err != nil {
		return fmt.Errorf("%s.%s: %w", n.Kind(), name, err)
	}
	return nil
}

func setOne(name, want string, set func() error) error {
	if name != want {
		return fmt.Errorf("%w %q", ErrUnknownProperty, name)
	}
	return set()
}

func unknownProperty(n Node, name string) error {
	return fmt.Errorf("%w %q for %s", ErrUnknownProperty, name, n.Kind())
}

func parseFloatInto(dst *float64, s string) error {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil {
		return fmt.Errorf("%w: %q is not a number", ErrInvalidValue, s)
	}
	*dst = v
	return nil
}

func parseIntInto(dst *int, s string) error {
	v, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q is not an integer", ErrInvalidValue, s)
	}
	*dst = v
	return nil
}

func parseBoolInto(dst *bool, s string) error {
	v, err := strconv.ParseBool(strings.TrimSpace(s))
	if err != nil {
		return fmt.Errorf("%w: %q is not a boolean", ErrInvalidValue, s)
	}
	*dst = v
	return nil
}

// parseColorInto accepts #rrggbb or #rrggbbaa.
func parseColorInto(dst *[4]uint8, s string) error {
	raw, err := hex.DecodeString(strings.TrimPrefix(strings.TrimSpace(s), "#"))
	if err != nil || (len(raw) != 3 && len(raw) != 4) {
		return fmt.Errorf("%w: %q is not a #rrggbb[aa] color", ErrInvalidValue, s)
	}
	if len(raw) == 3 {
		raw = append(raw, 255)
	}
	copy(dst[:], raw)
	return nil
}

func splitList(s string) []string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	for i, p := range parts {
		parts[i] = strings.TrimSpace(p)
	}
	return parts
}

// Rows are written "a,1;b,2".
func parseRows(s string) [][]string {
	if strings.TrimSpace(s) == "" {
		return nil
	}
	var rows [][]string
	for _, r := range strings.Split(s, ";") {
		rows = append(rows, splitList(r))
	}
	return rows
}

func formatRows(rows [][]string) string {
	parts := make([]string, len(rows))
	for i, r := range rows {
		parts[i] = strings.Join(r, ",")
	}
	return strings.Join(parts, ";")
}

// Series are written "name=x:y,x:y;other=x:y".
func parseSeries(s string) ([]Series, error) {
	if strings.TrimSpace(s) == "" {
		return nil, nil
	}
	var out []Series
	for _, chunk := range strings.Split(s, ";") {
		name, pts, ok := strings.Cut(chunk, "=")
		if !ok {
			return nil, fmt.Errorf("%w: series %q has no '='", ErrInvalidValue, chunk)
		}
		ser := Series{Name: strings.TrimSpace(name)}
		for _, p := range splitList(pts) {
			xs, ys, ok := strings.Cut(p, ":")
			if !ok {
				return nil, fmt.Errorf("%w: point %q is not x:y", ErrInvalidValue, p)
			}
			var pt [2]float64
			if err := parseFloatInto(&pt[0], xs); err != nil {
				return nil, err
			}
			if err := parseFloatInto(&pt[1], ys); err != nil {
				return nil, err
			}
			ser.Points = append(ser.Points, pt)
		}
		out = append(out, ser)
	}
	return out, nil
}

func formatSeries(series []Series) string {
	parts := make([]string, len(series))
	for i, s := range series {
		pts := make([]string, len(s.Points))
		for j, p := range s.Points {
			pts[j] = formatFloat(p[0]) + ":" + formatFloat(p[1])
		}
		parts[i] = s.Name + "=" + strings.Join(pts, ",")
	}
	return strings.Join(parts, ";")
}

func formatFloat(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
