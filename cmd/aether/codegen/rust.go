package codegen

import (
	"fmt"
	"log/slog"
	"math"
	"path"
	"regexp"
	"strconv"
	"strings"

	"aether/cmd/aether/project"
	"aether/cmd/aether/widget"
)

// rustString renders s as a Rust string literal.
func rustString(s string) string {
	var b strings.Builder
	b.WriteByte('"')
	for _, r := range s {
		switch r {
		case '\\':
			b.WriteString(`\\`)
		case '"':
			b.WriteString(`\"`)
		case '\n':
			b.WriteString(`\n`)
		case '\r':
			b.WriteString(`\r`)
		case '\t':
			b.WriteString(`\t`)
		case 0:
			b.WriteString(`\0`)
		default:
			if r < 0x20 || r == 0x7f {
				fmt.Fprintf(&b, `\u{%x}`, r)
			} else {
				b.WriteRune(r)
			}
		}
	}
	b.WriteByte('"')
	return b.String()
}

// rustFloat renders f as a float literal; it always carries a decimal point.
func rustFloat(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0.0"
	}
	if f == 0 {
		f = 0 // no negative zero
	}
	s := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.Contains(s, ".") {
		s += ".0"
	}
	return s
}

// rustInt renders f rounded to the nearest integer.
func rustInt(f float64) string {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return "0"
	}
	return strconv.FormatInt(int64(math.Round(f)), 10)
}

// rustType maps a variable type to the field type of the generated struct.
func rustType(t widget.ValueType) string {
	switch t {
	case widget.TypeInteger:
		return "i32"
	case widget.TypeFloat:
		return "f64"
	case widget.TypeBoolean:
		return "bool"
	default:
		return "String"
	}
}

// literal renders value as an expression of type t. A value that does not
// parse becomes the zero value of t and is logged; an empty value is simply
// the zero value.
func literal(t widget.ValueType, value, variable string, log *slog.Logger) string {
	v := strings.TrimSpace(value)
	fallback := func(zero string) string {
		if v != "" {
			log.Warn("default value does not parse, using zero value",
				"variable", variable, "type", string(t), "value", value, "zero", zero)
		}
		return zero
	}
	switch t {
	case widget.TypeInteger:
		n, err := strconv.ParseInt(v, 10, 32)
		if err != nil {
			return fallback("0")
		}
		return strconv.FormatInt(n, 10)
	case widget.TypeFloat:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
			return fallback("0.0")
		}
		return rustFloat(f)
	case widget.TypeBoolean:
		b, err := strconv.ParseBool(v)
		if err != nil {
			return fallback("false")
		}
		return strconv.FormatBool(b)
	default:
		return rustString(value) + ".to_string()"
	}
}

var crateRunRe = regexp.MustCompile(`[^a-z0-9]+`)

// CrateName derives a cargo package name from a project name: lower case,
// every run of other characters folded to one underscore.
func CrateName(project string) string {
	name := crateRunRe.ReplaceAllString(strings.ToLower(project), "_")
	name = strings.Trim(name, "_")
	if name == "" {
		return DefaultCrateName
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "app_" + name
	}
	return name
}

// AssetTarget is where an asset is staged inside the generated crate, e.g.
// "assets/logo.png" for an asset named "Logo" at "img/brand.PNG".
func AssetTarget(a project.Asset) string {
	ext := ""
	if i := strings.LastIndexByte(a.Path, '.'); i >= 0 && !strings.ContainsAny(a.Path[i:], `/\`) {
		ext = strings.ToLower(a.Path[i:])
	}
	stem := strings.Trim(crateRunRe.ReplaceAllString(strings.ToLower(a.Name), "_"), "_")
	if stem == "" {
		stem = "asset"
	}
	return "assets/" + stem + ext
}

// AssetTargets maps every Image asset of s to a distinct staging path.
// Names that fold to the same AssetTarget get a numeric suffix in name
// order, so "Logo" keeps assets/logo.png and "logo" gets assets/logo_2.png.
func AssetTargets(s *project.State) map[string]string {
	out := make(map[string]string)
	taken := make(map[string]bool)
	for _, a := range s.ImageAssets() {
		target := AssetTarget(a)
		if taken[target] {
			ext := path.Ext(target)
			base := strings.TrimSuffix(target, ext)
			for i := 2; ; i++ {
				target = fmt.Sprintf("%s_%d%s", base, i, ext)
				if !taken[target] {
					break
				}
			}
		}
		taken[target] = true
		out[a.Name] = target
	}
	return out
}
