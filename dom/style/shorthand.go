package style

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotShorthand is returned by SplitCompoundProperty for keys which are
// not shorthand properties.
var ErrNotShorthand = errors.New("not recognized as compound property")

// IsShorthand checks if key denotes a shorthand property.
func IsShorthand(key string) bool {
	_, ok := shorthands[key]
	return ok
}

// Longhands returns the longhand properties a shorthand property expands to,
// or nil if key is not a shorthand.
func Longhands(key string) []string {
	if sh, ok := shorthands[key]; ok {
		return sh.longhands
	}
	return nil
}

// ExpandShorthand distributes the value of a shorthand property onto its
// longhand properties. For keys which are not shorthands, ExpandShorthand
// returns the key-value pair unchanged.
//
// A CSS-wide keyword (inherit, initial, unset, revert) given for a shorthand
// is set for every longhand. Longhands not mentioned in the shorthand's
// value are reset to their initial value, as CSS demands.
func ExpandShorthand(key string, value Property) ([]KeyValue, error) {
	sh, ok := shorthands[key]
	if !ok {
		return []KeyValue{{key, value}}, nil
	}
	if value.IsCSSWide() {
		r := make([]KeyValue, len(sh.longhands))
		for i, l := range sh.longhands {
			r[i] = KeyValue{l, value}
		}
		return r, nil
	}
	fields := SplitValue(value)
	if len(fields) == 0 {
		return nil, fmt.Errorf("empty value for shorthand %s", key)
	}
	return sh.expand(sh, fields)
}

// SplitCompoundProperty splits up a 4-way shorthand property into its
// individual (fine grained) style properties.
// Example:
//    SplitCompountProperty("padding", "3px")
// will return
//    "padding-top"    => "3px"
//    "padding-right"  => "3px"
//    "padding-bottom" => "3px"
//    "padding-left  " => "3px"
// For the logic behind this, refer to e.g.
// https://www.w3schools.com/css/css_padding.asp .
func SplitCompoundProperty(key string, value Property) ([]KeyValue, error) {
	fields := SplitValue(value)
	switch key {
	case "margin":
		return feazeCompound4("margin", "", fourDirs, fields)
	case "padding":
		return feazeCompound4("padding", "", fourDirs, fields)
	case "border-color":
		return feazeCompound4("border", "color", fourDirs, fields)
	case "border-width":
		return feazeCompound4("border", "width", fourDirs, fields)
	case "border-style":
		return feazeCompound4("border", "style", fourDirs, fields)
	case "border-radius":
		return feazeCompound4("border", "radius", fourCorners, fields)
	}
	return nil, fmt.Errorf("%w: %s", ErrNotShorthand, key)
}

// CSS logic to distribute individual values from compound shortcuts is as
// follows: https://www.w3schools.com/css/css_border.asp
func feazeCompound4(pre string, suf string, dirs [4]string, fields []string) ([]KeyValue, error) {
	l := len(fields)
	if l == 0 || l > 4 {
		return nil, fmt.Errorf("expecting 1-4 values for %s", p(pre, suf, "*"))
	}
	r := make([]KeyValue, 4)
	r[0] = KeyValue{p(pre, suf, dirs[0]), Property(fields[0])}
	if l >= 2 {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[1])}
		if l >= 3 {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[2])}
			if l == 4 {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[3])}
			} else {
				r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
			}
		} else {
			r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
			r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[1])}
		}
	} else {
		r[1] = KeyValue{p(pre, suf, dirs[1]), Property(fields[0])}
		r[2] = KeyValue{p(pre, suf, dirs[2]), Property(fields[0])}
		r[3] = KeyValue{p(pre, suf, dirs[3]), Property(fields[0])}
	}
	return r, nil
}

var fourDirs = [4]string{"top", "right", "bottom", "left"}
var fourCorners = [4]string{"top-left", "top-right", "bottom-right", "bottom-left"}

func p(prefix string, suffix string, tag string) string {
	if suffix == "" {
		return prefix + "-" + tag
	}
	if prefix == "" {
		return tag + "-" + suffix
	}
	return prefix + "-" + tag + "-" + suffix
}

// SplitValue splits a property value into its space separated components.
// Function arguments, e.g. in "rgb(0, 0, 0)", are kept together.
func SplitValue(value Property) []string {
	var fields []string
	var b strings.Builder
	depth := 0
	for _, r := range value.String() {
		switch {
		case r == '(':
			depth++
		case r == ')' && depth > 0:
			depth--
		case depth == 0 && (r == ' ' || r == '\t' || r == '\n' || r == '\r' || r == '\f'):
			if b.Len() > 0 {
				fields = append(fields, b.String())
				b.Reset()
			}
			continue
		}
		b.WriteRune(r)
	}
	if b.Len() > 0 {
		fields = append(fields, b.String())
	}
	return fields
}

// --- Shorthand table -------------------------------------------------------

type shorthand struct {
	longhands []string
	expand    func(sh shorthand, fields []string) ([]KeyValue, error)
}

func fourWay(pre, suf string, dirs [4]string) shorthand {
	l := make([]string, 4)
	for i, d := range dirs {
		l[i] = p(pre, suf, d)
	}
	return shorthand{
		longhands: l,
		expand: func(_ shorthand, fields []string) ([]KeyValue, error) {
			return feazeCompound4(pre, suf, dirs, fields)
		},
	}
}

func borderSides(prefix string, sides []string) shorthand {
	var l []string
	for _, suf := range []string{"width", "style", "color"} {
		for _, side := range sides {
			l = append(l, p(prefix, suf, side))
		}
	}
	return shorthand{longhands: l, expand: func(_ shorthand, fields []string) ([]KeyValue, error) {
		w, s, c, err := widthStyleColor(fields)
		if err != nil {
			return nil, err
		}
		r := make([]KeyValue, 0, len(l))
		for _, side := range sides {
			r = append(r, KeyValue{p(prefix, "width", side), w})
			r = append(r, KeyValue{p(prefix, "style", side), s})
			r = append(r, KeyValue{p(prefix, "color", side), c})
		}
		return r, nil
	}}
}

var shorthands = map[string]shorthand{
	"margin":        fourWay("margin", "", fourDirs),
	"padding":       fourWay("padding", "", fourDirs),
	"border-width":  fourWay("border", "width", fourDirs),
	"border-style":  fourWay("border", "style", fourDirs),
	"border-color":  fourWay("border", "color", fourDirs),
	"border-radius": fourWay("border", "radius", fourCorners),
	"border":        borderSides("border", fourDirs[:]),
	"border-top":    borderSides("border", []string{"top"}),
	"border-right":  borderSides("border", []string{"right"}),
	"border-bottom": borderSides("border", []string{"bottom"}),
	"border-left":   borderSides("border", []string{"left"}),
	"outline": {
		longhands: []string{"outline-width", "outline-style", "outline-color"},
		expand: func(_ shorthand, fields []string) ([]KeyValue, error) {
			w, s, c, err := widthStyleColor(fields)
			if err != nil {
				return nil, err
			}
			return []KeyValue{{"outline-width", w}, {"outline-style", s}, {"outline-color", c}}, nil
		},
	},
	"overflow": {
		longhands: []string{"overflow-x", "overflow-y"},
		expand: func(_ shorthand, fields []string) ([]KeyValue, error) {
			return pair("overflow-x", "overflow-y", fields)
		},
	},
	"gap": {
		longhands: []string{"row-gap", "column-gap"},
		expand: func(_ shorthand, fields []string) ([]KeyValue, error) {
			return pair("row-gap", "column-gap", fields)
		},
	},
	"flex": {
		longhands: []string{"flex-grow", "flex-shrink", "flex-basis"},
		expand:    expandFlex,
	},
	"list-style": {
		longhands: []string{"list-style-type", "list-style-position", "list-style-image"},
		expand:    expandListStyle,
	},
	"background": {
		longhands: []string{"background-color", "background-image", "background-repeat",
			"background-position", "background-size", "background-attachment"},
		expand: expandBackground,
	},
	"text-decoration": {
		longhands: []string{"text-decoration-line", "text-decoration-style", "text-decoration-color"},
		expand:    expandTextDecoration,
	},
}

func pair(first, second string, fields []string) ([]KeyValue, error) {
	switch len(fields) {
	case 1:
		return []KeyValue{{first, Property(fields[0])}, {second, Property(fields[0])}}, nil
	case 2:
		return []KeyValue{{first, Property(fields[0])}, {second, Property(fields[1])}}, nil
	}
	return nil, fmt.Errorf("expecting 1-2 values for %s/%s", first, second)
}

var borderStyles = map[string]bool{
	"none": true, "hidden": true, "dotted": true, "dashed": true, "solid": true,
	"double": true, "groove": true, "ridge": true, "inset": true, "outset": true,
}

var borderWidthKeywords = map[string]bool{"thin": true, "medium": true, "thick": true}

// widthStyleColor classifies the components of a border-like shorthand.
// Missing components get their initial values.
func widthStyleColor(fields []string) (w, s, c Property, err error) {
	w, s, c = "medium", "none", "currentcolor"
	var hasW, hasS, hasC bool
	for _, f := range fields {
		lf := strings.ToLower(f)
		switch {
		case !hasS && borderStyles[lf]:
			s, hasS = Property(lf), true
		case !hasW && (borderWidthKeywords[lf] || looksNumeric(lf)):
			w, hasW = Property(lf), true
		case !hasC && IsColor(Property(lf)):
			c, hasC = Property(lf), true
		default:
			return w, s, c, fmt.Errorf("unrecognized border component %q", f)
		}
	}
	return w, s, c, nil
}

func expandFlex(_ shorthand, fields []string) ([]KeyValue, error) {
	kv := func(g, s, b string) []KeyValue {
		return []KeyValue{{"flex-grow", Property(g)}, {"flex-shrink", Property(s)}, {"flex-basis", Property(b)}}
	}
	if len(fields) == 1 {
		switch f := strings.ToLower(fields[0]); {
		case f == "none":
			return kv("0", "0", "auto"), nil
		case f == "auto":
			return kv("1", "1", "auto"), nil
		case isPlainNumber(f):
			return kv(f, "1", "0%"), nil
		default:
			return kv("1", "1", f), nil
		}
	}
	if !isPlainNumber(fields[0]) {
		return nil, fmt.Errorf("flex-grow must be a number, is %q", fields[0])
	}
	switch len(fields) {
	case 2:
		if isPlainNumber(fields[1]) {
			return kv(fields[0], fields[1], "0%"), nil
		}
		return kv(fields[0], "1", fields[1]), nil
	case 3:
		if !isPlainNumber(fields[1]) {
			return nil, fmt.Errorf("flex-shrink must be a number, is %q", fields[1])
		}
		return kv(fields[0], fields[1], fields[2]), nil
	}
	return nil, fmt.Errorf("expecting 1-3 values for flex")
}

func expandListStyle(_ shorthand, fields []string) ([]KeyValue, error) {
	typ, pos, img := Property("disc"), Property("outside"), Property("none")
	for _, f := range fields {
		lf := strings.ToLower(f)
		switch {
		case lf == "inside" || lf == "outside":
			pos = Property(lf)
		case strings.HasPrefix(lf, "url("):
			img = Property(f)
		default:
			typ = Property(lf)
		}
	}
	return []KeyValue{{"list-style-type", typ}, {"list-style-position", pos}, {"list-style-image", img}}, nil
}

var bgRepeat = map[string]bool{
	"repeat": true, "repeat-x": true, "repeat-y": true, "no-repeat": true,
	"space": true, "round": true,
}

var bgAttachment = map[string]bool{"scroll": true, "fixed": true, "local": true}

func expandBackground(sh shorthand, fields []string) ([]KeyValue, error) {
	vals := map[string]Property{}
	for _, l := range sh.longhands {
		vals[l] = InitialValue(l)
	}
	var pos []string
	for _, f := range fields {
		lf := strings.ToLower(f)
		switch {
		case strings.HasPrefix(lf, "url(") || strings.Contains(lf, "gradient("):
			vals["background-image"] = Property(f)
		case lf == "none":
			vals["background-image"] = "none"
		case bgRepeat[lf]:
			vals["background-repeat"] = Property(lf)
		case bgAttachment[lf]:
			vals["background-attachment"] = Property(lf)
		case IsColor(Property(lf)):
			vals["background-color"] = Property(lf)
		default:
			pos = append(pos, lf)
		}
	}
	if len(pos) > 0 {
		vals["background-position"] = Property(strings.Join(pos, " "))
	}
	r := make([]KeyValue, len(sh.longhands))
	for i, l := range sh.longhands {
		r[i] = KeyValue{l, vals[l]}
	}
	return r, nil
}

var decorationLines = map[string]bool{
	"none": true, "underline": true, "overline": true, "line-through": true, "blink": true,
}

var decorationStyles = map[string]bool{
	"solid": true, "double": true, "dotted": true, "dashed": true, "wavy": true,
}

func expandTextDecoration(_ shorthand, fields []string) ([]KeyValue, error) {
	var lines []string
	style, color := Property("solid"), Property("currentcolor")
	for _, f := range fields {
		lf := strings.ToLower(f)
		switch {
		case decorationLines[lf]:
			lines = append(lines, lf)
		case decorationStyles[lf]:
			style = Property(lf)
		case IsColor(Property(lf)):
			color = Property(lf)
		default:
			return nil, fmt.Errorf("unrecognized text-decoration component %q", f)
		}
	}
	line := Property("none")
	if len(lines) > 0 {
		line = Property(strings.Join(lines, " "))
	}
	return []KeyValue{{"text-decoration-line", line}, {"text-decoration-style", style},
		{"text-decoration-color", color}}, nil
}

// looksNumeric is true for tokens starting like a CSS number, e.g. "2px",
// "-1.5em" or ".5".
func looksNumeric(s string) bool {
	if s == "" {
		return false
	}
	c := s[0]
	if c == '+' || c == '-' {
		if len(s) == 1 {
			return false
		}
		c = s[1]
	}
	return (c >= '0' && c <= '9') || c == '.'
}

func isPlainNumber(s string) bool {
	if !looksNumeric(s) {
		return false
	}
	dot := false
	for i, c := range s {
		switch {
		case c >= '0' && c <= '9':
		case c == '.' && !dot:
			dot = true
		case (c == '+' || c == '-') && i == 0:
		default:
			return false
		}
	}
	return true
}
