package inherit

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/computed"
	"github.com/kvcpers/apollo/dom/style/css"
)

// Propagator computes element styles. ViewportWidth and ViewportHeight are
// the viewport dimensions in CSS pixels; viewport-relative lengths are left
// unresolved if they are zero.
type Propagator struct {
	ViewportWidth  float64
	ViewportHeight float64
}

// Propagate computes a style with a zero viewport. See Propagator.Propagate.
func Propagate(parent, root *computed.Style, cascaded map[string]style.Property) *computed.Style {
	return Propagator{}.Propagate(parent, root, cascaded)
}

// Propagate computes the style of an element. parent is the computed style
// of the parent element and root the one of the document root; both are nil
// for the root element itself. cascaded holds the winning declarations of
// the cascade for the element and may be nil.
//
// The result has a value for every known property.
func (p Propagator) Propagate(parent, root *computed.Style, cascaded map[string]style.Property) *computed.Style {
	f := &frame{
		Propagator: p,
		parent:     parent,
		cascaded:   cascaded,
		s:          computed.NewStyle(),
		parentFS:   computed.DefaultFontSize,
		rootFS:     computed.DefaultFontSize,
	}
	if parent != nil {
		f.parentFS = parent.FontSizePixels()
	}
	if root != nil {
		f.rootFS = root.FontSizePixels()
	}
	f.fontSize = f.computeFontSize()
	f.s.Set("font-size", css.FormatPixels(f.fontSize))
	if root == nil {
		f.rootFS = f.fontSize
	}
	f.s.Set("color", f.computeColor())
	for _, key := range style.Keys() {
		if key == "font-size" || key == "color" {
			continue
		}
		f.s.Set(key, f.compute(key))
	}
	f.zeroBorders()
	f.blockify(parent == nil)
	return f.s
}

// frame holds the state for computing a single element style.
type frame struct {
	Propagator
	parent   *computed.Style
	cascaded map[string]style.Property
	s        *computed.Style
	parentFS float64 // parent font size in px
	rootFS   float64 // root font size in px
	fontSize float64 // computed font size of the element in px
}

// specified returns the specified value of a property after applying the
// CSS-wide keywords. The flag is true if the value has been taken from the
// parent and therefore already is a computed value.
func (f *frame) specified(key string) (style.Property, bool) {
	v := f.cascaded[key].Normalize()
	switch {
	case v.IsEmpty() || v.IsUnset():
		if style.IsInherited(key) {
			return f.fromParent(key)
		}
		return style.InitialValue(key), false
	case v.IsInherit():
		return f.fromParent(key)
	case v.IsInitial():
		return style.InitialValue(key), false
	}
	return v, false
}

func (f *frame) fromParent(key string) (style.Property, bool) {
	if f.parent != nil {
		if v := f.parent.Get(key); !v.IsEmpty() {
			return v, true
		}
	}
	return style.InitialValue(key), false
}

func (f *frame) computeFontSize() float64 {
	v, inherited := f.specified("font-size")
	kw := strings.ToLower(string(v))
	if inherited {
		if px, ok := absolutePixels(kw); ok {
			return px
		}
		return f.parentFS
	}
	if px, ok := css.FontSizeKeyword(kw); ok {
		return px
	}
	switch kw {
	case "larger":
		return f.parentFS * css.FontScale
	case "smaller":
		return f.parentFS / css.FontScale
	}
	if l, ok := css.ParseLength(kw); ok {
		if l.IsNumber() {
			if l.Value == 0 {
				return 0
			}
			tracer().Debugf("font-size %q lacks a unit, inheriting", v)
			return f.parentFS
		}
		if px, ok := f.resolve(l, f.parentFS, f.parentFS); ok && px >= 0 {
			return px
		}
	}
	tracer().Debugf("cannot compute font-size %q, inheriting", v)
	return f.parentFS
}

func (f *frame) computeColor() style.Property {
	v, inherited := f.specified("color")
	if inherited {
		return v
	}
	if strings.EqualFold(string(v), "currentcolor") {
		v, _ = f.fromParent("color")
	}
	return v
}

func (f *frame) compute(key string) style.Property {
	v, inherited := f.specified(key)
	if inherited {
		return v
	}
	kw := strings.ToLower(string(v))
	def, _ := style.Lookup(key)
	switch {
	case key == "line-height":
		return f.lineHeight(v)
	case key == "font-weight":
		return f.fontWeight(kw)
	case def.Kind == style.KindColor && kw == "currentcolor":
		return f.s.Get("color")
	case isBorderWidth(key):
		if px, ok := css.BorderWidthKeyword(kw); ok {
			return css.FormatPixels(px)
		}
	}
	if def.Kind == style.KindLength {
		return f.lengths(v)
	}
	return v
}

// lengths computes every length component of a value, e.g. "1em 2em" for
// border-spacing. Percentages are kept, as they depend on layout.
func (f *frame) lengths(v style.Property) style.Property {
	fields := style.SplitValue(v)
	changed := false
	for i, field := range fields {
		l, ok := css.ParseLength(field)
		if !ok || l.IsPercent() {
			continue
		}
		if l.IsNumber() {
			if l.Value == 0 {
				fields[i], changed = "0px", true
			}
			continue
		}
		if px, ok := f.resolve(l, f.fontSize, -1); ok {
			fields[i], changed = css.FormatPixels(px).String(), true
		}
	}
	if !changed {
		return v
	}
	return style.Property(strings.Join(fields, " "))
}

// resolve converts a length to px. em is the font size 'em' refers to,
// pct the basis for percentages; percentages are not resolved if pct is
// negative.
func (f *frame) resolve(l css.Length, em, pct float64) (float64, bool) {
	if px, ok := l.Pixels(); ok {
		return px, true
	}
	switch l.Unit {
	case "em":
		return l.Value * em, true
	case "rem":
		return l.Value * f.rootFS, true
	case "ex", "ch":
		return l.Value * em * 0.5, true
	case "%":
		if pct >= 0 {
			return l.Value / 100 * pct, true
		}
		return 0, false
	}
	if f.ViewportWidth > 0 && f.ViewportHeight > 0 {
		w, h := f.ViewportWidth, f.ViewportHeight
		switch l.Unit {
		case "vw":
			return l.Value * w / 100, true
		case "vh":
			return l.Value * h / 100, true
		case "vmin":
			return l.Value * math.Min(w, h) / 100, true
		case "vmax":
			return l.Value * math.Max(w, h) / 100, true
		}
	}
	return 0, false
}

// lineHeight keeps 'normal' and plain numbers, which are inherited as
// factors. Lengths and percentages refer to the element's font size.
func (f *frame) lineHeight(v style.Property) style.Property {
	l, ok := css.ParseLength(string(v))
	if !ok || l.IsNumber() {
		return v
	}
	if px, ok := f.resolve(l, f.fontSize, f.fontSize); ok {
		return css.FormatPixels(px)
	}
	return v
}

func (f *frame) fontWeight(kw string) style.Property {
	parent := 400
	if pw, _ := f.fromParent("font-weight"); !pw.IsEmpty() {
		if w, err := strconv.Atoi(string(pw)); err == nil {
			parent = w
		}
	}
	switch kw {
	case "normal":
		return "400"
	case "bold":
		return "700"
	case "bolder":
		switch {
		case parent < 350:
			return "400"
		case parent < 550:
			return "700"
		}
		return "900"
	case "lighter":
		switch {
		case parent < 100:
			return style.Property(strconv.Itoa(parent))
		case parent < 550:
			return "100"
		case parent < 750:
			return "400"
		}
		return "700"
	}
	return style.Property(kw)
}

func isBorderWidth(key string) bool {
	return key == "outline-width" || key == "column-rule-width" ||
		strings.HasPrefix(key, "border-") && strings.HasSuffix(key, "-width")
}

// zeroBorders sets the width of borders and outlines without a visible
// style to 0.
func (f *frame) zeroBorders() {
	for _, side := range []string{"top", "right", "bottom", "left"} {
		st := f.s.Get("border-" + side + "-style")
		if st == "none" || st == "hidden" {
			f.s.Set("border-"+side+"-width", "0px")
		}
	}
	if f.s.Get("outline-style") == "none" {
		f.s.Set("outline-width", "0px")
	}
}

// blockify adjusts the display mode of floated, absolutely positioned and
// root boxes.
func (f *frame) blockify(isRoot bool) {
	pos := f.s.Get("position")
	absolute := pos == "absolute" || pos == "fixed"
	if absolute {
		f.s.Set("float", "none")
	}
	if !isRoot && !absolute && f.s.Get("float") == "none" {
		return
	}
	d := f.s.Get("display")
	switch d {
	case "none", "block", "list-item", "table", "flex", "grid", "flow-root":
		return
	case "inline-table":
		d = "table"
	case "inline-flex":
		d = "flex"
	case "inline-grid":
		d = "grid"
	default:
		d = "block"
	}
	f.s.Set("display", d)
}

// absolutePixels parses an absolute length.
func absolutePixels(s string) (float64, bool) {
	if l, ok := css.ParseLength(s); ok {
		return l.Pixels()
	}
	return 0, false
}
