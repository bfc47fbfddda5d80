package computed

import (
	"fmt"
	"image/color"
	"strings"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/css"
	"github.com/npillmayer/tyse/core/dimen"
)

// DefaultFontSize is the font size in CSS pixels a Style reports if its
// font-size is not an absolute length.
const DefaultFontSize = 16.0

// Style is the computed style of an element, holding a value for every
// known property. Values are indexed by style.Index.
//
// Set may only be called while a style is built. After a style has been
// published to a Store it must be treated as read-only.
type Style struct {
	values []style.Property
}

// NewStyle creates a style with every property unset.
func NewStyle() *Style {
	return &Style{values: make([]style.Property, style.Count())}
}

// Initial creates a style with every property set to its initial value.
func Initial() *Style {
	s := NewStyle()
	for i, key := range style.Keys() {
		s.values[i] = style.InitialValue(key)
	}
	return s
}

// Set sets the computed value of a property. It returns false for unknown
// properties, which are ignored.
func (s *Style) Set(key string, value style.Property) bool {
	i, ok := style.Index(key)
	if !ok {
		tracer().Debugf("computed style: ignoring unknown property %q", key)
		return false
	}
	s.values[i] = value
	return true
}

// Get returns the computed value of a property, or NullStyle for unknown
// properties.
func (s *Style) Get(key string) style.Property {
	if s == nil {
		return style.NullStyle
	}
	if i, ok := style.Index(key); ok {
		return s.values[i]
	}
	return style.NullStyle
}

// IsSet is true if the property has a value.
func (s *Style) IsSet(key string) bool {
	return !s.Get(key).IsEmpty()
}

// Len returns the number of properties with a value.
func (s *Style) Len() int {
	n := 0
	for _, v := range s.values {
		if !v.IsEmpty() {
			n++
		}
	}
	return n
}

// Each calls f for every property with a value, in lexical order of keys.
func (s *Style) Each(f func(key string, value style.Property)) {
	keys := style.Keys()
	for i, v := range s.values {
		if !v.IsEmpty() {
			f(keys[i], v)
		}
	}
}

// Map returns the values of s as a map. The map is a copy.
func (s *Style) Map() map[string]style.Property {
	m := make(map[string]style.Property, len(s.values))
	s.Each(func(key string, value style.Property) {
		m[key] = value
	})
	return m
}

// Group collects the properties of a property group (see style.PG*), e.g.
// all margins. It returns nil if no property of the group has a value.
func (s *Style) Group(name string) *style.PropertyGroup {
	var pg *style.PropertyGroup
	s.Each(func(key string, value style.Property) {
		if style.GroupNameFromPropertyKey(key) != name {
			return
		}
		if pg == nil {
			pg = style.NewPropertyGroup(name)
		}
		pg.Set(key, value)
	})
	return pg
}

func (s *Style) String() string {
	var b strings.Builder
	b.WriteString("{")
	first := true
	s.Each(func(key string, value style.Property) {
		if !first {
			b.WriteString("; ")
		}
		first = false
		fmt.Fprintf(&b, "%s: %s", key, value)
	})
	b.WriteString("}")
	return b.String()
}

// --- Typed accessors -------------------------------------------------------

func sideKey(prefix string, side css.PosDir, suffix string) string {
	return prefix + side.String() + suffix
}

// Margin returns the margin of a box side.
func (s *Style) Margin(side css.PosDir) css.DimenT {
	return css.Dimen(s.Get(sideKey("margin-", side, "")))
}

// Padding returns the padding of a box side.
func (s *Style) Padding(side css.PosDir) css.DimenT {
	return css.Dimen(s.Get(sideKey("padding-", side, "")))
}

// BorderWidth returns the border width of a box side. Widths of sides with
// border style none or hidden have been computed to 0.
func (s *Style) BorderWidth(side css.PosDir) css.DimenT {
	return css.Dimen(s.Get(sideKey("border-", side, "-width")))
}

// BorderStyle returns the border style of a box side, e.g. "solid".
func (s *Style) BorderStyle(side css.PosDir) string {
	return string(s.Get(sideKey("border-", side, "-style")))
}

// BorderColor returns the border colour of a box side.
func (s *Style) BorderColor(side css.PosDir) color.Color {
	return s.Get(sideKey("border-", side, "-color")).Color()
}

// Color returns the foreground colour.
func (s *Style) Color() color.Color {
	return s.Get("color").Color()
}

// FontSizePixels returns the computed font size in CSS pixels.
func (s *Style) FontSizePixels() float64 {
	if l, ok := css.ParseLength(string(s.Get("font-size"))); ok {
		if px, ok := l.Pixels(); ok {
			return px
		}
	}
	return DefaultFontSize
}

// FontSize returns the computed font size.
func (s *Style) FontSize() dimen.DU {
	return css.Pixels(s.FontSizePixels())
}

// Display returns the display mode. Unknown display values are reported as
// block mode.
func (s *Style) Display() css.DisplayMode {
	d, err := css.ParseDisplay(string(s.Get("display")))
	if err != nil {
		tracer().Debugf("computed style: %v", err)
	}
	return d
}

// Position returns the position, including the offsets top, right, bottom
// and left.
func (s *Style) Position() css.PositionT {
	offsets := make([]css.PositionOffset, 0, 4)
	for side := css.Top; side <= css.Left; side++ {
		offsets = append(offsets, css.PositionOffset{
			Dim: css.Dimen(s.Get(side.String())),
			Dir: side,
		})
	}
	return css.Position(s.Get("position"), offsets...)
}

// IsPositioned is true for positions other than static.
func (s *Style) IsPositioned() bool {
	return s.Position().IsPositioned()
}

// IsFloating is true for boxes floating left or right.
func (s *Style) IsFloating() bool {
	f := s.Get("float")
	return !f.IsEmpty() && f != "none"
}

// IsBlockLevel is true if the outer display mode is block.
func (s *Style) IsBlockLevel() bool {
	return s.Display().IsBlockLevel()
}

// IsInlineLevel is true if the outer display mode is inline.
func (s *Style) IsInlineLevel() bool {
	return s.Display().IsInlineLevel()
}

// TotalHorizontalMargin is the sum of the left and right margins. Only
// fixed lengths are counted; auto and percentages count as 0. Sides are
// added in CSS pixels and converted once.
func (s *Style) TotalHorizontalMargin() dimen.DU {
	return s.total("margin-left", "margin-right")
}

// TotalVerticalMargin is the sum of the top and bottom margins.
func (s *Style) TotalVerticalMargin() dimen.DU {
	return s.total("margin-top", "margin-bottom")
}

// TotalHorizontalPadding is the sum of the left and right paddings.
func (s *Style) TotalHorizontalPadding() dimen.DU {
	return s.total("padding-left", "padding-right")
}

// TotalVerticalPadding is the sum of the top and bottom paddings.
func (s *Style) TotalVerticalPadding() dimen.DU {
	return s.total("padding-top", "padding-bottom")
}

// TotalHorizontalBorder is the sum of the left and right border widths.
func (s *Style) TotalHorizontalBorder() dimen.DU {
	return s.total("border-left-width", "border-right-width")
}

// TotalVerticalBorder is the sum of the top and bottom border widths.
func (s *Style) TotalVerticalBorder() dimen.DU {
	return s.total("border-top-width", "border-bottom-width")
}

func (s *Style) total(keys ...string) dimen.DU {
	px := 0.0
	for _, key := range keys {
		if l, ok := css.ParseLength(string(s.Get(key))); ok {
			if v, ok := l.Pixels(); ok {
				px += v
			}
		}
	}
	return css.Pixels(px)
}
