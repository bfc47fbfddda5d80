package css

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvcpers/apollo/dom/style"
)

// Length is a CSS numeric value with an optional unit, e.g. "1.5em" or "80%".
// Unit is lower case; the empty unit denotes a plain number.
type Length struct {
	Value float64
	Unit  string
}

// pixelsPer holds conversion factors for absolute units.
var pixelsPer = map[string]float64{
	"px": 1,
	"in": 96,
	"cm": 96 / 2.54,
	"mm": 96 / 25.4,
	"q":  96 / 101.6,
	"pt": 96.0 / 72,
	"pc": 16,
}

var borderWidthKeywords = map[string]float64{"thin": 1, "medium": 3, "thick": 5}

// fontSizeKeywords are the absolute font-size keywords, in px.
var fontSizeKeywords = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// FontScale is the factor for relative font-size keywords 'larger' and
// 'smaller'.
const FontScale = 1.2

// ParseLength parses a CSS numeric token. It returns false if s is not a
// number followed by an optional unit.
func ParseLength(s string) (Length, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	i := 0
	if i < len(s) && (s[i] == '+' || s[i] == '-') {
		i++
	}
	digits := 0
	for i < len(s) && s[i] >= '0' && s[i] <= '9' {
		i++
		digits++
	}
	if i < len(s) && s[i] == '.' {
		i++
		for i < len(s) && s[i] >= '0' && s[i] <= '9' {
			i++
			digits++
		}
	}
	if digits == 0 {
		return Length{}, false
	}
	if i < len(s) && s[i] == 'e' && i+1 < len(s) && (s[i+1] == '-' || s[i+1] == '+' ||
		(s[i+1] >= '0' && s[i+1] <= '9')) && !strings.HasPrefix(s[i:], "em") &&
		!strings.HasPrefix(s[i:], "ex") {
		j := i + 1
		if s[j] == '-' || s[j] == '+' {
			j++
		}
		k := j
		for k < len(s) && s[k] >= '0' && s[k] <= '9' {
			k++
		}
		if k > j {
			i = k
		}
	}
	v, err := strconv.ParseFloat(s[:i], 64)
	if err != nil {
		return Length{}, false
	}
	unit := s[i:]
	if unit != "" && unit != "%" {
		for _, c := range unit {
			if c < 'a' || c > 'z' {
				return Length{}, false
			}
		}
	}
	return Length{Value: v, Unit: unit}, true
}

// IsAbsolute is true for lengths with an absolute unit (px, pt, pc, in, cm,
// mm, q).
func (l Length) IsAbsolute() bool {
	_, ok := pixelsPer[l.Unit]
	return ok
}

// Pixels returns the value of an absolute length in CSS pixels.
func (l Length) Pixels() (float64, bool) {
	f, ok := pixelsPer[l.Unit]
	if !ok {
		return 0, false
	}
	return l.Value * f, true
}

// IsFontRelative is true for units relative to font metrics.
func (l Length) IsFontRelative() bool {
	switch l.Unit {
	case "em", "rem", "ex", "ch":
		return true
	}
	return false
}

// IsViewportRelative is true for units relative to the viewport.
func (l Length) IsViewportRelative() bool {
	switch l.Unit {
	case "vw", "vh", "vmin", "vmax":
		return true
	}
	return false
}

// IsPercent is true for percentages.
func (l Length) IsPercent() bool {
	return l.Unit == "%"
}

// IsNumber is true for a plain number without unit.
func (l Length) IsNumber() bool {
	return l.Unit == ""
}

// IsKnownUnit checks if the unit of l is a CSS length unit, a percentage or
// empty.
func (l Length) IsKnownUnit() bool {
	return l.IsNumber() || l.IsPercent() || l.IsAbsolute() || l.IsFontRelative() ||
		l.IsViewportRelative()
}

func (l Length) String() string {
	return strconv.FormatFloat(l.Value, 'f', -1, 64) + l.Unit
}

// FormatPixels formats a pixel value as a property value, rounded to four
// decimal places, e.g. "30px".
func FormatPixels(px float64) style.Property {
	v := math.Round(px*1e4) / 1e4
	if v == 0 {
		v = 0 // normalize -0
	}
	return style.Property(strconv.FormatFloat(v, 'f', -1, 64) + "px")
}

// FontSizeKeyword returns the size in px for an absolute font-size keyword.
func FontSizeKeyword(k string) (float64, bool) {
	px, ok := fontSizeKeywords[k]
	return px, ok
}

// BorderWidthKeyword returns the width in px for the border width keywords
// thin, medium and thick.
func BorderWidthKeyword(k string) (float64, bool) {
	px, ok := borderWidthKeywords[k]
	return px, ok
}

// --- Validation ------------------------------------------------------------

// ValidValue checks if v is a syntactically acceptable value for a known
// property. Unknown properties and empty values are never valid; CSS-wide
// keywords are always valid.
func ValidValue(key string, v style.Property) bool {
	def, ok := style.Lookup(key)
	if !ok {
		return false
	}
	v = style.Property(strings.TrimSpace(string(v)))
	if v.IsEmpty() {
		return false
	}
	if v.IsCSSWide() {
		return true
	}
	switch def.Kind {
	case style.KindColor:
		return style.IsColor(v)
	case style.KindLength:
		for _, f := range style.SplitValue(v) {
			if !isIdent(f) && !isFunction(f) {
				l, ok := ParseLength(f)
				if !ok || !l.IsKnownUnit() {
					return false
				}
			}
		}
		return true
	case style.KindNumber:
		if isIdent(string(v)) {
			return true
		}
		l, ok := ParseLength(string(v))
		return ok && (l.IsNumber() || l.IsPercent())
	}
	return true
}

func isIdent(s string) bool {
	if s == "" {
		return false
	}
	for i, c := range s {
		switch {
		case c >= 'a' && c <= 'z', c >= 'A' && c <= 'Z', c == '_':
		case c == '-' && (i > 0 || len(s) > 1 && (s[1] < '0' || s[1] > '9')):
		case c >= '0' && c <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

func isFunction(s string) bool {
	open := strings.IndexByte(s, '(')
	return open > 0 && strings.HasSuffix(s, ")") && isIdent(s[:open])
}
