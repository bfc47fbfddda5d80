package media

import (
	"math"
	"strconv"
	"strings"

	"github.com/kvcpers/apollo/dom/style/css"
)

// rangeFeature is a media feature with a numeric value, which may be used
// with min-/max- prefixes or range comparisons.
type rangeFeature struct {
	value func(Environment) float64
	parse func(string) (float64, bool)
}

// discreteFeature is a media feature with a value from a set of keywords.
// In a boolean context the feature is false if its value equals off.
type discreteFeature struct {
	value  func(Environment) string
	values []string
	off    string
	match  func(env, want string) bool // optional, defaults to equality
}

var rangeFeatures = map[string]rangeFeature{
	"width":               {func(e Environment) float64 { return e.Width }, parseMediaLength},
	"height":              {func(e Environment) float64 { return e.Height }, parseMediaLength},
	"device-width":        {func(e Environment) float64 { return e.deviceWidth() }, parseMediaLength},
	"device-height":       {func(e Environment) float64 { return e.deviceHeight() }, parseMediaLength},
	"aspect-ratio":        {func(e Environment) float64 { return ratio(e.Width, e.Height) }, parseRatio},
	"device-aspect-ratio": {func(e Environment) float64 { return ratio(e.deviceWidth(), e.deviceHeight()) }, parseRatio},
	"resolution":          {func(e Environment) float64 { return e.DevicePixelRatio }, parseResolution},
	"color":               {func(e Environment) float64 { return float64(e.Color) }, parseInteger},
	"color-index":         {func(e Environment) float64 { return float64(e.ColorIndex) }, parseInteger},
	"monochrome":          {func(e Environment) float64 { return float64(e.Monochrome) }, parseInteger},
	"grid":                {func(e Environment) float64 { return b2f(e.Grid) }, parseInteger},
}

var gamutRank = map[string]int{"srgb": 1, "p3": 2, "rec2020": 3}

var discreteFeatures = map[string]discreteFeature{
	"orientation": {Environment.Orientation, []string{"portrait", "landscape"}, "", nil},
	"scan":        {func(e Environment) string { return e.Scan }, []string{"interlace", "progressive"}, "", nil},
	"update":      {func(e Environment) string { return e.Update }, []string{"none", "slow", "fast"}, "none", nil},
	"hover":       {func(e Environment) string { return e.Hover }, []string{"none", "hover"}, "none", nil},
	"any-hover":   {Environment.anyHover, []string{"none", "hover"}, "none", nil},
	"pointer":     {func(e Environment) string { return e.Pointer }, []string{"none", "coarse", "fine"}, "none", nil},
	"any-pointer": {Environment.anyPointer, []string{"none", "coarse", "fine"}, "none", nil},
	"color-gamut": {func(e Environment) string { return e.ColorGamut }, []string{"srgb", "p3", "rec2020"}, "",
		func(env, want string) bool { return gamutRank[env] >= gamutRank[want] }},
	"prefers-reduced-motion": {func(e Environment) string { return preference(e.ReducedMotion) },
		[]string{"no-preference", "reduce"}, "no-preference", nil},
	"prefers-reduced-transparency": {func(e Environment) string { return preference(e.ReducedTransp) },
		[]string{"no-preference", "reduce"}, "no-preference", nil},
	"prefers-reduced-data": {func(e Environment) string { return preference(e.ReducedData) },
		[]string{"no-preference", "reduce"}, "no-preference", nil},
	"prefers-color-scheme": {func(e Environment) string { return e.ColorScheme }, []string{"light", "dark"}, "", nil},
	"prefers-contrast": {func(e Environment) string { return e.Contrast },
		[]string{"no-preference", "more", "less", "custom"}, "no-preference", nil},
	"forced-colors": {func(e Environment) string {
		if e.ForcedColors {
			return "active"
		}
		return "none"
	}, []string{"none", "active"}, "none", nil},
	"scripting": {func(e Environment) string { return e.Scripting },
		[]string{"none", "initial-only", "enabled"}, "none", nil},
}

// IsKnownFeature checks if a feature name, without min-/max- prefix, is
// supported.
func IsKnownFeature(name string) bool {
	_, r := rangeFeatures[name]
	_, d := discreteFeatures[name]
	return r || d
}

// evaluate tests a feature against env. known is false for unknown features
// and for values or comparisons the feature does not support.
func (f Feature) evaluate(env Environment) (ok bool, known bool) {
	if rf, found := rangeFeatures[f.Name]; found {
		actual := rf.value(env)
		if f.Cmp == Boolean {
			return actual != 0, true
		}
		want, valid := rf.parse(f.Value)
		if !valid {
			return false, false
		}
		return compare(actual, want, f.Cmp), true
	}
	df, found := discreteFeatures[f.Name]
	if !found {
		return false, false
	}
	actual := strings.ToLower(df.value(env))
	switch f.Cmp {
	case Boolean:
		return actual != df.off, true
	case Equal:
		want := strings.ToLower(f.Value)
		if !oneOf(want, df.values) {
			return false, false
		}
		if df.match != nil {
			return df.match(actual, want), true
		}
		return actual == want, true
	}
	return false, false
}

func compare(actual, want float64, cmp Comparison) bool {
	const eps = 1e-6
	switch cmp {
	case Equal:
		return math.Abs(actual-want) < eps
	case AtLeast:
		return actual >= want-eps
	case AtMost:
		return actual <= want+eps
	case Greater:
		return actual > want+eps
	case Less:
		return actual < want-eps
	}
	return false
}

// Media queries have no element context: font-relative units use the
// initial font size.
const initialFontSize = 16

func parseMediaLength(s string) (float64, bool) {
	l, ok := css.ParseLength(s)
	if !ok {
		return 0, false
	}
	switch {
	case l.Unit == "" && l.Value == 0:
		return 0, true
	case l.Unit == "em" || l.Unit == "rem":
		return l.Value * initialFontSize, true
	case l.IsAbsolute():
		return l.Pixels()
	}
	return 0, false
}

func parseRatio(s string) (float64, bool) {
	num, den := s, "1"
	if i := strings.IndexByte(s, '/'); i >= 0 {
		num, den = s[:i], s[i+1:]
	}
	n, err1 := strconv.ParseFloat(strings.TrimSpace(num), 64)
	d, err2 := strconv.ParseFloat(strings.TrimSpace(den), 64)
	if err1 != nil || err2 != nil || n < 0 || d <= 0 {
		return 0, false
	}
	return n / d, true
}

func parseResolution(s string) (float64, bool) {
	l, ok := css.ParseLength(s)
	if !ok || l.Value < 0 {
		return 0, false
	}
	switch l.Unit {
	case "dppx", "x":
		return l.Value, true
	case "dpi":
		return l.Value / 96, true
	case "dpcm":
		return l.Value * 2.54 / 96, true
	}
	return 0, false
}

func parseInteger(s string) (float64, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(s))
	if err != nil || n < 0 {
		return 0, false
	}
	return float64(n), true
}

func ratio(w, h float64) float64 {
	if h == 0 {
		return 0
	}
	return w / h
}

func b2f(b bool) float64 {
	if b {
		return 1
	}
	return 0
}

func preference(reduce bool) string {
	if reduce {
		return "reduce"
	}
	return "no-preference"
}

func oneOf(s string, values []string) bool {
	for _, v := range values {
		if s == v {
			return true
		}
	}
	return false
}
