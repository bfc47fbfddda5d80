package media

import (
	"strings"
)

// Comparison is the comparison a media feature test applies.
type Comparison uint8

// Feature comparisons. `(min-width: 600px)` and `(width >= 600px)` both
// yield AtLeast.
const (
	Boolean Comparison = iota // (hover)
	Equal                     // (orientation: portrait), (width = 600px)
	AtLeast                   // min-…, >=
	AtMost                    // max-…, <=
	Greater                   // >
	Less                      // <
)

var comparisonSymbols = [...]string{"", ":", ">=", "<=", ">", "<"}

func (c Comparison) String() string {
	if int(c) < len(comparisonSymbols) {
		return comparisonSymbols[c]
	}
	return "?"
}

// Feature is a single media feature test, e.g. `(min-width: 600px)`.
// Name is the feature name without a min-/max- prefix; Value is the raw
// value text, empty for boolean tests.
type Feature struct {
	Name  string
	Cmp   Comparison
	Value string
}

func (f Feature) String() string {
	switch f.Cmp {
	case Boolean:
		return "(" + f.Name + ")"
	case Equal:
		return "(" + f.Name + ": " + f.Value + ")"
	case AtLeast:
		return "(min-" + f.Name + ": " + f.Value + ")"
	case AtMost:
		return "(max-" + f.Name + ": " + f.Value + ")"
	}
	return "(" + f.Name + " " + f.Cmp.String() + " " + f.Value + ")"
}

// Query is a single media query: an optional media type and a conjunction
// of feature tests.
type Query struct {
	Not      bool
	Only     bool
	Type     string // lower case; empty means all
	Features []Feature
	invalid  bool
}

// Invalid returns a query which never matches, not even when negated.
func Invalid() Query {
	return Query{invalid: true}
}

// IsInvalid is true for queries which failed to parse.
func (q Query) IsInvalid() bool {
	return q.invalid
}

// Matches evaluates a query against an environment.
func (q Query) Matches(env Environment) bool {
	if q.invalid {
		return false
	}
	r := q.matchType(env)
	for _, f := range q.Features {
		ok, known := f.evaluate(env)
		if !known {
			// an unknown feature makes the whole query false, even if negated
			tracer().Debugf("media: unknown or invalid feature %v", f)
			return false
		}
		r = r && ok
	}
	if q.Not {
		return !r
	}
	return r
}

// knownTypes are the media types of Media Queries Level 4 plus the
// deprecated Level 3 types, which only match themselves.
var knownTypes = map[string]bool{
	"all": true, "screen": true, "print": true, "speech": true,
	"aural": true, "braille": true, "embossed": true, "handheld": true,
	"projection": true, "tty": true, "tv": true,
}

func (q Query) matchType(env Environment) bool {
	switch q.Type {
	case "", "all":
		return true
	}
	if !knownTypes[q.Type] {
		return false
	}
	return strings.EqualFold(q.Type, env.Type)
}

func (q Query) String() string {
	if q.invalid {
		return "not all"
	}
	var parts []string
	if q.Not {
		parts = append(parts, "not")
	} else if q.Only {
		parts = append(parts, "only")
	}
	if q.Type != "" {
		parts = append(parts, q.Type)
	}
	for i, f := range q.Features {
		if i > 0 || q.Type != "" {
			parts = append(parts, "and")
		}
		parts = append(parts, f.String())
	}
	if len(parts) == 0 {
		return "all"
	}
	return strings.Join(parts, " ")
}

// QueryList is a comma-separated list of media queries.
// The empty list matches every environment.
type QueryList []Query

// Matches is true if any query of the list matches env.
func (ql QueryList) Matches(env Environment) bool {
	if len(ql) == 0 {
		return true
	}
	for _, q := range ql {
		if q.Matches(env) {
			return true
		}
	}
	return false
}

func (ql QueryList) String() string {
	s := make([]string, len(ql))
	for i, q := range ql {
		s[i] = q.String()
	}
	return strings.Join(s, ", ")
}
