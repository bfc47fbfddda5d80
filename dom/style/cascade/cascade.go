/*
Package cascade decides between competing declarations for a property.

Every declaration which applies to an element becomes a Candidate. The
cascade orders candidates by

    1. effective origin (importance folded in, see cssom.Origin)
    2. declarations of an element's style attribute win over rules
    3. cascade layer: unlayered declarations lose to layered ones, layers
       are ordered by their declaration order
    4. specificity of the matching selector
    5. source order of the rule, then of the declaration within the rule

and the greatest candidate wins.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cascade

import (
	"fmt"
	"sort"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/selector"
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.cascade'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.cascade")
}

// Candidate is a declaration competing in the cascade.
type Candidate struct {
	Property    string
	Value       style.Property
	Origin      cssom.Origin // effective origin
	Inline      bool         // from a style attribute
	Layered     bool
	LayerOrder  int
	Specificity selector.Specificity
	Order       int // source order of the rule
	Index       int // position of the declaration within its rule
}

func (c Candidate) String() string {
	layer := "-"
	switch {
	case c.Inline:
		layer = "inline"
	case c.Layered:
		layer = fmt.Sprintf("%d", c.LayerOrder)
	}
	return fmt.Sprintf("%s: %s [%s layer=%s %s #%d.%d]", c.Property, c.Value, c.Origin,
		layer, c.Specificity, c.Order, c.Index)
}

// Compare returns -1, 0 or +1, if candidate a has lower, equal or higher
// precedence than candidate b.
func Compare(a, b Candidate) int {
	if a.Origin != b.Origin {
		return cmpInt(int(a.Origin), int(b.Origin))
	}
	if a.Inline != b.Inline {
		return cmpBool(a.Inline, b.Inline)
	}
	if a.Layered != b.Layered {
		return cmpBool(a.Layered, b.Layered)
	}
	if a.Layered && a.LayerOrder != b.LayerOrder {
		return cmpInt(a.LayerOrder, b.LayerOrder)
	}
	if c := a.Specificity.Compare(b.Specificity); c != 0 {
		return c
	}
	if a.Order != b.Order {
		return cmpInt(a.Order, b.Order)
	}
	return cmpInt(a.Index, b.Index)
}

// cmpBool orders false before true.
func cmpBool(a, b bool) int {
	switch {
	case a == b:
		return 0
	case a:
		return 1
	}
	return -1
}

func cmpInt(a, b int) int {
	switch {
	case a < b:
		return -1
	case a > b:
		return 1
	}
	return 0
}

// Winner returns the candidate with the highest precedence. It returns false
// for an empty slice only. Of equal candidates, the first one wins.
func Winner(candidates []Candidate) (Candidate, bool) {
	if len(candidates) == 0 {
		return Candidate{}, false
	}
	w := candidates[0]
	for _, c := range candidates[1:] {
		if Compare(c, w) > 0 {
			w = c
		}
	}
	return w, true
}

// Set collects the candidates of a single element, keyed by property.
// The zero value is not usable, call NewSet.
type Set struct {
	byProperty map[string][]Candidate
	count      int
}

// NewSet creates an empty candidate set.
func NewSet() *Set {
	return &Set{byProperty: make(map[string][]Candidate)}
}

// Add adds a candidate.
func (s *Set) Add(c Candidate) {
	s.byProperty[c.Property] = append(s.byProperty[c.Property], c)
	s.count++
}

// Len returns the number of candidates in the set.
func (s *Set) Len() int {
	return s.count
}

// Candidates returns the candidates for a property, in insertion order.
func (s *Set) Candidates(property string) []Candidate {
	return s.byProperty[property]
}

// Winner returns the winning candidate for a property.
func (s *Set) Winner(property string) (Candidate, bool) {
	return Winner(s.byProperty[property])
}

// Properties returns the properties with at least one candidate, sorted.
func (s *Set) Properties() []string {
	props := make([]string, 0, len(s.byProperty))
	for p := range s.byProperty {
		props = append(props, p)
	}
	sort.Strings(props)
	return props
}

// Resolve returns the cascaded value of every property in the set.
func (s *Set) Resolve() map[string]style.Property {
	cascaded := make(map[string]style.Property, len(s.byProperty))
	for p, candidates := range s.byProperty {
		if w, ok := Winner(candidates); ok {
			cascaded[p] = w.Value
			if len(candidates) > 1 {
				tracer().Debugf("cascade: %s wins over %d candidates", w, len(candidates)-1)
			}
		}
	}
	return cascaded
}
