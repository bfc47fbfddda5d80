package selector

import "fmt"

// Specificity of a selector. Specificities are compared lexicographically,
// with ids being most significant.
type Specificity struct {
	IDs     int // id selectors
	Classes int // class, attribute and pseudo-class selectors
	Types   int // type selectors and pseudo-elements
}

// Compare returns -1, 0 or +1 if s is less than, equal to or greater than o.
func (s Specificity) Compare(o Specificity) int {
	switch {
	case s.IDs != o.IDs:
		return sign(s.IDs - o.IDs)
	case s.Classes != o.Classes:
		return sign(s.Classes - o.Classes)
	}
	return sign(s.Types - o.Types)
}

// Less is true if s is of lower specificity than o.
func (s Specificity) Less(o Specificity) bool {
	return s.Compare(o) < 0
}

// Add returns the component-wise sum of two specificities.
func (s Specificity) Add(o Specificity) Specificity {
	return Specificity{s.IDs + o.IDs, s.Classes + o.Classes, s.Types + o.Types}
}

func (s Specificity) String() string {
	return fmt.Sprintf("(%d,%d,%d)", s.IDs, s.Classes, s.Types)
}

func sign(x int) int {
	switch {
	case x < 0:
		return -1
	case x > 0:
		return 1
	}
	return 0
}

// CompoundSpecificity returns the specificity of a compound selector.
// The universal selector does not contribute.
func CompoundSpecificity(c Compound) Specificity {
	var spec Specificity
	for _, s := range c {
		switch s.Kind {
		case KindID:
			spec.IDs++
		case KindClass, KindAttribute, KindPseudoClass:
			spec.Classes++
		case KindType:
			spec.Types++
		case KindUniversal:
		}
	}
	return spec
}

func (sel Selector) computeSpecificity() Specificity {
	var spec Specificity
	for _, c := range sel.compounds {
		spec = spec.Add(CompoundSpecificity(c))
	}
	if sel.pseudo != NoPseudoElement {
		spec.Types++
	}
	return spec
}
