package selector

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrMalformed is wrapped by every error reporting a structurally broken
// selector.
var ErrMalformed = errors.New("malformed selector")

func malformed(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrMalformed, fmt.Sprintf(format, args...))
}

// Kind is the kind of a simple selector.
type Kind uint8

// Kinds of simple selectors.
const (
	KindUniversal Kind = iota // *
	KindType                  // div
	KindID                    // #main
	KindClass                 // .note
	KindAttribute             // [href^="http"]
	KindPseudoClass           // :first-child
)

// AttrOp is an attribute selector operator.
type AttrOp uint8

// Attribute operators.
const (
	Exists    AttrOp = iota // [a]
	Equals                  // [a=v]
	Includes                // [a~=v]
	DashMatch               // [a|=v]
	Prefix                  // [a^=v]
	Suffix                  // [a$=v]
	Substring               // [a*=v]
)

var attrOpStrings = [...]string{"", "=", "~=", "|=", "^=", "$=", "*="}

func (op AttrOp) String() string {
	if int(op) < len(attrOpStrings) {
		return attrOpStrings[op]
	}
	return "?"
}

// Pseudo is a pseudo-class.
type Pseudo uint8

// Supported pseudo-classes.
const (
	NoPseudo Pseudo = iota
	Hover
	Active
	Focus
	Visited
	Link
	Target
	Enabled
	Disabled
	Checked
	Indeterminate
	Valid
	Invalid
	Required
	Optional
	InRange
	OutOfRange
	ReadOnly
	ReadWrite
	FirstChild
	LastChild
	OnlyChild
	FirstOfType
	LastOfType
	OnlyOfType
	NthChild
	NthLastChild
	NthOfType
	NthLastOfType
	Empty
	Root
	maxPseudo
)

var pseudoNames = map[Pseudo]string{
	Hover: "hover", Active: "active", Focus: "focus", Visited: "visited",
	Link: "link", Target: "target", Enabled: "enabled", Disabled: "disabled",
	Checked: "checked", Indeterminate: "indeterminate", Valid: "valid",
	Invalid: "invalid", Required: "required", Optional: "optional",
	InRange: "in-range", OutOfRange: "out-of-range", ReadOnly: "read-only",
	ReadWrite: "read-write", FirstChild: "first-child", LastChild: "last-child",
	OnlyChild: "only-child", FirstOfType: "first-of-type", LastOfType: "last-of-type",
	OnlyOfType: "only-of-type", NthChild: "nth-child", NthLastChild: "nth-last-child",
	NthOfType: "nth-of-type", NthLastOfType: "nth-last-of-type", Empty: "empty",
	Root: "root",
}

var pseudoByName = func() map[string]Pseudo {
	m := make(map[string]Pseudo, len(pseudoNames))
	for p, n := range pseudoNames {
		m[n] = p
	}
	return m
}()

// PseudoByName returns the pseudo-class for a (lower case) name.
func PseudoByName(name string) (Pseudo, bool) {
	p, ok := pseudoByName[name]
	return p, ok
}

func (p Pseudo) String() string {
	if n, ok := pseudoNames[p]; ok {
		return n
	}
	return "?"
}

// IsNth is true for the pseudo-classes taking an An+B argument.
func (p Pseudo) IsNth() bool {
	return p >= NthChild && p <= NthLastOfType
}

// Nth is an An+B expression, matching positions A*n+B for n = 0, 1, 2, …
type Nth struct {
	A, B int
}

// Matches checks if a 1-based position is selected by an An+B expression.
func (nth Nth) Matches(pos int) bool {
	if nth.A == 0 {
		return pos == nth.B
	}
	diff := pos - nth.B
	if diff%nth.A != 0 {
		return false
	}
	return diff/nth.A >= 0
}

func (nth Nth) String() string {
	switch {
	case nth.A == 2 && nth.B == 1:
		return "odd"
	case nth.A == 2 && nth.B == 0:
		return "even"
	case nth.A == 0:
		return strconv.Itoa(nth.B)
	case nth.B == 0:
		return strconv.Itoa(nth.A) + "n"
	case nth.B > 0:
		return strconv.Itoa(nth.A) + "n+" + strconv.Itoa(nth.B)
	}
	return strconv.Itoa(nth.A) + "n" + strconv.Itoa(nth.B)
}

// ParseNth parses an An+B expression, including the keywords odd and even.
func ParseNth(s string) (Nth, error) {
	s = strings.ToLower(strings.Join(strings.Fields(s), ""))
	switch s {
	case "":
		return Nth{}, malformed("empty An+B expression")
	case "odd":
		return Nth{2, 1}, nil
	case "even":
		return Nth{2, 0}, nil
	}
	n := strings.IndexByte(s, 'n')
	if n < 0 {
		b, err := strconv.Atoi(s)
		if err != nil {
			return Nth{}, malformed("illegal An+B expression %q", s)
		}
		return Nth{0, b}, nil
	}
	var nth Nth
	switch a := s[:n]; a {
	case "", "+":
		nth.A = 1
	case "-":
		nth.A = -1
	default:
		v, err := strconv.Atoi(a)
		if err != nil {
			return Nth{}, malformed("illegal An+B expression %q", s)
		}
		nth.A = v
	}
	if rest := s[n+1:]; rest != "" {
		if rest[0] != '+' && rest[0] != '-' {
			return Nth{}, malformed("illegal An+B expression %q", s)
		}
		v, err := strconv.Atoi(rest)
		if err != nil {
			return Nth{}, malformed("illegal An+B expression %q", s)
		}
		nth.B = v
	}
	return nth, nil
}

// PseudoElement is a pseudo-element. It is the optional last component of
// a selector and is never matched against elements.
type PseudoElement uint8

// Supported pseudo-elements.
const (
	NoPseudoElement PseudoElement = iota
	Before
	After
	FirstLine
	FirstLetter
	Selection
	Marker
	maxPseudoElement
)

var pseudoElementNames = [...]string{"", "before", "after", "first-line",
	"first-letter", "selection", "marker"}

// PseudoElementByName returns the pseudo-element for a (lower case) name.
func PseudoElementByName(name string) (PseudoElement, bool) {
	for i, n := range pseudoElementNames {
		if i > 0 && n == name {
			return PseudoElement(i), true
		}
	}
	return NoPseudoElement, false
}

func (pe PseudoElement) String() string {
	if pe < maxPseudoElement {
		return pseudoElementNames[pe]
	}
	return "?"
}

// --- Simple and compound selectors -----------------------------------------

// Simple is a simple selector. Which fields are relevant depends on Kind:
// Name holds the tag, id, class or attribute name, Op and Value are used for
// attribute selectors and Pseudo and Nth for pseudo-classes.
type Simple struct {
	Kind   Kind
	Name   string
	Op     AttrOp
	Value  string
	Fold   bool // case-insensitive attribute value comparison, [a=v i]
	Pseudo Pseudo
	Nth    Nth
}

// Any is the universal selector *.
func Any() Simple { return Simple{Kind: KindUniversal} }

// Tag is a type selector.
func Tag(name string) Simple { return Simple{Kind: KindType, Name: strings.ToLower(name)} }

// ID is an id selector.
func ID(name string) Simple { return Simple{Kind: KindID, Name: name} }

// Class is a class selector.
func Class(name string) Simple { return Simple{Kind: KindClass, Name: name} }

// Attr is an attribute selector testing for the presence of an attribute.
func Attr(name string) Simple {
	return Simple{Kind: KindAttribute, Name: strings.ToLower(name), Op: Exists}
}

// AttrValue is an attribute selector testing an attribute value.
func AttrValue(name string, op AttrOp, value string) Simple {
	return Simple{Kind: KindAttribute, Name: strings.ToLower(name), Op: op, Value: value}
}

// Is is a pseudo-class selector without argument.
func Is(p Pseudo) Simple { return Simple{Kind: KindPseudoClass, Pseudo: p} }

// NthOf is one of the pseudo-classes nth-child, nth-last-child, nth-of-type
// or nth-last-of-type, selecting positions a*n+b.
func NthOf(p Pseudo, a, b int) Simple {
	return Simple{Kind: KindPseudoClass, Pseudo: p, Nth: Nth{a, b}}
}

func (s Simple) String() string {
	switch s.Kind {
	case KindUniversal:
		return "*"
	case KindType:
		return s.Name
	case KindID:
		return "#" + s.Name
	case KindClass:
		return "." + s.Name
	case KindAttribute:
		if s.Op == Exists {
			return "[" + s.Name + "]"
		}
		fold := ""
		if s.Fold {
			fold = " i"
		}
		return "[" + s.Name + s.Op.String() + strconv.Quote(s.Value) + fold + "]"
	case KindPseudoClass:
		if s.Pseudo.IsNth() {
			return ":" + s.Pseudo.String() + "(" + s.Nth.String() + ")"
		}
		return ":" + s.Pseudo.String()
	}
	return "?"
}

func (s Simple) validate() error {
	switch s.Kind {
	case KindUniversal:
	case KindType, KindID, KindClass:
		if s.Name == "" {
			return malformed("empty name for %s selector", kindNames[s.Kind])
		}
	case KindAttribute:
		if s.Name == "" {
			return malformed("empty attribute name")
		}
		if s.Op > Substring {
			return malformed("unknown attribute operator %d", s.Op)
		}
	case KindPseudoClass:
		if s.Pseudo == NoPseudo || s.Pseudo >= maxPseudo {
			return malformed("unknown pseudo-class %d", s.Pseudo)
		}
		if !s.Pseudo.IsNth() && s.Nth != (Nth{}) {
			return malformed("pseudo-class :%s takes no argument", s.Pseudo)
		}
	default:
		return malformed("unknown simple selector kind %d", s.Kind)
	}
	return nil
}

var kindNames = [...]string{"universal", "type", "id", "class", "attribute", "pseudo-class"}

// Compound is a compound selector, i.e. a set of simple selectors which all
// have to match the same element.
type Compound []Simple

func (c Compound) String() string {
	var b strings.Builder
	for _, s := range c.typeFirst() {
		if s.Kind == KindUniversal && len(c) > 1 {
			continue
		}
		b.WriteString(s.String())
	}
	return b.String()
}

// typeFirst returns the simple selectors of c with type selectors in front.
func (c Compound) typeFirst() []Simple {
	r := make([]Simple, 0, len(c))
	for _, s := range c {
		if s.Kind == KindType || s.Kind == KindUniversal {
			r = append(r, s)
		}
	}
	for _, s := range c {
		if s.Kind != KindType && s.Kind != KindUniversal {
			r = append(r, s)
		}
	}
	return r
}

func (c Compound) validate() error {
	if len(c) == 0 {
		return malformed("empty compound selector")
	}
	types := 0
	for _, s := range c {
		if err := s.validate(); err != nil {
			return err
		}
		if s.Kind == KindType || s.Kind == KindUniversal {
			types++
		}
	}
	if types > 1 {
		return malformed("more than one type selector in compound %v", []Simple(c))
	}
	return nil
}

// Combinator joins two compound selectors.
type Combinator uint8

// Combinators.
const (
	Descendant     Combinator = iota + 1 // A B
	Child                                // A > B
	AdjacentSibling                      // A + B
	GeneralSibling                       // A ~ B
)

func (c Combinator) String() string {
	switch c {
	case Descendant:
		return " "
	case Child:
		return " > "
	case AdjacentSibling:
		return " + "
	case GeneralSibling:
		return " ~ "
	}
	return "?"
}

// Component is a part of a selector: a Compound, a Combinator or a
// PseudoElement.
type Component interface {
	component()
}

func (Compound) component()      {}
func (Combinator) component()    {}
func (PseudoElement) component() {}

// --- Selectors -------------------------------------------------------------

// Selector is a complex CSS selector. Selectors are immutable and safe for
// concurrent use. The zero value is not a valid selector; use New or Parse.
type Selector struct {
	compounds []Compound   // left to right
	combs     []Combinator // combs[i] joins compounds[i] and compounds[i+1]
	pseudo    PseudoElement
	spec      Specificity
}

// New creates a selector from a sequence of components, alternating compounds
// and combinators, with an optional trailing pseudo-element:
//
//     New(Compound{Tag("ul")}, Child, Compound{Tag("li"), Class("x")})
//
// New returns an error wrapping ErrMalformed if the sequence does not form a
// well-structured selector.
func New(components ...Component) (Selector, error) {
	var sel Selector
	if len(components) == 0 {
		return sel, malformed("empty selector")
	}
	expectCompound := true
	for i, c := range components {
		switch x := c.(type) {
		case Compound:
			if !expectCompound {
				return Selector{}, malformed("missing combinator before compound %d", i)
			}
			if err := x.validate(); err != nil {
				return Selector{}, err
			}
			sel.compounds = append(sel.compounds, append(Compound(nil), x...))
			expectCompound = false
		case Combinator:
			if expectCompound {
				if i == 0 {
					return Selector{}, malformed("leading combinator %q", x.String())
				}
				return Selector{}, malformed("doubled combinator %q", x.String())
			}
			if x < Descendant || x > GeneralSibling {
				return Selector{}, malformed("unknown combinator %d", x)
			}
			sel.combs = append(sel.combs, x)
			expectCompound = true
		case PseudoElement:
			if expectCompound {
				return Selector{}, malformed("pseudo-element ::%s without compound", x)
			}
			if i != len(components)-1 {
				return Selector{}, malformed("pseudo-element ::%s must be last", x)
			}
			if x == NoPseudoElement || x >= maxPseudoElement {
				return Selector{}, malformed("unknown pseudo-element %d", x)
			}
			sel.pseudo = x
		default:
			return Selector{}, malformed("unknown selector component %T", c)
		}
	}
	if expectCompound {
		return Selector{}, malformed("trailing combinator")
	}
	sel.spec = sel.computeSpecificity()
	return sel, nil
}

// MustNew is like New, but panics on malformed input. It is intended for
// static selectors.
func MustNew(components ...Component) Selector {
	sel, err := New(components...)
	if err != nil {
		panic(err)
	}
	return sel
}

// IsZero is true for the zero value.
func (sel Selector) IsZero() bool {
	return len(sel.compounds) == 0
}

// Specificity returns the specificity of a selector.
func (sel Selector) Specificity() Specificity {
	return sel.spec
}

// PseudoElement returns the trailing pseudo-element of a selector, if any.
func (sel Selector) PseudoElement() PseudoElement {
	return sel.pseudo
}

// Subject returns the right-most compound of a selector.
func (sel Selector) Subject() Compound {
	if sel.IsZero() {
		return nil
	}
	return sel.compounds[len(sel.compounds)-1]
}

func (sel Selector) String() string {
	var b strings.Builder
	for i, c := range sel.compounds {
		if i > 0 {
			b.WriteString(sel.combs[i-1].String())
		}
		b.WriteString(c.String())
	}
	if sel.pseudo != NoPseudoElement {
		b.WriteString("::" + sel.pseudo.String())
	}
	return b.String()
}

// List is a selector list (a group of selectors), as written before a
// rule's declaration block. A list matches if any of its selectors matches.
type List []Selector

func (l List) String() string {
	s := make([]string, len(l))
	for i, sel := range l {
		s[i] = sel.String()
	}
	return strings.Join(s, ", ")
}
