package cssom

import (
	"fmt"
	"strings"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/kvcpers/apollo/dom/style/selector"
)

// StyleSheet is an interface to abstract away a stylesheet-implementation.
// In order to de-couple implementations of CSS-stylesheets from the
// construction of computed styles, we introduce an interface for CSS
// stylesheets. Clients for the styling engine will either use Sheet or
// provide a concrete implementation of this interface (e.g., see
// package douceuradapter).
//
// Style sheets must not be modified while a resolution pass is using them.
type StyleSheet interface {
	AppendRules(StyleSheet) // append rules from another stylesheet
	Empty() bool            // does this stylesheet contain any rules?
	Rules() []*Rule         // all the rules of a stylesheet, in source order
}

// LayeredSheet is implemented by style sheets which declare cascade layers
// by statement, as in `@layer base, components;`. Layers returns the layer
// names in order of declaration.
type LayeredSheet interface {
	StyleSheet
	Layers() []string
}

// Declaration is a single property declaration of a rule, e.g.
// `margin-top: 15px !important`.
type Declaration struct {
	Property  string         // lower case property name
	Value     style.Property // value without the !important marker
	Important bool
}

func (d Declaration) String() string {
	if d.Important {
		return d.Property + ": " + string(d.Value) + " !important"
	}
	return d.Property + ": " + string(d.Value)
}

// Layer is a cascade layer. Order is the precedence of the layer within the
// style sheet which declared it: declarations of a layer with a higher order
// win. The parsers of this module assign orders with RankLayers.
type Layer struct {
	Name  string
	Order int
}

// RankLayers assigns an order to layer names, given in order of their first
// declaration. Layer names form a tree, with "base.reset" a child of "base".
// Layers rank by first declaration, and a nested layer ranks below its
// parent layer.
func RankLayers(names []string) map[string]int {
	type layerNode struct {
		name     string
		children []*layerNode
	}
	top := &layerNode{}
	nodes := map[string]*layerNode{"": top}
	var declare func(name string) *layerNode
	declare = func(name string) *layerNode {
		if n, ok := nodes[name]; ok {
			return n
		}
		parent := ""
		if i := strings.LastIndexByte(name, '.'); i >= 0 {
			parent = name[:i]
		}
		p := declare(parent)
		n := &layerNode{name: name}
		p.children = append(p.children, n)
		nodes[name] = n
		return n
	}
	for _, name := range names {
		declare(name)
	}
	ranks := make(map[string]int, len(nodes))
	var postorder func(n *layerNode)
	postorder = func(n *layerNode) {
		for _, ch := range n.children {
			postorder(ch)
		}
		if n != top {
			ranks[n.name] = len(ranks)
		}
	}
	postorder(top)
	return ranks
}

// Rule is the type stylesheets consists of.
//
// Media holds the media query lists of all @media blocks enclosing the rule,
// outermost first. All of them have to match for the rule to apply. Rules
// nested in the same @media block share a *media.QueryList.
type Rule struct {
	Selectors    selector.List
	Declarations []Declaration
	Layer        *Layer // nil for unlayered rules
	Media        []*media.QueryList
}

// NewRule creates a rule from selector text and declarations. It returns an
// error wrapping selector.ErrMalformed if any selector of the list cannot be
// parsed.
func NewRule(selectors string, decls ...Declaration) (*Rule, error) {
	list, err := selector.ParseList(selectors)
	if err != nil {
		return nil, fmt.Errorf("rule %q: %w", selectors, err)
	}
	r := &Rule{Selectors: list, Declarations: make([]Declaration, len(decls))}
	for i, d := range decls {
		d.Property = style.NormalizeKey(d.Property)
		r.Declarations[i] = d
	}
	return r, nil
}

// MustRule is like NewRule but panics on malformed selectors.
func MustRule(selectors string, decls ...Declaration) *Rule {
	r, err := NewRule(selectors, decls...)
	if err != nil {
		panic(err)
	}
	return r
}

// Decl is a shortcut to create a declaration. A trailing `!important` in
// the value is recognized.
func Decl(property string, value string) Declaration {
	d := Declaration{Property: style.NormalizeKey(property)}
	v := strings.TrimSpace(value)
	if i := strings.LastIndexByte(v, '!'); i >= 0 &&
		strings.EqualFold(strings.TrimSpace(v[i+1:]), "important") {
		d.Important = true
		v = strings.TrimSpace(v[:i])
	}
	d.Value = style.Property(v)
	return d
}

// Selector returns the prelude / selectors of the rule.
func (r *Rule) Selector() string {
	return r.Selectors.String()
}

// Properties returns the property keys of a rule, e.g. "margin-top".
func (r *Rule) Properties() []string {
	props := make([]string, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		props = append(props, d.Property)
	}
	return props
}

func (r *Rule) String() string {
	var b strings.Builder
	for _, ql := range r.Media {
		if ql != nil {
			b.WriteString("@media " + ql.String() + " ")
		}
	}
	if r.Layer != nil {
		b.WriteString("@layer " + r.Layer.Name + " ")
	}
	b.WriteString(r.Selector())
	b.WriteString(" { ")
	for _, d := range r.Declarations {
		b.WriteString(d.String())
		b.WriteString("; ")
	}
	b.WriteString("}")
	return b.String()
}

// --- Sheets ----------------------------------------------------------------

// Sheet is the default implementation of StyleSheet.
type Sheet struct {
	rules  []*Rule
	layers []string
}

// NewSheet creates a style sheet from a list of rules.
func NewSheet(rules ...*Rule) *Sheet {
	return &Sheet{rules: rules}
}

// AddRule appends a rule.
func (sheet *Sheet) AddRule(r *Rule) {
	if r != nil {
		sheet.rules = append(sheet.rules, r)
	}
}

// DeclareLayer records a cascade layer name, if it has not been declared
// before, and returns its order within the sheet.
func (sheet *Sheet) DeclareLayer(name string) int {
	for i, l := range sheet.layers {
		if l == name {
			return i
		}
	}
	sheet.layers = append(sheet.layers, name)
	return len(sheet.layers) - 1
}

// Layers is part of interface LayeredSheet.
func (sheet *Sheet) Layers() []string {
	return sheet.layers
}

// Empty is part of interface StyleSheet.
func (sheet *Sheet) Empty() bool {
	return len(sheet.rules) == 0
}

// AppendRules is part of interface StyleSheet.
func (sheet *Sheet) AppendRules(other StyleSheet) {
	if other == nil {
		return
	}
	if ls, ok := other.(LayeredSheet); ok {
		for _, l := range ls.Layers() {
			sheet.DeclareLayer(l)
		}
	}
	sheet.rules = append(sheet.rules, other.Rules()...)
}

// Rules is part of interface StyleSheet.
func (sheet *Sheet) Rules() []*Rule {
	return sheet.rules
}

var _ LayeredSheet = &Sheet{}

// --- Origins ---------------------------------------------------------------

// Origin is the cascade origin of a declaration. Origins are ordered by
// precedence, lowest first.
type Origin uint8

// Cascade origins. Important declarations of author and user origin are
// folded into their own buckets, with user-important taking precedence over
// everything else.
const (
	UserAgent Origin = iota
	User
	Author
	AuthorImportant
	UserImportant
)

var originNames = [...]string{"user-agent", "user", "author", "author-important", "user-important"}

func (o Origin) String() string {
	if int(o) < len(originNames) {
		return originNames[o]
	}
	return "?"
}

// Fold returns the effective origin of a declaration from origin o, taking
// its importance into account. Important user agent declarations are not
// elevated.
func (o Origin) Fold(important bool) Origin {
	if !important {
		return o
	}
	switch o {
	case User:
		return UserImportant
	case Author:
		return AuthorImportant
	}
	return o
}

// Base returns the origin of a sheet an effective origin stems from.
func (o Origin) Base() Origin {
	switch o {
	case AuthorImportant:
		return Author
	case UserImportant:
		return User
	}
	return o
}

// Sheets groups style sheets by origin.
// The zero value is an empty set of sheets, ready to use.
type Sheets struct {
	byOrigin [3][]StyleSheet
}

// Add appends style sheets to an origin. Important origins are mapped to
// their base origin.
func (s *Sheets) Add(origin Origin, sheets ...StyleSheet) *Sheets {
	o := origin.Base()
	for _, sheet := range sheets {
		if sheet != nil {
			s.byOrigin[o] = append(s.byOrigin[o], sheet)
		}
	}
	return s
}

// Of returns the style sheets of an origin, in the order they were added.
func (s *Sheets) Of(origin Origin) []StyleSheet {
	if s == nil {
		return nil
	}
	return s.byOrigin[origin.Base()]
}

// Len returns the number of style sheets of all origins.
func (s *Sheets) Len() int {
	if s == nil {
		return 0
	}
	return len(s.byOrigin[UserAgent]) + len(s.byOrigin[User]) + len(s.byOrigin[Author])
}
