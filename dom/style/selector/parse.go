package selector

import (
	"io"
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

type token struct {
	tt   css.TokenType
	data string
}

// tokenize splits selector text into CSS tokens. Comments are dropped and
// runs of whitespace collapse into a single whitespace token.
func tokenize(s string) ([]token, error) {
	l := css.NewLexer(parse.NewInputString(s))
	var toks []token
	for {
		tt, data := l.Next()
		switch tt {
		case css.ErrorToken:
			if err := l.Err(); err != nil && err != io.EOF {
				return nil, malformed("%v", err)
			}
			return toks, nil
		case css.CommentToken:
			continue
		case css.WhitespaceToken:
			if len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
				continue
			}
		}
		toks = append(toks, token{tt, string(data)})
	}
}

// Parse parses a single complex selector, e.g. `div.note > p:first-child`.
// Errors wrap ErrMalformed.
func Parse(s string) (Selector, error) {
	toks, err := tokenize(s)
	if err != nil {
		return Selector{}, err
	}
	p := &selParser{toks: trimSpace(toks), src: s}
	return p.selector()
}

// MustParse is like Parse, but panics if the selector cannot be parsed.
func MustParse(s string) Selector {
	sel, err := Parse(s)
	if err != nil {
		panic(err)
	}
	return sel
}

// ParseList parses a comma-separated selector list. Selectors which fail to
// parse are left out of the list and their errors are combined. Clients which
// follow CSS error handling rules, where a single invalid selector
// invalidates a rule, should discard the list if err is non-nil.
func ParseList(s string) (List, error) {
	toks, err := tokenize(s)
	if err != nil {
		return nil, err
	}
	var list List
	var errs error
	for _, group := range splitCommas(toks) {
		p := &selParser{toks: trimSpace(group), src: s}
		sel, err := p.selector()
		if err != nil {
			errs = multierr.Append(errs, err)
			continue
		}
		list = append(list, sel)
	}
	if len(list) == 0 && errs == nil {
		errs = malformed("empty selector list")
	}
	return list, errs
}

func splitCommas(toks []token) [][]token {
	var groups [][]token
	depth, start := 0, 0
	for i, t := range toks {
		switch t.tt {
		case css.FunctionToken, css.LeftParenthesisToken, css.LeftBracketToken:
			depth++
		case css.RightParenthesisToken, css.RightBracketToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				groups = append(groups, toks[start:i])
				start = i + 1
			}
		}
	}
	return append(groups, toks[start:])
}

func trimSpace(toks []token) []token {
	for len(toks) > 0 && toks[0].tt == css.WhitespaceToken {
		toks = toks[1:]
	}
	for len(toks) > 0 && toks[len(toks)-1].tt == css.WhitespaceToken {
		toks = toks[:len(toks)-1]
	}
	return toks
}

// --- Parser ----------------------------------------------------------------

type selParser struct {
	toks []token
	pos  int
	src  string
}

func (p *selParser) peek() token {
	if p.pos < len(p.toks) {
		return p.toks[p.pos]
	}
	return token{tt: css.ErrorToken}
}

func (p *selParser) next() token {
	t := p.peek()
	if p.pos < len(p.toks) {
		p.pos++
	}
	return t
}

func (p *selParser) atEnd() bool {
	return p.pos >= len(p.toks)
}

func (p *selParser) skipSpace() bool {
	skipped := false
	for p.peek().tt == css.WhitespaceToken {
		p.pos++
		skipped = true
	}
	return skipped
}

func (p *selParser) selector() (Selector, error) {
	if p.atEnd() {
		return Selector{}, malformed("empty selector in %q", p.src)
	}
	var components []Component
	for !p.atEnd() {
		c, pe, err := p.compound()
		if err != nil {
			return Selector{}, err
		}
		components = append(components, c)
		if pe != NoPseudoElement {
			components = append(components, pe)
			if !p.atEnd() {
				return Selector{}, malformed("pseudo-element ::%s must be last in %q", pe, p.src)
			}
			break
		}
		if p.atEnd() {
			break
		}
		comb, err := p.combinator()
		if err != nil {
			return Selector{}, err
		}
		components = append(components, comb)
		if p.atEnd() {
			return Selector{}, malformed("trailing combinator in %q", p.src)
		}
	}
	tracer().Debugf("parsed selector %q", p.src)
	return New(components...)
}

func (p *selParser) combinator() (Combinator, error) {
	space := p.skipSpace()
	t := p.peek()
	if t.tt == css.DelimToken {
		var comb Combinator
		switch t.data {
		case ">":
			comb = Child
		case "+":
			comb = AdjacentSibling
		case "~":
			comb = GeneralSibling
		}
		if comb != 0 {
			p.next()
			p.skipSpace()
			if d := p.peek(); d.tt == css.DelimToken && (d.data == ">" || d.data == "+" || d.data == "~") {
				return 0, malformed("doubled combinator in %q", p.src)
			}
			return comb, nil
		}
	}
	if space {
		return Descendant, nil
	}
	return 0, malformed("unexpected %q in %q", t.data, p.src)
}

// compound parses a compound selector, optionally followed by a pseudo-element.
func (p *selParser) compound() (Compound, PseudoElement, error) {
	var c Compound
	pe := NoPseudoElement
	for !p.atEnd() {
		t := p.peek()
		switch {
		case t.tt == css.IdentToken:
			if len(c) > 0 {
				return nil, pe, malformed("type selector %q must come first in %q", t.data, p.src)
			}
			p.next()
			c = append(c, Tag(t.data))
		case t.tt == css.DelimToken && t.data == "*":
			if len(c) > 0 {
				return nil, pe, malformed("universal selector must come first in %q", p.src)
			}
			p.next()
			c = append(c, Any())
		case t.tt == css.HashToken:
			p.next()
			c = append(c, ID(strings.TrimPrefix(t.data, "#")))
		case t.tt == css.DelimToken && t.data == ".":
			p.next()
			name := p.next()
			if name.tt != css.IdentToken {
				return nil, pe, malformed("expected class name after '.' in %q", p.src)
			}
			c = append(c, Class(name.data))
		case t.tt == css.LeftBracketToken:
			p.next()
			s, err := p.attribute()
			if err != nil {
				return nil, pe, err
			}
			c = append(c, s)
		case t.tt == css.ColonToken:
			p.next()
			if p.peek().tt == css.ColonToken {
				p.next()
				name := p.next()
				e, ok := PseudoElementByName(strings.ToLower(name.data))
				if name.tt != css.IdentToken || !ok {
					return nil, pe, malformed("unknown pseudo-element ::%s in %q", name.data, p.src)
				}
				return p.finishCompound(c, e)
			}
			s, e, err := p.pseudo()
			if err != nil {
				return nil, pe, err
			}
			if e != NoPseudoElement {
				return p.finishCompound(c, e)
			}
			c = append(c, s)
		default:
			if len(c) == 0 {
				return nil, pe, malformed("unexpected %q in %q", t.data, p.src)
			}
			return c, pe, nil
		}
	}
	return c, pe, nil
}

// finishCompound closes a compound at a pseudo-element. An implicit
// universal selector is inserted if nothing precedes it, as in `::before`.
func (p *selParser) finishCompound(c Compound, e PseudoElement) (Compound, PseudoElement, error) {
	if len(c) == 0 {
		c = Compound{Any()}
	}
	return c, e, nil
}

// legacy pseudo-elements may be written with a single colon.
var legacyPseudoElements = map[string]PseudoElement{
	"before": Before, "after": After, "first-line": FirstLine, "first-letter": FirstLetter,
}

func (p *selParser) pseudo() (Simple, PseudoElement, error) {
	t := p.next()
	switch t.tt {
	case css.IdentToken:
		name := strings.ToLower(t.data)
		if e, ok := legacyPseudoElements[name]; ok {
			return Simple{}, e, nil
		}
		ps, ok := PseudoByName(name)
		if !ok || ps.IsNth() {
			return Simple{}, NoPseudoElement, malformed("unsupported pseudo-class :%s in %q", t.data, p.src)
		}
		return Is(ps), NoPseudoElement, nil
	case css.FunctionToken:
		name := strings.ToLower(strings.TrimSuffix(t.data, "("))
		ps, ok := PseudoByName(name)
		if !ok || !ps.IsNth() {
			return Simple{}, NoPseudoElement, malformed("unsupported pseudo-class :%s() in %q", name, p.src)
		}
		var arg strings.Builder
		for {
			a := p.next()
			if a.tt == css.ErrorToken {
				return Simple{}, NoPseudoElement, malformed("unclosed :%s( in %q", name, p.src)
			}
			if a.tt == css.RightParenthesisToken {
				break
			}
			arg.WriteString(a.data)
		}
		nth, err := ParseNth(arg.String())
		if err != nil {
			return Simple{}, NoPseudoElement, err
		}
		return NthOf(ps, nth.A, nth.B), NoPseudoElement, nil
	}
	return Simple{}, NoPseudoElement, malformed("expected pseudo-class name in %q", p.src)
}

var attrOps = map[css.TokenType]AttrOp{
	css.IncludeMatchToken:   Includes,
	css.DashMatchToken:      DashMatch,
	css.PrefixMatchToken:    Prefix,
	css.SuffixMatchToken:    Suffix,
	css.SubstringMatchToken: Substring,
}

// attribute parses the inside of an attribute selector, after '['.
func (p *selParser) attribute() (Simple, error) {
	p.skipSpace()
	name := p.next()
	if name.tt != css.IdentToken {
		return Simple{}, malformed("expected attribute name in %q", p.src)
	}
	p.skipSpace()
	t := p.next()
	if t.tt == css.RightBracketToken {
		return Attr(name.data), nil
	}
	op, ok := attrOps[t.tt]
	if !ok {
		if t.tt != css.DelimToken || t.data != "=" {
			return Simple{}, malformed("unknown attribute operator %q in %q", t.data, p.src)
		}
		op = Equals
	}
	p.skipSpace()
	v := p.next()
	var value string
	switch v.tt {
	case css.IdentToken, css.NumberToken:
		value = v.data
	case css.StringToken:
		value = unquote(v.data)
	default:
		return Simple{}, malformed("expected attribute value in %q", p.src)
	}
	s := AttrValue(name.data, op, value)
	p.skipSpace()
	if f := p.peek(); f.tt == css.IdentToken && strings.EqualFold(f.data, "i") {
		p.next()
		s.Fold = true
		p.skipSpace()
	} else if f.tt == css.IdentToken && strings.EqualFold(f.data, "s") {
		p.next()
		p.skipSpace()
	}
	if p.next().tt != css.RightBracketToken {
		return Simple{}, malformed("unclosed attribute selector in %q", p.src)
	}
	return s, nil
}

func unquote(s string) string {
	if len(s) >= 2 && (s[0] == '"' || s[0] == '\'') && s[len(s)-1] == s[0] {
		s = s[1 : len(s)-1]
	}
	return strings.NewReplacer(`\"`, `"`, `\'`, `'`, `\\`, `\`).Replace(s)
}
