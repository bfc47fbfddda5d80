package media

import (
	"strings"

	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
)

type token struct {
	tt   css.TokenType
	data string
}

// Parse parses a media query list, e.g. the prelude of an @media rule.
// Parsing is lenient: a query which cannot be parsed is kept as an invalid
// query, which never matches. The empty string yields an empty list, which
// matches every environment.
func Parse(text string) QueryList {
	l := css.NewLexer(parse.NewInputString(text))
	var groups [][]token
	var cur []token
	depth := 0
	for {
		tt, data := l.Next()
		if tt == css.ErrorToken {
			break
		}
		switch tt {
		case css.WhitespaceToken, css.CommentToken:
			continue
		case css.LeftParenthesisToken, css.FunctionToken:
			depth++
		case css.RightParenthesisToken:
			depth--
		case css.CommaToken:
			if depth == 0 {
				groups = append(groups, cur)
				cur = nil
				continue
			}
		}
		cur = append(cur, token{tt, string(data)})
	}
	if len(groups) == 0 && len(cur) == 0 {
		return QueryList{}
	}
	groups = append(groups, cur)
	ql := make(QueryList, 0, len(groups))
	for _, g := range groups {
		q, ok := parseQuery(g)
		if !ok {
			tracer().Debugf("media: cannot parse query in %q", text)
			q = Invalid()
		}
		ql = append(ql, q)
	}
	return ql
}

func isIdent(t token, name string) bool {
	return t.tt == css.IdentToken && strings.EqualFold(t.data, name)
}

func parseQuery(toks []token) (Query, bool) {
	var q Query
	if len(toks) == 0 {
		return q, false
	}
	i := 0
	if isIdent(toks[i], "not") {
		q.Not = true
		i++
	} else if isIdent(toks[i], "only") {
		q.Only = true
		i++
	}
	if i < len(toks) && toks[i].tt == css.IdentToken {
		t := strings.ToLower(toks[i].data)
		if t == "and" || t == "or" || t == "not" || t == "only" {
			return q, false
		}
		q.Type = t
		i++
	} else if q.Only {
		return q, false // `only` requires a media type
	}
	first := q.Type == ""
	for i < len(toks) {
		if !first {
			if !isIdent(toks[i], "and") {
				return q, false
			}
			i++
		}
		first = false
		if i >= len(toks) || toks[i].tt != css.LeftParenthesisToken {
			return q, false
		}
		j := i + 1
		for j < len(toks) && toks[j].tt != css.RightParenthesisToken {
			j++
		}
		if j >= len(toks) {
			return q, false
		}
		features, ok := parseFeature(toks[i+1 : j])
		if !ok {
			return q, false
		}
		q.Features = append(q.Features, features...)
		i = j + 1
	}
	if q.Type == "" && len(q.Features) == 0 {
		return q, false
	}
	return q, true
}

// parseFeature parses the inside of a parenthesized feature test. Range
// syntax may yield two tests, as in `(400px <= width < 800px)`.
func parseFeature(toks []token) ([]Feature, bool) {
	if len(toks) == 0 {
		return nil, false
	}
	if toks[0].tt == css.IdentToken && (len(toks) == 1 || toks[1].tt == css.ColonToken) {
		name := strings.ToLower(toks[0].data)
		if len(toks) == 1 {
			return []Feature{{Name: name, Cmp: Boolean}}, true
		}
		value := joinTokens(toks[2:])
		if value == "" {
			return nil, false
		}
		cmp := Equal
		if strings.HasPrefix(name, "min-") {
			name, cmp = name[4:], AtLeast
		} else if strings.HasPrefix(name, "max-") {
			name, cmp = name[4:], AtMost
		}
		return []Feature{{Name: name, Cmp: cmp, Value: value}}, true
	}
	return parseRange(toks)
}

// parseRange parses Media Queries Level 4 range syntax:
//
//     name op value | value op name | value op name op value
func parseRange(toks []token) ([]Feature, bool) {
	var operands []string
	var ops []Comparison
	var cur []token
	for i := 0; i < len(toks); i++ {
		t := toks[i]
		if t.tt == css.DelimToken && (t.data == "<" || t.data == ">" || t.data == "=") {
			if len(cur) == 0 {
				return nil, false
			}
			operands = append(operands, joinTokens(cur))
			cur = nil
			op := Equal
			switch t.data {
			case "<":
				op = Less
			case ">":
				op = Greater
			}
			if t.data != "=" && i+1 < len(toks) && toks[i+1].tt == css.DelimToken && toks[i+1].data == "=" {
				i++
				if op == Less {
					op = AtMost
				} else {
					op = AtLeast
				}
			}
			ops = append(ops, op)
			continue
		}
		cur = append(cur, t)
	}
	if len(cur) == 0 {
		return nil, false
	}
	operands = append(operands, joinTokens(cur))
	switch len(ops) {
	case 1:
		if IsKnownFeature(strings.ToLower(operands[0])) || !looksLikeValue(operands[0]) {
			return []Feature{{Name: strings.ToLower(operands[0]), Cmp: ops[0], Value: operands[1]}}, true
		}
		return []Feature{{Name: strings.ToLower(operands[1]), Cmp: flip(ops[0]), Value: operands[0]}}, true
	case 2:
		if !sameDirection(ops[0], ops[1]) {
			return nil, false
		}
		name := strings.ToLower(operands[1])
		return []Feature{
			{Name: name, Cmp: flip(ops[0]), Value: operands[0]},
			{Name: name, Cmp: ops[1], Value: operands[2]},
		}, true
	}
	return nil, false
}

// flip mirrors a comparison, turning `value < name` into `name > value`.
func flip(c Comparison) Comparison {
	switch c {
	case AtLeast:
		return AtMost
	case AtMost:
		return AtLeast
	case Greater:
		return Less
	case Less:
		return Greater
	}
	return c
}

func sameDirection(a, b Comparison) bool {
	lower := func(c Comparison) bool { return c == Less || c == AtMost }
	upper := func(c Comparison) bool { return c == Greater || c == AtLeast }
	return (lower(a) && lower(b)) || (upper(a) && upper(b))
}

func looksLikeValue(s string) bool {
	return s != "" && (s[0] >= '0' && s[0] <= '9' || s[0] == '.' || s[0] == '-' || s[0] == '+')
}

func joinTokens(toks []token) string {
	var b strings.Builder
	for _, t := range toks {
		b.WriteString(t.data)
	}
	return b.String()
}
