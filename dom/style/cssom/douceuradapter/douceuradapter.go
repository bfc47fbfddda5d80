/*
Package douceuradapter is a concrete implementation of interface cssom.StyleSheet,
based on the CSS parser of github.com/aymerick/douceur.

Rules nested in @media blocks are flattened into the sheet and carry the
block's media query list, as do rules nested in @layer blocks with their
layer. Other at-rules are ignored.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package douceuradapter

import (
	"fmt"
	"strings"

	"github.com/aymerick/douceur/css"
	"github.com/aymerick/douceur/parser"
	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/npillmayer/schuko/tracing"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// tracer traces with key 'apollo.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.cssom")
}

// CSSStyles is an adapter for interface cssom.StyleSheet.
// For an explanation of the motivation behind this design, please refer
// to documentation for interface cssom.StyleSheet.
type CSSStyles struct {
	css    *css.Stylesheet
	rules  []*cssom.Rule
	layers []string
	err    error
}

// Wrap a douceur.css.Stylesheet into CSSStyles.
// The stylesheet is now managed by the wrapper. Rules which cannot be
// converted are dropped and reported by Err.
func Wrap(sheet *css.Stylesheet) *CSSStyles {
	styles := &CSSStyles{css: sheet}
	if sheet == nil {
		return styles
	}
	styles.convert(sheet.Rules, nil, "")
	ranks := cssom.RankLayers(styles.layers)
	for _, r := range styles.rules {
		if r.Layer != nil {
			r.Layer.Order = ranks[r.Layer.Name]
		}
	}
	return styles
}

// Parse parses CSS text with douceur and wraps the result.
func Parse(text string) (*CSSStyles, error) {
	sheet, err := parser.Parse(text)
	if err != nil {
		return nil, fmt.Errorf("douceur: %w", err)
	}
	styles := Wrap(sheet)
	return styles, styles.Err()
}

// Err returns the combined errors for rules which could not be converted.
func (sheet *CSSStyles) Err() error {
	return sheet.err
}

// Stylesheet returns the wrapped douceur stylesheet.
func (sheet *CSSStyles) Stylesheet() *css.Stylesheet {
	return sheet.css
}

func (sheet *CSSStyles) convert(rules []*css.Rule, mq []*media.QueryList, layer string) {
	for _, r := range rules {
		switch r.Kind {
		case css.QualifiedRule:
			sheet.convertQualified(r, mq, layer)
		case css.AtRule:
			switch strings.ToLower(r.Name) {
			case "@media":
				ql := media.Parse(r.Prelude)
				nested := append(append([]*media.QueryList(nil), mq...), &ql)
				sheet.convert(r.Rules, nested, layer)
			case "@layer":
				// douceur embeds rules for @media-like blocks only; a layer
				// statement lists names
				for _, name := range strings.Split(r.Prelude, ",") {
					name = strings.TrimSpace(name)
					if name == "" {
						continue
					}
					if layer != "" {
						name = layer + "." + name
					}
					sheet.declareLayer(name)
					if len(r.Rules) > 0 {
						sheet.convert(r.Rules, mq, name)
					}
				}
			default:
				tracer().Debugf("douceur: ignoring at-rule %s", r.Name)
			}
		}
	}
}

func (sheet *CSSStyles) convertQualified(r *css.Rule, mq []*media.QueryList, layer string) {
	decls := make([]cssom.Declaration, 0, len(r.Declarations))
	for _, d := range r.Declarations {
		decls = append(decls, cssom.Declaration{
			Property:  d.Property,
			Value:     style.Property(strings.TrimSpace(d.Value)),
			Important: d.Important,
		})
	}
	prelude := r.Prelude
	if len(r.Selectors) > 0 {
		prelude = strings.Join(r.Selectors, ", ")
	}
	rule, err := cssom.NewRule(prelude, decls...)
	if err != nil {
		sheet.err = multierr.Append(sheet.err, err)
		return
	}
	rule.Media = mq
	if layer != "" {
		sheet.declareLayer(layer)
		rule.Layer = &cssom.Layer{Name: layer}
	}
	sheet.rules = append(sheet.rules, rule)
}

func (sheet *CSSStyles) declareLayer(name string) int {
	for i, l := range sheet.layers {
		if l == name {
			return i
		}
	}
	sheet.layers = append(sheet.layers, name)
	return len(sheet.layers) - 1
}

// Empty checks if this stylesheet contains any rules.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Empty() bool {
	return len(sheet.rules) == 0
}

// AppendRules appends rules from another stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) AppendRules(other cssom.StyleSheet) {
	if other == nil {
		return
	}
	if ls, ok := other.(cssom.LayeredSheet); ok {
		for _, l := range ls.Layers() {
			sheet.declareLayer(l)
		}
	}
	sheet.rules = append(sheet.rules, other.Rules()...)
}

// Rules returns all the rules of a stylesheet.
//
// Interface cssom.StyleSheet
func (sheet *CSSStyles) Rules() []*cssom.Rule {
	return sheet.rules
}

// Layers returns the cascade layers in order of declaration.
//
// Interface cssom.LayeredSheet
func (sheet *CSSStyles) Layers() []string {
	return sheet.layers
}

var _ cssom.LayeredSheet = &CSSStyles{}

// ExtractStyleElements visits an HTML parse tree in document order and
// searches for embedded <style>s. It returns the content of style-elements
// as style sheets. Style elements which fail to parse are skipped and
// reported in the returned error.
func ExtractStyleElements(htmldoc *html.Node) ([]*CSSStyles, error) {
	var sheets []*CSSStyles
	var errs error
	var walk func(*html.Node)
	walk = func(h *html.Node) {
		if h.Type == html.ElementNode && h.DataAtom == atom.Style {
			var text strings.Builder
			for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
				if ch.Type == html.TextNode {
					text.WriteString(ch.Data)
				}
			}
			s, err := Parse(text.String())
			errs = multierr.Append(errs, err)
			if s != nil {
				sheets = append(sheets, s)
			}
			return
		}
		for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
			walk(ch)
		}
	}
	if htmldoc != nil {
		walk(htmldoc)
	}
	return sheets, errs
}
