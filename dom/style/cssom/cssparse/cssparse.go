package cssparse

import (
	"bytes"
	"fmt"
	"io"
	"strings"
	"sync"
	"sync/atomic"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/kvcpers/apollo/dom/style/selector"
	"github.com/tdewolff/parse/v2"
	"github.com/tdewolff/parse/v2/css"
	"go.uber.org/multierr"
)

// ParseString parses CSS text into a style sheet.
func ParseString(s string) (*cssom.Sheet, error) {
	return Parse(strings.NewReader(s))
}

// Parse reads CSS from r and creates a style sheet. Rules with malformed
// selectors are left out; the returned error combines the reasons. A sheet
// is returned even if err is non-nil.
func Parse(r io.Reader) (*cssom.Sheet, error) {
	p := &sheetParser{
		p:      css.NewParser(parse.NewInput(r), false),
		sheet:  cssom.NewSheet(),
		layers: make(map[string]*cssom.Layer),
	}
	p.run()
	ranks := cssom.RankLayers(p.sheet.Layers())
	for name, l := range p.layers {
		l.Order = ranks[name]
	}
	tracer().Debugf("parsed style sheet with %d rules", len(p.sheet.Rules()))
	return p.sheet, p.errs
}

// ParseDeclarations parses a declaration list, as found in a style
// attribute, e.g. `color: red; margin: 0 !important`. Invalid declarations
// are skipped.
func ParseDeclarations(s string) []cssom.Declaration {
	p := css.NewParser(parse.NewInputString(s), true)
	var decls []cssom.Declaration
	for {
		gt, _, data := p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := p.Err(); err != nil && err != io.EOF {
				tracer().Debugf("declaration list %q: %v", s, err)
			}
			return decls
		case css.DeclarationGrammar:
			if value, important := declarationValue(p.Values()); value != "" {
				decls = append(decls, cssom.Declaration{
					Property:  style.NormalizeKey(string(data)),
					Value:     style.Property(value),
					Important: important,
				})
			}
		}
	}
}

// blockKind is the kind of an open at-rule block.
type blockKind uint8

const (
	mediaBlock blockKind = iota
	layerBlock
	skippedBlock
)

type block struct {
	kind  blockKind
	media *media.QueryList
	layer string // full layer name for layer blocks
}

type sheetParser struct {
	p       *css.Parser
	sheet   *cssom.Sheet
	layers  map[string]*cssom.Layer
	blocks  []block
	skipped int         // number of open skipped blocks
	rule    *cssom.Rule // rule under construction
	drop    bool        // current rule has a malformed selector
	errs    error
}

func (sp *sheetParser) run() {
	for {
		gt, _, data := sp.p.Next()
		switch gt {
		case css.ErrorGrammar:
			if err := sp.p.Err(); err != nil && err != io.EOF {
				sp.errs = multierr.Append(sp.errs, fmt.Errorf("css syntax: %w", err))
			}
			return
		case css.BeginAtRuleGrammar:
			sp.beginAtRule(strings.ToLower(string(data)), sp.p.Values())
		case css.EndAtRuleGrammar:
			sp.endAtRule()
		case css.AtRuleGrammar:
			sp.atRuleStatement(strings.ToLower(string(data)), sp.p.Values())
		case css.BeginRulesetGrammar:
			sp.beginRuleset(data, sp.p.Values())
		case css.DeclarationGrammar:
			sp.declaration(string(data), sp.p.Values())
		case css.CustomPropertyGrammar:
			tracer().Debugf("custom property %s ignored", data)
		case css.EndRulesetGrammar:
			sp.endRuleset()
		case css.QualifiedRuleGrammar:
			// part of a selector list in a prelude, ignore
		}
	}
}

func (sp *sheetParser) beginAtRule(name string, prelude []css.Token) {
	if sp.skipped > 0 {
		sp.blocks = append(sp.blocks, block{kind: skippedBlock})
		sp.skipped++
		return
	}
	switch name {
	case "@media":
		ql := media.Parse(tokenText(prelude))
		sp.blocks = append(sp.blocks, block{kind: mediaBlock, media: &ql})
	case "@layer":
		name := sp.qualifiedLayer(strings.TrimSpace(tokenText(prelude)))
		sp.declareLayer(name)
		sp.blocks = append(sp.blocks, block{kind: layerBlock, layer: name})
	default:
		tracer().Debugf("skipping at-rule %s", name)
		sp.blocks = append(sp.blocks, block{kind: skippedBlock})
		sp.skipped++
	}
}

func (sp *sheetParser) endAtRule() {
	if len(sp.blocks) == 0 {
		return
	}
	b := sp.blocks[len(sp.blocks)-1]
	sp.blocks = sp.blocks[:len(sp.blocks)-1]
	if b.kind == skippedBlock {
		sp.skipped--
	}
}

// atRuleStatement handles at-rules without a block, like `@layer a, b;`
// or `@import`.
func (sp *sheetParser) atRuleStatement(name string, prelude []css.Token) {
	if sp.skipped > 0 {
		return
	}
	if name != "@layer" {
		tracer().Debugf("ignoring at-rule %s", name)
		return
	}
	for _, l := range strings.Split(tokenText(prelude), ",") {
		if l = strings.TrimSpace(l); l != "" {
			sp.declareLayer(sp.qualifiedLayer(l))
		}
	}
}

var anonymousLayers int64

// qualifiedLayer returns the full name of a layer declared in the current
// layer context. Anonymous layers get a unique name.
func (sp *sheetParser) qualifiedLayer(name string) string {
	if name == "" {
		name = fmt.Sprintf("<anonymous-%d>", atomic.AddInt64(&anonymousLayers, 1))
	}
	if parent := sp.currentLayer(); parent != "" {
		return parent + "." + name
	}
	return name
}

func (sp *sheetParser) currentLayer() string {
	for i := len(sp.blocks) - 1; i >= 0; i-- {
		if sp.blocks[i].kind == layerBlock {
			return sp.blocks[i].layer
		}
	}
	return ""
}

func (sp *sheetParser) declareLayer(name string) *cssom.Layer {
	if l, ok := sp.layers[name]; ok {
		return l
	}
	sp.sheet.DeclareLayer(name)
	l := &cssom.Layer{Name: name}
	sp.layers[name] = l
	return l
}

func (sp *sheetParser) beginRuleset(data []byte, values []css.Token) {
	sp.rule, sp.drop = nil, false
	if sp.skipped > 0 {
		sp.drop = true
		return
	}
	var b bytes.Buffer
	b.Write(bytes.TrimSuffix(data, []byte("{")))
	for _, v := range values {
		b.Write(v.Data)
	}
	prelude := strings.TrimSpace(b.String())
	list, err := selector.ParseList(prelude)
	if err != nil {
		sp.errs = multierr.Append(sp.errs, fmt.Errorf("rule %q dropped: %w", prelude, err))
		sp.drop = true
		return
	}
	sp.rule = &cssom.Rule{Selectors: list}
	for _, blk := range sp.blocks {
		if blk.kind == mediaBlock {
			sp.rule.Media = append(sp.rule.Media, blk.media)
		}
	}
	if l := sp.currentLayer(); l != "" {
		sp.rule.Layer = sp.layers[l]
	}
}

func (sp *sheetParser) declaration(property string, values []css.Token) {
	if sp.rule == nil || sp.drop {
		return
	}
	value, important := declarationValue(values)
	if value == "" {
		return
	}
	sp.rule.Declarations = append(sp.rule.Declarations, cssom.Declaration{
		Property:  style.NormalizeKey(property),
		Value:     style.Property(value),
		Important: important,
	})
}

func (sp *sheetParser) endRuleset() {
	if sp.rule != nil && !sp.drop {
		sp.sheet.AddRule(sp.rule)
	}
	sp.rule, sp.drop = nil, false
}

// declarationValue concatenates the value tokens of a declaration and strips
// a trailing `!important`.
func declarationValue(values []css.Token) (string, bool) {
	end := len(values)
	skipWS := func() {
		for end > 0 && values[end-1].TokenType == css.WhitespaceToken {
			end--
		}
	}
	important := false
	skipWS()
	if end > 0 && values[end-1].TokenType == css.IdentToken &&
		strings.EqualFold(string(values[end-1].Data), "important") {
		i := end - 1
		for i > 0 && values[i-1].TokenType == css.WhitespaceToken {
			i--
		}
		if i > 0 && values[i-1].TokenType == css.DelimToken && string(values[i-1].Data) == "!" {
			important = true
			end = i - 1
			skipWS()
		}
	}
	return strings.TrimSpace(tokenText(values[:end])), important
}

// tokenText concatenates tokens, collapsing whitespace.
func tokenText(toks []css.Token) string {
	var b strings.Builder
	space := false
	for _, t := range toks {
		if t.TokenType == css.WhitespaceToken || t.TokenType == css.CommentToken {
			space = b.Len() > 0
			continue
		}
		if space {
			b.WriteByte(' ')
			space = false
		}
		b.Write(t.Data)
	}
	return b.String()
}

// --- User agent style sheet ------------------------------------------------

var uaSheet struct {
	once  sync.Once
	sheet *cssom.Sheet
}

// UserAgent returns the built-in user agent style sheet, see
// style.UserAgentCSS. The sheet is shared and must not be modified.
func UserAgent() *cssom.Sheet {
	uaSheet.once.Do(func() {
		sheet, err := ParseString(style.UserAgentCSS())
		if err != nil {
			tracer().Errorf("user agent style sheet: %v", err)
		}
		uaSheet.sheet = sheet
	})
	return uaSheet.sheet
}
