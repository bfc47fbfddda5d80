package cssparse

import (
	"errors"
	"testing"

	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/kvcpers/apollo/dom/style/selector"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseRules(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	sheet, err := ParseString(`
	/* comment */
	ul > li.x, p { margin: 0 auto; COLOR: Red !important }
	a:hover { text-decoration: underline }
	`)
	require.NoError(t, err)
	rules := sheet.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "ul > li.x, p", rules[0].Selector())
	assert.Equal(t, []string{"margin", "color"}, rules[0].Properties())
	assert.Equal(t, []cssom.Declaration{
		{Property: "margin", Value: "0 auto"},
		{Property: "color", Value: "Red", Important: true},
	}, rules[0].Declarations)
	assert.Nil(t, rules[1].Layer)
	assert.Empty(t, rules[1].Media)
}

func TestParseMediaAndLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	sheet, err := ParseString(`
	@layer reset, base;
	@media screen and (min-width: 600px) {
		p { color: red }
		@media print { h1 { color: blue } }
		div { color: green }
	}
	@layer base {
		p { margin-top: 1em }
		@layer inner { em { font-style: normal } }
	}
	@layer { span { color: gray } }
	@font-face { font-family: X; src: url(x.woff) }
	@keyframes spin { from { color: red } to { color: blue } }
	h2 { color: black }
	`)
	require.NoError(t, err)
	rules := sheet.Rules()
	require.Len(t, rules, 7)
	p, h1, div := rules[0], rules[1], rules[2]
	require.Len(t, p.Media, 1)
	require.Len(t, h1.Media, 2)
	assert.Same(t, p.Media[0], div.Media[0], "rules of one block share the query list")
	env := media.DefaultEnvironment()
	assert.True(t, p.Media[0].Matches(env))
	assert.False(t, h1.Media[0].Matches(env) && h1.Media[1].Matches(env))
	assert.Nil(t, p.Layer)
	//
	base := rules[3]
	assert.Equal(t, "p", base.Selector())
	require.NotNil(t, base.Layer)
	assert.Equal(t, "base", base.Layer.Name)
	assert.Equal(t, 2, base.Layer.Order, "base ranks above its sublayer")
	assert.Empty(t, base.Media)
	inner := rules[4]
	require.NotNil(t, inner.Layer)
	assert.Equal(t, "base.inner", inner.Layer.Name)
	assert.Equal(t, 1, inner.Layer.Order)
	anon := rules[5]
	require.NotNil(t, anon.Layer)
	assert.NotEqual(t, "", anon.Layer.Name)
	assert.Equal(t, "h2", rules[6].Selector())
	assert.Nil(t, rules[6].Layer)
	assert.Equal(t, []string{"reset", "base", "base.inner", anon.Layer.Name}, sheet.Layers())
}

func TestParseDropsMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	sheet, err := ParseString(`
	p { color: red }
	ul >, li { color: blue }
	a:frobnicate { color: green }
	h1 { color: black }
	`)
	require.Error(t, err)
	assert.True(t, errors.Is(err, selector.ErrMalformed), "expected ErrMalformed, is %v", err)
	require.Len(t, sheet.Rules(), 2)
	assert.Equal(t, "p", sheet.Rules()[0].Selector())
	assert.Equal(t, "h1", sheet.Rules()[1].Selector())
}

func TestUserAgentSheet(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	ua := UserAgent()
	require.NotNil(t, ua)
	assert.False(t, ua.Empty())
	assert.Same(t, ua, UserAgent())
	found := false
	for _, r := range ua.Rules() {
		if r.Selector() != "h1" {
			continue
		}
		for _, d := range r.Declarations {
			if d.Property == "font-size" && d.Value == "2em" {
				found = true
			}
		}
	}
	assert.True(t, found, "expected UA sheet to contain h1 { font-size: 2em }")
}

func TestParseDeclarations(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	decls := ParseDeclarations("Color: red;  margin: 0 auto !important; ; padding:")
	require.Len(t, decls, 2)
	assert.Equal(t, "color", decls[0].Property)
	assert.Equal(t, style.Property("red"), decls[0].Value)
	assert.False(t, decls[0].Important)
	assert.Equal(t, "margin", decls[1].Property)
	assert.Equal(t, style.Property("0 auto"), decls[1].Value)
	assert.True(t, decls[1].Important)
	assert.Empty(t, ParseDeclarations(""))
}
