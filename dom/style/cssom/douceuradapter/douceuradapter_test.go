package douceuradapter

import (
	"strings"
	"testing"

	"github.com/aymerick/douceur/css"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/net/html"
)

func TestParseAndWrap(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	styles, err := Parse(`
	p, li.x { margin-top: 15px; color: red !important }
	@media print { h1 { color: black } }
	`)
	require.NoError(t, err)
	require.NotNil(t, styles.Stylesheet())
	rules := styles.Rules()
	require.Len(t, rules, 2)
	assert.Equal(t, "p, li.x", rules[0].Selector())
	assert.Equal(t, []cssom.Declaration{
		{Property: "margin-top", Value: "15px"},
		{Property: "color", Value: "red", Important: true},
	}, rules[0].Declarations)
	require.Len(t, rules[1].Media, 1)
	assert.False(t, rules[1].Media[0].Matches(media.DefaultEnvironment()))
	//
	var sheet cssom.StyleSheet = styles
	assert.False(t, sheet.Empty())
	other, err := Parse("div { color: blue }")
	require.NoError(t, err)
	sheet.AppendRules(other)
	assert.Len(t, sheet.Rules(), 3)
}

func qualified(sel string, prop, val string) *css.Rule {
	r := css.NewRule(css.QualifiedRule)
	r.Prelude, r.Selectors = sel, []string{sel}
	r.Declarations = []*css.Declaration{{Property: prop, Value: val}}
	return r
}

func layerBlock(prelude string, rules ...*css.Rule) *css.Rule {
	r := css.NewRule(css.AtRule)
	r.Name, r.Prelude, r.Rules = "@layer", prelude, rules
	return r
}

func TestWrapLayers(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	sheet := css.NewStylesheet()
	sheet.Rules = []*css.Rule{
		layerBlock("base, theme"),
		layerBlock("theme", qualified("p", "color", "red")),
		layerBlock("base",
			qualified("p", "color", "blue"),
			layerBlock("inner", qualified("p", "color", "green"))),
		qualified("p", "color", "black"),
	}
	styles := Wrap(sheet)
	require.NoError(t, styles.Err())
	assert.Equal(t, []string{"base", "theme", "base.inner"}, styles.Layers())
	rules := styles.Rules()
	require.Len(t, rules, 4)
	order := make(map[string]int)
	for _, r := range rules[:3] {
		require.NotNil(t, r.Layer)
		order[r.Layer.Name] = r.Layer.Order
	}
	assert.Equal(t, map[string]int{"base.inner": 0, "base": 1, "theme": 2}, order)
	assert.Nil(t, rules[3].Layer)
}

func TestWrapDropsMalformed(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	styles, err := Parse("p { color: red } a:bogus { color: blue }")
	assert.Error(t, err)
	require.NotNil(t, styles)
	assert.Len(t, styles.Rules(), 1)
	assert.Equal(t, err, styles.Err())
}

func TestExtractStyleElements(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.cssom")
	defer teardown()
	//
	h, err := html.Parse(strings.NewReader(`<html><head>
	<style>p { color: red }</style></head>
	<body><style>h1 { color: blue } h2 { color: green }</style><style></style><p>x</p></body></html>`))
	require.NoError(t, err)
	sheets, err := ExtractStyleElements(h)
	require.NoError(t, err)
	require.Len(t, sheets, 3)
	assert.Len(t, sheets[0].Rules(), 1)
	assert.Len(t, sheets[1].Rules(), 2)
	assert.True(t, sheets[2].Empty())
}
