package resolver

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/kvcpers/apollo/dom"
	"github.com/kvcpers/apollo/dom/style"
	"github.com/kvcpers/apollo/dom/style/computed"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/cssom/cssparse"
	"github.com/kvcpers/apollo/dom/style/media"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func parseHTML(t *testing.T, s string) (*dom.Document, dom.NodeID) {
	h, err := html.Parse(strings.NewReader(s))
	require.NoError(t, err)
	doc, root := dom.FromHTML(h)
	require.NotEqual(t, dom.NoNode, root)
	return doc, root
}

func byID(doc *dom.Document, id string) dom.NodeID {
	for i := 0; i < doc.Len(); i++ {
		if v, ok := doc.Attr(dom.NodeID(i), "id"); ok && v == id {
			return dom.NodeID(i)
		}
	}
	return dom.NoNode
}

func sheet(t *testing.T, text string) *cssom.Sheet {
	s, err := cssparse.ParseString(text)
	require.NoError(t, err)
	return s
}

func authorSheets(t *testing.T, text string) *cssom.Sheets {
	return (&cssom.Sheets{}).Add(cssom.Author, sheet(t, text))
}

func value(t *testing.T, store *computed.Store, id dom.NodeID, key string) style.Property {
	t.Helper()
	s, ok := GetComputedStyle(store, id)
	require.True(t, ok, "expected node %d to be styled", id)
	return s.Get(key)
}

// snapshot converts a store into plain maps, for comparison with cmp.
func snapshot(store *computed.Store) map[dom.NodeID]map[string]style.Property {
	m := make(map[dom.NodeID]map[string]style.Property, store.Len())
	store.Each(func(id dom.NodeID, s *computed.Style) {
		m[id] = s.Map()
	})
	return m
}

const page = `<html><body>
<div id="outer" class="box">
  <h1 id="title">Title</h1>
  <p id="p1" class="note">one</p>
  <ul id="list"><li id="li1">a</li><li id="li2" class="x">b <span id="deep">c</span></li></ul>
  <p id="p2">two</p>
</div>
</body></html>`

const pageCSS = `
div.box { font-size: 20px; margin: 0 1em }
.note { color: green }
#p1 { color: red }
p { color: gray; padding: 2px 4px }
ul > li { margin-left: 1em }
h1 ~ p { text-indent: 3px }
li.x span { font-weight: bold }
@media (min-width: 600px) { p { border: 1px solid black } }
@media print, (min-width: 1000px) { p { letter-spacing: 2px } }
`

func TestDeterminism(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, page)
	sheets := authorSheets(t, pageCSS)
	env := media.DefaultEnvironment()
	first, err := Resolve(doc, root, sheets, env)
	require.NoError(t, err)
	second, err := Resolve(doc, root, sheets, env)
	require.NoError(t, err)
	if diff := cmp.Diff(snapshot(first), snapshot(second)); diff != "" {
		t.Errorf("expected identical stores, diff (-first +second):\n%s", diff)
	}
	assert.NotSame(t, first, second, "every pass returns a fresh store")
	assert.Equal(t, first.String(), second.String())
}

func TestTotality(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, page)
	store, err := Resolve(doc, root, authorSheets(t, pageCSS), media.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, doc.Len(), store.Len(), "every node is styled")
	assert.ErrorIs(t, store.Put(root, computed.NewStyle()), computed.ErrFrozen, "store is frozen")
	store.Each(func(id dom.NodeID, s *computed.Style) {
		if s.Len() != style.Count() {
			t.Errorf("%s: expected %d properties, is %d", doc.String(id), style.Count(), s.Len())
		}
	})
	_, ok := GetComputedStyle(store, dom.NodeID(doc.Len()+5))
	assert.False(t, ok)
}

func TestSpecificityAndSourceOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, page)
	store, err := Resolve(doc, root, authorSheets(t, pageCSS), media.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), value(t, store, byID(doc, "p1"), "color"), "id beats class and type")
	assert.Equal(t, style.Property("gray"), value(t, store, byID(doc, "p2"), "color"))
	assert.Equal(t, style.Property("4px"), value(t, store, byID(doc, "p2"), "padding-left"))
	//
	doc, root = parseHTML(t, `<p id="a" class="c">x</p>`)
	store, err = Resolve(doc, root, authorSheets(t, `.c { color: red } .c { color: blue }`), media.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, style.Property("blue"), value(t, store, byID(doc, "a"), "color"), "later rule wins")
	order := (&cssom.Sheets{}).Add(cssom.Author, sheet(t, `p { color: red }`), sheet(t, `p { color: olive }`))
	store, err = Resolve(doc, root, order, media.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, style.Property("olive"), value(t, store, byID(doc, "a"), "color"), "later sheet wins")
}

func TestOriginAndImportance(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<p id="a">x</p>`)
	p := byID(doc, "a")
	ua := sheet(t, `p { color: gray; margin-top: 1px !important; padding-top: 1px }`)
	user := sheet(t, `p { color: green; margin-top: 2px; padding-top: 2px !important; border-top-style: dotted }`)
	author := sheet(t, `#a { color: blue; margin-top: 3px !important; padding-top: 3px !important; border-top-style: dashed !important }`)
	tests := []struct {
		sheets *cssom.Sheets
		key    string
		want   style.Property
	}{
		{(&cssom.Sheets{}).Add(cssom.UserAgent, ua), "color", "gray"},
		{(&cssom.Sheets{}).Add(cssom.UserAgent, ua).Add(cssom.User, user), "color", "green"},
		{(&cssom.Sheets{}).Add(cssom.UserAgent, ua).Add(cssom.User, user).Add(cssom.Author, author), "color", "blue"},
		// user agent importance is not elevated
		{(&cssom.Sheets{}).Add(cssom.UserAgent, ua).Add(cssom.User, user), "margin-top", "2px"},
		{(&cssom.Sheets{}).Add(cssom.UserAgent, ua).Add(cssom.Author, author), "margin-top", "3px"},
		// user !important beats author !important
		{(&cssom.Sheets{}).Add(cssom.User, user).Add(cssom.Author, author), "padding-top", "2px"},
		// author !important beats normal user declarations
		{(&cssom.Sheets{}).Add(cssom.User, user).Add(cssom.Author, author), "border-top-style", "dashed"},
	}
	for i, tt := range tests {
		store, err := Resolve(doc, root, tt.sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
		require.NoError(t, err)
		if v := value(t, store, p, tt.key); v != tt.want {
			t.Errorf("test %d: %s: expected %q, is %q", i, tt.key, tt.want, v)
		}
	}
}

func TestInheritanceOfResolvedSizes(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<div id="d"><p id="p"><span id="s">x</span></p></div>`)
	sheets := authorSheets(t, `div { font-size: 20px } p { font-size: 150%; margin-top: 1rem } span { padding-left: 1em }`)
	store, err := Resolve(doc, root, sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	assert.Equal(t, style.Property("20px"), value(t, store, byID(doc, "d"), "font-size"))
	assert.Equal(t, style.Property("30px"), value(t, store, byID(doc, "p"), "font-size"))
	assert.Equal(t, style.Property("16px"), value(t, store, byID(doc, "p"), "margin-top"))
	assert.Equal(t, style.Property("30px"), value(t, store, byID(doc, "s"), "font-size"))
	assert.Equal(t, style.Property("30px"), value(t, store, byID(doc, "s"), "padding-left"))
	text := doc.Children(byID(doc, "s"))[0]
	assert.Equal(t, style.Property("30px"), value(t, store, text, "font-size"), "text nodes inherit")
}

func TestCombinators(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, page)
	store, err := Resolve(doc, root, authorSheets(t, pageCSS), media.DefaultEnvironment())
	require.NoError(t, err)
	// div.box is 20px, so 1em is 20px for the list items
	assert.Equal(t, style.Property("20px"), value(t, store, byID(doc, "li1"), "margin-left"))
	assert.Equal(t, style.Property("20px"), value(t, store, byID(doc, "li2"), "margin-left"))
	assert.Equal(t, style.Property("0px"), value(t, store, byID(doc, "deep"), "margin-left"))
	assert.Equal(t, style.Property("3px"), value(t, store, byID(doc, "p1"), "text-indent"))
	assert.Equal(t, style.Property("3px"), value(t, store, byID(doc, "p2"), "text-indent"))
	assert.Equal(t, style.Property("0px"), value(t, store, byID(doc, "title"), "text-indent"))
	assert.Equal(t, style.Property("700"), value(t, store, byID(doc, "deep"), "font-weight"))
	assert.Equal(t, style.Property("20px"), value(t, store, byID(doc, "outer"), "margin-left"))
}

func TestMediaGating(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, page)
	env := media.DefaultEnvironment()
	env.Width = 800
	store, err := Resolve(doc, root, authorSheets(t, pageCSS), env)
	require.NoError(t, err)
	p1 := byID(doc, "p1")
	assert.Equal(t, style.Property("solid"), value(t, store, p1, "border-top-style"))
	assert.Equal(t, style.Property("1px"), value(t, store, p1, "border-top-width"))
	assert.Equal(t, style.Property("normal"), value(t, store, p1, "letter-spacing"))
	//
	env.Width = 500
	store, err = Resolve(doc, root, authorSheets(t, pageCSS), env)
	require.NoError(t, err)
	assert.Equal(t, style.Property("none"), value(t, store, p1, "border-top-style"))
	assert.Equal(t, style.Property("0px"), value(t, store, p1, "border-top-width"))
	env.Type = "print"
	store, err = Resolve(doc, root, authorSheets(t, pageCSS), env)
	require.NoError(t, err)
	assert.Equal(t, style.Property("2px"), value(t, store, p1, "letter-spacing"))
}

func TestLayersAndInlineStyles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<p id="a" class="c">x</p><p id="b" style="color: teal; margin-top: 9px">y</p>`)
	sheets := authorSheets(t, `
	@layer base, theme;
	@layer theme { #a { color: red } #b { margin-top: 1px !important } }
	@layer base { #a { color: blue; margin-top: 4px } @layer inner { #a { margin-top: 5px } } }
	p { padding-top: 1px }
	@layer theme { .c { padding-top: 3px } }
	#b { color: maroon }
	`)
	store, err := Resolve(doc, root, sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	a, b := byID(doc, "a"), byID(doc, "b")
	assert.Equal(t, style.Property("red"), value(t, store, a, "color"), "later layer wins")
	assert.Equal(t, style.Property("4px"), value(t, store, a, "margin-top"), "layer beats its sublayers")
	assert.Equal(t, style.Property("3px"), value(t, store, a, "padding-top"), "layered beats unlayered")
	assert.Equal(t, style.Property("teal"), value(t, store, b, "color"), "style attribute beats rules")
	assert.Equal(t, style.Property("1px"), value(t, store, b, "margin-top"), "important beats style attribute")
}

func TestExplicitLayerOrder(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<p id="a">x</p>`)
	a := byID(doc, "a")
	hi := cssom.MustRule("p", cssom.Decl("color", "red"), cssom.Decl("margin-top", "2px"))
	hi.Layer = &cssom.Layer{Name: "hi", Order: 5}
	lo := cssom.MustRule("p", cssom.Decl("color", "green"))
	lo.Layer = &cssom.Layer{Name: "lo", Order: 1}
	sheets := (&cssom.Sheets{}).Add(cssom.Author, cssom.NewSheet(hi, lo))
	store, err := Resolve(doc, root, sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), value(t, store, a, "color"), "higher layer order wins over source order")
	//
	late := cssom.MustRule("p", cssom.Decl("margin-top", "7px"))
	late.Layer = &cssom.Layer{Name: "late", Order: 0}
	sheets.Add(cssom.Author, cssom.NewSheet(late))
	store, err = Resolve(doc, root, sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), value(t, store, a, "color"))
	assert.Equal(t, style.Property("7px"), value(t, store, a, "margin-top"), "layer of a later sheet ranks higher")
}

func TestUserAgentDefaults(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<body><h1 id="h">T</h1><div id="d"><a id="l" href="x">link</a></div></body>`)
	store, err := Resolve(doc, root, nil, media.DefaultEnvironment())
	require.NoError(t, err)
	h := byID(doc, "h")
	assert.Equal(t, style.Property("32px"), value(t, store, h, "font-size"))
	assert.Equal(t, style.Property("21.44px"), value(t, store, h, "margin-top"))
	assert.Equal(t, style.Property("700"), value(t, store, h, "font-weight"))
	assert.Equal(t, style.Property("block"), value(t, store, byID(doc, "d"), "display"))
	assert.Equal(t, style.Property("blue"), value(t, store, byID(doc, "l"), "color"))
	body := doc.Parent(byID(doc, "d"))
	assert.Equal(t, style.Property("8px"), value(t, store, body, "margin-left"))
	//
	store, err = Resolve(doc, root, nil, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	assert.Equal(t, style.Property("inline"), value(t, store, byID(doc, "d"), "display"))
	assert.Equal(t, style.Property("16px"), value(t, store, h, "font-size"))
}

func TestDynamicState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<a id="l" href="x">link</a><input id="i" disabled>`)
	l, i := byID(doc, "l"), byID(doc, "i")
	sheets := authorSheets(t, `a:hover { color: red } a:visited { color: purple } input:disabled { color: gray }`)
	store, err := Resolve(doc, root, sheets, media.DefaultEnvironment())
	require.NoError(t, err)
	assert.Equal(t, style.Property("blue"), value(t, store, l, "color"))
	assert.Equal(t, style.Property("gray"), value(t, store, i, "color"), "disabled attribute sets state")
	store, err = Resolve(doc, root, sheets, media.DefaultEnvironment(), WithState(dom.StateMap{l: dom.Hover}))
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), value(t, store, l, "color"))
}

func TestInvalidDeclarationsAreDropped(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc, root := parseHTML(t, `<p id="a">x</p>`)
	sheets := authorSheets(t, `p { color: red; margin-top: 5px } p { color: notacolor; margin-top: 12furlongs; frobnicate: 1 }`)
	store, err := Resolve(doc, root, sheets, media.DefaultEnvironment(), WithUserAgentDefaults(false))
	require.NoError(t, err)
	assert.Equal(t, style.Property("red"), value(t, store, byID(doc, "a"), "color"))
	assert.Equal(t, style.Property("5px"), value(t, store, byID(doc, "a"), "margin-top"))
}

func TestNoRoot(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	doc := dom.NewDocument()
	text := doc.NewText("x")
	_, err := Resolve(doc, text, nil, media.DefaultEnvironment())
	assert.True(t, errors.Is(err, ErrNoRoot))
	_, err = Resolve(doc, 42, nil, media.DefaultEnvironment())
	assert.True(t, errors.Is(err, ErrNoRoot))
	_, err = Resolve(nil, 0, nil, media.DefaultEnvironment())
	assert.True(t, errors.Is(err, ErrNoRoot))
}

func TestParallelMatchesSequential(t *testing.T) {
	defer goleak.VerifyNone(t, goleak.IgnoreCurrent())
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	var b strings.Builder
	b.WriteString("<html><body>")
	for i := 0; i < 40; i++ {
		b.WriteString(`<div class="box"><ul><li>a</li><li class="x">b <span>c</span></li></ul><p class="note">t</p></div>`)
	}
	b.WriteString("</body></html>")
	doc, root := parseHTML(t, b.String())
	sheets := authorSheets(t, pageCSS)
	env := media.DefaultEnvironment()
	seq, err := Resolve(doc, root, sheets, env)
	require.NoError(t, err)
	for _, n := range []int{2, 4, 16} {
		par, err := Resolve(doc, root, sheets, env, WithParallel(n))
		require.NoError(t, err)
		if diff := cmp.Diff(snapshot(seq), snapshot(par)); diff != "" {
			t.Errorf("parallel(%d) differs from sequential (-seq +par):\n%s", n, diff)
		}
	}
}

func TestResolveHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.resolver")
	defer teardown()
	//
	h, err := html.Parse(strings.NewReader(`<html><head>
	<style>p { color: red } .x { margin-top: 2px }</style>
	<style>p { color: blue }</style></head>
	<body><p class="x">x</p></body></html>`))
	require.NoError(t, err)
	user := (&cssom.Sheets{}).Add(cssom.User, sheet(t, `p { color: green; padding-top: 1px }`))
	doc, root, store, err := ResolveHTML(h, user, media.DefaultEnvironment())
	require.NoError(t, err)
	p := dom.FindElement(doc, root, atom.P)
	require.NotEqual(t, dom.NoNode, p)
	assert.Equal(t, style.Property("blue"), value(t, store, p, "color"))
	assert.Equal(t, style.Property("2px"), value(t, store, p, "margin-top"))
	assert.Equal(t, style.Property("1px"), value(t, store, p, "padding-top"))
	assert.Len(t, user.Of(cssom.Author), 0, "caller's sheets are not modified")
}
