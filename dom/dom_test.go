package dom

import (
	"strings"
	"testing"

	"github.com/npillmayer/schuko/tracing/gotestingadapter"
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

func TestDocumentBuild(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.dom")
	defer teardown()
	//
	doc := NewDocument()
	root := doc.Element(NoNode, "HTML")
	body := doc.Element(root, "body", Attribute{"ID", "main"}, Attribute{"class", " a  b "})
	txt := doc.NewText("hello")
	if err := doc.AppendChild(body, txt); err != nil {
		t.Fatal(err)
	}
	if doc.Tag(root) != "html" {
		t.Errorf("expected tag names to be lower case, is %q", doc.Tag(root))
	}
	if doc.Parent(body) != root || doc.Parent(root) != NoNode {
		t.Errorf("expected parent links to be set, aren't: %d / %d", doc.Parent(body), doc.Parent(root))
	}
	if v, ok := doc.Attr(body, "id"); !ok || v != "main" {
		t.Errorf("expected id=main, is %q", v)
	}
	if cl := Classes(doc, body); len(cl) != 2 || cl[0] != "a" || cl[1] != "b" {
		t.Errorf("expected class list [a b], is %v", cl)
	}
	if s := Describe(doc, body); s != "<body#main.a.b>" {
		t.Errorf("expected description <body#main.a.b>, is %s", s)
	}
	if doc.IsElement(txt) || len(ElementChildren(doc, body)) != 0 {
		t.Errorf("expected text node not to count as an element")
	}
}

func TestDocumentLinkErrors(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.dom")
	defer teardown()
	//
	doc := NewDocument()
	a := doc.NewElement("div")
	b := doc.NewElement("p")
	txt := doc.NewText("x")
	if err := doc.AppendChild(a, b); err != nil {
		t.Fatal(err)
	}
	if err := doc.AppendChild(a, b); err == nil {
		t.Errorf("expected second link of a node to fail, didn't")
	}
	if err := doc.AppendChild(txt, doc.NewElement("span")); err == nil {
		t.Errorf("expected text node to refuse children, didn't")
	}
	if err := doc.AppendChild(a, NodeID(99)); err != ErrUnknownNode {
		t.Errorf("expected ErrUnknownNode, is %v", err)
	}
	if doc.Contains(NoNode) {
		t.Errorf("expected NoNode not to be contained in document")
	}
}

func TestFromHTML(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.dom")
	defer teardown()
	//
	h, err := html.Parse(strings.NewReader(`<!DOCTYPE html><html><head><title>T</title></head>
	<body><!-- comment --><ul><li class="x">one</li><li>two</li></ul></body></html>`))
	if err != nil {
		t.Fatal(err)
	}
	doc, root := FromHTML(h)
	if doc.Tag(root) != "html" {
		t.Fatalf("expected root to be <html>, is %s", Describe(doc, root))
	}
	ul := FindElement(doc, root, atom.Ul)
	if ul == NoNode {
		t.Fatalf("expected to find <ul>, didn't")
	}
	lis := ElementChildren(doc, ul)
	if len(lis) != 2 {
		t.Fatalf("expected 2 list items, have %d", len(lis))
	}
	if Describe(doc, lis[0]) != "<li.x>" {
		t.Errorf("expected first item to be <li.x>, is %s", Describe(doc, lis[0]))
	}
	body := FindElement(doc, root, atom.Body)
	for _, ch := range doc.Children(body) {
		if doc.IsElement(ch) && doc.Tag(ch) != "ul" {
			t.Errorf("expected comment to be dropped, found %s", Describe(doc, ch))
		}
	}
}

func TestAttributeState(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "apollo.dom")
	defer teardown()
	//
	doc := NewDocument()
	form := doc.Element(NoNode, "form")
	in := doc.Element(form, "input", Attribute{"checked", ""}, Attribute{"readonly", ""})
	st := AttributeState{Tree: doc, Dynamic: StateMap{in: Hover}}
	s := st.State(in)
	if !s.Has(Checked) || !s.Has(ReadOnly) || !s.Has(Hover) {
		t.Errorf("expected input to be checked|read-only|hover, is %s", s)
	}
	if s.Has(Disabled) || st.State(form) != 0 {
		t.Errorf("expected no other flags to be set, is %s / %s", s, st.State(form))
	}
}
