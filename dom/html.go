package dom

import (
	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"
)

// FromHTML builds a Document from an HTML parse tree, as produced by
// html.Parse. It returns the document together with the ID of the root
// element (usually <html>). Comments, doctype declarations and processing
// instructions are dropped; elements and text nodes are kept in document
// order.
//
// If h does not contain any element, FromHTML returns NoNode as root.
func FromHTML(h *html.Node) (*Document, NodeID) {
	doc := NewDocument()
	if h == nil {
		return doc, NoNode
	}
	if h.Type == html.DocumentNode {
		h = firstElement(h)
		if h == nil {
			tracer().Infof("HTML document has no root element")
			return doc, NoNode
		}
	}
	root := doc.importHTML(h, NoNode)
	tracer().Debugf("imported HTML tree with %d nodes", doc.Len())
	return doc, root
}

func firstElement(h *html.Node) *html.Node {
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		if ch.Type == html.ElementNode {
			return ch
		}
	}
	return nil
}

func (doc *Document) importHTML(h *html.Node, parent NodeID) NodeID {
	var id NodeID
	switch h.Type {
	case html.ElementNode:
		attrs := make([]Attribute, len(h.Attr))
		for i, a := range h.Attr {
			attrs[i] = Attribute{Key: a.Key, Val: a.Val}
		}
		tag := h.Data
		if h.DataAtom != 0 {
			tag = h.DataAtom.String()
		}
		id = doc.Element(parent, tag, attrs...)
	case html.TextNode:
		id = doc.NewText(h.Data)
		if parent != NoNode {
			_ = doc.AppendChild(parent, id)
		}
		return id
	default:
		return NoNode
	}
	for ch := h.FirstChild; ch != nil; ch = ch.NextSibling {
		doc.importHTML(ch, id)
	}
	return id
}

// FindElement returns the first element in document order below (and
// including) from, which has a given tag. Returns NoNode if none is found.
func FindElement(tree Tree, from NodeID, tag atom.Atom) NodeID {
	if !tree.Contains(from) {
		return NoNode
	}
	if tree.IsElement(from) && tree.Tag(from) == tag.String() {
		return from
	}
	for _, ch := range tree.Children(from) {
		if found := FindElement(tree, ch, tag); found != NoNode {
			return found
		}
	}
	return NoNode
}
