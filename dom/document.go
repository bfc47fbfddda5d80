package dom

import (
	"errors"
	"fmt"
	"strings"
)

// NodeID identifies a node within a tree. IDs are indices into a node table
// and are stable for the lifetime of the tree.
type NodeID int32

// NoNode is the null-value for node IDs, e.g. the parent of a root node.
const NoNode NodeID = -1

// Tree is the read-only view of a document the styling engine consumes.
// Implementations must be safe for concurrent reads, as the resolver may
// walk sibling subtrees in parallel.
//
// Trees must be acyclic; this is not checked.
type Tree interface {
	Contains(NodeID) bool               // is the ID valid for this tree?
	Parent(NodeID) NodeID               // parent node or NoNode
	Children(NodeID) []NodeID           // all child nodes, including text nodes
	IsElement(NodeID) bool              // element nodes are styled, text nodes aren't
	Tag(NodeID) string                  // lower-case tag name of an element
	Attr(NodeID, string) (string, bool) // attribute lookup
	Text(NodeID) string                 // character data of a text node
}

// Kind is the type of a document node.
type Kind uint8

// We only distinguish between elements and character data.
const (
	ElementNode Kind = iota
	TextNode
)

// Attribute is a key/value pair of an element.
type Attribute struct {
	Key, Val string
}

type node struct {
	kind     Kind
	tag      string
	text     string
	attrs    []Attribute
	parent   NodeID
	children []NodeID
}

// ErrUnknownNode is returned for operations referencing a node ID not
// contained in a document.
var ErrUnknownNode = errors.New("dom: unknown node")

// Document is an arena of nodes, addressed by NodeID.
// The zero value is an empty document, ready to use.
//
// Building a document is not concurrency-safe; reading it is.
type Document struct {
	nodes []node
}

// NewDocument creates an empty document.
func NewDocument() *Document {
	return &Document{}
}

// NewElement creates a new element node, not yet connected to any parent.
// Tag names and attribute keys are converted to lower case.
func (doc *Document) NewElement(tag string, attrs ...Attribute) NodeID {
	n := node{kind: ElementNode, tag: strings.ToLower(tag), parent: NoNode}
	if len(attrs) > 0 {
		n.attrs = make([]Attribute, len(attrs))
		for i, a := range attrs {
			n.attrs[i] = Attribute{Key: strings.ToLower(a.Key), Val: a.Val}
		}
	}
	doc.nodes = append(doc.nodes, n)
	return NodeID(len(doc.nodes) - 1)
}

// NewText creates a new text node, not yet connected to any parent.
func (doc *Document) NewText(text string) NodeID {
	doc.nodes = append(doc.nodes, node{kind: TextNode, text: text, parent: NoNode})
	return NodeID(len(doc.nodes) - 1)
}

// AppendChild links child as the last child of parent. Text nodes cannot have
// children and a child may be linked only once.
func (doc *Document) AppendChild(parent, child NodeID) error {
	if !doc.Contains(parent) || !doc.Contains(child) {
		return ErrUnknownNode
	}
	if doc.nodes[parent].kind != ElementNode {
		return fmt.Errorf("dom: cannot append child to text node %d", parent)
	}
	if doc.nodes[child].parent != NoNode || parent == child {
		return fmt.Errorf("dom: node %d is already linked", child)
	}
	doc.nodes[parent].children = append(doc.nodes[parent].children, child)
	doc.nodes[child].parent = parent
	return nil
}

// Element is a convenience function for building documents. It creates an
// element and appends it to parent, if parent is not NoNode.
func (doc *Document) Element(parent NodeID, tag string, attrs ...Attribute) NodeID {
	id := doc.NewElement(tag, attrs...)
	if parent != NoNode {
		if err := doc.AppendChild(parent, id); err != nil {
			tracer().Errorf("cannot append element <%s>: %v", tag, err)
		}
	}
	return id
}

// Len returns the number of nodes in the document.
func (doc *Document) Len() int {
	return len(doc.nodes)
}

// Contains is part of interface Tree.
func (doc *Document) Contains(id NodeID) bool {
	return doc != nil && id >= 0 && int(id) < len(doc.nodes)
}

// Parent is part of interface Tree.
func (doc *Document) Parent(id NodeID) NodeID {
	if !doc.Contains(id) {
		return NoNode
	}
	return doc.nodes[id].parent
}

// Children is part of interface Tree. The returned slice must not be modified.
func (doc *Document) Children(id NodeID) []NodeID {
	if !doc.Contains(id) {
		return nil
	}
	return doc.nodes[id].children
}

// IsElement is part of interface Tree.
func (doc *Document) IsElement(id NodeID) bool {
	return doc.Contains(id) && doc.nodes[id].kind == ElementNode
}

// Tag is part of interface Tree.
func (doc *Document) Tag(id NodeID) string {
	if !doc.Contains(id) {
		return ""
	}
	return doc.nodes[id].tag
}

// Text is part of interface Tree.
func (doc *Document) Text(id NodeID) string {
	if !doc.Contains(id) {
		return ""
	}
	return doc.nodes[id].text
}

// Attr is part of interface Tree. Keys are matched case-insensitively.
func (doc *Document) Attr(id NodeID, key string) (string, bool) {
	if !doc.Contains(id) {
		return "", false
	}
	for _, a := range doc.nodes[id].attrs {
		if a.Key == key || strings.EqualFold(a.Key, key) {
			return a.Val, true
		}
	}
	return "", false
}

// Attributes returns all attributes of an element.
func (doc *Document) Attributes(id NodeID) []Attribute {
	if !doc.Contains(id) {
		return nil
	}
	return doc.nodes[id].attrs
}

// String returns a short description of a node, e.g. "<div#main.a.b>".
func (doc *Document) String(id NodeID) string {
	return Describe(doc, id)
}

var _ Tree = &Document{}

// --- Helpers working on any Tree -------------------------------------------

// Describe returns a short description of a node, e.g. "<div#main.a.b>".
func Describe(tree Tree, id NodeID) string {
	if !tree.Contains(id) {
		return "<?>"
	}
	if !tree.IsElement(id) {
		t := tree.Text(id)
		if len(t) > 10 {
			t = t[:10] + "…"
		}
		return fmt.Sprintf("%q", t)
	}
	var b strings.Builder
	b.WriteString("<")
	b.WriteString(tree.Tag(id))
	if v, ok := tree.Attr(id, "id"); ok && v != "" {
		b.WriteString("#")
		b.WriteString(v)
	}
	for _, c := range Classes(tree, id) {
		b.WriteString(".")
		b.WriteString(c)
	}
	b.WriteString(">")
	return b.String()
}

// Classes returns the class list of an element, i.e. its whitespace-separated
// class attribute.
func Classes(tree Tree, id NodeID) []string {
	v, ok := tree.Attr(id, "class")
	if !ok {
		return nil
	}
	return strings.Fields(v)
}

// ElementChildren returns the element children of a node, omitting text nodes.
func ElementChildren(tree Tree, id NodeID) []NodeID {
	children := tree.Children(id)
	elems := make([]NodeID, 0, len(children))
	for _, ch := range children {
		if tree.IsElement(ch) {
			elems = append(elems, ch)
		}
	}
	return elems
}
