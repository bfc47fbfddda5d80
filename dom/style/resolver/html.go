package resolver

import (
	"github.com/kvcpers/apollo/dom"
	"github.com/kvcpers/apollo/dom/style/computed"
	"github.com/kvcpers/apollo/dom/style/cssom"
	"github.com/kvcpers/apollo/dom/style/cssom/douceuradapter"
	"github.com/kvcpers/apollo/dom/style/media"
	"go.uber.org/multierr"
	"golang.org/x/net/html"
)

// ResolveHTML imports an HTML parse tree and resolves the styles of the
// resulting document. The contents of the document's <style> elements are
// added as author style sheets, after the author sheets in sheets. sheets
// may be nil and is not modified.
//
// Style rules with malformed selectors are dropped. They are reported
// together with the store, which is valid as long as err does not wrap
// ErrNoRoot.
func ResolveHTML(h *html.Node, sheets *cssom.Sheets, env media.Environment, opts ...Option) (
	*dom.Document, dom.NodeID, *computed.Store, error) {
	//
	doc, root := dom.FromHTML(h)
	if root == dom.NoNode {
		return doc, root, nil, ErrNoRoot
	}
	all := &cssom.Sheets{}
	for _, origin := range origins {
		all.Add(origin, sheets.Of(origin)...)
	}
	embedded, perr := douceuradapter.ExtractStyleElements(h)
	for _, sheet := range embedded {
		all.Add(cssom.Author, sheet)
	}
	store, err := Resolve(doc, root, all, env, opts...)
	return doc, root, store, multierr.Append(err, perr)
}
