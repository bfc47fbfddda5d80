/*
Package selector implements CSS selectors: their structure, specificity
and matching against a document tree.

A selector is a chain of compound selectors joined by combinators,

    ul > li.active a:hover

where each compound is an unordered set of simple selectors (type, id,
class, attribute or pseudo-class). A trailing pseudo-element, as in
`p::first-line`, is recorded and counts towards specificity, but is never
matched against elements.

Selectors may be constructed programmatically with New, or parsed from
text with Parse and ParseList. Both will check the selector's structure and
return an error wrapping ErrMalformed for dangling combinators, empty
compounds and the like.

Matching proceeds right to left: the right-most compound is tested against
the candidate element, then the combinator chain is walked towards the
left, backtracking where a descendant or general sibling combinator allows
more than one candidate. Structural pseudo-classes are evaluated against
the tree at match time, dynamic pseudo-classes (hover, focus, ...) consult
a dom.StateProvider.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package selector

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.selector'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.selector")
}
