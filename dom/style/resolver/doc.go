/*
Package resolver computes the styles of all elements of a document.

A resolution pass takes a document tree, the style sheets of the three
origins (user agent, user, author) and a media environment. It walks the
tree in pre-order. For every element it

    1. matches the rules of all sheets, whose media conditions hold,
    2. lets the declarations of matching rules and of the element's style
       attribute compete in the cascade,
    3. computes the element's style from the winners and the style of its
       parent, and
    4. publishes the style to the pass's Store, before any child is visited.

Resolve returns a fresh Store for every pass and keeps no state between
passes. Given the same inputs, two passes produce identical stores, whether
run sequentially or with WithParallel.

Malformed style sheets are not a concern of this package: syntax errors
have been dealt with when parsing. Declarations with values which are not
valid for their property are dropped silently.

The tree must be acyclic and must not be modified during a pass; neither
condition is checked.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package resolver

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.resolver'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.resolver")
}
