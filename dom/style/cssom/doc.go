/*
Package cssom is the object model for style sheets, as consumed by the
style resolver.

Overview

A style sheet is an ordered sequence of rules. Each rule carries a parsed
selector list, a block of declarations and, optionally, the cascade layer
and the @media conditions it has been nested into. Style sheets are grouped
by origin (user agent, user, author); the origin, together with a
declaration's importance, decides its precedence in the cascade.

CSS text is not parsed in this package. Rules are either built
programmatically with NewRule, or produced by one of the parser adapters in
the sub-packages: cssparse, based on the tdewolff CSS parser, and
douceuradapter, wrapping github.com/aymerick/douceur.

The styling component is difficult to document/describe without diagrams.
A good explanation of styling may be found in

   https://hacks.mozilla.org/2017/08/inside-a-super-fast-css-engine-quantum-css-aka-stylo/

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssom

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'apollo.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.cssom")
}
