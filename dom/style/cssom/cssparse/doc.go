/*
Package cssparse creates cssom style sheets from CSS text, using the
grammar parser of github.com/tdewolff/parse/v2/css.

Style rules nested in @media blocks carry the block's media query list,
rules in @layer blocks carry their cascade layer. Layer statements
(`@layer a, b;`) declare the layer order. Other at-rules (@font-face,
@keyframes, @supports, …) are skipped together with their contents.

Parsing follows the CSS error recovery rules: a rule with a malformed
selector list is dropped, all other rules are kept. Parse reports dropped
rules as a combined error, but always returns the sheet of well-formed
rules.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>
*/
package cssparse

import "github.com/npillmayer/schuko/tracing"

// tracer traces with key 'apollo.cssom'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.cssom")
}
