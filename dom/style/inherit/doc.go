/*
Package inherit computes the style of an element from its cascaded values
and the computed style of its parent.

Properties which did not receive a cascaded value are either inherited from
the parent or set to their initial value, depending on the property
definition. The CSS-wide keywords inherit, initial and unset (and revert,
which is handled as unset) are honoured for every property.

Font-relative lengths are resolved while computing: 'em' and percentages of
font-size refer to the parent's font size, 'rem' to the font size of the
root element, and 'em' in every other property to the element's own font
size. A computed style therefore holds absolute pixel values only, and
descendants inherit those:

    div  { font-size: 20px }
    p    { font-size: 150% }    ⇒ p is 30px
    span { }                   ⇒ span inherits 30px

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package inherit

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.inherit'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.inherit")
}
