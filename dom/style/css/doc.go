/*
Package css provides typed views onto CSS property values.

CSS properties are plentyful and some of them are complicated.
This package trys to shield clients from the cumbersome handling of
CSS properties resulting of the textual nature of CSS properties.
Dimensions, display modes and positions are modelled as option types:

    if d := css.Dimen("12px"); d.IsAbsolute() {
        du := d.Unwrap()
        ...
    }

Lengths are converted between CSS pixels and design units (dimen.DU) with
the CSS reference ratio of 96px per inch.

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package css

// see
// https://developer.mozilla.org/en-US/docs/Web/CSS/Reference#dom-css_cssom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.css'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.css")
}
