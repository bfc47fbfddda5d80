/*
Package style holds the vocabulary of CSS styling: raw property values,
the table of known CSS properties with their initial values and
inheritance behaviour, and the expansion of shorthand properties.

Property values are kept in their textual form (type Property). Sub-package
css offers typed views onto property values, sub-packages selector, media,
cssom, cascade, inherit, computed and resolver implement the style
resolution engine.

Every property listed in the table is *known*: the engine will assign a
computed value to each of them for every element. Unknown properties are
dropped during the cascade.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package style

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'apollo.style'
func tracer() tracing.Trace {
	return tracing.Select("apollo.style")
}
