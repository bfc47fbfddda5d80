/*
Package computed holds the result of a style resolution pass.

A Style is the computed value of every known CSS property for one element.
Relative lengths in font-dependent properties have already been resolved to
absolute pixels, so a Style never refers to the styles of its ancestors.
Styles are written once while a pass runs and are read-only afterwards.

A Store maps the node IDs of a document to their styles. Clients read
values either untyped, by property key, or through typed accessors which
return the option types of package css:

    st, _ := store.Get(id)
    if st.Display().IsBlockLevel() {
        w := st.TotalHorizontalMargin()
        ...
    }

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package computed

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.computed'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.computed")
}
