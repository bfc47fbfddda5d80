/*
Package dom provides the read-only document tree the styling engine works on.

Status

Early draft. API may change frequently. Please stay patient.

Overview

Styling and layout of HTML/CSS involves a lot of operations on trees.
The style resolver never owns the document: it walks it, asks for tag
names, attributes and structural neighbours, and stores its results
keyed by node identity. We therefore address nodes by integer ids into
a node table (type NodeID) instead of linking pointer structures. A
Document is such a node table; it implements interface Tree, which is
all the resolver requires.

Clients with their own DOM implementation may provide Tree themselves.
Clients holding an HTML parse tree from golang.org/x/net/html may call
FromHTML to get a Document.

Dynamic state (hover, focus, checked, …) is not part of the tree. It is
supplied per resolution pass by a StateProvider.

Preconditions

Trees must be acyclic. Neither the types in this package nor the style
resolver check for cycles in parent/child links; a cyclic tree results in
undefined behaviour (most likely non-termination).

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package dom

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer will return a tracer. We are tracing to 'apollo.dom'
func tracer() tracing.Trace {
	return tracing.Select("apollo.dom")
}
