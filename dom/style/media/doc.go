/*
Package media evaluates CSS media queries against an environment snapshot.

A media query list, as found in the prelude of an @media rule, is a
comma-separated list of queries. The list matches if any of its queries
matches; an empty list always matches:

    screen and (min-width: 600px), print and (orientation: portrait)

Queries are evaluated against an Environment, describing the output device
(viewport size, resolution, colour depth, pointing device, user preferences).
Clients usually start from DefaultEnvironment and modify it, or load it from
YAML with LoadEnvironment.

Evaluation never fails: an unknown feature, an invalid value or an unknown
media type simply evaluate to false. A query which could not be parsed will
not match, not even when negated with `not`.

___________________________________________________________________________

License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © 2017–2022 Norbert Pillmayer <norbert@pillmayer.com>

*/
package media

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer traces with key 'apollo.media'.
func tracer() tracing.Trace {
	return tracing.Select("apollo.media")
}
