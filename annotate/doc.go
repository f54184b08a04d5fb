/*
Package annotate renders checked-out line log views for humans.

An annotated view ("blame") prints one gutter per line with the owning
revision and its commit date, followed by the line itself. Views from range
checkouts include the lines deleted within the range, visually set off from
the surviving ones. Renderers exist for fixed-width consoles and for HTML.

_________________________________________________________________________

# BSD 3-Clause License

# Copyright (c) Norbert Pillmayer

Please refer to the LICENSE file for details.
*/
package annotate

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'linelog'
func tracer() tracing.Trace {
	return tracing.Select("linelog")
}
