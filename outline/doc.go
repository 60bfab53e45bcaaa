/*
Package outline prepares decoded glyph outlines for drawing.

A Cache holds glyph points normalized to the glyph's bounding box and scaled by a
zoom factor, ready to be handed to a canvas. Segments converts an outline into the
segment representation of golang.org/x/image/font/sfnt, which is understood by
rasterizers of the x/image family; Render fills such segments using
golang.org/x/image/vector. Metrics derives a glyph's horizontal metrics.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package outline

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ttglyph.outline'
func tracer() tracing.Trace {
	return tracing.Select("ttglyph.outline")
}
