/*
Package ttf decodes the binary layout of TrueType (SFNT) fonts into an in-memory glyph
outline model.

Package ttf reads the table directory of a font, the fixed-layout metadata tables
'maxp', 'head', 'hhea' and 'hmtx', the segmented character map (cmap format 4), the
'loca' index and the 'glyf' outlines. Glyph outlines are returned as self-contained
values: a Glyph does not keep a reference to the font's bytes.

Decoding is sequential. A Parser owns a Cursor, which carries a mutable read position,
and must not be used by more than one goroutine at a time. Clients needing concurrent
decoding should create one Parser per goroutine over the same (read-only) byte slice.

Out of scope are hinting, rasterization, CFF outlines and any cmap format other than 4.

Code comments will often cite passages from the OpenType documentation;
see https://docs.microsoft.com/en-us/typography/opentype/spec/.

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttf

import (
	"github.com/npillmayer/schuko/tracing"
)

// tracer writes to trace with key 'ttglyph.ttf'
func tracer() tracing.Trace {
	return tracing.Select("ttglyph.ttf")
}
