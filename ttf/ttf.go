package ttf

import (
	"fmt"
	"math"
)

// GlyphIndex is a glyph index in a font.
type GlyphIndex uint16

// Maximum nesting depth of compound glyphs, if not configured otherwise.
const MaxCompoundDepth = 8

// --- Tag -------------------------------------------------------------------

// Tag is an array of four uint8s (32 bits) used to identify a table, design-variation
// axis, script, language system, feature, or baseline.
type Tag uint32

// MakeTag creates a Tag from 4 bytes, e.g.,
//
//	MakeTag([]byte("cmap"))
//
// If b is shorter or longer, it will be silently extended or cut as appropriate
func MakeTag(b []byte) Tag {
	if b == nil {
		b = []byte{0, 0, 0, 0}
	} else if len(b) > 4 {
		b = b[:4]
	} else if len(b) < 4 {
		b = append([]byte{0, 0, 0, 0}[:4-len(b)], b...)
	}
	return Tag(u32(b))
}

// T returns a Tag from a (4-letter) string.
// If t is shorter or longer, it will be silently extended or cut as appropriate
func T(t string) Tag {
	t = (t + "    ")[:4]
	return Tag(u32([]byte(t)))
}

func (t Tag) String() string {
	bytes := []byte{
		byte(t >> 24 & 0xff),
		byte(t >> 16 & 0xff),
		byte(t >> 8 & 0xff),
		byte(t & 0xff),
	}
	return string(bytes)
}

// Tags of the tables interpreted by this package.
var (
	TagCmap = T("cmap")
	TagGlyf = T("glyf")
	TagHead = T("head")
	TagHhea = T("hhea")
	TagHmtx = T("hmtx")
	TagLoca = T("loca")
	TagMaxp = T("maxp")
)

// --- Table directory -------------------------------------------------------

// Font versions accepted at byte 0 of a font.
const (
	VersionTrueType uint32 = 0x00010000
	VersionOTTO     uint32 = 0x4F54544F // 'OTTO'
)

// TableRecord is one entry of a font's table directory.
// Offset is absolute, i.e. relative to the beginning of the font data.
// Checksum and Length are recorded, but not validated.
type TableRecord struct {
	Tag      Tag
	Checksum uint32
	Offset   uint32
	Length   uint32
}

// Directory is the table directory of a font.
type Directory struct {
	Version uint32
	Records []TableRecord
}

// Lookup finds the table record for a tag. Table counts are small, thus Lookup
// does a linear scan. If the font has no table with the given tag, Lookup returns
// an error wrapping ErrTableNotFound. It is up to the caller to decide if a missing
// table is fatal.
func (d *Directory) Lookup(tag Tag) (TableRecord, error) {
	if d != nil {
		for _, rec := range d.Records {
			if rec.Tag == tag {
				return rec, nil
			}
		}
	}
	return TableRecord{}, TableNotFound(tag)
}

// Tags returns the tags of all tables in directory order.
func (d *Directory) Tags() []Tag {
	if d == nil {
		return nil
	}
	tags := make([]Tag, len(d.Records))
	for i, rec := range d.Records {
		tags[i] = rec.Tag
	}
	return tags
}

// --- Scalar tables ---------------------------------------------------------

// MaxpTable establishes the memory requirements for a font.
// The 'maxp' table contains a count for the number of glyphs in the font,
// which defines the valid glyph index range [0, NumGlyphs).
type MaxpTable struct {
	Version   uint32
	NumGlyphs uint16
}

// HeadTable gives global information about the font.
// Only a subset of fields is decoded.
type HeadTable struct {
	Flags            uint16
	UnitsPerEm       uint16 // values 16 … 16384 are valid
	XMin, YMin       int16  // bounding box for all glyphs
	XMax, YMax       int16
	IndexToLocFormat int16 // 0 for short offsets, 1 for long; needed to interpret loca
}

// HheaTable contains information for horizontal layout.
type HheaTable struct {
	Ascender        int16
	Descender       int16
	LineGap         int16
	AdvanceWidthMax uint16
	NumHMetrics     uint16 // number of explicit advance widths in 'hmtx'
}

// HmtxTable contains metric information for the horizontal layout of each glyph.
// AdvanceWidths has one entry per glyph: glyphs beyond the number of explicit
// metrics repeat the last explicit advance width.
type HmtxTable struct {
	AdvanceWidths    []uint16
	LeftSideBearings []int16
}

// Metrics returns advance width and left side bearing of a glyph.
func (t *HmtxTable) Metrics(gid GlyphIndex) (uint16, int16, bool) {
	if t == nil || int(gid) >= len(t.AdvanceWidths) {
		return 0, 0, false
	}
	var lsb int16
	if int(gid) < len(t.LeftSideBearings) {
		lsb = t.LeftSideBearings[gid]
	}
	return t.AdvanceWidths[gid], lsb, true
}

// GlyphOffsets are the byte offsets of glyphs inside the 'glyf' table, indexed by
// glyph index. There are numGlyphs+1 entries; glyph i spans [offsets[i], offsets[i+1]).
// An empty span denotes a glyph without outline, e.g. a space.
type GlyphOffsets []uint32

// Span returns the byte range of glyph gid within table 'glyf'.
func (o GlyphOffsets) Span(gid GlyphIndex) (uint32, uint32, error) {
	if int(gid)+1 >= len(o) {
		return 0, 0, fontError(TagLoca, "Span", SeverityMajor, 0, ErrGlyphIndexOutOfRange,
			"glyph %d, font has %d glyphs", gid, max(len(o)-1, 0))
	}
	return o[gid], o[gid+1], nil
}

// ---------------------------------------------------------------------------

// Checked arithmetic operations to prevent integer overflow

// checkedMulInt checks for overflow in multiplication of two integers
func checkedMulInt(a, b int) (int, error) {
	if a == 0 || b == 0 {
		return 0, nil
	}
	if a > 0 && b > 0 && a > math.MaxInt/b {
		return 0, fmt.Errorf("integer overflow: %d * %d", a, b)
	}
	if a < 0 || b < 0 {
		return 0, fmt.Errorf("negative operand: %d * %d", a, b)
	}
	return a * b, nil
}
