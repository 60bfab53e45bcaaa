package ttf

import (
	"sort"
)

// Platform identifiers of cmap encoding records.
const (
	PlatformUnicode   uint16 = 0
	PlatformMacintosh uint16 = 1
	PlatformWindows   uint16 = 3
)

// CmapTable is the header of table 'cmap': a directory of encoding sub-tables.
//
// This table defines mapping of character codes to a default glyph index. Different
// subtables may be defined that each contain mappings for different character encoding
// schemes. OpenType states: “Apart from a format 14 subtable, all other subtables are
// exclusive: applications should select and use one and ignore the others.”
type CmapTable struct {
	Offset  uint32 // absolute offset of table 'cmap'
	Version uint16
	Records []EncodingRecord
}

// EncodingRecord describes one sub-table of 'cmap'.
type EncodingRecord struct {
	PlatformID     uint16
	EncodingID     uint16
	Offset         uint32 // relative to the start of table 'cmap'
	AbsoluteOffset uint32 // relative to the start of the font
}

// CmapFormat4 is a segment mapping to delta values (cmap format 4).
//
// The four parallel arrays have SegCount entries each. Segments are sorted by
// ascending EndCode; the final segment conventionally has EndCode 0xFFFF.
type CmapFormat4 struct {
	Length        uint16
	Language      uint16
	SegCount      int
	EndCode       []uint16
	StartCode     []uint16
	IDDelta       []int16
	IDRangeOffset []uint16
	GlyphIDArray  []uint16
}

// ReadCmap decodes the header of table 'cmap' and its encoding records.
func (p *Parser) ReadCmap() (*CmapTable, error) {
	rec, err := p.seek(TagCmap)
	if err != nil {
		return nil, err
	}
	r := fieldReader{c: p.cursor}
	t := &CmapTable{Offset: rec.Offset}
	t.Version = r.u16()
	if r.err == nil && t.Version != 0 {
		return nil, fontError(TagCmap, "Header", SeverityCritical, rec.Offset, ErrUnsupportedCmapVersion,
			"version %d", t.Version)
	}
	n := r.u16()
	for i := 0; i < int(n) && r.err == nil; i++ {
		enc := EncodingRecord{}
		enc.PlatformID = r.u16()
		enc.EncodingID = r.u16()
		enc.Offset = r.u32()
		enc.AbsoluteOffset = rec.Offset + enc.Offset
		t.Records = append(t.Records, enc)
	}
	if r.err != nil {
		return nil, fontError(TagCmap, "EncodingRecords", SeverityCritical, rec.Offset, r.err,
			"%d encoding records", n)
	}
	tracer().Debugf("font cmap has %d sub-tables", len(t.Records))
	return t, nil
}

// SelectSubtable selects a cmap sub-table and decodes it.
//
// Records for platformPreference are tried first, then records for the Windows
// platform (3), the most common default. Among these candidates the first one in
// format 4 is decoded. If there are no candidates, SelectSubtable fails with
// ErrNoUsableCmapSubtable; if none of them is in format 4, it fails with
// ErrUnsupportedCmapFormat.
func (p *Parser) SelectSubtable(cmap *CmapTable, platformPreference uint16) (*CmapFormat4, error) {
	if cmap == nil {
		return nil, TableNotFound(TagCmap)
	}
	candidates := make([]EncodingRecord, 0, len(cmap.Records))
	for _, platform := range []uint16{platformPreference, PlatformWindows} {
		for _, enc := range cmap.Records {
			if enc.PlatformID == platform {
				candidates = append(candidates, enc)
			}
		}
		if platform == PlatformWindows {
			break // preference was Windows already
		}
	}
	if len(candidates) == 0 {
		return nil, fontError(TagCmap, "Subtable", SeverityCritical, cmap.Offset, ErrNoUsableCmapSubtable,
			"no sub-table for platform %d or %d", platformPreference, PlatformWindows)
	}
	var format uint16
	for _, enc := range candidates {
		if err := p.cursor.SetPosition(int(enc.AbsoluteOffset)); err != nil {
			return nil, fontError(TagCmap, "Subtable", SeverityCritical, enc.AbsoluteOffset, err,
				"sub-table (%d,%d)", enc.PlatformID, enc.EncodingID)
		}
		f, err := p.cursor.U16()
		if err != nil {
			return nil, fontError(TagCmap, "Subtable", SeverityCritical, enc.AbsoluteOffset, err,
				"sub-table (%d,%d)", enc.PlatformID, enc.EncodingID)
		}
		if f != 4 {
			tracer().Debugf("skipping cmap sub-table (%d,%d) with format %d",
				enc.PlatformID, enc.EncodingID, f)
			format = f
			continue
		}
		tracer().Debugf("selected cmap sub-table (%d,%d)", enc.PlatformID, enc.EncodingID)
		return readCmapFormat4(p.cursor, enc.AbsoluteOffset)
	}
	return nil, fontError(TagCmap, "Subtable", SeverityCritical, cmap.Offset, ErrUnsupportedCmapFormat,
		"format %d", format)
}

// DecodeCmapFormat4 decodes a stand-alone cmap sub-table, starting with its
// format field.
func DecodeCmapFormat4(subtable []byte) (*CmapFormat4, error) {
	c := NewCursor(subtable)
	format, err := c.U16()
	if err != nil {
		return nil, fontError(TagCmap, "Subtable", SeverityCritical, 0, err, "sub-table format")
	}
	if format != 4 {
		return nil, fontError(TagCmap, "Subtable", SeverityCritical, 0, ErrUnsupportedCmapFormat,
			"format %d", format)
	}
	return readCmapFormat4(c, 0)
}

// readCmapFormat4 decodes a format 4 sub-table. The cursor is expected to be
// positioned right after the format field.
func readCmapFormat4(c *Cursor, at uint32) (*CmapFormat4, error) {
	r := fieldReader{c: c}
	t := &CmapFormat4{}
	t.Length = r.u16()
	t.Language = r.u16()
	segCountX2 := r.u16()
	r.skip(6) // searchRange, entrySelector, rangeShift
	if r.err != nil {
		return nil, fontError(TagCmap, "Format4", SeverityCritical, at, r.err, "sub-table header")
	}
	t.SegCount = int(segCountX2 / 2)
	var err error
	fail := func(what string) (*CmapFormat4, error) {
		return nil, fontError(TagCmap, "Format4", SeverityCritical, at, err,
			"%s for %d segments", what, t.SegCount)
	}
	if t.EndCode, err = c.U16Array(t.SegCount); err != nil {
		return fail("endCode")
	}
	if err = c.Skip(2); err != nil { // reservedPad
		return fail("reservedPad")
	}
	if t.StartCode, err = c.U16Array(t.SegCount); err != nil {
		return fail("startCode")
	}
	if t.IDDelta, err = c.I16Array(t.SegCount); err != nil {
		return fail("idDelta")
	}
	if t.IDRangeOffset, err = c.U16Array(t.SegCount); err != nil {
		return fail("idRangeOffset")
	}
	count := (int(t.Length) - (16 + 8*t.SegCount)) / 2
	if count < 0 {
		tracer().Infof("cmap format 4 length %d too small for %d segments", t.Length, t.SegCount)
		count = 0
	}
	if t.GlyphIDArray, err = c.U16Array(count); err != nil {
		return fail("glyphIdArray")
	}
	return t, nil
}

// Lookup maps a character code to a glyph index. If code is not covered by any
// segment, Lookup returns None.
//
// If idRangeOffset of the segment is 0, the glyph index is code + idDelta (mod 65536).
// Otherwise idRangeOffset is an offset relative to itself into the glyphIdArray,
// which follows the idRangeOffset array in the sub-table: the entry is at index
//
//	idRangeOffset[i]/2 + (code - startCode[i]) - (segCount - i)
//
// of glyphIdArray. A non-zero entry has idDelta added (mod 65536).
func (t *CmapFormat4) Lookup(code uint16) Option[GlyphIndex] {
	if t == nil || t.SegCount == 0 {
		return None[GlyphIndex]()
	}
	n := min(t.SegCount, len(t.EndCode), len(t.StartCode), len(t.IDDelta), len(t.IDRangeOffset))
	i := sort.Search(n, func(i int) bool {
		return t.EndCode[i] >= code
	})
	if i >= n || t.StartCode[i] > code {
		return None[GlyphIndex]()
	}
	delta := int(t.IDDelta[i])
	if t.IDRangeOffset[i] == 0 {
		return Some(GlyphIndex((int(code) + delta) & 0xffff))
	}
	inx := int(t.IDRangeOffset[i])/2 + int(code-t.StartCode[i]) - (t.SegCount - i)
	if inx < 0 || inx >= len(t.GlyphIDArray) {
		tracer().Debugf("cmap: glyphIdArray index %d out of range for code %x", inx, code)
		return None[GlyphIndex]()
	}
	g := t.GlyphIDArray[inx]
	if g == 0 {
		return Some(GlyphIndex(0))
	}
	return Some(GlyphIndex((int(g) + delta) & 0xffff))
}

// LookupRune maps a Unicode code-point to a glyph index. Format 4 covers the
// Basic Multilingual Plane only, thus code-points beyond U+FFFF yield None.
func (t *CmapFormat4) LookupRune(r rune) Option[GlyphIndex] {
	if r < 0 || r > 0xffff {
		return None[GlyphIndex]()
	}
	return t.Lookup(uint16(r))
}
