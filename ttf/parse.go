package ttf

import (
	"fmt"
)

// Magic number of table 'head'.
const headMagicNumber uint32 = 0x5F0F3CF5

// fieldReader wraps a Cursor for decoding fixed-layout records.
// After the first failing read all further reads return zero values;
// the error is available in err.
type fieldReader struct {
	c   *Cursor
	err error
}

func (r *fieldReader) u16() uint16 {
	if r.err != nil {
		return 0
	}
	n, err := r.c.U16()
	r.err = err
	return n
}

func (r *fieldReader) i16() int16 {
	return int16(r.u16())
}

func (r *fieldReader) u32() uint32 {
	if r.err != nil {
		return 0
	}
	n, err := r.c.U32()
	r.err = err
	return n
}

func (r *fieldReader) skip(n int) {
	if r.err != nil {
		return
	}
	r.err = r.c.Skip(n)
}

// --- Table directory -------------------------------------------------------

// ResolveTables parses the table directory at the start of a font's binary data.
func ResolveTables(font []byte) (*Directory, error) {
	return ReadDirectory(NewCursor(font))
}

// ReadDirectory parses a table directory, starting at the cursor's position.
//
// https://learn.microsoft.com/en-us/typography/opentype/spec/otff#table-directory:
// The header is sfntVersion, numTables and three fields to support binary search
// (searchRange, entrySelector, rangeShift), which we ignore. It is followed by
// numTables table records of 16 bytes each.
func ReadDirectory(c *Cursor) (*Directory, error) {
	start := uint32(c.Position())
	r := fieldReader{c: c}
	version := r.u32()
	if r.err != nil {
		return nil, fontError(T(""), "Header", SeverityCritical, start, r.err, "font header")
	}
	if version != VersionTrueType && version != VersionOTTO {
		return nil, fontError(T(""), "Header", SeverityCritical, start, ErrUnsupportedFontVersion,
			"font type %x", version)
	}
	numTables := r.u16()
	r.skip(6)
	if r.err != nil {
		return nil, fontError(T(""), "Header", SeverityCritical, start, r.err, "font header")
	}
	tracer().Debugf("font version = %x, %d tables", version, numTables)
	dir := &Directory{
		Version: version,
		Records: make([]TableRecord, 0, numTables),
	}
	for i := 0; i < int(numTables); i++ {
		tag, err := c.Tag()
		if err != nil {
			return nil, fontError(T(""), "TableRecords", SeverityCritical, uint32(c.Position()), err,
				"table record %d of %d", i, numTables)
		}
		rec := TableRecord{Tag: tag}
		rec.Checksum = r.u32()
		rec.Offset = r.u32()
		rec.Length = r.u32()
		if r.err != nil {
			return nil, fontError(tag, "TableRecords", SeverityCritical, uint32(c.Position()), r.err,
				"table record %d of %d", i, numTables)
		}
		dir.Records = append(dir.Records, rec)
	}
	return dir, nil
}

// --- Parser ----------------------------------------------------------------

// Parser decodes the tables of a single font. It owns a Cursor over the font data
// and jumps to the absolute offsets given by the font's table directory.
//
// A Parser is not safe for concurrent use.
type Parser struct {
	cursor   *Cursor
	dir      *Directory
	maxDepth int
	ec       errorCollector
}

// NewParser reads the table directory of font and returns a parser for its tables.
func NewParser(font []byte) (*Parser, error) {
	c := NewCursor(font)
	dir, err := ReadDirectory(c)
	if err != nil {
		return nil, err
	}
	return &Parser{
		cursor:   c,
		dir:      dir,
		maxDepth: MaxCompoundDepth,
	}, nil
}

// Directory returns the table directory of the font.
func (p *Parser) Directory() *Directory {
	return p.dir
}

// SetMaxCompoundDepth sets the maximum nesting depth of compound glyphs.
// Values < 1 reset the depth to the default.
func (p *Parser) SetMaxCompoundDepth(depth int) {
	if depth < 1 {
		depth = MaxCompoundDepth
	}
	p.maxDepth = depth
}

// Warnings returns all warnings encountered so far.
func (p *Parser) Warnings() []FontWarning {
	if !p.ec.hasWarnings() {
		return []FontWarning{}
	}
	return p.ec.warnings
}

// seek positions the cursor at the start of a table.
func (p *Parser) seek(tag Tag) (TableRecord, error) {
	rec, err := p.dir.Lookup(tag)
	if err != nil {
		return rec, err
	}
	if err = p.cursor.SetPosition(int(rec.Offset)); err != nil {
		return rec, fontError(tag, "Offset", SeverityCritical, rec.Offset, err,
			"table offset outside of font")
	}
	return rec, nil
}

// --- MaxP table ------------------------------------------------------------

// ReadMaxp decodes table 'maxp'. Only the glyph count is of interest to us.
func (p *Parser) ReadMaxp() (MaxpTable, error) {
	rec, err := p.seek(TagMaxp)
	if err != nil {
		return MaxpTable{}, err
	}
	r := fieldReader{c: p.cursor}
	t := MaxpTable{}
	t.Version = r.u32()
	t.NumGlyphs = r.u16()
	if r.err != nil {
		return MaxpTable{}, fontError(TagMaxp, "Header", SeverityCritical, rec.Offset, r.err, "maxp table")
	}
	tracer().Debugf("maxp: %d glyphs", t.NumGlyphs)
	return t, nil
}

// --- Head table ------------------------------------------------------------

// ReadHead decodes table 'head'.
func (p *Parser) ReadHead() (HeadTable, error) {
	rec, err := p.seek(TagHead)
	if err != nil {
		return HeadTable{}, err
	}
	r := fieldReader{c: p.cursor}
	r.skip(2 + 2 + 4 + 4) // version, fontRevision, checksumAdjustment
	magic := r.u32()
	if r.err == nil && magic != headMagicNumber {
		return HeadTable{}, fontError(TagHead, "Magic", SeverityCritical, rec.Offset+12,
			ErrInvalidMagicNumber, "found %x, expected %x", magic, headMagicNumber)
	}
	t := HeadTable{}
	t.Flags = r.u16()
	t.UnitsPerEm = r.u16()
	r.skip(8 + 8) // created, modified
	t.XMin = r.i16()
	t.YMin = r.i16()
	t.XMax = r.i16()
	t.YMax = r.i16()
	r.skip(2 + 2 + 2) // macStyle, lowestRecPPEM, fontDirectionHint
	t.IndexToLocFormat = r.i16()
	if r.err != nil {
		return HeadTable{}, fontError(TagHead, "Header", SeverityCritical, rec.Offset, r.err, "head table")
	}
	tracer().Debugf("head: units/em = %d, loca format = %d", t.UnitsPerEm, t.IndexToLocFormat)
	return t, nil
}

// --- HHea table ------------------------------------------------------------

// ReadHhea decodes table 'hhea'.
func (p *Parser) ReadHhea() (HheaTable, error) {
	rec, err := p.seek(TagHhea)
	if err != nil {
		return HheaTable{}, err
	}
	r := fieldReader{c: p.cursor}
	t := HheaTable{}
	r.skip(4) // version
	t.Ascender = r.i16()
	t.Descender = r.i16()
	t.LineGap = r.i16()
	t.AdvanceWidthMax = r.u16()
	// minLeftSideBearing, minRightSideBearing, xMaxExtent, caretSlopeRise, caretSlopeRun,
	// caretOffset, 4 reserved, metricDataFormat
	r.skip(6*2 + 4*2 + 2)
	t.NumHMetrics = r.u16()
	if r.err != nil {
		return HheaTable{}, fontError(TagHhea, "Header", SeverityCritical, rec.Offset, r.err, "hhea table")
	}
	return t, nil
}

// --- HMtx table ------------------------------------------------------------

// ReadHmtx decodes table 'hmtx'. The table has numHMetrics explicit records of
// (advanceWidth, leftSideBearing). Glyphs beyond that count reuse the last explicit
// advance width, but still have their own left side bearing in the table's tail.
// numHMetrics is taken from table 'hhea', numGlyphs from table 'maxp'.
func (p *Parser) ReadHmtx(numHMetrics, numGlyphs uint16) (*HmtxTable, error) {
	rec, err := p.seek(TagHmtx)
	if err != nil {
		return nil, err
	}
	if numHMetrics > numGlyphs {
		p.ec.addWarning(TagHmtx, fmt.Sprintf("%d metrics for %d glyphs", numHMetrics, numGlyphs), rec.Offset)
	}
	t := &HmtxTable{
		AdvanceWidths:    make([]uint16, 0, numGlyphs),
		LeftSideBearings: make([]int16, 0, numGlyphs),
	}
	r := fieldReader{c: p.cursor}
	for i := 0; i < int(numHMetrics); i++ {
		aw, lsb := r.u16(), r.i16()
		if i < int(numGlyphs) {
			t.AdvanceWidths = append(t.AdvanceWidths, aw)
			t.LeftSideBearings = append(t.LeftSideBearings, lsb)
		}
	}
	var last uint16
	if numHMetrics > 0 && len(t.AdvanceWidths) > 0 {
		last = t.AdvanceWidths[len(t.AdvanceWidths)-1]
	} else if numGlyphs > 0 {
		p.ec.addWarning(TagHmtx, "no explicit advance widths", rec.Offset)
	}
	for i := int(numHMetrics); i < int(numGlyphs); i++ {
		t.AdvanceWidths = append(t.AdvanceWidths, last)
		t.LeftSideBearings = append(t.LeftSideBearings, r.i16())
	}
	if r.err != nil {
		return nil, fontError(TagHmtx, "Metrics", SeverityCritical, rec.Offset, r.err,
			"%d metrics for %d glyphs", numHMetrics, numGlyphs)
	}
	return t, nil
}

// --- Loca table ------------------------------------------------------------

// ReadGlyphOffsets decodes table 'loca', giving the location of each glyph inside
// table 'glyf'. indexToLocFormat is taken from table 'head': for format 0 entries are
// 16-bit values holding half of the actual offset, for format 1 they are 32-bit
// offsets. The result has numGlyphs+1 entries.
//
// Dependencies (taken from Apple Developer page about TrueType):
// The size of entries in the 'loca' table must be appropriate for the value of the
// indexToLocFormat field of the 'head' table. The number of entries must be the same
// as the numGlyphs field of the 'maxp' table.
func (p *Parser) ReadGlyphOffsets(numGlyphs uint16, indexToLocFormat int16) (GlyphOffsets, error) {
	if indexToLocFormat != 0 && indexToLocFormat != 1 {
		return nil, fontError(TagLoca, "Format", SeverityCritical, 0, ErrInvalidLocaFormat,
			"indexToLocFormat = %d", indexToLocFormat)
	}
	rec, err := p.seek(TagLoca)
	if err != nil {
		return nil, err
	}
	n := int(numGlyphs) + 1
	var offsets GlyphOffsets
	if indexToLocFormat == 0 {
		halves, err := p.cursor.U16Array(n)
		if err != nil {
			return nil, fontError(TagLoca, "Offsets", SeverityCritical, rec.Offset, err,
				"%d short offsets", n)
		}
		offsets = make(GlyphOffsets, n)
		for i, h := range halves {
			offsets[i] = uint32(h) * 2
		}
	} else {
		longs, err := p.cursor.U32Array(n)
		if err != nil {
			return nil, fontError(TagLoca, "Offsets", SeverityCritical, rec.Offset, err,
				"%d long offsets", n)
		}
		offsets = GlyphOffsets(longs)
	}
	p.checkGlyphOffsets(offsets, rec.Offset)
	return offsets, nil
}

// checkGlyphOffsets records warnings for offsets which are decreasing or
// exceed the size of table 'glyf'. Glyphs affected will fail when read.
func (p *Parser) checkGlyphOffsets(offsets GlyphOffsets, at uint32) {
	for i := 1; i < len(offsets); i++ {
		if offsets[i] < offsets[i-1] {
			p.ec.addWarning(TagLoca, fmt.Sprintf("offset of glyph %d decreases", i), at)
			break
		}
	}
	if glyf, err := p.dir.Lookup(TagGlyf); err == nil && len(offsets) > 0 {
		if last := offsets[len(offsets)-1]; last > glyf.Length {
			p.ec.addWarning(TagLoca, fmt.Sprintf("final offset %d exceeds glyf size %d",
				last, glyf.Length), at)
		}
	}
}
