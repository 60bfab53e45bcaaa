/*
Package ttglyph is for decoding glyph outlines of TrueType fonts.

A font is parsed once: its table directory, the scalar tables 'head', 'maxp', 'hhea'
and 'hmtx', a character map from table 'cmap' and the glyph locations of table 'loca'
are decoded up front. Glyph outlines from table 'glyf' are decoded on request.

	font, err := ttglyph.LoadFont("myfont.ttf", ttglyph.DefaultConfig())
	…
	glyphs, err := font.GlyphsForText("Hello")

Decoding of the individual tables is done by package ttf. Package outline prepares
decoded outlines for drawing.

# Status

Supports TrueType outlines only; fonts with CFF outlines may be parsed, but do not
have a 'glyf' table. Only cmap sub-tables in format 4 are supported. Does not contain
methods for font collections (*.ttc).

# Links

OpenType explained:
https://docs.microsoft.com/en-us/typography/opentype/

______________________________________________________________________

# License

Governed by a 3-Clause BSD license. License file may be found in the root
folder of this module.

Copyright © Norbert Pillmayer <norbert@pillmayer.com>
*/
package ttglyph

import (
	"fmt"
	"sync"

	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/ttglyph/internal/fontload"
	"github.com/npillmayer/ttglyph/ttf"
)

// tracer writes to trace with key 'ttglyph'
func tracer() tracing.Trace {
	return tracing.Select("ttglyph")
}

// Font is a parsed TrueType font, ready for glyph lookup.
//
// Methods of Font may be called concurrently; access to the underlying
// parser is serialized.
type Font struct {
	Fontname string    // full name of the font, if available
	Filepath string    // file path, if loaded from a file
	Binary   []byte    // raw data
	Head     ttf.HeadTable
	Maxp     ttf.MaxpTable
	Hhea     ttf.HheaTable
	Hmtx     *ttf.HmtxTable
	Cmap     *ttf.CmapTable
	CharMap  *ttf.CmapFormat4 // selected cmap sub-table
	Offsets  ttf.GlyphOffsets
	mx       sync.Mutex
	parser   *ttf.Parser
}

// LoadFont loads a TrueType font from a file.
func LoadFont(fontfile string, conf Config) (*Font, error) {
	sf, err := fontload.LoadFontFile(fontfile)
	if err != nil {
		return nil, err
	}
	f, err := Parse(sf.Binary, conf)
	if err != nil {
		return nil, fmt.Errorf("font %s: %w", fontfile, err)
	}
	f.Filepath = sf.Filepath
	return f, nil
}

// Parse decodes the tables of a TrueType font from memory, needed to look up glyph
// outlines. fbytes must not change after parsing for the font to be usable.
//
// Errors are wrapping one of the sentinel errors of package ttf.
func Parse(fbytes []byte, conf Config) (*Font, error) {
	p, err := ttf.NewParser(fbytes)
	if err != nil {
		return nil, err
	}
	p.SetMaxCompoundDepth(conf.MaxCompoundDepth)
	f := &Font{Binary: fbytes, parser: p}
	if f.Head, err = p.ReadHead(); err != nil {
		return nil, err
	}
	if f.Maxp, err = p.ReadMaxp(); err != nil {
		return nil, err
	}
	if f.Hhea, err = p.ReadHhea(); err != nil {
		return nil, err
	}
	if f.Hmtx, err = p.ReadHmtx(f.Hhea.NumHMetrics, f.Maxp.NumGlyphs); err != nil {
		return nil, err
	}
	if f.Cmap, err = p.ReadCmap(); err != nil {
		return nil, err
	}
	if f.CharMap, err = p.SelectSubtable(f.Cmap, conf.PlatformPreference); err != nil {
		return nil, err
	}
	if f.Offsets, err = p.ReadGlyphOffsets(f.Maxp.NumGlyphs, f.Head.IndexToLocFormat); err != nil {
		return nil, err
	}
	if name, ok := fontload.FontName(fbytes); ok {
		f.Fontname = name
	}
	tracer().Infof("parsed font %q: %d glyphs, %d units/em, %d warnings", f.Fontname,
		f.Maxp.NumGlyphs, f.Head.UnitsPerEm, len(p.Warnings()))
	return f, nil
}

// NumGlyphs returns the number of glyphs in the font.
func (f *Font) NumGlyphs() int {
	return int(f.Maxp.NumGlyphs)
}

// UnitsPerEm returns the number of font units per em.
func (f *Font) UnitsPerEm() uint16 {
	return f.Head.UnitsPerEm
}

// Directory returns the table directory of the font.
func (f *Font) Directory() *ttf.Directory {
	return f.parser.Directory()
}

// GlyphIndex returns the glyph index for a given code-point. If the code-point is not
// covered by the font's character map, false is returned.
//
// OpenType says: character codes that do not correspond to any glyph in
// the font should be mapped to glyph index 0. The glyph at this location must be a special
// glyph representing a missing character, commonly known as '.notdef'. Code-points mapped
// to glyph 0 are reported as found.
func (f *Font) GlyphIndex(r rune) (ttf.GlyphIndex, bool) {
	if gid, ok := f.CharMap.LookupRune(r).Unwrap(); ok {
		return gid, true
	}
	return 0, false
}

// Glyph decodes the outline of a glyph, with its horizontal metrics attached.
func (f *Font) Glyph(gid ttf.GlyphIndex) (*ttf.Glyph, error) {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.parser.ReadGlyph(f.Offsets, gid, f.Hmtx)
}

// Warnings returns the non-fatal issues found while decoding the font.
func (f *Font) Warnings() []ttf.FontWarning {
	f.mx.Lock()
	defer f.mx.Unlock()
	return f.parser.Warnings()
}
