package ttglyph

import (
	"errors"

	"github.com/npillmayer/ttglyph/ttf"
	"golang.org/x/text/unicode/norm"
)

// GlyphsForText maps UTF-8 text to glyph outlines, in text order.
//
// The text is normalized to NFC first, as fonts usually carry glyphs for precomposed
// characters. Characters not covered by the font's character map are skipped. Glyphs
// which fail to decode are skipped as well, with the failure traced; GlyphsForText
// fails only if the font lacks table 'glyf' altogether.
//
// This is a convenience API for the common use-case of short pieces of text. Clients
// who need more control should use GlyphIndex and Glyph.
func (f *Font) GlyphsForText(text string) ([]*ttf.Glyph, error) {
	if f == nil || text == "" {
		return nil, nil
	}
	text = norm.NFC.String(text)
	glyphs := make([]*ttf.Glyph, 0, len(text))
	for _, r := range text {
		gid, ok := f.GlyphIndex(r)
		if !ok {
			tracer().Debugf("no glyph for %#U", r)
			continue
		}
		g, err := f.Glyph(gid)
		if errors.Is(err, ttf.ErrTableNotFound) {
			return nil, err
		} else if err != nil {
			tracer().Errorf("skipping glyph %d for %#U: %v", gid, r, err)
			continue
		}
		glyphs = append(glyphs, g)
	}
	return glyphs, nil
}
