package outline

import (
	"github.com/npillmayer/ttglyph/ttf"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

// Segments converts the processed outline of g into sfnt segments, scaled to ppem
// (pixels per em, in 26.6 fixed point). As with sfnt.LoadGlyph, the y axis points
// down. Passing fixed.Int26_6(unitsPerEm) as ppem yields font units.
//
// Every contour starts with a MoveTo to an on-curve point and is closed by a
// final segment back to that point.
func Segments(g *ttf.Glyph, unitsPerEm uint16, ppem fixed.Int26_6) sfnt.Segments {
	if g.IsEmpty() || unitsPerEm == 0 {
		return nil
	}
	scale := func(p ttf.Point) fixed.Point26_6 {
		return fixed.Point26_6{
			X: +scaleUnits(p.X, ppem, unitsPerEm),
			Y: -scaleUnits(p.Y, ppem, unitsPerEm),
		}
	}
	var segs sfnt.Segments
	for _, contour := range g.Contours() {
		segs = appendContour(segs, contour, scale)
	}
	return segs
}

func appendContour(segs sfnt.Segments, contour []ttf.Point, scale func(ttf.Point) fixed.Point26_6) sfnt.Segments {
	n := len(contour)
	if n == 0 {
		return segs
	}
	first := 0
	for i, p := range contour {
		if p.OnCurve {
			first = i
			break
		}
	}
	start := scale(contour[first])
	segs = append(segs, sfnt.Segment{
		Op:   sfnt.SegmentOpMoveTo,
		Args: [3]fixed.Point26_6{start},
	})
	var ctrl fixed.Point26_6
	pending := false
	for k := 1; k <= n; k++ {
		p := contour[(first+k)%n]
		pt := scale(p)
		if k == n {
			pt = start // close the contour
		}
		switch {
		case !p.OnCurve && k < n:
			if pending {
				mid := fixed.Point26_6{X: (ctrl.X + pt.X) / 2, Y: (ctrl.Y + pt.Y) / 2}
				segs = append(segs, quadTo(ctrl, mid))
			}
			ctrl, pending = pt, true
		case pending:
			segs = append(segs, quadTo(ctrl, pt))
			pending = false
		default:
			segs = append(segs, sfnt.Segment{
				Op:   sfnt.SegmentOpLineTo,
				Args: [3]fixed.Point26_6{pt},
			})
		}
	}
	return segs
}

func quadTo(ctrl, to fixed.Point26_6) sfnt.Segment {
	return sfnt.Segment{
		Op:   sfnt.SegmentOpQuadTo,
		Args: [3]fixed.Point26_6{ctrl, to},
	}
}

// scaleUnits converts font units to 26.6 fixed point, rounding half away from zero.
func scaleUnits(v int16, ppem fixed.Int26_6, unitsPerEm uint16) fixed.Int26_6 {
	x := int64(v) * int64(ppem)
	if x >= 0 {
		x += int64(unitsPerEm) / 2
	} else {
		x -= int64(unitsPerEm) / 2
	}
	return fixed.Int26_6(x / int64(unitsPerEm))
}
