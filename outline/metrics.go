package outline

import (
	"github.com/npillmayer/ttglyph/ttf"
	"golang.org/x/image/font/sfnt"
)

// GlyphMetricsInfo contains all metric information for a glyph.
type GlyphMetricsInfo struct {
	Advance  sfnt.Units  // advance width
	LSB, RSB sfnt.Units  // side bearings
	BBox     BoundingBox // bounding box
}

// BoundingBox describes the bounding box of a glyph.
type BoundingBox struct {
	MinX, MinY sfnt.Units
	MaxX, MaxY sfnt.Units
}

// IsEmpty reports whether this box has zero area.
func (bbox BoundingBox) IsEmpty() bool {
	return bbox.MaxX-bbox.MinX == 0 || bbox.MaxY-bbox.MinY == 0
}

// Dx returns the horizontal extent of this box.
func (bbox BoundingBox) Dx() sfnt.Units {
	return bbox.MaxX - bbox.MinX
}

// Dy returns the vertical extent of this box.
func (bbox BoundingBox) Dy() sfnt.Units {
	return bbox.MaxY - bbox.MinY
}

// Metrics retrieves metrics for a decoded glyph. Advance width and left side bearing
// are the ones attached from table 'hmtx', the bounding box is taken from the glyph
// header.
func Metrics(g *ttf.Glyph) GlyphMetricsInfo {
	metrics := GlyphMetricsInfo{}
	if g == nil {
		return metrics
	}
	metrics.Advance = sfnt.Units(g.AdvanceWidth)
	metrics.LSB = sfnt.Units(g.LeftSideBearing)
	if g.IsEmpty() {
		return metrics
	}
	metrics.BBox = BoundingBox{
		MinX: sfnt.Units(g.XMin),
		MinY: sfnt.Units(g.YMin),
		MaxX: sfnt.Units(g.XMax),
		MaxY: sfnt.Units(g.YMax),
	}
	// RSB calculation: rsb = aw - (lsb + xMax - xMin)
	// If a glyph has no contours, xMax/xMin are not defined.
	if !metrics.BBox.IsEmpty() {
		metrics.RSB = metrics.Advance - (metrics.LSB + metrics.BBox.Dx())
	}
	return metrics
}
