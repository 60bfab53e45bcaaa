package outline

import (
	"github.com/npillmayer/ttglyph/ttf"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
)

// CachedGlyph is a glyph outline transformed for display: points are relative to the
// lower left corner of the glyph's bounding box and scaled by the cache's zoom factor.
type CachedGlyph struct {
	Points    []vec.Vec2 // processed outline points, see ttf.Glyph
	OnCurve   []bool     // parallel to Points
	PointEnds []int      // last point of each contour
	BBox      rect.Rect  // scaled bounding box, lower left corner at the origin
}

// Cache holds transformed glyph outlines for a single zoom factor.
//
// A cache is meant to be owned by a single client, e.g. a view. It is not
// safe for concurrent use.
type Cache struct {
	zoom    float64
	entries map[ttf.GlyphIndex]CachedGlyph
}

// NewCache creates an empty cache with zoom factor 1.
func NewCache() *Cache {
	return &Cache{
		zoom:    1,
		entries: make(map[ttf.GlyphIndex]CachedGlyph),
	}
}

// Zoom returns the zoom factor of the cached entries.
func (c *Cache) Zoom() float64 {
	return c.zoom
}

// Len returns the number of cached glyphs.
func (c *Cache) Len() int {
	return len(c.entries)
}

// Reset drops all entries.
func (c *Cache) Reset() {
	clear(c.entries)
}

// Get returns the cached outline of a glyph.
func (c *Cache) Get(gid ttf.GlyphIndex) (CachedGlyph, bool) {
	cg, ok := c.entries[gid]
	return cg, ok
}

// Update transforms the outline of g for zoom factor zoom and stores it, replacing
// an existing entry for the same glyph index. If zoom differs from the cache's current
// zoom factor, all entries are dropped first: the cache never mixes zoom factors.
//
// The bounding box is computed from the raw coordinates of g. Points are translated
// such that the box's minimum corner becomes the origin, then scaled by zoom.
func (c *Cache) Update(g *ttf.Glyph, zoom float64) CachedGlyph {
	if zoom != c.zoom {
		tracer().Debugf("zoom changes from %.3f to %.3f, dropping %d entries", c.zoom, zoom, len(c.entries))
		c.Reset()
		c.zoom = zoom
	}
	cg := transform(g, zoom)
	c.entries[g.Index] = cg
	return cg
}

func transform(g *ttf.Glyph, zoom float64) CachedGlyph {
	cg := CachedGlyph{}
	if g == nil || len(g.XCoordinates) == 0 {
		return cg
	}
	xmin, ymin, xmax, ymax := coordinateBounds(g)
	cg.Points = make([]vec.Vec2, len(g.Points))
	cg.OnCurve = make([]bool, len(g.Points))
	for i, p := range g.Points {
		cg.Points[i] = vec.Vec2{
			X: float64(int(p.X)-xmin) * zoom,
			Y: float64(int(p.Y)-ymin) * zoom,
		}
		cg.OnCurve[i] = p.OnCurve
	}
	cg.PointEnds = append([]int(nil), g.PointEnds...)
	cg.BBox = rect.Rect{
		URx: float64(xmax-xmin) * zoom,
		URy: float64(ymax-ymin) * zoom,
	}
	return cg
}

// coordinateBounds returns the bounding box of the raw coordinates of g.
// We do not trust the bounding box in the glyph header.
func coordinateBounds(g *ttf.Glyph) (xmin, ymin, xmax, ymax int) {
	xmin, ymin = int(g.XCoordinates[0]), int(g.YCoordinates[0])
	xmax, ymax = xmin, ymin
	for i := range g.XCoordinates {
		x, y := int(g.XCoordinates[i]), int(g.YCoordinates[i])
		xmin, xmax = min(xmin, x), max(xmax, x)
		ymin, ymax = min(ymin, y), max(ymax, y)
	}
	return
}
