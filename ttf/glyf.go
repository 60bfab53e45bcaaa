package ttf

import (
	"math"
	"slices"
)

// Flags of simple glyph outlines.
const (
	flagOnCurve = 0x01 // ON_CURVE_POINT
	flagXShort  = 0x02 // X_SHORT_VECTOR
	flagYShort  = 0x04 // Y_SHORT_VECTOR
	flagRepeat  = 0x08 // REPEAT_FLAG
	flagXSame   = 0x10 // X_IS_SAME_OR_POSITIVE_X_SHORT_VECTOR
	flagYSame   = 0x20 // Y_IS_SAME_OR_POSITIVE_Y_SHORT_VECTOR
)

// Flags of compound glyph component records.
const (
	argsAreWords    uint16 = 0x0001 // ARG_1_AND_2_ARE_WORDS
	argsAreXYValues uint16 = 0x0002 // ARGS_ARE_XY_VALUES
	weHaveAScale    uint16 = 0x0008 // WE_HAVE_A_SCALE
	moreComponents  uint16 = 0x0020 // MORE_COMPONENTS
	weHaveXYScale   uint16 = 0x0040 // WE_HAVE_AN_X_AND_Y_SCALE
	weHave2x2       uint16 = 0x0080 // WE_HAVE_A_TWO_BY_TWO
)

// Point is a point of a glyph outline, in font units.
type Point struct {
	X, Y    int16
	OnCurve bool
}

// Glyph is the decoded outline of a glyph.
//
// EndPoints, XCoordinates, YCoordinates and Flags hold the outline as stored in the
// font (for compound glyphs: concatenated over all components, after positioning).
// Points holds the processed outline: the contours with implied points made explicit,
// such that on-curve and off-curve points alternate. Every quadratic Bézier segment
// is thus a triple on–off–on. PointEnds are the indices of the last point of each
// contour within Points.
//
// A Glyph owns all of its data.
type Glyph struct {
	Index           GlyphIndex
	NumContours     int16 // < 0 for compound glyphs in the font, see Components
	XMin, YMin      int16
	XMax, YMax      int16
	EndPoints       []uint16
	XCoordinates    []int16
	YCoordinates    []int16
	Flags           []uint8
	Points          []Point
	PointEnds       []int
	Components      []GlyphIndex // glyph indices of components of a compound glyph
	AdvanceWidth    uint16
	LeftSideBearing int16
}

// IsEmpty reports whether g has no outline, e.g. a space.
func (g *Glyph) IsEmpty() bool {
	return g == nil || len(g.Points) == 0
}

// IsCompound reports whether g has been composed from other glyphs.
func (g *Glyph) IsCompound() bool {
	return g != nil && len(g.Components) > 0
}

// Contours returns the processed points of g, split into contours.
// The returned slices share memory with g.Points.
func (g *Glyph) Contours() [][]Point {
	if g.IsEmpty() {
		return nil
	}
	contours := make([][]Point, 0, len(g.PointEnds))
	start := 0
	for _, end := range g.PointEnds {
		contours = append(contours, g.Points[start:end+1])
		start = end + 1
	}
	return contours
}

// ReadGlyph decodes the outline of glyph gid from table 'glyf'. offsets are the glyph
// offsets from table 'loca'. If hmtx is non-nil, the glyph's horizontal metrics are
// attached.
//
// A glyph with an empty span in offsets is returned as an empty glyph. This is a valid
// case, e.g. for spaces. For glyph indices not covered by offsets ReadGlyph fails with
// ErrGlyphIndexOutOfRange; compound glyphs referencing themselves, directly or
// indirectly, or nesting deeper than the maximum compound depth fail with
// ErrCompoundGlyphCycle.
func (p *Parser) ReadGlyph(offsets GlyphOffsets, gid GlyphIndex, hmtx *HmtxTable) (*Glyph, error) {
	glyf, err := p.dir.Lookup(TagGlyf)
	if err != nil {
		return nil, err
	}
	g, err := p.readGlyph(glyf, offsets, gid, nil)
	if err != nil {
		return nil, err
	}
	if aw, lsb, ok := hmtx.Metrics(gid); ok {
		g.AdvanceWidth, g.LeftSideBearing = aw, lsb
	}
	return g, nil
}

// readGlyph decodes a glyph. chain holds the compound glyphs currently being decoded,
// from outermost to innermost.
func (p *Parser) readGlyph(glyf TableRecord, offsets GlyphOffsets, gid GlyphIndex, chain []GlyphIndex) (*Glyph, error) {
	start, end, err := offsets.Span(gid)
	if err != nil {
		return nil, err
	}
	g := &Glyph{Index: gid}
	if start == end {
		tracer().Debugf("glyph %d is empty", gid)
		return g, nil
	}
	if end < start || end > glyf.Length {
		return nil, fontError(TagGlyf, "Span", SeverityMajor, glyf.Offset+start, ErrOutOfBounds,
			"glyph %d spans [%d,%d), glyf size is %d", gid, start, end, glyf.Length)
	}
	at := glyf.Offset + start
	if err := p.cursor.SetPosition(int(at)); err != nil {
		return nil, fontError(TagGlyf, "Span", SeverityMajor, at, err, "glyph %d", gid)
	}
	r := fieldReader{c: p.cursor}
	g.NumContours = r.i16()
	g.XMin = r.i16()
	g.YMin = r.i16()
	g.XMax = r.i16()
	g.YMax = r.i16()
	if r.err != nil {
		return nil, fontError(TagGlyf, "Header", SeverityMajor, at, r.err, "glyph %d", gid)
	}
	if g.NumContours >= 0 {
		err = p.readSimpleGlyph(g)
	} else {
		err = p.readCompoundGlyph(g, glyf, offsets, chain)
	}
	if err != nil {
		return nil, fontError(TagGlyf, "Outline", SeverityMajor, at, err, "glyph %d", gid)
	}
	return g, nil
}

// --- Simple glyphs ---------------------------------------------------------

func (p *Parser) readSimpleGlyph(g *Glyph) error {
	c := p.cursor
	var err error
	if g.EndPoints, err = c.U16Array(int(g.NumContours)); err != nil {
		return err
	}
	numPoints := 0
	for i, e := range g.EndPoints {
		if i > 0 && e <= g.EndPoints[i-1] {
			return fontError(TagGlyf, "EndPoints", SeverityMajor, uint32(c.Position()), ErrMalformedGlyph,
				"contour end points not increasing: %v", g.EndPoints)
		}
		numPoints = int(e) + 1
	}
	// Instructions are for hinting, which we do not support
	insLen, err := c.U16()
	if err != nil {
		return err
	}
	if err = c.Skip(int(insLen)); err != nil {
		return err
	}
	if g.Flags, err = decodeFlags(c, numPoints); err != nil {
		return err
	}
	if g.XCoordinates, err = decodeCoordinates(c, g.Flags, flagXShort, flagXSame); err != nil {
		return err
	}
	if g.YCoordinates, err = decodeCoordinates(c, g.Flags, flagYShort, flagYSame); err != nil {
		return err
	}
	g.Points, g.PointEnds = synthesizeImpliedPoints(g.XCoordinates, g.YCoordinates, g.Flags, g.EndPoints)
	tracer().Debugf("glyph %d: %d contours, %d points, %d processed points", g.Index,
		g.NumContours, numPoints, len(g.Points))
	return nil
}

// decodeFlags reads numPoints flags, expanding runs: if a flag has REPEAT_FLAG set, the
// next byte tells how many additional times the flag is to be repeated.
func decodeFlags(c *Cursor, numPoints int) ([]uint8, error) {
	flags := make([]uint8, 0, numPoints)
	for len(flags) < numPoints {
		flag, err := c.U8()
		if err != nil {
			return nil, err
		}
		flags = append(flags, flag)
		if flag&flagRepeat != 0 {
			count, err := c.U8()
			if err != nil {
				return nil, err
			}
			for k := 0; k < int(count); k++ {
				flags = append(flags, flag)
			}
		}
	}
	if len(flags) > numPoints {
		tracer().Debugf("flag repeat overshoots %d points by %d", numPoints, len(flags)-numPoints)
		flags = flags[:numPoints]
	}
	return flags, nil
}

// decodeCoordinates reads one axis of coordinates. Coordinates are stored as deltas
// to the previous point, the first one relative to (0,0).
// If the short-flag is set, the delta is one unsigned byte and the same-flag gives its
// sign (set = positive). Otherwise, if the same-flag is set, the coordinate is unchanged;
// if it is clear, the delta is a signed 16-bit value.
func decodeCoordinates(c *Cursor, flags []uint8, short, same uint8) ([]int16, error) {
	coords := make([]int16, len(flags))
	var v int16
	for i, flag := range flags {
		if flag&short != 0 {
			d, err := c.U8()
			if err != nil {
				return nil, err
			}
			if flag&same != 0 {
				v += int16(d)
			} else {
				v -= int16(d)
			}
		} else if flag&same == 0 {
			d, err := c.I16()
			if err != nil {
				return nil, err
			}
			v += d
		}
		coords[i] = v
	}
	return coords, nil
}

// synthesizeImpliedPoints makes implied points of a contour explicit.
//
// TrueType contours are made of quadratic Bézier curves, but the on-curve point between
// two consecutive off-curve points may be omitted; it is the midpoint of the two. We
// insert these midpoints as on-curve points. Between two consecutive on-curve points
// (a straight line) we insert the midpoint as an off-curve point. The result is a
// sequence of alternating on- and off-curve points for every contour, wrapping around
// at the contour's end. Trailing points duplicating the first point of a contour are
// dropped. The returned ends are the adjusted contour end indices.
func synthesizeImpliedPoints(xs, ys []int16, flags []uint8, endPts []uint16) ([]Point, []int) {
	points := make([]Point, 0, 2*len(flags))
	ends := make([]int, 0, len(endPts))
	at := func(i int) Point {
		return Point{X: xs[i], Y: ys[i], OnCurve: flags[i]&flagOnCurve != 0}
	}
	start := 0
	for _, e := range endPts {
		end := int(e)
		first := len(points)
		for j := start; j <= end; j++ {
			cur, next := at(j), at(start)
			if j < end {
				next = at(j + 1)
			}
			points = append(points, cur)
			if cur.OnCurve == next.OnCurve {
				points = append(points, midpoint(cur, next, !cur.OnCurve))
			}
		}
		for len(points)-first > 1 && sameLocation(points[len(points)-1], points[first]) {
			points = points[:len(points)-1]
		}
		ends = append(ends, len(points)-1)
		start = end + 1
	}
	return points, ends
}

func midpoint(a, b Point, onCurve bool) Point {
	return Point{
		X:       int16((int32(a.X) + int32(b.X)) / 2),
		Y:       int16((int32(a.Y) + int32(b.Y)) / 2),
		OnCurve: onCurve,
	}
}

func sameLocation(a, b Point) bool {
	return a.X == b.X && a.Y == b.Y
}

// --- Compound glyphs -------------------------------------------------------

// componentTransform positions a component glyph within a compound glyph.
// The 2×2 matrix is applied first, then the offset.
type componentTransform struct {
	dx, dy    int16
	xx, yx    float64 // xscale, scale01
	xy, yy    float64 // scale10, yscale
	hasMatrix bool
}

func (t componentTransform) apply(x, y int16) (int16, int16) {
	if !t.hasMatrix {
		return x + t.dx, y + t.dy
	}
	fx, fy := float64(x), float64(y)
	nx := math.Round(t.xx*fx + t.xy*fy)
	ny := math.Round(t.yx*fx + t.yy*fy)
	return int16(nx) + t.dx, int16(ny) + t.dy
}

func (p *Parser) readCompoundGlyph(g *Glyph, glyf TableRecord, offsets GlyphOffsets, chain []GlyphIndex) error {
	if len(chain) >= p.maxDepth {
		return fontError(TagGlyf, "Component", SeverityMajor, 0, ErrCompoundGlyphCycle,
			"nesting deeper than %d", p.maxDepth)
	}
	chain = append(chain[:len(chain):len(chain)], g.Index)
	c := p.cursor
	r := fieldReader{c: c}
	for {
		flags := r.u16()
		component := GlyphIndex(r.u16())
		t := componentTransform{}
		var arg1, arg2 int16
		if flags&argsAreWords != 0 {
			arg1, arg2 = r.i16(), r.i16()
		} else {
			b := r.u16()
			if flags&argsAreXYValues != 0 {
				arg1, arg2 = int16(int8(b>>8)), int16(int8(b))
			} else {
				arg1, arg2 = int16(b>>8), int16(b&0xff)
			}
		}
		if flags&argsAreXYValues != 0 {
			t.dx, t.dy = arg1, arg2
		} else {
			// arguments are point numbers for point matching, which we do not support
			tracer().Debugf("glyph %d: component %d positioned by point matching, using zero offset",
				g.Index, component)
		}
		switch {
		case flags&weHaveAScale != 0:
			s := f2dot14(r.i16())
			t.xx, t.yy, t.hasMatrix = s, s, true
		case flags&weHaveXYScale != 0:
			t.xx, t.yy, t.hasMatrix = f2dot14(r.i16()), f2dot14(r.i16()), true
		case flags&weHave2x2 != 0:
			t.xx, t.yx = f2dot14(r.i16()), f2dot14(r.i16())
			t.xy, t.yy = f2dot14(r.i16()), f2dot14(r.i16())
			t.hasMatrix = true
		}
		if r.err != nil {
			return r.err
		}
		if slices.Contains(chain, component) {
			return fontError(TagGlyf, "Component", SeverityMajor, 0, ErrCompoundGlyphCycle,
				"glyph %d references glyph %d, chain %v", g.Index, component, chain)
		}
		pos := c.Position()
		sub, err := p.readGlyph(glyf, offsets, component, chain)
		if err != nil {
			return err
		}
		if err = c.SetPosition(pos); err != nil {
			return err
		}
		g.appendComponent(component, sub, t)
		if flags&moreComponents == 0 {
			break
		}
	}
	// Instructions may follow the last component; we ignore them.
	g.NumContours = int16(len(g.EndPoints))
	tracer().Debugf("compound glyph %d: %d components, %d contours", g.Index,
		len(g.Components), g.NumContours)
	return nil
}

// appendComponent appends the outline of a positioned component glyph to g.
func (g *Glyph) appendComponent(gid GlyphIndex, sub *Glyph, t componentTransform) {
	g.Components = append(g.Components, gid)
	base := len(g.XCoordinates)
	for _, e := range sub.EndPoints {
		g.EndPoints = append(g.EndPoints, uint16(base+int(e)))
	}
	for i := range sub.XCoordinates {
		x, y := t.apply(sub.XCoordinates[i], sub.YCoordinates[i])
		g.XCoordinates = append(g.XCoordinates, x)
		g.YCoordinates = append(g.YCoordinates, y)
	}
	g.Flags = append(g.Flags, sub.Flags...)
	pbase := len(g.Points)
	for _, pt := range sub.Points {
		pt.X, pt.Y = t.apply(pt.X, pt.Y)
		g.Points = append(g.Points, pt)
	}
	for _, e := range sub.PointEnds {
		g.PointEnds = append(g.PointEnds, pbase+e)
	}
}

// f2dot14 converts a 2.14 fixed-point number.
func f2dot14(n int16) float64 {
	return float64(n) / 16384
}
