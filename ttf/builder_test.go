package ttf

// Synthetic fonts for tests. Fonts are assembled table by table; all tables
// are 4-byte aligned.

type bw struct {
	b []byte
}

func (w *bw) u8(v ...uint8) *bw {
	w.b = append(w.b, v...)
	return w
}

func (w *bw) u16(v ...uint16) *bw {
	for _, n := range v {
		w.b = append(w.b, byte(n>>8), byte(n))
	}
	return w
}

func (w *bw) i16(v ...int16) *bw {
	for _, n := range v {
		w.u16(uint16(n))
	}
	return w
}

func (w *bw) u32(v ...uint32) *bw {
	for _, n := range v {
		w.b = append(w.b, byte(n>>24), byte(n>>16), byte(n>>8), byte(n))
	}
	return w
}

type testTable struct {
	tag  string
	data []byte
}

func buildFont(tables ...testTable) []byte {
	n := len(tables)
	w := &bw{}
	w.u32(VersionTrueType).u16(uint16(n), 0, 0, 0)
	offset := 12 + 16*n
	var body []byte
	for _, t := range tables {
		for (offset+len(body))%4 != 0 {
			body = append(body, 0)
		}
		w.b = append(w.b, (t.tag + "    ")[:4]...)
		w.u32(0, uint32(offset+len(body)), uint32(len(t.data)))
		body = append(body, t.data...)
	}
	return append(w.b, body...)
}

func headData(upem uint16, locFormat int16, magic uint32) []byte {
	w := &bw{}
	w.u32(0x00010000, 0x00010000, 0, magic) // version, fontRevision, checksumAdjustment, magic
	w.u16(0x000b, upem)                     // flags, unitsPerEm
	w.u32(0, 0, 0, 0)                       // created, modified
	w.i16(-10, -200, 1000, 800)             // xMin, yMin, xMax, yMax
	w.u16(0, 8)                             // macStyle, lowestRecPPEM
	w.i16(2, locFormat, 0)                  // fontDirectionHint, indexToLocFormat, glyphDataFormat
	return w.b
}

func maxpData(numGlyphs uint16) []byte {
	return (&bw{}).u32(0x00005000).u16(numGlyphs).b
}

func hheaData(numHMetrics uint16) []byte {
	w := &bw{}
	w.u32(0x00010000)
	w.i16(800, -200, 90) // ascender, descender, lineGap
	w.u16(1200)          // advanceWidthMax
	w.i16(0, 0, 0, 1, 0, 0, 0, 0, 0, 0, 0)
	w.u16(numHMetrics)
	return w.b
}

// hmtxData creates numHMetrics explicit metrics (500+10*i, i), followed by
// left side bearings -i for the remaining glyphs.
func hmtxData(numHMetrics, numGlyphs int) []byte {
	w := &bw{}
	for i := 0; i < numHMetrics; i++ {
		w.u16(uint16(500 + 10*i)).i16(int16(i))
	}
	for i := numHMetrics; i < numGlyphs; i++ {
		w.i16(int16(-i))
	}
	return w.b
}

func locaData(format int16, offsets []uint32) []byte {
	w := &bw{}
	for _, o := range offsets {
		if format == 0 {
			w.u16(uint16(o / 2))
		} else {
			w.u32(o)
		}
	}
	return w.b
}

// glyfData concatenates glyphs, padding each one to 4 bytes, and returns the
// table together with the glyph offsets.
func glyfData(glyphs [][]byte) ([]byte, []uint32) {
	var table []byte
	offsets := make([]uint32, 0, len(glyphs)+1)
	for _, g := range glyphs {
		offsets = append(offsets, uint32(len(table)))
		table = append(table, g...)
		for len(table)%4 != 0 {
			table = append(table, 0)
		}
	}
	offsets = append(offsets, uint32(len(table)))
	return table, offsets
}

// --- Glyphs ----------------------------------------------------------------

type tp struct {
	x, y int16
	on   bool
}

// simpleGlyph encodes contours with 16-bit coordinate deltas and no flag repeats.
func simpleGlyph(contours ...[]tp) []byte {
	var pts []tp
	var ends []uint16
	for _, c := range contours {
		pts = append(pts, c...)
		ends = append(ends, uint16(len(pts)-1))
	}
	var xmin, ymin, xmax, ymax int16
	for i, p := range pts {
		if i == 0 || p.x < xmin {
			xmin = p.x
		}
		if i == 0 || p.y < ymin {
			ymin = p.y
		}
		if i == 0 || p.x > xmax {
			xmax = p.x
		}
		if i == 0 || p.y > ymax {
			ymax = p.y
		}
	}
	w := &bw{}
	w.i16(int16(len(contours)), xmin, ymin, xmax, ymax)
	w.u16(ends...)
	w.u16(2).u8(0xb0, 0x01) // two bytes of instructions
	for _, p := range pts {
		if p.on {
			w.u8(flagOnCurve)
		} else {
			w.u8(0)
		}
	}
	var prev int16
	for _, p := range pts {
		w.i16(p.x - prev)
		prev = p.x
	}
	prev = 0
	for _, p := range pts {
		w.i16(p.y - prev)
		prev = p.y
	}
	return w.b
}

type component struct {
	gid    uint16
	flags  uint16
	arg1   int16
	arg2   int16
	matrix []int16 // F2Dot14 values: 1 for scale, 2 for x/y scale, 4 for 2×2
}

// xyComponent is a component positioned by offset (dx, dy).
func xyComponent(gid uint16, dx, dy int16) component {
	return component{gid: gid, flags: argsAreWords | argsAreXYValues, arg1: dx, arg2: dy}
}

func compoundGlyph(components ...component) []byte {
	w := &bw{}
	w.i16(-1, 0, 0, 0, 0)
	for i, c := range components {
		flags := c.flags
		switch len(c.matrix) {
		case 1:
			flags |= weHaveAScale
		case 2:
			flags |= weHaveXYScale
		case 4:
			flags |= weHave2x2
		}
		if i < len(components)-1 {
			flags |= moreComponents
		}
		w.u16(flags, c.gid)
		if flags&argsAreWords != 0 {
			w.i16(c.arg1, c.arg2)
		} else {
			w.u8(uint8(c.arg1), uint8(c.arg2))
		}
		w.i16(c.matrix...)
	}
	return w.b
}

// --- Character map ---------------------------------------------------------

type seg struct {
	start, end  uint16
	delta       int16
	rangeOffset uint16
}

func format4Data(segs []seg, glyphIDs []uint16) []byte {
	n := len(segs)
	w := &bw{}
	w.u16(4, uint16(16+8*n+2*len(glyphIDs)), 0, uint16(2*n), 0, 0, 0)
	for _, s := range segs {
		w.u16(s.end)
	}
	w.u16(0) // reservedPad
	for _, s := range segs {
		w.u16(s.start)
	}
	for _, s := range segs {
		w.i16(s.delta)
	}
	for _, s := range segs {
		w.u16(s.rangeOffset)
	}
	w.u16(glyphIDs...)
	return w.b
}

// format6Data is a trimmed table mapping nothing.
func format6Data() []byte {
	return (&bw{}).u16(6, 10, 0, 0, 0).b
}

// format12Data is a segmented coverage table with no groups.
func format12Data() []byte {
	return (&bw{}).u16(12, 0).u32(16, 0, 0).b
}

type cmapSub struct {
	platform, encoding uint16
	data               []byte
}

func cmapData(version uint16, subs ...cmapSub) []byte {
	w := &bw{}
	w.u16(version, uint16(len(subs)))
	offset := 4 + 8*len(subs)
	for _, s := range subs {
		w.u16(s.platform, s.encoding).u32(uint32(offset))
		offset += len(s.data)
	}
	for _, s := range subs {
		w.b = append(w.b, s.data...)
	}
	return w.b
}

// --- Complete fonts --------------------------------------------------------

// Standard test glyphs.
var (
	squareContour = []tp{{0, 0, true}, {0, 700, true}, {500, 700, true}, {500, 0, true}}
	offOffContour = []tp{{0, 0, false}, {10, 10, false}, {10, 0, true}}
)

// standardCmap maps 'A'…'C' to glyphs 2…4 and ' ' to glyph 1.
func standardCmap() []byte {
	return cmapData(0,
		cmapSub{PlatformUnicode, 3, format4Data([]seg{
			{32, 32, -31, 0},
			{65, 67, -63, 0},
			{0xffff, 0xffff, 1, 0},
		}, nil)},
		cmapSub{PlatformWindows, 1, format4Data([]seg{
			{32, 32, -31, 0},
			{65, 67, -63, 0},
			{0xffff, 0xffff, 1, 0},
		}, nil)},
	)
}

type testFont struct {
	locFormat   int16
	glyphs      [][]byte
	numHMetrics int    // 0 means one explicit metric per glyph
	cmap        []byte // nil means standardCmap
	omit        string // tag of a table to leave out
	headMagic   uint32 // 0 means the correct magic number
	glyfSlack   int    // bytes to cut from the end of 'glyf'
}

// standardGlyphs are: 0 a square, 1 empty, 2 a contour with consecutive off-curve
// points, 3 glyph 2 shifted by (100,0).
func standardGlyphs() [][]byte {
	return [][]byte{
		simpleGlyph(squareContour),
		nil,
		simpleGlyph(offOffContour),
		compoundGlyph(xyComponent(2, 100, 0)),
	}
}

func (s testFont) build() []byte {
	if s.glyphs == nil {
		s.glyphs = standardGlyphs()
	}
	n := len(s.glyphs)
	if s.numHMetrics == 0 {
		s.numHMetrics = n
	}
	if s.cmap == nil {
		s.cmap = standardCmap()
	}
	if s.headMagic == 0 {
		s.headMagic = headMagicNumber
	}
	glyf, offsets := glyfData(s.glyphs)
	glyf = glyf[:len(glyf)-s.glyfSlack]
	tables := []testTable{
		{"cmap", s.cmap},
		{"glyf", glyf},
		{"head", headData(1000, s.locFormat, s.headMagic)},
		{"hhea", hheaData(uint16(s.numHMetrics))},
		{"hmtx", hmtxData(s.numHMetrics, n)},
		{"loca", locaData(s.locFormat, offsets)},
		{"maxp", maxpData(uint16(n))},
	}
	var use []testTable
	for _, t := range tables {
		if t.tag != s.omit {
			use = append(use, t)
		}
	}
	return buildFont(use...)
}
