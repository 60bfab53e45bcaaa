package ttf

import (
	"errors"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gotestingadapter"
)

// loadTestFont parses the tables needed for glyph decoding.
func loadTestFont(t *testing.T, tf testFont) (*Parser, GlyphOffsets, *HmtxTable) {
	t.Helper()
	p, err := NewParser(tf.build())
	if err != nil {
		t.Fatal(err)
	}
	maxp, err := p.ReadMaxp()
	if err != nil {
		t.Fatal(err)
	}
	hhea, err := p.ReadHhea()
	if err != nil {
		t.Fatal(err)
	}
	hmtx, err := p.ReadHmtx(hhea.NumHMetrics, maxp.NumGlyphs)
	if err != nil {
		t.Fatal(err)
	}
	offsets, err := p.ReadGlyphOffsets(maxp.NumGlyphs, tf.locFormat)
	if err != nil {
		t.Fatal(err)
	}
	return p, offsets, hmtx
}

func TestDecodeFlags(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	tests := []struct {
		name      string
		data      []byte
		numPoints int
		want      []uint8
	}{
		{"Repeat", []byte{0x09, 3}, 4, []uint8{0x09, 0x09, 0x09, 0x09}},
		{"Mixed", []byte{0x01, 0x08, 1, 0x33}, 4, []uint8{0x01, 0x08, 0x08, 0x33}},
		{"Overshoot", []byte{0x09, 5}, 4, []uint8{0x09, 0x09, 0x09, 0x09}},
		{"NoPoints", []byte{}, 0, []uint8{}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			flags, err := decodeFlags(NewCursor(tt.data), tt.numPoints)
			if err != nil {
				t.Fatal(err)
			}
			if len(flags) != tt.numPoints {
				t.Errorf("expected %d flags, got %d", tt.numPoints, len(flags))
			}
			if diff := cmp.Diff(tt.want, flags); diff != "" {
				t.Errorf("flags mismatch (-want +got):\n%s", diff)
			}
		})
	}
	if _, err := decodeFlags(NewCursor([]byte{0x08}), 3); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds for missing repeat count, got %v", err)
	}
}

func TestDecodeCoordinates(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	tests := []struct {
		name  string
		flags []uint8
		data  []byte
		want  []int16
	}{
		{"ShortVectors", []uint8{flagXShort | flagXSame, flagXShort}, []byte{5, 3}, []int16{5, 2}},
		{"Same", []uint8{flagXShort | flagXSame, flagXSame}, []byte{7}, []int16{7, 7}},
		{"LongVectors", []uint8{0, 0}, []byte{0x01, 0x00, 0xff, 0x00}, []int16{256, 0}},
		{"Mixed", []uint8{0, flagXShort, flagXSame}, []byte{0xff, 0xf6, 10}, []int16{-10, -20, -20}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, err := decodeCoordinates(NewCursor(tt.data), tt.flags, flagXShort, flagXSame)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.want, xs); diff != "" {
				t.Errorf("coordinates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesizeImpliedPoints(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	tests := []struct {
		name    string
		contour []tp
		want    []Point
	}{
		{"OffOff", offOffContour, []Point{
			{0, 0, false}, {5, 5, true}, {10, 10, false}, {10, 0, true},
		}},
		{"OnOn", squareContour, []Point{
			{0, 0, true}, {0, 350, false}, {0, 700, true}, {250, 700, false},
			{500, 700, true}, {500, 350, false}, {500, 0, true}, {250, 0, false},
		}},
		{"DuplicateClosingPoint", []tp{{0, 0, true}, {10, 10, false}, {20, 0, true}, {0, 0, true}}, []Point{
			{0, 0, true}, {10, 10, false}, {20, 0, true}, {10, 0, false},
		}},
		{"SinglePoint", []tp{{3, 4, true}}, []Point{{3, 4, true}}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			xs, ys, flags := splitContour(tt.contour)
			points, ends := synthesizeImpliedPoints(xs, ys, flags, []uint16{uint16(len(tt.contour) - 1)})
			if diff := cmp.Diff(tt.want, points); diff != "" {
				t.Errorf("points mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff([]int{len(tt.want) - 1}, ends); diff != "" {
				t.Errorf("contour ends mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestSynthesizeImpliedPointsContourEnds(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	// first contour grows by 1, second one by 4
	contours := append(append([]tp{}, offOffContour...), squareContour...)
	xs, ys, flags := splitContour(contours)
	points, ends := synthesizeImpliedPoints(xs, ys, flags, []uint16{2, 6})
	if diff := cmp.Diff([]int{3, 11}, ends); diff != "" {
		t.Errorf("contour ends mismatch (-want +got):\n%s", diff)
	}
	assertAlternating(t, points, ends)
}

func TestReadSimpleGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	for _, format := range []int16{0, 1} {
		p, offsets, hmtx := loadTestFont(t, testFont{locFormat: format})
		g, err := p.ReadGlyph(offsets, 2, hmtx)
		if err != nil {
			t.Fatalf("loca format %d: %v", format, err)
		}
		if g.NumContours != 1 || g.IsCompound() {
			t.Errorf("expected simple glyph with 1 contour, got %d contours", g.NumContours)
		}
		if g.XMin != 0 || g.YMin != 0 || g.XMax != 10 || g.YMax != 10 {
			t.Errorf("bounding box = (%d,%d)-(%d,%d); want (0,0)-(10,10)", g.XMin, g.YMin, g.XMax, g.YMax)
		}
		if diff := cmp.Diff([]uint16{2}, g.EndPoints); diff != "" {
			t.Errorf("end points mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int16{0, 10, 10}, g.XCoordinates); diff != "" {
			t.Errorf("x coordinates mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int16{0, 10, 0}, g.YCoordinates); diff != "" {
			t.Errorf("y coordinates mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]Point{{0, 0, false}, {5, 5, true}, {10, 10, false}, {10, 0, true}}, g.Points); diff != "" {
			t.Errorf("points mismatch (-want +got):\n%s", diff)
		}
		if diff := cmp.Diff([]int{3}, g.PointEnds); diff != "" {
			t.Errorf("point ends mismatch (-want +got):\n%s", diff)
		}
		if g.AdvanceWidth != 520 || g.LeftSideBearing != 2 {
			t.Errorf("metrics = %d, %d; want 520, 2", g.AdvanceWidth, g.LeftSideBearing)
		}
	}
}

func TestReadShortVectorGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	// one contour (10,0) (20,0) (20,10) (10,10), all on-curve, encoded with short
	// vectors and flag repeats
	w := &bw{}
	w.i16(1, 10, 0, 20, 10)
	w.u16(3) // end point
	w.u16(0) // no instructions
	w.u8(flagOnCurve|flagXShort|flagXSame|flagYSame|flagRepeat, 1)
	w.u8(flagOnCurve|flagXSame|flagYShort|flagYSame)
	w.u8(flagOnCurve | flagXShort | flagYSame)
	w.u8(10, 10, 10) // x: +10, +10, -10
	w.u8(10)         // y: +10
	glyphs := [][]byte{simpleGlyph(squareContour), w.b}
	p, offsets, _ := loadTestFont(t, testFont{glyphs: glyphs})
	g, err := p.ReadGlyph(offsets, 1, nil)
	if err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff([]int16{10, 20, 20, 10}, g.XCoordinates); diff != "" {
		t.Errorf("x coordinates mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int16{0, 0, 10, 10}, g.YCoordinates); diff != "" {
		t.Errorf("y coordinates mismatch (-want +got):\n%s", diff)
	}
	if len(g.Points) != 8 {
		t.Errorf("expected 8 processed points, got %d", len(g.Points))
	}
	if g.AdvanceWidth != 0 {
		t.Errorf("expected no metrics without hmtx, got advance %d", g.AdvanceWidth)
	}
}

func TestReadEmptyGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	p, offsets, hmtx := loadTestFont(t, testFont{})
	g, err := p.ReadGlyph(offsets, 1, hmtx)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsEmpty() || g.NumContours != 0 || len(g.PointEnds) != 0 || g.Contours() != nil {
		t.Errorf("expected empty glyph, got %+v", g)
	}
	if g.AdvanceWidth != 510 {
		t.Errorf("expected advance width 510 for empty glyph, got %d", g.AdvanceWidth)
	}
}

func TestReadGlyphOutOfRange(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	p, offsets, hmtx := loadTestFont(t, testFont{})
	for _, gid := range []GlyphIndex{4, 5, 0xffff} {
		if _, err := p.ReadGlyph(offsets, gid, hmtx); !errors.Is(err, ErrGlyphIndexOutOfRange) {
			t.Errorf("glyph %d: expected ErrGlyphIndexOutOfRange, got %v", gid, err)
		}
	}
}

func TestReadGlyphTruncated(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	p, offsets, hmtx := loadTestFont(t, testFont{glyfSlack: 4})
	if _, err := p.ReadGlyph(offsets, 3, hmtx); !errors.Is(err, ErrOutOfBounds) {
		t.Errorf("expected ErrOutOfBounds, got %v", err)
	}
	if _, err := p.ReadGlyph(offsets, 2, hmtx); err != nil {
		t.Errorf("glyph 2 should still decode: %v", err)
	}
}

func TestReadMalformedGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	bad := (&bw{}).i16(2, 0, 0, 0, 0).u16(3, 1, 0).b // end points decrease
	p, offsets, _ := loadTestFont(t, testFont{glyphs: [][]byte{bad}})
	if _, err := p.ReadGlyph(offsets, 0, nil); !errors.Is(err, ErrMalformedGlyph) {
		t.Errorf("expected ErrMalformedGlyph, got %v", err)
	}
}

func TestReadCompoundGlyph(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	p, offsets, hmtx := loadTestFont(t, testFont{})
	sub, err := p.ReadGlyph(offsets, 2, hmtx)
	if err != nil {
		t.Fatal(err)
	}
	g, err := p.ReadGlyph(offsets, 3, hmtx)
	if err != nil {
		t.Fatal(err)
	}
	if !g.IsCompound() || g.NumContours != 1 {
		t.Fatalf("expected compound glyph with 1 contour, got %d contours", g.NumContours)
	}
	if diff := cmp.Diff([]GlyphIndex{2}, g.Components); diff != "" {
		t.Errorf("components mismatch (-want +got):\n%s", diff)
	}
	for i := range sub.XCoordinates {
		if g.XCoordinates[i] != sub.XCoordinates[i]+100 || g.YCoordinates[i] != sub.YCoordinates[i] {
			t.Errorf("point %d: (%d,%d) is not (%d,%d) shifted by (100,0)", i,
				g.XCoordinates[i], g.YCoordinates[i], sub.XCoordinates[i], sub.YCoordinates[i])
		}
	}
	want := []Point{{100, 0, false}, {105, 5, true}, {110, 10, false}, {110, 0, true}}
	if diff := cmp.Diff(want, g.Points); diff != "" {
		t.Errorf("points mismatch (-want +got):\n%s", diff)
	}
	if g.AdvanceWidth != 530 {
		t.Errorf("expected advance width of compound glyph 530, got %d", g.AdvanceWidth)
	}
}

func TestReadCompoundGlyphConcatenation(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	glyphs := [][]byte{
		simpleGlyph(squareContour),
		simpleGlyph(offOffContour),
		compoundGlyph(xyComponent(0, 0, 0), xyComponent(1, 0, 1000)),
	}
	p, offsets, _ := loadTestFont(t, testFont{glyphs: glyphs})
	g, err := p.ReadGlyph(offsets, 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if g.NumContours != 2 {
		t.Fatalf("expected 2 contours, got %d", g.NumContours)
	}
	if diff := cmp.Diff([]uint16{3, 6}, g.EndPoints); diff != "" {
		t.Errorf("end points mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]int{7, 11}, g.PointEnds); diff != "" {
		t.Errorf("point ends mismatch (-want +got):\n%s", diff)
	}
	contours := g.Contours()
	if len(contours) != 2 || contours[1][1] != (Point{5, 1005, true}) {
		t.Errorf("second contour should be shifted by (0,1000), got %v", contours)
	}
	assertAlternating(t, g.Points, g.PointEnds)
}

func TestReadCompoundGlyphTransforms(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	tests := []struct {
		name   string
		comp   component
		xs, ys []int16
	}{
		{"Scale", component{gid: 0, flags: argsAreXYValues, arg1: 10, matrix: []int16{8192}},
			[]int16{10, 10, 260, 260}, []int16{0, 350, 350, 0}},
		{"XYScale", component{gid: 0, flags: argsAreWords | argsAreXYValues, matrix: []int16{16384, -16384}},
			[]int16{0, 0, 500, 500}, []int16{0, -700, -700, 0}},
		{"Rotate", component{gid: 0, flags: argsAreWords | argsAreXYValues, matrix: []int16{0, 16384, -16384, 0}},
			[]int16{0, -700, -700, 0}, []int16{0, 0, 500, 500}},
		{"NegativeByteOffset", component{gid: 0, flags: argsAreXYValues, arg1: -5, arg2: -1},
			[]int16{-5, -5, 495, 495}, []int16{-1, 699, 699, -1}},
		{"PointMatching", component{gid: 0, flags: 0, arg1: 1, arg2: 2},
			[]int16{0, 0, 500, 500}, []int16{0, 700, 700, 0}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			glyphs := [][]byte{simpleGlyph(squareContour), compoundGlyph(tt.comp)}
			p, offsets, _ := loadTestFont(t, testFont{glyphs: glyphs})
			g, err := p.ReadGlyph(offsets, 1, nil)
			if err != nil {
				t.Fatal(err)
			}
			if diff := cmp.Diff(tt.xs, g.XCoordinates); diff != "" {
				t.Errorf("x coordinates mismatch (-want +got):\n%s", diff)
			}
			if diff := cmp.Diff(tt.ys, g.YCoordinates); diff != "" {
				t.Errorf("y coordinates mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestCompoundGlyphCycles(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	tracing.Select("ttglyph.ttf").SetTraceLevel(tracing.LevelError)
	//
	glyphs := [][]byte{
		simpleGlyph(squareContour),
		compoundGlyph(xyComponent(1, 0, 0)),                       // references itself
		compoundGlyph(xyComponent(0, 0, 0), xyComponent(3, 0, 0)), // 2 -> 3 -> 2
		compoundGlyph(xyComponent(2, 0, 0)),
	}
	p, offsets, hmtx := loadTestFont(t, testFont{glyphs: glyphs})
	for _, gid := range []GlyphIndex{1, 2, 3} {
		if _, err := p.ReadGlyph(offsets, gid, hmtx); !errors.Is(err, ErrCompoundGlyphCycle) {
			t.Errorf("glyph %d: expected ErrCompoundGlyphCycle, got %v", gid, err)
		}
	}
	if _, err := p.ReadGlyph(offsets, 0, hmtx); err != nil {
		t.Errorf("parser should recover after cycles: %v", err)
	}
}

func TestCompoundGlyphDepth(t *testing.T) {
	teardown := gotestingadapter.QuickConfig(t, "ttglyph.ttf")
	defer teardown()
	//
	glyphs := [][]byte{
		simpleGlyph(squareContour),
		compoundGlyph(xyComponent(0, 1, 0)),
		compoundGlyph(xyComponent(1, 1, 0)),
		compoundGlyph(xyComponent(2, 1, 0)),
	}
	p, offsets, hmtx := loadTestFont(t, testFont{glyphs: glyphs})
	g, err := p.ReadGlyph(offsets, 3, hmtx)
	if err != nil {
		t.Fatalf("default depth should allow 3 levels: %v", err)
	}
	if g.XCoordinates[0] != 3 {
		t.Errorf("expected accumulated offset 3, got %d", g.XCoordinates[0])
	}
	p.SetMaxCompoundDepth(2)
	if _, err = p.ReadGlyph(offsets, 2, hmtx); err != nil {
		t.Errorf("depth 2 should allow glyph 2: %v", err)
	}
	if _, err = p.ReadGlyph(offsets, 3, hmtx); !errors.Is(err, ErrCompoundGlyphCycle) {
		t.Errorf("expected ErrCompoundGlyphCycle beyond depth 2, got %v", err)
	}
}

// --- Helpers ---------------------------------------------------------------

func splitContour(contour []tp) ([]int16, []int16, []uint8) {
	xs := make([]int16, len(contour))
	ys := make([]int16, len(contour))
	flags := make([]uint8, len(contour))
	for i, p := range contour {
		xs[i], ys[i] = p.x, p.y
		if p.on {
			flags[i] = flagOnCurve
		}
	}
	return xs, ys, flags
}

// assertAlternating checks that on-curve and off-curve points alternate within
// every contour.
func assertAlternating(t *testing.T, points []Point, ends []int) {
	t.Helper()
	start := 0
	for c, end := range ends {
		for i := start; i < end; i++ {
			if points[i].OnCurve == points[i+1].OnCurve {
				t.Errorf("contour %d: points %d and %d are both on-curve=%v", c, i, i+1, points[i].OnCurve)
			}
		}
		start = end + 1
	}
}
