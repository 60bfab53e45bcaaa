package outline

import "github.com/npillmayer/ttglyph/ttf"

// square returns a 500×700 square, as decoded by package ttf.
func square() *ttf.Glyph {
	return &ttf.Glyph{
		Index:        7,
		NumContours:  1,
		XMax:         500,
		YMax:         700,
		EndPoints:    []uint16{3},
		XCoordinates: []int16{0, 0, 500, 500},
		YCoordinates: []int16{0, 700, 700, 0},
		Flags:        []uint8{1, 1, 1, 1},
		Points: []ttf.Point{
			{X: 0, Y: 0, OnCurve: true}, {X: 0, Y: 350}, {X: 0, Y: 700, OnCurve: true},
			{X: 250, Y: 700}, {X: 500, Y: 700, OnCurve: true}, {X: 500, Y: 350},
			{X: 500, Y: 0, OnCurve: true}, {X: 250, Y: 0},
		},
		PointEnds:       []int{7},
		AdvanceWidth:    600,
		LeftSideBearing: 0,
	}
}

// shifted returns a glyph with one contour starting off-curve, located below
// and left of the origin.
func shifted() *ttf.Glyph {
	return &ttf.Glyph{
		Index:        8,
		NumContours:  1,
		XMin:         -20,
		YMin:         -10,
		XMax:         -10,
		YMax:         0,
		EndPoints:    []uint16{2},
		XCoordinates: []int16{-20, -10, -10},
		YCoordinates: []int16{-10, 0, -10},
		Flags:        []uint8{0, 0, 1},
		Points: []ttf.Point{
			{X: -20, Y: -10}, {X: -15, Y: -5, OnCurve: true}, {X: -10, Y: 0}, {X: -10, Y: -10, OnCurve: true},
		},
		PointEnds:       []int{3},
		AdvanceWidth:    40,
		LeftSideBearing: -20,
	}
}
