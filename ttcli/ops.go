package main

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/npillmayer/ttglyph/outline"
	"github.com/npillmayer/ttglyph/ttf"
	"github.com/pterm/pterm"
	"golang.org/x/image/math/fixed"
)

func tablesOp(intp *Intp, op *Op) (error, bool) {
	printDirectory(intp.font.Directory())
	return nil, false
}

func glyphOp(intp *Intp, op *Op) (error, bool) {
	gid, err := intp.glyphArg(op)
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	intp.show(g)
	return nil, false
}

func charOp(intp *Intp, op *Op) (error, bool) {
	r, size := utf8.DecodeRuneInString(op.arg)
	if op.noArg() || size != len(op.arg) {
		return errors.New("char expects a single character"), false
	}
	gid, ok := intp.font.GlyphIndex(r)
	if !ok {
		pterm.Printf("%#U is not mapped by the font\n", r)
		return nil, false
	}
	pterm.Printf("%#U => glyph %d\n", r, gid)
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	intp.show(g)
	return nil, false
}

func textOp(intp *Intp, op *Op) (error, bool) {
	glyphs, err := intp.font.GlyphsForText(op.arg)
	if err != nil {
		return err, false
	}
	data := [][]string{
		{"Glyph", "Contours", "Points", "Advance", "Components"},
	}
	for _, g := range glyphs {
		intp.cache.Update(g, intp.zoom)
		data = append(data, []string{
			fmt.Sprintf("%d", g.Index),
			fmt.Sprintf("%d", len(g.PointEnds)),
			fmt.Sprintf("%d", len(g.Points)),
			fmt.Sprintf("%d", g.AdvanceWidth),
			formatComponents(g.Components),
		})
	}
	pterm.Printf("%d glyphs for %q\n", len(glyphs), op.arg)
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	return nil, false
}

func zoomOp(intp *Intp, op *Op) (error, bool) {
	if op.noArg() {
		pterm.Printf("zoom factor is %.2f\n", intp.zoom)
		return nil, false
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(op.arg), 64)
	if err != nil || z <= 0 {
		return fmt.Errorf("invalid zoom factor: %v", op.arg), false
	}
	intp.zoom = z
	tracer().Infof("zoom factor set to %.2f", z)
	return nil, false
}

func metricsOp(intp *Intp, op *Op) (error, bool) {
	gid, err := intp.glyphArg(op)
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	printMetrics(g)
	return nil, false
}

func segmentsOp(intp *Intp, op *Op) (error, bool) {
	gid, err := intp.glyphArg(op)
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	printSegments(g, intp.font.UnitsPerEm())
	return nil, false
}

// Pixels per em for rendering, and canvas sizes.
const (
	previewPPEM = 24
	previewSize = 32
	pngPPEM     = 64
	pngSize     = 96
)

func renderOp(intp *Intp, op *Op) (error, bool) {
	idArg, outPath, _ := strings.Cut(strings.TrimSpace(op.arg), " ")
	gid, err := intp.glyphArg(&Op{code: op.code, arg: idArg})
	if err != nil {
		return err, false
	}
	g, err := intp.font.Glyph(gid)
	if err != nil {
		return err, false
	}
	upem := intp.font.UnitsPerEm()
	if outPath = strings.TrimSpace(outPath); outPath == "" {
		segs := outline.Segments(g, upem, fixed.I(previewPPEM))
		printPreview(outline.Render(segs, previewSize, previewSize))
		return nil, false
	}
	segs := outline.Segments(g, upem, fixed.I(pngPPEM))
	if err = outline.WritePNG(outPath, outline.Render(segs, pngSize, pngSize)); err != nil {
		return err, false
	}
	pterm.Printf("wrote %s (glyph %d)\n", outPath, gid)
	return nil, false
}

// show prints a glyph's outline, as transformed by the outline cache.
func (intp *Intp) show(g *ttf.Glyph) {
	cg := intp.cache.Update(g, intp.zoom)
	printGlyph(g, cg)
}

func (intp *Intp) glyphArg(op *Op) (ttf.GlyphIndex, error) {
	if op.noArg() {
		return 0, errors.New("glyph index expected")
	}
	n, err := strconv.Atoi(strings.TrimSpace(op.arg))
	if err != nil || n < 0 || n >= intp.font.NumGlyphs() {
		return 0, fmt.Errorf("invalid glyph index: %v", op.arg)
	}
	return ttf.GlyphIndex(n), nil
}
