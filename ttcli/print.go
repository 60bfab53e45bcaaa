package main

import (
	"fmt"
	"image"
	"strings"

	"github.com/npillmayer/ttglyph/outline"
	"github.com/npillmayer/ttglyph/ttf"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
)

func printDirectory(dir *ttf.Directory) {
	data := [][]string{
		{"Tag", "Offset", "Length", "Checksum"},
	}
	for _, rec := range dir.Records {
		data = append(data, []string{
			rec.Tag.String(),
			fmt.Sprintf("%d", rec.Offset),
			fmt.Sprintf("%d", rec.Length),
			fmt.Sprintf("%08x", rec.Checksum),
		})
	}
	pterm.Printf("font version %08x, %d tables\n", dir.Version, len(dir.Records))
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printGlyph(g *ttf.Glyph, cg outline.CachedGlyph) {
	pterm.Printf("glyph %d: %d contours, bbox (%d,%d)-(%d,%d), advance %d\n", g.Index,
		len(g.PointEnds), g.XMin, g.YMin, g.XMax, g.YMax, g.AdvanceWidth)
	if g.IsCompound() {
		pterm.Printf("compound of %s\n", formatComponents(g.Components))
	}
	if g.IsEmpty() {
		pterm.Println("glyph has no outline")
		return
	}
	start := 0
	for c, end := range cg.PointEnds {
		sb := strings.Builder{}
		for i := start; i <= end; i++ {
			mark := ""
			if cg.OnCurve[i] {
				mark = "*"
			}
			sb.WriteString(fmt.Sprintf(" (%.1f,%.1f)%s", cg.Points[i].X, cg.Points[i].Y, mark))
		}
		pterm.Printf("contour %d:%s\n", c, sb.String())
		start = end + 1
	}
	pterm.Printf("scaled box %.1f × %.1f\n", cg.BBox.URx, cg.BBox.URy)
}

func printMetrics(g *ttf.Glyph) {
	m := outline.Metrics(g)
	data := [][]string{
		{"Advance", "LSB", "RSB", "Width", "Height"},
		{
			fmt.Sprintf("%d", m.Advance),
			fmt.Sprintf("%d", m.LSB),
			fmt.Sprintf("%d", m.RSB),
			fmt.Sprintf("%d", m.BBox.Dx()),
			fmt.Sprintf("%d", m.BBox.Dy()),
		},
	}
	pterm.DefaultTable.WithHasHeader().WithData(data).Render()
}

func printSegments(g *ttf.Glyph, unitsPerEm uint16) {
	segs := outline.Segments(g, unitsPerEm, fixed.Int26_6(unitsPerEm))
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			pterm.Printf("M %s\n", formatPoint(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			pterm.Printf("L %s\n", formatPoint(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			pterm.Printf("Q %s %s\n", formatPoint(seg.Args[0]), formatPoint(seg.Args[1]))
		}
	}
}

func formatPoint(p fixed.Point26_6) string {
	return fmt.Sprintf("%d,%d", p.X, -p.Y)
}

func formatComponents(components []ttf.GlyphIndex) string {
	if len(components) == 0 {
		return "-"
	}
	parts := make([]string, len(components))
	for i, c := range components {
		parts[i] = fmt.Sprintf("%d", c)
	}
	return strings.Join(parts, ",")
}

// printPreview prints a rendered glyph, one character per pixel.
func printPreview(img *image.RGBA) {
	shades := []byte(" .:+#")
	b := img.Bounds()
	sb := strings.Builder{}
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			ink := 255 - int(img.RGBAAt(x, y).R)
			sb.WriteByte(shades[ink*(len(shades)-1)/255])
		}
		sb.WriteByte('\n')
	}
	pterm.Print(sb.String())
}
