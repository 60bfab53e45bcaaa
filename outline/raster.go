package outline

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
	"golang.org/x/image/math/fixed"
	"golang.org/x/image/vector"
)

// Render rasterizes segments, as returned by Segments, onto a white canvas of
// width × height pixels. The outline is drawn in black and centered on the canvas.
func Render(segs sfnt.Segments, width, height int) *image.RGBA {
	img := image.NewRGBA(image.Rect(0, 0, max(width, 0), max(height, 0)))
	draw.Draw(img, img.Bounds(), image.NewUniform(color.RGBA{255, 255, 255, 255}), image.Point{}, draw.Src)
	if len(segs) == 0 || width <= 0 || height <= 0 {
		return img
	}
	bounds := segs.Bounds()
	tx := float32(width)/2 - (float32(bounds.Min.X)+float32(bounds.Max.X))/128
	ty := float32(height)/2 - (float32(bounds.Min.Y)+float32(bounds.Max.Y))/128
	at := func(p fixed.Point26_6) (float32, float32) {
		return tx + float32(p.X)/64, ty + float32(p.Y)/64
	}
	rast := vector.NewRasterizer(width, height)
	rast.DrawOp = draw.Over
	for _, seg := range segs {
		switch seg.Op {
		case sfnt.SegmentOpMoveTo:
			rast.MoveTo(at(seg.Args[0]))
		case sfnt.SegmentOpLineTo:
			rast.LineTo(at(seg.Args[0]))
		case sfnt.SegmentOpQuadTo:
			x1, y1 := at(seg.Args[0])
			x2, y2 := at(seg.Args[1])
			rast.QuadTo(x1, y1, x2, y2)
		case sfnt.SegmentOpCubeTo:
			x1, y1 := at(seg.Args[0])
			x2, y2 := at(seg.Args[1])
			x3, y3 := at(seg.Args[2])
			rast.CubeTo(x1, y1, x2, y2, x3, y3)
		}
	}
	tracer().Debugf("rendering %d segments, bounds %v", len(segs), bounds)
	rast.Draw(img, img.Bounds(), image.Black, image.Point{})
	return img
}

// WritePNG writes img to a PNG file, creating the file's directory if necessary.
func WritePNG(outPath string, img image.Image) error {
	if dir := filepath.Dir(outPath); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("cannot create output directory: %w", err)
		}
	}
	f, err := os.Create(outPath)
	if err != nil {
		return fmt.Errorf("cannot create output file: %w", err)
	}
	if err := png.Encode(f, img); err != nil {
		f.Close()
		return fmt.Errorf("cannot encode png: %w", err)
	}
	return f.Close()
}
