package main

import (
	"strings"

	"github.com/pterm/pterm"
)

func helpOp(intp *Intp, op *Op) (error, bool) {
	help(op.arg)
	return nil, false
}

func help(topic string) {
	tracer().Debugf("help %v", topic)
	t := strings.ToLower(strings.TrimSpace(topic))
	switch t {
	case "glyph", "glyf", "points":
		pterm.Info.Println("glyph:<id>")
		pterm.Println(`
	Decodes the outline of a glyph from table 'glyf' and lists its contours.
	Points marked with * are on the curve. Implied points have been made
	explicit, such that on-curve and off-curve points alternate:
	+----+----+----+----+----+
	| on | off| on | off| ...|
	+----+----+----+----+----+
	Compound glyphs list the glyph indices of their components.
	`)
	case "zoom", "cache":
		pterm.Info.Println("zoom:<factor>")
		pterm.Println(`
	Sets the zoom factor of the outline cache. Glyphs shown afterwards are
	normalized to their bounding box and scaled by the factor. Changing the
	zoom factor drops all cached outlines.
	`)
	case "render", "png":
		pterm.Info.Println("render:<id> [file.png]")
		pterm.Println(`
	Rasterizes the outline of a glyph. Without a file name a small preview is
	printed; otherwise the glyph is rendered at 64 pixels per em and written
	to the file in PNG format.
	`)
	default:
		pterm.Info.Println("Commands")
		data := [][]string{
			{"Command", "Description"},
			{"tables", "list the tables of the font"},
			{"glyph:<id>", "show the outline of a glyph"},
			{"char:<c>", "show the glyph for a character"},
			{"text:<s>", "map text to glyphs"},
			{"zoom:<f>", "set the zoom factor of the outline cache"},
			{"metrics:<id>", "show the horizontal metrics of a glyph"},
			{"segments:<id>", "show a glyph as quadratic segments"},
			{"render:<id> [file]", "rasterize a glyph, as preview or to a PNG file"},
			{"help:<topic>", "help on glyph, zoom or render"},
			{"quit", "leave"},
		}
		pterm.DefaultTable.WithHasHeader().WithData(data).Render()
	}
}
