package fontload

import (
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/image/font/sfnt"
)

// FontFile is the raw content of a font file.
type FontFile struct {
	Filepath string
	Binary   []byte
}

// LoadFontFile reads a TrueType font (TTF) from a file.
func LoadFontFile(fontfile string) (*FontFile, error) {
	switch ext := filepath.Ext(fontfile); ext {
	case ".ttf", ".TTF", ".otf", ".OTF", "":
	default:
		return nil, fmt.Errorf("font file %s: unsupported extension %q", fontfile, ext)
	}
	bytez, err := os.ReadFile(fontfile)
	if err != nil {
		return nil, err
	}
	return &FontFile{Filepath: fontfile, Binary: bytez}, nil
}

// FontName returns the full name of a font from its 'name' table.
// Reading the name is best effort: fonts without a usable 'name' table, or which
// sfnt fails to parse, yield false.
func FontName(fbytes []byte) (string, bool) {
	f, err := sfnt.Parse(fbytes)
	if err != nil {
		return "", false
	}
	name, err := f.Name(nil, sfnt.NameIDFull)
	if err != nil || name == "" {
		return "", false
	}
	return name, true
}
