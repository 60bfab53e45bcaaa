package ttglyph

import (
	"runtime"
	"strconv"
	"strings"

	"github.com/npillmayer/ttglyph/ttf"
)

// Configuration keys understood by ConfigFrom.
const (
	KeyCmapPlatform = "cmap.platform"
	KeyGlyfMaxDepth = "glyf.maxdepth"
)

// Config holds options for parsing fonts.
type Config struct {
	PlatformPreference uint16 // cmap platform ID tried first, see ttf.Parser.SelectSubtable
	MaxCompoundDepth   int    // maximum nesting of compound glyphs
}

// DefaultConfig returns a configuration suitable for the host platform.
func DefaultConfig() Config {
	return Config{
		PlatformPreference: HostPlatform(runtime.GOOS),
		MaxCompoundDepth:   ttf.MaxCompoundDepth,
	}
}

// HostPlatform returns the preferred cmap platform ID for an operating system,
// given as runtime.GOOS: Windows for "windows", Unicode otherwise.
func HostPlatform(goos string) uint16 {
	if goos == "windows" {
		return ttf.PlatformWindows
	}
	return ttf.PlatformUnicode
}

// Configuration is the subset of a schuko configuration we read options from,
// e.g. a testconfig.Conf.
type Configuration interface {
	IsSet(key string) bool
	GetString(key string) string
	GetInt(key string) int
}

// ConfigFrom returns the default configuration, overridden by values set in conf.
//
// Key "cmap.platform" accepts a platform ID or one of "unicode", "mac" and "windows";
// key "glyf.maxdepth" accepts a positive integer.
func ConfigFrom(conf Configuration) Config {
	c := DefaultConfig()
	if conf == nil {
		return c
	}
	if conf.IsSet(KeyCmapPlatform) {
		if id, ok := platformID(conf.GetString(KeyCmapPlatform)); ok {
			c.PlatformPreference = id
		} else {
			tracer().Errorf("config: invalid value for %s: %q", KeyCmapPlatform,
				conf.GetString(KeyCmapPlatform))
		}
	}
	if conf.IsSet(KeyGlyfMaxDepth) {
		if d := conf.GetInt(KeyGlyfMaxDepth); d > 0 {
			c.MaxCompoundDepth = d
		} else {
			tracer().Errorf("config: invalid value for %s: %q", KeyGlyfMaxDepth,
				conf.GetString(KeyGlyfMaxDepth))
		}
	}
	return c
}

func platformID(s string) (uint16, bool) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "unicode":
		return ttf.PlatformUnicode, true
	case "mac", "macintosh":
		return ttf.PlatformMacintosh, true
	case "windows", "win":
		return ttf.PlatformWindows, true
	}
	n, err := strconv.ParseUint(strings.TrimSpace(s), 10, 16)
	if err != nil {
		return 0, false
	}
	return uint16(n), true
}
