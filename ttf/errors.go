package ttf

import (
	"errors"
	"fmt"
)

// Errors reported by the decoders of this package. Errors returned by functions and
// methods of package ttf wrap one of these and may be tested with errors.Is.
var (
	ErrOutOfBounds            = errors.New("read beyond end of font data")
	ErrTableNotFound          = errors.New("table not found")
	ErrUnsupportedFontVersion = errors.New("unsupported font version")
	ErrInvalidMagicNumber     = errors.New("invalid magic number")
	ErrUnsupportedCmapVersion = errors.New("unsupported cmap version")
	ErrUnsupportedCmapFormat  = errors.New("unsupported cmap format")
	ErrNoUsableCmapSubtable   = errors.New("no usable cmap sub-table")
	ErrInvalidLocaFormat      = errors.New("invalid loca format")
	ErrGlyphIndexOutOfRange   = errors.New("glyph index out of range")
	ErrCompoundGlyphCycle     = errors.New("compound glyph cycle")
	ErrMalformedGlyph         = errors.New("malformed glyph")
)

// ErrorSeverity represents the severity level of a font parsing error.
type ErrorSeverity int

const (
	// SeverityCritical indicates an error which makes the requested operation impossible.
	SeverityCritical ErrorSeverity = iota
	// SeverityMajor indicates an error which affects a single item, e.g. one glyph.
	SeverityMajor
	// SeverityMinor indicates an issue which can be safely ignored in most cases.
	SeverityMinor
)

// String returns a human-readable representation of the error severity.
func (s ErrorSeverity) String() string {
	switch s {
	case SeverityCritical:
		return "CRITICAL"
	case SeverityMajor:
		return "MAJOR"
	case SeverityMinor:
		return "MINOR"
	default:
		return "UNKNOWN"
	}
}

// FontError represents an error encountered during font decoding.
// Err is one of the package-level sentinel errors; FontError unwraps to it.
type FontError struct {
	Table    Tag           // The table where the error occurred (e.g., "glyf", "cmap")
	Section  string        // Specific section within the table (e.g., "Header", "Component")
	Issue    string        // Human-readable description of the issue
	Severity ErrorSeverity // Severity level of the error
	Offset   uint32        // Byte offset in the font data where the error occurred (0 if unknown)
	Err      error         // Sentinel error classifying the issue
}

// Error implements the error interface.
func (e *FontError) Error() string {
	issue := e.Issue
	if e.Err != nil {
		if issue == "" {
			issue = e.Err.Error()
		} else {
			issue = e.Err.Error() + ": " + issue
		}
	}
	if e.Offset > 0 {
		return fmt.Sprintf("[%s] %s/%s at offset %d: %s", e.Severity, e.Table, e.Section, e.Offset, issue)
	}
	return fmt.Sprintf("[%s] %s/%s: %s", e.Severity, e.Table, e.Section, issue)
}

// Unwrap returns the sentinel error of e.
func (e *FontError) Unwrap() error {
	return e.Err
}

// fontError creates a FontError. If cause is itself a FontError, the new error
// keeps the sentinel of cause; otherwise cause is used as the sentinel.
func fontError(table Tag, section string, severity ErrorSeverity, offset uint32, cause error,
	format string, args ...any) *FontError {
	//
	var ferr *FontError
	if errors.As(cause, &ferr) {
		cause = ferr.Err
	}
	return &FontError{
		Table:    table,
		Section:  section,
		Issue:    fmt.Sprintf(format, args...),
		Severity: severity,
		Offset:   offset,
		Err:      cause,
	}
}

// TableNotFound returns an error stating that a table with the given tag is
// missing from a font.
func TableNotFound(tag Tag) error {
	return &FontError{
		Table:    tag,
		Section:  "Directory",
		Severity: SeverityCritical,
		Err:      ErrTableNotFound,
	}
}

// FontWarning represents a non-critical issue encountered during font decoding.
// Warnings indicate potential problems but do not prevent font usage.
type FontWarning struct {
	Table  Tag    // The table where the warning occurred
	Issue  string // Human-readable description of the warning
	Offset uint32 // Byte offset in the font data where the warning occurred (0 if unknown)
}

// String returns a human-readable representation of the warning.
func (w FontWarning) String() string {
	if w.Offset > 0 {
		return fmt.Sprintf("[WARNING] %s at offset %d: %s", w.Table, w.Offset, w.Issue)
	}
	return fmt.Sprintf("[WARNING] %s: %s", w.Table, w.Issue)
}

// errorCollector accumulates warnings during decoding.
type errorCollector struct {
	warnings []FontWarning
}

func (ec *errorCollector) addWarning(table Tag, issue string, offset uint32) {
	tracer().Infof("%s: %s", table, issue)
	ec.warnings = append(ec.warnings, FontWarning{
		Table:  table,
		Issue:  issue,
		Offset: offset,
	})
}

func (ec *errorCollector) hasWarnings() bool {
	return len(ec.warnings) > 0
}
