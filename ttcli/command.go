package main

import (
	"strings"

	"github.com/pterm/pterm"
)

// Op is a single command, e.g. "glyph:36" or "text:Hello World".
type Op struct {
	code int
	arg  string
}

const (
	QUIT int = iota
	HELP
	TABLES
	GLYPH
	CHAR
	TEXT
	ZOOM
	METRICS
	SEGMENTS
	RENDER
)

var opMap = map[string]int{
	"quit":     QUIT,
	"help":     HELP,
	"tables":   TABLES,
	"glyph":    GLYPH,
	"char":     CHAR,
	"text":     TEXT,
	"zoom":     ZOOM,
	"metrics":  METRICS,
	"segments": SEGMENTS,
	"render":   RENDER,
}

var opNames = []string{
	"quit",
	"help",
	"tables",
	"glyph",
	"char",
	"text",
	"zoom",
	"metrics",
	"segments",
	"render",
}

// parseCommand splits a line at the first colon into command and argument.
// The argument extends to the end of the line. Unknown commands yield help.
func parseCommand(line string) *Op {
	name, arg, _ := strings.Cut(line, ":")
	code, ok := opMap[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return &Op{code: HELP}
	}
	op := &Op{code: code, arg: arg}
	if op.arg == "" {
		tracer().Debugf("%s", opNames[op.code])
	} else {
		tracer().Debugf("%s: looking for '%s'", opNames[op.code], op.arg)
	}
	return op
}

var commandFn = map[int]func(*Intp, *Op) (error, bool){
	QUIT:     quitOp,
	HELP:     helpOp,
	TABLES:   tablesOp,
	GLYPH:    glyphOp,
	CHAR:     charOp,
	TEXT:     textOp,
	ZOOM:     zoomOp,
	METRICS:  metricsOp,
	SEGMENTS: segmentsOp,
	RENDER:   renderOp,
}

func (intp *Intp) execute(op *Op) (err error, stop bool) {
	f, ok := commandFn[op.code]
	if !ok {
		pterm.Error.Printf("unknown command code: %d\n", op.code)
		return nil, false
	}
	return f(intp, op)
}

func quitOp(intp *Intp, op *Op) (error, bool) {
	return nil, true
}

func (op *Op) noArg() bool {
	return op.arg == ""
}
