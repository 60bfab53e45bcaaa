package main

import (
	"flag"
	"fmt"
	"os"
	"strings"

	"github.com/chzyer/readline"
	"github.com/npillmayer/schuko/schukonf/testconfig"
	"github.com/npillmayer/schuko/tracing"
	"github.com/npillmayer/schuko/tracing/gologadapter"
	"github.com/npillmayer/schuko/tracing/trace2go"
	"github.com/npillmayer/ttglyph"
	"github.com/npillmayer/ttglyph/outline"
	"github.com/pterm/pterm"
	"golang.org/x/image/font/gofont/goregular"
)

// tracer traces with key 'ttglyph.cli'
func tracer() tracing.Trace {
	return tracing.Select("ttglyph.cli")
}

func main() {
	initDisplay()

	// set up logging
	tracing.RegisterTraceAdapter("go", gologadapter.GetAdapter(), false)
	conf := testconfig.Conf{
		"tracing.adapter":       "go",
		"trace.ttglyph.cli":     "Info",
		"trace.ttglyph":         "Error",
		"trace.ttglyph.ttf":     "Error",
		"trace.ttglyph.outline": "Error",
	}
	if err := trace2go.ConfigureRoot(conf, "trace", trace2go.ReplaceTracers(true)); err != nil {
		fmt.Printf("error configuring tracing")
		os.Exit(1)
	}
	tracing.SetTraceSelector(trace2go.Selector())

	// command line flags
	tlevel := flag.String("trace", "Info", "Trace level [Debug|Info|Error]")
	fontname := flag.String("font", "", "Font file to load (default: Go Regular)")
	platform := flag.String("platform", "", "Preferred cmap platform [unicode|mac|windows|<id>]")
	maxdepth := flag.Int("maxdepth", 0, "Maximum nesting of compound glyphs")
	flag.Parse()
	tracer().SetTraceLevel(tracing.LevelError)         // will set the correct level later
	pterm.Info.Println("Welcome to TrueType Glyph CLI") // colored welcome message
	//
	// font configuration from flags
	if *platform != "" {
		conf[ttglyph.KeyCmapPlatform] = *platform
	}
	if *maxdepth > 0 {
		conf[ttglyph.KeyGlyfMaxDepth] = *maxdepth
	}
	//
	// set up REPL
	repl, err := readline.New("tt > ")
	if err != nil {
		tracer().Errorf(err.Error())
		os.Exit(3)
	}
	intp := &Intp{repl: repl, cache: outline.NewCache()}
	//
	// load font to use
	if err := intp.loadFont(*fontname, ttglyph.ConfigFrom(conf)); err != nil {
		tracer().Errorf(err.Error())
		os.Exit(4)
	}
	//
	// start receiving commands
	pterm.Info.Println("Quit with <ctrl>D") // inform user how to stop the CLI
	switch *tlevel {
	case "Debug":
		tracer().SetTraceLevel(tracing.LevelDebug)
	case "Info":
		tracer().SetTraceLevel(tracing.LevelInfo)
	case "Error":
		tracer().SetTraceLevel(tracing.LevelError)
	default:
		tracer().Errorf("Invalid trace level: %s", *tlevel)
		os.Exit(5)
	}
	tracer().Infof("Trace level is %s", *tlevel)
	intp.REPL() // go into interactive mode
}

// We use pterm for moderately fancy output.
func initDisplay() {
	pterm.EnableDebugMessages()
	pterm.Info.Prefix = pterm.Prefix{
		Text:  " !  ",
		Style: pterm.NewStyle(pterm.BgCyan, pterm.FgBlack),
	}
	pterm.Error.Prefix = pterm.Prefix{
		Text:  " Error",
		Style: pterm.NewStyle(pterm.BgRed, pterm.FgBlack),
	}
}

// Intp is our interpreter object
type Intp struct {
	font  *ttglyph.Font
	repl  *readline.Instance
	cache *outline.Cache
	zoom  float64
}

func (intp *Intp) String() string {
	if intp == nil || intp.font == nil {
		return "()"
	}
	return fmt.Sprintf("( font=%q zoom=%.2f cached=%d )", intp.font.Fontname,
		intp.cache.Zoom(), intp.cache.Len())
}

// REPL starts interactive mode.
func (intp *Intp) REPL() {
	for {
		pterm.Println(intp.String())
		line, err := intp.repl.Readline()
		if err != nil { // io.EOF
			break
		}
		if line = strings.TrimSpace(line); line == "" {
			continue
		}
		op := parseCommand(line)
		err, quit := intp.execute(op)
		if err != nil {
			pterm.Error.Println(err)
			continue
		}
		if quit {
			break
		}
	}
	pterm.Info.Println("Good bye!")
}

// --- Font Loading -----------------------------------------------------

func (intp *Intp) loadFont(fontfile string, conf ttglyph.Config) (err error) {
	if fontfile == "" {
		intp.font, err = ttglyph.Parse(goregular.TTF, conf)
	} else {
		intp.font, err = ttglyph.LoadFont(fontfile, conf)
	}
	if err != nil {
		tracer().Errorf("cannot load font %s: %s", fontfile, err)
		return err
	}
	intp.zoom = 1
	tracer().Infof("loaded font = %s", intp.font.Fontname)
	pterm.Printf("font tables: %v\n", intp.font.Directory().Tags())
	for _, w := range intp.font.Warnings() {
		pterm.Warning.Println(w.String())
	}
	return nil
}
