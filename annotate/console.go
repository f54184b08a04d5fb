package annotate

/*
BSD 3-Clause License

Copyright (c) Norbert Pillmayer

Please refer to the License file in the repository root.
*/

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/npillmayer/linelog"
	"github.com/npillmayer/uax/grapheme"
	"github.com/npillmayer/uax/uax11"
	"golang.org/x/term"
)

// Config controls annotated output.
type Config struct {
	// LineWidth is the target width of one output row, in fixed width ‘en’s.
	// Overlong lines are truncated to fit. 0 disables truncation.
	LineWidth int
	// Context resolves ambiguous East Asian character widths.
	Context *uax11.Context
}

// LineClass partitions the lines of a view for coloring purposes.
type LineClass int

const (
	// OlderLine is a surviving line introduced before the head revision of
	// the view.
	OlderLine LineClass = iota
	// HeadLine is a line introduced by the head revision of the view: the
	// newest revision which still owns a surviving (not deleted) line.
	HeadLine
	// DeletedLine is a line of a range view that the end revision no longer has.
	DeletedLine
)

// ConsoleAnnotator writes annotated views to fixed-width consoles, using
// colors to set off line classes.
type ConsoleAnnotator struct {
	colors map[LineClass]*color.Color
}

// NewConsoleAnnotator creates a console renderer. colors maps line classes to
// display colors and may cover just a subset of the classes; nil selects a
// default palette.
func NewConsoleAnnotator(colors map[LineClass]*color.Color) *ConsoleAnnotator {
	ca := &ConsoleAnnotator{}
	if colors == nil {
		ca.colors = makeDefaultPalette()
	} else {
		ca.colors = colors
	}
	return ca
}

func makeDefaultPalette() map[LineClass]*color.Color {
	palette := map[LineClass]*color.Color{
		HeadLine:    color.New(color.FgGreen),
		DeletedLine: color.New(color.FgRed, color.CrossedOut),
	}
	return palette
}

// Print outputs the currently checked-out view of log to stdout.
//
// If parameter config is nil, a heuristic will create a config from the
// current terminal's properties (if stdout is interactive). Config.Context
// will also be created based on heuristics from the user environment.
func (ca *ConsoleAnnotator) Print(log *linelog.LineLog, config *Config) error {
	if config == nil {
		config = ConfigFromTerminal()
		config.Context = uax11.ContextFromEnvironment()
	}
	return ca.Annotate(log, os.Stdout, config)
}

// Annotate writes the currently checked-out view of log to w, one row per
// line: revision, commit date, line text. Deleted lines of range views carry
// a '-' marker in the gutter.
func (ca *ConsoleAnnotator) Annotate(log *linelog.LineLog, w io.Writer, config *Config) error {
	if config == nil {
		config = &Config{}
	}
	context := config.Context
	if context == nil {
		context = uax11.LatinContext
	}
	view := log.Lines()
	// newest surviving revision of the view, colored as its head
	head := 0
	for _, line := range view {
		if !line.Deleted && line.Rev > head {
			head = line.Rev
		}
	}
	tracer().Debugf("annotate: %d lines, head rev %d", len(view)-1, head)
	for i, line := range view {
		if i == len(view)-1 {
			break // sentinel
		}
		mark := ' '
		class := OlderLine
		switch {
		case line.Deleted:
			mark = '-'
			class = DeletedLine
		case line.Rev == head:
			class = HeadLine
		}
		gutter := fmt.Sprintf("%4d %s %c ", line.Rev, date(log.LineTimestamp(i)), mark)
		text := strings.TrimSuffix(line.Data, "\n")
		if config.LineWidth > 0 {
			text = truncate(text, config.LineWidth-len(gutter), context)
		}
		if _, err := io.WriteString(w, gutter); err != nil {
			return err
		}
		if err := ca.writeStyled(w, text, class); err != nil {
			return err
		}
		if _, err := io.WriteString(w, "\n"); err != nil {
			return err
		}
	}
	return nil
}

func (ca *ConsoleAnnotator) writeStyled(w io.Writer, text string, class LineClass) error {
	if c, ok := ca.colors[class]; ok {
		_, err := c.Fprint(w, text)
		return err
	}
	_, err := io.WriteString(w, text)
	return err
}

func date(ms int64) string {
	if ms == 0 {
		return "          "
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}

// truncate cuts s down to at most width fixed-width positions, measured with
// respect to East Asian width context, appending an ellipsis if it cut.
func truncate(s string, width int, context *uax11.Context) string {
	if width <= 0 {
		return s
	}
	if uax11.StringWidth(grapheme.StringFromString(s), context) <= width {
		return s
	}
	const ellipsis = "…"
	ew := uax11.StringWidth(grapheme.StringFromString(ellipsis), context)
	var bf strings.Builder
	total := 0
	for _, r := range s {
		w := uax11.StringWidth(grapheme.StringFromString(string(r)), context)
		if total+w > width-ew {
			break
		}
		bf.WriteRune(r)
		total += w
	}
	return bf.String() + ellipsis
}

// --- Config for terminals --------------------------------------------------

// ConfigFromTerminal is a simple helper for creating an annotation Config.
// It checks wether stdout is a terminal, and if so it reads the terminal's
// width and sets the Config.LineWidth parameter accordingly.
func ConfigFromTerminal() *Config {
	config := &Config{}
	fd := int(os.Stdout.Fd())
	if term.IsTerminal(fd) {
		w, _, err := term.GetSize(fd)
		if err != nil || w <= 0 {
			config.LineWidth = 80
		} else {
			config.LineWidth = w
		}
	} else {
		config.LineWidth = 80
	}
	return config
}
