package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"lox/internal/diag"
	"lox/internal/source"
)

type palette struct {
	err, warn, info *color.Color
	path, gutter    *color.Color
	caret, note     *color.Color
}

func newPalette(enabled bool) palette {
	p := palette{
		err:    color.New(color.FgRed, color.Bold),
		warn:   color.New(color.FgYellow, color.Bold),
		info:   color.New(color.FgCyan),
		path:   color.New(color.Bold),
		gutter: color.New(color.FgBlue),
		caret:  color.New(color.FgRed, color.Bold),
		note:   color.New(color.FgCyan),
	}
	for _, c := range []*color.Color{p.err, p.warn, p.info, p.path, p.gutter, p.caret, p.note} {
		if enabled {
			c.EnableColor()
		} else {
			c.DisableColor()
		}
	}
	return p
}

func (p palette) severity(sev diag.Severity) *color.Color {
	switch sev {
	case diag.SevError:
		return p.err
	case diag.SevWarning:
		return p.warn
	default:
		return p.info
	}
}

// Pretty форматирует диагностики в человекочитаемый вид.
// Для каждой диагностики печатается
//
//	<path>:<line>:<col>: <SEV> <CODE>: <Message>
//	   N | source line
//	     |     ^~~~
//
// Диагностики без файла в FileSet выводятся через Diagnostic.Error.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts PrettyOpts) {
	if bag == nil {
		return
	}
	p := newPalette(opts.Color)
	tab := opts.TabWidth
	if tab <= 0 {
		tab = 4
	}

	for _, d := range bag.Items() {
		var file *source.File
		if fs != nil {
			file = fs.Get(d.Primary.File)
		}
		if file == nil {
			fmt.Fprintf(w, "%s %s\n", p.severity(d.Severity).Sprint(d.Severity.String()), d.Error())
			continue
		}

		start, _ := fs.Resolve(d.Primary)
		fmt.Fprintf(w, "%s: %s %s: %s\n",
			p.path.Sprintf("%s:%d:%d", formatPath(file, fs, opts.PathMode), start.Line, start.Col),
			p.severity(d.Severity).Sprint(d.Severity.String()),
			p.severity(d.Severity).Sprint(d.Code.ID()),
			d.Message,
		)
		writeSnippet(w, p, file, d.Primary, start, tab)

		if !opts.ShowNotes {
			continue
		}
		for _, n := range d.Notes {
			fmt.Fprintf(w, "  %s %s\n", p.note.Sprint("note:"), n.Msg)
		}
	}
}

func writeSnippet(w io.Writer, p palette, file *source.File, span source.Span, start source.LineCol, tab int) {
	line := file.GetLine(start.Line)
	if line == "" && span.Empty() && start.Col <= 1 {
		return
	}
	expand := strings.Repeat(" ", tab)

	gutter := fmt.Sprintf("%4d | ", start.Line)
	fmt.Fprintf(w, "%s%s\n", p.gutter.Sprint(gutter), strings.ReplaceAll(line, "\t", expand))

	col := int(start.Col) - 1
	col = min(max(col, 0), len(line))
	prefix := strings.ReplaceAll(line[:col], "\t", expand)

	// подчёркиваем только в пределах первой строки
	rest := line[col:]
	lexeme := file.Text(span)
	if i := strings.IndexByte(lexeme, '\n'); i >= 0 {
		lexeme = lexeme[:i]
	}
	if len(lexeme) > len(rest) {
		lexeme = rest
	}
	width := max(runewidth.StringWidth(lexeme), 1)

	marker := "^" + strings.Repeat("~", width-1)
	pad := strings.Repeat(" ", runewidth.StringWidth(prefix))
	fmt.Fprintf(w, "%s%s%s\n", p.gutter.Sprint(strings.Repeat(" ", len(gutter)-2)+"| "), pad, p.caret.Sprint(marker))
}
