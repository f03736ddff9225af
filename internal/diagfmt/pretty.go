// Package diagfmt renders diagnostics for humans.
package diagfmt

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	"github.com/mattn/go-runewidth"

	"mica/internal/diag"
	"mica/internal/source"
)

var (
	errColor  = color.New(color.FgRed, color.Bold)
	warnColor = color.New(color.FgYellow, color.Bold)
	infoColor = color.New(color.FgCyan)
	caretCol  = color.New(color.FgGreen, color.Bold)
)

// Pretty writes every diagnostic in the bag as
//
//	<path>:<line>:<col>: <SEVERITY> <CODE>: <message>
//
// followed, when opts.Context is set, by the source line and a caret
// underline covering the primary span. Callers are expected to Sort the
// bag first.
func Pretty(w io.Writer, bag *diag.Bag, fs *source.FileSet, opts Options) {
	if bag == nil || fs == nil {
		return
	}
	for _, d := range bag.Items() {
		printOne(w, &d, fs, opts)
	}
}

func printOne(w io.Writer, d *diag.Diagnostic, fs *source.FileSet, opts Options) {
	f := fs.Get(d.Primary.File)
	start, _ := fs.Resolve(d.Primary)

	sev := d.Severity.String()
	if opts.Color {
		sev = severityColor(d.Severity).Sprint(sev)
	}
	fmt.Fprintf(w, "%s:%d:%d: %s %s: %s\n", f.Path, start.Line, start.Col, sev, d.Code, d.Message)

	if opts.Context {
		printContext(w, f, d.Primary, start, opts)
	}
	for _, note := range d.Notes {
		nStart, _ := fs.Resolve(note.Span)
		fmt.Fprintf(w, "%s:%d:%d: note: %s\n", f.Path, nStart.Line, nStart.Col, note.Msg)
	}
}

func printContext(w io.Writer, f *source.File, sp source.Span, start source.LineCol, opts Options) {
	line := f.GetLine(start.Line)
	if line == "" && sp.Empty() {
		return
	}
	fmt.Fprintf(w, "  %s\n", line)

	// Underline width in screen cells, not bytes. A span at or past the end
	// of the line (unexpected EOF) renders as a bare caret one cell after
	// the last character.
	col := int(start.Col) - 1
	if col > len(line) {
		col = len(line)
	}
	pad := runewidth.StringWidth(line[:col])
	n := int(sp.Len())
	if col+n > len(line) {
		n = len(line) - col
	}
	if n < 1 {
		underline := "^"
		if opts.Color {
			underline = caretCol.Sprint(underline)
		}
		fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
		return
	}
	underline := "^" + strings.Repeat("~", max(0, runewidth.StringWidth(line[col:col+n])-1))
	if opts.Color {
		underline = caretCol.Sprint(underline)
	}
	fmt.Fprintf(w, "  %s%s\n", strings.Repeat(" ", pad), underline)
}

func severityColor(s diag.Severity) *color.Color {
	switch s {
	case diag.SevError:
		return errColor
	case diag.SevWarning:
		return warnColor
	default:
		return infoColor
	}
}
