package codegen

import (
	"fmt"
	"strings"
)

const indentUnit = "    "

// writer accumulates Rust source one line at a time at the current
// indentation depth.
type writer struct {
	b     strings.Builder
	depth int
}

func (w *writer) line(format string, args ...any) {
	w.raw(fmt.Sprintf(format, args...))
}

// raw writes s as one line without formatting.
func (w *writer) raw(s string) {
	if s == "" {
		w.b.WriteByte('\n')
		return
	}
	w.b.WriteString(strings.Repeat(indentUnit, w.depth))
	w.b.WriteString(s)
	w.b.WriteByte('\n')
}

// open writes a line ending a block opener and indents what follows.
func (w *writer) open(format string, args ...any) {
	w.line(format, args...)
	w.depth++
}

// close dedents and writes the block terminator.
func (w *writer) close(s string) {
	if w.depth > 0 {
		w.depth--
	}
	w.raw(s)
}

// lines writes pre-indented lines of an expression, each relative to the
// current depth.
func (w *writer) lines(ls []string) {
	for _, l := range ls {
		w.raw(l)
	}
}

// verbatim writes user code line by line, keeping its own relative
// indentation and dropping trailing blank lines.
func (w *writer) verbatim(code string) {
	code = strings.TrimRight(code, " \t\r\n")
	for _, l := range strings.Split(code, "\n") {
		w.raw(strings.TrimRight(l, " \t\r"))
	}
}

func (w *writer) String() string {
	return w.b.String()
}
