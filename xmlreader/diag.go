package xmlreader

import (
	"fmt"
	"io"
	"os"

	"golang.org/x/term"
)

// DiagKind is the taxonomy of spec.md §6/§7: error, warning,
// warning(once), note, hint.
type DiagKind string

const (
	DiagError        DiagKind = "error"
	DiagWarning      DiagKind = "warning"
	DiagWarningOnce  DiagKind = "warning(once)"
	DiagNote         DiagKind = "note"
	DiagHint         DiagKind = "hint"
)

// diagWriter formats "file:line:col: kind: message" (or "file: kind: "
// when the location is unknown, i.e. line is 0) and optionally colors
// the kind label when its destination is an interactive terminal -
// the one piece of ambient enrichment spec.md §1 explicitly leaves to
// implementations ("diagnostic formatting beyond message taxonomy").
type diagWriter struct {
	w      io.Writer
	color  bool
	source string
}

func newDiagWriter(w io.Writer, source string) *diagWriter {
	color := false
	if f, ok := w.(*os.File); ok {
		color = term.IsTerminal(int(f.Fd()))
	}
	return &diagWriter{w: w, color: color, source: source}
}

func (d *diagWriter) colorFor(kind DiagKind) (prefix, reset string) {
	if !d.color {
		return "", ""
	}
	switch kind {
	case DiagError:
		return "\x1b[31m", "\x1b[0m"
	case DiagWarning, DiagWarningOnce:
		return "\x1b[33m", "\x1b[0m"
	case DiagNote, DiagHint:
		return "\x1b[36m", "\x1b[0m"
	default:
		return "", ""
	}
}

// messg writes a diagnostic header and returns the writer so the
// caller can fmt.Fprintf the message body, mirroring parser_messg in
// original_source/read_xml.c.
func (d *diagWriter) messg(loc Location, kind DiagKind) io.Writer {
	prefix, reset := d.colorFor(kind)
	if loc.Line != 0 {
		fmt.Fprintf(d.w, "%s:%d:%d: %s%s%s: ", d.source, loc.Line, loc.Col, prefix, string(kind), reset)
	} else {
		fmt.Fprintf(d.w, "%s: %s%s%s: ", d.source, prefix, string(kind), reset)
	}
	return d.w
}
