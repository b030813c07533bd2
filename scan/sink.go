package scan

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/fatih/color"
	"github.com/mattn/go-isatty"
)

// Sink serializes the two output streams of a scan: matched paths and
// per-file diagnostics. Workers report concurrently, the mutex guarantees
// each record is written whole, never interleaved with another.
type Sink struct {
	mu     sync.Mutex
	out    io.Writer
	errOut io.Writer
	match  *color.Color
}

// NewSink writes matches to out and diagnostics to errOut.
// Matched paths are highlighted when out is a terminal, unless noColor is set.
func NewSink(out, errOut io.Writer, noColor bool) *Sink {
	match := color.New(color.FgGreen)
	if noColor || !isTerminalWriter(out) {
		match.DisableColor()
	}
	return &Sink{
		out:    out,
		errOut: errOut,
		match:  match,
	}
}

func isTerminalWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && isatty.IsTerminal(f.Fd())
}

// Match reports one matching file, a single line on the match stream.
func (s *Sink) Match(path string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = s.match.Fprintln(s.out, path)
}

// FileError reports a per-file failure on the diagnostic stream.
// It is observational only: the worker that hit the failure moves on.
func (s *Sink) FileError(path string, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.errOut, "[error] %s: %s\n", path, err)
}

// WalkError reports a traversal failure (typically an inaccessible root).
func (s *Sink) WalkError(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.errOut, "[walk error] %s\n", err)
}

// Summary prints the final line on the match stream: how many regular
// files were scanned and how long the whole pass took.
func (s *Sink) Summary(st Stats) {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, _ = fmt.Fprintf(s.out, "\nScanned %d files in %dms.\n", st.Scanned, st.Elapsed.Milliseconds())
}
