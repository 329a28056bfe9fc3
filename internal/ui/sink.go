// Package ui carries the user-visible output channel through the graph.
//
// Steps emit lines for the user (help messages, rendered info, error text)
// without knowing which front-end is listening: the shell installs a writer
// sink, the HTTP service installs a capture sink and returns the lines in the
// response body. The sink rides on the context so the compiled graph stays
// shareable across sessions.
package ui

import (
	"context"
	"fmt"
	"io"
	"os"
	"sync"
)

// Sink receives one user-visible line at a time.
type Sink interface {
	Say(line string)
}

type ctxKey struct{}

// WithSink returns a context that routes Say calls to s.
func WithSink(ctx context.Context, s Sink) context.Context {
	return context.WithValue(ctx, ctxKey{}, s)
}

// Say formats one line for the user on the sink carried by ctx, falling back to
// stdout when none is installed.
func Say(ctx context.Context, format string, args ...any) {
	line := fmt.Sprintf(format, args...)
	if s, ok := ctx.Value(ctxKey{}).(Sink); ok && s != nil {
		s.Say(line)
		return
	}
	fmt.Fprintln(os.Stdout, line)
}

// WriterSink writes each line to an io.Writer.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Say(line string) {
	fmt.Fprintln(s.W, line)
}

// CaptureSink collects lines in memory. Used by the HTTP front-end to return
// them in the turn response, and by tests.
type CaptureSink struct {
	mu    sync.Mutex
	lines []string
}

func (s *CaptureSink) Say(line string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.lines = append(s.lines, line)
}

// Lines returns a copy of everything said so far.
func (s *CaptureSink) Lines() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, len(s.lines))
	copy(out, s.lines)
	return out
}
