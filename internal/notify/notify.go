// Package notify provides the success/failure notification channel shown
// to the user after each task operation.
package notify

import (
	"fmt"
	"io"
	"sync"
)

// Sink receives one signal per completed operation.
type Sink interface {
	Success(msg string)
	Failure(msg string)
}

// Writer prints signals as lines. Success goes to Out, failure to ErrOut.
type Writer struct {
	Out    io.Writer
	ErrOut io.Writer
	Quiet  bool // suppress success lines
}

// NewWriter creates a Writer sink.
func NewWriter(out, errOut io.Writer, quiet bool) *Writer {
	return &Writer{Out: out, ErrOut: errOut, Quiet: quiet}
}

func (w *Writer) Success(msg string) {
	if w.Quiet {
		return
	}
	fmt.Fprintf(w.Out, "ok: %s\n", msg)
}

func (w *Writer) Failure(msg string) {
	fmt.Fprintf(w.ErrOut, "error: %s\n", msg)
}

// Kind distinguishes success from failure signals.
type Kind int

const (
	KindSuccess Kind = iota
	KindFailure
)

func (k Kind) String() string {
	if k == KindFailure {
		return "failure"
	}
	return "success"
}

// Signal is one recorded notification.
type Signal struct {
	Kind    Kind
	Message string
}

// Recorder keeps every signal it receives. Safe for concurrent use.
type Recorder struct {
	mu      sync.Mutex
	signals []Signal
}

func (r *Recorder) Success(msg string) { r.add(KindSuccess, msg) }
func (r *Recorder) Failure(msg string) { r.add(KindFailure, msg) }

func (r *Recorder) add(kind Kind, msg string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = append(r.signals, Signal{Kind: kind, Message: msg})
}

// Signals returns a copy of the recorded signals in arrival order.
func (r *Recorder) Signals() []Signal {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Signal, len(r.signals))
	copy(out, r.signals)
	return out
}

// Last returns the most recent signal and whether there was one.
func (r *Recorder) Last() (Signal, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if len(r.signals) == 0 {
		return Signal{}, false
	}
	return r.signals[len(r.signals)-1], true
}

// Reset forgets all recorded signals.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.signals = nil
}
