package notifysvc

import (
	"fmt"
	"io"
	"sync"

	"github.com/trezcool/estudos/core"
)

type consoleNotifier struct {
	mu sync.Mutex
	w  io.Writer
}

var _ core.Notifier = (*consoleNotifier)(nil)

// NewConsoleNotifier prints toasts to `w`, one line each.
func NewConsoleNotifier(w io.Writer) core.Notifier {
	return &consoleNotifier{w: w}
}

func (n *consoleNotifier) Success(title, desc string) { n.print("✓", title, desc) }
func (n *consoleNotifier) Error(title, desc string)   { n.print("✗", title, desc) }

func (n *consoleNotifier) print(mark, title, desc string) {
	n.mu.Lock()
	defer n.mu.Unlock()
	if desc == "" {
		_, _ = fmt.Fprintf(n.w, "%s %s\n", mark, title)
		return
	}
	_, _ = fmt.Fprintf(n.w, "%s %s: %s\n", mark, title, desc)
}

// Toast is a notification kept by a Recorder.
type Toast struct {
	Success bool
	Title   string
	Desc    string
}

// Recorder keeps every toast it receives (tests).
type Recorder struct {
	mu     sync.Mutex
	toasts []Toast
}

var _ core.Notifier = (*Recorder)(nil)

func NewRecorder() *Recorder { return new(Recorder) }

func (r *Recorder) Success(title, desc string) { r.add(Toast{Success: true, Title: title, Desc: desc}) }
func (r *Recorder) Error(title, desc string)   { r.add(Toast{Title: title, Desc: desc}) }

func (r *Recorder) add(t Toast) {
	r.mu.Lock()
	r.toasts = append(r.toasts, t)
	r.mu.Unlock()
}

func (r *Recorder) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]Toast(nil), r.toasts...)
}

// Errors returns the recorded error toasts.
func (r *Recorder) Errors() []Toast {
	var errs []Toast
	for _, t := range r.Toasts() {
		if !t.Success {
			errs = append(errs, t)
		}
	}
	return errs
}

func (r *Recorder) Reset() {
	r.mu.Lock()
	r.toasts = nil
	r.mu.Unlock()
}
