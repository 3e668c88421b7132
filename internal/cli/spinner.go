package cli

import (
	"context"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"github.com/mattn/go-isatty"
)

var spinnerFrames = []string{"⠋", "⠙", "⠹", "⠸", "⠼", "⠴", "⠦", "⠧", "⠇", "⠏"}

// Spinner animates a status line on stderr while a chain is built or
// rendered. The message can change while it runs, e.g. to report how many
// generators have been sifted.
type Spinner struct {
	out    io.Writer
	ctx    context.Context
	cancel context.CancelFunc

	mu      sync.Mutex
	message string
	width   int // widest line drawn, for clearing

	stopOnce sync.Once
	stopped  chan struct{}
}

// newSpinner returns a spinner writing to out that stops when ctx ends.
func newSpinner(ctx context.Context, out io.Writer, message string) *Spinner {
	spinCtx, cancel := context.WithCancel(ctx)
	return &Spinner{
		out:     out,
		ctx:     spinCtx,
		cancel:  cancel,
		message: message,
		stopped: make(chan struct{}),
	}
}

// startSpinner starts a spinner on stderr. When stderr is not a terminal the
// spinner runs silently, so callers can Stop it unconditionally.
func startSpinner(ctx context.Context, message string) *Spinner {
	out := io.Writer(os.Stderr)
	if !isatty.IsTerminal(os.Stderr.Fd()) {
		out = io.Discard
	}
	s := newSpinner(ctx, out, message)
	s.Start()
	return s
}

// Start begins the animation.
func (s *Spinner) Start() {
	go func() {
		defer close(s.stopped)
		ticker := time.NewTicker(80 * time.Millisecond)
		defer ticker.Stop()

		for i := 0; ; i++ {
			select {
			case <-s.ctx.Done():
				s.clearLine()
				return
			case <-ticker.C:
				s.draw(spinnerFrames[i%len(spinnerFrames)])
			}
		}
	}()
}

// SetMessage replaces the text shown next to the spinner.
func (s *Spinner) SetMessage(message string) {
	s.mu.Lock()
	s.message = message
	s.mu.Unlock()
}

// Message returns the current text.
func (s *Spinner) Message() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.message
}

func (s *Spinner) draw(frame string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	pad := ""
	if n := len(s.message) + 2; n < s.width {
		pad = strings.Repeat(" ", s.width-n)
	} else {
		s.width = n
	}
	fmt.Fprintf(s.out, "\r%s %s%s", styleIconSpinner.Render(frame), StyleDim.Render(s.message), pad)
}

func (s *Spinner) clearLine() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.width > 0 {
		fmt.Fprintf(s.out, "\r%s\r", strings.Repeat(" ", s.width))
	}
}

// Stop ends the animation and clears the line. It may be called more than
// once.
func (s *Spinner) Stop() {
	s.stopOnce.Do(s.cancel)
	<-s.stopped
}

// StopWithSuccess stops the spinner and prints a success line.
func (s *Spinner) StopWithSuccess(message string) {
	s.Stop()
	printSuccess("%s", message)
}

// StopWithError stops the spinner and prints an error line.
func (s *Spinner) StopWithError(message string) {
	s.Stop()
	printError("%s", message)
}

// buildProgress returns a pipeline progress callback that reports sifted
// generators on the spinner.
func (s *Spinner) buildProgress(name string) func(done, total int) {
	return func(done, total int) {
		s.SetMessage(fmt.Sprintf("Sifting generators of %s (%d/%d)...", name, done, total))
	}
}
