package cli

import (
	"bytes"
	"context"
	"io"
	"strings"
	"sync"
	"testing"
	"time"

	"go.uber.org/goleak"
)

// syncBuffer is a bytes.Buffer safe for the spinner goroutine and the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (b *syncBuffer) Write(p []byte) (int, error) {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.Write(p)
}

func (b *syncBuffer) String() string {
	b.mu.Lock()
	defer b.mu.Unlock()
	return b.buf.String()
}

func TestSpinnerDrawsAndClears(t *testing.T) {
	defer goleak.VerifyNone(t)

	var out syncBuffer
	s := newSpinner(context.Background(), &out, "Building stabilizer chain...")
	s.Start()
	time.Sleep(200 * time.Millisecond)
	s.Stop()

	got := out.String()
	if !strings.Contains(got, "Building stabilizer chain...") {
		t.Errorf("spinner never drew its message: %q", got)
	}
	if !strings.HasSuffix(got, "\r") {
		t.Errorf("spinner did not clear its line: %q", got)
	}
}

func TestSpinnerBuildProgress(t *testing.T) {
	defer goleak.VerifyNone(t)

	s := newSpinner(context.Background(), io.Discard, "Building stabilizer chain...")
	s.Start()
	defer s.Stop()

	progress := s.buildProgress("M11")
	progress(1, 2)
	progress(2, 2)
	if got, want := s.Message(), "Sifting generators of M11 (2/2)..."; got != want {
		t.Errorf("Message() = %q, want %q", got, want)
	}
}

func TestSpinnerContextCancel(t *testing.T) {
	defer goleak.VerifyNone(t)

	ctx, cancel := context.WithCancel(context.Background())
	s := newSpinner(ctx, io.Discard, "Rendering...")
	s.Start()
	cancel()

	// The goroutine exits on cancellation without Stop.
	<-s.stopped
	s.Stop()
	s.Stop()
}

func TestStartSpinnerWithoutTerminal(t *testing.T) {
	defer goleak.VerifyNone(t)

	// Test binaries run without a terminal on stderr.
	s := startSpinner(context.Background(), "quiet")
	s.Stop()
	if s.out != io.Discard {
		t.Skip("stderr is a terminal")
	}
}
