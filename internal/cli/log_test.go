package cli

import (
	"bytes"
	"context"
	"regexp"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
)

func TestSetLogLevel(t *testing.T) {
	tests := []struct {
		name      string
		level     log.Level
		wantDebug bool
	}{
		{"info hides debug", LogInfo, false},
		{"debug shows debug", LogDebug, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			c := New(&buf, LogInfo)
			c.SetLogLevel(tt.level)

			c.Logger.Debug("sifting", "level", 2)
			if got := strings.Contains(buf.String(), "sifting"); got != tt.wantDebug {
				t.Errorf("debug output = %v, want %v (%q)", got, tt.wantDebug, buf.String())
			}
		})
	}
}

func TestLoggerKeyValues(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)
	logger.Info("built chain", "degree", 5, "levels", 4)

	out := buf.String()
	for _, want := range []string{"built chain", "degree=5", "levels=4"} {
		if !strings.Contains(out, want) {
			t.Errorf("output %q lacks %q", out, want)
		}
	}
	if !regexp.MustCompile(`^\d{2}:\d{2}:\d{2}\.\d{2} `).MatchString(out) {
		t.Errorf("output %q does not start with a HH:MM:SS.ms timestamp", out)
	}
}

func TestProgressDone(t *testing.T) {
	var buf bytes.Buffer
	newProgress(newLogger(&buf, LogInfo)).done("Analyzed S5", "order", "120")

	if !regexp.MustCompile(`Analyzed S5 \(\d+(\.\d+)?[µnm]?s\)`).MatchString(buf.String()) {
		t.Errorf("progress output = %q", buf.String())
	}
	if !strings.Contains(buf.String(), "order=120") {
		t.Errorf("progress output %q lacks order=120", buf.String())
	}

	buf.Reset()
	newProgress(newLogger(&buf, log.WarnLevel)).done("Analyzed S5")
	if buf.Len() != 0 {
		t.Errorf("progress logged above its level: %q", buf.String())
	}
}

func TestLoggerContext(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, LogInfo)

	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Error("loggerFromContext did not return the attached logger")
	}
	if got := loggerFromContext(context.Background()); got != log.Default() {
		t.Error("loggerFromContext without a logger should fall back to log.Default()")
	}
}
