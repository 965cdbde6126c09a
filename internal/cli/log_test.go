package cli

import (
	"bytes"
	"context"
	"strings"
	"testing"
	"time"

	"github.com/charmbracelet/log"
)

func TestNewLoggerLevels(t *testing.T) {
	tests := []struct {
		name    string
		level   log.Level
		debug   bool
		wantLog bool
	}{
		{name: "info at info level", level: log.InfoLevel, wantLog: true},
		{name: "debug at info level", level: log.InfoLevel, debug: true, wantLog: false},
		{name: "debug at debug level", level: log.DebugLevel, debug: true, wantLog: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := newLogger(&buf, tt.level)
			if tt.debug {
				logger.Debug("walking", "root", ".")
			} else {
				logger.Info("walking", "root", ".")
			}

			if got := buf.Len() > 0; got != tt.wantLog {
				t.Errorf("got log output = %v, want %v", got, tt.wantLog)
			}
		})
	}
}

func TestProgressReportsElapsed(t *testing.T) {
	var buf bytes.Buffer
	logger, id := withRun(newLogger(&buf, log.InfoLevel))

	prog := newProgress(logger)
	time.Sleep(10 * time.Millisecond)
	prog.done("scan complete")

	out := buf.String()
	if !strings.Contains(out, "scan complete (") {
		t.Errorf("progress output %q missing message with duration", out)
	}
	if !strings.Contains(out, "run="+id) {
		t.Errorf("progress output %q missing run=%s", out, id)
	}
}

func TestWithRun(t *testing.T) {
	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)

	child, id := withRun(logger)
	if len(id) != 8 {
		t.Errorf("run id = %q, want 8 characters", id)
	}
	child.Info("scanning")
	if !strings.Contains(buf.String(), "run="+id) {
		t.Errorf("log output %q missing run=%s", buf.String(), id)
	}

	_, other := withRun(logger)
	if other == id {
		t.Error("withRun should generate a fresh id per call")
	}
}

func TestLoggerFromContext(t *testing.T) {
	if loggerFromContext(context.Background()) == nil {
		t.Fatal("loggerFromContext should fall back to the default logger")
	}

	var buf bytes.Buffer
	logger := newLogger(&buf, log.InfoLevel)
	ctx := withLogger(context.Background(), logger)
	if got := loggerFromContext(ctx); got != logger {
		t.Fatal("loggerFromContext should return the attached logger")
	}

	// Each scan derives its run logger from the one in the context.
	run, id := withRun(loggerFromContext(ctx))
	run.Info("scanned manifests", "manifests", 3)
	out := buf.String()
	for _, want := range []string{"scanned manifests", "run=" + id, "manifests=3"} {
		if !strings.Contains(out, want) {
			t.Errorf("log output %q missing %q", out, want)
		}
	}
}
