package logger

import (
	"bytes"
	"fmt"
	"os"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/harrison/ctxpack/internal/models"
	"github.com/stretchr/testify/assert"
)

// TestNewConsoleLogger verifies the constructor creates a ConsoleLogger with the provided writer.
func TestNewConsoleLogger(t *testing.T) {
	t.Run("with valid writer", func(t *testing.T) {
		buf := &bytes.Buffer{}
		logger := NewConsoleLogger(buf, "info")

		if logger == nil {
			t.Fatal("expected non-nil logger")
		}
		if logger.writer != buf {
			t.Error("writer not set correctly")
		}
		if logger.logLevel != "info" {
			t.Errorf("expected log level %q, got %q", "info", logger.logLevel)
		}
		if logger.colorOutput {
			t.Error("expected no color for a bytes.Buffer")
		}
	})

	t.Run("with nil writer", func(t *testing.T) {
		logger := NewConsoleLogger(nil, "info")
		if logger == nil {
			t.Fatal("expected non-nil logger even with nil writer")
		}
		// must not panic
		logger.LogInfo("discarded")
		logger.LogSummary(&models.RunResult{})
	})

	t.Run("regular file is not a terminal", func(t *testing.T) {
		f, err := os.CreateTemp(t.TempDir(), "log")
		if err != nil {
			t.Fatal(err)
		}
		defer f.Close()

		if NewConsoleLogger(f, "info").colorOutput {
			t.Error("expected no color for a regular file")
		}
	})
}

func TestNormalizeLogLevel(t *testing.T) {
	tests := []struct {
		input string
		want  string
	}{
		{"trace", "trace"},
		{"DEBUG", "debug"},
		{"  Warn ", "warn"},
		{"error", "error"},
		{"", "info"},
		{"verbose", "info"},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.want, normalizeLogLevel(tt.input))
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	for _, l := range ValidLevels {
		assert.True(t, IsValidLevel(l), l)
		assert.True(t, IsValidLevel(strings.ToUpper(l)), l)
	}
	assert.False(t, IsValidLevel("fatal"))
	assert.False(t, IsValidLevel(""))
}

// TestLevelFiltering verifies messages below the configured level are dropped.
func TestLevelFiltering(t *testing.T) {
	logAll := func(l *ConsoleLogger) {
		l.LogDebug("d-msg")
		l.LogInfo("i-msg")
		l.LogWarn("w-msg")
		l.LogError("e-msg")
	}

	tests := []struct {
		level   string
		present []string
		absent  []string
	}{
		{"trace", []string{"d-msg", "i-msg", "w-msg", "e-msg"}, nil},
		{"debug", []string{"d-msg", "i-msg", "w-msg", "e-msg"}, nil},
		{"info", []string{"i-msg", "w-msg", "e-msg"}, []string{"d-msg"}},
		{"warn", []string{"w-msg", "e-msg"}, []string{"d-msg", "i-msg"}},
		{"error", []string{"e-msg"}, []string{"d-msg", "i-msg", "w-msg"}},
	}

	for _, tt := range tests {
		t.Run(tt.level, func(t *testing.T) {
			buf := &bytes.Buffer{}
			logAll(NewConsoleLogger(buf, tt.level))
			out := buf.String()

			for _, p := range tt.present {
				assert.Contains(t, out, p)
			}
			for _, a := range tt.absent {
				assert.NotContains(t, out, a)
			}
		})
	}
}

func TestLogFormat(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "info").LogWarn("include.txt not found. Using empty list.")

	out := buf.String()
	assert.Regexp(t, `^\[\d{2}:\d{2}:\d{2}\] \[WARN\] include\.txt not found\. Using empty list\.\n$`, out)
}

func TestLogSummary(t *testing.T) {
	tests := []struct {
		name     string
		result   *models.RunResult
		contains []string
		excludes []string
	}{
		{
			name: "scope run",
			result: &models.RunResult{
				Mode:  models.ModeScope,
				Files: []string{"/a", "/b"},
			},
			contains: []string{"scope complete", "matched: 2"},
			excludes: []string{"written", "skipped"},
		},
		{
			name: "build run with skips",
			result: &models.RunResult{
				Mode:       models.ModeBuild,
				Files:      []string{"/a", "/b", "/c"},
				Skipped:    []models.SkippedFile{{Path: "/c", Err: fmt.Errorf("invalid UTF-8")}},
				WalkErrors: []error{fmt.Errorf("denied")},
				Duration:   1500 * time.Millisecond,
			},
			contains: []string{"build complete", "matched: 3", "written: 2", "skipped: 1", "unreadable dirs: 1", "(1s)"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			buf := &bytes.Buffer{}
			NewConsoleLogger(buf, "info").LogSummary(tt.result)
			out := buf.String()

			for _, c := range tt.contains {
				assert.Contains(t, out, c)
			}
			for _, e := range tt.excludes {
				assert.NotContains(t, out, e)
			}
		})
	}
}

func TestLogSummaryFilteredAtWarn(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "warn").LogSummary(&models.RunResult{Mode: models.ModeScope})
	assert.Empty(t, buf.String())
}

func TestFormatDuration(t *testing.T) {
	tests := []struct {
		d    time.Duration
		want string
	}{
		{0, "0ms"},
		{42 * time.Millisecond, "42ms"},
		{5 * time.Second, "5s"},
		{2 * time.Minute, "2m"},
		{90 * time.Second, "1m30s"},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, formatDuration(tt.d))
	}
}

// TestConcurrentLogging verifies lines are never interleaved.
func TestConcurrentLogging(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewConsoleLogger(buf, "info")

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(n int) {
			defer wg.Done()
			logger.LogInfo(fmt.Sprintf("message %d", n))
		}(i)
	}
	wg.Wait()

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	assert.Len(t, lines, 20)
	for _, line := range lines {
		assert.Contains(t, line, "[INFO] message ")
	}
}

func TestNoOpLogger(t *testing.T) {
	n := NewNoOpLogger()
	n.LogDebug("x")
	n.LogInfo("x")
	n.LogWarn("x")
	n.LogError("x")
	n.LogProgress(1, 1, "x")
	n.LogSummary(nil)
}

func TestLogProgress(t *testing.T) {
	buf := &bytes.Buffer{}
	NewConsoleLogger(buf, "debug").LogProgress(3, 4, "/src/c.go")
	assert.Contains(t, buf.String(), "[DEBUG] [===============     ] 3/4 (75%) /src/c.go")

	buf.Reset()
	NewConsoleLogger(buf, "info").LogProgress(3, 4, "/src/c.go")
	assert.Empty(t, buf.String())
}
