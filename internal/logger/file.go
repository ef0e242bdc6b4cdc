package logger

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/harrison/ctxpack/internal/models"
)

// LatestLink is the symlink in the log directory that points at the most
// recent run log.
const LatestLink = "latest.log"

// FileLogger writes a plain-text log of one run to run-YYYYMMDD-HHMMSS.log
// in its log directory and points latest.log at it. It is thread-safe.
type FileLogger struct {
	logDir   string
	runLog   *os.File
	runFile  string
	logLevel string
	mu       sync.Mutex
}

// NewFileLogger creates the log directory if needed, opens a timestamped run
// log and updates the latest.log symlink.
func NewFileLogger(logDir string, logLevel string) (*FileLogger, error) {
	if err := os.MkdirAll(logDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create log directory: %w", err)
	}

	runFile := filepath.Join(logDir, fmt.Sprintf("run-%s.log", time.Now().Format("20060102-150405")))
	file, err := os.OpenFile(runFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return nil, fmt.Errorf("failed to create run log file: %w", err)
	}

	link := filepath.Join(logDir, LatestLink)
	if _, err := os.Lstat(link); err == nil {
		if err := os.Remove(link); err != nil {
			file.Close()
			return nil, fmt.Errorf("failed to remove old symlink: %w", err)
		}
	}
	if err := os.Symlink(filepath.Base(runFile), link); err != nil {
		file.Close()
		return nil, fmt.Errorf("failed to create symlink: %w", err)
	}

	fl := &FileLogger{
		logDir:   logDir,
		runLog:   file,
		runFile:  runFile,
		logLevel: normalizeLogLevel(logLevel),
	}
	fl.writeRunLog("=== ctxpack run log ===\n")
	fl.writeRunLog(fmt.Sprintf("Started at: %s\n\n", time.Now().Format(time.RFC3339)))

	return fl, nil
}

// RunFile returns the path of the current run log.
func (fl *FileLogger) RunFile() string {
	return fl.runFile
}

func (fl *FileLogger) shouldLog(messageLevel string) bool {
	return logLevelToInt(messageLevel) >= logLevelToInt(fl.logLevel)
}

func (fl *FileLogger) LogDebug(message string) { fl.logWithLevel("DEBUG", message) }
func (fl *FileLogger) LogInfo(message string) { fl.logWithLevel("INFO", message) }
func (fl *FileLogger) LogWarn(message string) { fl.logWithLevel("WARN", message) }
func (fl *FileLogger) LogError(message string) { fl.logWithLevel("ERROR", message) }

func (fl *FileLogger) logWithLevel(level string, message string) {
	if !fl.shouldLog(strings.ToLower(level)) {
		return
	}
	fl.writeRunLog(fmt.Sprintf("[%s] [%s] %s\n", timestamp(), level, message))
}

// LogProgress records each file read at DEBUG level. The bar itself is
// console-only.
func (fl *FileLogger) LogProgress(current, total int, path string) {
	fl.logWithLevel("DEBUG", fmt.Sprintf("(%d/%d) %s", current, total, path))
}

// LogSummary writes the run outcome, listing every matched and skipped file.
// It is written at INFO level.
func (fl *FileLogger) LogSummary(result *models.RunResult) {
	if result == nil || !fl.shouldLog("info") {
		return
	}

	var b strings.Builder
	b.WriteString("\n=== Summary ===\n")
	fmt.Fprintf(&b, "Mode: %s\n", result.Mode)
	if result.Mode == models.ModeBuild {
		fmt.Fprintf(&b, "Style: %s\n", result.Style)
	}
	fmt.Fprintf(&b, "Folder: %s\n", result.Root)
	fmt.Fprintf(&b, "Output: %s\n", result.OutputPath)
	fmt.Fprintf(&b, "Counts: %s\n", formatCounts(result))
	fmt.Fprintf(&b, "Duration: %s\n", formatDuration(result.Duration))

	if len(result.Files) > 0 {
		b.WriteString("\nMatched files:\n")
		for _, f := range result.Files {
			fmt.Fprintf(&b, "  %s\n", f)
		}
	}
	if len(result.Skipped) > 0 {
		b.WriteString("\nSkipped files:\n")
		for _, s := range result.Skipped {
			fmt.Fprintf(&b, "  %s: %v\n", s.Path, s.Err)
		}
	}

	fl.writeRunLog(b.String())
}

// Close flushes and closes the run log file.
func (fl *FileLogger) Close() error {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog == nil {
		return nil
	}
	if err := fl.runLog.Sync(); err != nil {
		return fmt.Errorf("failed to sync run log: %w", err)
	}
	if err := fl.runLog.Close(); err != nil {
		return fmt.Errorf("failed to close run log: %w", err)
	}
	fl.runLog = nil
	return nil
}

func (fl *FileLogger) writeRunLog(message string) {
	fl.mu.Lock()
	defer fl.mu.Unlock()

	if fl.runLog != nil {
		fl.runLog.WriteString(message)
	}
}
