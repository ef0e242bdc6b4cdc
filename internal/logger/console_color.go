package logger

import (
	"fmt"
	"strings"

	"github.com/fatih/color"
	"github.com/harrison/ctxpack/internal/models"
)

// colorScheme defines consistent colors for summary counts.
// Green: files written
// Red: files skipped
// Yellow: traversal warnings
// Cyan: labels
type colorScheme struct {
	success *color.Color
	fail    *color.Color
	warn    *color.Color
	label   *color.Color
	value   *color.Color
}

func newColorScheme() *colorScheme {
	return &colorScheme{
		success: color.New(color.FgGreen),
		fail:    color.New(color.FgRed),
		warn:    color.New(color.FgYellow),
		label:   color.New(color.FgCyan),
		value:   color.New(color.FgWhite),
	}
}

// formatColorizedMetric formats a single metric with colorized label and value.
func formatColorizedMetric(label string, value interface{}, scheme *colorScheme) string {
	return fmt.Sprintf("%s: %s", scheme.label.Sprint(label), scheme.value.Sprintf("%v", value))
}

// formatColorizedCounts formats the run counts with color coding.
// Zero skipped files and zero walk errors are omitted.
func formatColorizedCounts(result *models.RunResult, scheme *colorScheme) string {
	parts := []string{formatColorizedMetric("matched", len(result.Files), scheme)}

	if result.Mode == models.ModeBuild {
		parts = append(parts, fmt.Sprintf("%s: %s",
			scheme.success.Sprint("written"), scheme.value.Sprintf("%d", result.Written())))
	}
	if n := len(result.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.fail.Sprint("skipped"), scheme.fail.Sprintf("%d", n)))
	}
	if n := len(result.WalkErrors); n > 0 {
		parts = append(parts, fmt.Sprintf("%s: %s", scheme.warn.Sprint("unreadable dirs"), scheme.warn.Sprintf("%d", n)))
	}

	return strings.Join(parts, ", ")
}

// formatCounts is the plain-text form of formatColorizedCounts.
func formatCounts(result *models.RunResult) string {
	parts := []string{fmt.Sprintf("matched: %d", len(result.Files))}

	if result.Mode == models.ModeBuild {
		parts = append(parts, fmt.Sprintf("written: %d", result.Written()))
	}
	if n := len(result.Skipped); n > 0 {
		parts = append(parts, fmt.Sprintf("skipped: %d", n))
	}
	if n := len(result.WalkErrors); n > 0 {
		parts = append(parts, fmt.Sprintf("unreadable dirs: %d", n))
	}

	return strings.Join(parts, ", ")
}
