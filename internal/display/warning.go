package display

import (
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
)

// Warning represents a user-facing warning message
type Warning struct {
	Title      string   // Main warning title
	Message    string   // Detailed explanation (optional)
	Files      []string // Related files (optional)
	Suggestion string   // Action to take (optional)
}

// Display writes the formatted warning to out in yellow.
// Color is dropped automatically when stdout is not a terminal.
func (w Warning) Display(out io.Writer) {
	var b strings.Builder

	b.WriteString("Warning: ")
	b.WriteString(w.Title)
	b.WriteString("\n")

	if w.Message != "" {
		b.WriteString("    ")
		b.WriteString(w.Message)
		b.WriteString("\n")
	}

	if len(w.Files) > 0 {
		if len(w.Files) == 1 {
			b.WriteString("    Affected file:\n")
		} else {
			b.WriteString("    Affected files:\n")
		}
		for i, file := range w.Files {
			fmt.Fprintf(&b, "      %d. %s\n", i+1, file)
		}
	}

	if w.Suggestion != "" {
		b.WriteString("    Suggestion:\n")
		b.WriteString("    ")
		b.WriteString(w.Suggestion)
		b.WriteString("\n")
	}

	color.New(color.FgYellow).Fprint(out, b.String())
}

// WarnSkippedFiles creates a warning for matched files left out of the aggregate
func WarnSkippedFiles(files []string) Warning {
	noun := "files were"
	if len(files) == 1 {
		noun = "file was"
	}
	return Warning{
		Title:      fmt.Sprintf("%d matched %s skipped", len(files), noun),
		Message:    "They could not be read or are not UTF-8 text.",
		Files:      files,
		Suggestion: "Add binary or generated files to the ignore list.",
	}
}

// WarnUnreadableDirs creates a warning for directories the walk could not list
func WarnUnreadableDirs(errs []error) Warning {
	lines := make([]string, 0, len(errs))
	for _, err := range errs {
		lines = append(lines, err.Error())
	}
	return Warning{
		Title: "Some directories could not be read",
		Files: lines,
	}
}
