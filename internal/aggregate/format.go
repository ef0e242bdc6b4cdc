package aggregate

import (
	"fmt"

	"github.com/harrison/ctxpack/internal/models"
)

// Format renders the markers around each section of build output.
// Content arrives already passed through the transform stage, if any.
type Format interface {
	// Notes renders the notes section. Empty text is never passed.
	Notes(name, text string) string
	// File renders one matched file.
	File(absPath, relPath, content string) string
	// Unreadable renders what is kept of a file whose content could not
	// be read.
	Unreadable(absPath, relPath string) string
}

// NewFormat returns the Format for style.
func NewFormat(style models.Style) Format {
	if style == models.StyleOptimized {
		return optimizedFormat{}
	}
	return basicFormat{}
}

// basicFormat names each file by absolute path under comment-style markers.
type basicFormat struct{}

func (basicFormat) Notes(name, text string) string {
	return fmt.Sprintf("// Contents of %s\n\n%s\n\n// End of %s\n\n", name, text, name)
}

func (f basicFormat) File(absPath, relPath, content string) string {
	return f.Unreadable(absPath, relPath) + content + "\n\n"
}

// Unreadable keeps the header, which is written before the file is read.
func (basicFormat) Unreadable(absPath, relPath string) string {
	return fmt.Sprintf("// Contents of file: %s\n\n", absPath)
}

// optimizedFormat names each file by slash-prefixed relative path under
// short markers.
type optimizedFormat struct{}

func (optimizedFormat) Notes(name, text string) string {
	return "NOTES: " + text + "\n\n"
}

func (optimizedFormat) File(absPath, relPath, content string) string {
	return fmt.Sprintf("FILE: %s\n%s\n\n", relPath, content)
}

// Unreadable drops the whole entry.
func (optimizedFormat) Unreadable(absPath, relPath string) string {
	return ""
}
