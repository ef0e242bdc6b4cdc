package models

import "time"

// Mode selects what a run produces
type Mode string

const (
	ModeScope Mode = "scope" // List matched files
	ModeBuild Mode = "build" // Concatenate matched file contents
)

// Style selects how build output is rendered
type Style string

const (
	StyleBasic     Style = "basic"     // Raw content, absolute path headers
	StyleOptimized Style = "optimized" // Transformed content, relative path headers
)

// SkippedFile is a matched file whose content could not be aggregated
type SkippedFile struct {
	Path string // Absolute path of the file
	Err  error  // Why it was skipped
}

// RunResult represents the outcome of a single run
type RunResult struct {
	Mode          Mode          // Scope or build
	Style         Style         // Only meaningful in build mode
	Root          string        // Absolute path of the scanned folder
	OutputPath    string        // File that was written
	Files         []string      // Matched files in walk order
	Skipped       []SkippedFile // Files left out of the aggregate
	WalkErrors    []error       // Non-fatal traversal errors
	NotesIncluded bool          // Whether a notes section was written
	Duration      time.Duration // Time taken
}

// Written returns the number of matched files that made it into the output.
func (r *RunResult) Written() int {
	return len(r.Files) - len(r.Skipped)
}

// SkippedPaths returns the paths of skipped files in order.
func (r *RunResult) SkippedPaths() []string {
	paths := make([]string, 0, len(r.Skipped))
	for _, s := range r.Skipped {
		paths = append(paths, s.Path)
	}
	return paths
}
