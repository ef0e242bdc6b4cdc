// Package pattern loads include/exclude pattern lists and matches paths
// against them with fnmatch-style globs.
package pattern

import (
	"bufio"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"
)

// Warner receives non-fatal warnings.
type Warner interface {
	LogWarn(message string)
}

// LoadPatterns reads one pattern per line from path, trimming each line and
// skipping blank ones. A missing file is not an error: a warning is logged and
// an empty list returned.
func LoadPatterns(path string, w Warner) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			if w != nil {
				w.LogWarn(fmt.Sprintf("%s not found. Using empty list.", path))
			}
			return []string{}, nil
		}
		return nil, fmt.Errorf("failed to open pattern file: %w", err)
	}
	defer f.Close()

	patterns := []string{}
	scanner := bufio.NewScanner(f)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line != "" {
			patterns = append(patterns, line)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read pattern file %s: %w", path, err)
	}

	return patterns, nil
}
