package fileutil

import (
	"fmt"
	"io/fs"
	"iter"
	"os"
	"path/filepath"

	"github.com/harrison/ctxpack/internal/pattern"
)

// ScanResult contains the results of a directory scan
type ScanResult struct {
	// Root is the absolute path of the scanned directory
	Root string
	// Files contains the absolute paths of all matched files, in walk order
	Files []string
	// Errors contains any errors encountered during scanning
	Errors []error
}

// Walk returns a lazy sequence of the absolute paths of files under root that
// the matcher selects. Excluded directories are pruned before they are read.
//
// Within a directory, files are yielded in lexical order before any
// subdirectory is entered. Errors reading a directory are yielded as non-fatal
// values with an empty path and the walk carries on with its siblings.
func Walk(root string, m *pattern.Matcher) iter.Seq2[string, error] {
	return func(yield func(string, error) bool) {
		absRoot, err := filepath.Abs(root)
		if err != nil {
			yield("", fmt.Errorf("failed to resolve %s: %w", root, err))
			return
		}

		w := &walker{root: absRoot, matcher: m, yield: yield}
		w.walkDir(absRoot)
	}
}

// ScanDirectory walks root and collects every matched file.
// Returns an error only if root cannot be made absolute.
func ScanDirectory(root string, m *pattern.Matcher) (*ScanResult, error) {
	absRoot, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve directory: %w", err)
	}

	result := &ScanResult{
		Root:   absRoot,
		Files:  make([]string, 0),
		Errors: make([]error, 0),
	}

	for path, err := range Walk(absRoot, m) {
		if err != nil {
			result.Errors = append(result.Errors, err)
			continue
		}
		result.Files = append(result.Files, path)
	}

	return result, nil
}

type entryKind int

const (
	kindFile entryKind = iota
	kindDir
	// kindDirLink is a symlink to a directory; it is neither listed nor entered
	kindDirLink
)

type walker struct {
	root    string
	matcher *pattern.Matcher
	yield   func(string, error) bool
}

// walkDir visits one directory. It returns false once the consumer has
// stopped pulling values.
func (w *walker) walkDir(dir string) bool {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return w.yield("", fmt.Errorf("error accessing %s: %w", dir, err))
	}

	var subdirs []string
	for _, entry := range entries {
		path := filepath.Join(dir, entry.Name())

		switch classify(path, entry) {
		case kindDir:
			subdirs = append(subdirs, path)
			continue
		case kindDirLink:
			continue
		}

		if !w.matcher.Included(path) || w.matcher.Excluded(w.rel(path)) {
			continue
		}
		if !w.yield(path, nil) {
			return false
		}
	}

	for _, sub := range subdirs {
		if w.matcher.Excluded(w.rel(sub)) {
			continue
		}
		if !w.walkDir(sub) {
			return false
		}
	}

	return true
}

func (w *walker) rel(path string) string {
	rel, err := filepath.Rel(w.root, path)
	if err != nil {
		return path
	}
	return rel
}

func classify(path string, entry fs.DirEntry) entryKind {
	if entry.IsDir() {
		return kindDir
	}
	if entry.Type()&fs.ModeSymlink != 0 {
		if info, err := os.Stat(path); err == nil && info.IsDir() {
			return kindDirLink
		}
	}
	return kindFile
}
