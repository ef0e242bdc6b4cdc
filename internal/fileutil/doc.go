// Package fileutil walks a directory tree and selects files by include and
// exclude glob patterns.
//
// # Walking
//
// Walk is a pull-based sequence backed by a top-down depth-first traversal.
// Each directory is listed once; its files are checked and yielded first, then
// its subdirectories are entered in lexical order. A subdirectory whose path
// relative to the root matches an exclude pattern is pruned before it is read,
// so nothing beneath it can ever be yielded.
//
//	m := pattern.NewMatcher([]string{"*.go"}, []string{"vendor/*"})
//	for path, err := range fileutil.Walk(root, m) {
//	    if err != nil {
//	        log.Printf("skipping: %v", err)
//	        continue
//	    }
//	    fmt.Println(path)
//	}
//
// ScanDirectory drains the same sequence into a ScanResult for callers that
// want the whole list up front.
//
// # Error Tolerance
//
// A directory that cannot be read (permission denied, vanished mid-walk, or a
// root that does not exist) produces a non-fatal error value. The walk carries
// on with the remaining entries.
//
// # Symlinks
//
// Symlinks to directories are never followed. Symlinks to files, including
// broken ones, are treated as files.
package fileutil
