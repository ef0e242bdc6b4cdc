// Package aggregate runs the ctxpack pipeline: load patterns, walk the
// folder, then write either a scope listing or an aggregate of file contents.
package aggregate

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/harrison/ctxpack/internal/config"
	"github.com/harrison/ctxpack/internal/fileutil"
	"github.com/harrison/ctxpack/internal/filelock"
	"github.com/harrison/ctxpack/internal/logger"
	"github.com/harrison/ctxpack/internal/models"
	"github.com/harrison/ctxpack/internal/pattern"
	"github.com/harrison/ctxpack/internal/transform"
)

// Logger receives progress messages from a run.
type Logger interface {
	LogDebug(message string)
	LogInfo(message string)
	LogWarn(message string)
	LogError(message string)
}

// ProgressLogger is implemented by loggers that report per-file progress
// while build output is assembled.
type ProgressLogger interface {
	LogProgress(current, total int, path string)
}

// Stage rewrites file content before it is written. ext is the file
// extension including the dot.
type Stage func(content, ext string) string

// Options configures a single run.
type Options struct {
	// Folder is the directory tree to scan
	Folder string
	// BaseDir is where pattern, notes and output files are resolved
	BaseDir string

	IncludeFile string
	IgnoreFile  string
	NotesFile   string
	ScopeOutput string
	BuildOutput string

	Mode models.Mode
	// Style selects build output markers
	Style models.Style
	// Transform enables the whitespace and comment stripping stage
	Transform bool
}

// OptionsFromConfig fills Options from cfg. Optimize selects both the
// optimized markers and the transform stage.
func OptionsFromConfig(cfg *config.Config, folder, baseDir string, mode models.Mode) Options {
	style := models.StyleBasic
	if cfg.Optimize {
		style = models.StyleOptimized
	}
	return Options{
		Folder:      folder,
		BaseDir:     baseDir,
		IncludeFile: cfg.IncludeFile,
		IgnoreFile:  cfg.IgnoreFile,
		NotesFile:   cfg.NotesFile,
		ScopeOutput: cfg.ScopeOutput,
		BuildOutput: cfg.BuildOutput,
		Mode:        mode,
		Style:       style,
		Transform:   cfg.Optimize,
	}
}

// Runner executes one pass of the pipeline.
type Runner struct {
	opts   Options
	log    Logger
	format Format
	stage  Stage
}

// NewRunner creates a Runner. A nil logger discards messages.
func NewRunner(opts Options, log Logger) *Runner {
	if opts.BaseDir == "" {
		opts.BaseDir = "."
	}
	if opts.Mode == "" {
		opts.Mode = models.ModeScope
	}
	if opts.Style == "" {
		opts.Style = models.StyleBasic
	}
	if log == nil {
		log = logger.NewNoOpLogger()
	}

	r := &Runner{
		opts:   opts,
		log:    log,
		format: NewFormat(opts.Style),
		stage:  identity,
	}
	if opts.Transform {
		r.stage = transform.Transform
	}
	return r
}

// Run loads patterns, walks the folder and writes the output for the
// configured mode. Unreadable directories and files are reported and
// skipped; only pattern-file and output-write failures abort the run.
func (r *Runner) Run() (*models.RunResult, error) {
	start := time.Now()

	include, err := pattern.LoadPatterns(r.path(r.opts.IncludeFile), r.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load include patterns: %w", err)
	}
	exclude, err := pattern.LoadPatterns(r.path(r.opts.IgnoreFile), r.log)
	if err != nil {
		return nil, fmt.Errorf("failed to load ignore patterns: %w", err)
	}
	matcher := pattern.NewMatcher(include, exclude)
	r.log.LogDebug(fmt.Sprintf("Loaded %d include and %d ignore patterns", matcher.IncludeCount(), matcher.ExcludeCount()))

	scan, err := fileutil.ScanDirectory(r.opts.Folder, matcher)
	if err != nil {
		return nil, err
	}
	for _, walkErr := range scan.Errors {
		r.log.LogWarn(walkErr.Error())
	}

	// Both outputs are dropped in either mode, so a scope run over a folder
	// holding a previous output.txt does not list it.
	result := &models.RunResult{
		Mode:       r.opts.Mode,
		Style:      r.opts.Style,
		Root:       scan.Root,
		Files:      r.withoutOwnOutputs(scan.Files),
		WalkErrors: scan.Errors,
	}
	r.log.LogDebug(fmt.Sprintf("Matched %d files under %s", len(result.Files), scan.Root))

	switch r.opts.Mode {
	case models.ModeBuild:
		err = r.writeBuild(result)
	default:
		err = r.writeScope(result)
	}
	if err != nil {
		return nil, err
	}

	result.Duration = time.Since(start)
	return result, nil
}

func (r *Runner) writeScope(result *models.RunResult) error {
	name := r.path(r.opts.ScopeOutput)
	result.OutputPath = name

	if err := r.removeExisting(name); err != nil {
		return err
	}

	var b strings.Builder
	for _, path := range result.Files {
		b.WriteString(relativeEntry(result.Root, path))
		b.WriteString("\n")
	}

	if err := filelock.LockAndWrite(name, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.log.LogInfo(fmt.Sprintf("Created %s with the list of files that would be included.", name))
	return nil
}

func (r *Runner) writeBuild(result *models.RunResult) error {
	name := r.path(r.opts.BuildOutput)
	result.OutputPath = name

	if err := r.removeExisting(name); err != nil {
		return err
	}

	var b strings.Builder

	notesPath := r.path(r.opts.NotesFile)
	notes, ok, err := readOptionalText(notesPath)
	switch {
	case err != nil:
		r.log.LogError(fmt.Sprintf("Error reading %s: %v", notesPath, err))
	case !ok:
		r.log.LogWarn(fmt.Sprintf("%s not found. Proceeding without notes.", notesPath))
	default:
		if text := r.stage(notes, filepath.Ext(notesPath)); text != "" {
			b.WriteString(r.format.Notes(filepath.Base(notesPath), text))
			result.NotesIncluded = true
		}
	}

	progress, _ := r.log.(ProgressLogger)
	for i, path := range result.Files {
		if progress != nil {
			progress.LogProgress(i+1, len(result.Files), path)
		}
		rel := relativeEntry(result.Root, path)
		content, err := readText(path)
		if err != nil {
			r.log.LogError(fmt.Sprintf("Error reading %s: %v", path, err))
			result.Skipped = append(result.Skipped, models.SkippedFile{Path: path, Err: err})
			b.WriteString(r.format.Unreadable(path, rel))
			continue
		}
		content = r.stage(content, filepath.Ext(path))
		b.WriteString(r.format.File(path, rel, content))
	}

	if err := filelock.LockAndWrite(name, []byte(b.String())); err != nil {
		return fmt.Errorf("failed to write %s: %w", name, err)
	}
	r.log.LogInfo(fmt.Sprintf("Created %s with aggregated file contents.", name))
	return nil
}

// removeExisting deletes a previous output file so a failed write never
// leaves stale results behind.
func (r *Runner) removeExisting(name string) error {
	err := os.Remove(name)
	switch {
	case err == nil:
		r.log.LogInfo(fmt.Sprintf("Deleted existing %s", name))
		return nil
	case errors.Is(err, fs.ErrNotExist):
		return nil
	default:
		return fmt.Errorf("failed to delete existing %s: %w", name, err)
	}
}

// withoutOwnOutputs drops the tool's own output files from the match list,
// since they are replaced during the run.
func (r *Runner) withoutOwnOutputs(files []string) []string {
	own := make(map[string]bool, 2)
	for _, name := range []string{r.opts.ScopeOutput, r.opts.BuildOutput} {
		if abs, err := filepath.Abs(r.path(name)); err == nil {
			own[abs] = true
		}
	}

	kept := make([]string, 0, len(files))
	for _, f := range files {
		if own[f] {
			r.log.LogDebug(fmt.Sprintf("Skipping own output file %s", f))
			continue
		}
		kept = append(kept, f)
	}
	return kept
}

func (r *Runner) path(name string) string {
	return config.Resolve(r.opts.BaseDir, name)
}

// relativeEntry formats path as "/" plus its slash-separated path relative
// to root.
func relativeEntry(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil {
		rel = path
	}
	return "/" + filepath.ToSlash(rel)
}

func identity(content, ext string) string {
	return content
}
