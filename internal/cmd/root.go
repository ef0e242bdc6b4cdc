package cmd

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/harrison/ctxpack/internal/aggregate"
	"github.com/harrison/ctxpack/internal/config"
	"github.com/harrison/ctxpack/internal/display"
	"github.com/harrison/ctxpack/internal/logger"
	"github.com/harrison/ctxpack/internal/models"
	"github.com/spf13/cobra"
)

// Version is injected at build time via -ldflags
var Version = "dev"

// UsageLine is printed when the command line cannot be used
const UsageLine = "Usage: ctxpack --folder <folder_path> [--build]"

// ErrUsage marks errors caused by a malformed command line
var ErrUsage = errors.New("invalid usage")

// NewRootCommand creates and returns the root cobra command for ctxpack
func NewRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "ctxpack",
		Short: "Aggregate matching source files into a single context file",
		Long: `ctxpack walks a folder, selects files by the glob patterns in include.txt
and ignore.txt, and either lists the selection or concatenates the files
into one output file.

Without --build the selected paths are written to run-scope.txt so the
selection can be reviewed. With --build their contents are written to
output.txt, preceded by notes.txt when present.

Configuration is loaded from .ctxpack.yaml in the base directory if present.
CLI flags override configuration file settings.

Examples:
  ctxpack --folder ./src                  # Write run-scope.txt
  ctxpack --folder ./src --build          # Write output.txt
  ctxpack --folder ./src --build --optimize   # Compact output, comments stripped
  ctxpack --folder ./src --base-dir ./ctx # Pattern and output files live in ./ctx`,
		Version:       Version,
		Args:          noArgs,
		RunE:          runRoot,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.Flags().String("folder", "", "Folder to scan (required)")
	cmd.Flags().Bool("build", false, "Write aggregated file contents instead of the scope list")
	cmd.Flags().Bool("optimize", false, "Collapse whitespace, strip comments and use compact markers")
	cmd.Flags().String("base-dir", ".", "Directory holding pattern, notes and output files")
	cmd.Flags().String("config", "", "Path to config file (default: <base-dir>/.ctxpack.yaml)")
	cmd.Flags().String("log-level", "", "Log level: trace, debug, info, warn, error (overrides config)")
	cmd.Flags().String("log-dir", "", "Directory for per-run log files (overrides config)")

	cmd.SetFlagErrorFunc(func(c *cobra.Command, err error) error {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	})

	return cmd
}

// noArgs rejects positional arguments as a usage error
func noArgs(cmd *cobra.Command, args []string) error {
	if err := cobra.NoArgs(cmd, args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}

func runRoot(cmd *cobra.Command, args []string) error {
	folder, _ := cmd.Flags().GetString("folder")
	if strings.TrimSpace(folder) == "" {
		return fmt.Errorf("%w: --folder is required", ErrUsage)
	}
	folder, err := filepath.Abs(expandPath(folder))
	if err != nil {
		return fmt.Errorf("failed to resolve folder: %w", err)
	}

	baseDir, _ := cmd.Flags().GetString("base-dir")
	baseDir = expandPath(baseDir)

	cfg, err := loadConfig(cmd, baseDir)
	if err != nil {
		return err
	}

	var logLevel *string
	if cmd.Flags().Changed("log-level") {
		v, _ := cmd.Flags().GetString("log-level")
		logLevel = &v
	}
	var optimize *bool
	if cmd.Flags().Changed("optimize") {
		v, _ := cmd.Flags().GetBool("optimize")
		optimize = &v
	}
	var logDir *string
	if cmd.Flags().Changed("log-dir") {
		v, _ := cmd.Flags().GetString("log-dir")
		logDir = &v
	}
	cfg.MergeWithFlags(logLevel, optimize, logDir)

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	mode := models.ModeScope
	if build, _ := cmd.Flags().GetBool("build"); build {
		mode = models.ModeBuild
	}

	out := cmd.OutOrStdout()
	log := &multiLogger{loggers: []runLogger{logger.NewConsoleLogger(out, cfg.LogLevel)}}

	if cfg.LogDir != "" {
		fileLog, err := logger.NewFileLogger(config.Resolve(baseDir, expandPath(cfg.LogDir)), cfg.LogLevel)
		if err != nil {
			return fmt.Errorf("failed to create file logger: %w", err)
		}
		defer fileLog.Close()
		log.loggers = append(log.loggers, fileLog)
	}

	runner := aggregate.NewRunner(aggregate.OptionsFromConfig(cfg, folder, baseDir, mode), log)
	result, err := runner.Run()
	if err != nil {
		return err
	}

	if len(result.WalkErrors) > 0 {
		display.WarnUnreadableDirs(result.WalkErrors).Display(out)
	}
	if len(result.Skipped) > 0 {
		display.WarnSkippedFiles(result.SkippedPaths()).Display(out)
	}
	log.LogSummary(result)

	return nil
}

func loadConfig(cmd *cobra.Command, baseDir string) (*config.Config, error) {
	configPath, _ := cmd.Flags().GetString("config")
	if configPath != "" {
		cfg, err := config.LoadConfig(expandPath(configPath))
		if err != nil {
			return nil, fmt.Errorf("failed to load config from %s: %w", configPath, err)
		}
		return cfg, nil
	}

	cfg, err := config.LoadConfigFromDir(baseDir)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	return cfg, nil
}

// expandPath expands ~ to home directory
func expandPath(path string) string {
	if path == "~" || strings.HasPrefix(path, "~/") {
		home, err := os.UserHomeDir()
		if err != nil {
			return path
		}
		return filepath.Join(home, path[1:])
	}
	return path
}
