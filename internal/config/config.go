package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/harrison/ctxpack/internal/logger"
	"gopkg.in/yaml.v3"
)

// FileName is the name of the optional config file looked up in the base directory
const FileName = ".ctxpack.yaml"

// Config represents ctxpack configuration options
type Config struct {
	// IncludeFile lists include glob patterns, one per line
	IncludeFile string `yaml:"include_file"`

	// IgnoreFile lists exclude glob patterns, one per line
	IgnoreFile string `yaml:"ignore_file"`

	// NotesFile holds free text written at the top of build output
	NotesFile string `yaml:"notes_file"`

	// ScopeOutput is the file written in scope mode
	ScopeOutput string `yaml:"scope_output"`

	// BuildOutput is the file written in build mode
	BuildOutput string `yaml:"build_output"`

	// LogLevel sets the logging verbosity (trace, debug, info, warn, error)
	LogLevel string `yaml:"log_level"`

	// Optimize collapses whitespace and strips comments in build output
	Optimize bool `yaml:"optimize"`

	// LogDir receives a per-run log file when set; empty disables file logging
	LogDir string `yaml:"log_dir"`
}

// DefaultConfig returns a Config with the fixed file names
func DefaultConfig() *Config {
	return &Config{
		IncludeFile: "include.txt",
		IgnoreFile:  "ignore.txt",
		NotesFile:   "notes.txt",
		ScopeOutput: "run-scope.txt",
		BuildOutput: "output.txt",
		LogLevel:    "info",
		Optimize:    false,
	}
}

// LoadConfig loads configuration from the specified file path
// If the file doesn't exist, returns default configuration without error
// If the file exists but is malformed, returns an error
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var fileCfg Config
	if err := yaml.Unmarshal(data, &fileCfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Apply non-empty values from file (merging with defaults)
	if fileCfg.IncludeFile != "" {
		cfg.IncludeFile = fileCfg.IncludeFile
	}
	if fileCfg.IgnoreFile != "" {
		cfg.IgnoreFile = fileCfg.IgnoreFile
	}
	if fileCfg.NotesFile != "" {
		cfg.NotesFile = fileCfg.NotesFile
	}
	if fileCfg.ScopeOutput != "" {
		cfg.ScopeOutput = fileCfg.ScopeOutput
	}
	if fileCfg.BuildOutput != "" {
		cfg.BuildOutput = fileCfg.BuildOutput
	}
	if fileCfg.LogLevel != "" {
		cfg.LogLevel = fileCfg.LogLevel
	}
	if fileCfg.LogDir != "" {
		cfg.LogDir = fileCfg.LogDir
	}

	// optimize is applied whenever the key is present, so "optimize: false"
	// is honoured even if the default ever changes
	var rawMap map[string]interface{}
	if err := yaml.Unmarshal(data, &rawMap); err == nil {
		if _, exists := rawMap["optimize"]; exists {
			cfg.Optimize = fileCfg.Optimize
		}
	}

	return cfg, nil
}

// LoadConfigFromDir loads configuration from .ctxpack.yaml in the specified directory
// If the file doesn't exist, returns default configuration without error
func LoadConfigFromDir(dir string) (*Config, error) {
	return LoadConfig(filepath.Join(dir, FileName))
}

// MergeWithFlags merges CLI flags into the configuration
// Non-nil flag values override configuration values
func (c *Config) MergeWithFlags(logLevel *string, optimize *bool, logDir *string) {
	if logLevel != nil && *logLevel != "" {
		c.LogLevel = *logLevel
	}
	if optimize != nil {
		c.Optimize = *optimize
	}
	if logDir != nil && *logDir != "" {
		c.LogDir = *logDir
	}
}

// Validate checks that the configuration is usable
func (c *Config) Validate() error {
	names := []struct {
		key   string
		value string
	}{
		{"include_file", c.IncludeFile},
		{"ignore_file", c.IgnoreFile},
		{"notes_file", c.NotesFile},
		{"scope_output", c.ScopeOutput},
		{"build_output", c.BuildOutput},
	}
	for _, n := range names {
		if n.value == "" {
			return fmt.Errorf("%s must not be empty", n.key)
		}
	}

	if filepath.Clean(c.ScopeOutput) == filepath.Clean(c.BuildOutput) {
		return fmt.Errorf("scope_output and build_output must differ, both are %q", c.ScopeOutput)
	}

	if !logger.IsValidLevel(c.LogLevel) {
		return fmt.Errorf("invalid log_level %q: must be one of %v", c.LogLevel, logger.ValidLevels)
	}

	return nil
}

// Resolve returns name joined to baseDir unless name is already absolute
func Resolve(baseDir, name string) string {
	if filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(baseDir, name)
}
