package cmd

import (
	"bytes"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/fatih/color"
	"github.com/harrison/ctxpack/internal/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeRoot runs the root command with args and returns its output
func executeRoot(t *testing.T, args ...string) (string, error) {
	t.Helper()

	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })

	cmd := NewRootCommand()
	buf := new(bytes.Buffer)
	cmd.SetOut(buf)
	cmd.SetErr(buf)
	cmd.SetArgs(args)

	err := cmd.Execute()
	return buf.String(), err
}

// setupProject creates a base directory with pattern files and a folder
// containing a few source files
func setupProject(t *testing.T) (base, folder string) {
	t.Helper()

	base = t.TempDir()
	folder = t.TempDir()

	write := func(path, content string) {
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	}
	write(filepath.Join(base, "include.txt"), "*.py\n*.md\n")
	write(filepath.Join(base, "ignore.txt"), "vendor/*\n")
	write(filepath.Join(folder, "main.py"), "# entry\nprint('hi')\n")
	write(filepath.Join(folder, "README.md"), "Docs\n")
	write(filepath.Join(folder, "vendor", "lib.py"), "x = 1\n")
	return base, folder
}

func TestRootCommand(t *testing.T) {
	cmd := NewRootCommand()
	require.NotNil(t, cmd)
	assert.Equal(t, "ctxpack", cmd.Use)

	for _, name := range []string{"folder", "build", "optimize", "base-dir", "config", "log-level", "log-dir"} {
		assert.NotNil(t, cmd.Flags().Lookup(name), "missing flag --%s", name)
	}
}

func TestRootCommand_Help(t *testing.T) {
	output, err := executeRoot(t, "--help")
	require.NoError(t, err)
	assert.Contains(t, output, "ctxpack")
	assert.Contains(t, output, "--folder")
}

func TestVersionFlag(t *testing.T) {
	output, err := executeRoot(t, "--version")
	require.NoError(t, err)
	assert.Contains(t, output, "version")
}

func TestRootCommand_UsageErrors(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{name: "no arguments", args: nil},
		{name: "empty folder", args: []string{"--folder", ""}},
		{name: "unknown flag", args: []string{"--folder", ".", "--frobnicate"}},
		{name: "positional argument", args: []string{"--folder", ".", "extra"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := executeRoot(t, tt.args...)
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrUsage), "expected ErrUsage, got %v", err)
		})
	}
}

func TestRootCommand_Scope(t *testing.T) {
	base, folder := setupProject(t)

	output, err := executeRoot(t, "--folder", folder, "--base-dir", base)
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "run-scope.txt"))
	require.NoError(t, err)
	assert.Equal(t, "/README.md\n/main.py\n", string(data))

	assert.Contains(t, output, "with the list of files that would be included.")
	assert.Contains(t, output, "scope complete")
	assert.NoFileExists(t, filepath.Join(base, "output.txt"))
}

func TestRootCommand_Build(t *testing.T) {
	base, folder := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(base, "notes.txt"), []byte("Project notes"), 0644))

	output, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "output.txt"))
	require.NoError(t, err)
	content := string(data)

	assert.True(t, strings.HasPrefix(content, "// Contents of notes.txt\n\nProject notes\n\n// End of notes.txt\n\n"))
	assert.Contains(t, content, "// Contents of file: "+filepath.Join(folder, "main.py")+"\n\n# entry\nprint('hi')\n\n\n")
	assert.NotContains(t, content, "lib.py")
	assert.Contains(t, output, "with aggregated file contents.")
	assert.Contains(t, output, "build complete")
}

func TestRootCommand_BuildOptimized(t *testing.T) {
	base, folder := setupProject(t)

	_, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build", "--optimize")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "output.txt"))
	require.NoError(t, err)
	assert.Equal(t, "FILE: /README.md\nDocs\n\nFILE: /main.py\n\n\n", string(data))
}

func TestRootCommand_ConfigFile(t *testing.T) {
	base, folder := setupProject(t)
	cfg := "optimize: true\nbuild_output: bundle.txt\nlog_level: warn\n"
	require.NoError(t, os.WriteFile(filepath.Join(base, ".ctxpack.yaml"), []byte(cfg), 0644))

	output, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "bundle.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "FILE: /README.md\n"))
	assert.NotContains(t, output, "[INFO]")
}

func TestRootCommand_FlagsOverrideConfig(t *testing.T) {
	base, folder := setupProject(t)
	cfgPath := filepath.Join(t.TempDir(), "custom.yaml")
	require.NoError(t, os.WriteFile(cfgPath, []byte("optimize: true\n"), 0644))

	_, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build",
		"--config", cfgPath, "--optimize=false")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "output.txt"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(data), "// Contents of file: "))
}

func TestRootCommand_InvalidConfig(t *testing.T) {
	base, folder := setupProject(t)

	_, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--log-level", "chatty")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.False(t, errors.Is(err, ErrUsage))
}

func TestRootCommand_SkippedFilesWarning(t *testing.T) {
	base, folder := setupProject(t)
	require.NoError(t, os.WriteFile(filepath.Join(folder, "blob.py"), []byte{0xff, 0xfe, 0x00}, 0644))

	output, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build")
	require.NoError(t, err)
	assert.Contains(t, output, "Warning: 1 matched file was skipped")
	assert.Contains(t, output, filepath.Join(folder, "blob.py"))
}

func TestExpandPath(t *testing.T) {
	home, err := os.UserHomeDir()
	require.NoError(t, err)

	assert.Equal(t, home, expandPath("~"))
	assert.Equal(t, filepath.Join(home, "src"), expandPath("~/src"))
	assert.Equal(t, "~user/src", expandPath("~user/src"))
	assert.Equal(t, "/abs/path", expandPath("/abs/path"))
}

func TestRootCommand_LogDir(t *testing.T) {
	base, folder := setupProject(t)

	_, err := executeRoot(t, "--folder", folder, "--base-dir", base, "--build", "--log-dir", "logs")
	require.NoError(t, err)

	data, err := os.ReadFile(filepath.Join(base, "logs", "latest.log"))
	require.NoError(t, err)
	content := string(data)

	assert.Contains(t, content, "=== ctxpack run log ===")
	assert.Contains(t, content, "with aggregated file contents.")
	assert.Contains(t, content, "Mode: build")
	assert.Contains(t, content, filepath.Join(folder, "main.py"))
}

func TestMultiLoggerForwards(t *testing.T) {
	var a, b bytes.Buffer
	ml := &multiLogger{loggers: []runLogger{
		logger.NewConsoleLogger(&a, "debug"),
		logger.NewConsoleLogger(&b, "warn"),
	}}

	ml.LogInfo("hello")
	ml.LogWarn("careful")
	ml.LogProgress(1, 2, "/src/a.go")

	assert.Contains(t, a.String(), "[INFO] hello")
	assert.Contains(t, a.String(), "[WARN] careful")
	assert.Contains(t, a.String(), "1/2 (50%) /src/a.go")
	assert.NotContains(t, b.String(), "hello")
	assert.Contains(t, b.String(), "[WARN] careful")
}
