package pattern

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatcherIncluded(t *testing.T) {
	m := NewMatcher([]string{"*.py", "Makefile"}, nil)

	tests := []struct {
		path string
		want bool
	}{
		{"/root/a.py", true},
		{"/root/pkg/deep/b.py", true},
		{"/root/Makefile", true},
		{"/root/makefile", false},
		{"/root/a.go", false},
		// basename only: directory names do not count
		{"/root/x.py/readme.md", false},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, m.Included(tt.path), "Included(%q)", tt.path)
	}
}

func TestMatcherEmptyIncludeSelectsNothing(t *testing.T) {
	m := NewMatcher(nil, nil)
	for _, p := range []string{"a.py", "/x/y/z.go", "Makefile", ""} {
		assert.False(t, m.Included(p), "Included(%q) with no include patterns", p)
	}
}

func TestMatcherExcluded(t *testing.T) {
	tests := []struct {
		name    string
		exclude []string
		rel     string
		want    bool
	}{
		{"dir prefix file", []string{"build/*"}, "build/x.py", true},
		{"dir prefix dir itself", []string{"build/*"}, "build", true},
		{"dir prefix is plain string prefix", []string{"build/*"}, "buildx/y.py", true},
		{"dir prefix not at depth", []string{"build/*"}, "src/build/x.py", false},
		{"leading slash stripped", []string{"/build/*"}, "build/x.py", true},
		{"glob direct", []string{"*.log"}, "a.log", true},
		{"glob any depth", []string{"*.log"}, "logs/2024/a.log", true},
		{"name at any depth", []string{"secret.txt"}, "deep/dir/secret.txt", true},
		{"name at root", []string{"secret.txt"}, "secret.txt", true},
		{"directory name", []string{"node_modules"}, "web/node_modules", true},
		{"no match", []string{"*.log", "build/*"}, "src/main.py", false},
		{"no patterns", nil, "anything", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			m := NewMatcher([]string{"*"}, tt.exclude)
			assert.Equal(t, tt.want, m.Excluded(tt.rel))
		})
	}
}

func TestMatcherCounts(t *testing.T) {
	m := NewMatcher([]string{"*.py", "*.go"}, []string{"build/*"})
	assert.Equal(t, 2, m.IncludeCount())
	assert.Equal(t, 1, m.ExcludeCount())
}
