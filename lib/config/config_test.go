package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/fosdem/glcontext/lib/glcontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o644))
	return path
}

func TestParse(t *testing.T) {
	path := writeConfig(t, `
contexts:
  main:
    version: "4.1"
    flags: [alpha, depth, stencil]
    width: 640
    height: 480
  legacy:
    version: "2.1"
    flags: [compatibility_profile]
api:
  bind: ":9090"
`)
	cfg, err := Parse(path)
	require.NoError(t, err)

	assert.Equal(t, []string{"legacy", "main"}, cfg.Names())

	main := cfg.Contexts["main"]
	assert.Equal(t, glcontext.NewContextAttributes(
		glcontext.NewGLVersion(4, 1),
		glcontext.Alpha|glcontext.Depth|glcontext.Stencil,
	), main.Attributes())
	w, h := main.Size()
	assert.Equal(t, 640, w)
	assert.Equal(t, 480, h)

	legacy := cfg.Contexts["legacy"]
	assert.True(t, legacy.Flags.Contains(glcontext.CompatibilityProfile))
	w, h = legacy.Size()
	assert.Equal(t, defaultSize, w)
	assert.Equal(t, defaultSize, h)

	require.NotNil(t, cfg.Api)
	assert.Equal(t, ":9090", cfg.Api.Bind)
	assert.Contains(t, cfg.String(), "legacy (GL 2.1 [compatibility_profile])")
}

func TestParseInvalid(t *testing.T) {
	tests := []struct {
		name string
		body string
		err  string
	}{
		{"no contexts", "contexts: {}\n", "at least one context"},
		{"missing version", "contexts:\n  a:\n    flags: [alpha]\n", "version must be specified"},
		{"negative size", "contexts:\n  a:\n    version: \"3.3\"\n    width: -1\n", "nonnegative"},
		{"empty bind", "contexts:\n  a:\n    version: \"3.3\"\napi:\n  bind: \"\"\n", "api.bind"},
		{"unknown flag", "contexts:\n  a:\n    version: \"3.3\"\n    flags: [sparkles]\n", "sparkles"},
		{"bad version", "contexts:\n  a:\n    version: \"three\"\n", "three"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Parse(writeConfig(t, tt.body))
			assert.ErrorContains(t, err, tt.err)
		})
	}
}

func TestParseMissingFile(t *testing.T) {
	_, err := Parse(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.ErrorContains(t, err, "could not open")
}
