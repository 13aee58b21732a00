package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, body string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
}

func TestLoadKeepsDefaultsForMissingKeys(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, FileName)
	writeFile(t, path, `
[project]
name = "demo"
sources = ["src"]
global_usings = ["System"]

[output]
backend = "js"
indent = 2

[render]
jobs = 3
`)
	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, "demo", cfg.Project.Name)
	assert.Equal(t, "js", cfg.Output.Backend)
	assert.Equal(t, "  ", cfg.IndentString())
	assert.Equal(t, 3, cfg.Render.Jobs)
	assert.Equal(t, "System.Object", cfg.Project.RootType)
	assert.Equal(t, 2, cfg.Project.MaxAliasHops)
	assert.True(t, cfg.Project.Prelude)
	assert.Equal(t, []string{filepath.Join(dir, "src")}, cfg.SourcePaths())
}

func TestLoadRejectsUnknownKeys(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[output]\nbackend = \"js\"\ncolour = true\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "output.colour")
}

func TestLoadValidates(t *testing.T) {
	path := filepath.Join(t.TempDir(), FileName)
	writeFile(t, path, "[output]\nbrace_style = \"gnu\"\n")
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "brace_style")
}

func TestDiscoverWalksUp(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, FileName), "[minify]\nrename_locals = true\n")
	nested := filepath.Join(root, "a", "b")
	require.NoError(t, os.MkdirAll(nested, 0o755))

	cfg, err := Discover(nested)
	require.NoError(t, err)
	assert.True(t, cfg.Minify.RenameLocals)
	assert.Equal(t, root, cfg.Root())
}

func TestDiscoverWithoutFileUsesDefaults(t *testing.T) {
	path, ok, err := Find(t.TempDir())
	require.NoError(t, err)
	if ok {
		t.Skipf("a %s exists above the temp dir at %s", FileName, path)
	}
	cfg, err := Discover(t.TempDir())
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
	assert.Equal(t, "    ", cfg.IndentString())
}
