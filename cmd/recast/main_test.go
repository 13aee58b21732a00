package main

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/diagfmt"
	"recast/internal/observ"
	"recast/internal/symbols"
)

func TestReadUIMode(t *testing.T) {
	for in, want := range map[string]uiMode{"": uiModeAuto, "AUTO": uiModeAuto, " on ": uiModeOn, "off": uiModeOff} {
		got, err := readUIMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readUIMode("sometimes")
	assert.ErrorContains(t, err, "sometimes")
	assert.True(t, shouldUseTUI(uiModeOn))
	assert.False(t, shouldUseTUI(uiModeOff))
}

func TestReadColorMode(t *testing.T) {
	for in, want := range map[string]colorMode{"auto": colorAuto, "always": colorOn, "on": colorOn, "never": colorOff, "off": colorOff} {
		got, err := readColorMode(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := readColorMode("purple")
	assert.Error(t, err)
	assert.True(t, colorOn.enabled(os.Stdout))
	assert.False(t, colorOff.enabled(os.Stdout))
}

func TestSplitName(t *testing.T) {
	root := filepath.Join("proj")
	assert.Equal(t, filepath.Join("src", "a.js"), splitName(root, filepath.Join("proj", "src", "a.cs"), "js"))
	assert.Equal(t, filepath.Join("src", "a.cs"), splitName(root, filepath.Join("proj", "src", "a.cs"), "minify"))
	assert.Equal(t, "b.js", splitName(root, filepath.Join("elsewhere", "b.cs"), "js"))
}

func TestPrintTimings(t *testing.T) {
	var buf bytes.Buffer
	printTimings(&buf, observ.Report{
		TotalMS: 3,
		Phases: []observ.PhaseReport{
			{Name: "declare", DurationMS: 1},
			{Name: "bind", DurationMS: 2, Note: "failed"},
		},
	})
	assert.Equal(t, "declare      1.0 ms\nbind         2.0 ms  (failed)\ntotal        3.0 ms\n", buf.String())

	buf.Reset()
	printTimings(&buf, observ.Report{})
	assert.Empty(t, buf.String())
}

// workspace writes a project with a settings file and returns the path
// of that file.
func workspace(t *testing.T, files map[string]string) string {
	t.Helper()
	dir := t.TempDir()
	for name, text := range files {
		path := filepath.Join(dir, filepath.FromSlash(name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
		require.NoError(t, os.WriteFile(path, []byte(text), 0o644))
	}
	cfg := filepath.Join(dir, "recast.toml")
	require.NoError(t, os.WriteFile(cfg, []byte("[project]\nsources = [\"src\"]\n"), 0o644))
	return cfg
}

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	prev := color.NoColor
	t.Cleanup(func() { color.NoColor = prev })
	root, finish := newRootCmd()
	t.Cleanup(func() { _ = finish() })
	var out, errOut bytes.Buffer
	root.SetOut(&out)
	root.SetErr(&errOut)
	root.SetArgs(append([]string{"--color", "off", "--quiet"}, args...))
	err := root.Execute()
	return out.String(), err
}

func TestConvertToJS(t *testing.T) {
	cfg := workspace(t, map[string]string{
		"src/a.cs": "namespace N { class A { } }\n",
		"src/b.cs": "namespace N { class B : A { } }\n",
	})
	split := filepath.Join(filepath.Dir(cfg), "out")
	out, err := execute(t, "--config", cfg, "convert", "--ui", "off", "--no-cache", "--backend", "js", "--split-dir", split)
	require.NoError(t, err)
	assert.Contains(t, out, "N.A = class A {};")
	assert.Contains(t, out, "N.B = class B extends N.A {};")

	data, err := os.ReadFile(filepath.Join(split, "src", "a.js"))
	require.NoError(t, err)
	assert.Contains(t, string(data), "N.A = class A {};")
	_, err = os.Stat(filepath.Join(split, "src", "b.js"))
	assert.NoError(t, err)
}

func TestConvertWritesOutFile(t *testing.T) {
	cfg := workspace(t, map[string]string{"src/a.cs": "class A { }\n"})
	target := filepath.Join(filepath.Dir(cfg), "dist", "all.cs")
	out, err := execute(t, "--config", cfg, "convert", "--ui", "off", "--no-cache", "--out", target)
	require.NoError(t, err)
	assert.Empty(t, out)
	data, err := os.ReadFile(target)
	require.NoError(t, err)
	assert.Contains(t, string(data), "class A")
}

func TestConvertRejectsUnknownBackend(t *testing.T) {
	cfg := workspace(t, map[string]string{"src/a.cs": "class A { }\n"})
	_, err := execute(t, "--config", cfg, "convert", "--ui", "off", "--no-cache", "--backend", "cobol")
	assert.ErrorContains(t, err, "cobol")
}

func TestCheckJSON(t *testing.T) {
	cfg := workspace(t, map[string]string{"src/a.cs": "class A { int x; }\n"})
	out, err := execute(t, "--config", cfg, "check", "--format", "json")
	require.NoError(t, err)
	var payload diagfmt.DiagnosticsOutput
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Zero(t, payload.Count)
}

func TestCheckStrictFailsOnWarnings(t *testing.T) {
	cfg := workspace(t, map[string]string{"src/a.cs": "using Missing.Namespace;\nclass A { }\n"})
	_, err := execute(t, "--config", cfg, "check", "--strict")
	assert.Error(t, err)
}

func TestSymbolsJSON(t *testing.T) {
	cfg := workspace(t, map[string]string{"src/a.cs": "namespace N { class A { void M() { } } }\n"})
	out, err := execute(t, "--config", cfg, "symbols", "--format", "json")
	require.NoError(t, err)
	var snap symbols.Snapshot
	require.NoError(t, json.Unmarshal([]byte(out), &snap))
	names := make(map[string]bool)
	for _, rec := range snap.Symbols {
		names[rec.Name] = true
	}
	assert.True(t, names["N"])
	assert.True(t, names["A"])
	assert.True(t, names["M"])
}

func TestProfilingFlags(t *testing.T) {
	dir := t.TempDir()
	cpu := filepath.Join(dir, "cpu.pprof")
	root, finish := newRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetArgs([]string{"--color", "off", "--cpu-profile", cpu, "version"})
	require.NoError(t, root.Execute())
	require.NoError(t, finish())
	_, err := os.Stat(cpu)
	assert.NoError(t, err)
}

func TestVersionJSON(t *testing.T) {
	out, err := execute(t, "version", "--format", "json")
	require.NoError(t, err)
	var payload versionPayload
	require.NoError(t, json.Unmarshal([]byte(out), &payload))
	assert.Equal(t, "recast", payload.Tool)
	assert.NotEmpty(t, payload.Version)
}
