package prof

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionWritesProfiles(t *testing.T) {
	dir := t.TempDir()
	paths := Paths{
		CPU:   filepath.Join(dir, "cpu.pprof"),
		Mem:   filepath.Join(dir, "mem.pprof"),
		Trace: filepath.Join(dir, "trace.out"),
	}
	s, err := Start(paths)
	require.NoError(t, err)
	require.NoError(t, s.Stop())
	require.NoError(t, s.Stop())

	for _, p := range []string{paths.CPU, paths.Mem, paths.Trace} {
		info, err := os.Stat(p)
		require.NoError(t, err, p)
		assert.Positive(t, info.Size(), p)
	}
}

func TestEmptySessionIsNoop(t *testing.T) {
	s, err := Start(Paths{})
	require.NoError(t, err)
	assert.NoError(t, s.Stop())

	var nilSession *Session
	assert.NoError(t, nilSession.Stop())
}

func TestStartFailsOnBadPath(t *testing.T) {
	_, err := Start(Paths{CPU: filepath.Join(t.TempDir(), "missing", "cpu.pprof")})
	assert.Error(t, err)
}
