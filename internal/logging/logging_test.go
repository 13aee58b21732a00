package logging

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]string{"": "info", "DEBUG": "debug", "warning": "warn", "error": "error"} {
		lvl, err := ParseLevel(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, lvl.String())
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
}

func TestInitializeJSON(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()
	var buf bytes.Buffer
	require.NoError(t, InitializeTo(&buf, "info", true))
	assert.True(t, JSONOutput)

	ComponentLogger("driver").Infow("converted", FieldCount, 3)
	ComponentLogger("driver").Debugw("hidden")
	out := buf.String()
	assert.Contains(t, out, `"logger":"driver"`)
	assert.Contains(t, out, `"count":3`)
	assert.NotContains(t, out, "hidden")
}

func TestInitializeConsole(t *testing.T) {
	defer func() { Logger = zap.NewNop().Sugar() }()
	var buf bytes.Buffer
	require.NoError(t, InitializeTo(&buf, "debug", false))
	Logger.Debugw("phase done", FieldPhase, "bind")
	assert.Contains(t, buf.String(), "phase done")
	assert.Contains(t, buf.String(), "bind")
}

func TestDefaultLoggerDiscards(t *testing.T) {
	assert.NotPanics(t, func() { ComponentLogger("x").Info("nothing") })
}
