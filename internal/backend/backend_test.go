package backend_test

import (
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/backend"
)

func TestNames(t *testing.T) {
	assert.Equal(t, []string{"js", "minify", "restyle"}, backend.Names())
}

func TestLookupEveryBackend(t *testing.T) {
	for _, name := range backend.Names() {
		m, err := backend.Lookup(name, backend.Options{BraceStyle: "allman"})
		require.NoError(t, err, name)
		assert.Equal(t, name, m.Name())
	}
}

func TestLookupUnknown(t *testing.T) {
	_, err := backend.Lookup("cobol", backend.Options{})
	require.Error(t, err)
	assert.True(t, errors.Is(err, backend.ErrUnknown))
	assert.Contains(t, err.Error(), "cobol")
}

func TestRestyleRejectsBadBraceStyle(t *testing.T) {
	_, err := backend.Lookup("restyle", backend.Options{BraceStyle: "gnu"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "gnu")
}
