package preludeembed

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFilesAreSortedAndPrefixed(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	require.NotEmpty(t, files)
	for i, f := range files {
		assert.True(t, strings.HasPrefix(f.Name, "<prelude>/"), f.Name)
		assert.NotEmpty(t, f.Content)
		if i > 0 {
			assert.Less(t, files[i-1].Name, f.Name)
		}
	}
}

func TestPreludeDeclaresRootType(t *testing.T) {
	files, err := Files()
	require.NoError(t, err)
	var all strings.Builder
	for _, f := range files {
		all.Write(f.Content)
	}
	assert.Contains(t, all.String(), "public class Object")
	assert.Contains(t, all.String(), "namespace System.Collections.Generic")
}
