package version

import (
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
)

func withoutColor(t *testing.T) {
	t.Helper()
	prev := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = prev })
}

func TestColoredKeepsText(t *testing.T) {
	withoutColor(t)
	assert.Equal(t, Version, Colored())
}

func TestColoredUnusualVersion(t *testing.T) {
	withoutColor(t)
	prev := Version
	t.Cleanup(func() { Version = prev })
	Version = "nightly"
	assert.Equal(t, "nightly", Colored())
}

func TestSummaryListsBuildInfo(t *testing.T) {
	withoutColor(t)
	prevCommit, prevDate := GitCommit, BuildDate
	t.Cleanup(func() { GitCommit, BuildDate = prevCommit, prevDate })
	GitCommit = "abc123"
	BuildDate = "2026-01-15T10:30:00Z"

	s := Summary()
	assert.Contains(t, s, "recast "+Version)
	assert.Contains(t, s, "commit: abc123")
	assert.Contains(t, s, "2026-01-15T10:30:00Z")
}
