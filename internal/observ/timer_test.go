package observ

import (
	"testing"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fakeClock(step time.Duration) func() time.Time {
	cur := time.Unix(0, 0)
	return func() time.Time {
		cur = cur.Add(step)
		return cur
	}
}

func TestReportSumsPhases(t *testing.T) {
	tm := NewTimer()
	tm.now = fakeClock(2 * time.Millisecond)
	a := tm.Begin("declare")
	tm.End(a, "")
	b := tm.Begin("bind")
	tm.End(b, "3 files")

	r := tm.Report()
	require.Len(t, r.Phases, 2)
	assert.Equal(t, "bind", r.Phases[1].Name)
	assert.Equal(t, "3 files", r.Phases[1].Note)
	assert.InDelta(t, 2.0, r.Phases[0].DurationMS, 1e-9)
	assert.InDelta(t, 4.0, r.TotalMS, 1e-9)
	assert.Contains(t, tm.Summary(), "bind")
}

func TestTimeNotesFailure(t *testing.T) {
	tm := NewTimer()
	err := tm.Time("render", func() error { return errors.New("boom") })
	require.Error(t, err)
	assert.Equal(t, "failed", tm.Phases()[0].Note)
}

func TestNilTimerIsInert(t *testing.T) {
	var tm *Timer
	assert.Equal(t, -1, tm.Begin("x"))
	tm.End(0, "")
	assert.Empty(t, tm.Report().Phases)
}
