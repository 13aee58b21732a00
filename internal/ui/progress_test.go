package ui

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"recast/internal/pipeline"
)

func TestApplyEventTracksFiles(t *testing.T) {
	events := make(chan pipeline.Event)
	m := NewProgressModel("converting", []string{"a.cs", "b.cs"}, events).(*progressModel)

	m.applyEvent(pipeline.Event{File: "a.cs", Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	assert.Equal(t, "parsing", m.items[0].status)
	assert.Equal(t, "queued", m.items[1].status)

	m.applyEvent(pipeline.Event{File: "b.cs", Stage: pipeline.StageBuild, Status: pipeline.StatusError})
	assert.Equal(t, "error", m.items[1].status)
	assert.InDelta(t, 1.0, m.items[1].frac, 1e-9)

	m.applyEvent(pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	assert.Equal(t, "resolving", m.stageLabel)
	assert.InDelta(t, pipeline.Progress(pipeline.StageResolve, pipeline.StatusWorking), m.items[0].frac, 1e-9)

	m.applyEvent(pipeline.Event{File: "a.cs", Stage: pipeline.StageRender, Status: pipeline.StatusDone})
	assert.Equal(t, "done", m.items[0].status)
	assert.InDelta(t, 1.0, m.percent(), 1e-9)

	m.applyEvent(pipeline.Event{File: "unknown.cs", Stage: pipeline.StageRender, Status: pipeline.StatusDone})
	assert.Len(t, m.items, 2)
}

func TestViewListsFiles(t *testing.T) {
	m := NewProgressModel("converting", []string{"a.cs"}, nil).(*progressModel)
	m.done = true
	view := m.View()
	assert.Contains(t, view, "done: converting")
	assert.Contains(t, view, "a.cs")
	assert.Contains(t, view, "queued")

	assert.Empty(t, NewProgressModel("x", nil, nil).View())
}

func TestListenForEventEndsOnClose(t *testing.T) {
	events := make(chan pipeline.Event, 1)
	m := NewProgressModel("t", []string{"a.cs"}, events).(*progressModel)
	events <- pipeline.Event{File: "a.cs", Stage: pipeline.StageParse, Status: pipeline.StatusDone}
	close(events)

	msg := m.listenForEvent()()
	ev, ok := msg.(eventMsg)
	require.True(t, ok)
	assert.Equal(t, "a.cs", ev.File)
	_, ok = m.listenForEvent()().(doneMsg)
	assert.True(t, ok)
}

func TestTruncate(t *testing.T) {
	assert.Equal(t, "short", truncate("short", 10))
	assert.Equal(t, "a-very...", truncate("a-very-long-name", 9))
	assert.Equal(t, "ab", truncate("abcdef", 2))
}

func TestStatusLabel(t *testing.T) {
	assert.Equal(t, "building", statusLabel(pipeline.StageBuild, pipeline.StatusDone))
	assert.Equal(t, "done", statusLabel(pipeline.StageJoin, pipeline.StatusDone))
	assert.Equal(t, "queued", statusLabel(pipeline.StageParse, pipeline.StatusQueued))
	assert.Equal(t, "", statusLabel(pipeline.StageParse, pipeline.Status("odd")))
}
