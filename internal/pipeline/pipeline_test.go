package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestEmitToNilSinkIsDropped(t *testing.T) {
	assert.NotPanics(t, func() { Emit(nil, Event{Stage: StageParse}) })
}

func TestQueuedAnnouncesEveryFile(t *testing.T) {
	var rec Recorder
	Queued(&rec, []string{"a.cs", "b.cs"})
	events := rec.Events()
	assert.Len(t, events, 2)
	assert.Equal(t, "b.cs", events[1].File)
	assert.Equal(t, StatusQueued, events[1].Status)
}

func TestChannelSink(t *testing.T) {
	ch := make(chan Event, 1)
	ChannelSink{Ch: ch}.OnEvent(Event{File: "x.cs", Stage: StageRender, Status: StatusDone})
	evt := <-ch
	assert.Equal(t, "x.cs", evt.File)
	assert.NotPanics(t, func() { ChannelSink{}.OnEvent(evt) })
}

func TestProgressIsMonotonic(t *testing.T) {
	stages := []Stage{StageParse, StageBuild, StageResolve, StageRender}
	prev := 0.0
	for _, s := range stages {
		p := Progress(s, StatusWorking)
		assert.Greater(t, p, prev, s)
		prev = p
	}
	assert.Equal(t, 1.0, Progress(StageRender, StatusDone))
	assert.Equal(t, 1.0, Progress(StageParse, StatusError))
}
