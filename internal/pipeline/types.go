// Package pipeline carries progress events from a conversion run to
// whoever displays them.
package pipeline

import "time"

// Stage describes a phase of a conversion run.
type Stage string

const (
	// StageParse turns source text into a syntax tree.
	StageParse Stage = "parse"
	// StageBuild lowers the syntax tree into the model.
	StageBuild Stage = "build"
	// StageResolve runs the four resolver phases over the whole project.
	StageResolve Stage = "resolve"
	// StageRender runs the conversion map over one file.
	StageRender Stage = "render"
	// StageJoin concatenates the rendered outputs.
	StageJoin Stage = "join"
)

// Status captures progress state within a stage.
type Status string

const (
	// StatusQueued indicates the file is waiting to start.
	StatusQueued Status = "queued"
	// StatusWorking indicates the stage is running.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress for a file (or for the whole run when File is empty).
type Event struct {
	File    string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// Emit sends evt to sink; a nil sink drops it.
func Emit(sink ProgressSink, evt Event) {
	if sink == nil {
		return
	}
	sink.OnEvent(evt)
}

// Queued announces files before any stage starts.
func Queued(sink ProgressSink, files []string) {
	for _, file := range files {
		Emit(sink, Event{File: file, Stage: StageParse, Status: StatusQueued})
	}
}

// Progress returns the fraction of the run a file at stage has covered.
func Progress(stage Stage, status Status) float64 {
	if (status == StatusDone && stage == StageRender) || status == StatusError {
		return 1
	}
	switch stage {
	case StageParse:
		return 0.1
	case StageBuild:
		return 0.3
	case StageResolve:
		return 0.5
	case StageRender:
		return 0.8
	case StageJoin:
		return 0.95
	}
	return 0
}
