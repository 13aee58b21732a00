package emit

import (
	"recast/internal/layout"
	"recast/internal/model"
)

// ConversionMap is a complete back end.
type ConversionMap interface {
	Visitor
	// Name identifies the map on the command line and in messages.
	Name() string
	// Layout returns the buffer options renders with this map use.
	Layout() layout.Options
	// Separator writes the text Join places before the output of the
	// source identified by sourceID.
	Separator(ctx *Context, sourceID string) error
	// Hooks returns declaration hooks; the zero value has none.
	Hooks() Hooks
}

// Starter is implemented by maps that set up per-render state before the
// first hook or operation runs.
type Starter interface {
	Start(ctx *Context) error
}

// HookFunc runs for one declaration outside the main render.
type HookFunc func(ctx *Context, n model.Node) error

// Hooks attach to declaration kinds. Pre hooks run over every primary
// declaration of a file, in pre-order, before the main render; post hooks
// run the same way after it. Both write to the same buffer.
type Hooks struct {
	Pre  map[model.Kind]HookFunc
	Post map[model.Kind]HookFunc
}
