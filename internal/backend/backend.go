// Package backend selects a conversion map by name.
package backend

import (
	"sort"

	"github.com/cockroachdb/errors"

	"recast/internal/backend/csharp"
	"recast/internal/backend/js"
	"recast/internal/backend/minify"
	"recast/internal/backend/restyle"
	"recast/internal/emit"
)

// ErrUnknown is returned by Lookup for a name no back end answers to.
var ErrUnknown = errors.New("unknown backend")

// Options carries the settings of every back end; each uses its own.
type Options struct {
	Indent       string
	BraceStyle   string
	DropComments bool
	RenameLocals bool
}

type factory func(Options) (emit.ConversionMap, error)

var registry = map[string]factory{
	restyle.Name: func(o Options) (emit.ConversionMap, error) {
		brace, ok := csharp.ParseBraceStyle(o.BraceStyle)
		if !ok {
			return nil, errors.Newf("unknown brace style %q (want allman or kr)", o.BraceStyle)
		}
		return restyle.New(restyle.Options{Indent: o.Indent, Brace: brace, DropComments: o.DropComments}), nil
	},
	minify.Name: func(o Options) (emit.ConversionMap, error) {
		return minify.New(minify.Options{RenameLocals: o.RenameLocals}), nil
	},
	js.Name: func(o Options) (emit.ConversionMap, error) {
		return js.New(js.Options{Indent: o.Indent, DropComments: o.DropComments}), nil
	},
}

// Lookup returns the map registered under name.
func Lookup(name string, opts Options) (emit.ConversionMap, error) {
	f, ok := registry[name]
	if !ok {
		return nil, errors.Wrapf(ErrUnknown, "%q (have %v)", name, Names())
	}
	return f(opts)
}

// Names lists the registered back ends.
func Names() []string {
	out := make([]string, 0, len(registry))
	for name := range registry {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}
