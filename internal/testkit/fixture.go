package testkit

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/require"

	"recast/internal/builder"
	"recast/internal/diag"
	"recast/internal/model"
	"recast/internal/parse"
	"recast/internal/source"
	"recast/internal/symbols"
)

// Fixture is a resolved set of in-memory sources.
type Fixture struct {
	Files   *source.FileSet
	Bag     *diag.Bag
	Table   *symbols.Table
	Scripts []*model.Script
}

// Resolve parses, builds and resolves srcs as files f0.cs, f1.cs, ... and
// checks the forest invariants.
func Resolve(t testing.TB, srcs ...string) *Fixture {
	t.Helper()
	return ResolveWith(t, nil, srcs...)
}

// ResolveWith is Resolve with library sources declared ahead of srcs.
func ResolveWith(t testing.TB, libs []string, srcs ...string) *Fixture {
	t.Helper()
	f := &Fixture{Files: source.NewFileSet(), Bag: diag.NewBag(100)}
	f.Table = symbols.NewTable(symbols.Options{Reporter: diag.BagReporter{Bag: f.Bag}}, nil)
	for i, src := range libs {
		id := f.Files.AddLibrary(fmt.Sprintf("lib%d.cs", i), []byte(src))
		f.Scripts = append(f.Scripts, build(t, f.Files.Get(id), true))
	}
	for i, src := range srcs {
		id := f.Files.AddVirtual(fmt.Sprintf("f%d.cs", i), []byte(src))
		f.Scripts = append(f.Scripts, build(t, f.Files.Get(id), false))
	}
	f.Table.Declare(f.Scripts)
	f.Table.Merge()
	f.Table.Link()
	f.Table.Bind()
	require.NoError(t, CheckForest(f.Table))
	for _, s := range f.Scripts {
		require.NoError(t, CheckDecls(f.Table, s))
	}
	return f
}

func build(t testing.TB, file *source.File, library bool) *model.Script {
	t.Helper()
	tree, err := parse.Parse(context.Background(), file)
	require.NoError(t, err)
	t.Cleanup(tree.Close)
	script, err := builder.Build(tree, file, builder.Options{Library: library})
	require.NoError(t, err)
	return script
}

// Sources returns the non-library scripts.
func (f *Fixture) Sources() []*model.Script {
	var out []*model.Script
	for _, s := range f.Scripts {
		if !s.Library {
			out = append(out, s)
		}
	}
	return out
}
