// Package preludeembed provides the embedded declaration-only C# sources
// every project is resolved against.
package preludeembed

import (
	"embed"
	"io/fs"
	"path"
	"sort"

	"github.com/cockroachdb/errors"
)

//go:embed prelude/*.cs
var preludeFS embed.FS

// FS exposes the embedded prelude sources.
func FS() fs.FS {
	return preludeFS
}

// File is one prelude source.
type File struct {
	Name    string
	Content []byte
}

// Files returns the prelude sources sorted by name. Names carry a
// "<prelude>/" prefix so they never collide with user paths.
func Files() ([]File, error) {
	entries, err := fs.ReadDir(preludeFS, "prelude")
	if err != nil {
		return nil, errors.Wrap(err, "read embedded prelude")
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if !e.IsDir() {
			names = append(names, e.Name())
		}
	}
	sort.Strings(names)
	out := make([]File, 0, len(names))
	for _, name := range names {
		data, err := fs.ReadFile(preludeFS, path.Join("prelude", name))
		if err != nil {
			return nil, errors.Wrapf(err, "read prelude %s", name)
		}
		out = append(out, File{Name: "<prelude>/" + name, Content: data})
	}
	return out, nil
}
