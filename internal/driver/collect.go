package driver

import (
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"

	"recast/internal/source"
)

// SourceExt is the extension of the files Collect picks up.
const SourceExt = ".cs"

// skipDirs are build output and VCS directories never searched for sources.
var skipDirs = map[string]bool{".git": true, "bin": true, "obj": true, "node_modules": true}

// Collect expands paths into a sorted, duplicate-free list of source files.
// Directories are walked recursively; files are taken as given whatever
// their extension.
func Collect(paths []string) ([]string, error) {
	if len(paths) == 0 {
		return nil, errors.New("no input paths")
	}
	seen := make(map[string]bool)
	var out []string
	add := func(p string) {
		p = filepath.Clean(p)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	for _, root := range paths {
		info, err := os.Stat(root)
		if err != nil {
			return nil, errors.Wrapf(err, "stat %s", root)
		}
		if !info.IsDir() {
			add(root)
			continue
		}
		err = filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if path != root && skipDirs[d.Name()] {
					return filepath.SkipDir
				}
				return nil
			}
			if strings.EqualFold(filepath.Ext(path), SourceExt) {
				add(path)
			}
			return nil
		})
		if err != nil {
			return nil, errors.Wrapf(err, "walk %s", root)
		}
	}
	sort.Strings(out)
	return out, nil
}

// Load reads files into a new FileSet in the given order.
func Load(files []string) (*source.FileSet, error) {
	fs := source.NewFileSet()
	for _, path := range files {
		if _, err := fs.Load(path); err != nil {
			return nil, err
		}
	}
	return fs, nil
}
