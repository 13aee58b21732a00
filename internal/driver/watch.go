package driver

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/fsnotify/fsnotify"

	"recast/internal/config"
	"recast/internal/logging"
)

// DefaultDebounce is how long Watch waits for changes to settle.
const DefaultDebounce = 200 * time.Millisecond

// Watch calls run once, then again after every settled batch of changes
// to a source file or recast.toml under paths, until ctx ends. Every call
// is a full run. Errors from run are handed to report and do not stop the
// watch.
func Watch(ctx context.Context, paths []string, debounce time.Duration, run func(context.Context) error, report func(error)) error {
	if debounce <= 0 {
		debounce = DefaultDebounce
	}
	log := logging.ComponentLogger("watch")
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return errors.Wrap(err, "create watcher")
	}
	defer w.Close()
	for _, p := range paths {
		if err := addTree(w, p); err != nil {
			return err
		}
	}

	rerun := func() {
		if err := run(ctx); err != nil && report != nil {
			report(err)
		}
	}
	rerun()

	timer := time.NewTimer(debounce)
	timer.Stop()
	defer timer.Stop()
	for {
		select {
		case <-ctx.Done():
			return nil
		case evt, ok := <-w.Events:
			if !ok {
				return nil
			}
			if evt.Has(fsnotify.Create) {
				if info, err := os.Stat(evt.Name); err == nil && info.IsDir() {
					if err := addTree(w, evt.Name); err != nil {
						log.Warnw("watch new directory", logging.FieldPath, evt.Name, logging.FieldError, err)
					}
					continue
				}
			}
			if !relevant(evt) {
				continue
			}
			log.Debugw("change", logging.FieldFile, evt.Name, "op", evt.Op.String())
			timer.Reset(debounce)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			log.Warnw("watcher error", logging.FieldError, err)
		case <-timer.C:
			rerun()
		}
	}
}

func relevant(evt fsnotify.Event) bool {
	if evt.Op == fsnotify.Chmod {
		return false
	}
	base := filepath.Base(evt.Name)
	return strings.EqualFold(filepath.Ext(base), SourceExt) || base == config.FileName
}

// addTree watches root and, when it is a directory, every directory below
// it. A watched file is watched through its directory.
func addTree(w *fsnotify.Watcher, root string) error {
	info, err := os.Stat(root)
	if err != nil {
		return errors.Wrapf(err, "stat %s", root)
	}
	if !info.IsDir() {
		return errors.Wrapf(w.Add(filepath.Dir(root)), "watch %s", root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && skipDirs[d.Name()] {
			return filepath.SkipDir
		}
		return errors.Wrapf(w.Add(path), "watch %s", path)
	})
}
