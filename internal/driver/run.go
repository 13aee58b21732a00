// Package driver turns paths and settings into a finished conversion: it
// collects the sources, runs the project pipeline and packages the
// outputs for the command line.
package driver

import (
	"context"
	"fmt"
	"time"

	"github.com/cockroachdb/errors"

	"recast/internal/backend"
	"recast/internal/config"
	"recast/internal/logging"
	"recast/internal/observ"
	"recast/internal/pipeline"
	"recast/internal/project"
	"recast/internal/source"
	"recast/internal/symbols"
	"recast/internal/version"
)

// Request describes one run.
type Request struct {
	// Paths are files or directories; empty means the configured sources.
	Paths  []string
	Config config.Config
	Sink   pipeline.ProgressSink
	// Cache, when set, is consulted before and filled after a conversion.
	Cache *Cache
}

// FileOutput is the rendered text of one source.
type FileOutput struct {
	Path string
	Text string
}

// Output is a finished conversion.
type Output struct {
	Backend     string
	Joined      string
	Files       []FileOutput
	Diagnostics []string
	Timings     observ.Report
	// Cached is set when the outputs came from the cache.
	Cached bool
}

// ErrStrict is returned in strict mode when resolution reported diagnostics.
var ErrStrict = errors.New("resolution reported diagnostics")

// ProjectOptions maps settings onto pipeline options.
func ProjectOptions(cfg config.Config, sink pipeline.ProgressSink, maxDiagnostics int) project.Options {
	return project.Options{
		Symbols: symbols.Options{
			RootType:     cfg.Project.RootType,
			MaxAliasHops: cfg.Project.MaxAliasHops,
		},
		Jobs:           cfg.Render.Jobs,
		Prelude:        cfg.Project.Prelude,
		GlobalUsings:   cfg.Project.GlobalUsings,
		DropComments:   cfg.Output.DropComments,
		MaxDiagnostics: maxDiagnostics,
		Sink:           sink,
	}
}

// BackendOptions maps settings onto back end options.
func BackendOptions(cfg config.Config) backend.Options {
	return backend.Options{
		Indent:       cfg.IndentString(),
		BraceStyle:   cfg.Output.BraceStyle,
		DropComments: cfg.Output.DropComments,
		RenameLocals: cfg.Minify.RenameLocals,
	}
}

// Files collects and loads the sources of req.
func (req Request) Files() (*source.FileSet, []string, error) {
	paths := req.Paths
	if len(paths) == 0 {
		paths = req.Config.SourcePaths()
	}
	files, err := Collect(paths)
	if err != nil {
		return nil, nil, err
	}
	if len(files) == 0 {
		return nil, nil, errors.Newf("no %s files under %v", SourceExt, paths)
	}
	fs, err := Load(files)
	if err != nil {
		return nil, nil, err
	}
	return fs, files, nil
}

// Run converts the sources of req with the configured back end.
func Run(ctx context.Context, req Request) (*Output, error) {
	log := logging.ComponentLogger("driver")
	cfg := req.Config
	mapping, err := backend.Lookup(cfg.Output.Backend, BackendOptions(cfg))
	if err != nil {
		return nil, err
	}
	fs, paths, err := req.Files()
	if err != nil {
		return nil, err
	}
	pipeline.Queued(req.Sink, paths)

	key := project.InputsDigest(fs, settingsKey(cfg)...)
	if entry, ok, err := req.Cache.Get(key); err != nil {
		log.Warnw("cache read failed", logging.FieldError, err)
	} else if ok {
		log.Debugw("cache hit", logging.FieldFiles, len(entry.Files))
		for _, p := range paths {
			pipeline.Emit(req.Sink, pipeline.Event{File: p, Stage: pipeline.StageRender, Status: pipeline.StatusDone})
		}
		return &Output{Backend: entry.Backend, Joined: entry.Joined, Files: entry.Files, Diagnostics: entry.Diagnostics, Cached: true}, nil
	}

	start := time.Now()
	res, runErr := project.Process(ctx, fs, mapping, ProjectOptions(cfg, req.Sink, 0))
	if res == nil {
		return nil, runErr
	}
	out := &Output{Backend: mapping.Name(), Diagnostics: res.Diagnostics()}
	for _, id := range res.Order() {
		text, _ := res.Output(id)
		out.Files = append(out.Files, FileOutput{Path: fs.Get(id).Path, Text: text})
	}
	if res.Finalized() {
		pipeline.Emit(req.Sink, pipeline.Event{Stage: pipeline.StageJoin, Status: pipeline.StatusWorking})
		joined, err := res.Join()
		if err != nil {
			return out, errors.CombineErrors(runErr, err)
		}
		out.Joined = joined
		pipeline.Emit(req.Sink, pipeline.Event{Stage: pipeline.StageJoin, Status: pipeline.StatusDone})
	}
	out.Timings = res.Timer.Report()
	log.Infow("converted",
		logging.FieldBackend, out.Backend,
		logging.FieldFiles, len(out.Files),
		logging.FieldCount, len(out.Diagnostics),
		logging.FieldDurationMS, observ.Millis(time.Since(start)))

	if runErr == nil && cfg.Project.Strict && res.Bag.HasWarnings() {
		runErr = errors.Wrapf(ErrStrict, "%d diagnostics", res.Bag.Len())
	}
	if runErr == nil {
		if err := req.Cache.Put(key, &CacheEntry{Backend: out.Backend, Joined: out.Joined, Files: out.Files, Diagnostics: out.Diagnostics}); err != nil {
			log.Warnw("cache write failed", logging.FieldError, err)
		}
	}
	return out, runErr
}

// Check builds and resolves the sources of req without rendering.
func Check(ctx context.Context, req Request, maxDiagnostics int) (*project.Resolution, error) {
	fs, paths, err := req.Files()
	if err != nil {
		return nil, err
	}
	pipeline.Queued(req.Sink, paths)
	res, err := project.Resolve(ctx, fs, ProjectOptions(req.Config, req.Sink, maxDiagnostics))
	if err != nil {
		return res, err
	}
	if err := res.Err(); err != nil {
		return res, err
	}
	if req.Config.Project.Strict && res.Bag.HasWarnings() {
		return res, errors.Wrapf(ErrStrict, "%d diagnostics", res.Bag.Len())
	}
	return res, nil
}

// settingsKey lists every setting that changes the output of a run.
func settingsKey(cfg config.Config) []string {
	return []string{
		"version=" + version.Version,
		"backend=" + cfg.Output.Backend,
		fmt.Sprintf("backend_options=%+v", BackendOptions(cfg)),
		fmt.Sprintf("project=%s|%d|%t|%v", cfg.Project.RootType, cfg.Project.MaxAliasHops, cfg.Project.Prelude, cfg.Project.GlobalUsings),
	}
}
