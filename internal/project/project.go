// Package project runs the whole pipeline over a set of sources: build
// every file, resolve the project, render each file with one conversion
// map and join the outputs.
package project

import (
	"bytes"
	"context"
	"fmt"
	"runtime"
	"sort"
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"recast/internal/builder"
	"recast/internal/diag"
	"recast/internal/logging"
	"recast/internal/model"
	"recast/internal/observ"
	"recast/internal/parse"
	"recast/internal/pipeline"
	"recast/internal/source"
	"recast/internal/symbols"
	preludeembed "recast/runtime"
)

// GlobalUsingsFile names the synthetic file holding configured global usings.
const GlobalUsingsFile = "<global-usings>.cs"

// Options configures a run.
type Options struct {
	// Symbols configures the resolver. Its Reporter is replaced by the
	// run's diagnostic bag.
	Symbols symbols.Options
	// Jobs bounds parallel builds and renders; 0 means one per CPU.
	Jobs int
	// Prelude adds the embedded declarations of the base library.
	Prelude bool
	// GlobalUsings are namespaces imported into every file.
	GlobalUsings []string
	// DropComments skips comment trivia while building.
	DropComments bool
	// MaxDiagnostics caps the diagnostic bag; 0 keeps everything.
	MaxDiagnostics int
	Sink           pipeline.ProgressSink
}

func (o Options) jobs() int {
	if o.Jobs > 0 {
		return o.Jobs
	}
	return runtime.GOMAXPROCS(0)
}

// Resolution is a built and resolved project.
type Resolution struct {
	Files *source.FileSet
	Table *symbols.Table
	// Scripts holds the successfully built scripts in file order.
	Scripts []*model.Script
	Bag     *diag.Bag
	Timer   *observ.Timer

	failed map[source.FileID]error
	log    *zap.SugaredLogger
}

// Failed returns the error that excluded file id, or nil.
func (r *Resolution) Failed(id source.FileID) error { return r.failed[id] }

// Err combines the errors of every excluded file in file order.
func (r *Resolution) Err() error {
	ids := make([]source.FileID, 0, len(r.failed))
	for id := range r.failed {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	var err error
	for _, id := range ids {
		err = errors.CombineErrors(err, r.failed[id])
	}
	return err
}

// Diagnostics returns every diagnostic in its flat single-line form,
// sorted by position.
func (r *Resolution) Diagnostics() []string {
	r.Bag.Sort()
	return r.Bag.Strings(r.Files)
}

// Sources returns the scripts that get rendered.
func (r *Resolution) Sources() []*model.Script {
	var out []*model.Script
	for _, s := range r.Scripts {
		if !s.Library {
			out = append(out, s)
		}
	}
	return out
}

// exclude drops file id from the run and records err as a diagnostic.
func (r *Resolution) exclude(id source.FileID, code diag.Code, err error) {
	r.failed[id] = err
	diag.ReportError(diag.BagReporter{Bag: r.Bag}, code, source.Span{File: id}, err.Error()).Emit()
	r.log.Warnw("file excluded", logging.FieldFile, r.Files.Get(id).Path, logging.FieldError, err)
}

// Resolve builds every file of files and runs Declare, Merge, Link and
// Bind over the survivors. Files that fail to build are excluded and
// recorded; only cancellation makes Resolve return an error.
func Resolve(ctx context.Context, files *source.FileSet, opts Options) (*Resolution, error) {
	if files == nil {
		return nil, errors.New("project: nil file set")
	}
	res := &Resolution{
		Files:  files,
		Bag:    diag.NewBag(opts.MaxDiagnostics),
		Timer:  observ.NewTimer(),
		failed: make(map[source.FileID]error),
		log:    logging.ComponentLogger("project"),
	}
	if opts.Prelude {
		if err := addPrelude(files); err != nil {
			return nil, err
		}
	}
	if err := addGlobalUsings(files, opts.GlobalUsings); err != nil {
		return nil, err
	}
	if err := res.Timer.Time("build", func() error { return res.build(ctx, opts) }); err != nil {
		return res, err
	}

	symOpts := opts.Symbols
	symOpts.Reporter = diag.BagReporter{Bag: res.Bag}
	res.Table = symbols.NewTable(symOpts, nil)
	phases := []struct {
		name string
		run  func()
	}{
		{"declare", func() { res.Table.Declare(res.Scripts) }},
		{"merge", res.Table.Merge},
		{"link", res.Table.Link},
		{"bind", res.Table.Bind},
	}
	pipeline.Emit(opts.Sink, pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusWorking})
	start := time.Now()
	for _, ph := range phases {
		if err := ctx.Err(); err != nil {
			return res, err
		}
		idx := res.Timer.Begin(ph.name)
		ph.run()
		res.Timer.End(idx, "")
		res.log.Debugw("phase done", logging.FieldPhase, ph.name, logging.FieldCount, res.Table.Symbols.Len())
	}
	pipeline.Emit(opts.Sink, pipeline.Event{Stage: pipeline.StageResolve, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return res, nil
}

func (r *Resolution) build(ctx context.Context, opts Options) error {
	all := r.Files.Files()
	scripts := make([]*model.Script, len(all))
	errs := make([]error, len(all))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i := range all {
		file := &all[i]
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			scripts[i], errs[i] = buildFile(gctx, file, opts, r.Bag)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i := range all {
		if errs[i] != nil {
			r.exclude(all[i].ID, diag.BuildUnhandledConstruct, errs[i])
			continue
		}
		r.Scripts = append(r.Scripts, scripts[i])
	}
	r.log.Debugw("built", logging.FieldFiles, len(r.Scripts), logging.FieldCount, len(r.failed))
	return nil
}

func buildFile(ctx context.Context, file *source.File, opts Options, bag *diag.Bag) (*model.Script, error) {
	start := time.Now()
	fail := func(stage pipeline.Stage, err error) (*model.Script, error) {
		pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: stage, Status: pipeline.StatusError, Err: err, Elapsed: time.Since(start)})
		return nil, err
	}
	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageParse, Status: pipeline.StatusWorking})
	tree, err := parse.Parse(ctx, file)
	if err != nil {
		return fail(pipeline.StageParse, err)
	}
	defer tree.Close()
	tree.Report(diag.BagReporter{Bag: bag})

	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageBuild, Status: pipeline.StatusWorking})
	script, err := builder.Build(tree, file, builder.Options{DropComments: opts.DropComments, Library: file.IsLibrary()})
	if err != nil {
		return fail(pipeline.StageBuild, err)
	}
	pipeline.Emit(opts.Sink, pipeline.Event{File: file.Path, Stage: pipeline.StageBuild, Status: pipeline.StatusDone, Elapsed: time.Since(start)})
	return script, nil
}

func addPrelude(files *source.FileSet) error {
	prelude, err := preludeembed.Files()
	if err != nil {
		return err
	}
	for _, f := range prelude {
		if _, ok := files.GetByPath(f.Name); ok {
			continue
		}
		files.AddLibrary(f.Name, f.Content)
	}
	return nil
}

// addGlobalUsings registers the synthetic usings file once per file set.
// Resolving the same set again with different usings is an error since the
// earlier file cannot be withdrawn.
func addGlobalUsings(files *source.FileSet, namespaces []string) error {
	if len(namespaces) == 0 {
		return nil
	}
	content := globalUsings(namespaces)
	if f, ok := files.GetByPath(GlobalUsingsFile); ok {
		if !bytes.Equal(f.Content, content) {
			return errors.Newf("project: global usings changed since %s was added", GlobalUsingsFile)
		}
		return nil
	}
	files.AddLibrary(GlobalUsingsFile, content)
	return nil
}

func globalUsings(namespaces []string) []byte {
	var b strings.Builder
	for _, ns := range namespaces {
		fmt.Fprintf(&b, "global using %s;\n", strings.TrimSpace(ns))
	}
	return []byte(b.String())
}
