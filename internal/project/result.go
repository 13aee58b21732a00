package project

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/cockroachdb/errors"
	"golang.org/x/sync/errgroup"

	"recast/internal/diag"
	"recast/internal/emit"
	"recast/internal/logging"
	"recast/internal/model"
	"recast/internal/pipeline"
	"recast/internal/source"
)

var (
	// ErrNotFinalized is returned by Join before Finalize.
	ErrNotFinalized = errors.New("result is not finalized")
	// ErrOrderMismatch is returned by Join when the ordering keys and the
	// rendered outputs name different files.
	ErrOrderMismatch = errors.New("ordering keys do not match outputs")
	// ErrFinalized is returned when a finalized result is changed.
	ErrFinalized = errors.New("result is finalized")
)

// Result holds the rendered text of every file of a run, the order in
// which Join concatenates them, and the run's diagnostics.
type Result struct {
	*Resolution
	mapping emit.ConversionMap

	mu        sync.Mutex
	outputs   map[source.FileID]string
	order     map[source.FileID]int
	finalized bool
}

// NewResult starts an empty result for res rendered with mapping.
func NewResult(res *Resolution, mapping emit.ConversionMap) *Result {
	return &Result{
		Resolution: res,
		mapping:    mapping,
		outputs:    make(map[source.FileID]string),
		order:      make(map[source.FileID]int),
	}
}

// Process resolves files and renders every non-library file with mapping.
// Files that fail to build or render are excluded; their errors are
// combined into the returned error, which comes with the partial result.
func Process(ctx context.Context, files *source.FileSet, mapping emit.ConversionMap, opts Options) (*Result, error) {
	if mapping == nil {
		return nil, errors.New("project: nil conversion map")
	}
	res, err := Resolve(ctx, files, opts)
	if res == nil {
		return nil, err
	}
	if err != nil {
		return NewResult(res, mapping), err
	}
	r, err := Render(ctx, res, mapping, opts)
	if err != nil {
		return r, err
	}
	r.Finalize()
	return r, r.Err()
}

// Render renders every non-library script of res with mapping into a
// result that is not yet finalized, so ordering keys can still change.
func Render(ctx context.Context, res *Resolution, mapping emit.ConversionMap, opts Options) (*Result, error) {
	r := NewResult(res, mapping)
	if err := r.Timer.Time("render", func() error { return r.render(ctx, opts) }); err != nil {
		return r, err
	}
	return r, nil
}

func (r *Result) render(ctx context.Context, opts Options) error {
	targets := r.Sources()
	for _, s := range targets {
		r.order[s.File] = len(r.order)
	}
	texts := make([]string, len(targets))
	errs := make([]error, len(targets))
	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(opts.jobs())
	for i, s := range targets {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			texts[i], errs[i] = r.renderScript(s, opts.Sink)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return err
	}
	for i, s := range targets {
		if errs[i] != nil {
			delete(r.order, s.File)
			r.exclude(s.File, renderCode(errs[i]), errs[i])
			continue
		}
		r.outputs[s.File] = texts[i]
	}
	r.log.Debugw("rendered", logging.FieldBackend, r.mapping.Name(), logging.FieldFiles, len(r.outputs))
	return nil
}

// renderScript renders one script. A panicking back end fails only that
// file.
func (r *Result) renderScript(s *model.Script, sink pipeline.ProgressSink) (text string, err error) {
	defer func() {
		if p := recover(); p != nil {
			text, err = "", errors.Newf("render %s panicked: %v", s.Path, p)
		}
	}()
	start := time.Now()
	pipeline.Emit(sink, pipeline.Event{File: s.Path, Stage: pipeline.StageRender, Status: pipeline.StatusWorking})
	ctx := emit.NewContext(r.mapping, r.Table, r.Files, s)
	ctx.Reporter = diag.BagReporter{Bag: r.Bag}
	text, err = emit.Render(ctx)
	status := pipeline.StatusDone
	if err != nil {
		status = pipeline.StatusError
	}
	pipeline.Emit(sink, pipeline.Event{File: s.Path, Stage: pipeline.StageRender, Status: status, Err: err, Elapsed: time.Since(start)})
	return text, err
}

func renderCode(err error) diag.Code {
	switch {
	case errors.Is(err, emit.ErrUnsupported):
		return diag.RenderUnsupported
	case errors.Is(err, emit.ErrNotImplemented):
		return diag.RenderNotImplemented
	}
	return diag.RenderFailed
}

// Mapping is the conversion map the result was rendered with.
func (r *Result) Mapping() emit.ConversionMap { return r.mapping }

// Output returns the rendered text of file id.
func (r *Result) Output(id source.FileID) (string, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	text, ok := r.outputs[id]
	return text, ok
}

// Outputs returns a copy of every rendered text keyed by file.
func (r *Result) Outputs() map[source.FileID]string {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[source.FileID]string, len(r.outputs))
	for id, text := range r.outputs {
		out[id] = text
	}
	return out
}

// OrderKey returns the ordering key of file id. Keys default to first-seen
// order.
func (r *Result) OrderKey(id source.FileID) (int, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	key, ok := r.order[id]
	return key, ok
}

// SetOrder changes the ordering key of file id.
func (r *Result) SetOrder(id source.FileID, key int) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.finalized {
		return errors.Wrapf(ErrFinalized, "set order of %s", r.path(id))
	}
	r.order[id] = key
	return nil
}

// Order returns the files with an ordering key, sorted by key. Equal keys
// fall back to file order.
func (r *Result) Order() []source.FileID {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.ordered()
}

func (r *Result) ordered() []source.FileID {
	ids := make([]source.FileID, 0, len(r.order))
	for id := range r.order {
		ids = append(ids, id)
	}
	sort.Slice(ids, func(i, j int) bool {
		ki, kj := r.order[ids[i]], r.order[ids[j]]
		if ki != kj {
			return ki < kj
		}
		return ids[i] < ids[j]
	})
	return ids
}

// Finalize freezes the ordering; Join works only afterwards.
func (r *Result) Finalize() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.finalized = true
}

// Finalized reports whether Finalize ran.
func (r *Result) Finalized() bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.finalized
}

// Join concatenates the outputs in ordering-key order, each preceded by
// the map's separator for its file.
func (r *Result) Join() (string, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if !r.finalized {
		return "", ErrNotFinalized
	}
	for id := range r.order {
		if _, ok := r.outputs[id]; !ok {
			return "", errors.Wrapf(ErrOrderMismatch, "%s has an ordering key but no output", r.path(id))
		}
	}
	for id := range r.outputs {
		if _, ok := r.order[id]; !ok {
			return "", errors.Wrapf(ErrOrderMismatch, "%s has an output but no ordering key", r.path(id))
		}
	}
	var b strings.Builder
	for _, id := range r.ordered() {
		ctx := emit.NewContext(r.mapping, r.Table, r.Files, nil)
		if err := r.mapping.Separator(ctx, r.path(id)); err != nil {
			return "", errors.Wrapf(err, "separator for %s", r.path(id))
		}
		b.WriteString(ctx.Buf.String())
		b.WriteString(r.outputs[id])
	}
	return b.String(), nil
}

func (r *Result) path(id source.FileID) string {
	if f := r.Files.Get(id); f != nil {
		return f.Path
	}
	return "<unknown>"
}
