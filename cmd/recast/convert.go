package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"recast/internal/config"
	"recast/internal/driver"
	"recast/internal/logging"
	"recast/internal/pipeline"
	"recast/internal/ui"
)

type convertOptions struct {
	backend  string
	out      string
	splitDir string
	jobs     int
	strict   bool
	uiMode   string
	watch    bool
	timings  bool
	noCache  bool
}

func newConvertCmd() *cobra.Command {
	var opts convertOptions
	cmd := &cobra.Command{
		Use:   "convert [paths...]",
		Short: "Convert sources with a back end",
		Long:  `Convert the given files and directories (default: [project].sources of recast.toml) and write the joined output.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if opts.watch {
				return watchConvert(cmd, args, opts)
			}
			return runConvert(cmd.Context(), cmd, args, opts)
		},
	}
	flags := cmd.Flags()
	flags.StringVarP(&opts.backend, "backend", "b", "", "conversion back end (js|minify|restyle)")
	flags.StringVarP(&opts.out, "out", "o", "", "write the joined output to this file (default: stdout)")
	flags.StringVar(&opts.splitDir, "split-dir", "", "also write one output per source under this directory")
	flags.IntVarP(&opts.jobs, "jobs", "j", 0, "parallel builds and renders (0: one per CPU)")
	flags.BoolVar(&opts.strict, "strict", false, "fail when resolution reports diagnostics")
	flags.StringVar(&opts.uiMode, "ui", "auto", "progress view (auto|on|off)")
	flags.BoolVarP(&opts.watch, "watch", "w", false, "convert again whenever a source changes")
	flags.BoolVar(&opts.timings, "timings", false, "print phase timings")
	flags.BoolVar(&opts.noCache, "no-cache", false, "skip the conversion cache")
	return cmd
}

// applyOverrides lays the flags the user set over cfg.
func (o convertOptions) applyOverrides(cmd *cobra.Command, cfg config.Config) (config.Config, error) {
	flags := cmd.Flags()
	if flags.Changed("backend") {
		cfg.Output.Backend = o.backend
	}
	if flags.Changed("out") {
		cfg.Output.Path = o.out
	}
	if flags.Changed("split-dir") {
		cfg.Output.SplitDir = o.splitDir
	}
	if flags.Changed("jobs") {
		cfg.Render.Jobs = o.jobs
	}
	if flags.Changed("strict") {
		cfg.Project.Strict = o.strict
	}
	if o.noCache {
		cfg.Output.Cache = false
	}
	return cfg, cfg.Validate()
}

func runConvert(ctx context.Context, cmd *cobra.Command, args []string, opts convertOptions) error {
	mode, err := readUIMode(opts.uiMode)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if cfg, err = opts.applyOverrides(cmd, cfg); err != nil {
		return err
	}

	req := driver.Request{Paths: args, Config: cfg}
	if cfg.Output.Cache {
		cache, err := driver.OpenCache("recast")
		if err != nil {
			logging.Logger.Warnw("cache unavailable", logging.FieldError, err)
		} else {
			req.Cache = cache
		}
	}

	var out *driver.Output
	if shouldUseTUI(mode) && !isQuiet(cmd) {
		_, files, err := req.Files()
		if err != nil {
			return err
		}
		title := fmt.Sprintf("converting %d files with %s", len(files), cfg.Output.Backend)
		err = ui.Run(os.Stderr, title, files, func(sink pipeline.ProgressSink) error {
			r := req
			r.Sink = sink
			var runErr error
			out, runErr = driver.Run(ctx, r)
			return runErr
		})
		if out == nil {
			return err
		}
		return finishConvert(cmd, cfg, out, opts, err)
	}
	out, err = driver.Run(ctx, req)
	if out == nil {
		return err
	}
	return finishConvert(cmd, cfg, out, opts, err)
}

func finishConvert(cmd *cobra.Command, cfg config.Config, out *driver.Output, opts convertOptions, runErr error) error {
	stderr := cmd.ErrOrStderr()
	if len(out.Diagnostics) > 0 {
		limit := maxDiagnostics(cmd)
		diags := out.Diagnostics
		if limit > 0 && len(diags) > limit {
			diags = diags[:limit]
		}
		writeLines(stderr, diags)
		if len(diags) < len(out.Diagnostics) {
			fmt.Fprintf(stderr, "... %d more diagnostics not shown\n", len(out.Diagnostics)-len(diags))
		}
	}
	if cfg.Output.SplitDir != "" {
		if err := writeSplit(cfg.Output.SplitDir, cfg.Root(), out); err != nil {
			return errors.CombineErrors(runErr, err)
		}
	}
	if out.Joined != "" || runErr == nil {
		if err := writeJoined(cmd.OutOrStdout(), cfg.Output.Path, out.Joined); err != nil {
			return errors.CombineErrors(runErr, err)
		}
	}
	if opts.timings && !out.Cached {
		printTimings(stderr, out.Timings)
	}
	if !isQuiet(cmd) {
		suffix := ""
		if out.Cached {
			suffix = " (cached)"
		}
		fmt.Fprintf(stderr, "converted %d files with %s%s\n", len(out.Files), out.Backend, suffix)
	}
	return runErr
}

func writeJoined(stdout io.Writer, path, text string) error {
	if path == "" {
		_, err := io.WriteString(stdout, text)
		return err
	}
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return errors.Wrapf(err, "create %s", dir)
		}
	}
	return errors.Wrapf(os.WriteFile(path, []byte(text), 0o644), "write %s", path)
}

func writeSplit(dir, root string, out *driver.Output) error {
	for _, f := range out.Files {
		target := filepath.Join(dir, splitName(root, f.Path, out.Backend))
		if err := os.MkdirAll(filepath.Dir(target), 0o755); err != nil {
			return errors.Wrapf(err, "create %s", filepath.Dir(target))
		}
		if err := os.WriteFile(target, []byte(f.Text), 0o644); err != nil {
			return errors.Wrapf(err, "write %s", target)
		}
	}
	return nil
}

// splitName keeps the layout of path below root and swaps the extension
// for the back end's.
func splitName(root, path, backend string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) || filepath.IsAbs(rel) {
		rel = filepath.Base(path)
	}
	return strings.TrimSuffix(rel, filepath.Ext(rel)) + outputExt(backend)
}

func outputExt(backend string) string {
	if backend == "js" {
		return ".js"
	}
	return driver.SourceExt
}

func watchConvert(cmd *cobra.Command, args []string, opts convertOptions) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	paths := args
	if len(paths) == 0 {
		paths = cfg.SourcePaths()
	}
	if cfg.Path != "" {
		paths = append(paths, cfg.Path)
	}
	opts.uiMode = string(uiModeOff)
	stderr := cmd.ErrOrStderr()
	return driver.Watch(cmd.Context(), paths, driver.DefaultDebounce,
		func(ctx context.Context) error {
			return runConvert(ctx, cmd, args, opts)
		},
		func(err error) {
			fmt.Fprintf(stderr, "error: %v\n", err)
		})
}
