package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"recast/internal/config"
	"recast/internal/logging"
	"recast/internal/prof"
	"recast/internal/version"
)

// exitError carries a process exit code without an extra message.
type exitError struct{ code int }

func (e exitError) Error() string { return fmt.Sprintf("exit status %d", e.code) }

// newRootCmd builds the command tree. finish stops whatever the run
// started and must be called after Execute.
func newRootCmd() (root *cobra.Command, finish func() error) {
	var session *prof.Session
	root = &cobra.Command{
		Use:           "recast",
		Short:         "Source-to-source converter for C# projects",
		Long:          `recast parses C# sources, resolves their symbols across files and renders them through a conversion back end (restyle, minify or js).`,
		Version:       version.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := setupOutput(cmd); err != nil {
				return err
			}
			var err error
			session, err = startProfiling(cmd)
			return err
		},
	}
	finish = func() error {
		err := session.Stop()
		logging.Cleanup()
		return err
	}

	flags := root.PersistentFlags()
	flags.String("color", "auto", "colorize output (auto|on|off)")
	flags.Bool("quiet", false, "suppress non-essential output")
	flags.String("log-level", "warn", "log level (debug|info|warn|error)")
	flags.Bool("log-json", false, "write logs as JSON")
	flags.Int("max-diagnostics", 100, "maximum number of diagnostics to show")
	flags.String("config", "", "path to "+config.FileName+" (default: searched upwards from the working directory)")
	flags.String("cpu-profile", "", "write a CPU profile to this file")
	flags.String("mem-profile", "", "write a heap profile to this file on exit")
	flags.String("runtime-trace", "", "write a runtime trace to this file")

	root.AddCommand(newConvertCmd(), newCheckCmd(), newSymbolsCmd(), newVersionCmd())
	return root, finish
}

// main runs the root command and exits non-zero when it fails.
func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	root, finish := newRootCmd()
	err := root.ExecuteContext(ctx)
	if ferr := finish(); ferr != nil {
		fmt.Fprintf(os.Stderr, "profiling: %v\n", ferr)
	}
	stop()
	if err == nil {
		return
	}
	var exit exitError
	if errors.As(err, &exit) {
		os.Exit(exit.code)
	}
	fmt.Fprintf(os.Stderr, "%s %v\n", color.New(color.FgRed, color.Bold).Sprint("error:"), err)
	os.Exit(1)
}

func setupOutput(cmd *cobra.Command) error {
	flags := cmd.Root().PersistentFlags()
	colorFlag, err := flags.GetString("color")
	if err != nil {
		return err
	}
	mode, err := readColorMode(colorFlag)
	if err != nil {
		return err
	}
	color.NoColor = !mode.enabled(os.Stdout)

	level, err := flags.GetString("log-level")
	if err != nil {
		return err
	}
	quiet, err := flags.GetBool("quiet")
	if err != nil {
		return err
	}
	if quiet {
		level = "error"
	}
	jsonLogs, err := flags.GetBool("log-json")
	if err != nil {
		return err
	}
	return logging.Initialize(level, jsonLogs)
}

type colorMode string

const (
	colorAuto colorMode = "auto"
	colorOn   colorMode = "on"
	colorOff  colorMode = "off"
)

func readColorMode(value string) (colorMode, error) {
	switch strings.TrimSpace(strings.ToLower(value)) {
	case "", "auto":
		return colorAuto, nil
	case "on", "always":
		return colorOn, nil
	case "off", "never":
		return colorOff, nil
	default:
		return "", errors.Newf("invalid --color value %q (expected auto|on|off)", value)
	}
}

func (m colorMode) enabled(f *os.File) bool {
	switch m {
	case colorOn:
		return true
	case colorOff:
		return false
	default:
		return isTerminal(f) && os.Getenv("NO_COLOR") == ""
	}
}

func startProfiling(cmd *cobra.Command) (*prof.Session, error) {
	flags := cmd.Root().PersistentFlags()
	var paths prof.Paths
	var err error
	if paths.CPU, err = flags.GetString("cpu-profile"); err != nil {
		return nil, err
	}
	if paths.Mem, err = flags.GetString("mem-profile"); err != nil {
		return nil, err
	}
	if paths.Trace, err = flags.GetString("runtime-trace"); err != nil {
		return nil, err
	}
	return prof.Start(paths)
}

// loadConfig reads --config, or the nearest recast.toml.
func loadConfig(cmd *cobra.Command) (config.Config, error) {
	path, err := cmd.Root().PersistentFlags().GetString("config")
	if err != nil {
		return config.Config{}, err
	}
	if path != "" {
		return config.Load(path)
	}
	return config.Discover(".")
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")
	return quiet
}

func maxDiagnostics(cmd *cobra.Command) int {
	n, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	return max(n, 0)
}

// isTerminal reports whether f is attached to a terminal.
func isTerminal(f *os.File) bool {
	return term.IsTerminal(int(f.Fd()))
}

func writeLines(w io.Writer, lines []string) {
	for _, line := range lines {
		fmt.Fprintln(w, line)
	}
}
