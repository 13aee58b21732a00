package main

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"recast/internal/diagfmt"
	"recast/internal/driver"
)

func newCheckCmd() *cobra.Command {
	var (
		format    string
		withNotes bool
		strict    bool
	)
	cmd := &cobra.Command{
		Use:   "check [paths...]",
		Short: "Parse and resolve sources and report diagnostics",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "pretty", "json":
			default:
				return errors.Newf("unsupported format %q (must be pretty or json)", format)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("strict") {
				cfg.Project.Strict = strict
			}

			limit := maxDiagnostics(cmd)
			res, checkErr := driver.Check(cmd.Context(), driver.Request{Paths: args, Config: cfg}, limit)
			if res == nil {
				return checkErr
			}
			res.Bag.Sort()

			out := cmd.OutOrStdout()
			switch format {
			case "json":
				if err := diagfmt.JSON(out, res.Bag, res.Files, diagfmt.JSONOpts{IncludePositions: true, IncludeNotes: withNotes}); err != nil {
					return err
				}
			default:
				opts := diagfmt.PrettyOpts{Color: !color.NoColor, Context: 1, ShowNotes: withNotes}
				if err := diagfmt.Pretty(out, res.Bag, res.Files, opts); err != nil {
					return err
				}
				if !isQuiet(cmd) && res.Bag.Len() == 0 && checkErr == nil {
					fmt.Fprintln(cmd.ErrOrStderr(), "no diagnostics")
				}
			}
			if checkErr != nil {
				if format == "json" {
					return exitError{code: 1}
				}
				return checkErr
			}
			if res.Bag.HasErrors() {
				return exitError{code: 1}
			}
			return nil
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "pretty", "output format (pretty|json)")
	cmd.Flags().BoolVar(&withNotes, "notes", true, "include diagnostic notes")
	cmd.Flags().BoolVar(&strict, "strict", false, "fail on warnings too")
	return cmd
}
