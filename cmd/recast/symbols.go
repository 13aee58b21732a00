package main

import (
	"io"
	"os"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/spf13/cobra"

	"recast/internal/driver"
	"recast/internal/symbols"
)

func newSymbolsCmd() *cobra.Command {
	var (
		format string
		out    string
	)
	cmd := &cobra.Command{
		Use:   "symbols [paths...]",
		Short: "Dump the resolved symbol forest",
		RunE: func(cmd *cobra.Command, args []string) error {
			format = strings.ToLower(format)
			switch format {
			case "tree", "json", "msgpack":
			default:
				return errors.Newf("unsupported format %q (must be tree, json or msgpack)", format)
			}
			cfg, err := loadConfig(cmd)
			if err != nil {
				return err
			}
			res, checkErr := driver.Check(cmd.Context(), driver.Request{Paths: args, Config: cfg}, maxDiagnostics(cmd))
			if res == nil || res.Table == nil {
				return checkErr
			}

			w := cmd.OutOrStdout()
			if out != "" {
				f, err := os.Create(out)
				if err != nil {
					return errors.Wrapf(err, "create %s", out)
				}
				defer f.Close()
				w = f
			}
			if err := writeSnapshot(w, res.Table.Snapshot(res.Files), format); err != nil {
				return err
			}
			if checkErr != nil && !isQuiet(cmd) {
				writeLines(cmd.ErrOrStderr(), res.Diagnostics())
			}
			return checkErr
		},
	}
	cmd.Flags().StringVarP(&format, "format", "f", "tree", "output format (tree|json|msgpack)")
	cmd.Flags().StringVarP(&out, "out", "o", "", "write to this file instead of stdout")
	return cmd
}

func writeSnapshot(w io.Writer, snap *symbols.Snapshot, format string) error {
	switch format {
	case "json":
		return snap.WriteJSON(w)
	case "msgpack":
		return snap.WriteMsgpack(w)
	default:
		return snap.WriteTree(w)
	}
}
