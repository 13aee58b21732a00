package main

import (
	"fmt"
	"io"

	"recast/internal/observ"
)

func printTimings(out io.Writer, report observ.Report) {
	if out == nil || len(report.Phases) == 0 {
		return
	}
	width := 0
	for _, phase := range report.Phases {
		width = max(width, len(phase.Name))
	}
	for _, phase := range report.Phases {
		if phase.Note != "" {
			fmt.Fprintf(out, "%-*s %8.1f ms  (%s)\n", width, phase.Name, phase.DurationMS, phase.Note)
			continue
		}
		fmt.Fprintf(out, "%-*s %8.1f ms\n", width, phase.Name, phase.DurationMS)
	}
	fmt.Fprintf(out, "%-*s %8.1f ms\n", width, "total", report.TotalMS)
}
