package main

import (
	"fmt"
	"io"
	"time"

	"sketchc/internal/build"
)

func printStageTimings(out io.Writer, timings build.Timings) {
	if out == nil {
		return
	}
	for _, stage := range build.Stages {
		if !timings.Has(stage) {
			continue
		}
		fmt.Fprintf(out, "%-10s %8.1f ms\n", stage, toMillis(timings.Duration(stage)))
	}
	fmt.Fprintf(out, "%-10s %8.1f ms\n", "total", toMillis(timings.Sum()))
}

func toMillis(d time.Duration) float64 {
	return float64(d) / float64(time.Millisecond)
}
