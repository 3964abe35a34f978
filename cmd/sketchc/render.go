package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/viper"

	"sketchc/internal/diag"
	"sketchc/internal/diagfmt"
	"sketchc/internal/source"
	"sketchc/internal/version"
)

// renderDiagnostics writes bag in the configured --format.
func renderDiagnostics(out io.Writer, bag *diag.Bag, sk *source.Sketch) error {
	cwd, err := os.Getwd()
	if err != nil {
		cwd = ""
	}
	format := strings.ToLower(viper.GetString("format"))
	switch format {
	case "", "pretty":
		return diagfmt.Pretty(out, bag, sk, diagfmt.PrettyOpts{
			Color:     colorEnabled(),
			Context:   1,
			PathMode:  diagfmt.PathModeAuto,
			BaseDir:   cwd,
			ShowNotes: true,
		})
	case "short":
		_, err := fmt.Fprintln(out, diag.FormatShort(bag.Items(), sk, true))
		return err
	case "json":
		return diagfmt.JSON(out, bag, sk, diagfmt.JSONOpts{BaseDir: cwd, IncludeNotes: true})
	case "msgpack":
		return diagfmt.Msgpack(out, bag, sk, diagfmt.JSONOpts{BaseDir: cwd, IncludeNotes: true})
	case "sarif":
		return diagfmt.Sarif(out, bag, sk, diagfmt.SarifRunMeta{
			ToolName:       "sketchc",
			ToolVersion:    version.Version,
			InvocationArgs: os.Args,
			BaseDir:        cwd,
		})
	}
	return fmt.Errorf("unknown format %q (expected pretty|short|json|sarif|msgpack)", format)
}

// reportError renders err when it carries a diagnostic and returns
// errReported; other errors are returned unchanged.
func reportError(out io.Writer, err error, sk *source.Sketch) error {
	d, ok := diag.AsDiagnostic(err)
	if !ok {
		return err
	}
	bag := diag.NewBag(1)
	bag.Add(d)
	if rerr := renderDiagnostics(out, bag, sk); rerr != nil {
		return rerr
	}
	return errReported
}
