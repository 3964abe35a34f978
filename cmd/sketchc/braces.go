package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"sketchc/internal/braces"
	"sketchc/internal/diag"
	"sketchc/internal/trace"
)

var bracesCmd = &cobra.Command{
	Use:   "braces [dir]",
	Short: "Check that every tab has balanced braces",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBraces,
}

func runBraces(cmd *cobra.Command, args []string) error {
	proj, err := loadProject(cmd, args)
	if err != nil {
		return reportError(cmd.OutOrStdout(), err, nil)
	}
	units := proj.Sketch.Translatable()
	for _, u := range units {
		trace.Point(cmd.Context(), trace.ScopeUnit, "scan", u.Name)
	}

	m, found := braces.ScanUnits(units)
	if !found {
		if !quiet(cmd) {
			fmt.Fprintf(cmd.OutOrStdout(), "braces balanced in %d tabs\n", len(units))
		}
		return nil
	}
	code := diag.SynExtraOpenBrace
	if m.Kind == braces.ExtraClose {
		code = diag.SynExtraCloseBrace
	}
	bag := diag.NewBag(1)
	bag.Add(diag.New(code, m.Unit, m.Line, m.Column, m.Kind.Message()))
	if err := renderDiagnostics(cmd.OutOrStdout(), bag, proj.Sketch); err != nil {
		return err
	}
	return errReported
}
