package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"sketchc/internal/build"
	"sketchc/internal/compilelog"
	"sketchc/internal/javac"
	"sketchc/internal/library"
	"sketchc/internal/preproc"
	"sketchc/internal/project"
	"sketchc/internal/trace"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [dir]",
	Short: "Build a sketch",
	Long:  "Preprocess and compile a sketch folder, reporting the first problem found.",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runBuild,
}

var builder = build.NewBuilder()

func init() {
	bindBuildFlags(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	proj, err := loadProject(cmd, args)
	if err != nil {
		return reportError(cmd.OutOrStdout(), err, nil)
	}
	classifier, err := cfg.classifier()
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	libs, err := library.LoadDir(cfg.Libraries)
	if err != nil {
		return fmt.Errorf("failed to index libraries: %w", err)
	}

	source, target := cfg.Source, cfg.Target
	if m := proj.Manifest; m != nil {
		if m.Config.Build.Source != "" && !cmd.Flags().Changed("source") {
			source = m.Config.Build.Source
		}
		if m.Config.Build.Target != "" && !cmd.Flags().Changed("target") {
			target = m.Config.Build.Target
		}
	}

	buildDir := cfg.buildDir(proj.Sketch.Name)
	srcDir := filepath.Join(buildDir, "src")
	// stale sources from an earlier build would be compiled too
	if err := os.RemoveAll(srcDir); err != nil {
		return fmt.Errorf("failed to clean build folder: %w", err)
	}

	console := cmd.ErrOrStderr()
	res, err := builder.Build(cmd.Context(), &build.Request{
		Sketch:     proj.Sketch,
		CodeFolder: proj.CodeFolder,
		SrcDir:     srcDir,
		BinDir:     filepath.Join(buildDir, "bin"),
		Package:    proj.Package(),
		Preprocessor: preproc.Exec{
			Command:       cfg.Preprocessor,
			PrintCommands: cfg.PrintCommands,
			Stdout:        console,
		},
		Compiler: javac.Exec{
			Command:       cfg.Compiler,
			PrintCommands: cfg.PrintCommands,
			Stdout:        console,
		},
		Libraries:     libs,
		CoreLibrary:   cfg.coreLibrary(),
		HostClassPath: cfg.HostClassPath,
		Source:        source,
		Target:        target,
		Classifier:    classifier,
		Pattern:       compilelog.DefaultPattern,
		Locale:        cfg.Locale,
		Console:       console,
		OnNotice:      noticeHook(console),
	})
	if showTimings(cmd) {
		printStageTimings(console, res.Timings)
	}
	if err != nil {
		return reportError(cmd.OutOrStdout(), err, proj.Sketch)
	}

	if !quiet(cmd) {
		fmt.Fprintf(cmd.OutOrStdout(), "built %s\n", res.ClassName)
	}
	return nil
}

// loadProject finds and loads the sketch named by args, or the current
// folder.
func loadProject(cmd *cobra.Command, args []string) (*project.Project, error) {
	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	root, _, err := project.FindSketchRoot(dir)
	if err != nil {
		return nil, err
	}
	ctx, span := trace.Start(cmd.Context(), trace.ScopePass, "load")
	proj, err := project.LoadSketch(ctx, root)
	span.WithExtra("dir", root).End("")
	return proj, err
}

func showTimings(cmd *cobra.Command) bool {
	t, err := cmd.Root().PersistentFlags().GetBool("timings")
	return err == nil && t
}
