package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"sketchc/internal/classify"
	"sketchc/internal/compilelog"
	"sketchc/internal/diag"
	"sketchc/internal/posmap"
	"sketchc/internal/source"
	"sketchc/internal/trace"
	"sketchc/internal/translate"
)

var explainCmd = &cobra.Command{
	Use:   "explain [flags] [dir]",
	Short: "Explain a saved compiler log",
	Long: `Run the compiler-log parser and message classifier over a saved log,
mapping every record back to the sketch tabs. With --first only the
diagnostic a build would report is shown.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runExplain,
}

func init() {
	explainCmd.Flags().String("log", "-", "compiler log file (- for stdin)")
	explainCmd.Flags().Int("header-offset", 0, "lines the preprocessor added before the first tab")
	explainCmd.Flags().String("class", "", "generated class name (default: sketch name)")
	explainCmd.Flags().Bool("first", false, "show only the first actionable diagnostic")
	explainCmd.Flags().Int("max-diagnostics", 100, "maximum number of diagnostics to show")
}

func runExplain(cmd *cobra.Command, args []string) error {
	defer dumpTraceOnPanic()

	logPath, err := cmd.Flags().GetString("log")
	if err != nil {
		return fmt.Errorf("failed to get log flag: %w", err)
	}
	header, err := cmd.Flags().GetInt("header-offset")
	if err != nil {
		return fmt.Errorf("failed to get header-offset flag: %w", err)
	}
	className, err := cmd.Flags().GetString("class")
	if err != nil {
		return fmt.Errorf("failed to get class flag: %w", err)
	}
	firstOnly, err := cmd.Flags().GetBool("first")
	if err != nil {
		return fmt.Errorf("failed to get first flag: %w", err)
	}
	maxDiagnostics, err := cmd.Flags().GetInt("max-diagnostics")
	if err != nil {
		return fmt.Errorf("failed to get max-diagnostics flag: %w", err)
	}

	cfg, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	classifier, err := cfg.classifier()
	if err != nil {
		return fmt.Errorf("failed to load rules: %w", err)
	}
	proj, err := loadProject(cmd, args)
	if err != nil {
		return reportError(cmd.OutOrStdout(), err, nil)
	}
	raw, err := readLog(cmd.InOrStdin(), logPath)
	if err != nil {
		return err
	}

	sk := proj.Sketch
	if className == "" {
		className = sk.Name
	}
	asm := source.AssembleSketch(sk)
	mapper := posmap.New(asm.Offsets, header)
	console := cmd.ErrOrStderr()

	bag := diag.NewBag(maxDiagnostics)
	if firstOnly {
		tr := &translate.Translator{
			Sketch:        sk,
			Mapper:        mapper,
			GeneratedFile: className + ".java",
			Classifier:    classifier,
			Console:       console,
			Printer:       translate.NewPrinter(cfg.Locale),
			OnNotice:      noticeHook(console),
		}
		if d, ok := tr.Translate(translate.CompileLog{Raw: raw}); ok {
			bag.Add(d)
		}
	} else {
		locator := compilelog.Locator{Sketch: sk, GeneratedFile: className + ".java", Mapper: mapper}
		explainAll(cmd.Context(), console, raw, locator, classifier, bag)
	}

	if bag.Len() == 0 {
		if !quiet(cmd) {
			fmt.Fprintln(cmd.OutOrStdout(), "no actionable diagnostics")
		}
		return nil
	}
	bag.Sort()
	return renderDiagnostics(cmd.OutOrStdout(), bag, sk)
}

// explainAll reports every actionable record, dropping exact repeats.
func explainAll(ctx context.Context, console io.Writer, raw string, locator compilelog.Locator, classifier *classify.Classifier, bag *diag.Bag) {
	reporter := diag.NewDedupReporter(diag.BagReporter{Bag: bag})

	records, err := compilelog.Parse(raw, compilelog.DefaultPattern, console)
	for _, rec := range records {
		trace.Point(ctx, trace.ScopeRecord, rec.File, rec.Message)
		cls := classifier.Classify(rec.Message)
		if cls.Suppressed {
			continue
		}
		loc, _ := locator.Locate(rec)
		b := diag.ReportError(reporter, cls.Code, loc.Unit, loc.Line, -1, cls.Message)
		for _, h := range cls.Hints {
			b.WithNote(h)
		}
		if cls.Notice != nil {
			b.WithNote(cls.Notice.Message)
		}
		b.Emit()
	}
	if err != nil {
		reporter.Report(diag.Unresolved(diag.LogUnrecoverable, err.Error()))
	}
}

func readLog(stdin io.Reader, path string) (string, error) {
	var (
		data []byte
		err  error
	)
	if path == "-" {
		data, err = io.ReadAll(stdin)
	} else {
		data, err = os.ReadFile(path)
	}
	if err != nil {
		return "", fmt.Errorf("failed to read compiler log: %w", err)
	}
	normalized, _ := source.Normalize(data)
	return string(normalized), nil
}
