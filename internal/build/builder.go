// Package build runs one sketch build: assemble, preprocess, write, resolve
// imports, copy, compile and translate the first failure into a Diagnostic.
package build

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strconv"
	"sync"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	"github.com/google/uuid"

	"sketchc/internal/diag"
	"sketchc/internal/javac"
	"sketchc/internal/posmap"
	"sketchc/internal/preproc"
	"sketchc/internal/source"
	"sketchc/internal/trace"
	"sketchc/internal/translate"
)

var (
	// ErrBuildInProgress is returned when the same sketch is already building.
	ErrBuildInProgress = errors.New("build already in progress")
	// ErrMissingRequest is returned for a nil or incomplete request.
	ErrMissingRequest = errors.New("missing build request")
)

// Builder serializes builds per sketch folder. The zero value is ready to use.
type Builder struct {
	mu       sync.Mutex
	inflight map[string]uuid.UUID
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{}
}

// InFlight returns the id of the running build for the sketch at key.
func (b *Builder) InFlight(key string) (uuid.UUID, bool) {
	b.mu.Lock()
	defer b.mu.Unlock()
	id, ok := b.inflight[key]
	return id, ok
}

func (b *Builder) acquire(key string, id uuid.UUID) bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	if _, busy := b.inflight[key]; busy {
		return false
	}
	if b.inflight == nil {
		b.inflight = make(map[string]uuid.UUID)
	}
	b.inflight[key] = id
	return true
}

func (b *Builder) release(key string) {
	b.mu.Lock()
	defer b.mu.Unlock()
	delete(b.inflight, key)
}

// GuardKey identifies a sketch for the in-progress guard.
func GuardKey(s *source.Sketch) string {
	if s.Dir != "" {
		return filepath.Clean(s.Dir)
	}
	return s.Name
}

// Build runs req to completion. User-facing failures are returned as
// *diag.Error; faults of the external tools are plain wrapped errors.
func (b *Builder) Build(ctx context.Context, req *Request) (Result, error) {
	var result Result
	if req == nil || req.Sketch == nil {
		return result, ErrMissingRequest
	}
	if req.Preprocessor == nil || req.Compiler == nil {
		return result, fmt.Errorf("%w: preprocessor and compiler are required", ErrMissingRequest)
	}
	if req.SrcDir == "" || req.BinDir == "" {
		return result, fmt.Errorf("%w: source and class folders are required", ErrMissingRequest)
	}

	result.BuildID = uuid.New()
	key := GuardKey(req.Sketch)
	if !b.acquire(key, result.BuildID) {
		return result, fmt.Errorf("%w: %s", ErrBuildInProgress, key)
	}
	defer b.release(key)

	ctx, span := trace.Start(ctx, trace.ScopeDriver, "build")
	span.WithExtra("sketch", req.Sketch.Name).WithExtra("build_id", result.BuildID.String())

	r := &run{req: req, result: &result}
	err := r.execute(ctx)

	detail := "ok"
	if err != nil {
		detail = err.Error()
	}
	span.End(detail)
	return result, err
}

type run struct {
	req    *Request
	result *Result
	tr     *translate.Translator
}

func (r *run) console() io.Writer {
	if r.req.Console == nil {
		return io.Discard
	}
	return r.req.Console
}

func (r *run) execute(ctx context.Context) error {
	req := r.req
	sk := req.Sketch
	r.tr = &translate.Translator{
		Sketch:     sk,
		Classifier: req.Classifier,
		Pattern:    req.Pattern,
		Console:    r.console(),
		Printer:    translate.NewPrinter(req.Locale),
		OnNotice:   req.OnNotice,
	}

	var asm source.Assembly
	_ = r.stage(ctx, StageAssemble, func(ctx context.Context) error {
		asm = source.AssembleSketch(sk)
		for _, u := range sk.Translatable() {
			trace.Point(ctx, trace.ScopeUnit, "tab", u.Name)
		}
		return nil
	})
	r.tr.Mapper = posmap.New(asm.Offsets, 0)

	var pre preproc.Result
	err := r.stage(ctx, StagePreprocess, func(ctx context.Context) error {
		var known []string
		if req.CodeFolder != nil {
			known = req.CodeFolder.Packages
		}
		var err error
		pre, err = req.Preprocessor.Preprocess(ctx, preproc.Request{
			Name:          sk.Name,
			Source:        asm.Text,
			KnownPackages: known,
		})
		if err != nil {
			return r.preprocessFailure(err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	className := pre.ClassName
	if className == "" {
		className = sk.Name
	}
	r.tr.Mapper = posmap.New(asm.Offsets, pre.HeaderOffset)
	r.tr.GeneratedFile = className + ".java"
	r.result.ClassName = className
	r.result.FoundMain = pre.FoundMain

	err = r.stage(ctx, StageWrite, func(context.Context) error {
		code, pkg := withPackage(pre.Code, req.Package)
		path, err := writeSource(req.SrcDir, pkg, r.tr.GeneratedFile, code)
		r.result.SourceFile = path
		if err != nil {
			return r.fail(translate.WriteFailure{Path: path, Err: err}, err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	_ = r.stage(ctx, StageImports, func(ctx context.Context) error {
		libs := resolveImports(pre.ExtraImports, req.Libraries, req.CodeFolder, r.console())
		for _, lib := range libs {
			trace.Point(ctx, trace.ScopeUnit, "library", lib.Name)
		}
		r.result.Libraries = libs
		r.result.ClassPath = classPath(req.CodeFolder, libs, req.CoreLibrary, req.HostClassPath)
		r.result.NativePath = nativePath(libs, req.CoreLibrary)
		return nil
	})

	err = r.stage(ctx, StageCopy, func(ctx context.Context) error {
		for _, u := range sk.PassThrough() {
			trace.Point(ctx, trace.ScopeUnit, "copy", u.Name)
			if _, err := copyUnit(req.SrcDir, req.Package, u); err != nil {
				return r.fail(translate.WriteFailure{
					Path:    u.Name,
					Message: fmt.Sprintf("Problem moving %s to the build folder", u.Name),
					Copy:    true,
					Err:     err,
				}, err)
			}
		}
		return nil
	})
	if err != nil {
		return err
	}

	var out javac.Result
	err = r.stage(ctx, StageCompile, func(ctx context.Context) error {
		sources, err := listSources(req.SrcDir)
		if err != nil {
			return fmt.Errorf("failed to list sources: %w", err)
		}
		if err := os.MkdirAll(req.BinDir, 0o750); err != nil {
			return r.fail(translate.WriteFailure{Path: req.BinDir, Err: err}, err)
		}
		args := javac.Args(javac.Options{
			Source:    req.Source,
			Target:    req.Target,
			ClassPath: r.result.ClassPath,
			OutDir:    req.BinDir,
		}, sources)
		out, err = req.Compiler.Compile(ctx, args)
		if err != nil {
			return toolFailure(diag.ToolCompiler, "compiler failed", err)
		}
		return nil
	})
	if err != nil {
		return err
	}

	return r.stage(ctx, StageTranslate, func(context.Context) error {
		if out.Success {
			_, _ = io.WriteString(r.console(), out.RawLog)
			return nil
		}
		d, ok := r.tr.Translate(translate.CompileLog{Raw: out.RawLog, Success: out.Success})
		if !ok {
			d = diag.Unresolved(diag.CmpError, "Error while compiling the sketch. See the compiler output for details.")
		}
		return diag.NewErr(d, nil)
	})
}

// stage runs fn inside a pass span, records its duration and reports
// progress.
func (r *run) stage(ctx context.Context, stage Stage, fn func(context.Context) error) error {
	ctx, span := trace.Start(ctx, trace.ScopePass, string(stage))
	emitStage(r.req.Progress, r.req.Sketch.Name, stage, StatusWorking, nil, 0)

	err := fn(ctx)

	detail := ""
	if err != nil {
		detail = err.Error()
	}
	elapsed := span.End(detail)
	r.result.Timings.Set(stage, elapsed)
	if err != nil {
		emitStage(r.req.Progress, r.req.Sketch.Name, stage, StatusError, err, elapsed)
		return err
	}
	emitStage(r.req.Progress, r.req.Sketch.Name, stage, StatusDone, nil, elapsed)
	return nil
}

func (r *run) preprocessFailure(err error) error {
	var rec *preproc.RecognitionError
	if errors.As(err, &rec) {
		return r.fail(translate.Structural{Line: rec.Line, Column: rec.Column, Message: rec.Message}, nil)
	}
	var tok *preproc.TokenStreamError
	if errors.As(err, &tok) {
		return r.fail(translate.Tokenization{Rendering: tok.Text, Message: tok.Message}, nil)
	}
	return toolFailure(diag.ToolPreprocessor, "preprocessor failed", err)
}

// toolFailure reports a collaborator that could not run at all. The fault
// is kept as the cause and shown as a note.
func toolFailure(code diag.Code, msg string, err error) error {
	return diag.NewErr(diag.Unresolved(code, msg).WithNote(err.Error()), err)
}

// fail translates f into a *diag.Error. cause is kept for unwrapping.
func (r *run) fail(f translate.Failure, cause error) error {
	d, ok := r.tr.Translate(f)
	if !ok {
		if cause == nil {
			cause = errors.New("untranslatable build failure")
		}
		return cause
	}
	return diag.NewErr(d, cause)
}

// listSources returns every .java file below dir, sorted.
func listSources(dir string) ([]string, error) {
	matches, err := doublestar.Glob(os.DirFS(dir), "**/*.java")
	if err != nil {
		return nil, err
	}
	sources := make([]string, 0, len(matches))
	for _, m := range matches {
		sources = append(sources, filepath.Join(dir, filepath.FromSlash(m)))
	}
	slices.Sort(sources)
	return sources, nil
}

func emitStage(sink ProgressSink, sketch string, stage Stage, status Status, err error, elapsed time.Duration) {
	if sink == nil {
		return
	}
	sink.OnEvent(Event{Sketch: sketch, Stage: stage, Status: status, Err: err, Elapsed: elapsed})
}

// FormatTimings renders "stage=12ms" pairs in execution order.
func FormatTimings(t Timings) []string {
	out := make([]string, 0, len(Stages)+1)
	for _, stage := range Stages {
		if !t.Has(stage) {
			continue
		}
		out = append(out, string(stage)+"="+strconv.FormatInt(t.Duration(stage).Milliseconds(), 10)+"ms")
	}
	return append(out, "total="+strconv.FormatInt(t.Sum().Milliseconds(), 10)+"ms")
}
