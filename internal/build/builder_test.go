package build

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"sketchc/internal/diag"
	"sketchc/internal/javac"
	"sketchc/internal/library"
	"sketchc/internal/preproc"
	"sketchc/internal/source"
)

func newSketch(t *testing.T) *source.Sketch {
	t.Helper()
	return source.NewSketch("Particles", t.TempDir(), []source.Unit{
		source.NewUnit(0, "Particles.pde", source.Translatable, "void setup() {\n}"),
		source.NewUnit(1, "Vec.java", source.PassThrough, "class Vec {}\n"),
		source.NewUnit(2, "Draw.pde", source.Translatable, "void draw() {\n  line(0, 0, 1, 1);\n}"),
	})
}

func okPreprocessor(seen *preproc.Request) preproc.Preprocessor {
	return preproc.Func(func(_ context.Context, req preproc.Request) (preproc.Result, error) {
		if seen != nil {
			*seen = req
		}
		return preproc.Result{
			ClassName:    "Particles",
			Code:         "import processing.core.*;\npublic class Particles extends PApplet {\n}\n",
			HeaderOffset: 3,
			ExtraImports: []string{"processing.sound.*", "java.util.List", "com.unknown.Thing"},
			FoundMain:    true,
		}, nil
	})
}

func compilerReturning(log string, success bool, args *[]string) javac.Compiler {
	return javac.Func(func(_ context.Context, a []string) (javac.Result, error) {
		if args != nil {
			*args = a
		}
		return javac.Result{Success: success, RawLog: log}, nil
	})
}

func newRequest(t *testing.T, sk *source.Sketch, p preproc.Preprocessor, c javac.Compiler, console *bytes.Buffer) *Request {
	t.Helper()
	out := t.TempDir()
	sound := &library.Library{
		Name:     "sound",
		Dir:      "/libs/sound",
		Jars:     []string{"/libs/sound/library/sound.jar"},
		Packages: []string{"processing.sound"},
	}
	return &Request{
		Sketch:       sk,
		SrcDir:       filepath.Join(out, "src"),
		BinDir:       filepath.Join(out, "bin"),
		Preprocessor: p,
		Compiler:     c,
		Libraries:    library.NewIndex(sound),
		CoreLibrary:  &library.Library{Name: "core", Dir: "/core", Jars: []string{"/core/core.jar"}},
		Console:      console,
	}
}

func TestBuildSuccess(t *testing.T) {
	sk := newSketch(t)
	var seen preproc.Request
	var args []string
	var console bytes.Buffer
	req := newRequest(t, sk, okPreprocessor(&seen), compilerReturning("", true, &args), &console)
	req.Package = "sketches"

	res, err := NewBuilder().Build(context.Background(), req)
	require.NoError(t, err)

	assert.Equal(t, "Particles", res.ClassName)
	assert.True(t, res.FoundMain)
	assert.Equal(t, "void setup() {\n}\nvoid draw() {\n  line(0, 0, 1, 1);\n}\n", seen.Source)
	assert.Equal(t, "Particles", seen.Name)

	assert.Equal(t, filepath.Join(req.SrcDir, "sketches", "Particles.java"), res.SourceFile)
	generated, err := os.ReadFile(res.SourceFile)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(generated), "package sketches;import processing.core.*;"))

	copied, err := os.ReadFile(filepath.Join(req.SrcDir, "sketches", "Vec.java"))
	require.NoError(t, err)
	assert.Equal(t, "package sketches;class Vec {}\n", string(copied))

	require.Len(t, res.Libraries, 1)
	assert.Equal(t, "sound", res.Libraries[0].Name)
	sep := string(os.PathListSeparator)
	assert.Equal(t, "/libs/sound/library/sound.jar"+sep+"/core/core.jar", res.ClassPath)
	assert.Equal(t, filepath.Join("/core", "library")+sep+filepath.Join("/libs/sound", "library"), res.NativePath)

	assert.Equal(t, "No library found for com.unknown\n", console.String())

	require.NotEmpty(t, args)
	assert.Equal(t, []string{"-g", "-Xemacs", "-source", "1.8", "-target", "1.8"}, args[:6])
	i := slices.Index(args, "-classpath")
	require.GreaterOrEqual(t, i, 0)
	assert.Equal(t, res.ClassPath, args[i+1])
	assert.Equal(t, []string{
		filepath.Join(req.SrcDir, "sketches", "Particles.java"),
		filepath.Join(req.SrcDir, "sketches", "Vec.java"),
	}, args[len(args)-2:])

	for _, stage := range Stages {
		assert.True(t, res.Timings.Has(stage), "missing timing for %s", stage)
	}
	assert.NotEqual(t, uuid.Nil, res.BuildID)
}

func TestBuildKeepsDeclaredPackage(t *testing.T) {
	sk := source.NewSketch("S", t.TempDir(), []source.Unit{
		source.NewUnit(0, "S.pde", source.Translatable, "int x;"),
		source.NewUnit(1, "Util.java", source.PassThrough, "package com.acme;\nclass Util {}\n"),
	})
	req := newRequest(t, sk, okPreprocessor(nil), compilerReturning("", true, nil), nil)
	req.Package = "sketches"

	_, err := NewBuilder().Build(context.Background(), req)
	require.NoError(t, err)
	_, err = os.Stat(filepath.Join(req.SrcDir, "com", "acme", "Util.java"))
	assert.NoError(t, err)
}

func TestBuildRecognitionError(t *testing.T) {
	sk := newSketch(t)
	p := preproc.Func(func(context.Context, preproc.Request) (preproc.Result, error) {
		return preproc.Result{}, &preproc.RecognitionError{Line: 4, Column: 2, Message: "unexpected token: line"}
	})
	req := newRequest(t, sk, p, compilerReturning("", true, nil), nil)

	res, err := NewBuilder().Build(context.Background(), req)
	require.Error(t, err)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.KindStructural, d.Kind())
	assert.Equal(t, 2, d.Unit)
	assert.False(t, d.StackTraceVisible)
	assert.False(t, res.Timings.Has(StageCompile))
}

func TestBuildTokenStreamError(t *testing.T) {
	sk := newSketch(t)
	p := preproc.Func(func(context.Context, preproc.Request) (preproc.Result, error) {
		return preproc.Result{}, &preproc.TokenStreamError{
			Text:    "line 1:5: unexpected char: 0x201C",
			Message: "unexpected char: 0x201C",
		}
	})
	req := newRequest(t, sk, p, compilerReturning("", true, nil), nil)

	_, err := NewBuilder().Build(context.Background(), req)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.LexCurlyQuote, d.Code)
	assert.Equal(t, 0, d.Unit)
}

func TestBuildPreprocessorFault(t *testing.T) {
	boom := errors.New("exit status 3")
	p := preproc.Func(func(context.Context, preproc.Request) (preproc.Result, error) {
		return preproc.Result{}, boom
	})
	req := newRequest(t, newSketch(t), p, compilerReturning("", true, nil), nil)

	_, err := NewBuilder().Build(context.Background(), req)
	require.ErrorIs(t, err, boom)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.ToolPreprocessor, d.Code)
	assert.Equal(t, diag.KindTool, d.Kind())
	assert.False(t, d.Known())
	require.Len(t, d.Notes, 1)
	assert.Equal(t, "exit status 3", d.Notes[0].Msg)
}

func TestBuildCompileError(t *testing.T) {
	var console bytes.Buffer
	log := "/tmp/src/Particles.java:5: error: Syntax error\n" +
		"  continuation\n" +
		"/tmp/src/Particles.java:9: error: Another\n"
	req := newRequest(t, newSketch(t), okPreprocessor(nil), compilerReturning(log, false, nil), &console)

	_, err := NewBuilder().Build(context.Background(), req)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.CmpError, d.Code)
	assert.Equal(t, "Syntax error", d.Message)
	assert.Equal(t, 0, d.Unit)
	assert.Equal(t, 1, d.Line)
	assert.Contains(t, console.String(), "Another")
}

func TestBuildCompileFailureWithoutActionableRecord(t *testing.T) {
	log := "/tmp/src/Particles.java:5: error: Duplicate field x\n"
	req := newRequest(t, newSketch(t), okPreprocessor(nil), compilerReturning(log, false, nil), nil)

	_, err := NewBuilder().Build(context.Background(), req)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.CmpError, d.Code)
	assert.False(t, d.Known())
}

func TestBuildCompilerFault(t *testing.T) {
	c := javac.Func(func(context.Context, []string) (javac.Result, error) {
		return javac.Result{}, errors.New("javac: not found")
	})
	req := newRequest(t, newSketch(t), okPreprocessor(nil), c, nil)

	_, err := NewBuilder().Build(context.Background(), req)
	require.Error(t, err)
	assert.Equal(t, "TOOL7002: compiler failed: javac: not found", err.Error())
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.ToolCompiler, d.Code)
}

func TestBuildWriteFailure(t *testing.T) {
	req := newRequest(t, newSketch(t), okPreprocessor(nil), compilerReturning("", true, nil), nil)
	blocker := filepath.Join(t.TempDir(), "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o600))
	req.SrcDir = blocker

	_, err := NewBuilder().Build(context.Background(), req)
	d, ok := diag.AsDiagnostic(err)
	require.True(t, ok)
	assert.Equal(t, diag.IOWriteFailed, d.Code)
	assert.True(t, strings.HasPrefix(d.Message, "Could not write "))
	assert.NotNil(t, errors.Unwrap(err))
}

func TestBuildInProgress(t *testing.T) {
	sk := newSketch(t)
	entered := make(chan struct{})
	release := make(chan struct{})
	p := preproc.Func(func(ctx context.Context, req preproc.Request) (preproc.Result, error) {
		close(entered)
		<-release
		return okPreprocessor(nil).Preprocess(ctx, req)
	})
	b := NewBuilder()
	first := newRequest(t, sk, p, compilerReturning("", true, nil), nil)

	done := make(chan error, 1)
	go func() {
		_, err := b.Build(context.Background(), first)
		done <- err
	}()
	<-entered

	_, busy := b.InFlight(GuardKey(sk))
	assert.True(t, busy)

	second := newRequest(t, sk, okPreprocessor(nil), compilerReturning("", true, nil), nil)
	_, err := b.Build(context.Background(), second)
	require.ErrorIs(t, err, ErrBuildInProgress)

	close(release)
	require.NoError(t, <-done)
	_, busy = b.InFlight(GuardKey(sk))
	assert.False(t, busy)
}

func TestBuildMissingRequest(t *testing.T) {
	b := NewBuilder()
	_, err := b.Build(context.Background(), nil)
	require.ErrorIs(t, err, ErrMissingRequest)

	_, err = b.Build(context.Background(), &Request{Sketch: newSketch(t)})
	require.ErrorIs(t, err, ErrMissingRequest)
}

func TestProgressEvents(t *testing.T) {
	ch := make(chan Event, 32)
	req := newRequest(t, newSketch(t), okPreprocessor(nil), compilerReturning("", true, nil), nil)
	req.Progress = ChannelSink{Ch: ch}

	_, err := NewBuilder().Build(context.Background(), req)
	require.NoError(t, err)
	close(ch)

	var done []Stage
	for ev := range ch {
		if ev.Status == StatusDone {
			done = append(done, ev.Stage)
		}
	}
	assert.Equal(t, Stages, done)
}

func TestWithPackage(t *testing.T) {
	code, pkg := withPackage("class A {}", "")
	assert.Equal(t, "class A {}", code)
	assert.Empty(t, pkg)

	code, pkg = withPackage("import x.Y;package a.b;class A {}", "def")
	assert.Equal(t, "import x.Y;package a.b;class A {}", code)
	assert.Equal(t, "a.b", pkg)

	_, ok := declaredPackage("// mypackage x;\nclass A {}")
	assert.False(t, ok)
}

func TestFormatTimings(t *testing.T) {
	var tm Timings
	tm.Set(StageCompile, 1500*time.Millisecond)
	tm.Set(StageAssemble, 2*time.Millisecond)
	assert.Equal(t, []string{"assemble=2ms", "compile=1500ms", "total=1502ms"}, FormatTimings(tm))
}
