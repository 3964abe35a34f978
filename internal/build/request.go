package build

import (
	"io"

	"github.com/google/uuid"

	"sketchc/internal/classify"
	"sketchc/internal/compilelog"
	"sketchc/internal/javac"
	"sketchc/internal/library"
	"sketchc/internal/preproc"
	"sketchc/internal/source"
)

// Request configures one sketch build.
type Request struct {
	Sketch     *source.Sketch
	CodeFolder *library.CodeFolder
	// SrcDir receives the generated and copied .java files; BinDir the classes.
	SrcDir string
	BinDir string
	// Package is the default package, "" for none.
	Package string

	Preprocessor preproc.Preprocessor
	Compiler     javac.Compiler
	Libraries    library.Resolver
	CoreLibrary  *library.Library
	// HostClassPath is appended after every library.
	HostClassPath string
	Source        string
	Target        string

	Classifier *classify.Classifier
	Pattern    *compilelog.Pattern
	Locale     string
	// Console is the raw side channel: unparsed compiler output, hints,
	// notices and unresolved imports are written to it verbatim.
	Console  io.Writer
	OnNotice func(classify.Notice)
	Progress ProgressSink
}

// Result describes a successful build. On failure only Timings and BuildID
// are meaningful.
type Result struct {
	BuildID    uuid.UUID
	ClassName  string
	SourceFile string
	ClassPath  string
	NativePath string
	Libraries  []*library.Library
	FoundMain  bool
	Timings    Timings
}
