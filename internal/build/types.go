package build

import "time"

// Stage describes a build step.
type Stage string

const (
	// StageAssemble concatenates the translatable tabs.
	StageAssemble Stage = "assemble"
	// StagePreprocess runs the sketch preprocessor.
	StagePreprocess Stage = "preprocess"
	// StageWrite writes the generated class.
	StageWrite Stage = "write"
	// StageImports resolves extra imports to libraries.
	StageImports Stage = "imports"
	// StageCopy copies .java tabs into the source folder.
	StageCopy Stage = "copy"
	// StageCompile runs the Java compiler.
	StageCompile Stage = "compile"
	// StageTranslate turns the compiler log into a diagnostic.
	StageTranslate Stage = "translate"
)

// Stages lists every stage in execution order.
var Stages = []Stage{
	StageAssemble,
	StagePreprocess,
	StageWrite,
	StageImports,
	StageCopy,
	StageCompile,
	StageTranslate,
}

// Status captures progress state within a stage.
type Status string

const (
	// StatusWorking indicates the stage started.
	StatusWorking Status = "working"
	// StatusDone indicates the stage finished.
	StatusDone Status = "done"
	// StatusError indicates the stage failed.
	StatusError Status = "error"
)

// Event reports progress of one stage of one sketch build.
type Event struct {
	Sketch  string
	Stage   Stage
	Status  Status
	Err     error
	Elapsed time.Duration
}

// ProgressSink consumes progress events.
type ProgressSink interface {
	OnEvent(Event)
}

// ChannelSink forwards events into a channel.
type ChannelSink struct {
	Ch chan<- Event
}

func (s ChannelSink) OnEvent(evt Event) {
	if s.Ch == nil {
		return
	}
	s.Ch <- evt
}

// Timings holds stage durations.
type Timings struct {
	stages map[Stage]time.Duration
}

// Set stores a duration for the given stage.
func (t *Timings) Set(stage Stage, dur time.Duration) {
	if t == nil {
		return
	}
	if t.stages == nil {
		t.stages = make(map[Stage]time.Duration)
	}
	t.stages[stage] = dur
}

// Has reports whether a duration for stage is recorded.
func (t Timings) Has(stage Stage) bool {
	_, ok := t.stages[stage]
	return ok
}

// Duration returns the recorded duration for stage.
func (t Timings) Duration(stage Stage) time.Duration {
	return t.stages[stage]
}

// Sum returns the sum of durations across the provided stages, or across
// all stages when none are given.
func (t Timings) Sum(stages ...Stage) time.Duration {
	if len(stages) == 0 {
		stages = Stages
	}
	var total time.Duration
	for _, stage := range stages {
		total += t.stages[stage]
	}
	return total
}
