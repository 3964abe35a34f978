package translate

// Failure is one of the ways a build attempt can fail: Structural,
// Tokenization, CompileLog or WriteFailure.
type Failure interface {
	isFailure()
}

// Structural is a grammar recognition failure from the preprocessor. Line is
// 1-based in the concatenated text; Column is passed through untouched.
type Structural struct {
	Line    int
	Column  int
	Message string
}

// Tokenization is a tokenizer failure. It carries no structured position;
// Rendering is the failure's full text, e.g.
// "line 3:7: unexpected char: 0x201C".
type Tokenization struct {
	Rendering string
	Message   string
}

// CompileLog is the raw output of a compiler run.
type CompileLog struct {
	Raw     string
	Success bool
}

// WriteFailure reports that an intermediate file could not be written.
type WriteFailure struct {
	Path    string
	Message string
	Copy    bool
	Err     error
}

func (Structural) isFailure()   {}
func (Tokenization) isFailure() {}
func (CompileLog) isFailure()   {}
func (WriteFailure) isFailure() {}
