// Package preproc talks to the sketch preprocessor, which turns the
// concatenated tab text into one compilable Java class.
package preproc

import (
	"context"
	"fmt"
)

// Request is the input of one preprocessor run.
type Request struct {
	// Name is the sketch name; the generated class is named after it.
	Name string
	// Source is the concatenated text of all translatable units.
	Source string
	// KnownPackages lists packages already provided by the code folder.
	KnownPackages []string
}

// Result describes the generated compilation unit.
type Result struct {
	ClassName      string   `json:"className"`
	Code           string   `json:"code"`
	ExtraImports   []string `json:"extraImports"`
	HeaderOffset   int      `json:"headerOffset"`
	HasSettings    bool     `json:"hasSettings"`
	SizeStatements []string `json:"sizeStatements"`
	FoundMain      bool     `json:"foundMain"`
}

// Preprocessor runs the translation. Syntax failures are reported as
// *RecognitionError or *TokenStreamError; any other error is an internal
// fault of the tool.
type Preprocessor interface {
	Preprocess(ctx context.Context, req Request) (Result, error)
}

// Func adapts a function to the Preprocessor interface.
type Func func(ctx context.Context, req Request) (Result, error)

func (f Func) Preprocess(ctx context.Context, req Request) (Result, error) {
	return f(ctx, req)
}

// RecognitionError is a grammar failure. Line is 1-based in the concatenated text.
type RecognitionError struct {
	Line    int
	Column  int
	Message string
}

func (e *RecognitionError) Error() string {
	return fmt.Sprintf("line %d:%d: %s", e.Line, e.Column, e.Message)
}

// TokenStreamError is a tokenizer failure. Text is the tool's full
// rendering, which is the only place the position appears.
type TokenStreamError struct {
	Text    string
	Message string
}

func (e *TokenStreamError) Error() string { return e.Text }
