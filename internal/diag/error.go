package diag

import "errors"

// Error carries a Diagnostic through error returns.
type Error struct {
	Diag  Diagnostic
	Cause error
}

// NewErr wraps d, optionally recording the underlying cause.
func NewErr(d Diagnostic, cause error) *Error {
	return &Error{Diag: d, Cause: cause}
}

func (e *Error) Error() string {
	msg := e.Diag.Code.ID() + ": " + e.Diag.Message
	if e.Cause != nil {
		return msg + ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// AsDiagnostic extracts the diagnostic from anywhere in err's chain.
func AsDiagnostic(err error) (Diagnostic, bool) {
	var de *Error
	if errors.As(err, &de) {
		return de.Diag, true
	}
	return Diagnostic{}, false
}
