package diagfmt

import (
	"io"

	"github.com/vmihailenco/msgpack/v5"

	"sketchc/internal/diag"
	"sketchc/internal/source"
)

// Msgpack writes the same structure as JSON in msgpack encoding, for editor
// hosts that read diagnostics over a pipe.
func Msgpack(w io.Writer, bag *diag.Bag, sk *source.Sketch, opts JSONOpts) error {
	enc := msgpack.NewEncoder(w)
	return enc.Encode(BuildDiagnosticsOutput(bag, sk, opts))
}

// DecodeMsgpack reads one output written by Msgpack.
func DecodeMsgpack(r io.Reader) (DiagnosticsOutput, error) {
	var out DiagnosticsOutput
	err := msgpack.NewDecoder(r).Decode(&out)
	return out, err
}
