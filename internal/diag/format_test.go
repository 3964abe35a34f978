package diag

import (
	"testing"
)

type names []string

func (n names) UnitName(i int) string {
	if i < 0 || i >= len(n) {
		return ""
	}
	return n[i]
}

func TestFormatShort(t *testing.T) {
	diags := []Diagnostic{
		New(CmpUnknownSymbol, 1, 11, 4, "Cannot find anything named \"foo\"\nsecond"),
		Unresolved(LogUnrecoverable, "Cannot parse error text: garbage").WithNote("see console"),
		New(IOWriteFailed, 7, 0, -1, "Could not write x"),
	}

	expected := "error CMP3003 Draw.pde:12:5 Cannot find anything named \"foo\" second\n" +
		"error LOG4001 Sketch.pde:0:0 Cannot parse error text: garbage\n" +
		"note LOG4001 Sketch.pde see console\n" +
		"error IO5001 unit7:1:0 Could not write x"

	got := FormatShort(diags, names{"Sketch.pde", "Draw.pde"}, true)
	if got != expected {
		t.Fatalf("unexpected output:\nwant:\n%s\n\ngot:\n%s", expected, got)
	}
}

func TestCodeIDs(t *testing.T) {
	cases := map[Code]string{
		SynExtraOpenBrace: "SYN1002",
		LexCurlyQuote:     "LEX2002",
		CmpMissingPackage: "CMP3001",
		LogUnrecoverable:  "LOG4001",
		IOWriteFailed:     "IO5001",
		ToolCompiler:      "TOOL7002",
		Code(9999):        "E0000",
	}
	for code, want := range cases {
		if got := code.ID(); got != want {
			t.Errorf("Code(%d).ID() = %q, want %q", code, got, want)
		}
	}
	if Code(4242).Title() != "Unknown error" {
		t.Errorf("unexpected title for unknown code")
	}
}

func TestCodeKind(t *testing.T) {
	if CmpDuplicate.Kind() != KindCompile || KindCompile.String() != "CompileDiagnostic" {
		t.Fatalf("compile codes must map to CompileDiagnostic")
	}
	if LogUnrecoverable.Kind().String() != "UnrecoverableLogFormat" {
		t.Fatalf("log codes must map to UnrecoverableLogFormat")
	}
	if IOCopyFailed.Kind() != KindIO {
		t.Fatalf("io codes must map to IOFailure")
	}
	if ProjMissingMain.Kind() != KindProject || ToolPreprocessor.Kind() != KindTool {
		t.Fatalf("project and tool codes map to their own kinds")
	}
	if ToolPreprocessor.ID() != "TOOL7001" || ToolPreprocessor.Title() != "Preprocessor failed" {
		t.Errorf("unexpected tool code rendering: %s", ToolPreprocessor)
	}
}
