package diag

import (
	"fmt"
)

type Code uint16

const (
	UnknownCode Code = 0

	// Структурные ошибки препроцессора
	SynRecognition      Code = 1001
	SynExtraOpenBrace   Code = 1002
	SynExtraCloseBrace  Code = 1003
	SynMissingBracket   Code = 1004
	SynMissingSemicolon Code = 1005
	SynMissingParen     Code = 1006
	SynBadWebColor      Code = 1007

	// Ошибки токенизатора
	LexUnexpectedChar Code = 2001
	LexCurlyQuote     Code = 2002
	LexUnlocated      Code = 2003

	// Диагностики компилятора
	CmpError           Code = 3000
	CmpMissingPackage  Code = 3001
	CmpUnknownType     Code = 3002
	CmpUnknownSymbol   Code = 3003
	CmpDuplicate       Code = 3004
	CmpLiteralRange    Code = 3005
	CmpUndefinedMethod Code = 3006
	CmpLegacyAPI       Code = 3008

	// Лог компилятора
	LogUnrecoverable Code = 4001

	IOWriteFailed Code = 5001
	IOCopyFailed  Code = 5002
	IOReadFailed  Code = 5003

	ProjManifest    Code = 6001
	ProjMissingMain Code = 6002

	ToolPreprocessor Code = 7001
	ToolCompiler     Code = 7002
)

var (
	codeDescription = map[Code]string{
		UnknownCode:         "Unknown error",
		SynRecognition:      "Syntax error",
		SynExtraOpenBrace:   "Unmatched opening brace",
		SynExtraCloseBrace:  "Unmatched closing brace",
		SynMissingBracket:   "Missing closing bracket",
		SynMissingSemicolon: "Missing semicolon",
		SynMissingParen:     "Missing right parenthesis",
		SynBadWebColor:      "Malformed web color",
		LexUnexpectedChar:   "Unexpected character",
		LexCurlyQuote:       "Curly quote",
		LexUnlocated:        "Tokenizer error without location",
		CmpError:            "Compiler error",
		CmpMissingPackage:   "Import cannot be resolved",
		CmpUnknownType:      "Unknown type",
		CmpUnknownSymbol:    "Unknown identifier",
		CmpDuplicate:        "Duplicate declaration",
		CmpLiteralRange:     "Literal out of range",
		CmpUndefinedMethod:  "Undefined function",
		CmpLegacyAPI:        "Legacy API",
		LogUnrecoverable:    "Cannot parse compiler output",
		IOWriteFailed:       "Could not write file",
		IOCopyFailed:        "Could not copy file",
		IOReadFailed:        "Could not read file",
		ProjManifest:        "Invalid sketch manifest",
		ProjMissingMain:     "Missing main tab",
		ToolPreprocessor:    "Preprocessor failed",
		ToolCompiler:        "Compiler failed",
	}
)

func (c Code) ID() string {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return fmt.Sprintf("SYN%04d", ic)
	case ic >= 2000 && ic < 3000:
		return fmt.Sprintf("LEX%04d", ic)
	case ic >= 3000 && ic < 4000:
		return fmt.Sprintf("CMP%04d", ic)
	case ic >= 4000 && ic < 5000:
		return fmt.Sprintf("LOG%04d", ic)
	case ic >= 5000 && ic < 6000:
		return fmt.Sprintf("IO%04d", ic)
	case ic >= 6000 && ic < 7000:
		return fmt.Sprintf("PRJ%04d", ic)
	case ic >= 7000 && ic < 8000:
		return fmt.Sprintf("TOOL%04d", ic)
	}
	return "E0000"
}

func (c Code) Title() string {
	desc, ok := codeDescription[c]
	if !ok {
		return codeDescription[Code(0)]
	}
	return desc
}

func (c Code) String() string {
	return fmt.Sprintf("[%s]: %s", c.ID(), c.Title())
}

// Kind maps a code range onto the error taxonomy.
func (c Code) Kind() Kind {
	switch ic := int(c); {
	case ic >= 1000 && ic < 2000:
		return KindStructural
	case ic >= 2000 && ic < 3000:
		return KindTokenization
	case ic >= 3000 && ic < 4000:
		return KindCompile
	case ic >= 4000 && ic < 5000:
		return KindLogFormat
	case ic >= 5000 && ic < 6000:
		return KindIO
	case ic >= 6000 && ic < 7000:
		return KindProject
	case ic >= 7000 && ic < 8000:
		return KindTool
	}
	return KindUnknown
}
