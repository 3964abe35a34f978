package diag

// Kind groups codes into the failure taxonomy of a build.
type Kind uint8

const (
	KindUnknown Kind = iota
	KindStructural
	KindTokenization
	KindCompile
	KindLogFormat
	KindIO
	KindProject
	KindTool
)

func (k Kind) String() string {
	switch k {
	case KindStructural:
		return "StructuralParseError"
	case KindTokenization:
		return "TokenizationError"
	case KindCompile:
		return "CompileDiagnostic"
	case KindLogFormat:
		return "UnrecoverableLogFormat"
	case KindIO:
		return "IOFailure"
	case KindProject:
		return "ProjectError"
	case KindTool:
		return "ToolFailure"
	}
	return "Unknown"
}
