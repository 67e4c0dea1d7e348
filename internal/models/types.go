package models

// ComponentKind is the declaration shape a discovered component has
type ComponentKind int

const (
	KindStruct ComponentKind = iota
	KindInterface
	KindMarker
)

// String returns the name used for the kind in generated code
func (k ComponentKind) String() string {
	switch k {
	case KindStruct:
		return "KindStruct"
	case KindInterface:
		return "KindInterface"
	case KindMarker:
		return "KindMarker"
	default:
		return "KindUnknown"
	}
}

// ParameterSource represents where a handler parameter comes from
type ParameterSource int

const (
	ParameterSourcePath ParameterSource = iota
	ParameterSourceQuery
	ParameterSourceBody
	ParameterSourceContext
)

// String returns the string representation of the parameter source
func (s ParameterSource) String() string {
	switch s {
	case ParameterSourcePath:
		return "path"
	case ParameterSourceQuery:
		return "query"
	case ParameterSourceBody:
		return "body"
	case ParameterSourceContext:
		return "context"
	default:
		return "unknown"
	}
}

// ReturnType represents the shape of a handler's results
type ReturnType int

const (
	ReturnTypeNone ReturnType = iota
	ReturnTypeValue
	ReturnTypeValueError
	ReturnTypeError
)

// ErrorType represents different types of generator errors
type ErrorType int

const (
	ErrorTypeAnnotationSyntax ErrorType = iota
	ErrorTypeValidation
	ErrorTypeGeneration
	ErrorTypeFileSystem
)

// String returns the string representation of the error type
func (e ErrorType) String() string {
	switch e {
	case ErrorTypeAnnotationSyntax:
		return "annotation syntax"
	case ErrorTypeValidation:
		return "validation"
	case ErrorTypeGeneration:
		return "generation"
	case ErrorTypeFileSystem:
		return "file system"
	default:
		return "unknown"
	}
}

// Import is an import spec of the file a component was declared in
type Import struct {
	Name string // explicit package name, empty when implicit
	Path string // import path
}

// GeneratedFileName is the file the generator writes into each package
const GeneratedFileName = "autogen_components.go"

var scalarNames = map[string]string{
	"string":    "String",
	"int":       "Int",
	"int64":     "Long",
	"bool":      "Bool",
	"uuid.UUID": "UUID",
}

// ScalarName maps a supported handler parameter type to its scalar name.
// The name is both the melt.ScalarType constant and the melt.Args accessor.
func ScalarName(goType string) (string, bool) {
	name, ok := scalarNames[goType]
	return name, ok
}

// SupportedParameterTypes lists the Go types handler parameters may use
func SupportedParameterTypes() []string {
	return []string{"string", "int", "int64", "bool", "uuid.UUID", "context.Context"}
}
