package annotations

import "fmt"

// AnnotationType represents the type of annotation
type AnnotationType int

const (
	ComponentAnnotation AnnotationType = iota
	ServiceAnnotation
	RepositoryAnnotation
	ControllerAnnotation
	RestControllerAnnotation
	StereotypeAnnotation
	MarkedAnnotation
	AutowiredAnnotation
	RouteAnnotation
	GetAnnotation
	PostAnnotation
	PutAnnotation
	DeleteAnnotation
	PatchAnnotation
	PathAnnotation
	QueryAnnotation
	BodyAnnotation
)

var annotationNames = map[AnnotationType]string{
	ComponentAnnotation:      "component",
	ServiceAnnotation:        "service",
	RepositoryAnnotation:     "repository",
	ControllerAnnotation:     "controller",
	RestControllerAnnotation: "rest_controller",
	StereotypeAnnotation:     "stereotype",
	MarkedAnnotation:         "marked",
	AutowiredAnnotation:      "autowired",
	RouteAnnotation:          "route",
	GetAnnotation:            "get",
	PostAnnotation:           "post",
	PutAnnotation:            "put",
	DeleteAnnotation:         "delete",
	PatchAnnotation:          "patch",
	PathAnnotation:           "path",
	QueryAnnotation:          "query",
	BodyAnnotation:           "body",
}

// String returns the string representation of the annotation type
func (a AnnotationType) String() string {
	if name, ok := annotationNames[a]; ok {
		return name
	}
	return "unknown"
}

// ParseAnnotationType converts string to AnnotationType
func ParseAnnotationType(s string) (AnnotationType, error) {
	for t, name := range annotationNames {
		if name == s {
			return t, nil
		}
	}
	return 0, fmt.Errorf("unknown annotation type: %s", s)
}

// Target is the kind of declaration an annotation may be attached to
type Target int

const (
	TypeTarget Target = iota
	FieldTarget
	MethodTarget
)

// String returns the string representation of the target
func (t Target) String() string {
	switch t {
	case TypeTarget:
		return "type"
	case FieldTarget:
		return "field"
	case MethodTarget:
		return "method"
	default:
		return "unknown"
	}
}

// IsComponentMarker reports whether the annotation makes a type a component
func (a AnnotationType) IsComponentMarker() bool {
	switch a {
	case ComponentAnnotation, ServiceAnnotation, RepositoryAnnotation, ControllerAnnotation, RestControllerAnnotation:
		return true
	}
	return false
}

// IsRoute reports whether the annotation declares a handler route
func (a AnnotationType) IsRoute() bool {
	switch a {
	case RouteAnnotation, GetAnnotation, PostAnnotation, PutAnnotation, DeleteAnnotation, PatchAnnotation:
		return true
	}
	return false
}

// IsBinding reports whether the annotation binds a handler parameter
func (a AnnotationType) IsBinding() bool {
	return a == PathAnnotation || a == QueryAnnotation || a == BodyAnnotation
}

// SourceLocation represents the location of an annotation in source code
type SourceLocation struct {
	File   string // File path
	Line   int    // Line number (1-based)
	Column int    // Column number (1-based)
}

// String renders the location as file:line:column
func (l SourceLocation) String() string {
	return fmt.Sprintf("%s:%d:%d", l.File, l.Line, l.Column)
}

// ParsedAnnotation represents a fully parsed annotation with type-safe parameters
type ParsedAnnotation struct {
	Type       AnnotationType // Annotation type enum
	Parameters map[string]any // Named and positional parameters
	Location   SourceLocation // Source location
	Raw        string         // Original annotation text
}

// GetString returns a string parameter value with optional default
func (p *ParsedAnnotation) GetString(paramName string, defaultValue ...string) string {
	if value, exists := p.Parameters[paramName]; exists {
		if strValue, ok := value.(string); ok {
			return strValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return ""
}

// GetBool returns a boolean parameter value with optional default
func (p *ParsedAnnotation) GetBool(paramName string, defaultValue ...bool) bool {
	if value, exists := p.Parameters[paramName]; exists {
		if boolValue, ok := value.(bool); ok {
			return boolValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return false
}

// GetStringSlice returns a string slice parameter value with optional default
func (p *ParsedAnnotation) GetStringSlice(paramName string, defaultValue ...[]string) []string {
	if value, exists := p.Parameters[paramName]; exists {
		if sliceValue, ok := value.([]string); ok {
			return sliceValue
		}
	}
	if len(defaultValue) > 0 {
		return defaultValue[0]
	}
	return nil
}

// HasParameter checks if a parameter exists
func (p *ParsedAnnotation) HasParameter(paramName string) bool {
	_, exists := p.Parameters[paramName]
	return exists
}

// ParameterType represents the type of a parameter
type ParameterType int

const (
	StringType ParameterType = iota
	BoolType
	StringSliceType
)

// String returns the string representation of the parameter type
func (p ParameterType) String() string {
	switch p {
	case StringType:
		return "string"
	case BoolType:
		return "bool"
	case StringSliceType:
		return "[]string"
	default:
		return "unknown"
	}
}

// ParameterSpec defines the specification for an annotation parameter
type ParameterSpec struct {
	Type        ParameterType   // Parameter type
	Required    bool            // Whether parameter is required
	Description string          // Parameter description
	Validator   func(any) error // Custom validator function
}

// AnnotationSchema defines the schema for an annotation type
type AnnotationSchema struct {
	Type        AnnotationType           // Annotation type enum
	Target      Target                   // Declaration the annotation attaches to
	Description string                   // Human-readable description
	Positional  []string                 // Names of positional parameters, in order
	Parameters  map[string]ParameterSpec // Parameter specifications, positional included
	Examples    []string                 // Usage examples
}
