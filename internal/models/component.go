package models

import "strings"

// Dependency is an autowired field of a component
type Dependency struct {
	Field     string // field name in the struct
	Type      string // Go type expression of the field
	Qualifier string // bean name from -Name, empty to resolve by type
}

// ComponentMetadata is a managed type found in a package
type ComponentMetadata struct {
	BaseMetadataTrait
	MarkerTrait
	ConstructorTrait
	SourceTrait
	Kind    ComponentKind   // struct, interface or custom marker
	Routes  []RouteMetadata // handler methods, controllers only
	Imports []Import        // imports of the declaring file
}

// IsHandler reports whether the component may serve routes. Custom
// markers are resolved at runtime, so any component with routes counts.
func (c ComponentMetadata) IsHandler() bool {
	return c.HasMarker("Controller") || c.HasMarker("RestController") || len(c.Routes) > 0
}

// StereotypeMetadata is a custom marker declared with //melt::stereotype
type StereotypeMetadata struct {
	SourceTrait
	Name string   // name of the marker type
	Of   []string // markers the custom marker stands for
}

// RouteMetadata represents an HTTP route handler
type RouteMetadata struct {
	Method      string         // HTTP method (GET, POST, etc.)
	Path        string         // URL pattern with {variables}
	HandlerName string         // name of the handler method
	Parameters  []Parameter    // handler parameters in signature order
	ReturnType  ReturnTypeInfo // information about return signature
	Line        int            // line of the handler declaration
}

// Key returns the route table key METHOD:path
func (r RouteMetadata) Key() string {
	return strings.ToUpper(r.Method) + ":" + r.Path
}

// Parameter represents a handler parameter
type Parameter struct {
	Name     string          // parameter name in the signature
	Key      string          // request key, defaults to Name
	Type     string          // Go type (int, string, uuid.UUID, ...)
	Source   ParameterSource // where parameter comes from
	Required bool            // whether the parameter must be present
	Default  *string         // raw default for absent query parameters
	Position int             // position in handler signature
}

// LookupKey returns the key used to read the parameter from a request
func (p Parameter) LookupKey() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

// ReturnTypeInfo describes handler return signature
type ReturnTypeInfo struct {
	Type     ReturnType // type of return signature
	DataType string     // type of data returned (if applicable)
}

// HasError reports whether the handler returns an error
func (r ReturnTypeInfo) HasError() bool {
	return r.Type == ReturnTypeValueError || r.Type == ReturnTypeError
}

// HasValue reports whether the handler returns a value
func (r ReturnTypeInfo) HasValue() bool {
	return r.Type == ReturnTypeValue || r.Type == ReturnTypeValueError
}
