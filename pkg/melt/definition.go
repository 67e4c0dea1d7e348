// Package melt provides the runtime of the melt container: a catalog of component
// definitions, a scanner over its namespaces, a bean registry, a setter-based
// injector and an annotation-driven request router.
package melt

import (
	"reflect"
	"unicode"
	"unicode/utf8"
)

// Marker is a component stereotype carried by a definition
type Marker string

const (
	Component      Marker = "Component"
	Service        Marker = "Service"
	Repository     Marker = "Repository"
	Controller     Marker = "Controller"
	RestController Marker = "RestController"
)

// ComponentMarkers are the markers that make a type eligible for instantiation
var ComponentMarkers = []Marker{Component, Service, Repository, Controller, RestController}

// HandlerMarkers are the markers whose beans are inspected for routes
var HandlerMarkers = []Marker{Controller, RestController}

// IsComponentMarker reports whether m is one of the recognized component markers
func IsComponentMarker(m Marker) bool {
	for _, c := range ComponentMarkers {
		if c == m {
			return true
		}
	}
	return false
}

// Kind describes what a catalog entry is
type Kind int

const (
	KindStruct Kind = iota
	KindInterface
	KindAbstract
	KindMarker
)

// String returns the string representation of the kind
func (k Kind) String() string {
	switch k {
	case KindStruct:
		return "struct"
	case KindInterface:
		return "interface"
	case KindAbstract:
		return "abstract"
	case KindMarker:
		return "marker"
	default:
		return "unknown"
	}
}

// Factory builds a fresh instance of a component. It takes no arguments.
type Factory func() (any, error)

// Dependency is an autowired slot on a bean, filled through Set
type Dependency struct {
	// Field is the name of the dependency on the owning type
	Field string

	// Type is the declared type of the dependency
	Type reflect.Type

	// Qualifier selects a bean by name instead of by type when set
	Qualifier string

	// Set assigns the resolved instance to the owning bean
	Set func(bean, dep any)
}

// Definition is one entry of the static registration table
type Definition struct {
	Name         string
	Namespace    string
	Kind         Kind
	Type         reflect.Type
	Markers      []Marker
	Factory      Factory
	Dependencies []Dependency
	Routes       []RouteSpec
}

// QualifiedName returns namespace.Name, or Name when the namespace is empty
func (d Definition) QualifiedName() string {
	if d.Namespace == "" {
		return d.Name
	}
	return d.Namespace + "." + d.Name
}

// TypeOf returns the reflect.Type of T, interfaces included
func TypeOf[T any]() reflect.Type {
	return reflect.TypeFor[T]()
}

// Construct returns a Factory that yields the value built by fn
func Construct[T any](fn func() T) Factory {
	return func() (any, error) {
		return fn(), nil
	}
}

// ConstructE returns a Factory for a constructor that may fail
func ConstructE[T any](fn func() (T, error)) Factory {
	return func() (any, error) {
		v, err := fn()
		if err != nil {
			return nil, err
		}
		return v, nil
	}
}

// Autowire declares a dependency of bean type B on a value of type D
//
// Example:
//
//	melt.Autowire("repo", func(s *UserService, r *UserRepository) { s.repo = r })
func Autowire[B any, D any](field string, set func(B, D)) Dependency {
	return Dependency{
		Field: field,
		Type:  reflect.TypeFor[D](),
		Set: func(bean, dep any) {
			set(bean.(B), dep.(D))
		},
	}
}

// AutowireNamed is Autowire resolved by bean name instead of by type
func AutowireNamed[B any, D any](field, beanName string, set func(B, D)) Dependency {
	d := Autowire(field, set)
	d.Qualifier = beanName
	return d
}

// BeanName derives a bean name by lower-casing the first rune of the simple name
func BeanName(simpleName string) string {
	if simpleName == "" {
		return ""
	}
	r, size := utf8.DecodeRuneInString(simpleName)
	return string(unicode.ToLower(r)) + simpleName[size:]
}

// typeName renders a type the way failures and logs show it
func typeName(t reflect.Type) string {
	if t == nil {
		return "<nil>"
	}
	return t.String()
}

func hasMarker(markers []Marker, m Marker) bool {
	for _, candidate := range markers {
		if candidate == m {
			return true
		}
	}
	return false
}
