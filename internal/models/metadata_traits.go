package models

import "strconv"

// BaseMetadataTrait provides core metadata functionality
type BaseMetadataTrait struct {
	Name         string       // simple name the component registers under
	StructName   string       // name of the Go type
	Dependencies []Dependency // fields filled by the injector
}

// GetName returns the component name
func (b BaseMetadataTrait) GetName() string {
	return b.Name
}

// GetStructName returns the struct name
func (b BaseMetadataTrait) GetStructName() string {
	return b.StructName
}

// GetDependencies returns the dependencies
func (b BaseMetadataTrait) GetDependencies() []Dependency {
	return b.Dependencies
}

// MarkerTrait holds the component markers found on a type
type MarkerTrait struct {
	Markers []string // built-in marker names or custom stereotype names
}

// GetMarkers returns the markers
func (m MarkerTrait) GetMarkers() []string {
	return m.Markers
}

// HasMarker reports whether marker was declared directly on the type
func (m MarkerTrait) HasMarker(marker string) bool {
	for _, candidate := range m.Markers {
		if candidate == marker {
			return true
		}
	}
	return false
}

// ConstructorTrait provides custom constructor functionality
type ConstructorTrait struct {
	Constructor      string // NewX function name, empty to allocate the zero value
	ConstructorError bool   // whether the constructor also returns an error
}

// GetConstructor returns the constructor name
func (c ConstructorTrait) GetConstructor() string {
	return c.Constructor
}

// HasConstructor reports whether a constructor function was found
func (c ConstructorTrait) HasConstructor() bool {
	return c.Constructor != ""
}

// SourceTrait records where a declaration lives
type SourceTrait struct {
	File string // source file
	Line int    // line of the type declaration
}

// Position returns file:line
func (s SourceTrait) Position() string {
	if s.Line > 0 {
		return s.File + ":" + strconv.Itoa(s.Line)
	}
	return s.File
}
