package models

// MetadataBuilder provides a fluent interface for building component metadata
type MetadataBuilder struct {
	component ComponentMetadata
}

// NewMetadataBuilder creates a new metadata builder
func NewMetadataBuilder(name, structName string) *MetadataBuilder {
	return &MetadataBuilder{
		component: ComponentMetadata{
			BaseMetadataTrait: BaseMetadataTrait{
				Name:       name,
				StructName: structName,
			},
		},
	}
}

// WithKind sets the component kind
func (b *MetadataBuilder) WithKind(kind ComponentKind) *MetadataBuilder {
	b.component.Kind = kind
	return b
}

// WithMarkers adds component markers
func (b *MetadataBuilder) WithMarkers(markers ...string) *MetadataBuilder {
	b.component.Markers = append(b.component.Markers, markers...)
	return b
}

// WithDependencies adds dependencies to the metadata
func (b *MetadataBuilder) WithDependencies(deps ...Dependency) *MetadataBuilder {
	b.component.Dependencies = append(b.component.Dependencies, deps...)
	return b
}

// WithConstructor sets the constructor function
func (b *MetadataBuilder) WithConstructor(name string, returnsError bool) *MetadataBuilder {
	b.component.ConstructorTrait = ConstructorTrait{Constructor: name, ConstructorError: returnsError}
	return b
}

// WithRoutes adds handler routes
func (b *MetadataBuilder) WithRoutes(routes ...RouteMetadata) *MetadataBuilder {
	b.component.Routes = append(b.component.Routes, routes...)
	return b
}

// WithImports records the imports of the declaring file
func (b *MetadataBuilder) WithImports(imports ...Import) *MetadataBuilder {
	b.component.Imports = append(b.component.Imports, imports...)
	return b
}

// WithSource records the declaration position
func (b *MetadataBuilder) WithSource(file string, line int) *MetadataBuilder {
	b.component.SourceTrait = SourceTrait{File: file, Line: line}
	return b
}

// Build returns the assembled metadata
func (b *MetadataBuilder) Build() ComponentMetadata {
	return b.component
}
