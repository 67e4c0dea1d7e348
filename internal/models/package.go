package models

// PackageMetadata represents all annotations found in a package
type PackageMetadata struct {
	PackageName string               // name of the Go package
	PackagePath string               // file system path to the package
	ImportPath  string               // module-relative import path
	Namespace   string               // dotted namespace the components register under
	Components  []ComponentMetadata  // structs and interfaces with component markers
	Stereotypes []StereotypeMetadata // custom markers declared in the package
}

// HasAnnotations reports whether the package declares anything to generate
func (p *PackageMetadata) HasAnnotations() bool {
	return len(p.Components) > 0 || len(p.Stereotypes) > 0
}

// Routes returns every route declared in the package, in declaration order
func (p *PackageMetadata) Routes() []RouteMetadata {
	var routes []RouteMetadata
	for _, c := range p.Components {
		routes = append(routes, c.Routes...)
	}
	return routes
}

// ModuleReference represents a generated package referenced from main
type ModuleReference struct {
	PackageName string // name of the package
	PackagePath string // import path for the package
	Namespace   string // namespace passed to the catalog
}
