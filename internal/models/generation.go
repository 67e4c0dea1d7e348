package models

// GeneratedFile represents the registration file produced for one package
type GeneratedFile struct {
	PackageName string // name of the package
	FilePath    string // path where the file is written
	Namespace   string // catalog namespace of the package
	Content     string // formatted Go source
	Components  int    // number of registered components
	Routes      int    // number of registered routes
}
