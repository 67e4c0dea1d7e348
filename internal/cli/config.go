package cli

// Config holds the configuration for the CLI generator
type Config struct {
	// Directories is the list of directories to scan for annotated Go files.
	// A trailing /... scans recursively.
	Directories []string

	// ModuleName overrides the module path read from go.mod
	ModuleName string

	// Namespace is the root namespace of generated registrations. It defaults
	// to the last element of the module path.
	Namespace string

	// Verbose enables detailed logging and error reporting
	Verbose bool
}
