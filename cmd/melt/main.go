package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/melt-go/melt/internal/cli"
	"github.com/melt-go/melt/internal/utils"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	flags := flag.NewFlagSet("melt", flag.ContinueOnError)
	flags.SetOutput(stderr)

	var (
		moduleFlag    = flags.String("module", "", "Custom module name for imports (defaults to go.mod module)")
		namespaceFlag = flags.String("namespace", "", "Root namespace for registrations (defaults to the last element of the module path)")
		verboseFlag   = flags.Bool("verbose", false, "Enable verbose output and detailed error reporting")
		quietFlag     = flags.Bool("quiet", false, "Only show errors and final results")
		cleanFlag     = flags.Bool("clean", false, "Delete all generated autogen_components.go files from the specified directories")
		helpFlag      = flags.Bool("help", false, "Show help information")
	)

	flags.Usage = func() {
		fmt.Fprintf(stderr, "Usage: melt [options] <directory-paths...>\n\n")
		fmt.Fprintf(stderr, "Melt Code Generator\n")
		fmt.Fprintf(stderr, "Scans directories for Go files with //melt:: annotations and generates component registrations.\n\n")
		fmt.Fprintf(stderr, "Options:\n")
		flags.PrintDefaults()
		fmt.Fprintf(stderr, "\nArguments:\n")
		fmt.Fprintf(stderr, "  directory-paths    One or more directories to scan for annotated Go files\n")
		fmt.Fprintf(stderr, "                     Supports Go-style patterns like './...' for recursive scanning\n")
		fmt.Fprintf(stderr, "\nExamples:\n")
		fmt.Fprintf(stderr, "  melt ./...                                  # Scan everything recursively\n")
		fmt.Fprintf(stderr, "  melt ./internal/web ./internal/service      # Scan specific directories\n")
		fmt.Fprintf(stderr, "  melt -module github.com/myorg/myapp ./...   # Specify custom module name\n")
		fmt.Fprintf(stderr, "  melt -namespace app ./...                   # Register under app.<dir>\n")
		fmt.Fprintf(stderr, "  melt -clean ./...                           # Delete generated files\n")
	}

	if err := flags.Parse(args); err != nil {
		if err == flag.ErrHelp {
			return 0
		}
		return 2
	}

	if *helpFlag {
		flags.Usage()
		return 0
	}

	dirs := flags.Args()
	if len(dirs) == 0 {
		fmt.Fprintf(stderr, "Error: At least one directory path is required\n\n")
		flags.Usage()
		return 1
	}

	var diagnostics *utils.DiagnosticSystem
	switch {
	case *quietFlag:
		diagnostics = utils.NewQuietDiagnostics()
	case *verboseFlag:
		diagnostics = utils.NewVerboseDiagnostics()
	default:
		diagnostics = utils.NewDiagnosticSystem(utils.DiagnosticInfo)
	}
	diagnostics.SetOutput(stdout, stderr)

	diagnostics.MeltHeader("Code Generator")

	if *cleanFlag {
		diagnostics.StartProgress("Cleaning generated files")
		removed, err := cli.NewCleaner().CleanGeneratedFiles(dirs)
		if err != nil {
			diagnostics.EndProgress(false, "")
			diagnostics.Error("Clean operation failed: %v", err)
			return 1
		}
		diagnostics.EndProgress(true, "")
		for _, file := range removed {
			diagnostics.Verbose("Removed %s", file)
		}
		diagnostics.Success("Removed %d generated files", len(removed))
		return 0
	}

	if *verboseFlag {
		diagnostics.Subsection("Configuration")
		diagnostics.List("Target directories: %s", strings.Join(dirs, ", "))
		if *moduleFlag != "" {
			diagnostics.List("Custom module: %s", *moduleFlag)
		}
		if *namespaceFlag != "" {
			diagnostics.List("Namespace: %s", *namespaceFlag)
		}
	}

	generator := cli.NewGenerator(diagnostics)
	err := generator.Run(cli.Config{
		Directories: dirs,
		ModuleName:  *moduleFlag,
		Namespace:   *namespaceFlag,
		Verbose:     *verboseFlag,
	})
	if err != nil {
		diagnostics.Error("Generation failed")
		return 1
	}

	summary := generator.Summary()
	diagnostics.Summary("Generation Complete!", summary.Stats())

	if *verboseFlag && len(summary.GeneratedFiles) > 0 {
		diagnostics.Subsection("Generated Files")
		for _, file := range summary.GeneratedFiles {
			diagnostics.List("%s", file)
		}
	}

	diagnostics.GenerationComplete()
	return 0
}
