package cli

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/melt-go/melt/internal/generator"
	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/internal/parser"
	"github.com/melt-go/melt/internal/utils"
)

// Generator coordinates the CLI generation process
type Generator struct {
	scanner        *DirectoryScanner
	moduleResolver *ModuleResolver
	codeGenerator  generator.CodeGenerator
	diagnostics    *utils.DiagnosticSystem
	summary        GenerationSummary
}

// NewGenerator creates a new CLI generator reporting through diagnostics
func NewGenerator(diagnostics *utils.DiagnosticSystem) *Generator {
	return NewGeneratorWithResolver(diagnostics, NewModuleResolver())
}

// NewGeneratorWithResolver creates a generator with an explicit module resolver
func NewGeneratorWithResolver(diagnostics *utils.DiagnosticSystem, resolver *ModuleResolver) *Generator {
	if diagnostics == nil {
		diagnostics = utils.NewQuietDiagnostics()
	}
	return &Generator{
		scanner:        NewDirectoryScanner(),
		moduleResolver: resolver,
		codeGenerator:  generator.NewGenerator(),
		diagnostics:    diagnostics,
	}
}

// Summary returns the summary of the last run
func (g *Generator) Summary() GenerationSummary {
	return g.summary
}

// Run executes the complete generation process. Package-level failures are
// reported and collected; the remaining packages are still generated.
func (g *Generator) Run(config Config) error {
	startTime := time.Now()
	g.summary = GenerationSummary{}
	d := g.diagnostics

	d.Verbose("Starting code generation at %s", startTime.Format("15:04:05"))
	d.Debug("Scanning directories: %v", config.Directories)

	d.StartProgress("Resolving module name")
	moduleName, err := g.moduleResolver.ResolveModuleName(config.ModuleName)
	if err != nil {
		d.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			Message: "failed to resolve module name",
			Cause:   err,
			Suggestions: []string{
				"Check your go.mod file exists and is valid",
				"Ensure you're running from the correct directory",
				"Try specifying -module explicitly",
			},
		}
	}
	d.EndProgress(true, moduleName)

	root := config.Namespace
	if root == "" {
		root = DefaultNamespace(moduleName)
	}

	d.StartProgress("Scanning directories for Go packages")
	dirs, err := g.scanner.ScanDirectories(config.Directories)
	if err != nil {
		d.EndProgress(false, "")
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			Message: "failed to scan directories",
			Cause:   err,
			Suggestions: []string{
				"Check that the directories exist and are readable",
				"Use ./... to scan recursively",
			},
		}
	}
	d.EndProgress(true, fmt.Sprintf("%d packages", len(dirs)))

	d.PhaseHeader("Parsing")
	var packages []*models.PackageMetadata
	var errs []error
	for _, dir := range dirs {
		metadata, err := g.parsePackage(dir, moduleName, root)
		if err != nil {
			errs = append(errs, err)
			g.reportError(err)
			continue
		}
		g.summary.PackagesProcessed++
		if !metadata.HasAnnotations() {
			d.Debug("No annotations in %s", dir)
			continue
		}
		g.count(metadata)
		d.PhaseItem(fmt.Sprintf("%s (%d components, %d routes)", metadata.Namespace, len(metadata.Components), len(metadata.Routes())))
		packages = append(packages, metadata)
	}

	g.checkRouteConflicts(packages)

	d.PhaseHeader("Generating")
	for _, metadata := range packages {
		file, err := g.codeGenerator.GenerateComponents(metadata)
		if err == nil {
			d.PhaseProgress("Writing " + file.FilePath)
			err = g.codeGenerator.WriteFile(file)
		}
		if err != nil {
			errs = append(errs, err)
			g.reportError(err)
			continue
		}
		g.summary.GeneratedFiles = append(g.summary.GeneratedFiles, file.FilePath)
	}

	g.summary.Duration = time.Since(startTime)
	return errors.Join(errs...)
}

func (g *Generator) parsePackage(dir, moduleName, root string) (*models.PackageMetadata, error) {
	p := parser.NewParser()
	p.SetFileErrorHandler(func(file string, err error) {
		g.summary.SkippedFiles = append(g.summary.SkippedFiles, file)
		g.diagnostics.Warn("Skipping %s: %v", file, err)
	})

	metadata, err := p.ParseDirectory(dir)
	if err != nil {
		return nil, err
	}

	rel, err := g.moduleResolver.RelativeDir(dir)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    dir,
			Message: "cannot place package inside the module",
			Cause:   err,
		}
	}
	importPath, err := g.moduleResolver.BuildPackagePath(moduleName, dir)
	if err != nil {
		return nil, err
	}
	metadata.ImportPath = importPath
	metadata.Namespace = generator.Namespace(root, rel)
	return metadata, nil
}

func (g *Generator) count(metadata *models.PackageMetadata) {
	g.summary.ComponentsFound += len(metadata.Components)
	g.summary.RoutesFound += len(metadata.Routes())
	g.summary.StereotypesFound += len(metadata.Stereotypes)
}

// checkRouteConflicts warns about method and path pairs declared by more than
// one handler. The container keeps only the first, so the others would be
// unreachable at runtime.
func (g *Generator) checkRouteConflicts(packages []*models.PackageMetadata) {
	owners := map[string][]string{}
	var keys []string
	for _, metadata := range packages {
		for _, component := range metadata.Components {
			for _, route := range component.Routes {
				key := route.Key()
				if _, ok := owners[key]; !ok {
					keys = append(keys, key)
				}
				owners[key] = append(owners[key], metadata.Namespace+"."+component.StructName+"."+route.HandlerName)
			}
		}
	}
	sort.Strings(keys)
	for _, key := range keys {
		if handlers := owners[key]; len(handlers) > 1 {
			g.summary.RouteConflicts = append(g.summary.RouteConflicts, key)
			g.diagnostics.Warn("Route %s is declared by %d handlers: %v", key, len(handlers), handlers)
		}
	}
}
