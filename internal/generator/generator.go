package generator

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/internal/templates"
	"github.com/melt-go/melt/internal/utils"
)

// CodeGenerator produces registration files from package metadata
type CodeGenerator interface {
	GenerateComponents(metadata *models.PackageMetadata) (*models.GeneratedFile, error)
	WriteFile(file *models.GeneratedFile) error
}

// Generator implements the CodeGenerator interface
type Generator struct {
	registry *templates.TemplateRegistry
}

// NewGenerator creates a new code generator instance
func NewGenerator() *Generator {
	return &Generator{registry: templates.NewTemplateRegistry()}
}

// GenerateComponents renders and formats autogen_components.go for a package.
// metadata.Namespace must already be set.
func (g *Generator) GenerateComponents(metadata *models.PackageMetadata) (*models.GeneratedFile, error) {
	if metadata == nil {
		return nil, fmt.Errorf("metadata cannot be nil")
	}
	if metadata.Namespace == "" {
		return nil, &models.GeneratorError{
			Type:        models.ErrorTypeGeneration,
			File:        metadata.PackagePath,
			Message:     "package has no namespace",
			Suggestions: []string{"Derive one with generator.Namespace(root, relativeDir)"},
		}
	}

	filePath := filepath.Join(metadata.PackagePath, models.GeneratedFileName)
	data := templates.BuildComponentsFileData(metadata, metadata.Namespace)
	source, err := g.registry.Execute("components-file", data)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: "failed to render registration file",
			Cause:   err,
		}
	}

	content, err := utils.FormatGoSource(filePath, source)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeGeneration,
			File:    filePath,
			Message: "generated code does not format",
			Cause:   err,
		}
	}

	return &models.GeneratedFile{
		PackageName: metadata.PackageName,
		FilePath:    filePath,
		Namespace:   metadata.Namespace,
		Content:     content,
		Components:  len(metadata.Components),
		Routes:      len(metadata.Routes()),
	}, nil
}

// WriteFile writes a generated file to disk
func (g *Generator) WriteFile(file *models.GeneratedFile) error {
	if err := os.WriteFile(file.FilePath, []byte(file.Content), 0o644); err != nil {
		return &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    file.FilePath,
			Message: "failed to write generated file",
			Cause:   err,
		}
	}
	return nil
}

// Namespace derives the catalog namespace of a package directory relative to
// the scan root: root "app" and dir "internal/web" give "app.internal.web".
func Namespace(root, relativeDir string) string {
	relativeDir = filepath.ToSlash(filepath.Clean(relativeDir))
	var parts []string
	if root = strings.Trim(root, "."); root != "" {
		parts = append(parts, root)
	}
	if relativeDir != "." && relativeDir != "" {
		for _, segment := range strings.Split(relativeDir, "/") {
			if segment != "" && segment != "." {
				parts = append(parts, sanitizeSegment(segment))
			}
		}
	}
	return strings.Join(parts, ".")
}

// sanitizeSegment replaces characters that would split a namespace segment
func sanitizeSegment(segment string) string {
	return strings.NewReplacer(".", "_", "-", "_", " ", "_").Replace(segment)
}
