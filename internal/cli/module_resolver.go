package cli

import (
	"fmt"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/melt-go/melt/internal/utils"
)

// ModuleResolver handles resolving Go module information
type ModuleResolver struct {
	workDir string
}

// NewModuleResolver creates a resolver rooted at the working directory
func NewModuleResolver() *ModuleResolver {
	return &ModuleResolver{}
}

// NewModuleResolverAt creates a resolver that looks for go.mod from dir
func NewModuleResolverAt(dir string) *ModuleResolver {
	return &ModuleResolver{workDir: dir}
}

func (r *ModuleResolver) startDir() (string, error) {
	if r.workDir != "" {
		return r.workDir, nil
	}
	return os.Getwd()
}

// ResolveModuleName returns customModule when set, otherwise the module path
// declared in the nearest go.mod
func (r *ModuleResolver) ResolveModuleName(customModule string) (string, error) {
	if customModule != "" {
		return customModule, nil
	}

	goMod, err := r.findGoMod()
	if err != nil {
		return "", fmt.Errorf("failed to determine module name: %w (consider using -module flag)", err)
	}
	return utils.ParseModuleName(goMod)
}

// ModuleRoot returns the directory holding the nearest go.mod, or the start
// directory when there is none
func (r *ModuleResolver) ModuleRoot() (string, error) {
	goMod, err := r.findGoMod()
	if err != nil {
		dir, dirErr := r.startDir()
		if dirErr != nil {
			return "", dirErr
		}
		return filepath.Abs(dir)
	}
	return filepath.Dir(goMod), nil
}

func (r *ModuleResolver) findGoMod() (string, error) {
	dir, err := r.startDir()
	if err != nil {
		return "", fmt.Errorf("failed to get current directory: %w", err)
	}
	return utils.FindGoModFile(dir)
}

// BuildPackagePath builds the full import path for a package directory
func (r *ModuleResolver) BuildPackagePath(moduleName, packageDir string) (string, error) {
	rel, err := r.RelativeDir(packageDir)
	if err != nil {
		return "", err
	}
	if rel == "." {
		return moduleName, nil
	}
	return moduleName + "/" + rel, nil
}

// RelativeDir returns packageDir relative to the module root, slash separated
func (r *ModuleResolver) RelativeDir(packageDir string) (string, error) {
	root, err := r.ModuleRoot()
	if err != nil {
		return "", err
	}
	absPackageDir, err := filepath.Abs(packageDir)
	if err != nil {
		return "", fmt.Errorf("failed to resolve package directory: %w", err)
	}
	rel, err := filepath.Rel(root, absPackageDir)
	if err != nil {
		return "", fmt.Errorf("failed to calculate relative path: %w", err)
	}
	rel = filepath.ToSlash(rel)
	if strings.HasPrefix(rel, "../") || rel == ".." {
		return "", fmt.Errorf("package directory %s is outside the module root %s", packageDir, root)
	}
	return rel, nil
}

// DefaultNamespace returns the root namespace derived from a module path
func DefaultNamespace(moduleName string) string {
	base := path.Base(moduleName)
	if base == "." || base == "/" {
		return ""
	}
	return strings.NewReplacer(".", "_", "-", "_").Replace(base)
}
