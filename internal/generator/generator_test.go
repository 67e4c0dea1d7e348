package generator

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/internal/parser"
)

const serviceSource = `package service

import "example.com/app/repository"

//melt::service
type UserService struct {
	//melt::autowired
	repo *repository.UserRepository
}
`

func TestNamespace(t *testing.T) {
	tests := []struct {
		root     string
		dir      string
		expected string
	}{
		{root: "app", dir: ".", expected: "app"},
		{root: "app", dir: "internal/web", expected: "app.internal.web"},
		{root: "app", dir: "./internal//web/", expected: "app.internal.web"},
		{root: "", dir: "service", expected: "service"},
		{root: "app", dir: "v1.2/my-pkg", expected: "app.v1_2.my_pkg"},
	}

	for _, tt := range tests {
		t.Run(tt.expected, func(t *testing.T) {
			assert.Equal(t, tt.expected, Namespace(tt.root, tt.dir))
		})
	}
}

func TestGenerator_GenerateComponents(t *testing.T) {
	metadata, err := parser.NewParser().ParseSource("service.go", serviceSource)
	require.NoError(t, err)
	metadata.PackagePath = t.TempDir()
	metadata.Namespace = "app.service"

	g := NewGenerator()
	file, err := g.GenerateComponents(metadata)
	require.NoError(t, err)

	assert.Equal(t, filepath.Join(metadata.PackagePath, models.GeneratedFileName), file.FilePath)
	assert.Equal(t, "app.service", file.Namespace)
	assert.Equal(t, 1, file.Components)
	assert.Zero(t, file.Routes)
	assert.Contains(t, file.Content, `"example.com/app/repository"`)
	assert.Contains(t, file.Content, `c.Register("app.service", func() (melt.Definition, error) {`)
	assert.Regexp(t, `Name:\s+"UserService",`, file.Content)
	assert.Regexp(t, `Factory:\s+melt\.Construct\(func\(\) \*UserService \{ return new\(UserService\) \}\)`, file.Content)
	assert.Contains(t, file.Content, `melt.Autowire("repo", func(b *UserService, d *repository.UserRepository) { b.repo = d })`)
	assert.NotContains(t, file.Content, `"context"`)

	require.NoError(t, g.WriteFile(file))
	written, err := os.ReadFile(file.FilePath)
	require.NoError(t, err)
	assert.Equal(t, file.Content, string(written))
}

func TestGenerator_Errors(t *testing.T) {
	g := NewGenerator()

	_, err := g.GenerateComponents(nil)
	assert.Error(t, err)

	_, err = g.GenerateComponents(&models.PackageMetadata{PackageName: "x"})
	var genErr *models.GeneratorError
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ErrorTypeGeneration, genErr.Type)

	err = g.WriteFile(&models.GeneratedFile{FilePath: filepath.Join(t.TempDir(), "missing", "x.go")})
	require.ErrorAs(t, err, &genErr)
	assert.Equal(t, models.ErrorTypeFileSystem, genErr.Type)
}
