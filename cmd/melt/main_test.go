package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const serviceSource = `package service

//melt::service
type GreetingService struct{}

func (s *GreetingService) Greet(name string) string {
	return "hello " + name
}
`

func setupProject(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	dir := filepath.Join(root, "internal", "service")
	require.NoError(t, os.MkdirAll(dir, 0o755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "go.mod"), []byte("module example.com/greeter\n\ngo 1.25\n"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "service.go"), []byte(serviceSource), 0o644))
	return root
}

func runCLI(args ...string) (int, string, string) {
	var stdout, stderr bytes.Buffer
	code := run(args, &stdout, &stderr)
	return code, stdout.String(), stderr.String()
}

func TestRun_Help(t *testing.T) {
	code, _, stderr := runCLI("-help")

	assert.Equal(t, 0, code)
	assert.Contains(t, stderr, "Usage:")
	assert.Contains(t, stderr, "Melt Code Generator")
	assert.Contains(t, stderr, "-namespace")
	assert.Contains(t, stderr, "directory-paths")
}

func TestRun_NoArguments(t *testing.T) {
	code, _, stderr := runCLI()

	assert.Equal(t, 1, code)
	assert.Contains(t, stderr, "At least one directory path is required")
}

func TestRun_UnknownFlag(t *testing.T) {
	code, _, _ := runCLI("-bogus", "./...")

	assert.Equal(t, 2, code)
}

func TestRun_NonexistentDirectory(t *testing.T) {
	t.Chdir(setupProject(t))

	code, _, _ := runCLI("-quiet", "/nonexistent/directory")

	assert.Equal(t, 1, code)
}

func TestRun_GenerateAndClean(t *testing.T) {
	root := setupProject(t)
	t.Chdir(root)
	generated := filepath.Join(root, "internal", "service", "autogen_components.go")

	code, stdout, stderr := runCLI("-namespace", "greeter", "./...")
	require.Equal(t, 0, code, stderr)
	assert.Contains(t, stdout, "Generation Complete!")
	assert.Contains(t, stdout, "Components found: 1")

	content, err := os.ReadFile(generated)
	require.NoError(t, err)
	assert.Contains(t, string(content), `c.Register("greeter.internal.service"`)

	code, stdout, _ = runCLI("-clean", "./...")
	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Removed 1 generated files")
	assert.NoFileExists(t, generated)
}

func TestRun_CleanKeepsHandWrittenFiles(t *testing.T) {
	root := setupProject(t)
	t.Chdir(root)
	handWritten := filepath.Join(root, "internal", "service", "autogen_components.go")
	require.NoError(t, os.WriteFile(handWritten, []byte("package service\n"), 0o644))

	code, stdout, _ := runCLI("-clean", "./...")

	require.Equal(t, 0, code)
	assert.Contains(t, stdout, "Removed 0 generated files")
	assert.FileExists(t, handWritten)
}
