package cli

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/internal/templates"
)

// Cleaner handles cleaning up generated files
type Cleaner struct {
	scanner *DirectoryScanner
}

// NewCleaner creates a new cleaner
func NewCleaner() *Cleaner {
	return &Cleaner{
		scanner: NewDirectoryScanner(),
	}
}

// CleanGeneratedFiles removes the generated registration files under the given
// directory patterns and returns the removed paths. Files with the generated
// name but without the generated header are left alone.
func (c *Cleaner) CleanGeneratedFiles(patterns []string) ([]string, error) {
	dirs, err := c.scanner.ScanDirectories(patterns)
	if err != nil {
		return nil, err
	}

	var removed []string
	for _, dir := range dirs {
		file := filepath.Join(dir, models.GeneratedFileName)
		generated, err := isGeneratedFile(file)
		if err != nil {
			return removed, err
		}
		if !generated {
			continue
		}
		if err := os.Remove(file); err != nil {
			return removed, fmt.Errorf("failed to remove file %s: %w", file, err)
		}
		removed = append(removed, file)
	}
	return removed, nil
}

// isGeneratedFile reports whether file exists and starts with the generated header
func isGeneratedFile(file string) (bool, error) {
	f, err := os.Open(file)
	if err != nil {
		if os.IsNotExist(err) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check file %s: %w", file, err)
	}
	defer f.Close()

	scanner := bufio.NewScanner(f)
	if !scanner.Scan() {
		return false, scanner.Err()
	}
	return strings.TrimSpace(scanner.Text()) == templates.GeneratedHeader, nil
}
