package cli

import (
	"errors"
	"time"

	"github.com/melt-go/melt/internal/annotations"
	"github.com/melt-go/melt/internal/models"
)

// GenerationSummary tracks statistics about the generation process
type GenerationSummary struct {
	PackagesProcessed int
	ComponentsFound   int
	RoutesFound       int
	StereotypesFound  int
	SkippedFiles      []string
	RouteConflicts    []string
	GeneratedFiles    []string
	Duration          time.Duration
}

// Stats returns the summary in the shape printed by the CLI
func (s GenerationSummary) Stats() map[string]any {
	return map[string]any{
		"Packages processed": s.PackagesProcessed,
		"Components found":   s.ComponentsFound,
		"Routes found":       s.RoutesFound,
		"Stereotypes found":  s.StereotypesFound,
		"Files generated":    len(s.GeneratedFiles),
		"Files skipped":      len(s.SkippedFiles),
	}
}

// reportError prints an error with the suggestions carried by generator and
// annotation errors. Joined errors are reported one by one.
func (g *Generator) reportError(err error) {
	if joined, ok := err.(interface{ Unwrap() []error }); ok {
		for _, e := range joined.Unwrap() {
			g.reportError(e)
		}
		return
	}

	d := g.diagnostics
	d.Error("%v", err)

	var suggestions []string
	var genErr *models.GeneratorError
	var annErr annotations.AnnotationError
	switch {
	case errors.As(err, &genErr):
		suggestions = genErr.Suggestions
	case errors.As(err, &annErr):
		if hint := annErr.Suggestion(); hint != "" {
			suggestions = []string{hint}
		}
	}

	if len(suggestions) == 0 {
		return
	}
	d.Indent()
	for _, s := range suggestions {
		d.List("hint: %s", s)
	}
	d.Unindent()
}
