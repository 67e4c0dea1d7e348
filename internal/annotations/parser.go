package annotations

import (
	"fmt"
	"strings"

	"github.com/alecthomas/participle/v2"
	"github.com/alecthomas/participle/v2/lexer"
)

// Prefix introduces every melt annotation comment
const Prefix = "//melt::"

// ParserEngine interface defines the core parsing functionality
type ParserEngine interface {
	ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error)
	ValidateAnnotation(annotation *ParsedAnnotation) error
}

// annotationAST is the grammar of one annotation comment:
//
//	//melt::<type> [positional...] [-Flag[=value]...]
type annotationAST struct {
	Pos        lexer.Position
	Type       string     `parser:"Prefix @Word"`
	Positional []string   `parser:"@(Word | Path | String)*"`
	Flags      []*flagAST `parser:"@@*"`
}

type flagAST struct {
	Pos   lexer.Position
	Name  string  `parser:"@Flag"`
	Value *string `parser:"( Equals @(String | Path | Word | Flag) )?"`
}

var annotationLexer = lexer.MustSimple([]lexer.SimpleRule{
	{Name: "Prefix", Pattern: `//\s*melt::`},
	{Name: "String", Pattern: `"(\\"|[^"])*"`},
	{Name: "Path", Pattern: `/[^\s]*`},
	{Name: "Flag", Pattern: `-[a-zA-Z_][a-zA-Z0-9_]*`},
	{Name: "Equals", Pattern: `=`},
	{Name: "Word", Pattern: `[^\s="]+`},
	{Name: "Whitespace", Pattern: `\s+`},
})

// ParticipleParser parses annotation comments with alecthomas/participle and
// validates them against a schema registry
type ParticipleParser struct {
	parser   *participle.Parser[annotationAST]
	registry AnnotationRegistry
}

// NewParticipleParser creates a new parser using participle
func NewParticipleParser(registry AnnotationRegistry) *ParticipleParser {
	return &ParticipleParser{
		parser: participle.MustBuild[annotationAST](
			participle.Lexer(annotationLexer),
			participle.Elide("Whitespace"),
			participle.Unquote("String"),
			participle.UseLookahead(2),
		),
		registry: registry,
	}
}

// NewParser creates a parser backed by the default registry
func NewParser() ParserEngine {
	return NewParticipleParser(DefaultRegistry())
}

// IsAnnotation reports whether a comment line is a melt annotation
func IsAnnotation(comment string) bool {
	trimmed := strings.TrimSpace(comment)
	if !strings.HasPrefix(trimmed, "//") {
		return false
	}
	return strings.HasPrefix(strings.TrimSpace(trimmed[2:]), "melt::")
}

// ParseAnnotation parses an annotation string
func (p *ParticipleParser) ParseAnnotation(comment string, location SourceLocation) (*ParsedAnnotation, error) {
	comment = strings.TrimSpace(comment)
	if !IsAnnotation(comment) {
		return nil, &SyntaxError{
			Msg:  "annotation must start with '//melt::'",
			Loc:  location,
			Hint: "Use format: //melt::type [args] [-Flag=value]",
		}
	}

	ast, err := p.parser.ParseString(location.File, comment)
	if err != nil {
		return nil, &SyntaxError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Use format: //melt::type [args] [-Flag=value]",
		}
	}

	annotationType, err := ParseAnnotationType(ast.Type)
	if err != nil {
		return nil, &SyntaxError{
			Msg:  fmt.Sprintf("unknown annotation type '%s'", ast.Type),
			Loc:  location,
			Hint: "Valid types: " + strings.Join(typeNames(), ", "),
		}
	}

	parsed := &ParsedAnnotation{
		Type:       annotationType,
		Parameters: make(map[string]any),
		Location:   location,
		Raw:        comment,
	}

	schema, err := p.schema(annotationType, location)
	if err != nil {
		return nil, err
	}

	if len(ast.Positional) > len(schema.Positional) {
		return nil, &SchemaError{
			Msg:  fmt.Sprintf("%s takes %d positional argument(s), got %d", annotationType, len(schema.Positional), len(ast.Positional)),
			Loc:  location,
			Hint: "Examples: " + strings.Join(schema.Examples, "; "),
		}
	}
	for i, value := range ast.Positional {
		parsed.Parameters[schema.Positional[i]] = value
	}

	for _, flag := range ast.Flags {
		name := strings.TrimPrefix(flag.Name, "-")
		if _, positional := indexOf(schema.Positional, name); positional {
			return nil, &SchemaError{
				Msg:  fmt.Sprintf("'%s' is positional for %s", name, annotationType),
				Loc:  location,
				Hint: "Examples: " + strings.Join(schema.Examples, "; "),
			}
		}
		spec, ok := schema.Parameters[name]
		if !ok {
			return nil, &SchemaError{
				Msg:  fmt.Sprintf("unknown parameter '%s' for annotation type %s", name, annotationType),
				Loc:  location,
				Hint: "Known parameters: " + strings.Join(flagNames(schema), ", "),
			}
		}
		value, err := convertFlag(name, spec, flag.Value, location)
		if err != nil {
			return nil, err
		}
		parsed.Parameters[name] = value
	}

	if err := p.ValidateAnnotation(parsed); err != nil {
		return nil, err
	}
	return parsed, nil
}

func (p *ParticipleParser) schema(t AnnotationType, location SourceLocation) (AnnotationSchema, error) {
	if p.registry == nil {
		return AnnotationSchema{}, &SchemaError{Msg: "no schema registry", Loc: location, Hint: "Use NewParser"}
	}
	schema, err := p.registry.GetSchema(t)
	if err != nil {
		return AnnotationSchema{}, &SchemaError{
			Msg:  err.Error(),
			Loc:  location,
			Hint: "Register the annotation type before parsing",
		}
	}
	return schema, nil
}

// ValidateAnnotation checks required parameters and runs parameter validators
func (p *ParticipleParser) ValidateAnnotation(annotation *ParsedAnnotation) error {
	schema, err := p.schema(annotation.Type, annotation.Location)
	if err != nil {
		return err
	}

	for _, name := range sortedParamNames(schema) {
		spec := schema.Parameters[name]
		value, exists := annotation.Parameters[name]
		if !exists {
			if spec.Required {
				return &ValidationError{
					Parameter: name,
					Expected:  spec.Description,
					Actual:    "nothing",
					Loc:       annotation.Location,
					Hint:      "Examples: " + strings.Join(schema.Examples, "; "),
				}
			}
			continue
		}
		if spec.Validator != nil {
			if err := spec.Validator(value); err != nil {
				return &ValidationError{
					Parameter: name,
					Expected:  spec.Description,
					Actual:    fmt.Sprintf("%v (%v)", value, err),
					Loc:       annotation.Location,
					Hint:      "Examples: " + strings.Join(schema.Examples, "; "),
				}
			}
		}
	}
	return nil
}

func convertFlag(name string, spec ParameterSpec, raw *string, location SourceLocation) (any, error) {
	switch spec.Type {
	case BoolType:
		if raw == nil {
			return true, nil
		}
		switch strings.ToLower(*raw) {
		case "true":
			return true, nil
		case "false":
			return false, nil
		}
		return nil, &ValidationError{Parameter: name, Expected: "true or false", Actual: *raw, Loc: location, Hint: "Use -" + name + " alone to enable it"}
	case StringSliceType:
		if raw == nil {
			return nil, &ValidationError{Parameter: name, Expected: "a comma separated list", Actual: "no value", Loc: location, Hint: "Use -" + name + "=A,B"}
		}
		var values []string
		for _, part := range strings.Split(*raw, ",") {
			if part = strings.TrimSpace(part); part != "" {
				values = append(values, part)
			}
		}
		return values, nil
	default:
		if raw == nil {
			return nil, &ValidationError{Parameter: name, Expected: "a value", Actual: "no value", Loc: location, Hint: "Use -" + name + "=value"}
		}
		return *raw, nil
	}
}

func indexOf(values []string, v string) (int, bool) {
	for i, candidate := range values {
		if candidate == v {
			return i, true
		}
	}
	return -1, false
}

func flagNames(schema AnnotationSchema) []string {
	var names []string
	for _, name := range sortedParamNames(schema) {
		if _, positional := indexOf(schema.Positional, name); !positional {
			names = append(names, "-"+name)
		}
	}
	return names
}

func typeNames() []string {
	names := make([]string, 0, len(annotationNames))
	for t := ComponentAnnotation; t <= BodyAnnotation; t++ {
		names = append(names, t.String())
	}
	return names
}
