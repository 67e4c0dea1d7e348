package melt

import (
	"fmt"
	"regexp"
	"strings"
)

// PathPartType represents the type of path part
type PathPartType int

const (
	StaticPart PathPartType = iota
	VariablePart
)

// PathPart represents a single part of a route pattern
type PathPart struct {
	Type  PathPartType
	Value string // literal text for static parts, variable name otherwise

	// TypeName is the optional declared type of a variable, e.g. "int"
	TypeName string
}

// PathPattern is a compiled route pattern such as /users/{id:int}/status
type PathPattern struct {
	raw       string
	parts     []PathPart
	variables []string
	re        *regexp.Regexp
}

// CompilePath parses and compiles a route pattern. Unbalanced braces, empty
// variable names and repeated variable names are rejected.
func CompilePath(pattern string) (*PathPattern, error) {
	parts, err := parsePath(pattern)
	if err != nil {
		return nil, err
	}

	p := &PathPattern{raw: pattern, parts: parts}
	seen := make(map[string]bool)
	var expr strings.Builder
	expr.WriteString("^")
	for _, part := range parts {
		switch part.Type {
		case StaticPart:
			expr.WriteString(regexp.QuoteMeta(part.Value))
		case VariablePart:
			if seen[part.Value] {
				return nil, fmt.Errorf("%w: %q declares {%s} twice", ErrInvalidPattern, pattern, part.Value)
			}
			seen[part.Value] = true
			p.variables = append(p.variables, part.Value)
			expr.WriteString("([^/]+)")
		}
	}
	expr.WriteString("$")

	if len(p.variables) > 0 {
		re, err := regexp.Compile(expr.String())
		if err != nil {
			return nil, fmt.Errorf("%w: %q: %v", ErrInvalidPattern, pattern, err)
		}
		p.re = re
	}
	return p, nil
}

func parsePath(path string) ([]PathPart, error) {
	var parts []PathPart

	i := 0
	for i < len(path) {
		switch path[i] {
		case '{':
			j := strings.IndexAny(path[i+1:], "{}")
			if j == -1 || path[i+1+j] != '}' {
				return nil, fmt.Errorf("%w: %q has an unclosed '{' at %d", ErrInvalidPattern, path, i)
			}
			content := path[i+1 : i+1+j]
			name, typeName, _ := strings.Cut(content, ":")
			name = strings.TrimSpace(name)
			if name == "" {
				return nil, fmt.Errorf("%w: %q has an empty variable name at %d", ErrInvalidPattern, path, i)
			}
			if typeName != "" {
				if _, ok := ParseScalarType(typeName); !ok {
					return nil, fmt.Errorf("%w: %q uses unknown type %q for {%s}", ErrInvalidPattern, path, typeName, name)
				}
			}
			parts = append(parts, PathPart{
				Type:     VariablePart,
				Value:    name,
				TypeName: strings.TrimSpace(typeName),
			})
			i += j + 2
		case '}':
			return nil, fmt.Errorf("%w: %q has an unmatched '}' at %d", ErrInvalidPattern, path, i)
		default:
			start := i
			for i < len(path) && path[i] != '{' && path[i] != '}' {
				i++
			}
			parts = append(parts, PathPart{Type: StaticPart, Value: path[start:i]})
		}
	}

	return parts, nil
}

// Raw returns the pattern as declared
func (p *PathPattern) Raw() string {
	return p.raw
}

// Parts returns the parsed parts
func (p *PathPattern) Parts() []PathPart {
	return p.parts
}

// Variables returns the variable names in left-to-right order
func (p *PathPattern) Variables() []string {
	return p.variables
}

// IsStatic reports whether the pattern has no variables
func (p *PathPattern) IsStatic() bool {
	return len(p.variables) == 0
}

// VariableIndex returns the capture position of name, or -1
func (p *PathPattern) VariableIndex(name string) int {
	for i, v := range p.variables {
		if v == name {
			return i
		}
	}
	return -1
}

// Match matches path against the whole pattern and returns the captured
// variable values in declaration order
func (p *PathPattern) Match(path string) ([]string, bool) {
	if p.re == nil {
		return nil, path == p.raw
	}
	m := p.re.FindStringSubmatch(path)
	if m == nil {
		return nil, false
	}
	return m[1:], true
}
