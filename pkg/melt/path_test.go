package melt

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCompilePath(t *testing.T) {
	tests := []struct {
		name        string
		pattern     string
		variables   []string
		parts       []PathPart
		expectError bool
	}{
		{
			name:    "static",
			pattern: "/users/count",
			parts:   []PathPart{{Type: StaticPart, Value: "/users/count"}},
		},
		{
			name:      "single variable",
			pattern:   "/users/{id}",
			variables: []string{"id"},
			parts: []PathPart{
				{Type: StaticPart, Value: "/users/"},
				{Type: VariablePart, Value: "id"},
			},
		},
		{
			name:      "typed variables",
			pattern:   "/users/{id:int}/posts/{slug:string}",
			variables: []string{"id", "slug"},
			parts: []PathPart{
				{Type: StaticPart, Value: "/users/"},
				{Type: VariablePart, Value: "id", TypeName: "int"},
				{Type: StaticPart, Value: "/posts/"},
				{Type: VariablePart, Value: "slug", TypeName: "string"},
			},
		},
		{name: "unclosed brace", pattern: "/users/{id", expectError: true},
		{name: "nested brace", pattern: "/users/{i{d}", expectError: true},
		{name: "stray closing brace", pattern: "/users/id}", expectError: true},
		{name: "empty name", pattern: "/users/{}", expectError: true},
		{name: "empty name with type", pattern: "/users/{:int}", expectError: true},
		{name: "duplicate name", pattern: "/a/{id}/b/{id}", expectError: true},
		{name: "unknown type", pattern: "/a/{id:float}", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePath(tt.pattern)
			if tt.expectError {
				assert.ErrorIs(t, err, ErrInvalidPattern)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.pattern, p.Raw())
			assert.Equal(t, tt.variables, p.Variables())
			assert.Equal(t, tt.parts, p.Parts())
			assert.Equal(t, len(tt.variables) == 0, p.IsStatic())
		})
	}
}

func TestPathPattern_Match(t *testing.T) {
	tests := []struct {
		name    string
		pattern string
		path    string
		values  []string
		matches bool
	}{
		{name: "static hit", pattern: "/health", path: "/health", matches: true},
		{name: "static miss", pattern: "/health", path: "/healthz"},
		{name: "variable", pattern: "/users/{id}", path: "/users/42", values: []string{"42"}, matches: true},
		{name: "variable does not cross segments", pattern: "/users/{id}", path: "/users/42/status"},
		{name: "variable must be non-empty", pattern: "/users/{id}", path: "/users/"},
		{name: "two variables", pattern: "/a/{x}/b/{y}", path: "/a/1/b/two", values: []string{"1", "two"}, matches: true},
		{name: "literal dot is quoted", pattern: "/files/{name}.txt", path: "/files/readmeXtxt"},
		{name: "literal dot matches", pattern: "/files/{name}.txt", path: "/files/readme.txt", values: []string{"readme"}, matches: true},
		{name: "whole path must match", pattern: "/users/{id}", path: "/api/users/42"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, err := CompilePath(tt.pattern)
			require.NoError(t, err)

			values, ok := p.Match(tt.path)
			assert.Equal(t, tt.matches, ok)
			assert.Equal(t, tt.values, values)
		})
	}
}

func TestScalarParsers(t *testing.T) {
	id := uuid.New()

	tests := []struct {
		name        string
		typ         ScalarType
		input       string
		expected    any
		expectError bool
	}{
		{name: "string passthrough", typ: String, input: "hello world", expected: "hello world"},
		{name: "int", typ: Int, input: "-456", expected: -456},
		{name: "int rejects float", typ: Int, input: "123.45", expectError: true},
		{name: "int rejects empty", typ: Int, input: "", expectError: true},
		{name: "long", typ: Long, input: "9223372036854775807", expected: int64(9223372036854775807)},
		{name: "long rejects letters", typ: Long, input: "abc", expectError: true},
		{name: "bool true", typ: Bool, input: "true", expected: true},
		{name: "bool mixed case", typ: Bool, input: "TrUe", expected: true},
		{name: "bool one is false", typ: Bool, input: "1", expected: false},
		{name: "bool garbage is false", typ: Bool, input: "yes", expected: false},
		{name: "uuid", typ: UUID, input: id.String(), expected: id},
		{name: "uuid invalid", typ: UUID, input: "not-a-uuid", expectError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			v, err := tt.typ.Parse(tt.input)
			if tt.expectError {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, v)
		})
	}
}

func TestParseScalarType(t *testing.T) {
	for name, expected := range map[string]ScalarType{
		"string": String, "int": Int, "integer": Int, "long": Long, "int64": Long,
		"boolean": Bool, "bool": Bool, "UUID": UUID, "uuid.UUID": UUID,
	} {
		got, ok := ParseScalarType(name)
		assert.True(t, ok, name)
		assert.Equal(t, expected, got, name)
	}

	_, ok := ParseScalarType("float64")
	assert.False(t, ok)
	assert.Contains(t, ScalarTypeNames(), "uuid.UUID")
	assert.Equal(t, "int64", Long.String())
}
