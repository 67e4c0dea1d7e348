package annotations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testLocation() SourceLocation {
	return SourceLocation{File: "controller.go", Line: 12, Column: 1}
}

func TestIsAnnotation(t *testing.T) {
	assert.True(t, IsAnnotation("//melt::service"))
	assert.True(t, IsAnnotation("  // melt::get /users"))
	assert.False(t, IsAnnotation("// melt is a container"))
	assert.False(t, IsAnnotation("/* melt::service */"))
	assert.False(t, IsAnnotation("//wire::service"))
}

func TestParticipleParser_ParseAnnotation(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name     string
		input    string
		expected AnnotationType
		params   map[string]any
	}{
		{
			name:     "component marker",
			input:    "//melt::service",
			expected: ServiceAnnotation,
			params:   map[string]any{},
		},
		{
			name:     "space after slashes",
			input:    "// melt::rest_controller",
			expected: RestControllerAnnotation,
			params:   map[string]any{},
		},
		{
			name:     "route with verb and path",
			input:    "//melt::route POST /users/{id}/status",
			expected: RouteAnnotation,
			params:   map[string]any{"method": "POST", "path": "/users/{id}/status"},
		},
		{
			name:     "shorthand verb",
			input:    "//melt::get /users/{id:int}",
			expected: GetAnnotation,
			params:   map[string]any{"path": "/users/{id:int}"},
		},
		{
			name:     "autowired by name",
			input:    "//melt::autowired -Name=auditRepository",
			expected: AutowiredAnnotation,
			params:   map[string]any{"Name": "auditRepository"},
		},
		{
			name:     "stereotype list",
			input:    "//melt::stereotype -Of=Service,Component",
			expected: StereotypeAnnotation,
			params:   map[string]any{"Of": []string{"Service", "Component"}},
		},
		{
			name:     "query flags",
			input:    "//melt::query limit -Optional -Default=10",
			expected: QueryAnnotation,
			params:   map[string]any{"param": "limit", "Optional": true, "Default": "10"},
		},
		{
			name:     "query explicit false",
			input:    "//melt::query limit -Optional=false",
			expected: QueryAnnotation,
			params:   map[string]any{"param": "limit", "Optional": false},
		},
		{
			name:     "quoted default",
			input:    `//melt::query greeting -Default="hello world"`,
			expected: QueryAnnotation,
			params:   map[string]any{"param": "greeting", "Default": "hello world"},
		},
		{
			name:     "negative default",
			input:    "//melt::query offset -Default=-1",
			expected: QueryAnnotation,
			params:   map[string]any{"param": "offset", "Default": "-1"},
		},
		{
			name:     "path key alias",
			input:    "//melt::path userID -Key=id",
			expected: PathAnnotation,
			params:   map[string]any{"param": "userID", "Key": "id"},
		},
		{
			name:     "marked",
			input:    "//melt::marked Audited",
			expected: MarkedAnnotation,
			params:   map[string]any{"marker": "Audited"},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.ParseAnnotation(tt.input, testLocation())
			require.NoError(t, err)
			assert.Equal(t, tt.expected, result.Type)
			assert.Equal(t, tt.params, result.Parameters)
			assert.Equal(t, testLocation(), result.Location)
		})
	}
}

func TestParticipleParser_Errors(t *testing.T) {
	parser := NewParser()

	tests := []struct {
		name  string
		input string
		code  ErrorCode
	}{
		{name: "not an annotation", input: "// just a comment", code: SyntaxErrorCode},
		{name: "unknown type", input: "//melt::bean", code: SyntaxErrorCode},
		{name: "missing path", input: "//melt::get", code: ValidationErrorCode},
		{name: "bad path", input: "//melt::get users", code: ValidationErrorCode},
		{name: "unclosed variable", input: "//melt::get /users/{id", code: ValidationErrorCode},
		{name: "bad verb", input: "//melt::route FETCH /users", code: ValidationErrorCode},
		{name: "too many positionals", input: "//melt::get /a /b", code: SchemaErrorCode},
		{name: "unknown flag", input: "//melt::service -Lazy", code: SchemaErrorCode},
		{name: "positional as flag", input: "//melt::get -path=/users", code: SchemaErrorCode},
		{name: "stereotype without markers", input: "//melt::stereotype", code: ValidationErrorCode},
		{name: "bool flag garbage", input: "//melt::query q -Optional=maybe", code: ValidationErrorCode},
		{name: "string flag without value", input: "//melt::autowired -Name", code: ValidationErrorCode},
		{name: "invalid parameter name", input: "//melt::path 9lives", code: ValidationErrorCode},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, err := parser.ParseAnnotation(tt.input, testLocation())
			require.Error(t, err)
			assert.Nil(t, result)

			var annErr AnnotationError
			require.ErrorAs(t, err, &annErr)
			assert.Equal(t, tt.code, annErr.Code(), err.Error())
			assert.Equal(t, testLocation(), annErr.Location())
			assert.Contains(t, err.Error(), "controller.go:12:1")
		})
	}
}

func TestParsedAnnotation_Getters(t *testing.T) {
	ann, err := NewParser().ParseAnnotation("//melt::query limit -Optional -Default=5", testLocation())
	require.NoError(t, err)

	assert.Equal(t, "limit", ann.GetString("param"))
	assert.Equal(t, "5", ann.GetString("Default"))
	assert.Equal(t, "id", ann.GetString("Key", "id"))
	assert.True(t, ann.GetBool("Optional"))
	assert.Nil(t, ann.GetStringSlice("Of"))
	assert.True(t, ann.HasParameter("Default"))
	assert.False(t, ann.HasParameter("Key"))
}
