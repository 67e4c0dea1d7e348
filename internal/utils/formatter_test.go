package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFormatGoSource(t *testing.T) {
	source := `package web

import (
	"strings"
	"fmt"
)

func Hello() string {
return fmt.Sprint("hi")
}
`
	formatted, err := FormatGoSource("web.go", source)
	require.NoError(t, err)

	assert.NotContains(t, formatted, `"strings"`)
	assert.Contains(t, formatted, "\treturn fmt.Sprint(\"hi\")")
}

func TestFormatGoSource_InvalidSyntax(t *testing.T) {
	source := "package web\n\nfunc {"
	formatted, err := FormatGoSource("web.go", source)

	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid Go syntax")
	assert.Equal(t, source, formatted)
	assert.Error(t, ValidateGoCode(source))
}
