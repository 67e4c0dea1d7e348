package annotations

import (
	"fmt"
	"strings"
	"unicode"

	"github.com/melt-go/melt/pkg/melt"
)

// HTTPMethods are the verbs accepted by //melt::route
var HTTPMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "HEAD", "OPTIONS"}

// ValidateHTTPMethod validates HTTP method parameter values
func ValidateHTTPMethod(v any) error {
	method := strings.ToUpper(v.(string))
	for _, valid := range HTTPMethods {
		if method == valid {
			return nil
		}
	}
	return fmt.Errorf("must be one of: %s, got '%s'", strings.Join(HTTPMethods, ", "), method)
}

// ValidateURLPath validates route patterns
func ValidateURLPath(v any) error {
	path := v.(string)
	if !strings.HasPrefix(path, "/") {
		return fmt.Errorf("must start with '/', got '%s'", path)
	}
	if _, err := melt.CompilePath(path); err != nil {
		return err
	}
	return nil
}

// ValidateIdentifier validates Go identifiers used as parameter or bean names
func ValidateIdentifier(v any) error {
	name := v.(string)
	if name == "" {
		return fmt.Errorf("must not be empty")
	}
	for i, r := range name {
		if r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r)) {
			continue
		}
		return fmt.Errorf("'%s' is not a valid identifier", name)
	}
	return nil
}

// ValidateMarkers validates a stereotype's meta marker list
func ValidateMarkers(v any) error {
	markers := v.([]string)
	if len(markers) == 0 {
		return fmt.Errorf("must list at least one marker")
	}
	for _, m := range markers {
		if err := ValidateIdentifier(m); err != nil {
			return err
		}
	}
	return nil
}

// PathParameterSpec returns the spec of a route path parameter
func PathParameterSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "URL path pattern (e.g., /users, /users/{id})",
		Validator:   ValidateURLPath,
	}
}

// ParamNameSpec returns the spec of the handler parameter a binding targets
func ParamNameSpec() ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Required:    true,
		Description: "Name of the handler parameter",
		Validator:   ValidateIdentifier,
	}
}

// KeyParameterSpec returns the spec of a binding's request key override
func KeyParameterSpec(description string) ParameterSpec {
	return ParameterSpec{
		Type:        StringType,
		Description: description,
	}
}
