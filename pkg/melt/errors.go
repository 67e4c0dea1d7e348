package melt

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

var (
	// ErrNilCatalog is returned when a context is refreshed without a catalog
	ErrNilCatalog = errors.New("melt: nil catalog")

	// ErrAlreadyRefreshed is returned when Refresh runs a second time
	ErrAlreadyRefreshed = errors.New("melt: context already refreshed")

	// ErrNamespaceNotFound is reported when a scanned namespace resolves to nothing
	ErrNamespaceNotFound = errors.New("melt: namespace not found")

	// ErrLoaderPanic is reported when a catalog loader panics
	ErrLoaderPanic = errors.New("melt: loader panicked")

	// ErrNoFactory is reported when a component has no no-argument factory
	ErrNoFactory = errors.New("melt: no default factory")

	// ErrFactoryPanic is reported when a factory panics
	ErrFactoryPanic = errors.New("melt: factory panicked")

	// ErrNilInstance is reported when a factory returns nil
	ErrNilInstance = errors.New("melt: factory returned nil")

	// ErrTypeMismatch is reported when a factory returns a value of another type
	ErrTypeMismatch = errors.New("melt: factory returned unexpected type")

	// ErrDuplicateBean is reported when a bean name or type is registered twice
	ErrDuplicateBean = errors.New("melt: duplicate bean")

	// ErrBeanNotFound is returned when no bean satisfies a lookup
	ErrBeanNotFound = errors.New("melt: bean not found")

	// ErrAmbiguousBean is matched by AmbiguousBeanError
	ErrAmbiguousBean = errors.New("melt: ambiguous bean")

	// ErrNotAssignable is reported when a qualified bean cannot fill a dependency
	ErrNotAssignable = errors.New("melt: bean not assignable")

	// ErrSetterPanic is reported when a dependency setter panics
	ErrSetterPanic = errors.New("melt: setter panicked")

	// ErrDuplicateRoute is reported when a route key is declared twice
	ErrDuplicateRoute = errors.New("melt: duplicate route")

	// ErrInvalidPattern is reported for malformed path patterns
	ErrInvalidPattern = errors.New("melt: invalid path pattern")

	// ErrNoInvoker is reported when a route spec has nothing to call
	ErrNoInvoker = errors.New("melt: route has no invoker")

	// ErrUnknownPathVariable is reported when a parameter names a variable its pattern lacks
	ErrUnknownPathVariable = errors.New("melt: unknown path variable")

	// ErrPathMismatch is returned by Bind when the request path does not fit the route
	ErrPathMismatch = errors.New("melt: path does not match route")
)

// AmbiguousBeanError is returned when several beans are assignable to a type
type AmbiguousBeanError struct {
	Type       string
	Candidates []string
}

// Error implements the error interface
func (e *AmbiguousBeanError) Error() string {
	return fmt.Sprintf("melt: %d beans assignable to %s: %s",
		len(e.Candidates), e.Type, strings.Join(e.Candidates, ", "))
}

// Is lets errors.Is match ErrAmbiguousBean
func (e *AmbiguousBeanError) Is(target error) bool {
	return target == ErrAmbiguousBean
}

// BindingError describes the first parameter that could not be bound
type BindingError struct {
	Param string
	Kind  ParamKind
	Type  ScalarType
	Value string
	Err   error
}

// Error implements the error interface
func (e *BindingError) Error() string {
	return fmt.Sprintf("cannot bind %s %q as %s from %q: %v", e.Kind, e.Param, e.Type, e.Value, e.Err)
}

// Unwrap returns the parser error
func (e *BindingError) Unwrap() error {
	return e.Err
}

// HttpError lets a handler choose the status code of its failure
type HttpError struct {
	StatusCode int    `json:"status_code"`
	Message    string `json:"message"`
}

// Error implements the error interface
func (e *HttpError) Error() string {
	return fmt.Sprintf("HTTP %d: %s", e.StatusCode, e.Message)
}

// NewHttpError creates a new HttpError with the given status code and message
func NewHttpError(statusCode int, message string) *HttpError {
	return &HttpError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// ErrBadRequest creates a 400 Bad Request error
func ErrBadRequest(message string) *HttpError {
	return NewHttpError(http.StatusBadRequest, message)
}

// ErrNotFound creates a 404 Not Found error
func ErrNotFound(message string) *HttpError {
	return NewHttpError(http.StatusNotFound, message)
}

// ErrConflict creates a 409 Conflict error
func ErrConflict(message string) *HttpError {
	return NewHttpError(http.StatusConflict, message)
}
