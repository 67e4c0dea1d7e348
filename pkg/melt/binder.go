package melt

import (
	"context"
	"net/url"

	"github.com/google/uuid"
)

// ParamKind is where a handler parameter takes its value from
type ParamKind int

const (
	PathVariable ParamKind = iota
	RequestParam
	RequestBody
)

// String returns the string representation of the parameter kind
func (k ParamKind) String() string {
	switch k {
	case PathVariable:
		return "path variable"
	case RequestParam:
		return "query parameter"
	case RequestBody:
		return "body"
	default:
		return "unknown"
	}
}

// ParamSpec declares how one handler parameter is bound
type ParamSpec struct {
	// Name is the handler parameter name
	Name string

	// Key is the path variable or query key; Name is used when empty
	Key string

	Kind     ParamKind
	Type     ScalarType
	Required bool

	// Default is used for an absent query parameter
	Default *string
}

// LookupKey returns the request key the parameter reads
func (p ParamSpec) LookupKey() string {
	if p.Key != "" {
		return p.Key
	}
	return p.Name
}

// WithKey returns a copy of p reading key from the request
func (p ParamSpec) WithKey(key string) ParamSpec {
	p.Key = key
	return p
}

// PathParam declares a parameter bound to the path variable of the same name
func PathParam(name string, typ ScalarType) ParamSpec {
	return ParamSpec{Name: name, Kind: PathVariable, Type: typ, Required: true}
}

// QueryParam declares a parameter bound to the first value of a query key
func QueryParam(name string, typ ScalarType, required bool) ParamSpec {
	return ParamSpec{Name: name, Kind: RequestParam, Type: typ, Required: required}
}

// QueryParamDefault declares an optional query parameter with a default value
func QueryParamDefault(name string, typ ScalarType, def string) ParamSpec {
	return ParamSpec{Name: name, Kind: RequestParam, Type: typ, Default: &def}
}

// BodyParam declares a parameter bound to the raw request body
func BodyParam(name string) ParamSpec {
	return ParamSpec{Name: name, Kind: RequestBody, Type: String, Required: true}
}

// Request is the host-independent view of an incoming request
type Request struct {
	Context context.Context
	Method  string
	Path    string
	Query   url.Values
	Body    string
}

// Ctx returns the request context, or context.Background when unset
func (r *Request) Ctx() context.Context {
	if r.Context == nil {
		return context.Background()
	}
	return r.Context
}

// Args holds bound handler arguments in declaration order. An absent query
// parameter without a default is nil.
type Args []any

// Present reports whether argument i was bound to a value
func (a Args) Present(i int) bool {
	return i >= 0 && i < len(a) && a[i] != nil
}

// String returns argument i as a string, or "" when absent
func (a Args) String(i int) string {
	return argAs[string](a, i)
}

// Int returns argument i as an int, or 0 when absent
func (a Args) Int(i int) int {
	return argAs[int](a, i)
}

// Long returns argument i as an int64, or 0 when absent
func (a Args) Long(i int) int64 {
	return argAs[int64](a, i)
}

// Bool returns argument i as a bool, or false when absent
func (a Args) Bool(i int) bool {
	return argAs[bool](a, i)
}

// UUID returns argument i as a uuid.UUID, or uuid.Nil when absent
func (a Args) UUID(i int) uuid.UUID {
	return argAs[uuid.UUID](a, i)
}

func argAs[T any](a Args, i int) T {
	var zero T
	if !a.Present(i) {
		return zero
	}
	v, ok := a[i].(T)
	if !ok {
		return zero
	}
	return v
}

// bindArgs extracts and coerces every declared parameter. The first failure
// aborts binding.
func bindArgs(pattern *PathPattern, params []ParamSpec, req *Request) (Args, error) {
	var captures []string
	if !pattern.IsStatic() {
		values, ok := pattern.Match(req.Path)
		if !ok {
			return nil, ErrPathMismatch
		}
		captures = values
	}

	args := make(Args, len(params))
	for i, p := range params {
		var raw string
		switch p.Kind {
		case PathVariable:
			idx := pattern.VariableIndex(p.LookupKey())
			if idx < 0 || idx >= len(captures) {
				return nil, &BindingError{Param: p.Name, Kind: p.Kind, Type: p.Type, Err: ErrUnknownPathVariable}
			}
			raw = captures[idx]
		case RequestParam:
			values := req.Query[p.LookupKey()]
			if len(values) == 0 {
				if p.Default == nil {
					args[i] = nil
					continue
				}
				raw = *p.Default
			} else {
				raw = values[0]
			}
		case RequestBody:
			args[i] = req.Body
			continue
		}

		v, err := p.Type.Parse(raw)
		if err != nil {
			return nil, &BindingError{Param: p.Name, Kind: p.Kind, Type: p.Type, Value: raw, Err: err}
		}
		args[i] = v
	}
	return args, nil
}
