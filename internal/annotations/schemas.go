package annotations

// Built-in annotation schemas

func componentSchema(t AnnotationType, description string) AnnotationSchema {
	return AnnotationSchema{
		Type:        t,
		Target:      TypeTarget,
		Description: description,
		Parameters:  map[string]ParameterSpec{},
		Examples:    []string{"//melt::" + t.String()},
	}
}

// ComponentAnnotationSchema marks a generic managed component
var ComponentAnnotationSchema = componentSchema(ComponentAnnotation, "Marks a struct as a managed component")

// ServiceAnnotationSchema marks a service component
var ServiceAnnotationSchema = componentSchema(ServiceAnnotation, "Marks a struct as a service component")

// RepositoryAnnotationSchema marks a repository component
var RepositoryAnnotationSchema = componentSchema(RepositoryAnnotation, "Marks a struct as a repository component")

// ControllerAnnotationSchema marks a handler component
var ControllerAnnotationSchema = componentSchema(ControllerAnnotation, "Marks a struct as a controller whose methods serve routes")

// RestControllerAnnotationSchema marks a handler component
var RestControllerAnnotationSchema = componentSchema(RestControllerAnnotation, "Marks a struct as a REST controller whose methods serve routes")

// StereotypeAnnotationSchema declares a custom marker
var StereotypeAnnotationSchema = AnnotationSchema{
	Type:        StereotypeAnnotation,
	Target:      TypeTarget,
	Description: "Declares the annotated type as a custom marker carrying other markers",
	Parameters: map[string]ParameterSpec{
		"Of": {
			Type:        StringSliceType,
			Required:    true,
			Description: "Markers the custom marker stands for (e.g., Service or Component,Repository)",
			Validator:   ValidateMarkers,
		},
	},
	Examples: []string{
		"//melt::stereotype -Of=Service",
		"//melt::stereotype -Of=RestController",
	},
}

// MarkedAnnotationSchema applies a custom marker
var MarkedAnnotationSchema = AnnotationSchema{
	Type:        MarkedAnnotation,
	Target:      TypeTarget,
	Description: "Applies a custom marker declared with //melt::stereotype",
	Positional:  []string{"marker"},
	Parameters: map[string]ParameterSpec{
		"marker": {
			Type:        StringType,
			Required:    true,
			Description: "Name of the marker type",
			Validator:   ValidateIdentifier,
		},
	},
	Examples: []string{"//melt::marked Audited"},
}

// AutowiredAnnotationSchema declares an injected field
var AutowiredAnnotationSchema = AnnotationSchema{
	Type:        AutowiredAnnotation,
	Target:      FieldTarget,
	Description: "Injects a bean into the annotated field",
	Parameters: map[string]ParameterSpec{
		"Name": {
			Type:        StringType,
			Description: "Bean name to inject instead of resolving by type",
			Validator:   ValidateIdentifier,
		},
	},
	Examples: []string{
		"//melt::autowired",
		"//melt::autowired -Name=auditRepository",
	},
}

// RouteAnnotationSchema declares a handler route with an explicit verb
var RouteAnnotationSchema = AnnotationSchema{
	Type:        RouteAnnotation,
	Target:      MethodTarget,
	Description: "Defines an HTTP route handler",
	Positional:  []string{"method", "path"},
	Parameters: map[string]ParameterSpec{
		"method": {
			Type:        StringType,
			Required:    true,
			Description: "HTTP method (GET, POST, PUT, DELETE, PATCH, HEAD, OPTIONS)",
			Validator:   ValidateHTTPMethod,
		},
		"path": PathParameterSpec(),
	},
	Examples: []string{
		"//melt::route GET /users",
		"//melt::route POST /users/{id}/status",
	},
}

func verbSchema(t AnnotationType) AnnotationSchema {
	return AnnotationSchema{
		Type:        t,
		Target:      MethodTarget,
		Description: "Defines an HTTP " + Verb(t) + " route handler",
		Positional:  []string{"path"},
		Parameters: map[string]ParameterSpec{
			"path": PathParameterSpec(),
		},
		Examples: []string{"//melt::" + t.String() + " /users/{id}"},
	}
}

// PathAnnotationSchema binds a handler parameter to a path variable
var PathAnnotationSchema = AnnotationSchema{
	Type:        PathAnnotation,
	Target:      MethodTarget,
	Description: "Binds a handler parameter to a path variable",
	Positional:  []string{"param"},
	Parameters: map[string]ParameterSpec{
		"param": ParamNameSpec(),
		"Key":   KeyParameterSpec("Path variable name when it differs from the parameter name"),
	},
	Examples: []string{
		"//melt::path id",
		"//melt::path userID -Key=id",
	},
}

// QueryAnnotationSchema binds a handler parameter to a query parameter
var QueryAnnotationSchema = AnnotationSchema{
	Type:        QueryAnnotation,
	Target:      MethodTarget,
	Description: "Binds a handler parameter to the first value of a query parameter",
	Positional:  []string{"param"},
	Parameters: map[string]ParameterSpec{
		"param":    ParamNameSpec(),
		"Key":      KeyParameterSpec("Query key when it differs from the parameter name"),
		"Optional": {Type: BoolType, Description: "Marks the parameter as not required"},
		"Default":  {Type: StringType, Description: "Value used when the parameter is absent"},
	},
	Examples: []string{
		"//melt::query name",
		"//melt::query limit -Optional -Default=10",
		"//melt::query pageSize -Key=page_size",
	},
}

// BodyAnnotationSchema binds a handler parameter to the raw request body
var BodyAnnotationSchema = AnnotationSchema{
	Type:        BodyAnnotation,
	Target:      MethodTarget,
	Description: "Binds a string handler parameter to the raw request body",
	Positional:  []string{"param"},
	Parameters: map[string]ParameterSpec{
		"param": ParamNameSpec(),
	},
	Examples: []string{"//melt::body payload"},
}

// Verb returns the HTTP verb implied by a shorthand route annotation
func Verb(t AnnotationType) string {
	switch t {
	case GetAnnotation:
		return "GET"
	case PostAnnotation:
		return "POST"
	case PutAnnotation:
		return "PUT"
	case DeleteAnnotation:
		return "DELETE"
	case PatchAnnotation:
		return "PATCH"
	default:
		return ""
	}
}

// GetBuiltinSchemas returns all built-in annotation schemas
func GetBuiltinSchemas() []AnnotationSchema {
	return []AnnotationSchema{
		ComponentAnnotationSchema,
		ServiceAnnotationSchema,
		RepositoryAnnotationSchema,
		ControllerAnnotationSchema,
		RestControllerAnnotationSchema,
		StereotypeAnnotationSchema,
		MarkedAnnotationSchema,
		AutowiredAnnotationSchema,
		RouteAnnotationSchema,
		verbSchema(GetAnnotation),
		verbSchema(PostAnnotation),
		verbSchema(PutAnnotation),
		verbSchema(DeleteAnnotation),
		verbSchema(PatchAnnotation),
		PathAnnotationSchema,
		QueryAnnotationSchema,
		BodyAnnotationSchema,
	}
}

// RegisterBuiltinSchemas registers all built-in annotation schemas
func RegisterBuiltinSchemas(registry AnnotationRegistry) error {
	for _, schema := range GetBuiltinSchemas() {
		if err := registry.Register(schema.Type, schema); err != nil {
			return err
		}
	}
	return nil
}
