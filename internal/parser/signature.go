package parser

import (
	"fmt"
	"go/ast"
	"go/types"
	"strings"

	"github.com/melt-go/melt/internal/annotations"
	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/pkg/melt"
)

// binding is what the annotations of a handler say about one parameter
type binding struct {
	source   models.ParameterSource
	key      string
	optional bool
	def      *string
	ann      *annotations.ParsedAnnotation
}

// attachHandler turns an annotated method into routes of its receiver
func (p *Parser) attachHandler(scan *packageScan, m handlerMethod) {
	line := p.fileSet.Position(m.decl.Pos()).Line
	fail := func(msg string, suggestions ...string) {
		scan.errs = append(scan.errs, &models.GeneratorError{
			Type:        models.ErrorTypeValidation,
			File:        m.fileName,
			Line:        line,
			Message:     fmt.Sprintf("handler %s.%s: %s", m.receiver, m.decl.Name.Name, msg),
			Suggestions: suggestions,
		})
	}

	component, ok := scan.byName[m.receiver]
	if !ok || component.Kind != models.KindStruct {
		fail("receiver is not an annotated struct",
			"Annotate "+m.receiver+" with //melt::controller or //melt::rest_controller")
		return
	}
	if !ast.IsExported(m.decl.Name.Name) {
		fail("handler methods must be exported")
		return
	}

	returnType, err := analyzeReturnType(m.decl.Type.Results)
	if err != nil {
		fail(err.Error(), "Return T, (T, error) or error")
		return
	}

	bindings := map[string]binding{}
	for _, ann := range m.bindings {
		name := ann.GetString("param")
		if _, dup := bindings[name]; dup {
			fail(fmt.Sprintf("parameter %s is bound twice", name))
			return
		}
		b := binding{key: ann.GetString("Key"), ann: ann}
		switch ann.Type {
		case annotations.PathAnnotation:
			b.source = models.ParameterSourcePath
		case annotations.QueryAnnotation:
			b.source = models.ParameterSourceQuery
			b.optional = ann.GetBool("Optional")
			if ann.HasParameter("Default") {
				def := ann.GetString("Default")
				b.def = &def
			}
		case annotations.BodyAnnotation:
			b.source = models.ParameterSourceBody
		}
		bindings[name] = b
	}

	for _, routeAnn := range m.routes {
		method := annotations.Verb(routeAnn.Type)
		if method == "" {
			method = strings.ToUpper(routeAnn.GetString("method"))
		}
		path := routeAnn.GetString("path")

		pattern, err := melt.CompilePath(path)
		if err != nil {
			fail(err.Error())
			continue
		}

		params, err := analyzeParameters(m.decl.Type.Params, pattern, bindings)
		if err != nil {
			fail(err.Error(), "Supported parameter types: "+strings.Join(models.SupportedParameterTypes(), ", "))
			continue
		}

		component.Routes = append(component.Routes, models.RouteMetadata{
			Method:      method,
			Path:        path,
			HandlerName: m.decl.Name.Name,
			Parameters:  params,
			ReturnType:  returnType,
			Line:        line,
		})
	}
}

// analyzeParameters resolves where each handler parameter is bound from.
// Unannotated parameters named like a path variable bind to it, the rest
// bind to a required query parameter.
func analyzeParameters(list *ast.FieldList, pattern *melt.PathPattern, bindings map[string]binding) ([]models.Parameter, error) {
	var params []models.Parameter
	seen := map[string]bool{}
	position := 0

	for _, field := range list.List {
		typeName := types.ExprString(field.Type)
		if len(field.Names) == 0 {
			return nil, fmt.Errorf("parameter of type %s must be named", typeName)
		}
		for _, ident := range field.Names {
			name := ident.Name
			if name == "_" {
				return nil, fmt.Errorf("parameter of type %s must be named", typeName)
			}
			seen[name] = true

			param := models.Parameter{Name: name, Type: typeName, Position: position}
			position++

			if typeName == "context.Context" {
				if _, bound := bindings[name]; bound {
					return nil, fmt.Errorf("context parameter %s cannot be bound", name)
				}
				param.Source = models.ParameterSourceContext
				params = append(params, param)
				continue
			}

			if _, ok := models.ScalarName(typeName); !ok {
				return nil, fmt.Errorf("parameter %s has unsupported type %s", name, typeName)
			}

			b, explicit := bindings[name]
			switch {
			case explicit:
				param.Source = b.source
				param.Key = b.key
			case pattern.VariableIndex(name) >= 0:
				param.Source = models.ParameterSourcePath
			default:
				param.Source = models.ParameterSourceQuery
			}

			switch param.Source {
			case models.ParameterSourcePath:
				if err := checkPathVariable(pattern, param); err != nil {
					return nil, err
				}
				param.Required = true
			case models.ParameterSourceQuery:
				param.Required = !b.optional && b.def == nil
				if b.def != nil {
					scalar, _ := melt.ParseScalarType(typeName)
					if _, err := scalar.Parse(*b.def); err != nil {
						return nil, fmt.Errorf("default %q of parameter %s is not a valid %s", *b.def, name, typeName)
					}
					param.Default = b.def
				}
			case models.ParameterSourceBody:
				if typeName != "string" {
					return nil, fmt.Errorf("body parameter %s must be a string, got %s", name, typeName)
				}
				param.Required = true
			}
			params = append(params, param)
		}
	}

	for name := range bindings {
		if !seen[name] {
			return nil, fmt.Errorf("annotation binds unknown parameter %s", name)
		}
	}
	return params, nil
}

func checkPathVariable(pattern *melt.PathPattern, param models.Parameter) error {
	key := param.LookupKey()
	idx := pattern.VariableIndex(key)
	if idx < 0 {
		return fmt.Errorf("path %s has no variable {%s}", pattern.Raw(), key)
	}
	for _, part := range pattern.Parts() {
		if part.Type != melt.VariablePart || part.Value != key || part.TypeName == "" {
			continue
		}
		declared, _ := melt.ParseScalarType(part.TypeName)
		actual, _ := melt.ParseScalarType(param.Type)
		if declared != actual {
			return fmt.Errorf("path variable {%s:%s} does not match parameter type %s", key, part.TypeName, param.Type)
		}
	}
	return nil
}

// analyzeReturnType classifies the results of a handler
func analyzeReturnType(results *ast.FieldList) (models.ReturnTypeInfo, error) {
	resultTypes := fieldTypes(results)
	switch len(resultTypes) {
	case 0:
		return models.ReturnTypeInfo{Type: models.ReturnTypeNone}, nil
	case 1:
		if resultTypes[0] == "error" {
			return models.ReturnTypeInfo{Type: models.ReturnTypeError}, nil
		}
		return models.ReturnTypeInfo{Type: models.ReturnTypeValue, DataType: resultTypes[0]}, nil
	case 2:
		if resultTypes[1] != "error" {
			return models.ReturnTypeInfo{}, fmt.Errorf("second result must be error, got %s", resultTypes[1])
		}
		return models.ReturnTypeInfo{Type: models.ReturnTypeValueError, DataType: resultTypes[0]}, nil
	default:
		return models.ReturnTypeInfo{}, fmt.Errorf("handlers return at most two results, got %d", len(resultTypes))
	}
}
