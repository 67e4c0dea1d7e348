package templates

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/melt-go/melt/internal/models"
	"github.com/melt-go/melt/pkg/melt"
)

// ComponentsFileData is the input of the components-file template
type ComponentsFileData struct {
	PackageName string
	Namespace   string
	Imports     []models.Import
	Stereotypes []StereotypeData
	Components  []ComponentData
}

// StereotypeData is a DefineStereotype call
type StereotypeData struct {
	Name string
	Of   []string // marker expressions
}

// ComponentData is one catalog loader
type ComponentData struct {
	Namespace    string
	Name         string
	Kind         string
	TypeExpr     string
	Markers      []string
	Factory      string
	Dependencies []string
	Routes       []RouteData
}

// RouteData is one melt.RouteSpec literal
type RouteData struct {
	Method  string
	Path    string
	Handler string
	Params  []string
	Body    []string
}

// BuildComponentsFileData converts package metadata into template data
func BuildComponentsFileData(metadata *models.PackageMetadata, namespace string) ComponentsFileData {
	data := ComponentsFileData{
		PackageName: metadata.PackageName,
		Namespace:   namespace,
		Imports:     collectImports(metadata),
	}

	for _, s := range metadata.Stereotypes {
		of := make([]string, len(s.Of))
		for i, m := range s.Of {
			of[i] = MarkerExpr(m)
		}
		data.Stereotypes = append(data.Stereotypes, StereotypeData{Name: s.Name, Of: of})
		data.Components = append(data.Components, ComponentData{
			Namespace: namespace,
			Name:      s.Name,
			Kind:      models.KindMarker.String(),
			TypeExpr:  s.Name,
		})
	}

	for _, c := range metadata.Components {
		data.Components = append(data.Components, buildComponent(c, namespace))
	}
	return data
}

func buildComponent(c models.ComponentMetadata, namespace string) ComponentData {
	component := ComponentData{
		Namespace: namespace,
		Name:      c.Name,
		Kind:      c.Kind.String(),
		TypeExpr:  c.StructName,
	}
	for _, m := range c.Markers {
		component.Markers = append(component.Markers, MarkerExpr(m))
	}
	if c.Kind != models.KindStruct {
		return component
	}

	component.TypeExpr = "*" + c.StructName
	component.Factory = FactoryExpr(c)
	for _, dep := range c.Dependencies {
		component.Dependencies = append(component.Dependencies, DependencyExpr(c.StructName, dep))
	}
	for _, r := range c.Routes {
		component.Routes = append(component.Routes, RouteData{
			Method:  r.Method,
			Path:    r.Path,
			Handler: r.HandlerName,
			Params:  ParamSpecExprs(r.Parameters),
			Body:    InvokeBody(c.StructName, r),
		})
	}
	return component
}

// collectImports merges the imports of every component file. Unused ones
// are dropped when the output is formatted.
func collectImports(metadata *models.PackageMetadata) []models.Import {
	seen := map[string]bool{MeltImportPath: true}
	imports := []models.Import{{Path: MeltImportPath}}
	if len(metadata.Routes()) > 0 {
		imports = append(imports, models.Import{Path: "context"})
		seen["context"] = true
	}

	var extra []models.Import
	for _, c := range metadata.Components {
		for _, imp := range c.Imports {
			if seen[imp.Path] {
				continue
			}
			seen[imp.Path] = true
			extra = append(extra, imp)
		}
	}
	sort.Slice(extra, func(i, j int) bool { return extra[i].Path < extra[j].Path })
	return append(imports, extra...)
}

// MarkerExpr renders a marker name as a melt.Marker expression
func MarkerExpr(name string) string {
	if melt.IsComponentMarker(melt.Marker(name)) {
		return "melt." + name
	}
	return strconv.Quote(name)
}

// FactoryExpr renders the Factory of a struct component
func FactoryExpr(c models.ComponentMetadata) string {
	switch {
	case c.HasConstructor() && c.ConstructorError:
		return fmt.Sprintf("melt.ConstructE(%s)", c.Constructor)
	case c.HasConstructor():
		return fmt.Sprintf("melt.Construct(%s)", c.Constructor)
	default:
		return fmt.Sprintf("melt.Construct(func() *%s { return new(%s) })", c.StructName, c.StructName)
	}
}

// DependencyExpr renders an Autowire call for an injected field
func DependencyExpr(structName string, dep models.Dependency) string {
	setter := fmt.Sprintf("func(b *%s, d %s) { b.%s = d }", structName, dep.Type, dep.Field)
	if dep.Qualifier != "" {
		return fmt.Sprintf("melt.AutowireNamed(%q, %q, %s)", dep.Field, dep.Qualifier, setter)
	}
	return fmt.Sprintf("melt.Autowire(%q, %s)", dep.Field, setter)
}

// ParamSpecExprs renders the ParamSpecs of the bound handler parameters.
// Context parameters are passed from Invoke and have no spec.
func ParamSpecExprs(params []models.Parameter) []string {
	var exprs []string
	for _, p := range params {
		if p.Source == models.ParameterSourceContext {
			continue
		}
		scalar, _ := models.ScalarName(p.Type)
		var expr string
		switch p.Source {
		case models.ParameterSourcePath:
			expr = fmt.Sprintf("melt.PathParam(%q, melt.%s)", p.Name, scalar)
		case models.ParameterSourceQuery:
			if p.Default != nil {
				expr = fmt.Sprintf("melt.QueryParamDefault(%q, melt.%s, %q)", p.Name, scalar, *p.Default)
			} else {
				expr = fmt.Sprintf("melt.QueryParam(%q, melt.%s, %t)", p.Name, scalar, p.Required)
			}
		default:
			expr = fmt.Sprintf("melt.BodyParam(%q)", p.Name)
		}
		if p.Key != "" && p.Key != p.Name {
			expr += fmt.Sprintf(".WithKey(%q)", p.Key)
		}
		exprs = append(exprs, expr)
	}
	return exprs
}

// InvokeBody renders the statements of a route's Invoke function
func InvokeBody(structName string, route models.RouteMetadata) []string {
	var callArgs []string
	index := 0
	for _, p := range route.Parameters {
		if p.Source == models.ParameterSourceContext {
			callArgs = append(callArgs, "ctx")
			continue
		}
		scalar, _ := models.ScalarName(p.Type)
		callArgs = append(callArgs, fmt.Sprintf("args.%s(%d)", scalar, index))
		index++
	}
	call := fmt.Sprintf("bean.(*%s).%s(%s)", structName, route.HandlerName, strings.Join(callArgs, ", "))

	switch route.ReturnType.Type {
	case models.ReturnTypeValue:
		return []string{"return " + call + ", nil"}
	case models.ReturnTypeValueError:
		return []string{"return " + call}
	case models.ReturnTypeError:
		return []string{"return nil, " + call}
	default:
		return []string{call, "return nil, nil"}
	}
}

// GenerateComponentsSource renders the unformatted registration file of a package
func GenerateComponentsSource(metadata *models.PackageMetadata, namespace string) (string, error) {
	return NewTemplateRegistry().Execute("components-file", BuildComponentsFileData(metadata, namespace))
}
