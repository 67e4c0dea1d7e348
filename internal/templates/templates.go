package templates

import (
	"bytes"
	"fmt"
	"strings"
	"text/template"
)

// MeltImportPath is the import path of the runtime package generated code uses
const MeltImportPath = "github.com/melt-go/melt/pkg/melt"

// GeneratedHeader marks files owned by the generator
const GeneratedHeader = "// Code generated by melt. DO NOT EDIT."

// TemplateRegistry provides a centralized way to access all templates
type TemplateRegistry struct {
	templates map[string]string
}

// NewTemplateRegistry creates a new template registry with all templates
func NewTemplateRegistry() *TemplateRegistry {
	registry := &TemplateRegistry{
		templates: make(map[string]string),
	}
	registry.registerFileTemplates()
	registry.registerComponentTemplates()
	return registry
}

// Get retrieves a template by name
func (tr *TemplateRegistry) Get(name string) (string, bool) {
	tmpl, exists := tr.templates[name]
	return tmpl, exists
}

// MustGet retrieves a template by name, panics if not found
func (tr *TemplateRegistry) MustGet(name string) string {
	tmpl, exists := tr.templates[name]
	if !exists {
		panic("template not found: " + name)
	}
	return tmpl
}

// Execute renders the named template with data
func (tr *TemplateRegistry) Execute(name string, data any) (string, error) {
	root := template.New("melt").Funcs(template.FuncMap{"join": strings.Join})
	for templateName, text := range tr.templates {
		if _, err := root.New(templateName).Parse(text); err != nil {
			return "", fmt.Errorf("failed to parse template %s: %w", templateName, err)
		}
	}

	var buf bytes.Buffer
	if err := root.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to execute template %s: %w", name, err)
	}
	return buf.String(), nil
}

func (tr *TemplateRegistry) registerFileTemplates() {
	tr.templates["components-file"] = GeneratedHeader + `

package {{.PackageName}}

import (
{{- range .Imports}}
	{{if .Name}}{{.Name}} {{end}}"{{.Path}}"
{{- end}}
)

// RegisterComponents adds the components of package {{.PackageName}} to c
// under namespace {{.Namespace}}.
func RegisterComponents(c *melt.Catalog) {
{{- range .Stereotypes}}
	c.DefineStereotype({{printf "%q" .Name}}{{range .Of}}, {{.}}{{end}})
{{- end}}
{{- range .Components}}
{{template "component-loader" .}}
{{- end}}
}
`
}

func (tr *TemplateRegistry) registerComponentTemplates() {
	tr.templates["component-loader"] = `	c.Register({{printf "%q" .Namespace}}, func() (melt.Definition, error) {
		return melt.Definition{
			Name: {{printf "%q" .Name}},
			Kind: melt.{{.Kind}},
			Type: melt.TypeOf[{{.TypeExpr}}](),
{{- if .Markers}}
			Markers: []melt.Marker{ {{- join .Markers ", " -}} },
{{- end}}
{{- if .Factory}}
			Factory: {{.Factory}},
{{- end}}
{{- if .Dependencies}}
			Dependencies: []melt.Dependency{
{{- range .Dependencies}}
				{{.}},
{{- end}}
			},
{{- end}}
{{- if .Routes}}
			Routes: []melt.RouteSpec{
{{- range .Routes}}
{{template "route-spec" .}}
{{- end}}
			},
{{- end}}
		}, nil
	})`

	tr.templates["route-spec"] = `				{
					Method:  {{printf "%q" .Method}},
					Path:    {{printf "%q" .Path}},
					Handler: {{printf "%q" .Handler}},
{{- if .Params}}
					Params: []melt.ParamSpec{
{{- range .Params}}
						{{.}},
{{- end}}
					},
{{- end}}
					Invoke: func(ctx context.Context, bean any, args melt.Args) (any, error) {
{{- range .Body}}
						{{.}}
{{- end}}
					},
				},`
}
