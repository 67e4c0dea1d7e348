package parser

import (
	"errors"
	"fmt"
	"go/ast"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/melt-go/melt/internal/annotations"
	"github.com/melt-go/melt/internal/models"
)

// builtinMarkers maps component annotations to the marker names the runtime knows
var builtinMarkers = map[annotations.AnnotationType]string{
	annotations.ComponentAnnotation:      "Component",
	annotations.ServiceAnnotation:        "Service",
	annotations.RepositoryAnnotation:     "Repository",
	annotations.ControllerAnnotation:     "Controller",
	annotations.RestControllerAnnotation: "RestController",
}

// FileErrorHandler receives files that were skipped because they do not parse
type FileErrorHandler func(file string, err error)

// Parser extracts melt annotations from Go packages
type Parser struct {
	fileSet     *token.FileSet
	annotations annotations.ParserEngine
	onFileError FileErrorHandler
}

// NewParser creates a new annotation parser
func NewParser() *Parser {
	return &Parser{
		fileSet:     token.NewFileSet(),
		annotations: annotations.NewParser(),
	}
}

// SetFileErrorHandler installs the callback for files that fail to parse
func (p *Parser) SetFileErrorHandler(fn FileErrorHandler) {
	p.onFileError = fn
}

// ParseSource parses source code from a string
func (p *Parser) ParseSource(filename, source string) (*models.PackageMetadata, error) {
	file, err := parser.ParseFile(p.fileSet, filename, source, parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("failed to parse source: %w", err)
	}

	metadata := &models.PackageMetadata{
		PackageName: file.Name.Name,
		PackagePath: "./",
	}
	if err := p.processFiles(metadata, []namedFile{{name: filename, file: file}}); err != nil {
		return nil, err
	}
	return metadata, nil
}

// ParseDirectory parses the non-test Go files of one directory. Files that
// fail to parse are passed to the file error handler and skipped.
func (p *Parser) ParseDirectory(path string) (*models.PackageMetadata, error) {
	entries, err := os.ReadDir(path)
	if err != nil {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    path,
			Message: "failed to read directory",
			Cause:   err,
		}
	}

	var files []namedFile
	packageNames := map[string]bool{}
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || !isSourceFile(name) {
			continue
		}
		fileName := filepath.Join(path, name)
		file, err := parser.ParseFile(p.fileSet, fileName, nil, parser.ParseComments)
		if err != nil {
			if p.onFileError != nil {
				p.onFileError(fileName, err)
			}
			continue
		}
		packageNames[file.Name.Name] = true
		files = append(files, namedFile{name: fileName, file: file})
	}

	if len(files) == 0 {
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeFileSystem,
			File:    path,
			Message: "no Go packages found in directory",
		}
	}
	if len(packageNames) > 1 {
		names := make([]string, 0, len(packageNames))
		for name := range packageNames {
			names = append(names, name)
		}
		sort.Strings(names)
		return nil, &models.GeneratorError{
			Type:    models.ErrorTypeValidation,
			File:    path,
			Message: "multiple packages found in directory: " + strings.Join(names, ", "),
		}
	}

	metadata := &models.PackageMetadata{
		PackageName: files[0].file.Name.Name,
		PackagePath: path,
	}
	if err := p.processFiles(metadata, files); err != nil {
		return nil, err
	}
	return metadata, nil
}

// isSourceFile reports whether a file name belongs to the package proper
func isSourceFile(name string) bool {
	return strings.HasSuffix(name, ".go") &&
		!strings.HasSuffix(name, "_test.go") &&
		name != models.GeneratedFileName
}

type namedFile struct {
	name string
	file *ast.File
}

// handlerMethod is an annotated method waiting for its receiver type
type handlerMethod struct {
	receiver string
	decl     *ast.FuncDecl
	fileName string
	routes   []*annotations.ParsedAnnotation
	bindings []*annotations.ParsedAnnotation
}

// constructorFunc is a NewX function found in the package
type constructorFunc struct {
	name    string
	results []string
}

// packageScan accumulates declarations across the files of a package
type packageScan struct {
	components   []*models.ComponentMetadata
	byName       map[string]*models.ComponentMetadata
	methods      []handlerMethod
	constructors map[string]constructorFunc
	errs         []error
}

func (p *Parser) processFiles(metadata *models.PackageMetadata, files []namedFile) error {
	sort.Slice(files, func(i, j int) bool { return files[i].name < files[j].name })

	scan := &packageScan{
		byName:       map[string]*models.ComponentMetadata{},
		constructors: map[string]constructorFunc{},
	}

	for _, f := range files {
		imports := fileImports(f.file)
		for _, decl := range f.file.Decls {
			switch d := decl.(type) {
			case *ast.GenDecl:
				if d.Tok == token.TYPE {
					p.processTypeDecl(scan, metadata, d, f.name, imports)
				}
			case *ast.FuncDecl:
				p.processFuncDecl(scan, d, f.name)
			}
		}
	}

	for _, c := range scan.components {
		if c.Kind != models.KindStruct {
			continue
		}
		if ctor, ok := scan.constructors["New"+c.StructName]; ok {
			switch {
			case len(ctor.results) == 1 && ctor.results[0] == "*"+c.StructName:
				c.ConstructorTrait = models.ConstructorTrait{Constructor: ctor.name}
			case len(ctor.results) == 2 && ctor.results[0] == "*"+c.StructName && ctor.results[1] == "error":
				c.ConstructorTrait = models.ConstructorTrait{Constructor: ctor.name, ConstructorError: true}
			}
		}
	}

	for _, m := range scan.methods {
		p.attachHandler(scan, m)
	}

	for _, c := range scan.components {
		metadata.Components = append(metadata.Components, *c)
	}
	return errors.Join(scan.errs...)
}

func (p *Parser) processTypeDecl(scan *packageScan, metadata *models.PackageMetadata, decl *ast.GenDecl, fileName string, imports []models.Import) {
	for _, spec := range decl.Specs {
		typeSpec, ok := spec.(*ast.TypeSpec)
		if !ok {
			continue
		}
		doc := typeSpec.Doc
		if doc == nil && len(decl.Specs) == 1 {
			doc = decl.Doc
		}
		parsed := p.parseComments(scan, doc, fileName)
		if len(parsed) == 0 {
			continue
		}

		line := p.fileSet.Position(typeSpec.Pos()).Line
		var markers []string
		for _, ann := range parsed {
			switch {
			case ann.Type.IsComponentMarker():
				markers = append(markers, builtinMarkers[ann.Type])
			case ann.Type == annotations.MarkedAnnotation:
				markers = append(markers, ann.GetString("marker"))
			case ann.Type == annotations.StereotypeAnnotation:
				metadata.Stereotypes = append(metadata.Stereotypes, models.StereotypeMetadata{
					SourceTrait: models.SourceTrait{File: fileName, Line: line},
					Name:        typeSpec.Name.Name,
					Of:          ann.GetStringSlice("Of"),
				})
			default:
				scan.errs = append(scan.errs, misplaced(ann, "type "+typeSpec.Name.Name))
			}
		}
		if len(markers) == 0 {
			continue
		}

		if typeSpec.TypeParams != nil {
			scan.errs = append(scan.errs, &models.GeneratorError{
				Type:        models.ErrorTypeValidation,
				File:        fileName,
				Line:        line,
				Message:     fmt.Sprintf("component %s cannot be generic", typeSpec.Name.Name),
				Suggestions: []string{"Wrap the generic type in a concrete struct"},
			})
			continue
		}

		builder := models.NewMetadataBuilder(typeSpec.Name.Name, typeSpec.Name.Name).
			WithMarkers(markers...).
			WithImports(imports...).
			WithSource(fileName, line)

		switch t := typeSpec.Type.(type) {
		case *ast.StructType:
			builder.WithKind(models.KindStruct).WithDependencies(p.extractDependencies(scan, t, fileName)...)
		case *ast.InterfaceType:
			builder.WithKind(models.KindInterface)
		default:
			scan.errs = append(scan.errs, &models.GeneratorError{
				Type:        models.ErrorTypeValidation,
				File:        fileName,
				Line:        line,
				Message:     fmt.Sprintf("component %s must be a struct or an interface", typeSpec.Name.Name),
				Suggestions: []string{"Declare the component as type " + typeSpec.Name.Name + " struct{ ... }"},
			})
			continue
		}

		component := builder.Build()
		if _, dup := scan.byName[component.StructName]; dup {
			continue
		}
		scan.byName[component.StructName] = &component
		scan.components = append(scan.components, &component)
	}
}

// extractDependencies returns the autowired fields of a struct
func (p *Parser) extractDependencies(scan *packageScan, structType *ast.StructType, fileName string) []models.Dependency {
	var deps []models.Dependency
	for _, field := range structType.Fields.List {
		var autowired *annotations.ParsedAnnotation
		for _, ann := range append(p.parseComments(scan, field.Doc, fileName), p.parseComments(scan, field.Comment, fileName)...) {
			if ann.Type != annotations.AutowiredAnnotation {
				scan.errs = append(scan.errs, misplaced(ann, "a field"))
				continue
			}
			autowired = ann
		}
		if autowired == nil {
			continue
		}

		typeName := types.ExprString(field.Type)
		names := field.Names
		if len(names) == 0 {
			names = []*ast.Ident{ast.NewIdent(embeddedName(field.Type))}
		}
		for _, name := range names {
			deps = append(deps, models.Dependency{
				Field:     name.Name,
				Type:      typeName,
				Qualifier: autowired.GetString("Name"),
			})
		}
	}
	return deps
}

func (p *Parser) processFuncDecl(scan *packageScan, decl *ast.FuncDecl, fileName string) {
	if decl.Recv == nil {
		if strings.HasPrefix(decl.Name.Name, "New") && decl.Type.Params.NumFields() == 0 && decl.Type.TypeParams == nil {
			scan.constructors[decl.Name.Name] = constructorFunc{
				name:    decl.Name.Name,
				results: fieldTypes(decl.Type.Results),
			}
		}
		return
	}

	parsed := p.parseComments(scan, decl.Doc, fileName)
	if len(parsed) == 0 {
		return
	}

	method := handlerMethod{
		receiver: receiverName(decl.Recv.List[0].Type),
		decl:     decl,
		fileName: fileName,
	}
	for _, ann := range parsed {
		switch {
		case ann.Type.IsRoute():
			method.routes = append(method.routes, ann)
		case ann.Type.IsBinding():
			method.bindings = append(method.bindings, ann)
		default:
			scan.errs = append(scan.errs, misplaced(ann, "method "+decl.Name.Name))
		}
	}
	if len(method.routes) == 0 {
		line := p.fileSet.Position(decl.Pos()).Line
		scan.errs = append(scan.errs, &models.GeneratorError{
			Type:        models.ErrorTypeValidation,
			File:        fileName,
			Line:        line,
			Message:     fmt.Sprintf("method %s binds parameters but declares no route", decl.Name.Name),
			Suggestions: []string{"Add //melt::get <path> or //melt::route <VERB> <path> above the method"},
		})
		return
	}
	scan.methods = append(scan.methods, method)
}

// parseComments parses every melt annotation of a comment group
func (p *Parser) parseComments(scan *packageScan, group *ast.CommentGroup, fileName string) []*annotations.ParsedAnnotation {
	if group == nil {
		return nil
	}
	var parsed []*annotations.ParsedAnnotation
	for _, comment := range group.List {
		if !annotations.IsAnnotation(comment.Text) {
			continue
		}
		pos := p.fileSet.Position(comment.Pos())
		loc := annotations.SourceLocation{File: fileName, Line: pos.Line, Column: pos.Column}
		ann, err := p.annotations.ParseAnnotation(comment.Text, loc)
		if err != nil {
			scan.errs = append(scan.errs, err)
			continue
		}
		parsed = append(parsed, ann)
	}
	return parsed
}

func misplaced(ann *annotations.ParsedAnnotation, target string) error {
	return &models.GeneratorError{
		Type:    models.ErrorTypeAnnotationSyntax,
		File:    ann.Location.File,
		Line:    ann.Location.Line,
		Message: fmt.Sprintf("annotation %s cannot be applied to %s", ann.Type, target),
	}
}

func fileImports(file *ast.File) []models.Import {
	imports := make([]models.Import, 0, len(file.Imports))
	for _, spec := range file.Imports {
		path, err := strconv.Unquote(spec.Path.Value)
		if err != nil {
			continue
		}
		imp := models.Import{Path: path}
		if spec.Name != nil {
			imp.Name = spec.Name.Name
		}
		if imp.Name == "_" || imp.Name == "." {
			continue
		}
		imports = append(imports, imp)
	}
	return imports
}

func fieldTypes(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}
	var out []string
	for _, field := range list.List {
		n := len(field.Names)
		if n == 0 {
			n = 1
		}
		for range n {
			out = append(out, types.ExprString(field.Type))
		}
	}
	return out
}

func receiverName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return receiverName(t.X)
	case *ast.Ident:
		return t.Name
	case *ast.IndexExpr:
		return receiverName(t.X)
	case *ast.IndexListExpr:
		return receiverName(t.X)
	}
	return ""
}

func embeddedName(expr ast.Expr) string {
	switch t := expr.(type) {
	case *ast.StarExpr:
		return embeddedName(t.X)
	case *ast.SelectorExpr:
		return t.Sel.Name
	case *ast.Ident:
		return t.Name
	}
	return types.ExprString(expr)
}
