package generator

import (
	"fmt"
	"go/ast"
	"go/build"
	"go/parser"
	"go/token"
	"go/types"
	"os"
	"path/filepath"
	"strings"
)

// typeDecl is a type declared at package level.
type typeDecl struct {
	name       string
	typeParams []string
	alias      bool
	annotated  bool
	// receiver is false for interface and pointer types
	receiver bool
	iface    bool
	// embeds lists the embedded fields of a struct type by base type name,
	// "" for types from other packages.
	embeds []string
	// underlying is the package type a type definition like `type B A`
	// refers to. external marks `type B pkg.A`.
	underlying string
	external   bool
	pos        token.Position
}

// methodDecl is the part of a method declaration the generator cares about.
type methodDecl struct {
	name    string
	params  int
	results []string
	pos     token.Position
}

type parsedPackage struct {
	name    string
	types   map[string]*typeDecl
	methods map[string]map[string]methodDecl
}

// parseDir parses the non-test Go files in dir that match the current build
// context. The file named skip (the generator's own output) is ignored, as
// is any other file previously produced by ifempty-gen.
func parseDir(fset *token.FileSet, dir, skip string) (*parsedPackage, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	pkg := &parsedPackage{
		types:   make(map[string]*typeDecl),
		methods: make(map[string]map[string]methodDecl),
	}

	for _, entry := range entries {
		name := entry.Name()

		if entry.IsDir() || !strings.HasSuffix(name, ".go") || strings.HasSuffix(name, "_test.go") || name == skip {
			continue
		}

		match, err := build.Default.MatchFile(dir, name)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}

		if !match {
			continue
		}

		file, err := parser.ParseFile(fset, filepath.Join(dir, name), nil, parser.ParseComments|parser.SkipObjectResolution)
		if err != nil {
			return nil, err
		}

		if isOwnOutput(file) {
			continue
		}

		if pkg.name == "" {
			pkg.name = file.Name.Name
		} else if pkg.name != file.Name.Name {
			return nil, fmt.Errorf("%w: %s and %s", ErrMixedPackages, pkg.name, file.Name.Name)
		}

		pkg.collect(fset, file)
	}

	if pkg.name == "" {
		return nil, fmt.Errorf("%w in %s", ErrNoPackage, dir)
	}

	return pkg, nil
}

func (p *parsedPackage) collect(fset *token.FileSet, file *ast.File) {
	for _, decl := range file.Decls {
		switch decl := decl.(type) {
		case *ast.GenDecl:
			if decl.Tok != token.TYPE {
				continue
			}

			for _, spec := range decl.Specs {
				ts, ok := spec.(*ast.TypeSpec)
				if !ok {
					continue
				}

				td := &typeDecl{
					name:       ts.Name.Name,
					typeParams: fieldNames(ts.TypeParams),
					alias:      ts.Assign.IsValid(),
					annotated:  hasDirective(decl.Doc) || hasDirective(ts.Doc) || hasDirective(ts.Comment),
					receiver:   canReceive(ts.Type),
					pos:        fset.Position(ts.Pos()),
				}

				switch typ := ts.Type.(type) {
				case *ast.StructType:
					td.embeds = embeddedFields(typ.Fields)
				case *ast.InterfaceType:
					td.iface = true
				case *ast.SelectorExpr:
					td.external = true
				case *ast.Ident, *ast.IndexExpr, *ast.IndexListExpr, *ast.ParenExpr:
					td.underlying = receiverName(typ)
				}

				p.types[ts.Name.Name] = td
			}
		case *ast.FuncDecl:
			if decl.Recv == nil || len(decl.Recv.List) == 0 {
				continue
			}

			recv := receiverName(decl.Recv.List[0].Type)
			if recv == "" {
				continue
			}

			if p.methods[recv] == nil {
				p.methods[recv] = make(map[string]methodDecl)
			}

			p.methods[recv][decl.Name.Name] = methodDecl{
				name:    decl.Name.Name,
				params:  fieldCount(decl.Type.Params),
				results: fieldTypes(decl.Type.Results),
				pos:     fset.Position(decl.Pos()),
			}
		}
	}
}

// hasDirective reports whether the comment group contains the generate
// directive on a line of its own.
func hasDirective(group *ast.CommentGroup) bool {
	if group == nil {
		return false
	}

	for _, comment := range group.List {
		text := strings.TrimSpace(comment.Text)
		if text == Directive || strings.HasPrefix(text, Directive+" ") {
			return true
		}
	}

	return false
}

func isOwnOutput(file *ast.File) bool {
	if !ast.IsGenerated(file) || len(file.Comments) == 0 {
		return false
	}

	return strings.Contains(file.Comments[0].Text(), "by "+toolName+".")
}

// receiverName returns the base type name of a method receiver, stripping
// pointers and type arguments: *Foo[K, V] becomes Foo.
func receiverName(expr ast.Expr) string {
	for {
		switch e := expr.(type) {
		case *ast.StarExpr:
			expr = e.X
		case *ast.ParenExpr:
			expr = e.X
		case *ast.IndexExpr:
			expr = e.X
		case *ast.IndexListExpr:
			expr = e.X
		case *ast.Ident:
			return e.Name
		default:
			return ""
		}
	}
}

// embedded returns the embedded fields of name's underlying struct type,
// following type definitions within the package. ok is false when the
// underlying type isn't visible in the parsed source: interfaces, aliases,
// types from other packages and names the package doesn't declare.
func (p *parsedPackage) embedded(name string) (embeds []string, ok bool) {
	for range len(p.types) + 1 {
		decl, found := p.types[name]
		if !found || decl.iface || decl.alias || decl.external {
			return nil, false
		}

		if decl.underlying == "" {
			return decl.embeds, true
		}

		// predeclared, e.g. type T string
		if _, local := p.types[decl.underlying]; !local {
			return nil, true
		}

		name = decl.underlying
	}

	// a definition cycle doesn't compile anyway
	return nil, true
}

func embeddedFields(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}

	var out []string

	for _, field := range list.List {
		if len(field.Names) == 0 {
			out = append(out, receiverName(field.Type))
		}
	}

	return out
}

func canReceive(expr ast.Expr) bool {
	switch expr.(type) {
	case *ast.InterfaceType, *ast.StarExpr:
		return false
	default:
		return true
	}
}

func fieldNames(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}

	var names []string

	for _, field := range list.List {
		for _, name := range field.Names {
			names = append(names, name.Name)
		}
	}

	return names
}

func fieldCount(list *ast.FieldList) int {
	return len(fieldTypes(list))
}

// fieldTypes flattens a field list into one type string per entry, so
// (a, b int) yields [int int].
func fieldTypes(list *ast.FieldList) []string {
	if list == nil {
		return nil
	}

	var out []string

	for _, field := range list.List {
		typ := types.ExprString(field.Type)

		n := len(field.Names)
		if n == 0 {
			n = 1
		}

		for range n {
			out = append(out, typ)
		}
	}

	return out
}
