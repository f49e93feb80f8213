package emit

import (
	"go/ast"
	"go/parser"
	"go/token"
	"reflect"
	"strconv"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldtkgen/internal/document"
	"ldtkgen/internal/schema"
	"ldtkgen/ldtk"
)

// rebuild parses generated source and evaluates the project literal held by
// varName without compiling it.
func rebuild(t *testing.T, src []byte, varName string) *ldtk.Project {
	t.Helper()

	file, err := parser.ParseFile(token.NewFileSet(), "gen.go", src, 0)
	require.NoError(t, err)

	var body ast.Expr

	for _, decl := range file.Decls {
		gd, ok := decl.(*ast.GenDecl)
		if !ok || gd.Tok != token.VAR {
			continue
		}

		vs := gd.Specs[0].(*ast.ValueSpec)
		if vs.Names[0].Name != varName {
			continue
		}

		call := vs.Values[0].(*ast.CallExpr)
		assert.Equal(t, "sync.OnceValue", selector(call.Fun))

		fn := call.Args[0].(*ast.FuncLit)
		ret := fn.Body.List[0].(*ast.ReturnStmt)
		body = ret.Results[0]
	}

	require.NotNil(t, body, "no %s declaration", varName)

	var p *ldtk.Project
	eval(t, body, reflect.ValueOf(&p).Elem())

	return p
}

func selector(e ast.Expr) string {
	sel, ok := e.(*ast.SelectorExpr)
	if !ok {
		return ""
	}

	x, _ := sel.X.(*ast.Ident)
	if x == nil {
		return ""
	}

	return x.Name + "." + sel.Sel.Name
}

func eval(t *testing.T, expr ast.Expr, dst reflect.Value) {
	t.Helper()

	switch e := expr.(type) {
	case *ast.UnaryExpr:
		require.Equal(t, token.AND, e.Op)

		ptr := reflect.New(dst.Type().Elem())
		eval(t, e.X, ptr.Elem())
		dst.Set(ptr)
	case *ast.CompositeLit:
		switch dst.Kind() {
		case reflect.Struct:
			for _, elt := range e.Elts {
				kv := elt.(*ast.KeyValueExpr)
				name := kv.Key.(*ast.Ident).Name
				field := dst.FieldByName(name)
				require.True(t, field.IsValid(), "unknown field %s", name)
				eval(t, kv.Value, field)
			}
		case reflect.Slice:
			s := reflect.MakeSlice(dst.Type(), len(e.Elts), len(e.Elts))
			for i, elt := range e.Elts {
				eval(t, elt, s.Index(i))
			}

			dst.Set(s)
		case reflect.Array:
			require.Len(t, e.Elts, dst.Len())

			for i, elt := range e.Elts {
				eval(t, elt, dst.Index(i))
			}
		default:
			t.Fatalf("composite literal for %s", dst.Type())
		}
	case *ast.BasicLit:
		switch e.Kind {
		case token.INT:
			n, err := strconv.ParseUint(e.Value, 10, 64)
			require.NoError(t, err)
			dst.SetUint(n)
		case token.STRING:
			dst.SetString(unquote(t, e))
		default:
			t.Fatalf("unexpected literal %s", e.Value)
		}
	case *ast.SelectorExpr:
		consts := map[string]ldtk.LayerType{
			"ldtk.LayerTiles":     ldtk.LayerTiles,
			"ldtk.LayerEntities":  ldtk.LayerEntities,
			"ldtk.LayerIntGrid":   ldtk.LayerIntGrid,
			"ldtk.LayerAutoLayer": ldtk.LayerAutoLayer,
		}
		v, ok := consts[selector(e)]
		require.True(t, ok, "unknown constant %s", selector(e))
		dst.Set(reflect.ValueOf(v))
	case *ast.CallExpr:
		require.Len(t, e.Args, 1)

		switch selector(e.Fun) {
		case "ldtk.SomeUID":
			var uid uint32
			eval(t, e.Args[0], reflect.ValueOf(&uid).Elem())
			dst.Set(reflect.ValueOf(ldtk.SomeUID(uid)))
		case "ldtk.MustParseValue":
			dst.Set(reflect.ValueOf(ldtk.MustParseValue(unquote(t, e.Args[0].(*ast.BasicLit)))))
		case "ldtk.LayerType":
			dst.SetString(unquote(t, e.Args[0].(*ast.BasicLit)))
		default:
			t.Fatalf("unexpected call %s", selector(e.Fun))
		}
	default:
		t.Fatalf("unexpected expression %T", expr)
	}
}

func unquote(t *testing.T, lit *ast.BasicLit) string {
	t.Helper()

	s, err := strconv.Unquote(lit.Value)
	require.NoError(t, err)

	return s
}

func TestGenerate_RoundTrip(t *testing.T) {
	doc, err := document.Load("../../examples/demo/project.ldtk.json")
	require.NoError(t, err)

	demo, err := schema.Map(doc)
	require.NoError(t, err)

	tests := []struct {
		name    string
		project *ldtk.Project
	}{
		{name: "demo", project: demo},
		{name: "scenario", project: scenarioProject()},
		{name: "empty", project: &ldtk.Project{}},
		{name: "values", project: &ldtk.Project{Levels: []ldtk.Level{{
			Identifier: "V",
			Layers: []ldtk.LayerInstance{{
				Identifier: "E",
				Type:       ldtk.LayerEntities,
				TilesetRef: ldtk.SomeUID(0),
				Entities: []ldtk.EntityInstance{{
					Identifier: "Any",
					Fields: []ldtk.FieldInstance{
						{Identifier: "null", Value: ldtk.NullValue()},
						{Identifier: "whole float", Value: ldtk.FloatValue(2)},
						{Identifier: "big", Value: ldtk.FloatValue(1e300)},
						{Identifier: "negative", Value: ldtk.IntValue(-7)},
						{Identifier: "empty array", Value: ldtk.ArrayValue()},
						{Identifier: "empty object", Value: ldtk.ObjectValue(nil)},
						{Identifier: "unicode", Value: ldtk.StringValue("é 世界  ")},
						{Identifier: "nested", Value: ldtk.MustParseValue(`{"b": [true, {"c": null}], "a": ""}`)},
					},
				}},
			}},
		}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			file, err := NewGenerator(DefaultGeneratorConfig()).Generate(tt.project)
			require.NoError(t, err)

			assert.Equal(t, tt.project, rebuild(t, file.Content, "project"))
		})
	}
}
