package emit

import (
	"bytes"
	"errors"
	"fmt"
	"go/token"
	"path"
	"text/template"

	"golang.org/x/tools/imports"

	"ldtkgen/ldtk"
)

// DefaultModelImport is the import path of the ldtk model package.
const DefaultModelImport = "ldtkgen/ldtk"

// GeneratorConfig holds configuration for code generation.
type GeneratorConfig struct {
	// PackageName is the package clause of the generated file.
	PackageName string
	// FuncName is the exported accessor returning the project.
	FuncName string
	// VarName is the package-level OnceValue holding the project.
	VarName string
	// ModelImport is the import path of the ldtk package.
	ModelImport string
	// Filename is the name of the generated file.
	Filename string
	// Source names the project file in the generated header.
	Source string
	// OutputDir receives an .unformatted.go sidecar when formatting fails.
	OutputDir string
}

// DefaultGeneratorConfig returns the default generator configuration.
func DefaultGeneratorConfig() GeneratorConfig {
	return GeneratorConfig{
		PackageName: "levels",
		FuncName:    "Project",
		VarName:     "project",
		ModelImport: DefaultModelImport,
		Filename:    "project_gen.go",
	}
}

// Generator renders projects as Go source.
type Generator struct {
	config GeneratorConfig
}

// NewGenerator creates a new Generator with the given configuration.
func NewGenerator(config GeneratorConfig) *Generator {
	return &Generator{config: config}
}

// GeneratedFile represents a generated Go source file.
type GeneratedFile struct {
	// Filename is the name of the file (e.g., "project_gen.go").
	Filename string
	// Content is the formatted Go source code.
	Content []byte
}

// templateData holds everything the file template needs.
type templateData struct {
	Source      string
	PackageName string
	ModelAlias  string
	ModelImport string
	VarName     string
	FuncName    string
	Body        string
}

// Generate renders p. Any value that cannot be represented aborts the whole
// file with an *EmissionError.
func (g *Generator) Generate(p *ldtk.Project) (*GeneratedFile, error) {
	if p == nil {
		return nil, &EmissionError{Err: errors.New("project is nil")}
	}

	if err := g.checkConfig(); err != nil {
		return nil, &EmissionError{Err: err}
	}

	body, err := renderProject(p)
	if err != nil {
		return nil, err
	}

	data := &templateData{
		Source:      g.config.Source,
		PackageName: g.config.PackageName,
		ModelImport: g.config.ModelImport,
		VarName:     g.config.VarName,
		FuncName:    g.config.FuncName,
		Body:        body,
	}

	// The body always spells the package "ldtk".
	if path.Base(g.config.ModelImport) != modelPkg {
		data.ModelAlias = modelPkg
	}

	var buf bytes.Buffer
	if err := fileTemplate.Execute(&buf, data); err != nil {
		return nil, &EmissionError{Err: fmt.Errorf("executing template: %w", err)}
	}

	formatted, err := imports.Process(g.config.Filename, buf.Bytes(), &imports.Options{
		Comments:   true,
		TabIndent:  true,
		TabWidth:   8,
		FormatOnly: true,
	})
	if err != nil {
		if g.config.OutputDir != "" {
			_ = writeDebugUnformatted(g.config.OutputDir, g.config.Filename, buf.Bytes())
		}

		return nil, &EmissionError{Err: fmt.Errorf("formatting code: %w", err)}
	}

	return &GeneratedFile{
		Filename: g.config.Filename,
		Content:  formatted,
	}, nil
}

func (g *Generator) checkConfig() error {
	for _, id := range []struct{ what, name string }{
		{"package name", g.config.PackageName},
		{"accessor name", g.config.FuncName},
		{"variable name", g.config.VarName},
	} {
		if !token.IsIdentifier(id.name) {
			return fmt.Errorf("%s %q is not a valid Go identifier", id.what, id.name)
		}
	}

	if g.config.PackageName == "_" {
		return errors.New("package name must not be the blank identifier")
	}

	if g.config.FuncName == g.config.VarName {
		return fmt.Errorf("accessor and variable are both named %q", g.config.FuncName)
	}

	for _, name := range []string{g.config.FuncName, g.config.VarName} {
		if name == "_" || name == "init" || name == "main" || name == modelPkg || name == "sync" {
			return fmt.Errorf("name %q is reserved in the generated file", name)
		}
	}

	if g.config.ModelImport == "" {
		return errors.New("model import path is empty")
	}

	if g.config.Filename == "" {
		return errors.New("output filename is empty")
	}

	return nil
}

var fileTemplate = template.Must(template.New("project").Parse(`// Code generated by ldtkgen{{if .Source}} from {{.Source}}{{end}}. DO NOT EDIT.

package {{.PackageName}}

import (
	"sync"

	{{if .ModelAlias}}{{.ModelAlias}} {{end}}"{{.ModelImport}}"
)

// {{.VarName}} builds the project once, on first use. Entity field values are
// decoded from their embedded JSON at that point; everything else is literal.
var {{.VarName}} = sync.OnceValue(func() *ldtk.Project {
	return {{.Body}}
})

// {{.FuncName}} returns the compiled project. Every call returns the same
// value, which must be treated as read-only.
func {{.FuncName}}() *ldtk.Project {
	return {{.VarName}}()
}
`))
