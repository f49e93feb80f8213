// Package compiler runs the ldtkgen pipeline: load the project document, map
// it onto the model, validate it and emit the generated Go file. Every phase
// must succeed before anything is written.
package compiler

import (
	"fmt"
	"io"
	"path/filepath"

	"github.com/sirupsen/logrus"

	"ldtkgen/internal/config"
	"ldtkgen/internal/diagnostic"
	"ldtkgen/internal/document"
	"ldtkgen/internal/emit"
	"ldtkgen/internal/schema"
	"ldtkgen/ldtk"
)

// ValidationError is returned in strict mode when validation finds errors.
type ValidationError struct {
	Diagnostics *diagnostic.Diagnostics
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed: %v", e.Diagnostics.Err())
}

// Result describes a finished run.
type Result struct {
	Project     *ldtk.Project
	Diagnostics *diagnostic.Diagnostics
	// File is nil for Check.
	File *emit.GeneratedFile
	// Path is where File was written.
	Path string
}

// Compiler runs builds for one configuration.
type Compiler struct {
	config *config.Config
	logger *logrus.Logger
}

// New creates a Compiler. A nil logger discards output.
func New(cfg *config.Config, logger *logrus.Logger) *Compiler {
	if logger == nil {
		logger = logrus.New()
		logger.SetOutput(io.Discard)
	}

	return &Compiler{config: cfg, logger: logger}
}

// Load reads and maps the input document without validating it.
func (c *Compiler) Load() (*ldtk.Project, error) {
	doc, err := document.Load(c.config.Input)
	if err != nil {
		return nil, err
	}

	p, err := schema.Map(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", c.config.Input, err)
	}

	c.logger.Infof("loaded %s: %d levels, %d tilesets, %d entity defs, %d enums",
		filepath.Base(c.config.Input), len(p.Levels), len(p.Tilesets), len(p.EntityDefs), len(p.EnumDefs))

	return p, nil
}

// Check loads, maps and validates the input. Nothing is generated.
func (c *Compiler) Check() (*Result, error) {
	if err := c.config.ValidateSource(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	p, err := c.Load()
	if err != nil {
		return nil, err
	}

	diags, err := c.validate(p)
	if err != nil {
		return nil, err
	}

	return &Result{Project: p, Diagnostics: diags}, nil
}

// Build runs the whole pipeline and writes the generated file.
func (c *Compiler) Build() (*Result, error) {
	if err := c.config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}

	res, err := c.Check()
	if err != nil {
		return nil, err
	}

	gen := emit.NewGenerator(c.config.Generator(c.config.PackageName()))

	file, err := gen.Generate(res.Project)
	if err != nil {
		return nil, err
	}

	dir := filepath.Dir(c.config.Output)
	if err := emit.WriteFile(file, dir); err != nil {
		return nil, err
	}

	res.File = file
	res.Path = filepath.Join(dir, file.Filename)

	c.logger.Infof("wrote %s (%d bytes)", res.Path, len(file.Content))

	return res, nil
}

// validate applies the configured validation mode. Warnings are always
// logged; errors are logged in warn mode and returned in strict mode.
func (c *Compiler) validate(p *ldtk.Project) (*diagnostic.Diagnostics, error) {
	if c.config.Mode == config.ModeOff {
		return &diagnostic.Diagnostics{}, nil
	}

	diags := schema.Validate(p, schema.ValidateOptions{CheckFieldTypes: c.config.CheckFieldTypes})

	for _, w := range diags.Warnings {
		c.logger.Warnf("%s", w)
	}

	if !diags.HasErrors() {
		return diags, nil
	}

	if c.config.Mode == config.ModeStrict {
		return nil, &ValidationError{Diagnostics: diags}
	}

	for _, e := range diags.Errors {
		c.logger.Errorf("%s (ignored)", e)
	}

	return diags, nil
}
