// Package config loads the ldtkgen build configuration.
package config

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"ldtkgen/internal/emit"
)

// Mode selects how validation findings affect a build.
type Mode string

const (
	// ModeStrict aborts the build on any validation error.
	ModeStrict Mode = "strict"
	// ModeWarn logs every finding and builds anyway.
	ModeWarn Mode = "warn"
	// ModeOff skips validation.
	ModeOff Mode = "off"
)

// Config is the build configuration. Paths are absolute after LoadFile and
// relative to the working directory when parsed directly.
type Config struct {
	Input           string `yaml:"input"`
	Output          string `yaml:"output"`
	Package         string `yaml:"package,omitempty"`
	Func            string `yaml:"func,omitempty"`
	Var             string `yaml:"var,omitempty"`
	Model           string `yaml:"model,omitempty"`
	Mode            Mode   `yaml:"validate,omitempty"`
	CheckFieldTypes bool   `yaml:"check_field_types,omitempty"`
}

// Default returns a configuration with every optional key filled in.
func Default() *Config {
	c := &Config{}
	applyDefaults(c)

	return c
}

// LoadFile loads and parses a YAML config file. Relative input and output
// paths are resolved against the file's directory.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	c, err := Parse(data)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}

	base := filepath.Dir(path)
	c.Input = resolve(base, c.Input)
	c.Output = resolve(base, c.Output)

	return c, nil
}

// Parse parses YAML data into a Config. Unknown keys are rejected.
func Parse(data []byte) (*Config, error) {
	var c Config

	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)

	if err := dec.Decode(&c); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("failed to parse config YAML: %w", err)
	}

	applyDefaults(&c)

	return &c, nil
}

// applyDefaults fills in default values for optional fields. The package
// name is left empty; PackageName resolves it once the output is known.
func applyDefaults(c *Config) {
	def := emit.DefaultGeneratorConfig()

	if c.Func == "" {
		c.Func = def.FuncName
	}

	if c.Var == "" {
		c.Var = def.VarName
	}

	if c.Model == "" {
		c.Model = def.ModelImport
	}

	if c.Mode == "" {
		c.Mode = ModeStrict
	}
}

// Validate reports configuration that cannot drive a build.
func (c *Config) Validate() error {
	var errs []error

	if err := c.ValidateSource(); err != nil {
		errs = append(errs, err)
	}

	if c.Output == "" {
		errs = append(errs, errors.New("output is required"))
	} else if filepath.Ext(c.Output) != ".go" {
		errs = append(errs, fmt.Errorf("output %q must be a .go file", c.Output))
	}

	return errors.Join(errs...)
}

// ValidateSource checks only what loading and validating the input needs.
func (c *Config) ValidateSource() error {
	var errs []error

	if c.Input == "" {
		errs = append(errs, errors.New("input is required"))
	}

	switch c.Mode {
	case ModeStrict, ModeWarn, ModeOff:
	default:
		errs = append(errs, fmt.Errorf("unknown validate mode %q (want strict, warn or off)", c.Mode))
	}

	return errors.Join(errs...)
}

// Marshal serializes a Config to YAML.
func Marshal(c *Config) ([]byte, error) {
	return yaml.Marshal(c)
}

// Generator returns the emitter configuration for c.
func (c *Config) Generator(pkgName string) emit.GeneratorConfig {
	return emit.GeneratorConfig{
		PackageName: pkgName,
		FuncName:    c.Func,
		VarName:     c.Var,
		ModelImport: c.Model,
		Filename:    filepath.Base(c.Output),
		Source:      filepath.Base(c.Input),
		OutputDir:   filepath.Dir(c.Output),
	}
}

func resolve(base, p string) string {
	if p == "" || filepath.IsAbs(p) {
		return p
	}

	return filepath.Join(base, p)
}
