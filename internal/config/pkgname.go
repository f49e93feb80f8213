package config

import (
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"golang.org/x/tools/go/packages"

	"ldtkgen/internal/emit"
)

// loadMode only needs the package clause of existing files.
const loadMode = packages.NeedName | packages.NeedFiles

// PackageName returns the package clause for the generated file: the
// configured name, else the name of the Go package already living in the
// output directory, else a name derived from the directory itself.
func (c *Config) PackageName() string {
	if c.Package != "" {
		return c.Package
	}

	dir := filepath.Dir(c.Output)

	if name := existingPackage(dir, filepath.Base(c.Output)); name != "" {
		return name
	}

	return sanitizePackage(filepath.Base(absDir(dir)))
}

// existingPackage loads the package in dir, ignoring the file about to be
// regenerated so a stale or broken copy cannot decide its own name.
func existingPackage(dir, generated string) string {
	if _, err := os.Stat(dir); err != nil {
		return ""
	}

	cfg := &packages.Config{
		Mode: loadMode,
		Dir:  dir,
	}

	pkgs, err := packages.Load(cfg, ".")
	if err != nil {
		return ""
	}

	for _, pkg := range pkgs {
		if pkg.Name == "" || strings.HasSuffix(pkg.Name, "_test") {
			continue
		}

		for _, f := range pkg.GoFiles {
			if filepath.Base(f) != generated {
				return pkg.Name
			}
		}
	}

	return ""
}

func absDir(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}

	return dir
}

// sanitizePackage turns a directory name into a usable package name.
func sanitizePackage(base string) string {
	var sb strings.Builder

	for _, r := range strings.ToLower(base) {
		switch {
		case r == '_' || unicode.IsLetter(r) || (unicode.IsDigit(r) && sb.Len() > 0):
			sb.WriteRune(r)
		case r == '-' || r == '.' || r == ' ':
			if sb.Len() > 0 {
				sb.WriteByte('_')
			}
		}
	}

	name := strings.Trim(sb.String(), "_")
	if !token.IsIdentifier(name) || token.IsKeyword(name) || name == "main" {
		return emit.DefaultGeneratorConfig().PackageName
	}

	return name
}
