package emit

import (
	"fmt"
	"os"
	"path/filepath"
)

// File permission constants.
const (
	dirPerm  = 0o755
	filePerm = 0o644
)

// WriteFile writes a generated file into outputDir, creating the directory
// if needed. The file is written to a temporary name first and renamed, so a
// failed write never leaves a truncated artifact behind.
func WriteFile(file *GeneratedFile, outputDir string) error {
	if err := os.MkdirAll(outputDir, dirPerm); err != nil {
		return fmt.Errorf("creating output directory: %w", err)
	}

	tmp, err := os.CreateTemp(outputDir, "."+file.Filename+".*.tmp")
	if err != nil {
		return fmt.Errorf("creating temporary file: %w", err)
	}

	tmpName := tmp.Name()
	defer os.Remove(tmpName)

	if _, err := tmp.Write(file.Content); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := tmp.Chmod(filePerm); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := tmp.Close(); err != nil {
		return fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	if err := os.Rename(tmpName, filepath.Join(outputDir, file.Filename)); err != nil {
		return fmt.Errorf("writing file %s: %w", file.Filename, err)
	}

	return nil
}
