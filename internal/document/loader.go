package document

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"ldtkgen/ldtk"
)

// IOError reports a project file that could not be opened or read.
type IOError struct {
	Path string
	Err  error
}

func (e *IOError) Error() string {
	return fmt.Sprintf("reading %s: %v", e.Path, e.Err)
}

func (e *IOError) Unwrap() error {
	return e.Err
}

// MalformedInputError reports a project file that is not valid JSON.
// Offset is the byte offset of the problem when known, -1 otherwise.
type MalformedInputError struct {
	Path   string
	Offset int64
	Err    error
}

func (e *MalformedInputError) Error() string {
	if e.Offset >= 0 {
		return fmt.Sprintf("parsing %s at offset %d: %v", e.Path, e.Offset, e.Err)
	}

	return fmt.Sprintf("parsing %s: %v", e.Path, e.Err)
}

func (e *MalformedInputError) Unwrap() error {
	return e.Err
}

// Load reads and parses the project file at path.
func Load(path string) (ldtk.Value, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return ldtk.Value{}, &IOError{Path: path, Err: err}
	}

	return Parse(path, data)
}

// Parse parses data as a JSON document. name only labels errors.
func Parse(name string, data []byte) (ldtk.Value, error) {
	dec := json.NewDecoder(bytes.NewReader(data))

	doc, err := ldtk.DecodeValue(dec)
	if err != nil {
		offset := int64(-1)

		var (
			syntaxErr   *json.SyntaxError
			trailingErr *ldtk.TrailingDataError
		)

		switch {
		case errors.As(err, &syntaxErr):
			offset = syntaxErr.Offset
		case errors.As(err, &trailingErr):
			offset = trailingErr.Offset
		}

		return ldtk.Value{}, &MalformedInputError{Path: name, Offset: offset, Err: err}
	}

	return doc, nil
}
