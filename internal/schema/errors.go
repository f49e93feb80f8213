package schema

import (
	"fmt"
	"math"
	"strconv"

	"ldtkgen/ldtk"
)

// MismatchError reports a document that is valid JSON but does not have the
// shape of an LDtk project.
type MismatchError struct {
	// Path is the JSON path of the offending value, e.g.
	// "levels[0].layerInstances[1].gridTiles[3].px".
	Path string
	// Field is the source field name, empty for array items and the root.
	Field    string
	Expected string
	Got      string
}

func (e *MismatchError) Error() string {
	path := e.Path
	if path == "" {
		path = "document root"
	}

	return fmt.Sprintf("schema mismatch at %s: expected %s, got %s", path, e.Expected, e.Got)
}

func mismatch(path, field, expected, got string) *MismatchError {
	return &MismatchError{Path: path, Field: field, Expected: expected, Got: got}
}

// describe names what a value is for error messages.
func describe(v ldtk.Value) string {
	switch v.Kind() {
	case ldtk.KindBool:
		b, _ := v.Bool()
		return "bool " + strconv.FormatBool(b)
	case ldtk.KindInt:
		i, _ := v.Int()
		return "integer " + strconv.FormatInt(i, 10)
	case ldtk.KindFloat:
		f, _ := v.Float()
		return "number " + strconv.FormatFloat(f, 'g', -1, 64)
	case ldtk.KindString:
		s, _ := v.Str()
		return "string " + strconv.Quote(s)
	case ldtk.KindArray:
		return fmt.Sprintf("array of %d", v.Len())
	default:
		return v.Kind().String()
	}
}

func joinPath(path, key string) string {
	if path == "" {
		return key
	}

	return path + "." + key
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

// toUint32 accepts integers and integral floats in the uint32 range.
func toUint32(v ldtk.Value, path, field string) (uint32, error) {
	const expected = "unsigned integer"

	switch v.Kind() {
	case ldtk.KindInt:
		i, _ := v.Int()
		if i < 0 || i > math.MaxUint32 {
			return 0, mismatch(path, field, expected, describe(v))
		}

		return uint32(i), nil

	case ldtk.KindFloat:
		f, _ := v.Float()
		if f != math.Trunc(f) || f < 0 || f > math.MaxUint32 {
			return 0, mismatch(path, field, expected, describe(v))
		}

		return uint32(f), nil

	default:
		return 0, mismatch(path, field, expected, describe(v))
	}
}
