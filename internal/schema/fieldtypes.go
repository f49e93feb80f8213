package schema

import (
	"strings"

	"ldtkgen/ldtk"
)

// matchesDeclaredType reports whether v has the shape LDtk uses for the
// declared field type. Null always matches since LDtk fields are nullable.
// Unknown type names match anything.
func matchesDeclaredType(declared string, v ldtk.Value) (string, bool) {
	if v.IsNull() {
		return "", true
	}

	if inner, ok := strings.CutPrefix(declared, "Array<"); ok && strings.HasSuffix(inner, ">") {
		inner = strings.TrimSuffix(inner, ">")
		if v.Kind() != ldtk.KindArray {
			return "array", false
		}

		for _, item := range v.Items() {
			if expected, ok := matchesDeclaredType(inner, item); !ok {
				return "array of " + expected, false
			}
		}

		return "", true
	}

	switch {
	case declared == "Int":
		return "integer", v.Kind() == ldtk.KindInt
	case declared == "Float":
		return "number", v.Kind() == ldtk.KindInt || v.Kind() == ldtk.KindFloat
	case declared == "Bool":
		return "bool", v.Kind() == ldtk.KindBool
	case declared == "String", declared == "Multilines", declared == "Color", declared == "FilePath",
		strings.HasPrefix(declared, "LocalEnum."), strings.HasPrefix(declared, "ExternEnum."):
		return "string", v.Kind() == ldtk.KindString
	case declared == "Point":
		return "point object", isPoint(v)
	case declared == "EntityRef", declared == "Tile":
		return "object", v.Kind() == ldtk.KindObject
	default:
		return "", true
	}
}

func isPoint(v ldtk.Value) bool {
	cx, okX := v.Get("cx")
	cy, okY := v.Get("cy")

	return okX && okY && cx.Kind() == ldtk.KindInt && cy.Kind() == ldtk.KindInt
}
