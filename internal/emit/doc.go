// Package emit turns a typed ldtk.Project into Go source that rebuilds it.
//
// The generated file declares a package-level sync.OnceValue holding one
// composite literal of the whole project, plus an accessor function. Every
// number, string, pair and sequence is literal data. Entity field values are
// the exception: their shape is unbounded, so each is embedded as canonical
// JSON text and decoded with ldtk.MustParseValue when the singleton is first
// built.
//
// Codegen patterns:
//   - Sequences of length zero are left out so they rebuild as nil slices,
//     matching what the schema mapper produces
//   - Known layer types use the ldtk constants, others a LayerType conversion
//   - Absent tileset references are left out (zero OptionalUID)
//
// Output is rendered with text/template and formatted with
// golang.org/x/tools/imports. Generation is deterministic: the same project
// and config always give byte-identical output.
package emit
