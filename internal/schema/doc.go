// Package schema maps an untyped LDtk document onto the typed ldtk model.
//
// The mapping is shape-correct only: field presence, value kinds, unsigned
// numbers and coordinate pair arity are checked, and the first violation is
// returned as a *MismatchError. Cross references (tileset uids, entity
// identifiers) are not resolved here; Validate layers those checks on top.
//
// # Field names
//
// LDtk prefixes computed fields with a double underscore. They are renamed
// onto the plain model names:
//
//	__identifier     -> Identifier
//	__type           -> Type
//	__gridSize       -> GridSize
//	__cWid, __cHei   -> GridWidth, GridHeight
//	__tilesetDefUid  -> TilesetRef (optional)
//	pxWid, pxHei     -> Width, Height
//	relPath          -> RelativePath (optional)
//	px, src, f, t, d, a -> Position, Source, Flip, TileID, RenderOffset, Alpha
//	__value          -> Value (kept as an opaque value tree)
//
// Optional fields treat absent and null alike. Fields LDtk exports but the
// model does not carry are ignored.
package schema
