// Package ldtk is the compiled data model of an LDtk project.
//
// Values of these types are produced once by the ldtkgen compiler and then
// embedded into the consuming program as Go composite literals. Callers get
// the project through the generated accessor and must treat everything they
// reach from it as read-only.
//
// Cross references are soft keys resolved by lookup, never pointers:
//   - LayerInstance.TilesetRef and TileRect.TilesetUID name a TilesetDef.UID
//   - EntityInstance.Identifier names an EntityDef.Identifier
//
// The lookup helpers on Project scan the top-level sequences linearly. Build
// your own index if a hot path needs one.
//
// Entity field values are dynamically typed in the source format, so they are
// kept as Value trees rather than being typed by their declared type.
package ldtk
