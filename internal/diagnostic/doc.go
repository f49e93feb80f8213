// Package diagnostic collects the findings of the project validation pass.
//
// Findings carry a stable code (e.g. "unresolved_layer_tileset"), the JSON
// path of the offending entity and a message. Errors fail a strict build,
// warnings are only logged.
package diagnostic
