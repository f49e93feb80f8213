package schema

import (
	"ldtkgen/internal/diagnostic"
	"ldtkgen/ldtk"
)

// Diagnostic codes reported by Validate.
const (
	CodeDuplicateTilesetUID       = "duplicate_tileset_uid"
	CodeDuplicateEntityIdentifier = "duplicate_entity_identifier"
	CodeDuplicateEnumIdentifier   = "duplicate_enum_identifier"
	CodeDuplicateLevelIdentifier  = "duplicate_level_identifier"
	CodeUnresolvedLayerTileset    = "unresolved_layer_tileset"
	CodeDanglingLayerTileset      = "dangling_layer_tileset"
	CodeUnknownEntity             = "unknown_entity"
	CodeUnresolvedEnumTileset     = "unresolved_enum_tileset"
	CodeFieldTypeMismatch         = "field_type_mismatch"
)

// ValidateOptions tunes the validation pass.
type ValidateOptions struct {
	// CheckFieldTypes compares every field value with its declared type.
	CheckFieldTypes bool
}

// Validate checks the soft references and key uniqueness of a mapped
// project. Paths in the findings use the source document's field names.
func Validate(p *ldtk.Project, opts ValidateOptions) *diagnostic.Diagnostics {
	res := &diagnostic.Diagnostics{}
	if p == nil {
		res.AddError("project_is_nil", "", "project is nil")
		return res
	}

	tilesets := make(map[uint32]struct{}, len(p.Tilesets))

	for i, ts := range p.Tilesets {
		if _, ok := tilesets[ts.UID]; ok {
			res.AddError(CodeDuplicateTilesetUID, indexPath("defs.tilesets", i),
				"tileset uid %d is already used", ts.UID)

			continue
		}

		tilesets[ts.UID] = struct{}{}
	}

	entityDefs := make(map[string]struct{}, len(p.EntityDefs))

	for i, def := range p.EntityDefs {
		if _, ok := entityDefs[def.Identifier]; ok {
			res.AddError(CodeDuplicateEntityIdentifier, indexPath("defs.entities", i),
				"entity identifier %q is already used", def.Identifier)

			continue
		}

		entityDefs[def.Identifier] = struct{}{}
	}

	enums := make(map[string]struct{}, len(p.EnumDefs))

	for i, def := range p.EnumDefs {
		path := indexPath("defs.enums", i)

		if _, ok := enums[def.Identifier]; ok {
			res.AddError(CodeDuplicateEnumIdentifier, path,
				"enum identifier %q is already used", def.Identifier)
		}

		enums[def.Identifier] = struct{}{}

		for j, val := range def.Values {
			if _, ok := tilesets[val.TileRect.TilesetUID]; !ok {
				res.AddWarning(CodeUnresolvedEnumTileset, indexPath(path+".values", j)+".tileRect",
					"enum value %s.%s uses unknown tileset uid %d", def.Identifier, val.ID, val.TileRect.TilesetUID)
			}
		}
	}

	levels := make(map[string]struct{}, len(p.Levels))

	for i, lvl := range p.Levels {
		path := indexPath("levels", i)

		if _, ok := levels[lvl.Identifier]; ok {
			res.AddError(CodeDuplicateLevelIdentifier, path,
				"level identifier %q is already used", lvl.Identifier)
		}

		levels[lvl.Identifier] = struct{}{}

		for j := range lvl.Layers {
			validateLayer(res, indexPath(path+".layerInstances", j), &lvl.Layers[j], tilesets, entityDefs, opts)
		}
	}

	return res
}

func validateLayer(
	res *diagnostic.Diagnostics,
	path string,
	layer *ldtk.LayerInstance,
	tilesets map[uint32]struct{},
	entityDefs map[string]struct{},
	opts ValidateOptions,
) {
	uid, hasRef := layer.TilesetRef.Get()
	_, resolved := tilesets[uid]
	resolved = resolved && hasRef

	switch {
	case layer.IsTiles() && len(layer.Tiles) > 0 && !hasRef:
		res.AddError(CodeUnresolvedLayerTileset, path,
			"tile layer %q has %d tiles but no tileset", layer.Identifier, len(layer.Tiles))
	case layer.IsTiles() && len(layer.Tiles) > 0 && !resolved:
		res.AddError(CodeUnresolvedLayerTileset, path,
			"tile layer %q uses unknown tileset uid %d", layer.Identifier, uid)
	case hasRef && !resolved:
		res.AddWarning(CodeDanglingLayerTileset, path,
			"layer %q references unknown tileset uid %d", layer.Identifier, uid)
	}

	for k := range layer.Entities {
		ent := &layer.Entities[k]
		entPath := indexPath(path+".entityInstances", k)

		if _, ok := entityDefs[ent.Identifier]; !ok {
			res.AddWarning(CodeUnknownEntity, entPath,
				"entity %q has no definition", ent.Identifier)
		}

		if !opts.CheckFieldTypes {
			continue
		}

		for f, field := range ent.Fields {
			if expected, ok := matchesDeclaredType(field.Type, field.Value); !ok {
				res.AddWarning(CodeFieldTypeMismatch, indexPath(entPath+".fieldInstances", f),
					"field %q declared %s holds %s, expected %s",
					field.Identifier, field.Type, describe(field.Value), expected)
			}
		}
	}
}
