package schema

import (
	"ldtkgen/ldtk"
)

// maxFlip is the largest valid GridTile flip bitfield (both axes).
const maxFlip = 3

// Map projects an LDtk document onto the typed model. The first shape
// violation found is returned as a *MismatchError.
func Map(doc ldtk.Value) (*ldtk.Project, error) {
	root, err := asObject(doc, "", "")
	if err != nil {
		return nil, err
	}

	defs, err := root.object("defs")
	if err != nil {
		return nil, err
	}

	p := &ldtk.Project{}

	tilesets, err := defs.array("tilesets")
	if err != nil {
		return nil, err
	}

	if p.Tilesets, err = mapEach(tilesets, mapTileset); err != nil {
		return nil, err
	}

	entities, err := defs.array("entities")
	if err != nil {
		return nil, err
	}

	if p.EntityDefs, err = mapEach(entities, mapEntityDef); err != nil {
		return nil, err
	}

	enums, err := defs.array("enums")
	if err != nil {
		return nil, err
	}

	if p.EnumDefs, err = mapEach(enums, mapEnumDef); err != nil {
		return nil, err
	}

	levels, err := root.array("levels")
	if err != nil {
		return nil, err
	}

	if p.Levels, err = mapEach(levels, mapLevel); err != nil {
		return nil, err
	}

	return p, nil
}

func mapTileset(o object) (ldtk.TilesetDef, error) {
	var (
		ts  ldtk.TilesetDef
		err error
	)

	if ts.UID, err = o.uint("uid"); err != nil {
		return ts, err
	}

	if ts.RelativePath, err = o.optStr("relPath"); err != nil {
		return ts, err
	}

	if ts.Width, err = o.uint("pxWid"); err != nil {
		return ts, err
	}

	if ts.Height, err = o.uint("pxHei"); err != nil {
		return ts, err
	}

	ts.TileGridSize, err = o.uint("tileGridSize")

	return ts, err
}

func mapEntityDef(o object) (ldtk.EntityDef, error) {
	var (
		def ldtk.EntityDef
		err error
	)

	if def.Identifier, err = o.str("identifier"); err != nil {
		return def, err
	}

	if def.UID, err = o.uint("uid"); err != nil {
		return def, err
	}

	if def.Width, err = o.uint("width"); err != nil {
		return def, err
	}

	def.Height, err = o.uint("height")

	return def, err
}

func mapEnumDef(o object) (ldtk.EnumDef, error) {
	var (
		def ldtk.EnumDef
		err error
	)

	if def.Identifier, err = o.str("identifier"); err != nil {
		return def, err
	}

	if def.UID, err = o.uint("uid"); err != nil {
		return def, err
	}

	values, err := o.array("values")
	if err != nil {
		return def, err
	}

	def.Values, err = mapEach(values, mapEnumValue)

	return def, err
}

func mapEnumValue(o object) (ldtk.EnumValueDef, error) {
	var (
		val ldtk.EnumValueDef
		err error
	)

	if val.ID, err = o.str("id"); err != nil {
		return val, err
	}

	rect, err := o.object("tileRect")
	if err != nil {
		return val, err
	}

	val.TileRect, err = mapTileRect(rect)

	return val, err
}

func mapTileRect(o object) (ldtk.TileRect, error) {
	var (
		r   ldtk.TileRect
		err error
	)

	if r.TilesetUID, err = o.uint("tilesetUid"); err != nil {
		return r, err
	}

	if r.X, err = o.uint("x"); err != nil {
		return r, err
	}

	if r.Y, err = o.uint("y"); err != nil {
		return r, err
	}

	if r.W, err = o.uint("w"); err != nil {
		return r, err
	}

	r.H, err = o.uint("h")

	return r, err
}

func mapLevel(o object) (ldtk.Level, error) {
	var (
		lvl ldtk.Level
		err error
	)

	if lvl.Identifier, err = o.str("identifier"); err != nil {
		return lvl, err
	}

	if lvl.Width, err = o.uint("pxWid"); err != nil {
		return lvl, err
	}

	if lvl.Height, err = o.uint("pxHei"); err != nil {
		return lvl, err
	}

	layers, err := o.array("layerInstances")
	if err != nil {
		return lvl, err
	}

	lvl.Layers, err = mapEach(layers, mapLayer)

	return lvl, err
}

func mapLayer(o object) (ldtk.LayerInstance, error) {
	var (
		layer ldtk.LayerInstance
		err   error
	)

	if layer.Identifier, err = o.str("__identifier"); err != nil {
		return layer, err
	}

	typ, err := o.str("__type")
	if err != nil {
		return layer, err
	}

	layer.Type = ldtk.LayerType(typ)

	if layer.GridSize, err = o.uint("__gridSize"); err != nil {
		return layer, err
	}

	if layer.GridWidth, err = o.uint("__cWid"); err != nil {
		return layer, err
	}

	if layer.GridHeight, err = o.uint("__cHei"); err != nil {
		return layer, err
	}

	if layer.TilesetRef, err = o.optUID("__tilesetDefUid"); err != nil {
		return layer, err
	}

	tiles, err := o.array("gridTiles")
	if err != nil {
		return layer, err
	}

	if layer.Tiles, err = mapEach(tiles, mapGridTile); err != nil {
		return layer, err
	}

	entities, err := o.array("entityInstances")
	if err != nil {
		return layer, err
	}

	layer.Entities, err = mapEach(entities, mapEntityInstance)

	return layer, err
}

func mapGridTile(o object) (ldtk.GridTile, error) {
	var (
		tile ldtk.GridTile
		err  error
	)

	if tile.Position, err = o.pair("px"); err != nil {
		return tile, err
	}

	if tile.Source, err = o.pair("src"); err != nil {
		return tile, err
	}

	flip, err := o.uint("f")
	if err != nil {
		return tile, err
	}

	if flip > maxFlip {
		v, _ := o.value.Get("f")
		return tile, mismatch(joinPath(o.path, "f"), "f", "flip flags 0-3", describe(v))
	}

	tile.Flip = ldtk.FlipFlags(flip)

	if tile.TileID, err = o.uint("t"); err != nil {
		return tile, err
	}

	if tile.RenderOffset, err = o.uints("d"); err != nil {
		return tile, err
	}

	tile.Alpha, err = o.uint("a")

	return tile, err
}

func mapEntityInstance(o object) (ldtk.EntityInstance, error) {
	var (
		ent ldtk.EntityInstance
		err error
	)

	if ent.Identifier, err = o.str("__identifier"); err != nil {
		return ent, err
	}

	if ent.Position, err = o.pair("px"); err != nil {
		return ent, err
	}

	fields, err := o.array("fieldInstances")
	if err != nil {
		return ent, err
	}

	ent.Fields, err = mapEach(fields, mapFieldInstance)

	return ent, err
}

func mapFieldInstance(o object) (ldtk.FieldInstance, error) {
	var (
		field ldtk.FieldInstance
		err   error
	)

	if field.Identifier, err = o.str("__identifier"); err != nil {
		return field, err
	}

	if field.Type, err = o.str("__type"); err != nil {
		return field, err
	}

	// The value is kept as is whatever __type says.
	field.Value, err = o.raw("__value")

	return field, err
}
