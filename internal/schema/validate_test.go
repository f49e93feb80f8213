package schema

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"ldtkgen/internal/diagnostic"
	"ldtkgen/ldtk"
)

func validProject() *ldtk.Project {
	return &ldtk.Project{
		Tilesets:   []ldtk.TilesetDef{{UID: 7, RelativePath: "tiles.png"}},
		EntityDefs: []ldtk.EntityDef{{Identifier: "Chest", UID: 3}},
		EnumDefs: []ldtk.EnumDef{{
			Identifier: "Item",
			Values:     []ldtk.EnumValueDef{{ID: "Sword", TileRect: ldtk.TileRect{TilesetUID: 7}}},
		}},
		Levels: []ldtk.Level{{
			Identifier: "L1",
			Layers: []ldtk.LayerInstance{
				{
					Identifier: "Ground",
					Type:       ldtk.LayerTiles,
					TilesetRef: ldtk.SomeUID(7),
					Tiles:      []ldtk.GridTile{{Position: [2]uint32{16, 32}}},
				},
				{
					Identifier: "Things",
					Type:       ldtk.LayerEntities,
					Entities: []ldtk.EntityInstance{{
						Identifier: "Chest",
						Fields: []ldtk.FieldInstance{
							{Identifier: "count", Type: "Int", Value: ldtk.IntValue(3)},
						},
					}},
				},
				{Identifier: "Empty", Type: ldtk.LayerTiles},
			},
		}},
	}
}

func codes(ds []diagnostic.Diagnostic) []string {
	out := make([]string, 0, len(ds))
	for _, d := range ds {
		out = append(out, d.Code)
	}

	return out
}

func TestValidate_Valid(t *testing.T) {
	res := Validate(validProject(), ValidateOptions{CheckFieldTypes: true})

	assert.False(t, res.HasErrors())
	assert.Empty(t, res.Warnings)
	require.NoError(t, res.Err())
}

func TestValidate_Nil(t *testing.T) {
	res := Validate(nil, ValidateOptions{})
	assert.True(t, res.HasErrors())
}

func TestValidate_TileLayerNeedsTileset(t *testing.T) {
	tests := []struct {
		name string
		ref  ldtk.OptionalUID
		msg  string
	}{
		{name: "absent", ref: ldtk.OptionalUID{}, msg: "no tileset"},
		{name: "unknown uid", ref: ldtk.SomeUID(99), msg: "unknown tileset uid 99"},
		{name: "uid zero is not absent", ref: ldtk.SomeUID(0), msg: "unknown tileset uid 0"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := validProject()
			p.Levels[0].Layers[0].TilesetRef = tt.ref

			res := Validate(p, ValidateOptions{})
			require.Len(t, res.Errors, 1)
			assert.Equal(t, CodeUnresolvedLayerTileset, res.Errors[0].Code)
			assert.Equal(t, "levels[0].layerInstances[0]", res.Errors[0].Path)
			assert.Contains(t, res.Errors[0].Message, tt.msg)
		})
	}
}

func TestValidate_DanglingReferenceWithoutTilesIsWarning(t *testing.T) {
	p := validProject()
	p.Levels[0].Layers[2].TilesetRef = ldtk.SomeUID(42)

	res := Validate(p, ValidateOptions{})
	assert.False(t, res.HasErrors())
	assert.Equal(t, []string{CodeDanglingLayerTileset}, codes(res.Warnings))
}

func TestValidate_Duplicates(t *testing.T) {
	p := validProject()
	p.Tilesets = append(p.Tilesets, ldtk.TilesetDef{UID: 7})
	p.EntityDefs = append(p.EntityDefs, ldtk.EntityDef{Identifier: "Chest", UID: 4})
	p.EnumDefs = append(p.EnumDefs, ldtk.EnumDef{Identifier: "Item"})
	p.Levels = append(p.Levels, ldtk.Level{Identifier: "L1"})

	res := Validate(p, ValidateOptions{})

	assert.ElementsMatch(t, []string{
		CodeDuplicateTilesetUID,
		CodeDuplicateEntityIdentifier,
		CodeDuplicateEnumIdentifier,
		CodeDuplicateLevelIdentifier,
	}, codes(res.Errors))
	assert.Equal(t, "defs.tilesets[1]", res.Errors[0].Path)
}

func TestValidate_SoftReferenceWarnings(t *testing.T) {
	p := validProject()
	p.EnumDefs[0].Values[0].TileRect.TilesetUID = 12
	p.Levels[0].Layers[1].Entities[0].Identifier = "Ghost"

	res := Validate(p, ValidateOptions{})

	assert.False(t, res.HasErrors())
	assert.ElementsMatch(t, []string{CodeUnresolvedEnumTileset, CodeUnknownEntity}, codes(res.Warnings))
}

func TestValidate_FieldTypes(t *testing.T) {
	p := validProject()
	p.Levels[0].Layers[1].Entities[0].Fields[0].Value = ldtk.StringValue("3")

	off := Validate(p, ValidateOptions{})
	assert.Empty(t, off.Warnings)

	on := Validate(p, ValidateOptions{CheckFieldTypes: true})
	require.Len(t, on.Warnings, 1)
	assert.Equal(t, CodeFieldTypeMismatch, on.Warnings[0].Code)
	assert.Equal(t, "levels[0].layerInstances[1].entityInstances[0].fieldInstances[0]", on.Warnings[0].Path)
	assert.False(t, on.HasErrors())
}

func TestMatchesDeclaredType(t *testing.T) {
	tests := []struct {
		declared string
		value    string
		ok       bool
	}{
		{"Int", `3`, true},
		{"Int", `3.5`, false},
		{"Float", `3`, true},
		{"Float", `3.5`, true},
		{"Bool", `true`, true},
		{"Bool", `"true"`, false},
		{"String", `"x"`, true},
		{"Color", `"#FF0000"`, true},
		{"LocalEnum.Item", `"Sword"`, true},
		{"ExternEnum.Item", `1`, false},
		{"Point", `{"cx": 1, "cy": 2}`, true},
		{"Point", `{"cx": 1}`, false},
		{"EntityRef", `{"entityIid": "x"}`, true},
		{"Array<Int>", `[1, 2]`, true},
		{"Array<Int>", `[1, "2"]`, false},
		{"Array<Point>", `{"cx": 1, "cy": 2}`, false},
		{"Int", `null`, true},
		{"SomethingNew", `{"x": [1]}`, true},
	}

	for _, tt := range tests {
		t.Run(tt.declared+" "+tt.value, func(t *testing.T) {
			_, ok := matchesDeclaredType(tt.declared, ldtk.MustParseValue(tt.value))
			assert.Equal(t, tt.ok, ok)
		})
	}
}
