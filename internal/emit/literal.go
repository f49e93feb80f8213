package emit

import (
	"fmt"
	"strconv"
	"strings"

	"ldtkgen/ldtk"
)

// modelPkg is the name the generated file uses for the model package.
const modelPkg = "ldtk"

var layerTypeConsts = map[ldtk.LayerType]string{
	ldtk.LayerTiles:     "LayerTiles",
	ldtk.LayerEntities:  "LayerEntities",
	ldtk.LayerIntGrid:   "LayerIntGrid",
	ldtk.LayerAutoLayer: "LayerAutoLayer",
}

// literal accumulates an unformatted composite literal. Layout is left to
// the formatter; only line breaks and trailing commas matter here.
type literal struct {
	sb strings.Builder
}

func (l *literal) printf(format string, args ...any) {
	fmt.Fprintf(&l.sb, format, args...)
}

func (l *literal) line(s string) {
	l.sb.WriteString(s)
	l.sb.WriteByte('\n')
}

// renderProject returns the &ldtk.Project{...} expression for p.
func renderProject(p *ldtk.Project) (string, error) {
	l := &literal{}

	l.line("&ldtk.Project{")

	if len(p.Levels) > 0 {
		l.line("Levels: []ldtk.Level{")

		for i := range p.Levels {
			if err := l.level(&p.Levels[i], fmt.Sprintf("levels[%d]", i)); err != nil {
				return "", err
			}
		}

		l.line("},")
	}

	if len(p.Tilesets) > 0 {
		l.line("Tilesets: []ldtk.TilesetDef{")

		for _, ts := range p.Tilesets {
			l.printf("{UID: %d, RelativePath: %s, Width: %d, Height: %d, TileGridSize: %d},\n",
				ts.UID, strconv.Quote(ts.RelativePath), ts.Width, ts.Height, ts.TileGridSize)
		}

		l.line("},")
	}

	if len(p.EntityDefs) > 0 {
		l.line("EntityDefs: []ldtk.EntityDef{")

		for _, def := range p.EntityDefs {
			l.printf("{Identifier: %s, UID: %d, Width: %d, Height: %d},\n",
				strconv.Quote(def.Identifier), def.UID, def.Width, def.Height)
		}

		l.line("},")
	}

	if len(p.EnumDefs) > 0 {
		l.line("EnumDefs: []ldtk.EnumDef{")

		for _, def := range p.EnumDefs {
			l.enumDef(&def)
		}

		l.line("},")
	}

	l.sb.WriteString("}")

	return l.sb.String(), nil
}

func (l *literal) enumDef(def *ldtk.EnumDef) {
	l.line("{")
	l.printf("Identifier: %s,\n", strconv.Quote(def.Identifier))
	l.printf("UID: %d,\n", def.UID)

	if len(def.Values) > 0 {
		l.line("Values: []ldtk.EnumValueDef{")

		for _, v := range def.Values {
			r := v.TileRect
			l.printf("{ID: %s, TileRect: ldtk.TileRect{TilesetUID: %d, X: %d, Y: %d, W: %d, H: %d}},\n",
				strconv.Quote(v.ID), r.TilesetUID, r.X, r.Y, r.W, r.H)
		}

		l.line("},")
	}

	l.line("},")
}

func (l *literal) level(lvl *ldtk.Level, path string) error {
	l.line("{")
	l.printf("Identifier: %s,\n", strconv.Quote(lvl.Identifier))
	l.printf("Width: %d,\n", lvl.Width)
	l.printf("Height: %d,\n", lvl.Height)

	if len(lvl.Layers) > 0 {
		l.line("Layers: []ldtk.LayerInstance{")

		for i := range lvl.Layers {
			if err := l.layer(&lvl.Layers[i], fmt.Sprintf("%s.layerInstances[%d]", path, i)); err != nil {
				return err
			}
		}

		l.line("},")
	}

	l.line("},")

	return nil
}

func (l *literal) layer(layer *ldtk.LayerInstance, path string) error {
	l.line("{")
	l.printf("Identifier: %s,\n", strconv.Quote(layer.Identifier))
	l.printf("Type: %s,\n", layerTypeExpr(layer.Type))
	l.printf("GridSize: %d,\n", layer.GridSize)
	l.printf("GridWidth: %d,\n", layer.GridWidth)
	l.printf("GridHeight: %d,\n", layer.GridHeight)

	if uid, ok := layer.TilesetRef.Get(); ok {
		l.printf("TilesetRef: ldtk.SomeUID(%d),\n", uid)
	}

	if len(layer.Tiles) > 0 {
		l.line("Tiles: []ldtk.GridTile{")

		for _, tile := range layer.Tiles {
			l.printf("{Position: %s, Source: %s, Flip: %d, TileID: %d, ",
				pairExpr(tile.Position), pairExpr(tile.Source), tile.Flip, tile.TileID)

			if len(tile.RenderOffset) > 0 {
				l.printf("RenderOffset: %s, ", uintsExpr(tile.RenderOffset))
			}

			l.printf("Alpha: %d},\n", tile.Alpha)
		}

		l.line("},")
	}

	if len(layer.Entities) > 0 {
		l.line("Entities: []ldtk.EntityInstance{")

		for i := range layer.Entities {
			if err := l.entity(&layer.Entities[i], fmt.Sprintf("%s.entityInstances[%d]", path, i)); err != nil {
				return err
			}
		}

		l.line("},")
	}

	l.line("},")

	return nil
}

func (l *literal) entity(ent *ldtk.EntityInstance, path string) error {
	l.line("{")
	l.printf("Identifier: %s,\n", strconv.Quote(ent.Identifier))
	l.printf("Position: %s,\n", pairExpr(ent.Position))

	if len(ent.Fields) > 0 {
		l.line("Fields: []ldtk.FieldInstance{")

		for i, field := range ent.Fields {
			value, err := valueExpr(field.Value)
			if err != nil {
				return &EmissionError{Path: fmt.Sprintf("%s.fieldInstances[%d].__value", path, i), Err: err}
			}

			l.printf("{Identifier: %s, Type: %s, Value: %s},\n",
				strconv.Quote(field.Identifier), strconv.Quote(field.Type), value)
		}

		l.line("},")
	}

	l.line("},")

	return nil
}

func layerTypeExpr(t ldtk.LayerType) string {
	if name, ok := layerTypeConsts[t]; ok {
		return modelPkg + "." + name
	}

	return fmt.Sprintf("%s.LayerType(%s)", modelPkg, strconv.Quote(string(t)))
}

func pairExpr(p [2]uint32) string {
	return fmt.Sprintf("[2]uint32{%d, %d}", p[0], p[1])
}

func uintsExpr(vs []uint32) string {
	parts := make([]string, len(vs))
	for i, v := range vs {
		parts[i] = strconv.FormatUint(uint64(v), 10)
	}

	return "[]uint32{" + strings.Join(parts, ", ") + "}"
}

// valueExpr embeds v as canonical JSON decoded on first access.
func valueExpr(v ldtk.Value) (string, error) {
	text, err := v.MarshalJSON()
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%s.MustParseValue(%s)", modelPkg, goString(string(text))), nil
}

// goString quotes s as a Go string literal, preferring a raw literal for
// readability.
func goString(s string) string {
	if strconv.CanBackquote(s) {
		return "`" + s + "`"
	}

	return strconv.Quote(s)
}
