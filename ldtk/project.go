package ldtk

// Project is the root of a compiled LDtk project.
type Project struct {
	Levels     []Level
	Tilesets   []TilesetDef
	EntityDefs []EntityDef
	EnumDefs   []EnumDef
}

// TilesetDef describes a tileset image sliced into a square grid.
type TilesetDef struct {
	UID uint32
	// RelativePath is the image path relative to the project file, empty
	// when the tileset has no image.
	RelativePath string
	Width        uint32
	Height       uint32
	TileGridSize uint32
}

// EntityDef declares an entity type that entity instances refer to by
// identifier.
type EntityDef struct {
	Identifier string
	UID        uint32
	Width      uint32
	Height     uint32
}

// EnumDef declares an enum and the icon of each of its values.
type EnumDef struct {
	Identifier string
	UID        uint32
	Values     []EnumValueDef
}

// EnumValueDef is one value of an EnumDef.
type EnumValueDef struct {
	ID       string
	TileRect TileRect
}

// TileRect is a pixel rectangle inside the tileset named by TilesetUID.
type TileRect struct {
	TilesetUID uint32
	X          uint32
	Y          uint32
	W          uint32
	H          uint32
}

// Level is one level of the project. Layers are listed front to back.
type Level struct {
	Identifier string
	Width      uint32
	Height     uint32
	Layers     []LayerInstance
}

// LayerType is the kind of a layer instance.
type LayerType string

// Layer types produced by LDtk. Other values are passed through as is.
const (
	LayerTiles     LayerType = "Tiles"
	LayerEntities  LayerType = "Entities"
	LayerIntGrid   LayerType = "IntGrid"
	LayerAutoLayer LayerType = "AutoLayer"
)

// OptionalUID is a uid reference that may be absent. The zero value is
// absent, which is distinct from a present uid 0.
type OptionalUID struct {
	UID   uint32
	Valid bool
}

// SomeUID returns a present reference to uid.
func SomeUID(uid uint32) OptionalUID {
	return OptionalUID{UID: uid, Valid: true}
}

// Get returns the uid and whether it is present.
func (o OptionalUID) Get() (uint32, bool) {
	return o.UID, o.Valid
}

// LayerInstance is one drawing pass of a level.
type LayerInstance struct {
	Identifier string
	Type       LayerType
	GridSize   uint32
	GridWidth  uint32
	GridHeight uint32
	TilesetRef OptionalUID
	Tiles      []GridTile
	Entities   []EntityInstance
}

// IsTiles reports whether the layer is a tile layer.
func (l *LayerInstance) IsTiles() bool {
	return l.Type == LayerTiles
}

// IsEntities reports whether the layer is an entity layer.
func (l *LayerInstance) IsEntities() bool {
	return l.Type == LayerEntities
}

// FlipFlags tells how a tile is mirrored.
type FlipFlags uint8

const (
	FlipHorizontal FlipFlags = 1 << iota
	FlipVertical
)

// Horizontal reports whether the tile is mirrored on the X axis.
func (f FlipFlags) Horizontal() bool { return f&FlipHorizontal != 0 }

// Vertical reports whether the tile is mirrored on the Y axis.
func (f FlipFlags) Vertical() bool { return f&FlipVertical != 0 }

// GridTile is one placed tile.
type GridTile struct {
	// Position is the pixel position of the tile in its layer.
	Position [2]uint32
	// Source is the pixel position of the tile in its tileset image.
	Source       [2]uint32
	Flip         FlipFlags
	TileID       uint32
	RenderOffset []uint32
	Alpha        uint32
}

// EntityInstance is one placed entity.
type EntityInstance struct {
	Identifier string
	Position   [2]uint32
	Fields     []FieldInstance
}

// Field returns the field named identifier.
func (e *EntityInstance) Field(identifier string) (*FieldInstance, bool) {
	for i := range e.Fields {
		if e.Fields[i].Identifier == identifier {
			return &e.Fields[i], true
		}
	}

	return nil, false
}

// FieldInstance is a custom field value. Type is the declared LDtk type
// ("Int", "String", "LocalEnum.Kind", "Array<Point>", ...). Value is not
// checked against it.
type FieldInstance struct {
	Identifier string
	Type       string
	Value      Value
}

// Tileset returns the tileset with the given uid.
func (p *Project) Tileset(uid uint32) (*TilesetDef, bool) {
	for i := range p.Tilesets {
		if p.Tilesets[i].UID == uid {
			return &p.Tilesets[i], true
		}
	}

	return nil, false
}

// LayerTileset resolves the tileset a layer paints with.
func (p *Project) LayerTileset(layer *LayerInstance) (*TilesetDef, bool) {
	uid, ok := layer.TilesetRef.Get()
	if !ok {
		return nil, false
	}

	return p.Tileset(uid)
}

// EntityDef returns the entity definition with the given identifier.
func (p *Project) EntityDef(identifier string) (*EntityDef, bool) {
	for i := range p.EntityDefs {
		if p.EntityDefs[i].Identifier == identifier {
			return &p.EntityDefs[i], true
		}
	}

	return nil, false
}

// EnumDef returns the enum definition with the given identifier.
func (p *Project) EnumDef(identifier string) (*EnumDef, bool) {
	for i := range p.EnumDefs {
		if p.EnumDefs[i].Identifier == identifier {
			return &p.EnumDefs[i], true
		}
	}

	return nil, false
}

// Level returns the level with the given identifier.
func (p *Project) Level(identifier string) (*Level, bool) {
	for i := range p.Levels {
		if p.Levels[i].Identifier == identifier {
			return &p.Levels[i], true
		}
	}

	return nil, false
}

// Value returns the enum value with the given id.
func (e *EnumDef) Value(id string) (*EnumValueDef, bool) {
	for i := range e.Values {
		if e.Values[i].ID == id {
			return &e.Values[i], true
		}
	}

	return nil, false
}
