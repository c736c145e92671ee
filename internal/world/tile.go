package world

// Tile is the static terrain of a map cell.
type Tile uint8

const (
	TileWall Tile = iota
	TileFloor
	TileDoorClosed
	TileDoorOpen
)

// Glyph returns the map-file character for the tile.
func (t Tile) Glyph() rune {
	switch t {
	case TileFloor:
		return '.'
	case TileDoorClosed:
		return '+'
	case TileDoorOpen:
		return '/'
	default:
		return '#'
	}
}

// Solid reports whether the tile blocks movement and flow on its own.
func (t Tile) Solid() bool {
	return t == TileWall || t == TileDoorClosed
}

// IsDoor reports whether the tile is a door in either state.
func (t Tile) IsDoor() bool {
	return t == TileDoorClosed || t == TileDoorOpen
}

func tileFromGlyph(r rune) (Tile, bool) {
	switch r {
	case '.':
		return TileFloor, true
	case '#':
		return TileWall, true
	case '+':
		return TileDoorClosed, true
	case '/':
		return TileDoorOpen, true
	}
	return TileWall, false
}
