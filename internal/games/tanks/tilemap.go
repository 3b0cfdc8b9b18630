package tanks

import "math"

// TileKind is the content of one map cell.
type TileKind int

const (
	TileEmpty TileKind = iota
	TileBrick          // destructible
	TileSteel          // indestructible, also the border
	TileBase           // objective; its destruction ends the match
)

func (k TileKind) String() string {
	switch k {
	case TileEmpty:
		return "empty"
	case TileBrick:
		return "brick"
	case TileSteel:
		return "steel"
	default:
		return "base"
	}
}

// brickStructures are the fixed cover blocks as {col, row, width, height}.
var brickStructures = [...][4]int{
	{3, 3, 2, 3},
	{6, 7, 3, 2},
	{19, 3, 2, 3},
	{16, 7, 3, 2},
	{11, 5, 3, 2},
	{8, 12, 2, 2},
	{15, 12, 2, 2},
}

// Map is the tile grid. Coordinates passed to its queries are world pixels.
type Map struct {
	tiles         [MapRows][MapCols]TileKind
	baseCol       int
	baseRow       int
	baseDestroyed bool
}

// NewMap builds the fixed layout: steel border, brick cover, and the base
// near the bottom center ringed by steel.
func NewMap() *Map {
	m := &Map{
		baseCol: MapCols / 2,
		baseRow: MapRows - 3,
	}

	for col := 0; col < MapCols; col++ {
		m.tiles[0][col] = TileSteel
		m.tiles[MapRows-1][col] = TileSteel
	}
	for row := 0; row < MapRows; row++ {
		m.tiles[row][0] = TileSteel
		m.tiles[row][MapCols-1] = TileSteel
	}

	for _, s := range brickStructures {
		for row := s[1]; row < s[1]+s[3]; row++ {
			for col := s[0]; col < s[0]+s[2]; col++ {
				if inGrid(col, row) {
					m.tiles[row][col] = TileBrick
				}
			}
		}
	}

	m.tiles[m.baseRow][m.baseCol] = TileBase
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			col, row := m.baseCol+dx, m.baseRow+dy
			if (dx != 0 || dy != 0) && inGrid(col, row) && m.tiles[row][col] == TileEmpty {
				m.tiles[row][col] = TileSteel
			}
		}
	}

	return m
}

func inGrid(col, row int) bool {
	return col >= 0 && col < MapCols && row >= 0 && row < MapRows
}

// CellOf converts world pixels to a tile column and row.
func CellOf(x, y float64) (col, row int) {
	return int(math.Floor(x / TileSize)), int(math.Floor(y / TileSize))
}

// TileAt returns the tile under a world point. Out of bounds reads as steel.
func (m *Map) TileAt(x, y float64) TileKind {
	return m.TileAtCell(CellOf(x, y))
}

// TileAtCell returns the tile at a grid cell. Out of bounds reads as steel.
func (m *Map) TileAtCell(col, row int) TileKind {
	if !inGrid(col, row) {
		return TileSteel
	}
	return m.tiles[row][col]
}

// IsSolid reports whether a world point blocks movement and bullets.
func (m *Map) IsSolid(x, y float64) bool {
	return m.TileAt(x, y) != TileEmpty
}

// DestroyTile turns a brick into empty ground or marks the base destroyed.
// It returns false for steel, empty and out-of-bounds cells.
func (m *Map) DestroyTile(x, y float64) bool {
	col, row := CellOf(x, y)
	if !inGrid(col, row) {
		return false
	}

	switch m.tiles[row][col] {
	case TileBrick:
		m.tiles[row][col] = TileEmpty
		return true
	case TileBase:
		m.baseDestroyed = true
		return true
	default:
		return false
	}
}

// IsBaseDestroyed reports whether the base has been struck. Once true it stays true.
func (m *Map) IsBaseDestroyed() bool {
	return m.baseDestroyed
}

// BaseCell returns the grid position of the base.
func (m *Map) BaseCell() (col, row int) {
	return m.baseCol, m.baseRow
}

// Count returns how many tiles of the given kind the grid holds.
func (m *Map) Count(kind TileKind) int {
	n := 0
	for row := range m.tiles {
		for col := range m.tiles[row] {
			if m.tiles[row][col] == kind {
				n++
			}
		}
	}
	return n
}
