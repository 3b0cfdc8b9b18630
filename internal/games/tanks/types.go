// Package tanks implements a Battle City style tank arena: a tile map with
// destructible bricks and a base to defend, a player tank of a chosen class,
// randomly roaming AI tanks, bullets, explosions and fog of war.
//
// The simulation is driven by Engine.Tick with an explicit frame delta and
// renders into a core.Screen. Game adapts the engine to the registry.
package tanks

import "github.com/vovakirdan/tui-tanks/internal/core"

// World geometry in pixels.
const (
	TileSize   = 32
	MapCols    = 25
	MapRows    = 19
	TankSize   = 32.0
	BulletSize = 4.0

	MapPixelWidth  = float64(MapCols * TileSize)
	MapPixelHeight = float64(MapRows * TileSize)
)

// Position is a point in world pixels.
type Position struct {
	X, Y float64
}

// Direction is one of the four cardinal headings.
type Direction int

const (
	DirUp Direction = iota
	DirDown
	DirLeft
	DirRight
)

var directions = [...]Direction{DirUp, DirDown, DirLeft, DirRight}

// Opposite returns the reversed heading.
func (d Direction) Opposite() Direction {
	switch d {
	case DirUp:
		return DirDown
	case DirDown:
		return DirUp
	case DirLeft:
		return DirRight
	default:
		return DirLeft
	}
}

// Delta returns the unit step for the heading.
func (d Direction) Delta() (dx, dy float64) {
	switch d {
	case DirUp:
		return 0, -1
	case DirDown:
		return 0, 1
	case DirLeft:
		return -1, 0
	default:
		return 1, 0
	}
}

func (d Direction) String() string {
	switch d {
	case DirUp:
		return "up"
	case DirDown:
		return "down"
	case DirLeft:
		return "left"
	default:
		return "right"
	}
}

func squareAt(p Position, size float64) core.RectF {
	return core.NewRectF(p.X, p.Y, size, size)
}
