package tanks

import (
	"math"

	"github.com/vovakirdan/tui-tanks/internal/core"
)

// Terminal glyphs
const (
	BrickChar      = '▓'
	SteelChar      = '█'
	BaseChar       = '♛'
	BaseRuinChar   = '✖'
	FogChar        = '░'
	TankBodyChar   = '█'
	BulletChar     = '•'
	PierceChar     = '◆'
	FlashChar      = '✶'
	CoreSparkChar  = '*'
	SparkChar      = '+'
	EmberChar      = '·'
	minSparkAlpha  = 0.15
	bigSparkPixels = 2.0
)

var classColors = [...]core.Color{
	ClassRanger:  core.ColorBrightGreen,
	ClassSniper:  core.ColorBrightYellow,
	ClassSamurai: core.ColorBrightRed,
}

var bulletColors = [...]core.Color{
	ClassRanger:  core.ColorGreen,
	ClassSniper:  core.ColorOrange,
	ClassSamurai: core.ColorRed,
}

// camera maps world pixels to surface cells, centered on the player.
type camera struct {
	x, y   float64
	cw, ch float64
}

func (e *Engine) camera() camera {
	cw := float64(e.cfg.Render.CellWidthPx)
	ch := float64(e.cfg.Render.CellHeightPx)
	return camera{
		x:  e.player.Pos.X - float64(e.surface.Width())*cw/2,
		y:  e.player.Pos.Y - float64(e.surface.Height())*ch/2,
		cw: cw,
		ch: ch,
	}
}

// cellCenter returns the world point sampled by surface cell (sx, sy).
func (c camera) cellCenter(sx, sy int) (float64, float64) {
	return c.x + (float64(sx)+0.5)*c.cw, c.y + (float64(sy)+0.5)*c.ch
}

func (c camera) toCell(x, y float64) (int, int) {
	return int(math.Floor((x - c.x) / c.cw)), int(math.Floor((y - c.y) / c.ch))
}

func inWorld(x, y float64) bool {
	return x >= 0 && x < MapPixelWidth && y >= 0 && y < MapPixelHeight
}

// Render redraws the surface from the current state without advancing it.
func (e *Engine) Render() {
	if e.surface != nil {
		e.render()
	}
}

// render draws the world into the surface: tiles, tanks, bullets, explosions
// and finally the fog.
func (e *Engine) render() {
	s := e.surface
	s.Clear()
	cam := e.camera()

	for sy := 0; sy < s.Height(); sy++ {
		for sx := 0; sx < s.Width(); sx++ {
			wx, wy := cam.cellCenter(sx, sy)
			if !inWorld(wx, wy) {
				continue
			}
			switch e.m.TileAt(wx, wy) {
			case TileBrick:
				s.SetColored(sx, sy, BrickChar, core.ColorOrange)
			case TileSteel:
				s.SetColored(sx, sy, SteelChar, core.ColorGray)
			case TileBase:
				if e.m.IsBaseDestroyed() {
					s.SetColored(sx, sy, BaseRuinChar, core.ColorRed)
				} else {
					s.SetColored(sx, sy, BaseChar, core.ColorBrightYellow)
				}
			}
		}
	}

	for _, t := range e.enemies {
		e.drawTank(cam, t, core.ColorRed)
	}
	e.drawTank(cam, e.player, e.playerColor())

	for _, b := range e.bullets {
		sx, sy := cam.toCell(b.Pos.X, b.Pos.Y)
		glyph := BulletChar
		if b.Pierce > 0 {
			glyph = PierceChar
		}
		s.SetColored(sx, sy, glyph, bulletColors[b.Class])
	}

	for _, x := range e.explosions {
		e.drawExplosion(cam, x)
	}

	if e.cfg.Fog.Enabled {
		e.drawFog(cam)
	}
}

func (e *Engine) playerColor() core.Color {
	if e.player.CanReflect() {
		return core.ColorBrightMagenta
	}
	return classColors[e.player.Class]
}

// drawTank fills every cell whose center lies inside the tank and puts the
// barrel glyph on the leading side.
func (e *Engine) drawTank(cam camera, t *Tank, color core.Color) {
	s := e.surface
	x0, y0 := cam.toCell(t.Pos.X, t.Pos.Y)
	x1, y1 := cam.toCell(t.Pos.X+t.Size, t.Pos.Y+t.Size)
	rect := t.Rect()
	barrel := t.Class.Stats().Barrel[t.Dir]

	var cells [][2]int
	for sy := y0; sy <= y1; sy++ {
		for sx := x0; sx <= x1; sx++ {
			wx, wy := cam.cellCenter(sx, sy)
			if wx >= rect.X && wx < rect.Right() && wy >= rect.Y && wy < rect.Bottom() {
				cells = append(cells, [2]int{sx, sy})
			}
		}
	}
	if len(cells) == 0 {
		// Tank smaller than a cell: draw just the barrel at its center
		c := t.Center()
		sx, sy := cam.toCell(c.X, c.Y)
		s.SetColored(sx, sy, barrel, color)
		return
	}

	for _, c := range cells {
		s.SetColored(c[0], c[1], TankBodyChar, color)
	}

	switch t.Dir {
	case DirLeft:
		s.SetColored(cells[0][0], cells[0][1], barrel, color)
	case DirRight:
		last := cells[len(cells)-1]
		s.SetColored(last[0], last[1], barrel, color)
	default:
		row := cells[0][1]
		if t.Dir == DirDown {
			row = cells[len(cells)-1][1]
		}
		for _, c := range cells {
			if c[1] == row {
				s.SetColored(c[0], c[1], barrel, color)
			}
		}
	}
}

func (e *Engine) drawExplosion(cam camera, x *Explosion) {
	s := e.surface
	if r := x.FlashRadius(); r > 0 {
		sx, sy := cam.toCell(x.Pos.X, x.Pos.Y)
		s.SetColored(sx, sy, FlashChar, core.ColorBrightWhite)
	}
	for _, p := range x.Particles() {
		if p.Alpha < minSparkAlpha {
			continue
		}
		sx, sy := cam.toCell(p.X, p.Y)
		glyph := EmberChar
		switch {
		case p.Central:
			glyph = CoreSparkChar
		case p.Size >= bigSparkPixels:
			glyph = SparkChar
		}
		s.SetColored(sx, sy, glyph, p.Color)
	}
}

func (e *Engine) drawFog(cam camera) {
	s := e.surface
	for sy := 0; sy < s.Height(); sy++ {
		for sx := 0; sx < s.Width(); sx++ {
			wx, wy := cam.cellCenter(sx, sy)
			if inWorld(wx, wy) && !e.fog.Visible(wx, wy) {
				s.SetColored(sx, sy, FogChar, core.ColorGray)
			}
		}
	}
}
