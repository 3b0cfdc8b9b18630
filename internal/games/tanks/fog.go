package tanks

// Fog tracks which tiles are visible around the player.
type Fog struct {
	radius  int
	visible [MapRows][MapCols]bool
}

// NewFog creates a fog layer with everything hidden.
func NewFog(radius int) *Fog {
	return &Fog{radius: radius}
}

// Update recomputes visibility for a disk of radius tiles around the tile under p.
func (f *Fog) Update(p Position) {
	f.visible = [MapRows][MapCols]bool{}
	pc, pr := CellOf(p.X, p.Y)
	r2 := f.radius * f.radius

	for dy := -f.radius; dy <= f.radius; dy++ {
		for dx := -f.radius; dx <= f.radius; dx++ {
			col, row := pc+dx, pr+dy
			if inGrid(col, row) && dx*dx+dy*dy <= r2 {
				f.visible[row][col] = true
			}
		}
	}
}

// VisibleCell reports whether a tile is inside the visible disk.
func (f *Fog) VisibleCell(col, row int) bool {
	if !inGrid(col, row) {
		return false
	}
	return f.visible[row][col]
}

// Visible reports whether the tile under a world point is visible.
func (f *Fog) Visible(x, y float64) bool {
	return f.VisibleCell(CellOf(x, y))
}
