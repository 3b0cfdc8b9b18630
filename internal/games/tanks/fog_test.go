package tanks

import "testing"

func TestFogVisibility(t *testing.T) {
	f := NewFog(4)
	f.Update(Position{X: 4 * TileSize, Y: 15 * TileSize})

	tests := []struct {
		col, row int
		want     bool
	}{
		{4, 15, true},
		{8, 15, true},  // exactly on the radius
		{0, 15, true},  // left edge of the disk
		{8, 16, false}, // just outside
		{7, 18, false}, // diagonal beyond the radius
		{4, 11, true},
		{4, 19, false}, // off the grid
		{20, 2, false},
	}

	for _, tc := range tests {
		if got := f.VisibleCell(tc.col, tc.row); got != tc.want {
			t.Errorf("VisibleCell(%d, %d) = %v, expected %v", tc.col, tc.row, got, tc.want)
		}
	}

	// Moving recomputes from scratch
	f.Update(Position{X: 20 * TileSize, Y: 2 * TileSize})
	if f.VisibleCell(4, 15) {
		t.Error("old area should be hidden after moving")
	}
	if !f.Visible(20*TileSize+5, 2*TileSize+5) {
		t.Error("new area should be visible")
	}
}
