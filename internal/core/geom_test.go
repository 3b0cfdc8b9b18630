package core

import "testing"

func TestRectFIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     RectF
		expected bool
	}{
		{
			name:     "overlapping tanks",
			a:        NewRectF(0, 0, 32, 32),
			b:        NewRectF(16, 16, 32, 32),
			expected: true,
		},
		{
			name:     "touching horizontally (no overlap)",
			a:        NewRectF(0, 0, 32, 32),
			b:        NewRectF(32, 0, 32, 32),
			expected: false,
		},
		{
			name:     "touching vertically (no overlap)",
			a:        NewRectF(0, 0, 32, 32),
			b:        NewRectF(0, 32, 32, 32),
			expected: false,
		},
		{
			name:     "fractional overlap",
			a:        NewRectF(0, 0, 32, 32),
			b:        NewRectF(31.9, 0, 32, 32),
			expected: true,
		},
		{
			name:     "bullet inside tank",
			a:        NewRectF(10, 10, 32, 32),
			b:        NewRectF(20, 20, 4, 4),
			expected: true,
		},
		{
			name:     "far apart",
			a:        NewRectF(0, 0, 4, 4),
			b:        NewRectF(100, 100, 4, 4),
			expected: false,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Intersects(tc.b); got != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", got, tc.expected)
			}
			if got := tc.b.Intersects(tc.a); got != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestRectFCorners(t *testing.T) {
	r := NewRectF(32, 64, 32, 32)
	corners := r.Corners()

	want := [4][2]float64{{32, 64}, {64, 64}, {32, 96}, {64, 96}}
	if corners != want {
		t.Errorf("Corners() = %v, expected %v", corners, want)
	}

	cx, cy := r.Center()
	if cx != 48 || cy != 80 {
		t.Errorf("Center() = (%v, %v), expected (48, 80)", cx, cy)
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 768.0, 5.5},
		{-3.0, 0.0, 768.0, 0.0},
		{770.1, 0.0, 768.0, 768.0},
	}

	for _, tc := range tests {
		if got := ClampF(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
