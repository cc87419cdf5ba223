package core

import "testing"

func TestRectIntersects(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Rect
		expected bool
	}{
		{
			name:     "overlapping rects",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(5, 5, 10, 10),
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(15, 0, 10, 10),
			expected: false,
		},
		{
			name:     "adjacent horizontal (no overlap)",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(10, 0, 10, 10),
			expected: false,
		},
		{
			name:     "contained rect",
			a:        NewRect(0, 0, 20, 20),
			b:        NewRect(5, 5, 5, 5),
			expected: true,
		},
		{
			name:     "single cell overlap",
			a:        NewRect(0, 0, 10, 10),
			b:        NewRect(9, 9, 10, 10),
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.a.Intersects(tc.b)
			if result != tc.expected {
				t.Errorf("Intersects() = %v, expected %v", result, tc.expected)
			}
			// Also test symmetry
			resultReverse := tc.b.Intersects(tc.a)
			if resultReverse != tc.expected {
				t.Errorf("Intersects() (reversed) = %v, expected %v", resultReverse, tc.expected)
			}
		})
	}
}

func TestRectContains(t *testing.T) {
	r := NewRect(10, 10, 20, 15)

	tests := []struct {
		name     string
		x, y     int
		expected bool
	}{
		{"inside", 15, 15, true},
		{"top-left corner", 10, 10, true},
		{"bottom-right edge (exclusive)", 30, 25, false},
		{"left of rect", 5, 15, false},
		{"above rect", 15, 5, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := r.Contains(tc.x, tc.y)
			if result != tc.expected {
				t.Errorf("Contains(%d, %d) = %v, expected %v", tc.x, tc.y, result, tc.expected)
			}
		})
	}
}

func TestFracRectResolve(t *testing.T) {
	tests := []struct {
		name     string
		frac     FracRect
		w, h     int
		expected Rect
	}{
		{
			name:     "centered half-size box",
			frac:     FracRect{X: 0.25, Y: 0.25, W: 0.5, H: 0.5},
			w:        80,
			h:        24,
			expected: Rect{X: 20, Y: 6, W: 40, H: 12},
		},
		{
			name:     "full canvas",
			frac:     FracRect{X: 0, Y: 0, W: 1, H: 1},
			w:        80,
			h:        24,
			expected: Rect{X: 0, Y: 0, W: 80, H: 24},
		},
		{
			name:     "tiny fraction never collapses to zero",
			frac:     FracRect{X: 0.5, Y: 0.5, W: 0.001, H: 0.001},
			w:        80,
			h:        24,
			expected: Rect{X: 40, Y: 12, W: 1, H: 1},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			result := tc.frac.Resolve(tc.w, tc.h)
			if result != tc.expected {
				t.Errorf("Resolve(%d, %d) = %+v, expected %+v", tc.w, tc.h, result, tc.expected)
			}
		})
	}
}

func TestFracPointResolve(t *testing.T) {
	p := FracPoint{X: 0.5, Y: 0.25}
	x, y := p.Resolve(100, 40)
	if x != 50 || y != 10 {
		t.Errorf("Resolve(100, 40) = (%d, %d), expected (50, 10)", x, y)
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},
		{-5, 0, 10, 0},
		{15, 0, 10, 10},
		{0, 0, 10, 0},
		{10, 0, 10, 10},
	}

	for _, tc := range tests {
		if got := Clamp(tc.val, tc.min, tc.max); got != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, got, tc.expected)
		}
	}
}
