package sim

import "testing"

func TestRoundHalfAwayFromZero(t *testing.T) {
	cases := []struct {
		in   float32
		want float32
	}{
		{0, 0},
		{0.4, 0},
		{0.5, 1},
		{1.5, 2},
		{2.5, 3},
		{-0.4, 0},
		{-0.5, -1},
		{-1.5, -2},
		{-2.5, -3},
		{119.5, 120},
		{-119.5, -120},
	}

	for _, c := range cases {
		if got := Round(c.in); got != c.want {
			t.Errorf("Round(%v) = %v, want %v", c.in, got, c.want)
		}
	}
}

func TestIntersectsStrict(t *testing.T) {
	a := NewRect(0, 0, 10, 10)

	cases := []struct {
		name string
		b    Rect
		want bool
	}{
		{"overlapping", NewRect(5, 5, 10, 10), true},
		{"contained", NewRect(2, 2, 4, 4), true},
		{"touching right edge", NewRect(10, 0, 10, 10), false},
		{"touching bottom edge", NewRect(0, 10, 10, 10), false},
		{"touching corner", NewRect(10, 10, 5, 5), false},
		{"one pixel overlap", NewRect(9, 9, 10, 10), true},
		{"disjoint", NewRect(20, 20, 5, 5), false},
	}

	for _, c := range cases {
		t.Run(c.name, func(t *testing.T) {
			if got := a.Intersects(c.b); got != c.want {
				t.Errorf("Intersects = %v, want %v", got, c.want)
			}
			// Intersection is symmetric.
			if got := c.b.Intersects(a); got != c.want {
				t.Errorf("reverse Intersects = %v, want %v", got, c.want)
			}
		})
	}
}
