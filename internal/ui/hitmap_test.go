package ui

import "testing"

func TestRectContains(t *testing.T) {
	r := Rect{X: 10, Y: 10, W: 20, H: 10}

	cases := []struct {
		x, y     int
		expected bool
	}{
		{10, 10, true},  // Top-left corner
		{29, 19, true},  // Bottom-right corner
		{15, 15, true},  // Center
		{9, 10, false},  // Just left
		{30, 10, false}, // Just right (exclusive)
		{10, 9, false},  // Just above
		{10, 20, false}, // Just below (exclusive)
	}

	for _, tc := range cases {
		if got := r.Contains(tc.x, tc.y); got != tc.expected {
			t.Errorf("Rect(%+v).Contains(%d, %d) = %v, want %v", r, tc.x, tc.y, got, tc.expected)
		}
	}
}

func TestHitMapPriority(t *testing.T) {
	hm := NewHitMap()

	// Later regions have higher priority
	hm.Add("scrim", Rect{0, 0, 100, 100})
	hm.Add("surface", Rect{10, 10, 80, 80})
	hm.Add("button", Rect{40, 40, 20, 1})

	tests := []struct {
		x, y int
		want string
	}{
		{45, 40, "button"},
		{45, 41, "surface"},
		{5, 5, "scrim"},
	}
	for _, tt := range tests {
		r := hm.Test(tt.x, tt.y)
		if r == nil || r.ID != tt.want {
			t.Errorf("Test(%d, %d) = %v, want %q", tt.x, tt.y, r, tt.want)
		}
	}

	if r := hm.Test(150, 5); r != nil {
		t.Errorf("expected no hit outside every region, got %v", r)
	}
}

func TestHitMapIgnoresEmptyAndClears(t *testing.T) {
	hm := NewHitMap()
	hm.Add("empty", Rect{0, 0, 0, 5})
	if len(hm.Regions()) != 0 {
		t.Fatalf("expected zero-size region to be ignored, got %v", hm.Regions())
	}

	hm.Add("a", Rect{0, 0, 1, 1})
	hm.Clear()
	if r := hm.Test(0, 0); r != nil {
		t.Errorf("expected no hit after Clear, got %v", r)
	}
}
