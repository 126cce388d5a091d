package core

import (
	"math"
	"testing"
)

func TestBoxOverlaps(t *testing.T) {
	tests := []struct {
		name     string
		a, b     Box
		expected bool
	}{
		{
			name:     "overlapping boxes",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 5, Y: 5, W: 10, H: 10},
			expected: true,
		},
		{
			name:     "non-overlapping horizontal",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 15, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "non-overlapping vertical",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 0, Y: 15, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "touching edges do not overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 10, Y: 0, W: 10, H: 10},
			expected: false,
		},
		{
			name:     "contained box",
			a:        Box{X: 0, Y: 0, W: 20, H: 20},
			b:        Box{X: 5, Y: 5, W: 5, H: 5},
			expected: true,
		},
		{
			name:     "fractional overlap",
			a:        Box{X: 0, Y: 0, W: 10, H: 10},
			b:        Box{X: 9.5, Y: 9.5, W: 10, H: 10},
			expected: true,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.a.Overlaps(tc.b); got != tc.expected {
				t.Errorf("Overlaps() = %v, expected %v", got, tc.expected)
			}
			// Also test symmetry
			if got := tc.b.Overlaps(tc.a); got != tc.expected {
				t.Errorf("Overlaps() (reversed) = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestBoxAround(t *testing.T) {
	b := BoxAround(V(100, 50), 15)
	if b.X != 85 || b.Y != 35 || b.W != 30 || b.H != 30 {
		t.Errorf("BoxAround() = %+v, expected {85 35 30 30}", b)
	}
	if b.Right() != 115 || b.Bottom() != 65 {
		t.Errorf("edges = (%v, %v), expected (115, 65)", b.Right(), b.Bottom())
	}
}

func TestBoxInside(t *testing.T) {
	tests := []struct {
		name     string
		b        Box
		expected bool
	}{
		{"fully inside", Box{X: 10, Y: 10, W: 80, H: 80}, true},
		{"flush with far edge", Box{X: 720, Y: 520, W: 80, H: 80}, true},
		{"past right edge", Box{X: 730, Y: 10, W: 80, H: 80}, false},
		{"negative origin", Box{X: -1, Y: 10, W: 80, H: 80}, false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := tc.b.Inside(800, 600); got != tc.expected {
				t.Errorf("Inside() = %v, expected %v", got, tc.expected)
			}
		})
	}
}

func TestVecDist(t *testing.T) {
	if d := V(0, 0).Dist(V(3, 4)); d != 5 {
		t.Errorf("Dist() = %v, expected 5", d)
	}
	if d := V(1, 1).Dist(V(1, 1)); d != 0 {
		t.Errorf("Dist() to self = %v, expected 0", d)
	}
	if got := V(1, 2).Add(V(3, -4)); got != V(4, -2) {
		t.Errorf("Add() = %+v, expected {4 -2}", got)
	}
	if !V(0, 0).IsZero() || V(0, math.SmallestNonzeroFloat64).IsZero() {
		t.Error("IsZero() mismatch")
	}
}

func TestClamp(t *testing.T) {
	tests := []struct {
		val, min, max, expected int
	}{
		{5, 0, 10, 5},   // within range
		{-5, 0, 10, 0},  // below min
		{15, 0, 10, 10}, // above max
		{0, 0, 10, 0},   // at min
		{10, 0, 10, 10}, // at max
	}

	for _, tc := range tests {
		result := Clamp(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("Clamp(%d, %d, %d) = %d, expected %d", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}

func TestClampF(t *testing.T) {
	tests := []struct {
		val, min, max, expected float64
	}{
		{5.5, 0.0, 10.0, 5.5},
		{-5.5, 0.0, 10.0, 0.0},
		{15.5, 0.0, 10.0, 10.0},
	}

	for _, tc := range tests {
		result := ClampF(tc.val, tc.min, tc.max)
		if result != tc.expected {
			t.Errorf("ClampF(%f, %f, %f) = %f, expected %f", tc.val, tc.min, tc.max, result, tc.expected)
		}
	}
}
