package query

import "testing"

func TestDistance(t *testing.T) {
	tests := []struct {
		a, b string
		want int
	}{
		{"", "", 0},
		{"iphone", "iphone", 0},
		{"", "abc", 3},
		{"abc", "", 3},
		{"kitten", "sitting", 3},
		{"samsang", "samsung", 1},
		{"xiomi", "xiaomi", 1},
		{"ifone", "iphone", 2},
		{"flaw", "lawn", 2},
	}
	for _, tt := range tests {
		if got := Distance(tt.a, tt.b); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.a, tt.b, got, tt.want)
		}
		// Distance is symmetric.
		if got := Distance(tt.b, tt.a); got != tt.want {
			t.Errorf("Distance(%q, %q) = %d, want %d", tt.b, tt.a, got, tt.want)
		}
	}
}

func TestWithin(t *testing.T) {
	tests := []struct {
		a, b string
		max  int
		want bool
	}{
		{"samsang", "samsung", 2, true},
		{"kitten", "sitting", 2, false},
		{"iphone", "iphone", 0, true},
		// Length difference alone exceeds the budget.
		{"ab", "abcdef", 2, false},
	}
	for _, tt := range tests {
		if got := Within(tt.a, tt.b, tt.max); got != tt.want {
			t.Errorf("Within(%q, %q, %d) = %v, want %v", tt.a, tt.b, tt.max, got, tt.want)
		}
	}
}
