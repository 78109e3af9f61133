package ledger

import (
	"math"
	"testing"
)

func TestRound(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want float64
	}{
		{"exact cents", 12.34, 12.34},
		{"rounds up", 10.006, 10.01},
		{"rounds down", 10.004, 10.0},
		{"repeating third", 10.0 / 3.0, 3.33},
		{"negative", -10.006, -10.01},
		{"zero", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Round(tt.in); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Round(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestIsZero(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want bool
	}{
		{"zero", 0, true},
		{"below epsilon", 0.009, true},
		{"negative below epsilon", -0.009, true},
		{"at epsilon", 0.01, false},
		{"above epsilon", 0.02, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := IsZero(tt.in); got != tt.want {
				t.Errorf("IsZero(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestShare(t *testing.T) {
	tests := []struct {
		name   string
		amount float64
		n      int
		want   float64
	}{
		{"three way", 30, 3, 10},
		{"two way", 9, 2, 4.5},
		{"single", 10, 1, 10},
		{"zero participants treated as one", 10, 0, 10},
		{"negative count treated as one", 10, -3, 10},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Share(tt.amount, tt.n); math.Abs(got-tt.want) > 1e-9 {
				t.Errorf("Share(%v, %d) = %v, want %v", tt.amount, tt.n, got, tt.want)
			}
		})
	}
}
