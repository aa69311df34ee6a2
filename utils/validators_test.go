package utils

import (
	"math"
	"testing"
)

func TestValidateLatitude(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want bool
	}{
		{"equator", 0, true},
		{"bangalore", 12.9716, true},
		{"north pole", 90, true},
		{"south pole", -90, true},
		{"above range", 90.0001, false},
		{"below range", -91, false},
		{"NaN", math.NaN(), false},
		{"infinite", math.Inf(1), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateLatitude(tt.in); got != tt.want {
				t.Errorf("ValidateLatitude(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestValidateLongitude(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want bool
	}{
		{"meridian", 0, true},
		{"bangalore", 77.5946, true},
		{"date line east", 180, true},
		{"date line west", -180, true},
		{"above range", 180.5, false},
		{"below range", -181, false},
		{"NaN", math.NaN(), false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidateLongitude(tt.in); got != tt.want {
				t.Errorf("ValidateLongitude(%v) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}
