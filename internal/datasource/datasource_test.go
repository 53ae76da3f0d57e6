package datasource

import (
	"errors"
	"math"
	"testing"
)

func TestUsablePrice(t *testing.T) {
	tests := []struct {
		price float64
		want  bool
	}{
		{550.25, true},
		{0.0001, true},
		{0, false},
		{-1, false},
		{math.NaN(), false},
		{math.Inf(1), false},
		{math.Inf(-1), false},
	}
	for _, tt := range tests {
		if got := usablePrice(tt.price); got != tt.want {
			t.Errorf("usablePrice(%v) = %v, want %v", tt.price, got, tt.want)
		}
	}
}

func TestSentinelErrorsDistinct(t *testing.T) {
	if errors.Is(ErrNoData, ErrTickerNotFound) {
		t.Fatal("ErrNoData must not match ErrTickerNotFound")
	}
}
