package pricing

import (
	"math"
	"testing"
)

func TestTotal(t *testing.T) {
	lines := []Line{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: 50, Quantity: 1},
	}
	if got := Total(lines); got != 250 {
		t.Fatalf("expected total 250, got %v", got)
	}
}

func TestTotal_SkipsMalformedLines(t *testing.T) {
	lines := []Line{
		{UnitPrice: 100, Quantity: 2},
		{UnitPrice: -5, Quantity: 3},
		{UnitPrice: 10, Quantity: -1},
		{UnitPrice: math.NaN(), Quantity: 1},
		{UnitPrice: math.Inf(1), Quantity: 1},
	}
	if got := Total(lines); got != 200 {
		t.Fatalf("expected malformed lines to be skipped, got total %v", got)
	}
}

func TestTotal_Empty(t *testing.T) {
	if got := Total(nil); got != 0 {
		t.Fatalf("expected 0 for empty input, got %v", got)
	}
}
