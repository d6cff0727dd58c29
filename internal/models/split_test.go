package models

import (
	"math"
	"testing"
)

func TestSummaryFinite(t *testing.T) {
	tests := []struct {
		name    string
		summary Summary
		want    bool
	}{
		{"empty", Summary{}, true},
		{"finite", Summary{People: []PersonTotal{{Name: "Alice", Total: 12.5}}, Totals: Totals{GrandTotal: 12.5}}, true},
		{"infinite total", Summary{Totals: Totals{GrandTotal: math.Inf(1)}}, false},
		{"nan person gst", Summary{People: []PersonTotal{{Name: "Alice", GSTAmount: math.NaN()}}}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.summary.Finite(); got != tt.want {
				t.Errorf("Finite() = %v, want %v", got, tt.want)
			}
		})
	}
}
