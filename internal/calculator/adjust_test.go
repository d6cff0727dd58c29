package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/mmynk/billsplit/internal/models"
)

const delta = 1e-9

func TestAdjust(t *testing.T) {
	tax := models.DefaultTaxSettings() // 9% GST, 10% service charge

	tests := []struct {
		name     string
		subtotal float64
		flat     float64
		tax      models.TaxSettings
		discount models.DiscountSettings
		want     Adjustment
	}{
		{
			name:     "GST compounds on service charge",
			subtotal: 100,
			tax:      tax,
			discount: models.DefaultDiscountSettings(),
			want:     Adjustment{Discount: 0, ServiceCharge: 10, GST: 9.9, Total: 119.9},
		},
		{
			name:     "percentage discount before tax",
			subtotal: 100,
			tax:      tax,
			discount: models.DiscountSettings{Type: models.DiscountPercentage, Value: 10, ApplyBeforeTax: true, Enabled: true},
			want:     Adjustment{Discount: 10, ServiceCharge: 9, GST: 8.91, Total: 107.91},
		},
		{
			name:     "percentage discount after tax",
			subtotal: 100,
			tax:      tax,
			discount: models.DiscountSettings{Type: models.DiscountPercentage, Value: 10, ApplyBeforeTax: false, Enabled: true},
			want:     Adjustment{Discount: 10, ServiceCharge: 10, GST: 9.9, Total: 109.9},
		},
		{
			name:     "flat discount before tax uses the given share",
			subtotal: 50,
			flat:     10,
			tax:      tax,
			discount: models.DiscountSettings{Type: models.DiscountAmount, Value: 20, ApplyBeforeTax: true, Enabled: true},
			// base 40, sc 4, gst 44*0.09 = 3.96
			want:     Adjustment{Discount: 10, ServiceCharge: 4, GST: 3.96, Total: 47.96},
		},
		{
			name:     "disabled discount is ignored",
			subtotal: 100,
			flat:     10,
			tax:      tax,
			discount: models.DiscountSettings{Type: models.DiscountAmount, Value: 20, ApplyBeforeTax: true, Enabled: false},
			want:     Adjustment{Discount: 0, ServiceCharge: 10, GST: 9.9, Total: 119.9},
		},
		{
			name:     "no charges",
			subtotal: 42.5,
			tax:      models.TaxSettings{GST: 9, ServiceCharge: 10},
			discount: models.DefaultDiscountSettings(),
			want:     Adjustment{Total: 42.5},
		},
		{
			name:     "GST only",
			subtotal: 100,
			tax:      models.TaxSettings{GST: 9, ServiceCharge: 10, ApplyGST: true},
			discount: models.DefaultDiscountSettings(),
			want:     Adjustment{GST: 9, Total: 109},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Adjust(tt.subtotal, tt.flat, tt.tax, tt.discount)
			assert.InDelta(t, tt.want.Discount, got.Discount, delta, "discount")
			assert.InDelta(t, tt.want.ServiceCharge, got.ServiceCharge, delta, "service charge")
			assert.InDelta(t, tt.want.GST, got.GST, delta, "gst")
			assert.InDelta(t, tt.want.Total, got.Total, delta, "total")
		})
	}
}

func TestFlatShare(t *testing.T) {
	assert.Equal(t, 10.0, FlatShare(20, 2))
	assert.InDelta(t, 3.3333333333, FlatShare(10, 3), 1e-9)
	assert.Equal(t, 0.0, FlatShare(20, 0))
}
