package calculator

import "github.com/mmynk/billsplit/internal/models"

// Adjustment is the outcome of running a subtotal through the discount,
// service charge and GST pipeline.
type Adjustment struct {
	Discount      float64
	ServiceCharge float64
	GST           float64
	Total         float64
}

// Adjust applies discount, service charge and GST to subtotal.
//
// flatDiscount is the portion of an "amount" discount that applies to this
// subtotal: FlatShare for one person, the full value for the whole bill. It
// is ignored for percentage discounts.
//
// Order of operations:
//  1. discount = 0 | subtotal × value% | flatDiscount
//  2. base = subtotal − discount when applied before tax, else subtotal
//  3. service charge = base × serviceCharge%
//  4. GST = (base + service charge) × gst%
//  5. total = base + service charge + GST, minus the discount when it is
//     applied after tax
func Adjust(subtotal, flatDiscount float64, tax models.TaxSettings, discount models.DiscountSettings) Adjustment {
	var adj Adjustment

	if discount.Enabled {
		if discount.Type == models.DiscountPercentage {
			adj.Discount = subtotal * (discount.Value / 100)
		} else {
			adj.Discount = flatDiscount
		}
	}

	base := subtotal
	if discount.Enabled && discount.ApplyBeforeTax {
		base = subtotal - adj.Discount
	}

	if tax.ApplyServiceCharge {
		adj.ServiceCharge = base * (tax.ServiceCharge / 100)
	}

	// GST compounds on top of the service charge.
	if tax.ApplyGST {
		adj.GST = (base + adj.ServiceCharge) * (tax.GST / 100)
	}

	if discount.Enabled && !discount.ApplyBeforeTax {
		adj.Total = subtotal + adj.ServiceCharge + adj.GST - adj.Discount
	} else {
		adj.Total = base + adj.ServiceCharge + adj.GST
	}

	return adj
}

// FlatShare is one person's portion of a flat discount: the value split
// evenly per head regardless of spend. Zero participants yields zero.
func FlatShare(value float64, participantCount int) float64 {
	if participantCount <= 0 {
		return 0
	}
	return value / float64(participantCount)
}
