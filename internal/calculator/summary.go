package calculator

import "github.com/mmynk/billsplit/internal/models"

// ComputeSummary derives the full payment breakdown for a ledger.
//
// The adjustment pipeline runs once per participant on their own subtotal
// and once more, independently, on the sum of all subtotals. For a flat
// discount the per-person walk uses value/n while the aggregate walk uses the
// full value, so the aggregate figures can differ from the sum of the
// per-person figures by floating point drift. That difference is accepted;
// neither side is forced to match the other.
//
// Items without assignees are left out of every figure, including the grand
// total.
func ComputeSummary(items []models.LineItem, tax models.TaxSettings, discount models.DiscountSettings) models.Summary {
	participants := ResolveParticipants(items)
	people := Allocate(items, participants)

	share := FlatShare(discount.Value, len(participants))

	var subtotal float64
	for i := range people {
		adj := Adjust(people[i].Subtotal, share, tax, discount)
		people[i].DiscountAmount = adj.Discount
		people[i].ServiceChargeAmount = adj.ServiceCharge
		people[i].GSTAmount = adj.GST
		people[i].Total = adj.Total
		subtotal += people[i].Subtotal
	}

	var flat float64
	if len(participants) > 0 {
		flat = discount.Value
	}
	agg := Adjust(subtotal, flat, tax, discount)

	return models.Summary{
		People: people,
		Totals: models.Totals{
			Subtotal:           subtotal,
			DiscountTotal:      agg.Discount,
			ServiceChargeTotal: agg.ServiceCharge,
			GSTTotal:           agg.GST,
			GrandTotal:         agg.Total,
		},
	}
}
