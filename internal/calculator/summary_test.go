package calculator

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/models"
)

func sampleLedger() []models.LineItem {
	return []models.LineItem{
		{ID: "1", Name: "Pasta", Amount: 12.5, AssignedTo: []string{"Charlie"}},
		{ID: "2", Name: "Pizza", Amount: 15.9, AssignedTo: []string{"Alice", "Bob", "Charlie"}},
		{ID: "3", Name: "Salad", Amount: 8.75, AssignedTo: []string{}},
		{ID: "4", Name: "Drinks", Amount: 7.2, AssignedTo: []string{"Bob", "Alice"}},
		{ID: "5", Name: "Dessert", Amount: 9.5, AssignedTo: []string{"Alice"}},
	}
}

func TestComputeSummary_UnassignedItemsExcluded(t *testing.T) {
	noCharges := models.TaxSettings{}
	summary := ComputeSummary(sampleLedger(), noCharges, models.DefaultDiscountSettings())

	// 8.75 salad is nobody's.
	assert.InDelta(t, 12.5+15.9+7.2+9.5, summary.Totals.Subtotal, delta)
	assert.InDelta(t, summary.Totals.Subtotal, summary.Totals.GrandTotal, delta)
	for _, p := range summary.People {
		for _, item := range p.Items {
			assert.NotEqual(t, "Salad", item.Name)
		}
	}
}

func TestComputeSummary_SortedByName(t *testing.T) {
	summary := ComputeSummary(sampleLedger(), models.DefaultTaxSettings(), models.DefaultDiscountSettings())

	require.Len(t, summary.People, 3)
	assert.Equal(t, "Alice", summary.People[0].Name)
	assert.Equal(t, "Bob", summary.People[1].Name)
	assert.Equal(t, "Charlie", summary.People[2].Name)

	// Reversing the ledger changes nothing about the ordering.
	items := sampleLedger()
	for i, j := 0, len(items)-1; i < j; i, j = i+1, j-1 {
		items[i], items[j] = items[j], items[i]
	}
	reversed := ComputeSummary(items, models.DefaultTaxSettings(), models.DefaultDiscountSettings())
	for i := range summary.People {
		assert.Equal(t, summary.People[i].Name, reversed.People[i].Name)
	}
}

func TestComputeSummary_Idempotent(t *testing.T) {
	discount := models.DiscountSettings{Type: models.DiscountAmount, Value: 7, ApplyBeforeTax: false, Enabled: true}
	first := ComputeSummary(sampleLedger(), models.DefaultTaxSettings(), discount)
	second := ComputeSummary(sampleLedger(), models.DefaultTaxSettings(), discount)

	assert.Equal(t, first, second)
}

func TestComputeSummary_FlatDiscountPerHead(t *testing.T) {
	items := []models.LineItem{
		{ID: "1", Name: "Steak", Amount: 80, AssignedTo: []string{"Alice"}},
		{ID: "2", Name: "Soup", Amount: 20, AssignedTo: []string{"Bob"}},
	}
	discount := models.DiscountSettings{Type: models.DiscountAmount, Value: 20, ApplyBeforeTax: true, Enabled: true}

	summary := ComputeSummary(items, models.DefaultTaxSettings(), discount)

	require.Len(t, summary.People, 2)
	// Split per head, not pro-rata by spend.
	assert.Equal(t, 10.0, summary.People[0].DiscountAmount)
	assert.Equal(t, 10.0, summary.People[1].DiscountAmount)
	assert.Equal(t, 20.0, summary.Totals.DiscountTotal)
}

func TestComputeSummary_FlatDiscountAggregateUsesFullValue(t *testing.T) {
	items := []models.LineItem{
		{ID: "1", Name: "Platter", Amount: 100, AssignedTo: []string{"Alice", "Bob", "Charlie"}},
	}
	discount := models.DiscountSettings{Type: models.DiscountAmount, Value: 10, ApplyBeforeTax: true, Enabled: true}

	summary := ComputeSummary(items, models.DefaultTaxSettings(), discount)

	assert.Equal(t, 10.0, summary.Totals.DiscountTotal)

	var perPersonDiscount, perPersonTotal float64
	for _, p := range summary.People {
		perPersonDiscount += p.DiscountAmount
		perPersonTotal += p.Total
	}
	// Thirds do not sum back exactly; the two walks may differ only by drift.
	assert.InDelta(t, summary.Totals.DiscountTotal, perPersonDiscount, 1e-9)
	assert.InDelta(t, summary.Totals.GrandTotal, perPersonTotal, 1e-9)
}

func TestComputeSummary_PercentageAggregateMatchesPeople(t *testing.T) {
	for _, beforeTax := range []bool{true, false} {
		discount := models.DiscountSettings{Type: models.DiscountPercentage, Value: 15, ApplyBeforeTax: beforeTax, Enabled: true}
		summary := ComputeSummary(sampleLedger(), models.DefaultTaxSettings(), discount)

		var sc, gst, total float64
		for _, p := range summary.People {
			sc += p.ServiceChargeAmount
			gst += p.GSTAmount
			total += p.Total
		}
		assert.InDelta(t, summary.Totals.ServiceChargeTotal, sc, delta)
		assert.InDelta(t, summary.Totals.GSTTotal, gst, delta)
		assert.InDelta(t, summary.Totals.GrandTotal, total, delta)
	}
}

func TestComputeSummary_NoAssignments(t *testing.T) {
	items := []models.LineItem{
		{ID: "1", Name: "Pasta", Amount: 12.5},
	}
	discount := models.DiscountSettings{Type: models.DiscountAmount, Value: 20, ApplyBeforeTax: false, Enabled: true}

	summary := ComputeSummary(items, models.DefaultTaxSettings(), discount)

	assert.Empty(t, summary.People)
	assert.Equal(t, models.Totals{}, summary.Totals)
}

func TestComputeSummary_TaxOrdering(t *testing.T) {
	items := []models.LineItem{
		{ID: "1", Name: "Set Meal", Amount: 100, AssignedTo: []string{"Alice"}},
	}

	summary := ComputeSummary(items, models.DefaultTaxSettings(), models.DefaultDiscountSettings())

	require.Len(t, summary.People, 1)
	alice := summary.People[0]
	assert.InDelta(t, 10, alice.ServiceChargeAmount, delta)
	assert.InDelta(t, 9.9, alice.GSTAmount, delta)
	assert.InDelta(t, 119.9, alice.Total, delta)
	assert.InDelta(t, 119.9, summary.Totals.GrandTotal, delta)
}
