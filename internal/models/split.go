package models

import "math"

// LineItem represents a single priced entry on a bill.
// Items can be shared among multiple participants.
type LineItem struct {
	// ID is the unique identifier for the item within its session.
	// Receipt imports use "1".."n"; manual entries get a UUID.
	ID string

	// Name is the description of the item (e.g., "Pasta", "Drinks").
	Name string

	// Amount is the pre-tax price of this item. Never negative.
	Amount float64

	// AssignedTo is the set of participant names who split this item.
	// If multiple people are assigned, the item is split equally among them.
	// Order is irrelevant and the list holds no duplicates.
	AssignedTo []string
}

// IsAssigned reports whether name is one of the item's assignees.
func (i LineItem) IsAssigned(name string) bool {
	for _, n := range i.AssignedTo {
		if n == name {
			return true
		}
	}
	return false
}

// PersonItem represents an item's share for one person.
type PersonItem struct {
	Name   string
	Amount float64 // This person's share of the item
}

// PersonTotal represents one person's calculated share of a bill.
// This is the output of the split calculation and is never persisted.
type PersonTotal struct {
	// Name is the participant.
	Name string

	// Subtotal is the sum of this person's even-split item shares (pre-tax).
	Subtotal float64

	// DiscountAmount is this person's portion of the configured discount.
	DiscountAmount float64

	// ServiceChargeAmount is the service charge on this person's base.
	ServiceChargeAmount float64

	// GSTAmount is the GST on this person's base plus service charge.
	GSTAmount float64

	// Total is the final amount this person owes.
	Total float64

	// Items are the specific items assigned to this person with their share amounts,
	// in ledger order.
	Items []PersonItem
}

// Totals are the bill-wide aggregate figures.
type Totals struct {
	Subtotal           float64
	DiscountTotal      float64
	ServiceChargeTotal float64
	GSTTotal           float64
	GrandTotal         float64
}

// Summary is the full derived breakdown of a bill: one PersonTotal per
// participant with at least one assigned item (sorted by name) plus the
// aggregate totals.
type Summary struct {
	People []PersonTotal
	Totals Totals
}

// Finite reports whether every figure in the summary is a finite number.
func (s Summary) Finite() bool {
	t := s.Totals
	values := []float64{t.Subtotal, t.DiscountTotal, t.ServiceChargeTotal, t.GSTTotal, t.GrandTotal}
	for _, p := range s.People {
		values = append(values, p.Subtotal, p.DiscountAmount, p.ServiceChargeAmount, p.GSTAmount, p.Total)
	}
	for _, v := range values {
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return false
		}
	}
	return true
}
