// Package format turns a computed Summary into display strings.
//
// Rounding to cents happens here and only here; the calculator keeps full
// float64 precision so that recomputation stays stable.
package format

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/mmynk/billsplit/internal/models"
)

// Amount renders v rounded to two decimal places, e.g. 107.905 -> "107.91".
// Non-finite values render as "NaN", "+Inf" or "-Inf".
func Amount(v float64) string {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return strconv.FormatFloat(v, 'f', 2, 64)
	}
	return decimal.NewFromFloat(v).StringFixed(2)
}

// ItemView is one item share as displayed.
type ItemView struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// PersonView is one participant's breakdown as displayed.
type PersonView struct {
	Name          string     `json:"name"`
	Subtotal      string     `json:"subtotal"`
	Discount      string     `json:"discount"`
	ServiceCharge string     `json:"serviceCharge"`
	GST           string     `json:"gst"`
	Total         string     `json:"total"`
	Items         []ItemView `json:"items"`
}

// View is the display form of a Summary.
type View struct {
	People             []PersonView `json:"people"`
	Subtotal           string       `json:"subtotal"`
	DiscountTotal      string       `json:"discountTotal"`
	ServiceChargeTotal string       `json:"serviceChargeTotal"`
	GSTTotal           string       `json:"gstTotal"`
	GrandTotal         string       `json:"grandTotal"`
}

// Render formats every figure of s. People keep the Summary's order.
func Render(s models.Summary) View {
	people := make([]PersonView, len(s.People))
	for i, p := range s.People {
		items := make([]ItemView, len(p.Items))
		for j, item := range p.Items {
			items[j] = ItemView{Name: item.Name, Amount: Amount(item.Amount)}
		}
		people[i] = PersonView{
			Name:          p.Name,
			Subtotal:      Amount(p.Subtotal),
			Discount:      Amount(p.DiscountAmount),
			ServiceCharge: Amount(p.ServiceChargeAmount),
			GST:           Amount(p.GSTAmount),
			Total:         Amount(p.Total),
			Items:         items,
		}
	}

	return View{
		People:             people,
		Subtotal:           Amount(s.Totals.Subtotal),
		DiscountTotal:      Amount(s.Totals.DiscountTotal),
		ServiceChargeTotal: Amount(s.Totals.ServiceChargeTotal),
		GSTTotal:           Amount(s.Totals.GSTTotal),
		GrandTotal:         Amount(s.Totals.GrandTotal),
	}
}

// ShareText is the plain-text summary handed to the share action:
//
//	Alice: $21.58
//	Bob: $11.99
//	Total: $33.57
func ShareText(s models.Summary) string {
	var b strings.Builder
	for _, p := range s.People {
		b.WriteString(p.Name)
		b.WriteString(": $")
		b.WriteString(Amount(p.Total))
		b.WriteString("\n")
	}
	b.WriteString("Total: $")
	b.WriteString(Amount(s.Totals.GrandTotal))
	return b.String()
}
