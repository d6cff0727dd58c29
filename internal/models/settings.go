package models

// MaxAmount bounds item prices and flat discounts so every derived figure
// stays finite.
const MaxAmount = 1e12

// TaxSettings configures the percentage charges applied on top of each
// participant's (possibly discounted) subtotal.
type TaxSettings struct {
	// GST is the goods and services tax rate in percent.
	GST float64 `validate:"gte=0,lte=100"`

	// ServiceCharge is the service charge rate in percent.
	ServiceCharge float64 `validate:"gte=0,lte=100"`

	ApplyGST           bool
	ApplyServiceCharge bool
}

// DefaultTaxSettings returns the settings restored on bill reset.
func DefaultTaxSettings() TaxSettings {
	return TaxSettings{
		GST:                9,
		ServiceCharge:      10,
		ApplyGST:           true,
		ApplyServiceCharge: true,
	}
}

// DiscountType selects how DiscountSettings.Value is interpreted.
type DiscountType string

const (
	// DiscountPercentage takes Value percent off each subtotal.
	DiscountPercentage DiscountType = "percentage"
	// DiscountAmount takes a flat Value off the bill, split per head.
	DiscountAmount DiscountType = "amount"
)

// DiscountSettings configures an optional bill discount.
type DiscountSettings struct {
	Type  DiscountType `validate:"oneof=percentage amount"`
	Value float64      `validate:"gte=0,lte=1000000000000"`

	// ApplyBeforeTax reduces the base that service charge and GST are
	// computed on. Otherwise the discount comes off the final total.
	ApplyBeforeTax bool

	Enabled bool
}

// DefaultDiscountSettings returns the settings restored on bill reset.
func DefaultDiscountSettings() DiscountSettings {
	return DiscountSettings{
		Type:           DiscountPercentage,
		Value:          0,
		ApplyBeforeTax: true,
		Enabled:        false,
	}
}
