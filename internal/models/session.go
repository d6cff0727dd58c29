package models

// Session holds the complete mutable state of one bill being split:
// the roster, the item ledger and both settings objects.
// Everything else (per-person totals, grand total) is derived from it.
type Session struct {
	// ID is the unique identifier for the session (UUID format).
	ID string

	// Title is the human-readable name for the bill.
	// Auto-generated from the roster when left empty.
	Title string

	// Participants is the roster of people who can be assigned items,
	// kept sorted and free of duplicates.
	Participants []string

	// Items is the item ledger, in display order.
	Items []LineItem

	Tax      TaxSettings
	Discount DiscountSettings

	// CreatedAt is the Unix timestamp when the session was created.
	CreatedAt int64

	// UpdatedAt is the Unix timestamp of the last saved mutation.
	UpdatedAt int64
}

// NewSession returns an empty session with default settings.
func NewSession() *Session {
	return &Session{
		Tax:      DefaultTaxSettings(),
		Discount: DefaultDiscountSettings(),
	}
}
