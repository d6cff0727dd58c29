// Package api defines the wire messages of the billsplit.v1 services and
// their connect handlers and clients.
package api

// LineItem is an entry in a session's ledger.
type LineItem struct {
	ID         string   `json:"id"`
	Name       string   `json:"name"`
	Amount     float64  `json:"amount"`
	AssignedTo []string `json:"assignedTo"`
}

type TaxSettings struct {
	GST                float64 `json:"gst"`
	ServiceCharge      float64 `json:"serviceCharge"`
	ApplyGST           bool    `json:"applyGst"`
	ApplyServiceCharge bool    `json:"applyServiceCharge"`
}

type DiscountSettings struct {
	// Type is "percentage" or "amount".
	Type           string  `json:"type"`
	Value          float64 `json:"value"`
	ApplyBeforeTax bool    `json:"applyBeforeTax"`
	Enabled        bool    `json:"enabled"`
}

// Session is the stored state of one bill.
type Session struct {
	ID           string           `json:"id"`
	Title        string           `json:"title"`
	Participants []string         `json:"participants"`
	Items        []LineItem       `json:"items"`
	Tax          TaxSettings      `json:"tax"`
	Discount     DiscountSettings `json:"discount"`
	CreatedAt    int64            `json:"createdAt"`
	UpdatedAt    int64            `json:"updatedAt"`
}

// ItemShare is one person's share of an item, formatted to cents.
type ItemShare struct {
	Name   string `json:"name"`
	Amount string `json:"amount"`
}

// PersonSummary is one participant's breakdown, formatted to cents.
type PersonSummary struct {
	Name          string      `json:"name"`
	Subtotal      string      `json:"subtotal"`
	Discount      string      `json:"discount"`
	ServiceCharge string      `json:"serviceCharge"`
	GST           string      `json:"gst"`
	Total         string      `json:"total"`
	Items         []ItemShare `json:"items"`
}

// Summary is the derived breakdown of a session, formatted to cents.
type Summary struct {
	People             []PersonSummary `json:"people"`
	Subtotal           string          `json:"subtotal"`
	DiscountTotal      string          `json:"discountTotal"`
	ServiceChargeTotal string          `json:"serviceChargeTotal"`
	GSTTotal           string          `json:"gstTotal"`
	GrandTotal         string          `json:"grandTotal"`
}

// SessionResponse is returned by every call that reads or mutates a session.
type SessionResponse struct {
	Session Session `json:"session"`
	Summary Summary `json:"summary"`
}

type CreateSessionRequest struct {
	Title        string   `json:"title"`
	Participants []string `json:"participants"`
}

type GetSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionRequest struct {
	SessionID string `json:"sessionId"`
}

type DeleteSessionResponse struct{}

type AddParticipantRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

type RemoveParticipantRequest struct {
	SessionID string `json:"sessionId"`
	Name      string `json:"name"`
}

// ReplaceItemsRequest swaps the whole ledger, as after a receipt scan.
type ReplaceItemsRequest struct {
	SessionID string     `json:"sessionId"`
	Items     []LineItem `json:"items"`
}

type AddItemRequest struct {
	SessionID string  `json:"sessionId"`
	Name      string  `json:"name"`
	Amount    float64 `json:"amount"`
}

type RemoveItemRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
}

type UpdateItemAmountRequest struct {
	SessionID string  `json:"sessionId"`
	ItemID    string  `json:"itemId"`
	Amount    float64 `json:"amount"`
}

type AssignItemRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
}

type UnassignItemRequest struct {
	SessionID string `json:"sessionId"`
	ItemID    string `json:"itemId"`
	Name      string `json:"name"`
}

type UpdateTaxSettingsRequest struct {
	SessionID string      `json:"sessionId"`
	Tax       TaxSettings `json:"tax"`
}

type UpdateDiscountSettingsRequest struct {
	SessionID string           `json:"sessionId"`
	Discount  DiscountSettings `json:"discount"`
}

type ResetBillRequest struct {
	SessionID string `json:"sessionId"`
}

type GetSummaryRequest struct {
	SessionID string `json:"sessionId"`
}

type GetSummaryResponse struct {
	Summary Summary `json:"summary"`
}

type ShareSummaryRequest struct {
	SessionID string `json:"sessionId"`
}

// ShareSummaryResponse carries the plain-text summary, one "Name: $x.xx"
// line per person followed by "Total: $x.xx", and the unrounded grand total.
type ShareSummaryResponse struct {
	Text       string  `json:"text"`
	GrandTotal float64 `json:"grandTotal"`
}

type LoginRequest struct {
	Password string `json:"password"`
}

type LoginResponse struct {
	Token string `json:"token"`
	// ExpiresAt is a Unix timestamp.
	ExpiresAt int64 `json:"expiresAt"`
}
