// Package session owns the mutable state of one bill: roster, item ledger
// and settings. Every successful mutation recomputes the summary and hands
// it to the registered observers.
//
// A Session is not safe for concurrent use; callers serialise access.
package session

import (
	"errors"
	"fmt"
	"html"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"github.com/microcosm-cc/bluemonday"

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
)

var (
	ErrEmptyName            = errors.New("participant name cannot be empty")
	ErrDuplicateParticipant = errors.New("participant already exists")
	ErrUnknownParticipant   = errors.New("participant not found")
	ErrItemNotFound         = errors.New("item not found")
	ErrDuplicateItem        = errors.New("duplicate item id")
	ErrNegativeAmount       = errors.New("amount cannot be negative")
	ErrAmountTooLarge       = errors.New("amount exceeds the maximum")
	ErrInvalidSettings      = errors.New("invalid settings")
)

var (
	validate   = validator.New()
	namePolicy = bluemonday.StrictPolicy()
)

// Observer receives the recomputed summary after each mutation.
type Observer func(models.Summary)

// Session wraps a models.Session with its mutation operations.
type Session struct {
	state     *models.Session
	observers map[int]Observer
	nextID    int
}

// New wraps state. The Session takes ownership of state; callers should
// read it back through State.
func New(state *models.Session) *Session {
	if state == nil {
		state = models.NewSession()
	}
	return &Session{
		state:     state,
		observers: make(map[int]Observer),
	}
}

// State returns the underlying state for persistence.
func (s *Session) State() *models.Session {
	return s.state
}

// Subscribe registers fn and returns a function that removes it.
func (s *Session) Subscribe(fn Observer) (unsubscribe func()) {
	id := s.nextID
	s.nextID++
	s.observers[id] = fn
	return func() { delete(s.observers, id) }
}

// Summary computes the current breakdown.
func (s *Session) Summary() models.Summary {
	return calculator.ComputeSummary(s.state.Items, s.state.Tax, s.state.Discount)
}

func (s *Session) changed() {
	if len(s.observers) == 0 {
		return
	}
	summary := s.Summary()
	for _, fn := range s.observers {
		fn(summary)
	}
}

// SetTitle renames the bill. Titles do not affect the summary, so
// observers are not notified.
func (s *Session) SetTitle(title string) {
	s.state.Title = cleanText(title)
}

// AddParticipant adds a trimmed name to the roster.
func (s *Session) AddParticipant(name string) error {
	name = cleanText(name)
	if name == "" {
		return ErrEmptyName
	}
	if s.hasParticipant(name) {
		return fmt.Errorf("%w: %s", ErrDuplicateParticipant, name)
	}
	s.state.Participants = append(s.state.Participants, name)
	calculator.SortNames(s.state.Participants)
	s.changed()
	return nil
}

// RemoveParticipant removes name from the roster and from every item it is
// assigned to.
func (s *Session) RemoveParticipant(name string) error {
	idx := -1
	for i, p := range s.state.Participants {
		if p == name {
			idx = i
			break
		}
	}
	if idx < 0 {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
	}
	s.state.Participants = append(s.state.Participants[:idx], s.state.Participants[idx+1:]...)
	for i := range s.state.Items {
		s.state.Items[i].AssignedTo = without(s.state.Items[i].AssignedTo, name)
	}
	s.changed()
	return nil
}

// ReplaceItems swaps the whole ledger for items. Nothing is merged.
// Missing IDs are generated and duplicate assignees collapsed. Every
// assignee must already be on the roster.
func (s *Session) ReplaceItems(items []models.LineItem) error {
	ledger := make([]models.LineItem, 0, len(items))
	ids := make(map[string]struct{}, len(items))
	for _, item := range items {
		if err := checkAmount(item.Amount); err != nil {
			return fmt.Errorf("%w: item %q", err, item.Name)
		}
		if item.ID == "" {
			item.ID = uuid.New().String()
		}
		if _, dup := ids[item.ID]; dup {
			return fmt.Errorf("%w: %s", ErrDuplicateItem, item.ID)
		}
		ids[item.ID] = struct{}{}
		item.Name = cleanText(item.Name)
		item.AssignedTo = dedupe(item.AssignedTo)
		for _, name := range item.AssignedTo {
			if !s.hasParticipant(name) {
				return fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
			}
		}
		ledger = append(ledger, item)
	}
	s.state.Items = ledger
	s.changed()
	return nil
}

// AddItem appends a manually entered, unassigned item and returns it.
func (s *Session) AddItem(name string, amount float64) (models.LineItem, error) {
	if err := checkAmount(amount); err != nil {
		return models.LineItem{}, err
	}
	item := models.LineItem{
		ID:         uuid.New().String(),
		Name:       cleanText(name),
		Amount:     amount,
		AssignedTo: []string{},
	}
	s.state.Items = append(s.state.Items, item)
	s.changed()
	return item, nil
}

// RemoveItem drops an item from the ledger.
func (s *Session) RemoveItem(itemID string) error {
	idx, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	s.state.Items = append(s.state.Items[:idx], s.state.Items[idx+1:]...)
	s.changed()
	return nil
}

// UpdateItemAmount edits an item's price.
func (s *Session) UpdateItemAmount(itemID string, amount float64) error {
	if err := checkAmount(amount); err != nil {
		return err
	}
	idx, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	s.state.Items[idx].Amount = amount
	s.changed()
	return nil
}

// Assign adds a roster member to an item. Assigning someone twice is a no-op.
func (s *Session) Assign(itemID, name string) error {
	if !s.hasParticipant(name) {
		return fmt.Errorf("%w: %s", ErrUnknownParticipant, name)
	}
	idx, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	item := &s.state.Items[idx]
	if item.IsAssigned(name) {
		return nil
	}
	item.AssignedTo = append(item.AssignedTo, name)
	s.changed()
	return nil
}

// Unassign removes name from an item.
func (s *Session) Unassign(itemID, name string) error {
	idx, err := s.itemIndex(itemID)
	if err != nil {
		return err
	}
	item := &s.state.Items[idx]
	if !item.IsAssigned(name) {
		return nil
	}
	item.AssignedTo = without(item.AssignedTo, name)
	s.changed()
	return nil
}

// SetTaxSettings replaces the tax settings wholesale.
func (s *Session) SetTaxSettings(tax models.TaxSettings) error {
	if err := validate.Struct(tax); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.state.Tax = tax
	s.changed()
	return nil
}

// SetDiscountSettings replaces the discount settings wholesale.
func (s *Session) SetDiscountSettings(discount models.DiscountSettings) error {
	if err := validate.Struct(discount); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidSettings, err)
	}
	s.state.Discount = discount
	s.changed()
	return nil
}

// Reset clears the ledger and restores default settings. The roster stays.
func (s *Session) Reset() {
	s.state.Items = []models.LineItem{}
	s.state.Tax = models.DefaultTaxSettings()
	s.state.Discount = models.DefaultDiscountSettings()
	s.changed()
}

func checkAmount(amount float64) error {
	switch {
	case amount < 0:
		return ErrNegativeAmount
	case !(amount <= models.MaxAmount):
		return ErrAmountTooLarge
	}
	return nil
}

func (s *Session) hasParticipant(name string) bool {
	for _, p := range s.state.Participants {
		if p == name {
			return true
		}
	}
	return false
}

func (s *Session) itemIndex(itemID string) (int, error) {
	for i, item := range s.state.Items {
		if item.ID == itemID {
			return i, nil
		}
	}
	return -1, fmt.Errorf("%w: %s", ErrItemNotFound, itemID)
}

// cleanText strips markup from user or OCR supplied text.
func cleanText(s string) string {
	return strings.TrimSpace(html.UnescapeString(namePolicy.Sanitize(s)))
}

func dedupe(names []string) []string {
	out := make([]string, 0, len(names))
	seen := make(map[string]struct{}, len(names))
	for _, n := range names {
		if n == "" {
			continue
		}
		if _, ok := seen[n]; ok {
			continue
		}
		seen[n] = struct{}{}
		out = append(out, n)
	}
	return out
}

func without(names []string, name string) []string {
	out := names[:0]
	for _, n := range names {
		if n != name {
			out = append(out, n)
		}
	}
	return out
}
