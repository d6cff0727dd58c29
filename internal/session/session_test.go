package session

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmynk/billsplit/internal/models"
)

func newTestSession(t *testing.T, names ...string) *Session {
	t.Helper()
	s := New(nil)
	for _, n := range names {
		require.NoError(t, s.AddParticipant(n))
	}
	return s
}

func TestAddParticipant(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.AddParticipant("  Charlie "))
	require.NoError(t, s.AddParticipant("alice"))
	require.NoError(t, s.AddParticipant("Bob"))

	assert.Equal(t, []string{"alice", "Bob", "Charlie"}, s.State().Participants)

	assert.ErrorIs(t, s.AddParticipant("Bob"), ErrDuplicateParticipant)
	assert.ErrorIs(t, s.AddParticipant("   "), ErrEmptyName)
	assert.ErrorIs(t, s.AddParticipant("<b></b>"), ErrEmptyName)
}

func TestRemoveParticipant_Cascades(t *testing.T) {
	s := newTestSession(t, "Alice", "Bob")
	require.NoError(t, s.ReplaceItems([]models.LineItem{
		{ID: "1", Name: "Pizza", Amount: 20, AssignedTo: []string{"Alice", "Bob"}},
		{ID: "2", Name: "Beer", Amount: 10, AssignedTo: []string{"Bob"}},
	}))

	require.NoError(t, s.RemoveParticipant("Bob"))

	assert.Equal(t, []string{"Alice"}, s.State().Participants)
	assert.Equal(t, []string{"Alice"}, s.State().Items[0].AssignedTo)
	assert.Empty(t, s.State().Items[1].AssignedTo)

	// Alice now carries the whole pizza; the beer is nobody's.
	summary := s.Summary()
	require.Len(t, summary.People, 1)
	assert.Equal(t, 20.0, summary.People[0].Subtotal)

	assert.ErrorIs(t, s.RemoveParticipant("Bob"), ErrUnknownParticipant)
}

func TestReplaceItems(t *testing.T) {
	s := newTestSession(t, "Alice")
	require.NoError(t, s.ReplaceItems([]models.LineItem{
		{ID: "1", Name: "Old", Amount: 1, AssignedTo: []string{"Alice"}},
	}))

	err := s.ReplaceItems([]models.LineItem{
		{Name: "<script>x</script>Fish &amp; Chips", Amount: 12, AssignedTo: []string{"Alice", "Alice", ""}},
		{ID: "b", Name: "Tea", Amount: 3},
	})
	require.NoError(t, err)

	items := s.State().Items
	require.Len(t, items, 2)
	assert.NotEmpty(t, items[0].ID)
	assert.Equal(t, "Fish & Chips", items[0].Name)
	assert.Equal(t, []string{"Alice"}, items[0].AssignedTo)
	assert.Equal(t, "b", items[1].ID)

	t.Run("rejects negative amounts", func(t *testing.T) {
		err := s.ReplaceItems([]models.LineItem{{ID: "x", Name: "Refund", Amount: -5}})
		assert.ErrorIs(t, err, ErrNegativeAmount)
		assert.Len(t, s.State().Items, 2, "ledger must be untouched")
	})

	t.Run("rejects duplicate ids", func(t *testing.T) {
		err := s.ReplaceItems([]models.LineItem{{ID: "x", Name: "A"}, {ID: "x", Name: "B"}})
		assert.ErrorIs(t, err, ErrDuplicateItem)
	})

	t.Run("rejects assignees missing from the roster", func(t *testing.T) {
		err := s.ReplaceItems([]models.LineItem{{ID: "x", Name: "Cake", Amount: 4, AssignedTo: []string{"Mallory"}}})
		assert.ErrorIs(t, err, ErrUnknownParticipant)
		assert.Len(t, s.State().Items, 2, "ledger must be untouched")
	})

	t.Run("rejects amounts above the maximum", func(t *testing.T) {
		err := s.ReplaceItems([]models.LineItem{{ID: "x", Name: "Yacht", Amount: 1e300}})
		assert.ErrorIs(t, err, ErrAmountTooLarge)
	})
}

func TestAssignAndUnassign(t *testing.T) {
	s := newTestSession(t, "Alice", "Bob")
	item, err := s.AddItem("Pasta", 12.5)
	require.NoError(t, err)

	require.NoError(t, s.Assign(item.ID, "Alice"))
	require.NoError(t, s.Assign(item.ID, "Alice"))
	require.NoError(t, s.Assign(item.ID, "Bob"))
	assert.Equal(t, []string{"Alice", "Bob"}, s.State().Items[0].AssignedTo)

	assert.ErrorIs(t, s.Assign(item.ID, "Mallory"), ErrUnknownParticipant)
	assert.ErrorIs(t, s.Assign("missing", "Alice"), ErrItemNotFound)

	require.NoError(t, s.Unassign(item.ID, "Alice"))
	assert.Equal(t, []string{"Bob"}, s.State().Items[0].AssignedTo)
	assert.ErrorIs(t, s.Unassign("missing", "Alice"), ErrItemNotFound)
}

func TestItemEdits(t *testing.T) {
	s := newTestSession(t, "Alice")
	item, err := s.AddItem("Salad", 8.75)
	require.NoError(t, err)

	_, err = s.AddItem("Refund", -1)
	assert.ErrorIs(t, err, ErrNegativeAmount)

	require.NoError(t, s.UpdateItemAmount(item.ID, 9.25))
	assert.Equal(t, 9.25, s.State().Items[0].Amount)
	assert.ErrorIs(t, s.UpdateItemAmount(item.ID, -1), ErrNegativeAmount)
	assert.ErrorIs(t, s.UpdateItemAmount(item.ID, 1e300), ErrAmountTooLarge)
	assert.ErrorIs(t, s.UpdateItemAmount(item.ID, math.NaN()), ErrAmountTooLarge)
	_, err = s.AddItem("Yacht", models.MaxAmount*2)
	assert.ErrorIs(t, err, ErrAmountTooLarge)
	assert.Len(t, s.State().Items, 1)
	assert.ErrorIs(t, s.UpdateItemAmount("missing", 1), ErrItemNotFound)

	require.NoError(t, s.RemoveItem(item.ID))
	assert.Empty(t, s.State().Items)
	assert.ErrorIs(t, s.RemoveItem(item.ID), ErrItemNotFound)
}

func TestSettings(t *testing.T) {
	s := newTestSession(t)

	require.NoError(t, s.SetTaxSettings(models.TaxSettings{GST: 8, ServiceCharge: 0, ApplyGST: true}))
	assert.Equal(t, 8.0, s.State().Tax.GST)

	err := s.SetTaxSettings(models.TaxSettings{GST: -1})
	assert.ErrorIs(t, err, ErrInvalidSettings)
	assert.Equal(t, 8.0, s.State().Tax.GST)
	assert.ErrorIs(t, s.SetTaxSettings(models.TaxSettings{GST: 1e300, ApplyGST: true}), ErrInvalidSettings)
	assert.ErrorIs(t, s.SetTaxSettings(models.TaxSettings{ServiceCharge: 101}), ErrInvalidSettings)
	assert.Equal(t, 8.0, s.State().Tax.GST)

	discount := models.DiscountSettings{Type: models.DiscountAmount, Value: 5, Enabled: true}
	require.NoError(t, s.SetDiscountSettings(discount))
	assert.Equal(t, discount, s.State().Discount)

	assert.ErrorIs(t, s.SetDiscountSettings(models.DiscountSettings{Type: "bogo"}), ErrInvalidSettings)
	assert.ErrorIs(t, s.SetDiscountSettings(models.DiscountSettings{Type: models.DiscountPercentage, Value: -3}), ErrInvalidSettings)
	assert.ErrorIs(t, s.SetDiscountSettings(models.DiscountSettings{Type: models.DiscountAmount, Value: 1e300}), ErrInvalidSettings)
}

func TestReset(t *testing.T) {
	s := newTestSession(t, "Alice")
	_, err := s.AddItem("Pasta", 12.5)
	require.NoError(t, err)
	require.NoError(t, s.SetTaxSettings(models.TaxSettings{GST: 1}))
	require.NoError(t, s.SetDiscountSettings(models.DiscountSettings{Type: models.DiscountAmount, Value: 5, Enabled: true}))

	s.Reset()

	state := s.State()
	assert.Empty(t, state.Items)
	assert.Equal(t, models.DefaultTaxSettings(), state.Tax)
	assert.Equal(t, models.DefaultDiscountSettings(), state.Discount)
	assert.Equal(t, []string{"Alice"}, state.Participants)
}

func TestSubscribe(t *testing.T) {
	s := newTestSession(t, "Alice")

	var got []models.Summary
	unsubscribe := s.Subscribe(func(summary models.Summary) {
		got = append(got, summary)
	})

	item, err := s.AddItem("Pasta", 100)
	require.NoError(t, err)
	require.NoError(t, s.Assign(item.ID, "Alice"))

	require.Len(t, got, 2)
	assert.Empty(t, got[0].People)
	require.Len(t, got[1].People, 1)
	assert.InDelta(t, 119.9, got[1].Totals.GrandTotal, 1e-9)

	// Failed mutations do not notify.
	_ = s.Assign(item.ID, "Nobody")
	assert.Len(t, got, 2)

	unsubscribe()
	require.NoError(t, s.UpdateItemAmount(item.ID, 50))
	assert.Len(t, got, 2)
}
