package sqlite

import (
	"context"
	"errors"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := New(filepath.Join(t.TempDir(), "nested", "test.db"))
	if err != nil {
		t.Fatalf("Failed to create store: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestSQLiteStore(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	t.Run("CreateSession generates ID and title", func(t *testing.T) {
		session := models.NewSession()
		session.Participants = []string{"Alice", "Bob"}

		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		if session.ID == "" {
			t.Error("Expected session ID to be generated")
		}
		if session.Title != "Split with Alice, Bob" {
			t.Errorf("Unexpected title: %s", session.Title)
		}
		if session.CreatedAt == 0 || session.UpdatedAt != session.CreatedAt {
			t.Errorf("Expected timestamps to be set, got created=%d updated=%d", session.CreatedAt, session.UpdatedAt)
		}
	})

	t.Run("GetSession retrieves complete session", func(t *testing.T) {
		original := models.NewSession()
		original.Title = "Test Dinner"
		original.Participants = []string{"alice", "Bob", "Charlie"}
		original.Items = []models.LineItem{
			{ID: "2", Name: "Steak", Amount: 30.0, AssignedTo: []string{"Charlie"}},
			{ID: "1", Name: "Salad", Amount: 20.5, AssignedTo: []string{"Bob", "alice"}},
			{ID: "3", Name: "Water", Amount: 0, AssignedTo: []string{}},
		}
		original.Tax = models.TaxSettings{GST: 8, ServiceCharge: 12.5, ApplyGST: false, ApplyServiceCharge: true}
		original.Discount = models.DiscountSettings{Type: models.DiscountAmount, Value: 5, ApplyBeforeTax: false, Enabled: true}

		if err := store.CreateSession(ctx, original); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		retrieved, err := store.GetSession(ctx, original.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}

		if retrieved.Title != "Test Dinner" {
			t.Errorf("Title mismatch: got %s", retrieved.Title)
		}
		if !reflect.DeepEqual(retrieved.Participants, original.Participants) {
			t.Errorf("Participants mismatch: got %v, want %v", retrieved.Participants, original.Participants)
		}
		if retrieved.Tax != original.Tax {
			t.Errorf("Tax mismatch: got %+v, want %+v", retrieved.Tax, original.Tax)
		}
		if retrieved.Discount != original.Discount {
			t.Errorf("Discount mismatch: got %+v, want %+v", retrieved.Discount, original.Discount)
		}

		// Items keep ledger order, not id order
		wantIDs := []string{"2", "1", "3"}
		for i, item := range retrieved.Items {
			if item.ID != wantIDs[i] {
				t.Errorf("Item %d: got id %s, want %s", i, item.ID, wantIDs[i])
			}
		}
		if got := retrieved.Items[1].AssignedTo; !reflect.DeepEqual(got, []string{"Bob", "alice"}) {
			t.Errorf("Salad assignments: got %v", got)
		}
		if retrieved.Items[2].AssignedTo == nil {
			t.Error("Expected empty, non-nil assignment list")
		}
	})

	t.Run("Item ids are scoped to their session", func(t *testing.T) {
		a := models.NewSession()
		a.Items = []models.LineItem{{ID: "1", Name: "Tea", Amount: 3}}
		b := models.NewSession()
		b.Items = []models.LineItem{{ID: "1", Name: "Coffee", Amount: 4}}

		if err := store.CreateSession(ctx, a); err != nil {
			t.Fatalf("CreateSession a failed: %v", err)
		}
		if err := store.CreateSession(ctx, b); err != nil {
			t.Fatalf("CreateSession b failed: %v", err)
		}
	})

	t.Run("SaveSession replaces ledger and settings", func(t *testing.T) {
		session := models.NewSession()
		session.Participants = []string{"Alice", "Bob"}
		session.Items = []models.LineItem{
			{ID: "1", Name: "Pizza", Amount: 20, AssignedTo: []string{"Alice", "Bob"}},
		}
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		session.Participants = []string{"Alice"}
		session.Items = []models.LineItem{
			{ID: "9", Name: "Noodles", Amount: 14, AssignedTo: []string{"Alice"}},
			{Name: "Tea", Amount: 2},
		}
		session.Tax.ApplyGST = false
		if err := store.SaveSession(ctx, session); err != nil {
			t.Fatalf("SaveSession failed: %v", err)
		}
		if session.Items[1].ID == "" {
			t.Error("Expected missing item id to be generated on save")
		}

		retrieved, err := store.GetSession(ctx, session.ID)
		if err != nil {
			t.Fatalf("GetSession failed: %v", err)
		}
		if len(retrieved.Items) != 2 || retrieved.Items[0].Name != "Noodles" {
			t.Errorf("Unexpected items after save: %+v", retrieved.Items)
		}
		if !reflect.DeepEqual(retrieved.Participants, []string{"Alice"}) {
			t.Errorf("Unexpected participants after save: %v", retrieved.Participants)
		}
		if retrieved.Tax.ApplyGST {
			t.Error("Expected ApplyGST to be persisted as false")
		}
	})

	t.Run("SaveSession on missing session", func(t *testing.T) {
		session := models.NewSession()
		session.ID = "nonexistent-id"
		err := store.SaveSession(ctx, session)
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("GetSession returns error for nonexistent session", func(t *testing.T) {
		_, err := store.GetSession(ctx, "nonexistent-id")
		if !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound, got %v", err)
		}
	})

	t.Run("DeleteSession removes session", func(t *testing.T) {
		session := models.NewSession()
		session.Participants = []string{"Eve"}
		session.Items = []models.LineItem{{ID: "1", Name: "Cake", Amount: 6, AssignedTo: []string{"Eve"}}}
		if err := store.CreateSession(ctx, session); err != nil {
			t.Fatalf("CreateSession failed: %v", err)
		}

		if err := store.DeleteSession(ctx, session.ID); err != nil {
			t.Fatalf("DeleteSession failed: %v", err)
		}
		if _, err := store.GetSession(ctx, session.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound after delete, got %v", err)
		}
		if err := store.DeleteSession(ctx, session.ID); !errors.Is(err, storage.ErrNotFound) {
			t.Errorf("Expected ErrNotFound on second delete, got %v", err)
		}
	})
}

func TestGenerateTitle(t *testing.T) {
	tests := []struct {
		participants []string
		wantContains string
	}{
		{[]string{}, "Bill -"},
		{[]string{"Alice"}, "Split with Alice"},
		{[]string{"Alice", "Bob"}, "Split with Alice, Bob"},
		{[]string{"Alice", "Bob", "Charlie"}, "Split with Alice, Bob, Charlie"},
		{[]string{"Alice", "Bob", "Charlie", "Diana"}, "Split with Alice, Bob and 2 others"},
	}

	for _, tt := range tests {
		t.Run(tt.wantContains, func(t *testing.T) {
			got := generateTitle(tt.participants)
			if !strings.Contains(got, tt.wantContains) {
				t.Errorf("generateTitle(%v) = %q, want to contain %q", tt.participants, got, tt.wantContains)
			}
		})
	}
}
