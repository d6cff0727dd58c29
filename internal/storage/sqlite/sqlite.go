// Package sqlite provides a SQLite-backed implementation of the storage.Store interface.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGO)

	"github.com/mmynk/billsplit/internal/calculator"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/storage"
)

// Ensure SQLiteStore implements storage.Store
var _ storage.Store = (*SQLiteStore)(nil)

// SQLiteStore implements storage.Store using SQLite.
type SQLiteStore struct {
	db *sql.DB
}

// New creates a new SQLiteStore with the given database path.
// It creates the parent directories and runs migrations automatically.
func New(dbPath string) (*SQLiteStore, error) {
	// Create parent directory if it doesn't exist
	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	// Foreign keys are a per-connection setting, so pass them in the DSN
	// to cover every connection in the pool.
	db, err := sql.Open("sqlite", dbPath+"?_pragma=foreign_keys(1)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := runMigrations(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to run migrations: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close closes the database connection.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// CreateSession persists a new session to the database.
func (s *SQLiteStore) CreateSession(ctx context.Context, session *models.Session) error {
	// Generate IDs if not set
	if session.ID == "" {
		session.ID = uuid.New().String()
	}
	if session.CreatedAt == 0 {
		session.CreatedAt = time.Now().Unix()
	}
	session.UpdatedAt = session.CreatedAt
	if session.Title == "" {
		session.Title = generateTitle(session.Participants)
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.ExecContext(ctx,
		`INSERT INTO sessions (id, title, gst, service_charge, apply_gst, apply_service_charge,
		     discount_type, discount_value, discount_before_tax, discount_enabled, created_at, updated_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		session.ID, session.Title,
		session.Tax.GST, session.Tax.ServiceCharge, session.Tax.ApplyGST, session.Tax.ApplyServiceCharge,
		string(session.Discount.Type), session.Discount.Value, session.Discount.ApplyBeforeTax, session.Discount.Enabled,
		session.CreatedAt, session.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

// SaveSession overwrites the settings, roster and ledger of an existing session.
func (s *SQLiteStore) SaveSession(ctx context.Context, session *models.Session) error {
	session.UpdatedAt = time.Now().Unix()

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	res, err := tx.ExecContext(ctx,
		`UPDATE sessions SET title = ?, gst = ?, service_charge = ?, apply_gst = ?, apply_service_charge = ?,
		     discount_type = ?, discount_value = ?, discount_before_tax = ?, discount_enabled = ?, updated_at = ?
		 WHERE id = ?`,
		session.Title,
		session.Tax.GST, session.Tax.ServiceCharge, session.Tax.ApplyGST, session.Tax.ApplyServiceCharge,
		string(session.Discount.Type), session.Discount.Value, session.Discount.ApplyBeforeTax, session.Discount.Enabled,
		session.UpdatedAt, session.ID,
	)
	if err != nil {
		return fmt.Errorf("failed to update session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check update result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, session.ID)
	}

	// Replace children wholesale
	for _, stmt := range []string{
		"DELETE FROM item_assignments WHERE session_id = ?",
		"DELETE FROM items WHERE session_id = ?",
		"DELETE FROM participants WHERE session_id = ?",
	} {
		if _, err := tx.ExecContext(ctx, stmt, session.ID); err != nil {
			return fmt.Errorf("failed to clear session data: %w", err)
		}
	}

	if err := insertChildren(ctx, tx, session); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}

func insertChildren(ctx context.Context, tx *sql.Tx, session *models.Session) error {
	// Insert participants
	for _, name := range session.Participants {
		_, err := tx.ExecContext(ctx,
			"INSERT INTO participants (session_id, name) VALUES (?, ?)",
			session.ID, name,
		)
		if err != nil {
			return fmt.Errorf("failed to insert participant: %w", err)
		}
	}

	// Insert items and their assignments
	for i := range session.Items {
		item := &session.Items[i]
		if item.ID == "" {
			item.ID = uuid.New().String()
		}

		_, err := tx.ExecContext(ctx,
			"INSERT INTO items (session_id, id, position, name, amount) VALUES (?, ?, ?, ?, ?)",
			session.ID, item.ID, i, item.Name, item.Amount,
		)
		if err != nil {
			return fmt.Errorf("failed to insert item: %w", err)
		}

		for _, participant := range item.AssignedTo {
			_, err = tx.ExecContext(ctx,
				"INSERT INTO item_assignments (session_id, item_id, participant) VALUES (?, ?, ?)",
				session.ID, item.ID, participant,
			)
			if err != nil {
				return fmt.Errorf("failed to insert item assignment: %w", err)
			}
		}
	}
	return nil
}

// GetSession retrieves a session by ID, including roster, items and settings.
func (s *SQLiteStore) GetSession(ctx context.Context, sessionID string) (*models.Session, error) {
	session := &models.Session{}
	var discountType string
	err := s.db.QueryRowContext(ctx,
		`SELECT id, title, gst, service_charge, apply_gst, apply_service_charge,
		     discount_type, discount_value, discount_before_tax, discount_enabled, created_at, updated_at
		 FROM sessions WHERE id = ?`,
		sessionID,
	).Scan(&session.ID, &session.Title,
		&session.Tax.GST, &session.Tax.ServiceCharge, &session.Tax.ApplyGST, &session.Tax.ApplyServiceCharge,
		&discountType, &session.Discount.Value, &session.Discount.ApplyBeforeTax, &session.Discount.Enabled,
		&session.CreatedAt, &session.UpdatedAt)
	if err == sql.ErrNoRows {
		return nil, fmt.Errorf("%w: %s", storage.ErrNotFound, sessionID)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get session: %w", err)
	}
	session.Discount.Type = models.DiscountType(discountType)

	// Get participants
	rows, err := s.db.QueryContext(ctx,
		"SELECT name FROM participants WHERE session_id = ?",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get participants: %w", err)
	}
	defer rows.Close()

	session.Participants = []string{}
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("failed to scan participant: %w", err)
		}
		session.Participants = append(session.Participants, name)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate participants: %w", err)
	}
	calculator.SortNames(session.Participants)

	// Get items, then attach assignments in a single pass
	itemRows, err := s.db.QueryContext(ctx,
		"SELECT id, name, amount FROM items WHERE session_id = ? ORDER BY position",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get items: %w", err)
	}
	defer itemRows.Close()

	session.Items = []models.LineItem{}
	index := make(map[string]int)
	for itemRows.Next() {
		item := models.LineItem{AssignedTo: []string{}}
		if err := itemRows.Scan(&item.ID, &item.Name, &item.Amount); err != nil {
			return nil, fmt.Errorf("failed to scan item: %w", err)
		}
		index[item.ID] = len(session.Items)
		session.Items = append(session.Items, item)
	}
	if err := itemRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate items: %w", err)
	}

	assignRows, err := s.db.QueryContext(ctx,
		"SELECT item_id, participant FROM item_assignments WHERE session_id = ? ORDER BY item_id, participant",
		sessionID,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to get item assignments: %w", err)
	}
	defer assignRows.Close()

	for assignRows.Next() {
		var itemID, participant string
		if err := assignRows.Scan(&itemID, &participant); err != nil {
			return nil, fmt.Errorf("failed to scan assignment: %w", err)
		}
		if i, ok := index[itemID]; ok {
			session.Items[i].AssignedTo = append(session.Items[i].AssignedTo, participant)
		}
	}
	if err := assignRows.Err(); err != nil {
		return nil, fmt.Errorf("failed to iterate assignments: %w", err)
	}

	return session, nil
}

// DeleteSession removes a session by ID.
func (s *SQLiteStore) DeleteSession(ctx context.Context, sessionID string) error {
	res, err := s.db.ExecContext(ctx, "DELETE FROM sessions WHERE id = ?", sessionID)
	if err != nil {
		return fmt.Errorf("failed to delete session: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to check delete result: %w", err)
	}
	if n == 0 {
		return fmt.Errorf("%w: %s", storage.ErrNotFound, sessionID)
	}
	return nil
}

// generateTitle creates an auto-generated title from participants.
func generateTitle(participants []string) string {
	if len(participants) == 0 {
		return fmt.Sprintf("Bill - %s", time.Now().Format("Jan 2, 2006"))
	}
	if len(participants) <= 3 {
		return fmt.Sprintf("Split with %s", strings.Join(participants, ", "))
	}
	return fmt.Sprintf("Split with %s and %d others",
		strings.Join(participants[:2], ", "),
		len(participants)-2,
	)
}
