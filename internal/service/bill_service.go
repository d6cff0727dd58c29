package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"sync"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/format"
	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/models"
	"github.com/mmynk/billsplit/internal/session"
	"github.com/mmynk/billsplit/internal/storage"
	"github.com/mmynk/billsplit/pkg/api"
)

// Ensure BillService implements api.BillServiceHandler
var _ api.BillServiceHandler = (*BillService)(nil)

// BillService implements the Connect BillService.
//
// Each mutating call loads the session, applies one session operation and
// saves the result. mu serialises that cycle so concurrent requests never
// interleave on the same stored state.
type BillService struct {
	store   storage.Store
	metrics *metrics.Metrics
	mu      sync.Mutex
}

// NewBillService creates a new BillService with the given storage backend.
// m may be nil.
func NewBillService(store storage.Store, m *metrics.Metrics) *BillService {
	return &BillService{store: store, metrics: m}
}

// toConnectError maps session and storage errors onto connect codes.
func toConnectError(err error) error {
	switch {
	case errors.Is(err, storage.ErrNotFound),
		errors.Is(err, session.ErrItemNotFound),
		errors.Is(err, session.ErrUnknownParticipant):
		return connect.NewError(connect.CodeNotFound, err)
	case errors.Is(err, session.ErrDuplicateParticipant),
		errors.Is(err, session.ErrDuplicateItem):
		return connect.NewError(connect.CodeAlreadyExists, err)
	case errors.Is(err, session.ErrEmptyName),
		errors.Is(err, session.ErrNegativeAmount),
		errors.Is(err, session.ErrAmountTooLarge),
		errors.Is(err, session.ErrInvalidSettings):
		return connect.NewError(connect.CodeInvalidArgument, err)
	default:
		return connect.NewError(connect.CodeInternal, err)
	}
}

func requireSessionID(id string) error {
	if id == "" {
		return connect.NewError(connect.CodeInvalidArgument, fmt.Errorf("session_id is required"))
	}
	return nil
}

// apply runs one mutation against a stored session and persists it.
func (s *BillService) apply(ctx context.Context, sessionID string, op func(*session.Session) error) (*api.SessionResponse, error) {
	if err := requireSessionID(sessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	state, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		return nil, toConnectError(err)
	}

	sess := session.New(state)
	var (
		summary    models.Summary
		recomputed bool
	)
	unsubscribe := sess.Subscribe(func(sum models.Summary) {
		summary, recomputed = sum, true
		s.metrics.RecordRecalculation()
		slog.Debug("Summary recomputed",
			"session_id", sessionID,
			"people", len(sum.People),
			"grand_total", sum.Totals.GrandTotal,
		)
	})
	defer unsubscribe()

	if err := op(sess); err != nil {
		return nil, toConnectError(err)
	}
	if !recomputed {
		// No-op mutation, e.g. assigning someone twice.
		summary = sess.Summary()
	}
	if !summary.Finite() {
		return nil, connect.NewError(connect.CodeInvalidArgument, errors.New("bill totals out of range"))
	}
	view := toAPISummary(summary)

	if err := s.store.SaveSession(ctx, sess.State()); err != nil {
		slog.Error("SaveSession failed", "session_id", sessionID, "error", err)
		return nil, toConnectError(err)
	}

	return &api.SessionResponse{
		Session: toAPISession(sess.State()),
		Summary: view,
	}, nil
}

// load reads a session without modifying it.
func (s *BillService) load(ctx context.Context, sessionID string) (*session.Session, error) {
	if err := requireSessionID(sessionID); err != nil {
		return nil, err
	}
	state, err := s.store.GetSession(ctx, sessionID)
	if err != nil {
		if !errors.Is(err, storage.ErrNotFound) {
			slog.Error("GetSession failed", "session_id", sessionID, "error", err)
		}
		return nil, toConnectError(err)
	}
	return session.New(state), nil
}

// CreateSession creates a new bill with an optional title and roster.
func (s *BillService) CreateSession(ctx context.Context, req *connect.Request[api.CreateSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	sess := session.New(nil)
	sess.SetTitle(req.Msg.Title)
	for _, name := range req.Msg.Participants {
		if err := sess.AddParticipant(name); err != nil {
			return nil, toConnectError(err)
		}
	}

	state := sess.State()
	if err := s.store.CreateSession(ctx, state); err != nil {
		slog.Error("CreateSession failed", "error", err)
		return nil, connect.NewError(connect.CodeInternal, err)
	}
	slog.Info("Session created", "session_id", state.ID, "title", state.Title, "participants", len(state.Participants))

	return connect.NewResponse(&api.SessionResponse{
		Session: toAPISession(state),
		Summary: toAPISummary(sess.Summary()),
	}), nil
}

// GetSession returns a stored session with its current summary.
func (s *BillService) GetSession(ctx context.Context, req *connect.Request[api.GetSessionRequest]) (*connect.Response[api.SessionResponse], error) {
	sess, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.SessionResponse{
		Session: toAPISession(sess.State()),
		Summary: toAPISummary(sess.Summary()),
	}), nil
}

// DeleteSession removes a session and everything it owns.
func (s *BillService) DeleteSession(ctx context.Context, req *connect.Request[api.DeleteSessionRequest]) (*connect.Response[api.DeleteSessionResponse], error) {
	if err := requireSessionID(req.Msg.SessionID); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.store.DeleteSession(ctx, req.Msg.SessionID); err != nil {
		return nil, toConnectError(err)
	}
	slog.Info("Session deleted", "session_id", req.Msg.SessionID)
	return connect.NewResponse(&api.DeleteSessionResponse{}), nil
}

func (s *BillService) AddParticipant(ctx context.Context, req *connect.Request[api.AddParticipantRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.AddParticipant(req.Msg.Name)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// RemoveParticipant drops a name from the roster and from every item it
// was assigned to.
func (s *BillService) RemoveParticipant(ctx context.Context, req *connect.Request[api.RemoveParticipantRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.RemoveParticipant(req.Msg.Name)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// ReplaceItems swaps the whole ledger.
func (s *BillService) ReplaceItems(ctx context.Context, req *connect.Request[api.ReplaceItemsRequest]) (*connect.Response[api.SessionResponse], error) {
	items := fromAPIItems(req.Msg.Items)
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.ReplaceItems(items)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) AddItem(ctx context.Context, req *connect.Request[api.AddItemRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		_, err := sess.AddItem(req.Msg.Name, req.Msg.Amount)
		return err
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) RemoveItem(ctx context.Context, req *connect.Request[api.RemoveItemRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.RemoveItem(req.Msg.ItemID)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) UpdateItemAmount(ctx context.Context, req *connect.Request[api.UpdateItemAmountRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.UpdateItemAmount(req.Msg.ItemID, req.Msg.Amount)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) AssignItem(ctx context.Context, req *connect.Request[api.AssignItemRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.Assign(req.Msg.ItemID, req.Msg.Name)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) UnassignItem(ctx context.Context, req *connect.Request[api.UnassignItemRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.Unassign(req.Msg.ItemID, req.Msg.Name)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) UpdateTaxSettings(ctx context.Context, req *connect.Request[api.UpdateTaxSettingsRequest]) (*connect.Response[api.SessionResponse], error) {
	tax := fromAPITax(req.Msg.Tax)
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.SetTaxSettings(tax)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) UpdateDiscountSettings(ctx context.Context, req *connect.Request[api.UpdateDiscountSettingsRequest]) (*connect.Response[api.SessionResponse], error) {
	discount := fromAPIDiscount(req.Msg.Discount)
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		return sess.SetDiscountSettings(discount)
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

// ResetBill clears the ledger and restores default settings. The roster is kept.
func (s *BillService) ResetBill(ctx context.Context, req *connect.Request[api.ResetBillRequest]) (*connect.Response[api.SessionResponse], error) {
	resp, err := s.apply(ctx, req.Msg.SessionID, func(sess *session.Session) error {
		sess.Reset()
		return nil
	})
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(resp), nil
}

func (s *BillService) GetSummary(ctx context.Context, req *connect.Request[api.GetSummaryRequest]) (*connect.Response[api.GetSummaryResponse], error) {
	sess, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	return connect.NewResponse(&api.GetSummaryResponse{Summary: toAPISummary(sess.Summary())}), nil
}

// ShareSummary returns the plain-text summary used by the share action.
func (s *BillService) ShareSummary(ctx context.Context, req *connect.Request[api.ShareSummaryRequest]) (*connect.Response[api.ShareSummaryResponse], error) {
	sess, err := s.load(ctx, req.Msg.SessionID)
	if err != nil {
		return nil, err
	}
	summary := sess.Summary()
	if !summary.Finite() {
		return nil, connect.NewError(connect.CodeFailedPrecondition, errors.New("bill totals out of range"))
	}
	return connect.NewResponse(&api.ShareSummaryResponse{
		Text:       format.ShareText(summary),
		GrandTotal: summary.Totals.GrandTotal,
	}), nil
}

// importItems replaces a session's ledger with receipt items.
func (s *BillService) importItems(ctx context.Context, sessionID string, items []models.LineItem) (*api.SessionResponse, error) {
	return s.apply(ctx, sessionID, func(sess *session.Session) error {
		return sess.ReplaceItems(items)
	})
}
