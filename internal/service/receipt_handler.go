package service

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"connectrpc.com/connect"

	"github.com/mmynk/billsplit/internal/metrics"
	"github.com/mmynk/billsplit/internal/receipt"
	"github.com/mmynk/billsplit/pkg/api"
)

// maxReceiptSize bounds the multipart upload.
const maxReceiptSize = 10 << 20

// ReceiptResponse is the JSON body returned by ReceiptHandler.
type ReceiptResponse struct {
	Items   []api.LineItem       `json:"items,omitempty"`
	Session *api.SessionResponse `json:"session,omitempty"`
	Error   string               `json:"error,omitempty"`
}

// ReceiptHandler accepts a multipart receipt upload (field "file"),
// extracts its line items and, when a "session" field is present,
// replaces that session's ledger with them.
type ReceiptHandler struct {
	extractor receipt.Extractor
	bills     *BillService
	metrics   *metrics.Metrics
}

// NewReceiptHandler creates a ReceiptHandler. A nil extractor means OCR is
// not configured and every upload is refused.
func NewReceiptHandler(extractor receipt.Extractor, bills *BillService, m *metrics.Metrics) *ReceiptHandler {
	return &ReceiptHandler{extractor: extractor, bills: bills, metrics: m}
}

func (h *ReceiptHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.Header().Set("Allow", http.MethodPost)
		writeJSON(w, http.StatusMethodNotAllowed, ReceiptResponse{Error: "method not allowed"})
		return
	}
	if h.extractor == nil {
		writeJSON(w, http.StatusServiceUnavailable, ReceiptResponse{Error: "receipt scanning is not configured"})
		return
	}

	r.Body = http.MaxBytesReader(w, r.Body, maxReceiptSize)
	if err := r.ParseMultipartForm(maxReceiptSize); err != nil {
		h.metrics.RecordReceipt(metrics.ReceiptInvalid, 0)
		writeJSON(w, http.StatusBadRequest, ReceiptResponse{Error: "invalid multipart form"})
		return
	}
	file, header, err := r.FormFile("file")
	if err != nil {
		h.metrics.RecordReceipt(metrics.ReceiptInvalid, 0)
		writeJSON(w, http.StatusBadRequest, ReceiptResponse{Error: "No file provided"})
		return
	}
	defer file.Close()

	items, err := h.extractor.Extract(r.Context(), header.Filename, file)
	if err != nil {
		var upstream *receipt.UpstreamError
		switch {
		case errors.Is(err, receipt.ErrNoLineItems):
			h.metrics.RecordReceipt(metrics.ReceiptNoItems, 0)
			writeJSON(w, http.StatusBadRequest, ReceiptResponse{Error: "No valid line items found in the receipt"})
		case errors.As(err, &upstream):
			h.metrics.RecordReceipt(metrics.ReceiptUpstream, 0)
			slog.Error("Receipt extraction failed upstream", "status", upstream.Status, "error", err)
			writeJSON(w, http.StatusBadGateway, ReceiptResponse{Error: err.Error()})
		default:
			h.metrics.RecordReceipt(metrics.ReceiptUpstream, 0)
			slog.Error("Receipt extraction failed", "error", err)
			writeJSON(w, http.StatusInternalServerError, ReceiptResponse{Error: err.Error()})
		}
		return
	}
	h.metrics.RecordReceipt(metrics.ReceiptOK, len(items))
	slog.Info("Receipt extracted", "filename", header.Filename, "items", len(items))

	resp := ReceiptResponse{Items: toAPIItems(items)}
	if sessionID := r.FormValue("session"); sessionID != "" {
		imported, err := h.bills.importItems(r.Context(), sessionID, items)
		if err != nil {
			writeJSON(w, httpStatus(err), ReceiptResponse{Error: err.Error()})
			return
		}
		resp.Session = imported
	}
	writeJSON(w, http.StatusOK, resp)
}

// httpStatus maps a connect error code to the matching HTTP status.
func httpStatus(err error) int {
	switch connect.CodeOf(err) {
	case connect.CodeNotFound:
		return http.StatusNotFound
	case connect.CodeInvalidArgument, connect.CodeAlreadyExists:
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		slog.Warn("Failed to write response", "error", err)
	}
}
