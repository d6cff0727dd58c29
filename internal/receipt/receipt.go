// Package receipt turns a photographed receipt into ledger items using the
// Veryfi document API.
package receipt

//go:generate mockgen -source=receipt.go -destination=mocks/mock_extractor.go -package=mocks

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"mime/multipart"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/mmynk/billsplit/internal/models"
)

// ErrNoLineItems is returned when the document has no usable line items.
// Callers should report it to the user rather than treat it as a failure.
var ErrNoLineItems = errors.New("no valid line items found in the receipt")

// Extractor extracts line items from an uploaded receipt image.
type Extractor interface {
	Extract(ctx context.Context, filename string, r io.Reader) ([]models.LineItem, error)
}

// UpstreamError reports a non-2xx response from the OCR service.
type UpstreamError struct {
	Op     string
	Status int
	Body   string
}

func (e *UpstreamError) Error() string {
	return fmt.Sprintf("failed to %s: status %d: %s", e.Op, e.Status, e.Body)
}

// Ensure Client implements Extractor
var _ Extractor = (*Client)(nil)

// Client talks to the Veryfi partner API.
type Client struct {
	httpClient *http.Client
	baseURL    string
	clientID   string
	apiKey     string
}

// NewClient builds a Client. baseURL is the partner API root, for example
// https://api.veryfi.com/api/v8/partner.
func NewClient(baseURL, clientID, apiKey string, timeout time.Duration) *Client {
	return &Client{
		httpClient: &http.Client{Timeout: timeout},
		baseURL:    strings.TrimRight(baseURL, "/"),
		clientID:   clientID,
		apiKey:     apiKey,
	}
}

type document struct {
	ID        int64      `json:"id"`
	LineItems []lineItem `json:"line_items"`
}

type lineItem struct {
	Description string   `json:"description"`
	Total       *float64 `json:"total"`
}

// Extract uploads the file, then fetches the processed document and
// converts its line items.
func (c *Client) Extract(ctx context.Context, filename string, r io.Reader) ([]models.LineItem, error) {
	body := &bytes.Buffer{}
	form := multipart.NewWriter(body)
	part, err := form.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if _, err := io.Copy(part, r); err != nil {
		return nil, fmt.Errorf("failed to read receipt file: %w", err)
	}
	if err := form.WriteField("auto_delete", "false"); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}
	if err := form.Close(); err != nil {
		return nil, fmt.Errorf("failed to build upload: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/documents/", body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", form.FormDataContentType())

	var processed document
	if err := c.do(req, "process receipt", &processed); err != nil {
		return nil, err
	}
	slog.Debug("Receipt processed", "document_id", processed.ID)

	req, err = http.NewRequestWithContext(ctx, http.MethodGet,
		c.baseURL+"/documents/"+strconv.FormatInt(processed.ID, 10)+"/", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	var doc document
	if err := c.do(req, "retrieve receipt data", &doc); err != nil {
		return nil, err
	}

	items := transform(doc.LineItems)
	if len(items) == 0 {
		return nil, ErrNoLineItems
	}
	return items, nil
}

func (c *Client) do(req *http.Request, op string, out any) error {
	req.Header.Set("CLIENT-ID", c.clientID)
	req.Header.Set("AUTHORIZATION", "apikey "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("failed to %s: %w", op, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		text, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		return &UpstreamError{Op: op, Status: resp.StatusCode, Body: strings.TrimSpace(string(text))}
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}
	return nil
}

// transform keeps line items that have a description and a total. IDs are
// 1-based positions among the survivors. Negative totals (discount lines)
// are dropped since the ledger only holds non-negative amounts.
func transform(lines []lineItem) []models.LineItem {
	items := make([]models.LineItem, 0, len(lines))
	for _, line := range lines {
		if strings.TrimSpace(line.Description) == "" || line.Total == nil {
			continue
		}
		if *line.Total < 0 {
			slog.Debug("Skipping negative receipt line", "description", line.Description, "total", *line.Total)
			continue
		}
		items = append(items, models.LineItem{
			ID:         strconv.Itoa(len(items) + 1),
			Name:       line.Description,
			Amount:     *line.Total,
			AssignedTo: []string{},
		})
	}
	return items
}
