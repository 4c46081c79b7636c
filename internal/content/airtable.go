package content

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"golang.org/x/time/rate"

	"github.com/benknight/cocolist/internal/config"
)

const airtablePageSize = 100

// Record is one Airtable row.
type Record struct {
	ID     string         `json:"id"`
	Fields map[string]any `json:"fields"`
}

// RecordLister lists every record of a table.
type RecordLister interface {
	ListRecords(ctx context.Context, table string) ([]Record, error)
}

// AirtableClient reads tables through the Airtable REST API.
type AirtableClient struct {
	client  *http.Client
	baseURL string
	baseID  string
	apiKey  string
	limiter *rate.Limiter
}

// NewAirtableClient builds a client for one base. Requests are spaced out
// according to limit; a disabled limit means no throttling.
func NewAirtableClient(client *http.Client, baseURL, baseID, apiKey string, limit config.RateLimitConfig) *AirtableClient {
	if client == nil {
		client = &http.Client{Timeout: 30 * time.Second}
	}
	limiter := rate.NewLimiter(rate.Inf, 1)
	if limit.Enabled() {
		limiter = rate.NewLimiter(rate.Every(limit.Interval/time.Duration(limit.Requests)), limit.Requests)
	}
	return &AirtableClient{
		client:  client,
		baseURL: strings.TrimRight(baseURL, "/"),
		baseID:  baseID,
		apiKey:  apiKey,
		limiter: limiter,
	}
}

type listResponse struct {
	Records []Record `json:"records"`
	Offset  string   `json:"offset"`
}

// ListRecords follows the offset cursor until the table is exhausted.
func (c *AirtableClient) ListRecords(ctx context.Context, table string) ([]Record, error) {
	var (
		records []Record
		offset  string
	)
	for {
		page, err := c.listPage(ctx, table, offset)
		if err != nil {
			return nil, err
		}
		records = append(records, page.Records...)
		if page.Offset == "" {
			return records, nil
		}
		offset = page.Offset
	}
}

func (c *AirtableClient) listPage(ctx context.Context, table, offset string) (*listResponse, error) {
	if err := c.limiter.Wait(ctx); err != nil {
		return nil, err
	}

	q := url.Values{}
	q.Set("pageSize", fmt.Sprint(airtablePageSize))
	if offset != "" {
		q.Set("offset", offset)
	}
	endpoint := fmt.Sprintf("%s/%s/%s?%s", c.baseURL, url.PathEscape(c.baseID), url.PathEscape(table), q.Encode())

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create airtable request: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+c.apiKey)
	req.Header.Set("Accept", "application/json")

	resp, err := c.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("airtable request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("airtable error on %s (%d): %s", table, resp.StatusCode, extractAirtableError(resp.Body))
	}

	var page listResponse
	if err := json.NewDecoder(resp.Body).Decode(&page); err != nil {
		return nil, fmt.Errorf("could not decode airtable response: %w", err)
	}
	return &page, nil
}

// extractAirtableError reads both error shapes the API returns:
// {"error": "NOT_FOUND"} and {"error": {"type": ..., "message": ...}}.
func extractAirtableError(body io.Reader) string {
	raw, _ := io.ReadAll(io.LimitReader(body, 64<<10))
	var payload struct {
		Error json.RawMessage `json:"error"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil || len(payload.Error) == 0 {
		if msg := strings.TrimSpace(string(raw)); msg != "" {
			return msg
		}
		return "unknown error"
	}

	var code string
	if err := json.Unmarshal(payload.Error, &code); err == nil {
		return code
	}
	var detail struct {
		Type    string `json:"type"`
		Message string `json:"message"`
	}
	if err := json.Unmarshal(payload.Error, &detail); err == nil {
		if detail.Message != "" {
			return detail.Type + ": " + detail.Message
		}
		return detail.Type
	}
	return string(payload.Error)
}

var _ RecordLister = (*AirtableClient)(nil)
