package content

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/benknight/cocolist/internal/config"
)

func TestAirtableClientListRecordsPages(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		if r.Header.Get("Authorization") != "Bearer key-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		if r.URL.Path != "/appBase/Survey Table" {
			t.Errorf("unexpected path: %s", r.URL.Path)
		}
		if r.URL.Query().Get("pageSize") != "100" {
			t.Errorf("expected page size, got %q", r.URL.RawQuery)
		}
		switch r.URL.Query().Get("offset") {
		case "":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec1", "fields": map[string]any{"Name": "A"}}},
				"offset":  "page2",
			})
		case "page2":
			json.NewEncoder(w).Encode(map[string]any{
				"records": []map[string]any{{"id": "rec2", "fields": map[string]any{"Name": "B"}}},
			})
		default:
			w.WriteHeader(http.StatusBadRequest)
		}
	}))
	defer server.Close()

	client := NewAirtableClient(server.Client(), server.URL+"/", "appBase", "key-1", config.RateLimitConfig{})
	records, err := client.ListRecords(context.Background(), "Survey Table")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if calls != 2 {
		t.Fatalf("expected 2 page requests, got %d", calls)
	}
	if len(records) != 2 || records[0].ID != "rec1" || records[1].Fields["Name"] != "B" {
		t.Fatalf("unexpected records: %+v", records)
	}
}

func TestAirtableClientErrors(t *testing.T) {
	tests := map[string]struct {
		status int
		body   string
		want   string
	}{
		"string error": {status: http.StatusNotFound, body: `{"error":"NOT_FOUND"}`, want: "NOT_FOUND"},
		"object error": {status: http.StatusUnprocessableEntity, body: `{"error":{"type":"INVALID_REQUEST","message":"bad offset"}}`, want: "INVALID_REQUEST: bad offset"},
		"plain body":   {status: http.StatusBadGateway, body: "upstream down", want: "upstream down"},
	}

	for name, tc := range tests {
		t.Run(name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			client := NewAirtableClient(server.Client(), server.URL, "app", "key", config.RateLimitConfig{Requests: 5, Interval: 1})
			_, err := client.ListRecords(context.Background(), "Businesses")
			if err == nil || !strings.Contains(err.Error(), tc.want) {
				t.Fatalf("expected error containing %q, got %v", tc.want, err)
			}
		})
	}
}

func TestAirtableClientHonoursContext(t *testing.T) {
	client := NewAirtableClient(nil, "http://127.0.0.1:0", "app", "key", config.RateLimitConfig{Requests: 1, Interval: 3600e9})
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if _, err := client.ListRecords(ctx, "Businesses"); err == nil {
		t.Fatalf("expected error for cancelled context")
	}
}
