package openai

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/joseph-ayodele/modbus-extractor/internal/llm"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"choices": []map[string]any{
			{"message": map[string]any{"content": content}, "finish_reason": "stop"},
		},
	}
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func testClient(t *testing.T, baseURL string, retries int) *Client {
	t.Helper()
	c, err := NewClient(Config{
		APIKey:     "test-key",
		BaseURL:    baseURL,
		Model:      "test-model",
		Timeout:    5 * time.Second,
		MaxRetries: retries,
	}, testLogger())
	if err != nil {
		t.Fatalf("NewClient() error = %v", err)
	}
	return c
}

// WHAT: a clean reply round-trips into sorted, validated registers.
func TestClientExtractRegisters(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		if got := r.Header.Get("Authorization"); got != "Bearer test-key" {
			t.Errorf("authorization header = %q", got)
		}
		chatReply(t, w, `[
			{"address": 40002, "name": "B", "datatype": "INT16", "description": "", "writable": true},
			{"address": 40001, "name": "A", "datatype": "UINT16", "description": "", "writable": false}
		]`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 0)
	regs, raw, err := c.ExtractRegisters(context.Background(), llm.ExtractRequest{
		Context:   "40001 A\n40002 B",
		PageRange: "1-2",
	})
	if err != nil {
		t.Fatalf("ExtractRegisters() error = %v", err)
	}
	if len(regs) != 2 || regs[0].Address != 40001 || regs[1].Address != 40002 {
		t.Errorf("registers not sorted/complete: %+v", regs)
	}
	if len(raw) == 0 {
		t.Error("raw reply should be returned for auditing")
	}
}

// WHAT: 5xx responses are retried; the retry succeeds.
func TestClientRetriesServerError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if atomic.AddInt32(&calls, 1) == 1 {
			http.Error(w, "upstream hiccup", http.StatusBadGateway)
			return
		}
		chatReply(t, w, `[{"address": 40001, "name": "A", "datatype": "UINT16", "description": "", "writable": false}]`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 1)
	regs, _, err := c.ExtractRegisters(context.Background(), llm.ExtractRequest{Context: "x"})
	if err != nil {
		t.Fatalf("ExtractRegisters() error = %v", err)
	}
	if len(regs) != 1 {
		t.Errorf("got %d registers, want 1", len(regs))
	}
	if got := atomic.LoadInt32(&calls); got != 2 {
		t.Errorf("server saw %d calls, want 2", got)
	}
}

// WHAT: a 4xx other than 429 fails immediately without retrying.
func TestClientDoesNotRetryClientError(t *testing.T) {
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		http.Error(w, "bad request", http.StatusBadRequest)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 3)
	if _, _, err := c.ExtractRegisters(context.Background(), llm.ExtractRequest{Context: "x"}); err == nil {
		t.Fatal("expected an error for 400")
	}
	if got := atomic.LoadInt32(&calls); got != 1 {
		t.Errorf("server saw %d calls, want 1", got)
	}
}

// WHAT: an API-level error payload surfaces as an error, not empty output.
func TestClientAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `{"error": {"message": "model overloaded", "type": "server_error"}}`)
	}))
	defer srv.Close()

	c := testClient(t, srv.URL, 0)
	if _, _, err := c.ExtractRegisters(context.Background(), llm.ExtractRequest{Context: "x"}); err == nil {
		t.Fatal("expected an error for API error payload")
	}
}

// WHAT: a missing API key is rejected at construction, not on first call.
func TestNewClientRequiresAPIKey(t *testing.T) {
	if _, err := NewClient(Config{}, testLogger()); err == nil {
		t.Fatal("expected config validation error")
	}
}
