package ollama

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"
)

func testClient(t *testing.T, handler http.Handler, opts ...Option) (*Client, *httptest.Server) {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	base := []Option{
		WithSleeper(func(time.Duration) {}),
		WithRetryBackoff(time.Millisecond, 5*time.Millisecond),
	}
	client := NewClient(Config{
		BaseURL:        server.URL,
		Model:          "records-classifier-phi2:latest",
		Temperature:    0.1,
		TimeoutSeconds: 5,
	}, append(base, opts...)...)
	return client, server
}

func chatReply(t *testing.T, w http.ResponseWriter, content string) {
	t.Helper()
	resp := map[string]any{
		"message": map[string]string{"role": "assistant", "content": content},
		"done":    true,
	}
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		t.Fatalf("encode reply: %v", err)
	}
}

func TestClassifyParsesDetermination(t *testing.T) {
	var gotBody chatRequest
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/chat" {
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		chatReply(t, w, `{"determination":"keep","confidence":0.92,"insight":"Signed contract with ongoing obligations."}`)
	}))

	result, err := client.Classify(context.Background(), "AGREEMENT between the parties...")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Determination != "KEEP" {
		t.Fatalf("determination = %q", result.Determination)
	}
	if result.Confidence != 0.92 {
		t.Fatalf("confidence = %v", result.Confidence)
	}
	if result.Insight == "" || result.Raw == "" {
		t.Fatal("insight and raw payload must be populated")
	}
	if gotBody.Model != "records-classifier-phi2:latest" {
		t.Fatalf("model = %q", gotBody.Model)
	}
	if gotBody.Stream {
		t.Fatal("stream must be disabled")
	}
	if gotBody.Format != "json" {
		t.Fatalf("format = %q", gotBody.Format)
	}
	if len(gotBody.Messages) != 2 || gotBody.Messages[0].Role != "system" {
		t.Fatalf("messages = %+v", gotBody.Messages)
	}
}

func TestClassifyStripsCodeFence(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, "```json\n{\"determination\":\"TRANSITORY\",\"confidence\":0.6,\"insight\":\"Routine reminder.\"}\n```")
	}))

	result, err := client.Classify(context.Background(), "reminder: staff meeting at 3pm")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Determination != "TRANSITORY" {
		t.Fatalf("determination = %q", result.Determination)
	}
}

func TestClassifyRetriesTransientStatus(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if calls.Add(1) == 1 {
			w.Header().Set("Retry-After", "0")
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		chatReply(t, w, `{"determination":"NA","confidence":0.2,"insight":"Not a record."}`)
	}))

	result, err := client.Classify(context.Background(), "lorem ipsum")
	if err != nil {
		t.Fatalf("Classify: %v", err)
	}
	if result.Determination != "NA" {
		t.Fatalf("determination = %q", result.Determination)
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("server calls = %d, want 2", got)
	}
}

func TestClassifyDoesNotRetryClientErrors(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		http.Error(w, `{"error":"model not found"}`, http.StatusNotFound)
	}))

	_, err := client.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if got := calls.Load(); got != 1 {
		t.Fatalf("server calls = %d, want 1 (no retry on 404)", got)
	}
}

func TestClassifyGivesUpAfterMaxAttempts(t *testing.T) {
	var calls atomic.Int64
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusInternalServerError)
	}), WithRetryMaxAttempts(3))

	_, err := client.Classify(context.Background(), "text")
	if err == nil {
		t.Fatal("expected error")
	}
	if !strings.Contains(err.Error(), "failed after 3 attempts") {
		t.Fatalf("error = %v", err)
	}
	if got := calls.Load(); got != 3 {
		t.Fatalf("server calls = %d, want 3", got)
	}
}

func TestClassifySurfacesAPIError(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"error":"model runner has unexpectedly stopped"}`))
	}))

	_, err := client.Classify(context.Background(), "text")
	if err == nil || !strings.Contains(err.Error(), "model runner") {
		t.Fatalf("error = %v", err)
	}
}

func TestClassifyRejectsEmptyContent(t *testing.T) {
	client := NewClient(Config{BaseURL: "http://localhost:11434", Model: "m"})
	if _, err := client.Classify(context.Background(), "   "); err == nil {
		t.Fatal("expected error for empty content")
	}
}

func TestHealthCheck(t *testing.T) {
	client, _ := testClient(t, http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		chatReply(t, w, `{"ok":true}`)
	}))
	if err := client.HealthCheck(context.Background()); err != nil {
		t.Fatalf("HealthCheck: %v", err)
	}
}

func TestHealthCheckFailsOnUnreachableServer(t *testing.T) {
	client := NewClient(Config{
		BaseURL:        "http://127.0.0.1:1",
		Model:          "m",
		TimeoutSeconds: 1,
	}, WithRetryMaxAttempts(1))
	if err := client.HealthCheck(context.Background()); err == nil {
		t.Fatal("expected error for unreachable server")
	}
}

func TestDecodeModelJSONVariants(t *testing.T) {
	cases := []struct {
		name    string
		payload string
		wantErr bool
	}{
		{"bare object", `{"determination":"KEEP","confidence":0.9,"insight":"x"}`, false},
		{"fenced", "```json\n{\"determination\":\"KEEP\",\"confidence\":0.9,\"insight\":\"x\"}\n```", false},
		{"prose wrapped", `Here is my answer: {"determination":"KEEP","confidence":0.9,"insight":"x"} hope that helps`, false},
		{"empty", "", true},
		{"not json", "KEEP, probably", true},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var out Classification
			err := DecodeModelJSON(tc.payload, &out)
			if tc.wantErr {
				if err == nil {
					t.Fatal("expected error")
				}
				return
			}
			if err != nil {
				t.Fatalf("DecodeModelJSON: %v", err)
			}
			if out.Determination != "KEEP" {
				t.Fatalf("determination = %q", out.Determination)
			}
		})
	}
}

func TestParseRetryAfterSeconds(t *testing.T) {
	delay, ok := parseRetryAfter("7")
	if !ok || delay != 7*time.Second {
		t.Fatalf("parseRetryAfter = %v, %v", delay, ok)
	}
	if _, ok := parseRetryAfter("garbage"); ok {
		t.Fatal("garbage header must not parse")
	}
}
