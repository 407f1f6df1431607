package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	apierrors "github.com/dmoura/askbox/internal/errors"
)

func newTestClient(t *testing.T, baseURL string) *Client {
	t.Helper()

	client, err := NewClient("test-key", baseURL, WithTimeout(10*time.Second))
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}
	return client
}

func TestNewClient_Validation(t *testing.T) {
	if _, err := NewClient("", "https://api.example.com"); !errors.Is(err, apierrors.ErrMissingAPIKey) {
		t.Errorf("expected ErrMissingAPIKey, got %v", err)
	}

	if _, err := NewClient("key", "  "); !errors.Is(err, apierrors.ErrMissingBaseURL) {
		t.Errorf("expected ErrMissingBaseURL, got %v", err)
	}
}

func TestNewClient_StripsTrailingSlash(t *testing.T) {
	client, err := NewClient("key", "https://api.example.com/org/acme/")
	if err != nil {
		t.Fatalf("NewClient() returned error: %v", err)
	}

	if client.BaseURL() != "https://api.example.com/org/acme" {
		t.Errorf("BaseURL() = %q, want trailing slash stripped", client.BaseURL())
	}

	if client.Endpoint() != "https://api.example.com/org/acme/rag/query" {
		t.Errorf("Endpoint() = %q", client.Endpoint())
	}
}

func TestAsk_RequestShape(t *testing.T) {
	var gotMethod, gotPath, gotKey, gotContentType string
	var gotBody []byte

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
		gotKey = r.Header.Get("X-API-Key")
		gotContentType = r.Header.Get("Content-Type")
		gotBody, _ = io.ReadAll(r.Body)
		w.Write([]byte(`{"answer": "ok"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL+"/")

	answer, err := client.Ask(context.Background(), "what is askbox?")
	if err != nil {
		t.Fatalf("Ask() returned error: %v", err)
	}
	if answer != "ok" {
		t.Errorf("answer = %q, want ok", answer)
	}

	if gotMethod != http.MethodPost {
		t.Errorf("method = %s, want POST", gotMethod)
	}
	if gotPath != "/rag/query" {
		t.Errorf("path = %s, want /rag/query", gotPath)
	}
	if gotKey != "test-key" {
		t.Errorf("X-API-Key = %q, want test-key", gotKey)
	}
	if gotContentType != "application/json" {
		t.Errorf("Content-Type = %q, want application/json", gotContentType)
	}

	var body map[string]string
	if err := json.Unmarshal(gotBody, &body); err != nil {
		t.Fatalf("request body is not JSON: %v", err)
	}
	if body["question"] != "what is askbox?" {
		t.Errorf("question = %q", body["question"])
	}
}

func TestAsk_MissingAnswerField(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte(`{}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	answer, err := client.Ask(context.Background(), "anything")
	if err != nil {
		t.Fatalf("Ask() returned error: %v", err)
	}
	if answer != "" {
		t.Errorf("answer = %q, want empty string for absent field", answer)
	}
}

func TestAsk_ErrorDetailPrecedence(t *testing.T) {
	tests := []struct {
		name       string
		status     int
		body       string
		wantDetail string
	}{
		{"detail string", 400, `{"detail": "bad key"}`, "bad key"},
		{"detail object with message", 422, `{"detail": {"message": "question too long"}}`, "question too long"},
		{"detail object without message", 400, `{"detail": {"code": 7}}`, "Bad Request"},
		{"unparseable body", 500, `<html>panic</html>`, "Internal Server Error"},
		{"empty body", 403, ``, "Forbidden"},
		{"unknown status no body", 599, ``, apierrors.GenericFailure},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				w.Write([]byte(tt.body))
			}))
			defer srv.Close()

			client := newTestClient(t, srv.URL)

			_, err := client.Ask(context.Background(), "q")
			if err == nil {
				t.Fatal("Ask() should fail for non-success status")
			}

			if got := apierrors.UserMessage(err); got != tt.wantDetail {
				t.Errorf("UserMessage() = %q, want %q", got, tt.wantDetail)
			}
			if got := apierrors.GetHTTPStatus(err); got != tt.status {
				t.Errorf("GetHTTPStatus() = %d, want %d", got, tt.status)
			}
		})
	}
}

func TestAsk_Cancellation(t *testing.T) {
	started := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		close(started)
		time.Sleep(2 * time.Second)
		w.Write([]byte(`{"answer": "too late"}`))
	}))
	defer srv.Close()

	client := newTestClient(t, srv.URL)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-started
		cancel()
	}()

	_, err := client.Ask(ctx, "q")
	if err == nil {
		t.Fatal("Ask() should fail after cancellation")
	}
	if !apierrors.IsCanceled(err) {
		t.Errorf("expected canceled error, got %v", err)
	}
}

func TestAsk_NetworkFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close() // Immediately close so the dial fails

	client := newTestClient(t, srv.URL)

	_, err := client.Ask(context.Background(), "q")
	if err == nil {
		t.Fatal("Ask() should fail when backend is unreachable")
	}
	if apierrors.IsCanceled(err) {
		t.Error("network failure must not be reported as cancellation")
	}
	if got := apierrors.UserMessage(err); got != apierrors.GenericFailure {
		t.Errorf("UserMessage() = %q, want generic fallback", got)
	}
}
