package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func newTestServer(t *testing.T, handler http.HandlerFunc) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return srv
}

func TestGenerateSendsSystemThenUser(t *testing.T) {
	var got struct {
		Model    string `json:"model"`
		Messages []struct {
			Role    string `json:"role"`
			Content string `json:"content"`
		} `json:"messages"`
	}

	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/chat/completions" {
			t.Errorf("path = %s", r.URL.Path)
		}
		if auth := r.Header.Get("Authorization"); auth != "Bearer test-key" {
			t.Errorf("Authorization = %q", auth)
		}
		if err := json.NewDecoder(r.Body).Decode(&got); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"gpt-4o-mini",
			"choices":[{"index":0,"message":{"role":"assistant","content":"{\"summary\":\"S\",\"suggestion\":\"T\"}"},"finish_reason":"stop"}]}`))
	})

	c := NewClient(Config{APIKey: "test-key", BaseURL: srv.URL + "/v1"})
	out, err := c.Generate(context.Background(), "sys", "usr")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if out != `{"summary":"S","suggestion":"T"}` {
		t.Errorf("Generate() = %q", out)
	}
	if got.Model != DefaultModel {
		t.Errorf("model = %q, want %q", got.Model, DefaultModel)
	}
	if len(got.Messages) != 2 || got.Messages[0].Role != "system" || got.Messages[1].Role != "user" {
		t.Fatalf("messages = %+v", got.Messages)
	}
	if got.Messages[0].Content != "sys" || got.Messages[1].Content != "usr" {
		t.Errorf("messages = %+v", got.Messages)
	}
}

func TestGenerateServerError(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"error":{"message":"boom","type":"server_error"}}`))
	})

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL + "/v1"})
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error on 500")
	}
}

func TestGenerateNoChoices(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":"c1","object":"chat.completion","created":1,"model":"m","choices":[]}`))
	})

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL + "/v1"})
	if _, err := c.Generate(context.Background(), "s", "u"); err == nil {
		t.Fatal("expected error when no choices are returned")
	}
}

func TestUnconfiguredClient(t *testing.T) {
	c := NewClient(Config{APIKey: "  "})
	if c.Configured() {
		t.Fatal("blank key should not be configured")
	}
	if _, err := c.Generate(context.Background(), "s", "u"); !errors.Is(err, ErrNotConfigured) {
		t.Errorf("Generate() error = %v, want ErrNotConfigured", err)
	}
	if c.Model() != DefaultModel {
		t.Errorf("Model() = %q", c.Model())
	}
	if c.Timeout() != DefaultTimeout {
		t.Errorf("Timeout() = %v", c.Timeout())
	}
}

func TestGenerateHonoursContextDeadline(t *testing.T) {
	srv := newTestServer(t, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(2 * time.Second):
		}
	})

	c := NewClient(Config{APIKey: "k", BaseURL: srv.URL + "/v1"})
	ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
	defer cancel()
	if _, err := c.Generate(ctx, "s", "u"); err == nil {
		t.Fatal("expected deadline error")
	}
}
