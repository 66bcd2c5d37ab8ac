package openai

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestGenerate(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/chat/completions" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		var body struct {
			Model    string `json:"model"`
			Messages []struct {
				Role    string `json:"role"`
				Content string `json:"content"`
			} `json:"messages"`
		}
		if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
			t.Errorf("decode request: %v", err)
		}
		if len(body.Messages) != 1 || body.Messages[0].Content != "say hi" {
			t.Errorf("messages = %+v", body.Messages)
		}
		_, _ = w.Write([]byte(`{"choices":[{"message":{"content":"  hi there  "}}]}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(srv.URL)
	got, err := c.Generate(context.Background(), "say hi")
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	if got != "hi there" {
		t.Fatalf("content = %q, want trimmed reply", got)
	}
}

func TestGenerateNoChoices(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte(`{"choices":[]}`))
	}))
	t.Cleanup(srv.Close)

	c := newTestClient(srv.URL)
	if _, err := c.Generate(context.Background(), "say hi"); err == nil {
		t.Fatal("expected error for empty choices")
	}
}
