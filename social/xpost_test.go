package social

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"unicode/utf8"

	"newswire/types"
)

func TestPostDisabledWithoutToken(t *testing.T) {
	var calls int
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer server.Close()

	p := NewPoster("", server.URL)
	article := &types.Article{ID: "a1", Title: "T"}

	if p.Post(context.Background(), article, "j", "Independent", "http://x/articles/a1") {
		t.Fatal("disabled poster must return false")
	}
	if calls != 0 {
		t.Fatalf("disabled poster made %d network calls", calls)
	}
}

func TestPostSuccess(t *testing.T) {
	var gotAuth string
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotAuth = r.Header.Get("Authorization")
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotText = payload["text"]
		w.WriteHeader(http.StatusCreated)
	}))
	defer server.Close()

	p := NewPoster("secret-token", server.URL)
	article := &types.Article{ID: "a1", Title: "Big Story"}

	if !p.Post(context.Background(), article, "journo1", "Daily Planet", "http://x/articles/a1") {
		t.Fatal("expected success on 201")
	}
	if gotAuth != "Bearer secret-token" {
		t.Fatalf("bad auth header: %q", gotAuth)
	}
	if !strings.Contains(gotText, "Big Story") || !strings.Contains(gotText, "http://x/articles/a1") {
		t.Fatalf("status text missing title or link: %q", gotText)
	}
}

func TestPostFailureBecomesFalse(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusUnauthorized)
	}))
	defer server.Close()

	p := NewPoster("bad-token", server.URL)
	if p.PostText(context.Background(), "hello") {
		t.Fatal("non-2xx must return false")
	}
}

func TestPostTransportErrorBecomesFalse(t *testing.T) {
	// Closed server: connection refused.
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	server.Close()

	p := NewPoster("token", server.URL)
	if p.PostText(context.Background(), "hello") {
		t.Fatal("transport error must return false, not propagate")
	}
}

func TestPostTextTruncation(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotText = payload["text"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewPoster("token", server.URL)
	if !p.PostText(context.Background(), strings.Repeat("x", 500)) {
		t.Fatal("expected success")
	}
	if len(gotText) != 280 {
		t.Fatalf("expected text truncated to 280, got %d", len(gotText))
	}
}

func TestPostTextTruncationCountsRunes(t *testing.T) {
	var gotText string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var payload map[string]string
		_ = json.NewDecoder(r.Body).Decode(&payload)
		gotText = payload["text"]
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	p := NewPoster("token", server.URL)
	if !p.PostText(context.Background(), strings.Repeat("日", 300)) {
		t.Fatal("expected success")
	}

	if utf8.RuneCountInString(gotText) != 280 {
		t.Fatalf("expected 280 characters, got %d", utf8.RuneCountInString(gotText))
	}
	if !utf8.ValidString(gotText) || strings.ContainsRune(gotText, '�') {
		t.Fatalf("truncation split a character: %q", gotText[len(gotText)-12:])
	}
}
