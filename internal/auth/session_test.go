package auth

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func TestSessionsIssueVerifyRoundTrip(t *testing.T) {
	s := NewSessions("test-secret")
	token := s.Issue()
	if token == "" {
		t.Fatal("expected non-empty token")
	}
	if !s.Verify(token) {
		t.Fatal("freshly issued token must verify")
	}
}

func TestSessionsRejectsTamperedToken(t *testing.T) {
	s := NewSessions("test-secret")
	token := s.Issue()
	parts := strings.Split(token, ".")
	if s.Verify(parts[0] + ".AAAA") {
		t.Fatal("tampered signature must not verify")
	}
	if s.Verify("") {
		t.Fatal("empty token must not verify")
	}
}

func TestSessionsRejectsForeignSecret(t *testing.T) {
	token := NewSessions("secret-a").Issue()
	if NewSessions("secret-b").Verify(token) {
		t.Fatal("token signed with another secret must not verify")
	}
}

func TestAlwaysGrantIssuesImmediately(t *testing.T) {
	s := NewSessions("test-secret")
	g := &AlwaysGrant{Sessions: s}

	grant, err := g.Begin(context.Background(), "state-1")
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if grant.RedirectURL != "" {
		t.Fatalf("always-grant must not redirect, got %s", grant.RedirectURL)
	}
	if !s.Verify(grant.Token) {
		t.Fatal("granted token must verify")
	}
}

func TestDelegatedOAuthBeginBuildsRedirect(t *testing.T) {
	g := &DelegatedOAuth{
		Sessions:    NewSessions("test-secret"),
		ClientID:    "client-1",
		AuthURL:     "https://provider.example.com/authorize",
		TokenURL:    "https://provider.example.com/token",
		RedirectURL: "http://localhost:8080/api/auth/callback",
	}
	grant, err := g.Begin(context.Background(), "xyz")
	if err != nil {
		t.Fatalf("Begin error: %v", err)
	}
	if grant.Token != "" {
		t.Fatal("delegated begin must not mint a token")
	}
	for _, want := range []string{"client_id=client-1", "state=xyz", "response_type=code"} {
		if !strings.Contains(grant.RedirectURL, want) {
			t.Fatalf("redirect url missing %q: %s", want, grant.RedirectURL)
		}
	}
}

func TestDelegatedOAuthComplete(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			t.Fatalf("parse form: %v", err)
		}
		if got := r.Form.Get("code"); got != "code-123" {
			t.Fatalf("unexpected code: %s", got)
		}
		_ = json.NewEncoder(w).Encode(map[string]string{"access_token": "provider-token"})
	}))
	defer ts.Close()

	s := NewSessions("test-secret")
	g := &DelegatedOAuth{Sessions: s, ClientID: "client-1", TokenURL: ts.URL}
	token, err := g.Complete(context.Background(), "code-123")
	if err != nil {
		t.Fatalf("Complete error: %v", err)
	}
	if !s.Verify(token) {
		t.Fatal("completed token must verify")
	}
}

func TestDelegatedOAuthCompleteProviderError(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusBadRequest)
		_ = json.NewEncoder(w).Encode(map[string]string{"error": "invalid_grant"})
	}))
	defer ts.Close()

	g := &DelegatedOAuth{Sessions: NewSessions("test-secret"), ClientID: "client-1", TokenURL: ts.URL}
	if _, err := g.Complete(context.Background(), "bad-code"); err == nil {
		t.Fatal("expected error from provider rejection")
	}
}

func TestDelegatedOAuthRequiresConfig(t *testing.T) {
	g := &DelegatedOAuth{Sessions: NewSessions("test-secret")}
	if _, err := g.Begin(context.Background(), "s"); err != ErrNotConfigured {
		t.Fatalf("expected ErrNotConfigured, got %v", err)
	}
}
