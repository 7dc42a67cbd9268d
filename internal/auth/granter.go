package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Grant is the outcome of beginning authorization: either a session token
// ready to use, or a provider URL the user must be redirected to first.
type Grant struct {
	Token       string
	RedirectURL string
}

// Granter is the pluggable authorization capability. The orchestrator
// never talks to a Granter; it only receives the verified boolean, so
// swapping variants does not change its contract.
type Granter interface {
	Begin(ctx context.Context, state string) (Grant, error)
	Complete(ctx context.Context, code string) (string, error)
}

// AlwaysGrant authorizes every session immediately. It stands in for a
// real provider in environments without one, mirroring the stubbed
// redirect the original flow shipped with.
type AlwaysGrant struct {
	Sessions *Sessions
}

func (g *AlwaysGrant) Begin(ctx context.Context, state string) (Grant, error) {
	return Grant{Token: g.Sessions.Issue()}, nil
}

func (g *AlwaysGrant) Complete(ctx context.Context, code string) (string, error) {
	return g.Sessions.Issue(), nil
}

// DelegatedOAuth performs a real authorization-code exchange against a
// configured provider before minting a session token.
type DelegatedOAuth struct {
	Sessions     *Sessions
	ClientID     string
	ClientSecret string
	AuthURL      string
	TokenURL     string
	RedirectURL  string
	HTTPClient   *http.Client
}

func (g *DelegatedOAuth) Begin(ctx context.Context, state string) (Grant, error) {
	if g.ClientID == "" || g.AuthURL == "" || g.TokenURL == "" {
		return Grant{}, ErrNotConfigured
	}
	q := url.Values{}
	q.Set("response_type", "code")
	q.Set("client_id", g.ClientID)
	q.Set("redirect_uri", g.RedirectURL)
	q.Set("state", state)
	return Grant{RedirectURL: g.AuthURL + "?" + q.Encode()}, nil
}

func (g *DelegatedOAuth) Complete(ctx context.Context, code string) (string, error) {
	if g.ClientID == "" || g.TokenURL == "" {
		return "", ErrNotConfigured
	}
	if strings.TrimSpace(code) == "" {
		return "", fmt.Errorf("auth: authorization code required")
	}
	form := url.Values{}
	form.Set("grant_type", "authorization_code")
	form.Set("code", code)
	form.Set("client_id", g.ClientID)
	form.Set("client_secret", g.ClientSecret)
	form.Set("redirect_uri", g.RedirectURL)

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, g.TokenURL, strings.NewReader(form.Encode()))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	client := g.HTTPClient
	if client == nil {
		client = &http.Client{Timeout: 10 * time.Second}
	}
	resp, err := client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	var out struct {
		AccessToken string `json:"access_token"`
		Error       string `json:"error"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return "", fmt.Errorf("auth: decode token response: %w", err)
	}
	if resp.StatusCode >= http.StatusBadRequest || out.AccessToken == "" {
		if out.Error != "" {
			return "", fmt.Errorf("auth: token exchange failed: %s", out.Error)
		}
		return "", fmt.Errorf("auth: token exchange failed: http %d", resp.StatusCode)
	}
	return g.Sessions.Issue(), nil
}
