package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/json"
	"errors"
	"strings"
	"time"
)

// sessionClaims is the payload carried inside a session token.
type sessionClaims struct {
	Authorized bool   `json:"authorized"`
	IssuedAt   int64  `json:"iat"`
	Issuer     string `json:"iss"`
}

const issuer = "ghibli-portrait"

// Sessions mints and verifies session capability tokens. Tokens are
// stateless: an HMAC-SHA256 signature over the claims, so no server-side
// session store is needed and the orchestrator's precondition check stays
// a pure function of its arguments.
type Sessions struct {
	secret string
}

func NewSessions(secret string) *Sessions {
	return &Sessions{secret: secret}
}

// Issue mints a token marking the session as authorized.
func (s *Sessions) Issue() string {
	payloadJSON, _ := json.Marshal(sessionClaims{
		Authorized: true,
		IssuedAt:   time.Now().Unix(),
		Issuer:     issuer,
	})
	data := base64.RawURLEncoding.EncodeToString(payloadJSON)
	return data + "." + s.sign(data)
}

// Verify reports whether the token is a valid authorized session token.
func (s *Sessions) Verify(token string) bool {
	parts := strings.Split(token, ".")
	if len(parts) != 2 {
		return false
	}
	if !hmac.Equal([]byte(s.sign(parts[0])), []byte(parts[1])) {
		return false
	}
	payload, err := base64.RawURLEncoding.DecodeString(parts[0])
	if err != nil {
		return false
	}
	var claims sessionClaims
	if err := json.Unmarshal(payload, &claims); err != nil {
		return false
	}
	return claims.Authorized && claims.Issuer == issuer
}

func (s *Sessions) sign(data string) string {
	mac := hmac.New(sha256.New, []byte(s.secret))
	mac.Write([]byte(data))
	return base64.RawURLEncoding.EncodeToString(mac.Sum(nil))
}

// ErrNotConfigured is returned by granters missing required settings.
var ErrNotConfigured = errors.New("auth: granter not configured")
