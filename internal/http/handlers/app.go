package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/rs/zerolog"

	"server/internal/auth"
	"server/internal/domain"
	"server/internal/portrait"
	"server/internal/upload"
)

// PortraitGenerator is the slice of the orchestrator the handlers need.
type PortraitGenerator interface {
	Generate(ctx context.Context, instagramHandle string, sourceImageURLs []string, authorized bool) (*portrait.Result, error)
}

// App is the handler container: every route is a method on it.
type App struct {
	Logger    zerolog.Logger
	Uploads   *upload.Service
	Portraits PortraitGenerator
	Repo      domain.PortraitRepository
	Sessions  *auth.Sessions
	Granter   auth.Granter
}

const sessionCookie = "portrait_session"

func (a *App) json(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_ = json.NewEncoder(w).Encode(v)
}

func (a *App) error(w http.ResponseWriter, code int, kind, msg string) {
	a.json(w, code, map[string]string{"error": kind, "message": msg})
}

// domainError maps the error taxonomy onto HTTP status codes.
func (a *App) domainError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, domain.ErrValidation):
		a.error(w, http.StatusBadRequest, "bad_request", err.Error())
	case errors.Is(err, domain.ErrUnauthorized):
		a.error(w, http.StatusUnauthorized, "unauthorized", err.Error())
	case errors.Is(err, domain.ErrNotFound):
		a.error(w, http.StatusNotFound, "not_found", err.Error())
	case errors.Is(err, domain.ErrExternalService):
		a.error(w, http.StatusInternalServerError, "generation_failed", err.Error())
	default:
		a.error(w, http.StatusInternalServerError, "internal", err.Error())
	}
}

// sessionAuthorized reports whether the request carries a valid session
// capability token.
func (a *App) sessionAuthorized(r *http.Request) bool {
	c, err := r.Cookie(sessionCookie)
	if err != nil || c.Value == "" {
		return false
	}
	return a.Sessions.Verify(c.Value)
}

func (a *App) setSessionCookie(w http.ResponseWriter, token string) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    token,
		Path:     "/",
		MaxAge:   3600,
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
}
