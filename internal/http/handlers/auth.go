package handlers

import (
	"net/http"

	"github.com/google/uuid"
)

type authStatusResponse struct {
	IsAuthorized bool `json:"isAuthorized"`
}

// AuthBegin starts the authorization flow. With the always-grant variant a
// session token is minted on the spot; a delegated provider yields a
// redirect to its consent page instead.
func (a *App) AuthBegin(w http.ResponseWriter, r *http.Request) {
	grant, err := a.Granter.Begin(r.Context(), uuid.NewString())
	if err != nil {
		a.Logger.Error().Err(err).Msg("authorization begin failed")
		a.error(w, http.StatusInternalServerError, "internal", "authorization unavailable")
		return
	}
	if grant.RedirectURL != "" {
		http.Redirect(w, r, grant.RedirectURL, http.StatusFound)
		return
	}
	a.setSessionCookie(w, grant.Token)
	http.Redirect(w, r, "/?auth=success", http.StatusFound)
}

// AuthCallback completes a delegated exchange. The always-grant variant
// accepts any code and mints a token regardless.
func (a *App) AuthCallback(w http.ResponseWriter, r *http.Request) {
	token, err := a.Granter.Complete(r.Context(), r.URL.Query().Get("code"))
	if err != nil {
		a.Logger.Error().Err(err).Msg("authorization exchange failed")
		a.error(w, http.StatusUnauthorized, "unauthorized", "authorization exchange failed")
		return
	}
	a.setSessionCookie(w, token)
	http.Redirect(w, r, "/?auth=success", http.StatusFound)
}

func (a *App) AuthStatus(w http.ResponseWriter, r *http.Request) {
	a.json(w, http.StatusOK, authStatusResponse{IsAuthorized: a.sessionAuthorized(r)})
}
