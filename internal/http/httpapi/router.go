package httpapi

import (
	stdhttp "net/http"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"server/internal/http/handlers"
	"server/internal/middleware"
)

// NewRouter wires every route onto a chi router. uploadsDir is the file
// store root served under /uploads.
func NewRouter(app *handlers.App, uploadsDir string, allowedOrigins []string) stdhttp.Handler {
	r := chi.NewRouter()
	r.Use(
		middleware.RequestID,
		chimw.RealIP,
		chimw.Recoverer,
		middleware.Logger(app.Logger),
		middleware.CORS(allowedOrigins),
	)

	// Health
	r.Get("/v1/healthz", app.Health)

	r.Route("/api", func(r chi.Router) {
		r.Route("/auth", func(r chi.Router) {
			r.Get("/begin", app.AuthBegin)
			r.Get("/callback", app.AuthCallback)
			r.Get("/status", app.AuthStatus)
		})

		r.Post("/images", app.UploadImages)

		r.Route("/portraits", func(r chi.Router) {
			r.Post("/", app.PortraitsCreate)
			// Admin listing. Deliberately unauthenticated, matching the
			// original deployment; close this before exposing publicly.
			r.Get("/", app.PortraitsList)
			r.Get("/{id}", app.PortraitGet)
		})
	})

	// Uploaded photos are publicly fetchable by their storage key.
	uploads := stdhttp.StripPrefix("/uploads/", stdhttp.FileServer(stdhttp.Dir(uploadsDir)))
	r.Get("/uploads/*", uploads.ServeHTTP)

	return r
}
