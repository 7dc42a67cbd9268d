package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"server/internal/domain"
)

type generateRequest struct {
	InstagramHandle string   `json:"instagramHandle"`
	ImageURLs       []string `json:"imageUrls"`
}

type generateResponse struct {
	ImageURL  string `json:"imageUrl"`
	RequestID string `json:"requestId"`
	Message   string `json:"message"`
}

type portraitDTO struct {
	ID              string    `json:"id"`
	InstagramHandle string    `json:"instagramHandle"`
	SourceImageURLs []string  `json:"sourceImageUrls"`
	Status          string    `json:"status"`
	ResultImageURL  string    `json:"resultImageUrl,omitempty"`
	Error           string    `json:"error,omitempty"`
	DeliveryStatus  string    `json:"deliveryStatus"`
	CreatedAt       time.Time `json:"createdAt"`
}

func toDTO(rec *domain.PortraitRequest) portraitDTO {
	return portraitDTO{
		ID:              rec.ID,
		InstagramHandle: rec.InstagramHandle,
		SourceImageURLs: rec.SourceImageURLs,
		Status:          string(rec.Status),
		ResultImageURL:  rec.ResultImageURL,
		Error:           rec.Error,
		DeliveryStatus:  string(rec.DeliveryStatus),
		CreatedAt:       rec.CreatedAt,
	}
}

// PortraitsCreate runs the generation flow for an authorized session.
func (a *App) PortraitsCreate(w http.ResponseWriter, r *http.Request) {
	var req generateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		a.error(w, http.StatusBadRequest, "bad_request", "invalid payload")
		return
	}
	res, err := a.Portraits.Generate(r.Context(), req.InstagramHandle, req.ImageURLs, a.sessionAuthorized(r))
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, generateResponse{
		ImageURL:  res.ImageURL,
		RequestID: res.RecordID,
		Message:   "Your image will be uploaded on Instagram in a creative way!",
	})
}

// PortraitsList returns every record, newest first.
func (a *App) PortraitsList(w http.ResponseWriter, r *http.Request) {
	records, err := a.Repo.List(r.Context())
	if err != nil {
		a.error(w, http.StatusInternalServerError, "internal", "failed to load records")
		return
	}
	items := make([]portraitDTO, 0, len(records))
	for i := range records {
		items = append(items, toDTO(&records[i]))
	}
	a.json(w, http.StatusOK, items)
}

// PortraitGet returns a single record by id.
func (a *App) PortraitGet(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if id == "" {
		a.error(w, http.StatusBadRequest, "bad_request", "id required")
		return
	}
	rec, err := a.Repo.GetByID(r.Context(), id)
	if err != nil {
		a.domainError(w, err)
		return
	}
	a.json(w, http.StatusOK, toDTO(rec))
}
