package domain

import "time"

// Status enumerates the lifecycle states of a portrait request.
type Status string

const (
	// StatusPending is the schema default. The orchestrator writes records
	// as StatusProcessing directly, so this value is never assigned in the
	// current flow; it is kept for compatibility with the stored enum.
	StatusPending    Status = "pending"
	StatusProcessing Status = "processing"
	StatusCompleted  Status = "completed"
	StatusFailed     Status = "failed"
)

// Terminal reports whether the status is a final one. A record in a
// terminal status is never mutated again.
func (s Status) Terminal() bool {
	return s == StatusCompleted || s == StatusFailed
}

// DeliveryStatus tracks whether the generated portrait was posted to
// Instagram downstream. No posting integration exists; the field is
// flipped to uploaded as soon as generation succeeds.
type DeliveryStatus string

const (
	DeliveryPending  DeliveryStatus = "pending"
	DeliveryUploaded DeliveryStatus = "uploaded"
)

// PortraitRequest is the persisted unit of work: one user's attempt to
// generate a stylized portrait. Identity, handle and source URLs are set
// at creation and never change; exactly one of ResultImageURL and Error
// is populated once the status reaches a terminal value.
type PortraitRequest struct {
	ID              string
	InstagramHandle string
	SourceImageURLs []string
	Status          Status
	ResultImageURL  string
	Error           string
	DeliveryStatus  DeliveryStatus
	CreatedAt       time.Time
	UpdatedAt       time.Time
}
