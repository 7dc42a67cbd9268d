package domain

import "context"

// PortraitRepository defines persistence for portrait request records.
// Records are appended and updated to a terminal state, never deleted.
type PortraitRepository interface {
	Create(ctx context.Context, req *PortraitRequest) error
	MarkCompleted(ctx context.Context, id, resultImageURL string) error
	MarkFailed(ctx context.Context, id, errMsg string) error
	GetByID(ctx context.Context, id string) (*PortraitRequest, error)
	// List returns all records sorted by creation time, newest first.
	List(ctx context.Context) ([]PortraitRequest, error)
}
