package repo

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"server/internal/domain"
)

// PortraitRepositoryPG implements domain.PortraitRepository.
type PortraitRepositoryPG struct {
	pool *pgxpool.Pool
}

// NewPortraitRepository creates a new portrait repository backed by PostgreSQL.
func NewPortraitRepository(pool *pgxpool.Pool) *PortraitRepositoryPG {
	return &PortraitRepositoryPG{pool: pool}
}

// Create inserts a new portrait request record.
func (r *PortraitRepositoryPG) Create(ctx context.Context, req *domain.PortraitRequest) error {
	query := `
INSERT INTO portrait_requests (id, instagram_handle, source_image_urls, status, delivery_status)
VALUES ($1, $2, $3, $4, $5)
RETURNING created_at, updated_at;
`
	row := r.pool.QueryRow(ctx, query,
		req.ID,
		req.InstagramHandle,
		req.SourceImageURLs,
		req.Status,
		req.DeliveryStatus,
	)
	return row.Scan(&req.CreatedAt, &req.UpdatedAt)
}

// MarkCompleted moves a record to its completed terminal state. The
// delivery status flips to uploaded in the same write.
func (r *PortraitRepositoryPG) MarkCompleted(ctx context.Context, id, resultImageURL string) error {
	query := `
UPDATE portrait_requests
SET status = $2,
    result_image_url = $3,
    delivery_status = $4,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, domain.StatusCompleted, resultImageURL, domain.DeliveryUploaded)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// MarkFailed moves a record to its failed terminal state.
func (r *PortraitRepositoryPG) MarkFailed(ctx context.Context, id, errMsg string) error {
	query := `
UPDATE portrait_requests
SET status = $2,
    error_message = $3,
    updated_at = NOW()
WHERE id = $1;
`
	tag, err := r.pool.Exec(ctx, query, id, domain.StatusFailed, errMsg)
	if err != nil {
		return err
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// GetByID fetches a record by its identifier.
func (r *PortraitRepositoryPG) GetByID(ctx context.Context, id string) (*domain.PortraitRequest, error) {
	query := `
SELECT id, instagram_handle, source_image_urls, status, result_image_url, error_message, delivery_status, created_at, updated_at
FROM portrait_requests
WHERE id = $1;
`
	row := r.pool.QueryRow(ctx, query, id)
	req, err := scanPortrait(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return req, nil
}

// List returns every record, newest first.
func (r *PortraitRepositoryPG) List(ctx context.Context) ([]domain.PortraitRequest, error) {
	query := `
SELECT id, instagram_handle, source_image_urls, status, result_image_url, error_message, delivery_status, created_at, updated_at
FROM portrait_requests
ORDER BY created_at DESC;
`
	rows, err := r.pool.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []domain.PortraitRequest
	for rows.Next() {
		req, err := scanPortrait(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *req)
	}
	return items, rows.Err()
}

func scanPortrait(row pgx.Row) (*domain.PortraitRequest, error) {
	var req domain.PortraitRequest
	var resultURL, errMsg *string
	if err := row.Scan(
		&req.ID,
		&req.InstagramHandle,
		&req.SourceImageURLs,
		&req.Status,
		&resultURL,
		&errMsg,
		&req.DeliveryStatus,
		&req.CreatedAt,
		&req.UpdatedAt,
	); err != nil {
		return nil, err
	}
	if resultURL != nil {
		req.ResultImageURL = *resultURL
	}
	if errMsg != nil {
		req.Error = *errMsg
	}
	return &req, nil
}
