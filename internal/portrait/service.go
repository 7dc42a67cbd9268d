package portrait

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"server/internal/domain"
	"server/internal/imagegen"
	"server/internal/notify"
)

// Result is what a successful generation hands back to the caller.
type Result struct {
	RecordID string
	ImageURL string
}

// Service orchestrates one portrait generation: record creation, the
// single provider call, the terminal status write and the admin
// notification. Each invocation owns exactly one record from creation to
// its terminal update, so no locking is needed across invocations.
type Service struct {
	repo      domain.PortraitRepository
	generator imagegen.Generator
	notifier  notify.Notifier
	logger    zerolog.Logger
}

func NewService(repo domain.PortraitRepository, generator imagegen.Generator, notifier notify.Notifier, logger zerolog.Logger) *Service {
	return &Service{
		repo:      repo,
		generator: generator,
		notifier:  notifier,
		logger:    logger,
	}
}

// Generate runs the full request lifecycle. Preconditions are checked in
// order before any side effect: input shape first, then authorization.
// The provider is called at most once and never retried; every created
// record reaches a terminal status and triggers one notification attempt.
func (s *Service) Generate(ctx context.Context, instagramHandle string, sourceImageURLs []string, authorized bool) (*Result, error) {
	if strings.TrimSpace(instagramHandle) == "" || len(sourceImageURLs) == 0 {
		return nil, fmt.Errorf("%w: instagram handle and image urls are required", domain.ErrValidation)
	}
	if !authorized {
		return nil, fmt.Errorf("%w: authorization required", domain.ErrUnauthorized)
	}

	// A caller disconnect must not abandon the record mid-flight; the
	// lifecycle runs to its terminal state regardless.
	ctx = context.WithoutCancel(ctx)

	rec := &domain.PortraitRequest{
		ID:              uuid.NewString(),
		InstagramHandle: instagramHandle,
		SourceImageURLs: sourceImageURLs,
		Status:          domain.StatusProcessing,
		DeliveryStatus:  domain.DeliveryPending,
	}
	if err := s.repo.Create(ctx, rec); err != nil {
		return nil, fmt.Errorf("%w: create record: %v", domain.ErrStorage, err)
	}

	resultURL, genErr := s.generator.Generate(ctx, imagegen.PortraitPrompt)
	if genErr != nil {
		rec.Status = domain.StatusFailed
		rec.Error = genErr.Error()
		if err := s.repo.MarkFailed(ctx, rec.ID, rec.Error); err != nil {
			s.logger.Error().Err(err).Str("request_id", rec.ID).Msg("failed to persist failed status")
		}
		s.notify(ctx, rec)
		return nil, fmt.Errorf("%w: %v", domain.ErrExternalService, genErr)
	}

	rec.Status = domain.StatusCompleted
	rec.ResultImageURL = resultURL
	rec.DeliveryStatus = domain.DeliveryUploaded
	if err := s.repo.MarkCompleted(ctx, rec.ID, resultURL); err != nil {
		s.logger.Error().Err(err).Str("request_id", rec.ID).Msg("failed to persist completed status")
		rec.Status = domain.StatusFailed
		rec.ResultImageURL = ""
		rec.Error = "record store unavailable"
		rec.DeliveryStatus = domain.DeliveryPending
		if err := s.repo.MarkFailed(ctx, rec.ID, rec.Error); err != nil {
			s.logger.Error().Err(err).Str("request_id", rec.ID).Msg("failed to persist failed status")
		}
		s.notify(ctx, rec)
		return nil, fmt.Errorf("%w: update record", domain.ErrStorage)
	}

	s.notify(ctx, rec)
	return &Result{RecordID: rec.ID, ImageURL: resultURL}, nil
}

// notify attempts the admin email once. Failures are logged and swallowed;
// they never change the outcome returned to the caller.
func (s *Service) notify(ctx context.Context, rec *domain.PortraitRequest) {
	if s.notifier == nil {
		return
	}
	if err := s.notifier.Notify(ctx, rec); err != nil {
		s.logger.Error().Err(err).Str("request_id", rec.ID).Msg("notification email failed")
	}
}
