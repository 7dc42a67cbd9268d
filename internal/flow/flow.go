// Package flow models the client's linear pass through the portrait
// journey: authorize, enter details, upload photos, view the result,
// finish. Transitions only move forward; the only way back is a full
// reset from the final stage.
package flow

import (
	"errors"
	"fmt"
	"strings"
)

type Stage string

const (
	StageAuthorize    Stage = "authorize"
	StageEnterDetails Stage = "enter_details"
	StageUploadPhotos Stage = "upload_photos"
	StageViewResult   Stage = "view_result"
	StageFinish       Stage = "finish"
)

// ErrOutOfOrder is returned when a transition is attempted from the
// wrong stage. No stage is skippable.
var ErrOutOfOrder = errors.New("flow: transition out of order")

// Session carries one user's transient state through the flow. It is not
// persisted; a reset drops everything.
type Session struct {
	stage           Stage
	InstagramHandle string
	ImageURLs       []string
	ResultImageURL  string
	RequestID       string
}

func NewSession() *Session {
	return &Session{stage: StageAuthorize}
}

func (s *Session) Stage() Stage {
	return s.stage
}

// Authorize advances past the authorization stage.
func (s *Session) Authorize() error {
	if s.stage != StageAuthorize {
		return fmt.Errorf("%w: authorize from %s", ErrOutOfOrder, s.stage)
	}
	s.stage = StageEnterDetails
	return nil
}

// EnterDetails records a non-empty handle and advances to the upload stage.
func (s *Session) EnterDetails(instagramHandle string) error {
	if s.stage != StageEnterDetails {
		return fmt.Errorf("%w: enter details from %s", ErrOutOfOrder, s.stage)
	}
	if strings.TrimSpace(instagramHandle) == "" {
		return errors.New("flow: instagram handle required")
	}
	s.InstagramHandle = instagramHandle
	s.stage = StageUploadPhotos
	return nil
}

// CompleteGeneration records a finished upload-plus-generation pass and
// advances to the result stage. Upload and generation are sequenced by
// the caller; this transition fires only once both succeeded.
func (s *Session) CompleteGeneration(imageURLs []string, resultImageURL, requestID string) error {
	if s.stage != StageUploadPhotos {
		return fmt.Errorf("%w: complete generation from %s", ErrOutOfOrder, s.stage)
	}
	if len(imageURLs) == 0 || resultImageURL == "" {
		return errors.New("flow: uploads and a result are required")
	}
	s.ImageURLs = imageURLs
	s.ResultImageURL = resultImageURL
	s.RequestID = requestID
	s.stage = StageViewResult
	return nil
}

// Acknowledge moves from the result view to the final stage.
func (s *Session) Acknowledge() error {
	if s.stage != StageViewResult {
		return fmt.Errorf("%w: acknowledge from %s", ErrOutOfOrder, s.stage)
	}
	s.stage = StageFinish
	return nil
}

// Reset clears all transient state and returns to the start. It is only
// offered from the final stage.
func (s *Session) Reset() error {
	if s.stage != StageFinish {
		return fmt.Errorf("%w: reset from %s", ErrOutOfOrder, s.stage)
	}
	*s = Session{stage: StageAuthorize}
	return nil
}
