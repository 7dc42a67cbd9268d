package domain

import "errors"

var (
	ErrNotFound        = errors.New("not found")
	ErrValidation      = errors.New("invalid input")
	ErrUnauthorized    = errors.New("unauthorized")
	ErrStorage         = errors.New("record store unavailable")
	ErrExternalService = errors.New("image generation failed")
)
