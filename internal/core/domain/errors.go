package domain

import "errors"

var (
	ErrValidation          = errors.New("validation failed")
	ErrAuthFailure         = errors.New("invalid credentials")
	ErrTokenInvalid        = errors.New("invalid or expired token")
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
	ErrConfiguration       = errors.New("invalid configuration")
	ErrForbidden           = errors.New("access forbidden")

	ErrPrincipalNotFound = errors.New("principal not found")
	ErrPrincipalExists   = errors.New("principal already exists")
	ErrReviewNotFound    = errors.New("review not found")
	ErrResetTokenInvalid = errors.New("invalid or expired reset token")
)
