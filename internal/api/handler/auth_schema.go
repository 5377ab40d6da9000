package handler

import "github.com/jules-hotel/hotel-management/internal/core/domain"

// errorResponse is the standard error envelope returned on all 4xx/5xx responses.
type errorResponse struct {
	Error string `json:"error"`
}

// messageResponse acknowledges requests that return no resource.
type messageResponse struct {
	Message string `json:"message"`
}

type loginRequest struct {
	Username string `json:"username" validate:"required,max=1024"`
	Password string `json:"password" validate:"required,max=1024"`
}

type loginResponse struct {
	Token string `json:"token"`
}

type userInfoResponse struct {
	User *domain.Claims `json:"user"`
}

type passwordResetRequest struct {
	Email string `json:"email" validate:"required,email,max=254"`
}

type resetPasswordRequest struct {
	Token    string `json:"token"    validate:"required,max=1024"`
	Password string `json:"password" validate:"required,min=8,max=1024"`
}
