package handler

import "github.com/jules-hotel/hotel-management/internal/core/domain"

// pageResponse is the model behind an admin console page. Rendering it is
// left to the client.
type pageResponse struct {
	Page  string            `json:"page"`
	User  *domain.Claims    `json:"user,omitempty"`
	Links map[string]string `json:"links,omitempty"`
}

type loginPageResponse struct {
	Page   string `json:"page"`
	Action string `json:"action"`
	Error  string `json:"error,omitempty"`
}

type dashboardStats struct {
	Users   int   `json:"users"`
	Reviews int64 `json:"reviews"`
}

type dashboardPageResponse struct {
	pageResponse
	Stats dashboardStats `json:"stats"`
}

type usersPageResponse struct {
	pageResponse
	Users []userResponse `json:"users"`
}

type reviewsPageResponse struct {
	pageResponse
	Reviews []reviewResponse `json:"reviews"`
	Total   int64            `json:"total"`
}
