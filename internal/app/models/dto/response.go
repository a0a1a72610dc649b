package dto

import "github.com/yigit/uniconnect-fixtures/internal/app/models"

// PaginationInfo contains pagination metadata
type PaginationInfo struct {
	CurrentPage int   `json:"currentPage"`
	TotalPages  int   `json:"totalPages"`
	PageSize    int   `json:"pageSize"`
	TotalItems  int64 `json:"totalItems"`
}

// EntityListResponse is a page of entities of one kind
type EntityListResponse struct {
	Kind       string         `json:"kind"`
	Items      []any          `json:"items"`
	Pagination PaginationInfo `json:"pagination"`
}

// EntityDetail is one entity with its display name. Users carry their privacy settings.
type EntityDetail struct {
	Kind    string                 `json:"kind"`
	Label   string                 `json:"label"`
	Entity  models.Entity          `json:"entity"`
	Privacy *models.PrivacySetting `json:"privacy,omitempty"`
}
