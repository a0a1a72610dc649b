package dto

import "github.com/yigit/uniconnect-fixtures/internal/app/models"

// ImportResult describes what an import batch replaced
type ImportResult struct {
	// Collections maps canonical collection name to the number of records loaded
	Collections map[string]int `json:"collections"`
	// Skipped lists document names that matched no collection
	Skipped []string `json:"skipped,omitempty"`
}

// ExportFile is a structured document handed to an export target together with a suggested filename
type ExportFile struct {
	Filename string `json:"filename"`
	Content  any    `json:"content"`
}

// EventsDocument is the wrapped shape used for events files
type EventsDocument struct {
	Comment string `json:"_comment,omitempty"`
	Events  any    `json:"events"`
}

// Snapshot exposes every collection under its canonical external name
type Snapshot struct {
	Users           []*models.User           `json:"users"`
	Events          []*models.Event          `json:"events"`
	Societies       []*models.Society        `json:"societies"`
	Locations       []*models.Location       `json:"locations"`
	PrivacySettings []*models.PrivacySetting `json:"privacy_settings"`
	FriendRequests  []*models.FriendRequest  `json:"friend_requests"`
}
