package dto

// DatasetStats summarises the store for the statistics view
type DatasetStats struct {
	Counts              map[string]int `json:"counts"`
	Friendships         int            `json:"friendships"`
	EventParticipations int            `json:"eventParticipations"`
	SocietyMemberships  int            `json:"societyMemberships"`
	OnlineUsers         int            `json:"onlineUsers"`
}

// LocationUsage lists what currently refers to a location
type LocationUsage struct {
	LocationID string   `json:"locationId"`
	EventIDs   []string `json:"eventIds"`
	UserIDs    []string `json:"userIds"`
	SocietyIDs []string `json:"societyIds"`
}

// InUse reports whether anything references the location
func (u LocationUsage) InUse() bool {
	return len(u.EventIDs)+len(u.UserIDs)+len(u.SocietyIDs) > 0
}
