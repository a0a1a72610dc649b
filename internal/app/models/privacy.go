package models

// PrivacySetting holds a user's sharing preferences; one record per user is expected
type PrivacySetting struct {
	ID                  string `json:"id"`
	UserID              string `json:"userId"`
	ShareLocation       bool   `json:"shareLocation"`
	ShareEvents         string `json:"shareEvents,omitempty"`
	ShareStatus         bool   `json:"shareStatus"`
	AllowFriendRequests bool   `json:"allowFriendRequests"`
	ShowInSearch        bool   `json:"showInSearch"`
	ShareStudyGroups    string `json:"shareStudyGroups,omitempty"`
	ShareAchievements   bool   `json:"shareAchievements"`
	AllowEventInvites   string `json:"allowEventInvites,omitempty"`
	ShareCalendar       string `json:"shareCalendar,omitempty"`

	Extra Attributes `json:"-"`
}

type privacyAlias PrivacySetting

// DefaultPrivacySetting returns the settings created alongside a new user
func DefaultPrivacySetting(userID string) *PrivacySetting {
	return &PrivacySetting{
		UserID:              userID,
		ShareLocation:       true,
		ShareEvents:         "friends",
		ShareStatus:         true,
		AllowFriendRequests: true,
		ShowInSearch:        true,
		ShareStudyGroups:    "friends",
		ShareAchievements:   true,
		AllowEventInvites:   "friends",
		ShareCalendar:       "friends",
	}
}

func (p *PrivacySetting) GetID() string      { return p.ID }
func (p *PrivacySetting) SetID(id string)    { p.ID = id }
func (p *PrivacySetting) Kind() Kind         { return KindPrivacy }
func (p *PrivacySetting) Extras() Attributes { return p.Extra }

func (p *PrivacySetting) Label() string {
	if p.UserID != "" {
		return p.UserID
	}
	return p.ID
}

func (p *PrivacySetting) UnmarshalJSON(data []byte) error {
	var a privacyAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*p = PrivacySetting(a)
	p.Extra = extra
	return nil
}

func (p PrivacySetting) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(privacyAlias(p), p.Extra)
}
