package models

import (
	"fmt"
	"slices"
	"strings"

	"github.com/yigit/uniconnect-fixtures/internal/pkg/idgen"
)

// Kind identifies one of the entity collections held by the store
type Kind string

const (
	KindUser          Kind = "user"
	KindEvent         Kind = "event"
	KindSociety       Kind = "society"
	KindLocation      Kind = "location"
	KindPrivacy       Kind = "privacy"
	KindFriendRequest Kind = "friendRequest"
)

// Kinds lists every entity kind in collection order
var Kinds = []Kind{KindUser, KindEvent, KindSociety, KindLocation, KindPrivacy, KindFriendRequest}

var kindPrefixes = map[Kind]string{
	KindUser:          "user_",
	KindEvent:         "event_",
	KindSociety:       "soc_",
	KindLocation:      "loc_",
	KindPrivacy:       "privacy_",
	KindFriendRequest: "req_",
}

var kindCollections = map[Kind]string{
	KindUser:          "users",
	KindEvent:         "events",
	KindSociety:       "societies",
	KindLocation:      "locations",
	KindPrivacy:       "privacy_settings",
	KindFriendRequest: "friend_requests",
}

var kindTitles = map[Kind]string{
	KindUser:          "User",
	KindEvent:         "Event",
	KindSociety:       "Society",
	KindLocation:      "Location",
	KindPrivacy:       "Privacy settings",
	KindFriendRequest: "Friend request",
}

// Title is the capitalised name used at the start of report lines
func (k Kind) Title() string {
	if t, ok := kindTitles[k]; ok {
		return t
	}
	return string(k)
}

// Prefix returns the id prefix for the kind
func (k Kind) Prefix() string {
	return kindPrefixes[k]
}

// Collection returns the canonical external collection name for the kind
func (k Kind) Collection() string {
	return kindCollections[k]
}

// Valid reports whether k is a known kind
func (k Kind) Valid() bool {
	_, ok := kindPrefixes[k]
	return ok
}

// ParseKind accepts a kind name, its collection name or a simple plural ("users")
func ParseKind(s string) (Kind, error) {
	s = strings.TrimSpace(s)
	for _, k := range Kinds {
		if s == string(k) || s == k.Collection() || s == string(k)+"s" {
			return k, nil
		}
	}
	return "", fmt.Errorf("unknown entity kind %q", s)
}

// LooksLikeID reports whether value carries the kind's prefix followed only by digits
func LooksLikeID(k Kind, value string) bool {
	_, ok := idgen.Sequence(k.Prefix(), value)
	return ok
}

// Entity is implemented by every stored record
type Entity interface {
	GetID() string
	SetID(id string)
	Kind() Kind
	// Extras holds the JSON members no field claimed
	Extras() Attributes
	// Label is the name used in validation messages
	Label() string
}

// NewEntity returns an empty entity of the given kind
func NewEntity(k Kind) (Entity, error) {
	switch k {
	case KindUser:
		return &User{}, nil
	case KindEvent:
		return &Event{}, nil
	case KindSociety:
		return &Society{}, nil
	case KindLocation:
		return &Location{}, nil
	case KindPrivacy:
		return &PrivacySetting{}, nil
	case KindFriendRequest:
		return &FriendRequest{}, nil
	}
	return nil, fmt.Errorf("unknown entity kind %q", k)
}

// Enumerated values accepted by the fixture schema
var (
	YearLevels = []string{"1st Year", "2nd Year", "3rd Year", "4th Year", "Postgraduate"}

	StatusTypes = []string{"online", "away", "busy", "offline"}

	EventCategories = []string{"academic", "social", "society", "personal", "university"}

	EventSubTypes = map[string][]string{
		"academic":   {"lecture", "tutorial", "workshop", "seminar", "exam", "assignment", "project"},
		"social":     {"party", "meetup", "dinner", "game", "outing", "celebration"},
		"society":    {"meeting", "event", "competition", "social", "workshop"},
		"personal":   {"study", "appointment", "reminder", "deadline"},
		"university": {"orientation", "graduation", "ceremony", "announcement"},
	}

	PrivacyLevels = []string{
		"public", "university", "faculty", "friends",
		"friendsOfFriends", "inviteOnly", "organizersOnly", "private",
	}

	SocietyCategories = []string{"academic", "cultural", "sports", "technology", "arts", "social"}

	LocationTypes = []string{"lecture_hall", "classroom", "lab", "library", "study_space", "common_area", "outdoor"}

	ShareValues       = []string{"public", "friends", "private"}
	InviteAllowValues = []string{"everyone", "friends", "nobody"}
)

// SubTypesForCategory returns the valid sub-types of an event category, nil for unknown categories
func SubTypesForCategory(category string) []string {
	return EventSubTypes[category]
}

// IsValidSubType reports whether subType belongs to category
func IsValidSubType(category, subType string) bool {
	return slices.Contains(EventSubTypes[category], subType)
}
