package models

import "strings"

// DefaultRoomKey stands in for a missing room in the location identity key
const DefaultRoomKey = "Main"

// Accessibility flags of a location
type Accessibility struct {
	WheelchairAccessible bool `json:"wheelchairAccessible"`
	ElevatorAccess       bool `json:"elevatorAccess"`
	HearingLoop          bool `json:"hearingLoop"`
}

// Location is a campus place events and users can refer to
type Location struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Building      string         `json:"building"`
	Room          *string        `json:"room,omitempty"`
	Latitude      *float64       `json:"latitude,omitempty"`
	Longitude     *float64       `json:"longitude,omitempty"`
	Type          string         `json:"type"`
	Capacity      int            `json:"capacity,omitempty"`
	Amenities     []string       `json:"amenities,omitempty"`
	Accessibility *Accessibility `json:"accessibility,omitempty"`
	Tags          []string       `json:"tags,omitempty"`

	Extra Attributes `json:"-"`
}

type locationAlias Location

func (l *Location) GetID() string      { return l.ID }
func (l *Location) SetID(id string)    { l.ID = id }
func (l *Location) Kind() Kind         { return KindLocation }
func (l *Location) Extras() Attributes { return l.Extra }

func (l *Location) room() string {
	if l.Room == nil {
		return ""
	}
	return *l.Room
}

// DisplayLabel is "building room", trimmed
func (l *Location) DisplayLabel() string {
	return strings.TrimSpace(l.Building + " " + l.room())
}

// Key is the identity key "building.room", with "Main" for a missing room
func (l *Location) Key() string {
	room := l.room()
	if room == "" {
		room = DefaultRoomKey
	}
	return l.Building + "." + room
}

func (l *Location) Label() string {
	if label := l.DisplayLabel(); label != "" {
		return label
	}
	return l.ID
}

func (l *Location) UnmarshalJSON(data []byte) error {
	var a locationAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*l = Location(a)
	l.Extra = extra
	return nil
}

func (l Location) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(locationAlias(l), l.Extra)
}
