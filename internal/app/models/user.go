package models

// User is a student account in the demo dataset
type User struct {
	ID                    string   `json:"id"`
	Name                  string   `json:"name"`
	Email                 string   `json:"email"`
	Course                string   `json:"course"`
	Year                  string   `json:"year"`
	Status                string   `json:"status,omitempty"`
	IsOnline              *bool    `json:"isOnline,omitempty"` // Stored alongside Status, never derived on read
	CurrentLocationID     *string  `json:"currentLocationId,omitempty"`
	CurrentBuilding       *string  `json:"currentBuilding,omitempty"`
	CurrentRoom           *string  `json:"currentRoom,omitempty"`
	Latitude              *float64 `json:"latitude,omitempty"`
	Longitude             *float64 `json:"longitude,omitempty"`
	FriendIDs             []string `json:"friendIds,omitempty"`
	PendingFriendRequests []string `json:"pendingFriendRequests,omitempty"`
	SentFriendRequests    []string `json:"sentFriendRequests,omitempty"`
	SocietyIDs            []string `json:"societyIds,omitempty"`

	Extra Attributes `json:"-"`
}

type userAlias User

func (u *User) GetID() string      { return u.ID }
func (u *User) SetID(id string)    { u.ID = id }
func (u *User) Kind() Kind         { return KindUser }
func (u *User) Extras() Attributes { return u.Extra }

// Label returns the user's name, falling back to the id
func (u *User) Label() string {
	if u.Name != "" {
		return u.Name
	}
	return u.ID
}

// HasFriend reports whether id is in the user's friend set
func (u *User) HasFriend(id string) bool {
	return containsID(u.FriendIDs, id)
}

func (u *User) UnmarshalJSON(data []byte) error {
	var a userAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*u = User(a)
	u.Extra = extra
	return nil
}

func (u User) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(userAlias(u), u.Extra)
}
