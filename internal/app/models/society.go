package models

// Society is a student club. MemberCount and MemberIDs are stored separately and may disagree.
type Society struct {
	ID              string   `json:"id"`
	Name            string   `json:"name"`
	Description     string   `json:"description,omitempty"`
	Category        string   `json:"category"`
	MemberCount     *int     `json:"memberCount,omitempty"`
	MemberIDs       []string `json:"memberIds,omitempty"`
	IsJoined        bool     `json:"isJoined"`
	JoinDate        *string  `json:"joinDate,omitempty"`
	MeetingLocation *string  `json:"meetingLocation,omitempty"`
	Tags            []string `json:"tags,omitempty"`

	Extra Attributes `json:"-"`
}

type societyAlias Society

func (s *Society) GetID() string      { return s.ID }
func (s *Society) SetID(id string)    { s.ID = id }
func (s *Society) Kind() Kind         { return KindSociety }
func (s *Society) Extras() Attributes { return s.Extra }

func (s *Society) Label() string {
	if s.Name != "" {
		return s.Name
	}
	return s.ID
}

func (s *Society) UnmarshalJSON(data []byte) error {
	var a societyAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*s = Society(a)
	s.Extra = extra
	return nil
}

func (s Society) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(societyAlias(s), s.Extra)
}
