package models

// FriendRequest links a sender to a receiver
type FriendRequest struct {
	ID         string `json:"id"`
	SenderID   string `json:"senderId"`
	ReceiverID string `json:"receiverId"`
	Status     string `json:"status,omitempty"`
	CreatedAt  string `json:"createdAt,omitempty"`

	Extra Attributes `json:"-"`
}

type friendRequestAlias FriendRequest

func (r *FriendRequest) GetID() string      { return r.ID }
func (r *FriendRequest) SetID(id string)    { r.ID = id }
func (r *FriendRequest) Kind() Kind         { return KindFriendRequest }
func (r *FriendRequest) Extras() Attributes { return r.Extra }
func (r *FriendRequest) Label() string      { return r.ID }

func (r *FriendRequest) UnmarshalJSON(data []byte) error {
	var a friendRequestAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*r = FriendRequest(a)
	r.Extra = extra
	return nil
}

func (r FriendRequest) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(friendRequestAlias(r), r.Extra)
}
