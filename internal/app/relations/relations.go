// Package relations describes every foreign key between fixture entities.
// The integrity checker, the validator and the store's cascading deletes all read Table.
package relations

import (
	"slices"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
)

// Cardinality of a reference field
type Cardinality int

const (
	One Cardinality = iota
	Many
)

// Policy says what happens to the referring entity when the target is deleted
type Policy int

const (
	// Strip removes the deleted id from a list field
	Strip Policy = iota
	// Clear blanks a single-valued field, leaving the owner in place
	Clear
	// DeleteOwner removes the referring entity too
	DeleteOwner
)

// UnresolvedLocation replaces an event location whose target was deleted
const UnresolvedLocation = "TBD"

// Relation is one foreign-key field
type Relation struct {
	From        models.Kind
	Field       string
	To          models.Kind
	Cardinality Cardinality
	// Symmetric relations must be mirrored on the target (friendship)
	Symmetric bool
	// Noun names the reference in integrity messages ("organizer", "friend")
	Noun     string
	OnDelete Policy

	refs   func(models.Entity) []string
	detach func(owner, target models.Entity) bool
}

// Refs returns the non-empty ids the entity holds in this field
func (r Relation) Refs(e models.Entity) []string {
	if e.Kind() != r.From {
		return nil
	}
	return r.refs(e)
}

// References reports whether e points at id through this field
func (r Relation) References(e models.Entity, id string) bool {
	return slices.Contains(r.Refs(e), id)
}

// Detach removes owner's reference to target according to OnDelete and reports
// whether owner changed. It is a no-op for DeleteOwner relations.
func (r Relation) Detach(owner, target models.Entity) bool {
	if owner.Kind() != r.From || target.Kind() != r.To || r.detach == nil {
		return false
	}
	return r.detach(owner, target)
}

// Table lists every relation, grouped by owning kind in integrity scan order
var Table = []Relation{
	{
		From: models.KindEvent, Field: "creatorId", To: models.KindUser, Cardinality: One,
		Noun: "creator", OnDelete: DeleteOwner,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.Event).CreatorID) },
	},
	eventUsers("organizerIds", "organizer", func(e *models.Event) *[]string { return &e.OrganizerIDs }),
	eventUsers("attendeeIds", "attendee", func(e *models.Event) *[]string { return &e.AttendeeIDs }),
	eventUsers("invitedIds", "invited user", func(e *models.Event) *[]string { return &e.InvitedIDs }),
	eventUsers("interestedIds", "interested user", func(e *models.Event) *[]string { return &e.InterestedIDs }),
	{
		From: models.KindEvent, Field: "societyId", To: models.KindSociety, Cardinality: One,
		Noun: "society", OnDelete: DeleteOwner,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.Event).SocietyID) },
	},
	{
		From: models.KindEvent, Field: "locationId", To: models.KindLocation, Cardinality: One,
		Noun: "location", OnDelete: Clear,
		refs:   func(e models.Entity) []string { return EventLocationRefs(e.(*models.Event)) },
		detach: detachEventLocation,
	},
	{
		From: models.KindEvent, Field: "parentEventId", To: models.KindEvent, Cardinality: One,
		Noun: "parent event", OnDelete: Clear,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.Event).ParentEventID) },
		detach: func(owner, target models.Entity) bool {
			ev := owner.(*models.Event)
			if ev.ParentEventID != target.GetID() {
				return false
			}
			ev.ParentEventID = ""
			return true
		},
	},

	userUser("friendIds", "friend", true, func(u *models.User) *[]string { return &u.FriendIDs }),
	userUser("pendingFriendRequests", "pending friend request", false, func(u *models.User) *[]string { return &u.PendingFriendRequests }),
	userUser("sentFriendRequests", "sent friend request", false, func(u *models.User) *[]string { return &u.SentFriendRequests }),
	{
		From: models.KindUser, Field: "currentLocationId", To: models.KindLocation, Cardinality: One,
		Noun: "current location", OnDelete: Clear,
		refs: func(e models.Entity) []string {
			if id := e.(*models.User).CurrentLocationID; id != nil {
				return nonEmpty(*id)
			}
			return nil
		},
		detach: detachUserLocation,
	},
	{
		From: models.KindUser, Field: "societyIds", To: models.KindSociety, Cardinality: Many,
		Noun: "society", OnDelete: Strip,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.User).SocietyIDs...) },
		detach: func(owner, target models.Entity) bool {
			return stripID(&owner.(*models.User).SocietyIDs, target.GetID())
		},
	},

	{
		From: models.KindPrivacy, Field: "userId", To: models.KindUser, Cardinality: One,
		Noun: "user", OnDelete: DeleteOwner,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.PrivacySetting).UserID) },
	},

	{
		From: models.KindFriendRequest, Field: "senderId", To: models.KindUser, Cardinality: One,
		Noun: "sender", OnDelete: DeleteOwner,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.FriendRequest).SenderID) },
	},
	{
		From: models.KindFriendRequest, Field: "receiverId", To: models.KindUser, Cardinality: One,
		Noun: "receiver", OnDelete: DeleteOwner,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.FriendRequest).ReceiverID) },
	},

	{
		From: models.KindSociety, Field: "memberIds", To: models.KindUser, Cardinality: Many,
		Noun: "member", OnDelete: Strip,
		refs: func(e models.Entity) []string { return nonEmpty(e.(*models.Society).MemberIDs...) },
		detach: func(owner, target models.Entity) bool {
			return stripID(&owner.(*models.Society).MemberIDs, target.GetID())
		},
	},
	{
		From: models.KindSociety, Field: "meetingLocation", To: models.KindLocation, Cardinality: One,
		Noun: "meeting location", OnDelete: Clear,
		refs: func(e models.Entity) []string {
			if loc := e.(*models.Society).MeetingLocation; loc != nil && models.LooksLikeID(models.KindLocation, *loc) {
				return []string{*loc}
			}
			return nil
		},
		detach: detachSocietyLocation,
	},
}

// From returns the relations owned by kind, in table order
func From(kind models.Kind) []Relation {
	var out []Relation
	for _, r := range Table {
		if r.From == kind {
			out = append(out, r)
		}
	}
	return out
}

// To returns the relations pointing at kind, in table order
func To(kind models.Kind) []Relation {
	var out []Relation
	for _, r := range Table {
		if r.To == kind {
			out = append(out, r)
		}
	}
	return out
}

// ScanOrder lists owning kinds in the order they first appear in Table
func ScanOrder() []models.Kind {
	var out []models.Kind
	for _, r := range Table {
		if !slices.Contains(out, r.From) {
			out = append(out, r.From)
		}
	}
	return out
}

// EventLocationRefs returns locationId plus the free-text location when it is a location id
func EventLocationRefs(e *models.Event) []string {
	refs := nonEmpty(e.LocationID)
	if models.LooksLikeID(models.KindLocation, e.Location) && e.Location != e.LocationID {
		refs = append(refs, e.Location)
	}
	return refs
}

// EventAtLocation reports whether the event points at loc by id or by its display label
func EventAtLocation(e *models.Event, loc *models.Location) bool {
	return e.LocationID == loc.ID || e.Location == loc.ID ||
		(e.Location != "" && e.Location == loc.DisplayLabel())
}

func eventUsers(field, noun string, list func(*models.Event) *[]string) Relation {
	return Relation{
		From: models.KindEvent, Field: field, To: models.KindUser, Cardinality: Many,
		Noun: noun, OnDelete: Strip,
		refs: func(e models.Entity) []string { return nonEmpty(*list(e.(*models.Event))...) },
		detach: func(owner, target models.Entity) bool {
			return stripID(list(owner.(*models.Event)), target.GetID())
		},
	}
}

func userUser(field, noun string, symmetric bool, list func(*models.User) *[]string) Relation {
	return Relation{
		From: models.KindUser, Field: field, To: models.KindUser, Cardinality: Many,
		Symmetric: symmetric, Noun: noun, OnDelete: Strip,
		refs: func(e models.Entity) []string { return nonEmpty(*list(e.(*models.User))...) },
		detach: func(owner, target models.Entity) bool {
			return stripID(list(owner.(*models.User)), target.GetID())
		},
	}
}

func detachEventLocation(owner, target models.Entity) bool {
	ev, loc := owner.(*models.Event), target.(*models.Location)
	if !EventAtLocation(ev, loc) {
		return false
	}
	ev.Location = UnresolvedLocation
	ev.LocationID = ""
	return true
}

func detachUserLocation(owner, target models.Entity) bool {
	u := owner.(*models.User)
	if u.CurrentLocationID == nil || *u.CurrentLocationID != target.GetID() {
		return false
	}
	u.CurrentLocationID = nil
	u.CurrentBuilding = nil
	u.CurrentRoom = nil
	return true
}

// SocietyMeetsAt reports whether the society's meeting location names loc by
// id, by "building.room" key or by display label
func SocietyMeetsAt(s *models.Society, loc *models.Location) bool {
	if s.MeetingLocation == nil {
		return false
	}
	switch *s.MeetingLocation {
	case loc.ID, loc.Key(), loc.DisplayLabel():
		return true
	}
	return false
}

func detachSocietyLocation(owner, target models.Entity) bool {
	s, loc := owner.(*models.Society), target.(*models.Location)
	if !SocietyMeetsAt(s, loc) {
		return false
	}
	s.MeetingLocation = nil
	return true
}

func stripID(list *[]string, id string) bool {
	before := len(*list)
	*list = slices.DeleteFunc(*list, func(v string) bool { return v == id })
	return len(*list) != before
}

func nonEmpty(ids ...string) []string {
	var out []string
	for _, id := range ids {
		if id != "" {
			out = append(out, id)
		}
	}
	return out
}
