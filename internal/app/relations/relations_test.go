package relations

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
)

func strPtr(s string) *string { return &s }

func TestScanOrder(t *testing.T) {
	assert.Equal(t, []models.Kind{
		models.KindEvent, models.KindUser, models.KindPrivacy, models.KindFriendRequest, models.KindSociety,
	}, ScanOrder())
}

func TestTableFieldsAreUnique(t *testing.T) {
	seen := map[string]bool{}
	for _, r := range Table {
		key := string(r.From) + "." + r.Field
		assert.False(t, seen[key], "duplicate relation %s", key)
		seen[key] = true
		assert.NotEmpty(t, r.Noun)
		assert.True(t, r.To.Valid())
		if r.OnDelete != DeleteOwner {
			assert.NotNil(t, r.detach, "%s needs a detach func", key)
		}
	}
}

func TestOnlyFriendshipIsSymmetric(t *testing.T) {
	for _, r := range Table {
		assert.Equal(t, r.From == models.KindUser && r.Field == "friendIds", r.Symmetric, r.Field)
	}
}

func relationFor(t *testing.T, from models.Kind, field string) Relation {
	t.Helper()
	for _, r := range From(from) {
		if r.Field == field {
			return r
		}
	}
	require.Failf(t, "relation not found", "%s.%s", from, field)
	return Relation{}
}

func TestEventRefs(t *testing.T) {
	ev := &models.Event{
		CreatorID:    "user_001",
		OrganizerIDs: []string{"user_002", ""},
		SocietyID:    "soc_001",
		Location:     "loc_003",
		LocationID:   "loc_004",
	}

	creator := relationFor(t, models.KindEvent, "creatorId")
	assert.Equal(t, []string{"user_001"}, creator.Refs(ev))

	organizers := relationFor(t, models.KindEvent, "organizerIds")
	assert.Equal(t, []string{"user_002"}, organizers.Refs(ev), "blank ids are skipped")

	location := relationFor(t, models.KindEvent, "locationId")
	assert.Equal(t, []string{"loc_004", "loc_003"}, location.Refs(ev))

	ev.Location = "Building 11 foyer"
	assert.Equal(t, []string{"loc_004"}, location.Refs(ev))

	assert.Nil(t, creator.Refs(&models.User{ID: "user_001"}), "wrong owner kind")
}

func TestDetachStripsLists(t *testing.T) {
	target := &models.User{ID: "user_002"}
	ev := &models.Event{OrganizerIDs: []string{"user_001", "user_002"}, AttendeeIDs: []string{"user_002"}}
	u := &models.User{FriendIDs: []string{"user_002", "user_003"}}

	for _, r := range To(models.KindUser) {
		r.Detach(ev, target)
		r.Detach(u, target)
	}

	assert.Equal(t, []string{"user_001"}, ev.OrganizerIDs)
	assert.Empty(t, ev.AttendeeIDs)
	assert.Equal(t, []string{"user_003"}, u.FriendIDs)
}

func TestDetachLocation(t *testing.T) {
	loc := &models.Location{ID: "loc_001", Building: "CB02", Room: strPtr("04.56")}

	tests := []struct {
		name    string
		event   *models.Event
		changed bool
	}{
		{"by locationId", &models.Event{Location: "Somewhere", LocationID: "loc_001"}, true},
		{"by id in location", &models.Event{Location: "loc_001"}, true},
		{"by label", &models.Event{Location: "CB02 04.56"}, true},
		{"unrelated", &models.Event{Location: "CB11 00.401", LocationID: "loc_002"}, false},
	}
	rel := relationFor(t, models.KindEvent, "locationId")
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			before := *tt.event
			assert.Equal(t, tt.changed, rel.Detach(tt.event, loc))
			if tt.changed {
				assert.Equal(t, UnresolvedLocation, tt.event.Location)
				assert.Empty(t, tt.event.LocationID)
			} else {
				assert.Equal(t, before, *tt.event)
			}
		})
	}
}

func TestDetachUserAndSocietyLocation(t *testing.T) {
	loc := &models.Location{ID: "loc_001", Building: "CB02", Room: strPtr("04.56")}
	u := &models.User{CurrentLocationID: strPtr("loc_001"), CurrentBuilding: strPtr("CB02"), CurrentRoom: strPtr("04.56")}
	s := &models.Society{MeetingLocation: strPtr("CB02.04.56")}
	other := &models.Society{MeetingLocation: strPtr("CB11.Main")}

	userRel := relationFor(t, models.KindUser, "currentLocationId")
	socRel := relationFor(t, models.KindSociety, "meetingLocation")

	assert.True(t, userRel.Detach(u, loc))
	assert.Nil(t, u.CurrentLocationID)
	assert.Nil(t, u.CurrentBuilding)
	assert.Nil(t, u.CurrentRoom)

	assert.True(t, socRel.Detach(s, loc))
	assert.Nil(t, s.MeetingLocation)
	assert.False(t, socRel.Detach(other, loc))
}

func TestDeleteOwnerRelationsDoNotDetach(t *testing.T) {
	creator := relationFor(t, models.KindEvent, "creatorId")
	ev := &models.Event{CreatorID: "user_001"}
	assert.False(t, creator.Detach(ev, &models.User{ID: "user_001"}))
	assert.True(t, creator.References(ev, "user_001"))
}
