package seed

import (
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/app/services"
)

func ptr[T any](v T) *T { return &v }

// CreateDemoData fills an empty store with a small, consistent campus dataset.
// A store that already holds users is left alone. Failures are collected
// rather than stopping at the first one.
func CreateDemoData(store *repositories.EntityStore, editor services.EditorService, lgr zerolog.Logger) error {
	if n := len(store.Users()); n > 0 {
		lgr.Info().Int("users", n).Msg("Store already has users, skipping demo data")
		return nil
	}

	lgr.Info().Msg("Creating demo data...")
	var finalErr error

	// --- Locations --- //
	locations := []*models.Location{
		{Name: "Building 11 Lecture Theatre", Building: "CB11", Room: ptr("00.401"), Latitude: ptr(-33.8838), Longitude: ptr(151.1992),
			Type: "lecture_hall", Capacity: 250, Amenities: []string{"projector", "microphone"}},
		{Name: "Library Level 3", Building: "CB05", Room: ptr("03.200"), Latitude: ptr(-33.8835), Longitude: ptr(151.2005),
			Type: "library", Capacity: 120, Accessibility: &models.Accessibility{WheelchairAccessible: true, ElevatorAccess: true}},
		{Name: "Alumni Green", Building: "CB01", Latitude: ptr(-33.8832), Longitude: ptr(151.2009), Type: "outdoor"},
	}
	for _, l := range locations {
		if _, err := editor.CreateLocation(l); err != nil {
			lgr.Error().Err(err).Str("location", l.Name).Msg("Error creating location")
			finalErr = errors.Join(finalErr, err)
		}
	}
	theatre, library, green := locations[0], locations[1], locations[2]

	// --- Users (each with privacy settings) --- //
	people := []*models.User{
		{Name: "Alex Chen", Email: "alex.chen@student.uts.edu.au", Course: "Bachelor of Computer Science", Year: "2nd Year", Status: "online"},
		{Name: "Jordan Smith", Email: "jordan.smith@student.uts.edu.au", Course: "Bachelor of Engineering", Year: "3rd Year", Status: "busy"},
		{Name: "Priya Patel", Email: "priya.patel@student.uts.edu.au", Course: "Bachelor of Design", Year: "1st Year", Status: "away"},
		{Name: "Sam Taylor", Email: "sam.taylor@student.uts.edu.au", Course: "Master of Data Science", Year: "Postgraduate", Status: "offline"},
	}
	for _, u := range people {
		if _, _, err := editor.CreateUser(u); err != nil {
			lgr.Error().Err(err).Str("user", u.Name).Msg("Error creating user")
			finalErr = errors.Join(finalErr, err)
		}
	}
	if finalErr != nil {
		return finalErr
	}
	alex, jordan, priya, sam := people[0], people[1], people[2], people[3]

	alex.CurrentLocationID = ptr(library.ID)
	alex.CurrentBuilding = ptr(library.Building)
	alex.CurrentRoom = library.Room

	for _, pair := range [][2]*models.User{{alex, jordan}, {alex, priya}, {jordan, priya}} {
		if err := editor.LinkFriends(pair[0].ID, pair[1].ID); err != nil {
			lgr.Error().Err(err).Str("user", pair[0].ID).Str("friend", pair[1].ID).Msg("Error linking friends")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if _, err := store.AddFriendRequest(&models.FriendRequest{
		SenderID: sam.ID, ReceiverID: alex.ID, Status: "pending", CreatedAt: "2025-02-24T09:00:00.000Z",
	}); err != nil {
		finalErr = errors.Join(finalErr, fmt.Errorf("friend request: %w", err))
	} else {
		sam.SentFriendRequests = append(sam.SentFriendRequests, alex.ID)
		alex.PendingFriendRequests = append(alex.PendingFriendRequests, sam.ID)
	}

	// --- Societies --- //
	coders := &models.Society{
		Name: "UTS Programmers' Society", Category: "technology", Description: "Weekly hack nights and coding workshops",
		MemberCount: ptr(2), MemberIDs: []string{alex.ID, jordan.ID}, IsJoined: true, JoinDate: ptr("2025-02-20T10:00:00.000Z"),
		MeetingLocation: ptr(theatre.Key()), Tags: []string{"coding", "hackathons"},
	}
	artists := &models.Society{
		Name: "Sketch Club", Category: "arts", Description: "Life drawing on the green",
		MemberCount: ptr(1), MemberIDs: []string{priya.ID}, MeetingLocation: ptr(green.ID),
	}
	for _, soc := range []*models.Society{coders, artists} {
		if _, err := store.AddSociety(soc); err != nil {
			lgr.Error().Err(err).Str("society", soc.Name).Msg("Error creating society")
			finalErr = errors.Join(finalErr, err)
		}
	}
	alex.SocietyIDs = []string{coders.ID}
	jordan.SocietyIDs = []string{coders.ID}
	priya.SocietyIDs = []string{artists.ID}

	// --- Events --- //
	events := []*models.Event{
		{
			Title: "Data Structures Lecture", Category: "academic", SubType: "lecture", Type: "lecture",
			Location: theatre.ID, LocationID: theatre.ID, DaysFromNow: ptr(1), HoursFromStart: ptr(9.0), Duration: ptr(2.0),
			CreatorID: jordan.ID, AttendeeIDs: []string{alex.ID, priya.ID}, PrivacyLevel: "university",
			IsRecurring: true, ScheduledDate: "2025-03-03T09:00:00.000Z", NextOccurrence: "2025-03-10T09:00:00.000Z",
		},
		{
			Title: "Study Group", Category: "personal", SubType: "study", Type: "study",
			Location: library.ID, LocationID: library.ID, DaysFromNow: ptr(2), HoursFromStart: ptr(14.5), Duration: ptr(1.5),
			CreatorID: alex.ID, InvitedIDs: []string{jordan.ID, priya.ID}, PrivacyLevel: "friends",
			ScheduledDate: "2025-03-04T14:30:00.000Z",
		},
		{
			Title: "Hack Night", Category: "society", SubType: "workshop", Type: "workshop",
			Location: theatre.DisplayLabel(), LocationID: theatre.ID, SocietyID: coders.ID,
			DaysFromNow: ptr(3), HoursFromStart: ptr(18.0), Duration: ptr(3.0),
			CreatorID: alex.ID, OrganizerIDs: []string{jordan.ID}, AttendeeIDs: []string{alex.ID}, InterestedIDs: []string{sam.ID},
			PrivacyLevel: "public", ScheduledDate: "2025-03-05T18:00:00.000Z",
		},
		{
			Title: "Sketch on the Green", Category: "society", SubType: "meeting", Type: "meeting",
			Location: green.ID, LocationID: green.ID, SocietyID: artists.ID,
			DaysFromNow: ptr(5), HoursFromStart: ptr(12.0), Duration: ptr(1.0),
			CreatorID: priya.ID, AttendeeIDs: []string{priya.ID}, PrivacyLevel: "public",
			ScheduledDate: "2025-03-07T12:00:00.000Z",
		},
	}
	for _, e := range events {
		if _, err := store.AddEvent(e); err != nil {
			lgr.Error().Err(err).Str("event", e.Title).Msg("Error creating event")
			finalErr = errors.Join(finalErr, err)
		}
	}

	if finalErr == nil {
		counts := zerolog.Dict()
		for kind, n := range store.Counts() {
			counts.Int(kind.Collection(), n)
		}
		lgr.Info().Dict("collections", counts).Msg("Demo data created")
	}
	return finalErr
}
