package services

import (
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

func TestValidateAllEmptyStore(t *testing.T) {
	f := newFixture(t)
	report := f.validator.ValidateAll()

	assert.True(t, report.Valid)
	assert.Empty(t, report.Errors)
	assert.Empty(t, report.Warnings)
	require.Len(t, report.Statistics, len(models.Kinds))
	for _, kind := range models.Kinds {
		assert.Zero(t, report.Statistics[string(kind)].Total, kind)
	}
}

func TestValidateAllUserMissingEmailAndBadYear(t *testing.T) {
	f := newFixture(t)
	u, err := f.store.AddUser(&models.User{Name: "Sam", Course: "Bachelor of IT", Year: "Fifth"})
	require.NoError(t, err)
	_, err = f.store.AddPrivacySetting(models.DefaultPrivacySetting(u.ID))
	require.NoError(t, err)

	report := f.validator.ValidateAll()

	assert.False(t, report.Valid)
	assert.Equal(t, []string{
		`user "Sam": Missing required field "email"`,
		`User "Sam": Invalid year value "Fifth"`,
	}, report.Errors)
	assert.Equal(t, 1, report.Statistics["user"].WithErrors)
}

func TestValidateAllAsymmetricFriendshipReportedOnce(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alex", "alex@uts.edu.au")
	b := f.addUser(t, "Blair", "blair@uts.edu.au")
	a.FriendIDs = []string{b.ID}

	report := f.validator.ValidateAll()

	assert.Equal(t, []string{`Asymmetric friendship: "Alex" lists "Blair" as friend but not vice versa`}, report.Errors)
	assert.Len(t, f.integrity.CheckIntegrity(), 1)
}

func TestValidateAllIsIdempotent(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alex", "not-an-email")
	a.FriendIDs = []string{"user_404"}
	f.addEvent(t, &models.Event{Title: "Lab", CreatorID: "user_405", Duration: ptr(-1.0)})

	first := f.validator.ValidateAll()
	second := f.validator.ValidateAll()
	assert.Equal(t, first, second)
}

func TestValidateAllCountsEntityWithErrorsOnce(t *testing.T) {
	f := newFixture(t)
	_, err := f.store.AddUser(&models.User{
		Name: "Kim", Course: "Bachelor of IT", Year: "1st Year",
		Status: "online", IsOnline: ptr(false),
	})
	require.NoError(t, err)
	f.addUser(t, "Lee", "lee@uts.edu.au")

	report := f.validator.ValidateAll()

	assert.Equal(t, 2, report.Statistics["user"].Total)
	assert.Equal(t, 1, report.Statistics["user"].WithErrors)
	assert.Equal(t, 0, report.Statistics["user"].WithWarnings)
	assert.Equal(t, 1, report.Statistics["user"].Valid)
	assert.Contains(t, report.Warnings, `User "Kim": isOnline (false) doesn't match status (online)`)
	assert.Contains(t, report.Warnings, `User "Kim": No privacy settings found`)
}

func TestValidateAllPerKindRules(t *testing.T) {
	tests := []struct {
		name     string
		setup    func(t *testing.T, f *fixture)
		errors   []string
		warnings []string
	}{
		{
			name: "invalid and duplicate email",
			setup: func(t *testing.T, f *fixture) {
				f.addUser(t, "Ana", "ana@uts")
				f.addUser(t, "Ben", "ana@uts")
			},
			errors: []string{
				`User "Ana": Invalid email format`,
				`User "Ana": Duplicate email "ana@uts"`,
				`User "Ben": Invalid email format`,
				`User "Ben": Duplicate email "ana@uts"`,
			},
		},
		{
			name: "user coordinates out of range",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				u.Latitude, u.Longitude = ptr(95.0), ptr(-200.0)
			},
			errors: []string{
				`User "Ana": Latitude out of valid range`,
				`User "Ana": Longitude out of valid range`,
			},
		},
		{
			name: "event category sub-type and timing",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				f.addEvent(t, &models.Event{
					Title: "Bad", Category: "academic", SubType: "party", CreatorID: u.ID,
					OrganizerIDs: []string{u.ID}, Duration: ptr(0.0), HoursFromStart: ptr(25.0),
					PrivacyLevel: "secret",
				})
				f.addEvent(t, &models.Event{Title: "Odd", Category: "sport", SubType: "match", CreatorID: u.ID})
			},
			errors: []string{
				`Event "Bad": Invalid privacy level "secret"`,
				`Event "Bad": Invalid subType "party" for category "academic"`,
				`Event "Bad": Duration must be positive`,
				`Event "Odd": Invalid category "sport"`,
			},
			warnings: []string{
				`Event "Bad": Unusual start time (25 hours)`,
				`Event "Bad": Creator is also listed as organizer`,
			},
		},
		{
			name: "event missing fields and unknown people",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.store.AddEvent(&models.Event{Title: "Empty", AttendeeIDs: []string{"user_404"}})
				require.NoError(t, err)
			},
			errors: []string{
				`event "Empty": Missing required field "category"`,
				`event "Empty": Missing required field "subType"`,
				`event "Empty": Missing required field "location"`,
				`event "Empty": Missing required field "creatorId"`,
				`Event "Empty": Attendee "user_404" not found`,
				`Event "Empty": User "user_404" in attendeeIds not found`,
			},
		},
		{
			name: "society membership",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.store.AddSociety(&models.Society{Name: "Chess", Category: "social", MemberCount: ptr(-1)})
				require.NoError(t, err)
				_, err = f.store.AddSociety(&models.Society{Name: "Go", Category: "technology", MemberCount: ptr(0), IsJoined: true})
				require.NoError(t, err)
				_, err = f.store.AddSociety(&models.Society{Name: "Go", Category: "games"})
				require.NoError(t, err)
			},
			errors: []string{
				`Society "Chess": Member count cannot be negative`,
				`Society "Go": Duplicate name "Go"`,
				`Society "Go": Invalid category "games"`,
				`Society "Go": Duplicate name "Go"`,
			},
			warnings: []string{
				`Society "Go": Marked as joined but has 0 members`,
			},
		},
		{
			name: "society member count mismatch",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				_, err := f.store.AddSociety(&models.Society{Name: "Chess", Category: "social", MemberCount: ptr(3), MemberIDs: []string{u.ID}})
				require.NoError(t, err)
			},
			warnings: []string{
				`Society "Chess": Member count (3) doesn't match memberIds (1)`,
			},
		},
		{
			name: "location outside campus and duplicated",
			setup: func(t *testing.T, f *fixture) {
				far := validLocation("CB01", "1.01")
				far.Latitude = ptr(-33.95)
				_, err := f.store.AddLocation(far)
				require.NoError(t, err)
				_, err = f.store.AddLocation(validLocation("CB01", "1.01"))
				require.NoError(t, err)
			},
			errors: []string{
				`Location "CB01 1.01": Duplicate location "CB01.1.01"`,
				`Location "CB01 1.01": Duplicate location "CB01.1.01"`,
			},
			warnings: []string{
				`Location "CB01 1.01": Coordinates appear to be outside UTS campus area`,
			},
		},
		{
			name: "location missing coordinates",
			setup: func(t *testing.T, f *fixture) {
				_, err := f.store.AddLocation(&models.Location{Name: "Hall", Building: "CB02", Type: "hall"})
				require.NoError(t, err)
			},
			errors: []string{
				`location "CB02": Missing required field "latitude"`,
				`location "CB02": Missing required field "longitude"`,
				`Location "CB02": Invalid type "hall"`,
			},
		},
		{
			name: "privacy orphan and bad values",
			setup: func(t *testing.T, f *fixture) {
				p := models.DefaultPrivacySetting("user_404")
				p.ShareEvents = "everyone"
				_, err := f.store.AddPrivacySetting(p)
				require.NoError(t, err)
			},
			errors: []string{
				`Privacy settings "user_404": Invalid shareEvents value "everyone"`,
				`Privacy settings "user_404": User "user_404" not found`,
				`Privacy settings for "user_404": User not found`,
			},
		},
		{
			name: "duplicate privacy settings",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				_, err := f.store.AddPrivacySetting(models.DefaultPrivacySetting(u.ID))
				require.NoError(t, err)
			},
			warnings: []string{
				`User "Ana": 2 privacy settings found, expected one`,
			},
		},
		{
			name: "friend request to self and unknown user",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				_, err := f.store.AddFriendRequest(&models.FriendRequest{SenderID: u.ID, ReceiverID: u.ID})
				require.NoError(t, err)
				_, err = f.store.AddFriendRequest(&models.FriendRequest{SenderID: "user_404", ReceiverID: u.ID})
				require.NoError(t, err)
			},
			errors: []string{
				`Friend request "req_001": Sender and receiver are the same user`,
				`Friend request "req_002": Sender "user_404" not found`,
			},
		},
		{
			name: "pending request from unknown user",
			setup: func(t *testing.T, f *fixture) {
				u := f.addUser(t, "Ana", "ana@uts.edu.au")
				u.PendingFriendRequests = []string{"user_404"}
				u.SocietyIDs = []string{"soc_404"}
			},
			errors: []string{
				`User "Ana": Pending friend request from non-existent user "user_404"`,
				`User "Ana": Society "soc_404" not found`,
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			tt.setup(t, f)

			report := f.validator.ValidateAll()

			if tt.errors == nil {
				assert.Empty(t, report.Errors)
				assert.True(t, report.Valid)
			} else {
				assert.Equal(t, tt.errors, report.Errors)
				assert.False(t, report.Valid)
			}
			if tt.warnings == nil {
				assert.Empty(t, report.Warnings)
			} else {
				assert.Equal(t, tt.warnings, report.Warnings)
			}
		})
	}
}

func TestValidateAllCampusBoundsAreConfigurable(t *testing.T) {
	f := newFixture(t)
	loc := validLocation("CB01", "1.01")
	loc.Latitude = ptr(-33.95)
	_, err := f.store.AddLocation(loc)
	require.NoError(t, err)

	assert.Len(t, f.validator.ValidateAll().Warnings, 1)

	wide := validation.Bounds{MinLat: -34, MaxLat: -33, MinLng: 151, MaxLng: 152}
	report := NewValidationService(f.store, wide, zerolog.Nop()).ValidateAll()
	assert.Empty(t, report.Warnings)
}

func TestValidateAllDoesNotFlagCleanDataset(t *testing.T) {
	f := newFixture(t)
	a := f.addUser(t, "Alex", "alex@uts.edu.au")
	b := f.addUser(t, "Blair", "blair@uts.edu.au")
	require.NoError(t, f.editor.LinkFriends(a.ID, b.ID))
	loc, err := f.store.AddLocation(validLocation("CB11", "00.401"))
	require.NoError(t, err)
	soc, err := f.store.AddSociety(&models.Society{Name: "Chess", Category: "social", MemberCount: ptr(1), MemberIDs: []string{a.ID}})
	require.NoError(t, err)
	f.addEvent(t, &models.Event{
		Title: "Chess night", Category: "society", SubType: "meeting", Location: loc.ID, LocationID: loc.ID,
		SocietyID: soc.ID, CreatorID: a.ID, AttendeeIDs: []string{b.ID}, Duration: ptr(2.0), HoursFromStart: ptr(18.0),
		PrivacyLevel: "public",
	})

	report := f.validator.ValidateAll()
	assert.True(t, report.Valid, strings.Join(report.Errors, "\n"))
	assert.Empty(t, report.Warnings)
	assert.Empty(t, f.integrity.CheckIntegrity())
}
