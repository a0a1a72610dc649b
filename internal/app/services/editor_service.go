package services

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/rs/zerolog"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/models/dto"
	"github.com/yigit/uniconnect-fixtures/internal/app/relations"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/apperrors"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/helpers"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

// joinDateLayout matches the millisecond UTC timestamps found in fixture files
const joinDateLayout = "2006-01-02T15:04:05.000Z"

// EventFilter selects events for bulk schedule edits. Zero fields match everything.
type EventFilter struct {
	Category string
	// From and To bound the date part of scheduledDate, inclusive (YYYY-MM-DD)
	From string
	To   string
}

// Matches reports whether the event passes the filter
func (f EventFilter) Matches(e *models.Event) bool {
	if f.Category != "" && e.Category != f.Category {
		return false
	}
	if f.From == "" && f.To == "" {
		return true
	}
	if len(e.ScheduledDate) < len(time.DateOnly) {
		return false
	}
	day := e.ScheduledDate[:len(time.DateOnly)]
	return (f.From == "" || day >= f.From) && (f.To == "" || day <= f.To)
}

// EditorService holds the editing operations that touch more than one entity
type EditorService interface {
	CreateUser(user *models.User) (*models.User, *models.PrivacySetting, error)
	CreateLocation(loc *models.Location) (*models.Location, error)
	CreateSociety(soc *models.Society, now time.Time) (*models.Society, error)
	LinkFriends(userID, friendID string) error
	ToggleMembership(societyID string, now time.Time) (*models.Society, error)
	ShiftEvents(days int, filter EventFilter) int
	DuplicateEvents(filter EventFilter, offsetDays int) ([]*models.Event, error)
	SubTypesForCategory(category string) []string
	LocationUsage(locationID string) (*dto.LocationUsage, error)
	Statistics() *dto.DatasetStats
}

type editorServiceImpl struct {
	store  *repositories.EntityStore
	logger zerolog.Logger
}

// NewEditorService creates a new editor service instance
func NewEditorService(store *repositories.EntityStore, logger zerolog.Logger) EditorService {
	return &editorServiceImpl{
		store:  store,
		logger: logger,
	}
}

// CreateUser adds a user together with its companion privacy settings.
// isOnline is filled from status when the caller left it unset.
func (s *editorServiceImpl) CreateUser(user *models.User) (*models.User, *models.PrivacySetting, error) {
	if user == nil {
		return nil, nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, "user is nil")
	}
	if user.IsOnline == nil && user.Status != "" {
		online := user.Status == "online"
		user.IsOnline = &online
	}

	created, err := s.store.AddUser(user)
	if err != nil {
		return nil, nil, err
	}
	privacy, err := s.store.AddPrivacySetting(models.DefaultPrivacySetting(created.ID))
	if err != nil {
		return nil, nil, err
	}

	s.logger.Info().Str("userId", created.ID).Str("privacyId", privacy.ID).Msg("User created")
	return created, privacy, nil
}

// CreateLocation adds a campus location, filling coordinates from the building
// table and capacity, amenities, accessibility and tags from the location type.
// A location with the same building and room as an existing one is rejected.
func (s *editorServiceImpl) CreateLocation(loc *models.Location) (*models.Location, error) {
	if loc == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, "location is nil")
	}
	loc.Name = strings.TrimSpace(loc.Name)
	loc.Building = strings.TrimSpace(loc.Building)
	if loc.Room != nil && strings.TrimSpace(*loc.Room) == "" {
		loc.Room = nil
	}

	var problems []string
	if loc.Name == "" {
		problems = append(problems, "name is required")
	}
	if loc.Building == "" {
		problems = append(problems, "building is required")
	}
	if loc.Type == "" {
		problems = append(problems, "type is required")
	}
	if loc.Latitude == nil || loc.Longitude == nil {
		at, ok := buildingCoordinates[loc.Building]
		if !ok {
			at = coordinates{campusCenterLat, campusCenterLng}
		}
		if loc.Latitude == nil {
			loc.Latitude = &at.lat
		}
		if loc.Longitude == nil {
			loc.Longitude = &at.lng
		}
	}
	if !validation.ValidLatitude(*loc.Latitude) {
		problems = append(problems, "latitude must be between -90 and 90")
	}
	if !validation.ValidLongitude(*loc.Longitude) {
		problems = append(problems, "longitude must be between -180 and 180")
	}
	key := loc.Key()
	for _, existing := range s.store.Locations() {
		if existing.Key() == key {
			problems = append(problems, fmt.Sprintf("location %s already exists", key))
			break
		}
	}
	if len(problems) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, strings.Join(problems, ", "))
	}

	if loc.Capacity == 0 {
		loc.Capacity = defaultCapacity(loc.Type)
	}
	if loc.Amenities == nil {
		loc.Amenities = defaultAmenities(loc.Type)
	}
	if loc.Accessibility == nil {
		loc.Accessibility = &models.Accessibility{
			WheelchairAccessible: true,
			ElevatorAccess:       true,
			HearingLoop:          loc.Type == "lecture_hall",
		}
	}
	if loc.Tags == nil {
		loc.Tags = locationTags(loc.Type, loc.Building)
	}
	room := ""
	if loc.Room != nil {
		room = *loc.Room
	}
	defaults := []struct {
		key   string
		value any
	}{
		{"operatingHours", map[string]string{"weekdays": "06:00-22:00", "weekends": "08:00-20:00"}},
		{"bookingRequired", loc.Type == "classroom" || loc.Type == "lab"},
		{"description", locationDescription(loc.Type, loc.Building, room)},
	}
	for _, d := range defaults {
		if err := setDefaultAttr(&loc.Extra, d.key, d.value); err != nil {
			return nil, err
		}
	}

	created, err := s.store.AddLocation(loc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("locationId", created.ID).Str("key", key).Msg("Location created")
	return created, nil
}

// CreateSociety adds a society the demo user has not joined, with tags from its
// category and name. Names must be unique.
func (s *editorServiceImpl) CreateSociety(soc *models.Society, now time.Time) (*models.Society, error) {
	if soc == nil {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, "society is nil")
	}
	soc.Name = strings.TrimSpace(soc.Name)

	var problems []string
	if soc.Name == "" {
		problems = append(problems, "name is required")
	}
	if soc.Category == "" {
		problems = append(problems, "category is required")
	}
	if soc.MemberCount != nil && *soc.MemberCount < 0 {
		problems = append(problems, "member count cannot be negative")
	}
	for _, existing := range s.store.Societies() {
		if soc.Name != "" && existing.Name == soc.Name {
			problems = append(problems, fmt.Sprintf("society name %q already exists", soc.Name))
			break
		}
	}
	if len(problems) > 0 {
		return nil, apperrors.NewCustomError(apperrors.ErrInvalidEntity, strings.Join(problems, ", "))
	}

	if soc.MemberCount == nil {
		zero := 0
		soc.MemberCount = &zero
	}
	soc.IsJoined = false
	soc.JoinDate = nil
	if soc.Tags == nil {
		soc.Tags = societyTags(soc.Category, soc.Name)
	}
	defaults := []struct {
		key   string
		value any
	}{
		{"imageUrl", societyImageURL(soc.Name, soc.Category)},
		{"events", []string{}},
		{"contactEmail", societyContactEmail(soc.Name)},
		{"establishedYear", now.Year()},
		{"isActive", true},
		{"socialLinks", map[string]*string{"website": nil, "facebook": nil, "instagram": nil, "discord": nil}},
	}
	for _, d := range defaults {
		if err := setDefaultAttr(&soc.Extra, d.key, d.value); err != nil {
			return nil, err
		}
	}

	created, err := s.store.AddSociety(soc)
	if err != nil {
		return nil, err
	}
	s.logger.Info().Str("societyId", created.ID).Str("category", created.Category).Msg("Society created")
	return created, nil
}

// LinkFriends records a friendship on both users
func (s *editorServiceImpl) LinkFriends(userID, friendID string) error {
	a, ok := s.store.User(userID)
	if !ok {
		return apperrors.NewResourceNotFoundError(string(models.KindUser), userID)
	}
	b, ok := s.store.User(friendID)
	if !ok {
		return apperrors.NewResourceNotFoundError(string(models.KindUser), friendID)
	}
	if a.ID == b.ID {
		return apperrors.NewCustomError(apperrors.ErrInvalidEntity, "a user cannot befriend themselves")
	}
	if !a.HasFriend(b.ID) {
		a.FriendIDs = append(a.FriendIDs, b.ID)
	}
	if !b.HasFriend(a.ID) {
		b.FriendIDs = append(b.FriendIDs, a.ID)
	}
	return nil
}

// ToggleMembership flips the joined flag and adjusts the member count, never below zero
func (s *editorServiceImpl) ToggleMembership(societyID string, now time.Time) (*models.Society, error) {
	soc, ok := s.store.Society(societyID)
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(string(models.KindSociety), societyID)
	}

	count := 0
	if soc.MemberCount != nil {
		count = *soc.MemberCount
	}

	soc.IsJoined = !soc.IsJoined
	if soc.IsJoined {
		count++
		joined := now.UTC().Format(joinDateLayout)
		soc.JoinDate = &joined
	} else {
		count = max(0, count-1)
		soc.JoinDate = nil
	}
	soc.MemberCount = &count

	s.logger.Debug().Str("societyId", soc.ID).Bool("joined", soc.IsJoined).Int("members", count).Msg("Membership toggled")
	return soc, nil
}

// ShiftEvents moves matching events by days: the relative offset and any
// absolute dates. It returns the number of events changed.
func (s *editorServiceImpl) ShiftEvents(days int, filter EventFilter) int {
	if days == 0 {
		return 0
	}
	shifted := 0
	for _, e := range s.store.Events() {
		if !filter.Matches(e) {
			continue
		}
		shiftEvent(e, days)
		shifted++
	}
	s.logger.Info().Int("days", days).Int("events", shifted).Msg("Events shifted")
	return shifted
}

func shiftEvent(e *models.Event, days int) {
	if e.DaysFromNow != nil {
		moved := *e.DaysFromNow + days
		e.DaysFromNow = &moved
	}
	e.ScheduledDate = helpers.ShiftTimestamp(e.ScheduledDate, days)
	e.EndDate = helpers.ShiftTimestamp(e.EndDate, days)
	e.NextOccurrence = helpers.ShiftTimestamp(e.NextOccurrence, days)
}

// DuplicateEvents copies matching events offsetDays away under fresh ids.
// Copies of recurring events become one-off instances pointing at their source.
func (s *editorServiceImpl) DuplicateEvents(filter EventFilter, offsetDays int) ([]*models.Event, error) {
	var sources []*models.Event
	for _, e := range s.store.Events() {
		if filter.Matches(e) {
			sources = append(sources, e)
		}
	}
	sort.SliceStable(sources, func(i, j int) bool {
		return sources[i].ScheduledDate < sources[j].ScheduledDate
	})

	created := make([]*models.Event, 0, len(sources))
	for _, src := range sources {
		dup := src.Clone()
		shiftEvent(dup, offsetDays)
		dup.NextOccurrence = ""
		if dup.IsRecurring {
			dup.IsRecurring = false
			dup.IsRecurringInstance = true
			if dup.ParentEventID == "" {
				dup.ParentEventID = src.ID
			}
		}

		if _, err := s.store.AddEvent(dup); err != nil {
			return created, err
		}
		created = append(created, dup)
	}

	s.logger.Info().Int("offsetDays", offsetDays).Int("events", len(created)).Msg("Events duplicated")
	return created, nil
}

// SubTypesForCategory lists the sub-types valid for an event category
func (s *editorServiceImpl) SubTypesForCategory(category string) []string {
	return models.SubTypesForCategory(category)
}

// LocationUsage lists the events, users and societies that refer to a location
func (s *editorServiceImpl) LocationUsage(locationID string) (*dto.LocationUsage, error) {
	loc, ok := s.store.Location(locationID)
	if !ok {
		return nil, apperrors.NewResourceNotFoundError(string(models.KindLocation), locationID)
	}

	usage := &dto.LocationUsage{LocationID: loc.ID, EventIDs: []string{}, UserIDs: []string{}, SocietyIDs: []string{}}
	for _, e := range s.store.Events() {
		if relations.EventAtLocation(e, loc) {
			usage.EventIDs = append(usage.EventIDs, e.ID)
		}
	}
	for _, u := range s.store.Users() {
		if u.CurrentLocationID != nil && *u.CurrentLocationID == loc.ID {
			usage.UserIDs = append(usage.UserIDs, u.ID)
		}
	}
	for _, soc := range s.store.Societies() {
		if relations.SocietyMeetsAt(soc, loc) {
			usage.SocietyIDs = append(usage.SocietyIDs, soc.ID)
		}
	}
	return usage, nil
}

// Statistics counts entities and relationships. Friendships are counted once per pair.
func (s *editorServiceImpl) Statistics() *dto.DatasetStats {
	stats := &dto.DatasetStats{Counts: map[string]int{}}
	for kind, n := range s.store.Counts() {
		stats.Counts[kind.Collection()] = n
	}

	friendLinks := 0
	for _, u := range s.store.Users() {
		friendLinks += len(u.FriendIDs)
		if u.IsOnline != nil && *u.IsOnline {
			stats.OnlineUsers++
		}
	}
	stats.Friendships = friendLinks / 2

	for _, e := range s.store.Events() {
		stats.EventParticipations += len(e.ParticipantIDs())
	}
	for _, soc := range s.store.Societies() {
		if soc.IsJoined {
			stats.SocietyMemberships++
		}
	}
	return stats
}
