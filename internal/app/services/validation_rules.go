package services

import (
	"fmt"
	"slices"
	"strconv"
	"strings"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/relations"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

// findings collects the messages produced for one entity or one pass
type findings struct {
	errors   []string
	warnings []string
}

func (f *findings) errorf(format string, args ...any) {
	f.errors = append(f.errors, fmt.Sprintf(format, args...))
}

func (f *findings) warnf(format string, args ...any) {
	f.warnings = append(f.warnings, fmt.Sprintf(format, args...))
}

// requiredField is present unless its string is blank or its pointer is nil
type requiredField struct {
	name    string
	present func(models.Entity) bool
}

// enumField is checked only when non-empty; blank values are left to requiredField
type enumField struct {
	label   string
	value   func(models.Entity) string
	allowed []string
}

// check is a type-specific rule; name is the entity's report label
type check func(run *validationRun, e models.Entity, name string, f *findings)

type kindRules struct {
	kind     models.Kind
	required []requiredField
	enums    []enumField
	checks   []check
}

func (r kindRules) apply(run *validationRun, e models.Entity) findings {
	var f findings
	name := e.Label()

	mismatched := models.MismatchedFields(e)
	for _, field := range r.required {
		if !field.present(e) && !slices.Contains(mismatched, field.name) {
			f.errorf(`%s "%s": Missing required field "%s"`, r.kind, name, field.name)
		}
	}
	for _, field := range mismatched {
		f.errorf(`%s "%s": Invalid %s value "%s"`, r.kind.Title(), name, field, e.Extras().Text(field))
	}
	for _, enum := range r.enums {
		if v := enum.value(e); v != "" && !validation.OneOf(v, enum.allowed) {
			f.errorf(`%s "%s": Invalid %s "%s"`, r.kind.Title(), name, enum.label, v)
		}
	}
	for _, c := range r.checks {
		c(run, e, name, &f)
	}
	if run.ids[r.kind][e.GetID()] > 1 {
		f.errorf(`%s "%s": Duplicate id "%s"`, r.kind.Title(), name, e.GetID())
	}
	return f
}

func str[T models.Entity](get func(T) string) func(models.Entity) bool {
	return func(e models.Entity) bool { return !validation.IsBlank(get(e.(T))) }
}

func set[T models.Entity, V any](get func(T) *V) func(models.Entity) bool {
	return func(e models.Entity) bool { return get(e.(T)) != nil }
}

func enum[T models.Entity](label string, allowed []string, get func(T) string) enumField {
	return enumField{label: label, allowed: allowed, value: func(e models.Entity) string { return get(e.(T)) }}
}

// typed adapts a rule written for one concrete entity type
func typed[T models.Entity](fn func(run *validationRun, e T, name string, f *findings)) check {
	return func(run *validationRun, e models.Entity, name string, f *findings) {
		fn(run, e.(T), name, f)
	}
}

var ruleTable = []kindRules{
	{
		kind: models.KindUser,
		required: []requiredField{
			{"name", str(func(u *models.User) string { return u.Name })},
			{"email", str(func(u *models.User) string { return u.Email })},
			{"course", str(func(u *models.User) string { return u.Course })},
			{"year", str(func(u *models.User) string { return u.Year })},
		},
		enums: []enumField{
			enum("year value", models.YearLevels, func(u *models.User) string { return u.Year }),
			enum("status value", models.StatusTypes, func(u *models.User) string { return u.Status }),
		},
		checks: []check{
			typed(checkUserEmail),
			typed(func(_ *validationRun, u *models.User, name string, f *findings) {
				checkCoordinates(models.KindUser, name, u.Latitude, u.Longitude, f)
			}),
			typed(checkUserPresence),
		},
	},
	{
		kind: models.KindEvent,
		required: []requiredField{
			{"title", str(func(e *models.Event) string { return e.Title })},
			{"category", str(func(e *models.Event) string { return e.Category })},
			{"subType", str(func(e *models.Event) string { return e.SubType })},
			{"location", str(func(e *models.Event) string { return e.Location })},
			{"creatorId", str(func(e *models.Event) string { return e.CreatorID })},
		},
		enums: []enumField{
			enum("category", models.EventCategories, func(e *models.Event) string { return e.Category }),
			enum("privacy level", models.PrivacyLevels, func(e *models.Event) string { return e.PrivacyLevel }),
		},
		checks: []check{
			typed(checkEventSubType),
			typed(checkEventTiming),
			typed(checkEventPeople),
		},
	},
	{
		kind: models.KindSociety,
		required: []requiredField{
			{"name", str(func(s *models.Society) string { return s.Name })},
			{"category", str(func(s *models.Society) string { return s.Category })},
		},
		enums: []enumField{
			enum("category", models.SocietyCategories, func(s *models.Society) string { return s.Category }),
		},
		checks: []check{
			typed(checkSocietyMembers),
		},
	},
	{
		kind: models.KindLocation,
		required: []requiredField{
			{"name", str(func(l *models.Location) string { return l.Name })},
			{"building", str(func(l *models.Location) string { return l.Building })},
			{"latitude", set(func(l *models.Location) *float64 { return l.Latitude })},
			{"longitude", set(func(l *models.Location) *float64 { return l.Longitude })},
			{"type", str(func(l *models.Location) string { return l.Type })},
		},
		enums: []enumField{
			enum("type", models.LocationTypes, func(l *models.Location) string { return l.Type }),
		},
		checks: []check{
			typed(func(_ *validationRun, l *models.Location, name string, f *findings) {
				checkCoordinates(models.KindLocation, name, l.Latitude, l.Longitude, f)
			}),
			typed(checkLocationPlacement),
		},
	},
	{
		kind: models.KindPrivacy,
		required: []requiredField{
			{"userId", str(func(p *models.PrivacySetting) string { return p.UserID })},
		},
		enums: []enumField{
			enum("shareEvents value", models.ShareValues, func(p *models.PrivacySetting) string { return p.ShareEvents }),
			enum("shareCalendar value", models.ShareValues, func(p *models.PrivacySetting) string { return p.ShareCalendar }),
			enum("allowEventInvites value", models.InviteAllowValues, func(p *models.PrivacySetting) string { return p.AllowEventInvites }),
		},
		checks: []check{
			typed(func(run *validationRun, p *models.PrivacySetting, name string, f *findings) {
				if p.UserID != "" && !run.store.Exists(models.KindUser, p.UserID) {
					f.errorf(`Privacy settings "%s": User "%s" not found`, name, p.UserID)
				}
			}),
		},
	},
	{
		kind: models.KindFriendRequest,
		required: []requiredField{
			{"senderId", str(func(r *models.FriendRequest) string { return r.SenderID })},
			{"receiverId", str(func(r *models.FriendRequest) string { return r.ReceiverID })},
		},
		checks: []check{
			typed(checkFriendRequest),
		},
	},
}

func checkUserEmail(run *validationRun, u *models.User, name string, f *findings) {
	if u.Email == "" {
		return
	}
	if !validation.IsEmail(u.Email) {
		f.errorf(`User "%s": Invalid email format`, name)
	}
	if run.emails[u.Email] > 1 {
		f.errorf(`User "%s": Duplicate email "%s"`, name, u.Email)
	}
}

func checkUserPresence(_ *validationRun, u *models.User, name string, f *findings) {
	if u.Status == "" || u.IsOnline == nil {
		return
	}
	if *u.IsOnline != (u.Status == "online") {
		f.warnf(`User "%s": isOnline (%t) doesn't match status (%s)`, name, *u.IsOnline, u.Status)
	}
}

func checkCoordinates(kind models.Kind, name string, lat, lng *float64, f *findings) {
	if lat != nil && !validation.ValidLatitude(*lat) {
		f.errorf(`%s "%s": Latitude out of valid range`, kind.Title(), name)
	}
	if lng != nil && !validation.ValidLongitude(*lng) {
		f.errorf(`%s "%s": Longitude out of valid range`, kind.Title(), name)
	}
}

func checkEventSubType(_ *validationRun, e *models.Event, name string, f *findings) {
	if e.Category == "" || e.SubType == "" || models.SubTypesForCategory(e.Category) == nil {
		return
	}
	if !models.IsValidSubType(e.Category, e.SubType) {
		f.errorf(`Event "%s": Invalid subType "%s" for category "%s"`, name, e.SubType, e.Category)
	}
}

func checkEventTiming(_ *validationRun, e *models.Event, name string, f *findings) {
	if e.Duration != nil && *e.Duration <= 0 {
		f.errorf(`Event "%s": Duration must be positive`, name)
	}
	if h := e.HoursFromStart; h != nil && (*h < 0 || *h >= 24) {
		f.warnf(`Event "%s": Unusual start time (%s hours)`, name, strconv.FormatFloat(*h, 'f', -1, 64))
	}
}

func checkEventPeople(run *validationRun, e *models.Event, name string, f *findings) {
	if e.CreatorID != "" && !run.store.Exists(models.KindUser, e.CreatorID) {
		f.errorf(`Event "%s": Creator "%s" not found`, name, e.CreatorID)
	}
	for _, id := range e.OrganizerIDs {
		if !run.store.Exists(models.KindUser, id) {
			f.errorf(`Event "%s": Organizer "%s" not found`, name, id)
		}
	}
	for _, id := range e.AttendeeIDs {
		if !run.store.Exists(models.KindUser, id) {
			f.errorf(`Event "%s": Attendee "%s" not found`, name, id)
		}
	}
	if e.CreatorID != "" && validation.OneOf(e.CreatorID, e.OrganizerIDs) {
		f.warnf(`Event "%s": Creator is also listed as organizer`, name)
	}
}

func checkSocietyMembers(run *validationRun, s *models.Society, name string, f *findings) {
	if s.MemberCount != nil && *s.MemberCount < 0 {
		f.errorf(`Society "%s": Member count cannot be negative`, name)
	}
	if s.Name != "" && run.societyNames[s.Name] > 1 {
		f.errorf(`Society "%s": Duplicate name "%s"`, name, s.Name)
	}
	if s.IsJoined && s.MemberCount != nil && *s.MemberCount == 0 {
		f.warnf(`Society "%s": Marked as joined but has 0 members`, name)
	}
	if s.MemberCount != nil && len(s.MemberIDs) > 0 && *s.MemberCount != len(s.MemberIDs) {
		f.warnf(`Society "%s": Member count (%d) doesn't match memberIds (%d)`, name, *s.MemberCount, len(s.MemberIDs))
	}
}

func checkLocationPlacement(run *validationRun, l *models.Location, name string, f *findings) {
	b := run.campus
	outside := (l.Latitude != nil && (*l.Latitude < b.MinLat || *l.Latitude > b.MaxLat)) ||
		(l.Longitude != nil && (*l.Longitude < b.MinLng || *l.Longitude > b.MaxLng))
	if outside {
		f.warnf(`Location "%s": Coordinates appear to be outside UTS campus area`, name)
	}
	if key := l.Key(); run.locationKeys[key] > 1 {
		f.errorf(`Location "%s": Duplicate location "%s"`, name, key)
	}
}

func checkFriendRequest(run *validationRun, r *models.FriendRequest, name string, f *findings) {
	if r.SenderID != "" && !run.store.Exists(models.KindUser, r.SenderID) {
		f.errorf(`Friend request "%s": Sender "%s" not found`, name, r.SenderID)
	}
	if r.ReceiverID != "" && !run.store.Exists(models.KindUser, r.ReceiverID) {
		f.errorf(`Friend request "%s": Receiver "%s" not found`, name, r.ReceiverID)
	}
	if r.SenderID != "" && r.SenderID == r.ReceiverID {
		f.errorf(`Friend request "%s": Sender and receiver are the same user`, name)
	}
}

// referenceMessage formats an unresolved reference found by the relationship pass
func referenceMessage(rel relations.Relation, name, id string) string {
	switch {
	case rel.From == models.KindEvent && rel.To == models.KindUser:
		return fmt.Sprintf(`Event "%s": User "%s" in %s not found`, name, id, rel.Field)
	case rel.From == models.KindUser && rel.Field == "pendingFriendRequests":
		return fmt.Sprintf(`User "%s": Pending friend request from non-existent user "%s"`, name, id)
	case rel.From == models.KindUser && rel.Field == "sentFriendRequests":
		return fmt.Sprintf(`User "%s": Sent friend request to non-existent user "%s"`, name, id)
	default:
		noun := strings.ToUpper(rel.Noun[:1]) + rel.Noun[1:]
		return fmt.Sprintf(`%s "%s": %s "%s" not found`, rel.From.Title(), name, noun, id)
	}
}
