package models

import "time"

// Event is a calendar entry. Its start is stored relative to "now" so demo data stays fresh.
type Event struct {
	ID             string   `json:"id"`
	Title          string   `json:"title"`
	Description    string   `json:"description,omitempty"`
	Category       string   `json:"category"`
	SubType        string   `json:"subType"`
	Type           string   `json:"type,omitempty"` // legacy copy of SubType
	Location       string   `json:"location"`       // location id or free text
	LocationID     string   `json:"locationId,omitempty"`
	SocietyID      string   `json:"societyId,omitempty"`
	DaysFromNow    *int     `json:"daysFromNow,omitempty"`
	HoursFromStart *float64 `json:"hoursFromStart,omitempty"`
	Duration       *float64 `json:"duration,omitempty"` // hours
	CreatorID      string   `json:"creatorId"`
	OrganizerIDs   []string `json:"organizerIds,omitempty"`
	AttendeeIDs    []string `json:"attendeeIds,omitempty"`
	InvitedIDs     []string `json:"invitedIds,omitempty"`
	InterestedIDs  []string `json:"interestedIds,omitempty"`
	PrivacyLevel   string   `json:"privacyLevel,omitempty"`

	IsRecurring         bool   `json:"isRecurring,omitempty"`
	IsRecurringInstance bool   `json:"isRecurringInstance,omitempty"`
	ParentEventID       string `json:"parentEventId,omitempty"`
	ScheduledDate       string `json:"scheduledDate,omitempty"`
	EndDate             string `json:"endDate,omitempty"`
	NextOccurrence      string `json:"nextOccurrence,omitempty"`

	Extra Attributes `json:"-"`
}

type eventAlias Event

func (e *Event) GetID() string      { return e.ID }
func (e *Event) SetID(id string)    { e.ID = id }
func (e *Event) Kind() Kind         { return KindEvent }
func (e *Event) Extras() Attributes { return e.Extra }

// Label returns the event title, falling back to the id
func (e *Event) Label() string {
	if e.Title != "" {
		return e.Title
	}
	return e.ID
}

// Start returns the relative start when both offsets are set
func (e *Event) Start() (RelativeStart, bool) {
	if e.DaysFromNow == nil || e.HoursFromStart == nil {
		return RelativeStart{}, false
	}
	return RelativeStart{DaysFromNow: *e.DaysFromNow, HoursFromStart: *e.HoursFromStart}, true
}

// SetStart stores a relative start on the event
func (e *Event) SetStart(rs RelativeStart) {
	days, hours := rs.DaysFromNow, rs.HoursFromStart
	e.DaysFromNow = &days
	e.HoursFromStart = &hours
}

// StartAt resolves the event start against now
func (e *Event) StartAt(now time.Time) (time.Time, bool) {
	rs, ok := e.Start()
	if !ok {
		return time.Time{}, false
	}
	return rs.At(now), true
}

// EndAt resolves the event end against now; it needs a start and a duration
func (e *Event) EndAt(now time.Time) (time.Time, bool) {
	start, ok := e.StartAt(now)
	if !ok || e.Duration == nil {
		return time.Time{}, false
	}
	return start.Add(hoursToDuration(*e.Duration)), true
}

// ParticipantIDs returns organizers, attendees, invited and interested users in that order
func (e *Event) ParticipantIDs() []string {
	out := make([]string, 0, len(e.OrganizerIDs)+len(e.AttendeeIDs)+len(e.InvitedIDs)+len(e.InterestedIDs))
	out = append(out, e.OrganizerIDs...)
	out = append(out, e.AttendeeIDs...)
	out = append(out, e.InvitedIDs...)
	return append(out, e.InterestedIDs...)
}

// Clone returns a deep copy of the event
func (e *Event) Clone() *Event {
	cp := *e
	cp.DaysFromNow = clonePtr(e.DaysFromNow)
	cp.HoursFromStart = clonePtr(e.HoursFromStart)
	cp.Duration = clonePtr(e.Duration)
	cp.OrganizerIDs = cloneIDs(e.OrganizerIDs)
	cp.AttendeeIDs = cloneIDs(e.AttendeeIDs)
	cp.InvitedIDs = cloneIDs(e.InvitedIDs)
	cp.InterestedIDs = cloneIDs(e.InterestedIDs)
	cp.Extra = e.Extra.Clone()
	return &cp
}

func (e *Event) UnmarshalJSON(data []byte) error {
	var a eventAlias
	extra, err := decodeWithAttributes(data, &a)
	if err != nil {
		return err
	}
	*e = Event(a)
	e.Extra = extra
	return nil
}

func (e Event) MarshalJSON() ([]byte, error) {
	return encodeWithAttributes(eventAlias(e), e.Extra)
}
