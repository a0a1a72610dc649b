package services

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

func ptr[T any](v T) *T { return &v }

type fixture struct {
	store     *repositories.EntityStore
	integrity IntegrityService
	validator ValidationService
	fixtures  FixtureService
	editor    EditorService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := repositories.NewEntityStore(zerolog.Nop())
	return &fixture{
		store:     store,
		integrity: NewIntegrityService(store, zerolog.Nop()),
		validator: NewValidationService(store, validation.DefaultCampusBounds, zerolog.Nop()),
		fixtures: NewFixtureService(store, ExportOptions{
			EventsComment: "Enhanced events with Phase 2/3 properties. Uses relative dates and comprehensive categorization.",
		}, zerolog.Nop()),
		editor: NewEditorService(store, zerolog.Nop()),
	}
}

// validUser returns a user that passes every per-kind rule
func validUser(name, email string) *models.User {
	return &models.User{
		Name:     name,
		Email:    email,
		Course:   "Bachelor of IT",
		Year:     "2nd Year",
		Status:   "online",
		IsOnline: ptr(true),
	}
}

// addUser stores a valid user with companion privacy settings
func (f *fixture) addUser(t *testing.T, name, email string) *models.User {
	t.Helper()
	u, _, err := f.editor.CreateUser(validUser(name, email))
	require.NoError(t, err)
	return u
}

func (f *fixture) addEvent(t *testing.T, e *models.Event) *models.Event {
	t.Helper()
	if e.Category == "" {
		e.Category = "academic"
		e.SubType = "lecture"
	}
	if e.Location == "" {
		e.Location = "CB11 00.401"
	}
	out, err := f.store.AddEvent(e)
	require.NoError(t, err)
	return out
}

func validLocation(building, room string) *models.Location {
	return &models.Location{
		Name:      building + " " + room,
		Building:  building,
		Room:      ptr(room),
		Latitude:  ptr(-33.8832),
		Longitude: ptr(151.2005),
		Type:      "classroom",
	}
}
