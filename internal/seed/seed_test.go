package seed

import (
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/yigit/uniconnect-fixtures/internal/app/models"
	"github.com/yigit/uniconnect-fixtures/internal/app/repositories"
	"github.com/yigit/uniconnect-fixtures/internal/app/services"
	"github.com/yigit/uniconnect-fixtures/internal/pkg/validation"
)

func TestCreateDemoDataIsConsistent(t *testing.T) {
	store := repositories.NewEntityStore(zerolog.Nop())
	editor := services.NewEditorService(store, zerolog.Nop())

	require.NoError(t, CreateDemoData(store, editor, zerolog.Nop()))

	counts := store.Counts()
	assert.Equal(t, 4, counts[models.KindUser])
	assert.Equal(t, 4, counts[models.KindPrivacy])
	assert.Equal(t, 4, counts[models.KindEvent])
	assert.Equal(t, 2, counts[models.KindSociety])
	assert.Equal(t, 3, counts[models.KindLocation])
	assert.Equal(t, 1, counts[models.KindFriendRequest])

	assert.Empty(t, services.NewIntegrityService(store, zerolog.Nop()).CheckIntegrity())

	report := services.NewValidationService(store, validation.DefaultCampusBounds, zerolog.Nop()).ValidateAll()
	assert.True(t, report.Valid, report.Errors)
	assert.Empty(t, report.Warnings)
}

func TestCreateDemoDataSkipsPopulatedStore(t *testing.T) {
	store := repositories.NewEntityStore(zerolog.Nop())
	editor := services.NewEditorService(store, zerolog.Nop())
	_, err := store.AddUser(&models.User{Name: "Existing"})
	require.NoError(t, err)

	require.NoError(t, CreateDemoData(store, editor, zerolog.Nop()))

	assert.Len(t, store.Users(), 1)
	assert.Empty(t, store.Events())
}
