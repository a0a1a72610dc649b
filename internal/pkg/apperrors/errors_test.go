package apperrors

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestConstructorsWrapSentinels(t *testing.T) {
	cause := errors.New("unexpected end of JSON input")

	tests := []struct {
		name     string
		err      error
		sentinel error
		code     string
		message  string
	}{
		{
			name:     "not found",
			err:      NewResourceNotFoundError("user", "user_042"),
			sentinel: ErrResourceNotFound,
			code:     CodeNotFound,
			message:  `user "user_042" not found`,
		},
		{
			name:     "unknown kind",
			err:      NewUnknownKindError("course"),
			sentinel: ErrUnknownKind,
			code:     CodeUnknown,
			message:  `unknown entity kind "course"`,
		},
		{
			name:     "ingestion",
			err:      NewIngestionError("events_v2", cause),
			sentinel: ErrIngestion,
			code:     CodeIngestion,
			message:  `failed to ingest "events_v2": unexpected end of JSON input`,
		},
		{
			name:     "validation",
			err:      NewValidationFailedError(2, 1),
			sentinel: ErrValidationFailed,
			code:     CodeValidation,
			message:  "validation found 2 error(s) and 1 warning(s)",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, tt.sentinel)
			assert.Equal(t, tt.code, CodeOf(tt.err))
			assert.EqualError(t, tt.err, tt.message)
		})
	}
}

func TestIngestionErrorKeepsCause(t *testing.T) {
	cause := errors.New("boom")
	err := NewIngestionError("users", cause)

	assert.ErrorIs(t, err, cause)
	assert.True(t, Is(err, ErrResourceNotFound, ErrIngestion))
	assert.False(t, Is(err, ErrResourceNotFound))
}

func TestCustomErrorFallbacks(t *testing.T) {
	assert.Equal(t, "unknown error", (&CustomError{}).Error())
	assert.Equal(t, "resource not found", NewCustomError(ErrResourceNotFound, "").Error())
	assert.Equal(t, "", CodeOf(errors.New("plain")))

	err := NewCustomError(ErrInvalidEntity, "bad").WithCode("X").WithDetails(map[string]interface{}{"k": 1})
	assert.Equal(t, "X", err.Code)
	assert.Equal(t, 1, err.Details["k"])
}
