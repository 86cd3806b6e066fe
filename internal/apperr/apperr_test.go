package apperr

import (
	"errors"
	"fmt"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestHTTPStatus(t *testing.T) {
	tests := []struct {
		kind Kind
		want int
	}{
		{Unauthorized, http.StatusUnauthorized},
		{Forbidden, http.StatusForbidden},
		{NotFound, http.StatusNotFound},
		{InvalidState, http.StatusConflict},
		{Conflict, http.StatusConflict},
		{InvalidInput, http.StatusBadRequest},
		{Internal, http.StatusInternalServerError},
	}

	for _, tt := range tests {
		assert.Equal(t, tt.want, tt.kind.HTTPStatus(), tt.kind.String())
	}
}

func TestKindOf(t *testing.T) {
	err := New(Conflict, "video was modified concurrently")
	assert.Equal(t, Conflict, KindOf(err))
	assert.True(t, Is(err, Conflict))

	// Survives wrapping
	wrapped := fmt.Errorf("claim failed, %w", err)
	assert.Equal(t, Conflict, KindOf(wrapped))

	// Plain errors fall back to Internal
	assert.Equal(t, Internal, KindOf(errors.New("boom")))
}

func TestWrapKeepsCause(t *testing.T) {
	cause := errors.New("disk on fire")
	err := Wrap(Internal, "failed to save video", cause)

	assert.ErrorIs(t, err, cause)
	assert.Contains(t, err.Error(), "failed to save video")
}
