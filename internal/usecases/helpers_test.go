package usecases_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	domainerrors "keephy.backend/internal/domain/errors"
)

func assertAppError(t *testing.T, err error, status int, message string) {
	t.Helper()
	appErr, ok := domainerrors.As(err)
	require.True(t, ok, "expected AppError, got %v", err)
	assert.Equal(t, status, appErr.Status)
	assert.Equal(t, message, appErr.Message)
}

func strPtr(s string) *string { return &s }
