package service

import (
	"errors"
	"fmt"
	"testing"

	"spendio/internal/repository"

	"github.com/stretchr/testify/assert"
)

func TestStoreError(t *testing.T) {
	assert.Same(t, ErrNotFound, storeError("get goal", repository.ErrNotFound))
	assert.Same(t, ErrNotFound, storeError("get goal", fmt.Errorf("scan: %w", repository.ErrNotFound)))

	cause := errors.New("connection reset")
	err := storeError("create user", cause)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrNotFound)
	assert.EqualError(t, err, "create user: connection reset")
}
