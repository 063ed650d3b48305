package auth

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func TestPasswordHasher_HashAndVerify(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 2)
	ctx := context.Background()

	digest, err := h.Hash(ctx, "password123")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", digest)
	assert.NotContains(t, digest, "password123")

	assert.True(t, h.Verify(ctx, "password123", digest))
	assert.False(t, h.Verify(ctx, "password124", digest))
	assert.False(t, h.Verify(ctx, "", digest))
}

func TestPasswordHasher_SaltsEachHash(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	ctx := context.Background()

	a, err := h.Hash(ctx, "same-password1")
	require.NoError(t, err)
	b, err := h.Hash(ctx, "same-password1")
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
}

func TestPasswordHasher_MalformedDigestIsMismatch(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	assert.False(t, h.Verify(context.Background(), "password123", "not-a-bcrypt-hash"))
	assert.False(t, h.Verify(context.Background(), "password123", ""))
}

func TestPasswordHasher_CancelledContext(t *testing.T) {
	h := NewPasswordHasher(bcrypt.MinCost, 1)
	digest, err := h.Hash(context.Background(), "password123")
	require.NoError(t, err)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	// Hold the only slot so Acquire has to observe the cancellation.
	require.NoError(t, h.sem.Acquire(context.Background(), 1))
	defer h.sem.Release(1)

	assert.False(t, h.Verify(ctx, "password123", digest))
	_, err = h.Hash(ctx, "password123")
	assert.ErrorIs(t, err, context.Canceled)
}

func TestNewPasswordHasher_ClampsCost(t *testing.T) {
	h := NewPasswordHasher(1, 0)
	assert.Equal(t, bcrypt.DefaultCost, h.cost)
}
