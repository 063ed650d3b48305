package service

import (
	"context"
	"testing"
	"time"

	"spendio/internal/dto"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_StoresHashNotPlaintext(t *testing.T) {
	f := newFixture(t, false)
	ctx := context.Background()

	user, err := f.auth.Register(ctx, &dto.RegisterRequest{
		Email:    "  Anna@Example.COM ",
		Password: "password123",
		Name:     "  Anna ",
	})
	require.NoError(t, err)
	assert.Equal(t, "anna@example.com", user.Email)
	assert.Equal(t, "Anna", user.Name)
	assert.True(t, user.IsActive)

	stored, err := f.users.GetByEmail(ctx, "anna@example.com")
	require.NoError(t, err)
	assert.NotEqual(t, "password123", stored.PasswordHash)
	assert.NotContains(t, stored.PasswordHash, "password123")
}

func TestRegister_Validation(t *testing.T) {
	f := newFixture(t, false)

	tests := []struct {
		name  string
		req   dto.RegisterRequest
		field string
	}{
		{"bad email", dto.RegisterRequest{Email: "not-an-email", Password: "password123", Name: "Anna"}, "email"},
		{"short password", dto.RegisterRequest{Email: "a@example.com", Password: "pass1", Name: "Anna"}, "password"},
		{"no digit", dto.RegisterRequest{Email: "a@example.com", Password: "passwordonly", Name: "Anna"}, "password"},
		{"no letter", dto.RegisterRequest{Email: "a@example.com", Password: "12345678", Name: "Anna"}, "password"},
		{"short name", dto.RegisterRequest{Email: "a@example.com", Password: "password123", Name: " A "}, "name"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.auth.Register(context.Background(), &tt.req)
			var verr *ValidationError
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr.Fields, tt.field)
		})
	}
}

func TestRegister_DuplicateEmailIsConflict(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "anna@example.com")

	_, err := f.auth.Register(context.Background(), &dto.RegisterRequest{
		Email: "ANNA@example.com", Password: "password123", Name: "Anna",
	})
	var conflict *ConflictError
	assert.ErrorAs(t, err, &conflict)
}

func TestLogin_UniformRejection(t *testing.T) {
	f := newFixture(t, false)
	id := f.register(t, "anna@example.com")
	f.register(t, "bob@example.com")
	f.users.SetActive(id, false)
	ctx := context.Background()

	_, err := f.auth.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "inactive")

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "bob@example.com", Password: "password124"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "wrong password")

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "nobody@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown email")
}

func TestLogin_IssuesTokens(t *testing.T) {
	f := newFixture(t, false)
	id := f.register(t, "anna@example.com")

	resp := f.login(t, "ANNA@example.com")
	assert.Equal(t, "Bearer", resp.TokenType)
	assert.Equal(t, int64(3600), resp.ExpiresIn)
	assert.Equal(t, id.String(), resp.User.ID)

	user, claims, err := f.auth.Authenticate(context.Background(), resp.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, id, user.ID)
	assert.Equal(t, "anna@example.com", claims.Email())
}

func TestAuthenticate_Rejections(t *testing.T) {
	f := newFixture(t, false)
	id := f.register(t, "anna@example.com")
	resp := f.login(t, "anna@example.com")
	ctx := context.Background()

	_, _, err := f.auth.Authenticate(ctx, "")
	assert.ErrorIs(t, err, ErrMissingToken)

	_, _, err = f.auth.Authenticate(ctx, "garbage")
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = f.auth.Authenticate(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "refresh token used as access token")

	mismatched, err := f.jwt.GenerateToken(uuid.NewString(), "anna@example.com")
	require.NoError(t, err)
	_, _, err = f.auth.Authenticate(ctx, mismatched)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "id mismatch")

	ghost, err := f.jwt.GenerateToken(id.String(), "ghost@example.com")
	require.NoError(t, err)
	_, _, err = f.auth.Authenticate(ctx, ghost)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "unknown subject")

	f.users.SetActive(id, false)
	_, _, err = f.auth.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "inactive")
}

func TestLogout_WithoutRevocationIsNoop(t *testing.T) {
	f := newFixture(t, false)
	f.register(t, "anna@example.com")
	resp := f.login(t, "anna@example.com")
	ctx := context.Background()

	_, claims, err := f.auth.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, claims))

	_, _, err = f.auth.Authenticate(ctx, resp.AccessToken)
	assert.NoError(t, err)
}

func TestLogout_WithRevocationRejectsToken(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "anna@example.com")
	resp := f.login(t, "anna@example.com")
	ctx := context.Background()

	_, claims, err := f.auth.Authenticate(ctx, resp.AccessToken)
	require.NoError(t, err)
	require.NoError(t, f.auth.Logout(ctx, claims))

	_, _, err = f.auth.Authenticate(ctx, resp.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestRefresh_RotatesAndRevokes(t *testing.T) {
	f := newFixture(t, true)
	f.register(t, "anna@example.com")
	resp := f.login(t, "anna@example.com")
	ctx := context.Background()

	rotated, err := f.auth.Refresh(ctx, resp.RefreshToken)
	require.NoError(t, err)
	assert.NotEqual(t, resp.RefreshToken, rotated.RefreshToken)

	_, _, err = f.auth.Authenticate(ctx, rotated.AccessToken)
	assert.NoError(t, err)

	_, err = f.auth.Refresh(ctx, resp.RefreshToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "refresh token is single use")

	_, err = f.auth.Refresh(ctx, rotated.AccessToken)
	assert.ErrorIs(t, err, ErrInvalidCredentials, "access token used as refresh token")
}

func TestChangePassword(t *testing.T) {
	f := newFixture(t, false)
	id := f.register(t, "anna@example.com")
	ctx := context.Background()
	user, err := f.users.GetByID(ctx, id)
	require.NoError(t, err)

	err = f.auth.ChangePassword(ctx, user, &dto.ChangePasswordRequest{OldPassword: "wrong-pass1", NewPassword: "newpassword1"})
	var business *BusinessError
	assert.ErrorAs(t, err, &business)

	err = f.auth.ChangePassword(ctx, user, &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "short"})
	assert.ErrorAs(t, err, &business)

	f.auth.now = func() time.Time { return time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC) }
	require.NoError(t, f.auth.ChangePassword(ctx, user, &dto.ChangePasswordRequest{OldPassword: "password123", NewPassword: "newpassword1"}))

	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "password123"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
	_, err = f.auth.Login(ctx, &dto.LoginRequest{Email: "anna@example.com", Password: "newpassword1"})
	assert.NoError(t, err)

	updated, err := f.users.GetByID(ctx, id)
	require.NoError(t, err)
	assert.Equal(t, time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC), updated.UpdatedAt)
}
