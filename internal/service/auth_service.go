package service

import (
	"context"
	"errors"
	"strings"
	"time"
	"unicode"

	"spendio/internal/dto"
	"spendio/internal/models"
	"spendio/internal/repository"
	"spendio/pkg/auth"

	"github.com/badoux/checkmail"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

const minPasswordLength = 8

type AuthService struct {
	users      UserStore
	revoked    RevocationStore
	jwtManager *auth.JWTManager
	hasher     *auth.PasswordHasher
	logger     *zap.Logger
	now        func() time.Time
}

// NewAuthService wires the credential store and token machinery. A nil
// revoked store disables logout revocation; tokens then live until expiry.
func NewAuthService(
	users UserStore,
	revoked RevocationStore,
	jwtManager *auth.JWTManager,
	hasher *auth.PasswordHasher,
	logger *zap.Logger,
) *AuthService {
	return &AuthService{
		users:      users,
		revoked:    revoked,
		jwtManager: jwtManager,
		hasher:     hasher,
		logger:     logger,
		now:        time.Now,
	}
}

func (s *AuthService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.UserResponse, error) {
	email := strings.ToLower(strings.TrimSpace(req.Email))
	name := cleanText(req.Name)

	fields := map[string]string{}
	if err := checkmail.ValidateFormat(email); err != nil {
		fields["email"] = "must be a valid email address"
	}
	if msg := passwordPolicy(req.Password); msg != "" {
		fields["password"] = msg
	}
	if len([]rune(name)) < 2 {
		fields["name"] = "must be at least 2 characters"
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}

	if _, err := s.users.GetByEmail(ctx, email); err == nil {
		return nil, &ConflictError{Message: "a user with this email already exists"}
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, storeError("lookup user", err)
	}

	hash, err := s.hasher.Hash(ctx, req.Password)
	if err != nil {
		return nil, err
	}

	now := s.now().UTC()
	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: hash,
		Name:         name,
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicate) {
			return nil, &ConflictError{Message: "a user with this email already exists"}
		}
		return nil, storeError("create user", err)
	}

	s.logger.Info("User registered", zap.String("user_id", user.ID.String()))
	resp := dto.NewUserResponse(user)
	return &resp, nil
}

func (s *AuthService) Login(ctx context.Context, req *dto.LoginRequest) (*dto.AuthResponse, error) {
	user, err := s.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Login rejected", zap.String("reason", "unknown email"))
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("lookup user", err)
	}

	if !user.IsActive {
		s.logger.Warn("Login rejected", zap.String("reason", "inactive user"), zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !s.hasher.Verify(ctx, req.Password, user.PasswordHash) {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		s.logger.Warn("Login rejected", zap.String("reason", "password mismatch"), zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	return s.issue(user)
}

// Refresh exchanges a refresh token for a new token pair. The presented
// refresh token is revoked when revocation is enabled.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string) (*dto.AuthResponse, error) {
	claims, err := s.jwtManager.ValidateRefreshToken(refreshToken)
	if err != nil {
		s.logger.Warn("Refresh rejected", zap.Error(err))
		return nil, ErrInvalidCredentials
	}

	user, err := s.resolve(ctx, claims)
	if err != nil {
		return nil, err
	}

	if err := s.revoke(ctx, claims); err != nil {
		return nil, err
	}

	return s.issue(user)
}

// Authenticate resolves a bearer token into the user it was issued to. Every
// rejection after the missing-token check is ErrInvalidCredentials.
func (s *AuthService) Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error) {
	if token == "" {
		return nil, nil, ErrMissingToken
	}

	claims, err := s.jwtManager.ValidateToken(token)
	if err != nil {
		s.logger.Warn("Token rejected", zap.Error(err))
		return nil, nil, ErrInvalidCredentials
	}

	user, err := s.resolve(ctx, claims)
	if err != nil {
		return nil, nil, err
	}
	return user, claims, nil
}

// Logout revokes the access token when revocation is enabled and is a no-op
// otherwise.
func (s *AuthService) Logout(ctx context.Context, claims *auth.Claims) error {
	return s.revoke(ctx, claims)
}

func (s *AuthService) ChangePassword(ctx context.Context, user *models.User, req *dto.ChangePasswordRequest) error {
	if !s.hasher.Verify(ctx, req.OldPassword, user.PasswordHash) {
		if err := ctx.Err(); err != nil {
			return err
		}
		return &BusinessError{Message: "current password is incorrect"}
	}
	if msg := passwordPolicy(req.NewPassword); msg != "" {
		return &BusinessError{Message: "new password " + msg}
	}

	hash, err := s.hasher.Hash(ctx, req.NewPassword)
	if err != nil {
		return err
	}

	if err := s.users.UpdatePassword(ctx, user.ID, hash, s.now().UTC()); err != nil {
		return storeError("update password", err)
	}

	s.logger.Info("Password changed", zap.String("user_id", user.ID.String()))
	return nil
}

// resolve runs the checks shared by the access guard and refresh: the
// subject must exist, match the token's id, be active and the token must
// not be revoked.
func (s *AuthService) resolve(ctx context.Context, claims *auth.Claims) (*models.User, error) {
	user, err := s.users.GetByEmail(ctx, claims.Email())
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			s.logger.Warn("Token rejected", zap.String("reason", "unknown subject"))
			return nil, ErrInvalidCredentials
		}
		return nil, storeError("lookup user", err)
	}

	if user.ID.String() != claims.UserID {
		s.logger.Warn("Token rejected", zap.String("reason", "subject id mismatch"), zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if !user.IsActive {
		s.logger.Warn("Token rejected", zap.String("reason", "inactive user"), zap.String("user_id", user.ID.String()))
		return nil, ErrInvalidCredentials
	}

	if s.revoked != nil {
		jti, err := uuid.Parse(claims.ID)
		if err != nil {
			s.logger.Warn("Token rejected", zap.String("reason", "malformed jti"))
			return nil, ErrInvalidCredentials
		}
		revoked, err := s.revoked.IsRevoked(ctx, jti)
		if err != nil {
			return nil, storeError("check revocation", err)
		}
		if revoked {
			s.logger.Warn("Token rejected", zap.String("reason", "revoked"), zap.String("user_id", user.ID.String()))
			return nil, ErrInvalidCredentials
		}
	}

	return user, nil
}

func (s *AuthService) revoke(ctx context.Context, claims *auth.Claims) error {
	if s.revoked == nil || claims == nil {
		return nil
	}
	jti, err := uuid.Parse(claims.ID)
	if err != nil {
		return ErrInvalidCredentials
	}
	if err := s.revoked.Revoke(ctx, jti, claims.ExpiresAt.Time); err != nil {
		return storeError("revoke token", err)
	}
	return nil
}

func (s *AuthService) issue(user *models.User) (*dto.AuthResponse, error) {
	accessToken, err := s.jwtManager.GenerateToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(user.ID.String(), user.Email)
	if err != nil {
		return nil, err
	}

	return &dto.AuthResponse{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
		TokenType:    "Bearer",
		ExpiresIn:    int64(s.jwtManager.GetTokenDuration().Seconds()),
		User:         dto.NewUserResponse(user),
	}, nil
}

// passwordPolicy returns an empty string for acceptable passwords.
func passwordPolicy(password string) string {
	if len(password) < minPasswordLength {
		return "must be at least 8 characters"
	}
	var letter, digit bool
	for _, r := range password {
		switch {
		case unicode.IsLetter(r):
			letter = true
		case unicode.IsDigit(r):
			digit = true
		}
	}
	if !letter {
		return "must contain a letter"
	}
	if !digit {
		return "must contain a digit"
	}
	return ""
}
