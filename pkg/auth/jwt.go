package auth

import (
	"crypto/rand"
	"encoding/hex"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken covers every reason a token is refused: bad signature,
// expiry, wrong type or missing subject claims.
var ErrInvalidToken = errors.New("invalid token")

type TokenType string

const (
	TokenTypeAccess  TokenType = "access"
	TokenTypeRefresh TokenType = "refresh"
)

// Claims is the payload of every token. The registered subject carries the
// user's email; UserID carries the user's id.
type Claims struct {
	UserID string    `json:"user_id"`
	Type   TokenType `json:"type"`
	jwt.RegisteredClaims
}

func (c *Claims) Email() string {
	return c.Subject
}

type JWTManager struct {
	secretKey       []byte
	tokenDuration   time.Duration
	refreshDuration time.Duration
	now             func() time.Time
}

type Option func(*JWTManager)

// WithClock overrides the time source used for issuing and validating.
func WithClock(now func() time.Time) Option {
	return func(m *JWTManager) {
		m.now = now
	}
}

func NewJWTManager(secretKey string, tokenDuration, refreshDuration time.Duration, opts ...Option) *JWTManager {
	m := &JWTManager{
		secretKey:       []byte(secretKey),
		tokenDuration:   tokenDuration,
		refreshDuration: refreshDuration,
		now:             time.Now,
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// RandomSecret returns a 256-bit hex key for throwaway development signing.
func RandomSecret() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate secret: %w", err)
	}
	return hex.EncodeToString(b), nil
}

func (m *JWTManager) GetTokenDuration() time.Duration {
	return m.tokenDuration
}

// GenerateToken issues an access token with the configured lifetime.
func (m *JWTManager) GenerateToken(userID, email string) (string, error) {
	return m.Issue(userID, email, m.tokenDuration)
}

// Issue signs an access token for the subject valid for ttl.
func (m *JWTManager) Issue(userID, email string, ttl time.Duration) (string, error) {
	return m.sign(userID, email, TokenTypeAccess, ttl)
}

func (m *JWTManager) GenerateRefreshToken(userID, email string) (string, error) {
	return m.sign(userID, email, TokenTypeRefresh, m.refreshDuration)
}

func (m *JWTManager) ValidateToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, TokenTypeAccess)
}

func (m *JWTManager) ValidateRefreshToken(tokenString string) (*Claims, error) {
	return m.validate(tokenString, TokenTypeRefresh)
}

func (m *JWTManager) sign(userID, email string, tokenType TokenType, ttl time.Duration) (string, error) {
	now := m.now()
	claims := &Claims{
		UserID: userID,
		Type:   tokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        uuid.NewString(),
			Subject:   email,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(m.secretKey)
	if err != nil {
		return "", fmt.Errorf("sign token: %w", err)
	}
	return signed, nil
}

func (m *JWTManager) validate(tokenString string, want TokenType) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secretKey, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(m.now),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.Type != want || claims.Subject == "" || claims.UserID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}
