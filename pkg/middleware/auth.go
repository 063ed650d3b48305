package middleware

import (
	"context"
	"errors"
	"strings"

	"spendio/internal/models"
	"spendio/pkg/auth"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

const (
	userKey   = "user"
	claimsKey = "claims"
)

// UnauthorizedMessage is the only body a rejected caller ever sees.
const UnauthorizedMessage = "could not validate credentials"

// Authenticator resolves a raw bearer token into the user it belongs to.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*models.User, *auth.Claims, error)
}

// AuthMiddleware guards a route group. isAuthError tells credential
// rejections (401) apart from infrastructure failures (500).
func AuthMiddleware(authenticator Authenticator, isAuthError func(error) bool, logger *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, claims, err := authenticator.Authenticate(c.Context(), bearerToken(c.Get(fiber.HeaderAuthorization)))
		if err != nil {
			if isAuthError(err) {
				c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
				return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
					"error": UnauthorizedMessage,
				})
			}
			logger.Error("Authentication failed", zap.Error(err))
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "internal server error",
			})
		}

		c.Locals(userKey, user)
		c.Locals(claimsKey, claims)
		return c.Next()
	}
}

// CurrentUser returns the user stored by AuthMiddleware.
func CurrentUser(c *fiber.Ctx) (*models.User, error) {
	user, ok := c.Locals(userKey).(*models.User)
	if !ok || user == nil {
		return nil, errors.New("no authenticated user in request context")
	}
	return user, nil
}

func CurrentClaims(c *fiber.Ctx) *auth.Claims {
	claims, _ := c.Locals(claimsKey).(*auth.Claims)
	return claims
}

func bearerToken(header string) string {
	scheme, token, ok := strings.Cut(strings.TrimSpace(header), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") {
		return ""
	}
	return strings.TrimSpace(token)
}
