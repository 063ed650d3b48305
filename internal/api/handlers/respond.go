package handlers

import (
	"errors"

	"spendio/internal/dto"
	"spendio/internal/service"
	"spendio/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// bind parses the JSON body into req and runs its validate tags.
func bind(c *fiber.Ctx, req any) error {
	if err := c.BodyParser(req); err != nil {
		return service.NewValidationError("body", "must be a valid JSON object")
	}
	if fields := dto.Validate(req); fields != nil {
		return &service.ValidationError{Fields: fields}
	}
	return nil
}

func bindQuery(c *fiber.Ctx, req any) error {
	if err := c.QueryParser(req); err != nil {
		return service.NewValidationError("query", "contains malformed parameters")
	}
	if fields := dto.Validate(req); fields != nil {
		return &service.ValidationError{Fields: fields}
	}
	return nil
}

func pathID(c *fiber.Ctx) (uuid.UUID, error) {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return uuid.Nil, service.NewValidationError("id", "must be a valid id")
	}
	return id, nil
}

func currentUserID(c *fiber.Ctx) (uuid.UUID, error) {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return uuid.Nil, err
	}
	return user.ID, nil
}

// IsAuthError reports whether err should be answered with 401.
func IsAuthError(err error) bool {
	return errors.Is(err, service.ErrInvalidCredentials) || errors.Is(err, service.ErrMissingToken)
}

// respondError translates a service error into its HTTP status. Unknown
// errors are logged and hidden behind a generic 500.
func respondError(c *fiber.Ctx, logger *zap.Logger, op string, err error) error {
	var (
		validation *service.ValidationError
		conflict   *service.ConflictError
		business   *service.BusinessError
	)

	switch {
	case errors.As(err, &validation):
		return c.Status(fiber.StatusUnprocessableEntity).JSON(dto.ErrorResponse{
			Error:   "validation failed",
			Details: validation.Fields,
		})
	case IsAuthError(err):
		c.Set(fiber.HeaderWWWAuthenticate, "Bearer")
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Error: middleware.UnauthorizedMessage})
	case errors.Is(err, service.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Error: service.ErrNotFound.Error()})
	case errors.As(err, &conflict):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: conflict.Message})
	case errors.As(err, &business):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Error: business.Message})
	}

	logger.Error(op+" failed",
		zap.Error(err),
		zap.String("request_id", c.GetRespHeader(fiber.HeaderXRequestID)),
	)
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Error: "internal server error"})
}
