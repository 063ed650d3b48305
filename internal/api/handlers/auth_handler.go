package handlers

import (
	"spendio/internal/dto"
	"spendio/internal/service"
	"spendio/pkg/middleware"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type AuthHandler struct {
	authService *service.AuthService
	logger      *zap.Logger
}

func NewAuthHandler(authService *service.AuthService, logger *zap.Logger) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		logger:      logger,
	}
}

// Register godoc
// @Summary Register a new user
// @Description Create an account with email, password and display name
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RegisterRequest true "Registration request"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 422 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req dto.RegisterRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "register", err)
	}

	resp, err := h.authService.Register(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "register", err)
	}

	return c.Status(fiber.StatusCreated).JSON(resp)
}

// Login godoc
// @Summary Login user
// @Description Exchange email and password for an access and refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req dto.LoginRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "login", err)
	}

	resp, err := h.authService.Login(c.Context(), &req)
	if err != nil {
		return respondError(c, h.logger, "login", err)
	}

	return c.JSON(resp)
}

// RefreshToken godoc
// @Summary Refresh access token
// @Description Rotate the token pair using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body dto.RefreshTokenRequest true "Refresh token request"
// @Success 200 {object} dto.AuthResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c *fiber.Ctx) error {
	var req dto.RefreshTokenRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "refresh token", err)
	}

	resp, err := h.authService.Refresh(c.Context(), req.RefreshToken)
	if err != nil {
		return respondError(c, h.logger, "refresh token", err)
	}

	return c.JSON(resp)
}

// Me godoc
// @Summary Current user
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.UserResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/me [get]
func (h *AuthHandler) Me(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, h.logger, "me", err)
	}
	return c.JSON(dto.NewUserResponse(user))
}

// Logout godoc
// @Summary Logout
// @Description Revokes the presented access token when revocation is enabled
// @Tags auth
// @Produce json
// @Security Bearer
// @Success 200 {object} dto.MessageResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	if err := h.authService.Logout(c.Context(), middleware.CurrentClaims(c)); err != nil {
		return respondError(c, h.logger, "logout", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Successfully logged out"})
}

// ChangePassword godoc
// @Summary Change password
// @Tags auth
// @Accept json
// @Produce json
// @Security Bearer
// @Param request body dto.ChangePasswordRequest true "Old and new password"
// @Success 200 {object} dto.MessageResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Router /auth/change-password [put]
func (h *AuthHandler) ChangePassword(c *fiber.Ctx) error {
	user, err := middleware.CurrentUser(c)
	if err != nil {
		return respondError(c, h.logger, "change password", err)
	}

	var req dto.ChangePasswordRequest
	if err := bind(c, &req); err != nil {
		return respondError(c, h.logger, "change password", err)
	}

	if err := h.authService.ChangePassword(c.Context(), user, &req); err != nil {
		return respondError(c, h.logger, "change password", err)
	}
	return c.JSON(dto.MessageResponse{Message: "Password changed successfully"})
}
