// Package handlers implements the HTTP layer for facilitycheck.
// This file handles authentication operations: login and self-registration.
package handlers

import (
	"errors"

	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

// AuthHandler handles authentication-related HTTP requests.
type AuthHandler struct {
	authService    *services.AuthService
	validation     *security.ValidationService
	securityLogger *security.Logger
}

// NewAuthHandler creates a new instance of AuthHandler.
//
// Parameters:
//   - authService: Authentication service carrying the active password
//     verification strategy
//   - securityLogger: Logger for login and registration events
//
// Returns:
//   - *AuthHandler: Initialized handler instance
func NewAuthHandler(authService *services.AuthService, securityLogger *security.Logger) *AuthHandler {
	return &AuthHandler{
		authService:    authService,
		validation:     security.NewValidationService(security.DefaultSecurityConfig()),
		securityLogger: securityLogger,
	}
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
}

// Login authenticates credentials and returns the account on success.
//
// Parameters:
//   - c: Fiber context with a JSON body {username, password}
//
// Returns:
//   - 200 with the user view on success
//   - 400 when either field is missing
//   - 401 "Invalid credentials" for unknown username or wrong password
//   - 403 "Account is disabled" when credentials are correct but the
//     account is off
//
// Side Effects: Logs success and failure as security events.
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req loginRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}

	if req.Username == "" || req.Password == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username and password are required")
	}

	user, err := h.authService.Authenticate(c.Context(), req.Username, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrInvalidCredentials):
			h.securityLogger.SecurityEvent(security.EventLoginFailure, nil, req.Username, c.IP(), c.Get("User-Agent"), nil)
			return fiber.NewError(fiber.StatusUnauthorized, "Invalid credentials")
		case errors.Is(err, services.ErrAccountDisabled):
			h.securityLogger.SecurityEvent(security.EventAccountDisabled, nil, req.Username, c.IP(), c.Get("User-Agent"), nil)
			return fiber.NewError(fiber.StatusForbidden, "Account is disabled")
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventLoginSuccess, &user.ID, user.Username, c.IP(), c.Get("User-Agent"), nil)
	return c.JSON(user.View())
}

// Register creates a new account with role USER.
//
// Parameters:
//   - c: Fiber context with a JSON body {username, name, password, email}
//
// Returns:
//   - 201 with the user view on success
//   - 400 for missing fields, a short password, or a taken username/email
func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var req registerRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Username, name, password and email are required")
	}

	if req.Username == "" || req.Name == "" || req.Password == "" || req.Email == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Username, name, password and email are required")
	}

	if err := h.validation.ValidatePassword(req.Password); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validation.ValidateEmail(req.Email); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	user, err := h.authService.Register(c.Context(), req.Username, req.Name, req.Password, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		case errors.Is(err, services.ErrEmailTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserRegister, &user.ID, user.Username, c.IP(), c.Get("User-Agent"), nil)
	return c.Status(fiber.StatusCreated).JSON(user.View())
}
