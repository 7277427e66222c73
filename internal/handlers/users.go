// User management endpoints: listing, creation, profile updates, and the
// guarded role/enabled/delete mutations.
package handlers

import (
	"errors"
	"strconv"

	"github.com/avissapr/facilitycheck/internal/middleware"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

// UserHandler handles user management HTTP requests.
type UserHandler struct {
	userService    *services.UserService
	userRepo       *repository.UserRepository
	validation     *security.ValidationService
	securityLogger *security.Logger
}

// NewUserHandler creates a new instance of UserHandler.
func NewUserHandler(userService *services.UserService, securityLogger *security.Logger) *UserHandler {
	return &UserHandler{
		userService:    userService,
		userRepo:       repository.NewUserRepository(),
		validation:     security.NewValidationService(security.DefaultSecurityConfig()),
		securityLogger: securityLogger,
	}
}

// parseID reads a positive integer path parameter. The zero return with
// ok=false means the handler should answer 404: an unparsable ID can never
// name an existing row.
func parseID(c *fiber.Ctx, name string) (int64, bool) {
	id, err := strconv.ParseInt(c.Params(name), 10, 64)
	if err != nil || id <= 0 {
		return 0, false
	}
	return id, true
}

// List returns all users as safe views.
func (h *UserHandler) List(c *fiber.Ctx) error {
	users, err := h.userRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	views := make([]models.UserView, 0, len(users))
	for i := range users {
		views = append(views, users[i].View())
	}
	return c.JSON(views)
}

// Get returns one user by ID.
//
// Returns: 200 with the user view, or 404 with an empty body.
func (h *UserHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	user, err := h.userRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	return c.JSON(user.View())
}

type createUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Password string `json:"password"`
	Email    string `json:"email"`
	Role     string `json:"role"`
}

// Create adds an account with an optional explicit role.
//
// Returns:
//   - 201 with the user view on success
//   - 400 for missing fields, short password, invalid role, or a taken
//     username/email
func (h *UserHandler) Create(c *fiber.Ctx) error {
	var req createUserRequest
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

	user, err := h.userService.Create(c.Context(), req.Username, req.Name, req.Password, req.Email, req.Role)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		case errors.Is(err, services.ErrEmailTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
		case errors.Is(err, services.ErrBadRole):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserCreate, middleware.ActorID(c), user.Username, c.IP(), c.Get("User-Agent"), map[string]interface{}{
		"created_user_id": user.ID,
		"role":            string(user.Role),
	})
	return c.Status(fiber.StatusCreated).JSON(user.View())
}

type updateUserRequest struct {
	Username string `json:"username"`
	Name     string `json:"name"`
	Email    string `json:"email"`
}

// Update partially updates username, name, and email. Omitted fields keep
// their values.
//
// Returns: 200 with the updated view, 400 on a uniqueness conflict, 404 with
// an empty body when the user does not exist.
func (h *UserHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req updateUserRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	user, err := h.userService.UpdateProfile(c.Context(), id, req.Username, req.Name, req.Email)
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		case errors.Is(err, services.ErrUsernameTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Username already exists")
		case errors.Is(err, services.ErrEmailTaken):
			return fiber.NewError(fiber.StatusBadRequest, "Email already exists")
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserUpdate, middleware.ActorID(c), user.Username, c.IP(), c.Get("User-Agent"), nil)
	return c.JSON(user.View())
}

type roleRequest struct {
	Role string `json:"role"`
}

// ChangeRole sets the target user's role.
//
// The acting user arrives via the X-User-Id header; changing one's own role
// is rejected before anything else is checked.
//
// Returns: 200 with the updated view, 400 for a missing/invalid role or a
// self change, 404 with an empty body when the target does not exist.
func (h *UserHandler) ChangeRole(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req roleRequest
	if err := c.BodyParser(&req); err != nil || req.Role == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Role is required")
	}

	actor := middleware.ActorID(c)
	user, err := h.userService.ChangeRole(c.Context(), id, req.Role, actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnRole):
			h.securityLogger.SecurityEvent(security.EventSelfActionBlock, actor, "", c.IP(), c.Get("User-Agent"), map[string]interface{}{
				"action": "role_change",
			})
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, services.ErrBadRole):
			return fiber.NewError(fiber.StatusBadRequest, "Invalid role")
		case errors.Is(err, repository.ErrNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserRoleChange, actor, user.Username, c.IP(), c.Get("User-Agent"), map[string]interface{}{
		"target_user_id": user.ID,
		"new_role":       string(user.Role),
	})
	return c.JSON(user.View())
}

type enabledRequest struct {
	Enabled *bool `json:"enabled"`
}

// SetEnabled enables or disables the target account.
//
// Returns: 200 with the updated view, 400 for a missing flag or a self
// toggle, 404 with an empty body when the target does not exist.
func (h *UserHandler) SetEnabled(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req enabledRequest
	if err := c.BodyParser(&req); err != nil || req.Enabled == nil {
		return fiber.NewError(fiber.StatusBadRequest, "Enabled status is required")
	}

	actor := middleware.ActorID(c)
	user, err := h.userService.SetEnabled(c.Context(), id, *req.Enabled, actor)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrOwnDisable):
			h.securityLogger.SecurityEvent(security.EventSelfActionBlock, actor, "", c.IP(), c.Get("User-Agent"), map[string]interface{}{
				"action": "enabled_change",
			})
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserToggle, actor, user.Username, c.IP(), c.Get("User-Agent"), map[string]interface{}{
		"target_user_id": user.ID,
		"enabled":        user.Enabled,
	})
	return c.JSON(user.View())
}

// Delete removes the target account.
//
// Returns: 204 on success, 400 for a self delete, 404 with an empty body
// when the target does not exist.
func (h *UserHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	actor := middleware.ActorID(c)
	if err := h.userService.Delete(c.Context(), id, actor); err != nil {
		switch {
		case errors.Is(err, services.ErrOwnDelete):
			h.securityLogger.SecurityEvent(security.EventSelfActionBlock, actor, "", c.IP(), c.Get("User-Agent"), map[string]interface{}{
				"action": "delete",
			})
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		case errors.Is(err, repository.ErrNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		default:
			return err
		}
	}

	h.securityLogger.SecurityEvent(security.EventUserDelete, actor, "", c.IP(), c.Get("User-Agent"), map[string]interface{}{
		"target_user_id": id,
	})
	return c.SendStatus(fiber.StatusNoContent)
}
