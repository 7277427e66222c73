// Inspection endpoints: CRUD, status filtering, status transitions, and the
// dashboard statistics summary.
package handlers

import (
	"errors"
	"time"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

// InspectionHandler handles inspection HTTP requests.
type InspectionHandler struct {
	inspectionService *services.InspectionService
	inspectionRepo    *repository.InspectionRepository
	validation        *security.ValidationService
}

// NewInspectionHandler creates a new instance of InspectionHandler.
func NewInspectionHandler(inspectionService *services.InspectionService) *InspectionHandler {
	return &InspectionHandler{
		inspectionService: inspectionService,
		inspectionRepo:    repository.NewInspectionRepository(),
		validation:        security.NewValidationService(security.DefaultSecurityConfig()),
	}
}

type inspectionRequest struct {
	FacilityName        string `json:"facilityName"`
	InspectionDate      string `json:"inspectionDate"` // YYYY-MM-DD
	ResponsibleEmployee string `json:"responsibleEmployee"`
	ChecklistID         *int64 `json:"checklistId"`
}

// validate checks presence and date format, returning the parsed date and a
// caller-facing error.
func (req *inspectionRequest) validate(v *security.ValidationService) (time.Time, error) {
	if req.FacilityName == "" || req.InspectionDate == "" || req.ResponsibleEmployee == "" {
		return time.Time{}, errors.New("Facility name, inspection date and responsible employee are required")
	}
	if err := v.ValidateDate(req.InspectionDate); err != nil {
		return time.Time{}, err
	}
	date, err := time.Parse(models.DateFormat, req.InspectionDate)
	if err != nil {
		return time.Time{}, err
	}
	return date, nil
}

// viewList projects inspections into their API shape.
func (h *InspectionHandler) viewList(c *fiber.Ctx, inspections []models.Inspection) error {
	views := make([]*models.InspectionView, 0, len(inspections))
	for i := range inspections {
		view, err := h.inspectionService.BuildView(c.Context(), &inspections[i])
		if err != nil {
			return err
		}
		views = append(views, view)
	}
	return c.JSON(views)
}

// List returns all inspections, newest first.
func (h *InspectionHandler) List(c *fiber.Ctx) error {
	inspections, err := h.inspectionRepo.ListAll(c.Context())
	if err != nil {
		return err
	}
	return h.viewList(c, inspections)
}

// ListByStatus returns inspections filtered to one status.
//
// Returns: 200 with the matching inspections, 400 "Invalid status" for an
// unknown status value.
func (h *InspectionHandler) ListByStatus(c *fiber.Ctx) error {
	status := models.InspectionStatus(c.Params("status"))
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	inspections, err := h.inspectionRepo.ListByStatus(c.Context(), status)
	if err != nil {
		return err
	}
	return h.viewList(c, inspections)
}

// Statistics returns inspection counts keyed planned/inProgress/completed/total.
func (h *InspectionHandler) Statistics(c *fiber.Ctx) error {
	stats, err := h.inspectionService.Statistics(c.Context())
	if err != nil {
		return err
	}
	return c.JSON(stats)
}

// Get returns one inspection with its checklist and results.
//
// Returns: 200 with the inspection view, or 404 with an empty body.
func (h *InspectionHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	insp, err := h.inspectionRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	view, err := h.inspectionService.BuildView(c.Context(), insp)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Create adds an inspection in PLANNED status.
//
// Returns:
//   - 201 with the inspection view on success
//   - 400 for missing fields, a malformed date, or an unknown checklistId
func (h *InspectionHandler) Create(c *fiber.Ctx) error {
	var req inspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Facility name, inspection date and responsible employee are required")
	}
	date, err := req.validate(h.validation)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	insp := &models.Inspection{
		FacilityName:        req.FacilityName,
		InspectionDate:      date,
		ResponsibleEmployee: req.ResponsibleEmployee,
		ChecklistID:         req.ChecklistID,
	}

	if err := h.inspectionService.Create(c.Context(), insp); err != nil {
		if errors.Is(err, services.ErrChecklistMissing) {
			return fiber.NewError(fiber.StatusBadRequest, "Checklist not found")
		}
		return err
	}

	view, err := h.inspectionService.BuildView(c.Context(), insp)
	if err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(view)
}

// Update replaces an inspection's fields. The status is untouched here; it
// changes only through the status endpoint. A null checklistId detaches the
// template.
//
// Returns: 200 with the updated view, 400 for validation failures or an
// unknown checklistId, 404 with an empty body when it does not exist.
func (h *InspectionHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req inspectionRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Facility name, inspection date and responsible employee are required")
	}
	date, err := req.validate(h.validation)
	if err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	insp := &models.Inspection{
		ID:                  id,
		FacilityName:        req.FacilityName,
		InspectionDate:      date,
		ResponsibleEmployee: req.ResponsibleEmployee,
		ChecklistID:         req.ChecklistID,
	}

	if err := h.inspectionService.Update(c.Context(), insp); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return c.SendStatus(fiber.StatusNotFound)
		case errors.Is(err, services.ErrChecklistMissing):
			return fiber.NewError(fiber.StatusBadRequest, "Checklist not found")
		default:
			return err
		}
	}

	view, err := h.inspectionService.BuildView(c.Context(), insp)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

type statusRequest struct {
	Status string `json:"status"`
}

// SetStatus moves an inspection to any valid status. No transition ordering
// is enforced; completed inspections can be reopened.
//
// Returns: 200 with the updated view, 400 "Invalid status" for an unknown
// value, 404 with an empty body when the inspection does not exist.
func (h *InspectionHandler) SetStatus(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req statusRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	status := models.InspectionStatus(req.Status)
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	insp, err := h.inspectionRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	if err := h.inspectionRepo.UpdateStatus(c.Context(), id, status); err != nil {
		return err
	}
	insp.Status = status

	view, err := h.inspectionService.BuildView(c.Context(), insp)
	if err != nil {
		return err
	}
	return c.JSON(view)
}

// Delete removes an inspection and, via the schema cascade, its results.
//
// Returns: 204 on success, 404 with an empty body when it does not exist.
func (h *InspectionHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	exists, err := h.inspectionRepo.ExistsByID(c.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	if err := h.inspectionRepo.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
