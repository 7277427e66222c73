// Inspection result endpoints: recording, updating, and removing per-item
// outcomes.
package handlers

import (
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/security"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ResultHandler handles inspection result HTTP requests.
type ResultHandler struct {
	resultRepo     *repository.ResultRepository
	inspectionRepo *repository.InspectionRepository
	itemRepo       *repository.ChecklistItemRepository
	results        *services.ResultService
	validation     *security.ValidationService
}

// NewResultHandler creates a new instance of ResultHandler.
func NewResultHandler() *ResultHandler {
	return &ResultHandler{
		resultRepo:     repository.NewResultRepository(),
		inspectionRepo: repository.NewInspectionRepository(),
		itemRepo:       repository.NewChecklistItemRepository(),
		results:        services.NewResultService(),
		validation:     security.NewValidationService(security.DefaultSecurityConfig()),
	}
}

// ListByInspection returns all results recorded for one inspection.
//
// Returns: 200 with the results, or 404 with an empty body when the
// inspection does not exist.
func (h *ResultHandler) ListByInspection(c *fiber.Ctx) error {
	inspectionID, ok := parseID(c, "inspectionId")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	exists, err := h.inspectionRepo.ExistsByID(c.Context(), inspectionID)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	results, err := h.results.ListForInspection(c.Context(), inspectionID)
	if err != nil {
		return err
	}
	if results == nil {
		results = []models.Result{}
	}
	return c.JSON(results)
}

// resultItemRef is the reference shape clients send for the checklist item:
// a nested object carrying the item id.
type resultItemRef struct {
	ID int64 `json:"id"`
}

type resultRequest struct {
	ChecklistItem *resultItemRef `json:"checklistItem"`
	Status        string         `json:"status"`
	Comment       string         `json:"comment"`
	PhotoURL      string         `json:"photoUrl"`
}

// Create records a result against an inspection.
//
// Returns:
//   - 201 with the created result on success
//   - 400 for a missing/invalid status, an overlong comment or photo URL,
//     or a checklist item reference that does not exist
//   - 404 with an empty body when the inspection does not exist
func (h *ResultHandler) Create(c *fiber.Ctx) error {
	inspectionID, ok := parseID(c, "inspectionId")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req resultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Status is required")
	}

	status := models.ResultStatus(req.Status)
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	if err := h.validation.ValidateComment(req.Comment); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validation.ValidatePhotoURL(req.PhotoURL); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	exists, err := h.inspectionRepo.ExistsByID(c.Context(), inspectionID)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var item *models.ChecklistItem
	if req.ChecklistItem != nil {
		item, err = h.itemRepo.FindByID(c.Context(), req.ChecklistItem.ID)
		if err != nil {
			if errors.Is(err, repository.ErrNotFound) {
				return fiber.NewError(fiber.StatusBadRequest, "Checklist item not found")
			}
			return err
		}
	}

	result := &models.Result{
		InspectionID:  inspectionID,
		ChecklistItem: item,
		Status:        status,
		Comment:       req.Comment,
		PhotoURL:      req.PhotoURL,
	}
	if item != nil {
		result.ChecklistItemID = &item.ID
	}

	if err := h.resultRepo.Create(c.Context(), result); err != nil {
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(result)
}

// Update overwrites a result's status, comment, and photo URL. The inspection
// and checklist item references never change after recording.
//
// Returns: 200 with the updated result, 400 for an invalid status or overlong
// fields, 404 with an empty body when the result does not exist.
func (h *ResultHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req resultRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Status is required")
	}

	status := models.ResultStatus(req.Status)
	if !status.Valid() {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid status")
	}

	if err := h.validation.ValidateComment(req.Comment); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}
	if err := h.validation.ValidatePhotoURL(req.PhotoURL); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, err.Error())
	}

	result, err := h.resultRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	result.Status = status
	result.Comment = req.Comment
	result.PhotoURL = req.PhotoURL
	if err := h.resultRepo.Update(c.Context(), result); err != nil {
		return err
	}

	if err := h.results.AttachItem(c.Context(), result); err != nil {
		return err
	}
	return c.JSON(result)
}

// Delete removes a recorded result.
//
// Returns: 204 on success, 404 with an empty body when it does not exist.
func (h *ResultHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	exists, err := h.resultRepo.ExistsByID(c.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	if err := h.resultRepo.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}
