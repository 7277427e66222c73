// Checklist and checklist item endpoints, including nested creation and the
// history-preserving item deletion.
package handlers

import (
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/gofiber/fiber/v2"
)

// ChecklistHandler handles checklist template HTTP requests.
type ChecklistHandler struct {
	checklistService *services.ChecklistService
	checklistRepo    *repository.ChecklistRepository
	itemRepo         *repository.ChecklistItemRepository
}

// NewChecklistHandler creates a new instance of ChecklistHandler.
func NewChecklistHandler(checklistService *services.ChecklistService) *ChecklistHandler {
	return &ChecklistHandler{
		checklistService: checklistService,
		checklistRepo:    repository.NewChecklistRepository(),
		itemRepo:         repository.NewChecklistItemRepository(),
	}
}

// List returns all checklists with their items attached.
func (h *ChecklistHandler) List(c *fiber.Ctx) error {
	checklists, err := h.checklistRepo.ListAll(c.Context())
	if err != nil {
		return err
	}

	if checklists == nil {
		checklists = []models.Checklist{}
	}
	for i := range checklists {
		if err := h.checklistService.LoadItems(c.Context(), &checklists[i]); err != nil {
			return err
		}
	}

	return c.JSON(checklists)
}

// Get returns one checklist with its items.
//
// Returns: 200 with the checklist, or 404 with an empty body.
func (h *ChecklistHandler) Get(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	checklist, err := h.checklistRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	if err := h.checklistService.LoadItems(c.Context(), checklist); err != nil {
		return err
	}
	return c.JSON(checklist)
}

// Create adds a checklist, optionally with nested items.
//
// Returns: 201 with the created checklist, or 400 when the name is missing.
func (h *ChecklistHandler) Create(c *fiber.Ctx) error {
	var checklist models.Checklist
	if err := c.BodyParser(&checklist); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}

	if checklist.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}

	checklist.ID = 0
	if checklist.Items == nil {
		checklist.Items = []models.ChecklistItem{}
	}

	if err := h.checklistService.CreateWithItems(c.Context(), &checklist); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(checklist)
}

// Update overwrites a checklist's name and description. Items are managed
// through the item endpoints, not here.
//
// Returns: 200 with the updated checklist, 400 when the name is missing,
// 404 with an empty body when it does not exist.
func (h *ChecklistHandler) Update(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req models.Checklist
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}
	if req.Name == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Name is required")
	}

	checklist, err := h.checklistRepo.FindByID(c.Context(), id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	checklist.Name = req.Name
	checklist.Description = req.Description
	if err := h.checklistRepo.Update(c.Context(), checklist); err != nil {
		return err
	}

	if err := h.checklistService.LoadItems(c.Context(), checklist); err != nil {
		return err
	}
	return c.JSON(checklist)
}

// Delete removes a checklist. Its items go with it; inspections built from it
// keep running with a detached template.
//
// Returns: 204 on success, 404 with an empty body when it does not exist.
func (h *ChecklistHandler) Delete(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	exists, err := h.checklistRepo.ExistsByID(c.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	if err := h.checklistRepo.Delete(c.Context(), id); err != nil {
		return err
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// ListItems returns a checklist's items ordered by order index.
//
// Returns: 200 with the items, or 404 with an empty body when the checklist
// does not exist.
func (h *ChecklistHandler) ListItems(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	exists, err := h.checklistRepo.ExistsByID(c.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	items, err := h.itemRepo.ListByChecklist(c.Context(), id)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.ChecklistItem{}
	}
	return c.JSON(items)
}

// AddItem appends an item to a checklist.
//
// Returns: 201 with the created item, 400 when the description is missing,
// 404 with an empty body when the checklist does not exist.
func (h *ChecklistHandler) AddItem(c *fiber.Ctx) error {
	id, ok := parseID(c, "id")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var item models.ChecklistItem
	if err := c.BodyParser(&item); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Description is required")
	}
	if item.Description == "" {
		return fiber.NewError(fiber.StatusBadRequest, "Description is required")
	}

	exists, err := h.checklistRepo.ExistsByID(c.Context(), id)
	if err != nil {
		return err
	}
	if !exists {
		return c.SendStatus(fiber.StatusNotFound)
	}

	item.ID = 0
	item.ChecklistID = id
	if err := h.itemRepo.Create(c.Context(), &item); err != nil {
		return err
	}

	return c.Status(fiber.StatusCreated).JSON(item)
}

type updateItemRequest struct {
	Description     *string `json:"description"`
	DesiredPhotoURL *string `json:"desiredPhotoUrl"`
}

// UpdateItem partially updates an item's description and desired photo URL.
// Omitted fields keep their values.
//
// Returns: 200 with the updated item, or 404 with an empty body.
func (h *ChecklistHandler) UpdateItem(c *fiber.Ctx) error {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	var req updateItemRequest
	if err := c.BodyParser(&req); err != nil {
		return fiber.NewError(fiber.StatusBadRequest, "Invalid request body")
	}

	item, err := h.checklistService.UpdateItem(c.Context(), itemID, req.Description, req.DesiredPhotoURL)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	return c.JSON(item)
}

// DeleteItem removes an item while preserving recorded results: their
// reference to the item is nulled before the row is deleted.
//
// Returns: 204 on success, 404 with an empty body when the item does not
// exist (in which case nothing is touched).
func (h *ChecklistHandler) DeleteItem(c *fiber.Ctx) error {
	itemID, ok := parseID(c, "itemId")
	if !ok {
		return c.SendStatus(fiber.StatusNotFound)
	}

	if err := h.checklistService.DeleteItem(c.Context(), itemID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.SendStatus(fiber.StatusNotFound)
		}
		return err
	}

	return c.SendStatus(fiber.StatusNoContent)
}
