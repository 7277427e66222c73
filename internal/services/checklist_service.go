// Checklist rules, chiefly the item-deletion contract: deleting an item must
// preserve every recorded result that references it. Item definitions come
// and go as templates are revised; inspection history does not.
package services

import (
	"context"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
)

// ChecklistService composes checklist and item operations that span
// repositories.
type ChecklistService struct {
	checklistRepo *repository.ChecklistRepository
	itemRepo      *repository.ChecklistItemRepository
	resultRepo    *repository.ResultRepository
}

// NewChecklistService creates a ChecklistService.
func NewChecklistService() *ChecklistService {
	return &ChecklistService{
		checklistRepo: repository.NewChecklistRepository(),
		itemRepo:      repository.NewChecklistItemRepository(),
		resultRepo:    repository.NewResultRepository(),
	}
}

// CreateWithItems creates a checklist and any nested items supplied with it.
// Item back-references are assigned server-side; caller-supplied IDs are
// ignored.
func (s *ChecklistService) CreateWithItems(ctx context.Context, checklist *models.Checklist) error {
	if err := s.checklistRepo.Create(ctx, checklist); err != nil {
		return err
	}

	for i := range checklist.Items {
		item := &checklist.Items[i]
		item.ID = 0
		item.ChecklistID = checklist.ID
		if err := s.itemRepo.Create(ctx, item); err != nil {
			return err
		}
	}

	return nil
}

// LoadItems attaches a checklist's items, ordered by order index.
// A checklist with no items gets an empty slice, not nil, so the JSON view
// renders [] rather than null.
func (s *ChecklistService) LoadItems(ctx context.Context, checklist *models.Checklist) error {
	items, err := s.itemRepo.ListByChecklist(ctx, checklist.ID)
	if err != nil {
		return err
	}
	if items == nil {
		items = []models.ChecklistItem{}
	}
	checklist.Items = items
	return nil
}

// DeleteItem removes a checklist item while preserving inspection history.
//
// Order is the contract: every result referencing the item has its reference
// nulled and persisted first, and only then is the item row deleted. The
// result rows themselves are never deleted here.
//
// Returns repository.ErrNotFound (with no side effects) when the item does
// not exist.
func (s *ChecklistService) DeleteItem(ctx context.Context, itemID int64) error {
	exists, err := s.itemRepo.ExistsByID(ctx, itemID)
	if err != nil {
		return err
	}
	if !exists {
		return repository.ErrNotFound
	}

	if _, err := s.resultRepo.ClearItemReferences(ctx, itemID); err != nil {
		return err
	}

	return s.itemRepo.Delete(ctx, itemID)
}

// UpdateItem partially updates an item: only supplied fields overwrite.
// nil means "not supplied" for both pointers.
//
// Returns repository.ErrNotFound when the item does not exist.
func (s *ChecklistService) UpdateItem(ctx context.Context, itemID int64, description *string, desiredPhotoURL *string) (*models.ChecklistItem, error) {
	item, err := s.itemRepo.FindByID(ctx, itemID)
	if err != nil {
		return nil, err
	}

	if description != nil {
		item.Description = *description
	}
	if desiredPhotoURL != nil {
		item.DesiredPhotoURL = desiredPhotoURL
	}

	if err := s.itemRepo.Update(ctx, item); err != nil {
		return nil, err
	}

	return item, nil
}
