// Result assembly shared by the result and inspection endpoints: results are
// served with the checklist item they were recorded against embedded.
package services

import (
	"context"
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
)

// ResultService loads results together with their checklist items.
type ResultService struct {
	resultRepo *repository.ResultRepository
	itemRepo   *repository.ChecklistItemRepository
}

// NewResultService creates a ResultService.
func NewResultService() *ResultService {
	return &ResultService{
		resultRepo: repository.NewResultRepository(),
		itemRepo:   repository.NewChecklistItemRepository(),
	}
}

// ListForInspection returns all results recorded for one inspection with
// their checklist items attached.
func (s *ResultService) ListForInspection(ctx context.Context, inspectionID int64) ([]models.Result, error) {
	results, err := s.resultRepo.ListByInspection(ctx, inspectionID)
	if err != nil {
		return nil, err
	}
	for i := range results {
		if err := s.AttachItem(ctx, &results[i]); err != nil {
			return nil, err
		}
	}
	return results, nil
}

// AttachItem loads the checklist item a result references. A result that was
// never tied to an item, or whose item has since been deleted, keeps a nil
// item in the response.
func (s *ResultService) AttachItem(ctx context.Context, res *models.Result) error {
	if res.ChecklistItemID == nil {
		return nil
	}

	item, err := s.itemRepo.FindByID(ctx, *res.ChecklistItemID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil
		}
		return err
	}

	res.ChecklistItem = item
	return nil
}
