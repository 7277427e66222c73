// Inspection operations that span repositories: view assembly with the
// attached checklist and results, checklist reference validation, and the
// status statistics summary.
package services

import (
	"context"
	"errors"

	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/repository"
)

// ErrChecklistMissing is returned when an inspection references a checklist
// id that does not exist.
var ErrChecklistMissing = errors.New("checklist not found")

// InspectionService composes inspection reads and writes.
type InspectionService struct {
	inspectionRepo *repository.InspectionRepository
	checklistRepo  *repository.ChecklistRepository
	itemRepo       *repository.ChecklistItemRepository
	results        *ResultService
}

// NewInspectionService creates an InspectionService.
func NewInspectionService() *InspectionService {
	return &InspectionService{
		inspectionRepo: repository.NewInspectionRepository(),
		checklistRepo:  repository.NewChecklistRepository(),
		itemRepo:       repository.NewChecklistItemRepository(),
		results:        NewResultService(),
	}
}

// Create persists a new inspection in PLANNED status. When a checklist id is
// supplied it must reference an existing checklist.
//
// Returns ErrChecklistMissing or a database error.
func (s *InspectionService) Create(ctx context.Context, insp *models.Inspection) error {
	if insp.ChecklistID != nil {
		exists, err := s.checklistRepo.ExistsByID(ctx, *insp.ChecklistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrChecklistMissing
		}
	}

	insp.Status = models.StatusPlanned
	return s.inspectionRepo.Create(ctx, insp)
}

// Update overwrites an inspection's fields. The checklist reference follows
// the same existence rule as Create; a nil ChecklistID detaches the template.
//
// Returns repository.ErrNotFound, ErrChecklistMissing, or a database error.
func (s *InspectionService) Update(ctx context.Context, insp *models.Inspection) error {
	existing, err := s.inspectionRepo.FindByID(ctx, insp.ID)
	if err != nil {
		return err
	}

	if insp.ChecklistID != nil {
		exists, err := s.checklistRepo.ExistsByID(ctx, *insp.ChecklistID)
		if err != nil {
			return err
		}
		if !exists {
			return ErrChecklistMissing
		}
	}

	insp.Status = existing.Status // status changes go through UpdateStatus
	return s.inspectionRepo.Update(ctx, insp)
}

// BuildView assembles the API shape of an inspection: the row itself, its
// checklist with items when one is attached, and all recorded results.
func (s *InspectionService) BuildView(ctx context.Context, insp *models.Inspection) (*models.InspectionView, error) {
	view := &models.InspectionView{
		ID:                  insp.ID,
		FacilityName:        insp.FacilityName,
		InspectionDate:      insp.InspectionDate.Format(models.DateFormat),
		ResponsibleEmployee: insp.ResponsibleEmployee,
		Status:              insp.Status,
		Results:             []models.Result{},
	}

	if insp.ChecklistID != nil {
		checklist, err := s.checklistRepo.FindByID(ctx, *insp.ChecklistID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return nil, err
		}
		if checklist != nil {
			items, err := s.itemRepo.ListByChecklist(ctx, checklist.ID)
			if err != nil {
				return nil, err
			}
			if items == nil {
				items = []models.ChecklistItem{}
			}
			checklist.Items = items
			view.Checklist = checklist
		}
	}

	results, err := s.results.ListForInspection(ctx, insp.ID)
	if err != nil {
		return nil, err
	}
	if results != nil {
		view.Results = results
	}

	return view, nil
}

// Statistics returns inspection counts per status plus the total.
func (s *InspectionService) Statistics(ctx context.Context) (*models.Statistics, error) {
	planned, err := s.inspectionRepo.CountByStatus(ctx, models.StatusPlanned)
	if err != nil {
		return nil, err
	}

	inProgress, err := s.inspectionRepo.CountByStatus(ctx, models.StatusInProgress)
	if err != nil {
		return nil, err
	}

	completed, err := s.inspectionRepo.CountByStatus(ctx, models.StatusCompleted)
	if err != nil {
		return nil, err
	}

	total, err := s.inspectionRepo.Count(ctx)
	if err != nil {
		return nil, err
	}

	return &models.Statistics{
		Planned:    planned,
		InProgress: inProgress,
		Completed:  completed,
		Total:      total,
	}, nil
}
