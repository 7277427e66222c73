// Inspection storage, including status filtering and the statistics counts
// used by the dashboard summary endpoint.
package repository

import (
	"context"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/jackc/pgx/v5"
)

// InspectionRepository handles inspection-related database operations.
type InspectionRepository struct{}

// NewInspectionRepository creates a new instance of InspectionRepository.
func NewInspectionRepository() *InspectionRepository {
	return &InspectionRepository{}
}

const inspectionColumns = `id, facility_name, inspection_date, responsible_employee, status, checklist_id`

func scanInspections(rows pgx.Rows) ([]models.Inspection, error) {
	defer rows.Close()

	var inspections []models.Inspection
	for rows.Next() {
		var insp models.Inspection
		err := rows.Scan(&insp.ID, &insp.FacilityName, &insp.InspectionDate,
			&insp.ResponsibleEmployee, &insp.Status, &insp.ChecklistID)
		if err != nil {
			return nil, err
		}
		inspections = append(inspections, insp)
	}

	return inspections, nil
}

// ListAll retrieves all inspections ordered by date (newest first).
func (r *InspectionRepository) ListAll(ctx context.Context) ([]models.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections ORDER BY inspection_date DESC, id DESC`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	return scanInspections(rows)
}

// ListByStatus retrieves all inspections with the given status.
func (r *InspectionRepository) ListByStatus(ctx context.Context, status models.InspectionStatus) ([]models.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE status = $1 ORDER BY inspection_date DESC, id DESC`

	rows, err := database.DB.Query(ctx, query, status)
	if err != nil {
		return nil, err
	}
	return scanInspections(rows)
}

// FindByID retrieves a single inspection.
//
// Returns:
//   - *models.Inspection: Inspection row (results and checklist attached by
//     the service layer)
//   - error: ErrNotFound if the ID doesn't exist, database error otherwise
func (r *InspectionRepository) FindByID(ctx context.Context, id int64) (*models.Inspection, error) {
	query := `SELECT ` + inspectionColumns + ` FROM inspections WHERE id = $1`

	var insp models.Inspection
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&insp.ID, &insp.FacilityName, &insp.InspectionDate,
		&insp.ResponsibleEmployee, &insp.Status, &insp.ChecklistID,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &insp, nil
}

// ExistsByID reports whether an inspection row exists.
func (r *InspectionRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM inspections WHERE id = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// CountByStatus counts inspections in one status. Used for statistics.
func (r *InspectionRepository) CountByStatus(ctx context.Context, status models.InspectionStatus) (int64, error) {
	query := `SELECT COUNT(*) FROM inspections WHERE status = $1`

	var count int64
	if err := database.DB.QueryRow(ctx, query, status).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Count counts all inspections.
func (r *InspectionRepository) Count(ctx context.Context) (int64, error) {
	query := `SELECT COUNT(*) FROM inspections`

	var count int64
	if err := database.DB.QueryRow(ctx, query).Scan(&count); err != nil {
		return 0, err
	}
	return count, nil
}

// Create inserts a new inspection.
// Side Effects: Populates inspection.ID with the database-generated value.
func (r *InspectionRepository) Create(ctx context.Context, insp *models.Inspection) error {
	query := `
		INSERT INTO inspections (facility_name, inspection_date, responsible_employee, status, checklist_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return database.DB.QueryRow(ctx, query,
		insp.FacilityName, insp.InspectionDate, insp.ResponsibleEmployee, insp.Status, insp.ChecklistID,
	).Scan(&insp.ID)
}

// Update overwrites the mutable fields of an existing inspection.
// ChecklistID may be nil to detach the template.
func (r *InspectionRepository) Update(ctx context.Context, insp *models.Inspection) error {
	query := `
		UPDATE inspections
		SET facility_name = $1, inspection_date = $2, responsible_employee = $3, checklist_id = $4
		WHERE id = $5
	`
	_, err := database.DB.Exec(ctx, query,
		insp.FacilityName, insp.InspectionDate, insp.ResponsibleEmployee, insp.ChecklistID, insp.ID)
	return err
}

// UpdateStatus sets the inspection status. No transition ordering is
// enforced; any valid status may follow any other.
func (r *InspectionRepository) UpdateStatus(ctx context.Context, id int64, status models.InspectionStatus) error {
	query := `UPDATE inspections SET status = $1 WHERE id = $2`
	_, err := database.DB.Exec(ctx, query, status, id)
	return err
}

// Delete removes an inspection.
//
// Database: its results cascade-delete via the schema constraint.
func (r *InspectionRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM inspections WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, id)
	return err
}
