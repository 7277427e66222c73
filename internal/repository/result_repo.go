// Result storage. Results belong to an inspection (never orphaned from it)
// and optionally reference the checklist item they were recorded against.
package repository

import (
	"context"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/jackc/pgx/v5"
)

// ResultRepository handles result-related database operations.
type ResultRepository struct{}

// NewResultRepository creates a new instance of ResultRepository.
func NewResultRepository() *ResultRepository {
	return &ResultRepository{}
}

const resultColumns = `id, inspection_id, checklist_item_id, status, comment, photo_url`

// ListByInspection retrieves all results recorded for one inspection.
func (r *ResultRepository) ListByInspection(ctx context.Context, inspectionID int64) ([]models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE inspection_id = $1 ORDER BY id`

	rows, err := database.DB.Query(ctx, query, inspectionID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var results []models.Result
	for rows.Next() {
		var res models.Result
		err := rows.Scan(&res.ID, &res.InspectionID, &res.ChecklistItemID, &res.Status, &res.Comment, &res.PhotoURL)
		if err != nil {
			return nil, err
		}
		results = append(results, res)
	}

	return results, nil
}

// FindByID retrieves a single result.
//
// Returns:
//   - *models.Result: Result row
//   - error: ErrNotFound if the ID doesn't exist, database error otherwise
func (r *ResultRepository) FindByID(ctx context.Context, id int64) (*models.Result, error) {
	query := `SELECT ` + resultColumns + ` FROM results WHERE id = $1`

	var res models.Result
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&res.ID, &res.InspectionID, &res.ChecklistItemID, &res.Status, &res.Comment, &res.PhotoURL,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &res, nil
}

// ExistsByID reports whether a result row exists.
func (r *ResultRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM results WHERE id = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new result for an inspection.
// Side Effects: Populates result.ID with the database-generated value.
func (r *ResultRepository) Create(ctx context.Context, res *models.Result) error {
	query := `
		INSERT INTO results (inspection_id, checklist_item_id, status, comment, photo_url)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`
	return database.DB.QueryRow(ctx, query,
		res.InspectionID, res.ChecklistItemID, res.Status, res.Comment, res.PhotoURL,
	).Scan(&res.ID)
}

// Update overwrites the outcome fields of an existing result.
// The inspection and checklist item references are immutable here.
func (r *ResultRepository) Update(ctx context.Context, res *models.Result) error {
	query := `UPDATE results SET status = $1, comment = $2, photo_url = $3 WHERE id = $4`
	_, err := database.DB.Exec(ctx, query, res.Status, res.Comment, res.PhotoURL, res.ID)
	return err
}

// ClearItemReferences nulls the checklist item reference in every result that
// points at the given item, preserving the result rows themselves. Must run
// before the item row is deleted.
//
// Returns:
//   - int64: Number of results rewritten
//   - error: Database error if the update fails
func (r *ResultRepository) ClearItemReferences(ctx context.Context, itemID int64) (int64, error) {
	query := `UPDATE results SET checklist_item_id = NULL WHERE checklist_item_id = $1`

	tag, err := database.DB.Exec(ctx, query, itemID)
	if err != nil {
		return 0, err
	}
	return tag.RowsAffected(), nil
}

// Delete removes a result row.
func (r *ResultRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM results WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, id)
	return err
}
