// Checklist template storage: checklists own their items, so deleting a
// checklist removes its items through the schema cascade.
package repository

import (
	"context"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/jackc/pgx/v5"
)

// ChecklistRepository handles checklist-related database operations.
type ChecklistRepository struct{}

// NewChecklistRepository creates a new instance of ChecklistRepository.
func NewChecklistRepository() *ChecklistRepository {
	return &ChecklistRepository{}
}

// ListAll retrieves all checklists without their items.
// Items are attached separately by the service layer.
func (r *ChecklistRepository) ListAll(ctx context.Context) ([]models.Checklist, error) {
	query := `SELECT id, name, description FROM checklists ORDER BY id`

	rows, err := database.DB.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var checklists []models.Checklist
	for rows.Next() {
		var cl models.Checklist
		if err := rows.Scan(&cl.ID, &cl.Name, &cl.Description); err != nil {
			return nil, err
		}
		checklists = append(checklists, cl)
	}

	return checklists, nil
}

// FindByID retrieves a single checklist without its items.
//
// Returns:
//   - *models.Checklist: Checklist metadata
//   - error: ErrNotFound if the ID doesn't exist, database error otherwise
func (r *ChecklistRepository) FindByID(ctx context.Context, id int64) (*models.Checklist, error) {
	query := `SELECT id, name, description FROM checklists WHERE id = $1`

	var cl models.Checklist
	err := database.DB.QueryRow(ctx, query, id).Scan(&cl.ID, &cl.Name, &cl.Description)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &cl, nil
}

// ExistsByID reports whether a checklist row exists.
func (r *ChecklistRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM checklists WHERE id = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new checklist.
// Side Effects: Populates checklist.ID with the database-generated value.
func (r *ChecklistRepository) Create(ctx context.Context, checklist *models.Checklist) error {
	query := `INSERT INTO checklists (name, description) VALUES ($1, $2) RETURNING id`
	return database.DB.QueryRow(ctx, query, checklist.Name, checklist.Description).Scan(&checklist.ID)
}

// Update overwrites the name and description of an existing checklist.
func (r *ChecklistRepository) Update(ctx context.Context, checklist *models.Checklist) error {
	query := `UPDATE checklists SET name = $1, description = $2 WHERE id = $3`
	_, err := database.DB.Exec(ctx, query, checklist.Name, checklist.Description, checklist.ID)
	return err
}

// Delete removes a checklist.
//
// Database: checklist_items cascade-delete with their checklist, and
// inspections referencing it have their checklist_id set to NULL, both via
// schema constraints.
func (r *ChecklistRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM checklists WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, id)
	return err
}
