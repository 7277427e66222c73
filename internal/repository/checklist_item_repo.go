// Checklist item storage. Items belong to a checklist but are also referenced
// by historical results, which is why deletion is handled by the service layer
// rather than a cascade.
package repository

import (
	"context"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/jackc/pgx/v5"
)

// ChecklistItemRepository handles checklist item database operations.
type ChecklistItemRepository struct{}

// NewChecklistItemRepository creates a new instance of ChecklistItemRepository.
func NewChecklistItemRepository() *ChecklistItemRepository {
	return &ChecklistItemRepository{}
}

const itemColumns = `id, checklist_id, description, order_index, desired_photo_url`

// ListByChecklist retrieves all items of a checklist in display order.
//
// Database: Orders by order_index ASC (duplicates allowed, id breaks ties).
func (r *ChecklistItemRepository) ListByChecklist(ctx context.Context, checklistID int64) ([]models.ChecklistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM checklist_items WHERE checklist_id = $1 ORDER BY order_index ASC, id ASC`

	rows, err := database.DB.Query(ctx, query, checklistID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var items []models.ChecklistItem
	for rows.Next() {
		var item models.ChecklistItem
		if err := rows.Scan(&item.ID, &item.ChecklistID, &item.Description, &item.OrderIndex, &item.DesiredPhotoURL); err != nil {
			return nil, err
		}
		items = append(items, item)
	}

	return items, nil
}

// FindByID retrieves a single checklist item.
//
// Returns:
//   - *models.ChecklistItem: Item with its owning checklist reference
//   - error: ErrNotFound if the ID doesn't exist, database error otherwise
func (r *ChecklistItemRepository) FindByID(ctx context.Context, id int64) (*models.ChecklistItem, error) {
	query := `SELECT ` + itemColumns + ` FROM checklist_items WHERE id = $1`

	var item models.ChecklistItem
	err := database.DB.QueryRow(ctx, query, id).Scan(
		&item.ID, &item.ChecklistID, &item.Description, &item.OrderIndex, &item.DesiredPhotoURL,
	)

	if err == pgx.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, err
	}

	return &item, nil
}

// ExistsByID reports whether a checklist item row exists.
func (r *ChecklistItemRepository) ExistsByID(ctx context.Context, id int64) (bool, error) {
	query := `SELECT EXISTS(SELECT 1 FROM checklist_items WHERE id = $1)`

	var exists bool
	if err := database.DB.QueryRow(ctx, query, id).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

// Create inserts a new item for a checklist.
// Side Effects: Populates item.ID with the database-generated value.
func (r *ChecklistItemRepository) Create(ctx context.Context, item *models.ChecklistItem) error {
	query := `
		INSERT INTO checklist_items (checklist_id, description, order_index, desired_photo_url)
		VALUES ($1, $2, $3, $4)
		RETURNING id
	`
	return database.DB.QueryRow(ctx, query,
		item.ChecklistID, item.Description, item.OrderIndex, item.DesiredPhotoURL,
	).Scan(&item.ID)
}

// Update overwrites the mutable fields of an existing item.
func (r *ChecklistItemRepository) Update(ctx context.Context, item *models.ChecklistItem) error {
	query := `UPDATE checklist_items SET description = $1, order_index = $2, desired_photo_url = $3 WHERE id = $4`
	_, err := database.DB.Exec(ctx, query, item.Description, item.OrderIndex, item.DesiredPhotoURL, item.ID)
	return err
}

// Delete removes a checklist item row.
//
// Callers must null out referencing results first (see
// services.ChecklistService.DeleteItem); the schema intentionally carries no
// cascade on results.checklist_item_id.
func (r *ChecklistItemRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM checklist_items WHERE id = $1`
	_, err := database.DB.Exec(ctx, query, id)
	return err
}
