// Inspection service tests: checklist reference validation, view assembly,
// and the statistics summary.
package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/avissapr/facilitycheck/internal/database"
	"github.com/avissapr/facilitycheck/internal/models"
	"github.com/avissapr/facilitycheck/internal/services"
	"github.com/pashagolub/pgxmock/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestInspectionService_Create verifies checklist validation and the forced
// PLANNED starting status.
func TestInspectionService_Create(t *testing.T) {
	date := time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC)
	checklistID := int64(3)

	tests := []struct {
		name          string
		checklistID   *int64
		mockSetup     func(pgxmock.PgxPoolIface)
		expectedError error
	}{
		{
			name:        "with an existing checklist",
			checklistID: &checklistID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(int64(3)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(true))
				mock.ExpectQuery("INSERT INTO inspections").
					WithArgs("Warehouse A", date, "J. Smith", models.StatusPlanned, &checklistID).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(6)))
			},
		},
		{
			name:        "without a checklist",
			checklistID: nil,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("INSERT INTO inspections").
					WithArgs("Warehouse A", date, "J. Smith", models.StatusPlanned, (*int64)(nil)).
					WillReturnRows(pgxmock.NewRows([]string{"id"}).AddRow(int64(6)))
			},
		},
		{
			name:        "unknown checklist",
			checklistID: &checklistID,
			mockSetup: func(mock pgxmock.PgxPoolIface) {
				mock.ExpectQuery("SELECT EXISTS").
					WithArgs(int64(3)).
					WillReturnRows(pgxmock.NewRows([]string{"exists"}).AddRow(false))
			},
			expectedError: services.ErrChecklistMissing,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			mock, err := pgxmock.NewPool()
			require.NoError(t, err)
			defer mock.Close()

			oldDB := database.DB
			database.DB = mock
			defer func() { database.DB = oldDB }()

			tt.mockSetup(mock)
			svc := services.NewInspectionService()

			insp := &models.Inspection{
				FacilityName:        "Warehouse A",
				InspectionDate:      date,
				ResponsibleEmployee: "J. Smith",
				Status:              models.StatusCompleted, // must be overridden
				ChecklistID:         tt.checklistID,
			}

			err = svc.Create(context.Background(), insp)

			if tt.expectedError != nil {
				assert.ErrorIs(t, err, tt.expectedError)
			} else {
				assert.NoError(t, err)
				assert.Equal(t, models.StatusPlanned, insp.Status, "New inspections always start PLANNED")
				assert.Equal(t, int64(6), insp.ID)
			}

			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

// TestInspectionService_Statistics verifies the per-status counts and keys.
func TestInspectionService_Statistics(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.StatusPlanned).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(4)))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.StatusInProgress).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(2)))
	mock.ExpectQuery("SELECT COUNT").
		WithArgs(models.StatusCompleted).
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(5)))
	mock.ExpectQuery("SELECT COUNT").
		WillReturnRows(pgxmock.NewRows([]string{"count"}).AddRow(int64(11)))

	svc := services.NewInspectionService()
	stats, err := svc.Statistics(context.Background())

	require.NoError(t, err)
	assert.Equal(t, int64(4), stats.Planned)
	assert.Equal(t, int64(2), stats.InProgress)
	assert.Equal(t, int64(5), stats.Completed)
	assert.Equal(t, int64(11), stats.Total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

// TestInspectionService_BuildView verifies view assembly for a detached
// inspection: null checklist, results still attached.
func TestInspectionService_BuildView_Detached(t *testing.T) {
	mock, err := pgxmock.NewPool()
	require.NoError(t, err)
	defer mock.Close()

	oldDB := database.DB
	database.DB = mock
	defer func() { database.DB = oldDB }()

	mock.ExpectQuery("SELECT id, inspection_id, checklist_item_id, status, comment, photo_url FROM results WHERE inspection_id").
		WithArgs(int64(6)).
		WillReturnRows(pgxmock.NewRows([]string{"id", "inspection_id", "checklist_item_id", "status", "comment", "photo_url"}).
			AddRow(int64(1), int64(6), (*int64)(nil), models.ResultFulfilled, "ok", ""))

	svc := services.NewInspectionService()
	insp := &models.Inspection{
		ID:                  6,
		FacilityName:        "Warehouse A",
		InspectionDate:      time.Date(2026, 3, 14, 0, 0, 0, 0, time.UTC),
		ResponsibleEmployee: "J. Smith",
		Status:              models.StatusInProgress,
	}

	view, err := svc.BuildView(context.Background(), insp)

	require.NoError(t, err)
	assert.Equal(t, "2026-03-14", view.InspectionDate)
	assert.Nil(t, view.Checklist)
	require.Len(t, view.Results, 1)
	assert.Equal(t, models.ResultFulfilled, view.Results[0].Status)
	assert.NoError(t, mock.ExpectationsWereMet())
}
