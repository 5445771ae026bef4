package postgres

import (
	"context"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/require"
)

var requestRows = []string{"id", "created", "requester_id", "event_id", "status"}

func TestRequestRepository_ListByRequester(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("returns the requester's requests", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, created, requester_id, event_id, status\s+FROM requests\s+WHERE requester_id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(requestRows).
				AddRow(int64(21), created, int64(7), int64(1), "PENDING").
				AddRow(int64(22), created, int64(7), int64(2), "CONFIRMED"))

		repo := NewRequestRepository(db)
		requests, err := repo.ListByRequester(ctx, 7)
		require.NoError(t, err)
		require.Len(t, requests, 2)
		require.Equal(t, domain.RequestStatusConfirmed, requests[1].Status)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("no requests yields an empty slice", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM requests\s+WHERE requester_id = \$1`).
			WithArgs(int64(7)).
			WillReturnRows(sqlmock.NewRows(requestRows))

		repo := NewRequestRepository(db)
		requests, err := repo.ListByRequester(ctx, 7)
		require.NoError(t, err)
		require.NotNil(t, requests)
		require.Empty(t, requests)
	})
}

func TestRequestRepository_ListByEvent(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectQuery(`FROM requests\s+WHERE event_id = \$1`).
		WithArgs(int64(1)).
		WillReturnRows(sqlmock.NewRows(requestRows).
			AddRow(int64(21), created, int64(7), int64(1), "PENDING"))

	repo := NewRequestRepository(db)
	requests, err := repo.ListByEvent(ctx, 1)
	require.NoError(t, err)
	require.Len(t, requests, 1)
	require.Equal(t, int64(7), requests[0].RequesterID)
	require.NoError(t, mock.ExpectationsWereMet())
}

func TestRequestRepository_GetByIDAndRequester(t *testing.T) {
	ctx := context.Background()
	created := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM requests\s+WHERE id = \$1 AND requester_id = \$2`).
			WithArgs(int64(21), int64(7)).
			WillReturnRows(sqlmock.NewRows(requestRows).
				AddRow(int64(21), created, int64(7), int64(1), "PENDING"))

		repo := NewRequestRepository(db)
		req, err := repo.GetByIDAndRequester(ctx, 21, 7)
		require.NoError(t, err)
		require.Equal(t, int64(21), req.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("wrong requester is not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM requests\s+WHERE id = \$1 AND requester_id = \$2`).
			WithArgs(int64(21), int64(8)).
			WillReturnRows(sqlmock.NewRows(requestRows))

		repo := NewRequestRepository(db)
		_, err = repo.GetByIDAndRequester(ctx, 21, 8)
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}
