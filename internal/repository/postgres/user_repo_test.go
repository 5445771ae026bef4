package postgres

import (
	"context"
	"testing"
	"time"

	"eventboard/internal/domain"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/stretchr/testify/require"
)

var userRows = []string{"id", "name", "email", "password_hash", "created_on"}

func TestUserRepository_Create(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("success", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users \(name, email, password_hash, created_on\)`).
			WithArgs("alice", "alice@example.com", "hash", now).
			WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(int64(5)))

		repo := NewUserRepository(db)
		user := &domain.User{Name: "alice", Email: "alice@example.com", PasswordHash: "hash", CreatedOn: now}
		require.NoError(t, repo.Create(ctx, user))
		require.Equal(t, int64(5), user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("duplicate email maps to conflict", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`INSERT INTO users`).
			WillReturnError(&pq.Error{Code: "23505"})

		repo := NewUserRepository(db)
		err = repo.Create(ctx, &domain.User{Name: "alice", Email: "alice@example.com"})
		require.ErrorIs(t, err, domain.ErrConflict)
	})
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`SELECT id, name, email, password_hash, created_on FROM users WHERE email = \$1`).
			WithArgs("alice@example.com").
			WillReturnRows(sqlmock.NewRows(userRows).
				AddRow(int64(5), "alice", "alice@example.com", "hash", now))

		repo := NewUserRepository(db)
		user, err := repo.GetByEmail(ctx, "alice@example.com")
		require.NoError(t, err)
		require.Equal(t, int64(5), user.ID)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("not found", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users WHERE email = \$1`).
			WithArgs("bob@example.com").
			WillReturnRows(sqlmock.NewRows(userRows))

		repo := NewUserRepository(db)
		_, err = repo.GetByEmail(ctx, "bob@example.com")
		require.ErrorIs(t, err, domain.ErrNotFound)
	})
}

func TestUserRepository_List(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

	t.Run("with ids filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users WHERE id = ANY\(\$1\) ORDER BY id OFFSET \$2 LIMIT \$3`).
			WithArgs(pq.Array([]int64{5, 6}), 0, 10).
			WillReturnRows(sqlmock.NewRows(userRows).
				AddRow(int64(5), "alice", "alice@example.com", "hash", now))

		repo := NewUserRepository(db)
		users, err := repo.List(ctx, []int64{5, 6}, 0, 10)
		require.NoError(t, err)
		require.Len(t, users, 1)
		require.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("without ids filter", func(t *testing.T) {
		db, mock, err := sqlmock.New()
		require.NoError(t, err)
		defer db.Close()

		mock.ExpectQuery(`FROM users ORDER BY id OFFSET \$1 LIMIT \$2`).
			WithArgs(0, 10).
			WillReturnRows(sqlmock.NewRows(userRows))

		repo := NewUserRepository(db)
		users, err := repo.List(ctx, nil, 0, 10)
		require.NoError(t, err)
		require.Empty(t, users)
	})
}

func TestUserRepository_Delete(t *testing.T) {
	ctx := context.Background()
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer db.Close()

	mock.ExpectExec(`DELETE FROM users WHERE id = \$1`).
		WithArgs(int64(99)).
		WillReturnResult(sqlmock.NewResult(0, 0))

	repo := NewUserRepository(db)
	require.ErrorIs(t, repo.Delete(ctx, 99), domain.ErrNotFound)
}
