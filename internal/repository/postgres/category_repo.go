package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"eventboard/internal/domain"
)

// uniqueViolation is the postgres error code for unique constraint breaches.
const uniqueViolation = "23505"

type categoryRepository struct {
	DB *sql.DB
}

func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, category *domain.Category) error {
	query := `INSERT INTO categories (name) VALUES ($1) RETURNING id`
	err := r.DB.QueryRowContext(ctx, query, category.Name).Scan(&category.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	return err
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	query := `SELECT id, name FROM categories WHERE id = $1`
	category := &domain.Category{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&category.ID, &category.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return category, nil
}

func (r *categoryRepository) Update(ctx context.Context, category *domain.Category) error {
	query := `UPDATE categories SET name = $1 WHERE id = $2`
	result, err := r.DB.ExecContext(ctx, query, category.Name, category.ID)
	if isUniqueViolation(err) {
		return domain.ErrConflict
	}
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	query := `DELETE FROM categories WHERE id = $1`
	result, err := r.DB.ExecContext(ctx, query, id)
	if err != nil {
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *categoryRepository) List(ctx context.Context, from, size int) ([]*domain.Category, error) {
	query := `SELECT id, name FROM categories ORDER BY id OFFSET $1 LIMIT $2`
	rows, err := r.DB.QueryContext(ctx, query, from, size)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		category := &domain.Category{}
		if err := rows.Scan(&category.ID, &category.Name); err != nil {
			return nil, err
		}
		categories = append(categories, category)
	}
	return categories, rows.Err()
}

func isUniqueViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation
}
