package domain

import "context"

// Category groups events by topic.
type Category struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// CategoryRepository defines storage operations for categories.
type CategoryRepository interface {
	Create(ctx context.Context, category *Category) error
	GetByID(ctx context.Context, id int64) (*Category, error)
	Update(ctx context.Context, category *Category) error
	Delete(ctx context.Context, id int64) error
	List(ctx context.Context, from, size int) ([]*Category, error)
}

// CategoryService is admin CRUD plus the public read paths for categories.
type CategoryService interface {
	Create(ctx context.Context, name string) (*Category, error)
	Update(ctx context.Context, id int64, name string) (*Category, error)
	// Delete refuses with ErrConflict while any event references the category.
	Delete(ctx context.Context, id int64) error
	Get(ctx context.Context, id int64) (*Category, error)
	List(ctx context.Context, from, size int) ([]*Category, error)
}
