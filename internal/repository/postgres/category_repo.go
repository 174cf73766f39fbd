package postgres

import (
	"context"
	"database/sql"
	"errors"

	"eventboard/internal/domain"
)

type categoryRepository struct {
	DB *sql.DB
}

// NewCategoryRepository returns a domain.CategoryRepository implemented with Postgres.
func NewCategoryRepository(db *sql.DB) domain.CategoryRepository {
	return &categoryRepository{DB: db}
}

func (r *categoryRepository) Create(ctx context.Context, c *domain.Category) error {
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`INSERT INTO categories (name) VALUES ($1) RETURNING id`, c.Name).Scan(&c.ID)
	if err != nil {
		if isPQCode(err, pqUniqueViolation) {
			return domain.ErrDuplicateCategory
		}
		return err
	}
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*domain.Category, error) {
	c := &domain.Category{}
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`SELECT id, name FROM categories WHERE id = $1`, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("category with id=%d was not found", id)
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) List(ctx context.Context, page domain.PaginationParams) ([]*domain.Category, error) {
	query, args := appendPaging(`SELECT id, name FROM categories ORDER BY id`, nil, page)
	rows, err := conn(ctx, r.DB).QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	categories := make([]*domain.Category, 0)
	for rows.Next() {
		var c domain.Category
		if err := rows.Scan(&c.ID, &c.Name); err != nil {
			return nil, err
		}
		categories = append(categories, &c)
	}
	return categories, rows.Err()
}

func (r *categoryRepository) Rename(ctx context.Context, id int64, name string) (*domain.Category, error) {
	c := &domain.Category{}
	err := conn(ctx, r.DB).QueryRowContext(ctx,
		`UPDATE categories SET name = $1 WHERE id = $2 RETURNING id, name`, name, id).Scan(&c.ID, &c.Name)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.NotFoundf("category with id=%d was not found", id)
		}
		if isPQCode(err, pqUniqueViolation) {
			return nil, domain.ErrDuplicateCategory
		}
		return nil, err
	}
	return c, nil
}

func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	result, err := conn(ctx, r.DB).ExecContext(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		if isPQCode(err, pqForeignKeyViolation) {
			return domain.ErrCategoryInUse
		}
		return err
	}
	rows, _ := result.RowsAffected()
	if rows == 0 {
		return domain.NotFoundf("category with id=%d was not found", id)
	}
	return nil
}
