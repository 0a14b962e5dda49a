package repository

import (
	"context"
	"fmt"

	"github.com/openhearts/openhearts/internal/models"
)

// CreateCategory вставляет новую категорию и возвращает её ID.
func (s *Storage) CreateCategory(ctx context.Context, category models.Category) (int, error) {
	const op = "storage.CreateCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO categories (name, description, image)
			  VALUES ($1, $2, $3)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		category.Name, category.Description, category.Image).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ListCategories возвращает все категории, отсортированные от новых к старым.
func (s *Storage) ListCategories(ctx context.Context) ([]*models.Category, error) {
	const op = "storage.ListCategories"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, image, total_donations, created_at
			  FROM categories
			  ORDER BY created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.Category
	for rows.Next() {
		var item models.Category
		if err := rows.Scan(&item.ID, &item.Name, &item.Description, &item.Image,
			&item.TotalDonations, &item.CreatedAt); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ReadCategory возвращает категорию по её ID.
func (s *Storage) ReadCategory(ctx context.Context, id int) (*models.Category, error) {
	const op = "storage.ReadCategory"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, image, total_donations, created_at
			  FROM categories WHERE id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.Category
	if err := row.Scan(&result.ID, &result.Name, &result.Description, &result.Image,
		&result.TotalDonations, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// GetCategoryByName возвращает категорию по уникальному имени.
func (s *Storage) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	const op = "storage.GetCategoryByName"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT id, name, description, image, total_donations, created_at
			  FROM categories WHERE name = $1`
	row := s.DB.QueryRowContext(ctx, query, name)

	var result models.Category
	if err := row.Scan(&result.ID, &result.Name, &result.Description, &result.Image,
		&result.TotalDonations, &result.CreatedAt); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// UpdateCategory обновляет только переданные поля категории и возвращает
// количество изменённых строк.
func (s *Storage) UpdateCategory(ctx context.Context, id int, upd models.DummyCategoryUpdate) (int, error) {
	const op = "storage.UpdateCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE categories
			  SET name = COALESCE($1, name),
			      description = COALESCE($2, description),
			      image = COALESCE($3, image)
			  WHERE id = $4`
	result, err := s.DB.ExecContext(ctx, query, upd.Name, upd.Description, upd.Image, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// RemoveCategory удаляет категорию по ID и возвращает количество удалённых строк.
func (s *Storage) RemoveCategory(ctx context.Context, id int) (int, error) {
	const op = "storage.RemoveCategory"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `DELETE FROM categories WHERE id = $1`
	result, err := s.DB.ExecContext(ctx, query, id)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	rowsAffected, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return int(rowsAffected), nil
}

// IncrementCategoryTotal увеличивает накопленную сумму пожертвований категории.
// Запись пожертвования и инкремент — два отдельных запроса без общей транзакции.
func (s *Storage) IncrementCategoryTotal(ctx context.Context, id int, amount float64) error {
	const op = "storage.IncrementCategoryTotal"
	select {
	case <-ctx.Done():
		return fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `UPDATE categories
			  SET total_donations = total_donations + $1
			  WHERE id = $2`
	_, err := s.DB.ExecContext(ctx, query, amount, id)
	if err != nil {
		return fmt.Errorf("%s: %w", op, err)
	}
	return nil
}
