package repository

import (
	"context"
	"fmt"

	"github.com/openhearts/openhearts/internal/models"
)

// CreateDonation вставляет новую запись пожертвования и возвращает её ID.
func (s *Storage) CreateDonation(ctx context.Context, donation models.Donation) (int, error) {
	const op = "storage.CreateDonation"
	select {
	case <-ctx.Done():
		return 0, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `INSERT INTO donations (user_uid, category_id, amount, payment_id, status, message)
			  VALUES ($1, $2, $3, $4, $5, $6)
			  RETURNING id`
	var newID int
	err := s.DB.QueryRowContext(ctx, query,
		donation.UserUID, donation.CategoryID, donation.Amount, donation.PaymentID,
		donation.Status, donation.Message).Scan(&newID)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}
	return newID, nil
}

// ReadDonation возвращает пожертвование по ID, дополненное именем и email
// владельца и названием категории.
func (s *Storage) ReadDonation(ctx context.Context, id int) (*models.DonationInfo, error) {
	const op = "storage.ReadDonation"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.category_id, d.amount, d.payment_id,
			      d.status, d.message, d.created_at, u.name, u.email, c.name
			  FROM donations d
			  JOIN users u ON d.user_uid = u.uid
			  JOIN categories c ON d.category_id = c.id
			  WHERE d.id = $1`
	row := s.DB.QueryRowContext(ctx, query, id)

	var result models.DonationInfo
	if err := row.Scan(&result.ID, &result.UserUID, &result.CategoryID, &result.Amount,
		&result.PaymentID, &result.Status, &result.Message, &result.CreatedAt,
		&result.UserName, &result.UserEmail, &result.CategoryName); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return &result, nil
}

// ListDonationsByUser возвращает пожертвования одного пользователя
// от новых к старым.
func (s *Storage) ListDonationsByUser(ctx context.Context, userUID string) ([]*models.DonationInfo, error) {
	const op = "storage.ListDonationsByUser"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.category_id, d.amount, d.payment_id,
			      d.status, d.message, d.created_at, u.name, u.email, c.name
			  FROM donations d
			  JOIN users u ON d.user_uid = u.uid
			  JOIN categories c ON d.category_id = c.id
			  WHERE d.user_uid = $1
			  ORDER BY d.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query, userUID)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DonationInfo
	for rows.Next() {
		var item models.DonationInfo
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CategoryID, &item.Amount,
			&item.PaymentID, &item.Status, &item.Message, &item.CreatedAt,
			&item.UserName, &item.UserEmail, &item.CategoryName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// ListAllDonations возвращает все пожертвования от новых к старым.
func (s *Storage) ListAllDonations(ctx context.Context) ([]*models.DonationInfo, error) {
	const op = "storage.ListAllDonations"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	query := `SELECT d.id, d.user_uid, d.category_id, d.amount, d.payment_id,
			      d.status, d.message, d.created_at, u.name, u.email, c.name
			  FROM donations d
			  JOIN users u ON d.user_uid = u.uid
			  JOIN categories c ON d.category_id = c.id
			  ORDER BY d.created_at DESC`
	rows, err := s.DB.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	var result []*models.DonationInfo
	for rows.Next() {
		var item models.DonationInfo
		if err := rows.Scan(&item.ID, &item.UserUID, &item.CategoryID, &item.Amount,
			&item.PaymentID, &item.Status, &item.Message, &item.CreatedAt,
			&item.UserName, &item.UserEmail, &item.CategoryName); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		result = append(result, &item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return result, nil
}

// CountStats собирает статистику по завершённым пожертвованиям:
// общую сумму, количество уникальных доноров и агрегаты по категориям.
// При отсутствии завершённых пожертвований возвращает нулевые значения.
func (s *Storage) CountStats(ctx context.Context) (*models.Stats, error) {
	const op = "storage.CountStats"
	select {
	case <-ctx.Done():
		return nil, fmt.Errorf("%s: %w", op, ctx.Err())
	default:
	}

	stats := &models.Stats{DonationsByCategory: []models.CategoryStat{}}

	totalsQuery := `SELECT COALESCE(SUM(amount), 0), COUNT(DISTINCT user_uid)
			  FROM donations
			  WHERE status = 'completed'`
	if err := s.DB.QueryRowContext(ctx, totalsQuery).Scan(&stats.TotalAmount, &stats.TotalDonors); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}

	byCategoryQuery := `SELECT c.id, c.name, COALESCE(SUM(d.amount), 0), COUNT(d.id)
			  FROM donations d
			  JOIN categories c ON d.category_id = c.id
			  WHERE d.status = 'completed'
			  GROUP BY c.id, c.name
			  ORDER BY SUM(d.amount) DESC`
	rows, err := s.DB.QueryContext(ctx, byCategoryQuery)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	defer func() {
		_ = rows.Close()
	}()

	for rows.Next() {
		var item models.CategoryStat
		if err := rows.Scan(&item.CategoryID, &item.CategoryName, &item.Total, &item.Count); err != nil {
			return nil, fmt.Errorf("%s: %w", op, err)
		}
		stats.DonationsByCategory = append(stats.DonationsByCategory, item)
	}
	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("%s: %w", op, err)
	}
	return stats, nil
}
