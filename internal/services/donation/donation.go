// Package services содержит бизнес-логику учёта пожертвований: создание записи
// после подтверждённого платежа, списки с учётом роли, агрегированную статистику
// и публикацию квитанций в очередь уведомлений.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openhearts/openhearts/internal/models"
	"github.com/openhearts/openhearts/internal/obs"
)

// Ошибки бизнес-уровня пожертвований.
var (
	// ErrCategoryNotFound возвращается при пожертвовании в несуществующую категорию.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrDonationNotFound возвращается, если пожертвование не существует.
	ErrDonationNotFound = errors.New("donation not found")
	// ErrNotOwner возвращается при чтении чужого пожертвования без роли администратора.
	ErrNotOwner = errors.New("donation belongs to another user")
)

// DonationRepository определяет методы для работы с пожертвованиями в хранилище.
type DonationRepository interface {
	// CreateDonation добавляет новое пожертвование и возвращает его ID.
	CreateDonation(ctx context.Context, donation models.Donation) (int, error)
	// ReadDonation возвращает пожертвование с данными владельца и категории.
	ReadDonation(ctx context.Context, id int) (*models.DonationInfo, error)
	// ListDonationsByUser возвращает пожертвования пользователя, новые первыми.
	ListDonationsByUser(ctx context.Context, userUID string) ([]*models.DonationInfo, error)
	// ListAllDonations возвращает все пожертвования, новые первыми.
	ListAllDonations(ctx context.Context) ([]*models.DonationInfo, error)
	// CountStats возвращает сводную статистику по завершённым пожертвованиям.
	CountStats(ctx context.Context) (*models.Stats, error)
	// ReadCategory возвращает категорию по ID.
	ReadCategory(ctx context.Context, id int) (*models.Category, error)
	// IncrementCategoryTotal увеличивает накопленную сумму категории.
	IncrementCategoryTotal(ctx context.Context, id int, amount float64) error
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

// ReceiptPublisher публикует квитанции о завершённых пожертвованиях.
type ReceiptPublisher interface {
	PublishReceipt(receipt models.DonationReceipt) error
}

// DonationService реализует бизнес-логику работы с пожертвованиями.
// Publisher может быть nil: квитанции отправляются по мере доступности брокера.
type DonationService struct {
	repo      DonationRepository
	cache     Cache
	publisher ReceiptPublisher
	log       *slog.Logger
}

// NewDonationService создает новый экземпляр DonationService.
func NewDonationService(repo DonationRepository, cache Cache, publisher ReceiptPublisher, log *slog.Logger) *DonationService {
	return &DonationService{
		repo:      repo,
		cache:     cache,
		publisher: publisher,
		log:       log,
	}
}

// Create записывает завершённое пожертвование c подтверждённым платежом,
// увеличивает накопленную сумму категории и публикует квитанцию для письма донору.
func (s *DonationService) Create(ctx context.Context, userUID, userName, userEmail string, req models.DummyDonation) (*models.DonationInfo, error) {
	category, err := s.repo.ReadCategory(ctx, req.CategoryID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	donation := models.Donation{
		UserUID:    userUID,
		CategoryID: req.CategoryID,
		Amount:     req.Amount,
		PaymentID:  req.PaymentID,
		Status:     "completed",
		Message:    req.Message,
	}
	id, err := s.repo.CreateDonation(ctx, donation)
	if err != nil {
		return nil, err
	}
	s.log.Info("created new donation",
		slog.Int("id", id), slog.Int("category_id", req.CategoryID))

	// Сумма категории обновляется отдельным запросом: запись пожертвования
	// первична, расхождение счётчика допустимо и попадает в лог.
	if err := s.repo.IncrementCategoryTotal(ctx, req.CategoryID, req.Amount); err != nil {
		s.log.Warn("failed to increment category total",
			slog.Int("category_id", req.CategoryID), slog.Any("err", err))
	}

	s.invalidateCategoryCache(req.CategoryID)

	obs.ObserveDonation(req.Amount)

	if s.publisher != nil {
		receipt := models.DonationReceipt{
			Email:        userEmail,
			UserName:     userName,
			CategoryName: category.Name,
			Amount:       req.Amount,
			Message:      req.Message,
		}
		if err := s.publisher.PublishReceipt(receipt); err != nil {
			s.log.Warn("failed to publish donation receipt", slog.Any("err", err))
		}
	}

	return s.repo.ReadDonation(ctx, id)
}

// List возвращает список пожертвований в зависимости от роли пользователя:
// администратор видит все, донор — только свои.
func (s *DonationService) List(ctx context.Context, userUID, role string) ([]*models.DonationInfo, error) {
	if role == "admin" {
		return s.repo.ListAllDonations(ctx)
	}
	return s.repo.ListDonationsByUser(ctx, userUID)
}

// Read возвращает пожертвование по ID. Донор может читать только свои записи.
func (s *DonationService) Read(ctx context.Context, id int, userUID, role string) (*models.DonationInfo, error) {
	info, err := s.repo.ReadDonation(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrDonationNotFound
		}
		return nil, err
	}
	if role != "admin" && info.UserUID != userUID {
		return nil, ErrNotOwner
	}
	return info, nil
}

// Stats возвращает сводную статистику по завершённым пожертвованиям.
func (s *DonationService) Stats(ctx context.Context) (*models.Stats, error) {
	return s.repo.CountStats(ctx)
}

func (s *DonationService) invalidateCategoryCache(categoryID int) {
	for _, key := range []string{fmt.Sprintf("category:%d", categoryID), "categories:all"} {
		if err := s.cache.Invalidate(key); err != nil {
			s.log.Warn("failed to remove from cache", slog.String("key", key), slog.Any("err", err))
		}
	}
}
