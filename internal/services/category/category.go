// Package services содержит бизнес-логику для управления категориями пожертвований и кешированием.
package services

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/openhearts/openhearts/internal/models"
)

// Ошибки бизнес-уровня категорий.
var (
	// ErrCategoryNotFound возвращается, если категория не существует.
	ErrCategoryNotFound = errors.New("category not found")
	// ErrCategoryExists возвращается при попытке создать категорию с занятым именем.
	ErrCategoryExists = errors.New("category with this name already exists")
)

// CategoryRepository определяет методы для работы с категориями в хранилище.
type CategoryRepository interface {
	// CreateCategory добавляет новую категорию и возвращает её ID.
	CreateCategory(ctx context.Context, category models.Category) (int, error)
	// ListCategories возвращает все категории, новые первыми.
	ListCategories(ctx context.Context) ([]*models.Category, error)
	// ReadCategory возвращает категорию по ID.
	ReadCategory(ctx context.Context, id int) (*models.Category, error)
	// GetCategoryByName возвращает категорию по имени.
	GetCategoryByName(ctx context.Context, name string) (*models.Category, error)
	// UpdateCategory обновляет переданные поля категории, возвращает число затронутых строк.
	UpdateCategory(ctx context.Context, id int, upd models.DummyCategoryUpdate) (int, error)
	// RemoveCategory удаляет категорию по ID, возвращает число удалённых строк.
	RemoveCategory(ctx context.Context, id int) (int, error)
}

// Cache описывает методы для кэширования данных.
type Cache interface {
	// Get пытается получить значение из кеша по ключу.
	Get(key string, result any) (bool, error)
	// Set сохраняет значение в кеш с временем жизни.
	Set(key string, value any, expiration time.Duration) error
	// Invalidate удаляет значение из кеша по ключу.
	Invalidate(key string) error
}

const listCacheKey = "categories:all"

// defaultImageURL подставляется, если категория создана без картинки.
const defaultImageURL = "https://via.placeholder.com/300"

// CategoryService реализует бизнес-логику работы с категориями, включая кеширование.
type CategoryService struct {
	repo  CategoryRepository
	cache Cache
	log   *slog.Logger
}

// NewCategoryService создает новый экземпляр CategoryService.
func NewCategoryService(repo CategoryRepository, cache Cache, log *slog.Logger) *CategoryService {
	return &CategoryService{
		repo:  repo,
		cache: cache,
		log:   log,
	}
}

// Create создает новую категорию с уникальным именем и возвращает её.
func (s *CategoryService) Create(ctx context.Context, req models.DummyCategory) (*models.Category, error) {
	_, err := s.repo.GetCategoryByName(ctx, req.Name)
	if err == nil {
		return nil, ErrCategoryExists
	}
	if !errors.Is(err, sql.ErrNoRows) {
		return nil, err
	}

	image := req.Image
	if image == "" {
		image = defaultImageURL
	}
	category := models.Category{
		Name:        req.Name,
		Description: req.Description,
		Image:       image,
	}
	id, err := s.repo.CreateCategory(ctx, category)
	if err != nil {
		return nil, err
	}

	s.log.Info("created new category", slog.Int("id", id))

	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to invalidate categories cache", slog.Any("err", err))
	}

	return s.repo.ReadCategory(ctx, id)
}

// List возвращает все категории, используя кеш или репозиторий.
func (s *CategoryService) List(ctx context.Context) ([]*models.Category, error) {
	var result []*models.Category
	found, err := s.cache.Get(listCacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ListCategories(ctx)
	if err != nil {
		return nil, err
	}

	if err := s.cache.Set(listCacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to cache categories", slog.Any("err", err))
	}
	return result, nil
}

// Read возвращает категорию по ID, используя кеш или репозиторий.
func (s *CategoryService) Read(ctx context.Context, id int) (*models.Category, error) {
	var result *models.Category
	cacheKey := fmt.Sprintf("category:%d", id)
	found, err := s.cache.Get(cacheKey, &result)
	if err != nil {
		return nil, err
	}
	if found {
		return result, nil
	}
	result, err = s.repo.ReadCategory(ctx, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, err
	}

	if err := s.cache.Set(cacheKey, result, time.Hour); err != nil {
		s.log.Warn("failed to add to cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	return result, nil
}

// Update обновляет переданные поля категории и инвалидирует кеш.
func (s *CategoryService) Update(ctx context.Context, id int, req models.DummyCategoryUpdate) (*models.Category, error) {
	count, err := s.repo.UpdateCategory(ctx, id, req)
	if err != nil {
		return nil, err
	}
	if count == 0 {
		return nil, ErrCategoryNotFound
	}
	s.log.Info("updated category in storage", slog.Int("id", id))

	s.invalidate(id)

	return s.repo.ReadCategory(ctx, id)
}

// Remove удаляет категорию по ID и инвалидирует кеш. Вместе с категорией
// каскадно удаляются её пожертвования.
func (s *CategoryService) Remove(ctx context.Context, id int) error {
	count, err := s.repo.RemoveCategory(ctx, id)
	if err != nil {
		return err
	}
	if count == 0 {
		return ErrCategoryNotFound
	}

	s.invalidate(id)

	return nil
}

func (s *CategoryService) invalidate(id int) {
	cacheKey := fmt.Sprintf("category:%d", id)
	if err := s.cache.Invalidate(cacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", cacheKey), slog.Any("err", err))
	}
	if err := s.cache.Invalidate(listCacheKey); err != nil {
		s.log.Warn("failed to remove from cache", slog.String("key", listCacheKey), slog.Any("err", err))
	}
}
