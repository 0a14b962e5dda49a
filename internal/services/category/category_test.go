package services

import (
	"context"
	"database/sql"
	"errors"
	"io"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/openhearts/openhearts/internal/models"
)

type MockCategoryRepository struct {
	mock.Mock
}

func (m *MockCategoryRepository) CreateCategory(ctx context.Context, category models.Category) (int, error) {
	args := m.Called(ctx, category)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) ListCategories(ctx context.Context) ([]*models.Category, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) ReadCategory(ctx context.Context, id int) (*models.Category, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) GetCategoryByName(ctx context.Context, name string) (*models.Category, error) {
	args := m.Called(ctx, name)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.Category), args.Error(1)
}

func (m *MockCategoryRepository) UpdateCategory(ctx context.Context, id int, upd models.DummyCategoryUpdate) (int, error) {
	args := m.Called(ctx, id, upd)
	return args.Int(0), args.Error(1)
}

func (m *MockCategoryRepository) RemoveCategory(ctx context.Context, id int) (int, error) {
	args := m.Called(ctx, id)
	return args.Int(0), args.Error(1)
}

type MockCache struct {
	mock.Mock
}

func (m *MockCache) Get(key string, result any) (bool, error) {
	args := m.Called(key, result)
	return args.Bool(0), args.Error(1)
}

func (m *MockCache) Set(key string, value any, expiration time.Duration) error {
	args := m.Called(key, value, expiration)
	return args.Error(0)
}

func (m *MockCache) Invalidate(key string) error {
	args := m.Called(key)
	return args.Error(0)
}

func newNoopLogger() *slog.Logger {
	h := slog.NewTextHandler(io.Discard, &slog.HandlerOptions{})
	return slog.New(h)
}

func TestCategoryService_Create(t *testing.T) {
	ctx := context.Background()

	req := models.DummyCategory{
		Name:        "Education",
		Description: "School supplies and scholarships",
	}
	created := &models.Category{ID: 1, Name: "Education", Description: req.Description}

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("GetCategoryByName", mock.Anything, "Education").
			Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", mock.Anything, mock.AnythingOfType("models.Category")).
			Return(1, nil).Once()
		cache.On("Invalidate", "categories:all").Return(nil).Once()
		repo.On("ReadCategory", mock.Anything, 1).Return(created, nil).Once()

		got, err := service.Create(ctx, req)

		require.NoError(t, err)
		assert.Equal(t, created, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("empty image gets placeholder", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("GetCategoryByName", mock.Anything, "Education").
			Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c models.Category) bool {
			return c.Image == "https://via.placeholder.com/300"
		})).Return(1, nil).Once()
		cache.On("Invalidate", "categories:all").Return(nil).Once()
		repo.On("ReadCategory", mock.Anything, 1).Return(created, nil).Once()

		_, err := service.Create(ctx, req)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("explicit image kept as is", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		withImage := req
		withImage.Image = "https://cdn.openhearts.lk/education.png"

		repo.On("GetCategoryByName", mock.Anything, "Education").
			Return(nil, sql.ErrNoRows).Once()
		repo.On("CreateCategory", mock.Anything, mock.MatchedBy(func(c models.Category) bool {
			return c.Image == withImage.Image
		})).Return(1, nil).Once()
		cache.On("Invalidate", "categories:all").Return(nil).Once()
		repo.On("ReadCategory", mock.Anything, 1).Return(created, nil).Once()

		_, err := service.Create(ctx, withImage)

		require.NoError(t, err)
		repo.AssertExpectations(t)
	})

	t.Run("duplicate name", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("GetCategoryByName", mock.Anything, "Education").
			Return(created, nil).Once()

		_, err := service.Create(ctx, req)

		assert.ErrorIs(t, err, ErrCategoryExists)
		repo.AssertNotCalled(t, "CreateCategory")
	})
}

func TestCategoryService_List(t *testing.T) {
	ctx := context.Background()

	categories := []*models.Category{
		{ID: 2, Name: "Healthcare"},
		{ID: 1, Name: "Education"},
	}

	t.Run("cache miss loads from repository", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		cache.On("Get", "categories:all", mock.Anything).Return(false, nil).Once()
		repo.On("ListCategories", mock.Anything).Return(categories, nil).Once()
		cache.On("Set", "categories:all", categories, time.Hour).Return(nil).Once()

		got, err := service.List(ctx)

		require.NoError(t, err)
		assert.Equal(t, categories, got)
		repo.AssertExpectations(t)
		cache.AssertExpectations(t)
	})

	t.Run("cache hit skips repository", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		cache.On("Get", "categories:all", mock.Anything).Return(true, nil).Once()

		_, err := service.List(ctx)

		require.NoError(t, err)
		repo.AssertNotCalled(t, "ListCategories")
	})
}

func TestCategoryService_Read(t *testing.T) {
	ctx := context.Background()

	t.Run("not found", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		cache.On("Get", "category:99", mock.Anything).Return(false, nil).Once()
		repo.On("ReadCategory", mock.Anything, 99).
			Return(nil, sql.ErrNoRows).Once()

		_, err := service.Read(ctx, 99)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("found and cached", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		category := &models.Category{ID: 1, Name: "Education"}
		cache.On("Get", "category:1", mock.Anything).Return(false, nil).Once()
		repo.On("ReadCategory", mock.Anything, 1).Return(category, nil).Once()
		cache.On("Set", "category:1", category, time.Hour).Return(nil).Once()

		got, err := service.Read(ctx, 1)

		require.NoError(t, err)
		assert.Equal(t, category, got)
		cache.AssertExpectations(t)
	})
}

func TestCategoryService_Update(t *testing.T) {
	ctx := context.Background()

	newName := "Healthcare"
	req := models.DummyCategoryUpdate{Name: &newName}

	t.Run("success invalidates cache", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		updated := &models.Category{ID: 1, Name: "Healthcare"}
		repo.On("UpdateCategory", mock.Anything, 1, req).Return(1, nil).Once()
		cache.On("Invalidate", "category:1").Return(nil).Once()
		cache.On("Invalidate", "categories:all").Return(nil).Once()
		repo.On("ReadCategory", mock.Anything, 1).Return(updated, nil).Once()

		got, err := service.Update(ctx, 1, req)

		require.NoError(t, err)
		assert.Equal(t, updated, got)
		cache.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("UpdateCategory", mock.Anything, 42, req).Return(0, nil).Once()

		_, err := service.Update(ctx, 42, req)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})
}

func TestCategoryService_Remove(t *testing.T) {
	ctx := context.Background()

	t.Run("success", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("RemoveCategory", mock.Anything, 1).Return(1, nil).Once()
		cache.On("Invalidate", "category:1").Return(nil).Once()
		cache.On("Invalidate", "categories:all").Return(nil).Once()

		err := service.Remove(ctx, 1)

		require.NoError(t, err)
		cache.AssertExpectations(t)
	})

	t.Run("unknown id", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("RemoveCategory", mock.Anything, 42).Return(0, nil).Once()

		err := service.Remove(ctx, 42)

		assert.ErrorIs(t, err, ErrCategoryNotFound)
	})

	t.Run("repository error", func(t *testing.T) {
		repo := new(MockCategoryRepository)
		cache := new(MockCache)
		service := NewCategoryService(repo, cache, newNoopLogger())

		repo.On("RemoveCategory", mock.Anything, 1).
			Return(0, errors.New("connection refused")).Once()

		err := service.Remove(ctx, 1)

		require.Error(t, err)
		cache.AssertNotCalled(t, "Invalidate")
	})
}
