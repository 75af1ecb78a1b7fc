package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync/atomic"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/util"
)

// CategoryService управляет реестром категорий
// Список категорий кешируется; кеш необязателен и инвалидируется при любом изменении
type CategoryService struct {
	categoryRepo repository.CategoryRepository
	cache        util.CategoryCache // nil - без кеша
	clock        Clock

	// generation растет при каждой инвалидации; список из реестра кладется в кеш,
	// только если за время чтения инвалидаций не было
	generation atomic.Uint64
}

func NewCategoryService(categoryRepo repository.CategoryRepository, cache util.CategoryCache, clock Clock) *CategoryService {
	return &CategoryService{
		categoryRepo: categoryRepo,
		cache:        cache,
		clock:        clock,
	}
}

// CreateCategory создает категорию с пустым множеством связанных товаров
func (s *CategoryService) CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.CategoryResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category := &entity.Category{
		Name:        strings.TrimSpace(req.Name),
		Description: req.Description,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.categoryRepo.Create(ctx, category); err != nil {
		return nil, fmt.Errorf("failed to create category: %w", err)
	}

	s.invalidateCache(ctx)

	return &entity.CategoryResponse{Category: *category, ProductIDs: []int64{}}, nil
}

// GetCategory возвращает категорию вместе с ID связанных товаров
func (s *CategoryService) GetCategory(ctx context.Context, id int64) (*entity.CategoryResponse, error) {
	category, err := s.categoryRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get category: %w", err)
	}

	return s.withProducts(ctx, category)
}

// GetAllCategories сначала смотрит в кеш, при промахе читает реестр и кладет результат в кеш
func (s *CategoryService) GetAllCategories(ctx context.Context) ([]entity.Category, error) {
	if s.cache != nil {
		categories, err := s.cache.GetCategories(ctx)
		if err != nil {
			logger.Warn().Err(err).Msg("failed to read categories cache")
		} else if len(categories) > 0 {
			return categories, nil
		}
	}

	generation := s.generation.Load()

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get categories: %w", err)
	}
	if len(categories) == 0 {
		return nil, ErrNoCategories
	}

	s.fillCache(ctx, generation, categories)

	return categories, nil
}

// fillCache записывает список, прочитанный в поколении generation
// Если инвалидация успела пройти до или во время записи, запись снимается
func (s *CategoryService) fillCache(ctx context.Context, generation uint64, categories []entity.Category) {
	if s.cache == nil || s.generation.Load() != generation {
		return
	}

	if err := s.cache.SetCategories(ctx, categories); err != nil {
		logger.Warn().Err(err).Msg("failed to cache categories")
		return
	}

	if s.generation.Load() != generation {
		if err := s.cache.DeleteCategories(ctx); err != nil {
			logger.Warn().Err(err).Msg("failed to drop stale categories cache")
		}
	}
}

// UpdateCategory применяет переданные поля; пустое имя игнорируется
func (s *CategoryService) UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.CategoryResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	category, err := s.categoryRepo.Update(ctx, id, func(c *entity.Category) error {
		if req.Name != nil && strings.TrimSpace(*req.Name) != "" {
			c.Name = strings.TrimSpace(*req.Name)
		}
		if req.Description != nil {
			c.Description = *req.Description
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to update category: %w", err)
	}

	s.invalidateCache(ctx)

	return s.withProducts(ctx, category)
}

// DeleteCategory удаляет категорию, если на нее не ссылается ни один товар
func (s *CategoryService) DeleteCategory(ctx context.Context, id int64) error {
	if err := s.categoryRepo.Delete(ctx, id); err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCategoryNotFound
		case errors.Is(err, repository.ErrCategoryHasProducts):
			metrics.RecordDeleteRejected("category")
			return ErrCategoryHasProducts
		}
		return fmt.Errorf("failed to delete category: %w", err)
	}

	s.invalidateCache(ctx)

	return nil
}

func (s *CategoryService) withProducts(ctx context.Context, category *entity.Category) (*entity.CategoryResponse, error) {
	productIDs, err := s.categoryRepo.LinkedProducts(ctx, category.ID)
	if err != nil {
		// Категорию могли удалить между чтениями
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("failed to get linked products: %w", err)
	}

	return &entity.CategoryResponse{Category: *category, ProductIDs: productIDs}, nil
}

func (s *CategoryService) invalidateCache(ctx context.Context) {
	s.generation.Add(1)
	if s.cache == nil {
		return
	}
	if err := s.cache.DeleteCategories(ctx); err != nil {
		// Изменение уже применено, ошибка кеша не критична
		logger.Warn().Err(err).Msg("failed to invalidate categories cache")
	}
}
