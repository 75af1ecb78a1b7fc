package service

import (
	"context"
	"errors"
	"testing"

	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/repository/mocks"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestCategoryService_CreateCategory_Success(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := new(mocks.MockCategoryCache)
	cache.On("DeleteCategories", ctx).Return(nil)

	service := NewCategoryService(repository.NewCategoryRepository(), cache, fixedClock())

	// Act
	category, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "  Electronics ", Description: "Gadgets"})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, int64(1), category.ID)
	assert.Equal(t, "Electronics", category.Name)
	assert.Equal(t, fixedNow, category.CreatedAt)
	assert.Empty(t, category.ProductIDs)

	cache.AssertExpectations(t)
}

func TestCategoryService_CreateCategory_BlankName(t *testing.T) {
	ctx := context.Background()
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())

	for _, name := range []string{"", "   "} {
		category, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: name})

		assert.Nil(t, category)
		assert.ErrorIs(t, err, ErrValidation)
	}
}

func TestCategoryService_CreateCategory_CacheErrorIgnored(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := new(mocks.MockCategoryCache)
	cache.On("DeleteCategories", ctx).Return(errors.New("redis error"))

	service := NewCategoryService(repository.NewCategoryRepository(), cache, fixedClock())

	// Act
	category, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Books"})

	// Assert - ошибка кеша не должна прерывать выполнение
	require.NoError(t, err)
	assert.NotNil(t, category)
}

func TestCategoryService_GetAllCategories_CacheHit(t *testing.T) {
	// Arrange
	ctx := context.Background()
	cache := new(mocks.MockCategoryCache)
	cached := []entity.Category{{ID: 7, Name: "Cached"}}
	cache.On("GetCategories", ctx).Return(cached, nil)

	service := NewCategoryService(repository.NewCategoryRepository(), cache, fixedClock())

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert - реестр пуст, значит ответ пришел из кеша
	require.NoError(t, err)
	assert.Equal(t, cached, categories)
	cache.AssertNotCalled(t, "SetCategories", mock.Anything, mock.Anything)
}

func TestCategoryService_GetAllCategories_CacheMiss(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := repository.NewCategoryRepository()
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "Books"}))

	cache := new(mocks.MockCategoryCache)
	cache.On("GetCategories", ctx).Return(nil, nil)
	cache.On("SetCategories", ctx, mock.MatchedBy(func(c []entity.Category) bool {
		return len(c) == 1 && c[0].Name == "Books"
	})).Return(nil)

	service := NewCategoryService(repo, cache, fixedClock())

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	require.Len(t, categories, 1)
	cache.AssertExpectations(t)
}

func TestCategoryService_GetAllCategories_CacheErrorFallsBack(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := repository.NewCategoryRepository()
	require.NoError(t, repo.Create(ctx, &entity.Category{Name: "Books"}))

	cache := new(mocks.MockCategoryCache)
	cache.On("GetCategories", ctx).Return(nil, errors.New("redis down"))
	cache.On("SetCategories", ctx, mock.Anything).Return(errors.New("redis down"))

	service := NewCategoryService(repo, cache, fixedClock())

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert
	require.NoError(t, err)
	assert.Len(t, categories, 1)
}

func TestCategoryService_GetAllCategories_Empty(t *testing.T) {
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())

	categories, err := service.GetAllCategories(context.Background())

	assert.Nil(t, categories)
	assert.ErrorIs(t, err, ErrEmptyResult)
}

func TestCategoryService_GetCategory_NotFound(t *testing.T) {
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())

	category, err := service.GetCategory(context.Background(), 404)

	assert.Nil(t, category)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.ErrorIs(t, err, ErrCategoryNotFound)
}

func TestCategoryService_UpdateCategory_Partial(t *testing.T) {
	// Arrange
	ctx := context.Background()
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())
	created, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Books", Description: "Paper"})
	require.NoError(t, err)

	// Act - пустое имя игнорируется, описание применяется
	updated, err := service.UpdateCategory(ctx, created.ID, &entity.UpdateCategoryRequest{
		Name:        ptr("  "),
		Description: ptr("Paper and ebooks"),
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Books", updated.Name)
	assert.Equal(t, "Paper and ebooks", updated.Description)
}

func TestCategoryService_UpdateCategory_NotFound(t *testing.T) {
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())

	_, err := service.UpdateCategory(context.Background(), 9, &entity.UpdateCategoryRequest{Name: ptr("X")})

	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryService_DeleteCategory_NotFound(t *testing.T) {
	service := NewCategoryService(repository.NewCategoryRepository(), nil, fixedClock())

	err := service.DeleteCategory(context.Background(), 1)

	assert.ErrorIs(t, err, ErrNotFound)
}

// Категорию с товарами удалить нельзя; после удаления товара - можно
func TestCategoryService_DeleteCategory_LinkedProductsScenario(t *testing.T) {
	// Arrange
	ctx := context.Background()
	f := newCatalogFixture()

	category, err := f.categories.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Electronics"})
	require.NoError(t, err)
	product, err := f.products.CreateProduct(ctx, &entity.CreateProductRequest{
		Name:       "Phone",
		Price:      ptr(999.0),
		CategoryID: &category.ID,
	})
	require.NoError(t, err)

	// Act & Assert - категория занята
	err = f.categories.DeleteCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrConflict)
	assert.EqualError(t, err, "conflict: cannot delete category with linked products")

	got, err := f.categories.GetCategory(ctx, category.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{product.ID}, got.ProductIDs)

	// Act & Assert - после удаления товара категория удаляется
	require.NoError(t, f.products.DeleteProduct(ctx, product.ID))
	require.NoError(t, f.categories.DeleteCategory(ctx, category.ID))

	_, err = f.categories.GetCategory(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// staleReadCategoryRepo возвращает список, прочитанный до выполнения afterRead
type staleReadCategoryRepo struct {
	repository.CategoryRepository
	afterRead func()
}

func (r *staleReadCategoryRepo) GetAll(ctx context.Context) ([]entity.Category, error) {
	categories, err := r.CategoryRepository.GetAll(ctx)
	if hook := r.afterRead; hook != nil {
		r.afterRead = nil
		hook()
	}
	return categories, err
}

func TestCategoryService_GetAllCategories_SkipsCacheFillAfterInvalidation(t *testing.T) {
	// Arrange
	ctx := context.Background()
	inner := repository.NewCategoryRepository()
	require.NoError(t, inner.Create(ctx, &entity.Category{Name: "Books"}))
	repo := &staleReadCategoryRepo{CategoryRepository: inner}

	cache := new(mocks.MockCategoryCache)
	cache.On("GetCategories", ctx).Return(nil, nil)
	cache.On("DeleteCategories", ctx).Return(nil)

	service := NewCategoryService(repo, cache, fixedClock())
	repo.afterRead = func() {
		// Между чтением реестра и записью в кеш появляется новая категория
		_, err := service.CreateCategory(ctx, &entity.CreateCategoryRequest{Name: "Music"})
		require.NoError(t, err)
	}

	// Act
	categories, err := service.GetAllCategories(ctx)

	// Assert - устаревший список отдан клиенту, но не закеширован
	require.NoError(t, err)
	assert.Len(t, categories, 1)
	cache.AssertNotCalled(t, "SetCategories", mock.Anything, mock.Anything)

	// Следующий промах кеша заполняет его актуальным списком
	cache.On("SetCategories", ctx, mock.MatchedBy(func(c []entity.Category) bool { return len(c) == 2 })).Return(nil).Once()

	categories, err = service.GetAllCategories(ctx)
	require.NoError(t, err)
	assert.Len(t, categories, 2)
	cache.AssertExpectations(t)
}
