package repository

import (
	"context"
	"sync"
	"testing"

	"storefront/shop-service/internal/app/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// ==================== Category Repository Tests ====================

func TestCategoryRepository_Delete_BlockedByLinks(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewCategoryRepository()
	category := &entity.Category{Name: "Books"}
	require.NoError(t, repo.Create(ctx, category))
	require.NoError(t, repo.LinkProduct(ctx, category.ID, 10))

	// Act
	err := repo.Delete(ctx, category.ID)

	// Assert
	assert.ErrorIs(t, err, ErrCategoryHasProducts)
	_, err = repo.GetByID(ctx, category.ID)
	assert.NoError(t, err)
}

func TestCategoryRepository_Delete_AfterUnlink(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewCategoryRepository()
	category := &entity.Category{Name: "Books"}
	require.NoError(t, repo.Create(ctx, category))
	require.NoError(t, repo.LinkProduct(ctx, category.ID, 10))
	require.NoError(t, repo.UnlinkProduct(ctx, category.ID, 10))

	// Act
	err := repo.Delete(ctx, category.ID)

	// Assert
	require.NoError(t, err)
	_, err = repo.GetByID(ctx, category.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_LinkProduct_IdempotentAndSorted(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewCategoryRepository()
	category := &entity.Category{Name: "Books"}
	require.NoError(t, repo.Create(ctx, category))

	// Act
	for _, productID := range []int64{5, 3, 5, 1} {
		require.NoError(t, repo.LinkProduct(ctx, category.ID, productID))
	}
	ids, err := repo.LinkedProducts(ctx, category.ID)

	// Assert
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 3, 5}, ids)
}

func TestCategoryRepository_LinkProduct_UnknownCategoryNoop(t *testing.T) {
	ctx := context.Background()
	repo := NewCategoryRepository()

	assert.NoError(t, repo.LinkProduct(ctx, 99, 1))
	assert.NoError(t, repo.UnlinkProduct(ctx, 99, 1))

	_, err := repo.LinkedProducts(ctx, 99)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCategoryRepository_DeleteRacesWithLink(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewCategoryRepository()
	category := &entity.Category{Name: "Race"}
	require.NoError(t, repo.Create(ctx, category))

	var wg sync.WaitGroup
	wg.Add(2)
	var deleteErr error

	// Act
	go func() {
		defer wg.Done()
		_ = repo.LinkProduct(ctx, category.ID, 1)
	}()
	go func() {
		defer wg.Done()
		deleteErr = repo.Delete(ctx, category.ID)
	}()
	wg.Wait()

	// Assert - либо категория удалена и связей нет, либо удаление отклонено
	if deleteErr == nil {
		_, err := repo.GetByID(ctx, category.ID)
		assert.ErrorIs(t, err, ErrNotFound)
	} else {
		assert.ErrorIs(t, deleteErr, ErrCategoryHasProducts)
		ids, err := repo.LinkedProducts(ctx, category.ID)
		require.NoError(t, err)
		assert.Equal(t, []int64{1}, ids)
	}
}

func TestCategoryRepository_Update_KeepsID(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewCategoryRepository()
	category := &entity.Category{Name: "Old"}
	require.NoError(t, repo.Create(ctx, category))

	// Act
	updated, err := repo.Update(ctx, category.ID, func(c *entity.Category) error {
		c.ID = 500
		c.Name = "New"
		return nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, category.ID, updated.ID)
	assert.Equal(t, "New", updated.Name)
}

// ==================== Product Repository Tests ====================

func TestProductRepository_Delete_ReturnsProduct(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewProductRepository()
	categoryID := int64(3)
	product := &entity.Product{Name: "Pen", Price: 1.5, CategoryID: &categoryID}
	require.NoError(t, repo.Create(ctx, product))

	// Act
	deleted, err := repo.Delete(ctx, product.ID)

	// Assert
	require.NoError(t, err)
	require.NotNil(t, deleted.CategoryID)
	assert.Equal(t, categoryID, *deleted.CategoryID)

	_, err = repo.Delete(ctx, product.ID)
	assert.ErrorIs(t, err, ErrNotFound)
}

// ==================== Order Repository Tests ====================

func TestOrderRepository_Create_CopiesSlices(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewOrderRepository()
	productIDs := []int64{1, 2}
	order := &entity.Order{CustomerID: 1, ProductIDs: productIDs, Status: entity.OrderStatusInProgress}
	require.NoError(t, repo.Create(ctx, order))

	// Act
	productIDs[0] = 100

	// Assert
	stored, err := repo.GetByID(ctx, order.ID)
	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, stored.ProductIDs)
}

// ==================== User Repository Tests ====================

func TestUserRepository_Create_EmailTakenCaseInsensitive(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Ana", Email: "ana@example.com"}))

	// Act
	err := repo.Create(ctx, &entity.User{Name: "Other", Email: "ANA@example.com"})

	// Assert
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestUserRepository_Update_EmailTaken(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewUserRepository()
	first := &entity.User{Name: "Ana", Email: "ana@example.com"}
	second := &entity.User{Name: "Bia", Email: "bia@example.com"}
	require.NoError(t, repo.Create(ctx, first))
	require.NoError(t, repo.Create(ctx, second))

	// Act
	_, err := repo.Update(ctx, second.ID, func(u *entity.User) error {
		u.Email = "ana@example.com"
		return nil
	})

	// Assert
	assert.ErrorIs(t, err, ErrEmailTaken)
	stored, err := repo.GetByID(ctx, second.ID)
	require.NoError(t, err)
	assert.Equal(t, "bia@example.com", stored.Email)
}

func TestUserRepository_Update_SameEmailAllowed(t *testing.T) {
	// Arrange
	ctx := context.Background()
	repo := NewUserRepository()
	user := &entity.User{Name: "Ana", Email: "ana@example.com"}
	require.NoError(t, repo.Create(ctx, user))

	// Act
	updated, err := repo.Update(ctx, user.ID, func(u *entity.User) error {
		u.Name = "Ana Maria"
		return nil
	})

	// Assert
	require.NoError(t, err)
	assert.Equal(t, "Ana Maria", updated.Name)
}

func TestUserRepository_GetByEmail(t *testing.T) {
	ctx := context.Background()
	repo := NewUserRepository()
	require.NoError(t, repo.Create(ctx, &entity.User{Name: "Ana", Email: "ana@example.com"}))

	user, err := repo.GetByEmail(ctx, "Ana@Example.com")
	require.NoError(t, err)
	assert.Equal(t, "Ana", user.Name)

	_, err = repo.GetByEmail(ctx, "nobody@example.com")
	assert.ErrorIs(t, err, ErrNotFound)
}
