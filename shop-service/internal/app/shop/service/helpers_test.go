package service

import (
	"time"

	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
)

// Хелперы для создания тестовых данных

var fixedNow = time.Date(2026, time.March, 15, 12, 0, 0, 0, time.UTC)

func fixedClock() Clock {
	return ClockFunc(func() time.Time { return fixedNow })
}

// movableClock - часы, которые тест может переводить
type movableClock struct {
	now time.Time
}

func (c *movableClock) Now() time.Time { return c.now }

func dateString(t time.Time) string {
	return t.Format(entity.DateLayout)
}

func ptr[T any](v T) *T {
	return &v
}

type catalogFixture struct {
	categoryRepo repository.CategoryRepository
	productRepo  repository.ProductRepository
	categories   *CategoryService
	products     *ProductService
}

func newCatalogFixture() *catalogFixture {
	categoryRepo := repository.NewCategoryRepository()
	productRepo := repository.NewProductRepository()
	return &catalogFixture{
		categoryRepo: categoryRepo,
		productRepo:  productRepo,
		categories:   NewCategoryService(categoryRepo, nil, fixedClock()),
		products:     NewProductService(productRepo, categoryRepo, nil, fixedClock()),
	}
}
