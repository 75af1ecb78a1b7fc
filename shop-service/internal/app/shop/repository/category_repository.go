package repository

import (
	"context"
	"sort"

	"storefront/shop-service/internal/app/shop/entity"
)

// categoryRecord хранит категорию вместе с множеством ссылающихся на нее товаров
// Связи лежат в той же коллекции, поэтому проверка связей и удаление атомарны
type categoryRecord struct {
	category entity.Category
	products map[int64]struct{}
}

type categoryRepository struct {
	store *Store[categoryRecord]
}

// NewCategoryRepository создает in-memory реестр категорий
func NewCategoryRepository() CategoryRepository {
	return &categoryRepository{store: NewStore[categoryRecord]()}
}

// Create присваивает категории новый ID и пустое множество связанных товаров
func (r *categoryRepository) Create(ctx context.Context, category *entity.Category) error {
	r.store.Insert(func(id int64) categoryRecord {
		category.ID = id
		return categoryRecord{
			category: *category,
			products: make(map[int64]struct{}),
		}
	})
	return nil
}

func (r *categoryRepository) GetByID(ctx context.Context, id int64) (*entity.Category, error) {
	rec, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &rec.category, nil
}

func (r *categoryRepository) GetAll(ctx context.Context) ([]entity.Category, error) {
	records := r.store.List()

	categories := make([]entity.Category, 0, len(records))
	for _, rec := range records {
		categories = append(categories, rec.category)
	}
	return categories, nil
}

func (r *categoryRepository) Update(ctx context.Context, id int64, mutate func(*entity.Category) error) (*entity.Category, error) {
	rec, err := r.store.Update(id, func(rec *categoryRecord) error {
		updated := rec.category
		if err := mutate(&updated); err != nil {
			return err
		}
		updated.ID = id
		rec.category = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &rec.category, nil
}

// Delete удаляет категорию, только если у нее не осталось связанных товаров
func (r *categoryRepository) Delete(ctx context.Context, id int64) error {
	_, err := r.store.DeleteIf(id, func(rec categoryRecord) error {
		if len(rec.products) > 0 {
			return ErrCategoryHasProducts
		}
		return nil
	})
	return err
}

// LinkProduct идемпотентна; для несуществующей категории ничего не делает
func (r *categoryRepository) LinkProduct(ctx context.Context, categoryID, productID int64) error {
	_, err := r.store.Update(categoryID, func(rec *categoryRecord) error {
		rec.products[productID] = struct{}{}
		return nil
	})
	if err == ErrNotFound {
		return nil
	}
	return err
}

// UnlinkProduct идемпотентна; для несуществующей категории ничего не делает
func (r *categoryRepository) UnlinkProduct(ctx context.Context, categoryID, productID int64) error {
	_, err := r.store.Update(categoryID, func(rec *categoryRecord) error {
		delete(rec.products, productID)
		return nil
	})
	if err == ErrNotFound {
		return nil
	}
	return err
}

// LinkedProducts возвращает отсортированные ID товаров категории
func (r *categoryRepository) LinkedProducts(ctx context.Context, categoryID int64) ([]int64, error) {
	var ids []int64
	// Update с no-op используется ради чтения map под блокировкой коллекции
	_, err := r.store.Update(categoryID, func(rec *categoryRecord) error {
		ids = make([]int64, 0, len(rec.products))
		for id := range rec.products {
			ids = append(ids, id)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	return ids, nil
}
