package repository

import (
	"context"

	"storefront/shop-service/internal/app/shop/entity"
)

type productRepository struct {
	store *Store[entity.Product]
}

// NewProductRepository создает in-memory каталог товаров
func NewProductRepository() ProductRepository {
	return &productRepository{store: NewStore[entity.Product]()}
}

func (r *productRepository) Create(ctx context.Context, product *entity.Product) error {
	r.store.Insert(func(id int64) entity.Product {
		product.ID = id
		return *product
	})
	return nil
}

func (r *productRepository) GetByID(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &product, nil
}

func (r *productRepository) GetAll(ctx context.Context) ([]entity.Product, error) {
	return r.store.List(), nil
}

func (r *productRepository) Update(ctx context.Context, id int64, mutate func(*entity.Product) error) (*entity.Product, error) {
	product, err := r.store.Update(id, func(p *entity.Product) error {
		if err := mutate(p); err != nil {
			return err
		}
		p.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &product, nil
}

// Delete возвращает удаленный товар, чтобы вызывающий мог снять связь с категорией
func (r *productRepository) Delete(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := r.store.DeleteIf(id, nil)
	if err != nil {
		return nil, err
	}
	return &product, nil
}
