package repository

import (
	"context"

	"storefront/shop-service/internal/app/shop/entity"
)

type orderRepository struct {
	store *Store[entity.Order]
}

// NewOrderRepository создает in-memory хранилище заказов
func NewOrderRepository() OrderRepository {
	return &orderRepository{store: NewStore[entity.Order]()}
}

// Create сохраняет заказ; срезы копируются, чтобы вызывающий не мог изменить сохраненную запись
func (r *orderRepository) Create(ctx context.Context, order *entity.Order) error {
	r.store.Insert(func(id int64) entity.Order {
		order.ID = id
		return cloneOrder(*order)
	})
	return nil
}

func (r *orderRepository) GetByID(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *orderRepository) GetAll(ctx context.Context) ([]entity.Order, error) {
	orders := r.store.List()
	for i := range orders {
		orders[i] = cloneOrder(orders[i])
	}
	return orders, nil
}

func (r *orderRepository) Update(ctx context.Context, id int64, mutate func(*entity.Order) error) (*entity.Order, error) {
	order, err := r.store.Update(id, func(o *entity.Order) error {
		updated := cloneOrder(*o)
		if err := mutate(&updated); err != nil {
			return err
		}
		updated.ID = id
		*o = updated
		return nil
	})
	if err != nil {
		return nil, err
	}
	order = cloneOrder(order)
	return &order, nil
}

func (r *orderRepository) DeleteIf(ctx context.Context, id int64, check func(*entity.Order) error) (*entity.Order, error) {
	order, err := r.store.DeleteIf(id, func(o entity.Order) error {
		if check == nil {
			return nil
		}
		return check(&o)
	})
	if err != nil {
		return nil, err
	}
	return &order, nil
}

func cloneOrder(o entity.Order) entity.Order {
	o.ProductIDs = append([]int64(nil), o.ProductIDs...)
	o.Products = append([]entity.OrderProduct(nil), o.Products...)
	return o
}
