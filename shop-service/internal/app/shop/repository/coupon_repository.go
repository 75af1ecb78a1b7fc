package repository

import (
	"context"

	"storefront/shop-service/internal/app/shop/entity"
)

type couponRepository struct {
	store *Store[entity.Coupon]
}

// NewCouponRepository создает in-memory реестр купонов
func NewCouponRepository() CouponRepository {
	return &couponRepository{store: NewStore[entity.Coupon]()}
}

func (r *couponRepository) Create(ctx context.Context, coupon *entity.Coupon) error {
	r.store.Insert(func(id int64) entity.Coupon {
		coupon.ID = id
		return *coupon
	})
	return nil
}

func (r *couponRepository) GetByID(ctx context.Context, id int64) (*entity.Coupon, error) {
	coupon, err := r.store.Get(id)
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) GetAll(ctx context.Context) ([]entity.Coupon, error) {
	return r.store.List(), nil
}

func (r *couponRepository) Update(ctx context.Context, id int64, mutate func(*entity.Coupon) error) (*entity.Coupon, error) {
	coupon, err := r.store.Update(id, func(c *entity.Coupon) error {
		if err := mutate(c); err != nil {
			return err
		}
		c.ID = id
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

func (r *couponRepository) DeleteIf(ctx context.Context, id int64, check func(*entity.Coupon) error) error {
	_, err := r.store.DeleteIf(id, func(c entity.Coupon) error {
		if check == nil {
			return nil
		}
		return check(&c)
	})
	return err
}
