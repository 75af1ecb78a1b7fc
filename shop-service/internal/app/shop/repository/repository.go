package repository

import (
	"context"
	"errors"

	"storefront/shop-service/internal/app/shop/entity"
)

var (
	// Стандартные ошибки репозитория для обработки в service layer
	ErrNotFound            = errors.New("not found")
	ErrCategoryHasProducts = errors.New("cannot delete category with linked products")
	ErrEmailTaken          = errors.New("user with this email already exists")
)

// CategoryRepository - реестр категорий вместе с таблицей связей категория -> товары
// LinkProduct/UnlinkProduct - единственный способ изменить связи
type CategoryRepository interface {
	Create(ctx context.Context, category *entity.Category) error
	GetByID(ctx context.Context, id int64) (*entity.Category, error)
	GetAll(ctx context.Context) ([]entity.Category, error)
	Update(ctx context.Context, id int64, mutate func(*entity.Category) error) (*entity.Category, error)
	Delete(ctx context.Context, id int64) error

	LinkProduct(ctx context.Context, categoryID, productID int64) error
	UnlinkProduct(ctx context.Context, categoryID, productID int64) error
	LinkedProducts(ctx context.Context, categoryID int64) ([]int64, error)
}

type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id int64) (*entity.Product, error)
	GetAll(ctx context.Context) ([]entity.Product, error)
	Update(ctx context.Context, id int64, mutate func(*entity.Product) error) (*entity.Product, error)
	Delete(ctx context.Context, id int64) (*entity.Product, error)
}

type CouponRepository interface {
	Create(ctx context.Context, coupon *entity.Coupon) error
	GetByID(ctx context.Context, id int64) (*entity.Coupon, error)
	GetAll(ctx context.Context) ([]entity.Coupon, error)
	Update(ctx context.Context, id int64, mutate func(*entity.Coupon) error) (*entity.Coupon, error)
	// DeleteIf удаляет купон, только если check вернул nil; проверка и удаление атомарны
	DeleteIf(ctx context.Context, id int64, check func(*entity.Coupon) error) error
}

type OrderRepository interface {
	Create(ctx context.Context, order *entity.Order) error
	GetByID(ctx context.Context, id int64) (*entity.Order, error)
	GetAll(ctx context.Context) ([]entity.Order, error)
	Update(ctx context.Context, id int64, mutate func(*entity.Order) error) (*entity.Order, error)
	DeleteIf(ctx context.Context, id int64, check func(*entity.Order) error) (*entity.Order, error)
}

type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	GetByID(ctx context.Context, id int64) (*entity.User, error)
	GetByEmail(ctx context.Context, email string) (*entity.User, error)
	GetAll(ctx context.Context) ([]entity.User, error)
	Update(ctx context.Context, id int64, mutate func(*entity.User) error) (*entity.User, error)
	Delete(ctx context.Context, id int64) error
}
