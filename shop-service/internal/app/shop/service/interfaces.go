package service

import (
	"context"
	"time"

	"storefront/shop-service/internal/app/shop/entity"
)

// Clock поставляет текущее время для активности купонов и даты заказа
type Clock interface {
	Now() time.Time
}

// ClockFunc позволяет использовать функцию как Clock
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock - системное время в заданной локации
type SystemClock struct {
	Location *time.Location
}

func (c SystemClock) Now() time.Time {
	if c.Location == nil {
		return time.Now()
	}
	return time.Now().In(c.Location)
}

// CustomerResolver находит клиента по ID; возвращает ErrCustomerNotFound при отсутствии
type CustomerResolver interface {
	ResolveCustomer(ctx context.Context, id int64) (entity.Customer, error)
}

// ProductResolver находит товар по ID; возвращает ErrProductNotFound при отсутствии
type ProductResolver interface {
	ResolveProduct(ctx context.Context, id int64) (*entity.Product, error)
}

type CategoryServiceInterface interface {
	CreateCategory(ctx context.Context, req *entity.CreateCategoryRequest) (*entity.CategoryResponse, error)
	GetCategory(ctx context.Context, id int64) (*entity.CategoryResponse, error)
	GetAllCategories(ctx context.Context) ([]entity.Category, error)
	UpdateCategory(ctx context.Context, id int64, req *entity.UpdateCategoryRequest) (*entity.CategoryResponse, error)
	DeleteCategory(ctx context.Context, id int64) error
}

type ProductServiceInterface interface {
	CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error)
	GetProduct(ctx context.Context, id int64) (*entity.Product, error)
	GetAllProducts(ctx context.Context) ([]entity.Product, error)
	UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error)
	DeleteProduct(ctx context.Context, id int64) error
	SearchByName(ctx context.Context, substr string) ([]entity.Product, error)
	SearchByCategory(ctx context.Context, substr string) ([]entity.Product, error)
}

type CouponServiceInterface interface {
	CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.CouponResponse, error)
	GetCoupon(ctx context.Context, id int64) (*entity.CouponResponse, error)
	ListActiveCoupons(ctx context.Context) ([]entity.CouponResponse, error)
	UpdateCoupon(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (*entity.CouponResponse, error)
	DeleteCoupon(ctx context.Context, id int64) error
}

type OrderServiceInterface interface {
	CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error)
	GetOrder(ctx context.Context, id int64) (*entity.Order, error)
	UpdateOrderStatus(ctx context.Context, id int64, status string) (*entity.Order, error)
	ListOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error)
	DeleteOrder(ctx context.Context, id int64) error
}

type UserServiceInterface interface {
	CreateUser(ctx context.Context, req *entity.CreateUserRequest) (*entity.User, error)
	GetUser(ctx context.Context, id int64) (*entity.User, error)
	GetAllUsers(ctx context.Context) ([]entity.User, error)
	UpdateUser(ctx context.Context, id int64, req *entity.UpdateUserRequest) (*entity.User, error)
	DeleteUser(ctx context.Context, id int64) error
	Login(ctx context.Context, req *entity.LoginRequest) (*entity.LoginResponse, error)
}
