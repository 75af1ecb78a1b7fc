package entity

import "time"

// === CATEGORIES ===

type CreateCategoryRequest struct {
	Name        string `json:"name" validate:"notblank,max=100"`
	Description string `json:"description" validate:"max=2000"`
}

type UpdateCategoryRequest struct {
	Name        *string `json:"name" validate:"omitempty,max=100"`
	Description *string `json:"description" validate:"omitempty,max=2000"`
}

// CategoryResponse - категория вместе с идентификаторами связанных товаров
type CategoryResponse struct {
	Category
	ProductIDs []int64 `json:"product_ids"`
}

type CategoryListResponse struct {
	Categories []Category `json:"categories"`
	Total      int        `json:"total"`
}

// === PRODUCTS ===

type CreateProductRequest struct {
	Name        string   `json:"name" validate:"notblank,max=200"`
	Price       *float64 `json:"price" validate:"required,gte=0"`
	Description string   `json:"description" validate:"max=2000"`
	Stock       int      `json:"stock" validate:"gte=0"`
	CategoryID  *int64   `json:"category_id"` // Любой переданный ID принимается, существование не проверяется
}

// UpdateProductRequest - частичное обновление: применяются только переданные поля
type UpdateProductRequest struct {
	Name        *string  `json:"name" validate:"omitempty,notblank,max=200"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	Description *string  `json:"description" validate:"omitempty,max=2000"`
	Stock       *int     `json:"stock" validate:"omitempty,gte=0"`
	CategoryID  *int64   `json:"category_id"`
}

type ProductListResponse struct {
	Products []Product `json:"products"`
	Total    int       `json:"total"`
}

// === COUPONS ===

type CreateCouponRequest struct {
	Code        string   `json:"code" validate:"notblank,max=64"`
	Value       *float64 `json:"value" validate:"required,gt=0"`
	MinPurchase *float64 `json:"min_purchase" validate:"required,gte=0"`
	Expiry      string   `json:"expiry" validate:"required,datetime=2006-01-02"`
}

// UpdateCouponRequest - невалидные значения пропускаются, а не отклоняются
type UpdateCouponRequest struct {
	Code        *string  `json:"code"`
	Value       *float64 `json:"value"`
	MinPurchase *float64 `json:"min_purchase"`
	Expiry      *string  `json:"expiry"`
}

// CouponResponse - купон с вычисленным флагом активности
type CouponResponse struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Value       float64   `json:"value"`
	MinPurchase float64   `json:"min_purchase"`
	Expiry      string    `json:"expiry"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"created_at"`
}

type CouponListResponse struct {
	Coupons []CouponResponse `json:"coupons"`
	Total   int              `json:"total"`
}

// === ORDERS ===

type CreateOrderRequest struct {
	CustomerID int64   `json:"customer_id" validate:"required,gt=0"`
	ProductIDs []int64 `json:"product_ids" validate:"required,min=1,dive,gt=0"`
}

type UpdateOrderStatusRequest struct {
	Status string `json:"status"`
}

// OrderFilter - необязательные фильтры списка заказов, применяются совместно
type OrderFilter struct {
	Customer string `form:"customer"`
	Status   string `form:"status"`
	Date     string `form:"date"`
}

type OrderListResponse struct {
	Orders []Order `json:"orders"`
	Total  int     `json:"total"`
}

// === USERS ===

type CreateUserRequest struct {
	Name     string `json:"name" validate:"notblank,max=100"`
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank,min=6,max=72"`
}

type UpdateUserRequest struct {
	Name     *string `json:"name" validate:"omitempty,notblank,max=100"`
	Email    *string `json:"email" validate:"omitempty,email"`
	Password *string `json:"password" validate:"omitempty,min=6,max=72"`
}

type LoginRequest struct {
	Email    string `json:"email" validate:"notblank,email"`
	Password string `json:"password" validate:"notblank"`
}

type LoginResponse struct {
	Token     string    `json:"token"`
	Email     string    `json:"email"`
	ExpiresAt time.Time `json:"expires_at"`
}

type UserListResponse struct {
	Users []User `json:"users"`
	Total int    `json:"total"`
}

// === COMMON ===

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}

type SuccessResponse struct {
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
}
