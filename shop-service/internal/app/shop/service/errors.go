package service

import (
	"errors"
	"fmt"
)

var (
	// Виды ошибок; конкретные ошибки ниже оборачивают один из них и проверяются через errors.Is
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrEmptyResult = errors.New("no records found")
)

var (
	ErrCategoryNotFound = fmt.Errorf("%w: category not found", ErrNotFound)
	ErrProductNotFound  = fmt.Errorf("%w: product not found", ErrNotFound)
	ErrCouponNotFound   = fmt.Errorf("%w: coupon not found", ErrNotFound)
	ErrOrderNotFound    = fmt.Errorf("%w: order not found", ErrNotFound)
	ErrUserNotFound     = fmt.Errorf("%w: user not found", ErrNotFound)
	ErrCustomerNotFound = fmt.Errorf("%w: customer not found", ErrNotFound)

	ErrCategoryHasProducts = fmt.Errorf("%w: cannot delete category with linked products", ErrConflict)
	ErrCouponStillActive   = fmt.Errorf("%w: cannot delete a coupon that is still valid", ErrConflict)
	ErrOrderNotCancelled   = fmt.Errorf("%w: only CANCELADO orders may be deleted", ErrConflict)
	ErrEmailTaken          = fmt.Errorf("%w: user with this email already exists", ErrConflict)

	ErrInvalidDate   = fmt.Errorf("%w: invalid date format", ErrValidation)
	ErrInvalidStatus = fmt.Errorf("%w: invalid order status", ErrValidation)

	ErrNoCategories    = fmt.Errorf("%w: no categories found", ErrEmptyResult)
	ErrNoActiveCoupons = fmt.Errorf("%w: no active coupons found", ErrEmptyResult)
	ErrNoOrders        = fmt.Errorf("%w: no orders found", ErrEmptyResult)
	ErrNoUsers         = fmt.Errorf("%w: no users found", ErrEmptyResult)

	// ErrInvalidCredentials не раскрывает, что именно неверно: email или пароль
	ErrInvalidCredentials = errors.New("invalid email or password")
)
