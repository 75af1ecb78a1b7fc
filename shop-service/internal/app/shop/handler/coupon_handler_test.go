package handler

import (
	"net/http"
	"testing"

	"storefront/shop-service/internal/app/shop/entity"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCouponHandler_Lifecycle(t *testing.T) {
	// Arrange
	env := newTestEnv()
	value, minPurchase := 10.0, 50.0

	w := env.do(t, http.MethodGet, "/api/v1/coupons", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)

	// Act
	w = env.do(t, http.MethodPost, "/api/v1/coupons", entity.CreateCouponRequest{
		Code:        "SPRING",
		Value:       &value,
		MinPurchase: &minPurchase,
		Expiry:      "2026-04-01",
	}, "")

	// Assert
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	coupon := decode[entity.CouponResponse](t, w)
	assert.True(t, coupon.Active)
	assert.Equal(t, "2026-04-01", coupon.Expiry)

	w = env.do(t, http.MethodGet, "/api/v1/coupons", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, 1, decode[entity.CouponListResponse](t, w).Total)

	// Действующий купон удалить нельзя
	w = env.do(t, http.MethodDelete, "/api/v1/coupons/1", nil, "")
	assert.Equal(t, http.StatusConflict, w.Code)

	// Срок "сегодня" уже не считается действующим
	today := "2026-03-15"
	w = env.do(t, http.MethodPut, "/api/v1/coupons/1", entity.UpdateCouponRequest{Expiry: &today}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.False(t, decode[entity.CouponResponse](t, w).Active)

	w = env.do(t, http.MethodDelete, "/api/v1/coupons/1", nil, "")
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestCouponHandler_CreateCoupon_Validation(t *testing.T) {
	env := newTestEnv()
	value, zero, minPurchase := 10.0, 0.0, 0.0

	tests := []struct {
		name string
		req  entity.CreateCouponRequest
	}{
		{"zero value", entity.CreateCouponRequest{Code: "A", Value: &zero, MinPurchase: &minPurchase, Expiry: "2026-04-01"}},
		{"blank code", entity.CreateCouponRequest{Code: "", Value: &value, MinPurchase: &minPurchase, Expiry: "2026-04-01"}},
		{"bad expiry", entity.CreateCouponRequest{Code: "A", Value: &value, MinPurchase: &minPurchase, Expiry: "01.04.2026"}},
		{"missing expiry", entity.CreateCouponRequest{Code: "A", Value: &value, MinPurchase: &minPurchase}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			w := env.do(t, http.MethodPost, "/api/v1/coupons", tt.req, "")
			assert.Equal(t, http.StatusBadRequest, w.Code)
		})
	}
}
