package handler

import (
	"net/http"

	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/service"

	"github.com/gin-gonic/gin"
)

// CouponHandler обрабатывает HTTP запросы купонов
type CouponHandler struct {
	couponService service.CouponServiceInterface
}

func NewCouponHandler(couponService service.CouponServiceInterface) *CouponHandler {
	return &CouponHandler{couponService: couponService}
}

func (h *CouponHandler) CreateCoupon(c *gin.Context) {
	var req entity.CreateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := h.couponService.CreateCoupon(c.Request.Context(), &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, coupon)
}

func (h *CouponHandler) GetCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	coupon, err := h.couponService.GetCoupon(c.Request.Context(), id)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, coupon)
}

// ListActiveCoupons обрабатывает GET /api/v1/coupons: только действующие купоны
func (h *CouponHandler) ListActiveCoupons(c *gin.Context) {
	coupons, err := h.couponService.ListActiveCoupons(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.CouponListResponse{Coupons: coupons, Total: len(coupons)})
}

func (h *CouponHandler) UpdateCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req entity.UpdateCouponRequest
	if !bindJSON(c, &req) {
		return
	}

	coupon, err := h.couponService.UpdateCoupon(c.Request.Context(), id, &req)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, coupon)
}

func (h *CouponHandler) DeleteCoupon(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.couponService.DeleteCoupon(c.Request.Context(), id); err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.SuccessResponse{Message: "Coupon deleted successfully"})
}
