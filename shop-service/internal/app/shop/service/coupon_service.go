package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"storefront/pkg/metrics"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
)

// CouponService управляет купонами
// Флаг active не хранится и вычисляется по часам при каждом ответе
type CouponService struct {
	couponRepo repository.CouponRepository
	clock      Clock
}

func NewCouponService(couponRepo repository.CouponRepository, clock Clock) *CouponService {
	return &CouponService{
		couponRepo: couponRepo,
		clock:      clock,
	}
}

func (s *CouponService) CreateCoupon(ctx context.Context, req *entity.CreateCouponRequest) (*entity.CouponResponse, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	expiry, err := parseDate(req.Expiry)
	if err != nil {
		return nil, err
	}

	coupon := &entity.Coupon{
		Code:        strings.TrimSpace(req.Code),
		Value:       *req.Value,
		MinPurchase: *req.MinPurchase,
		Expiry:      expiry,
		CreatedAt:   s.clock.Now(),
	}

	if err := s.couponRepo.Create(ctx, coupon); err != nil {
		return nil, fmt.Errorf("failed to create coupon: %w", err)
	}

	return s.toResponse(coupon, s.clock.Now()), nil
}

func (s *CouponService) GetCoupon(ctx context.Context, id int64) (*entity.CouponResponse, error) {
	coupon, err := s.couponRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to get coupon: %w", err)
	}
	return s.toResponse(coupon, s.clock.Now()), nil
}

// ListActiveCoupons возвращает купоны со сроком строго после сегодняшнего дня
func (s *CouponService) ListActiveCoupons(ctx context.Context) ([]entity.CouponResponse, error) {
	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get coupons: %w", err)
	}

	now := s.clock.Now()
	result := make([]entity.CouponResponse, 0, len(coupons))
	for i := range coupons {
		if coupons[i].ActiveOn(now) {
			result = append(result, *s.toResponse(&coupons[i], now))
		}
	}

	if len(result) == 0 {
		return nil, ErrNoActiveCoupons
	}
	return result, nil
}

// CountActive - число действующих на сегодня купонов
func (s *CouponService) CountActive(ctx context.Context) (int, error) {
	coupons, err := s.couponRepo.GetAll(ctx)
	if err != nil {
		return 0, fmt.Errorf("failed to get coupons: %w", err)
	}

	now := s.clock.Now()
	count := 0
	for i := range coupons {
		if coupons[i].ActiveOn(now) {
			count++
		}
	}
	return count, nil
}

// UpdateCoupon применяет только корректные переданные поля, остальные молча пропускает
func (s *CouponService) UpdateCoupon(ctx context.Context, id int64, req *entity.UpdateCouponRequest) (*entity.CouponResponse, error) {
	coupon, err := s.couponRepo.Update(ctx, id, func(c *entity.Coupon) error {
		if req.Code != nil && strings.TrimSpace(*req.Code) != "" {
			c.Code = strings.TrimSpace(*req.Code)
		}
		if req.Value != nil && *req.Value > 0 {
			c.Value = *req.Value
		}
		if req.MinPurchase != nil && *req.MinPurchase >= 0 {
			c.MinPurchase = *req.MinPurchase
		}
		if req.Expiry != nil {
			if expiry, err := parseDate(*req.Expiry); err == nil {
				c.Expiry = expiry
			}
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrCouponNotFound
		}
		return nil, fmt.Errorf("failed to update coupon: %w", err)
	}

	return s.toResponse(coupon, s.clock.Now()), nil
}

// DeleteCoupon удаляет только купон, срок которого сегодня или раньше
func (s *CouponService) DeleteCoupon(ctx context.Context, id int64) error {
	now := s.clock.Now()

	err := s.couponRepo.DeleteIf(ctx, id, func(c *entity.Coupon) error {
		if c.ActiveOn(now) {
			return ErrCouponStillActive
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrCouponNotFound
		case errors.Is(err, ErrCouponStillActive):
			metrics.RecordDeleteRejected("coupon")
			return ErrCouponStillActive
		}
		return fmt.Errorf("failed to delete coupon: %w", err)
	}

	return nil
}

func (s *CouponService) toResponse(c *entity.Coupon, now time.Time) *entity.CouponResponse {
	return &entity.CouponResponse{
		ID:          c.ID,
		Code:        c.Code,
		Value:       c.Value,
		MinPurchase: c.MinPurchase,
		Expiry:      c.Expiry.Format(entity.DateLayout),
		Active:      c.ActiveOn(now),
		CreatedAt:   c.CreatedAt,
	}
}

// parseDate разбирает календарную дату YYYY-MM-DD в полночь UTC
func parseDate(value string) (time.Time, error) {
	date, err := time.Parse(entity.DateLayout, strings.TrimSpace(value))
	if err != nil {
		return time.Time{}, ErrInvalidDate
	}
	return date, nil
}
