package service

import (
	"context"
	"fmt"

	"storefront/pkg/metrics"
)

// StatsService пересчитывает gauge-метрики магазина по текущему состоянию хранилищ
type StatsService struct {
	orders  *OrderService
	coupons *CouponService
}

type StatsServiceInterface interface {
	Refresh(ctx context.Context) error
}

func NewStatsService(orders *OrderService, coupons *CouponService) *StatsService {
	return &StatsService{orders: orders, coupons: coupons}
}

// Refresh обновляет orders_by_status и coupons_active
func (s *StatsService) Refresh(ctx context.Context) error {
	counts, err := s.orders.CountByStatus(ctx)
	if err != nil {
		return fmt.Errorf("failed to count orders: %w", err)
	}

	active, err := s.coupons.CountActive(ctx)
	if err != nil {
		return fmt.Errorf("failed to count active coupons: %w", err)
	}

	metrics.SetOrdersByStatus(counts)
	metrics.CouponsActive.Set(float64(active))
	return nil
}
