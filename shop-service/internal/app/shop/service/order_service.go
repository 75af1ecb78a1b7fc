package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"storefront/pkg/logger"
	"storefront/pkg/metrics"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/util"
)

const (
	EventOrderCreated = "ORDER_CREATED"
	EventOrderUpdated = "ORDER_UPDATED"
	EventOrderDeleted = "ORDER_DELETED"
)

// OrderService - движок заказов
// Перед созданием заказа клиент и все товары разрешаются через внешние резолверы;
// статус заказа определяет, можно ли его удалить
type OrderService struct {
	orderRepo repository.OrderRepository
	customers CustomerResolver
	products  ProductResolver
	publisher util.MessagePublisher // nil - события не отправляются
	clock     Clock
}

func NewOrderService(
	orderRepo repository.OrderRepository,
	customers CustomerResolver,
	products ProductResolver,
	publisher util.MessagePublisher,
	clock Clock,
) *OrderService {
	return &OrderService{
		orderRepo: orderRepo,
		customers: customers,
		products:  products,
		publisher: publisher,
		clock:     clock,
	}
}

// CreateOrder создает заказ в статусе EM_ANDAMENTO с текущей датой
// Все проверки выполняются до записи: при любой ошибке заказ не создается
func (s *OrderService) CreateOrder(ctx context.Context, req *entity.CreateOrderRequest) (*entity.Order, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	customer, err := s.customers.ResolveCustomer(ctx, req.CustomerID)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, fmt.Errorf("%w: id %d", ErrCustomerNotFound, req.CustomerID)
		}
		return nil, fmt.Errorf("failed to resolve customer: %w", err)
	}

	items := make([]entity.OrderProduct, 0, len(req.ProductIDs))
	for _, productID := range req.ProductIDs {
		product, err := s.products.ResolveProduct(ctx, productID)
		if err != nil {
			if errors.Is(err, ErrNotFound) {
				return nil, fmt.Errorf("%w: id %d", ErrProductNotFound, productID)
			}
			return nil, fmt.Errorf("failed to resolve product: %w", err)
		}
		items = append(items, entity.OrderProduct{
			ID:    product.ID,
			Name:  product.Name,
			Price: product.Price,
		})
	}

	order := &entity.Order{
		CustomerID: customer.ID,
		Customer:   customer,
		Date:       s.clock.Now(),
		ProductIDs: append([]int64(nil), req.ProductIDs...),
		Products:   items,
		Status:     entity.OrderStatusInProgress,
	}

	if err := s.orderRepo.Create(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	metrics.OrdersCreated.Inc()
	s.publishOrderEvent(ctx, EventOrderCreated, order)

	logger.Info().
		Int64("order_id", order.ID).
		Int64("customer_id", order.CustomerID).
		Int("items", len(order.ProductIDs)).
		Msg("order created")

	return order, nil
}

func (s *OrderService) GetOrder(ctx context.Context, id int64) (*entity.Order, error) {
	order, err := s.orderRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to get order: %w", err)
	}
	return order, nil
}

// UpdateOrderStatus принимает любой из трех статусов без учета регистра и сохраняет его в верхнем регистре
// Переходы между статусами не ограничены
func (s *OrderService) UpdateOrderStatus(ctx context.Context, id int64, status string) (*entity.Order, error) {
	newStatus, err := ParseOrderStatus(status)
	if err != nil {
		return nil, err
	}

	order, err := s.orderRepo.Update(ctx, id, func(o *entity.Order) error {
		o.Status = newStatus
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrOrderNotFound
		}
		return nil, fmt.Errorf("failed to update order status: %w", err)
	}

	s.publishOrderEvent(ctx, EventOrderUpdated, order)

	return order, nil
}

// ListOrders применяет фильтры совместно; пустые фильтры игнорируются
// customer совпадает с ID клиента или с его именем без учета регистра,
// date сравнивается с календарным днем заказа в локации часов
func (s *OrderService) ListOrders(ctx context.Context, filter entity.OrderFilter) ([]entity.Order, error) {
	customer := strings.TrimSpace(filter.Customer)
	status := strings.TrimSpace(filter.Status)

	var day time.Time
	hasDate := strings.TrimSpace(filter.Date) != ""
	if hasDate {
		parsed, err := parseDate(filter.Date)
		if err != nil {
			return nil, err
		}
		day = parsed
	}

	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	result := make([]entity.Order, 0, len(orders))
	for _, o := range orders {
		if customer != "" && !matchesCustomer(o, customer) {
			continue
		}
		if status != "" && !strings.EqualFold(string(o.Status), status) {
			continue
		}
		if hasDate && !entity.DateOf(s.inClockLocation(o.Date)).Equal(day) {
			continue
		}
		result = append(result, o)
	}

	if len(result) == 0 {
		return nil, ErrNoOrders
	}
	return result, nil
}

// CountByStatus возвращает количество заказов в каждом статусе, включая нулевые
func (s *OrderService) CountByStatus(ctx context.Context) (map[string]int, error) {
	orders, err := s.orderRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get orders: %w", err)
	}

	counts := make(map[string]int, len(entity.OrderStatuses))
	for _, status := range entity.OrderStatuses {
		counts[string(status)] = 0
	}
	for _, o := range orders {
		counts[string(o.Status)]++
	}
	return counts, nil
}

// DeleteOrder удаляет только заказ в статусе CANCELADO
func (s *OrderService) DeleteOrder(ctx context.Context, id int64) error {
	order, err := s.orderRepo.DeleteIf(ctx, id, func(o *entity.Order) error {
		if o.Status != entity.OrderStatusCancelled {
			return ErrOrderNotCancelled
		}
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, repository.ErrNotFound):
			return ErrOrderNotFound
		case errors.Is(err, ErrOrderNotCancelled):
			metrics.RecordDeleteRejected("order")
			return ErrOrderNotCancelled
		}
		return fmt.Errorf("failed to delete order: %w", err)
	}

	s.publishOrderEvent(ctx, EventOrderDeleted, order)

	return nil
}

// ParseOrderStatus нормализует регистр и проверяет, что статус известен
func ParseOrderStatus(value string) (entity.OrderStatus, error) {
	normalized := strings.ToUpper(strings.TrimSpace(value))
	if normalized == "" {
		return "", fmt.Errorf("%w: status is required", ErrInvalidStatus)
	}
	for _, status := range entity.OrderStatuses {
		if string(status) == normalized {
			return status, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidStatus, value)
}

func matchesCustomer(o entity.Order, customer string) bool {
	if strconv.FormatInt(o.CustomerID, 10) == customer {
		return true
	}
	return strings.EqualFold(o.Customer.Name, customer)
}

func (s *OrderService) inClockLocation(t time.Time) time.Time {
	return t.In(s.clock.Now().Location())
}

// publishOrderEvent отправляет событие; ошибка отправки только логируется
func (s *OrderService) publishOrderEvent(ctx context.Context, eventType string, order *entity.Order) {
	if s.publisher == nil {
		return
	}

	event := entity.OrderEvent{
		EventType:  eventType,
		OrderID:    order.ID,
		CustomerID: order.CustomerID,
		Status:     order.Status,
		ItemsCount: len(order.ProductIDs),
		Timestamp:  s.clock.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal order event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(order.ID, 10), data); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Int64("order_id", order.ID).
			Msg("failed to publish order event")
	}
}
