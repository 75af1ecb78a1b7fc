package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"

	"storefront/pkg/logger"
	"storefront/shop-service/internal/app/shop/entity"
	"storefront/shop-service/internal/app/shop/repository"
	"storefront/shop-service/internal/app/shop/util"
)

const (
	EventProductCreated = "PRODUCT_CREATED"
	EventProductUpdated = "PRODUCT_UPDATED"
	EventProductDeleted = "PRODUCT_DELETED"
)

// ProductService управляет каталогом товаров
// Связь товар -> категория меняется только через LinkProduct/UnlinkProduct реестра категорий
type ProductService struct {
	// mu держится на записи товара вместе с изменением его связи с категорией
	mu sync.Mutex

	productRepo  repository.ProductRepository
	categoryRepo repository.CategoryRepository
	publisher    util.MessagePublisher // nil - события не отправляются
	clock        Clock
}

func NewProductService(
	productRepo repository.ProductRepository,
	categoryRepo repository.CategoryRepository,
	publisher util.MessagePublisher,
	clock Clock,
) *ProductService {
	return &ProductService{
		productRepo:  productRepo,
		categoryRepo: categoryRepo,
		publisher:    publisher,
		clock:        clock,
	}
}

// CreateProduct создает товар и регистрирует связь с категорией, если она указана
// Существование категории не проверяется: для неизвестной категории связь не создается
func (s *ProductService) CreateProduct(ctx context.Context, req *entity.CreateProductRequest) (*entity.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	product := &entity.Product{
		Name:        strings.TrimSpace(req.Name),
		Price:       *req.Price,
		Description: req.Description,
		Stock:       req.Stock,
		CategoryID:  req.CategoryID,
		CreatedAt:   s.clock.Now(),
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.productRepo.Create(ctx, product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	if product.CategoryID != nil {
		if err := s.categoryRepo.LinkProduct(ctx, *product.CategoryID, product.ID); err != nil {
			return nil, fmt.Errorf("failed to link product to category: %w", err)
		}
	}

	s.publishProductEvent(ctx, EventProductCreated, product)

	return product, nil
}

func (s *ProductService) GetProduct(ctx context.Context, id int64) (*entity.Product, error) {
	product, err := s.productRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to get product: %w", err)
	}
	return product, nil
}

// ResolveProduct реализует ProductResolver для движка заказов
func (s *ProductService) ResolveProduct(ctx context.Context, id int64) (*entity.Product, error) {
	return s.GetProduct(ctx, id)
}

// GetAllProducts возвращает все товары; пустой каталог не считается ошибкой
func (s *ProductService) GetAllProducts(ctx context.Context) ([]entity.Product, error) {
	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to get products: %w", err)
	}
	return products, nil
}

// UpdateProduct применяет только переданные поля
// При смене категории связь переносится со старой категории на новую
func (s *ProductService) UpdateProduct(ctx context.Context, id int64, req *entity.UpdateProductRequest) (*entity.Product, error) {
	if err := validateStruct(req); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var previousCategory *int64
	product, err := s.productRepo.Update(ctx, id, func(p *entity.Product) error {
		previousCategory = p.CategoryID
		if req.Name != nil {
			p.Name = strings.TrimSpace(*req.Name)
		}
		if req.Price != nil {
			p.Price = *req.Price
		}
		if req.Description != nil {
			p.Description = *req.Description
		}
		if req.Stock != nil {
			p.Stock = *req.Stock
		}
		if req.CategoryID != nil {
			categoryID := *req.CategoryID
			p.CategoryID = &categoryID
		}
		return nil
	})
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrProductNotFound
		}
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	if categoryChanged(previousCategory, product.CategoryID) {
		if previousCategory != nil {
			if err := s.categoryRepo.UnlinkProduct(ctx, *previousCategory, product.ID); err != nil {
				return nil, fmt.Errorf("failed to unlink product from category: %w", err)
			}
		}
		if err := s.categoryRepo.LinkProduct(ctx, *product.CategoryID, product.ID); err != nil {
			return nil, fmt.Errorf("failed to link product to category: %w", err)
		}
	}

	s.publishProductEvent(ctx, EventProductUpdated, product)

	return product, nil
}

// DeleteProduct удаляет товар и снимает его связь с категорией
func (s *ProductService) DeleteProduct(ctx context.Context, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	product, err := s.productRepo.Delete(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrProductNotFound
		}
		return fmt.Errorf("failed to delete product: %w", err)
	}

	if product.CategoryID != nil {
		if err := s.categoryRepo.UnlinkProduct(ctx, *product.CategoryID, product.ID); err != nil {
			return fmt.Errorf("failed to unlink product from category: %w", err)
		}
	}

	s.publishProductEvent(ctx, EventProductDeleted, product)

	return nil
}

// SearchByName - поиск подстроки в названии без учета регистра; пустой результат не ошибка
func (s *ProductService) SearchByName(ctx context.Context, substr string) ([]entity.Product, error) {
	needle := strings.ToLower(substr)

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	result := make([]entity.Product, 0)
	for _, p := range products {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			result = append(result, p)
		}
	}
	return result, nil
}

// SearchByCategory - поиск подстроки в названии категории товара без учета регистра
// Товары без категории или с неизвестной категорией не попадают в результат
func (s *ProductService) SearchByCategory(ctx context.Context, substr string) ([]entity.Product, error) {
	needle := strings.ToLower(substr)

	categories, err := s.categoryRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}
	matching := make(map[int64]struct{})
	for _, c := range categories {
		if strings.Contains(strings.ToLower(c.Name), needle) {
			matching[c.ID] = struct{}{}
		}
	}

	products, err := s.productRepo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to search products: %w", err)
	}

	result := make([]entity.Product, 0)
	for _, p := range products {
		if p.CategoryID == nil {
			continue
		}
		if _, ok := matching[*p.CategoryID]; ok {
			result = append(result, p)
		}
	}
	return result, nil
}

// publishProductEvent отправляет событие; ошибка отправки только логируется
func (s *ProductService) publishProductEvent(ctx context.Context, eventType string, product *entity.Product) {
	if s.publisher == nil {
		return
	}

	event := entity.ProductEvent{
		EventType:  eventType,
		ProductID:  product.ID,
		Name:       product.Name,
		Price:      product.Price,
		CategoryID: product.CategoryID,
		Timestamp:  s.clock.Now(),
	}

	data, err := json.Marshal(event)
	if err != nil {
		logger.Error().Err(err).Str("event_type", eventType).Msg("failed to marshal product event")
		return
	}

	if err := s.publisher.PublishMessage(ctx, strconv.FormatInt(product.ID, 10), data); err != nil {
		logger.Warn().Err(err).
			Str("event_type", eventType).
			Int64("product_id", product.ID).
			Msg("failed to publish product event")
	}
}

func categoryChanged(before, after *int64) bool {
	if after == nil {
		return false
	}
	return before == nil || *before != *after
}
