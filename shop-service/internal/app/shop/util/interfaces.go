package util

import (
	"context"

	"storefront/shop-service/internal/app/shop/entity"
)

// CategoryCache - кеш списка категорий
// GetCategories возвращает nil, nil при промахе
type CategoryCache interface {
	SetCategories(ctx context.Context, categories []entity.Category) error
	GetCategories(ctx context.Context) ([]entity.Category, error)
	DeleteCategories(ctx context.Context) error
	Close() error
}

// MessagePublisher интерфейс для отправки событий в очередь (Kafka)
type MessagePublisher interface {
	PublishMessage(ctx context.Context, key string, value []byte) error
	Close() error
}
