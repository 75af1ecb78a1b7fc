package entity

import (
	"time"
)

// DateLayout - формат календарной даты (ISO 8601) для купонов и фильтров заказов
const DateLayout = "2006-01-02"

// Category представляет категорию товаров
// Связанные товары хранятся в реестре категорий, а не в самой записи
type Category struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// Product представляет товар в каталоге
type Product struct {
	ID          int64     `json:"id"`
	Name        string    `json:"name"`
	Price       float64   `json:"price"`
	Description string    `json:"description,omitempty"`
	Stock       int       `json:"stock"`
	CategoryID  *int64    `json:"category_id,omitempty"` // Необязательная ссылка на категорию
	CreatedAt   time.Time `json:"created_at"`
}

// Coupon - скидочный купон
// Активность не хранится: она вычисляется из Expiry и текущей даты при каждом чтении
type Coupon struct {
	ID          int64     `json:"id"`
	Code        string    `json:"code"`
	Value       float64   `json:"value"`
	MinPurchase float64   `json:"min_purchase"`
	Expiry      time.Time `json:"-"` // Полночь UTC календарного дня окончания
	CreatedAt   time.Time `json:"created_at"`
}

// ActiveOn сообщает, действует ли купон в указанный день: срок строго после today
func (c *Coupon) ActiveOn(today time.Time) bool {
	return c.Expiry.After(DateOf(today))
}

// OrderStatus представляет статусы заказа
type OrderStatus string

const (
	OrderStatusInProgress OrderStatus = "EM_ANDAMENTO" // Начальный статус
	OrderStatusDelivered  OrderStatus = "ENTREGUE"
	OrderStatusCancelled  OrderStatus = "CANCELADO" // Только такие заказы можно удалять
)

// OrderStatuses - все допустимые статусы
var OrderStatuses = []OrderStatus{
	OrderStatusInProgress,
	OrderStatusDelivered,
	OrderStatusCancelled,
}

// Order представляет заказ
// Заказ владеет статусом и датой, а на клиента и товары только ссылается
type Order struct {
	ID         int64          `json:"id"`
	CustomerID int64          `json:"customer_id"`
	Customer   Customer       `json:"customer"` // Снимок клиента на момент создания, без учетных данных
	Date       time.Time      `json:"date"`
	ProductIDs []int64        `json:"product_ids"`
	Products   []OrderProduct `json:"products"`
	Status     OrderStatus    `json:"status"`
}

// OrderProduct - снимок товара в заказе
type OrderProduct struct {
	ID    int64   `json:"id"`
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// Role пользователя
type Role string

const (
	RoleUser  Role = "USER"
	RoleAdmin Role = "ADMIN"
)

// User представляет пользователя (клиента) магазина
type User struct {
	ID           int64     `json:"id"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	PasswordHash string    `json:"-"` // не возвращаем в JSON
	Role         Role      `json:"role"`
	CreatedAt    time.Time `json:"created_at"`
}

// Customer - представление пользователя, которое можно встраивать в ответы
type Customer struct {
	ID    int64  `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

// ToCustomer отбрасывает пароль и служебные поля
func (u *User) ToCustomer() Customer {
	return Customer{
		ID:    u.ID,
		Name:  u.Name,
		Email: u.Email,
	}
}

// ProductEvent - событие изменения товара для Kafka
type ProductEvent struct {
	EventType  string    `json:"event_type"` // PRODUCT_CREATED, PRODUCT_UPDATED, PRODUCT_DELETED
	ProductID  int64     `json:"product_id"`
	Name       string    `json:"name"`
	Price      float64   `json:"price"`
	CategoryID *int64    `json:"category_id,omitempty"`
	Timestamp  time.Time `json:"timestamp"`
}

// OrderEvent - событие изменения заказа для Kafka
type OrderEvent struct {
	EventType  string      `json:"event_type"` // ORDER_CREATED, ORDER_UPDATED, ORDER_DELETED
	OrderID    int64       `json:"order_id"`
	CustomerID int64       `json:"customer_id"`
	Status     OrderStatus `json:"status"`
	ItemsCount int         `json:"items_count"`
	Timestamp  time.Time   `json:"timestamp"`
}

// DateOf отбрасывает время суток, оставляя календарный день в локации t, как полночь UTC
func DateOf(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
