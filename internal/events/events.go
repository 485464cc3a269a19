// Package events публикует события магазина после фиксации транзакции.
package events

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const TypeOrderCommitted = "order.committed"

// OrderLine позиция зафиксированного заказа
type OrderLine struct {
	ProductID    int64           `json:"product_id"`
	Quantity     int             `json:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order"`
}

// OrderCommitted событие успешного оформления заказа
type OrderCommitted struct {
	EventID     string          `json:"event_id"`
	Type        string          `json:"type"`
	OrderID     int64           `json:"order_id"`
	ShopperID   int64           `json:"shopper_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
	Lines       []OrderLine     `json:"lines"`
	CreatedAt   time.Time       `json:"created_at"`
}

func NewOrderCommitted(orderID, shopperID int64, total decimal.Decimal, lines []OrderLine) OrderCommitted {
	return OrderCommitted{
		EventID:     uuid.NewString(),
		Type:        TypeOrderCommitted,
		OrderID:     orderID,
		ShopperID:   shopperID,
		TotalAmount: total,
		Lines:       lines,
		CreatedAt:   time.Now().UTC(),
	}
}

// Publisher доставка событий. Ошибка публикации не отменяет заказ.
type Publisher interface {
	PublishOrderCommitted(ctx context.Context, e OrderCommitted) error
	Close() error
}

// NopPublisher используется, когда брокеры не настроены
type NopPublisher struct{}

func (NopPublisher) PublishOrderCommitted(context.Context, OrderCommitted) error { return nil }
func (NopPublisher) Close() error { return nil }
