package domain

import (
	"math"
	"time"

	"github.com/shopspring/decimal"
)

// MemoryType тип оперативной памяти
type MemoryType string

const (
	MemoryDDR3 MemoryType = "DDR3"
	MemoryDDR4 MemoryType = "DDR4"
	MemoryDDR5 MemoryType = "DDR5"
)

func (m MemoryType) Valid() bool {
	switch m {
	case MemoryDDR3, MemoryDDR4, MemoryDDR5:
		return true
	}
	return false
}

// FormFactor типоразмер платы или корпуса
type FormFactor string

const (
	FormFactorATX      FormFactor = "ATX"
	FormFactorEATX     FormFactor = "E-ATX"
	FormFactorMicroATX FormFactor = "Micro-ATX"
	FormFactorMiniITX  FormFactor = "Mini-ITX"
)

func (f FormFactor) Valid() bool {
	switch f {
	case FormFactorATX, FormFactorEATX, FormFactorMicroATX, FormFactorMiniITX:
		return true
	}
	return false
}

// MaxStock предел остатка: колонка stock_quantity в MySQL имеет тип INT
const MaxStock = math.MaxInt32

// Product представляет комплектующее в каталоге
type Product struct {
	ID                int64           `json:"id" db:"id"`
	Name              string          `json:"name" db:"name"`
	Brand             string          `json:"brand,omitempty" db:"brand"`
	Category          CategorySlug    `json:"category" db:"category"`
	Price             decimal.Decimal `json:"price" db:"price"`
	StockQuantity     int             `json:"stock_quantity" db:"stock_quantity"`
	Socket            string          `json:"socket,omitempty" db:"socket"`
	MemoryType        MemoryType      `json:"memory_type,omitempty" db:"memory_type"`
	FormFactor        FormFactor      `json:"form_factor,omitempty" db:"form_factor"`
	PowerRequirements *int            `json:"power_requirements,omitempty" db:"power_requirements"`
	IsActive          bool            `json:"is_active" db:"is_active"`
	Specs             Specs           `json:"specs" db:"specs"`
	Version           int64           `json:"version" db:"version"`
	CreatedAt         time.Time       `json:"created_at" db:"created_at"`
	UpdatedAt         time.Time       `json:"updated_at" db:"updated_at"`
}

// Power потребляемая мощность (для блоков питания - номинал), 0 если не указана
func (p Product) Power() int {
	if p.PowerRequirements == nil {
		return 0
	}
	return *p.PowerRequirements
}

// PowerOr возвращает мощность или значение по умолчанию для неразмеченных товаров
func (p Product) PowerOr(def int) int {
	if p.PowerRequirements == nil || *p.PowerRequirements == 0 {
		return def
	}
	return *p.PowerRequirements
}

// CartItem позиция в корзине покупателя
type CartItem struct {
	ShopperID int64     `json:"shopper_id" db:"shopper_id"`
	ProductID int64     `json:"product_id" db:"product_id"`
	Quantity  int       `json:"quantity" db:"quantity"`
	AddedAt   time.Time `json:"added_at" db:"added_at"`
}

// CartLine строка корзины с живой ценой и остатком
type CartLine struct {
	ProductID     int64           `json:"product_id"`
	Name          string          `json:"name"`
	Price         decimal.Decimal `json:"price"`
	StockQuantity int             `json:"stock_quantity"`
	Quantity      int             `json:"quantity"`
	ItemTotal     decimal.Decimal `json:"item_total"`
}

// CartView представление корзины
type CartView struct {
	Items       []CartLine      `json:"items"`
	TotalItems  int             `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// OrderStatus тип статуса заказа
type OrderStatus string

const (
	OrderStatusCommitted OrderStatus = "committed"
)

// PaymentCash способ оплаты по умолчанию
const PaymentCash = "cash"

// OrderItem позиция в заказе
type OrderItem struct {
	OrderID      int64           `json:"order_id" db:"order_id"`
	ProductID    int64           `json:"product_id" db:"product_id"`
	ProductName  string          `json:"product_name" db:"product_name"`
	Quantity     int             `json:"quantity" db:"quantity"`
	PriceAtOrder decimal.Decimal `json:"price_at_order" db:"price_at_order"`
}

// Subtotal quantity * price_at_order
func (i OrderItem) Subtotal() decimal.Decimal {
	return i.PriceAtOrder.Mul(decimal.NewFromInt(int64(i.Quantity)))
}

// Order сущность заказа
type Order struct {
	ID              int64           `json:"id" db:"id"`
	ShopperID       int64           `json:"shopper_id" db:"shopper_id"`
	TotalAmount     decimal.Decimal `json:"total_amount" db:"total_amount"`
	ShippingAddress string          `json:"shipping_address" db:"shipping_address"`
	PaymentMethod   string          `json:"payment_method" db:"payment_method"`
	Notes           string          `json:"notes,omitempty" db:"notes"`
	Status          OrderStatus     `json:"status" db:"status"`
	Items           []OrderItem     `json:"items"`
	CreatedAt       time.Time       `json:"created_at" db:"created_at"`
}

// ItemsTotal сумма по позициям заказа
func (o Order) ItemsTotal() decimal.Decimal {
	total := decimal.Zero
	for _, it := range o.Items {
		total = total.Add(it.Subtotal())
	}
	return total
}
