package domain

import (
	"fmt"

	"github.com/pkg/errors"
)

// Kind класс ошибки, по которому транспорт выбирает статус ответа
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindAuthorization Kind = "authorization"
)

// Error доменная ошибка с кодом
type Error struct {
	Kind    Kind
	Code    string
	Message string
}

func (e *Error) Error() string { return e.Message }

// Is сравнивает по коду, чтобы Invalidf(...) совпадала с ErrInvalidInput
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code
}

var (
	ErrInvalidInput           = &Error{Kind: KindValidation, Code: "invalid_input", Message: "invalid input"}
	ErrInvalidQuantity        = &Error{Kind: KindValidation, Code: "invalid_quantity", Message: "quantity must be at least 1"}
	ErrMissingShippingAddress = &Error{Kind: KindValidation, Code: "missing_shipping_address", Message: "shipping address is required"}
	ErrUnknownSlot            = &Error{Kind: KindValidation, Code: "unknown_slot", Message: "unknown build slot"}
	ErrIncompatibleBuild      = &Error{Kind: KindValidation, Code: "incompatible_build", Message: "build has compatibility errors"}

	ErrProductNotFound = &Error{Kind: KindNotFound, Code: "product_not_found", Message: "product not found"}
	ErrLineNotFound    = &Error{Kind: KindNotFound, Code: "line_not_found", Message: "cart line not found"}
	ErrOrderNotFound   = &Error{Kind: KindNotFound, Code: "order_not_found", Message: "order not found"}

	ErrEmptyCart         = &Error{Kind: KindConflict, Code: "empty_cart", Message: "cart is empty"}
	ErrInsufficientStock = &Error{Kind: KindConflict, Code: "insufficient_stock", Message: "insufficient stock"}
	ErrVersionConflict   = &Error{Kind: KindConflict, Code: "version_conflict", Message: "product was modified concurrently"}
	ErrTxAborted         = &Error{Kind: KindConflict, Code: "tx_aborted", Message: "concurrent update aborted the operation, retry"}

	ErrUnauthorized = &Error{Kind: KindAuthorization, Code: "unauthorized", Message: "shopper identity is required"}
)

// Invalidf ошибка валидации с произвольным сообщением
func Invalidf(format string, args ...any) error {
	return &Error{Kind: KindValidation, Code: ErrInvalidInput.Code, Message: fmt.Sprintf(format, args...)}
}

// InsufficientStockError нехватка товара на складе
type InsufficientStockError struct {
	ProductID   int64
	ProductName string
	Available   int
	Requested   int
}

func (e *InsufficientStockError) Error() string {
	if e.ProductName != "" {
		return fmt.Sprintf("product %q is not available in requested quantity: %d in stock", e.ProductName, e.Available)
	}
	return fmt.Sprintf("only %d in stock", e.Available)
}

func (e *InsufficientStockError) Is(target error) bool { return target == ErrInsufficientStock }

func (e *InsufficientStockError) Kind() Kind { return KindConflict }

// KindOf определяет класс ошибки; пустая строка для инфраструктурных ошибок
func KindOf(err error) Kind {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return se.Kind()
	}
	return ""
}

// CodeOf машинный код ошибки для ответа API
func CodeOf(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Code
	}
	var se *InsufficientStockError
	if errors.As(err, &se) {
		return ErrInsufficientStock.Code
	}
	return "internal"
}
