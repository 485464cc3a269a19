package service

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/events"
	"pcbuilder/internal/observability"
	"pcbuilder/internal/repository"
)

// CheckoutRequest данные оформления
type CheckoutRequest struct {
	ShippingAddress string
	PaymentMethod   string
	Notes           string
}

// CheckoutResult результат успешного оформления
type CheckoutResult struct {
	OrderID     int64           `json:"order_id"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

// CheckoutService превращает корзину в заказ одной транзакцией
type CheckoutService struct {
	carts     repository.CartRepository
	orders    repository.OrderRepository
	tx        repository.TxManager
	ledger    *StockLedger
	publisher events.Publisher
	metrics   *observability.Metrics
	log       logrus.FieldLogger
}

func NewCheckoutService(
	carts repository.CartRepository,
	orders repository.OrderRepository,
	tx repository.TxManager,
	ledger *StockLedger,
	publisher events.Publisher,
	metrics *observability.Metrics,
	log logrus.FieldLogger,
) *CheckoutService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	return &CheckoutService{carts: carts, orders: orders, tx: tx, ledger: ledger, publisher: publisher, metrics: metrics, log: log}
}

// Commit списывает остатки, создаёт заказ и очищает корзину. Любая ошибка откатывает всё.
func (s *CheckoutService) Commit(ctx context.Context, shopperID int64, req CheckoutRequest) (*CheckoutResult, error) {
	ctx, span := observability.Tracer().Start(ctx, "checkout.commit")
	defer span.End()
	span.SetAttributes(attribute.Int64("shopper.id", shopperID))

	res, err := s.commit(ctx, shopperID, req)
	log := s.log.WithField("shopper_id", shopperID)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, domain.CodeOf(err))
		s.metrics.ObserveCheckout(err, 0)
		log.WithField("code", domain.CodeOf(err)).WithError(err).Warn("checkout rejected")
		return nil, err
	}
	total, _ := res.TotalAmount.Float64()
	s.metrics.ObserveCheckout(nil, total)
	span.SetAttributes(attribute.Int64("order.id", res.OrderID))
	log.WithFields(logrus.Fields{"order_id": res.OrderID, "total_amount": res.TotalAmount.String()}).Info("order committed")
	return res, nil
}

func (s *CheckoutService) commit(ctx context.Context, shopperID int64, req CheckoutRequest) (*CheckoutResult, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	address := strings.TrimSpace(req.ShippingAddress)
	if address == "" {
		return nil, domain.ErrMissingShippingAddress
	}
	payment := strings.TrimSpace(req.PaymentMethod)
	if payment == "" {
		payment = domain.PaymentCash
	}

	var order domain.Order
	err := s.tx.WithTransaction(ctx, func(ctx context.Context) error {
		lines, err := s.carts.List(ctx, shopperID)
		if err != nil {
			return err
		}
		if len(lines) == 0 {
			return domain.ErrEmptyCart
		}
		reqs := make([]StockRequest, len(lines))
		qty := make(map[int64]int, len(lines))
		for i, l := range lines {
			reqs[i] = StockRequest{ProductID: l.ProductID, Quantity: l.Quantity}
			qty[l.ProductID] += l.Quantity
		}
		// итог считается по ценам заблокированных строк
		locked, err := s.ledger.Reserve(ctx, reqs)
		if err != nil {
			return err
		}

		order = domain.Order{
			ShopperID:       shopperID,
			ShippingAddress: address,
			PaymentMethod:   payment,
			Notes:           strings.TrimSpace(req.Notes),
			Status:          domain.OrderStatusCommitted,
			Items:           make([]domain.OrderItem, 0, len(locked)),
		}
		for _, p := range locked {
			order.Items = append(order.Items, domain.OrderItem{
				ProductID:    p.ID,
				ProductName:  p.Name,
				Quantity:     qty[p.ID],
				PriceAtOrder: p.Price,
			})
		}
		order.TotalAmount = order.ItemsTotal()
		if err := s.orders.Create(ctx, &order); err != nil {
			return err
		}
		return s.carts.Clear(ctx, shopperID)
	})
	if err != nil {
		return nil, err
	}

	s.publish(ctx, order)
	return &CheckoutResult{OrderID: order.ID, TotalAmount: order.TotalAmount}, nil
}

// publish после фиксации; ошибка доставки только логируется
func (s *CheckoutService) publish(ctx context.Context, o domain.Order) {
	lines := make([]events.OrderLine, len(o.Items))
	for i, it := range o.Items {
		lines[i] = events.OrderLine{ProductID: it.ProductID, Quantity: it.Quantity, PriceAtOrder: it.PriceAtOrder}
	}
	e := events.NewOrderCommitted(o.ID, o.ShopperID, o.TotalAmount, lines)
	if err := s.publisher.PublishOrderCommitted(ctx, e); err != nil {
		s.log.WithFields(logrus.Fields{"order_id": o.ID, "event_id": e.EventID}).WithError(err).Error("publish order committed")
	}
}

// GetOrder заказ покупателя; чужой заказ неотличим от отсутствующего
func (s *CheckoutService) GetOrder(ctx context.Context, shopperID, id int64) (*domain.Order, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	if id <= 0 {
		return nil, domain.ErrOrderNotFound
	}
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		return nil, translate(err, domain.ErrOrderNotFound)
	}
	if o.ShopperID != shopperID {
		return nil, domain.ErrOrderNotFound
	}
	return o, nil
}

// ListOrders заказы покупателя, новые первыми
func (s *CheckoutService) ListOrders(ctx context.Context, shopperID int64) ([]domain.Order, error) {
	if err := requireShopper(shopperID); err != nil {
		return nil, err
	}
	return s.orders.ListByShopper(ctx, shopperID)
}
