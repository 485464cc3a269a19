package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"

	"pcbuilder/internal/domain"
)

const namespace = "pcbuilder"

// Metrics счётчики магазина и HTTP-слоя
type Metrics struct {
	Checkouts     *prometheus.CounterVec
	CheckoutTotal prometheus.Counter
	CartMutations *prometheus.CounterVec
	Requests      *prometheus.CounterVec
	LatencyMS     *prometheus.HistogramVec
}

// NewMetrics регистрирует метрики в reg. Тесты передают свой реестр, чтобы не было повторной регистрации.
func NewMetrics(reg prometheus.Registerer) *Metrics {
	f := promauto.With(reg)
	return &Metrics{
		Checkouts: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkouts_total",
			Help:      "Checkout attempts by outcome.",
		}, []string{"outcome"}),
		CheckoutTotal: f.NewCounter(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "checkout_amount_total",
			Help:      "Sum of committed order totals.",
		}),
		CartMutations: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "cart_mutations_total",
			Help:      "Cart mutations by operation and outcome.",
		}, []string{"op", "outcome"}),
		Requests: f.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests.",
		}, []string{"handler", "status"}),
		LatencyMS: f.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Name:      "http_request_duration_ms",
			Help:      "HTTP request latency in milliseconds.",
			Buckets:   []float64{5, 10, 25, 50, 100, 250, 500, 1000, 2500, 5000},
		}, []string{"handler"}),
	}
}

// Outcome метка результата: ok или код доменной ошибки
func Outcome(err error) string {
	if err == nil {
		return "ok"
	}
	return domain.CodeOf(err)
}

// ObserveCheckout nil-безопасно: сервисы без метрик просто ничего не пишут
func (m *Metrics) ObserveCheckout(err error, amount float64) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(Outcome(err)).Inc()
	if err == nil {
		m.CheckoutTotal.Add(amount)
	}
}

func (m *Metrics) ObserveCartMutation(op string, err error) {
	if m == nil {
		return
	}
	m.CartMutations.WithLabelValues(op, Outcome(err)).Inc()
}
