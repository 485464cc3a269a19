package httpapi

import (
	"bytes"
	"encoding/json"
	"io"
	"math"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"

	"pcbuilder/internal/observability"
	"pcbuilder/internal/repository"
	"pcbuilder/internal/service"
)

func setupServer(t *testing.T) *Server {
	t.Helper()
	store := repository.NewMemoryStore()
	tx := repository.NewMemoryTx(store)
	cartRepo := repository.NewMemoryCarts(store)
	log := logrus.New()
	log.SetOutput(io.Discard)
	reg := prometheus.NewRegistry()
	metrics := observability.NewMetrics(reg)

	ledger := service.NewStockLedger(store, tx)
	products := service.NewProductService(store, ledger)
	carts := service.NewCartService(store, cartRepo, tx, metrics)
	return NewServer(Services{
		Products:     products,
		Carts:        carts,
		Checkout:     service.NewCheckoutService(cartRepo, repository.NewMemoryOrders(store), tx, ledger, nil, metrics, log),
		Configurator: service.NewConfiguratorService(store, products, carts, repository.NewMemoryBuilds(store), tx),
	}, log, metrics, reg)
}

// doJSON shopper = 0 отправляет запрос без X-Shopper-ID
func doJSON(t *testing.T, s *Server, method, path string, shopper int64, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatal(err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if shopper != 0 {
		req.Header.Set(ShopperHeader, strconv.FormatInt(shopper, 10))
	}
	w := httptest.NewRecorder()
	s.Engine().ServeHTTP(w, req)
	return w
}

func decode[T any](t *testing.T, w *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.Unmarshal(w.Body.Bytes(), &v); err != nil {
		t.Fatalf("decode %q: %v", w.Body.String(), err)
	}
	return v
}

func createProduct(t *testing.T, s *Server, body map[string]any) int64 {
	t.Helper()
	w := doJSON(t, s, http.MethodPost, "/api/v1/admin/products", 0, body)
	if w.Code != http.StatusCreated {
		t.Fatalf("create product %v: %s", w.Code, w.Body.String())
	}
	return decode[struct {
		ID int64 `json:"id"`
	}](t, w).ID
}

func TestProductFlow(t *testing.T) {
	s := setupServer(t)
	// create
	id := createProduct(t, s, map[string]any{
		"name": "Samsung 990 Pro", "category": "storage", "price": "129.99", "stock_quantity": 5,
		"specs": map[string]any{"storage": map[string]any{"capacity_gb": 1000, "interface": "NVMe"}},
	})
	path := "/api/v1/products/" + strconv.FormatInt(id, 10)
	admin := "/api/v1/admin/products/" + strconv.FormatInt(id, 10)

	// get
	w := doJSON(t, s, http.MethodGet, path, 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get code %v", w.Code)
	}
	// update не меняет остаток
	w = doJSON(t, s, http.MethodPut, admin, 0, map[string]any{
		"name": "Samsung 990 Pro 1TB", "category": "storage", "price": 119, "stock_quantity": 100,
	})
	if w.Code != http.StatusOK {
		t.Fatalf("update code %v: %s", w.Code, w.Body.String())
	}
	if got := decode[struct {
		Stock int `json:"stock_quantity"`
	}](t, w).Stock; got != 5 {
		t.Fatalf("update changed stock to %d", got)
	}
	// restock
	w = doJSON(t, s, http.MethodPost, admin+"/restock", 0, map[string]any{"quantity": 3})
	if w.Code != http.StatusOK {
		t.Fatalf("restock code %v", w.Code)
	}
	if got := decode[struct {
		Stock int `json:"stock_quantity"`
	}](t, w).Stock; got != 8 {
		t.Fatalf("stock after restock %d", got)
	}
	// list
	w = doJSON(t, s, http.MethodGet, "/api/v1/products?q=990&category=storage&max_price=200", 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list code %v", w.Code)
	}
	if n := len(decode[[]map[string]any](t, w)); n != 1 {
		t.Fatalf("list returned %d products", n)
	}
	// deactivate
	w = doJSON(t, s, http.MethodDelete, admin, 0, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("deactivate code %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, path, 0, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("inactive product visible: %v", w.Code)
	}
}

func TestCategories(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/categories", 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("categories code %v", w.Code)
	}
	cats := decode[[]struct {
		Slug         string          `json:"slug"`
		Capabilities map[string]bool `json:"capabilities"`
	}](t, w)
	if len(cats) != 8 {
		t.Fatalf("expected 8 categories, got %d", len(cats))
	}
	if cats[0].Slug != "processors" || !cats[0].Capabilities["supports_socket"] {
		t.Fatalf("unexpected first category %+v", cats[0])
	}
}

func TestCartAndCheckoutFlow(t *testing.T) {
	s := setupServer(t)
	const shopper = 42
	id := createProduct(t, s, map[string]any{"name": "RTX 4070", "category": "graphics-cards", "price": 50, "stock_quantity": 5})

	w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", shopper, map[string]any{"product_id": id, "quantity": 2})
	if w.Code != http.StatusOK {
		t.Fatalf("add code %v: %s", w.Code, w.Body.String())
	}
	// сверх остатка: 409 с доступным количеством, строка не меняется
	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", shopper, map[string]any{"product_id": id, "quantity": 4})
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %v", w.Code)
	}
	e := decode[errorResponse](t, w)
	if e.Code != "insufficient_stock" || e.Available == nil || *e.Available != 5 {
		t.Fatalf("unexpected error body %s", w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/cart/items", shopper, map[string]any{"product_id": id, "quantity": int64(math.MaxInt64)})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400 for huge quantity, got %v: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodGet, "/api/v1/cart", shopper, nil)
	view := decode[struct {
		TotalItems  int    `json:"total_items"`
		TotalAmount string `json:"total_amount"`
	}](t, w)
	if view.TotalItems != 1 || view.TotalAmount != "100" {
		t.Fatalf("unexpected cart %+v", view)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", shopper, map[string]any{"shipping_address": " "})
	if w.Code != http.StatusBadRequest || decode[errorResponse](t, w).Code != "missing_shipping_address" {
		t.Fatalf("expected missing address, got %v %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", shopper, map[string]any{"shipping_address": "Kyiv", "payment_method": "card"})
	if w.Code != http.StatusCreated {
		t.Fatalf("checkout code %v: %s", w.Code, w.Body.String())
	}
	res := decode[struct {
		OrderID     int64  `json:"order_id"`
		TotalAmount string `json:"total_amount"`
	}](t, w)
	if res.TotalAmount != "100" {
		t.Fatalf("total %s", res.TotalAmount)
	}

	orderPath := "/api/v1/orders/" + strconv.FormatInt(res.OrderID, 10)
	if w = doJSON(t, s, http.MethodGet, orderPath, shopper, nil); w.Code != http.StatusOK {
		t.Fatalf("get order %v", w.Code)
	}
	if w = doJSON(t, s, http.MethodGet, orderPath, shopper+1, nil); w.Code != http.StatusNotFound {
		t.Fatalf("foreign order visible: %v", w.Code)
	}
	if n := len(decode[[]map[string]any](t, doJSON(t, s, http.MethodGet, "/api/v1/orders", shopper, nil))); n != 1 {
		t.Fatalf("expected 1 order, got %d", n)
	}

	// корзина пуста: повторное оформление - конфликт
	w = doJSON(t, s, http.MethodPost, "/api/v1/orders", shopper, map[string]any{"shipping_address": "Kyiv"})
	if w.Code != http.StatusConflict || decode[errorResponse](t, w).Code != "empty_cart" {
		t.Fatalf("expected empty cart, got %v %s", w.Code, w.Body.String())
	}
}

func TestCartLineEndpoints(t *testing.T) {
	s := setupServer(t)
	const shopper = 5
	id := createProduct(t, s, map[string]any{"name": "Noctua NH-D15", "category": "cooling", "price": 99, "stock_quantity": 3})
	line := "/api/v1/cart/items/" + strconv.FormatInt(id, 10)

	if w := doJSON(t, s, http.MethodPut, line, shopper, map[string]any{"quantity": 1}); w.Code != http.StatusNotFound {
		t.Fatalf("expected 404 for missing line, got %v", w.Code)
	}
	// quantity по умолчанию 1
	if w := doJSON(t, s, http.MethodPost, "/api/v1/cart/items", shopper, map[string]any{"product_id": id}); w.Code != http.StatusOK {
		t.Fatalf("add code %v", w.Code)
	}
	if w := doJSON(t, s, http.MethodPut, line, shopper, map[string]any{"quantity": 0}); w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}
	if w := doJSON(t, s, http.MethodPut, line, shopper, map[string]any{"quantity": 3}); w.Code != http.StatusOK {
		t.Fatalf("update code %v", w.Code)
	}
	if w := doJSON(t, s, http.MethodDelete, line, shopper, nil); w.Code != http.StatusNoContent {
		t.Fatalf("remove code %v", w.Code)
	}
	if w := doJSON(t, s, http.MethodDelete, "/api/v1/cart", shopper, nil); w.Code != http.StatusNoContent {
		t.Fatalf("clear code %v", w.Code)
	}
}

func TestShopperHeaderRequired(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/api/v1/cart", 0, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}
	w = doJSON(t, s, http.MethodGet, "/api/v1/orders", -3, nil)
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %v", w.Code)
	}
}

func TestConfiguratorFlow(t *testing.T) {
	s := setupServer(t)
	const shopper = 9
	cpu := createProduct(t, s, map[string]any{"name": "Ryzen 7 7700", "category": "processors", "price": 300, "stock_quantity": 4, "socket": "AM5", "power_requirements": 65})
	am5 := createProduct(t, s, map[string]any{"name": "B650", "category": "motherboards", "price": 150, "stock_quantity": 4, "socket": "AM5", "memory_type": "DDR5", "form_factor": "ATX"})
	createProduct(t, s, map[string]any{"name": "Z790", "category": "motherboards", "price": 250, "stock_quantity": 4, "socket": "LGA1700", "memory_type": "DDR5", "form_factor": "ATX"})

	w := doJSON(t, s, http.MethodPost, "/api/v1/configurator/candidates", 0, map[string]any{
		"components": map[string]int64{"cpu": cpu},
		"slot":       "motherboard",
	})
	if w.Code != http.StatusOK {
		t.Fatalf("candidates code %v: %s", w.Code, w.Body.String())
	}
	set := decode[struct {
		Items []struct {
			ID int64 `json:"id"`
		} `json:"items"`
		WasFallback bool `json:"was_fallback"`
	}](t, w)
	if len(set.Items) != 1 || set.Items[0].ID != am5 || set.WasFallback {
		t.Fatalf("unexpected candidates %s", w.Body.String())
	}

	// неизвестный слот отсекается валидатором
	w = doJSON(t, s, http.MethodPost, "/api/v1/configurator/check", 0, map[string]any{"components": map[string]int64{"monitor": cpu}})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %v", w.Code)
	}

	build := map[string]any{"components": map[string]int64{"cpu": cpu, "motherboard": am5}}
	w = doJSON(t, s, http.MethodPost, "/api/v1/configurator/check", 0, build)
	if w.Code != http.StatusOK || decode[checkResp](t, w).HasErrors {
		t.Fatalf("check %v: %s", w.Code, w.Body.String())
	}
	w = doJSON(t, s, http.MethodPost, "/api/v1/configurator/power", 0, build)
	// плата не потребляет: 65 * 1.2
	if got := decode[powerResp](t, w).RequiredWatts; got != 78 {
		t.Fatalf("required watts %d", got)
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/configurator/cart", shopper, build)
	if w.Code != http.StatusOK || decode[buildCartResp](t, w).Added != 2 {
		t.Fatalf("build to cart %v: %s", w.Code, w.Body.String())
	}

	w = doJSON(t, s, http.MethodPost, "/api/v1/builds", shopper, map[string]any{"name": "Work", "components": build["components"]})
	if w.Code != http.StatusCreated {
		t.Fatalf("save build %v: %s", w.Code, w.Body.String())
	}
	if n := len(decode[[]map[string]any](t, doJSON(t, s, http.MethodGet, "/api/v1/builds", shopper, nil))); n != 1 {
		t.Fatalf("expected 1 saved build, got %d", n)
	}
}

func TestHTTP_BadRequests(t *testing.T) {
	s := setupServer(t)
	cases := []struct {
		name   string
		method string
		path   string
		body   any
	}{
		{"empty name", http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "", "category": "storage"}},
		{"unknown category", http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "X", "category": "monitors"}},
		{"bad memory type", http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "X", "category": "memory", "memory_type": "DDR9"}},
		{"socket on storage", http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "X", "category": "storage", "socket": "AM5"}},
		{"invalid id", http.MethodGet, "/api/v1/products/abc", nil},
		{"invalid price filter", http.MethodGet, "/api/v1/products?min_price=cheap", nil},
		{"inverted price range", http.MethodGet, "/api/v1/products?min_price=10&max_price=1", nil},
		{"unknown slot", http.MethodPost, "/api/v1/configurator/candidates", map[string]any{"slot": "monitor"}},
		{"restock over stock limit", http.MethodPost, "/api/v1/admin/products/1/restock", map[string]any{"quantity": int64(1) << 40}},
		{"stock over limit", http.MethodPost, "/api/v1/admin/products", map[string]any{"name": "X", "category": "storage", "price": 1, "stock_quantity": int64(1) << 40}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := doJSON(t, s, tc.method, tc.path, 0, tc.body)
			if w.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %v: %s", w.Code, w.Body.String())
			}
		})
	}
}

func TestOpsEndpoints(t *testing.T) {
	s := setupServer(t)
	w := doJSON(t, s, http.MethodGet, "/health", 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("health code %v", w.Code)
	}
	if w.Header().Get(RequestIDHeader) == "" {
		t.Fatal("request id header missing")
	}
	_ = doJSON(t, s, http.MethodGet, "/api/v1/products/999", 0, nil)

	w = doJSON(t, s, http.MethodGet, "/metrics", 0, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("metrics code %v", w.Code)
	}
	if !strings.Contains(w.Body.String(), `pcbuilder_http_requests_total{handler="/api/v1/products/:id",status="404"} 1`) {
		t.Fatalf("request metric missing:\n%s", w.Body.String())
	}
}
