package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"

	"pcbuilder/internal/observability"
	"pcbuilder/internal/service"
)

// Services зависимости HTTP-слоя
type Services struct {
	Products     *service.ProductService
	Carts        *service.CartService
	Checkout     *service.CheckoutService
	Configurator *service.ConfiguratorService
}

type Server struct {
	engine  *gin.Engine
	svc     Services
	log     logrus.FieldLogger
	metrics *observability.Metrics
}

// NewServer собирает gin-движок. gatherer отдаётся на /metrics.
func NewServer(svc Services, log logrus.FieldLogger, metrics *observability.Metrics, gatherer prometheus.Gatherer) *Server {
	registerValidators()

	r := gin.New()
	r.Use(
		gin.Recovery(),
		otelgin.Middleware(observability.ServiceName),
		requestID(),
		requestLogger(log),
		requestMetrics(metrics),
	)
	s := &Server{engine: r, svc: svc, log: log, metrics: metrics}
	s.registerRoutes(gatherer)
	return s
}

func (s *Server) Engine() *gin.Engine { return s.engine }

func (s *Server) registerRoutes(gatherer prometheus.Gatherer) {
	// Swagger UI
	s.engine.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))
	s.engine.GET("/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "ok"}) })
	s.engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(gatherer, promhttp.HandlerOpts{})))

	v1 := s.engine.Group("/api/v1")
	{
		v1.GET("/categories", s.listCategories)

		products := v1.Group("/products")
		products.GET("", s.listProducts)
		products.GET(":id", s.getProduct)

		admin := v1.Group("/admin/products")
		admin.POST("", s.createProduct)
		admin.PUT(":id", s.updateProduct)
		admin.DELETE(":id", s.deactivateProduct)
		admin.POST(":id/restock", s.restockProduct)

		configurator := v1.Group("/configurator")
		configurator.POST("/candidates", s.candidates)
		configurator.POST("/check", s.checkBuild)
		configurator.POST("/power", s.estimatePower)

		shopper := v1.Group("", requireShopper())
		shopper.GET("/cart", s.viewCart)
		shopper.DELETE("/cart", s.clearCart)
		shopper.POST("/cart/items", s.addCartItem)
		shopper.PUT("/cart/items/:productId", s.updateCartItem)
		shopper.DELETE("/cart/items/:productId", s.removeCartItem)

		shopper.POST("/orders", s.createOrder)
		shopper.GET("/orders", s.listOrders)
		shopper.GET("/orders/:id", s.getOrder)

		shopper.POST("/configurator/cart", s.addBuildToCart)
		shopper.POST("/builds", s.saveBuild)
		shopper.GET("/builds", s.listBuilds)
	}
}
