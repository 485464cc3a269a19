package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcbuilder/internal/service"
)

// Order handlers
type createOrderReq struct {
	ShippingAddress string `json:"shipping_address"`
	PaymentMethod   string `json:"payment_method" binding:"max=50"`
	Notes           string `json:"notes" binding:"max=1000"`
}

// @Summary Checkout cart
// @Description Reserves stock for every cart line, creates the order and empties the cart atomically.
// @Tags orders
// @Accept json
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param input body createOrderReq true "Checkout"
// @Success 201 {object} service.CheckoutResult
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /orders [post]
func (s *Server) createOrder(c *gin.Context) {
	var req createOrderReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	res, err := s.svc.Checkout.Commit(c.Request.Context(), shopperID(c), service.CheckoutRequest{
		ShippingAddress: req.ShippingAddress,
		PaymentMethod:   req.PaymentMethod,
		Notes:           req.Notes,
	})
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, res)
}

// @Summary List shopper orders
// @Tags orders
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Success 200 {array} domain.Order
// @Router /orders [get]
func (s *Server) listOrders(c *gin.Context) {
	list, err := s.svc.Checkout.ListOrders(c.Request.Context(), shopperID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

// @Summary Get order by id
// @Tags orders
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param id path int true "Order ID"
// @Success 200 {object} domain.Order
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /orders/{id} [get]
func (s *Server) getOrder(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	o, err := s.svc.Checkout.GetOrder(c.Request.Context(), shopperID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, o)
}
