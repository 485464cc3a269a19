package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type addCartItemReq struct {
	ProductID int64 `json:"product_id" binding:"required,gt=0"`
	// Quantity по умолчанию 1
	Quantity *int `json:"quantity" binding:"omitempty,max=2147483647"`
}

type cartItemResp struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// @Summary View cart
// @Tags cart
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Success 200 {object} domain.CartView
// @Failure 401 {object} errorResponse
// @Router /cart [get]
func (s *Server) viewCart(c *gin.Context) {
	view, err := s.svc.Carts.View(c.Request.Context(), shopperID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, view)
}

// @Summary Add product to cart
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param input body addCartItemReq true "Line"
// @Success 200 {object} cartItemResp
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /cart/items [post]
func (s *Server) addCartItem(c *gin.Context) {
	var req addCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	qty := 1
	if req.Quantity != nil {
		qty = *req.Quantity
	}
	total, err := s.svc.Carts.Add(c.Request.Context(), shopperID(c), req.ProductID, qty)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartItemResp{ProductID: req.ProductID, Quantity: total})
}

type updateCartItemReq struct {
	Quantity int `json:"quantity"`
}

// @Summary Set cart line quantity
// @Tags cart
// @Accept json
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param productId path int true "Product ID"
// @Param input body updateCartItemReq true "Quantity"
// @Success 200 {object} cartItemResp
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /cart/items/{productId} [put]
func (s *Server) updateCartItem(c *gin.Context) {
	id, err := parseID(c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req updateCartItemReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	if err := s.svc.Carts.Update(c.Request.Context(), shopperID(c), id, req.Quantity); err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, cartItemResp{ProductID: id, Quantity: req.Quantity})
}

// @Summary Remove cart line
// @Tags cart
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param productId path int true "Product ID"
// @Success 204
// @Failure 404 {object} errorResponse
// @Router /cart/items/{productId} [delete]
func (s *Server) removeCartItem(c *gin.Context) {
	id, err := parseID(c.Param("productId"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := s.svc.Carts.Remove(c.Request.Context(), shopperID(c), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// @Summary Clear cart
// @Tags cart
// @Param X-Shopper-ID header int true "Shopper ID"
// @Success 204
// @Router /cart [delete]
func (s *Server) clearCart(c *gin.Context) {
	if err := s.svc.Carts.Clear(c.Request.Context(), shopperID(c)); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
