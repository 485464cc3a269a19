package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"

	"pcbuilder/internal/domain"
	"pcbuilder/internal/repository"
)

type categoryResp struct {
	domain.Category
	Capabilities domain.CategoryCapabilities `json:"capabilities"`
}

// @Summary List categories
// @Tags catalog
// @Produce json
// @Success 200 {array} categoryResp
// @Router /categories [get]
func (s *Server) listCategories(c *gin.Context) {
	out := make([]categoryResp, 0, len(domain.Categories))
	for _, cat := range domain.Categories {
		out = append(out, categoryResp{Category: cat, Capabilities: cat.Describe()})
	}
	c.JSON(http.StatusOK, out)
}

// Product handlers
type productReq struct {
	Name              string            `json:"name" binding:"required"`
	Brand             string            `json:"brand"`
	Category          string            `json:"category" binding:"required,category"`
	Price             decimal.Decimal   `json:"price" swaggertype:"string"`
	StockQuantity     int               `json:"stock_quantity" binding:"gte=0,lte=2147483647"`
	Socket            string            `json:"socket"`
	MemoryType        domain.MemoryType `json:"memory_type" binding:"omitempty,memory_type"`
	FormFactor        domain.FormFactor `json:"form_factor" binding:"omitempty,form_factor"`
	PowerRequirements *int              `json:"power_requirements" binding:"omitempty,gte=0"`
	Specs             domain.Specs      `json:"specs"`
	Version           int64             `json:"version" binding:"gte=0"`
}

func (r productReq) toDomain(id int64) domain.Product {
	return domain.Product{
		ID:                id,
		Name:              r.Name,
		Brand:             r.Brand,
		Category:          domain.CategorySlug(r.Category),
		Price:             r.Price,
		StockQuantity:     r.StockQuantity,
		Socket:            r.Socket,
		MemoryType:        r.MemoryType,
		FormFactor:        r.FormFactor,
		PowerRequirements: r.PowerRequirements,
		Specs:             r.Specs,
		Version:           r.Version,
	}
}

// @Summary Create product
// @Tags admin
// @Accept json
// @Produce json
// @Param input body productReq true "Product"
// @Success 201 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Router /admin/products [post]
func (s *Server) createProduct(c *gin.Context) {
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := s.svc.Products.Create(c.Request.Context(), req.toDomain(0))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

// @Summary Get product by id
// @Tags catalog
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /products/{id} [get]
func (s *Server) getProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	p, err := s.svc.Products.GetByID(c.Request.Context(), id)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Update product
// @Description Stock is not changed here, use restock. Version enables optimistic locking.
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body productReq true "Update"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /admin/products/{id} [put]
func (s *Server) updateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req productReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := s.svc.Products.Update(c.Request.Context(), req.toDomain(id))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

// @Summary Deactivate product
// @Tags admin
// @Param id path int true "Product ID"
// @Success 204
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /admin/products/{id} [delete]
func (s *Server) deactivateProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	if err := s.svc.Products.Deactivate(c.Request.Context(), id); err != nil {
		writeError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type restockReq struct {
	Quantity int `json:"quantity" binding:"required,min=1,max=2147483647"`
}

// @Summary Restock product
// @Tags admin
// @Accept json
// @Produce json
// @Param id path int true "Product ID"
// @Param input body restockReq true "Quantity to add"
// @Success 200 {object} domain.Product
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /admin/products/{id}/restock [post]
func (s *Server) restockProduct(c *gin.Context) {
	id, err := parseID(c.Param("id"))
	if err != nil {
		writeError(c, err)
		return
	}
	var req restockReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	p, err := s.svc.Products.Restock(c.Request.Context(), id, req.Quantity)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

type listProductsQuery struct {
	Q        string `form:"q"`
	Category string `form:"category" binding:"omitempty,category"`
	MinPrice string `form:"min_price"`
	MaxPrice string `form:"max_price"`
}

// @Summary List products
// @Tags catalog
// @Produce json
// @Param q query string false "Name contains"
// @Param category query string false "Category slug"
// @Param min_price query number false "Min price"
// @Param max_price query number false "Max price"
// @Success 200 {array} domain.Product
// @Failure 400 {object} errorResponse
// @Router /products [get]
func (s *Server) listProducts(c *gin.Context) {
	var q listProductsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		writeBindError(c, err)
		return
	}
	f := repository.ProductFilter{
		NameSubstring: q.Q,
		Category:      domain.CategorySlug(q.Category),
		ActiveOnly:    true,
	}
	var err error
	if f.MinPrice, err = parsePrice("min_price", q.MinPrice); err != nil {
		writeError(c, err)
		return
	}
	if f.MaxPrice, err = parsePrice("max_price", q.MaxPrice); err != nil {
		writeError(c, err)
		return
	}
	list, err := s.svc.Products.List(c.Request.Context(), f)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}

func parsePrice(name, v string) (*decimal.Decimal, error) {
	if v == "" {
		return nil, nil
	}
	d, err := decimal.NewFromString(v)
	if err != nil || d.IsNegative() {
		return nil, domain.Invalidf("invalid %s %q", name, v)
	}
	return &d, nil
}
