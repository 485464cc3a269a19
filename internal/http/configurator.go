package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"pcbuilder/internal/configurator"
	"pcbuilder/internal/domain"
	"pcbuilder/internal/service"
)

// buildReq текущий выбор покупателя: слот -> id товара
type buildReq struct {
	Components map[domain.Slot]int64 `json:"components" binding:"dive,keys,slot,endkeys,gte=0"`
}

func (r buildReq) selection() service.Selection { return service.Selection(r.Components) }

type candidatesReq struct {
	buildReq
	Slot    domain.Slot          `json:"slot" binding:"required,slot"`
	Filters configurator.Filters `json:"filters"`
}

type checkResp struct {
	Issues    []domain.Issue `json:"issues"`
	HasErrors bool           `json:"has_errors"`
}

type powerResp struct {
	RequiredWatts int `json:"required_watts"`
}

type buildCartResp struct {
	Added int `json:"added"`
}

// @Summary Compatible candidates for a slot
// @Description Filters are derived from components already chosen. When nothing matches, the whole category is returned with was_fallback=true.
// @Tags configurator
// @Accept json
// @Produce json
// @Param input body candidatesReq true "Build and slot"
// @Success 200 {object} configurator.CandidateSet
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /configurator/candidates [post]
func (s *Server) candidates(c *gin.Context) {
	var req candidatesReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	set, err := s.svc.Configurator.Candidates(c.Request.Context(), req.selection(), req.Slot, req.Filters)
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, set)
}

// @Summary Check build compatibility
// @Tags configurator
// @Accept json
// @Produce json
// @Param input body buildReq true "Build"
// @Success 200 {object} checkResp
// @Failure 400 {object} errorResponse
// @Failure 404 {object} errorResponse
// @Router /configurator/check [post]
func (s *Server) checkBuild(c *gin.Context) {
	var req buildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	issues, err := s.svc.Configurator.CheckBuild(c.Request.Context(), req.selection())
	if err != nil {
		writeError(c, err)
		return
	}
	if issues == nil {
		issues = []domain.Issue{}
	}
	c.JSON(http.StatusOK, checkResp{Issues: issues, HasErrors: configurator.HasErrors(issues)})
}

// @Summary Estimate required PSU wattage
// @Tags configurator
// @Accept json
// @Produce json
// @Param input body buildReq true "Build"
// @Success 200 {object} powerResp
// @Failure 400 {object} errorResponse
// @Router /configurator/power [post]
func (s *Server) estimatePower(c *gin.Context) {
	var req buildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	w, err := s.svc.Configurator.EstimatePower(c.Request.Context(), req.selection())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, powerResp{RequiredWatts: w})
}

// @Summary Add whole build to cart
// @Description Either every component is added or none of them.
// @Tags configurator
// @Accept json
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param input body buildReq true "Build"
// @Success 200 {object} buildCartResp
// @Failure 400 {object} errorResponse
// @Failure 409 {object} errorResponse
// @Router /configurator/cart [post]
func (s *Server) addBuildToCart(c *gin.Context) {
	var req buildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	n, err := s.svc.Configurator.AddBuildToCart(c.Request.Context(), shopperID(c), req.selection())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, buildCartResp{Added: n})
}

type saveBuildReq struct {
	buildReq
	Name string `json:"name" binding:"required,max=255"`
}

// @Summary Save build
// @Tags builds
// @Accept json
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Param input body saveBuildReq true "Build"
// @Success 201 {object} domain.SavedBuild
// @Failure 400 {object} errorResponse
// @Router /builds [post]
func (s *Server) saveBuild(c *gin.Context) {
	var req saveBuildReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeBindError(c, err)
		return
	}
	b, err := s.svc.Configurator.SaveBuild(c.Request.Context(), shopperID(c), req.Name, req.selection())
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, b)
}

// @Summary List saved builds
// @Tags builds
// @Produce json
// @Param X-Shopper-ID header int true "Shopper ID"
// @Success 200 {array} domain.SavedBuild
// @Router /builds [get]
func (s *Server) listBuilds(c *gin.Context) {
	list, err := s.svc.Configurator.ListSavedBuilds(c.Request.Context(), shopperID(c))
	if err != nil {
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, list)
}
