package httpapi

import (
	"net/http"
	"strconv"
	"sync"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"

	"pcbuilder/internal/domain"
)

// errorResponse тело ответа с ошибкой
type errorResponse struct {
	Error       string `json:"error"`
	Code        string `json:"code"`
	ProductID   int64  `json:"product_id,omitempty"`
	ProductName string `json:"product_name,omitempty"`
	Available   *int   `json:"available,omitempty"`
}

func mapErrorToStatus(err error) int {
	switch domain.KindOf(err) {
	case domain.KindValidation:
		return http.StatusBadRequest
	case domain.KindNotFound:
		return http.StatusNotFound
	case domain.KindConflict:
		return http.StatusConflict
	case domain.KindAuthorization:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

func writeError(c *gin.Context, err error) {
	status := mapErrorToStatus(err)
	if status == http.StatusInternalServerError {
		// детали уходят только в лог
		_ = c.Error(err)
		c.JSON(status, errorResponse{Error: "internal error", Code: domain.CodeOf(err)})
		return
	}
	resp := errorResponse{Error: err.Error(), Code: domain.CodeOf(err)}
	var se *domain.InsufficientStockError
	if errors.As(err, &se) {
		available := se.Available
		resp.ProductID = se.ProductID
		resp.ProductName = se.ProductName
		resp.Available = &available
	}
	c.JSON(status, resp)
}

// writeBindError ответ на невалидное тело или параметры запроса
func writeBindError(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, errorResponse{Error: err.Error(), Code: domain.ErrInvalidInput.Code})
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, domain.Invalidf("invalid id %q", s)
	}
	return id, nil
}

var validatorsOnce sync.Once

// registerValidators добавляет в валидатор gin теги доменных перечислений
func registerValidators() {
	validatorsOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		_ = v.RegisterValidation("slot", func(fl validator.FieldLevel) bool {
			return domain.Slot(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("memory_type", func(fl validator.FieldLevel) bool {
			return domain.MemoryType(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("form_factor", func(fl validator.FieldLevel) bool {
			return domain.FormFactor(fl.Field().String()).Valid()
		})
		_ = v.RegisterValidation("category", func(fl validator.FieldLevel) bool {
			_, ok := domain.LookupCategory(domain.CategorySlug(fl.Field().String()))
			return ok
		})
	})
}
