package adminapi

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"gorm.io/gorm"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/store"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/webserver"
)

type apiError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

// GetDB returns the request-scoped database handle injected by the
// webserver middleware.
func GetDB(c echo.Context) *gorm.DB {
	return c.Get(webserver.DBContextKey).(*gorm.DB)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, data)
}

func fail(c echo.Context, status int, code, message string, details interface{}) error {
	return c.JSON(status, apiError{Code: code, Message: message, Details: details})
}

func parseIDParam(c echo.Context, name string) (int64, error) {
	id := cast.ToInt64(c.Param(name))
	if id <= 0 {
		return 0, errors.New("invalid id")
	}
	return id, nil
}

// failStore maps data-layer errors onto HTTP responses. Every error kind of
// the store package has a distinct, user-displayable mapping.
func failStore(c echo.Context, err error) error {
	var verr *store.ValidationError
	if errors.As(err, &verr) {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", verr.Error(), nil)
	}

	var serr *store.InsufficientStockError
	if errors.As(err, &serr) {
		return fail(c, http.StatusConflict, "INSUFFICIENT_STOCK", serr.Error(),
			map[string]int{"available": serr.Available})
	}

	switch {
	case errors.Is(err, store.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found", nil)
	case errors.Is(err, store.ErrProductReferenced):
		return fail(c, http.StatusConflict, "PRODUCT_REFERENCED",
			"Product has recorded sales and cannot be removed", nil)
	case errors.Is(err, store.ErrDuplicateName):
		return fail(c, http.StatusConflict, "DUPLICATE_NAME",
			"A product with this name already exists", nil)
	default:
		return fail(c, http.StatusInternalServerError, "DATABASE_ERROR",
			"Storage operation failed", err.Error())
	}
}
