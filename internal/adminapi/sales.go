package adminapi

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gocarina/gocsv"
	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/store"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/webserver"
)

type salePayload struct {
	ProductID int64      `json:"product_id"`
	Quantity  int        `json:"quantity"`
	SaleDate  *time.Time `json:"sale_date"`
}

// registerSaleRoutes registers sale registration and reporting endpoints
func registerSaleRoutes() {
	webserver.ApiPOST("/sales", registerSale)
	webserver.ApiGET("/sales", listSales)
	webserver.ApiGET("/sales/revenue", totalRevenue)
	webserver.ApiGET("/sales/export", exportSales)
}

func registerSale(c echo.Context) error {
	var payload salePayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse sale", err.Error())
	}
	if payload.ProductID <= 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "A product must be selected", nil)
	}

	saleDate := time.Time{}
	if payload.SaleDate != nil {
		saleDate = *payload.SaleDate
	}

	ledger := store.NewGormSaleLedger(GetDB(c))
	sale, err := ledger.Register(c.Request().Context(), payload.ProductID, payload.Quantity, saleDate)
	if err != nil {
		return failStore(c, err)
	}
	return ok(c, sale)
}

// listSales returns recent sales joined with product data, most recent
// first. ?limit= caps the result, defaulting to the last 10.
func listSales(c echo.Context) error {
	limit := cast.ToInt(c.QueryParam("limit"))
	sales, err := store.NewGormSaleLedger(GetDB(c)).Recent(c.Request().Context(), limit)
	if err != nil {
		return failStore(c, err)
	}
	return ok(c, sales)
}

func totalRevenue(c echo.Context) error {
	total, err := store.NewGormSaleLedger(GetDB(c)).TotalRevenue(c.Request().Context())
	if err != nil {
		return failStore(c, err)
	}
	return ok(c, map[string]interface{}{"total_revenue": total})
}

// exportSales streams the full ledger as a CSV download
func exportSales(c echo.Context) error {
	sales, err := store.NewGormSaleLedger(GetDB(c)).FindAll(c.Request().Context())
	if err != nil {
		return failStore(c, err)
	}

	filename := fmt.Sprintf("sales-%s.csv", time.Now().Format("20060102-150405"))
	c.Response().Header().Set(echo.HeaderContentType, "text/csv")
	c.Response().Header().Set(echo.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	c.Response().WriteHeader(http.StatusOK)

	return gocsv.Marshal(&sales, c.Response())
}
