package adminapi

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/domain"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/store"
	"github.com/CharlissonFagundes/app-gereciamento-estoque/internal/webserver"
)

type productPayload struct {
	Name        string          `json:"name"`
	Description string          `json:"description"`
	Quantity    int             `json:"quantity"`
	Price       decimal.Decimal `json:"price"`
}

// registerProductRoutes registers the product catalog CRUD endpoints
func registerProductRoutes() {
	webserver.ApiGET("/products", listProducts)
	webserver.ApiGET("/products/:id", getProduct)
	webserver.ApiPOST("/products", createProduct)
	webserver.ApiPUT("/products/:id", updateProduct)
	webserver.ApiDELETE("/products/:id", deleteProduct)
}

// listProducts returns the catalog ordered by name. With ?q= it narrows to
// case-insensitive substring matches; with ?name= it returns the first
// match only, mirroring the single-result lookup of the desktop app.
func listProducts(c echo.Context) error {
	ctx := c.Request().Context()
	repo := store.NewGormProductRepository(GetDB(c))

	if name := strings.TrimSpace(c.QueryParam("name")); name != "" {
		p, err := repo.FindByName(ctx, name)
		if err != nil {
			return failStore(c, err)
		}
		return ok(c, p)
	}

	q := strings.TrimSpace(c.QueryParam("q"))
	products, err := repo.Search(ctx, q)
	if err != nil {
		return failStore(c, err)
	}
	return ok(c, products)
}

func getProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	p, err := store.NewGormProductRepository(GetDB(c)).FindByID(c.Request().Context(), id)
	if err != nil {
		return failStore(c, err)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p := domain.Product{
		Name:        payload.Name,
		Description: payload.Description,
		Quantity:    payload.Quantity,
		Price:       payload.Price,
	}
	if err := store.NewGormProductRepository(GetDB(c)).Save(c.Request().Context(), &p); err != nil {
		return failStore(c, err)
	}
	return ok(c, p)
}

func updateProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}

	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}

	p := domain.Product{
		ID:          id,
		Name:        payload.Name,
		Description: payload.Description,
		Quantity:    payload.Quantity,
		Price:       payload.Price,
	}
	if err := store.NewGormProductRepository(GetDB(c)).Save(c.Request().Context(), &p); err != nil {
		return failStore(c, err)
	}
	return ok(c, p)
}

// deleteProduct removes a catalog entry. The confirmation dialog lives in
// the client; by the time this endpoint is called the user already agreed.
func deleteProduct(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID", nil)
	}
	if err := store.NewGormProductRepository(GetDB(c)).Delete(c.Request().Context(), id); err != nil {
		return failStore(c, err)
	}
	return ok(c, map[string]interface{}{"id": id})
}
