package adminapi

import (
	"errors"
	"net/http"
	"sort"
	"strings"

	"github.com/labstack/echo/v4"
	"github.com/spf13/cast"
	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/forms"
	"github.com/talkincode/vitrine/internal/webserver"
)

// productPayload accepts price and lead time either as JSON numbers or as the
// raw strings typed in the form.
type productPayload struct {
	PhotoURL     string      `json:"photoUrl"`
	Name         string      `json:"name"`
	Description  string      `json:"description"`
	Price        interface{} `json:"price"`
	LeadTimeDays interface{} `json:"leadTimeDays"`
	Available    bool        `json:"available"`
}

func (p productPayload) form(id string) forms.ProductForm {
	return forms.ProductForm{
		ID:          id,
		PhotoURL:    p.PhotoURL,
		Name:        p.Name,
		Description: p.Description,
		Price:       cast.ToString(p.Price),
		LeadTime:    cast.ToString(p.LeadTimeDays),
		Available:   p.Available,
	}
}

var productSorters = map[string]func(a, b domain.Product) bool{
	"name":         func(a, b domain.Product) bool { return strings.ToLower(a.Name) < strings.ToLower(b.Name) },
	"price":        func(a, b domain.Product) bool { return a.Price < b.Price },
	"leadTimeDays": func(a, b domain.Product) bool { return a.LeadTimeDays < b.LeadTimeDays },
}

func registerProductRoutes(srv *webserver.WebServer) {
	srv.ApiGET("/products", listProducts)
	srv.ApiGET("/products/stats", productStats)
	srv.ApiGET("/products/export.csv", exportCSV)
	srv.ApiGET("/products/export.xlsx", exportXLSX)
	srv.ApiGET("/products/:id", getProduct)
	srv.ApiPOST("/products", createProduct)
	srv.ApiPUT("/products/:id", updateProduct)
	srv.ApiDELETE("/products/:id", deleteProduct)
	srv.ApiPOST("/products/:id/toggle", toggleProduct)
}

// listProducts keeps catalog order unless sort names a known field.
func listProducts(c echo.Context) error {
	page, pageSize := parsePagination(c)
	rows := webserver.GetStore(c).List()

	if q := strings.ToLower(strings.TrimSpace(c.QueryParam("q"))); q != "" {
		rows = filterProducts(rows, func(p domain.Product) bool {
			return strings.Contains(strings.ToLower(p.Name), q) ||
				strings.Contains(strings.ToLower(p.Description), q) ||
				strings.EqualFold(p.ID, q)
		})
	}
	if raw := strings.TrimSpace(c.QueryParam("available")); raw != "" {
		want, err := cast.ToBoolE(raw)
		if err != nil {
			return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "available must be a boolean", raw)
		}
		rows = filterProducts(rows, func(p domain.Product) bool { return p.Available == want })
	}

	if less, found := productSorters[c.QueryParam("sort")]; found {
		desc := strings.EqualFold(c.QueryParam("order"), "desc")
		sort.SliceStable(rows, func(i, j int) bool {
			if desc {
				return less(rows[j], rows[i])
			}
			return less(rows[i], rows[j])
		})
	}

	total := len(rows)
	start, end := pageBounds(total, page, pageSize)
	return paged(c, rows[start:end], int64(total), page, pageSize)
}

// pageBounds returns the slice bounds of page, empty past the last page.
func pageBounds(total, page, pageSize int) (start, end int) {
	if page < 1 || pageSize < 1 || page-1 >= (total+pageSize-1)/pageSize {
		return total, total
	}
	start = (page - 1) * pageSize
	end = start + pageSize
	if end > total {
		end = total
	}
	return start, end
}

func filterProducts(rows []domain.Product, keep func(domain.Product) bool) []domain.Product {
	out := rows[:0]
	for _, p := range rows {
		if keep(p) {
			out = append(out, p)
		}
	}
	return out
}

func getProduct(c echo.Context) error {
	p, found := webserver.GetStore(c).Get(c.Param("id"))
	if !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	return ok(c, p)
}

func createProduct(c echo.Context) error {
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	return submitProduct(c, payload.form(""))
}

func updateProduct(c echo.Context) error {
	id := c.Param("id")
	if _, found := webserver.GetStore(c).Get(id); !found {
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	}
	var payload productPayload
	if err := c.Bind(&payload); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse product", err.Error())
	}
	return submitProduct(c, payload.form(id))
}

func submitProduct(c echo.Context, f forms.ProductForm) error {
	h := forms.NewProductHandler(webserver.GetStore(c))
	p, _, errs, err := h.Submit(c.Request().Context(), f)
	switch {
	case len(errs) > 0:
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", forms.MsgFixProduct, errs.Map())
	case errors.Is(err, catalog.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to save product", err.Error())
	}
	return ok(c, p)
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	removed, err := webserver.GetStore(c).Remove(c.Request().Context(), id)
	if err != nil {
		zap.L().Error("delete product failed", zap.String("id", id), zap.Error(err))
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to delete product", err.Error())
	}
	return ok(c, map[string]interface{}{"id": id, "removed": removed})
}

func toggleProduct(c echo.Context) error {
	p, err := webserver.GetStore(c).Toggle(c.Request().Context(), c.Param("id"))
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
		return fail(c, http.StatusNotFound, "NOT_FOUND", "Product not found", nil)
	case err != nil:
		return fail(c, http.StatusInternalServerError, "STORAGE_ERROR", "Failed to change availability", err.Error())
	}
	return ok(c, p)
}
