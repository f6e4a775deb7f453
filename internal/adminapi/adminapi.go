// Package adminapi exposes the catalog and the registration validators as a
// JSON API under /api.
package adminapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/vitrine/internal/webserver"
)

const (
	defaultPageSize = 20
	maxPageSize     = 500
	maxPage         = 1 << 20
)

// Response is the success envelope.
type Response struct {
	Code int         `json:"code"`
	Msg  string      `json:"msg"`
	Data interface{} `json:"data"`
}

// ErrorResponse is the failure envelope. Code is a stable machine readable
// string such as NOT_FOUND.
type ErrorResponse struct {
	Code    string      `json:"code"`
	Msg     string      `json:"msg"`
	Details interface{} `json:"details,omitempty"`
}

// PageData wraps one page of a list.
type PageData struct {
	Items    interface{} `json:"items"`
	Total    int64       `json:"total"`
	Page     int         `json:"page"`
	PageSize int         `json:"pageSize"`
}

// Init registers every API route on srv.
func Init(srv *webserver.WebServer) {
	registerProductRoutes(srv)
	registerRegistrationRoutes(srv)
}

func ok(c echo.Context, data interface{}) error {
	return c.JSON(http.StatusOK, Response{Code: 0, Msg: "ok", Data: data})
}

func fail(c echo.Context, status int, code, msg string, details interface{}) error {
	return c.JSON(status, ErrorResponse{Code: code, Msg: msg, Details: details})
}

func paged(c echo.Context, items interface{}, total int64, page, pageSize int) error {
	return ok(c, PageData{Items: items, Total: total, Page: page, PageSize: pageSize})
}

// parsePagination reads page and perPage, falling back to the legacy pageSize
// parameter. page is capped at maxPage.
func parsePagination(c echo.Context) (page, pageSize int) {
	page = 1
	if p, err := strconv.Atoi(c.QueryParam("page")); err == nil && p > 0 {
		page = p
	}
	if page > maxPage {
		page = maxPage
	}
	pageSize = defaultPageSize
	raw := c.QueryParam("perPage")
	if raw == "" {
		raw = c.QueryParam("pageSize")
	}
	if ps, err := strconv.Atoi(raw); err == nil && ps > 0 && ps <= maxPageSize {
		pageSize = ps
	}
	return page, pageSize
}
