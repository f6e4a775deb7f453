// Package webui binds the HTML forms to the form handlers and the renderer.
package webui

import (
	"bytes"
	"errors"
	"io/fs"
	"net/http"

	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/forms"
	"github.com/talkincode/vitrine/internal/view"
	"github.com/talkincode/vitrine/internal/webserver"
)

// Register installs the page routes on srv.
func Register(srv *webserver.WebServer) {
	static, err := fs.Sub(view.Static, "static")
	if err != nil {
		panic(err)
	}
	srv.Static("/static", http.FS(static))

	srv.GET("/", showPage)
	srv.GET("/products/list", showList)
	srv.POST("/consumers", submitConsumer)
	srv.POST("/sellers", submitSeller)
	srv.POST("/products", submitProduct)
	srv.GET("/products/:id/delete", confirmDelete)
	srv.POST("/products/:id/delete", deleteProduct)
	srv.POST("/products/:id/toggle", toggleProduct)
}

func showPage(c echo.Context) error {
	store := webserver.GetStore(c)
	section := c.QueryParam("section")

	var edit *forms.ProductForm
	if id := c.QueryParam("edit"); id != "" {
		if p, ok := store.Get(id); ok {
			f := forms.FormFromProduct(p)
			edit = &f
			section = view.SectionProduct
		}
	}

	page := newPage(c, section)
	if edit != nil {
		page.Product = *edit
	}
	return render(c, http.StatusOK, page)
}

func showList(c echo.Context) error {
	var buf bytes.Buffer
	if err := view.RenderList(&buf, webserver.GetStore(c).List()); err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func submitConsumer(c echo.Context) error {
	var f forms.ConsumerForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse form")
	}
	if _, errs := forms.SubmitConsumer(f); len(errs) > 0 {
		f.Password = ""
		page := newPage(c, view.SectionConsumer)
		page.Consumer, page.ConsumerErrors = f, errs
		page.Banner = &view.Banner{Message: forms.MsgFixErrors}
		return render(c, http.StatusUnprocessableEntity, page)
	}
	webserver.AddFlash(c, forms.MsgConsumerCreated, true)
	return redirect(c, view.SectionConsumer)
}

func submitSeller(c echo.Context) error {
	var f forms.SellerForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse form")
	}
	if _, errs := forms.SubmitSeller(f); len(errs) > 0 {
		f.Password = ""
		page := newPage(c, view.SectionSeller)
		page.Seller, page.SellerErrors = f, errs
		page.Banner = &view.Banner{Message: forms.MsgFixErrors}
		return render(c, http.StatusUnprocessableEntity, page)
	}
	webserver.AddFlash(c, forms.MsgSellerCreated, true)
	return redirect(c, view.SectionSeller)
}

func submitProduct(c echo.Context) error {
	var f forms.ProductForm
	if err := c.Bind(&f); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "unable to parse form")
	}
	h := forms.NewProductHandler(webserver.GetStore(c))
	_, outcome, errs, err := h.Submit(c.Request().Context(), f)
	switch {
	case len(errs) > 0:
		page := newPage(c, view.SectionProduct)
		page.Product, page.ProductErrors = f, errs
		page.Banner = &view.Banner{Message: forms.MsgFixProduct}
		return render(c, http.StatusUnprocessableEntity, page)
	case errors.Is(err, catalog.ErrProductNotFound):
		webserver.AddFlash(c, forms.MsgProductMissing, false)
		return redirect(c, view.SectionProduct)
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to save product").SetInternal(err)
	}
	webserver.AddFlash(c, outcome.Message(), true)
	return redirect(c, view.SectionProduct)
}

func confirmDelete(c echo.Context) error {
	id := c.Param("id")
	p, ok := webserver.GetStore(c).Get(id)
	if !ok {
		return redirect(c, view.SectionProduct)
	}
	var buf bytes.Buffer
	err := view.RenderConfirmDelete(&buf, view.ConfirmDelete{
		AppName:  webserver.GetConfig(c).System.Appid,
		Product:  p,
		Question: forms.MsgConfirmDelete(id),
	})
	if err != nil {
		return err
	}
	return c.HTMLBlob(http.StatusOK, buf.Bytes())
}

func deleteProduct(c echo.Context) error {
	id := c.Param("id")
	if c.FormValue("confirm") != "yes" {
		return redirect(c, view.SectionProduct)
	}
	removed, err := webserver.GetStore(c).Remove(c.Request().Context(), id)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to delete product").SetInternal(err)
	}
	if removed {
		zap.L().Info("product deleted", zap.String("id", id))
		webserver.AddFlash(c, forms.MsgProductDeleted(id), true)
	}
	return redirect(c, view.SectionProduct)
}

func toggleProduct(c echo.Context) error {
	id := c.Param("id")
	_, err := webserver.GetStore(c).Toggle(c.Request().Context(), id)
	switch {
	case errors.Is(err, catalog.ErrProductNotFound):
	case err != nil:
		return echo.NewHTTPError(http.StatusInternalServerError, "unable to change availability").SetInternal(err)
	default:
		webserver.AddFlash(c, forms.MsgAvailabilityChanged(id), true)
	}
	return redirect(c, view.SectionProduct)
}

// newPage snapshots the catalog and consumes the pending flash.
func newPage(c echo.Context, section string) view.Page {
	page := view.NewPage(webserver.GetConfig(c).System.Appid, section, webserver.GetStore(c).List())
	if fl := webserver.PopFlash(c); fl != nil {
		page.Banner = &view.Banner{Message: fl.Message, Success: fl.Success}
	}
	return page
}

func render(c echo.Context, status int, page view.Page) error {
	var buf bytes.Buffer
	if err := view.Render(&buf, page); err != nil {
		return err
	}
	return c.HTMLBlob(status, buf.Bytes())
}

func redirect(c echo.Context, section string) error {
	return c.Redirect(http.StatusSeeOther, "/?section="+section)
}
