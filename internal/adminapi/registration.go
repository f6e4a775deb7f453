package adminapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/talkincode/vitrine/internal/forms"
	"github.com/talkincode/vitrine/internal/webserver"
)

func registerRegistrationRoutes(srv *webserver.WebServer) {
	srv.ApiPOST("/consumers/validate", validateConsumer)
	srv.ApiPOST("/sellers/validate", validateSeller)
}

// validateConsumer runs the consumer form checks on a JSON body keyed by the
// form field names. The record is returned without its password hash.
func validateConsumer(c echo.Context) error {
	var f forms.ConsumerForm
	if err := c.Bind(&f); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse consumer", err.Error())
	}
	record, errs := forms.SubmitConsumer(f)
	if len(errs) > 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", forms.MsgFixErrors, errs.Map())
	}
	return ok(c, record)
}

func validateSeller(c echo.Context) error {
	var f forms.SellerForm
	if err := c.Bind(&f); err != nil {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", "Unable to parse seller", err.Error())
	}
	record, errs := forms.SubmitSeller(f)
	if len(errs) > 0 {
		return fail(c, http.StatusBadRequest, "INVALID_REQUEST", forms.MsgFixErrors, errs.Map())
	}
	return ok(c, record)
}
