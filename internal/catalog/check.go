package catalog

import (
	"math"

	pkgerrors "github.com/pkg/errors"

	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/validate"
)

// checkProduct applies the form rules to a record that did not come through
// a form, such as a restored backup row.
func checkProduct(p domain.Product) error {
	fields := []struct {
		name string
		r    validate.Result
	}{
		{"photoUrl", validate.URL(p.PhotoURL)},
		{"name", validate.Required(p.Name)},
		{"description", validate.Required(p.Description)},
	}
	for _, f := range fields {
		if !f.r.Valid {
			return pkgerrors.Wrapf(ErrInvalidProduct, "%s %s: %s", p.ID, f.name, f.r.Message)
		}
	}
	if math.IsNaN(p.Price) || math.IsInf(p.Price, 0) || p.Price <= 0 {
		return pkgerrors.Wrapf(ErrInvalidProduct, "%s price: %s", p.ID, validate.MsgNotPositive)
	}
	if p.LeadTimeDays <= 0 {
		return pkgerrors.Wrapf(ErrInvalidProduct, "%s leadTimeDays: %s", p.ID, validate.MsgNotPositive)
	}
	if p.LeadTimeDays > validate.MaxWholeNumber {
		return pkgerrors.Wrapf(ErrInvalidProduct, "%s leadTimeDays: %s", p.ID, validate.MsgTooLarge)
	}
	return nil
}
