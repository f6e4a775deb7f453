// Package view renders the page from a snapshot. Nothing is cached between
// calls: every render rebuilds the whole list.
package view

import (
	"embed"
	"fmt"
	"html/template"
	"io"

	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/forms"
	"github.com/talkincode/vitrine/internal/validate"
)

const (
	LabelSave   = "Save Product"
	LabelUpdate = "Update Product"

	MsgEmptyCatalog = "No products registered yet."
)

//go:embed templates/*.html
var templateFS embed.FS

// Static holds the stylesheet served under /static.
//
//go:embed static
var Static embed.FS

var templates = template.Must(template.New("").Funcs(template.FuncMap{
	"price":       formatPrice,
	"toggleLabel": toggleLabel,
	"errorFor":    errorFor,
	"sectionClass": func(s Section) string {
		if s.Visible {
			return "active"
		}
		return "hidden"
	},
}).ParseFS(templateFS, "templates/*.html"))

// Banner is the transient feedback shown above the forms.
type Banner struct {
	Message string
	Success bool
}

// Page is everything one render needs.
type Page struct {
	AppName  string
	Sections []Section
	Banner   *Banner

	Consumer       forms.ConsumerForm
	ConsumerErrors validate.Errors
	Seller         forms.SellerForm
	SellerErrors   validate.Errors
	Product        forms.ProductForm
	ProductErrors  validate.Errors

	Products []domain.Product
}

// SubmitLabel is the product form button text.
func (p Page) SubmitLabel() string {
	if p.Product.Editing() {
		return LabelUpdate
	}
	return LabelSave
}

// NewPage builds a page showing section with a blank form set.
func NewPage(appName, section string, products []domain.Product) Page {
	return Page{
		AppName:  appName,
		Sections: Show(section),
		Products: products,
	}
}

// Render writes the full page.
func Render(w io.Writer, p Page) error {
	return templates.ExecuteTemplate(w, "page.html", p)
}

// RenderList writes only the product list.
func RenderList(w io.Writer, products []domain.Product) error {
	return templates.ExecuteTemplate(w, "list.html", products)
}

// ConfirmDelete is the delete confirmation view.
type ConfirmDelete struct {
	AppName  string
	Product  domain.Product
	Question string
}

func RenderConfirmDelete(w io.Writer, c ConfirmDelete) error {
	return templates.ExecuteTemplate(w, "confirm.html", c)
}

func formatPrice(v float64) string {
	return fmt.Sprintf("%.2f", v)
}

func toggleLabel(p domain.Product) string {
	if p.Available {
		return "Disable Sale"
	}
	return "Enable Sale"
}

func errorFor(errs validate.Errors, field string) string {
	return errs.Message(field)
}
