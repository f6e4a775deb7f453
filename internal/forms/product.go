package forms

import (
	"context"
	"errors"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/validate"
	"github.com/talkincode/vitrine/pkg/common"
)

// ProductForm mirrors the product inputs. ID carries the record being edited
// and is empty for a new product.
type ProductForm struct {
	ID          string `form:"produtoId" json:"id"`
	PhotoURL    string `form:"fotoProduto" json:"photoUrl" validate:"url_optional"`
	Name        string `form:"nomeProduto" json:"name" validate:"notblank"`
	Description string `form:"descricaoProduto" json:"description" validate:"notblank"`
	Price       string `form:"precoProduto" json:"price" validate:"positive"`
	LeadTime    string `form:"prazoEntrega" json:"leadTimeDays" validate:"positive_int"`
	Available   bool   `form:"disponivelVenda" json:"available"`
}

// FormFromProduct fills the form for editing p.
func FormFromProduct(p domain.Product) ProductForm {
	return ProductForm{
		ID:          p.ID,
		PhotoURL:    p.PhotoURL,
		Name:        p.Name,
		Description: p.Description,
		Price:       formatNumber(p.Price),
		LeadTime:    formatNumber(float64(p.LeadTimeDays)),
		Available:   p.Available,
	}
}

// Editing reports whether the form targets an existing record.
func (f ProductForm) Editing() bool {
	return common.IsNotEmpty(f.ID)
}

// Product converts an already validated form into a record.
func (f ProductForm) Product() domain.Product {
	price, _ := validate.ParsePositive(f.Price)
	lead, _ := validate.ParsePositive(f.LeadTime)
	p := domain.Product{
		ID:           strings.TrimSpace(f.ID),
		PhotoURL:     f.PhotoURL,
		Name:         f.Name,
		Description:  f.Description,
		Price:        price,
		LeadTimeDays: int(lead),
		Available:    f.Available,
	}
	p.Normalize()
	return p
}

// Outcome tells the caller which mutation a submission performed.
type Outcome int

const (
	Created Outcome = iota + 1
	Updated
)

// Message is the success banner for o.
func (o Outcome) Message() string {
	if o == Updated {
		return MsgProductUpdated
	}
	return MsgProductCreated
}

// ProductHandler stores valid product submissions in the catalog.
type ProductHandler struct {
	store *catalog.Store
}

func NewProductHandler(store *catalog.Store) *ProductHandler {
	return &ProductHandler{store: store}
}

// Submit validates every field of f. Invalid input returns the field errors and
// leaves the catalog untouched. Valid input creates a record when f.ID is
// empty, otherwise replaces the record with that id.
func (h *ProductHandler) Submit(ctx context.Context, f ProductForm) (domain.Product, Outcome, validate.Errors, error) {
	if errs := defaultValidator.Struct(&f); len(errs) > 0 {
		return domain.Product{}, 0, errs, nil
	}

	p := f.Product()
	if f.Editing() {
		saved, err := h.store.Update(ctx, p)
		if err != nil {
			if !errors.Is(err, catalog.ErrProductNotFound) {
				zap.L().Error("update product failed", zap.String("id", p.ID), zap.Error(err))
			}
			return domain.Product{}, 0, nil, err
		}
		zap.L().Info("product updated", zap.String("id", saved.ID))
		return saved, Updated, nil, nil
	}

	saved, err := h.store.Add(ctx, p)
	if err != nil {
		zap.L().Error("create product failed", zap.String("name", p.Name), zap.Error(err))
		return domain.Product{}, 0, nil, err
	}
	zap.L().Info("product created", zap.String("id", saved.ID))
	return saved, Created, nil, nil
}

func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
