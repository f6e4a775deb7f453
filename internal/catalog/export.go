package catalog

import (
	"io"

	"github.com/gocarina/gocsv"
	pkgerrors "github.com/pkg/errors"

	"github.com/talkincode/vitrine/internal/domain"
)

// WriteCSV writes products with a header row, in catalog order.
func WriteCSV(w io.Writer, products []domain.Product) error {
	if products == nil {
		products = []domain.Product{}
	}
	return pkgerrors.Wrap(gocsv.Marshal(&products, w), "encode catalog csv")
}

// ReadCSV parses a file written by WriteCSV.
func ReadCSV(r io.Reader) ([]domain.Product, error) {
	var products []domain.Product
	if err := gocsv.Unmarshal(r, &products); err != nil {
		return nil, pkgerrors.Wrap(err, "decode catalog csv")
	}
	return products, nil
}
