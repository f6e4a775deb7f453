package adminapi

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"github.com/360EntSecGroup-Skylar/excelize"
	"github.com/labstack/echo/v4"
	"github.com/montanaflynn/stats"

	"github.com/talkincode/vitrine/internal/catalog"
	"github.com/talkincode/vitrine/internal/domain"
	"github.com/talkincode/vitrine/internal/webserver"
)

const xlsxSheet = "Sheet1"

var xlsxHeader = []string{"ID", "Name", "Description", "Price", "Lead time (days)", "Status", "Photo URL"}

// ProductStats summarizes the catalog prices.
type ProductStats struct {
	Count     int     `json:"count"`
	Available int     `json:"available"`
	MeanPrice float64 `json:"meanPrice"`
	Median    float64 `json:"medianPrice"`
	MinPrice  float64 `json:"minPrice"`
	MaxPrice  float64 `json:"maxPrice"`
}

func summarize(products []domain.Product) (ProductStats, error) {
	out := ProductStats{Count: len(products)}
	if len(products) == 0 {
		return out, nil
	}
	prices := make(stats.Float64Data, 0, len(products))
	for _, p := range products {
		prices = append(prices, p.Price)
		if p.Available {
			out.Available++
		}
	}
	var err error
	if out.MeanPrice, err = prices.Mean(); err != nil {
		return out, err
	}
	if out.MeanPrice, err = stats.Round(out.MeanPrice, 2); err != nil {
		return out, err
	}
	if out.Median, err = prices.Median(); err != nil {
		return out, err
	}
	if out.MinPrice, err = prices.Min(); err != nil {
		return out, err
	}
	out.MaxPrice, err = prices.Max()
	return out, err
}

func productStats(c echo.Context) error {
	s, err := summarize(webserver.GetStore(c).List())
	if err != nil {
		return fail(c, http.StatusInternalServerError, "STATS_ERROR", "Failed to compute statistics", err.Error())
	}
	return ok(c, s)
}

func exportFilename(ext string) string {
	return fmt.Sprintf("catalog-%s.%s", time.Now().Format("20060102"), ext)
}

func exportCSV(c echo.Context) error {
	var buf bytes.Buffer
	if err := catalog.WriteCSV(&buf, webserver.GetStore(c).List()); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export catalog", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+exportFilename("csv"))
	return c.Blob(http.StatusOK, "text/csv; charset=utf-8", buf.Bytes())
}

func exportXLSX(c echo.Context) error {
	f := excelize.NewFile()
	for col, title := range xlsxHeader {
		f.SetCellValue(xlsxSheet, cellName(col, 1), title)
	}
	for i, p := range webserver.GetStore(c).List() {
		row := i + 2
		values := []interface{}{p.ID, p.Name, p.Description, p.Price, p.LeadTimeDays, p.AvailabilityLabel(), p.PhotoURL}
		for col, v := range values {
			f.SetCellValue(xlsxSheet, cellName(col, row), v)
		}
	}
	var buf bytes.Buffer
	if err := f.Write(&buf); err != nil {
		return fail(c, http.StatusInternalServerError, "EXPORT_ERROR", "Failed to export catalog", err.Error())
	}
	c.Response().Header().Set(echo.HeaderContentDisposition, "attachment; filename="+exportFilename("xlsx"))
	return c.Blob(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", buf.Bytes())
}

// cellName maps a zero based column and a one based row to A1 notation.
func cellName(col, row int) string {
	return fmt.Sprintf("%c%d", 'A'+col, row)
}
