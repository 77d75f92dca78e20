package exporter

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
	"github.com/xuri/excelize/v2"
)

func sampleReport(t *testing.T) *domain.FullReport {
	t.Helper()

	sale := func(year, month int, category, region string, qty int, price, cost float64) *domain.SaleRecord {
		return &domain.SaleRecord{
			Date:      time.Date(year, time.Month(month), 10, 0, 0, 0, 0, time.UTC),
			Quantity:  qty,
			UnitPrice: price,
			UnitCost:  cost,
			ListPrice: price,
			Category:  category,
			Region:    region,
		}
	}

	records := []*domain.SaleRecord{
		sale(2023, 1, "Electrónica", "Norte", 1, 1200, 800),
		sale(2023, 5, "Ropa", "Sur", 2, 35, 15),
		sale(2024, 1, "Ropa", "Norte", 1, 100, 40),
		sale(2024, 2, "Hogar", "Sur", 1, 600, 300),
	}

	deep, err := reporting.BuildDeepAnalysis(records, []domain.CustomerRegionCount{
		{Region: "Norte", Total: 12},
		{Region: "Sur", Total: 8},
	}, 0)
	require.NoError(t, err)

	forecast, err := forecasting.Project(records, forecasting.DefaultConfig())
	require.NoError(t, err)

	return &domain.FullReport{
		Summary:  reporting.BuildSummary(records),
		Deep:     *deep,
		Forecast: *forecast,
	}
}

func TestWrite(t *testing.T) {
	var buf bytes.Buffer

	err := Write(&buf, sampleReport(t))
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	assert.Equal(t, []string{
		SheetSummary, SheetCategories, SheetRegions, SheetYears, SheetRegionCategory, SheetMonthly,
		SheetTrend, SheetMargins, SheetTicket, SheetCustomers, SheetComparison, SheetForecast,
	}, f.GetSheetList())

	rows, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	require.Len(t, rows, 4)
	assert.Equal(t, []string{"Categoria", "Receita", "Custo", "Lucro", "Quantidade", "Margem (%)", "Transações", "Ticket médio"}, rows[0])
	assert.Equal(t, "Electrónica", rows[1][0])
	assert.Equal(t, "1200", rows[1][1])

	pivot, err := f.GetRows(SheetRegionCategory)
	require.NoError(t, err)
	assert.Equal(t, []string{"Região", "Electrónica", "Hogar", "Ropa"}, pivot[0])
	assert.Equal(t, []string{"Norte", "1200", "0", "100"}, pivot[1])

	forecastRows, err := f.GetRows(SheetForecast)
	require.NoError(t, err)
	assert.Len(t, forecastRows, 13)
	assert.Equal(t, "Jan", forecastRows[1][0])

	value, err := f.GetCellValue(SheetSummary, "B2")
	require.NoError(t, err)
	assert.Equal(t, "1970", value)
}

func TestSaveAs(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reporte.xlsx")

	require.NoError(t, SaveAs(path, sampleReport(t)))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	assert.Len(t, f.GetSheetList(), 12)
}

func TestBuild_EmptyReport(t *testing.T) {
	_, err := Build(nil)
	assert.ErrorIs(t, err, ErrEmptyReport)
}

func TestBuild_NoSales(t *testing.T) {
	f, err := Build(&domain.FullReport{})
	require.NoError(t, err)
	defer f.Close()

	rows, err := f.GetRows(SheetCategories)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}
