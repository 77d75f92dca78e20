// Package exporter gera a planilha XLSX com todos os relatórios e gráficos nativos
package exporter

import (
	"fmt"
	"io"
	"strconv"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/pkg/utils"
	"github.com/xuri/excelize/v2"
)

const ContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

const (
	SheetSummary        = "Resumo"
	SheetCategories     = "Categorias"
	SheetRegions        = "Regiões"
	SheetYears          = "Anos"
	SheetRegionCategory = "Região x Categoria"
	SheetMonthly        = "Mensal"
	SheetTrend          = "Tendência"
	SheetMargins        = "Margens"
	SheetTicket         = "Ticket"
	SheetCustomers      = "Clientes"
	SheetComparison     = "Comparação"
	SheetForecast       = "Previsão"

	defaultSheet = "Sheet1"
)

var ErrEmptyReport = errors.New("empty report")

// table uma aba com cabeçalho na linha 1 e dados a partir da linha 2
type table struct {
	sheet   string
	headers []string
	rows    [][]interface{}
}

// chart gráfico sobre colunas de uma tabela; colunas começam em 1
type chart struct {
	kind       excelize.ChartType
	title      string
	categories int
	values     []int
}

type workbook struct {
	file        *excelize.File
	headerStyle int
}

// Write gera a planilha do relatório completo no writer
func Write(w io.Writer, report *domain.FullReport) error {
	f, err := Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.Write(w); err != nil {
		return errors.Wrap(err, "erro ao escrever planilha")
	}
	return nil
}

// SaveAs gera a planilha do relatório completo no caminho informado
func SaveAs(path string, report *domain.FullReport) error {
	f, err := Build(report)
	if err != nil {
		return err
	}
	defer f.Close()

	if err := f.SaveAs(path); err != nil {
		return errors.Wrapf(err, "erro ao salvar planilha em %s", path)
	}
	return nil
}

// Build monta o arquivo em memória. O chamador deve fechar o arquivo.
func Build(report *domain.FullReport) (*excelize.File, error) {
	if report == nil {
		return nil, ErrEmptyReport
	}

	f := excelize.NewFile()
	wb := &workbook{file: f}

	style, err := f.NewStyle(&excelize.Style{
		Font: &excelize.Font{Bold: true},
		Fill: excelize.Fill{Type: "pattern", Color: []string{"D9E1F2"}, Pattern: 1},
	})
	if err != nil {
		f.Close()
		return nil, errors.Wrap(err, "erro ao criar estilo do cabeçalho")
	}
	wb.headerStyle = style

	if err := wb.build(report); err != nil {
		f.Close()
		return nil, err
	}

	return f, nil
}

func (wb *workbook) build(report *domain.FullReport) error {
	steps := []struct {
		table  table
		charts []chart
	}{
		{table: summaryTable(report)},
		{
			table:  bucketTable(SheetCategories, "Categoria", report.Summary.ByCategory),
			charts: []chart{{kind: excelize.Col, title: "Receita por categoria", categories: 1, values: []int{2}}},
		},
		{
			table:  bucketTable(SheetRegions, "Região", report.Summary.ByRegion),
			charts: []chart{{kind: excelize.Col, title: "Receita por região", categories: 1, values: []int{2}}},
		},
		{
			table:  bucketTable(SheetYears, "Ano", report.Summary.ByYear),
			charts: []chart{{kind: excelize.Col, title: "Receita por ano", categories: 1, values: []int{2}}},
		},
		{table: pivotTable(SheetRegionCategory, report.Deep.RegionCategory)},
		{
			table:  seriesTable(SheetMonthly, "Mês", report.Deep.Monthly.Series),
			charts: []chart{{kind: excelize.Line, title: "Vendas mensais " + strconv.Itoa(report.Deep.Monthly.Year), categories: 1, values: []int{2}}},
		},
		{
			table:  trendTable(report.Deep.Trend, report.Deep.TrendLine),
			charts: []chart{{kind: excelize.Line, title: "Tendência de vendas", categories: 1, values: []int{2, 3}}},
		},
		{
			table:  bucketTable(SheetMargins, "Categoria", report.Deep.MarginByCategory),
			charts: []chart{{kind: excelize.Col, title: "Margem por categoria (%)", categories: 1, values: []int{6}}},
		},
		{
			table:  bucketTable(SheetTicket, "Região", report.Deep.TicketByRegion),
			charts: []chart{{kind: excelize.Col, title: "Ticket médio por região", categories: 1, values: []int{8}}},
		},
		{
			table:  customersTable(report.Deep.CustomersByRegion),
			charts: []chart{{kind: excelize.Col, title: "Clientes por região", categories: 1, values: []int{2}}},
		},
		{
			table:  comparisonTable(report.Deep.Comparison),
			charts: []chart{{kind: excelize.Line, title: "Ano x média histórica", categories: 1, values: []int{2, 3}}},
		},
		{
			table:  forecastTable(report.Forecast),
			charts: []chart{{kind: excelize.Col, title: "Previsão " + strconv.Itoa(report.Forecast.TargetYear), categories: 1, values: []int{2, 3}}},
		},
	}

	for i, step := range steps {
		if err := wb.writeTable(step.table, i == 0); err != nil {
			return err
		}

		for j, c := range step.charts {
			if err := wb.addChart(step.table, c, j); err != nil {
				return err
			}
		}
	}

	wb.file.SetActiveSheet(0)
	return nil
}

func (wb *workbook) writeTable(t table, first bool) error {
	f := wb.file

	if first {
		if err := f.SetSheetName(defaultSheet, t.sheet); err != nil {
			return errors.Wrapf(err, "erro ao renomear aba %s", t.sheet)
		}
	} else if _, err := f.NewSheet(t.sheet); err != nil {
		return errors.Wrapf(err, "erro ao criar aba %s", t.sheet)
	}

	header := make([]interface{}, len(t.headers))
	for i, h := range t.headers {
		header[i] = h
	}
	if err := f.SetSheetRow(t.sheet, "A1", &header); err != nil {
		return errors.Wrapf(err, "erro ao escrever cabeçalho da aba %s", t.sheet)
	}

	if len(t.headers) > 0 {
		last, err := excelize.CoordinatesToCellName(len(t.headers), 1)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular célula")
		}
		if err := f.SetCellStyle(t.sheet, "A1", last, wb.headerStyle); err != nil {
			return errors.Wrapf(err, "erro ao aplicar estilo na aba %s", t.sheet)
		}
	}

	for i, row := range t.rows {
		cell, err := excelize.CoordinatesToCellName(1, i+2)
		if err != nil {
			return errors.Wrap(err, "erro ao calcular célula")
		}

		values := row
		if err := f.SetSheetRow(t.sheet, cell, &values); err != nil {
			return errors.Wrapf(err, "erro ao escrever linha %d da aba %s", i+2, t.sheet)
		}
	}

	return nil
}

func (wb *workbook) addChart(t table, c chart, index int) error {
	// Sem dados o gráfico ficaria sem séries válidas
	if len(t.rows) == 0 {
		return nil
	}

	lastRow := len(t.rows) + 1
	series := make([]excelize.ChartSeries, 0, len(c.values))
	for _, col := range c.values {
		name, err := columnRef(t.sheet, col, 1, 1)
		if err != nil {
			return err
		}
		categories, err := columnRef(t.sheet, c.categories, 2, lastRow)
		if err != nil {
			return err
		}
		values, err := columnRef(t.sheet, col, 2, lastRow)
		if err != nil {
			return err
		}

		series = append(series, excelize.ChartSeries{
			Name:       name,
			Categories: categories,
			Values:     values,
		})
	}

	anchor, err := excelize.CoordinatesToCellName(len(t.headers)+2, 2+index*20)
	if err != nil {
		return errors.Wrap(err, "erro ao calcular posição do gráfico")
	}

	err = wb.file.AddChart(t.sheet, anchor, &excelize.Chart{
		Type:   c.kind,
		Series: series,
		Title:  []excelize.RichTextRun{{Text: c.title}},
		Legend: excelize.ChartLegend{Position: "bottom"},
	})
	if err != nil {
		return errors.Wrapf(err, "erro ao criar gráfico %q", c.title)
	}

	return nil
}

// columnRef referência absoluta 'Aba'!$A$2:$A$10
func columnRef(sheet string, col, fromRow, toRow int) (string, error) {
	from, err := excelize.CoordinatesToCellName(col, fromRow, true)
	if err != nil {
		return "", errors.Wrap(err, "erro ao calcular referência")
	}
	if fromRow == toRow {
		return fmt.Sprintf("'%s'!%s", sheet, from), nil
	}
	to, err := excelize.CoordinatesToCellName(col, toRow, true)
	if err != nil {
		return "", errors.Wrap(err, "erro ao calcular referência")
	}
	return fmt.Sprintf("'%s'!%s:%s", sheet, from, to), nil
}

func round(v float64) float64 {
	return utils.RoundWithTwoDecimalPlace(v)
}

func summaryTable(report *domain.FullReport) table {
	s := report.Summary
	t := s.Totals
	f := report.Forecast
	return table{
		sheet:   SheetSummary,
		headers: []string{"Indicador", "Valor"},
		rows: [][]interface{}{
			{"Receita total", round(t.Revenue)},
			{"Custo total", round(t.Cost)},
			{"Lucro", round(t.Profit)},
			{"Margem (%)", round(t.MarginPct)},
			{"Transações", t.Count},
			{"Ticket médio", round(t.AverageTicket)},
			{"Primeira venda", utils.FormatDate(t.FirstDate)},
			{"Última venda", utils.FormatDate(t.LastDate)},
			{"Preços divergentes", s.PriceMismatches},
			{"Vendas inválidas", s.InvalidRecords},
			{"Ano projetado", f.TargetYear},
			{"Projeção total", round(f.TotalProjected)},
			{"Média histórica total", round(f.TotalHistorical)},
			{"Crescimento projetado (%)", round(f.OverallGrowthPct)},
		},
	}
}

func bucketTable(sheet, label string, result domain.AggregateResult) table {
	rows := make([][]interface{}, 0, result.Len())
	for _, b := range result.Buckets {
		rows = append(rows, []interface{}{
			utils.JoinKey(b.Key),
			round(b.Revenue),
			round(b.Cost),
			round(b.Profit),
			b.Quantity,
			round(b.MarginPct),
			b.Count,
			round(b.AverageTicket),
		})
	}

	return table{
		sheet:   sheet,
		headers: []string{label, "Receita", "Custo", "Lucro", "Quantidade", "Margem (%)", "Transações", "Ticket médio"},
		rows:    rows,
	}
}

func pivotTable(sheet string, p domain.PivotTable) table {
	headers := append([]string{"Região"}, p.Columns...)

	rows := make([][]interface{}, 0, len(p.Rows))
	for i, name := range p.Rows {
		row := make([]interface{}, 0, len(p.Columns)+1)
		row = append(row, name)
		for _, v := range p.Values[i] {
			row = append(row, round(v))
		}
		rows = append(rows, row)
	}

	return table{sheet: sheet, headers: headers, rows: rows}
}

func seriesTable(sheet, label string, series []domain.SeriesPoint) table {
	rows := make([][]interface{}, 0, len(series))
	for _, p := range series {
		rows = append(rows, []interface{}{p.Label, round(p.Value)})
	}
	return table{sheet: sheet, headers: []string{label, "Receita"}, rows: rows}
}

func trendTable(series []domain.SeriesPoint, line domain.TrendLine) table {
	rows := make([][]interface{}, 0, len(series))
	for i, p := range series {
		rows = append(rows, []interface{}{p.Label, round(p.Value), round(line.At(i))})
	}
	return table{sheet: SheetTrend, headers: []string{"Período", "Receita", "Tendência"}, rows: rows}
}

func customersTable(counts []domain.CustomerRegionCount) table {
	rows := make([][]interface{}, 0, len(counts))
	for _, c := range counts {
		rows = append(rows, []interface{}{c.Region, c.Total})
	}
	return table{sheet: SheetCustomers, headers: []string{"Região", "Clientes"}, rows: rows}
}

func comparisonTable(c domain.YearComparison) table {
	rows := make([][]interface{}, 0, len(c.Rows))
	for _, r := range c.Rows {
		rows = append(rows, []interface{}{r.MonthName, round(r.YearValue), round(r.HistoricalAverage), round(r.Difference)})
	}
	return table{
		sheet:   SheetComparison,
		headers: []string{"Mês", strconv.Itoa(c.Year), "Média histórica", "Diferença"},
		rows:    rows,
	}
}

func forecastTable(f domain.Forecast) table {
	rows := make([][]interface{}, 0, len(f.Projections)+1)
	for _, p := range f.Projections {
		history := "sim"
		if !p.HasHistory {
			history = "não"
		}
		rows = append(rows, []interface{}{
			p.MonthName,
			round(p.HistoricalAverage),
			round(p.ProjectedValue),
			round(p.GrowthPct),
			p.SeasonalFactor,
			p.YearsObserved,
			history,
		})
	}

	return table{
		sheet:   SheetForecast,
		headers: []string{"Mês", "Média histórica", "Projeção", "Crescimento (%)", "Fator sazonal", "Anos observados", "Com histórico"},
		rows:    rows,
	}
}
