// Package aggregating agrupa vendas por dimensões e calcula as métricas derivadas
package aggregating

import (
	"fmt"
	"slices"
	"sort"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-analytics/internal/domain"
)

const keySeparator = "\x1f"

// Metric métrica usada para ordenar rankings
type Metric string

const (
	MetricRevenue       Metric = "revenue"
	MetricProfit        Metric = "profit"
	MetricMargin        Metric = "margin"
	MetricAverageTicket Metric = "average_ticket"
	MetricCount         Metric = "count"
)

// Options controla a forma do resultado
type Options struct {
	// Dense gera o produto cartesiano dos valores de cada dimensão, com buckets zerados
	// para combinações ausentes. Usado apenas em tabelas comparativas.
	Dense bool
	// Universe define os valores esperados por dimensão no modo denso; valores
	// observados fora dele são adicionados ao final.
	Universe map[domain.Dimension][]string
}

// accumulator guarda as somas de um bucket até a finalização
type accumulator struct {
	key      []string
	revenue  float64
	cost     float64
	profit   float64
	quantity int
	count    int
}

func (a *accumulator) add(r *domain.SaleRecord) {
	a.revenue += r.TotalRevenue()
	a.cost += r.TotalCost()
	a.profit += r.Profit()
	a.quantity += r.Quantity
	a.count++
}

// finalize calcula as razões somente após o fim da acumulação
func (a *accumulator) finalize() domain.Bucket {
	bucket := domain.Bucket{
		Key:      slices.Clone(a.key),
		Revenue:  a.revenue,
		Cost:     a.cost,
		Profit:   a.profit,
		Quantity: a.quantity,
		Count:    a.count,
	}

	if a.revenue != 0 {
		bucket.MarginPct = a.profit / a.revenue * 100
	}

	if a.count > 0 {
		bucket.AverageTicket = a.revenue / float64(a.count)
	}

	return bucket
}

// DimensionValue extrai o valor de uma dimensão do registro
func DimensionValue(r *domain.SaleRecord, dim domain.Dimension) string {
	switch dim {
	case domain.DimensionCategory:
		return r.Category
	case domain.DimensionRegion:
		return r.Region
	case domain.DimensionMonth:
		return fmt.Sprintf("%02d", int(r.Date.Month()))
	case domain.DimensionYear:
		return fmt.Sprintf("%04d", r.Date.Year())
	case domain.DimensionYearMonth:
		return r.Period().String()
	default:
		return ""
	}
}

// ParseDimension valida o nome de uma dimensão
func ParseDimension(s string) (domain.Dimension, error) {
	dim := domain.Dimension(strings.TrimSpace(strings.ToLower(s)))
	if slices.Contains(domain.Dimensions, dim) {
		return dim, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownDimension, s)
}

// Aggregate produz um bucket por combinação distinta de valores das dimensões.
// Sem o modo denso, os buckets seguem a ordem de descoberta nos registros.
func Aggregate(records []*domain.SaleRecord, opts Options, dims ...domain.Dimension) domain.AggregateResult {
	result := domain.AggregateResult{
		Dimensions: slices.Clone(dims),
		Buckets:    make([]domain.Bucket, 0),
	}

	index := make(map[string]*accumulator)
	order := make([]*accumulator, 0)

	observed := make([][]string, len(dims))
	seen := make([]map[string]bool, len(dims))
	for i := range dims {
		seen[i] = make(map[string]bool)
	}

	for _, r := range records {
		if r == nil {
			continue
		}

		key := make([]string, len(dims))
		for i, dim := range dims {
			value := DimensionValue(r, dim)
			key[i] = value
			if !seen[i][value] {
				seen[i][value] = true
				observed[i] = append(observed[i], value)
			}
		}

		id := strings.Join(key, keySeparator)
		acc, exists := index[id]
		if !exists {
			acc = &accumulator{key: key}
			index[id] = acc
			order = append(order, acc)
		}
		acc.add(r)
	}

	if !opts.Dense || len(dims) == 0 {
		for _, acc := range order {
			result.Buckets = append(result.Buckets, acc.finalize())
		}
		return result
	}

	axes := make([][]string, len(dims))
	for i, dim := range dims {
		axes[i] = mergeUniverse(opts.Universe[dim], observed[i])
	}

	for _, key := range crossProduct(axes) {
		if acc, exists := index[strings.Join(key, keySeparator)]; exists {
			result.Buckets = append(result.Buckets, acc.finalize())
			continue
		}
		result.Buckets = append(result.Buckets, (&accumulator{key: key}).finalize())
	}

	return result
}

func mergeUniverse(universe, observed []string) []string {
	values := slices.Clone(universe)
	for _, v := range observed {
		if !slices.Contains(values, v) {
			values = append(values, v)
		}
	}
	return values
}

func crossProduct(axes [][]string) [][]string {
	combos := [][]string{{}}
	for _, axis := range axes {
		next := make([][]string, 0, len(combos)*len(axis))
		for _, prefix := range combos {
			for _, v := range axis {
				key := make([]string, len(prefix), len(prefix)+1)
				copy(key, prefix)
				next = append(next, append(key, v))
			}
		}
		combos = next
	}
	return combos
}

// Rank ordena os buckets pela métrica em ordem decrescente. A ordenação é estável:
// empates mantêm a ordem de descoberta.
func Rank(result domain.AggregateResult, metric Metric) domain.AggregateResult {
	ranked := domain.AggregateResult{
		Dimensions: slices.Clone(result.Dimensions),
		Buckets:    slices.Clone(result.Buckets),
	}

	sort.SliceStable(ranked.Buckets, func(i, j int) bool {
		return metricValue(ranked.Buckets[i], metric) > metricValue(ranked.Buckets[j], metric)
	})

	return ranked
}

func metricValue(b domain.Bucket, metric Metric) float64 {
	switch metric {
	case MetricProfit:
		return b.Profit
	case MetricMargin:
		return b.MarginPct
	case MetricAverageTicket:
		return b.AverageTicket
	case MetricCount:
		return float64(b.Count)
	default:
		return b.Revenue
	}
}

// SortByKey ordena pelos valores das chaves; para dimensões de tempo a ordem é cronológica
func SortByKey(result domain.AggregateResult) domain.AggregateResult {
	sorted := domain.AggregateResult{
		Dimensions: slices.Clone(result.Dimensions),
		Buckets:    slices.Clone(result.Buckets),
	}

	sort.SliceStable(sorted.Buckets, func(i, j int) bool {
		return keyLess(sorted.Dimensions, sorted.Buckets[i].Key, sorted.Buckets[j].Key)
	})

	return sorted
}

// keyLess compara chave a chave; year_month usa a ordem de domain.Period
func keyLess(dims []domain.Dimension, a, b []string) bool {
	for i := 0; i < len(a) && i < len(b); i++ {
		if a[i] == b[i] {
			continue
		}

		if i < len(dims) && dims[i] == domain.DimensionYearMonth {
			pa, errA := domain.ParsePeriod(a[i])
			pb, errB := domain.ParsePeriod(b[i])
			if errA == nil && errB == nil {
				return pa.Before(pb)
			}
		}
		return a[i] < b[i]
	}
	return len(a) < len(b)
}

// Pivot monta a tabela linhas x colunas de receita de um resultado com duas dimensões
func Pivot(result domain.AggregateResult) (domain.PivotTable, error) {
	if len(result.Dimensions) != 2 {
		return domain.PivotTable{}, fmt.Errorf("%w: pivot exige 2 dimensões, recebido %d", ErrInvalidDimensions, len(result.Dimensions))
	}

	table := domain.PivotTable{
		RowDimension:    result.Dimensions[0],
		ColumnDimension: result.Dimensions[1],
		Rows:            make([]string, 0),
		Columns:         make([]string, 0),
	}

	rowIndex := make(map[string]int)
	colIndex := make(map[string]int)
	for _, b := range result.Buckets {
		if _, ok := rowIndex[b.Key[0]]; !ok {
			rowIndex[b.Key[0]] = len(table.Rows)
			table.Rows = append(table.Rows, b.Key[0])
		}
		if _, ok := colIndex[b.Key[1]]; !ok {
			colIndex[b.Key[1]] = len(table.Columns)
			table.Columns = append(table.Columns, b.Key[1])
		}
	}

	table.Values = make([][]float64, len(table.Rows))
	for i := range table.Values {
		table.Values[i] = make([]float64, len(table.Columns))
	}

	for _, b := range result.Buckets {
		table.Values[rowIndex[b.Key[0]]][colIndex[b.Key[1]]] += b.Revenue
	}

	return table, nil
}

// Series converte um resultado de uma dimensão em série de receita
func Series(result domain.AggregateResult) []domain.SeriesPoint {
	points := make([]domain.SeriesPoint, 0, len(result.Buckets))
	for _, b := range result.Buckets {
		points = append(points, domain.SeriesPoint{
			Label: strings.Join(b.Key, "/"),
			Value: b.Revenue,
		})
	}
	return points
}

// SeriesValues extrai apenas os valores de uma série
func SeriesValues(points []domain.SeriesPoint) []float64 {
	values := make([]float64, len(points))
	for i, p := range points {
		values[i] = p.Value
	}
	return values
}

// IsNonDecreasing verifica se a série nunca diminui. Séries vazias ou de um ponto são não decrescentes.
func IsNonDecreasing(series []float64) bool {
	for i := 1; i < len(series); i++ {
		if series[i] < series[i-1] {
			return false
		}
	}
	return true
}

// Totals resume todos os registros sem agrupamento
func Totals(records []*domain.SaleRecord) domain.Totals {
	acc := &accumulator{}
	totals := domain.Totals{}

	for _, r := range records {
		if r == nil {
			continue
		}
		acc.add(r)

		if totals.FirstDate.IsZero() || r.Date.Before(totals.FirstDate) {
			totals.FirstDate = r.Date
		}
		if r.Date.After(totals.LastDate) {
			totals.LastDate = r.Date
		}
	}

	bucket := acc.finalize()
	totals.Revenue = bucket.Revenue
	totals.Cost = bucket.Cost
	totals.Profit = bucket.Profit
	totals.MarginPct = bucket.MarginPct
	totals.Count = bucket.Count
	totals.AverageTicket = bucket.AverageTicket

	return totals
}

// FilterByYear retorna os registros de um ano, sem copiar os registros
func FilterByYear(records []*domain.SaleRecord, year int) []*domain.SaleRecord {
	filtered := make([]*domain.SaleRecord, 0)
	for _, r := range records {
		if r != nil && r.Date.Year() == year {
			filtered = append(filtered, r)
		}
	}
	return filtered
}

// Years retorna os anos presentes nos registros em ordem crescente
func Years(records []*domain.SaleRecord) []int {
	result := Aggregate(records, Options{}, domain.DimensionYear)
	years := make([]int, 0, len(result.Buckets))
	for _, b := range result.Buckets {
		year, err := strconv.Atoi(b.Key[0])
		if err != nil {
			continue
		}
		years = append(years, year)
	}
	slices.Sort(years)
	return years
}

// LinearTrend ajusta uma reta por mínimos quadrados usando os índices 0..n-1 como x
func LinearTrend(values []float64) domain.TrendLine {
	n := float64(len(values))
	switch len(values) {
	case 0:
		return domain.TrendLine{}
	case 1:
		return domain.TrendLine{Intercept: values[0]}
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, y := range values {
		x := float64(i)
		sumX += x
		sumY += y
		sumXY += x * y
		sumXX += x * x
	}

	denominator := n*sumXX - sumX*sumX
	if denominator == 0 {
		return domain.TrendLine{Intercept: sumY / n}
	}

	slope := (n*sumXY - sumX*sumY) / denominator
	return domain.TrendLine{
		Slope:     slope,
		Intercept: (sumY - slope*sumX) / n,
	}
}
