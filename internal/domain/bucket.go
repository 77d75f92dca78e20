package domain

import "time"

// Dimension identifica uma chave de agrupamento
type Dimension string

const (
	DimensionCategory  Dimension = "category"
	DimensionRegion    Dimension = "region"
	DimensionMonth     Dimension = "month"
	DimensionYear      Dimension = "year"
	DimensionYearMonth Dimension = "year_month"
)

var Dimensions = []Dimension{DimensionCategory, DimensionRegion, DimensionMonth, DimensionYear, DimensionYearMonth}

// Bucket acumula as métricas de uma combinação de valores das dimensões
type Bucket struct {
	Key           []string `json:"key"` // Valores na mesma ordem das dimensões do resultado
	Revenue       float64  `json:"revenue"`
	Cost          float64  `json:"cost"`
	Profit        float64  `json:"profit"`
	Quantity      int      `json:"quantity"`
	Count         int      `json:"count"`
	MarginPct     float64  `json:"margin_pct"`     // 0 quando não há receita
	AverageTicket float64  `json:"average_ticket"` // 0 quando não há transações
}

// HasRevenue distingue margem zero de margem indefinida
func (b Bucket) HasRevenue() bool {
	return b.Revenue != 0
}

// AggregateResult é o resultado imutável de uma agregação
type AggregateResult struct {
	Dimensions []Dimension `json:"dimensions"`
	Buckets    []Bucket    `json:"buckets"`
}

// Lookup busca o bucket pelos valores das dimensões
func (r AggregateResult) Lookup(values ...string) (Bucket, bool) {
	if len(values) != len(r.Dimensions) {
		return Bucket{}, false
	}

	for _, b := range r.Buckets {
		if equalKeys(b.Key, values) {
			return b, true
		}
	}
	return Bucket{}, false
}

func (r AggregateResult) TotalRevenue() float64 {
	var total float64
	for _, b := range r.Buckets {
		total += b.Revenue
	}
	return total
}

func (r AggregateResult) Len() int {
	return len(r.Buckets)
}

func equalKeys(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}

// Totals resume o conjunto de vendas sem agrupamento
type Totals struct {
	Revenue       float64   `json:"revenue"`
	Cost          float64   `json:"cost"`
	Profit        float64   `json:"profit"`
	MarginPct     float64   `json:"margin_pct"`
	Count         int       `json:"count"`
	AverageTicket float64   `json:"average_ticket"`
	FirstDate     time.Time `json:"first_date"`
	LastDate      time.Time `json:"last_date"`
}

// PivotTable tabela de receita linhas x colunas (ex.: região x categoria)
type PivotTable struct {
	RowDimension    Dimension   `json:"row_dimension"`
	ColumnDimension Dimension   `json:"column_dimension"`
	Rows            []string    `json:"rows"`
	Columns         []string    `json:"columns"`
	Values          [][]float64 `json:"values"`
}

// SeriesPoint um ponto de uma série temporal
type SeriesPoint struct {
	Label string  `json:"label"`
	Value float64 `json:"value"`
}

// TrendLine reta ajustada por mínimos quadrados sobre os índices da série
type TrendLine struct {
	Slope     float64 `json:"slope"`
	Intercept float64 `json:"intercept"`
}

// At retorna o valor da reta no índice informado
func (t TrendLine) At(index int) float64 {
	return t.Intercept + t.Slope*float64(index)
}
