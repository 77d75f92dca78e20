package domain

// CustomerRegionCount quantidade de clientes cadastrados por região
type CustomerRegionCount struct {
	Region string `json:"region"`
	Total  int    `json:"total"`
}

// SalesSummary resumo geral de vendas (totais, categoria, região e ano)
type SalesSummary struct {
	Totals          Totals          `json:"totals"`
	ByCategory      AggregateResult `json:"by_category"` // Ordenado por receita desc
	ByRegion        AggregateResult `json:"by_region"`   // Ordenado por receita desc
	ByYear          AggregateResult `json:"by_year"`     // Ordem cronológica
	PriceMismatches int             `json:"price_mismatches"`
	InvalidRecords  int             `json:"invalid_records"` // quantidade <= 0 ou desconto fora da tabela
}

// MonthlyBehavior vendas mês a mês de um ano
type MonthlyBehavior struct {
	Year            int           `json:"year"`
	Series          []SeriesPoint `json:"series"`
	NonDecreasing   bool          `json:"non_decreasing"`
	MonthsWithSales int           `json:"months_with_sales"`
}

// ComparisonRow receita de um mês no ano de referência contra a média histórica
type ComparisonRow struct {
	Month             int     `json:"month"`
	MonthName         string  `json:"month_name"`
	HistoricalAverage float64 `json:"historical_average"`
	YearValue         float64 `json:"year_value"`
	Difference        float64 `json:"difference"`
}

// YearComparison ano de referência x média de todos os anos
type YearComparison struct {
	Year           int             `json:"year"`
	YearsAveraged  []int           `json:"years_averaged"`
	Rows           []ComparisonRow `json:"rows"`
	OverallAverage float64         `json:"overall_average"`
}

// DeepAnalysis análise aprofundada: cruzamentos, tendência, margens e tickets
type DeepAnalysis struct {
	RegionCategory    PivotTable            `json:"region_category"`
	Monthly           MonthlyBehavior       `json:"monthly"`
	Trend             []SeriesPoint         `json:"trend"`
	TrendLine         TrendLine             `json:"trend_line"`
	MarginByCategory  AggregateResult       `json:"margin_by_category"`
	TicketByRegion    AggregateResult       `json:"ticket_by_region"` // Ordenado por ticket médio desc
	CustomersByRegion []CustomerRegionCount `json:"customers_by_region"`
	Comparison        YearComparison        `json:"comparison"`
}

// FullReport todos os relatórios calculados a partir de uma única leitura dos dados
type FullReport struct {
	Summary  SalesSummary `json:"summary"`
	Deep     DeepAnalysis `json:"deep"`
	Forecast Forecast     `json:"forecast"`
}
