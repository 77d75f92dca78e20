package domain

import (
	"fmt"
	"math"
)

// DefaultGrowthMultiplier crescimento base aplicado sobre o histórico (+10%)
const DefaultGrowthMultiplier = 1.10

// SeasonalFactors tabela imutável mês -> multiplicador, versionada separadamente do cálculo
type SeasonalFactors struct {
	Version string      `json:"version"`
	Factors [12]float64 `json:"factors"`
}

// DefaultSeasonalFactors calendário comercial usado quando nenhum arquivo é configurado
var DefaultSeasonalFactors = SeasonalFactors{
	Version: "commercial-calendar-v1",
	Factors: [12]float64{
		0.90, // Jan - início de ano, liquidações
		1.20, // Fev - Dia dos Namorados
		1.05, // Mar - Dia da Mulher
		1.10, // Abr - Semana Santa
		1.25, // Mai - Dia das Mães
		0.95, // Jun
		1.00, // Jul - férias
		1.15, // Ago - volta às aulas
		1.05, // Set
		1.20, // Out - Halloween
		1.25, // Nov - Black Friday
		1.35, // Dez - Natal
	},
}

// Factor retorna o multiplicador do mês (1-12)
func (s SeasonalFactors) Factor(month int) float64 {
	if month < 1 || month > 12 {
		return 0
	}
	return s.Factors[month-1]
}

// Validate garante 12 entradas positivas e finitas
func (s SeasonalFactors) Validate() error {
	for i, f := range s.Factors {
		if !IsPositiveFinite(f) {
			return fmt.Errorf("fator sazonal do mês %d deve ser positivo, recebido %v", i+1, f)
		}
	}
	return nil
}

// IsPositiveFinite rejeita zero, negativos, NaN e infinitos
func IsPositiveFinite(v float64) bool {
	return v > 0 && !math.IsInf(v, 0)
}

// Projection projeção de um mês
type Projection struct {
	Month             int     `json:"month"`
	MonthName         string  `json:"month_name"`
	HistoricalAverage float64 `json:"historical_average"`
	ProjectedValue    float64 `json:"projected_value"`
	GrowthPct         float64 `json:"growth_pct"`
	SeasonalFactor    float64 `json:"seasonal_factor"`
	YearsObserved     int     `json:"years_observed"`
	HasHistory        bool    `json:"has_history"` // false: mês sem dados históricos, valores zerados
}

// Forecast projeção completa de 12 meses
type Forecast struct {
	TargetYear        int          `json:"target_year"`
	GrowthMultiplier  float64      `json:"growth_multiplier"`
	FactorsVersion    string       `json:"factors_version"`
	Projections       []Projection `json:"projections"`
	TotalProjected    float64      `json:"total_projected"`
	TotalHistorical   float64      `json:"total_historical"`
	OverallGrowthPct  float64      `json:"overall_growth_pct"`
	YearsUsed         []int        `json:"years_used"`
	ReferenceYear     int          `json:"reference_year"`
	ReferenceActuals  [12]float64  `json:"reference_actuals"`
	MonthsWithoutData []int        `json:"months_without_data"`
}
