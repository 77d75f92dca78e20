// Package forecasting projeta a receita mensal de um ano futuro a partir das médias históricas
package forecasting

import (
	"fmt"
	"slices"

	"github.com/sirupsen/logrus"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/aggregating"
)

// Config parâmetros da projeção
type Config struct {
	GrowthMultiplier float64
	Factors          domain.SeasonalFactors
	TargetYear       int // 0: ano seguinte ao último ano com dados
}

func DefaultConfig() Config {
	return Config{
		GrowthMultiplier: domain.DefaultGrowthMultiplier,
		Factors:          domain.DefaultSeasonalFactors,
	}
}

func (c Config) Validate() error {
	if !domain.IsPositiveFinite(c.GrowthMultiplier) {
		return fmt.Errorf("%w: multiplicador de crescimento deve ser positivo e finito, recebido %v", ErrInvalidForecastConfig, c.GrowthMultiplier)
	}
	if err := c.Factors.Validate(); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidForecastConfig, err)
	}
	return nil
}

// History totais por (ano, mês) resumidos por mês do calendário
type History struct {
	Averages      [12]float64
	YearsObserved [12]int
	Years         []int
	// ByPeriod receita total de cada (ano, mês) presente nos dados
	ByPeriod map[domain.Period]float64
}

// BuildHistory soma a receita por (ano, mês) e calcula a média de cada mês entre os anos
// em que ele aparece. Meses sem dados ficam com média 0 e YearsObserved 0.
func BuildHistory(records []*domain.SaleRecord) (*History, error) {
	monthly := aggregating.Aggregate(records, aggregating.Options{}, domain.DimensionYearMonth)

	history := &History{
		ByPeriod: make(map[domain.Period]float64, len(monthly.Buckets)),
		Years:    make([]int, 0),
	}

	var sums [12]float64
	for _, bucket := range monthly.Buckets {
		period, err := domain.ParsePeriod(bucket.Key[0])
		if err != nil {
			return nil, err
		}

		history.ByPeriod[period] = bucket.Revenue
		sums[period.Month-1] += bucket.Revenue
		history.YearsObserved[period.Month-1]++

		if !slices.Contains(history.Years, period.Year) {
			history.Years = append(history.Years, period.Year)
		}
	}
	slices.Sort(history.Years)

	for i := range sums {
		if history.YearsObserved[i] > 0 {
			history.Averages[i] = sums[i] / float64(history.YearsObserved[i])
		}
	}

	return history, nil
}

// LastYear último ano com dados, ou 0
func (h *History) LastYear() int {
	if len(h.Years) == 0 {
		return 0
	}
	return h.Years[len(h.Years)-1]
}

// ProjectMonth aplica crescimento e fator sazonal sobre a média histórica.
// growthPct é 0 quando a média histórica é 0.
func ProjectMonth(historicalAverage, growthMultiplier, seasonalFactor float64) (projected float64, growthPct float64) {
	projected = historicalAverage * growthMultiplier * seasonalFactor
	if historicalAverage != 0 {
		growthPct = (projected - historicalAverage) / historicalAverage * 100
	}
	return projected, growthPct
}

// Project gera as 12 projeções mensais, ordenadas por mês
func Project(records []*domain.SaleRecord, cfg Config) (*domain.Forecast, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	history, err := BuildHistory(records)
	if err != nil {
		return nil, err
	}

	forecast := &domain.Forecast{
		TargetYear:        cfg.TargetYear,
		GrowthMultiplier:  cfg.GrowthMultiplier,
		FactorsVersion:    cfg.Factors.Version,
		Projections:       make([]domain.Projection, 0, 12),
		YearsUsed:         slices.Clone(history.Years),
		ReferenceYear:     history.LastYear(),
		MonthsWithoutData: make([]int, 0),
	}

	if forecast.TargetYear == 0 && forecast.ReferenceYear > 0 {
		forecast.TargetYear = forecast.ReferenceYear + 1
	}

	for month := 1; month <= 12; month++ {
		factor := cfg.Factors.Factor(month)
		projection := domain.Projection{
			Month:          month,
			MonthName:      domain.MonthName(month),
			SeasonalFactor: factor,
			YearsObserved:  history.YearsObserved[month-1],
			HasHistory:     history.YearsObserved[month-1] > 0,
		}

		if projection.HasHistory {
			projection.HistoricalAverage = history.Averages[month-1]
			projection.ProjectedValue, projection.GrowthPct = ProjectMonth(projection.HistoricalAverage, cfg.GrowthMultiplier, factor)
		} else {
			forecast.MonthsWithoutData = append(forecast.MonthsWithoutData, month)
		}

		forecast.TotalProjected += projection.ProjectedValue
		forecast.TotalHistorical += projection.HistoricalAverage
		forecast.Projections = append(forecast.Projections, projection)

		if forecast.ReferenceYear > 0 {
			forecast.ReferenceActuals[month-1] = history.ByPeriod[domain.Period{Year: forecast.ReferenceYear, Month: month}]
		}
	}

	if forecast.TotalHistorical != 0 {
		forecast.OverallGrowthPct = (forecast.TotalProjected/forecast.TotalHistorical - 1) * 100
	}

	if len(forecast.MonthsWithoutData) > 0 {
		logrus.WithFields(logrus.Fields{
			"months": forecast.MonthsWithoutData,
			"years":  forecast.YearsUsed,
		}).Warn("Meses sem histórico de vendas: projeção sinalizada e zerada")
	}

	return forecast, nil
}
