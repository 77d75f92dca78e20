// Package reporting orquestra leitura, agregação e projeção e devolve os relatórios prontos
package reporting

import (
	"context"
	"fmt"
	"strconv"

	"github.com/vfg2006/sales-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/aggregating"
	"github.com/vfg2006/sales-analytics/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics/pkg/log"
)

// ForecastOptions sobrescreve a configuração padrão.
// TargetYear 0 e GrowthMultiplier nil mantêm o padrão.
type ForecastOptions struct {
	TargetYear       int
	GrowthMultiplier *float64
}

var _ Reporter = (*Service)(nil)

type Service struct {
	salesRepository    repository.SalesRepository
	customerRepository repository.CustomerRepository
	forecastConfig     forecasting.Config
}

// NewService cria o serviço de relatórios
func NewService(
	salesRepo repository.SalesRepository,
	customerRepo repository.CustomerRepository,
	forecastCfg forecasting.Config,
) *Service {
	return &Service{
		salesRepository:    salesRepo,
		customerRepository: customerRepo,
		forecastConfig:     forecastCfg,
	}
}

func (s *Service) Load(ctx context.Context, filters *domain.SalesFilters) ([]*domain.SaleRecord, error) {
	logger := log.ForContext(ctx)

	records, err := s.salesRepository.FetchSales(ctx, filters)
	if err != nil {
		logger.WithError(err).Error("Erro ao buscar vendas")
		return nil, dataUnavailable(err)
	}

	if invalid := CountInvalidRecords(records); invalid > 0 {
		logger.WithField("invalid_records", invalid).
			Warn("Vendas com quantidade não positiva ou desconto fora da tabela; mantidas nos totais")
	}

	mismatches := CountPriceMismatches(records)
	if mismatches > 0 {
		logger.WithField("price_mismatches", mismatches).
			Warn("Vendas com preço final divergente do preço de lista com desconto; usando o preço gravado")
	}

	logger.WithField("records", len(records)).Debug("Vendas carregadas")

	return records, nil
}

func (s *Service) Summary(ctx context.Context, filters *domain.SalesFilters) (*domain.SalesSummary, error) {
	records, err := s.Load(ctx, filters)
	if err != nil {
		return nil, err
	}

	summary := BuildSummary(records)
	return &summary, nil
}

func (s *Service) Aggregate(ctx context.Context, filters *domain.SalesFilters, dense bool, dims ...domain.Dimension) (domain.AggregateResult, error) {
	if len(dims) == 0 {
		return domain.AggregateResult{}, NewReportError(aggregating.ErrInvalidDimensions, CodeInvalidRequest, StageAggregate, "informe ao menos uma dimensão")
	}

	records, err := s.Load(ctx, filters)
	if err != nil {
		return domain.AggregateResult{}, err
	}

	return aggregating.SortByKey(aggregating.Aggregate(records, aggregating.Options{Dense: dense}, dims...)), nil
}

func (s *Service) DeepAnalysis(ctx context.Context, filters *domain.SalesFilters, year int) (*domain.DeepAnalysis, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}

	records, err := s.Load(ctx, filters)
	if err != nil {
		return nil, err
	}

	customers, err := s.CustomersByRegion(ctx)
	if err != nil {
		return nil, err
	}

	analysis, err := BuildDeepAnalysis(records, customers, year)
	if err != nil {
		return nil, NewReportError(err, CodeReportFailed, StageAggregate, "")
	}

	return analysis, nil
}

func (s *Service) CustomersByRegion(ctx context.Context) ([]domain.CustomerRegionCount, error) {
	customers, err := s.customerRepository.CountByRegion(ctx)
	if err != nil {
		log.ForContext(ctx).WithError(err).Error("Erro ao contar clientes por região")
		return nil, dataUnavailable(err)
	}
	return customers, nil
}

func (s *Service) Forecast(ctx context.Context, filters *domain.SalesFilters, opts ForecastOptions) (*domain.Forecast, error) {
	if err := validateYear(opts.TargetYear); err != nil {
		return nil, err
	}

	records, err := s.Load(ctx, filters)
	if err != nil {
		return nil, err
	}

	return s.project(records, opts)
}

func (s *Service) FullReport(ctx context.Context, filters *domain.SalesFilters, year int, opts ForecastOptions) (*domain.FullReport, error) {
	if err := validateYear(year); err != nil {
		return nil, err
	}
	if err := validateYear(opts.TargetYear); err != nil {
		return nil, err
	}

	records, err := s.Load(ctx, filters)
	if err != nil {
		return nil, err
	}

	customers, err := s.CustomersByRegion(ctx)
	if err != nil {
		return nil, err
	}

	deep, err := BuildDeepAnalysis(records, customers, year)
	if err != nil {
		return nil, NewReportError(err, CodeReportFailed, StageAggregate, "")
	}

	forecast, err := s.project(records, opts)
	if err != nil {
		return nil, err
	}

	return &domain.FullReport{
		Summary:  BuildSummary(records),
		Deep:     *deep,
		Forecast: *forecast,
	}, nil
}

func (s *Service) project(records []*domain.SaleRecord, opts ForecastOptions) (*domain.Forecast, error) {
	cfg := s.forecastConfig
	if opts.TargetYear != 0 {
		cfg.TargetYear = opts.TargetYear
	}
	if opts.GrowthMultiplier != nil {
		cfg.GrowthMultiplier = *opts.GrowthMultiplier
	}

	forecast, err := forecasting.Project(records, cfg)
	if err != nil {
		return nil, NewReportError(err, CodeInvalidRequest, StageForecast, "")
	}

	return forecast, nil
}

func validateYear(year int) error {
	if year < 0 || year > 9999 {
		return NewReportError(ErrInvalidYear, CodeInvalidRequest, StageAggregate, strconv.Itoa(year))
	}
	return nil
}

// CountInvalidRecords conta vendas com quantidade <= 0 ou desconto fora de domain.AllowedDiscounts
func CountInvalidRecords(records []*domain.SaleRecord) int {
	count := 0
	for _, r := range records {
		if r != nil && !r.IsValid() {
			count++
		}
	}
	return count
}

// CountPriceMismatches conta vendas cujo preço gravado diverge do preço de lista com desconto
func CountPriceMismatches(records []*domain.SaleRecord) int {
	count := 0
	for _, r := range records {
		if r != nil && !r.PriceMatchesDiscount() {
			count++
		}
	}
	return count
}

// BuildSummary totais gerais, categorias e regiões por receita e anos em ordem cronológica
func BuildSummary(records []*domain.SaleRecord) domain.SalesSummary {
	noOpts := aggregating.Options{}

	return domain.SalesSummary{
		Totals:          aggregating.Totals(records),
		ByCategory:      aggregating.Rank(aggregating.Aggregate(records, noOpts, domain.DimensionCategory), aggregating.MetricRevenue),
		ByRegion:        aggregating.Rank(aggregating.Aggregate(records, noOpts, domain.DimensionRegion), aggregating.MetricRevenue),
		ByYear:          aggregating.SortByKey(aggregating.Aggregate(records, noOpts, domain.DimensionYear)),
		PriceMismatches: CountPriceMismatches(records),
		InvalidRecords:  CountInvalidRecords(records),
	}
}

// BuildDeepAnalysis monta a análise aprofundada do ano informado (0: último ano com dados)
func BuildDeepAnalysis(records []*domain.SaleRecord, customers []domain.CustomerRegionCount, year int) (*domain.DeepAnalysis, error) {
	noOpts := aggregating.Options{}

	if year == 0 {
		if years := aggregating.Years(records); len(years) > 0 {
			year = years[len(years)-1]
		}
	}

	regionCategory := aggregating.SortByKey(aggregating.Aggregate(records, aggregating.Options{Dense: true},
		domain.DimensionRegion, domain.DimensionCategory))
	pivot, err := aggregating.Pivot(regionCategory)
	if err != nil {
		return nil, err
	}

	trend := aggregating.Series(aggregating.SortByKey(aggregating.Aggregate(records, noOpts, domain.DimensionYearMonth)))

	comparison, err := BuildComparison(records, year)
	if err != nil {
		return nil, err
	}

	if customers == nil {
		customers = make([]domain.CustomerRegionCount, 0)
	}

	return &domain.DeepAnalysis{
		RegionCategory:    pivot,
		Monthly:           BuildMonthlyBehavior(records, year),
		Trend:             trend,
		TrendLine:         aggregating.LinearTrend(aggregating.SeriesValues(trend)),
		MarginByCategory:  aggregating.Rank(aggregating.Aggregate(records, noOpts, domain.DimensionCategory), aggregating.MetricMargin),
		TicketByRegion:    aggregating.Rank(aggregating.Aggregate(records, noOpts, domain.DimensionRegion), aggregating.MetricAverageTicket),
		CustomersByRegion: customers,
		Comparison:        comparison,
	}, nil
}

// BuildMonthlyBehavior receita mês a mês do ano e se ela nunca diminui
func BuildMonthlyBehavior(records []*domain.SaleRecord, year int) domain.MonthlyBehavior {
	monthly := aggregating.SortByKey(aggregating.Aggregate(aggregating.FilterByYear(records, year), aggregating.Options{}, domain.DimensionMonth))

	series := make([]domain.SeriesPoint, 0, monthly.Len())
	for _, b := range monthly.Buckets {
		month, err := strconv.Atoi(b.Key[0])
		if err != nil {
			continue
		}
		series = append(series, domain.SeriesPoint{Label: domain.MonthName(month), Value: b.Revenue})
	}

	return domain.MonthlyBehavior{
		Year:            year,
		Series:          series,
		NonDecreasing:   aggregating.IsNonDecreasing(aggregating.SeriesValues(series)),
		MonthsWithSales: len(series),
	}
}

// BuildComparison receita de cada mês do ano contra a média do mesmo mês em todos os anos
func BuildComparison(records []*domain.SaleRecord, year int) (domain.YearComparison, error) {
	history, err := forecasting.BuildHistory(records)
	if err != nil {
		return domain.YearComparison{}, fmt.Errorf("erro ao calcular histórico: %w", err)
	}

	comparison := domain.YearComparison{
		Year:          year,
		YearsAveraged: history.Years,
		Rows:          make([]domain.ComparisonRow, 0, 12),
	}

	var sum float64
	var months int
	for month := 1; month <= 12; month++ {
		row := domain.ComparisonRow{
			Month:             month,
			MonthName:         domain.MonthName(month),
			HistoricalAverage: history.Averages[month-1],
			YearValue:         history.ByPeriod[domain.Period{Year: year, Month: month}],
		}
		row.Difference = row.YearValue - row.HistoricalAverage
		comparison.Rows = append(comparison.Rows, row)

		if history.YearsObserved[month-1] > 0 {
			sum += row.HistoricalAverage
			months++
		}
	}

	if months > 0 {
		comparison.OverallAverage = sum / float64(months)
	}

	return comparison, nil
}
