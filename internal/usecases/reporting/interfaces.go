package reporting

//go:generate mockgen -source=interfaces.go -destination=mocks/reporter.go -package=mocks

import (
	"context"

	"github.com/vfg2006/sales-analytics/internal/domain"
)

// Reporter define os relatórios disponíveis para a CLI e para a API
type Reporter interface {
	// Load busca as vendas desnormalizadas do período
	Load(ctx context.Context, filters *domain.SalesFilters) ([]*domain.SaleRecord, error)

	// Summary totais gerais e vendas por categoria, região e ano
	Summary(ctx context.Context, filters *domain.SalesFilters) (*domain.SalesSummary, error)

	// Aggregate agrupamento livre pelas dimensões informadas
	Aggregate(ctx context.Context, filters *domain.SalesFilters, dense bool, dims ...domain.Dimension) (domain.AggregateResult, error)

	// DeepAnalysis cruzamentos, tendência e comparação do ano com a média histórica.
	// Ano 0 usa o último ano com dados.
	DeepAnalysis(ctx context.Context, filters *domain.SalesFilters, year int) (*domain.DeepAnalysis, error)

	// CustomersByRegion clientes cadastrados por região
	CustomersByRegion(ctx context.Context) ([]domain.CustomerRegionCount, error)

	// Forecast projeção mensal do ano alvo
	Forecast(ctx context.Context, filters *domain.SalesFilters, opts ForecastOptions) (*domain.Forecast, error)

	// FullReport todos os relatórios a partir de uma única leitura
	FullReport(ctx context.Context, filters *domain.SalesFilters, year int, opts ForecastOptions) (*domain.FullReport, error)
}
