package handler

import (
	"net/http"

	"github.com/vfg2006/sales-analytics/internal/api/handler/router"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
)

func Healthcheck(pinger Pinger) []router.Route {
	return []router.Route{
		{
			Path:    "/healthcheck",
			Method:  http.MethodGet,
			Handler: HealthcheckHandler(pinger),
		},
	}
}

// Reports rotas somente leitura; cada requisição recalcula a partir de uma nova leitura
func Reports(service reporting.Reporter) []router.Route {
	return []router.Route{
		{
			Path:    "/v1/summary",
			Method:  http.MethodGet,
			Handler: GetSummary(service),
		},
		{
			Path:    "/v1/aggregates",
			Method:  http.MethodGet,
			Handler: GetAggregates(service),
		},
		{
			Path:    "/v1/deep",
			Method:  http.MethodGet,
			Handler: GetDeepAnalysis(service),
		},
		{
			Path:    "/v1/monthly",
			Method:  http.MethodGet,
			Handler: GetMonthly(service),
		},
		{
			Path:    "/v1/comparison",
			Method:  http.MethodGet,
			Handler: GetComparison(service),
		},
		{
			Path:    "/v1/customers/regions",
			Method:  http.MethodGet,
			Handler: GetCustomersByRegion(service),
		},
		{
			Path:    "/v1/forecast",
			Method:  http.MethodGet,
			Handler: GetForecast(service),
		},
		{
			Path:    "/v1/export.xlsx",
			Method:  http.MethodGet,
			Handler: ExportWorkbook(service),
		},
	}
}
