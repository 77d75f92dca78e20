package handler

import (
	"context"
	"errors"
	"math"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	jsoniter "github.com/json-iterator/go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-analytics/infrastructure/exporter"
	repoMocks "github.com/vfg2006/sales-analytics/infrastructure/repository/mocks"
	"github.com/vfg2006/sales-analytics/internal/api/handler/router"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting/mocks"
	"github.com/vfg2006/sales-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-analytics/pkg/log"
	"go.uber.org/mock/gomock"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type fakePinger struct {
	err error
}

func (p fakePinger) Ping(context.Context) error {
	return p.err
}

func newRouter(service reporting.Reporter, pinger Pinger) http.Handler {
	return router.New(
		router.WithRoutes(Healthcheck(pinger)...),
		router.WithRoutes(Reports(service)...),
	)
}

func serve(t *testing.T, h http.Handler, target string) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, target, nil))
	return rec
}

func decodeError(t *testing.T, rec *httptest.ResponseRecorder) apiErrors.APIError {
	t.Helper()
	var apiErr apiErrors.APIError
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &apiErr))
	return apiErr
}

func dataUnavailableErr() error {
	return reporting.NewReportError(
		errors.Join(reporting.ErrDataUnavailable, errors.New("connection refused")),
		reporting.CodeDataUnavailable, reporting.StageFetch, "")
}

func TestGetSummary(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	tests := []struct {
		name       string
		target     string
		setup      func()
		wantStatus int
		validate   func(t *testing.T, rec *httptest.ResponseRecorder)
	}{
		{
			name:   "Resumo com filtros de data",
			target: "/v1/summary?start=2023-01-01&end=2023-12-31",
			setup: func() {
				service.EXPECT().
					Summary(gomock.Any(), gomock.Any()).
					DoAndReturn(func(_ context.Context, filters *domain.SalesFilters) (*domain.SalesSummary, error) {
						assert.Equal(t, time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC), *filters.StartDate)
						// Data final inclusiva vira limite exclusivo
						assert.Equal(t, time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), *filters.EndDate)
						return &domain.SalesSummary{Totals: domain.Totals{Revenue: 1500, Count: 3}}, nil
					})
			},
			wantStatus: http.StatusOK,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				var summary domain.SalesSummary
				require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &summary))
				assert.Equal(t, 1500.0, summary.Totals.Revenue)
				assert.Equal(t, 3, summary.Totals.Count)
			},
		},
		{
			name:       "Data em formato inválido",
			target:     "/v1/summary?start=01/01/2023",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code)
			},
		},
		{
			name:       "Período invertido",
			target:     "/v1/summary?start=2024-01-01&end=2023-01-01",
			setup:      func() {},
			wantStatus: http.StatusBadRequest,
		},
		{
			name:   "Banco indisponível",
			target: "/v1/summary",
			setup: func() {
				service.EXPECT().Summary(gomock.Any(), gomock.Any()).Return(nil, dataUnavailableErr())
			},
			wantStatus: http.StatusServiceUnavailable,
			validate: func(t *testing.T, rec *httptest.ResponseRecorder) {
				assert.Equal(t, apiErrors.ErrDataUnavailable, decodeError(t, rec).Code)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tt.setup()
			rec := serve(t, h, tt.target)
			assert.Equal(t, tt.wantStatus, rec.Code)
			if tt.validate != nil {
				tt.validate(t, rec)
			}
		})
	}
}

func TestGetAggregates(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	t.Run("Dimensões e modo denso", func(t *testing.T) {
		service.EXPECT().
			Aggregate(gomock.Any(), gomock.Any(), true, domain.DimensionRegion, domain.DimensionCategory).
			Return(domain.AggregateResult{
				Dimensions: []domain.Dimension{domain.DimensionRegion, domain.DimensionCategory},
				Buckets:    []domain.Bucket{{Key: []string{"Norte", "Ropa"}, Revenue: 10}},
			}, nil)

		rec := serve(t, h, "/v1/aggregates?by=region,category&dense=true")
		require.Equal(t, http.StatusOK, rec.Code)

		var result domain.AggregateResult
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &result))
		assert.Equal(t, []string{"Norte", "Ropa"}, result.Buckets[0].Key)
	})

	t.Run("Sem dimensões", func(t *testing.T) {
		rec := serve(t, h, "/v1/aggregates")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrMissingRequiredData, decodeError(t, rec).Code)
	})

	t.Run("Dimensão desconhecida", func(t *testing.T) {
		rec := serve(t, h, "/v1/aggregates?by=region,seller")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Dense inválido", func(t *testing.T) {
		rec := serve(t, h, "/v1/aggregates?by=year&dense=talvez")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})
}

func TestDeepAnalysisRoutes(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	analysis := &domain.DeepAnalysis{
		Monthly: domain.MonthlyBehavior{
			Year:          2023,
			Series:        []domain.SeriesPoint{{Label: "Jan", Value: 10}, {Label: "Fev", Value: 20}},
			NonDecreasing: true,
		},
		Comparison: domain.YearComparison{Year: 2023, OverallAverage: 15},
	}

	t.Run("Mensal do ano informado", func(t *testing.T) {
		service.EXPECT().DeepAnalysis(gomock.Any(), gomock.Any(), 2023).Return(analysis, nil)

		rec := serve(t, h, "/v1/monthly?year=2023")
		require.Equal(t, http.StatusOK, rec.Code)

		var monthly domain.MonthlyBehavior
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &monthly))
		assert.True(t, monthly.NonDecreasing)
		assert.Len(t, monthly.Series, 2)
	})

	t.Run("Comparação usa ano zero por padrão", func(t *testing.T) {
		service.EXPECT().DeepAnalysis(gomock.Any(), gomock.Any(), 0).Return(analysis, nil)

		rec := serve(t, h, "/v1/comparison")
		require.Equal(t, http.StatusOK, rec.Code)

		var comparison domain.YearComparison
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &comparison))
		assert.Equal(t, 15.0, comparison.OverallAverage)
	})

	t.Run("Análise completa", func(t *testing.T) {
		service.EXPECT().DeepAnalysis(gomock.Any(), gomock.Any(), 0).Return(analysis, nil)

		rec := serve(t, h, "/v1/deep")
		assert.Equal(t, http.StatusOK, rec.Code)
	})

	t.Run("Ano não numérico", func(t *testing.T) {
		rec := serve(t, h, "/v1/monthly?year=abc")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("Ano fora do intervalo", func(t *testing.T) {
		service.EXPECT().DeepAnalysis(gomock.Any(), gomock.Any(), 10000).
			Return(nil, reporting.NewReportError(reporting.ErrInvalidYear, reporting.CodeInvalidRequest, reporting.StageAggregate, "10000"))

		rec := serve(t, h, "/v1/deep?year=10000")
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
	})
}

func TestGetCustomersByRegion(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	service.EXPECT().CustomersByRegion(gomock.Any()).Return([]domain.CustomerRegionCount{{Region: "Norte", Total: 42}}, nil)

	rec := serve(t, h, "/v1/customers/regions")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[{"region":"Norte","total":42}]`, rec.Body.String())

	service.EXPECT().CustomersByRegion(gomock.Any()).Return(nil, errors.New("inesperado"))

	rec = serve(t, h, "/v1/customers/regions")
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestGetForecast(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	t.Run("Ano e crescimento repassados ao serviço", func(t *testing.T) {
		growth := 1.2
		service.EXPECT().
			Forecast(gomock.Any(), gomock.Any(), reporting.ForecastOptions{TargetYear: 2026, GrowthMultiplier: &growth}).
			Return(&domain.Forecast{TargetYear: 2026, GrowthMultiplier: 1.2}, nil)

		rec := serve(t, h, "/v1/forecast?year=2026&growth=1.2")
		require.Equal(t, http.StatusOK, rec.Code)

		var forecast domain.Forecast
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forecast))
		assert.Equal(t, 2026, forecast.TargetYear)
	})

	t.Run("Valor não serializável vira erro interno", func(t *testing.T) {
		service.EXPECT().
			Forecast(gomock.Any(), gomock.Any(), gomock.Any()).
			Return(&domain.Forecast{TotalProjected: math.NaN()}, nil)

		rec := serve(t, h, "/v1/forecast")
		require.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Equal(t, apiErrors.ErrInternalServer, decodeError(t, rec).Code)
	})

	t.Run("Crescimento inválido", func(t *testing.T) {
		for _, growth := range []string{"muito", "NaN", "Inf", "-Inf"} {
			rec := serve(t, h, "/v1/forecast?growth="+growth)
			assert.Equal(t, http.StatusBadRequest, rec.Code, growth)
			assert.Equal(t, apiErrors.ErrInvalidFormat, decodeError(t, rec).Code, growth)
		}
	})
}

func TestGetForecast_GrowthValidatedByService(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	salesRepo := repoMocks.NewMockSalesRepository(ctrl)
	service := reporting.NewService(salesRepo, repoMocks.NewMockCustomerRepository(ctrl), forecasting.DefaultConfig())
	h := newRouter(service, fakePinger{})

	records := []*domain.SaleRecord{{
		Date:      time.Date(2024, time.January, 10, 0, 0, 0, 0, time.UTC),
		Quantity:  1,
		UnitPrice: 100,
		ListPrice: 100,
		Category:  "Hogar",
		Region:    "Norte",
	}}

	tests := []struct {
		name         string
		query        string
		expectedCode int
	}{
		{"Crescimento zero explícito", "?growth=0", http.StatusBadRequest},
		{"Crescimento negativo", "?growth=-0.5", http.StatusBadRequest},
		{"Sem crescimento usa o padrão", "", http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			salesRepo.EXPECT().FetchSales(gomock.Any(), gomock.Any()).Return(records, nil)

			rec := serve(t, h, "/v1/forecast"+tt.query)
			require.Equal(t, tt.expectedCode, rec.Code)

			if tt.expectedCode != http.StatusOK {
				assert.Equal(t, apiErrors.ErrInvalidRequest, decodeError(t, rec).Code)
				return
			}

			var forecast domain.Forecast
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &forecast))
			assert.Equal(t, domain.DefaultGrowthMultiplier, forecast.GrowthMultiplier)
			assert.Equal(t, 2025, forecast.TargetYear)
		})
	}
}

func TestExportWorkbook(t *testing.T) {
	log.SetupTestLogger()
	ctrl := gomock.NewController(t)
	defer ctrl.Finish()

	service := mocks.NewMockReporter(ctrl)
	h := newRouter(service, fakePinger{})

	service.EXPECT().
		FullReport(gomock.Any(), gomock.Any(), 2024, reporting.ForecastOptions{}).
		Return(&domain.FullReport{}, nil)

	rec := serve(t, h, "/v1/export.xlsx?year=2024")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, exporter.ContentType, rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "reporte_ventas.xlsx")
	// Arquivos XLSX são pacotes zip
	assert.Equal(t, "PK", rec.Body.String()[:2])
}

func TestHealthcheck(t *testing.T) {
	log.SetupTestLogger()

	rec := serve(t, newRouter(nil, fakePinger{}), "/healthcheck")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"status":"ok"`)

	rec = serve(t, newRouter(nil, fakePinger{err: errors.New("down")}), "/healthcheck")
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRouter_NotFound(t *testing.T) {
	rec := serve(t, newRouter(nil, fakePinger{}), "/v1/inexistente")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, apiErrors.ErrNotFound, decodeError(t, rec).Code)
}
