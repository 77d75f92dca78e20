package handler

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strconv"
	"strings"

	"github.com/vfg2006/sales-analytics/infrastructure/exporter"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/aggregating"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics/pkg/apiErrors"
	"github.com/vfg2006/sales-analytics/pkg/log"
	"github.com/vfg2006/sales-analytics/pkg/utils"
)

// parseFilters lê start e end (YYYY-MM-DD, ambos inclusivos)
func parseFilters(r *http.Request) (*domain.SalesFilters, error) {
	query := r.URL.Query()

	start, err := utils.ParseDate(query.Get("start"))
	if err != nil {
		return nil, fmt.Errorf("start inválido: %w", err)
	}

	end, err := utils.ParseEndDate(query.Get("end"))
	if err != nil {
		return nil, fmt.Errorf("end inválido: %w", err)
	}

	if start != nil && end != nil && !start.Before(*end) {
		return nil, errors.New("start deve ser anterior ou igual a end")
	}

	return &domain.SalesFilters{StartDate: start, EndDate: end}, nil
}

func parseYear(r *http.Request) (int, error) {
	raw := r.URL.Query().Get("year")
	if raw == "" {
		return 0, nil
	}

	year, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("year inválido: %q", raw)
	}
	return year, nil
}

func parseForecastOptions(r *http.Request) (reporting.ForecastOptions, error) {
	year, err := parseYear(r)
	if err != nil {
		return reporting.ForecastOptions{}, err
	}

	opts := reporting.ForecastOptions{TargetYear: year}

	if raw := r.URL.Query().Get("growth"); raw != "" {
		growth, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(growth) || math.IsInf(growth, 0) {
			return reporting.ForecastOptions{}, fmt.Errorf("growth inválido: %q", raw)
		}
		opts.GrowthMultiplier = &growth
	}

	return opts, nil
}

// writeReportError traduz o erro do serviço para o código da API
func writeReportError(w http.ResponseWriter, r *http.Request, err error, message string) {
	var reportErr *reporting.ReportError
	if errors.As(err, &reportErr) {
		switch reportErr.Code {
		case reporting.CodeDataUnavailable:
			apiErrors.WriteError(w, apiErrors.ErrDataUnavailable, "Dados de vendas indisponíveis", nil)
			return
		case reporting.CodeInvalidRequest:
			apiErrors.WriteError(w, apiErrors.ErrInvalidRequest, reportErr.Error(), nil)
			return
		}
	}

	log.ForContext(r.Context()).WithError(err).Error(message)
	apiErrors.WriteError(w, apiErrors.ErrInternalServer, message, nil)
}

func writeResponse(w http.ResponseWriter, r *http.Request, v any) {
	if err := utils.WriteJSON(w, http.StatusOK, v); err != nil {
		log.ForContext(r.Context()).WithError(err).Error("Erro ao serializar resposta")
		apiErrors.WriteError(w, apiErrors.ErrInternalServer, "Erro ao serializar resposta", nil)
	}
}

// GetSummary totais gerais e vendas por categoria, região e ano
func GetSummary(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		summary, err := service.Summary(r.Context(), filters)
		if err != nil {
			writeReportError(w, r, err, "Erro ao gerar resumo de vendas")
			return
		}

		writeResponse(w, r, summary)
	}
}

// GetAggregates agrupamento livre: ?by=region,category&dense=true
func GetAggregates(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		by := r.URL.Query().Get("by")
		if by == "" {
			apiErrors.WriteError(w, apiErrors.ErrMissingRequiredData, "Informe as dimensões em by", domain.Dimensions)
			return
		}

		dims := make([]domain.Dimension, 0)
		for _, raw := range strings.Split(by, ",") {
			dim, err := aggregating.ParseDimension(strings.TrimSpace(raw))
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), domain.Dimensions)
				return
			}
			dims = append(dims, dim)
		}

		dense := false
		if raw := r.URL.Query().Get("dense"); raw != "" {
			dense, err = strconv.ParseBool(raw)
			if err != nil {
				apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, "dense deve ser true ou false", nil)
				return
			}
		}

		result, err := service.Aggregate(r.Context(), filters, dense, dims...)
		if err != nil {
			writeReportError(w, r, err, "Erro ao agregar vendas")
			return
		}

		writeResponse(w, r, result)
	}
}

func deepAnalysis(service reporting.Reporter, w http.ResponseWriter, r *http.Request) (*domain.DeepAnalysis, bool) {
	filters, err := parseFilters(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, false
	}

	year, err := parseYear(r)
	if err != nil {
		apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
		return nil, false
	}

	analysis, err := service.DeepAnalysis(r.Context(), filters, year)
	if err != nil {
		writeReportError(w, r, err, "Erro ao gerar análise de vendas")
		return nil, false
	}

	return analysis, true
}

// GetDeepAnalysis análise completa do ano (?year=, padrão: último ano com dados)
func GetDeepAnalysis(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analysis, ok := deepAnalysis(service, w, r); ok {
			writeResponse(w, r, analysis)
		}
	}
}

// GetMonthly vendas mês a mês do ano e se cresceram de forma constante
func GetMonthly(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analysis, ok := deepAnalysis(service, w, r); ok {
			writeResponse(w, r, analysis.Monthly)
		}
	}
}

// GetComparison ano de referência contra a média histórica por mês
func GetComparison(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if analysis, ok := deepAnalysis(service, w, r); ok {
			writeResponse(w, r, analysis.Comparison)
		}
	}
}

func GetCustomersByRegion(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		customers, err := service.CustomersByRegion(r.Context())
		if err != nil {
			writeReportError(w, r, err, "Erro ao contar clientes por região")
			return
		}

		writeResponse(w, r, customers)
	}
}

// GetForecast projeção mensal (?year= ano alvo, ?growth= multiplicador)
func GetForecast(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		opts, err := parseForecastOptions(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		forecast, err := service.Forecast(r.Context(), filters, opts)
		if err != nil {
			writeReportError(w, r, err, "Erro ao gerar previsão de vendas")
			return
		}

		writeResponse(w, r, forecast)
	}
}

// ExportWorkbook planilha com todos os relatórios e gráficos
func ExportWorkbook(service reporting.Reporter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		filters, err := parseFilters(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		year, err := parseYear(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}

		opts, err := parseForecastOptions(r)
		if err != nil {
			apiErrors.WriteError(w, apiErrors.ErrInvalidFormat, err.Error(), nil)
			return
		}
		// year seleciona o ano da análise; a previsão usa o ano seguinte aos dados
		opts.TargetYear = 0

		report, err := service.FullReport(r.Context(), filters, year, opts)
		if err != nil {
			writeReportError(w, r, err, "Erro ao gerar relatório completo")
			return
		}

		f, err := exporter.Build(report)
		if err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao gerar planilha")
			apiErrors.WriteError(w, apiErrors.ErrExportFailed, "Erro ao gerar planilha", nil)
			return
		}
		defer f.Close()

		w.Header().Set("Content-Type", exporter.ContentType)
		w.Header().Set("Content-Disposition", "attachment; filename=reporte_ventas.xlsx")
		if err := f.Write(w); err != nil {
			log.ForContext(r.Context()).WithError(err).Error("Erro ao enviar planilha")
		}
	}
}
