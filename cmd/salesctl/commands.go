package main

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-analytics/infrastructure/exporter"
	"github.com/vfg2006/sales-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-analytics/infrastructure/seeding"
	"github.com/vfg2006/sales-analytics/internal/api"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/usecases/aggregating"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics/pkg/log"
	"github.com/vfg2006/sales-analytics/pkg/utils"
)

func (a *app) seedCmd() *cobra.Command {
	var reset, initSchema bool

	cmd := &cobra.Command{
		Use:   "seed",
		Short: "Gera e grava o conjunto sintético de vendas",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			seedCfg := a.cfg.Seed

			start, err := utils.ParseDate(seedCfg.StartDate)
			if err != nil || start == nil {
				return fmt.Errorf("SEED_START_DATE inválida: %q", seedCfg.StartDate)
			}
			end, err := utils.ParseDate(seedCfg.EndDate)
			if err != nil || end == nil {
				return fmt.Errorf("SEED_END_DATE inválida: %q", seedCfg.EndDate)
			}

			opts := seeding.Options{
				Seed:      seedCfg.RandomSeed,
				Customers: seedCfg.Customers,
				Sellers:   seedCfg.Sellers,
				Sales:     seedCfg.Sales,
				StartDate: *start,
				EndDate:   *end,
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				seeder := seeding.NewSeeder(repository.NewSeedRepository(s.conn))

				result, err := seeder.Run(ctx, opts, seeding.RunOptions{
					Reset:      reset,
					InitSchema: initSchema,
					BatchSize:  seedCfg.BatchSize,
				})
				if err != nil {
					return err
				}

				return a.emit(result, func() {
					fmt.Fprintf(a.out, "Dados gerados: %d regiões, %d categorias, %d produtos, %d clientes, %d vendedores, %d vendas\n",
						result.Regions, result.Categories, result.Products, result.Customers, result.Sellers, result.Sales)
					fmt.Fprintf(a.out, "Total de vendas no banco: %d\n", result.TotalSales)
				})
			})
		},
	}

	cmd.Flags().BoolVar(&reset, "reset", false, "Apaga os dados existentes antes de inserir")
	cmd.Flags().BoolVar(&initSchema, "init-schema", false, "Cria as tabelas antes de inserir")

	return cmd
}

func (a *app) loadCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "load",
		Short: "Carrega as vendas e mostra quantidade, período, receita e lucro",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				records, err := s.reporter.Load(ctx, s.filters)
				if err != nil {
					return err
				}

				totals := aggregating.Totals(records)
				return a.emit(totals, func() { s.printer.Load(totals) })
			})
		},
	}
}

func (a *app) summaryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "summary",
		Short: "Totais gerais e vendas por categoria, região e ano",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				summary, err := s.reporter.Summary(ctx, s.filters)
				if err != nil {
					return err
				}

				return a.emit(summary, func() { s.printer.Summary(summary) })
			})
		},
	}
}

func (a *app) aggregateCmd() *cobra.Command {
	var by string
	var dense bool

	cmd := &cobra.Command{
		Use:   "aggregate",
		Short: "Agrupa as vendas pelas dimensões informadas",
		Example: "  salesctl aggregate --by region,category --dense\n" +
			"  salesctl aggregate --by year_month --start 2024-01-01",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			dims := make([]domain.Dimension, 0)
			for _, raw := range strings.Split(by, ",") {
				dim, err := aggregating.ParseDimension(raw)
				if err != nil {
					return err
				}
				dims = append(dims, dim)
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				result, err := s.reporter.Aggregate(ctx, s.filters, dense, dims...)
				if err != nil {
					return err
				}

				return a.emit(result, func() { s.printer.Aggregate(result) })
			})
		},
	}

	cmd.Flags().StringVar(&by, "by", string(domain.DimensionCategory), "Dimensões separadas por vírgula (category, region, month, year, year_month)")
	cmd.Flags().BoolVar(&dense, "dense", false, "Inclui combinações sem vendas")

	return cmd
}

func (a *app) deepCmd() *cobra.Command {
	var year int

	cmd := &cobra.Command{
		Use:   "deep",
		Short: "Análise aprofundada: cruzamentos, tendência, margens e comparação com a média",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				analysis, err := s.reporter.DeepAnalysis(ctx, s.filters, year)
				if err != nil {
					return err
				}

				return a.emit(analysis, func() { s.printer.Deep(analysis) })
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Ano analisado (padrão: último ano com dados)")

	return cmd
}

func (a *app) forecastOptions(cmd *cobra.Command, year int, growth float64) reporting.ForecastOptions {
	opts := reporting.ForecastOptions{TargetYear: year}
	if cmd.Flags().Changed("growth") {
		opts.GrowthMultiplier = &growth
	}
	return opts
}

func (a *app) forecastCmd() *cobra.Command {
	var year int
	var growth float64

	cmd := &cobra.Command{
		Use:   "forecast",
		Short: "Projeção mensal de vendas com fatores sazonais",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := a.forecastOptions(cmd, year, growth)

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				forecast, err := s.reporter.Forecast(ctx, s.filters, opts)
				if err != nil {
					return err
				}

				return a.emit(forecast, func() { s.printer.Forecast(forecast) })
			})
		},
	}

	cmd.Flags().IntVar(&year, "year", 0, "Ano projetado (padrão: ano seguinte aos dados)")
	cmd.Flags().Float64Var(&growth, "growth", 0, "Multiplicador de crescimento (padrão: FORECAST_GROWTH_MULTIPLIER)")

	return cmd
}

func (a *app) exportCmd() *cobra.Command {
	var out string
	var year int

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Gera a planilha XLSX com todos os relatórios e gráficos",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if out == "" {
				out = a.cfg.Export.OutputPath
			}

			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				report, err := s.reporter.FullReport(ctx, s.filters, year, reporting.ForecastOptions{})
				if err != nil {
					return err
				}

				if err := exporter.SaveAs(out, report); err != nil {
					return err
				}

				log.ForContext(ctx).WithField("path", out).Info("Planilha gerada")
				fmt.Fprintf(a.out, "Planilha salva em %s\n", out)
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&out, "out", "", "Caminho do arquivo (padrão: EXPORT_OUTPUT_PATH)")
	cmd.Flags().IntVar(&year, "year", 0, "Ano da análise mensal (padrão: último ano com dados)")

	return cmd
}

func (a *app) serveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Servidor JSON somente leitura com os relatórios",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return a.withSession(cmd, func(ctx context.Context, s *session) error {
				return api.New(a.cfg, s.reporter, s.conn).Run(ctx)
			})
		},
	}
}
