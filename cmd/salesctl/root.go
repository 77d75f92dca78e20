package main

import (
	"context"
	"fmt"
	"io"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/vfg2006/sales-analytics/infrastructure/database"
	"github.com/vfg2006/sales-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-analytics/internal/config"
	"github.com/vfg2006/sales-analytics/internal/domain"
	"github.com/vfg2006/sales-analytics/internal/printer"
	"github.com/vfg2006/sales-analytics/internal/usecases/forecasting"
	"github.com/vfg2006/sales-analytics/internal/usecases/reporting"
	"github.com/vfg2006/sales-analytics/pkg/log"
	"github.com/vfg2006/sales-analytics/pkg/utils"
)

// app estado compartilhado pelos comandos de uma execução
type app struct {
	cfg    *config.Config
	out    io.Writer
	start  string
	end    string
	asJSON bool

	// connect abre a conexão do comando; substituível nos testes
	connect func(ctx context.Context, cfg config.Database) (database.Conn, error)
}

// session recursos abertos para um único comando
type session struct {
	conn     database.Conn
	reporter *reporting.Service
	printer  *printer.Printer
	filters  *domain.SalesFilters
}

func newRootCmd() *cobra.Command {
	return newApp(func(ctx context.Context, cfg config.Database) (database.Conn, error) {
		return database.NewConnection(ctx, cfg)
	}).rootCmd()
}

func newApp(connect func(ctx context.Context, cfg config.Database) (database.Conn, error)) *app {
	return &app{connect: connect}
}

func (a *app) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "salesctl",
		Short:         "Análise e previsão de vendas",
		Long:          "Gera dados sintéticos, relatórios de vendas, previsão mensal e a planilha com gráficos.",
		SilenceUsage:  true,
		SilenceErrors: false,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return a.init(cmd)
		},
	}

	root.PersistentFlags().StringVar(&a.start, "start", "", "Data inicial (YYYY-MM-DD, inclusiva)")
	root.PersistentFlags().StringVar(&a.end, "end", "", "Data final (YYYY-MM-DD, inclusiva)")
	root.PersistentFlags().BoolVar(&a.asJSON, "json", false, "Imprime o resultado em JSON")

	root.AddCommand(
		a.seedCmd(),
		a.loadCmd(),
		a.summaryCmd(),
		a.aggregateCmd(),
		a.deepCmd(),
		a.forecastCmd(),
		a.exportCmd(),
		a.serveCmd(),
	)

	return root
}

func (a *app) init(cmd *cobra.Command) error {
	a.out = cmd.OutOrStdout()

	cfg, err := config.NewConfig()
	if err != nil {
		return err
	}
	a.cfg = cfg

	if err := log.Setup(cfg.App.LogLevel); err != nil {
		logrus.Warnf("Nível de log inválido: %s, usando 'info'", cfg.App.LogLevel)
		_ = log.Setup("info")
	}

	runID, err := utils.GenerateID()
	if err != nil {
		return fmt.Errorf("erro ao gerar id da execução: %w", err)
	}
	cmd.SetContext(log.WithRunID(cmd.Context(), runID))

	return nil
}

func (a *app) filters() (*domain.SalesFilters, error) {
	start, err := utils.ParseDate(a.start)
	if err != nil {
		return nil, fmt.Errorf("--start inválido: %w", err)
	}

	end, err := utils.ParseEndDate(a.end)
	if err != nil {
		return nil, fmt.Errorf("--end inválido: %w", err)
	}

	if start != nil && end != nil && !start.Before(*end) {
		return nil, fmt.Errorf("--start deve ser anterior ou igual a --end")
	}

	return &domain.SalesFilters{StartDate: start, EndDate: end}, nil
}

func (a *app) forecastConfig() forecasting.Config {
	return forecasting.Config{
		GrowthMultiplier: a.cfg.Forecast.GrowthMultiplier,
		Factors:          a.cfg.Forecast.SeasonalFactors,
		TargetYear:       a.cfg.Forecast.TargetYear,
	}
}

// withSession abre a conexão do comando e a libera em todos os caminhos
func (a *app) withSession(cmd *cobra.Command, fn func(ctx context.Context, s *session) error) error {
	ctx := cmd.Context()
	logger := log.ForContext(ctx)

	filters, err := a.filters()
	if err != nil {
		return err
	}

	conn, err := a.connect(ctx, a.cfg.Database)
	if err != nil {
		logger.WithError(err).Error("Erro ao conectar ao banco de dados")
		return err
	}
	defer func() {
		if err := conn.Close(); err != nil {
			logger.WithError(err).Warn("Erro ao fechar conexão")
		}
	}()

	logger.WithField("driver", conn.Driver()).Debug("Conexão estabelecida")

	s := &session{
		conn: conn,
		reporter: reporting.NewService(
			repository.NewSalesRepository(conn),
			repository.NewCustomerRepository(conn),
			a.forecastConfig(),
		),
		printer: printer.New(a.out),
		filters: filters,
	}

	return fn(ctx, s)
}

// emit imprime JSON quando --json foi informado; caso contrário chama render
func (a *app) emit(v any, render func()) error {
	if a.asJSON {
		out, err := utils.PrettyJson(v)
		if err != nil {
			return fmt.Errorf("erro ao gerar JSON: %w", err)
		}
		fmt.Fprintln(a.out, out)
		return nil
	}
	render()
	return nil
}
