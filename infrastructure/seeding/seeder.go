package seeding

import (
	"context"
	"fmt"

	"github.com/vfg2006/sales-analytics/infrastructure/repository"
	"github.com/vfg2006/sales-analytics/pkg/log"
)

// RunOptions controla o que o seed faz com os dados existentes
type RunOptions struct {
	Reset      bool // apaga as linhas antes de inserir
	InitSchema bool // cria as tabelas mesmo que já existam (CREATE IF NOT EXISTS)
	BatchSize  int
}

// Result resumo da carga
type Result struct {
	Regions    int `json:"regions"`
	Categories int `json:"categories"`
	Products   int `json:"products"`
	Customers  int `json:"customers"`
	Sellers    int `json:"sellers"`
	Sales      int `json:"sales"`
	TotalSales int `json:"total_sales"` // vendas no banco após a carga
}

type Seeder struct {
	repository repository.SeedRepository
}

func NewSeeder(repo repository.SeedRepository) *Seeder {
	return &Seeder{repository: repo}
}

// Run gera o conjunto sintético e grava no banco
func (s *Seeder) Run(ctx context.Context, opts Options, runOpts RunOptions) (*Result, error) {
	logger := log.ForContext(ctx)

	dataset, err := Generate(opts)
	if err != nil {
		return nil, err
	}

	exists, err := s.repository.SchemaExists(ctx)
	if err != nil {
		return nil, err
	}

	if !exists || runOpts.InitSchema {
		logger.Info("Criando tabelas")
		if err := s.repository.InitSchema(ctx); err != nil {
			return nil, err
		}
	}

	if runOpts.Reset {
		logger.Warn("Apagando dados existentes")
		if err := s.repository.Reset(ctx); err != nil {
			return nil, err
		}
	}

	logger.WithFields(log.Fields{
		"seed":      opts.Seed,
		"customers": len(dataset.Customers),
		"sellers":   len(dataset.Sellers),
		"sales":     len(dataset.Sales),
	}).Info("Inserindo dados sintéticos")

	if err := s.repository.Insert(ctx, dataset, runOpts.BatchSize); err != nil {
		return nil, fmt.Errorf("erro ao inserir dados sintéticos: %w", err)
	}

	total, err := s.repository.CountSales(ctx)
	if err != nil {
		return nil, err
	}

	return &Result{
		Regions:    len(dataset.Regions),
		Categories: len(dataset.Categories),
		Products:   len(dataset.Products),
		Customers:  len(dataset.Customers),
		Sellers:    len(dataset.Sellers),
		Sales:      len(dataset.Sales),
		TotalSales: total,
	}, nil
}
