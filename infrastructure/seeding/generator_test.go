package seeding

import (
	"slices"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

func defaultOptions() Options {
	return Options{
		Seed:      42,
		Customers: 200,
		Sellers:   20,
		Sales:     2000,
		StartDate: time.Date(2022, 1, 1, 0, 0, 0, 0, time.UTC),
		EndDate:   time.Date(2024, 12, 31, 0, 0, 0, 0, time.UTC),
	}
}

func TestGenerate(t *testing.T) {
	opts := defaultOptions()

	dataset, err := Generate(opts)
	require.NoError(t, err)

	assert.Len(t, dataset.Regions, 5)
	assert.Len(t, dataset.Categories, 5)
	assert.Len(t, dataset.Products, 25)
	assert.Len(t, dataset.Customers, 200)
	assert.Len(t, dataset.Sellers, 20)
	require.Len(t, dataset.Sales, 2000)

	products := make(map[int64]domain.Product)
	for _, p := range dataset.Products {
		products[p.ID] = p
		assert.True(t, p.ListPrice.GreaterThan(p.UnitCost), "preço de %s deve superar o custo", p.Name)
	}

	for _, sale := range dataset.Sales {
		assert.GreaterOrEqual(t, sale.Quantity, 1)
		assert.LessOrEqual(t, sale.Quantity, 5)
		assert.True(t, slices.Contains(domain.AllowedDiscounts, sale.DiscountPct))
		assert.False(t, sale.Date.Before(opts.StartDate))
		assert.False(t, sale.Date.After(opts.EndDate))
		assert.GreaterOrEqual(t, sale.CustomerID, int64(1))
		assert.LessOrEqual(t, sale.CustomerID, int64(200))
		assert.GreaterOrEqual(t, sale.SellerID, int64(1))
		assert.LessOrEqual(t, sale.SellerID, int64(20))

		product, ok := products[sale.ProductID]
		require.True(t, ok)
		assert.True(t, FinalPrice(product.ListPrice, sale.DiscountPct).Equal(sale.UnitPrice))
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	first, err := Generate(defaultOptions())
	require.NoError(t, err)

	second, err := Generate(defaultOptions())
	require.NoError(t, err)

	assert.Equal(t, first.Customers, second.Customers)
	assert.Equal(t, first.Sales, second.Sales)

	other := defaultOptions()
	other.Seed = 7
	third, err := Generate(other)
	require.NoError(t, err)
	assert.NotEqual(t, first.Sales, third.Sales)
}

func TestGenerate_InvalidOptions(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(o *Options)
	}{
		{name: "Seed zero", mutate: func(o *Options) { o.Seed = 0 }},
		{name: "Sem clientes", mutate: func(o *Options) { o.Customers = 0 }},
		{name: "Vendas negativas", mutate: func(o *Options) { o.Sales = -1 }},
		{name: "Período invertido", mutate: func(o *Options) { o.EndDate = o.StartDate.AddDate(0, 0, -1) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			opts := defaultOptions()
			tt.mutate(&opts)

			_, err := Generate(opts)
			assert.ErrorIs(t, err, ErrInvalidOptions)
		})
	}
}

func TestFinalPrice(t *testing.T) {
	tests := []struct {
		name     string
		list     string
		discount int
		want     string
	}{
		{name: "Sem desconto", list: "1200", discount: 0, want: "1200"},
		{name: "10% de desconto", list: "1200", discount: 10, want: "1080"},
		{name: "Arredonda em 2 casas", list: "15", discount: 15, want: "12.75"},
		{name: "Preço baixo com 5%", list: "5", discount: 5, want: "4.75"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := FinalPrice(decimal.RequireFromString(tt.list), tt.discount)
			assert.True(t, decimal.RequireFromString(tt.want).Equal(got), "recebido %s", got)
		})
	}
}
