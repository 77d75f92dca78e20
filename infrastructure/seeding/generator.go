// Package seeding gera o conjunto de dados sintéticos de vendas
package seeding

import (
	"errors"
	"fmt"
	"time"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

var ErrInvalidOptions = errors.New("invalid seed options")

// discountDraw maioria das vendas sem desconto
var discountDraw = []int{0, 0, 0, 5, 10, 15, 20}

var regionNames = []string{"Norte", "Sur", "Este", "Oeste", "Centro"}

var categoryNames = []string{"Electrónica", "Ropa", "Hogar", "Deportes", "Alimentos"}

type productSpec struct {
	name      string
	category  int64
	cost      int64
	listPrice int64
}

// Custos e preços coerentes por categoria
var productSpecs = []productSpec{
	{"Laptop", 1, 800, 1200},
	{"Smartphone", 1, 400, 650},
	{"Tablet", 1, 300, 480},
	{"Audífonos", 1, 50, 90},
	{"Smart TV", 1, 500, 800},
	{"Camisa", 2, 15, 35},
	{"Pantalón", 2, 20, 50},
	{"Zapatos", 2, 30, 80},
	{"Vestido", 2, 25, 65},
	{"Chaqueta", 2, 40, 100},
	{"Sofá", 3, 300, 600},
	{"Mesa", 3, 150, 300},
	{"Lámpara", 3, 30, 70},
	{"Silla", 3, 80, 160},
	{"Estante", 3, 60, 120},
	{"Bicicleta", 4, 200, 380},
	{"Pesas", 4, 40, 80},
	{"Tenis", 4, 45, 90},
	{"Mochila", 4, 25, 55},
	{"Tienda Camping", 4, 100, 200},
	{"Arroz 5kg", 5, 5, 10},
	{"Aceite 1L", 5, 3, 6},
	{"Café 500g", 5, 8, 15},
	{"Azúcar 2kg", 5, 4, 8},
	{"Pasta 500g", 5, 2, 5},
}

type Options struct {
	Seed      uint64
	Customers int
	Sellers   int
	Sales     int
	StartDate time.Time // primeira data de venda possível
	EndDate   time.Time // última data de venda possível (inclusiva)
}

func (o Options) Validate() error {
	if o.Seed == 0 {
		return fmt.Errorf("%w: seed deve ser diferente de zero", ErrInvalidOptions)
	}
	if o.Customers <= 0 || o.Sellers <= 0 {
		return fmt.Errorf("%w: clientes e vendedores devem ser positivos", ErrInvalidOptions)
	}
	if o.Sales < 0 {
		return fmt.Errorf("%w: quantidade de vendas negativa", ErrInvalidOptions)
	}
	if o.EndDate.Before(o.StartDate) {
		return fmt.Errorf("%w: data final antes da inicial", ErrInvalidOptions)
	}
	return nil
}

// Generate produz um conjunto determinístico para a mesma seed
func Generate(opts Options) (*domain.Dataset, error) {
	if err := opts.Validate(); err != nil {
		return nil, err
	}

	faker := gofakeit.New(opts.Seed)

	dataset := &domain.Dataset{
		Regions:    make([]domain.Region, 0, len(regionNames)),
		Categories: make([]domain.Category, 0, len(categoryNames)),
		Products:   make([]domain.Product, 0, len(productSpecs)),
		Customers:  make([]domain.Customer, 0, opts.Customers),
		Sellers:    make([]domain.Seller, 0, opts.Sellers),
		Sales:      make([]domain.Sale, 0, opts.Sales),
	}

	for i, name := range regionNames {
		dataset.Regions = append(dataset.Regions, domain.Region{ID: int64(i + 1), Name: name})
	}

	for i, name := range categoryNames {
		dataset.Categories = append(dataset.Categories, domain.Category{ID: int64(i + 1), Name: name})
	}

	for i, spec := range productSpecs {
		dataset.Products = append(dataset.Products, domain.Product{
			ID:         int64(i + 1),
			Name:       spec.name,
			CategoryID: spec.category,
			UnitCost:   decimal.NewFromInt(spec.cost),
			ListPrice:  decimal.NewFromInt(spec.listPrice),
		})
	}

	// Clientes cadastrados em 2020-2021, vendedores contratados entre 2019 e 2022
	for i := 0; i < opts.Customers; i++ {
		dataset.Customers = append(dataset.Customers, domain.Customer{
			ID:           int64(i + 1),
			FirstName:    faker.FirstName(),
			LastName:     faker.LastName(),
			Email:        faker.Email(),
			RegionID:     int64(faker.IntRange(1, len(regionNames))),
			RegisteredAt: randomDay(faker, date(2020, 1, 1), date(2021, 12, 31)),
		})
	}

	for i := 0; i < opts.Sellers; i++ {
		dataset.Sellers = append(dataset.Sellers, domain.Seller{
			ID:        int64(i + 1),
			FirstName: faker.FirstName(),
			LastName:  faker.LastName(),
			RegionID:  int64(faker.IntRange(1, len(regionNames))),
			HiredAt:   randomDay(faker, date(2019, 1, 1), date(2022, 12, 31)),
		})
	}

	for i := 0; i < opts.Sales; i++ {
		product := dataset.Products[faker.IntRange(0, len(dataset.Products)-1)]
		discount := faker.RandomInt(discountDraw)

		dataset.Sales = append(dataset.Sales, domain.Sale{
			ID:          int64(i + 1),
			Date:        randomDay(faker, opts.StartDate, opts.EndDate),
			CustomerID:  int64(faker.IntRange(1, opts.Customers)),
			SellerID:    int64(faker.IntRange(1, opts.Sellers)),
			ProductID:   product.ID,
			Quantity:    faker.IntRange(1, 5),
			UnitPrice:   FinalPrice(product.ListPrice, discount),
			DiscountPct: discount,
		})
	}

	return dataset, nil
}

// FinalPrice preço de lista com o desconto aplicado, arredondado em 2 casas
func FinalPrice(listPrice decimal.Decimal, discountPct int) decimal.Decimal {
	return listPrice.
		Mul(decimal.NewFromInt(int64(100 - discountPct))).
		Div(decimal.NewFromInt(100)).
		Round(2)
}

// randomDay sorteia um dia entre start e end, ambos inclusivos
func randomDay(faker *gofakeit.Faker, start, end time.Time) time.Time {
	start = truncateDay(start)
	days := int(truncateDay(end).Sub(start).Hours() / 24)
	return start.AddDate(0, 0, faker.IntRange(0, days))
}

func truncateDay(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

func date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.UTC)
}
