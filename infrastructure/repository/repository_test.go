package repository

import (
	"context"
	"errors"
	"regexp"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/lib/pq"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vfg2006/sales-analytics/infrastructure/database"
	"github.com/vfg2006/sales-analytics/internal/config"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

var saleRowColumns = []string{
	"sale_date", "quantity", "unit_price", "discount_pct", "unit_cost", "list_price",
	"seller_id", "seller_first", "seller_last", "customer_id", "customer_first", "customer_last",
	"product_id", "product", "category", "region",
}

func newMockConn(t *testing.T, driver string) (*database.Connection, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return database.NewConnectionFromDB(db, driver), mock
}

func TestSalesRepository_FetchSales(t *testing.T) {
	saleDate := time.Date(2023, 3, 15, 0, 0, 0, 0, time.UTC)
	start := time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	year := 2024

	tests := []struct {
		name     string
		driver   string
		filters  *domain.SalesFilters
		setup    func(mock sqlmock.Sqlmock)
		validate func(t *testing.T, records []*domain.SaleRecord, err error)
	}{
		{
			name:    "Junta vendas com vendedor, cliente, produto, categoria e região",
			driver:  config.DriverPostgres,
			filters: nil,
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(saleRowColumns).
					AddRow(saleDate, int64(2), "1080.00", int64(10), "800.00", "1200.00",
						int64(4), "Ana", "Pérez", int64(7), "Luis", "Gómez",
						int64(1), "Laptop", "Electrónica", "Norte").
					AddRow(saleDate, int64(1), "35.00", int64(0), nil, nil,
						nil, nil, nil, int64(8), "Marta", "Ruiz",
						nil, nil, nil, nil)

				mock.ExpectQuery(regexp.QuoteMeta(
					"FROM sales s LEFT JOIN sellers se ON se.id = s.seller_id " +
						"LEFT JOIN customers c ON c.id = s.customer_id " +
						"LEFT JOIN products p ON p.id = s.product_id " +
						"LEFT JOIN categories cat ON cat.id = p.category_id " +
						"LEFT JOIN regions r ON r.id = se.region_id " +
						"ORDER BY s.sale_date ASC, s.id ASC",
				)).WillReturnRows(rows)
			},
			validate: func(t *testing.T, records []*domain.SaleRecord, err error) {
				require.NoError(t, err)
				require.Len(t, records, 2)

				first := records[0]
				assert.Equal(t, saleDate, first.Date)
				assert.Equal(t, 2, first.Quantity)
				assert.Equal(t, 1080.0, first.UnitPrice)
				assert.Equal(t, 800.0, first.UnitCost)
				assert.Equal(t, 1200.0, first.ListPrice)
				assert.Equal(t, "Ana Pérez", first.SellerName)
				assert.Equal(t, "Luis Gómez", first.CustomerName)
				assert.Equal(t, "Laptop", first.Product)
				assert.Equal(t, "Electrónica", first.Category)
				assert.Equal(t, "Norte", first.Region)
				assert.Equal(t, 2160.0, first.TotalRevenue())
				assert.True(t, first.PriceMatchesDiscount())

				second := records[1]
				assert.Equal(t, UnknownLabel, second.Region)
				assert.Equal(t, UnknownLabel, second.Category)
				assert.Equal(t, UnknownLabel, second.SellerName)
				assert.Equal(t, 0.0, second.UnitCost)
			},
		},
		{
			name:    "Filtro de período usa início inclusivo e fim exclusivo",
			driver:  config.DriverPostgres,
			filters: &domain.SalesFilters{StartDate: &start, EndDate: &end},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE s.sale_date >= $1 AND s.sale_date < $2 ORDER BY")).
					WithArgs("2023-01-01", "2024-01-01").
					WillReturnRows(sqlmock.NewRows(saleRowColumns))
			},
			validate: func(t *testing.T, records []*domain.SaleRecord, err error) {
				require.NoError(t, err)
				assert.NotNil(t, records)
				assert.Len(t, records, 0)
			},
		},
		{
			name:    "Filtro de ano no mysql usa placeholders ?",
			driver:  config.DriverMySQL,
			filters: &domain.SalesFilters{Year: &year},
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery(regexp.QuoteMeta("WHERE s.sale_date >= ? AND s.sale_date < ?")).
					WithArgs("2024-01-01", "2025-01-01").
					WillReturnRows(sqlmock.NewRows(saleRowColumns))
			},
			validate: func(t *testing.T, records []*domain.SaleRecord, err error) {
				require.NoError(t, err)
				assert.Len(t, records, 0)
			},
		},
		{
			name:   "Falha na query não retorna registros",
			driver: config.DriverPostgres,
			setup: func(mock sqlmock.Sqlmock) {
				mock.ExpectQuery("SELECT").WillReturnError(errors.New("connection refused"))
			},
			validate: func(t *testing.T, records []*domain.SaleRecord, err error) {
				assert.Error(t, err)
				assert.Nil(t, records)
			},
		},
		{
			name:   "Falha no meio da iteração descarta o resultado parcial",
			driver: config.DriverPostgres,
			setup: func(mock sqlmock.Sqlmock) {
				rows := sqlmock.NewRows(saleRowColumns).
					AddRow(saleDate, int64(1), "10.00", int64(0), "5.00", "10.00",
						int64(1), "Ana", "Pérez", int64(1), "Luis", "Gómez",
						int64(1), "Pasta 500g", "Alimentos", "Sur").
					AddRow(saleDate, int64(1), "10.00", int64(0), "5.00", "10.00",
						int64(1), "Ana", "Pérez", int64(1), "Luis", "Gómez",
						int64(1), "Pasta 500g", "Alimentos", "Sur").
					RowError(1, errors.New("conexão perdida"))

				mock.ExpectQuery("SELECT").WillReturnRows(rows)
			},
			validate: func(t *testing.T, records []*domain.SaleRecord, err error) {
				assert.ErrorContains(t, err, "conexão perdida")
				assert.Nil(t, records)
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			conn, mock := newMockConn(t, tt.driver)
			tt.setup(mock)

			records, err := NewSalesRepository(conn).FetchSales(context.Background(), tt.filters)

			tt.validate(t, records, err)
			assert.NoError(t, mock.ExpectationsWereMet())
		})
	}
}

func TestCustomerRepository_CountByRegion(t *testing.T) {
	conn, mock := newMockConn(t, config.DriverPostgres)

	mock.ExpectQuery(regexp.QuoteMeta(
		"SELECT r.name, COUNT(c.id) AS total FROM customers c LEFT JOIN regions r ON r.id = c.region_id " +
			"GROUP BY r.name ORDER BY total DESC, r.name ASC",
	)).WillReturnRows(sqlmock.NewRows([]string{"name", "total"}).
		AddRow("Norte", int64(48)).
		AddRow("Sur", int64(40)).
		AddRow(nil, int64(2)))

	counts, err := NewCustomerRepository(conn).CountByRegion(context.Background())

	require.NoError(t, err)
	assert.Equal(t, []domain.CustomerRegionCount{
		{Region: "Norte", Total: 48},
		{Region: "Sur", Total: 40},
		{Region: UnknownLabel, Total: 2},
	}, counts)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepository_Insert(t *testing.T) {
	saleDate := time.Date(2023, 6, 1, 0, 0, 0, 0, time.UTC)
	dataset := &domain.Dataset{
		Regions:    []domain.Region{{ID: 1, Name: "Norte"}},
		Categories: []domain.Category{{ID: 1, Name: "Electrónica"}},
		Sales: []domain.Sale{
			{ID: 1, Date: saleDate, CustomerID: 1, SellerID: 1, ProductID: 1, Quantity: 1, UnitPrice: decimal.RequireFromString("1200.00")},
			{ID: 2, Date: saleDate, CustomerID: 1, SellerID: 1, ProductID: 1, Quantity: 2, UnitPrice: decimal.RequireFromString("1080.00"), DiscountPct: 10},
			{ID: 3, Date: saleDate, CustomerID: 1, SellerID: 1, ProductID: 1, Quantity: 3, UnitPrice: decimal.RequireFromString("960.00"), DiscountPct: 20},
		},
	}

	t.Run("Insere em lotes dentro de uma transação", func(t *testing.T) {
		conn, mock := newMockConn(t, config.DriverPostgres)

		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO regions (id,name) VALUES ($1,$2)")).
			WithArgs(int64(1), "Norte").
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO categories (id,name) VALUES ($1,$2)")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales")).
			WillReturnResult(sqlmock.NewResult(0, 2))
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO sales")).
			WillReturnResult(sqlmock.NewResult(0, 1))
		mock.ExpectCommit()

		err := NewSeedRepository(conn).Insert(context.Background(), dataset, 2)

		require.NoError(t, err)
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Erro do postgres faz rollback e inclui o código", func(t *testing.T) {
		conn, mock := newMockConn(t, config.DriverPostgres)

		mock.ExpectBegin()
		mock.ExpectExec("INSERT INTO regions").
			WillReturnError(&pq.Error{Code: "23505", Message: "duplicate key value"})
		mock.ExpectRollback()

		err := NewSeedRepository(conn).Insert(context.Background(), dataset, 2)

		require.Error(t, err)
		assert.Contains(t, err.Error(), "23505")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}

func TestSeedRepository_Reset(t *testing.T) {
	conn, mock := newMockConn(t, config.DriverMySQL)

	mock.ExpectBegin()
	for _, table := range []string{"sales", "sellers", "customers", "products", "categories", "regions"} {
		mock.ExpectExec(regexp.QuoteMeta("DELETE FROM " + table)).WillReturnResult(sqlmock.NewResult(0, 0))
	}
	mock.ExpectCommit()

	require.NoError(t, NewSeedRepository(conn).Reset(context.Background()))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestSeedRepository_SchemaAndCount(t *testing.T) {
	conn, mock := newMockConn(t, config.DriverPostgres)

	mock.ExpectQuery(regexp.QuoteMeta("FROM information_schema.tables")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(1)))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT COUNT(*) FROM sales")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(int64(2000)))

	repo := NewSeedRepository(conn)

	exists, err := repo.SchemaExists(context.Background())
	require.NoError(t, err)
	assert.True(t, exists)

	count, err := repo.CountSales(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2000, count)

	assert.NoError(t, mock.ExpectationsWereMet())
}
