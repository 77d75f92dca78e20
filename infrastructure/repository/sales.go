package repository

//go:generate mockgen -source=sales.go -destination=mocks/sales.go -package=mocks

import (
	"context"
	"database/sql"
	"strings"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/pkg/errors"
	"github.com/shopspring/decimal"
	"github.com/vfg2006/sales-analytics/infrastructure/database"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

// UnknownLabel usado quando o LEFT JOIN não encontra a linha relacionada
const UnknownLabel = "N/D"

const salesTable = "sales s"

var salesColumns = []string{
	"s.sale_date",
	"s.quantity",
	"s.unit_price",
	"s.discount_pct",
	"p.unit_cost",
	"p.list_price",
	"s.seller_id",
	"se.first_name",
	"se.last_name",
	"s.customer_id",
	"c.first_name",
	"c.last_name",
	"s.product_id",
	"p.name",
	"cat.name",
	"r.name",
}

type SalesRepository interface {
	FetchSales(ctx context.Context, filters *domain.SalesFilters) ([]*domain.SaleRecord, error)
}

type salesRepository struct {
	conn database.Conn
}

func NewSalesRepository(conn database.Conn) SalesRepository {
	return &salesRepository{
		conn: conn,
	}
}

// FetchSales retorna as vendas desnormalizadas. A região vem do vendedor.
// Todas as linhas são lidas antes do retorno; qualquer falha descarta o resultado.
func (r *salesRepository) FetchSales(ctx context.Context, filters *domain.SalesFilters) ([]*domain.SaleRecord, error) {
	builder := r.conn.Builder().
		Select(salesColumns...).
		From(salesTable).
		LeftJoin("sellers se ON se.id = s.seller_id").
		LeftJoin("customers c ON c.id = s.customer_id").
		LeftJoin("products p ON p.id = s.product_id").
		LeftJoin("categories cat ON cat.id = p.category_id").
		LeftJoin("regions r ON r.id = se.region_id").
		OrderBy("s.sale_date ASC", "s.id ASC")

	builder = applySalesFilters(builder, filters)

	query, args, err := builder.ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	records := make([]*domain.SaleRecord, 0)
	for rows.Next() {
		record, err := scanSaleRecord(rows)
		if err != nil {
			return nil, errors.Wrap(err, "erro ao escanear venda")
		}
		records = append(records, record)
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return records, nil
}

func applySalesFilters(builder squirrel.SelectBuilder, filters *domain.SalesFilters) squirrel.SelectBuilder {
	if filters == nil {
		return builder
	}

	if filters.StartDate != nil {
		builder = builder.Where(squirrel.GtOrEq{"s.sale_date": filters.StartDate.Format(time.DateOnly)})
	}

	if filters.EndDate != nil {
		builder = builder.Where(squirrel.Lt{"s.sale_date": filters.EndDate.Format(time.DateOnly)})
	}

	if filters.Year != nil {
		start := time.Date(*filters.Year, time.January, 1, 0, 0, 0, 0, time.UTC)
		builder = builder.
			Where(squirrel.GtOrEq{"s.sale_date": start.Format(time.DateOnly)}).
			Where(squirrel.Lt{"s.sale_date": start.AddDate(1, 0, 0).Format(time.DateOnly)})
	}

	return builder
}

func scanSaleRecord(rows *sql.Rows) (*domain.SaleRecord, error) {
	record := &domain.SaleRecord{}

	var (
		unitPrice                             decimal.Decimal
		unitCost, listPrice                   decimal.NullDecimal
		sellerID, customerID, productID       sql.NullInt64
		sellerFirst, sellerLast               sql.NullString
		customerFirst, customerLast           sql.NullString
		productName, categoryName, regionName sql.NullString
	)

	err := rows.Scan(
		&record.Date,
		&record.Quantity,
		&unitPrice,
		&record.DiscountPct,
		&unitCost,
		&listPrice,
		&sellerID,
		&sellerFirst,
		&sellerLast,
		&customerID,
		&customerFirst,
		&customerLast,
		&productID,
		&productName,
		&categoryName,
		&regionName,
	)
	if err != nil {
		return nil, err
	}

	record.UnitPrice = unitPrice.InexactFloat64()
	if unitCost.Valid {
		record.UnitCost = unitCost.Decimal.InexactFloat64()
	}
	if listPrice.Valid {
		record.ListPrice = listPrice.Decimal.InexactFloat64()
	}

	record.SellerID = sellerID.Int64
	record.CustomerID = customerID.Int64
	record.ProductID = productID.Int64

	record.SellerName = fullName(sellerFirst, sellerLast)
	record.CustomerName = fullName(customerFirst, customerLast)
	record.Product = labelOrUnknown(productName)
	record.Category = labelOrUnknown(categoryName)
	record.Region = labelOrUnknown(regionName)

	return record, nil
}

func fullName(first, last sql.NullString) string {
	name := strings.TrimSpace(first.String + " " + last.String)
	if name == "" {
		return UnknownLabel
	}
	return name
}

func labelOrUnknown(value sql.NullString) string {
	if !value.Valid || value.String == "" {
		return UnknownLabel
	}
	return value.String
}
