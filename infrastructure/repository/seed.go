package repository

//go:generate mockgen -source=seed.go -destination=mocks/seed.go -package=mocks

import (
	"context"
	"database/sql"
	"time"

	"github.com/Masterminds/squirrel"
	"github.com/go-sql-driver/mysql"
	"github.com/lib/pq"
	"github.com/pkg/errors"
	"github.com/vfg2006/sales-analytics/infrastructure/database"
	"github.com/vfg2006/sales-analytics/infrastructure/migration"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

const defaultBatchSize = 500

type SeedRepository interface {
	SchemaExists(ctx context.Context) (bool, error)
	InitSchema(ctx context.Context) error
	Reset(ctx context.Context) error
	Insert(ctx context.Context, dataset *domain.Dataset, batchSize int) error
	CountSales(ctx context.Context) (int, error)
}

type seedRepository struct {
	conn database.Conn
}

func NewSeedRepository(conn database.Conn) SeedRepository {
	return &seedRepository{
		conn: conn,
	}
}

func (r *seedRepository) SchemaExists(ctx context.Context) (bool, error) {
	var count int
	if err := r.conn.QueryRow(ctx, migration.SchemaExistsQuery(r.conn.Driver())).Scan(&count); err != nil {
		return false, wrapDatabaseError(err, "erro ao verificar schema")
	}
	return count > 0, nil
}

func (r *seedRepository) InitSchema(ctx context.Context) error {
	statements, err := migration.Statements(r.conn.Driver())
	if err != nil {
		return err
	}

	for _, stmt := range statements {
		if _, err := r.conn.Exec(ctx, stmt); err != nil {
			return wrapDatabaseError(err, "erro ao criar schema")
		}
	}

	return nil
}

// Reset apaga todas as linhas, das tabelas dependentes para as referenciadas
func (r *seedRepository) Reset(ctx context.Context) error {
	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		for i := len(migration.Tables) - 1; i >= 0; i-- {
			query, args, err := r.conn.Builder().Delete(migration.Tables[i]).ToSql()
			if err != nil {
				return errors.Wrap(err, "erro ao construir a query")
			}

			if _, err := tx.ExecContext(ctx, query, args...); err != nil {
				return wrapDatabaseError(err, "erro ao limpar tabela "+migration.Tables[i])
			}
		}
		return nil
	})
}

// Insert grava o conjunto completo em uma única transação
func (r *seedRepository) Insert(ctx context.Context, dataset *domain.Dataset, batchSize int) error {
	if batchSize <= 0 {
		batchSize = defaultBatchSize
	}

	builder := r.conn.Builder()

	return r.conn.RunInTransaction(ctx, func(tx *sql.Tx) error {
		err := insertBatches(ctx, tx, builder, "regions", []string{"id", "name"}, dataset.Regions, batchSize,
			func(v domain.Region) []interface{} {
				return []interface{}{v.ID, v.Name}
			})
		if err != nil {
			return err
		}

		err = insertBatches(ctx, tx, builder, "categories", []string{"id", "name"}, dataset.Categories, batchSize,
			func(v domain.Category) []interface{} {
				return []interface{}{v.ID, v.Name}
			})
		if err != nil {
			return err
		}

		err = insertBatches(ctx, tx, builder, "products",
			[]string{"id", "name", "category_id", "unit_cost", "list_price"}, dataset.Products, batchSize,
			func(v domain.Product) []interface{} {
				return []interface{}{v.ID, v.Name, v.CategoryID, v.UnitCost, v.ListPrice}
			})
		if err != nil {
			return err
		}

		err = insertBatches(ctx, tx, builder, "customers",
			[]string{"id", "first_name", "last_name", "email", "region_id", "registered_at"}, dataset.Customers, batchSize,
			func(v domain.Customer) []interface{} {
				return []interface{}{v.ID, v.FirstName, v.LastName, v.Email, v.RegionID, v.RegisteredAt.Format(time.DateOnly)}
			})
		if err != nil {
			return err
		}

		err = insertBatches(ctx, tx, builder, "sellers",
			[]string{"id", "first_name", "last_name", "region_id", "hired_at"}, dataset.Sellers, batchSize,
			func(v domain.Seller) []interface{} {
				return []interface{}{v.ID, v.FirstName, v.LastName, v.RegionID, v.HiredAt.Format(time.DateOnly)}
			})
		if err != nil {
			return err
		}

		return insertBatches(ctx, tx, builder, "sales",
			[]string{"id", "sale_date", "customer_id", "seller_id", "product_id", "quantity", "unit_price", "discount_pct"}, dataset.Sales, batchSize,
			func(v domain.Sale) []interface{} {
				return []interface{}{v.ID, v.Date.Format(time.DateOnly), v.CustomerID, v.SellerID, v.ProductID, v.Quantity, v.UnitPrice, v.DiscountPct}
			})
	})
}

func (r *seedRepository) CountSales(ctx context.Context) (int, error) {
	query, args, err := r.conn.Builder().Select("COUNT(*)").From("sales").ToSql()
	if err != nil {
		return 0, errors.Wrap(err, "erro ao construir a query")
	}

	var count int
	if err := r.conn.QueryRow(ctx, query, args...).Scan(&count); err != nil {
		return 0, wrapDatabaseError(err, "erro ao contar vendas")
	}

	return count, nil
}

// insertBatches insere as linhas em blocos de batchSize por comando INSERT
func insertBatches[T any](
	ctx context.Context,
	tx *sql.Tx,
	builder squirrel.StatementBuilderType,
	table string,
	columns []string,
	items []T,
	batchSize int,
	values func(T) []interface{},
) error {
	for start := 0; start < len(items); start += batchSize {
		end := min(start+batchSize, len(items))

		insert := builder.Insert(table).Columns(columns...)
		for _, item := range items[start:end] {
			insert = insert.Values(values(item)...)
		}

		query, args, err := insert.ToSql()
		if err != nil {
			return errors.Wrap(err, "erro ao construir a query")
		}

		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return wrapDatabaseError(err, "erro ao inserir em "+table)
		}
	}

	return nil
}

// wrapDatabaseError inclui o código do erro do driver quando disponível
func wrapDatabaseError(err error, message string) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		return errors.Wrapf(err, "%s (código: %s)", message, pqErr.Code)
	}

	var mysqlErr *mysql.MySQLError
	if errors.As(err, &mysqlErr) {
		return errors.Wrapf(err, "%s (código: %d)", message, mysqlErr.Number)
	}

	return errors.Wrap(err, message)
}
