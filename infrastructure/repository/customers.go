package repository

//go:generate mockgen -source=customers.go -destination=mocks/customers.go -package=mocks

import (
	"context"
	"database/sql"

	"github.com/pkg/errors"
	"github.com/vfg2006/sales-analytics/infrastructure/database"
	"github.com/vfg2006/sales-analytics/internal/domain"
)

type CustomerRepository interface {
	CountByRegion(ctx context.Context) ([]domain.CustomerRegionCount, error)
}

type customerRepository struct {
	conn database.Conn
}

func NewCustomerRepository(conn database.Conn) CustomerRepository {
	return &customerRepository{
		conn: conn,
	}
}

// CountByRegion clientes agrupados pela própria região de cadastro, do maior para o menor
func (r *customerRepository) CountByRegion(ctx context.Context) ([]domain.CustomerRegionCount, error) {
	query, args, err := r.conn.Builder().
		Select("r.name", "COUNT(c.id) AS total").
		From("customers c").
		LeftJoin("regions r ON r.id = c.region_id").
		GroupBy("r.name").
		OrderBy("total DESC", "r.name ASC").
		ToSql()
	if err != nil {
		return nil, errors.Wrap(err, "erro ao construir a query")
	}

	rows, err := r.conn.Query(ctx, query, args...)
	if err != nil {
		return nil, errors.Wrap(err, "erro ao executar a query")
	}
	defer rows.Close()

	counts := make([]domain.CustomerRegionCount, 0)
	for rows.Next() {
		var region sql.NullString
		var total int
		if err := rows.Scan(&region, &total); err != nil {
			return nil, errors.Wrap(err, "erro ao escanear contagem de clientes")
		}

		counts = append(counts, domain.CustomerRegionCount{
			Region: labelOrUnknown(region),
			Total:  total,
		})
	}

	if err = rows.Err(); err != nil {
		return nil, errors.Wrap(err, "erro durante a iteração de linhas")
	}

	return counts, nil
}
