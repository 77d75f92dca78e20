// Package migration guarda o schema da base de vendas para cada driver suportado
package migration

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/vfg2006/sales-analytics/internal/config"
)

var (
	//go:embed schema_postgres.sql
	postgresSchema string

	//go:embed schema_mysql.sql
	mysqlSchema string
)

// Tables em ordem de dependência: cada tabela só referencia as anteriores
var Tables = []string{"regions", "categories", "products", "customers", "sellers", "sales"}

// Statements retorna os comandos de criação do schema para o driver
func Statements(driver string) ([]string, error) {
	var schema string
	switch driver {
	case config.DriverPostgres:
		schema = postgresSchema
	case config.DriverMySQL:
		schema = mysqlSchema
	default:
		return nil, fmt.Errorf("%w: %q", config.ErrUnsupportedDriver, driver)
	}

	return splitStatements(schema), nil
}

func splitStatements(schema string) []string {
	statements := make([]string, 0)
	for _, stmt := range strings.Split(schema, ";") {
		stmt = strings.TrimSpace(stmt)
		if stmt != "" {
			statements = append(statements, stmt)
		}
	}
	return statements
}

// SchemaExistsQuery consulta que conta a tabela de vendas no schema atual
func SchemaExistsQuery(driver string) string {
	if driver == config.DriverMySQL {
		return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = DATABASE() AND table_name = 'sales'"
	}
	return "SELECT COUNT(*) FROM information_schema.tables WHERE table_schema = current_schema() AND table_name = 'sales'"
}
