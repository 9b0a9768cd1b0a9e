package introspect

import (
	"context"
	"fmt"
	"strings"

	"github.com/tmeire/nifty/database"
)

// Database reads table definitions from a live database connection.
// Only SQLite is supported; columns come from pragma_table_info.
type Database struct {
	DB database.Database
}

func (d Database) Columns(ctx context.Context, table string) ([]Column, error) {
	rows, err := d.DB.QueryContext(ctx,
		`SELECT name, type, pk FROM pragma_table_info(?) ORDER BY cid`, table)
	if err != nil {
		return nil, fmt.Errorf("failed to query columns of %s: %w", table, err)
	}
	defer rows.Close()

	var cols []Column
	for rows.Next() {
		var (
			name, declared string
			pk             int
		)
		if err := rows.Scan(&name, &declared, &pk); err != nil {
			return nil, fmt.Errorf("failed to scan column of %s: %w", table, err)
		}
		cols = append(cols, Column{Name: name, Type: schemaType(declared), PrimaryKey: pk > 0})
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read columns of %s: %w", table, err)
	}
	if len(cols) == 0 {
		return nil, fmt.Errorf("%w: %s", ErrTableNotFound, table)
	}
	return cols, nil
}

// Configured opens the database described by the application's
// config/database.yml for env. The returned close function must be called
// once the source is no longer needed.
func Configured(root, env string) (ColumnSource, func() error, error) {
	conf, err := database.LoadConfig(root, env)
	if err != nil {
		return nil, nil, err
	}
	db, err := conf.Open()
	if err != nil {
		return nil, nil, err
	}
	return Database{DB: db}, db.Close, nil
}

// schemaType maps a declared SQLite column type back to the schema
// vocabulary used by migrations, e.g. varchar(255) -> string.
func schemaType(declared string) string {
	t := strings.ToLower(strings.TrimSpace(declared))
	if i := strings.IndexByte(t, '('); i >= 0 {
		t = strings.TrimSpace(t[:i])
	}

	switch t {
	case "varchar", "character varying", "char", "string":
		return "string"
	case "text", "clob":
		return "text"
	case "integer", "int", "bigint", "smallint":
		return "integer"
	case "float", "real", "double":
		return "float"
	case "decimal", "numeric":
		return "decimal"
	case "boolean", "bool", "tinyint":
		return "boolean"
	case "date":
		return "date"
	case "time":
		return "time"
	case "datetime", "timestamp":
		return "datetime"
	case "blob", "binary":
		return "binary"
	case "":
		return "string"
	default:
		return t
	}
}
