// Package introspect reads the columns of existing model tables so a scaffold
// can be generated for a model without repeating its attributes.
package introspect

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"slices"
)

// ErrTableNotFound is returned when a source has no definition for the table.
var ErrTableNotFound = errors.New("table not found")

// auditColumns are maintained by the framework and never edited through a form.
var auditColumns = []string{"created_at", "updated_at"}

// Column is a single column as declared by the schema.
type Column struct {
	Name       string
	Type       string
	PrimaryKey bool
}

// ColumnSource supplies the declared columns of a table in declaration order.
type ColumnSource interface {
	Columns(ctx context.Context, table string) ([]Column, error)
}

// Chain tries each source in turn and returns the first successful answer.
type Chain []ColumnSource

func (c Chain) Columns(ctx context.Context, table string) ([]Column, error) {
	if len(c) == 0 {
		return nil, fmt.Errorf("%w: %s (no column sources)", ErrTableNotFound, table)
	}

	var errs []error
	for _, src := range c {
		cols, err := src.Columns(ctx, table)
		if err == nil {
			return cols, nil
		}
		errs = append(errs, err)
	}
	return nil, errors.Join(errs...)
}

// Editable drops the primary key and the audit timestamp columns.
func Editable(cols []Column) []Column {
	var out []Column
	for _, col := range cols {
		if col.PrimaryKey || col.Name == "id" || slices.Contains(auditColumns, col.Name) {
			continue
		}
		out = append(out, col)
	}
	return out
}

// EditableColumns loads the editable columns of table. Failing to read the
// schema is not fatal: a warning is logged and no columns are returned.
func EditableColumns(ctx context.Context, src ColumnSource, table string) []Column {
	cols, err := src.Columns(ctx, table)
	if err != nil {
		slog.Warn("could not read model columns", "table", table, "error", err)
		return nil
	}
	return Editable(cols)
}
