package introspect

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"regexp"
	"strings"
)

var (
	createTableRe = regexp.MustCompile(`^\s*create_table\s+[:"']?(\w+)["']?(.*?)\bdo\s*\|\s*\w+\s*\|`)
	columnRe      = regexp.MustCompile(`^\s*t\.(\w+)\s+[:"'](\w+)["']?`)
	columnCallRe  = regexp.MustCompile(`^\s*t\.column\s+[:"'](\w+)["']?\s*,\s*[:"'](\w+)["']?`)
	timestampsRe  = regexp.MustCompile(`^\s*t\.timestamps\b`)
	primaryKeyRe  = regexp.MustCompile(`:?primary_key\s*(?:=>|:)\s*[:"'](\w+)["']?`)
	noIDRe        = regexp.MustCompile(`:?id\s*(?:=>|:)\s*false`)
	endRe         = regexp.MustCompile(`^\s*end\b`)
)

// SchemaFile reads table definitions from a db/schema.rb dump.
type SchemaFile struct {
	Path string
}

func (s SchemaFile) Columns(_ context.Context, table string) ([]Column, error) {
	f, err := os.Open(s.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to open schema: %w", err)
	}
	defer f.Close()

	var (
		cols    []Column
		inTable bool
	)
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := scanner.Text()

		if !inTable {
			m := createTableRe.FindStringSubmatch(line)
			if m == nil || m[1] != table {
				continue
			}
			inTable = true

			options := m[2]
			if noIDRe.MatchString(options) {
				continue
			}
			pk := "id"
			if pm := primaryKeyRe.FindStringSubmatch(options); pm != nil {
				pk = pm[1]
			}
			cols = append(cols, Column{Name: pk, Type: "integer", PrimaryKey: true})
			continue
		}

		switch {
		case endRe.MatchString(line):
			return cols, nil
		case timestampsRe.MatchString(line):
			cols = append(cols,
				Column{Name: "created_at", Type: "datetime"},
				Column{Name: "updated_at", Type: "datetime"},
			)
		case columnCallRe.MatchString(line):
			m := columnCallRe.FindStringSubmatch(line)
			cols = append(cols, Column{Name: m[1], Type: m[2]})
		case columnRe.MatchString(line):
			m := columnRe.FindStringSubmatch(line)
			cols = append(cols, Column{Name: m[2], Type: normalizeSchemaType(m[1])})
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("failed to read schema: %w", err)
	}
	if inTable {
		return nil, fmt.Errorf("unterminated create_table %q in %s", table, s.Path)
	}
	return nil, fmt.Errorf("%w: %s in %s", ErrTableNotFound, table, s.Path)
}

// normalizeSchemaType folds the belongs_to alias into references.
func normalizeSchemaType(t string) string {
	t = strings.ToLower(t)
	if t == "belongs_to" {
		return "references"
	}
	return t
}
