package sqlite

import (
	"database/sql"
)

type Config struct {
	Path string `yaml:"database"`
}

func (c Config) OpenReadOnly() (*sql.DB, error) {
	return OpenReadOnly(c.Path)
}
