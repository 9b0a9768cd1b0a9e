package project

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/tmeire/nifty/database"
)

// Project is a Rails application tree the generators write into.
type Project struct {
	rootDir string
	env     string
	out     io.Writer
}

// Load finds the application root by walking up from dir.
func Load(dir string) (*Project, error) {
	rootDir, err := rootDir(dir)
	if err != nil {
		return nil, err
	}

	return Open(rootDir), nil
}

// Open uses dir as the application root without any lookup.
func Open(dir string) *Project {
	return &Project{rootDir: dir, env: database.DefaultEnvironment, out: os.Stdout}
}

// SetOutput sets where generator status lines are printed.
func (p *Project) SetOutput(w io.Writer) {
	p.out = w
}

// SetEnvironment selects the config/database.yml section used to read existing tables.
func (p *Project) SetEnvironment(env string) {
	if env != "" {
		p.env = env
	}
}

func (p *Project) Root() string {
	return p.rootDir
}

func (p *Project) models() string {
	return filepath.Join(p.rootDir, "app", "models")
}

func (p *Project) routesFile() string {
	return filepath.Join(p.rootDir, "config", "routes.rb")
}

func (p *Project) migrations() string {
	return filepath.Join(p.rootDir, "db", "migrate")
}

func (p *Project) schemaFile() string {
	return filepath.Join(p.rootDir, "db", "schema.rb")
}

// rootDir attempts to find the root directory of the application
// by looking for config/routes.rb
func rootDir(start string) (string, error) {
	dir, err := filepath.Abs(start)
	if err != nil {
		return "", err
	}

	// Walk up the directory tree
	for {
		if _, err := os.Stat(filepath.Join(dir, "config", "routes.rb")); err == nil {
			return dir, nil
		}

		// Check if we've reached the root directory
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return "", fmt.Errorf("could not find application root (no config/routes.rb found above %s)", start)
}
