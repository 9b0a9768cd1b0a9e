package project

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path"
	"path/filepath"

	"github.com/tmeire/nifty/introspect"
	"github.com/tmeire/nifty/scaffold"
)

// WriteOptions control how rendered files end up on disk.
type WriteOptions struct {
	// Force overwrites files whose content differs.
	Force bool
	// Pretend reports what would happen without touching the disk.
	Pretend bool
}

// AddScaffold generates the controller, helper, views, model and migration
// for a resource and registers it in config/routes.rb.
func (p *Project) AddScaffold(ctx context.Context, req scaffold.Request, opts WriteOptions) (*Report, error) {
	renderer, err := scaffold.NewRenderer()
	if err != nil {
		return nil, err
	}

	models := &modelSource{p: p}
	defer models.close()

	plan, err := scaffold.NewGenerator(renderer, models).Plan(ctx, req)
	if err != nil {
		return nil, err
	}

	routes, err := p.prepareRoute(plan.RoutesLine)
	if err != nil {
		return nil, err
	}

	slog.Debug("scaffold planned",
		"resource", plan.Resource.Singular,
		"actions", plan.Actions.Actions(),
		"attributes", len(plan.Attributes),
		"skip_model", plan.Options.SkipModel)

	report := &Report{}
	for _, f := range plan.Files {
		status, err := p.writeFile(f, opts)
		if err != nil {
			return report, err
		}
		report.add(status, f.Path).print(p.out)
	}

	if err := p.registerRoute(routes, opts.Pretend); err != nil {
		return report, err
	}
	if routes.changed {
		report.add(StatusRoute, path.Join("config", "routes.rb")).print(p.out)
	} else {
		report.add(StatusIdentical, path.Join("config", "routes.rb")).print(p.out)
	}

	return report, nil
}

// writeFile creates the file unless it already exists. An existing file is
// only replaced when Force is set and its content differs.
func (p *Project) writeFile(f scaffold.File, opts WriteOptions) (Status, error) {
	target := filepath.Join(p.rootDir, filepath.FromSlash(f.Path))

	if f.Kind == scaffold.KindMigration {
		existing, err := p.existingMigration(filepath.Base(target))
		if err != nil {
			return "", err
		}
		if existing != "" {
			slog.Warn("another migration already creates this table", "migration", existing)
			return StatusExists, nil
		}
	}

	status := StatusCreate
	content, err := os.ReadFile(target)
	switch {
	case err == nil:
		if string(content) == f.Content {
			return StatusIdentical, nil
		}
		if !opts.Force {
			return StatusSkip, nil
		}
		status = StatusForce
	case errors.Is(err, fs.ErrNotExist):
	default:
		return "", fmt.Errorf("failed to check %s: %w", f.Path, err)
	}

	if opts.Pretend {
		return status, nil
	}

	if err := os.MkdirAll(filepath.Dir(target), 0755); err != nil {
		return "", fmt.Errorf("failed to create directory for %s: %w", f.Path, err)
	}
	if err := os.WriteFile(target, []byte(f.Content), 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", f.Path, err)
	}
	return status, nil
}

// existingMigration returns the relative path of a migration that already
// carries the same name as the given one, ignoring the timestamp prefix.
func (p *Project) existingMigration(fileName string) (string, error) {
	_, name, ok := cutTimestamp(fileName)
	if !ok {
		return "", nil
	}
	matches, err := filepath.Glob(filepath.Join(p.migrations(), "*_"+name))
	if err != nil {
		return "", err
	}
	for _, m := range matches {
		if _, other, ok := cutTimestamp(filepath.Base(m)); ok && other == name {
			return path.Join("db", "migrate", filepath.Base(m)), nil
		}
	}
	return "", nil
}

// cutTimestamp splits 20091019120000_create_line_items.rb into its parts.
func cutTimestamp(fileName string) (string, string, bool) {
	for i, r := range fileName {
		if r == '_' {
			return fileName[:i], fileName[i+1:], i > 0
		}
		if r < '0' || r > '9' {
			return "", "", false
		}
	}
	return "", "", false
}

// modelSource answers model questions from the application tree: model
// files under app/models and columns from the configured database or
// db/schema.rb. The database is only opened once columns are asked for.
type modelSource struct {
	p       *Project
	columns introspect.Chain
	closers []func() error
}

func (m *modelSource) chain() introspect.Chain {
	if m.columns != nil {
		return m.columns
	}

	db, closeDB, err := introspect.Configured(m.p.rootDir, m.p.env)
	if err != nil {
		slog.Debug("not reading columns from the database", "error", err)
	} else {
		m.columns = append(m.columns, db)
		m.closers = append(m.closers, closeDB)
	}
	m.columns = append(m.columns, introspect.SchemaFile{Path: m.p.schemaFile()})

	return m.columns
}

func (m *modelSource) ModelExists(res scaffold.Resource) bool {
	_, err := os.Stat(filepath.Join(m.p.models(), res.Singular+".rb"))
	return err == nil
}

func (m *modelSource) ModelAttributes(ctx context.Context, res scaffold.Resource) []scaffold.Attribute {
	var attrs []scaffold.Attribute
	for _, col := range introspect.EditableColumns(ctx, m.chain(), res.Plural) {
		attrs = append(attrs, scaffold.Attribute{Name: col.Name, Type: col.Type})
	}
	return attrs
}

func (m *modelSource) close() {
	for _, c := range m.closers {
		if err := c(); err != nil {
			slog.Warn("failed to close database", "error", err)
		}
	}
}
