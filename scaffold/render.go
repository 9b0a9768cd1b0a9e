package scaffold

import (
	"bytes"
	"embed"
	"fmt"
	"path"
	"strings"
	"text/template"
	"time"
)

//go:embed templates
var templateFS embed.FS

// FileKind tells which part of the scaffold a rendered file belongs to.
type FileKind string

const (
	KindController FileKind = "controller"
	KindHelper     FileKind = "helper"
	KindView       FileKind = "view"
	KindModel      FileKind = "model"
	KindMigration  FileKind = "migration"
)

// File is a rendered source file, relative to the application root.
type File struct {
	Kind    FileKind
	Path    string
	Content string
}

// RenderOptions control which optional files are rendered.
type RenderOptions struct {
	SkipModel      bool
	SkipMigration  bool
	SkipTimestamps bool
}

// Renderer fills the scaffold templates. It performs no I/O.
type Renderer struct {
	tmpl *template.Template
	now  func() time.Time
}

// NewRenderer parses the embedded templates.
func NewRenderer() (*Renderer, error) {
	tmpl, err := template.New("scaffold").ParseFS(templateFS, "templates/*.tmpl", "templates/views/*.tmpl")
	if err != nil {
		return nil, fmt.Errorf("failed to parse scaffold templates: %w", err)
	}
	return &Renderer{tmpl: tmpl, now: time.Now}, nil
}

// WithClock returns a copy of the renderer that stamps migrations using now.
func (r *Renderer) WithClock(now func() time.Time) *Renderer {
	cp := *r
	cp.now = now
	return &cp
}

// templateData is the value every template is executed against.
type templateData struct {
	Resource
	Attributes []Attribute
	Actions    ActionSet
	Timestamps bool
	// Form is the rendered form markup without its trailing newline.
	Form string
}

// Has reports whether all named actions are generated.
func (d templateData) Has(names ...string) bool {
	for _, n := range names {
		if !d.Actions.Has(Action(n)) {
			return false
		}
	}
	return true
}

// FormPartial reports whether new and edit share the _form partial.
func (d templateData) FormPartial() bool {
	return d.Actions.FormPartial()
}

// ItemRedirect is where create and update go after a successful save.
func (d templateData) ItemRedirect() string {
	if !d.Actions.Has(ActionIndex) && d.Actions.Has(ActionShow) {
		return "@" + d.Singular
	}
	return d.Plural + "_path"
}

// DestroyRedirect is where destroy goes. The destroyed record has no show
// page left, so without an index listing it falls back to the root.
func (d templateData) DestroyRedirect() string {
	if !d.Actions.Has(ActionIndex) && d.Actions.Has(ActionShow) {
		return "root_url"
	}
	return d.Plural + "_path"
}

// Render produces every file of the scaffold in a stable order: controller,
// helper, views, model, migration.
func (r *Renderer) Render(res Resource, attrs []Attribute, actions ActionSet, opts RenderOptions) ([]File, error) {
	data := templateData{
		Resource:   res,
		Attributes: attrs,
		Actions:    actions,
		Timestamps: !opts.SkipTimestamps,
	}

	form, err := r.execute("form.html.erb.tmpl", data)
	if err != nil {
		return nil, err
	}
	data.Form = strings.TrimSuffix(form, "\n")

	var files []File

	controller, err := r.controller(data)
	if err != nil {
		return nil, err
	}
	files = append(files, File{
		Kind:    KindController,
		Path:    path.Join("app", "controllers", res.Plural+"_controller.rb"),
		Content: controller,
	})

	helper, err := r.execute("helper.rb.tmpl", data)
	if err != nil {
		return nil, err
	}
	files = append(files, File{
		Kind:    KindHelper,
		Path:    path.Join("app", "helpers", res.Plural+"_helper.rb"),
		Content: helper,
	})

	viewDir := path.Join("app", "views", res.Plural)
	for _, action := range actions.Views() {
		content, err := r.execute(string(action)+".html.erb.tmpl", data)
		if err != nil {
			return nil, err
		}
		files = append(files, File{
			Kind:    KindView,
			Path:    path.Join(viewDir, string(action)+".html.erb"),
			Content: content,
		})
	}
	if actions.FormPartial() {
		files = append(files, File{
			Kind:    KindView,
			Path:    path.Join(viewDir, "_form.html.erb"),
			Content: form,
		})
	}

	if opts.SkipModel {
		return files, nil
	}

	model, err := r.execute("model.rb.tmpl", data)
	if err != nil {
		return nil, err
	}
	files = append(files, File{
		Kind:    KindModel,
		Path:    path.Join("app", "models", res.Singular+".rb"),
		Content: model,
	})

	if opts.SkipMigration {
		return files, nil
	}

	migration, err := r.execute("migration.rb.tmpl", data)
	if err != nil {
		return nil, err
	}
	files = append(files, File{
		Kind:    KindMigration,
		Path:    path.Join("db", "migrate", MigrationFileName(r.now(), res)),
		Content: migration,
	})

	return files, nil
}

// RoutesLine is the registration line added to config/routes.rb.
func RoutesLine(res Resource) string {
	return "  map.resources :" + res.Plural
}

// MigrationFileName returns e.g. 20091019120000_create_line_items.rb.
func MigrationFileName(at time.Time, res Resource) string {
	return at.UTC().Format("20060102150405") + "_create_" + res.Plural + ".rb"
}

// controller renders one method per action, separated by a blank line.
func (r *Renderer) controller(data templateData) (string, error) {
	var b strings.Builder
	b.WriteString("class " + data.ControllerClass() + " < ApplicationController\n")
	for i, action := range data.Actions.Actions() {
		method, err := r.execute(string(action), data)
		if err != nil {
			return "", err
		}
		if i > 0 {
			b.WriteString("\n")
		}
		b.WriteString(method)
	}
	b.WriteString("end\n")
	return b.String(), nil
}

func (r *Renderer) execute(name string, data templateData) (string, error) {
	var buf bytes.Buffer
	if err := r.tmpl.ExecuteTemplate(&buf, name, data); err != nil {
		return "", fmt.Errorf("failed to render %s: %w", name, err)
	}
	return buf.String(), nil
}
