package project

import (
	"bytes"
	"context"
	"errors"
	"os"
	"path/filepath"
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tmeire/nifty/scaffold"
)

// newApp creates an application root containing only config/routes.rb
func newApp(t *testing.T) *Project {
	t.Helper()
	root := t.TempDir()
	require.NoError(t, os.MkdirAll(filepath.Join(root, "config"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(root, "config", "routes.rb"), []byte(emptyRoutes), 0644))

	p := Open(root)
	p.SetOutput(&bytes.Buffer{})
	return p
}

func generate(t *testing.T, p *Project, name string, args ...string) *Report {
	t.Helper()
	report, err := p.AddScaffold(context.Background(), scaffold.Request{Name: name, Args: args}, WriteOptions{})
	require.NoError(t, err)
	return report
}

func readFile(t *testing.T, p *Project, path string) string {
	t.Helper()
	content, err := os.ReadFile(filepath.Join(p.Root(), filepath.FromSlash(path)))
	require.NoError(t, err, "%s was not generated", path)
	return string(content)
}

func assertNoFile(t *testing.T, p *Project, path string) {
	t.Helper()
	_, err := os.Stat(filepath.Join(p.Root(), filepath.FromSlash(path)))
	assert.True(t, os.IsNotExist(err), "%s should not have been generated", path)
}

func migrations(t *testing.T, p *Project) []string {
	t.Helper()
	files, err := filepath.Glob(filepath.Join(p.Root(), "db", "migrate", "*.rb"))
	require.NoError(t, err)
	return files
}

func TestScaffoldWithoutName(t *testing.T) {
	p := newApp(t)

	_, err := p.AddScaffold(context.Background(), scaffold.Request{}, WriteOptions{})
	assert.True(t, errors.Is(err, scaffold.ErrUsage))

	entries, err := os.ReadDir(p.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing but config/ may exist")
	assert.Equal(t, emptyRoutes, readFile(t, p, "config/routes.rb"))
}

func TestScaffoldWithInvalidActionTouchesNothing(t *testing.T) {
	p := newApp(t)

	_, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "line_item", Args: []string{"archive"}}, WriteOptions{})
	var invalid *scaffold.InvalidActionError
	require.True(t, errors.As(err, &invalid))

	assertNoFile(t, p, "app")
	assert.Equal(t, emptyRoutes, readFile(t, p, "config/routes.rb"))
}

func TestScaffoldWithNoOptionsAndNoExistingModel(t *testing.T) {
	p := newApp(t)
	generate(t, p, "LineItem")

	readFile(t, p, "app/helpers/line_items_helper.rb")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "class LineItemsController < ApplicationController")
	for _, action := range []string{"index", "show", "new", "create", "edit", "update", "destroy"} {
		assert.Contains(t, controller, "def "+action)
	}

	for _, action := range []string{"index", "show", "new", "edit"} {
		readFile(t, p, "app/views/line_items/"+action+".html.erb")
	}

	assert.Contains(t, readFile(t, p, "app/views/line_items/_form.html.erb"), "<%= f.text_field :name %>")
	assert.Contains(t, readFile(t, p, "config/routes.rb"), "map.resources :line_items")
	assertNoFile(t, p, "app/models/line_item.rb")
	assert.Empty(t, migrations(t, p))
}

func TestScaffoldWithSomeAttributes(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "name:string", "description:text")

	files := migrations(t, p)
	require.Len(t, files, 1, "migration file doesn't exist")
	assert.Regexp(t, regexp.MustCompile(`[0-9]+_create_line_items\.rb$`), files[0])

	body, err := os.ReadFile(files[0])
	require.NoError(t, err)
	assert.Contains(t, string(body), "class CreateLineItems")
	assert.Contains(t, string(body), "t.string :name")
	assert.Contains(t, string(body), "t.text :description")
	assert.Contains(t, string(body), "t.timestamp")

	assert.Contains(t, readFile(t, p, "app/models/line_item.rb"), "class LineItem < ActiveRecord::Base")
}

func TestScaffoldWithIndexAction(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "index")

	readFile(t, p, "app/views/line_items/index.html.erb")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def index")
	assert.Contains(t, controller, "@line_items = LineItem.find(:all)")
	assert.NotRegexp(t, regexp.MustCompile(`    def index`), controller)
}

func TestScaffoldWithShowAction(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "show")

	readFile(t, p, "app/views/line_items/show.html.erb")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def show")
	assert.Contains(t, controller, "@line_item = LineItem.find(params[:id])")
}

func TestScaffoldWithNewAndCreateActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "new", "create")

	assertNoFile(t, p, "app/views/line_items/create.html.erb")
	assertNoFile(t, p, "app/views/line_items/_form.html.erb")
	assert.Contains(t, readFile(t, p, "app/views/line_items/new.html.erb"), "<% form_for @line_item do |f| %>")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def new")
	assert.Contains(t, controller, "@line_item = LineItem.new\n")
	assert.Contains(t, controller, "def create")
	assert.Contains(t, controller, "@line_item = LineItem.new(params[:line_item])")
	assert.Contains(t, controller, "if @line_item.save")
	assert.Contains(t, controller, `flash[:notice] = "Successfully created line item."`)
	assert.Contains(t, controller, "redirect_to line_items_path")
	assert.Contains(t, controller, "render :action => 'new'")
}

func TestScaffoldWithEditAndUpdateActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "edit", "update")

	assertNoFile(t, p, "app/views/line_items/update.html.erb")
	assertNoFile(t, p, "app/views/line_items/_form.html.erb")
	assert.Contains(t, readFile(t, p, "app/views/line_items/edit.html.erb"), "<% form_for @line_item do |f| %>")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def edit")
	assert.Contains(t, controller, "@line_item = LineItem.find(params[:id])")
	assert.Contains(t, controller, "def update")
	assert.Contains(t, controller, "if @line_item.update_attributes(params[:line_item])")
	assert.Contains(t, controller, `flash[:notice] = "Successfully updated line item."`)
	assert.Contains(t, controller, "redirect_to line_items_path")
	assert.Contains(t, controller, "render :action => 'edit'")
}

func TestScaffoldWithDestroyAction(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "destroy")

	assertNoFile(t, p, "app/views/line_items/destroy.html.erb")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def destroy")
	assert.Contains(t, controller, "@line_item = LineItem.find(params[:id])")
	assert.Contains(t, controller, "@line_item.destroy")
	assert.Contains(t, controller, `flash[:notice] = "Successfully destroyed line item."`)
	assert.Contains(t, controller, "redirect_to line_items_path")
}

func TestScaffoldWithNewAndEditActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "new", "edit")

	readFile(t, p, "app/views/line_items/_form.html.erb")
	for _, action := range []string{"new", "edit"} {
		assert.Contains(t, readFile(t, p, "app/views/line_items/"+action+".html.erb"), "<%= render :partial => 'form' %>")
	}

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "def create")
	assert.Contains(t, controller, "def update")
}

func TestScaffoldWithAttributesAndActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "name:string", "new", "price:float", "index", "available:boolean")

	body := readFile(t, p, "app/views/line_items/new.html.erb")
	assert.Contains(t, body, "<%= f.text_field :name %>")
	assert.Contains(t, body, "<%= f.text_field :price %>")
	assert.Contains(t, body, "<%= f.check_box :available %>")
}

func TestScaffoldWithShowCreateAndUpdateActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "show", "create", "update")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	assert.Contains(t, controller, "redirect_to @line_item")
	assert.NotContains(t, controller, "redirect_to line_items_path")
}

func TestScaffoldWithAttributesAndSkipModel(t *testing.T) {
	p := newApp(t)
	_, err := p.AddScaffold(context.Background(), scaffold.Request{
		Name:      "line_item",
		Args:      []string{"foo:string"},
		SkipModel: true,
	}, WriteOptions{})
	require.NoError(t, err)

	assert.Contains(t, readFile(t, p, "app/views/line_items/_form.html.erb"), "<%= f.text_field :foo %>")
	assert.Empty(t, migrations(t, p))
	assertNoFile(t, p, "app/models/line_item.rb")
}

func TestScaffoldWithInvertedActions(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "!", "show", "new", "edit")

	controller := readFile(t, p, "app/controllers/line_items_controller.rb")
	for _, a := range []string{"index", "destroy"} {
		assert.Contains(t, controller, "def "+a)
	}
	for _, a := range []string{"show", "new", "create", "edit", "update"} {
		assert.NotRegexp(t, regexp.MustCompile("def "+a), controller)
	}
}

// newAppWithRecipe adds an existing Recipe model and its schema to the application
func newAppWithRecipe(t *testing.T) *Project {
	t.Helper()
	p := newApp(t)

	require.NoError(t, os.MkdirAll(filepath.Join(p.Root(), "app", "models"), 0755))
	require.NoError(t, os.WriteFile(filepath.Join(p.Root(), "app", "models", "recipe.rb"),
		[]byte("raise 'should not be loaded'\n"), 0644))

	require.NoError(t, os.MkdirAll(filepath.Join(p.Root(), "db"), 0755))
	require.NoError(t, os.WriteFile(p.schemaFile(), []byte(`ActiveRecord::Schema.define(:version => 20091019123005) do
  create_table "recipes", :force => true do |t|
    t.string   "foo"
    t.string   "bar"
    t.integer  "book_id"
    t.datetime "created_at"
    t.datetime "updated_at"
  end
end
`), 0644))
	return p
}

func TestScaffoldExistingModelWithSkipModel(t *testing.T) {
	p := newAppWithRecipe(t)
	_, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "recipe", SkipModel: true}, WriteOptions{})
	require.NoError(t, err)

	form := readFile(t, p, "app/views/recipes/_form.html.erb")
	assert.Contains(t, form, "<%= f.text_field :foo %>")
	assert.Contains(t, form, "<%= f.text_field :bar %>")
	assert.Contains(t, form, "<%= f.text_field :book_id %>")
	assert.NotRegexp(t, regexp.MustCompile(`:id\b`), form)
	assert.NotContains(t, form, ":created_at")
	assert.NotContains(t, form, ":updated_at")

	assert.Empty(t, migrations(t, p))
	assert.Equal(t, "raise 'should not be loaded'\n", readFile(t, p, "app/models/recipe.rb"))
}

func TestScaffoldExistingModelWithAttributeSpecified(t *testing.T) {
	p := newAppWithRecipe(t)
	generate(t, p, "recipe", "zippo:string")

	assert.Contains(t, readFile(t, p, "app/views/recipes/_form.html.erb"), "<%= f.text_field :zippo %>")
	assert.Equal(t, "raise 'should not be loaded'\n", readFile(t, p, "app/models/recipe.rb"))
}

func TestScaffoldExistingModelWithoutSchema(t *testing.T) {
	p := newAppWithRecipe(t)
	require.NoError(t, os.Remove(p.schemaFile()))

	generate(t, p, "recipe")

	form := readFile(t, p, "app/views/recipes/_form.html.erb")
	assert.NotContains(t, form, "f.label")
}

func TestScaffoldRunTwice(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "name:string")
	report := generate(t, p, "line_item", "name:string")

	assert.Empty(t, report.Paths(StatusCreate))
	assert.Equal(t, []string{"db/migrate"}, dirs(report.Paths(StatusExists)))
	assert.Contains(t, report.Paths(StatusIdentical), "config/routes.rb")
	assert.Len(t, migrations(t, p), 1)

	routes := readFile(t, p, "config/routes.rb")
	assert.Equal(t, 1, bytes.Count([]byte(routes), []byte("map.resources :line_items")))
}

func TestScaffoldKeepsModifiedFilesUnlessForced(t *testing.T) {
	p := newApp(t)
	generate(t, p, "line_item", "index")

	helper := filepath.Join(p.Root(), "app", "helpers", "line_items_helper.rb")
	require.NoError(t, os.WriteFile(helper, []byte("module LineItemsHelper\n  def total; end\nend\n"), 0644))

	report := generate(t, p, "line_item", "index")
	assert.Contains(t, report.Paths(StatusSkip), "app/helpers/line_items_helper.rb")
	assert.Contains(t, readFile(t, p, "app/helpers/line_items_helper.rb"), "def total")

	report, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "line_item", Args: []string{"index"}}, WriteOptions{Force: true})
	require.NoError(t, err)
	assert.Contains(t, report.Paths(StatusForce), "app/helpers/line_items_helper.rb")
	assert.Equal(t, "module LineItemsHelper\nend\n", readFile(t, p, "app/helpers/line_items_helper.rb"))
}

func TestScaffoldPretend(t *testing.T) {
	p := newApp(t)
	var out bytes.Buffer
	p.SetOutput(&out)

	report, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "line_item", Args: []string{"name:string"}}, WriteOptions{Pretend: true})
	require.NoError(t, err)

	assert.Contains(t, report.Paths(StatusCreate), "app/controllers/line_items_controller.rb")
	assert.Contains(t, report.Paths(StatusRoute), "config/routes.rb")
	assertNoFile(t, p, "app")
	assertNoFile(t, p, "db")
	assert.Equal(t, emptyRoutes, readFile(t, p, "config/routes.rb"))
	assert.Contains(t, out.String(), "app/controllers/line_items_controller.rb")
}

func TestScaffoldWithoutRoutesFile(t *testing.T) {
	p := Open(t.TempDir())
	p.SetOutput(&bytes.Buffer{})

	_, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "line_item"}, WriteOptions{})
	assert.True(t, errors.Is(err, os.ErrNotExist), "got %v", err)

	assertNoFile(t, p, "app")
}

func TestScaffoldWithoutRoutesBlockTouchesNothing(t *testing.T) {
	p := newApp(t)
	require.NoError(t, os.WriteFile(filepath.Join(p.Root(), "config", "routes.rb"), []byte("# routes\n"), 0644))

	_, err := p.AddScaffold(context.Background(), scaffold.Request{Name: "line_item", Args: []string{"name:string"}}, WriteOptions{})
	assert.True(t, errors.Is(err, ErrNoRoutesBlock), "got %v", err)

	assertNoFile(t, p, "app")
	assertNoFile(t, p, "db")
}

func TestScaffoldWithInvalidNameTouchesNothing(t *testing.T) {
	p := newApp(t)

	for _, name := range []string{"a/b", "../evil", "123"} {
		_, err := p.AddScaffold(context.Background(), scaffold.Request{Name: name}, WriteOptions{})
		assert.True(t, errors.Is(err, scaffold.ErrUsage), "%s: got %v", name, err)
	}

	entries, err := os.ReadDir(p.Root())
	require.NoError(t, err)
	assert.Len(t, entries, 1, "nothing but config/ may exist")
}

func TestModelSourceOpensColumnsLazily(t *testing.T) {
	p := newApp(t)
	res, err := scaffold.NewResource("recipe")
	require.NoError(t, err)

	models := &modelSource{p: p}
	defer models.close()

	assert.False(t, models.ModelExists(res))
	assert.Nil(t, models.columns)

	assert.Empty(t, models.ModelAttributes(context.Background(), res))
	assert.NotNil(t, models.columns)
}

func TestScaffoldRecognisesRestrictedRoute(t *testing.T) {
	p := newApp(t)
	routes := "ActionController::Routing::Routes.draw do |map|\n  map.resources :line_items, :only => [:index]\nend\n"
	require.NoError(t, os.WriteFile(filepath.Join(p.Root(), "config", "routes.rb"), []byte(routes), 0644))

	report := generate(t, p, "line_item", "index")

	assert.Contains(t, report.Paths(StatusIdentical), "config/routes.rb")
	assert.Equal(t, routes, readFile(t, p, "config/routes.rb"))
}

func dirs(paths []string) []string {
	var out []string
	for _, p := range paths {
		out = append(out, filepath.ToSlash(filepath.Dir(p)))
	}
	return out
}
