package scaffold

import (
	"context"
	"fmt"
)

// Request is one generator invocation.
type Request struct {
	// Name is the resource name; required.
	Name string
	// Args are the attribute, action and "!" tokens in the order given.
	Args []string
	// Invert has the same effect as a "!" token.
	Invert bool

	SkipModel      bool
	SkipMigration  bool
	SkipTimestamps bool
}

// ModelSource answers questions about models already present in the application.
type ModelSource interface {
	// ModelExists reports whether app/models/<singular>.rb is present.
	ModelExists(res Resource) bool
	// ModelAttributes returns the editable columns of the resource's table,
	// or nothing when they cannot be determined.
	ModelAttributes(ctx context.Context, res Resource) []Attribute
}

// Plan is everything needed to write a scaffold to disk.
type Plan struct {
	Resource   Resource
	Attributes []Attribute
	Actions    ActionSet
	Options    RenderOptions
	Files      []File
	RoutesLine string
}

// Generator turns a Request into a Plan.
type Generator struct {
	renderer *Renderer
	models   ModelSource
}

// NewGenerator creates a generator that consults models when no attributes are given.
func NewGenerator(renderer *Renderer, models ModelSource) *Generator {
	return &Generator{renderer: renderer, models: models}
}

// Plan validates the request and renders the scaffold. Nothing is written.
func (g *Generator) Plan(ctx context.Context, req Request) (*Plan, error) {
	res, err := NewResource(req.Name)
	if err != nil {
		return nil, err
	}

	tokens, err := ParseTokens(req.Args)
	if err != nil {
		return nil, err
	}

	actions, err := ResolveActions(tokens.Actions, tokens.Invert || req.Invert)
	if err != nil {
		return nil, err
	}

	opts := RenderOptions{
		SkipModel:      req.SkipModel,
		SkipMigration:  req.SkipMigration,
		SkipTimestamps: req.SkipTimestamps,
	}

	attrs := tokens.Attributes
	if len(attrs) == 0 {
		// Without explicit attributes there is nothing to build a model from.
		opts.SkipModel = true
		attrs = g.defaultAttributes(ctx, res, req.SkipModel)
	}

	files, err := g.renderer.Render(res, attrs, actions, opts)
	if err != nil {
		return nil, fmt.Errorf("failed to render scaffold for %s: %w", res.Singular, err)
	}

	return &Plan{
		Resource:   res,
		Attributes: attrs,
		Actions:    actions,
		Options:    opts,
		Files:      files,
		RoutesLine: RoutesLine(res),
	}, nil
}

// defaultAttributes reads the columns of an existing model. A brand new
// resource without any known columns gets a single name:string attribute.
func (g *Generator) defaultAttributes(ctx context.Context, res Resource, skipModel bool) []Attribute {
	exists := g.models != nil && g.models.ModelExists(res)
	if exists || (skipModel && g.models != nil) {
		attrs := g.models.ModelAttributes(ctx, res)
		if exists || len(attrs) > 0 {
			return attrs
		}
	}
	return []Attribute{{Name: "name", Type: "string"}}
}
