package scaffold

import (
	"errors"
	"fmt"
	"regexp"
	"strings"

	"github.com/iancoleman/strcase"
	"github.com/jinzhu/inflection"
)

// ErrUsage is returned when the generator is invoked without a resource name.
var ErrUsage = errors.New("usage: nifty generate scaffold NAME [field:type ...] [action ...] [!]")

// identifierRe matches the lowercase underscored names used for resources and attributes.
var identifierRe = regexp.MustCompile(`^[a-z][a-z0-9_]*$`)

// Resource holds the naming forms derived from the resource name.
type Resource struct {
	// Singular is the snake_case singular name, e.g. line_item.
	Singular string
	// Plural is the snake_case plural name, e.g. line_items.
	Plural string
	// ClassName is the model class, e.g. LineItem.
	ClassName string
	// PluralClassName prefixes the controller and helper names, e.g. LineItems.
	PluralClassName string
}

// NewResource derives every naming form from a name given as LineItem,
// line_item, line-item or line_items.
func NewResource(name string) (Resource, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Resource{}, ErrUsage
	}

	singular := inflection.Singular(strcase.ToSnake(name))
	if !identifierRe.MatchString(singular) {
		return Resource{}, fmt.Errorf("invalid resource name %q: %w", name, ErrUsage)
	}
	plural := inflection.Plural(singular)

	return Resource{
		Singular:        singular,
		Plural:          plural,
		ClassName:       strcase.ToCamel(singular),
		PluralClassName: strcase.ToCamel(plural),
	}, nil
}

// ControllerClass returns e.g. LineItemsController.
func (r Resource) ControllerClass() string {
	return r.PluralClassName + "Controller"
}

// HelperModule returns e.g. LineItemsHelper.
func (r Resource) HelperModule() string {
	return r.PluralClassName + "Helper"
}

// MigrationClass returns e.g. CreateLineItems.
func (r Resource) MigrationClass() string {
	return "Create" + r.PluralClassName
}

// HumanSingular returns e.g. "line item".
func (r Resource) HumanSingular() string {
	return strings.ReplaceAll(r.Singular, "_", " ")
}

// TitleSingular returns e.g. "Line Item".
func (r Resource) TitleSingular() string {
	return titleize(r.Singular)
}

// TitlePlural returns e.g. "Line Items".
func (r Resource) TitlePlural() string {
	return titleize(r.Plural)
}

func titleize(s string) string {
	words := strings.Split(s, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}

func humanize(s string) string {
	s = strings.TrimSuffix(s, "_id")
	s = strings.ReplaceAll(s, "_", " ")
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
