package scaffold

import (
	"fmt"
	"slices"
	"strings"
)

// InvertToken flips the listed actions into the ones that are left out.
const InvertToken = "!"

// columnTypes is the schema column vocabulary accepted for attributes.
var columnTypes = []string{
	"string", "text", "integer", "float", "decimal", "boolean",
	"date", "time", "datetime", "timestamp", "binary", "references",
}

// Attribute is a typed field of the resource.
type Attribute struct {
	Name string
	Type string
}

// InvalidAttributeError is returned for a malformed "name:type" token.
type InvalidAttributeError struct {
	Token  string
	Reason string
}

func (e *InvalidAttributeError) Error() string {
	return fmt.Sprintf("invalid attribute %q: %s", e.Token, e.Reason)
}

// ParseAttribute parses a single "name:type" token.
func ParseAttribute(token string) (Attribute, error) {
	name, typ, ok := strings.Cut(token, ":")
	if !ok {
		return Attribute{}, &InvalidAttributeError{Token: token, Reason: "expected 'name:type'"}
	}
	name = strings.TrimSpace(name)
	typ = strings.ToLower(strings.TrimSpace(typ))
	if name == "" {
		return Attribute{}, &InvalidAttributeError{Token: token, Reason: "empty name"}
	}
	if !identifierRe.MatchString(name) {
		return Attribute{}, &InvalidAttributeError{Token: token, Reason: "name must be lowercase letters, digits and underscores"}
	}
	if typ == "" {
		return Attribute{}, &InvalidAttributeError{Token: token, Reason: "empty type"}
	}
	if !slices.Contains(columnTypes, typ) {
		return Attribute{}, &InvalidAttributeError{
			Token:  token,
			Reason: fmt.Sprintf("unknown type %q (valid: %s)", typ, strings.Join(columnTypes, ", ")),
		}
	}
	return Attribute{Name: name, Type: typ}, nil
}

// FieldType returns the form builder helper used to edit the attribute.
func (a Attribute) FieldType() string {
	switch a.Type {
	case "text":
		return "text_area"
	case "boolean":
		return "check_box"
	case "date":
		return "date_select"
	case "time":
		return "time_select"
	case "datetime", "timestamp":
		return "datetime_select"
	default:
		return "text_field"
	}
}

// ColumnName is the column a references attribute ends up as.
func (a Attribute) ColumnName() string {
	if a.Type == "references" {
		return a.Name + "_id"
	}
	return a.Name
}

// HumanName is the column label, e.g. "Book" for book_id and "Unit price" for unit_price.
func (a Attribute) HumanName() string {
	return humanize(a.Name)
}

// Tokens is the result of splitting the raw generator arguments.
type Tokens struct {
	Attributes []Attribute
	Actions    []string
	Invert     bool
}

// ParseTokens sorts raw arguments into attributes and action tokens.
//
// A token containing a colon is an attribute. The "!" token marks the whole
// action list as inverted, wherever it appears. Every other token is an
// action; "new" brings "create" along and "edit" brings "update".
// Two attributes ending up in the same column are rejected.
func ParseTokens(tokens []string) (Tokens, error) {
	var out Tokens
	seen := make(map[string]bool)
	columns := make(map[string]bool)
	addAction := func(a string) {
		if !seen[a] {
			seen[a] = true
			out.Actions = append(out.Actions, a)
		}
	}

	for _, token := range tokens {
		switch {
		case token == InvertToken:
			out.Invert = true
		case strings.Contains(token, ":"):
			attr, err := ParseAttribute(token)
			if err != nil {
				return Tokens{}, err
			}
			if columns[attr.ColumnName()] {
				return Tokens{}, &InvalidAttributeError{Token: token, Reason: fmt.Sprintf("duplicate column %q", attr.ColumnName())}
			}
			columns[attr.ColumnName()] = true
			out.Attributes = append(out.Attributes, attr)
		default:
			action := strings.ToLower(strings.TrimSpace(token))
			addAction(action)
			switch Action(action) {
			case ActionNew:
				addAction(string(ActionCreate))
			case ActionEdit:
				addAction(string(ActionUpdate))
			}
		}
	}
	return out, nil
}
