package scaffold

import (
	"fmt"
	"slices"
)

// Action is one of the seven CRUD actions a scaffold controller can expose.
type Action string

const (
	ActionIndex   Action = "index"
	ActionShow    Action = "show"
	ActionNew     Action = "new"
	ActionCreate  Action = "create"
	ActionEdit    Action = "edit"
	ActionUpdate  Action = "update"
	ActionDestroy Action = "destroy"
)

// AllActions lists the canonical actions in the order they are rendered.
var AllActions = []Action{
	ActionIndex,
	ActionShow,
	ActionNew,
	ActionCreate,
	ActionEdit,
	ActionUpdate,
	ActionDestroy,
}

// viewActions are the actions that come with a template of their own.
var viewActions = []Action{ActionIndex, ActionShow, ActionNew, ActionEdit}

// InvalidActionError is returned when an action token does not name one of the canonical actions.
type InvalidActionError struct {
	Action string
}

func (e *InvalidActionError) Error() string {
	return fmt.Sprintf("invalid action %q (valid: index, show, new, create, edit, update, destroy)", e.Action)
}

// ActionSet is the resolved set of actions to generate.
type ActionSet struct {
	members map[Action]bool
}

// NewActionSet builds a set from the given actions, ignoring duplicates.
func NewActionSet(actions ...Action) ActionSet {
	s := ActionSet{members: make(map[Action]bool, len(actions))}
	for _, a := range actions {
		s.members[a] = true
	}
	return s
}

// ResolveActions turns the raw action tokens into an ActionSet.
//
// Without tokens every action is generated. With invert set, the result is
// the complement of the listed tokens within the canonical actions.
func ResolveActions(tokens []string, invert bool) (ActionSet, error) {
	listed := make([]Action, 0, len(tokens))
	for _, token := range tokens {
		a := Action(token)
		if !slices.Contains(AllActions, a) {
			return ActionSet{}, &InvalidActionError{Action: token}
		}
		listed = append(listed, a)
	}

	if len(listed) == 0 && !invert {
		return NewActionSet(AllActions...), nil
	}
	if !invert {
		return NewActionSet(listed...), nil
	}

	var complement []Action
	for _, a := range AllActions {
		if !slices.Contains(listed, a) {
			complement = append(complement, a)
		}
	}
	return NewActionSet(complement...), nil
}

// Has reports whether every given action is in the set.
func (s ActionSet) Has(actions ...Action) bool {
	for _, a := range actions {
		if !s.members[a] {
			return false
		}
	}
	return true
}

// Actions returns the members in canonical order.
func (s ActionSet) Actions() []Action {
	var out []Action
	for _, a := range AllActions {
		if s.members[a] {
			out = append(out, a)
		}
	}
	return out
}

// Views returns the members that render a template, in canonical order.
func (s ActionSet) Views() []Action {
	var out []Action
	for _, a := range viewActions {
		if s.members[a] {
			out = append(out, a)
		}
	}
	return out
}

// FormPartial reports whether new and edit share a _form partial.
func (s ActionSet) FormPartial() bool {
	return s.Has(ActionNew, ActionEdit)
}

// Len returns the number of actions in the set.
func (s ActionSet) Len() int {
	return len(s.members)
}
