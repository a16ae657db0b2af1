package handlers

import (
	"errors"
	"fmt"
	"strings"

	goerrors "github.com/goliatone/go-errors"

	"github.com/goliatone/go-blockgen/pkg/schema"
)

// Action is a handler action.
type Action string

const (
	// ActionRegister appends a definition to the dispatcher collection.
	ActionRegister Action = "register"
)

// Namespace is the tag prefix routed to a dispatcher.
type Namespace string

const (
	NamespaceBlocks  Namespace = "gt_blocks"
	NamespaceWidgets Namespace = "element_widgets"
)

// Kind returns the definition kind registered through the namespace.
func (n Namespace) Kind() schema.Kind {
	if n == NamespaceWidgets {
		return schema.KindWidget
	}
	return schema.KindBlock
}

// Text codes attached to handler errors.
const (
	CodeUnknownAction = "UNKNOWN_ACTION"
	CodeInvalidTag    = "INVALID_TAG"
)

var (
	// ErrUnknownAction reports an action outside the supported set.
	ErrUnknownAction = errors.New("handlers: unknown action")
	// ErrInvalidTag reports a tag without exactly two parts or routed to the
	// wrong namespace.
	ErrInvalidTag = errors.New("handlers: invalid tag")
)

// ParseAction resolves name to an Action.
func ParseAction(name string) (Action, error) {
	switch Action(strings.ToLower(strings.TrimSpace(name))) {
	case ActionRegister:
		return ActionRegister, nil
	default:
		return "", goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownAction, name), goerrors.CategoryValidation, "action is not supported").
			WithTextCode(CodeUnknownAction)
	}
}

func invalidTagError(tag, reason string) error {
	return goerrors.Wrap(fmt.Errorf("%w %q: %s", ErrInvalidTag, tag, reason), goerrors.CategoryValidation, reason).
		WithTextCode(CodeInvalidTag)
}
