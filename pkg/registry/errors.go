package registry

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// CodeUnknownSchema tags lookups of unregistered block names.
const CodeUnknownSchema = "UNKNOWN_SCHEMA"

// ErrUnknownSchema reports a render or lookup for a name with no entry.
var ErrUnknownSchema = errors.New("registry: unknown schema")

func unknownSchemaError(name string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q", ErrUnknownSchema, name), goerrors.CategoryNotFound, "block is not registered").
		WithTextCode(CodeUnknownSchema)
}
