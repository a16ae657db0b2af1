package schema

import (
	"errors"
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// Text codes attached to schema errors.
const (
	CodeMissingRequiredField = "MISSING_REQUIRED_FIELD"
	CodeUnknownFieldType     = "UNKNOWN_FIELD_TYPE"
	CodeInvalidJSON          = "INVALID_JSON"
	CodeMalformedField       = "MALFORMED_FIELD"
)

var (
	// ErrMissingRequiredField reports a definition without name or title.
	ErrMissingRequiredField = errors.New("schema: missing required field")
	// ErrUnknownFieldType reports a field whose type tag is not registered.
	ErrUnknownFieldType = errors.New("schema: unknown field type")
	// ErrInvalidJSON reports a payload that is neither JSON nor YAML.
	ErrInvalidJSON = errors.New("schema: invalid definition payload")
	// ErrMalformedField reports a field entry that could not be decoded.
	ErrMalformedField = errors.New("schema: malformed field serialization")
)

// MissingRequiredFieldError reports a definition lacking field.
func MissingRequiredFieldError(field string) error {
	return missingRequiredError(field)
}

func missingRequiredError(field string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %s", ErrMissingRequiredField, field), goerrors.CategoryValidation, "definition is missing "+field).
		WithTextCode(CodeMissingRequiredField)
}

func invalidPayloadError(err error) error {
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("%w: %v", ErrInvalidJSON, err), goerrors.CategoryValidation, "definition payload could not be decoded").
		WithTextCode(CodeInvalidJSON)
}

func malformedFieldError(path string, err error) error {
	return goerrors.Wrap(fmt.Errorf("%w at %s: %v", ErrMalformedField, path, err), goerrors.CategoryValidation, "field entry could not be decoded").
		WithTextCode(CodeMalformedField)
}

// UnknownFieldTypeError builds the error logged when a field type tag cannot
// be resolved.
func UnknownFieldTypeError(block, field, tag string) error {
	return goerrors.Wrap(fmt.Errorf("%w: %q on %s.%s", ErrUnknownFieldType, tag, block, field), goerrors.CategoryValidation, "field type is not registered").
		WithTextCode(CodeUnknownFieldType)
}
