package template

import (
	"fmt"

	goerrors "github.com/goliatone/go-errors"
)

// CodeTemplateRenderFailed tags template execution failures.
const CodeTemplateRenderFailed = "TEMPLATE_RENDER_FAILED"

// WrapRenderError wraps err as a template render failure for name.
func WrapRenderError(name string, err error) error {
	if err == nil {
		return nil
	}
	if goerrors.IsWrapped(err) {
		return err
	}
	return goerrors.Wrap(fmt.Errorf("template %s: %w", name, err), goerrors.CategoryInternal, "template render failed").
		WithTextCode(CodeTemplateRenderFailed)
}
