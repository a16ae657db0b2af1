package schema

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Issue is one authoring problem found in a definition.
type Issue struct {
	Path    string `json:"path"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func (i Issue) String() string {
	if i.Path == "" {
		return i.Message
	}
	return fmt.Sprintf("%s: %s", i.Path, i.Message)
}

// IssuesError joins issues into a single error, or returns nil when empty.
func IssuesError(issues []Issue) error {
	if len(issues) == 0 {
		return nil
	}
	parts := make([]string, 0, len(issues))
	for _, issue := range issues {
		parts = append(parts, issue.String())
	}
	return errors.New("schema: " + strings.Join(parts, "; "))
}

// IssuesFromValidation flattens ozzo-validation errors into issues keyed by
// prefix plus the reported field name, sorted by path.
func IssuesFromValidation(prefix string, err error) []Issue {
	if err == nil {
		return nil
	}
	var errs validation.Errors
	if !errors.As(err, &errs) {
		return []Issue{issueFromError(prefix, err)}
	}

	out := make([]Issue, 0, len(errs))
	for key, fieldErr := range errs {
		if fieldErr == nil {
			continue
		}
		path := key
		if prefix != "" {
			path = prefix + "." + key
		}
		var nested validation.Errors
		if errors.As(fieldErr, &nested) {
			out = append(out, IssuesFromValidation(path, nested)...)
			continue
		}
		out = append(out, issueFromError(path, fieldErr))
	}
	sortIssues(out)
	return out
}

func issueFromError(path string, err error) Issue {
	code := "invalid"
	var vErr validation.Error
	if errors.As(err, &vErr) {
		code = vErr.Code()
		return Issue{Path: path, Code: code, Message: vErr.Error()}
	}
	return Issue{Path: path, Code: code, Message: err.Error()}
}

func sortIssues(issues []Issue) {
	sort.SliceStable(issues, func(i, j int) bool {
		if issues[i].Path == issues[j].Path {
			return issues[i].Code < issues[j].Code
		}
		return issues[i].Path < issues[j].Path
	})
}
