package attributes

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	json "github.com/goccy/go-json"

	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/values"
)

// Supported field validation rule keys.
const (
	RuleRequired  = "required"
	RuleMin       = "min"
	RuleMax       = "max"
	RuleMinLength = "minLength"
	RuleMaxLength = "maxLength"
	RulePattern   = "pattern"
)

// ValidateFieldRules applies each field's validation rules to the value found
// at its attr_name. Unsupported rule keys are ignored.
func ValidateFieldRules(block schema.Block, tree values.Tree) []schema.Issue {
	var issues []schema.Issue
	for _, field := range block.AllFields() {
		if field.AttrName == "" || len(field.Validation) == 0 {
			continue
		}
		value := values.Get(tree, field.AttrName, nil)
		rules, ruleIssues := fieldRules(field)
		issues = append(issues, ruleIssues...)
		if len(rules) == 0 {
			continue
		}
		if err := validation.Validate(ruleValue(field, value), rules...); err != nil {
			issues = append(issues, schema.IssuesFromValidation("", validation.Errors{field.AttrName: err})...)
		}
	}
	return issues
}

func fieldRules(field schema.Field) ([]validation.Rule, []schema.Issue) {
	var (
		rules  []validation.Rule
		issues []schema.Issue
	)
	invalid := func(rule string, raw any) {
		issues = append(issues, schema.Issue{
			Path:    field.AttrName,
			Code:    "blockgen.validation.rule_invalid",
			Message: fmt.Sprintf("rule %s has unusable value %v", rule, raw),
		})
	}

	if raw, ok := field.Validation[RuleRequired]; ok && values.Truthy(raw) {
		rules = append(rules, validation.Required)
	}
	if raw, ok := field.Validation[RuleMin]; ok {
		if threshold, ok := number(raw); ok {
			rules = append(rules, validation.Min(threshold))
		} else {
			invalid(RuleMin, raw)
		}
	}
	if raw, ok := field.Validation[RuleMax]; ok {
		if threshold, ok := number(raw); ok {
			rules = append(rules, validation.Max(threshold))
		} else {
			invalid(RuleMax, raw)
		}
	}

	minLen, hasMin := -1, false
	maxLen, hasMax := 0, false
	if raw, ok := field.Validation[RuleMinLength]; ok {
		if n, ok := number(raw); ok {
			minLen, hasMin = int(n), true
		} else {
			invalid(RuleMinLength, raw)
		}
	}
	if raw, ok := field.Validation[RuleMaxLength]; ok {
		if n, ok := number(raw); ok {
			maxLen, hasMax = int(n), true
		} else {
			invalid(RuleMaxLength, raw)
		}
	}
	if hasMin || hasMax {
		if !hasMin {
			minLen = 0
		}
		rules = append(rules, validation.RuneLength(minLen, maxLen))
	}

	if raw, ok := field.Validation[RulePattern]; ok {
		pattern, _ := raw.(string)
		re, err := regexp.Compile(pattern)
		if pattern == "" || err != nil {
			invalid(RulePattern, raw)
		} else {
			rules = append(rules, validation.Match(re))
		}
	}
	return rules, issues
}

// ruleValue coerces numeric values to float64 when the field carries numeric
// thresholds so ozzo compares like with like.
func ruleValue(field schema.Field, value any) any {
	_, hasMin := field.Validation[RuleMin]
	_, hasMax := field.Validation[RuleMax]
	if !hasMin && !hasMax {
		return value
	}
	if n, ok := number(value); ok {
		return n
	}
	return value
}

func number(raw any) (float64, bool) {
	switch typed := raw.(type) {
	case float64:
		return typed, true
	case float32:
		return float64(typed), true
	case int:
		return float64(typed), true
	case int64:
		return float64(typed), true
	case int32:
		return float64(typed), true
	case json.Number:
		f, err := typed.Float64()
		return f, err == nil
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		return f, err == nil
	default:
		return 0, false
	}
}
