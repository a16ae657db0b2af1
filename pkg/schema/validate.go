package schema

import (
	"fmt"
	"regexp"
	"strings"

	validation "github.com/go-ozzo/ozzo-validation/v4"
	"golang.org/x/mod/semver"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
)

var namePattern = regexp.MustCompile(`^[a-z0-9-]+$`)

// Validate reports authoring problems in block. types resolves field type
// tags; a nil registry uses the built-in set. An empty result means valid.
func Validate(block Block, types *fieldtypes.Registry) []Issue {
	if types == nil {
		types = fieldtypes.NewRegistry()
	}

	err := validation.ValidateStruct(&block,
		validation.Field(&block.Name,
			validation.Required.ErrorObject(validation.NewError("blockgen.block.name_required", "block name is required")),
			validation.Match(namePattern).ErrorObject(validation.NewError("blockgen.block.name_format", "block name must contain only lowercase letters, numbers, and hyphens")),
		),
		validation.Field(&block.Title,
			validation.Required.ErrorObject(validation.NewError("blockgen.block.title_required", "block title is required")),
		),
		validation.Field(&block.Kind, validation.By(func(value any) error {
			kind, _ := value.(Kind)
			if kind != "" && !kind.Valid() {
				return validation.NewError("blockgen.block.kind_invalid", fmt.Sprintf("kind %q is not block or widget", kind))
			}
			return nil
		})),
	)
	issues := IssuesFromValidation("", err)

	for idx, field := range block.Fields {
		issues = append(issues, validateField(field, fmt.Sprintf("fields[%d]", idx), types, false)...)
	}
	for tabIdx, tab := range block.Tabs {
		tabPath := fmt.Sprintf("tabs[%d]", tabIdx)
		if strings.TrimSpace(tab.Name) == "" {
			issues = append(issues, Issue{Path: tabPath + ".name", Code: "blockgen.tab.name_required", Message: "tab is missing a name"})
		}
		for fieldIdx, field := range tab.Fields {
			issues = append(issues, validateField(field, fmt.Sprintf("%s.fields[%d]", tabPath, fieldIdx), types, false)...)
		}
	}
	for idx, asset := range block.EnqueueScripts {
		issues = append(issues, validateAsset(asset, fmt.Sprintf("enqueue_scripts[%d]", idx))...)
	}
	for idx, asset := range block.EnqueueStyles {
		issues = append(issues, validateAsset(asset, fmt.Sprintf("enqueue_styles[%d]", idx))...)
	}
	return issues
}

// validateField checks one field. Repeater sub-fields are keyed by name inside
// each row, so they never need an attr_name.
func validateField(field Field, path string, types *fieldtypes.Registry, nested bool) []Issue {
	ft, known := types.Resolve(field.Type)

	err := validation.ValidateStruct(&field,
		validation.Field(&field.Type,
			validation.Required.ErrorObject(validation.NewError("blockgen.field.type_required", "field is missing a type")),
			validation.By(func(any) error {
				if field.Type != "" && !known {
					return validation.NewError(CodeUnknownFieldType, fmt.Sprintf("field type %q is not registered", field.Type))
				}
				return nil
			}),
		),
		validation.Field(&field.Name,
			validation.Required.ErrorObject(validation.NewError("blockgen.field.name_required", "field is missing a name")),
		),
		validation.Field(&field.AttrName,
			validation.When(!nested && (!known || !ft.Presentational),
				validation.Required.ErrorObject(validation.NewError("blockgen.field.attr_name_required", "field is missing an attr_name")),
			),
		),
		validation.Field(&field.Options,
			validation.When(known && ft.HasOptions,
				validation.Required.ErrorObject(validation.NewError("blockgen.field.options_required", fmt.Sprintf("%s field is missing options", field.Type))),
			),
		),
		validation.Field(&field.RepeaterFields,
			validation.When(known && ft.RequiresRepeaterFields,
				validation.Required.ErrorObject(validation.NewError("blockgen.field.repeater_fields_required", fmt.Sprintf("%s field is missing repeater_fields", field.Type))),
			),
		),
	)
	issues := IssuesFromValidation(path, err)

	for idx, sub := range field.RepeaterFields {
		issues = append(issues, validateField(sub, fmt.Sprintf("%s.repeater_fields[%d]", path, idx), types, true)...)
	}
	return issues
}

func validateAsset(asset Asset, path string) []Issue {
	err := validation.ValidateStruct(&asset,
		validation.Field(&asset.Handle,
			validation.Required.ErrorObject(validation.NewError("blockgen.asset.handle_required", "asset is missing a handle")),
		),
		validation.Field(&asset.Src,
			validation.Required.ErrorObject(validation.NewError("blockgen.asset.src_required", "asset is missing a src")),
		),
		validation.Field(&asset.Version, validation.By(func(any) error {
			if asset.Version != "" && !ValidAssetVersion(asset.Version) {
				return validation.NewError("blockgen.asset.version_invalid", fmt.Sprintf("version %q is not semver-like", asset.Version))
			}
			return nil
		})),
	)
	return IssuesFromValidation(path, err)
}

// ValidAssetVersion reports whether version is a semantic version, with or
// without the leading v.
func ValidAssetVersion(version string) bool {
	version = strings.TrimSpace(version)
	if version == "" {
		return false
	}
	if !strings.HasPrefix(version, "v") {
		version = "v" + version
	}
	return semver.IsValid(version)
}
