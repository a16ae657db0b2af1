package fieldtypes

// Built-in field type tags.
const (
	TypeText               = "text"
	TypeTextarea           = "textarea"
	TypeNumber             = "number"
	TypeSmallNumber        = "small-number"
	TypeSelect             = "select"
	TypeRadio              = "radio"
	TypeCheckbox           = "checkbox"
	TypeSingleCheckbox     = "single-checkbox"
	TypeToggle             = "toggle"
	TypeImage              = "image"
	TypeDate               = "date"
	TypeTitle              = "title"
	TypePurpose            = "purpose"
	TypeQuery              = "query"
	TypeService            = "service"
	TypeAwesomeCode        = "awesome_code"
	TypeEnvPath            = "env_path"
	TypeAttributesRepeater = "attributes-repeater"
	TypeRowRepeater        = "row_repeater"
	TypeInnerBlocks        = "innerblocks"
)

func (r *Registry) registerBuiltins() {
	for _, ft := range builtins() {
		r.MustRegister(ft)
	}
}

func builtins() []FieldType {
	text := func(tag, label, description string, control Control) FieldType {
		return FieldType{
			Tag:         tag,
			Label:       label,
			Description: description,
			Control:     control,
			Storage:     StorageString,
			Baseline:    "",
		}
	}

	return []FieldType{
		text(TypeText, "Text", "Single line text input", ControlText),
		text(TypeTextarea, "Textarea", "Multi-line text input", ControlTextarea),
		text(TypeDate, "Date", "Date picker", ControlDate),
		text(TypeTitle, "Title", "Pre-configured title field", ControlText),
		text(TypePurpose, "Purpose", "Pre-configured purpose/description", ControlTextarea),
		text(TypeQuery, "Query", "SQL query textarea", ControlCode),
		text(TypeService, "Service", "Service name input", ControlText),
		text(TypeAwesomeCode, "Code", "Code editor textarea", ControlCode),
		text(TypeEnvPath, "Environment Path", "Environment path input", ControlText),
		{
			Tag:         TypeSelect,
			Label:       "Select",
			Description: "Dropdown selection",
			Control:     ControlSelect,
			Storage:     StorageString,
			HasOptions:  true,
			Baseline:    "",
		},
		{
			Tag:         TypeRadio,
			Label:       "Radio Buttons",
			Description: "Single selection from multiple options",
			Control:     ControlRadio,
			Storage:     StorageString,
			HasOptions:  true,
			Baseline:    "",
		},
		{
			Tag:         TypeNumber,
			Label:       "Number",
			Description: "Numeric input",
			Control:     ControlNumber,
			Storage:     StorageNumber,
			Baseline:    0,
		},
		{
			Tag:         TypeSmallNumber,
			Label:       "Small Number",
			Description: "Compact numeric input with min/max",
			Control:     ControlSmallNumber,
			Storage:     StorageNumber,
			Baseline:    0,
		},
		{
			Tag:         TypeToggle,
			Label:       "Toggle",
			Description: "Boolean on/off switch",
			Control:     ControlToggle,
			Storage:     StorageBoolean,
			Baseline:    false,
		},
		{
			Tag:         TypeSingleCheckbox,
			Label:       "Single Checkbox",
			Description: "Single on/off checkbox",
			Control:     ControlCheckbox,
			Storage:     StorageBoolean,
			Baseline:    false,
		},
		{
			Tag:         TypeCheckbox,
			Label:       "Checkboxes",
			Description: "Multiple selection from options",
			Control:     ControlCheckboxGroup,
			Storage:     StorageArray,
			HasOptions:  true,
			Baseline:    []any{},
		},
		{
			Tag:         TypeImage,
			Label:       "Image",
			Description: "Media library image picker",
			Control:     ControlMedia,
			Storage:     StorageObject,
			Baseline:    nil,
		},
		{
			Tag:         TypeAttributesRepeater,
			Label:       "Attributes Repeater",
			Description: "Dynamic key-value pairs",
			Control:     ControlKeyValue,
			Storage:     StorageArray,
			Baseline:    []any{},
		},
		{
			Tag:                    TypeRowRepeater,
			Label:                  "Row Repeater",
			Description:            "Custom repeatable rows",
			Control:                ControlRepeater,
			Storage:                StorageArray,
			RequiresRepeaterFields: true,
			Baseline:               []any{},
		},
		{
			Tag:            TypeInnerBlocks,
			Label:          "Inner Blocks",
			Description:    "Nested blocks",
			Control:        ControlInnerBlocks,
			Storage:        StorageString,
			Presentational: true,
			Baseline:       "",
		},
	}
}
