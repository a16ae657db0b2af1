package fieldtypes

import (
	"testing"
)

func TestResolve_Builtins(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		tag     string
		storage Storage
		control Control
		options bool
	}{
		{tag: TypeText, storage: StorageString, control: ControlText},
		{tag: TypeSmallNumber, storage: StorageNumber, control: ControlSmallNumber},
		{tag: TypeToggle, storage: StorageBoolean, control: ControlToggle},
		{tag: TypeSingleCheckbox, storage: StorageBoolean, control: ControlCheckbox},
		{tag: TypeCheckbox, storage: StorageArray, control: ControlCheckboxGroup, options: true},
		{tag: TypeSelect, storage: StorageString, control: ControlSelect, options: true},
		{tag: TypeRadio, storage: StorageString, control: ControlRadio, options: true},
		{tag: TypeImage, storage: StorageObject, control: ControlMedia},
		{tag: TypeRowRepeater, storage: StorageArray, control: ControlRepeater},
		{tag: TypeAwesomeCode, storage: StorageString, control: ControlCode},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.tag, func(t *testing.T) {
			t.Parallel()
			ft, ok := reg.Resolve(tc.tag)
			if !ok {
				t.Fatalf("expected %q to resolve", tc.tag)
			}
			if ft.Storage != tc.storage {
				t.Fatalf("storage: want %q, got %q", tc.storage, ft.Storage)
			}
			if ft.Control != tc.control {
				t.Fatalf("control: want %q, got %q", tc.control, ft.Control)
			}
			if ft.HasOptions != tc.options {
				t.Fatalf("has options: want %v, got %v", tc.options, ft.HasOptions)
			}
		})
	}
}

func TestResolve_UnknownFailsClosed(t *testing.T) {
	reg := NewRegistry()
	if _, ok := reg.Resolve("color-wheel"); ok {
		t.Fatalf("unknown tag should not resolve")
	}

	var nilReg *Registry
	if _, ok := nilReg.Resolve(TypeText); ok {
		t.Fatalf("nil registry should not resolve")
	}
}

func TestFieldTypeDefault(t *testing.T) {
	reg := NewRegistry()

	cases := []struct {
		tag      string
		declared any
		check    func(any) bool
	}{
		{TypeText, nil, func(v any) bool { return v == "" }},
		{TypeNumber, nil, func(v any) bool { return v == 0 }},
		{TypeToggle, nil, func(v any) bool { return v == false }},
		{TypeImage, nil, func(v any) bool { return v == nil }},
		{TypeCheckbox, nil, func(v any) bool { s, ok := v.([]any); return ok && len(s) == 0 }},
		{TypeText, "Hi", func(v any) bool { return v == "Hi" }},
		{TypeToggle, true, func(v any) bool { return v == true }},
	}

	for _, tc := range cases {
		ft, _ := reg.Resolve(tc.tag)
		if got := ft.Default(tc.declared); !tc.check(got) {
			t.Fatalf("%s default with %#v: unexpected %#v", tc.tag, tc.declared, got)
		}
	}
}

func TestFieldTypeDefaultReturnsFreshCollections(t *testing.T) {
	reg := NewRegistry()
	ft, _ := reg.Resolve(TypeRowRepeater)

	first := ft.Default(nil).([]any)
	first = append(first, "row")
	second := ft.Default(nil).([]any)
	if len(second) != 0 || len(first) != 1 {
		t.Fatalf("expected independent baselines, got %v and %v", first, second)
	}
}

func TestRegister_Extension(t *testing.T) {
	reg := NewRegistry()

	if err := reg.Register(FieldType{Tag: "color", Storage: StorageString, Baseline: "#000"}); err != nil {
		t.Fatalf("register: %v", err)
	}
	ft, ok := reg.Resolve("color")
	if !ok || ft.Control != ControlText || ft.Default(nil) != "#000" {
		t.Fatalf("unexpected extension descriptor %+v (ok=%v)", ft, ok)
	}

	if err := reg.Register(FieldType{Tag: " ", Storage: StorageString}); err == nil {
		t.Fatalf("expected empty tag to be rejected")
	}
	if err := reg.Register(FieldType{Tag: "blob", Storage: "binary"}); err == nil {
		t.Fatalf("expected invalid storage to be rejected")
	}
}

func TestList_Sorted(t *testing.T) {
	list := NewRegistry().List()
	if len(list) != 20 {
		t.Fatalf("expected 20 builtin field types, got %d", len(list))
	}
	for i := 1; i < len(list); i++ {
		if list[i-1].Tag > list[i].Tag {
			t.Fatalf("list not sorted at %d: %q > %q", i, list[i-1].Tag, list[i].Tag)
		}
	}
}
