package values

import "testing"

func TestTruthy(t *testing.T) {
	cases := []struct {
		name  string
		value any
		want  bool
	}{
		{"nil", nil, false},
		{"false", false, false},
		{"true", true, true},
		{"empty string", "", false},
		{"zero string", "0", false},
		{"text", "no", true},
		{"zero int", 0, false},
		{"zero float", 0.0, false},
		{"float", 1.5, true},
		{"empty slice", []any{}, false},
		{"slice", []any{1}, true},
		{"empty map", map[string]any{}, false},
		{"map", map[string]any{"a": 1}, true},
		{"typed empty slice", []string{}, false},
	}

	for _, tc := range cases {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			if got := Truthy(tc.value); got != tc.want {
				t.Fatalf("Truthy(%#v) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestStringify(t *testing.T) {
	cases := map[string]struct {
		value any
		want  string
	}{
		"string": {"Hi", "Hi"},
		"int":    {2, "2"},
		"float":  {1.0, "1"},
		"true":   {true, "1"},
		"false":  {false, ""},
		"nil":    {nil, ""},
		"slice":  {[]any{1}, "Array"},
	}
	for name, tc := range cases {
		if got := Stringify(tc.value); got != tc.want {
			t.Fatalf("%s: Stringify(%#v) = %q, want %q", name, tc.value, got, tc.want)
		}
	}
}

func TestSequence(t *testing.T) {
	if _, ok := Sequence(map[string]any{"a": 1}); ok {
		t.Fatalf("maps are not sequences")
	}
	if _, ok := Sequence("text"); ok {
		t.Fatalf("strings are not sequences")
	}
	items, ok := Sequence([]string{"a", "b"})
	if !ok || len(items) != 2 {
		t.Fatalf("expected two items, got %v (ok=%v)", items, ok)
	}
}
