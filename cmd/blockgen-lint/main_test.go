package main

import (
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
)

func writeFile(t *testing.T, dir, name, body string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
	return path
}

func TestLintFileReportsProblems(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "broken.json", `{
		"name": "broken",
		"title": "Broken",
		"kind": "gadget",
		"fields": [{"name": "x", "type": "hologram", "attr_name": "x"}]
	}`)

	violations, err := lintFile(context.Background(), fieldtypes.NewRegistry(), path)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) == 0 {
		t.Fatalf("expected violations")
	}

	var sawKind bool
	for _, v := range violations {
		if v.file != path {
			t.Fatalf("unexpected file %q", v.file)
		}
		if strings.HasPrefix(v.location, "kind") {
			sawKind = true
		}
	}
	if !sawKind {
		t.Fatalf("expected a kind violation, got %+v", violations)
	}
}

func TestLintFileCleanDefinition(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "card.yaml", "name: card\ntitle: Card\ntemplate: <p>{{text}}</p>\nfields:\n  - name: text\n    type: text\n    attr_name: text\n")

	violations, err := lintFile(context.Background(), fieldtypes.NewRegistry(), path)
	if err != nil {
		t.Fatalf("lint: %v", err)
	}
	if len(violations) != 0 {
		t.Fatalf("expected no violations, got %+v", violations)
	}
}

func TestExpandWalksDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "b.yaml", "name: b\n")
	writeFile(t, dir, "a.json", "{}")
	writeFile(t, dir, "notes.txt", "ignored")

	files, err := expand([]string{dir})
	if err != nil {
		t.Fatalf("expand: %v", err)
	}
	if len(files) != 2 || filepath.Base(files[0]) != "a.json" || filepath.Base(files[1]) != "b.yaml" {
		t.Fatalf("unexpected files %v", files)
	}
}

func TestSortViolations(t *testing.T) {
	items := []violation{
		{file: "b", location: "x", message: "1"},
		{file: "a", location: "y", message: "2"},
		{file: "a", location: "x", message: "3"},
	}
	sortViolations(items)
	if items[0].location != "x" || items[1].location != "y" || items[2].file != "b" {
		t.Fatalf("unexpected order %+v", items)
	}
}
