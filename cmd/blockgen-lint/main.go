package main

import (
	"context"
	"flag"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/goliatone/go-blockgen/pkg/configschema"
	"github.com/goliatone/go-blockgen/pkg/fieldtypes"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source/fsdir"
)

type violation struct {
	file     string
	location string
	message  string
}

func main() {
	flag.Usage = func() {
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "Usage: %s [paths...]\n", filepath.Base(os.Args[0])); err != nil {
			panic(err)
		}
		if _, err := fmt.Fprintf(flag.CommandLine.Output(), "\nLint block definitions against the definition schema and field rules.\n"); err != nil {
			panic(err)
		}
	}
	flag.Parse()

	paths := flag.Args()
	if len(paths) == 0 {
		paths = []string{"examples/blocks"}
	}

	files, err := expand(paths)
	if err != nil {
		fmt.Fprintf(os.Stderr, "lint: %v\n", err)
		os.Exit(1)
	}

	ctx := context.Background()
	types := fieldtypes.NewRegistry()

	var violations []violation
	for _, path := range files {
		linted, err := lintFile(ctx, types, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "lint %s: %v\n", path, err)
			os.Exit(1)
		}
		violations = append(violations, linted...)
	}

	if len(violations) > 0 {
		sortViolations(violations)
		for _, v := range violations {
			fmt.Fprintf(os.Stderr, "%s: %s -> %s\n", v.file, v.location, v.message)
		}
		os.Exit(1)
	}
}

// expand replaces directories with the definition files below them.
func expand(paths []string) ([]string, error) {
	var out []string
	for _, path := range paths {
		info, err := os.Stat(path)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			out = append(out, path)
			continue
		}
		err = filepath.WalkDir(path, func(p string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && fsdir.IsDefinitionFile(p) {
				out = append(out, p)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(out)
	return out, nil
}

func lintFile(ctx context.Context, types *fieldtypes.Registry, path string) ([]violation, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}

	format, ok := schema.FormatFromPath(path)
	if !ok {
		return nil, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	doc, err := schema.NewDocument(schema.OriginFromFile(path), format, raw)
	if err != nil {
		return nil, fmt.Errorf("construct document: %w", err)
	}
	cfg, err := doc.Config()
	if err != nil {
		return []violation{{file: path, location: "document", message: err.Error()}}, nil
	}

	result := fromIssues(path, configschema.ValidateConfig(cfg))

	block, err := schema.Normalize(ctx, cfg)
	if err != nil {
		return append(result, violation{file: path, location: "block", message: err.Error()}), nil
	}
	result = append(result, fromIssues(path, schema.Validate(block, types))...)
	return result, nil
}

func fromIssues(file string, issues []schema.Issue) []violation {
	out := make([]violation, 0, len(issues))
	for _, issue := range issues {
		location := issue.Path
		if location == "" {
			location = "block"
		}
		out = append(out, violation{
			file:     file,
			location: formatLocation(strings.Split(location, ".")),
			message:  fmt.Sprintf("%s (%s)", issue.Message, issue.Code),
		})
	}
	return out
}

func sortViolations(violations []violation) {
	sort.Slice(violations, func(i, j int) bool {
		if violations[i].file == violations[j].file {
			if violations[i].location == violations[j].location {
				return violations[i].message < violations[j].message
			}
			return violations[i].location < violations[j].location
		}
		return violations[i].file < violations[j].file
	})
}

func formatLocation(path []string) string {
	return strings.Join(path, " > ")
}
