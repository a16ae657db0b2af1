package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"path/filepath"
	"sort"
	"strings"

	json "github.com/goccy/go-json"
	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-blockgen"
	"github.com/goliatone/go-blockgen/pkg/configschema"
	"github.com/goliatone/go-blockgen/pkg/docs"
	"github.com/goliatone/go-blockgen/pkg/editor/tui"
	"github.com/goliatone/go-blockgen/pkg/schema"
	"github.com/goliatone/go-blockgen/pkg/source/fsdir"
	"github.com/goliatone/go-blockgen/pkg/values"
)

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, args []string) error
}

var commands = []command{
	{"validate", "normalize and check definition files", runValidate},
	{"render", "render a block with stored attributes", runRender},
	{"docs", "write markdown or html documentation for a block", runDocs},
	{"scaffold", "write a starter block definition", runScaffold},
	{"schema", "print the JSON Schema for definitions", runSchema},
	{"manifest", "print the editor manifest for loaded blocks", runManifest},
	{"panel", "render the editor settings panel for a block", runPanel},
	{"watch", "reload definitions whenever the directory changes", runWatch},
}

func main() {
	flag.Usage = usage
	flag.Parse()
	if flag.NArg() == 0 {
		usage()
		os.Exit(2)
	}

	name, args := flag.Arg(0), flag.Args()[1:]
	for _, cmd := range commands {
		if cmd.name != name {
			continue
		}
		if err := cmd.run(context.Background(), args); err != nil {
			log.Fatalf("%s: %v", name, err)
		}
		return
	}
	fmt.Fprintf(os.Stderr, "unknown command %q\n\n", name)
	usage()
	os.Exit(2)
}

func usage() {
	out := flag.CommandLine.Output()
	fmt.Fprintf(out, "Usage: %s <command> [flags]\n\nCommands:\n", filepath.Base(os.Args[0]))
	for _, cmd := range commands {
		fmt.Fprintf(out, "  %-10s %s\n", cmd.name, cmd.usage)
	}
}

func runValidate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("validate", flag.ExitOnError)
	_ = fs.Parse(args)

	failed := false
	for _, path := range fs.Args() {
		block, err := readDefinition(ctx, path)
		if err != nil {
			fmt.Fprintf(os.Stderr, "%s: %v\n", path, err)
			failed = true
			continue
		}
		issues := schema.Validate(block, nil)
		for _, issue := range issues {
			fmt.Fprintf(os.Stderr, "%s: %s\n", path, issue)
		}
		if len(issues) > 0 {
			failed = true
			continue
		}
		fmt.Printf("%s: ok (%s)\n", path, block.Name)
	}
	if failed {
		return errors.New("validation failed")
	}
	return nil
}

func runRender(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("render", flag.ExitOnError)
	dir := fs.String("dir", "", "definitions directory (BLOCKGEN_DEFINITIONS_DIR when empty)")
	name := fs.String("block", "", "block name to render")
	attrsFlag := fs.String("attrs", "", "attribute values as JSON, or @file")
	content := fs.String("content", "", "inner blocks markup")
	interactive := fs.Bool("interactive", false, "prompt for every attribute")
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	rt, err := setup(ctx, *dir)
	if err != nil {
		return err
	}
	defer rt.Close()

	attrs, err := parseAttributes(*attrsFlag)
	if err != nil {
		return err
	}
	if *interactive {
		block, ok := rt.Registry.Lookup(*name)
		if !ok {
			return fmt.Errorf("block %q is not registered", *name)
		}
		collector := tui.New(tui.WithFieldTypes(rt.Registry.FieldTypes()))
		if attrs, err = collector.Collect(ctx, block, attrs); err != nil {
			return err
		}
	}

	out, err := rt.Orchestrator.Generate(ctx, blockgen.Request{
		Block:      *name,
		Attributes: attrs,
		Content:    *content,
	})
	if err != nil {
		return err
	}
	return write(*output, out)
}

func runDocs(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("docs", flag.ExitOnError)
	dir := fs.String("dir", "", "definitions directory (BLOCKGEN_DEFINITIONS_DIR when empty)")
	name := fs.String("block", "", "block name to document")
	format := fs.String("format", "md", "output format: md or html")
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	rt, err := setup(ctx, *dir)
	if err != nil {
		return err
	}
	defer rt.Close()

	block, ok := rt.Registry.Lookup(*name)
	if !ok {
		return fmt.Errorf("block %q is not registered", *name)
	}
	switch *format {
	case "md", "markdown":
		return write(*output, []byte(docs.Markdown(block)))
	case "html":
		html, err := docs.HTML(block)
		if err != nil {
			return err
		}
		return write(*output, []byte(html))
	default:
		return fmt.Errorf("unknown format %q", *format)
	}
}

func runScaffold(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("scaffold", flag.ExitOnError)
	name := fs.String("name", "", "block name")
	title := fs.String("title", "", "block title")
	description := fs.String("description", "", "block description")
	withTabs := fs.Bool("tabs", false, "group fields into content and settings tabs")
	withImage := fs.Bool("image", false, "add a featured image field")
	withRepeater := fs.Bool("repeater", false, "add an attributes repeater")
	prompt := fs.Bool("prompt", false, "ask for the options interactively")
	output := fs.String("output", "", "definition file (.json or .yaml); stdout if empty")
	_ = fs.Parse(args)

	opts := schema.ScaffoldOptions{
		Description:  *description,
		WithTabs:     *withTabs,
		WithImage:    *withImage,
		WithRepeater: *withRepeater,
	}
	if *prompt {
		if err := promptScaffold(ctx, tui.NewSurveyDriver(), name, title, &opts); err != nil {
			return err
		}
	}
	if strings.TrimSpace(*name) == "" {
		return errors.New("a block name is required")
	}

	block := schema.Scaffold(*name, *title, opts)
	var (
		out []byte
		err error
	)
	if format, _ := schema.FormatFromPath(*output); format == schema.FormatYAML {
		out, err = yaml.Marshal(block)
	} else {
		out, err = json.MarshalIndent(block, "", "  ")
	}
	if err != nil {
		return err
	}
	return write(*output, out)
}

func promptScaffold(ctx context.Context, driver tui.PromptDriver, name, title *string, opts *schema.ScaffoldOptions) error {
	var err error
	if *name, err = driver.Input(ctx, tui.InputConfig{
		Message: "Block name",
		Default: *name,
		Validator: func(value string) error {
			if !schema.ValidName(schema.SanitizeName(value)) {
				return errors.New("use letters, digits and dashes")
			}
			return nil
		},
	}); err != nil {
		return err
	}
	if *title, err = driver.Input(ctx, tui.InputConfig{Message: "Title", Default: *title}); err != nil {
		return err
	}
	if opts.Description, err = driver.Input(ctx, tui.InputConfig{Message: "Description", Default: opts.Description}); err != nil {
		return err
	}
	if opts.WithTabs, err = driver.Confirm(ctx, tui.ConfirmConfig{Message: "Group fields into tabs?", Default: opts.WithTabs}); err != nil {
		return err
	}
	if opts.WithImage, err = driver.Confirm(ctx, tui.ConfirmConfig{Message: "Add an image field?", Default: opts.WithImage}); err != nil {
		return err
	}
	opts.WithRepeater, err = driver.Confirm(ctx, tui.ConfirmConfig{Message: "Add an attributes repeater?", Default: opts.WithRepeater})
	return err
}

func runSchema(_ context.Context, args []string) error {
	fs := flag.NewFlagSet("schema", flag.ExitOnError)
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	out, err := configschema.Schema()
	if err != nil {
		return err
	}
	return write(*output, out)
}

func runManifest(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("manifest", flag.ExitOnError)
	dir := fs.String("dir", "", "definitions directory (BLOCKGEN_DEFINITIONS_DIR when empty)")
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	rt, err := setup(ctx, *dir)
	if err != nil {
		return err
	}
	defer rt.Close()

	out, err := rt.Orchestrator.Manifest().JSON()
	if err != nil {
		return err
	}
	return write(*output, out)
}

func runPanel(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("panel", flag.ExitOnError)
	dir := fs.String("dir", "", "definitions directory (BLOCKGEN_DEFINITIONS_DIR when empty)")
	name := fs.String("block", "", "block name")
	attrsFlag := fs.String("attrs", "", "current attribute values as JSON, or @file")
	output := fs.String("output", "", "output file (stdout if empty)")
	_ = fs.Parse(args)

	rt, err := setup(ctx, *dir)
	if err != nil {
		return err
	}
	defer rt.Close()

	attrs, err := parseAttributes(*attrsFlag)
	if err != nil {
		return err
	}
	html, err := rt.Orchestrator.Panel(ctx, *name, attrs)
	if err != nil {
		return err
	}
	return write(*output, []byte(html))
}

func runWatch(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("watch", flag.ExitOnError)
	dir := fs.String("dir", "", "definitions directory (BLOCKGEN_DEFINITIONS_DIR when empty)")
	_ = fs.Parse(args)

	rt, err := setup(ctx, *dir)
	if err != nil {
		return err
	}
	defer rt.Close()

	root := rt.DefinitionsDir
	return fsdir.Watch(ctx, root, func(ev fsdir.Event) {
		fresh, err := setup(ctx, root)
		if err != nil {
			fmt.Fprintf(os.Stderr, "reload after %s: %v\n", ev.Path, err)
			return
		}
		defer fresh.Close()
		names := fresh.Registry.Names()
		sort.Strings(names)
		fmt.Printf("%s changed, %d blocks: %s\n", ev.Path, len(names), strings.Join(names, ", "))
	}, fsdir.WithWatchLoggerProvider(rt.Logger))
}

func readDefinition(ctx context.Context, path string) (schema.Block, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return schema.Block{}, fmt.Errorf("read file: %w", err)
	}
	format, ok := schema.FormatFromPath(path)
	if !ok {
		return schema.Block{}, fmt.Errorf("unsupported extension %q", filepath.Ext(path))
	}
	doc, err := schema.NewDocument(schema.OriginFromFile(path), format, raw)
	if err != nil {
		return schema.Block{}, err
	}
	cfg, err := doc.Config()
	if err != nil {
		return schema.Block{}, err
	}
	return schema.Normalize(ctx, cfg)
}

// loaded is a Runtime whose definitions have already been registered.
type loaded struct {
	*blockgen.Runtime
	DefinitionsDir string
}

func setup(ctx context.Context, dir string) (*loaded, error) {
	cfg, err := blockgen.LoadConfig()
	if err != nil {
		return nil, err
	}
	if dir != "" {
		cfg.DefinitionsDir = dir
	}
	rt, err := blockgen.Setup(ctx, cfg)
	if err != nil {
		return nil, err
	}
	result, err := rt.Orchestrator.Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "load: %v\n", err)
	}
	for _, failure := range result.Failed {
		fmt.Fprintf(os.Stderr, "%s: %v\n", failure.Location, failure.Err)
	}
	return &loaded{Runtime: rt, DefinitionsDir: cfg.DefinitionsDir}, nil
}

func parseAttributes(raw string) (values.Tree, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return values.Tree{}, nil
	}
	data := []byte(raw)
	if strings.HasPrefix(raw, "@") {
		var err error
		if data, err = os.ReadFile(strings.TrimPrefix(raw, "@")); err != nil {
			return nil, fmt.Errorf("read attributes: %w", err)
		}
	}
	var tree values.Tree
	if err := json.Unmarshal(data, &tree); err != nil {
		return nil, fmt.Errorf("decode attributes: %w", err)
	}
	return tree, nil
}

func write(path string, data []byte) error {
	if path == "" {
		fmt.Println(string(data))
		return nil
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return fmt.Errorf("write output: %w", err)
	}
	fmt.Printf("Written to %s\n", path)
	return nil
}
