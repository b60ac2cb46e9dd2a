// Command paramgen compiles descriptor modules and OpenAPI documents into
// connector templates and form schemas.
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"

	"github.com/AlecAivazis/survey/v2"

	paramgen "github.com/goliatone/go-paramgen"
	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/config"
	"github.com/goliatone/go-paramgen/pkg/orchestrator"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
	"github.com/goliatone/go-paramgen/pkg/renderers/formjson"
	"github.com/goliatone/go-paramgen/pkg/server"
	"github.com/goliatone/go-paramgen/pkg/typedesc"
	"github.com/goliatone/go-paramgen/pkg/validation"
)

const usage = `usage: paramgen <command> [flags]

commands:
  generate    write artifacts for every selected operation
  operations  list the operations declared by a document
  lint        report operations that cannot be generated cleanly
  serve       expose generation over HTTP
`

func main() {
	if len(os.Args) < 2 {
		fmt.Fprint(os.Stderr, usage)
		os.Exit(2)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	var err error
	switch os.Args[1] {
	case "generate":
		err = runGenerate(ctx, os.Args[2:])
	case "operations":
		err = runOperations(ctx, os.Args[2:])
	case "lint":
		err = runLint(ctx, os.Args[2:])
	case "serve":
		err = runServe(ctx, os.Args[2:])
	case "-h", "--help", "help":
		fmt.Fprint(os.Stdout, usage)
		return
	default:
		fmt.Fprintf(os.Stderr, "unknown command %q\n\n%s", os.Args[1], usage)
		os.Exit(2)
	}
	if err != nil {
		log.Fatalf("paramgen %s: %v", os.Args[1], err)
	}
}

type commonFlags struct {
	config string
	input  string
	format string
}

func (c *commonFlags) register(fs *flag.FlagSet) {
	fs.StringVar(&c.config, "config", "", "generator configuration file (YAML or JSON)")
	fs.StringVar(&c.input, "input", "", "descriptor module or OpenAPI document path or URL")
	fs.StringVar(&c.format, "format", "", "force the input format: descriptor or openapi")
}

func (c *commonFlags) load() (config.Config, error) {
	if c.config == "" {
		return config.Default(), nil
	}
	return config.Load(c.config)
}

func (c *commonFlags) module(ctx context.Context, cfg config.Config) (typedesc.Module, error) {
	src := parseSource(c.input)
	if src == nil {
		return typedesc.Module{}, errors.New("-input is required")
	}
	loader := paramgen.NewOrchestrator(orchestrator.WithParser(paramgen.NewParser(cfg.ParserOptions()...)))
	return loader.Module(ctx, orchestrator.Request{Source: src, Format: orchestrator.Format(c.format)})
}

func runGenerate(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("generate", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	out := fs.String("out", "out", "output directory")
	operations := fs.String("operations", "", "comma separated operation names or ids to generate")
	interactive := fs.Bool("interactive", false, "pick operations from a list")
	preset := fs.String("preset", "", "preset file overriding module and operation names")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg, err := common.load()
	if err != nil {
		return err
	}
	module, err := common.module(ctx, cfg)
	if err != nil {
		return err
	}

	if *operations != "" {
		cfg.Subset.Operations = splitList(*operations)
	}
	if *interactive {
		selected, err := selectOperations(module.Operations)
		if err != nil {
			return err
		}
		cfg.Subset = artifact.Subset{Operations: selected}
	}
	if missing := cfg.Subset.Unmatched(module.Operations); len(missing) > 0 {
		names := artifact.OperationNames(module.Operations)
		for _, name := range missing {
			if suggestions := artifact.Suggest(name, names); len(suggestions) > 0 {
				return fmt.Errorf("unknown operation %q (did you mean %s?)", name, strings.Join(suggestions, ", "))
			}
			return fmt.Errorf("unknown operation %q", name)
		}
	}

	genOpts, err := cfg.GeneratorOptions()
	if err != nil {
		return err
	}
	options := []orchestrator.Option{
		orchestrator.WithParser(paramgen.NewParser(cfg.ParserOptions()...)),
		orchestrator.WithGeneratorOptions(genOpts...),
	}
	if *preset != "" {
		transformer, err := orchestrator.NewPresetTransformerFromFS(os.DirFS(filepath.Dir(*preset)), filepath.Base(*preset))
		if err != nil {
			return err
		}
		options = append(options, orchestrator.WithTransformers(transformer))
	}

	bundle, err := paramgen.GenerateModule(ctx, module, options...)
	if err != nil {
		return err
	}
	if err := writeBundle(*out, bundle); err != nil {
		return err
	}

	log.Printf("generated %d of %d operations into %s", bundle.Report.Generated, bundle.Report.Total, *out)
	for _, skipped := range bundle.Report.Skipped {
		log.Printf("skipped %s: %s", skipped.Operation, skipped.Reason)
	}
	for _, warning := range bundle.Report.Warnings {
		log.Printf("warning %s: %s", warning.Operation, warning.Message)
	}
	return nil
}

func runOperations(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("operations", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	module, err := common.module(ctx, cfg)
	if err != nil {
		return err
	}
	for _, op := range module.Operations {
		fmt.Printf("%-32s %-9s %-7s %s\n", op.Name, op.Kind, op.Accessor, artifact.FormatPath(op.Path))
	}
	return nil
}

func runLint(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("lint", flag.ExitOnError)
	var common commonFlags
	common.register(fs)
	strict := fs.Bool("strict", false, "treat classifier warnings as errors")
	if err := fs.Parse(args); err != nil {
		return err
	}
	cfg, err := common.load()
	if err != nil {
		return err
	}
	module, err := common.module(ctx, cfg)
	if err != nil {
		return err
	}
	result, err := validation.ValidateModule(ctx, module, validation.Options{
		Classifier: param.NewClassifier(param.WithBudget(cfg.Budget)),
		Strict:     *strict,
	})
	if err != nil {
		return err
	}
	for _, issue := range result.Issues {
		location := issue.Operation
		if issue.Field != "" {
			location += "." + issue.Field
		}
		fmt.Printf("%-7s %-40s %s\n", issue.Severity, location, issue.Message)
	}
	if !result.Valid {
		return fmt.Errorf("%d error(s) found", len(result.Errors()))
	}
	return nil
}

func runServe(ctx context.Context, args []string) error {
	fs := flag.NewFlagSet("serve", flag.ExitOnError)
	configPath := fs.String("config", "", "generator configuration file (YAML or JSON)")
	addr := fs.String("addr", ":8080", "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	cfg := config.Default()
	if *configPath != "" {
		loaded, err := config.Load(*configPath)
		if err != nil {
			return err
		}
		cfg = loaded
	}
	genOpts, err := cfg.GeneratorOptions()
	if err != nil {
		return err
	}
	o := paramgen.NewOrchestrator(
		orchestrator.WithParser(paramgen.NewParser(cfg.ParserOptions()...)),
		orchestrator.WithGeneratorOptions(genOpts...),
	)
	return server.Run(ctx, server.Config{
		Addr:         *addr,
		Orchestrator: o,
		Validation:   validation.Options{Classifier: param.NewClassifier(param.WithBudget(cfg.Budget))},
	})
}

func selectOperations(ops []typedesc.Operation) ([]string, error) {
	names := artifact.OperationNames(ops)
	if len(names) == 0 {
		return nil, errors.New("document declares no operations")
	}
	var selected []string
	prompt := &survey.MultiSelect{
		Message:  "Operations to generate:",
		Options:  names,
		PageSize: 15,
	}
	if err := survey.AskOne(prompt, &selected, survey.WithValidator(survey.MinItems(1))); err != nil {
		return nil, err
	}
	return selected, nil
}

// writeBundle lays artifacts out the way the connector component descriptor
// references them: one <name>.xml per operation next to component.xml.
func writeBundle(dir string, bundle artifact.Bundle) error {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return err
	}
	for _, a := range bundle.Artifacts {
		for _, output := range a.Outputs {
			if err := os.WriteFile(filepath.Join(dir, outputFile(a.Name, output.Renderer)), []byte(output.Content), 0o644); err != nil {
				return err
			}
		}
	}
	for _, output := range bundle.Outputs {
		if err := os.WriteFile(filepath.Join(dir, output.Renderer), []byte(output.Content), 0o644); err != nil {
			return err
		}
	}
	return nil
}

func outputFile(name, renderer string) string {
	switch renderer {
	case connector.OperationName:
		return name + ".xml"
	case formjson.Name:
		return name + ".form.json"
	default:
		return name + "." + renderer
	}
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func parseSource(raw string) typedesc.Source {
	path := strings.TrimSpace(raw)
	if path == "" {
		return nil
	}
	if strings.HasPrefix(path, "http://") || strings.HasPrefix(path, "https://") {
		return typedesc.SourceFromURL(path)
	}
	return typedesc.SourceFromFile(path)
}
