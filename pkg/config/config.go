// Package config loads generator settings from YAML or JSON files.
package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramgen/pkg/artifact"
	"github.com/goliatone/go-paramgen/pkg/form"
	"github.com/goliatone/go-paramgen/pkg/naming"
	pkgopenapi "github.com/goliatone/go-paramgen/pkg/openapi"
	"github.com/goliatone/go-paramgen/pkg/param"
	"github.com/goliatone/go-paramgen/pkg/render"
	"github.com/goliatone/go-paramgen/pkg/renderers/connector"
)

// Config is the generator configuration.
type Config struct {
	// Budget is the per-parameter expansion budget.
	Budget int `json:"budget" yaml:"budget"`
	// Concurrency bounds parallel operation processing; 0 uses GOMAXPROCS.
	Concurrency int `json:"concurrency,omitempty" yaml:"concurrency,omitempty"`
	// OpaqueRecords renders records as single structured inputs.
	OpaqueRecords bool `json:"opaqueRecords,omitempty" yaml:"opaqueRecords,omitempty"`

	Templates TemplatesConfig `json:"templates,omitempty" yaml:"templates,omitempty"`
	Naming    NamingConfig    `json:"naming,omitempty" yaml:"naming,omitempty"`
	OpenAPI   OpenAPIConfig   `json:"openapi,omitempty" yaml:"openapi,omitempty"`
	Subset    artifact.Subset `json:"subset,omitempty" yaml:"subset,omitempty"`

	// Locale selects the Labels table used for form display names.
	Locale string `json:"locale,omitempty" yaml:"locale,omitempty"`
	// Labels maps locale to "labels.<segment>" keys; the empty locale is the
	// default table.
	Labels map[string]map[string]string `json:"labels,omitempty" yaml:"labels,omitempty"`

	// Renderers restricts operation outputs; empty runs every renderer.
	Renderers []string `json:"renderers,omitempty" yaml:"renderers,omitempty"`
}

// TemplatesConfig points the connector renderer at custom templates. Dir must
// contain the connector.OperationTemplate and connector.ComponentTemplate
// paths.
type TemplatesConfig struct {
	Dir     string `json:"dir,omitempty" yaml:"dir,omitempty"`
	Invoker string `json:"invoker,omitempty" yaml:"invoker,omitempty"`
}

// NamingConfig tunes the type-name heuristic of the name resolver.
type NamingConfig struct {
	GenericPrefixes  []string `json:"genericPrefixes,omitempty" yaml:"genericPrefixes,omitempty"`
	CollectionTokens []string `json:"collectionTokens,omitempty" yaml:"collectionTokens,omitempty"`
	TypeSuffixes     []string `json:"typeSuffixes,omitempty" yaml:"typeSuffixes,omitempty"`
}

// OpenAPIConfig controls OpenAPI input handling.
type OpenAPIConfig struct {
	ResolveReferences bool `json:"resolveReferences,omitempty" yaml:"resolveReferences,omitempty"`
	AllowPartial      bool `json:"allowPartial,omitempty" yaml:"allowPartial,omitempty"`
}

// Default returns a config with the built-in defaults.
func Default() Config {
	return Config{
		Budget: param.DefaultBudget,
	}
}

// Load reads a YAML or JSON config file. The format is chosen by extension;
// unknown extensions are tried as JSON, then YAML.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %q: %w", path, err)
	}
	cfg, err := Parse(data, filepath.Ext(path))
	if err != nil {
		return Config{}, fmt.Errorf("config: %q: %w", path, err)
	}
	return cfg, nil
}

// Parse decodes data on top of Default. ext selects the format (".json",
// ".yaml", ".yml"); any other value tries JSON first.
func Parse(data []byte, ext string) (Config, error) {
	cfg := Default()
	switch strings.ToLower(ext) {
	case ".json":
		if err := json.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse json: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse yaml: %w", err)
		}
	default:
		if err := json.Unmarshal(data, &cfg); err != nil {
			cfg = Default()
			if yerr := yaml.Unmarshal(data, &cfg); yerr != nil {
				return Config{}, fmt.Errorf("invalid JSON or YAML: %w", yerr)
			}
		}
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate checks the config for logical errors.
func (c Config) Validate() error {
	if c.Budget < 1 {
		return fmt.Errorf("budget must be positive, got %d", c.Budget)
	}
	if c.Concurrency < 0 {
		return fmt.Errorf("concurrency must not be negative, got %d", c.Concurrency)
	}
	if c.Templates.Dir != "" {
		info, err := os.Stat(c.Templates.Dir)
		if err != nil {
			return fmt.Errorf("templates.dir: %w", err)
		}
		if !info.IsDir() {
			return fmt.Errorf("templates.dir %q is not a directory", c.Templates.Dir)
		}
	}
	return nil
}

// ResolverOptions translates the naming section into resolver options.
func (c Config) ResolverOptions() []naming.Option {
	var opts []naming.Option
	if len(c.Naming.GenericPrefixes) > 0 {
		opts = append(opts, naming.WithGenericPrefixes(c.Naming.GenericPrefixes...))
	}
	if len(c.Naming.CollectionTokens) > 0 {
		opts = append(opts, naming.WithCollectionTokens(c.Naming.CollectionTokens...))
	}
	if len(c.Naming.TypeSuffixes) > 0 {
		opts = append(opts, naming.WithTypeSuffixes(c.Naming.TypeSuffixes...))
	}
	return opts
}

// ParserOptions translates the openapi section into parser options.
func (c Config) ParserOptions() []pkgopenapi.ParserOption {
	return []pkgopenapi.ParserOption{
		pkgopenapi.WithReferenceResolution(c.OpenAPI.ResolveReferences),
		pkgopenapi.WithPartialDocuments(c.OpenAPI.AllowPartial),
	}
}

// GeneratorOptions builds the artifact generator options described by c.
func (c Config) GeneratorOptions() ([]artifact.Option, error) {
	opts := []artifact.Option{
		artifact.WithClassifier(param.NewClassifier(param.WithBudget(c.Budget))),
		artifact.WithResolver(naming.NewResolver(c.ResolverOptions()...)),
		artifact.WithConcurrency(c.Concurrency),
		artifact.WithOpaqueRecords(c.OpaqueRecords),
		artifact.WithSubset(c.Subset),
	}
	if c.Templates.Dir != "" || c.Templates.Invoker != "" {
		registry, err := artifact.DefaultRegistry(
			connector.WithTemplatesDir(c.Templates.Dir),
			connector.WithInvoker(c.Templates.Invoker),
		)
		if err != nil {
			return nil, fmt.Errorf("config: %w", err)
		}
		opts = append(opts, artifact.WithRegistry(registry))
	}
	if len(c.Labels) > 0 {
		opts = append(opts, artifact.WithLabeler(
			render.LocalizedLabeler(c.Locale, render.MapTranslator(c.Labels), form.DefaultLabeler, nil),
		))
	}
	if len(c.Renderers) > 0 {
		opts = append(opts, artifact.WithRenderers(c.Renderers...))
	}
	return opts, nil
}
