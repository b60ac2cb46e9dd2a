package orchestrator

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io/fs"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/goliatone/go-paramgen/pkg/typedesc"
)

// Transformer mutates a descriptor module after parsing and before
// generation. Implementations can rename operations, attach explicit ids, or
// drop operations.
type Transformer interface {
	Transform(ctx context.Context, module *typedesc.Module) error
}

// TransformerFunc adapts plain functions to the Transformer interface.
type TransformerFunc func(ctx context.Context, module *typedesc.Module) error

// Transform executes the wrapped function when non-nil.
func (fn TransformerFunc) Transform(ctx context.Context, module *typedesc.Module) error {
	if fn == nil {
		return nil
	}
	return fn(ctx, module)
}

// PresetTransformer applies declarative per-operation overrides loaded from a
// YAML or JSON document:
//
//	operations:
//	  getRepo:
//	    id: fetchRepository
//	    doc: Fetch one repository
//	  legacySearch:
//	    exclude: true
//
// Keys match the declared operation name. Unknown keys are reported so stale
// presets do not go unnoticed.
type PresetTransformer struct {
	document presetDocument
}

type presetDocument struct {
	Module     string                    `yaml:"module" json:"module"`
	Operations map[string]operationPatch `yaml:"operations" json:"operations"`
}

type operationPatch struct {
	ID      string `yaml:"id" json:"id"`
	Doc     string `yaml:"doc" json:"doc"`
	Exclude bool   `yaml:"exclude" json:"exclude"`
}

// NewPresetTransformer constructs a transformer from raw YAML or JSON bytes.
func NewPresetTransformer(data []byte) (*PresetTransformer, error) {
	if len(bytes.TrimSpace(data)) == 0 {
		return nil, errors.New("preset transformer: document is empty")
	}
	var document presetDocument
	if err := yaml.Unmarshal(data, &document); err != nil {
		return nil, fmt.Errorf("preset transformer: parse document: %w", err)
	}
	return &PresetTransformer{document: document}, nil
}

// NewPresetTransformerFromFS loads a preset document from fsys.
func NewPresetTransformerFromFS(fsys fs.FS, path string) (*PresetTransformer, error) {
	if fsys == nil {
		return nil, errors.New("preset transformer: filesystem is nil")
	}
	if strings.TrimSpace(path) == "" {
		return nil, errors.New("preset transformer: path is required")
	}
	data, err := fs.ReadFile(fsys, path)
	if err != nil {
		return nil, fmt.Errorf("preset transformer: read %s: %w", path, err)
	}
	return NewPresetTransformer(data)
}

// Transform applies the preset to module.
func (t *PresetTransformer) Transform(_ context.Context, module *typedesc.Module) error {
	if t == nil || module == nil {
		return nil
	}
	if name := strings.TrimSpace(t.document.Module); name != "" {
		module.Name = name
	}

	applied := make(map[string]struct{}, len(t.document.Operations))
	kept := make([]typedesc.Operation, 0, len(module.Operations))
	for _, op := range module.Operations {
		patch, ok := t.document.Operations[op.Name]
		if !ok {
			kept = append(kept, op)
			continue
		}
		applied[op.Name] = struct{}{}
		if patch.Exclude {
			continue
		}
		if id := strings.TrimSpace(patch.ID); id != "" {
			op.ID = id
		}
		if doc := strings.TrimSpace(patch.Doc); doc != "" {
			op.Doc = doc
		}
		kept = append(kept, op)
	}
	module.Operations = kept

	var unknown []string
	for name := range t.document.Operations {
		if _, ok := applied[name]; !ok {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) > 0 {
		sort.Strings(unknown)
		return fmt.Errorf("preset transformer: unknown operations %s", strings.Join(unknown, ", "))
	}
	return nil
}
