package typedesc

import (
	"encoding/json"
	"fmt"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"
)

type documentFile struct {
	Module     string              `json:"module" yaml:"module"`
	Doc        string              `json:"doc" yaml:"doc"`
	Types      map[string]typeFile `json:"types" yaml:"types"`
	Operations []operationFile     `json:"operations" yaml:"operations"`
}

type typeFile struct {
	// Type turns the entry into an alias of the given expression.
	Type   string      `json:"type" yaml:"type"`
	Fields []fieldFile `json:"fields" yaml:"fields"`
}

type fieldFile struct {
	Name     string `json:"name" yaml:"name"`
	Type     string `json:"type" yaml:"type"`
	Optional bool   `json:"optional" yaml:"optional"`
	Default  any    `json:"default" yaml:"default"`
	Doc      string `json:"doc" yaml:"doc"`
}

type operationFile struct {
	Name     string      `json:"name" yaml:"name"`
	ID       string      `json:"id" yaml:"id"`
	Kind     string      `json:"kind" yaml:"kind"`
	Accessor string      `json:"accessor" yaml:"accessor"`
	Path     string      `json:"path" yaml:"path"`
	Params   []fieldFile `json:"params" yaml:"params"`
	Returns  string      `json:"returns" yaml:"returns"`
	Doc      string      `json:"doc" yaml:"doc"`
}

// Decode parses a descriptor document (JSON or YAML) into a Module. Named
// types may reference each other, including themselves; references resolve to
// shared *Type values so the resulting graph can be cyclic.
func Decode(doc Document) (Module, error) {
	raw := doc.Raw()
	if len(strings.TrimSpace(string(raw))) == 0 {
		return Module{}, fmt.Errorf("typedesc: document %s is empty", doc.Location())
	}

	var file documentFile
	if err := json.Unmarshal(raw, &file); err != nil {
		if yerr := yaml.Unmarshal(raw, &file); yerr != nil {
			return Module{}, fmt.Errorf("typedesc: parse %s: invalid JSON or YAML: %w", doc.Location(), yerr)
		}
	}

	types, err := buildTypes(file.Types)
	if err != nil {
		return Module{}, fmt.Errorf("typedesc: %s: %w", doc.Location(), err)
	}
	resolve := func(name string) (*Type, bool) {
		t, ok := types[name]
		return t, ok
	}

	module := Module{
		Name:  strings.TrimSpace(file.Module),
		Doc:   file.Doc,
		Types: types,
	}
	for idx, raw := range file.Operations {
		op, err := buildOperation(raw, resolve)
		if err != nil {
			return Module{}, fmt.Errorf("typedesc: %s: operation %d: %w", doc.Location(), idx, err)
		}
		module.Operations = append(module.Operations, op)
	}
	return module, nil
}

func buildTypes(entries map[string]typeFile) (map[string]*Type, error) {
	types := make(map[string]*Type, len(entries))
	names := make([]string, 0, len(entries))
	for name := range entries {
		trimmed := strings.TrimSpace(name)
		if trimmed == "" {
			return nil, fmt.Errorf("type with empty name")
		}
		names = append(names, name)
		types[name] = &Type{}
	}
	sort.Strings(names)

	resolve := func(name string) (*Type, bool) {
		t, ok := types[name]
		return t, ok
	}

	var aliases []string
	for _, name := range names {
		entry := entries[name]
		if strings.TrimSpace(entry.Type) != "" {
			if len(entry.Fields) > 0 {
				return nil, fmt.Errorf("type %q declares both an alias and fields", name)
			}
			aliases = append(aliases, name)
			continue
		}
		fields, err := buildFields(entry.Fields, resolve)
		if err != nil {
			return nil, fmt.Errorf("type %q: %w", name, err)
		}
		target := types[name]
		target.TypeKind = KindRecord
		target.TypeName = name
		target.FieldList = fields
	}

	// Aliases may point at other aliases; resolve until no progress is made.
	pending := aliases
	for len(pending) > 0 {
		var next []string
		for _, name := range pending {
			resolved, ready, err := resolveAlias(entries[name].Type, types, pending, resolve)
			if err != nil {
				return nil, fmt.Errorf("type %q: %w", name, err)
			}
			if !ready {
				next = append(next, name)
				continue
			}
			target := types[name]
			*target = *resolved.Aliased(name)
			if target.TypeName == "" {
				target.TypeName = name
				target.Alias = ""
			}
		}
		if len(next) == len(pending) {
			return nil, fmt.Errorf("alias cycle between %s", strings.Join(next, ", "))
		}
		pending = next
	}
	return types, nil
}

func resolveAlias(expr string, types map[string]*Type, pending []string, resolve Resolver) (*Type, bool, error) {
	trimmed := strings.TrimSpace(expr)
	for _, name := range pending {
		if trimmed == name {
			return nil, false, nil
		}
	}
	if named, ok := types[trimmed]; ok {
		return named, true, nil
	}
	parsed, err := ParseType(trimmed, resolve)
	if err != nil {
		return nil, false, err
	}
	return parsed, true, nil
}

func buildFields(raw []fieldFile, resolve Resolver) ([]Field, error) {
	if len(raw) == 0 {
		return nil, nil
	}
	fields := make([]Field, 0, len(raw))
	seen := make(map[string]struct{}, len(raw))
	for _, entry := range raw {
		name := strings.TrimSpace(entry.Name)
		if name == "" {
			return nil, fmt.Errorf("field name is required")
		}
		if _, dup := seen[name]; dup {
			return nil, fmt.Errorf("duplicate field %q", name)
		}
		seen[name] = struct{}{}

		t, err := ParseType(entry.Type, resolve)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", name, err)
		}
		fields = append(fields, Field{
			Name:       name,
			Type:       t,
			Optional:   entry.Optional,
			HasDefault: entry.Default != nil,
			Default:    entry.Default,
			Doc:        strings.TrimSpace(entry.Doc),
		})
	}
	return fields, nil
}

func buildOperation(raw operationFile, resolve Resolver) (Operation, error) {
	name := strings.TrimSpace(raw.Name)
	if name == "" {
		return Operation{}, fmt.Errorf("operation name is required")
	}

	op := Operation{
		Name:     name,
		ID:       strings.TrimSpace(raw.ID),
		Kind:     OperationKind(strings.ToLower(strings.TrimSpace(raw.Kind))),
		Accessor: strings.ToLower(strings.TrimSpace(raw.Accessor)),
		Path:     ParsePath(raw.Path),
		Doc:      strings.TrimSpace(raw.Doc),
	}
	if op.Kind == "" {
		op.Kind = OperationRemote
		if op.Accessor != "" {
			op.Kind = OperationResource
		}
	}

	for _, param := range raw.Params {
		pname := strings.TrimSpace(param.Name)
		if pname == "" {
			return Operation{}, fmt.Errorf("%s: parameter name is required", name)
		}
		t, err := ParseType(param.Type, resolve)
		if err != nil {
			return Operation{}, fmt.Errorf("%s: parameter %q: %w", name, pname, err)
		}
		op.Params = append(op.Params, Param{
			Name:       pname,
			Type:       t,
			HasDefault: param.Default != nil || param.Optional,
			Default:    param.Default,
			Doc:        strings.TrimSpace(param.Doc),
		})
	}

	if ret := strings.TrimSpace(raw.Returns); ret != "" {
		t, err := ParseType(ret, resolve)
		if err != nil {
			return Operation{}, fmt.Errorf("%s: return type: %w", name, err)
		}
		op.Return = t
	}
	return op, nil
}
