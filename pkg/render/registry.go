package render

import (
	"fmt"
	"sort"
	"sync"
)

// Registry stores operation and module renderers by name. Names share one
// namespace so an output can be addressed unambiguously.
type Registry struct {
	mu        sync.RWMutex
	renderers map[string]Renderer
	modules   map[string]ModuleRenderer
}

// NewRegistry creates an empty registry instance.
func NewRegistry() *Registry {
	return &Registry{
		renderers: make(map[string]Renderer),
		modules:   make(map[string]ModuleRenderer),
	}
}

// Register adds an operation renderer by its Name().
func (r *Registry) Register(renderer Renderer) error {
	if renderer == nil {
		return fmt.Errorf("render: renderer is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(renderer.Name()); err != nil {
		return err
	}
	r.renderers[renderer.Name()] = renderer
	return nil
}

// RegisterModule adds a module renderer by its Name().
func (r *Registry) RegisterModule(renderer ModuleRenderer) error {
	if renderer == nil {
		return fmt.Errorf("render: module renderer is required")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if err := r.claim(renderer.Name()); err != nil {
		return err
	}
	r.modules[renderer.Name()] = renderer
	return nil
}

func (r *Registry) claim(name string) error {
	if name == "" {
		return fmt.Errorf("render: renderer name is required")
	}
	_, op := r.renderers[name]
	_, mod := r.modules[name]
	if op || mod {
		return fmt.Errorf("render: renderer %q already registered", name)
	}
	return nil
}

// MustRegister panics on registration failure. Useful for init-time wiring.
func (r *Registry) MustRegister(renderer Renderer) {
	if err := r.Register(renderer); err != nil {
		panic(err)
	}
}

// Get retrieves an operation renderer by name.
func (r *Registry) Get(name string) (Renderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.renderers[name]
	if !ok {
		return nil, fmt.Errorf("render: renderer %q not found", name)
	}
	return renderer, nil
}

// GetModule retrieves a module renderer by name.
func (r *Registry) GetModule(name string) (ModuleRenderer, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	renderer, ok := r.modules[name]
	if !ok {
		return nil, fmt.Errorf("render: module renderer %q not found", name)
	}
	return renderer, nil
}

// List returns the sorted operation renderer names.
func (r *Registry) List() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.renderers)
}

// ListModules returns the sorted module renderer names.
func (r *Registry) ListModules() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return sortedKeys(r.modules)
}

// Has reports whether a renderer of either kind is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, op := r.renderers[name]
	_, mod := r.modules[name]
	return op || mod
}

func sortedKeys[T any](in map[string]T) []string {
	names := make([]string, 0, len(in))
	for name := range in {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
