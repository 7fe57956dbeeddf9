package schemas

import (
	"fmt"
	"slices"
	"sync"

	"mystdir/internal/directive"
)

// Registry maps directive names to their schemas. Registration is guarded by
// a mutex; registered schemas must not be modified afterwards, which lets any
// number of parses read them concurrently.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]*directive.Schema
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{byName: make(map[string]*directive.Schema)}
}

// Register adds a schema. Registering a name twice is an error.
func (r *Registry) Register(s *directive.Schema) error {
	if s == nil || s.Name == "" {
		return fmt.Errorf("schema without a name")
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.byName[s.Name]; ok {
		return fmt.Errorf("directive %q is already registered", s.Name)
	}
	r.byName[s.Name] = s
	return nil
}

// Replace adds a schema, dropping any previous one with the same name.
// It reports whether a schema was replaced.
func (r *Registry) Replace(s *directive.Schema) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, existed := r.byName[s.Name]
	r.byName[s.Name] = s
	return existed
}

// Lookup returns the schema registered for name.
func (r *Registry) Lookup(name string) (*directive.Schema, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	s, ok := r.byName[name]
	return s, ok
}

// Names returns all registered names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.byName))
	for name := range r.byName {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Len returns the number of registered schemas.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
