package plugins

import (
	"fmt"
	"sort"
	"strings"
	"sync"
)

// Registry holds discovered plugins keyed by descriptor name.
type Registry struct {
	mu      sync.RWMutex
	plugins map[string]*Plugin
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		plugins: make(map[string]*Plugin),
	}
}

// Register adds a plugin to the registry. Re-registering an existing name
// replaces the previous entry; a descriptor reload is a replace, not an error.
func (r *Registry) Register(plugin *Plugin) error {
	if plugin == nil {
		return fmt.Errorf("cannot register nil plugin")
	}
	if plugin.Name() == "" {
		return fmt.Errorf("plugin descriptor has no name")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.plugins[plugin.Name()] = plugin
	return nil
}

// Unregister removes a plugin by name.
func (r *Registry) Unregister(name string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.plugins[name]; !exists {
		return fmt.Errorf("plugin not found: %s", name)
	}
	delete(r.plugins, name)
	return nil
}

// Get retrieves a plugin by name.
func (r *Registry) Get(name string) (*Plugin, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	plugin, exists := r.plugins[name]
	if !exists {
		return nil, fmt.Errorf("plugin not found: %s", name)
	}
	return plugin, nil
}

// Has checks whether a plugin is registered.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()

	_, exists := r.plugins[name]
	return exists
}

// List returns registered plugins matching the filter, sorted by name.
func (r *Registry) List(filter ListFilter) []*Plugin {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Plugin, 0, len(r.plugins))
	for _, plugin := range r.plugins {
		d := plugin.Descriptor
		if filter.Category != "" && !strings.EqualFold(d.Category, filter.Category) {
			continue
		}
		if filter.ExcludeDeprecated && d.Deprecated {
			continue
		}
		if filter.ExcludeExperimental && d.Experimental {
			continue
		}
		result = append(result, plugin)
	}

	sort.Slice(result, func(i, j int) bool {
		return result[i].Name() < result[j].Name()
	})
	return result
}

// Count returns the number of registered plugins.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.plugins)
}
