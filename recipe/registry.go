package recipe

import (
	"fmt"
	"sort"
	"sync"
)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]*Recipe)
)

// Register makes a recipe available by name. It panics on an invalid
// declaration or a duplicate name; recipes register from init functions,
// so both are programming errors.
func Register(r *Recipe) {
	if err := r.validate(); err != nil {
		panic(fmt.Sprintf("recipe: invalid recipe: %v", err))
	}
	registryMu.Lock()
	defer registryMu.Unlock()
	if _, dup := registry[r.Name]; dup {
		panic(fmt.Sprintf("recipe: Register called twice for %q", r.Name))
	}
	registry[r.Name] = r
}

// Lookup returns the registered recipe for name.
func Lookup(name string) (*Recipe, bool) {
	registryMu.RLock()
	defer registryMu.RUnlock()
	r, ok := registry[name]
	return r, ok
}

// Names returns all registered recipe names in sorted order.
func Names() []string {
	registryMu.RLock()
	defer registryMu.RUnlock()
	names := make([]string, 0, len(registry))
	for name := range registry {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
