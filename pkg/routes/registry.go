package routes

import "sync"

// Registry is an append-only collection of contributed groups.
type Registry struct {
	mu     sync.RWMutex
	groups []Group
}

// NewRegistry creates an empty registry independent of the process default.
func NewRegistry() *Registry {
	return &Registry{}
}

var defaultRegistry = NewRegistry()

// Default returns the process-wide registry that package-level declarations
// contribute to.
func Default() *Registry {
	return defaultRegistry
}

// Contribute appends group. An empty mount is recorded as "/".
func (r *Registry) Contribute(group Group) {
	if group.Mount == "" {
		group.Mount = "/"
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	r.groups = append(r.groups, group)
}

// Enumerate returns a copy of every group contributed so far, in
// contribution order. Groups contributed later appear in later calls only.
func (r *Registry) Enumerate() []Group {
	r.mu.RLock()
	defer r.mu.RUnlock()

	groups := make([]Group, len(r.groups))
	copy(groups, r.groups)
	return groups
}

// Len returns the number of contributed groups.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.groups)
}

// Contribute appends group to the process-wide registry.
func Contribute(group Group) {
	defaultRegistry.Contribute(group)
}

// Enumerate returns every group in the process-wide registry.
func Enumerate() []Group {
	return defaultRegistry.Enumerate()
}
