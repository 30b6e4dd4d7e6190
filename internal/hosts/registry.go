// Package hosts provides the concrete front ends built on the host core and
// a registry creating them by kind.
package hosts

import (
	"fmt"
	"sort"
	"sync"

	"hostshell/pkg/hosttypes"
)

// Factory creates a host from its construction data.
type Factory func(data hosttypes.HostData) (hosttypes.Host, error)

// Host kinds registered by NewDefaultRegistry.
const (
	KindConsole = "console"
	KindNull    = "null"
	KindCapture = "capture"
)

// Registry maps host kinds to factories.
type Registry struct {
	mu        sync.RWMutex
	factories map[string]Factory
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		factories: make(map[string]Factory),
	}
}

// NewDefaultRegistry creates a registry with the built-in host kinds.
// Console hosts are created with consoleOpts.
func NewDefaultRegistry(consoleOpts ...ConsoleOption) *Registry {
	r := NewRegistry()
	_ = r.Register(KindConsole, func(data hosttypes.HostData) (hosttypes.Host, error) {
		return NewConsole(data, consoleOpts...)
	})
	_ = r.Register(KindNull, func(data hosttypes.HostData) (hosttypes.Host, error) {
		return NewNull(data), nil
	})
	_ = r.Register(KindCapture, func(data hosttypes.HostData) (hosttypes.Host, error) {
		return NewCapture(data), nil
	})
	return r
}

// Register adds a factory, returning an error if the kind is already registered.
func (r *Registry) Register(kind string, factory Factory) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.factories[kind]; exists {
		return fmt.Errorf("host kind %s already registered", kind)
	}

	r.factories[kind] = factory
	return nil
}

// Create builds a host of the given kind. The data's TypeName defaults to the kind.
func (r *Registry) Create(kind string, data hosttypes.HostData) (hosttypes.Host, error) {
	r.mu.RLock()
	factory, exists := r.factories[kind]
	r.mu.RUnlock()

	if !exists {
		return nil, fmt.Errorf("host kind %s not found", kind)
	}

	if data.TypeName == "" {
		data.TypeName = kind
	}
	h, err := factory(data)
	if err != nil {
		return nil, fmt.Errorf("failed to create %s host: %w", kind, err)
	}
	return h, nil
}

// Kinds returns the registered host kinds in sorted order.
func (r *Registry) Kinds() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	kinds := make([]string, 0, len(r.factories))
	for kind := range r.factories {
		kinds = append(kinds, kind)
	}
	sort.Strings(kinds)
	return kinds
}

// GlobalRegistry is the host registry used by the CLI.
var GlobalRegistry = NewDefaultRegistry()

// globalRegistryMu protects access to the GlobalRegistry variable itself
var globalRegistryMu sync.RWMutex

// GetGlobalRegistry returns the global host registry in a thread-safe manner
func GetGlobalRegistry() *Registry {
	globalRegistryMu.RLock()
	defer globalRegistryMu.RUnlock()
	return GlobalRegistry
}

// SetGlobalRegistry sets the global host registry in a thread-safe manner
func SetGlobalRegistry(registry *Registry) {
	globalRegistryMu.Lock()
	defer globalRegistryMu.Unlock()
	GlobalRegistry = registry
}
