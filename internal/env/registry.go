package env

import (
	"fmt"
	"sort"
	"sync"
)

// Factory builds a fresh environment instance for a config.
type Factory func(cfg Config) (Env, error)

var (
	registryMu sync.RWMutex
	registry   = make(map[string]Factory)
)

// Register makes an environment available under the given name. It is meant
// to be called from the init function of a game package and panics on a
// duplicate name, the same way database/sql treats drivers.
func Register(name string, factory Factory) {
	registryMu.Lock()
	defer registryMu.Unlock()
	if factory == nil {
		panic("env: Register factory is nil")
	}
	if _, dup := registry[name]; dup {
		panic("env: Register called twice for " + name)
	}
	registry[name] = factory
}

// Make constructs the named environment. Unknown names return ErrUnknownEnv.
func Make(name string, cfg Config) (Env, error) {
	registryMu.RLock()
	factory, ok := registry[name]
	registryMu.RUnlock()
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownEnv, name)
	}
	return factory(cfg)
}

// Names lists the registered environment names, sorted.
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
