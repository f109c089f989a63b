package commands

import (
	"fmt"
	"maps"
	"slices"
	"sync"
)

// Registry maps command names and aliases to commands.
type Registry struct {
	mu      sync.RWMutex
	byName  map[string]Command
	primary map[string]Command
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		byName:  make(map[string]Command),
		primary: make(map[string]Command),
	}
}

// Register adds c under its name and aliases. Nothing is added if any of
// those names is empty or already taken.
func (r *Registry) Register(c Command) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	names := append([]string{c.Name()}, c.Aliases()...)
	for _, name := range names {
		if name == "" {
			return fmt.Errorf("command %q: empty name or alias", c.Name())
		}
		if _, taken := r.byName[name]; taken {
			return fmt.Errorf("command name already registered: %s", name)
		}
	}

	for _, name := range names {
		r.byName[name] = c
	}
	r.primary[c.Name()] = c
	return nil
}

// Find looks up a command by name or alias.
func (r *Registry) Find(name string) (Command, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.byName[name]
	return c, ok
}

// All returns each registered command once, sorted by primary name.
func (r *Registry) All() []Command {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Command, 0, len(r.primary))
	for _, name := range slices.Sorted(maps.Keys(r.primary)) {
		out = append(out, r.primary[name])
	}
	return out
}

// DefaultRegistry holds the commands registered from init functions.
var DefaultRegistry = NewRegistry()

// Register adds c to DefaultRegistry and panics on a name clash.
func Register(c Command) {
	if err := DefaultRegistry.Register(c); err != nil {
		panic(err)
	}
}
