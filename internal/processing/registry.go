package processing

import (
	"fmt"
	"sync"
)

// CommandRegistry maps command names used in configuration to their factories.
type CommandRegistry struct {
	mu        sync.RWMutex
	factories map[string]CommandFactory
}

func NewCommandRegistry() *CommandRegistry {
	return &CommandRegistry{factories: make(map[string]CommandFactory)}
}

// DefaultRegistry holds the built-in commands; each registers itself in init.
var DefaultRegistry = NewCommandRegistry()

func (r *CommandRegistry) Register(name string, factory CommandFactory) error {
	switch {
	case name == "":
		return fmt.Errorf("command name cannot be empty")
	case factory == nil:
		return fmt.Errorf("command %s has no factory", name)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.factories[name]; exists {
		return fmt.Errorf("command %s is already registered", name)
	}
	r.factories[name] = factory
	return nil
}

// mustRegister is used by the built-in commands during package initialization.
func (r *CommandRegistry) mustRegister(name string, factory CommandFactory) {
	if err := r.Register(name, factory); err != nil {
		panic(fmt.Sprintf("failed to register %s: %v", name, err))
	}
}

func (r *CommandRegistry) IsRegistered(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, exists := r.factories[name]
	return exists
}

// Create builds the named command from its parameters.
func (r *CommandRegistry) Create(name string, params Params) (Command, error) {
	r.mu.RLock()
	factory, exists := r.factories[name]
	r.mu.RUnlock()
	if !exists {
		return nil, fmt.Errorf("unknown command: %s", name)
	}

	command, err := factory(params)
	if err != nil {
		return nil, fmt.Errorf("failed to create command %s: %w", name, err)
	}
	return command, nil
}
