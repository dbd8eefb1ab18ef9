package processing

import (
	"testing"
)

func TestCommandRegistry_Register(t *testing.T) {
	registry := NewCommandRegistry()
	factory := func(params Params) (Command, error) {
		return newMockCommand("TestCommand"), nil
	}

	if err := registry.Register("TestCommand", factory); err != nil {
		t.Errorf("Expected no error, got %v", err)
	}
	if err := registry.Register("TestCommand", factory); err == nil {
		t.Error("Expected error for duplicate registration")
	}
	if err := registry.Register("", factory); err == nil {
		t.Error("Expected error for empty name")
	}
	if err := registry.Register("NilFactory", nil); err == nil {
		t.Error("Expected error for nil factory")
	}
}

func TestCommandRegistry_Create(t *testing.T) {
	registry := NewCommandRegistry()
	if err := registry.Register("TestCommand", func(params Params) (Command, error) {
		if err := params.Require("required_param"); err != nil {
			return nil, err
		}
		return newMockCommand("TestCommand"), nil
	}); err != nil {
		t.Fatalf("Failed to register test command: %v", err)
	}

	command, err := registry.Create("TestCommand", map[string]any{"required_param": 1})
	if err != nil {
		t.Fatalf("Expected no error, got %v", err)
	}
	if command.Name() != "TestCommand" {
		t.Errorf("Expected name 'TestCommand', got '%s'", command.Name())
	}

	if _, err := registry.Create("TestCommand", map[string]any{}); err == nil {
		t.Error("Expected error for missing parameter")
	}
	if _, err := registry.Create("Unknown", nil); err == nil {
		t.Error("Expected error for unknown command")
	}
}

func TestDefaultRegistry_BuiltIns(t *testing.T) {
	for _, name := range []string{"CropCommand", "OrientationCommand", "ScaleCommand"} {
		if !DefaultRegistry.IsRegistered(name) {
			t.Errorf("Expected %s to be registered", name)
		}
	}
	if DefaultRegistry.IsRegistered("DitherCommand") {
		t.Error("Expected DitherCommand to be unknown")
	}
}

func TestCommandRegistry_MustRegisterPanicsOnDuplicate(t *testing.T) {
	registry := NewCommandRegistry()
	factory := func(params Params) (Command, error) { return newMockCommand("Dup"), nil }
	registry.mustRegister("Dup", factory)

	defer func() {
		if recover() == nil {
			t.Error("Expected panic for duplicate registration")
		}
	}()
	registry.mustRegister("Dup", factory)
}
