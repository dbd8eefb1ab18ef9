package processing

import "image"

// mockCommand is a simple mock implementation of the Command interface for testing
type mockCommand struct {
	name        string
	executeFunc func(image.Image) (image.Image, error)
}

func (m *mockCommand) Name() string {
	return m.name
}

func (m *mockCommand) Execute(frame image.Image) (image.Image, error) {
	if m.executeFunc != nil {
		return m.executeFunc(frame)
	}
	return frame, nil
}

// newMockCommand creates a mock command with default behavior (pass-through)
func newMockCommand(name string) *mockCommand {
	return &mockCommand{name: name}
}

// newMockCommandWithError creates a mock command that returns an error
func newMockCommandWithError(name string, err error) *mockCommand {
	return &mockCommand{
		name: name,
		executeFunc: func(image.Image) (image.Image, error) {
			return nil, err
		},
	}
}
