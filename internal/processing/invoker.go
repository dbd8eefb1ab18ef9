package processing

import (
	"fmt"
	"image"
	"log/slog"
	"time"
)

// CommandInvoker applies a fixed sequence of commands to each frame
type CommandInvoker struct {
	commands []Command
}

func NewCommandInvoker(commands []Command) *CommandInvoker {
	return &CommandInvoker{
		commands: commands,
	}
}

// NewCommandInvokerFromConfig creates every configured command from the registry up
// front, so configuration errors surface at startup rather than on the first capture.
func NewCommandInvokerFromConfig(registry *CommandRegistry, configs []CommandConfig) (*CommandInvoker, error) {
	commands := make([]Command, 0, len(configs))
	for i, config := range configs {
		command, err := registry.Create(config.Name, config.Params)
		if err != nil {
			return nil, fmt.Errorf("failed to create command at index %d (%s): %w", i, config.Name, err)
		}
		commands = append(commands, command)
	}
	return NewCommandInvoker(commands), nil
}

// Len returns the number of commands in the pipeline
func (i *CommandInvoker) Len() int {
	return len(i.commands)
}

// Execute applies all commands in sequence to the frame
func (i *CommandInvoker) Execute(frame image.Image) (image.Image, error) {
	if len(i.commands) == 0 {
		return frame, nil
	}

	start := time.Now()
	current := frame
	for idx, command := range i.commands {
		processed, err := command.Execute(current)
		if err != nil {
			slog.Error("command execution failed",
				"index", idx,
				"command_name", command.Name(),
				"error", err)
			return nil, fmt.Errorf("command %s (index %d) failed: %w", command.Name(), idx, err)
		}
		slog.Debug("command completed",
			"index", idx,
			"command_name", command.Name(),
			"width", processed.Bounds().Dx(),
			"height", processed.Bounds().Dy())
		current = processed
	}

	slog.Debug("frame processing pipeline completed",
		"total_duration_ms", time.Since(start).Milliseconds(),
		"command_count", len(i.commands))
	return current, nil
}
