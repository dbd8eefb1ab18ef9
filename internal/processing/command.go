package processing

import "image"

// Command transforms a captured frame before it is stamped and encoded.
type Command interface {
	Name() string
	Execute(frame image.Image) (image.Image, error)
}

// CommandFactory creates a command from configuration parameters
type CommandFactory func(params Params) (Command, error)

// CommandConfig represents a command configuration with name and parameters
type CommandConfig struct {
	Name   string `yaml:"name"`
	Params Params `yaml:",inline"`
}
