package core

import (
	"fmt"
	"os"
	"time"

	"github.com/jo-hoe/snapfolder/internal/camera"
	"github.com/jo-hoe/snapfolder/internal/kvstore"
	"github.com/jo-hoe/snapfolder/internal/link"
	"github.com/jo-hoe/snapfolder/internal/processing"
	"gopkg.in/yaml.v3"
)

type Storage struct {
	Type             string `yaml:"type"`
	ConnectionString string `yaml:"connectionString"`
	Key              string `yaml:"key"`
}

type Camera struct {
	Source    string `yaml:"source"`
	Directory string `yaml:"directory"`
	Facing    string `yaml:"facing"`
	Width     int    `yaml:"width"`
	Height    int    `yaml:"height"`
}

type Capture struct {
	TimestampFormat string                     `yaml:"timestampFormat"`
	Timezone        string                     `yaml:"timezone"`
	JPEGQuality     int                        `yaml:"jpegQuality"`
	SessionIdleTime time.Duration              `yaml:"sessionIdleTime"`
	Commands        []processing.CommandConfig `yaml:"commands"`
}

type ServiceConfig struct {
	Port           int     `yaml:"port"`
	PublicOrigin   string  `yaml:"publicOrigin"`
	LinkPolicy     string  `yaml:"linkPolicy"`
	ThumbnailWidth int     `yaml:"thumbnailWidth"`
	Storage        Storage `yaml:"storage"`
	Camera         Camera  `yaml:"camera"`
	Capture        Capture `yaml:"capture"`
}

// DefaultConfig returns the configuration used for every field a config file leaves unset.
func DefaultConfig() *ServiceConfig {
	constraints := camera.DefaultConstraints()
	return &ServiceConfig{
		Port:           8080,
		LinkPolicy:     link.PolicyAlways,
		ThumbnailWidth: 480,
		Storage: Storage{
			Type: kvstore.TypeMemory,
			Key:  "folders",
		},
		Camera: Camera{
			Source: camera.TypePush,
			Facing: string(constraints.Facing),
			Width:  constraints.Width,
			Height: constraints.Height,
		},
		Capture: Capture{
			TimestampFormat: "2006-01-02 15:04:05",
			Timezone:        "Local",
			JPEGQuality:     92,
			SessionIdleTime: 30 * time.Minute,
		},
	}
}

// LoadConfig loads configuration from the specified YAML file
func LoadConfig(configPath string) (*ServiceConfig, error) {
	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", configPath, err)
	}

	config := DefaultConfig()
	if err := yaml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config file %s: %w", configPath, err)
	}

	if err := config.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration in %s: %w", configPath, err)
	}
	return config, nil
}

// Validate checks the configuration for values that would only fail later at runtime.
func (c *ServiceConfig) Validate() error {
	if c.Port < 0 || c.Port > 65535 {
		return fmt.Errorf("port out of range: %d", c.Port)
	}
	if c.ThumbnailWidth <= 0 {
		return fmt.Errorf("thumbnailWidth must be positive, got %d", c.ThumbnailWidth)
	}
	if _, err := link.NewPolicy(c.LinkPolicy); err != nil {
		return err
	}
	if c.Camera.Facing != string(camera.FacingEnvironment) && c.Camera.Facing != string(camera.FacingUser) {
		return fmt.Errorf("camera facing must be %q or %q, got %q",
			camera.FacingEnvironment, camera.FacingUser, c.Camera.Facing)
	}
	if c.Camera.Width < 0 || c.Camera.Height < 0 {
		return fmt.Errorf("camera resolution must not be negative: %dx%d", c.Camera.Width, c.Camera.Height)
	}
	if c.Capture.JPEGQuality < 1 || c.Capture.JPEGQuality > 100 {
		return fmt.Errorf("jpegQuality must be between 1 and 100, got %d", c.Capture.JPEGQuality)
	}
	if _, err := time.LoadLocation(c.Capture.Timezone); err != nil {
		return fmt.Errorf("invalid timezone %q: %w", c.Capture.Timezone, err)
	}
	return validateCommands(c.Capture.Commands)
}

// validateCommands ensures all command configurations have required fields
func validateCommands(commands []processing.CommandConfig) error {
	seenNames := make(map[string]bool)

	for i, cmd := range commands {
		if cmd.Name == "" {
			return fmt.Errorf("command at index %d has empty name", i)
		}
		if !processing.DefaultRegistry.IsRegistered(cmd.Name) {
			return fmt.Errorf("unknown command at index %d: %s", i, cmd.Name)
		}
		if seenNames[cmd.Name] {
			return fmt.Errorf("duplicate command name: %s", cmd.Name)
		}
		seenNames[cmd.Name] = true
	}
	return nil
}
