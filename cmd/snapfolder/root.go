package main

import (
	"log"
	"os"
	"path/filepath"

	"github.com/jo-hoe/snapfolder/internal/core"
	"github.com/spf13/cobra"
)

var (
	// Used for flags.
	cfgFile string

	rootCmd = &cobra.Command{
		Use:   "snapfolder",
		Short: "Capture photos into named folders",
		Long: `snapfolder serves shareable capture links. Opening a link starts a camera
session; the captured photos are saved as a named folder that can be browsed
and downloaded from the dashboard.`,
		SilenceUsage: true,
	}
)

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file (default is $CONFIG_PATH or ./config.yaml)")
}

// Execute executes the root command.
func Execute() error {
	rootCmd.CompletionOptions.DisableDefaultCmd = true
	return rootCmd.Execute()
}

func getConfigPath() string {
	if cfgFile != "" {
		return cfgFile
	}
	// First check if config path is provided via environment variable
	if configPath := os.Getenv("CONFIG_PATH"); configPath != "" {
		return configPath
	}

	// Default to config.yaml in current working directory
	cwd, err := os.Getwd()
	if err != nil {
		panic(err)
	}
	return filepath.Join(cwd, "config.yaml")
}

// loadConfig reads the config file. A missing default file falls back to the built-in
// defaults; an explicitly requested file must exist.
func loadConfig() (*core.ServiceConfig, error) {
	configPath := getConfigPath()
	if _, err := os.Stat(configPath); os.IsNotExist(err) && cfgFile == "" && os.Getenv("CONFIG_PATH") == "" {
		log.Printf("no config file at %s, using defaults", configPath)
		return core.DefaultConfig(), nil
	}

	config, err := core.LoadConfig(configPath)
	if err != nil {
		log.Printf("failed to load config from %s: %v", configPath, err)
		return nil, err
	}
	return config, nil
}
