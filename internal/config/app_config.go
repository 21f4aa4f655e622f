// Package config loads layered ftree configuration and writes the default configuration file.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/temirov/ftree/internal/types"
	"github.com/temirov/ftree/internal/utils"
)

const (
	// DefaultConcurrency builds the tree sequentially.
	DefaultConcurrency = 1
	// DefaultFormat is the box-drawing text rendering.
	DefaultFormat = types.FormatRaw

	errorInvalidConcurrencyFormat = "invalid concurrency %d in configuration: must be at least %d"
)

// LoadOptions controls how application configuration is discovered.
type LoadOptions struct {
	WorkingDirectory string
	ExplicitFilePath string
}

// ApplicationConfiguration is the root of the configuration file.
type ApplicationConfiguration struct {
	Tree TreeConfiguration `mapstructure:"tree" yaml:"tree"`
}

// TreeConfiguration holds defaults for the tree command. Nil pointers mean "not set".
type TreeConfiguration struct {
	Path        string `mapstructure:"path" yaml:"path,omitempty"`
	Format      string `mapstructure:"format" yaml:"format,omitempty"`
	Concurrency *int   `mapstructure:"concurrency" yaml:"concurrency,omitempty"`
	Copy        *bool  `mapstructure:"copy" yaml:"copy,omitempty"`
	Verbose     *bool  `mapstructure:"verbose" yaml:"verbose,omitempty"`
}

// LoadApplicationConfiguration loads the global configuration and overlays the local or explicit one.
func LoadApplicationConfiguration(options LoadOptions) (ApplicationConfiguration, error) {
	workingDirectory := options.WorkingDirectory
	if workingDirectory == "" {
		currentDirectory, err := os.Getwd()
		if err != nil {
			return ApplicationConfiguration{}, fmt.Errorf("determine working directory: %w", err)
		}
		workingDirectory = currentDirectory
	}

	var merged ApplicationConfiguration

	if homeDirectory, err := os.UserHomeDir(); err == nil && homeDirectory != "" {
		globalPath := filepath.Join(homeDirectory, utils.GlobalConfigDirectoryName, utils.ConfigFileName)
		globalConfig, loadErr := loadConfigurationFromPath(globalPath, false)
		if loadErr != nil {
			return ApplicationConfiguration{}, loadErr
		}
		merged = merged.Merge(globalConfig)
	}

	localPath := resolveLocalConfigPath(workingDirectory, options.ExplicitFilePath)
	localConfig, loadErr := loadConfigurationFromPath(localPath, options.ExplicitFilePath != "")
	if loadErr != nil {
		return ApplicationConfiguration{}, loadErr
	}
	merged = merged.Merge(localConfig)
	merged.Tree.Format = strings.ToLower(merged.Tree.Format)
	if merged.Tree.Concurrency != nil && *merged.Tree.Concurrency < DefaultConcurrency {
		return ApplicationConfiguration{}, fmt.Errorf(errorInvalidConcurrencyFormat, *merged.Tree.Concurrency, DefaultConcurrency)
	}

	return merged, nil
}

func resolveLocalConfigPath(workingDirectory, explicitPath string) string {
	if explicitPath == "" {
		return filepath.Join(workingDirectory, utils.ConfigFileName)
	}
	if filepath.IsAbs(explicitPath) {
		return explicitPath
	}
	return filepath.Join(workingDirectory, explicitPath)
}

// loadConfigurationFromPath reads one file. Missing files are empty configurations unless required.
func loadConfigurationFromPath(path string, required bool) (ApplicationConfiguration, error) {
	info, statErr := os.Stat(path)
	if statErr != nil {
		if os.IsNotExist(statErr) && !required {
			return ApplicationConfiguration{}, nil
		}
		return ApplicationConfiguration{}, fmt.Errorf("stat configuration %s: %w", path, statErr)
	}
	if info.IsDir() {
		return ApplicationConfiguration{}, fmt.Errorf("configuration path %s is a directory", path)
	}

	reader := viper.New()
	reader.SetConfigFile(path)
	if readErr := reader.ReadInConfig(); readErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("read configuration from %s: %w", path, readErr)
	}
	var config ApplicationConfiguration
	if decodeErr := reader.Unmarshal(&config); decodeErr != nil {
		return ApplicationConfiguration{}, fmt.Errorf("decode configuration from %s: %w", path, decodeErr)
	}
	return config, nil
}

// Merge overlays override onto the receiver returning the combined configuration.
func (config ApplicationConfiguration) Merge(override ApplicationConfiguration) ApplicationConfiguration {
	result := config
	result.Tree = result.Tree.merge(override.Tree)
	return result
}

func (config TreeConfiguration) merge(override TreeConfiguration) TreeConfiguration {
	result := config
	if override.Path != "" {
		result.Path = override.Path
	}
	if override.Format != "" {
		result.Format = override.Format
	}
	if override.Concurrency != nil {
		result.Concurrency = cloneInt(override.Concurrency)
	}
	if override.Copy != nil {
		result.Copy = cloneBool(override.Copy)
	}
	if override.Verbose != nil {
		result.Verbose = cloneBool(override.Verbose)
	}
	return result
}

// ResolvedPath returns the configured root or the current directory.
func (config TreeConfiguration) ResolvedPath() string {
	if config.Path == "" {
		return utils.CurrentDirectoryPath
	}
	return config.Path
}

// ResolvedFormat returns the configured format or the raw rendering.
func (config TreeConfiguration) ResolvedFormat() string {
	if config.Format == "" {
		return DefaultFormat
	}
	return config.Format
}

// ResolvedConcurrency returns the configured concurrency or sequential building.
func (config TreeConfiguration) ResolvedConcurrency() int {
	if config.Concurrency == nil {
		return DefaultConcurrency
	}
	return *config.Concurrency
}

func cloneBool(value *bool) *bool {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}

func cloneInt(value *int) *int {
	if value == nil {
		return nil
	}
	cloned := *value
	return &cloned
}
