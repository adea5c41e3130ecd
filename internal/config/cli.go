package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

// CLIEnvPrefix prefixes the environment overrides of CLI settings,
// e.g. GRAPHTOOL_STRICT=true.
const CLIEnvPrefix = "GRAPHTOOL"

// CLI holds the plotter command's settings.
type CLI struct {
	Strict      bool   `mapstructure:"strict"`
	Output      string `mapstructure:"output"`
	LogLevel    string `mapstructure:"log_level"`
	LogFormat   string `mapstructure:"log_format"`
	MaxFileSize int64  `mapstructure:"max_file_size"`
}

// LoadCLI loads CLI settings from file, env, and defaults.
// Precedence: env > config file > defaults. With an empty path the optional
// ~/.graphtool/config.yaml is read; an explicit path must exist.
func LoadCLI(path string) (*CLI, error) {
	v := viper.New()
	v.SetEnvPrefix(CLIEnvPrefix)
	v.AutomaticEnv()

	v.SetDefault("strict", false)
	v.SetDefault("output", "json")
	v.SetDefault("log_level", "warn")
	v.SetDefault("log_format", "text")
	v.SetDefault("max_file_size", int64(1<<30))

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read settings %s: %w", path, err)
		}
	} else if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(filepath.Join(home, ".graphtool"))
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		if err := v.ReadInConfig(); err != nil {
			var notFound viper.ConfigFileNotFoundError
			if !errors.As(err, &notFound) {
				return nil, fmt.Errorf("read settings: %w", err)
			}
		}
	}

	var c CLI
	if err := v.Unmarshal(&c); err != nil {
		return nil, fmt.Errorf("unmarshal settings: %w", err)
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks the output format and size ceiling.
func (c *CLI) Validate() error {
	switch strings.ToLower(c.Output) {
	case "json", "yaml":
	default:
		return fmt.Errorf("output (%q) must be one of: json, yaml", c.Output)
	}
	if c.MaxFileSize <= 0 {
		return fmt.Errorf("max_file_size must be positive")
	}
	return nil
}

// ReadOptionFile reads a yaml, json or toml file into a flat option map,
// the shape chart.Decode and process.DecodeRequest accept. The format
// follows the file extension.
func ReadOptionFile(path string) (map[string]any, error) {
	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("read %s: %w", path, err)
	}
	return v.AllSettings(), nil
}
