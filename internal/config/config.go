// Package config loads and rewrites the rutd configuration.
//
// Effective values are a layered merge of built-in defaults, the config
// file at <root>/config.toml, and RUTD_-prefixed environment variables
// ("__" separates the dotted key segments, uppercased). The file is only
// rewritten by the explicit set/unset operations.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"
)

const (
	// EnvPrefix is the prefix for environment overrides.
	EnvPrefix = "RUTD"

	// FileName is the config file name under the root directory.
	FileName = "config.toml"

	dotDirName = ".rutd"
)

var (
	// ErrInvalidConfigKey is returned for a dotted path no leaf answers to.
	ErrInvalidConfigKey = errors.New("unknown config key")

	// ErrInvalidConfigValue is returned when a value doesn't parse for the
	// leaf's type.
	ErrInvalidConfigValue = errors.New("invalid config value")
)

// Config is the process-scoped configuration, loaded once per invocation.
type Config struct {
	Path PathConfig `mapstructure:"path"`
	Git  GitConfig  `mapstructure:"git"`
	Log  LogConfig  `mapstructure:"log"`
	Task TaskConfig `mapstructure:"task"`
}

// PathConfig locates the on-disk state.
type PathConfig struct {
	// RootDir is the base directory for all state.
	RootDir string `mapstructure:"root_dir"`

	// TasksDir is the task-file sub-path under RootDir.
	TasksDir string `mapstructure:"tasks_dir"`

	// ActiveTaskFile is the active-task sub-path under RootDir.
	ActiveTaskFile string `mapstructure:"active_task_file"`

	// LogFile is the log sub-path under RootDir.
	LogFile string `mapstructure:"log_file"`
}

// GitConfig carries HTTPS credentials for remote operations.
type GitConfig struct {
	Username string `mapstructure:"username"`
	Password string `mapstructure:"password"`
}

// LogConfig controls the logging sink.
type LogConfig struct {
	// History is the maximum retained log lines; 0 disables trimming.
	History int `mapstructure:"history"`

	// Console redirects log records to stdout instead of the file.
	Console bool `mapstructure:"console"`
}

// TaskConfig pins completion suggestions.
type TaskConfig struct {
	Scopes []string `mapstructure:"scopes"`
	Types  []string `mapstructure:"types"`
}

// TasksPath returns the absolute task directory.
func (c *Config) TasksPath() string {
	return filepath.Join(c.Path.RootDir, c.Path.TasksDir)
}

// ActiveTaskPath returns the absolute active-task file path.
func (c *Config) ActiveTaskPath() string {
	return filepath.Join(c.Path.RootDir, c.Path.ActiveTaskFile)
}

// LogPath returns the absolute log file path.
func (c *Config) LogPath() string {
	return filepath.Join(c.Path.RootDir, c.Path.LogFile)
}

// FilePath returns the config file location. The root directory is resolved
// from the environment override or the platform default, never from the
// file itself.
func FilePath() (string, error) {
	root, err := rootDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(root, FileName), nil
}

func rootDir() (string, error) {
	if override := os.Getenv(EnvPrefix + "_PATH__ROOT_DIR"); override != "" {
		return override, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("get home directory: %w", err)
	}
	return filepath.Join(home, dotDirName), nil
}

// newViper builds a viper instance with defaults and env wiring applied.
func newViper() (*viper.Viper, error) {
	filePath, err := FilePath()
	if err != nil {
		return nil, err
	}

	v := viper.New()
	for _, leaf := range Leaves() {
		v.SetDefault(leaf.Path, leaf.Default)
	}
	v.SetDefault("path.root_dir", filepath.Dir(filePath))

	v.SetConfigFile(filePath)
	v.SetConfigType("toml")

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "__"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		// A missing config file is the common case; anything else is real.
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("read config file: %w", err)
		}
	}
	return v, nil
}

// Load resolves the effective configuration.
func Load() (*Config, error) {
	v, err := newViper()
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	return &cfg, nil
}
