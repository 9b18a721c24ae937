// Package config provides configuration management for simpledesktop
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"git.asdf.cafe/abs3nt/simpledesktop/constants"
	"git.asdf.cafe/abs3nt/simpledesktop/errors"
	"git.asdf.cafe/abs3nt/simpledesktop/validator"
)

// LookupFunc reads an environment variable; os.LookupEnv satisfies it.
type LookupFunc func(key string) (string, bool)

// Config holds application configuration
type Config struct {
	// Paths
	DownloadDirectory string `json:"download_directory"`
	ScriptPath        string `json:"script_path"`
	HistoryPath       string `json:"history_path"` // empty disables history

	// Scheduling
	CheckInterval  time.Duration `json:"check_interval"`
	ChangeInterval time.Duration `json:"change_interval"`

	// Application settings
	LogLevel string `json:"log_level"`
}

// NewConfig creates a new configuration with defaults
func NewConfig() *Config {
	return &Config{
		DownloadDirectory: os.Getenv(constants.EnvDirectory),
		ScriptPath:        "",
		HistoryPath:       GetDefaultHistoryPath(),
		CheckInterval:     constants.CheckInterval,
		ChangeInterval:    constants.DefaultChangeInterval,
		LogLevel:          constants.DefaultLogLevel,
	}
}

// Validate checks if the configuration is valid
func (c *Config) Validate() error {
	v := validator.NewValidator()
	validators := []func() error{
		func() error { return v.ValidateLogLevel(c.LogLevel) },
		func() error { return v.ValidateScriptPath(c.ScriptPath) },
		c.validateIntervals,
	}

	for _, validate := range validators {
		if err := validate(); err != nil {
			return errors.Configuration("validate config", err)
		}
	}

	return nil
}

func (c *Config) validateIntervals() error {
	if c.CheckInterval <= 0 {
		return errors.NewValidationError("checkInterval", c.CheckInterval.String(), "must be positive")
	}
	if c.ChangeInterval < 0 {
		return errors.NewValidationError("changeInterval", c.ChangeInterval.String(), "cannot be negative")
	}
	return nil
}

// TimeoutFromEnv reads the change interval override. The value is a count of
// minutes. ok is false when the variable is unset.
func TimeoutFromEnv(lookup LookupFunc) (interval time.Duration, ok bool, err error) {
	value, present := lookup(constants.EnvTimeout)
	if !present {
		return 0, false, nil
	}
	if err := validator.NewValidator().ValidateTimeout(value); err != nil {
		return 0, false, errors.Configuration("read "+constants.EnvTimeout, err)
	}
	minutes, _ := strconv.ParseUint(value, 10, 64)
	return time.Duration(minutes) * time.Minute, true, nil
}

// ResolveDownloadDirectory returns override when set, otherwise the platform default.
func ResolveDownloadDirectory(override string, platformDefault func() (string, error)) (string, error) {
	if dir := strings.TrimSpace(override); dir != "" {
		return dir, nil
	}
	return platformDefault()
}

// GetDefaultHistoryPath returns the location of the history database
func GetDefaultHistoryPath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		dir = filepath.Join(os.Getenv("HOME"), ".cache")
	}
	return filepath.Join(dir, constants.HistoryDir, constants.HistoryDB)
}
