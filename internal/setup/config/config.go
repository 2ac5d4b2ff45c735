package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMissing  = errors.New("config file is missing version field")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
	ErrMissingBaseURL        = errors.New("api.base_url must be set")
	ErrInvalidPageSize       = errors.New("feed.page_size must be greater than zero")
)

// RepositoryVersion is the repository version tag for config file references.
const RepositoryVersion = "v0.3.0"

// CurrentVersion is the expected config file version.
const CurrentVersion = 1

// Config is the entire application configuration.
type Config struct {
	// Version of the config file.
	Version int   `koanf:"version"`
	API     API   `koanf:"api"`
	Feed    Feed  `koanf:"feed"`
	Debug   Debug `koanf:"debug"`
}

// API contains backend connection configuration.
type API struct {
	// Base URL of the REST backend.
	BaseURL string `koanf:"base_url"`
	// Request timeout in milliseconds. Zero disables the deadline; no
	// default is invented because the backend owns latency behavior.
	RequestTimeout int `koanf:"request_timeout"`
}

// Feed contains list-loading configuration.
type Feed struct {
	// Items requested per page.
	PageSize int `koanf:"page_size"`
	// How close to the bottom of the rendered list, in lines, the scroll
	// position must be before the next page is requested.
	ScrollThreshold int `koanf:"scroll_threshold"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log sessions to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// LoadConfig loads mingle.toml from the first config path that has one and
// returns the config along with the directory it was found in. That directory
// also hosts the credentials store.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	configPaths := []string{
		".mingle",
		homeDir + "/.mingle",
		"/etc/mingle",
		"config",
		".",
	}

	var usedConfigPath string

	for _, path := range configPaths {
		configPath := path + "/mingle.toml"
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: mingle.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if err := checkConfigVersion(config.Version); err != nil {
		return nil, "", err
	}

	applyDefaults(&config)

	if err := validate(&config); err != nil {
		return nil, "", err
	}

	return &config, usedConfigPath, nil
}

// applyDefaults fills in the optional fields.
func applyDefaults(config *Config) {
	if config.Feed.PageSize == 0 {
		config.Feed.PageSize = 10
	}

	if config.Feed.ScrollThreshold == 0 {
		config.Feed.ScrollThreshold = 5
	}

	if config.Debug.LogLevel == "" {
		config.Debug.LogLevel = "info"
	}

	if config.Debug.MaxLogsToKeep == 0 {
		config.Debug.MaxLogsToKeep = 10
	}
}

// validate rejects configs the client cannot run with.
func validate(config *Config) error {
	if config.API.BaseURL == "" {
		return ErrMissingBaseURL
	}

	if config.Feed.PageSize < 1 {
		return ErrInvalidPageSize
	}

	return nil
}

// checkConfigVersion checks if the config file version is correct.
func checkConfigVersion(current int) error {
	if current == 0 {
		return fmt.Errorf("%w: mingle.toml", ErrConfigVersionMissing)
	}

	if current != CurrentVersion {
		return fmt.Errorf(
			"%w: mingle.toml (got: %d, expected: %d)\n"+
				"Please update your config file from: https://github.com/minglehq/mingle/tree/%s/config/mingle.toml",
			ErrConfigVersionMismatch,
			current,
			CurrentVersion,
			RepositoryVersion,
		)
	}

	return nil
}
