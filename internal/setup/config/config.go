// Package config loads the application configuration from TOML files.
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/knadh/koanf/parsers/toml/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

var (
	ErrConfigFileNotFound    = errors.New("could not find config file in any config path")
	ErrConfigVersionMismatch = errors.New("config file version mismatch")
)

// CurrentVersion is the version of the config file this build expects.
const CurrentVersion = 1

// Config represents the entire application configuration.
type Config struct {
	// Version of the config file.
	Version    int        `koanf:"version"`
	Debug      Debug      `koanf:"debug"`
	PostgreSQL PostgreSQL `koanf:"postgresql"`
	Redis      Redis      `koanf:"redis"`
	Matching   Matching   `koanf:"matching"`
	Sampler    Sampler    `koanf:"sampler"`
	Push       Push       `koanf:"push"`
	Worker     Worker     `koanf:"worker"`
}

// Debug contains debug-related configuration.
type Debug struct {
	// Log level (debug, info, warn, error).
	LogLevel string `koanf:"log_level"`
	// Maximum log files to keep.
	MaxLogsToKeep int `koanf:"max_logs_to_keep"`
}

// PostgreSQL contains database connection configuration.
type PostgreSQL struct {
	// Database hostname.
	Host string `koanf:"host"`
	// Database port.
	Port int `koanf:"port"`
	// Database username.
	User string `koanf:"user"`
	// Database password.
	Password string `koanf:"password"`
	// Database name.
	DBName string `koanf:"db_name"`
	// Maximum open connections.
	MaxOpenConns int `koanf:"max_open_conns"`
	// Maximum idle connections.
	MaxIdleConns int `koanf:"max_idle_conns"`
	// Connection lifetime in minutes.
	MaxLifetime int `koanf:"max_lifetime"`
	// Idle timeout in minutes.
	MaxIdleTime int `koanf:"max_idle_time"`
}

// Redis contains Redis connection configuration.
type Redis struct {
	// Redis hostname.
	Host string `koanf:"host"`
	// Redis port.
	Port int `koanf:"port"`
	// Redis username.
	Username string `koanf:"username"`
	// Redis password.
	Password string `koanf:"password"`
}

// Matching contains proximity matching configuration.
type Matching struct {
	// Maximum great-circle distance in meters to qualify as nearby.
	RadiusMeters float64 `koanf:"radius_meters"`
	// Maximum age of a stored location considered valid, in seconds.
	FreshnessWindowSeconds int `koanf:"freshness_window_seconds"`
	// Minimum time between two notifications for the same pair, in hours.
	CooldownHours int `koanf:"cooldown_hours"`
	// How long the per-pair dispatch lock is held at most, in milliseconds.
	PairLockTTLMS int `koanf:"pair_lock_ttl_ms"`
}

// Sampler contains location sampling configuration.
type Sampler struct {
	// Minimum time between reported fixes, in seconds.
	MinIntervalSeconds int `koanf:"min_interval_seconds"`
	// Minimum distance between reported fixes, in meters.
	MinDistanceMeters float64 `koanf:"min_distance_meters"`
	// Accuracy tier requested from the location provider (low, balanced, high).
	Accuracy string `koanf:"accuracy"`
}

// Push contains push notification delivery configuration.
type Push struct {
	// Push gateway endpoint URL. Empty disables delivery (log-only mode).
	Endpoint string `koanf:"endpoint"`
	// Bearer token for the push gateway.
	AccessToken string `koanf:"access_token"`
	// Request timeout in milliseconds.
	RequestTimeout int `koanf:"request_timeout"`
}

// Worker contains worker specific configuration.
type Worker struct {
	// User IDs to run matching sessions for (simulation mode).
	SimulatedUsers []string `koanf:"simulated_users"`
	// Movement step in meters for simulated fixes.
	SimulatedStepMeters float64 `koanf:"simulated_step_meters"`
	// Interval between simulated fixes, in milliseconds.
	SimulatedIntervalMS int `koanf:"simulated_interval_ms"`
}

// FreshnessWindow returns the freshness window as a duration.
func (m *Matching) FreshnessWindow() time.Duration {
	return time.Duration(m.FreshnessWindowSeconds) * time.Second
}

// Cooldown returns the notification cool-down as a duration.
func (m *Matching) Cooldown() time.Duration {
	return time.Duration(m.CooldownHours) * time.Hour
}

// PairLockTTL returns the maximum pair lock hold time as a duration.
func (m *Matching) PairLockTTL() time.Duration {
	return time.Duration(m.PairLockTTLMS) * time.Millisecond
}

// MinInterval returns the minimum sampling interval as a duration.
func (s *Sampler) MinInterval() time.Duration {
	return time.Duration(s.MinIntervalSeconds) * time.Second
}

// LoadConfig loads the configuration and returns it along with the
// directory the config file was found in.
func LoadConfig() (*Config, string, error) {
	k := koanf.New(".")

	// Get user's home directory
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get home directory: %w", err)
	}

	// List search paths
	configPaths := []string{
		".nearwave",
		homeDir + "/.nearwave/config",
		"/etc/nearwave/config",
		"/app/config",
		"config",
		".",
	}

	// Load the first config file found
	var usedConfigPath string

	for _, path := range configPaths {
		configPath := fmt.Sprintf("%s/nearwave.toml", path)
		if err := k.Load(file.Provider(configPath), toml.Parser()); err == nil {
			usedConfigPath = path
			break
		}
	}

	if usedConfigPath == "" {
		return nil, "", fmt.Errorf("%w: nearwave.toml", ErrConfigFileNotFound)
	}

	var config Config
	if err := k.Unmarshal("", &config); err != nil {
		return nil, "", fmt.Errorf("error unmarshaling config: %w", err)
	}

	if config.Version != CurrentVersion {
		return nil, "", fmt.Errorf(
			"%w: found version %d, expected version %d",
			ErrConfigVersionMismatch, config.Version, CurrentVersion,
		)
	}

	return &config, usedConfigPath, nil
}
