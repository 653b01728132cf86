// Package config handles daemon configuration file management.
package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config represents the daemon configuration
type Config struct {
	// SocketPath is where the IPC socket is created. Empty means the
	// daemon picks a per-user path under /tmp.
	SocketPath string `mapstructure:"socket_path"`

	// DefaultReciter is the reciter used when a play request names none.
	DefaultReciter string `mapstructure:"default_reciter"`

	// Verbose enables debug logging.
	Verbose bool `mapstructure:"verbose"`
}

// Manager handles loading and saving configuration
type Manager struct {
	configDir  string
	configPath string
	v          *viper.Viper
	config     Config
}

// NewManager creates a new configuration manager
func NewManager(configDir string) *Manager {
	v := viper.New()
	path := filepath.Join(configDir, "config.toml")
	v.SetConfigFile(path)
	v.SetDefault("socket_path", "")
	v.SetDefault("default_reciter", "")
	v.SetDefault("verbose", false)

	return &Manager{
		configDir:  configDir,
		configPath: path,
		v:          v,
	}
}

// Load reads the configuration from disk. A missing file is not an error;
// defaults apply.
func (m *Manager) Load() error {
	if err := os.MkdirAll(m.configDir, 0700); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	if err := m.v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return fmt.Errorf("failed to read config: %w", err)
			}
		}
	}

	if err := m.v.Unmarshal(&m.config); err != nil {
		return fmt.Errorf("failed to parse config: %w", err)
	}
	return nil
}

// Get returns the current configuration
func (m *Manager) Get() Config {
	return m.config
}

// Path returns the config file path
func (m *Manager) Path() string {
	return m.configPath
}
