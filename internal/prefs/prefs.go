// Package prefs persists user preferences across daemon restarts.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/viper"
)

const (
	// KeyVolume stores the playback volume as a numeric string.
	KeyVolume = "quran_volume"

	// DefaultVolume applies when no volume has ever been persisted.
	DefaultVolume = 0.7

	fileName = "qurand.toml"
)

// Store is a durable string-valued key-value store backed by a TOML file.
type Store struct {
	v    *viper.Viper
	path string
}

// NewStore creates a store rooted at dir, creating the directory if needed
// and loading any previously persisted values.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0700); err != nil {
		return nil, fmt.Errorf("failed to create prefs directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.SetDefault(KeyVolume, strconv.FormatFloat(DefaultVolume, 'g', -1, 64))

	path := filepath.Join(dir, fileName)
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		if !os.IsNotExist(err) {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("failed to read prefs: %w", err)
			}
		}
	}

	return &Store{v: v, path: path}, nil
}

// Get returns the string value stored under key ("" when unset).
func (s *Store) Get(key string) string {
	return s.v.GetString(key)
}

// Set stores a string value and persists it immediately.
func (s *Store) Set(key, value string) error {
	s.v.Set(key, value)
	if err := s.v.WriteConfigAs(s.path); err != nil {
		return fmt.Errorf("failed to write prefs: %w", err)
	}
	return nil
}

// Volume returns the persisted volume, or DefaultVolume when it is unset or
// not a valid number.
func (s *Store) Volume() float64 {
	raw := s.v.GetString(KeyVolume)
	vol, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return DefaultVolume
	}
	return vol
}

// SetVolume persists the volume as a numeric string.
func (s *Store) SetVolume(vol float64) error {
	return s.Set(KeyVolume, strconv.FormatFloat(vol, 'g', -1, 64))
}

// Path returns the backing file path.
func (s *Store) Path() string {
	return s.path
}
