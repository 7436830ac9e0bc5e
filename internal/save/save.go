// Package save persists the two small player records: game progress and
// settings. Records are JSON documents stored under a key in a Backend.
// Loading never fails: a missing or corrupt record yields the default.
package save

import (
	"encoding/json"
	"errors"
	"fmt"

	"github.com/charmbracelet/log"
)

// ErrNotFound is returned by a Backend when a key has never been saved.
var ErrNotFound = errors.New("save: record not found")

// Record keys.
const (
	KeyProgress = "SaveGame"
	KeySettings = "Settings.json"
)

// Backend stores raw record bytes by key. Deleting a missing key is not
// an error.
type Backend interface {
	Load(key string) ([]byte, error)
	Save(key string, data []byte) error
	Delete(key string) error
}

// Progress is the game progress record.
type Progress struct {
	Version   int `json:"Version"`
	HighScore int `json:"HighScore"`
}

// DefaultProgress returns a fresh progress record.
func DefaultProgress() Progress {
	return Progress{Version: 1}
}

// Settings is the player settings record.
type Settings struct {
	Version            int     `json:"Version"`
	MasterVolume       float64 `json:"MasterVolume"`
	MusicVolume        float64 `json:"MusicVolume"`
	SFXVolume          float64 `json:"SFXVolume"`
	CameraShakeEnabled bool    `json:"CameraShakeEnabled"`
}

// DefaultSettings returns the stock settings.
func DefaultSettings() Settings {
	return Settings{
		Version:            1,
		MasterVolume:       0.8,
		MusicVolume:        0.8,
		SFXVolume:          0.8,
		CameraShakeEnabled: true,
	}
}

// Clamped returns s with every volume limited to [0,1].
func (s Settings) Clamped() Settings {
	clamp := func(v float64) float64 {
		if v < 0 {
			return 0
		}
		if v > 1 {
			return 1
		}
		return v
	}
	s.MasterVolume = clamp(s.MasterVolume)
	s.MusicVolume = clamp(s.MusicVolume)
	s.SFXVolume = clamp(s.SFXVolume)
	return s
}

// LoadOrDefault loads the record under key, falling back to def when it is
// missing or cannot be decoded. Fallbacks other than a missing record are
// logged. A nil logger is allowed.
func LoadOrDefault[T any](b Backend, key string, def T, logger *log.Logger) T {
	data, err := b.Load(key)
	if errors.Is(err, ErrNotFound) {
		if logger != nil {
			logger.Debug("no saved record, using defaults", "key", key)
		}
		return def
	}
	if err != nil {
		if logger != nil {
			logger.Error("cannot read saved record, using defaults", "key", key, "error", err)
		}
		return def
	}

	v := def
	if err := json.Unmarshal(data, &v); err != nil {
		if logger != nil {
			logger.Error("corrupt saved record, using defaults", "key", key, "error", err)
		}
		return def
	}
	return v
}

// Put encodes v and stores it under key.
func Put[T any](b Backend, key string, v T) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("save: cannot encode %s: %w", key, err)
	}
	if err := b.Save(key, data); err != nil {
		return fmt.Errorf("save: cannot store %s: %w", key, err)
	}
	return nil
}

// Obfuscate XORs data with key, repeating the key. Applying it twice with
// the same key restores the input. It is not encryption.
func Obfuscate(data []byte, key string) []byte {
	out := make([]byte, len(data))
	if key == "" {
		copy(out, data)
		return out
	}
	for i, c := range data {
		out[i] = c ^ key[i%len(key)]
	}
	return out
}
