package save

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ObfuscationKey is the XOR key applied to the progress record on disk.
const ObfuscationKey = "47wtPrg3D"

// FileBackend keeps each record in its own file under a directory.
// The progress record is XOR-obfuscated; settings stay plain JSON.
type FileBackend struct {
	dir string
}

// NewFileBackend creates dir if needed. A leading ~ expands to the home
// directory.
func NewFileBackend(dir string) (*FileBackend, error) {
	if dir != "" && dir[0] == '~' {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("save: cannot expand home directory: %w", err)
		}
		dir = filepath.Join(home, dir[1:])
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("save: cannot create directory %s: %w", dir, err)
	}
	return &FileBackend{dir: dir}, nil
}

// Dir returns the directory records are kept in.
func (f *FileBackend) Dir() string { return f.dir }

func obfuscated(key string) bool {
	return key == KeyProgress
}

// Load implements Backend.
func (f *FileBackend) Load(key string) ([]byte, error) {
	data, err := os.ReadFile(filepath.Join(f.dir, key))
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("save: cannot read %s: %w", key, err)
	}
	if obfuscated(key) {
		data = Obfuscate(data, ObfuscationKey)
	}
	return data, nil
}

// Save implements Backend. The file is replaced atomically.
func (f *FileBackend) Save(key string, data []byte) error {
	if obfuscated(key) {
		data = Obfuscate(data, ObfuscationKey)
	}
	path := filepath.Join(f.dir, key)
	tmp, err := os.CreateTemp(f.dir, key+".*.tmp")
	if err != nil {
		return fmt.Errorf("save: cannot create temp file: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("save: cannot write %s: %w", key, err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save: cannot write %s: %w", key, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("save: cannot replace %s: %w", key, err)
	}
	return nil
}

// Delete implements Backend.
func (f *FileBackend) Delete(key string) error {
	err := os.Remove(filepath.Join(f.dir, key))
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return fmt.Errorf("save: cannot delete %s: %w", key, err)
	}
	return nil
}
