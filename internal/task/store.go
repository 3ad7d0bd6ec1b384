package task

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// BoardStore persists the task board between runs.
type BoardStore interface {
	Save(b *Board) error
	Load() (*Board, error)
	Clear() error
}

// ErrNoBoard is returned by Load when no board has been saved yet.
var ErrNoBoard = errors.New("no saved board")

// DataDir resolves the directory the flat files live in:
// $XDG_DATA_HOME/lapwing, falling back to ~/.local/share/lapwing.
func DataDir() (string, error) {
	if dir := os.Getenv("XDG_DATA_HOME"); dir != "" {
		return filepath.Join(dir, "lapwing"), nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to locate home directory: %w", err)
	}
	return filepath.Join(home, ".local", "share", "lapwing"), nil
}

type diskStore struct {
	path string
}

// NewDiskStore returns a store writing tasks.json under dir, or under the
// default data directory when dir is empty.
func NewDiskStore(dir string) (BoardStore, error) {
	dir, err := ensureDataDir(dir)
	if err != nil {
		return nil, err
	}
	return &diskStore{path: filepath.Join(dir, "tasks.json")}, nil
}

func (d *diskStore) Save(b *Board) error {
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode board: %w", err)
	}

	// Keep the previous file as a restore point; put it back if the
	// replacement write fails.
	bak := d.path + ".bak"
	hadPrev := false
	if _, statErr := os.Stat(d.path); statErr == nil {
		hadPrev = os.Rename(d.path, bak) == nil
	}
	if err := writeFileAtomic(d.path, data); err != nil {
		if hadPrev {
			_ = os.Rename(bak, d.path)
		}
		return fmt.Errorf("failed to persist board: %w", err)
	}
	return nil
}

func (d *diskStore) Load() (*Board, error) {
	data, err := os.ReadFile(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoBoard
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read board: %w", err)
	}
	b := NewBoard()
	if err := json.Unmarshal(data, b); err != nil {
		return nil, fmt.Errorf("failed to decode board %s: %w", d.path, err)
	}
	return b, nil
}

func (d *diskStore) Clear() error {
	err := os.Remove(d.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil
	}
	return err
}

func ensureDataDir(dir string) (string, error) {
	if dir == "" {
		var err error
		dir, err = DataDir()
		if err != nil {
			return "", err
		}
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("failed to create data directory: %w", err)
	}
	return dir, nil
}

// writeFileAtomic writes through a temp file in the same directory and
// renames it into place.
func writeFileAtomic(path string, data []byte) (err error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), filepath.Base(path)+"-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	defer func() {
		if err != nil {
			os.Remove(tmpName)
		}
	}()

	if _, err = tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err = tmp.Close(); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
