package task

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Favorites is the persisted list of frequently used task names, one per row
// of favorites.csv, in the order they were added.
type Favorites struct {
	mu   sync.Mutex
	path string
}

// NewFavorites opens the list under dir, or the default data directory when
// dir is empty.
func NewFavorites(dir string) (*Favorites, error) {
	dir, err := ensureDataDir(dir)
	if err != nil {
		return nil, err
	}
	return &Favorites{path: filepath.Join(dir, "favorites.csv")}, nil
}

// List returns the favorites in stored order.
func (f *Favorites) List() ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.read()
}

// Add appends a name. Whitespace is trimmed, empty names are rejected, and
// adding an existing name is a no-op.
func (f *Favorites) Add(text string) error {
	text = strings.TrimSpace(text)
	if text == "" {
		return errors.New("favorite text is empty")
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	favs, err := f.read()
	if err != nil {
		return err
	}
	for _, fav := range favs {
		if fav == text {
			return nil
		}
	}
	return f.write(append(favs, text))
}

// Remove deletes a name, reporting whether it was present.
func (f *Favorites) Remove(text string) (bool, error) {
	text = strings.TrimSpace(text)

	f.mu.Lock()
	defer f.mu.Unlock()

	favs, err := f.read()
	if err != nil {
		return false, err
	}
	kept := favs[:0]
	found := false
	for _, fav := range favs {
		if fav == text {
			found = true
			continue
		}
		kept = append(kept, fav)
	}
	if !found {
		return false, nil
	}
	return true, f.write(kept)
}

func (f *Favorites) read() ([]string, error) {
	file, err := os.Open(f.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read favorites: %w", err)
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse favorites %s: %w", f.path, err)
	}
	var out []string
	for _, row := range rows {
		if len(row) == 0 {
			continue
		}
		if text := strings.TrimSpace(row[0]); text != "" {
			out = append(out, text)
		}
	}
	return out, nil
}

func (f *Favorites) write(favs []string) error {
	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, fav := range favs {
		if err := w.Write([]string{fav}); err != nil {
			return fmt.Errorf("failed to encode favorites: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode favorites: %w", err)
	}
	if err := writeFileAtomic(f.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to persist favorites: %w", err)
	}
	return nil
}
