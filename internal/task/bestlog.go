package task

import (
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
)

// BestLog keeps the fastest completion lap ever recorded per task name, in
// task_log.csv: one "name,fastest_seconds" row per task, sorted by name.
// Rows that fail to parse are skipped rather than poisoning the file.
type BestLog struct {
	mu   sync.Mutex
	path string
}

// BestEntry is one row of the log.
type BestEntry struct {
	Name    string `json:"name"`
	Seconds int    `json:"fastest_seconds"`
}

// NewBestLog opens the log under dir, or the default data directory when
// dir is empty.
func NewBestLog(dir string) (*BestLog, error) {
	dir, err := ensureDataDir(dir)
	if err != nil {
		return nil, err
	}
	return &BestLog{path: filepath.Join(dir, "task_log.csv")}, nil
}

// Entries returns the log sorted by name.
func (l *BestLog) Entries() ([]BestEntry, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	log, err := l.read()
	if err != nil {
		return nil, err
	}
	out := make([]BestEntry, 0, len(log))
	for name, secs := range log {
		out = append(out, BestEntry{Name: name, Seconds: secs})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// Record notes a completion lap and reports whether it set a new record:
// a name never seen before, or a lap strictly faster than the stored one.
// Slower laps leave the file untouched.
func (l *BestLog) Record(name string, seconds int) (bool, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return false, errors.New("task name is empty")
	}
	if seconds < 0 {
		return false, fmt.Errorf("lap seconds must not be negative, got %d", seconds)
	}

	l.mu.Lock()
	defer l.mu.Unlock()

	log, err := l.read()
	if err != nil {
		return false, err
	}
	if prev, ok := log[name]; ok && prev <= seconds {
		return false, nil
	}
	log[name] = seconds
	if err := l.write(log); err != nil {
		return false, err
	}
	return true, nil
}

// Delete removes a name from the log, reporting whether it was present.
func (l *BestLog) Delete(name string) (bool, error) {
	name = strings.TrimSpace(name)

	l.mu.Lock()
	defer l.mu.Unlock()

	log, err := l.read()
	if err != nil {
		return false, err
	}
	if _, ok := log[name]; !ok {
		return false, nil
	}
	delete(log, name)
	if err := l.write(log); err != nil {
		return false, err
	}
	return true, nil
}

func (l *BestLog) read() (map[string]int, error) {
	log := make(map[string]int)

	f, err := os.Open(l.path)
	if errors.Is(err, os.ErrNotExist) {
		return log, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read best-time log: %w", err)
	}
	defer f.Close()

	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, fmt.Errorf("failed to parse best-time log %s: %w", l.path, err)
	}
	for _, row := range rows {
		if len(row) < 2 {
			continue
		}
		secs, err := strconv.Atoi(strings.TrimSpace(row[1]))
		if err != nil {
			continue
		}
		log[row[0]] = secs
	}
	return log, nil
}

func (l *BestLog) write(log map[string]int) error {
	names := make([]string, 0, len(log))
	for name := range log {
		names = append(names, name)
	}
	sort.Strings(names)

	var buf bytes.Buffer
	w := csv.NewWriter(&buf)
	for _, name := range names {
		if err := w.Write([]string{name, strconv.Itoa(log[name])}); err != nil {
			return fmt.Errorf("failed to encode best-time log: %w", err)
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return fmt.Errorf("failed to encode best-time log: %w", err)
	}
	if err := writeFileAtomic(l.path, buf.Bytes()); err != nil {
		return fmt.Errorf("failed to persist best-time log: %w", err)
	}
	return nil
}
