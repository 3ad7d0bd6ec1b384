package cmd

import (
	"errors"

	"github.com/fakeyudi/lapwing/internal/task"
)

// dataDir resolves the data directory: config override first, XDG default
// otherwise.
func dataDir() (string, error) {
	if d := GetConfig().DataDir; d != "" {
		return d, nil
	}
	return task.DataDir()
}

// openBoard returns the disk store and the saved board, or a fresh board
// when none has been saved yet.
func openBoard() (task.BoardStore, *task.Board, error) {
	dir, err := dataDir()
	if err != nil {
		return nil, nil, err
	}
	store, err := task.NewDiskStore(dir)
	if err != nil {
		return nil, nil, err
	}
	board, err := store.Load()
	if err != nil {
		if !errors.Is(err, task.ErrNoBoard) {
			return nil, nil, err
		}
		board = task.NewBoard()
	}
	return store, board, nil
}
