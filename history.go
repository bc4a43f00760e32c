package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/gofrs/flock"
)

// historian is the part of liner.State that reads and writes history.
type historian interface {
	ReadHistory(r io.Reader) (int, error)
	WriteHistory(w io.Writer) (int, error)
}

func historyPath(cacheDir string) string {
	return filepath.Join(cacheDir, HISTORY_FILE)
}

// loadHistory reads the history file into h. A missing file is not an error.
// A shared lock keeps it from reading a file another session is rewriting.
func loadHistory(h historian, path string) error {
	lock := flock.New(path + ".lock")
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	if err := lock.RLock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer lock.Unlock()

	f, err := os.Open(path)
	if os.IsNotExist(err) {
		return nil
	}
	if err != nil {
		return fmt.Errorf("open history: %w", err)
	}
	defer f.Close()

	if _, err := h.ReadHistory(f); err != nil {
		return fmt.Errorf("read history: %w", err)
	}
	return nil
}

// saveHistory rewrites the history file from h under an exclusive lock, so
// concurrent sessions never interleave their writes.
func saveHistory(h historian, path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("create history dir: %w", err)
	}
	lock := flock.New(path + ".lock")
	if err := lock.Lock(); err != nil {
		return fmt.Errorf("acquire history lock: %w", err)
	}
	defer lock.Unlock()

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create history: %w", err)
	}
	if _, err := h.WriteHistory(f); err != nil {
		f.Close()
		return fmt.Errorf("write history: %w", err)
	}
	return f.Close()
}
