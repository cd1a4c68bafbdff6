// Package pkg provides shared utilities for recase.
package pkg

import (
	"encoding/gob"
	"fmt"
	"log/slog"
	"os"
	"sync"
)

// Journal is an append-only, disk-backed log of items of type T. The change
// ledger of a large run is spilled here instead of being held in memory; the
// report generator replays it with Range once the run is over.
type Journal[T any] interface {
	Len() uint64
	Path() string
	Append(item T) error
	AppendBatch(items []T) error
	Range(fn func(index uint64, item T) error) error
	Close() error
	Remove() error
}

type journalImpl[T any] struct {
	path    string
	file    *os.File
	encoder *gob.Encoder
	mu      sync.Mutex
	length  uint64
}

// NewJournal creates a Journal backed by a temp file.
func NewJournal[T any]() (Journal[T], error) {
	file, err := os.CreateTemp("", "recase-journal-*.gob")
	if err != nil {
		slog.Error("failed to create journal file", "error", err)
		return nil, fmt.Errorf("failed to create journal file: %w", err)
	}

	slog.Debug("created journal", "path", file.Name())

	return &journalImpl[T]{
		path:    file.Name(),
		file:    file,
		encoder: gob.NewEncoder(file),
	}, nil
}

// Append implements Journal.
func (j *journalImpl[T]) Append(item T) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if err := j.encoder.Encode(item); err != nil {
		slog.Error("failed to encode journal item", "path", j.path, "index", j.length, "error", err)
		return fmt.Errorf("failed to encode journal item: %w", err)
	}

	j.length++

	return nil
}

// AppendBatch implements Journal.
func (j *journalImpl[T]) AppendBatch(items []T) error {
	for _, item := range items {
		if err := j.Append(item); err != nil {
			return err
		}
	}

	return nil
}

// Len implements Journal.
func (j *journalImpl[T]) Len() uint64 {
	j.mu.Lock()
	defer j.mu.Unlock()

	return j.length
}

// Path implements Journal.
func (j *journalImpl[T]) Path() string {
	return j.path
}

// Range implements Journal. It replays every item in append order and stops
// on the first callback error.
func (j *journalImpl[T]) Range(fn func(index uint64, item T) error) error {
	j.mu.Lock()
	defer j.mu.Unlock()

	file, err := os.Open(j.path)
	if err != nil {
		slog.Error("failed to open journal for range", "path", j.path, "error", err)
		return fmt.Errorf("failed to open journal: %w", err)
	}

	defer func() {
		if err := file.Close(); err != nil {
			slog.Error("failed to close journal", "path", j.path, "error", err)
		}
	}()

	decoder := gob.NewDecoder(file)

	var item T

	for i := uint64(0); i < j.length; i++ {
		if err := decoder.Decode(&item); err != nil {
			slog.Error("failed to decode journal item", "path", j.path, "index", i, "error", err)
			return fmt.Errorf("failed to decode journal item at index %d: %w", i, err)
		}

		if err := fn(i, item); err != nil {
			return err
		}
	}

	return nil
}

// Close implements Journal.
func (j *journalImpl[T]) Close() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	if j.file != nil {
		if err := j.file.Close(); err != nil {
			slog.Error("failed to close journal file", "path", j.path, "error", err)
			return err
		}

		j.file = nil
	}

	return nil
}

// Remove deletes the backing file. Close first.
func (j *journalImpl[T]) Remove() error {
	j.mu.Lock()
	defer j.mu.Unlock()

	return os.Remove(j.path)
}
