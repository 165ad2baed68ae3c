package storage

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	"go-calculator/internal/observability"
)

// FileKV persists all keys as one JSON object in a file. Every Set rewrites
// the file atomically through a temp file and rename.
type FileKV struct {
	path string

	mu   sync.RWMutex
	data map[string]string
	raw  []byte
}

// NewFileKV opens path, creating its directory if needed. A missing file is
// an empty store.
func NewFileKV(path string) (*FileKV, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("creating storage dir: %w", err)
	}
	f := &FileKV{path: filepath.Clean(path), data: make(map[string]string)}
	if _, err := f.Reload(); err != nil {
		return nil, err
	}
	return f, nil
}

func (f *FileKV) Path() string { return f.path }

func (f *FileKV) Get(key string) (string, bool, error) {
	f.mu.RLock()
	defer f.mu.RUnlock()
	v, ok := f.data[key]
	return v, ok, nil
}

func (f *FileKV) Set(key, value string) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	next := make(map[string]string, len(f.data)+1)
	for k, v := range f.data {
		next[k] = v
	}
	next[key] = value

	raw, err := json.MarshalIndent(next, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding storage file: %w", err)
	}
	if err := writeAtomic(f.path, raw); err != nil {
		return err
	}
	f.data = next
	f.raw = raw
	return nil
}

// Reload re-reads the file and reports whether its contents changed. The
// read happens under the write lock so a concurrent Set cannot be replaced
// by older file contents.
func (f *FileKV) Reload() (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	raw, err := os.ReadFile(f.path)
	if errors.Is(err, os.ErrNotExist) {
		raw = nil
	} else if err != nil {
		return false, fmt.Errorf("reading storage file: %w", err)
	}

	if bytes.Equal(raw, f.raw) {
		return false, nil
	}

	data := make(map[string]string)
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &data); err != nil {
			return false, fmt.Errorf("decoding storage file: %w", err)
		}
	}
	f.data = data
	f.raw = raw
	return true, nil
}

// Watch reloads the store whenever the file is changed by another process
// and calls onChange after each reload that altered the contents. It blocks
// until ctx is done.
func (f *FileKV) Watch(ctx context.Context, onChange func()) error {
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("creating watcher: %w", err)
	}
	defer w.Close()

	// Watch the directory: atomic renames replace the file's inode.
	if err := w.Add(filepath.Dir(f.path)); err != nil {
		return fmt.Errorf("watching %s: %w", filepath.Dir(f.path), err)
	}

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != f.path || !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) {
				continue
			}
			changed, err := f.Reload()
			if err != nil {
				observability.Logger.Warn("storage reload failed", zap.String("path", f.path), zap.Error(err))
				continue
			}
			if changed {
				observability.Logger.Info("storage file changed externally", zap.String("path", f.path))
				onChange()
			}
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			observability.Logger.Warn("storage watcher error", zap.Error(err))
		}
	}
}

func writeAtomic(path string, data []byte) error {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".calc-*.tmp")
	if err != nil {
		return fmt.Errorf("creating temp file: %w", err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return fmt.Errorf("writing temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("closing temp file: %w", err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("replacing storage file: %w", err)
	}
	return nil
}
