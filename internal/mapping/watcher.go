package mapping

import (
	"context"
	"fmt"
	"path/filepath"
	"sync/atomic"

	"github.com/fsnotify/fsnotify"

	"github.com/osse101/AssignmentSync_Go/internal/logger"
)

// Store holds the active field map and swaps it atomically on reload
type Store struct {
	path    string
	current atomic.Pointer[FieldMap]
}

// NewStore loads the field map at path (defaults when path is empty)
func NewStore(path string) (*Store, error) {
	s := &Store{path: path}
	if err := s.Reload(); err != nil {
		return nil, err
	}
	return s, nil
}

// Current returns the active field map
func (s *Store) Current() FieldMap {
	return *s.current.Load()
}

// Reload re-reads the file. On error the previous map stays active.
func (s *Store) Reload() error {
	fm, err := LoadFieldMap(s.path)
	if err != nil {
		return err
	}
	s.current.Store(&fm)
	return nil
}

// Watch reloads the map whenever the file changes, until ctx is done.
// It returns immediately when no file is configured.
func (s *Store) Watch(ctx context.Context) error {
	if s.path == "" {
		return nil
	}
	log := logger.FromContext(ctx)

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("failed to create fsnotify watcher: %w", err)
	}
	defer watcher.Close()

	// Editors often replace the file, so watch the directory
	dir := filepath.Dir(s.path)
	if err := watcher.Add(dir); err != nil {
		return fmt.Errorf("failed to watch %s: %w", dir, err)
	}
	target := filepath.Clean(s.path)

	for {
		select {
		case <-ctx.Done():
			log.Debug(LogMsgWatcherStopped, "path", s.path)
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				log.Warn(LogMsgFieldMapReloadFail, "path", s.path, "error", err)
				continue
			}
			log.Info(LogMsgFieldMapReloaded, "path", s.path)

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			log.Warn(LogMsgFieldMapReloadFail, "path", s.path, "error", err)
		}
	}
}
