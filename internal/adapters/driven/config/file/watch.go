package file

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/modelstore/internal/core/domain"
	"github.com/custodia-labs/modelstore/internal/logger"
)

// SchemaChange is the outcome of reloading a watched schema file.
// Err is set when the new content does not load.
type SchemaChange struct {
	Config domain.Configuration
	Err    error
}

// Watch reloads the schema file at path each time it is written or
// replaced and sends the result on the returned channel. The channel is
// closed when ctx is done.
//
// The parent directory is watched rather than the file so that editors
// which save by renaming a temporary file are still seen. A removed file
// produces no change; its recreation does.
func Watch(ctx context.Context, path string) (<-chan SchemaChange, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("watching schema: %w", err)
	}
	if _, err := os.Stat(abs); err != nil {
		return nil, fmt.Errorf("watching schema: %w", err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, fmt.Errorf("creating watcher: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		_ = watcher.Close()
		return nil, fmt.Errorf("watching %s: %w", filepath.Dir(abs), err)
	}

	changes := make(chan SchemaChange)
	go func() {
		defer close(changes)
		defer watcher.Close()

		for {
			select {
			case <-ctx.Done():
				return

			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if !isSchemaEvent(event, abs) {
					continue
				}
				cfg, err := LoadSchema(abs)
				if errors.Is(err, os.ErrNotExist) {
					continue
				}
				logger.Debug("schema %s changed (%s)", abs, event.Op)
				select {
				case changes <- SchemaChange{Config: cfg, Err: err}:
				case <-ctx.Done():
					return
				}

			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				logger.Warn("schema watcher: %v", err)
			}
		}
	}()

	return changes, nil
}

// isSchemaEvent reports whether event rewrote the file at path.
func isSchemaEvent(event fsnotify.Event, path string) bool {
	if filepath.Clean(event.Name) != path {
		return false
	}
	return event.Has(fsnotify.Write) || event.Has(fsnotify.Create)
}
