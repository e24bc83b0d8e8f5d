package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"
	"github.com/mitchellh/go-homedir"
	"go.uber.org/zap"
)

// Watch calls fn with the configuration at path every time the file is
// written or replaced, until ctx is done. Files that fail to load are
// logged and skipped.
//
// The directory is watched rather than the file, so that editors saving
// through a rename are followed.
func Watch(ctx context.Context, path string, logger *zap.Logger, fn func(Config)) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	path, err := homedir.Expand(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	path = filepath.Clean(path)
	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watching %s: %w", path, err)
	}
	defer w.Close()
	if err := w.Add(filepath.Dir(path)); err != nil {
		return fmt.Errorf("config: watching %s: %w", path, err)
	}
	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-w.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != path || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			c, err := Load(path)
			if err != nil {
				logger.Warn("reloading config", zap.String("path", path), zap.Error(err))
				continue
			}
			logger.Debug("config reloaded", zap.String("path", path))
			fn(c)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watching config", zap.String("path", path), zap.Error(err))
		}
	}
}
