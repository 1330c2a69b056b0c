// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: BSD-3-Clause

package config

import (
	"context"
	"fmt"
	"path/filepath"

	"github.com/fsnotify/fsnotify"

	"github.com/gogpu/layerfx"
)

// Watch reloads the file at path whenever it changes and calls fn with each
// successfully parsed config. Invalid configs are logged and skipped, so the
// previous config stays in effect.
//
// The parent directory is watched rather than the file itself, because
// editors commonly replace files by renaming over them.
//
// Watch blocks until ctx is done. fn runs on the watching goroutine; callers
// that keep state on an event loop should hand the config over a channel.
func Watch(ctx context.Context, path string, fn func(*Config)) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	defer watcher.Close()

	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("config: watch: %w", err)
	}
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("config: watch %s: %w", filepath.Dir(abs), err)
	}

	const reloadOps = fsnotify.Write | fsnotify.Create | fsnotify.Rename
	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != abs || event.Op&reloadOps == 0 {
				continue
			}
			cfg, err := Load(abs)
			if err != nil {
				layerfx.Logger().Warn("error reloading config", "path", abs, "err", err)
				continue
			}
			fn(cfg)
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			layerfx.Logger().Warn("config watcher error", "err", err)
		}
	}
}
