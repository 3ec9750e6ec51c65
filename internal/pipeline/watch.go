// Copyright (c) 2025 ManuGH
// Licensed under the PolyForm Noncommercial License 1.0.0
// Since v2.0.0, this software is restricted to non-commercial use only.

package pipeline

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	xglog "github.com/ManuGH/m3uplus/internal/log"
)

// Watch runs job once and again after every change to one of its inputs.
// Bursts of events within debounce trigger a single run. onRun, if not nil,
// receives the outcome of every run; failed runs do not stop the watch.
// Watch blocks until ctx is cancelled.
func (r *Runner) Watch(ctx context.Context, job Job, debounce time.Duration, onRun func(*Result, error)) error {
	if len(job.Inputs) == 0 {
		return ErrNoInputs
	}
	logger := xglog.WithComponentFromContext(ctx, "pipeline")

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify.NewWatcher: %w", err)
	}
	defer func() {
		_ = watcher.Close()
	}()

	// Watch the parent directories: editors and atomic writers replace the
	// file, which drops a watch on the file itself.
	targets := make(map[string]struct{}, len(job.Inputs))
	for _, in := range job.Inputs {
		abs, err := filepath.Abs(in)
		if err != nil {
			return fmt.Errorf("resolve %s: %w", in, err)
		}
		targets[abs] = struct{}{}
	}
	for path := range targets {
		dir := filepath.Dir(path)
		if err := watcher.Add(dir); err != nil {
			return fmt.Errorf("watch directory %s: %w", dir, err)
		}
	}

	run := func() {
		res, err := r.Run(ctx, job)
		if onRun != nil {
			onRun(res, err)
		}
	}
	run()

	var (
		timer *time.Timer
		fire  <-chan time.Time
	)
	defer func() {
		if timer != nil {
			timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-watcher.Events:
			if !ok {
				return errors.New("watcher channel closed")
			}
			if _, ok := targets[filepath.Clean(event.Name)]; !ok {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			logger.Debug().Str(xglog.FieldPath, event.Name).Str("op", event.Op.String()).Msg("input changed")
			if timer == nil {
				timer = time.NewTimer(debounce)
				fire = timer.C
			} else {
				timer.Reset(debounce)
			}
		case <-fire:
			logger.Info().Str(xglog.FieldEvent, "pipeline.rerun").Msg("inputs changed, running pipeline")
			run()
		case err, ok := <-watcher.Errors:
			if !ok {
				return errors.New("watcher error channel closed")
			}
			logger.Warn().Err(err).Msg("fsnotify watcher error")
		}
	}
}
