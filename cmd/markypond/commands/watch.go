package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	ferrors "git.home.luguber.info/inful/markypond/internal/foundation/errors"
)

const watchDebounce = 300 * time.Millisecond

var errWatchNeedsFile = ferrors.ValidationError("--watch needs an input file, not stdin").Build()

// watchFile calls onChange, debounced, whenever path is written, created or
// renamed into place. It returns when ctx is done.
func watchFile(ctx context.Context, path string, logger *slog.Logger, onChange func()) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("resolve input: %w", err)
	}
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("fsnotify: %w", err)
	}
	defer func() { _ = watcher.Close() }()

	// Watch the directory; editors often replace the file instead of writing it.
	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}
	logger.Info("Watching for changes", slog.String("path", abs))

	changes, trigger := debouncer(watchDebounce)
	for {
		select {
		case <-ctx.Done():
			logger.Info("Stopping watch")
			return nil
		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if relevantEvent(ev, abs) {
				logger.Debug("Input change detected", slog.String("op", ev.Op.String()))
				trigger()
			}
		case <-changes:
			onChange()
		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				trigger()
				continue
			}
			logger.Warn("watcher error", slog.Any("error", err))
		}
	}
}

// debouncer returns a channel receiving one value after trigger stops being
// called for d.
func debouncer(d time.Duration) (<-chan struct{}, func()) {
	var mu sync.Mutex
	var timer *time.Timer
	ch := make(chan struct{}, 1)
	trigger := func() {
		mu.Lock()
		defer mu.Unlock()
		if timer != nil {
			timer.Stop()
		}
		timer = time.AfterFunc(d, func() {
			select {
			case ch <- struct{}{}:
			default:
			}
		})
	}
	return ch, trigger
}

func relevantEvent(ev fsnotify.Event, target string) bool {
	if filepath.Clean(ev.Name) != target {
		return false
	}
	return ev.Has(fsnotify.Write) || ev.Has(fsnotify.Create) || ev.Has(fsnotify.Rename)
}
