package scaffold

import (
	"context"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/polyglot-hello/polyglot/internal/common/apperrors"
)

// watchDebounce coalesces the bursts of events editors produce on save.
const watchDebounce = 200 * time.Millisecond

// PassFunc receives the outcome of every compile pass made while watching.
type PassFunc func(res *Result, err apperrors.Error)

// Watch recompiles the manifest at path each time it is written or
// re-created, until ctx is done. The parent directory is watched so that
// editors replacing the file by rename are noticed. Every pass is a full
// compile.
func (c *Compiler) Watch(ctx context.Context, path string, onPass PassFunc) apperrors.Error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return ErrWatch.Err(err)
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return ErrWatch.Err(err)
	}
	defer watcher.Close()

	if err := watcher.Add(filepath.Dir(abs)); err != nil {
		return ErrWatch.Err(err)
	}
	c.logger.Info().Str("manifest", abs).Msg("watching manifest for changes")

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

		case ev, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(ev.Name) != abs || ev.Op&(fsnotify.Write|fsnotify.Create) == 0 {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
			} else {
				timer.Reset(watchDebounce)
			}
			fire = timer.C

		case <-fire:
			fire = nil
			c.logger.Debug().Str("manifest", abs).Msg("manifest changed")
			res, err := c.CompileFile(ctx, abs)
			if onPass != nil {
				onPass(res, err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			c.logger.Warn().Err(err).Msg("watch error")
		}
	}
}
