package convert

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"maps"
	"os"
	"path/filepath"
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"
	cli "github.com/urfave/cli/v3"
	"go.uber.org/zap"

	"styl2scss/state"
)

const debounceDelay = 500 * time.Millisecond

// Watch is the watch subcommand: converts SOURCE once and then keeps
// converting sources as they change until interrupted.
func Watch(ctx context.Context, cmd *cli.Command) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	env := state.EnvFromContext(ctx)
	log := env.Log.Named("watch")

	src, dst, err := arguments(cmd, log)
	if err != nil {
		return err
	}
	root, err := projectRoot(cmd)
	if err != nil {
		return err
	}
	fi, err := os.Stat(src)
	if err != nil {
		return fmt.Errorf("input source was not found: %w", err)
	}
	if !fi.IsDir() {
		if packed, err := isArchiveFile(src); err != nil || packed {
			return errors.Join(errors.New("only files and directories could be watched"), err)
		}
	}

	c, err := prepare(ctx, env, root, log)
	if err != nil {
		return err
	}

	if err := Process(ctx, c, src, dst, root, log); err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Warn("Initial conversion was not clean", zap.Error(err))
	}

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("unable to create watcher: %w", err)
	}
	defer fw.Close()

	w := &watcher{c: c, src: src, dst: dst, root: root, single: !fi.IsDir(), fw: fw, log: log}
	dir := src
	if w.single {
		dir = filepath.Dir(src)
	}
	if _, err := w.addDir(dir); err != nil {
		return err
	}

	log.Info("Watching for changes", zap.String("source", src), zap.String("destination", dst))
	l := &watchLoop{delay: debounceDelay, addDir: w.addNewDir, flush: w.flush, log: log}
	return l.run(ctx, fw.Events, fw.Errors)
}

type watcher struct {
	c              *Converter
	src, dst, root string
	single         bool
	fw             *fsnotify.Watcher
	log            *zap.Logger
}

// addDir puts dir and all its subdirectories under watch and returns sources
// already present there.
func (w *watcher) addDir(dir string) ([]string, error) {
	var found []string
	err := filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		switch {
		case d.IsDir():
			if err := w.fw.Add(path); err != nil {
				return fmt.Errorf("unable to watch %s: %w", path, err)
			}
			if w.single {
				return filepath.SkipDir
			}
		case d.Type().IsRegular() && isSource(path):
			found = append(found, path)
		}
		return nil
	})
	return found, err
}

func (w *watcher) addNewDir(dir string) []string {
	if w.single {
		return nil
	}
	found, err := w.addDir(dir)
	if err != nil {
		w.log.Warn("Unable to watch new directory", zap.String("dir", dir), zap.Error(err))
	}
	return found
}

// jobFor maps changed file to conversion job, reporting false for files
// outside of the watched source.
func (w *watcher) jobFor(path string) (job, bool) {
	if w.single {
		if filepath.Clean(path) != w.src {
			return job{}, false
		}
		name := filepath.Base(path)
		return job{name: name, path: path, module: moduleName(w.root, path), out: outputPath(name, w.dst)}, true
	}
	rel, err := filepath.Rel(w.src, path)
	if err != nil || !filepath.IsLocal(rel) {
		return job{}, false
	}
	return job{
		name:   filepath.ToSlash(rel),
		path:   path,
		module: moduleName(w.root, path),
		out:    outputPath(rel, w.dst),
	}, true
}

// flush converts changed files. Warm-up pass runs on them too so names they
// started to declare become known.
func (w *watcher) flush(ctx context.Context, paths []string) {
	jobs := make([]job, 0, len(paths))
	for _, p := range paths {
		if j, ok := w.jobFor(p); ok {
			jobs = append(jobs, j)
		}
	}
	if len(jobs) == 0 {
		return
	}

	start := time.Now()
	for _, final := range []bool{false, true} {
		if err := w.c.pass(ctx, jobs, final); err != nil && final {
			w.log.Warn("Changes were not converted cleanly", zap.Error(err))
		}
	}
	w.log.Info("Changes converted", zap.Int("files", len(jobs)), zap.Duration("elapsed", time.Since(start)))
}

// watchLoop collects source changes and hands them over in batches once no
// new changes arrive for delay.
type watchLoop struct {
	delay  time.Duration
	addDir func(dir string) []string
	flush  func(ctx context.Context, paths []string)
	log    *zap.Logger
}

func (l *watchLoop) run(ctx context.Context, events <-chan fsnotify.Event, errs <-chan error) error {
	pending := make(map[string]struct{})
	timer := time.NewTimer(l.delay)
	timer.Stop()
	defer timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case ev, ok := <-events:
			if !ok {
				return nil
			}
			if !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Write) {
				continue
			}
			if ev.Has(fsnotify.Create) {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					for _, p := range l.addDir(ev.Name) {
						pending[p] = struct{}{}
					}
					timer.Reset(l.delay)
					continue
				}
			}
			if !isSource(ev.Name) {
				continue
			}
			pending[ev.Name] = struct{}{}
			timer.Reset(l.delay)
		case err, ok := <-errs:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				l.log.Warn("Some changes were lost, consider restarting", zap.Error(err))
				continue
			}
			l.log.Warn("Watcher error", zap.Error(err))
		case <-timer.C:
			if len(pending) == 0 {
				continue
			}
			paths := slices.Sorted(maps.Keys(pending))
			clear(pending)
			l.log.Debug("Changes detected", zap.Strings("files", paths))
			l.flush(ctx, paths)
		}
	}
}
