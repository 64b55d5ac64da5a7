package convert

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"slices"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
)

type flushed struct {
	ch chan []string
}

func (f *flushed) flush(_ context.Context, paths []string) { f.ch <- paths }

func (f *flushed) wait(t *testing.T) []string {
	t.Helper()
	select {
	case paths := <-f.ch:
		return paths
	case <-time.After(5 * time.Second):
		t.Fatal("no changes were flushed")
	}
	return nil
}

func startLoop(t *testing.T, addDir func(string) []string) (chan fsnotify.Event, chan error, *flushed) {
	t.Helper()
	events, errs := make(chan fsnotify.Event), make(chan error)
	f := &flushed{ch: make(chan []string, 4)}
	if addDir == nil {
		addDir = func(string) []string { return nil }
	}
	l := &watchLoop{delay: 100 * time.Millisecond, addDir: addDir, flush: f.flush, log: testLogger(t)}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error)
	go func() { done <- l.run(ctx, events, errs) }()
	t.Cleanup(func() {
		cancel()
		if err := <-done; err != nil {
			t.Errorf("run() error = %v", err)
		}
	})
	return events, errs, f
}

func TestWatchLoop_Debounce(t *testing.T) {
	events, errs, f := startLoop(t, nil)

	events <- fsnotify.Event{Name: "/src/a.styl", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/src/a.styl", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/src/b.css", Op: fsnotify.Write}
	events <- fsnotify.Event{Name: "/src/old.styl", Op: fsnotify.Remove}
	errs <- errors.New("transient")
	events <- fsnotify.Event{Name: "/src/c.styl", Op: fsnotify.Create}

	if got, want := f.wait(t), []string{"/src/a.styl", "/src/c.styl"}; !slices.Equal(got, want) {
		t.Errorf("flushed %q, want %q", got, want)
	}

	events <- fsnotify.Event{Name: "/src/a.styl", Op: fsnotify.Write | fsnotify.Chmod}
	if got := f.wait(t); !slices.Equal(got, []string{"/src/a.styl"}) {
		t.Errorf("second batch = %q", got)
	}
}

func TestWatchLoop_NewDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "new")
	if err := os.Mkdir(dir, 0755); err != nil {
		t.Fatal(err)
	}
	inside := filepath.Join(dir, "x.styl")

	var added []string
	events, _, f := startLoop(t, func(d string) []string {
		added = append(added, d)
		return []string{inside}
	})

	events <- fsnotify.Event{Name: dir, Op: fsnotify.Create}
	if got := f.wait(t); !slices.Equal(got, []string{inside}) {
		t.Errorf("flushed %q, want %q", got, inside)
	}
	if !slices.Equal(added, []string{dir}) {
		t.Errorf("added directories = %q", added)
	}
}

func TestWatchLoop_ClosedChannels(t *testing.T) {
	events := make(chan fsnotify.Event)
	close(events)
	l := &watchLoop{delay: time.Millisecond, addDir: func(string) []string { return nil }, flush: func(context.Context, []string) {}, log: testLogger(t)}
	if err := l.run(context.Background(), events, nil); err != nil {
		t.Errorf("run() error = %v", err)
	}
}

func TestWatcher_JobFor(t *testing.T) {
	root := t.TempDir()
	src := filepath.Join(root, "src")
	dst := filepath.Join(root, "dst")

	w := &watcher{src: src, dst: dst, root: root}
	j, ok := w.jobFor(filepath.Join(src, "sub", "a.styl"))
	if !ok {
		t.Fatal("jobFor() inside source should succeed")
	}
	if j.name != "sub/a.styl" || j.module != "src/sub/a" || j.out != filepath.Join(dst, "sub", "a.scss") {
		t.Errorf("job = %+v", j)
	}
	if _, ok := w.jobFor(filepath.Join(root, "elsewhere.styl")); ok {
		t.Error("jobFor() outside source should fail")
	}

	file := filepath.Join(src, "a.styl")
	single := &watcher{src: file, dst: dst, root: root, single: true}
	if _, ok := single.jobFor(filepath.Join(src, "b.styl")); ok {
		t.Error("single file watcher should ignore siblings")
	}
	if j, ok := single.jobFor(file); !ok || j.out != filepath.Join(dst, "a.scss") {
		t.Errorf("single file job = %+v, %v", j, ok)
	}
}

func TestWatcher_Flush(t *testing.T) {
	src, dst := t.TempDir(), t.TempDir()
	writeFiles(t, src, map[string]string{"vars.styl": srcVars, "uses.styl": srcUses})

	w := &watcher{
		c:    newTestConverter(t, fakeParser(gapTrees())),
		src:  src,
		dst:  dst,
		root: src,
		log:  testLogger(t),
	}
	w.flush(context.Background(), []string{filepath.Join(src, "uses.styl"), filepath.Join(src, "vars.styl")})

	if got := readFile(t, filepath.Join(dst, "uses.scss")); got != ".b {\n  width: $gap;\n}\n" {
		t.Errorf("uses.scss = %q", got)
	}
}

func TestWatcher_AddDir(t *testing.T) {
	src := t.TempDir()
	writeFiles(t, src, map[string]string{"a.styl": "", "sub/b.styl": "", "sub/c.txt": ""})

	fw, err := fsnotify.NewWatcher()
	if err != nil {
		t.Skipf("file system notifications are not available: %v", err)
	}
	defer fw.Close()

	w := &watcher{src: src, fw: fw, log: testLogger(t)}
	found, err := w.addDir(src)
	if err != nil {
		t.Fatalf("addDir() error = %v", err)
	}
	if want := []string{filepath.Join(src, "a.styl"), filepath.Join(src, "sub", "b.styl")}; !slices.Equal(found, want) {
		t.Errorf("found = %q, want %q", found, want)
	}
	if got := fw.WatchList(); len(got) != 2 {
		t.Errorf("watched = %q, want source and sub directory", got)
	}
}
