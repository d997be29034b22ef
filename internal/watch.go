package internal

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"go.uber.org/zap"

	tt "github.com/gnoswap-labs/parsec/internal/types"
)

// debounce is how long a change settles before the file is read again, so a
// burst of writes is handled once.
const debounce = 100 * time.Millisecond

// ReportHandler receives the reports of a file checked again in watch mode.
type ReportHandler func(filename string, reports []tt.Report)

type watchState struct {
	watcher *fsnotify.Watcher
	files   map[string]bool // inputs named explicitly
	dirs    map[string]bool // directories walked for inputs
	accept  func(path string) bool
	handle  ReportHandler
	done    chan struct{}
}

// StartWatching checks files again whenever they change under paths and
// passes the reports to handle. Files found in directories are only checked
// when accept returns true for them; a nil accept takes every file. Hidden
// files and directories below paths are not watched. A change
// of the grammar file recompiles the grammar.
func (e *Engine) StartWatching(paths []string, accept func(path string) bool, handle ReportHandler) error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watch != nil {
		return fmt.Errorf("already watching")
	}
	if accept == nil {
		accept = func(string) bool { return true }
	}

	w, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("error creating watcher: %w", err)
	}

	ws := &watchState{
		watcher: w,
		files:   make(map[string]bool),
		dirs:    make(map[string]bool),
		accept:  accept,
		handle:  handle,
		done:    make(chan struct{}),
	}
	if err := ws.addPaths(paths); err != nil {
		w.Close()
		return err
	}
	if e.grammarPath != "" {
		if err := ws.addDir(filepath.Dir(e.grammarPath)); err != nil {
			w.Close()
			return err
		}
	}

	e.watch = ws
	go e.watchLoop(ws)
	return nil
}

// StopWatching ends watch mode.
func (e *Engine) StopWatching() error {
	e.watchMu.Lock()
	defer e.watchMu.Unlock()

	if e.watch == nil {
		e.logger.Warn("not watching")
		return nil
	}

	ws := e.watch
	e.watch = nil
	close(ws.done)
	return ws.watcher.Close()
}

func (ws *watchState) addPaths(paths []string) error {
	for _, path := range paths {
		path = filepath.Clean(path)
		info, err := os.Stat(path)
		if err != nil {
			return fmt.Errorf("error accessing %s: %w", path, err)
		}

		if !info.IsDir() {
			ws.files[path] = true
			if err := ws.addDir(filepath.Dir(path)); err != nil {
				return err
			}
			continue
		}

		err = filepath.Walk(path, func(p string, fi os.FileInfo, err error) error {
			if err != nil {
				return err
			}
			if !fi.IsDir() {
				return nil
			}
			if p != path && isHidden(p) {
				return filepath.SkipDir
			}
			ws.dirs[p] = true
			return ws.addDir(p)
		})
		if err != nil {
			return fmt.Errorf("error adding directory to watcher: %w", err)
		}
	}
	return nil
}

// isHidden matches the entries skipped when check walks a directory.
func isHidden(path string) bool {
	return strings.HasPrefix(filepath.Base(path), ".")
}

func (ws *watchState) addDir(dir string) error {
	if err := ws.watcher.Add(dir); err != nil {
		return fmt.Errorf("error watching %s: %w", dir, err)
	}
	return nil
}

func (e *Engine) watchLoop(ws *watchState) {
	for {
		select {
		case <-ws.done:
			return
		case event, ok := <-ws.watcher.Events:
			if !ok {
				return
			}
			e.handleFileEvent(ws, event)
		case err, ok := <-ws.watcher.Errors:
			if !ok {
				return
			}
			e.logger.Error("watch error", zap.Error(err))
		}
	}
}

func (e *Engine) handleFileEvent(ws *watchState, event fsnotify.Event) {
	if event.Op&(fsnotify.Write|fsnotify.Create) == 0 {
		return
	}
	name := filepath.Clean(event.Name)

	if e.grammarPath != "" && name == e.grammarPath {
		time.Sleep(debounce)
		if err := e.Reload(); err != nil {
			e.logger.Error("error reloading grammar, keeping the previous one",
				zap.String("grammar", name), zap.Error(err))
			return
		}
		e.logger.Info("grammar reloaded", zap.String("grammar", name))
		return
	}

	if !ws.files[name] && !(ws.dirs[filepath.Dir(name)] && !isHidden(name) && ws.accept(name)) {
		return
	}

	time.Sleep(debounce)
	reports, err := e.Run(name)
	if err != nil {
		e.logger.Error("error checking file", zap.String("file", name), zap.Error(err))
		return
	}
	ws.handle(name, reports)
}
