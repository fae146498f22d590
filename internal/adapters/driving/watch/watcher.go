package watch

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/custodia-labs/gradebook-cli/internal/core/domain"
	"github.com/custodia-labs/gradebook-cli/internal/core/ports/driving"
	"github.com/custodia-labs/gradebook-cli/internal/logger"
)

// Result is the outcome of one attempted import.
type Result struct {
	Path   string
	Change domain.ChangeType
	Import *driving.ImportResult
	Err    error
}

// DefaultSettle is how long a file must go without events before it is
// imported.
const DefaultSettle = 500 * time.Millisecond

// Watcher imports new syllabus files from a directory.
type Watcher struct {
	dir      string
	importer driving.SyllabusService
	settle   time.Duration

	mu       sync.Mutex
	imported map[string]bool
}

// Option configures a Watcher.
type Option func(*Watcher)

// WithSettle sets the quiet period a file needs before it is imported.
func WithSettle(d time.Duration) Option {
	return func(w *Watcher) {
		if d > 0 {
			w.settle = d
		}
	}
}

// New creates a watcher for dir.
func New(dir string, importer driving.SyllabusService, opts ...Option) *Watcher {
	w := &Watcher{
		dir:      dir,
		importer: importer,
		settle:   DefaultSettle,
		imported: make(map[string]bool),
	}
	for _, opt := range opts {
		opt(w)
	}
	return w
}

// pendingFile is a file waiting for its writes to stop.
type pendingFile struct {
	change domain.ChangeType
	timer  *time.Timer
}

// Dir returns the watched directory.
func (w *Watcher) Dir() string {
	return w.dir
}

// Run watches the directory until ctx is cancelled, calling report after
// every import attempt. It returns nil on cancellation.
func (w *Watcher) Run(ctx context.Context, report func(Result)) error {
	info, err := os.Stat(w.dir)
	if err != nil {
		return fmt.Errorf("watch dir: %w", err)
	}
	if !info.IsDir() {
		return fmt.Errorf("%w: %s is not a directory", domain.ErrInvalidInput, w.dir)
	}

	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer fsw.Close()

	if err := w.addTree(fsw, w.dir); err != nil {
		return err
	}
	logger.Info("watch: watching %s", w.dir)

	// pending is only touched from this goroutine. Timers hand settled
	// paths back through settled.
	pending := make(map[string]*pendingFile)
	settled := make(chan string)
	defer func() {
		for _, p := range pending {
			p.timer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-fsw.Events:
			if !ok {
				return nil
			}
			if path, change, ok := w.handleEvent(fsw, event); ok {
				w.schedule(ctx, pending, settled, path, change)
			}
		case path := <-settled:
			p, ok := pending[path]
			if !ok {
				continue
			}
			delete(pending, path)
			if res, ok := w.importPath(ctx, path, p.change); ok && report != nil {
				report(res)
			}
		case err, ok := <-fsw.Errors:
			if !ok {
				return nil
			}
			logger.Warn("watch: %v", err)
		}
	}
}

// schedule (re)starts the settle timer for path. A file created and then
// written keeps its created change.
func (w *Watcher) schedule(ctx context.Context, pending map[string]*pendingFile, settled chan<- string, path string, change domain.ChangeType) {
	if w.isImported(path) {
		return
	}
	if p, ok := pending[path]; ok {
		p.timer.Reset(w.settle)
		return
	}
	pending[path] = &pendingFile{
		change: change,
		timer: time.AfterFunc(w.settle, func() {
			select {
			case settled <- path:
			case <-ctx.Done():
			}
		}),
	}
}

// Scan imports files already present in the directory.
func (w *Watcher) Scan(ctx context.Context, report func(Result)) error {
	return filepath.WalkDir(w.dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if path != w.dir && isHidden(d.Name()) {
			if d.IsDir() {
				return filepath.SkipDir
			}
			return nil
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if res, ok := w.importPath(ctx, path, domain.ChangeCreated); ok && report != nil {
			report(res)
		}
		return nil
	})
}

// handleEvent watches new directories and returns the regular file an
// event touched, if any.
func (w *Watcher) handleEvent(fsw *fsnotify.Watcher, event fsnotify.Event) (string, domain.ChangeType, bool) {
	change, ok := w.classify(event)
	if !ok {
		return "", 0, false
	}

	info, err := os.Stat(event.Name)
	if err != nil {
		// Gone again before we got to it.
		return "", 0, false
	}
	if info.IsDir() {
		if change == domain.ChangeCreated {
			if err := w.addTree(fsw, event.Name); err != nil {
				logger.Warn("watch: %v", err)
			}
		}
		return "", 0, false
	}
	if !info.Mode().IsRegular() {
		return "", 0, false
	}
	return event.Name, change, true
}

// importPath imports a file once. Empty files and failed imports are
// released so a later write can import them.
func (w *Watcher) importPath(ctx context.Context, path string, change domain.ChangeType) (Result, bool) {
	if !w.claim(path) {
		return Result{}, false
	}

	res, err := w.importer.ImportFile(ctx, path, driving.ImportOptions{})
	if errors.Is(err, domain.ErrEmptyDocument) {
		logger.Debug("watch: %s is empty, waiting for content", path)
		w.release(path)
		return Result{}, false
	}
	if err != nil {
		logger.Debug("watch: import %s failed: %v", path, err)
		w.release(path)
	}
	return Result{Path: path, Change: change, Import: res, Err: err}, true
}

func (w *Watcher) isImported(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.imported[path]
}

func (w *Watcher) claim(path string) bool {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.imported[path] {
		return false
	}
	w.imported[path] = true
	return true
}

func (w *Watcher) release(path string) {
	w.mu.Lock()
	defer w.mu.Unlock()
	delete(w.imported, path)
}

// addTree watches root and every visible directory below it.
func (w *Watcher) addTree(fsw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && isHidden(d.Name()) {
			return filepath.SkipDir
		}
		if err := fsw.Add(path); err != nil {
			return fmt.Errorf("watch %s: %w", path, err)
		}
		return nil
	})
}

// classify maps an fsnotify event to a change worth importing.
// Removals and renames are ignored; calculators outlive their files.
// Hidden names are judged relative to the watched directory.
func (w *Watcher) classify(event fsnotify.Event) (domain.ChangeType, bool) {
	rel, err := filepath.Rel(w.dir, event.Name)
	if err != nil {
		rel = filepath.Base(event.Name)
	}
	if isHidden(rel) {
		return 0, false
	}
	switch {
	case event.Has(fsnotify.Create):
		return domain.ChangeCreated, true
	case event.Has(fsnotify.Write):
		return domain.ChangeUpdated, true
	default:
		return 0, false
	}
}

// isHidden reports whether any element of path starts with a dot.
func isHidden(path string) bool {
	for _, part := range strings.Split(filepath.ToSlash(path), "/") {
		if part == "." || part == ".." {
			continue
		}
		if strings.HasPrefix(part, ".") {
			return true
		}
	}
	return false
}
