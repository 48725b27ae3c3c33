package pipeline

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/cnucho/gptcatalog/internal/config"
	"github.com/cnucho/gptcatalog/internal/display"
	"github.com/cnucho/gptcatalog/internal/logging"
)

const defaultDebounce = 400 * time.Millisecond

// Watcher calls OnChange once a burst of relevant file events has been quiet
// for Debounce. Dirs are watched recursively; new subdirectories are added
// as they appear. Files are single files watched through their parent
// directory.
type Watcher struct {
	Dirs     []string
	Files    []string
	Match    func(path string) bool
	Debounce time.Duration
	OnChange func(ctx context.Context)

	log *logging.Logger
}

// Run blocks until ctx is done. It returns an error only when the watcher
// cannot be set up.
func (w *Watcher) Run(ctx context.Context) error {
	fw, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer fw.Close()

	for _, d := range w.Dirs {
		if err := w.addTree(fw, d); err != nil {
			return err
		}
	}
	files := map[string]bool{}
	for _, f := range w.Files {
		abs, err := filepath.Abs(f)
		if err != nil {
			continue
		}
		files[abs] = true
		if err := fw.Add(filepath.Dir(abs)); err != nil {
			w.log.Warn("Cannot watch %s: %v", f, err)
		}
	}

	debounce := w.Debounce
	if debounce <= 0 {
		debounce = defaultDebounce
	}
	tick := time.NewTicker(debounce / 4)
	defer tick.Stop()

	var pending time.Time
	for {
		select {
		case <-ctx.Done():
			return nil

		case ev, ok := <-fw.Events:
			if !ok {
				return nil
			}
			if ev.Op&(fsnotify.Create|fsnotify.Write|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}
			if ev.Op&fsnotify.Create != 0 {
				if fi, err := os.Stat(ev.Name); err == nil && fi.IsDir() {
					if err := w.addTree(fw, ev.Name); err != nil {
						w.log.Warn("Cannot watch %s: %v", ev.Name, err)
					}
					pending = time.Now()
					continue
				}
			}
			abs, _ := filepath.Abs(ev.Name)
			if files[abs] || (w.Match != nil && w.Match(ev.Name)) {
				w.log.Debug(w.log.Verbose(), "Change: %s %s", ev.Op, ev.Name)
				pending = time.Now()
			}

		case err, ok := <-fw.Errors:
			if !ok {
				return nil
			}
			w.log.Warn("Watch error: %v", err)

		case <-tick.C:
			if !pending.IsZero() && time.Since(pending) >= debounce {
				pending = time.Time{}
				w.OnChange(ctx)
			}
		}
	}
}

func (w *Watcher) addTree(fw *fsnotify.Watcher, root string) error {
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			return nil
		}
		if path != root && strings.HasPrefix(d.Name(), ".") {
			return filepath.SkipDir
		}
		return fw.Add(path)
	})
}

// CatalogWatcher returns a Watcher over the catalog directory and the
// override table that calls onChange for catalog files selected by the
// include and exclude globs.
func CatalogWatcher(cfg *config.Config, log *logging.Logger, onChange func(ctx context.Context)) *Watcher {
	w := &Watcher{
		Dirs:     []string{cfg.CatalogDir},
		Debounce: defaultDebounce,
		OnChange: onChange,
		log:      log,
		Match: func(path string) bool {
			rel, err := filepath.Rel(cfg.CatalogDir, path)
			if err != nil {
				return false
			}
			rel = filepath.ToSlash(rel)
			return matchesAny(normalizePatterns(cfg.Include), rel) &&
				!matchesAny(normalizePatterns(cfg.Exclude), rel)
		},
	}
	if cfg.OverridesPath != "" {
		w.Files = []string{cfg.OverridesPath}
	}
	return w
}

// Watch builds once, then rebuilds after every change until ctx is done.
// Rebuild failures are logged and the loop keeps going.
func Watch(ctx context.Context, cfg *config.Config, log *logging.Logger) error {
	last, err := Run(ctx, cfg, log)
	if err != nil {
		if ctx.Err() != nil {
			return nil
		}
		log.Error("Build failed: %v", err)
	}

	log.Info("Watching %s for changes (Ctrl-C to stop)", cfg.CatalogDir)
	w := CatalogWatcher(cfg, log, func(ctx context.Context) {
		log.Info("Change detected, rebuilding")
		stats, err := Run(ctx, cfg, log)
		if err != nil {
			if ctx.Err() == nil {
				log.Error("Rebuild failed: %v", err)
			}
			return
		}
		log.Info("Rebuilt %d entries (%s)", stats.Loaded,
			display.FormatBytesWithSign(stats.Bytes-last.Bytes))
		last = stats
	})
	return w.Run(ctx)
}
