package pipeline

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/cnucho/gptcatalog/internal/logging"
)

// Writer writes generated files under Root, or only records them when
// DryRun is set. It satisfies the Output interfaces of render and atlas.
type Writer struct {
	Root   string
	DryRun bool

	log *logging.Logger

	mu    sync.Mutex
	files []string
	bytes int64
}

// NewWriter returns a Writer rooted at root.
func NewWriter(root string, dryRun bool, log *logging.Logger) *Writer {
	return &Writer{Root: root, DryRun: dryRun, log: log}
}

// WriteFile writes data to the slash-separated name under Root, creating
// parent directories.
func (w *Writer) WriteFile(name string, data []byte) error {
	if w.DryRun {
		w.log.Render("[DRY] Would write %s (%d bytes)", name, len(data))
	} else {
		path := filepath.Join(w.Root, filepath.FromSlash(name))
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return fmt.Errorf("create output directory: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return err
		}
		w.log.Render("%s", name)
	}

	w.mu.Lock()
	w.files = append(w.files, name)
	w.bytes += int64(len(data))
	w.mu.Unlock()
	return nil
}

// Files returns the names written so far, in write order.
func (w *Writer) Files() []string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return append([]string(nil), w.files...)
}

// Bytes is the total size written so far.
func (w *Writer) Bytes() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.bytes
}
