package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// RotatingWriter is an io.Writer that rotates its file before a write
// would push it past a size limit. Backups are numbered newest-first,
// rove.log.1 through rove.log.N; the slot past N falls off.
type RotatingWriter struct {
	path  string
	limit int64
	keep  int

	mu       sync.Mutex
	file     *os.File
	size     int64
	syncEach bool
}

// NewRotatingWriter opens or creates the log file at path, creating the
// parent directory as needed. maxSizeMB caps the live file, maxFiles the
// number of numbered backups. Writes are synced immediately by default
// so tail -f sees entries as they land.
func NewRotatingWriter(path string, maxSizeMB, maxFiles int) (*RotatingWriter, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("create log directory: %w", err)
	}

	w := &RotatingWriter{
		path:     path,
		limit:    int64(maxSizeMB) * 1024 * 1024,
		keep:     maxFiles,
		syncEach: true,
	}
	if err := w.open(); err != nil {
		return nil, err
	}
	return w, nil
}

// SetImmediateSync toggles the per-write sync. Disabling it leaves
// entries in OS buffers until Sync or Close.
func (w *RotatingWriter) SetImmediateSync(enabled bool) {
	w.mu.Lock()
	w.syncEach = enabled
	w.mu.Unlock()
}

// Write appends p, rotating first when the file would exceed the limit.
func (w *RotatingWriter) Write(p []byte) (int, error) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.size+int64(len(p)) > w.limit {
		if err := w.rotate(); err != nil {
			// A failed rotation must not lose entries; keep appending.
			_, _ = fmt.Fprintf(os.Stderr, "log rotation failed: %v\n", err)
		}
	}

	n, err := w.file.Write(p)
	w.size += int64(n)
	if err == nil && w.syncEach {
		_ = w.file.Sync()
	}
	return n, err
}

// Sync flushes buffered data to disk.
func (w *RotatingWriter) Sync() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Sync()
}

// Close closes the live file.
func (w *RotatingWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.file == nil {
		return nil
	}
	return w.file.Close()
}

// open appends to the existing file, carrying its size forward.
func (w *RotatingWriter) open() error {
	f, err := os.OpenFile(w.path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o644)
	if err != nil {
		return fmt.Errorf("open log file: %w", err)
	}
	info, err := f.Stat()
	if err != nil {
		_ = f.Close()
		return fmt.Errorf("stat log file: %w", err)
	}
	w.file = f
	w.size = info.Size()
	return nil
}

// rotate shifts each numbered backup up by one and moves the live file
// to .1, dropping whatever held the last slot.
func (w *RotatingWriter) rotate() error {
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			return fmt.Errorf("close log file: %w", err)
		}
		w.file = nil
	}

	_ = os.Remove(w.backup(w.keep))
	for i := w.keep - 1; i >= 1; i-- {
		_ = os.Rename(w.backup(i), w.backup(i+1))
	}
	if err := os.Rename(w.path, w.backup(1)); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("rotate log file: %w", err)
	}

	w.size = 0
	return w.open()
}

func (w *RotatingWriter) backup(n int) string {
	return fmt.Sprintf("%s.%d", w.path, n)
}
