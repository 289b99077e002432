package core

import (
	"bufio"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/klauspost/compress/zstd"
)

// AuditWriter appends events as zstd-compressed JSON lines, one file per hour:
// <dir>/audit-2006-01-02-15.jsonl.zst.
type AuditWriter struct {
	baseDir string
	prefix  string

	mu      sync.Mutex
	curHour string
	f       *os.File
	enc     *zstd.Encoder
	w       *bufio.Writer
}

// NewAuditWriter creates a writer rooted at dir. Files are opened lazily.
func NewAuditWriter(dir string) *AuditWriter {
	return &AuditWriter{
		baseDir: dir,
		prefix:  "audit",
	}
}

// WriteEvents appends events and flushes them to the current file.
func (w *AuditWriter) WriteEvents(events []Event) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	for _, e := range events {
		if err := w.writeLocked(e); err != nil {
			return err
		}
	}
	if w.w == nil {
		return nil
	}
	return w.w.Flush()
}

// Close flushes and closes the current file.
func (w *AuditWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.closeLocked()
}

// Path returns the file an event written now would go to.
func (w *AuditWriter) Path() string {
	return w.pathForHour(timeNow().UTC().Format("2006-01-02-15"))
}

// writeLocked appends e as one JSON line, switching files when the hour
// changes. The caller holds mu.
func (w *AuditWriter) writeLocked(e Event) error {
	hour := timeNow().UTC().Format("2006-01-02-15")
	if hour != w.curHour {
		if err := w.rotateLocked(hour); err != nil {
			return err
		}
	}

	b, err := json.Marshal(e)
	if err != nil {
		return err
	}
	if _, err := w.w.Write(b); err != nil {
		return err
	}
	return w.w.WriteByte('\n')
}

// rotateLocked closes the current file and opens the one for hour. Reopening
// an hour appends a new zstd frame; readers decode concatenated frames.
func (w *AuditWriter) rotateLocked(hour string) error {
	if err := w.closeLocked(); err != nil {
		return err
	}
	path := w.pathForHour(hour)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return err
	}
	enc, err := zstd.NewWriter(f, zstd.WithEncoderLevel(zstd.SpeedFastest))
	if err != nil {
		_ = f.Close()
		return err
	}
	w.f = f
	w.enc = enc
	w.w = bufio.NewWriterSize(enc, 64*1024)
	w.curHour = hour
	return nil
}

// closeLocked flushes and closes the open file, if any. The buffer drains
// into the encoder before the encoder writes its frame trailer.
func (w *AuditWriter) closeLocked() error {
	var errs []error
	if w.w != nil {
		errs = append(errs, w.w.Flush())
		w.w = nil
	}
	if w.enc != nil {
		errs = append(errs, w.enc.Close())
		w.enc = nil
	}
	if w.f != nil {
		errs = append(errs, w.f.Close())
		w.f = nil
	}
	w.curHour = ""
	return errors.Join(errs...)
}

// pathForHour names the file for an hour stamp such as "2006-01-02-15".
func (w *AuditWriter) pathForHour(hour string) string {
	return filepath.Join(w.baseDir, fmt.Sprintf("%s-%s.jsonl.zst", w.prefix, hour))
}
