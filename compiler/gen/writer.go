package gen

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sync"

	"golang.org/x/sync/errgroup"
	"golang.org/x/tools/imports"
)

// File is a generated file. Path is slash separated and relative to the
// target directory.
type File struct {
	Path    string
	Content []byte
}

// Writer writes generated files under the target directory with parallel
// execution.
type Writer struct {
	target  string
	workers int
	log     *slog.Logger

	mu      sync.Mutex
	metrics WriterMetrics
}

// WriterMetrics tracks the written output.
type WriterMetrics struct {
	FilesWritten int
	TotalBytes   int64
}

// NewWriter creates a writer for the target directory of the config.
func NewWriter(c *Config) *Writer {
	return &Writer{
		target:  c.Target,
		workers: max(c.Workers, 1),
		log:     c.Logger,
	}
}

// Metrics returns the metrics of the files written so far.
func (w *Writer) Metrics() WriterMetrics {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.metrics
}

// WriteAll writes all files in parallel. It stops at the first failure.
func (w *Writer) WriteAll(ctx context.Context, files []File) error {
	if err := os.MkdirAll(w.target, 0o755); err != nil {
		return NewGenerationError("write", w.target, "create target directory", err)
	}
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(w.workers)
	for _, f := range files {
		eg.Go(func() error {
			select {
			case <-ctx.Done():
				return ctx.Err()
			default:
				return w.Write(f)
			}
		})
	}
	return eg.Wait()
}

// Write writes a single file, creating its directory.
func (w *Writer) Write(f File) error {
	path := filepath.Join(w.target, filepath.FromSlash(f.Path))
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return NewGenerationError("write", f.Path, "create directory", err)
	}
	if err := writeFile(path, f.Content); err != nil {
		return NewGenerationError("write", f.Path, "", err)
	}
	w.mu.Lock()
	w.metrics.FilesWritten++
	w.metrics.TotalBytes += int64(len(f.Content))
	w.mu.Unlock()
	w.log.Debug("file written", "path", f.Path, "bytes", len(f.Content))
	return nil
}

func writeFile(path string, content []byte) error {
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if _, err := out.Write(content); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// FormatGo formats a generated Go source file. Imports are kept as
// rendered.
func FormatGo(path string, src []byte) ([]byte, error) {
	out, err := imports.Process(path, src, &imports.Options{Comments: true, TabIndent: true, TabWidth: 8, FormatOnly: true})
	if err != nil {
		return nil, fmt.Errorf("format %s: %w", path, err)
	}
	return out, nil
}
