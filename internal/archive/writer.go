package archive

import (
	"compress/gzip"
	"io"
	"os"
	"path/filepath"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

// Writer wraps an output stream with compression chosen by file suffix.
type Writer struct {
	io.Writer
	file       io.Closer
	compressor io.Closer
}

// Injectable for testing.
var stdout io.Writer = os.Stdout

// NewWriter creates path for writing, creating parent directories as
// needed. Paths ending in ".xz" or ".gz" are compressed; "-" writes to
// stdout. Close must be called to flush the compressor.
func NewWriter(path string) (*Writer, error) {
	if path == StdioPath {
		return &Writer{Writer: stdout}, nil
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, errors.NewIO("create directory", dir, err)
		}
	}

	f, err := os.Create(path)
	if err != nil {
		return nil, errors.NewIO("create", path, err)
	}

	w := &Writer{Writer: f, file: f}
	switch validation.CompressionFromExtension(path) {
	case validation.CompressionXZ:
		xzw, err := xz.NewWriter(f)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("write xz", path, err)
		}
		w.Writer, w.compressor = xzw, xzw
	case validation.CompressionGzip:
		gzw := gzip.NewWriter(f)
		w.Writer, w.compressor = gzw, gzw
	}
	return w, nil
}

// Close flushes the compressor and closes the file.
func (w *Writer) Close() error {
	var errs []error
	if w.compressor != nil {
		if err := w.compressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if w.file != nil {
		if err := w.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// WriteFile writes data to path, compressing it according to its suffix.
func WriteFile(path string, data []byte) error {
	w, err := NewWriter(path)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		w.Close()
		return errors.NewIO("write", path, err)
	}
	return w.Close()
}
