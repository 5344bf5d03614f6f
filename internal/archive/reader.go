// Package archive opens batch inputs and outputs, handling .xz and .gz
// compression transparently.
package archive

import (
	"bufio"
	"compress/gzip"
	"fmt"
	"io"
	"os"

	"github.com/ulikunitz/xz"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

// StdioPath names stdin or stdout in place of a file path.
const StdioPath = "-"

// Reader wraps an input stream with automatic decompression handling.
type Reader struct {
	io.Reader
	file         io.Closer
	decompressor io.Closer
}

// Injectable for testing.
var stdin io.Reader = os.Stdin

// NewReader opens path for reading. Paths ending in ".xz" or ".gz" are
// decompressed after their magic bytes are checked; "-" reads stdin
// uncompressed.
func NewReader(path string) (*Reader, error) {
	if path == StdioPath {
		return &Reader{Reader: stdin}, nil
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, errors.NewIO("open", path, err)
	}

	buffered := bufio.NewReader(f)
	header, _ := buffered.Peek(validation.HeaderSize)
	compression, err := validation.CheckCompression(header, path)
	if err != nil {
		f.Close()
		return nil, errors.NewIO("open", path, err)
	}

	var reader io.Reader = buffered
	var decompressor io.Closer

	switch compression {
	case validation.CompressionXZ:
		xzr, err := xz.NewReader(buffered)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("read xz", path, err)
		}
		reader = xzr
		decompressor = nil // xz reader doesn't need closing
	case validation.CompressionGzip:
		gzr, err := gzip.NewReader(buffered)
		if err != nil {
			f.Close()
			return nil, errors.NewIO("read gzip", path, err)
		}
		reader = gzr
		decompressor = gzr
	}

	return &Reader{
		Reader:       reader,
		file:         f,
		decompressor: decompressor,
	}, nil
}

// Close closes the reader and any underlying decompressors.
func (r *Reader) Close() error {
	var errs []error
	if r.decompressor != nil {
		if err := r.decompressor.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if r.file != nil {
		if err := r.file.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	if len(errs) > 0 {
		return errs[0]
	}
	return nil
}

// ReadAll reads and decompresses the whole of path.
func ReadAll(path string) ([]byte, error) {
	r, err := NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	data, err := io.ReadAll(io.LimitReader(r, validation.MaxInputSize+1))
	if err != nil {
		return nil, errors.NewIO("read", path, err)
	}
	if len(data) > validation.MaxInputSize {
		return nil, errors.NewIO("read", path,
			fmt.Errorf("%w: limit is %d bytes", validation.ErrTooLarge, validation.MaxInputSize))
	}
	return data, nil
}
