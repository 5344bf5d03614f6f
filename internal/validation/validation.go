// Package validation checks user-supplied paths and batch payloads before
// they reach the converters, guarding against oversize or binary input.
package validation

import (
	"bytes"
	"errors"
	"fmt"
	"path/filepath"
	"strings"
	"unicode"
)

// Limits on batch input (CWE-400).
const (
	// MaxInputSize is the maximum decompressed batch input size (256 MB).
	MaxInputSize = 256 << 20
	// MaxRequestSize is the maximum size of one JSONL request line (1 MB).
	MaxRequestSize = 1 << 20
	// MaxPathLength is the maximum allowed path length.
	MaxPathLength = 4096
	// MaxSpecLength bounds a length or glue specification.
	MaxSpecLength = 256
)

// Common validation errors.
var (
	ErrPathTooLong      = errors.New("path too long")
	ErrInvalidCharacter = errors.New("invalid character")
	ErrEmptyPath        = errors.New("path cannot be empty")
	ErrTooLarge         = errors.New("input too large")
	ErrCompression      = errors.New("compression mismatch")
)

// ValidatePath checks a path for length limits and invalid characters.
// "-" is accepted and means stdin or stdout to the caller.
func ValidatePath(path string) error {
	if path == "" {
		return ErrEmptyPath
	}

	if len(path) > MaxPathLength {
		return ErrPathTooLong
	}

	if strings.Contains(path, "\x00") {
		return fmt.Errorf("%w: null byte not allowed in path", ErrInvalidCharacter)
	}

	for _, r := range path {
		if unicode.IsControl(r) {
			return fmt.Errorf("%w: control character not allowed in path", ErrInvalidCharacter)
		}
	}

	return nil
}

// ValidateSpec bounds a length or glue specification before parsing.
func ValidateSpec(spec string) error {
	if len(spec) > MaxSpecLength {
		return fmt.Errorf("%w: spec is %d bytes, limit %d", ErrTooLarge, len(spec), MaxSpecLength)
	}
	return nil
}

// ValidateContent checks command text destined for an ERT inset. LyX files
// cannot carry NUL bytes, and the combined size is capped at MaxRequestSize.
func ValidateContent(lines []string) error {
	total := 0
	for i, line := range lines {
		total += len(line) + 1
		if total > MaxRequestSize {
			return fmt.Errorf("%w: content exceeds %d bytes", ErrTooLarge, MaxRequestSize)
		}
		if strings.IndexByte(line, 0) != -1 {
			return fmt.Errorf("%w: null byte in content line %d", ErrInvalidCharacter, i+1)
		}
	}
	return nil
}

// Compression identifies the wrapper around a batch stream.
type Compression string

const (
	CompressionNone Compression = "none"
	CompressionXZ   Compression = "xz"
	CompressionGzip Compression = "gzip"
)

// HeaderSize is how many leading bytes CheckCompression needs.
const HeaderSize = 6

var magicBytes = []struct {
	compression Compression
	magic       []byte
}{
	{CompressionXZ, []byte{0xfd, 0x37, 0x7a, 0x58, 0x5a, 0x00}},
	{CompressionGzip, []byte{0x1f, 0x8b}},
}

// DetectCompression identifies the compression from leading magic bytes.
func DetectCompression(header []byte) Compression {
	for _, sig := range magicBytes {
		if bytes.HasPrefix(header, sig.magic) {
			return sig.compression
		}
	}
	return CompressionNone
}

// CompressionFromExtension reports the compression a path name implies.
func CompressionFromExtension(path string) Compression {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".xz":
		return CompressionXZ
	case ".gz", ".tgz":
		return CompressionGzip
	default:
		return CompressionNone
	}
}

// CheckCompression verifies that a stream's leading bytes agree with the
// compression its name implies and returns that compression. An empty
// stream is accepted as uncompressed only when the name implies none.
func CheckCompression(header []byte, path string) (Compression, error) {
	expected := CompressionFromExtension(path)
	detected := DetectCompression(header)

	if detected == expected {
		if detected == CompressionNone && bytes.IndexByte(header, 0) != -1 {
			return CompressionNone, fmt.Errorf("%w: %s looks binary", ErrCompression, path)
		}
		return detected, nil
	}

	return CompressionNone, fmt.Errorf("%w: extension suggests %s but content is %s",
		ErrCompression, expected, detected)
}
