package batch

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/FocuswithJustin/lyxnorm/core/lyx"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

// Request operations.
const (
	OpERT    = "ert"
	OpLength = "length"
	OpGlue   = "glue"
	OpBP     = "bp"
)

// Request is one line of a batch input file. ERT requests use the
// embedded content fields; the other operations use Spec.
type Request struct {
	Op string `json:"op"`
	lyx.ERTRequest
	Spec string `json:"spec,omitempty"`
}

// DecodeRequests reads JSONL requests, skipping blank lines. Unknown
// fields and lines over validation.MaxRequestSize are rejected.
func DecodeRequests(r io.Reader) ([]Request, error) {
	var requests []Request
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), validation.MaxRequestSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 {
			continue
		}

		dec := json.NewDecoder(bytes.NewReader(line))
		dec.DisallowUnknownFields()
		var req Request
		if err := dec.Decode(&req); err != nil {
			return nil, fmt.Errorf("failed to decode request on line %d: %w", lineNum, err)
		}
		requests = append(requests, req)
	}

	if err := scanner.Err(); err != nil {
		if err == bufio.ErrTooLong {
			return nil, fmt.Errorf("request on line %d: %w", lineNum+1, validation.ErrTooLarge)
		}
		return nil, fmt.Errorf("error reading requests: %w", err)
	}

	return requests, nil
}
