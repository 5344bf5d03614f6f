package batch

import (
	"bufio"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/zeebo/blake3"

	"github.com/FocuswithJustin/lyxnorm/core/errors"
	"github.com/FocuswithJustin/lyxnorm/internal/archive"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

// Injectable for testing.
var jsonMarshal = json.Marshal

// Event is one line of a transcript JSONL file.
type Event struct {
	Type     string   `json:"t"`
	Seq      int      `json:"seq"`
	RunID    string   `json:"run_id,omitempty"`
	Workers  int      `json:"workers,omitempty"`
	Op       string   `json:"op,omitempty"`
	Lines    []string `json:"lines,omitempty"`
	Value    string   `json:"value,omitempty"`
	Relative bool     `json:"relative,omitempty"`
	Error    string   `json:"error,omitempty"`
	BLAKE3   string   `json:"blake3,omitempty"`
	Total    int      `json:"total,omitempty"`
	Failed   int      `json:"failed,omitempty"`
}

// Known event types
const (
	EventRunInfo   = "RUN_INFO"
	EventResult    = "RESULT"
	EventError     = "ERROR"
	EventRunDigest = "RUN_DIGEST"
)

// canonicalResult is the hashed form of a RESULT or ERROR event. It
// leaves out seq so a digest depends only on what was produced.
type canonicalResult struct {
	Type     string   `json:"t"`
	Op       string   `json:"op"`
	Lines    []string `json:"lines"`
	Value    string   `json:"value"`
	Relative bool     `json:"relative"`
	Error    string   `json:"error"`
}

// resultDigest returns the hex BLAKE3 digest of the event's outcome.
func resultDigest(e *Event) (string, error) {
	data, err := jsonMarshal(canonicalResult{
		Type:     e.Type,
		Op:       e.Op,
		Lines:    e.Lines,
		Value:    e.Value,
		Relative: e.Relative,
		Error:    e.Error,
	})
	if err != nil {
		return "", fmt.Errorf("failed to marshal result %d: %w", e.Seq, err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}

// runDigest folds per-request digests, in order, into one digest.
func runDigest(digests []string) string {
	h := blake3.New()
	for _, d := range digests {
		_, _ = io.WriteString(h, d)
		_, _ = io.WriteString(h, "\n")
	}
	return hex.EncodeToString(h.Sum(nil))
}

// WriteTranscript writes events as JSONL.
func WriteTranscript(w io.Writer, events []Event) error {
	bw := bufio.NewWriter(w)
	for _, event := range events {
		data, err := jsonMarshal(event)
		if err != nil {
			return fmt.Errorf("failed to marshal event: %w", err)
		}
		if _, err := bw.Write(data); err != nil {
			return fmt.Errorf("failed to write event: %w", err)
		}
		if err := bw.WriteByte('\n'); err != nil {
			return fmt.Errorf("failed to write newline: %w", err)
		}
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("failed to flush transcript: %w", err)
	}
	return nil
}

// ParseTranscript reads JSONL events, skipping blank lines.
func ParseTranscript(r io.Reader) ([]Event, error) {
	var events []Event
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 4*validation.MaxRequestSize)
	lineNum := 0

	for scanner.Scan() {
		lineNum++
		line := scanner.Bytes()
		if len(line) == 0 {
			continue
		}

		var event Event
		if err := json.Unmarshal(line, &event); err != nil {
			return nil, fmt.Errorf("failed to parse line %d: %w", lineNum, err)
		}
		events = append(events, event)
	}

	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("error reading transcript: %w", err)
	}

	return events, nil
}

// Transcript is a parsed transcript with helper methods.
type Transcript struct {
	Events []Event
	Path   string
}

// LoadTranscript loads a transcript from path, which may be compressed.
func LoadTranscript(path string) (*Transcript, error) {
	r, err := archive.NewReader(path)
	if err != nil {
		return nil, err
	}
	defer r.Close()

	events, err := ParseTranscript(r)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to load transcript %s", path)
	}
	return &Transcript{Events: events, Path: path}, nil
}

// RunInfo returns the RUN_INFO event if present.
func (t *Transcript) RunInfo() *Event {
	for i := range t.Events {
		if t.Events[i].Type == EventRunInfo {
			return &t.Events[i]
		}
	}
	return nil
}

// Results returns the RESULT and ERROR events in order.
func (t *Transcript) Results() []Event {
	var results []Event
	for _, event := range t.Events {
		if event.Type == EventResult || event.Type == EventError {
			results = append(results, event)
		}
	}
	return results
}

// Errors returns the ERROR events.
func (t *Transcript) Errors() []Event {
	var errs []Event
	for _, event := range t.Events {
		if event.Type == EventError {
			errs = append(errs, event)
		}
	}
	return errs
}

// Digest returns the run digest recorded in the RUN_DIGEST event.
func (t *Transcript) Digest() (string, error) {
	for _, event := range t.Events {
		if event.Type == EventRunDigest {
			if event.BLAKE3 == "" {
				return "", errors.NewParse("transcript", t.Path, "RUN_DIGEST has no digest")
			}
			return event.BLAKE3, nil
		}
	}
	return "", errors.NewNotFound("RUN_DIGEST event", t.Path)
}

// Verify recomputes every result digest and the run digest and checks
// them against the recorded values.
func (t *Transcript) Verify() error {
	recorded, err := t.Digest()
	if err != nil {
		return err
	}

	results := t.Results()
	digests := make([]string, 0, len(results))
	for i := range results {
		d, err := resultDigest(&results[i])
		if err != nil {
			return err
		}
		if d != results[i].BLAKE3 {
			return errors.NewParse("transcript", t.Path,
				fmt.Sprintf("result %d digest mismatch", results[i].Seq))
		}
		digests = append(digests, d)
	}

	if got := runDigest(digests); got != recorded {
		return errors.NewParse("transcript", t.Path, "run digest mismatch")
	}
	return nil
}
