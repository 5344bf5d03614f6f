// Package batch runs JSONL conversion requests on a bounded worker pool
// and records the outcome as a digest-carrying transcript.
package batch

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/FocuswithJustin/lyxnorm/core/cache"
	"github.com/FocuswithJustin/lyxnorm/core/errors"
	"github.com/FocuswithJustin/lyxnorm/core/length"
	"github.com/FocuswithJustin/lyxnorm/core/lyx"
	"github.com/FocuswithJustin/lyxnorm/internal/archive"
	"github.com/FocuswithJustin/lyxnorm/internal/logging"
	"github.com/FocuswithJustin/lyxnorm/internal/validation"
)

// Injectable for testing.
var newRunID = func() string { return uuid.NewString() }

// Options configures a batch run.
type Options struct {
	// Workers bounds concurrent requests. Zero or less uses GOMAXPROCS.
	Workers int

	// Source names the input in logs.
	Source string

	// CacheSize bounds the memo of repeated requests. Zero uses the
	// cache default and a negative value disables memoization.
	CacheSize int
}

// Result summarizes a finished run.
type Result struct {
	RunID     string
	Events    []Event
	Total     int
	Failed    int
	Digest    string
	CacheHits int64
	Duration  time.Duration
}

// requestKey identifies requests that must produce identical results.
// Content is joined the way ERTRequest.Lines joins it.
type requestKey struct {
	op          string
	content     string
	open        bool
	asParagraph bool
	spec        string
}

func keyOf(req Request) requestKey {
	return requestKey{
		op:          req.Op,
		content:     strings.Join(req.Content, "\n"),
		open:        req.Open,
		asParagraph: req.AsParagraph,
		spec:        req.Spec,
	}
}

type outcome struct {
	ev  Event
	err error
}

// Run executes requests and returns the transcript events: RUN_INFO, one
// RESULT or ERROR per request in input order, then RUN_DIGEST. A failing
// request becomes an ERROR event; only cancellation aborts the run.
func Run(ctx context.Context, requests []Request, opts Options) (*Result, error) {
	start := time.Now()
	workers := opts.Workers
	if workers <= 0 {
		workers = runtime.GOMAXPROCS(0)
	}

	runID := newRunID()
	ctx = logging.WithRunID(ctx, runID)
	logging.BatchStart(ctx, opts.Source, workers, "requests", len(requests))

	execute := func(ctx context.Context, seq int, req Request) (Event, error) {
		return Execute(ctx, seq, req)
	}
	var memo *cache.Memo[requestKey, outcome]
	if opts.CacheSize >= 0 {
		config := cache.DefaultConfig()
		if opts.CacheSize > 0 {
			config.MaxSize = opts.CacheSize
		}
		memo = cache.NewMemo(config, func(k requestKey) outcome {
			ev, err := Execute(ctx, 0, Request{
				Op:         k.op,
				ERTRequest: lyx.ERTRequest{Content: []string{k.content}, Open: k.open, AsParagraph: k.asParagraph},
				Spec:       k.spec,
			})
			return outcome{ev, err}
		})
		execute = func(_ context.Context, seq int, req Request) (Event, error) {
			o := memo.Get(keyOf(req))
			o.ev.Seq = seq
			return o.ev, o.err
		}
	}

	// Each goroutine owns one index, so no locking is needed.
	results := make([]Event, len(requests))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(1, min(workers, len(requests))))

	for i, req := range requests {
		i, req := i, req
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			ev, err := execute(gctx, i+1, req)
			if err != nil {
				return err
			}
			results[i] = ev
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, errors.Wrap(err, "batch run aborted")
	}

	events := make([]Event, 0, len(results)+2)
	events = append(events, Event{Type: EventRunInfo, Seq: 0, RunID: runID, Workers: workers})

	digests := make([]string, len(results))
	failed := 0
	for i, ev := range results {
		digests[i] = ev.BLAKE3
		if ev.Type == EventError {
			failed++
		}
		events = append(events, ev)
	}

	digest := runDigest(digests)
	events = append(events, Event{
		Type:   EventRunDigest,
		Seq:    len(results) + 1,
		BLAKE3: digest,
		Total:  len(results),
		Failed: failed,
	})

	res := &Result{
		RunID:    runID,
		Events:   events,
		Total:    len(results),
		Failed:   failed,
		Digest:   digest,
		Duration: time.Since(start),
	}
	if memo != nil {
		res.CacheHits = memo.Stats().Hits
	}
	logging.BatchDone(ctx, res.Total, res.Failed, res.Digest, res.Duration, "cache_hits", res.CacheHits)
	return res, nil
}

// Execute converts one request into its RESULT or ERROR event. Conversion
// failures are reported in the event; the returned error is reserved for
// failures to build the event itself.
func Execute(ctx context.Context, seq int, req Request) (Event, error) {
	ev := Event{Seq: seq, Op: req.Op}
	input, err := convert(&ev, req)
	if err != nil {
		ev.Type = EventError
		ev.Lines, ev.Value, ev.Relative = nil, "", false
		ev.Error = err.Error()
		logging.ConversionError(ctx, req.Op, input, err)
	} else {
		ev.Type = EventResult
		logging.Conversion(ctx, req.Op, input, max(1, len(ev.Lines)))
	}

	digest, err := resultDigest(&ev)
	if err != nil {
		return Event{}, err
	}
	ev.BLAKE3 = digest
	return ev, nil
}

// convert fills ev with the outcome of req and returns a loggable form of
// the input.
func convert(ev *Event, req Request) (string, error) {
	switch req.Op {
	case OpERT:
		input := strings.Join(req.Content, "\n")
		if err := validation.ValidateContent(req.Content); err != nil {
			return input, err
		}
		lines := req.Lines()
		if err := lyx.CheckBalanced(lines); err != nil {
			return input, errors.Wrap(err, "embedder produced unbalanced markup")
		}
		ev.Lines = lines
		return input, nil

	case OpLength, OpGlue, OpBP:
		if err := validation.ValidateSpec(req.Spec); err != nil {
			return req.Spec, err
		}
		var err error
		switch req.Op {
		case OpLength:
			ev.Relative, ev.Value, err = length.Normalize(req.Spec)
		case OpGlue:
			ev.Relative, ev.Value, err = length.Glue(req.Spec)
		default:
			ev.Value, err = length.InBP(req.Spec)
		}
		return req.Spec, err

	default:
		return req.Op, errors.NewParse("request", req.Op,
			fmt.Sprintf("unknown op, want one of %s, %s, %s, %s", OpERT, OpLength, OpGlue, OpBP))
	}
}

// RunFile decodes requests from inPath, runs them and writes the
// transcript to outPath. Either path may be "-" and either may carry a
// .xz or .gz suffix.
func RunFile(ctx context.Context, inPath, outPath string, opts Options) (*Result, error) {
	if err := validation.ValidatePath(inPath); err != nil {
		return nil, fmt.Errorf("invalid input path: %w", err)
	}
	if err := validation.ValidatePath(outPath); err != nil {
		return nil, fmt.Errorf("invalid output path: %w", err)
	}
	if opts.Source == "" {
		opts.Source = inPath
	}

	r, err := archive.NewReader(inPath)
	if err != nil {
		return nil, err
	}
	requests, err := DecodeRequests(r)
	r.Close()
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read %s", inPath)
	}

	res, err := Run(ctx, requests, opts)
	if err != nil {
		return nil, err
	}

	w, err := archive.NewWriter(outPath)
	if err != nil {
		return nil, err
	}
	if err := WriteTranscript(w, res.Events); err != nil {
		w.Close()
		return nil, errors.NewIO("write transcript", outPath, err)
	}
	if err := w.Close(); err != nil {
		return nil, errors.NewIO("close transcript", outPath, err)
	}
	return res, nil
}
